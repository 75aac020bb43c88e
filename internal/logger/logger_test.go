package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	cfg := DefaultConfig()
	l := New(cfg)

	if l == nil {
		t.Fatal("New() returned nil")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Level != InfoLevel {
		t.Errorf("Level = %v, want InfoLevel", cfg.Level)
	}
	if !cfg.Pretty {
		t.Error("Pretty should be true by default")
	}
	if cfg.Output == nil {
		t.Error("Output should not be nil")
	}
}

func newBufferLogger(level Level) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := New(Config{
		Level:  level,
		Pretty: false,
		Output: &buf,
	})
	return l, &buf
}

func TestLogger_WithComponent(t *testing.T) {
	l, buf := newBufferLogger(InfoLevel)

	l = l.WithComponent("snapshot")
	l.Info("test message")

	output := buf.String()
	if !strings.Contains(output, "snapshot") {
		t.Errorf("Output should contain component: %s", output)
	}
}

func TestLogger_WithFile(t *testing.T) {
	l, buf := newBufferLogger(InfoLevel)

	l = l.WithFile("routes/users.js")
	l.Info("scanning")

	output := buf.String()
	if !strings.Contains(output, "routes/users.js") {
		t.Errorf("Output should contain file path: %s", output)
	}
}

func TestLogger_WithMatcher(t *testing.T) {
	l, buf := newBufferLogger(InfoLevel)

	l = l.WithMatcher("express")
	l.Info("matched")

	output := buf.String()
	if !strings.Contains(output, "express") {
		t.Errorf("Output should contain matcher name: %s", output)
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	l, buf := newBufferLogger(WarnLevel)

	l.Debug("hidden debug")
	l.Info("hidden info")
	l.Warn("visible warning")

	output := buf.String()
	if strings.Contains(output, "hidden") {
		t.Errorf("Output should not contain filtered messages: %s", output)
	}
	if !strings.Contains(output, "visible warning") {
		t.Errorf("Output should contain warning: %s", output)
	}
}

func TestLogger_MatchEvent(t *testing.T) {
	l, buf := newBufferLogger(DebugLevel)

	l.MatchEvent("routes/users.js", "express", "GET", "/users")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if entry["file"] != "routes/users.js" {
		t.Errorf("file = %v", entry["file"])
	}
	if entry["matcher"] != "express" {
		t.Errorf("matcher = %v", entry["matcher"])
	}
	if entry["method"] != "GET" || entry["path"] != "/users" {
		t.Errorf("method/path = %v/%v", entry["method"], entry["path"])
	}
}

func TestLogger_ExtractionWarning(t *testing.T) {
	l, buf := newBufferLogger(InfoLevel)

	l.ExtractionWarning("routes/users.js", "fastify", errors.New("bad route table"))

	output := buf.String()
	if !strings.Contains(output, "bad route table") {
		t.Errorf("Output should contain cause: %s", output)
	}
	if !strings.Contains(output, "warn") {
		t.Errorf("Output should be at warn level: %s", output)
	}
}

func TestLogger_RequestEvent(t *testing.T) {
	l, buf := newBufferLogger(InfoLevel)

	l.RequestEvent("GET", "/endpoints", 200, 5*time.Millisecond)

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if entry["status_code"] != float64(200) {
		t.Errorf("status_code = %v", entry["status_code"])
	}
	if entry["path"] != "/endpoints" {
		t.Errorf("path = %v", entry["path"])
	}
}

func TestLogger_SetLevel(t *testing.T) {
	l, buf := newBufferLogger(InfoLevel)

	l.SetLevel(ErrorLevel)
	l.Info("should be hidden")
	l.Error("should be visible")

	output := buf.String()
	if strings.Contains(output, "should be hidden") {
		t.Errorf("Output should not contain info message: %s", output)
	}
	if !strings.Contains(output, "should be visible") {
		t.Errorf("Output should contain error message: %s", output)
	}
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("debug")
	if err != nil {
		t.Fatalf("ParseLevel() error = %v", err)
	}
	if level != DebugLevel {
		t.Errorf("level = %v, want DebugLevel", level)
	}

	if _, err := ParseLevel("not-a-level"); err == nil {
		t.Error("ParseLevel() should fail for invalid input")
	}
}

func TestGlobal(t *testing.T) {
	orig := Global()
	defer SetGlobal(orig)

	l := NewDefault()
	SetGlobal(l)

	if Global() != l {
		t.Error("Global() did not return the logger set with SetGlobal()")
	}
}
