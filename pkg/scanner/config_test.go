package scanner

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if len(cfg.Extensions) != 4 {
		t.Errorf("Extensions = %v, want 4 entries", cfg.Extensions)
	}
	if cfg.Incremental {
		t.Error("Incremental should default to false")
	}
	if cfg.Serve.Port != 8080 {
		t.Errorf("Serve.Port = %d, want 8080", cfg.Serve.Port)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "valid",
			mutate: func(c *Config) { c.Root = "/tmp/project" },
		},
		{
			name:    "missing root",
			mutate:  func(c *Config) {},
			wantErr: true,
		},
		{
			name: "empty extensions",
			mutate: func(c *Config) {
				c.Root = "/tmp/project"
				c.Extensions = nil
			},
			wantErr: true,
		},
		{
			name: "invalid port",
			mutate: func(c *Config) {
				c.Root = "/tmp/project"
				c.Serve.Port = 99999
			},
			wantErr: true,
		},
		{
			name: "negative rate limit",
			mutate: func(c *Config) {
				c.Root = "/tmp/project"
				c.Serve.RateLimit = -1
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromFile_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `root: /srv/app
extensions:
  - .js
  - .ts
incremental: true
serve:
  port: 9090
  rate_limit: 5
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}

	if cfg.Root != "/srv/app" {
		t.Errorf("Root = %q, want /srv/app", cfg.Root)
	}
	if len(cfg.Extensions) != 2 {
		t.Errorf("Extensions = %v, want 2 entries", cfg.Extensions)
	}
	if !cfg.Incremental {
		t.Error("Incremental = false, want true")
	}
	if cfg.Serve.Port != 9090 {
		t.Errorf("Serve.Port = %d, want 9090", cfg.Serve.Port)
	}
	if cfg.Serve.RateLimit != 5 {
		t.Errorf("Serve.RateLimit = %v, want 5", cfg.Serve.RateLimit)
	}
	// Unset fields keep defaults.
	if cfg.Serve.Burst != 10 {
		t.Errorf("Serve.Burst = %d, want default 10", cfg.Serve.Burst)
	}
}

func TestLoadFromFile_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{"root": "/srv/app", "archive": true}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}
	if cfg.Root != "/srv/app" {
		t.Errorf("Root = %q, want /srv/app", cfg.Root)
	}
	if !cfg.Archive {
		t.Error("Archive = false, want true")
	}
}

func TestLoadFromFile_Missing(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadFromFile() on missing file should fail")
	}
}

func TestSaveAndReload(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Root = "/srv/app"
	cfg.Incremental = true
	cfg.Serve.Port = 7070

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.SaveToFile(path); err != nil {
		t.Fatalf("SaveToFile() error = %v", err)
	}

	loaded, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}
	if loaded.Root != cfg.Root || loaded.Incremental != cfg.Incremental || loaded.Serve.Port != cfg.Serve.Port {
		t.Errorf("round-tripped config = %+v, want %+v", loaded, cfg)
	}
}

func TestClone(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Root = "/srv/app"

	clone := cfg.Clone()
	clone.Root = "/other"
	clone.Extensions[0] = ".go"

	if cfg.Root != "/srv/app" {
		t.Error("mutating clone changed original Root")
	}
	if cfg.Extensions[0] != ".js" {
		t.Error("mutating clone changed original Extensions")
	}
}
