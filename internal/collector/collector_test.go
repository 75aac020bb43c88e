package collector

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// fakeEntry implements fs.DirEntry for the fake filesystem.
type fakeEntry struct {
	name string
	dir  bool
}

func (e fakeEntry) Name() string               { return e.name }
func (e fakeEntry) IsDir() bool                { return e.dir }
func (e fakeEntry) Type() fs.FileMode          { return 0 }
func (e fakeEntry) Info() (fs.FileInfo, error) { return nil, nil }

// fakeFS serves directories and file contents from maps.
type fakeFS struct {
	dirs    map[string][]fs.DirEntry
	files   map[string]string
	readErr map[string]error
}

func (f *fakeFS) ReadDir(path string) ([]fs.DirEntry, error) {
	entries, ok := f.dirs[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return entries, nil
}

func (f *fakeFS) ReadFile(path string) ([]byte, error) {
	if err := f.readErr[path]; err != nil {
		return nil, err
	}
	content, ok := f.files[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return []byte(content), nil
}

func newTreeFS() *fakeFS {
	return &fakeFS{
		dirs: map[string][]fs.DirEntry{
			"/app": {
				fakeEntry{name: "zeta", dir: true},
				fakeEntry{name: "alpha", dir: true},
				fakeEntry{name: "readme.md"},
				fakeEntry{name: "server.js"},
				fakeEntry{name: "node_modules", dir: true},
				fakeEntry{name: ".git", dir: true},
			},
			filepath.Join("/app", "zeta"):  {fakeEntry{name: "Controller.java"}},
			filepath.Join("/app", "alpha"): {fakeEntry{name: "routes.ts"}, fakeEntry{name: "styles.css"}},
		},
		files: map[string]string{
			filepath.Join("/app", "server.js"):               "server",
			filepath.Join("/app", "zeta", "Controller.java"): "controller",
			filepath.Join("/app", "alpha", "routes.ts"):      "routes",
		},
		readErr: map[string]error{},
	}
}

func TestCollector_Collect(t *testing.T) {
	c := New(newTreeFS(), nil, nil)

	files, err := c.Collect(context.Background(), "/app")
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	want := []string{
		filepath.Join("/app", "alpha", "routes.ts"),
		filepath.Join("/app", "server.js"),
		filepath.Join("/app", "zeta", "Controller.java"),
	}
	if len(files) != len(want) {
		t.Fatalf("len(files) = %d, want %d", len(files), len(want))
	}
	for i, f := range files {
		if f.Path != want[i] {
			t.Errorf("files[%d].Path = %q, want %q", i, f.Path, want[i])
		}
	}
	if files[1].Content != "server" {
		t.Errorf("Content = %q, want %q", files[1].Content, "server")
	}
}

func TestCollector_Deterministic(t *testing.T) {
	// Two collections over the same tree yield identical ordering even
	// though subdirectory traversal fans out concurrently.
	c := New(newTreeFS(), nil, nil)

	first, err := c.Collect(context.Background(), "/app")
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	for i := 0; i < 10; i++ {
		again, err := c.Collect(context.Background(), "/app")
		if err != nil {
			t.Fatalf("Collect() error = %v", err)
		}
		if len(again) != len(first) {
			t.Fatalf("len = %d, want %d", len(again), len(first))
		}
		for j := range again {
			if again[j].Path != first[j].Path {
				t.Fatalf("run %d: files[%d] = %q, want %q", i, j, again[j].Path, first[j].Path)
			}
		}
	}
}

func TestCollector_CustomExtensions(t *testing.T) {
	c := New(newTreeFS(), []string{"java"}, nil)

	files, err := c.Collect(context.Background(), "/app")
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("len(files) = %d, want 1", len(files))
	}
	if filepath.Ext(files[0].Path) != ".java" {
		t.Errorf("Path = %q, want a .java file", files[0].Path)
	}
}

func TestCollector_ReadFileFailureIsFatal(t *testing.T) {
	fsys := newTreeFS()
	fsys.readErr[filepath.Join("/app", "server.js")] = errors.New("permission denied")

	c := New(fsys, nil, nil)
	if _, err := c.Collect(context.Background(), "/app"); err == nil {
		t.Fatal("Collect() error = nil, want fatal read error")
	}
}

func TestCollector_MissingRootIsFatal(t *testing.T) {
	c := New(&fakeFS{dirs: map[string][]fs.DirEntry{}}, nil, nil)
	if _, err := c.Collect(context.Background(), "/nowhere"); err == nil {
		t.Fatal("Collect() error = nil, want error")
	}
}

func TestCollector_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := New(newTreeFS(), nil, nil)
	if _, err := c.Collect(ctx, "/app"); err == nil {
		t.Fatal("Collect() error = nil, want cancellation error")
	}
}

func TestCollector_RealFilesystem(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "src")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(sub, "a.js"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "b.txt"), []byte("y"), 0644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	c := New(nil, nil, nil)
	files, err := c.Collect(ctx, root)
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("len(files) = %d, want 1", len(files))
	}
	if files[0].Content != "x" {
		t.Errorf("Content = %q, want x", files[0].Content)
	}
}

func TestDeduplicator(t *testing.T) {
	d := NewDeduplicator(10)

	if !d.Add("/a/b.js") {
		t.Error("first Add should report new")
	}
	if d.Add("/a/b.js") {
		t.Error("second Add should report seen")
	}
	if d.Count() != 1 {
		t.Errorf("Count() = %d, want 1", d.Count())
	}

	d.Reset()
	if d.Count() != 0 {
		t.Errorf("Count() after Reset = %d, want 0", d.Count())
	}
	if !d.Add("/a/b.js") {
		t.Error("Add after Reset should report new")
	}
}
