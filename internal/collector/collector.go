// Package collector walks a source tree and yields candidate source files.
//
// Directory traversal fans out concurrently per subdirectory; the collected
// paths are sorted before file contents are read, so the file order handed
// to extraction is deterministic for identical tree contents regardless of
// filesystem enumeration order.
package collector

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/kyawyelin284/zeus-core/internal/logger"
	"github.com/kyawyelin284/zeus-core/internal/scanerrors"
)

// FileSystem abstracts directory enumeration and file reads so traversal
// can be faked in tests.
type FileSystem interface {
	ReadDir(path string) ([]fs.DirEntry, error)
	ReadFile(path string) ([]byte, error)
}

// OSFileSystem is the real filesystem.
type OSFileSystem struct{}

// ReadDir enumerates a directory.
func (OSFileSystem) ReadDir(path string) ([]fs.DirEntry, error) {
	return os.ReadDir(path)
}

// ReadFile reads a file's full contents.
func (OSFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// SourceFile is one collected candidate file.
type SourceFile struct {
	Path    string
	Content string
}

// DefaultExtensions lists the file extensions collected when none are
// configured.
func DefaultExtensions() []string {
	return []string{".js", ".mjs", ".ts", ".java"}
}

// Directories never descended into.
var skippedDirs = map[string]bool{
	"node_modules": true,
	"vendor":       true,
	"dist":         true,
	"target":       true,
}

// Collector yields source files under a root.
type Collector struct {
	fs   FileSystem
	exts map[string]bool
	log  *logger.Logger
}

// New creates a collector over the given filesystem. A nil extension list
// selects the defaults.
func New(fsys FileSystem, extensions []string, log *logger.Logger) *Collector {
	if fsys == nil {
		fsys = OSFileSystem{}
	}
	if len(extensions) == 0 {
		extensions = DefaultExtensions()
	}
	if log == nil {
		log = logger.Global().WithComponent("collector")
	}

	exts := make(map[string]bool, len(extensions))
	for _, e := range extensions {
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		exts[strings.ToLower(e)] = true
	}

	return &Collector{fs: fsys, exts: exts, log: log}
}

// Collect walks root and returns candidate files sorted by path, contents
// included. Any directory or file read failure is fatal and aborts the
// collection.
func (c *Collector) Collect(ctx context.Context, root string) ([]SourceFile, error) {
	var (
		mu       sync.Mutex
		paths    []string
		firstErr error
		wg       sync.WaitGroup
	)

	dedup := NewDeduplicator(4096)

	setErr := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	var walk func(dir string)
	walk = func(dir string) {
		defer wg.Done()

		if err := ctx.Err(); err != nil {
			setErr(scanerrors.Categorize(err, dir))
			return
		}

		entries, err := c.fs.ReadDir(dir)
		if err != nil {
			setErr(scanerrors.NewCollectError(dir, err))
			return
		}

		for _, entry := range entries {
			name := entry.Name()
			full := filepath.Join(dir, name)

			if entry.IsDir() {
				if strings.HasPrefix(name, ".") || skippedDirs[name] {
					continue
				}
				wg.Add(1)
				go walk(full)
				continue
			}

			if !c.exts[strings.ToLower(filepath.Ext(name))] {
				continue
			}
			if !dedup.Add(full) {
				continue
			}

			mu.Lock()
			paths = append(paths, full)
			mu.Unlock()
		}
	}

	wg.Add(1)
	walk(root)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	// Traversal order is nondeterministic; extraction order must not be.
	sort.Strings(paths)

	files := make([]SourceFile, 0, len(paths))
	for _, p := range paths {
		data, err := c.fs.ReadFile(p)
		if err != nil {
			return nil, scanerrors.NewCollectError(p, err)
		}
		files = append(files, SourceFile{Path: p, Content: string(data)})
	}

	c.log.Debugf("collected %d candidate files under %s", len(files), root)
	return files, nil
}
