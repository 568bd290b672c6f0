package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/arthur-debert/kilm/pkg/filesystem"
	"github.com/arthur-debert/kilm/pkg/types"
)

// EmptySymbolTable is the smallest valid sym-lib-table
const EmptySymbolTable = "(sym_lib_table\n)\n"

// NewFS returns an in-memory filesystem holding files, keyed by path
func NewFS(t *testing.T, files map[string]string) types.FS {
	t.Helper()
	fsys := filesystem.NewMemory()
	for path, content := range files {
		CreateFile(t, fsys, path, content)
	}
	return fsys
}

// CreateFile writes content to path, creating parent directories
func CreateFile(t *testing.T, fsys types.FS, path, content string) string {
	t.Helper()
	if err := fsys.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create parent directories for %s: %v", path, err)
	}
	if err := fsys.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create file %s: %v", path, err)
	}
	return path
}

// CreateDir creates path and its parents
func CreateDir(t *testing.T, fsys types.FS, path string) string {
	t.Helper()
	if err := fsys.MkdirAll(path, 0755); err != nil {
		t.Fatalf("Failed to create directory %s: %v", path, err)
	}
	return path
}

// ReadFile returns the content of path
func ReadFile(t *testing.T, fsys types.FS, path string) string {
	t.Helper()
	data, err := fsys.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(data)
}

// FileExists reports whether path exists and is not a directory
func FileExists(t *testing.T, fsys types.FS, path string) bool {
	t.Helper()
	info, err := fsys.Stat(path)
	return err == nil && !info.IsDir()
}

// DirExists reports whether path is a directory
func DirExists(t *testing.T, fsys types.FS, path string) bool {
	t.Helper()
	info, err := fsys.Stat(path)
	return err == nil && info.IsDir()
}

// FixedClock returns a clock that always reports at
func FixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

// StepClock returns a clock that advances by step on every call, so
// successive backups get distinct names
func StepClock(start time.Time, step time.Duration) func() time.Time {
	next := start
	return func() time.Time {
		now := next
		next = next.Add(step)
		return now
	}
}
