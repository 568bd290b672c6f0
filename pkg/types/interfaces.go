package types

import (
	"io"
	"io/fs"
)

// FS is the filesystem interface required for kilm operations
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	Chmod(name string, mode fs.FileMode) error

	// CreateTemp creates a new uniquely named file in dir, see os.CreateTemp
	CreateTemp(dir, pattern string) (File, error)
	Rename(oldpath, newpath string) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Other operations
	Remove(name string) error
}

// File is the writable handle returned by CreateTemp
type File interface {
	io.Writer
	Name() string
	Sync() error
	Close() error
}
