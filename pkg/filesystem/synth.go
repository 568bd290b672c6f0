package filesystem

import (
	"errors"
	"io/fs"

	"github.com/arthur-debert/kilm/pkg/types"
	synthfilesystem "github.com/arthur-debert/synthfs/pkg/synthfs/filesystem"
)

// ForSynth exposes fsys to synthfs operation batches. Links are not
// supported since kilm never creates them.
func ForSynth(fsys types.FS) synthfilesystem.FullFileSystem {
	return synthFS{FS: fsys}
}

type synthFS struct {
	types.FS
}

func (s synthFS) Open(name string) (fs.File, error) {
	if o, ok := s.FS.(interface{ Open(string) (fs.File, error) }); ok {
		return o.Open(name)
	}
	return nil, &fs.PathError{Op: "open", Path: name, Err: errors.ErrUnsupported}
}

func (s synthFS) RemoveAll(name string) error {
	if r, ok := s.FS.(interface{ RemoveAll(string) error }); ok {
		return r.RemoveAll(name)
	}
	return s.FS.Remove(name)
}

func (s synthFS) Symlink(oldname, newname string) error {
	return &fs.PathError{Op: "symlink", Path: newname, Err: errors.ErrUnsupported}
}

func (s synthFS) Readlink(name string) (string, error) {
	return "", &fs.PathError{Op: "readlink", Path: name, Err: errors.ErrUnsupported}
}
