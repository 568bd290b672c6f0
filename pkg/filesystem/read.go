package filesystem

import (
	"io/fs"

	"github.com/arthur-debert/kilm/pkg/errors"
	"github.com/arthur-debert/kilm/pkg/types"
)

// ReadArtifact reads a regular file. The bool is false when path does
// not exist, which is not an error.
func ReadArtifact(fsys types.FS, path string) ([]byte, bool, error) {
	info, err := fsys.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, errors.Wrapf(err, errors.ErrFileAccess, "cannot stat %s", path).WithDetail("path", path)
	}
	if info.IsDir() {
		return nil, false, errors.Newf(errors.ErrFileAccess, "%s is a directory", path).WithDetail("path", path)
	}
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, false, errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", path).WithDetail("path", path)
	}
	return data, true, nil
}
