package filesystem

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOS(t *testing.T) {
	fs := NewOS()
	assert.NotNil(t, fs)

	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "sym-lib-table")
	testContent := []byte("(sym_lib_table\n)\n")

	err := fs.WriteFile(testFile, testContent, 0644)
	require.NoError(t, err)

	info, err := fs.Stat(testFile)
	require.NoError(t, err)
	assert.Equal(t, "sym-lib-table", info.Name())
	assert.Equal(t, int64(len(testContent)), info.Size())

	content, err := fs.ReadFile(testFile)
	require.NoError(t, err)
	assert.Equal(t, testContent, content)

	subDir := filepath.Join(tmpDir, "sub", "dir")
	require.NoError(t, fs.MkdirAll(subDir, 0755))

	entries, err := fs.ReadDir(tmpDir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	require.NoError(t, fs.Chmod(testFile, 0755))
	info, err = fs.Stat(testFile)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())

	require.NoError(t, fs.Remove(testFile))
	_, err = fs.Stat(testFile)
	assert.True(t, os.IsNotExist(err))
}

func TestCreateTempAndRename(t *testing.T) {
	fs := NewMemory()
	require.NoError(t, fs.MkdirAll("/cfg", 0755))
	require.NoError(t, fs.WriteFile("/cfg/fp-lib-table", []byte("old"), 0644))

	tmp, err := fs.CreateTemp("/cfg", ".fp-lib-table.tmp-*")
	require.NoError(t, err)
	assert.Equal(t, "/cfg", filepath.Dir(tmp.Name()))

	_, err = tmp.Write([]byte("new"))
	require.NoError(t, err)
	require.NoError(t, tmp.Sync())
	require.NoError(t, tmp.Close())

	require.NoError(t, fs.Rename(tmp.Name(), "/cfg/fp-lib-table"))

	content, err := fs.ReadFile("/cfg/fp-lib-table")
	require.NoError(t, err)
	assert.Equal(t, "new", string(content))

	entries, err := fs.ReadDir("/cfg")
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file should be gone after rename")
}

func TestReadFileOnDirectory(t *testing.T) {
	fs := NewMemory()
	require.NoError(t, fs.MkdirAll("/cfg", 0755))

	_, err := fs.ReadFile("/cfg")
	assert.Error(t, err)
}

func TestForSynth(t *testing.T) {
	mem := NewMemory()
	require.NoError(t, mem.MkdirAll("/lib/symbols", 0755))
	require.NoError(t, mem.WriteFile("/lib/kilm.yaml", []byte("name: lib\n"), 0644))

	sfs := ForSynth(mem)

	f, err := sfs.Open("/lib/kilm.yaml")
	require.NoError(t, err)
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.Equal(t, "name: lib\n", string(data))

	require.NoError(t, sfs.WriteFile("/lib/notes.txt", nil, 0644))
	assert.True(t, fileExists(mem, "/lib/notes.txt"))

	require.NoError(t, sfs.RemoveAll("/lib/symbols"))
	assert.False(t, fileExists(mem, "/lib/symbols"))

	err = sfs.Symlink("/lib/kilm.yaml", "/lib/link")
	assert.ErrorIs(t, err, errors.ErrUnsupported)
}

func fileExists(fs interface {
	Stat(string) (os.FileInfo, error)
}, path string) bool {
	_, err := fs.Stat(path)
	return err == nil
}

func TestReadArtifact(t *testing.T) {
	fsys := NewMemory()
	require.NoError(t, fsys.MkdirAll("/cfg/sub", 0755))
	require.NoError(t, fsys.WriteFile("/cfg/sym-lib-table", []byte("(sym_lib_table\n)\n"), 0644))

	tests := []struct {
		name      string
		path      string
		wantFound bool
		wantErr   bool
	}{
		{"existing", "/cfg/sym-lib-table", true, false},
		{"missing is not an error", "/cfg/fp-lib-table", false, false},
		{"directory", "/cfg/sub", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, found, err := ReadArtifact(fsys, tt.path)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantFound, found)
			if found {
				assert.Equal(t, "(sym_lib_table\n)\n", string(data))
			}
		})
	}
}
