// Package writer applies a ChangeSet to one artifact at a time.
//
// Every write goes to a temporary file in the artifact's directory, is
// synced, and is then renamed over the artifact, so an interrupted run
// leaves either the old or the new content and never a mix. An existing
// artifact is backed up first; a failed backup means no write. An
// artifact whose part of the ChangeSet is empty is not touched at all.
package writer

import (
	"io/fs"
	"path/filepath"

	"github.com/arthur-debert/kilm/pkg/backup"
	"github.com/arthur-debert/kilm/pkg/errors"
	"github.com/arthur-debert/kilm/pkg/filesystem"
	"github.com/arthur-debert/kilm/pkg/hookdoc"
	"github.com/arthur-debert/kilm/pkg/kicadcommon"
	"github.com/arthur-debert/kilm/pkg/libtable"
	"github.com/arthur-debert/kilm/pkg/logging"
	"github.com/arthur-debert/kilm/pkg/types"
)

const (
	defaultFileMode fs.FileMode = 0644
	hookFileMode    fs.FileMode = 0755
)

// Result describes what happened to one artifact
type Result struct {
	Path    string
	Changed bool
	Backup  *types.BackupRecord
}

// Writer writes artifacts through fs
type Writer struct {
	fs      types.FS
	backups *backup.Manager
}

// New creates a Writer. Backups are taken with backups.
func New(fsys types.FS, backups *backup.Manager) *Writer {
	return &Writer{fs: fsys, backups: backups}
}

// ApplyTable applies the part of cs that concerns the kind table at path
func (w *Writer) ApplyTable(path string, kind types.Kind, cs *types.ChangeSet) (*Result, error) {
	if !cs.TouchesTable(kind) {
		return &Result{Path: path}, nil
	}

	data, exists, err := filesystem.ReadArtifact(w.fs, path)
	if err != nil {
		return nil, err
	}
	table, err := libtable.Decode(kind, data)
	if err != nil {
		return nil, errors.WithPath(err, path)
	}
	if err := table.Apply(cs); err != nil {
		return nil, errors.WithPath(err, path)
	}
	return w.commit(path, exists, table.Encode(), defaultFileMode)
}

// ApplySettings applies pin and path variable changes to kicad_common.json
func (w *Writer) ApplySettings(path string, cs *types.ChangeSet) (*Result, error) {
	if !cs.TouchesSettings() {
		return &Result{Path: path}, nil
	}

	data, exists, err := filesystem.ReadArtifact(w.fs, path)
	if err != nil {
		return nil, err
	}
	settings, err := kicadcommon.Decode(data)
	if err != nil {
		return nil, errors.WithPath(err, path)
	}
	if !settings.Apply(cs) {
		return &Result{Path: path}, nil
	}
	return w.commit(path, exists, settings.Encode(), defaultFileMode)
}

// ApplyHook writes the managed block of cs into the hook at path. A hook
// without an interpreter line gets interpreter in front. Hooks are always
// left executable.
func (w *Writer) ApplyHook(path string, cs *types.ChangeSet, interpreter string) (*Result, error) {
	if !cs.TouchesHook() {
		return &Result{Path: path}, nil
	}

	data, exists, err := filesystem.ReadArtifact(w.fs, path)
	if err != nil {
		return nil, err
	}
	doc := hookdoc.NewDocument(interpreter)
	if exists {
		if doc, err = hookdoc.Decode(data); err != nil {
			return nil, errors.WithPath(err, path)
		}
		doc.EnsureInterpreter(interpreter)
	} else if err := w.fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrWriteFailed, "cannot create hooks directory for %s", path).
			WithDetail("path", path)
	}
	doc.SetManagedBlock(*cs.ManagedBlockReplacement)
	return w.commit(path, exists, doc.Encode(), hookFileMode)
}


// commit backs up an existing artifact and atomically replaces it
func (w *Writer) commit(path string, exists bool, data []byte, mode fs.FileMode) (*Result, error) {
	logger := logging.GetLogger("writer")
	res := &Result{Path: path, Changed: true}

	if exists {
		if mode != hookFileMode {
			if info, err := w.fs.Stat(path); err == nil {
				mode = info.Mode().Perm()
			}
		}
		rec, err := w.backups.Backup(path)
		if err != nil {
			return nil, err
		}
		res.Backup = rec
	}

	if err := w.atomicWrite(path, data, mode); err != nil {
		return nil, err
	}
	logger.Info().Str("path", path).Bool("created", !exists).Msg("Wrote artifact")
	return res, nil
}

// atomicWrite writes data to a temporary sibling of path, syncs it and
// renames it into place. The temporary file is removed on any failure.
func (w *Writer) atomicWrite(path string, data []byte, mode fs.FileMode) error {
	fail := func(err error, step string) error {
		return errors.Wrapf(err, errors.ErrWriteFailed, "%s %s", step, path).WithDetail("path", path)
	}

	tmp, err := w.fs.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".kilm-*")
	if err != nil {
		return fail(err, "cannot create temporary file for")
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = w.fs.Remove(tmpPath)
		return fail(err, "cannot write")
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = w.fs.Remove(tmpPath)
		return fail(err, "cannot sync")
	}
	if err := tmp.Close(); err != nil {
		_ = w.fs.Remove(tmpPath)
		return fail(err, "cannot close")
	}
	if err := w.fs.Chmod(tmpPath, mode); err != nil {
		_ = w.fs.Remove(tmpPath)
		return fail(err, "cannot set mode of")
	}
	if err := w.fs.Rename(tmpPath, path); err != nil {
		_ = w.fs.Remove(tmpPath)
		return fail(err, "cannot move new content into")
	}
	return nil
}
