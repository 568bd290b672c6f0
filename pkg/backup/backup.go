// Package backup snapshots KiCad artifacts and hook scripts before they are
// rewritten.
//
// A backup is a sibling file named <artifact>.backup.<timestamp>, where the
// timestamp sorts lexically in creation order.
package backup

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/arthur-debert/kilm/pkg/errors"
	"github.com/arthur-debert/kilm/pkg/logging"
	"github.com/arthur-debert/kilm/pkg/types"
)

// Infix separates the artifact name from the timestamp
const Infix = ".backup."

// TimestampFormat is fixed width so names sort chronologically
const TimestampFormat = "20060102-150405.000000000"

// Manager creates and prunes backups
type Manager struct {
	fs  types.FS
	now func() time.Time
}

// New creates a Manager working on fs
func New(fs types.FS) *Manager {
	return &Manager{fs: fs, now: time.Now}
}

// WithClock replaces the time source, for tests
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

// Backup copies path to a timestamped sibling, keeping its mode
func (m *Manager) Backup(path string) (*types.BackupRecord, error) {
	logger := logging.GetLogger("backup")

	info, err := m.fs.Stat(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrBackupFailed, "cannot back up %s", path).WithDetail("path", path)
	}
	data, err := m.fs.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrBackupFailed, "cannot back up %s", path).WithDetail("path", path)
	}

	ts := m.now()
	backupPath := path + Infix + ts.Format(TimestampFormat)
	// same-instant collisions get a zero-padded counter so names keep sorting
	for n := 1; m.exists(backupPath); n++ {
		backupPath = fmt.Sprintf("%s%s%s-%03d", path, Infix, ts.Format(TimestampFormat), n)
	}

	mode := info.Mode().Perm()
	if err := m.fs.WriteFile(backupPath, data, mode); err != nil {
		_ = m.fs.Remove(backupPath)
		return nil, errors.Wrapf(err, errors.ErrBackupFailed, "cannot write backup %s", backupPath).
			WithDetail("path", path).
			WithDetail("backup", backupPath)
	}
	if err := m.fs.Chmod(backupPath, mode); err != nil {
		_ = m.fs.Remove(backupPath)
		return nil, errors.Wrapf(err, errors.ErrBackupFailed, "cannot set mode of backup %s", backupPath).
			WithDetail("path", path).
			WithDetail("backup", backupPath)
	}

	logger.Info().Str("path", path).Str("backup", backupPath).Msg("Created backup")
	return &types.BackupRecord{OriginalPath: path, BackupPath: backupPath, Timestamp: ts}, nil
}

func (m *Manager) exists(path string) bool {
	_, err := m.fs.Stat(path)
	return err == nil
}

// List returns the backups of path, oldest first
func (m *Manager) List(path string) ([]string, error) {
	dir := filepath.Dir(path)
	prefix := filepath.Base(path) + Infix

	entries, err := m.fs.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot list backups in %s", dir)
	}

	var backups []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), prefix) {
			backups = append(backups, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(backups)
	return backups, nil
}

// Prune removes the oldest backups of path so at most keep remain. A keep
// of zero or less disables pruning. It returns the removed paths.
func (m *Manager) Prune(path string, keep int) ([]string, error) {
	if keep <= 0 {
		return nil, nil
	}
	backups, err := m.List(path)
	if err != nil {
		return nil, err
	}
	if len(backups) <= keep {
		return nil, nil
	}

	logger := logging.GetLogger("backup")
	stale := backups[:len(backups)-keep]
	var removed []string
	for _, b := range stale {
		if err := m.fs.Remove(b); err != nil {
			return removed, errors.Wrapf(err, errors.ErrFileAccess, "cannot remove old backup %s", b)
		}
		logger.Debug().Str("backup", b).Msg("Removed old backup")
		removed = append(removed, b)
	}
	return removed, nil
}
