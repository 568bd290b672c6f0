package types

import "time"

// BackupRecord describes a snapshot taken right before an artifact write
type BackupRecord struct {
	OriginalPath string
	BackupPath   string
	Timestamp    time.Time
}
