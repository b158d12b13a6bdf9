package models

import "time"

// SnapshotInfo describes one file inside the local autosave store:
// either a timestamped autosave snapshot or a named save.
// Snapshots are immutable once written; only the retention-pruning policy
// ever removes them.
type SnapshotInfo struct {
	// Name is the bare file name inside the store directory.
	Name string `json:"name"`

	// Path is the absolute path to the file.
	Path string `json:"path"`

	// ModifiedAt is the file's last-modification time. The store orders
	// snapshots by this value, newest first.
	ModifiedAt time.Time `json:"modified_at"`
}

// Snapshot is the content of a single local save together with the
// preferences that were recorded alongside it.
type Snapshot struct {
	// Content is the document text exactly as it was written.
	Content string `json:"content"`

	// BackgroundMode is the editor background preference recorded with the
	// snapshot. Defaults to "light" when preferences are missing or corrupt.
	BackgroundMode string `json:"background_mode"`
}
