package autosave

import "errors"

var (
	// ErrSnapshotNotFound is returned when a requested save file does not
	// exist inside the store directory.
	ErrSnapshotNotFound = errors.New("snapshot not found")

	// ErrEmptyName is returned by SaveNamed when the caller supplied no
	// file name.
	ErrEmptyName = errors.New("save name is required")
)
