package service

import (
	"context"

	"github.com/MKhiriev/script-writer/models"
)

// ClientDocumentService defines the desktop shell's contract for working
// with the local autosave store: periodic snapshots, named saves, and
// recovery of the most recent document.
type ClientDocumentService interface {
	// Autosave snapshots the current document into the local store and
	// records the editor preferences alongside it. Empty documents are
	// skipped silently.
	Autosave(content, backgroundMode string) (models.SnapshotInfo, error)

	// SaveNamed writes the document under a user-chosen file name.
	SaveNamed(name, content string) (models.SnapshotInfo, error)

	// Restore returns the most recent autosave together with the recorded
	// preferences. Missing or corrupt preferences degrade to defaults; a
	// store with no autosaves yields [autosave.ErrSnapshotNotFound].
	Restore() (models.Snapshot, error)

	// ListSaves returns every save in the local store, newest first.
	ListSaves() ([]models.SnapshotInfo, error)

	// LoadSave reads one save file from the local store.
	LoadSave(path string) (string, error)

	// StoreDir returns the local store directory.
	StoreDir() string

	// OpenStoreFolder opens the local store directory in the platform file
	// manager.
	OpenStoreFolder() error
}

// ClientSyncService defines the desktop shell's contract for talking to the
// sync backend: account flows and pushing/pulling the document set.
type ClientSyncService interface {
	// Register creates a cloud account and holds the session token for
	// subsequent calls.
	Register(ctx context.Context, creds models.Credentials) (models.User, error)

	// Login authenticates against the cloud account and holds the session
	// token for subsequent calls.
	Login(ctx context.Context, creds models.Credentials) (models.User, error)

	// PushAll uploads every local save as one bulk sync batch and returns
	// the per-item outcome.
	PushAll(ctx context.Context) (models.SyncResult, error)

	// Pull fetches the caller's cloud document set, most recent first.
	Pull(ctx context.Context) ([]models.Script, error)

	// Health reports backend liveness and whether Google sign-in is
	// available.
	Health(ctx context.Context) (models.HealthResponse, error)
}
