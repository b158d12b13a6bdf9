package adapter

import (
	"context"

	"github.com/MKhiriev/script-writer/models"
)

// ServerAdapter is the desktop shell's client-side view of the sync backend
// REST API. Implementations hold the bearer token between calls; SetToken
// and Token are safe for concurrent use.
type ServerAdapter interface {
	// SetToken stores the bearer token used by authenticated requests.
	SetToken(token string)

	// Token returns the currently held bearer token, if any.
	Token() string

	// Register creates a password account and stores the returned token.
	Register(ctx context.Context, creds models.Credentials) (models.AuthResponse, error)

	// Login authenticates an existing account and stores the returned token.
	Login(ctx context.Context, creds models.Credentials) (models.AuthResponse, error)

	// ListScripts fetches the caller's full document set, most recent first.
	ListScripts(ctx context.Context) ([]models.Script, error)

	// UpsertScript stores one script and returns the server-side record,
	// including a synthesized id when the client supplied none.
	UpsertScript(ctx context.Context, script models.Script) (models.Script, error)

	// DeleteScript removes the caller's script and its child versions.
	DeleteScript(ctx context.Context, scriptID string) error

	// BulkSync pushes the full local document set and returns the per-item
	// outcome.
	BulkSync(ctx context.Context, scripts []models.Script) (models.SyncResult, error)

	// Health reports backend liveness and whether Google OAuth is enabled.
	Health(ctx context.Context) (models.HealthResponse, error)
}
