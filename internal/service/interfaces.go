package service

import (
	"context"

	"github.com/MKhiriev/script-writer/models"
)

// AuthService resolves login credentials to a stable user record and owns
// the session token lifecycle.
type AuthService interface {
	// Register creates a new password account. The password must be at
	// least 6 characters; the stored value is an irreversible salted hash.
	Register(ctx context.Context, creds models.Credentials) (models.User, error)

	// Login authenticates an existing account by email and password.
	Login(ctx context.Context, creds models.Credentials) (models.User, error)

	// CreateToken issues a signed session token for the given user.
	CreateToken(ctx context.Context, user models.User) (models.Token, error)

	// ParseToken validates a presented token (signature, issuer, expiry)
	// and yields the identity it carries.
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// OAuthService resolves a Google authorization code to a user record,
// creating or backfilling the account as needed.
type OAuthService interface {
	// Enabled reports whether Google OAuth credentials are configured.
	Enabled() bool

	// AuthCodeURL returns the provider URL the client should open to start
	// the consent flow.
	AuthCodeURL(ctx context.Context) (string, error)

	// ResolveIdentity exchanges the authorization code for a verified
	// identity and maps it onto a user record, creating one when absent.
	ResolveIdentity(ctx context.Context, code string) (models.User, error)
}

// ScriptService implements the document reconciliation rules: list, upsert,
// owned delete with best-effort cascade, and barrier-style bulk sync.
type ScriptService interface {
	// ListForUser returns the caller's full document set, most recent first.
	ListForUser(ctx context.Context, userID int64) ([]models.Script, error)

	// Upsert stores the script under the caller's ownership, synthesizing
	// an id when the client supplied none, and returns the stored record.
	Upsert(ctx context.Context, userID int64, script models.Script) (models.Script, error)

	// Delete removes the caller's script and attempts to remove its child
	// versions. Returns store.ErrScriptNotFound when nothing matched.
	Delete(ctx context.Context, userID int64, scriptID string) error

	// BulkSync applies Upsert to every element independently and reports
	// the aggregate only after all items have been attempted.
	BulkSync(ctx context.Context, userID int64, scripts []models.Script) models.SyncResult
}

// IdentityExchanger is the opaque "exchange code for verified identity"
// boundary in front of the external provider.
type IdentityExchanger interface {
	// AuthCodeURL builds the provider consent URL for the given state.
	AuthCodeURL(ctx context.Context, state string) (string, error)

	// Exchange trades an authorization code for a verified identity
	// assertion.
	Exchange(ctx context.Context, code string) (OAuthIdentity, error)
}

// OAuthIdentity is the verified identity assertion returned by the external
// provider after a successful code exchange.
type OAuthIdentity struct {
	Subject   string
	Email     string
	Name      string
	AvatarURL string
}
