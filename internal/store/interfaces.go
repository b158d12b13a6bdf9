package store

import (
	"context"

	"github.com/MKhiriev/script-writer/models"
)

// UserRepository is the persistence contract for user accounts.
type UserRepository interface {
	// CreateUser persists a new account and returns it with server-assigned
	// fields (UserID, CreatedAt) populated.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByEmail retrieves an account by its unique email.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)

	// FindUserByOAuthSubjectOrEmail retrieves an account matched either by
	// the identity provider's subject id or by email. Used by the OAuth
	// callback to link an external identity to an existing account.
	FindUserByOAuthSubjectOrEmail(ctx context.Context, subject, email string) (models.User, error)

	// AttachOAuthIdentity backfills the OAuth subject, display name and
	// avatar on an existing account that previously had none.
	AttachOAuthIdentity(ctx context.Context, userID int64, subject, name, avatarURL string) error
}

// ScriptRepository is the persistence contract for user documents.
type ScriptRepository interface {
	// ListByOwner returns every script belonging to ownerID ordered by
	// sort_time descending (most recent first).
	ListByOwner(ctx context.Context, ownerID int64) ([]models.Script, error)

	// FindByID returns the script with the given id regardless of owner.
	// Returns ErrScriptNotFound when no row matches.
	FindByID(ctx context.Context, id string) (models.Script, error)

	// Upsert inserts the script or unconditionally replaces an existing row
	// with the same id (last write wins).
	Upsert(ctx context.Context, script models.Script) error

	// DeleteOwned deletes the script only when it belongs to ownerID and
	// reports how many rows were affected.
	DeleteOwned(ctx context.Context, ownerID int64, scriptID string) (int64, error)

	// DeleteChildren deletes every script whose parent_id equals scriptID.
	// Best-effort housekeeping for the delete cascade.
	DeleteChildren(ctx context.Context, scriptID string) error
}

// ErrorClassificator translates driver-specific errors into the categories
// repositories branch on, keeping the repository code backend-agnostic.
type ErrorClassificator interface {
	// IsUniqueViolation reports whether err was caused by a unique
	// constraint violation (duplicate email, duplicate OAuth subject).
	IsUniqueViolation(err error) bool
}
