package models

import "time"

// User represents an account entity used for authentication and authorization.
// An account is created either by email/password registration or on the first
// successful Google sign-in; it always carries at least one usable credential
// (PasswordHash or OAuthSubject).
type User struct {
	// UserID is the internal unique identifier of the user.
	UserID int64 `json:"id"`

	// Email is the unique user identifier used during authentication.
	Email string `json:"email"`

	// PasswordHash stores the bcrypt hash of the user's password.
	// Nil for accounts created through OAuth that never set a password.
	// It is never exposed via JSON.
	PasswordHash *string `json:"-"`

	// OAuthSubject is the stable subject identifier ("sub" claim) assigned
	// by the external identity provider. Nil for password-only accounts.
	OAuthSubject *string `json:"-"`

	// Name is the display name of the user. May be shown in UI.
	Name string `json:"name,omitempty"`

	// AvatarURL is the profile picture URL supplied by the identity provider.
	AvatarURL string `json:"picture,omitempty"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at,omitzero"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// HasPassword reports whether the account carries a password credential.
func (u User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}
