package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrInvalidCredentials is deliberately generic: a login attempt with an
	// unknown email and one with a wrong password must be indistinguishable
	// to the caller.
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	// ErrScriptOwnedByAnotherUser is returned when an upsert targets an id
	// that already belongs to a different account.
	ErrScriptOwnedByAnotherUser = errors.New("script id belongs to another user")

	// ErrOAuthNotConfigured is returned by OAuth operations when no Google
	// client credentials are configured on this deployment.
	ErrOAuthNotConfigured = errors.New("google oauth is not configured")

	// ErrUpstreamAuth wraps failures of the external identity provider
	// exchange (code exchange, id token verification).
	ErrUpstreamAuth = errors.New("identity provider exchange failed")
)
