package models

// AuthResponse is returned by register, login, and the OAuth callback.
// All three success paths mint a session token for the resolved account.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// SyncItemError describes one failed element of a bulk sync batch.
type SyncItemError struct {
	// ScriptID is the identifier of the element that failed, after server-side
	// id synthesis if the client supplied none.
	ScriptID string `json:"scriptId"`

	// Error is a short human-readable description of the failure.
	Error string `json:"error"`
}

// SyncResult aggregates the outcome of a bulk sync. It is reported only
// after every item in the batch has been attempted; one element's failure
// never aborts the rest.
type SyncResult struct {
	// Synced is the number of scripts stored successfully.
	Synced int `json:"synced"`

	// Errors lists per-item failures. Omitted when the whole batch succeeded.
	Errors []SyncItemError `json:"errors,omitempty"`
}

// DeleteResult reports the outcome of a script deletion.
type DeleteResult struct {
	Deleted bool `json:"deleted"`
}

// HealthResponse reports service liveness and whether Google OAuth is
// configured on this deployment.
type HealthResponse struct {
	Status       string `json:"status"`
	OAuthEnabled bool   `json:"oauthEnabled"`
}
