package models

// Credentials is the request body for register and login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SyncRequest is the request body for bulk sync: the client's full local
// document set, pushed as-is. Elements are applied independently.
type SyncRequest struct {
	Scripts []Script `json:"scripts"`
}
