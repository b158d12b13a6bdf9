package models

// Script is a user's text document, or a named version of one.
//
// A Script flagged with IsVersion is a historical copy of another Script,
// linked through ParentID. Orphaned versions (ParentID pointing at a deleted
// Script) are tolerated; the delete cascade is best-effort only.
type Script struct {
	// ID is an opaque identifier, unique per owner. It is chosen by the
	// client or synthesized by the server from the current time when absent.
	ID string `json:"id"`

	// OwnerID references the owning User. It is always taken from the
	// authenticated identity, never from client input.
	OwnerID int64 `json:"-"`

	// Name is the human-readable document title.
	Name string `json:"name"`

	// Content is the full document text.
	Content string `json:"content"`

	// DisplayDate is a human-readable save date shown in the document list.
	DisplayDate string `json:"date"`

	// SortTime orders documents most-recent-first. Typically a unix
	// millisecond timestamp supplied by the client.
	SortTime int64 `json:"time"`

	// IsVersion marks the Script as a historical copy of ParentID.
	IsVersion bool `json:"isVersion"`

	// ParentID references the Script this version belongs to, if any.
	ParentID *string `json:"parentId,omitempty"`

	// VersionID is an arbitrary grouping tag for versions, if any.
	VersionID *string `json:"versionId,omitempty"`
}

// TableName returns the name of the database table
// associated with the Script model.
func (s Script) TableName() string {
	return "scripts"
}
