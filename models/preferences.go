package models

// BackgroundModeLight is the default editor background when no preferences
// record exists or the record cannot be parsed.
const BackgroundModeLight = "light"

// Preferences is the singleton per-installation preferences record stored
// as a sidecar next to autosave snapshots. Last writer wins; the record is
// overwritten atomically alongside each autosave.
//
// The sidecar is deliberately separate from snapshot content so that a
// corrupt or missing preferences file can never prevent recovering the
// user's text.
type Preferences struct {
	// BackgroundMode is the editor background setting ("light", "dark", ...).
	BackgroundMode string `json:"backgroundMode"`

	// LastAutosave is the timestamp of the most recent autosave, in the same
	// filesystem-safe format used for snapshot file names.
	LastAutosave string `json:"lastAutosave"`
}
