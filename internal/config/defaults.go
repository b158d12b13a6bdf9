package config

import (
	"os"
	"path/filepath"
	"time"
)

// Defaults applied when no other configuration source sets a value.
const (
	DefaultHTTPAddress      = "localhost:3000"
	DefaultDBDriver         = "sqlite3"
	DefaultDBDSN            = "database.sqlite"
	DefaultTokenIssuer      = "script-writer"
	DefaultTokenDuration    = 30 * 24 * time.Hour
	DefaultRequestTimeout   = 30 * time.Second
	DefaultMaxSnapshots     = 50
	DefaultAutosaveInterval = 30 * time.Second
	DefaultAdapterTimeout   = 15 * time.Second
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		Auth: Auth{
			TokenIssuer:   DefaultTokenIssuer,
			TokenDuration: DefaultTokenDuration,
		},
		Storage: Storage{
			DB: DB{
				Driver: DefaultDBDriver,
				DSN:    DefaultDBDSN,
			},
		},
		Server: Server{
			HTTPAddress:    DefaultHTTPAddress,
			RequestTimeout: DefaultRequestTimeout,
		},
		Autosave: Autosave{
			Dir:          defaultAutosaveDir(),
			MaxSnapshots: DefaultMaxSnapshots,
		},
		Adapter: Adapter{
			BaseURL:        "http://" + DefaultHTTPAddress,
			RequestTimeout: DefaultAdapterTimeout,
		},
		Workers: Workers{
			AutosaveInterval: DefaultAutosaveInterval,
		},
	}
}

// defaultAutosaveDir places the store under the user's document area, the
// same location the desktop application has always used.
func defaultAutosaveDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "Script Writer Autosaves"
	}
	return filepath.Join(home, "Documents", "Script Writer Autosaves")
}
