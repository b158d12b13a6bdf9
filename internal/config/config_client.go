package config

import (
	"fmt"
	"time"
)

// ClientAutosave holds local autosave store settings for the desktop shell.
type ClientAutosave struct {
	// Dir is the directory holding snapshots and the preferences sidecar.
	Dir string
	// MaxSnapshots caps how many autosave snapshots are retained.
	MaxSnapshots int
}

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// BaseURL is the sync backend base URL.
	BaseURL string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	// AutosaveInterval defines how often the autosave worker runs.
	AutosaveInterval time.Duration
}

// ClientConfig is the top-level desktop shell configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// Autosave contains local autosave store settings.
	Autosave ClientAutosave
	// Adapter contains client transport addresses and timeouts.
	Adapter ClientAdapter
	// Workers contains background job settings.
	Workers ClientWorkers
}

// GetClientConfig builds and validates a client-specific config view.
//
// It merges the same sources as [GetStructuredConfig] but skips server-only
// validation (the shell has no token sign key), maps only the fields
// relevant to the desktop runtime, and validates the resulting
// [ClientConfig].
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		buildUnvalidated()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		Autosave: ClientAutosave{
			Dir:          cfg.Autosave.Dir,
			MaxSnapshots: cfg.Autosave.MaxSnapshots,
		},
		Adapter: ClientAdapter{
			BaseURL:        cfg.Adapter.BaseURL,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Workers: ClientWorkers{AutosaveInterval: cfg.Workers.AutosaveInterval},
	}

	return clientCfg, clientCfg.validate()
}
