package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/script-writer/internal/config"
	"github.com/MKhiriev/script-writer/internal/logger"
)

// Storages aggregates every repository the service layer depends on.
type Storages struct {
	UserRepository   UserRepository
	ScriptRepository ScriptRepository

	db *DB
}

// NewStorages connects to the configured database, applies pending
// migrations, and wires the repositories. The returned handle is created
// once at process start; Close releases it at shutdown.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnect(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("error migrating database: %w", err)
	}

	return &Storages{
		UserRepository:   NewUserRepository(db, log),
		ScriptRepository: NewScriptRepository(db, log),
		db:               db,
	}, nil
}

// Close releases the underlying database handle.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
