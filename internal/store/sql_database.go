package store

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/script-writer/internal/config"
	"github.com/MKhiriev/script-writer/internal/logger"
	"github.com/MKhiriev/script-writer/migrations"
)

// DB wraps the shared *sql.DB handle together with everything the
// repositories need to stay driver-agnostic: the placeholder format used by
// squirrel ("$1" for PostgreSQL, "?" for SQLite) and a driver-specific
// error classifier.
//
// The handle is created once at process start and closed at shutdown; it is
// passed explicitly to each repository constructor.
type DB struct {
	*sql.DB
	driver             string
	builder            sq.StatementBuilderType
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// NewConnect opens a database connection for the configured driver.
// Supported drivers are "pgx" and "sqlite3".
func NewConnect(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	switch cfg.Driver {
	case "pgx":
		return NewConnectPostgres(ctx, cfg, log)
	case "sqlite3":
		return NewConnectSQLite(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", cfg.Driver)
	}
}

// Migrate brings the schema up to date for this connection's driver.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.driver)
}

// Builder returns a squirrel statement builder preconfigured with the
// placeholder format of the underlying driver.
func (db *DB) Builder() sq.StatementBuilderType {
	return db.builder
}
