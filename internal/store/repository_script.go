// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/script-writer/internal/logger"
	"github.com/MKhiriev/script-writer/models"
)

const scriptColumns = "id, owner_id, name, content, display_date, sort_time, is_version, parent_id, version_id"

// scriptRepository is the SQL-backed implementation of [ScriptRepository].
// Writes are plain insert-or-replace statements; the backing store
// serializes them internally and the later write wins, which is the
// accepted reconciliation model for this application.
type scriptRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewScriptRepository constructs a [ScriptRepository] backed by the provided
// database connection and logger.
func NewScriptRepository(db *DB, logger *logger.Logger) ScriptRepository {
	logger.Debug().Msg("creating script repository")
	return &scriptRepository{
		db:     db,
		logger: logger,
	}
}

// ListByOwner returns every script belonging to ownerID, most recent first.
// The caller holds the full set; there is no pagination.
func (r *scriptRepository) ListByOwner(ctx context.Context, ownerID int64) ([]models.Script, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.Builder().
		Select(scriptColumns).
		From(models.Script{}.TableName()).
		Where("owner_id = ?", ownerID).
		OrderBy("sort_time DESC").
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*scriptRepository.ListByOwner").Msg("error building select query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*scriptRepository.ListByOwner").Msg("error listing scripts")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	scripts := make([]models.Script, 0)
	for rows.Next() {
		var s models.Script
		if err := scanScript(rows, &s); err != nil {
			log.Err(err).Str("func", "*scriptRepository.ListByOwner").Msg("error scanning script row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		scripts = append(scripts, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return scripts, nil
}

// FindByID returns the script with the given id regardless of owner.
// The service layer uses it to detect cross-owner id collisions before an
// upsert takes effect.
func (r *scriptRepository) FindByID(ctx context.Context, id string) (models.Script, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.Builder().
		Select(scriptColumns).
		From(models.Script{}.TableName()).
		Where("id = ?", id).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*scriptRepository.FindByID").Msg("error building select query")
		return models.Script{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var s models.Script
	row := r.db.QueryRowContext(ctx, query, args...)
	if err := scanScript(row, &s); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Script{}, ErrScriptNotFound
		}

		log.Err(err).Str("func", "*scriptRepository.FindByID").Msg("error scanning script row")
		return models.Script{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return s, nil
}

// Upsert inserts the script or unconditionally replaces an existing row with
// the same id. Both backends understand the "excluded" pseudo-table, so the
// statement is shared.
func (r *scriptRepository) Upsert(ctx context.Context, script models.Script) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.Builder().
		Insert(script.TableName()).
		Columns("id", "owner_id", "name", "content", "display_date", "sort_time", "is_version", "parent_id", "version_id").
		Values(script.ID, script.OwnerID, script.Name, script.Content, script.DisplayDate,
			script.SortTime, script.IsVersion, script.ParentID, script.VersionID).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			owner_id     = excluded.owner_id,
			name         = excluded.name,
			content      = excluded.content,
			display_date = excluded.display_date,
			sort_time    = excluded.sort_time,
			is_version   = excluded.is_version,
			parent_id    = excluded.parent_id,
			version_id   = excluded.version_id`).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*scriptRepository.Upsert").Msg("error building upsert query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*scriptRepository.Upsert").Str("script_id", script.ID).Msg("error upserting script")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// DeleteOwned deletes the script only when it belongs to ownerID and
// reports how many rows were affected (zero means not found).
func (r *scriptRepository) DeleteOwned(ctx context.Context, ownerID int64, scriptID string) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.Builder().
		Delete(models.Script{}.TableName()).
		Where("id = ? AND owner_id = ?", scriptID, ownerID).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*scriptRepository.DeleteOwned").Msg("error building delete query")
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*scriptRepository.DeleteOwned").Str("script_id", scriptID).Msg("error deleting script")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return affected, nil
}

// DeleteChildren deletes every script whose parent_id equals scriptID,
// regardless of the versions' nominal owner column. The cascade is
// best-effort cleanup: the caller swallows any error.
func (r *scriptRepository) DeleteChildren(ctx context.Context, scriptID string) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.Builder().
		Delete(models.Script{}.TableName()).
		Where("parent_id = ?", scriptID).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*scriptRepository.DeleteChildren").Msg("error building delete query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*scriptRepository.DeleteChildren").Str("parent_id", scriptID).Msg("error deleting child versions")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanScript(row rowScanner, s *models.Script) error {
	return row.Scan(&s.ID, &s.OwnerID, &s.Name, &s.Content, &s.DisplayDate,
		&s.SortTime, &s.IsVersion, &s.ParentID, &s.VersionID)
}
