package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/script-writer/internal/logger"
	"github.com/MKhiriev/script-writer/internal/store"
	"github.com/MKhiriev/script-writer/models"
)

// bulkSyncConcurrency caps how many items of one sync batch are written at
// the same time.
const bulkSyncConcurrency = 4

// scriptService is the persistence-facing implementation of [ScriptService].
type scriptService struct {
	scripts store.ScriptRepository
	logger  *logger.Logger

	now func() time.Time
}

// NewScriptService constructs a [ScriptService] backed by the given script
// repository.
func NewScriptService(scripts store.ScriptRepository, log *logger.Logger) ScriptService {
	log.Debug().Msg("creating script service")
	return &scriptService{
		scripts: scripts,
		logger:  log,
		now:     time.Now,
	}
}

// ListForUser returns every script the user owns, most recent first.
func (s *scriptService) ListForUser(ctx context.Context, userID int64) ([]models.Script, error) {
	scripts, err := s.scripts.ListByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing scripts: %w", err)
	}
	return scripts, nil
}

// Upsert stores the script under the caller's ownership, synthesizing an id
// from the millisecond clock when the client supplies none.
func (s *scriptService) Upsert(ctx context.Context, userID int64, script models.Script) (models.Script, error) {
	log := logger.FromContext(ctx)

	if script.Name == "" {
		return models.Script{}, fmt.Errorf("%w: script name is required", ErrInvalidDataProvided)
	}

	now := s.now()
	if script.ID == "" {
		script.ID = strconv.FormatInt(now.UnixMilli(), 10)
	} else {
		// An id supplied by the client may collide with a row that belongs
		// to someone else. Refuse to overwrite it rather than silently
		// transferring ownership.
		existing, err := s.scripts.FindByID(ctx, script.ID)
		switch {
		case err == nil:
			if existing.OwnerID != userID {
				return models.Script{}, ErrScriptOwnedByAnotherUser
			}
		case errors.Is(err, store.ErrScriptNotFound):
			// fresh id, nothing to check
		default:
			log.Err(err).Str("func", "*scriptService.Upsert").Str("script_id", script.ID).Msg("error checking script ownership")
			return models.Script{}, fmt.Errorf("error checking script ownership: %w", err)
		}
	}

	if script.DisplayDate == "" {
		script.DisplayDate = now.Format("1/2/2006, 3:04:05 PM")
	}
	if script.SortTime == 0 {
		script.SortTime = now.UnixMilli()
	}
	script.OwnerID = userID

	if err := s.scripts.Upsert(ctx, script); err != nil {
		return models.Script{}, fmt.Errorf("error upserting script: %w", err)
	}

	return script, nil
}

// Delete removes the caller's script, then removes its child versions as
// best-effort cleanup. A cascade failure leaves orphaned versions behind but
// never fails the parent deletion.
func (s *scriptService) Delete(ctx context.Context, userID int64, scriptID string) error {
	log := logger.FromContext(ctx)

	if scriptID == "" {
		return fmt.Errorf("%w: script id is required", ErrInvalidDataProvided)
	}

	affected, err := s.scripts.DeleteOwned(ctx, userID, scriptID)
	if err != nil {
		return fmt.Errorf("error deleting script: %w", err)
	}
	if affected == 0 {
		return store.ErrScriptNotFound
	}

	if err := s.scripts.DeleteChildren(ctx, scriptID); err != nil {
		log.Warn().Err(err).Str("script_id", scriptID).Msg("cascade delete of child versions failed")
	}

	return nil
}

// BulkSync applies Upsert to every element of the batch. Items are
// independent: one malformed or failed item is recorded per-id and does not
// stop the rest. The group wait is the barrier: the aggregate is only
// assembled after every item write has finished.
//
// Ids missing from the batch are synthesized before the write, with the item
// index folded in so one millisecond tick never produces colliding ids, and
// a failed item is always reported under the id the write ran with.
func (s *scriptService) BulkSync(ctx context.Context, userID int64, scripts []models.Script) models.SyncResult {
	var (
		mu     sync.Mutex
		result models.SyncResult
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(bulkSyncConcurrency)

	for i, script := range scripts {
		g.Go(func() error {
			item := script
			if item.ID == "" {
				item.ID = strconv.FormatInt(s.now().UnixMilli()+int64(i), 10)
			}

			if _, err := s.Upsert(gctx, userID, item); err != nil {
				mu.Lock()
				result.Errors = append(result.Errors, models.SyncItemError{ScriptID: item.ID, Error: err.Error()})
				mu.Unlock()
				return nil
			}

			mu.Lock()
			result.Synced++
			mu.Unlock()
			return nil
		})
	}

	// item errors are collected, never returned, so Wait cannot fail
	_ = g.Wait()

	return result
}
