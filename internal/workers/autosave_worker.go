package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/script-writer/internal/logger"
	"github.com/MKhiriev/script-writer/internal/service"
)

// AutosaveWorker periodically snapshots the current document into the local
// autosave store. It runs until its context is cancelled.
type AutosaveWorker struct {
	documents service.ClientDocumentService
	source    DocumentSource
	interval  time.Duration
	logger    *logger.Logger

	ctx context.Context
}

// NewAutosaveWorker constructs an [AutosaveWorker] that snapshots the
// document from source every interval.
func NewAutosaveWorker(ctx context.Context, documents service.ClientDocumentService, source DocumentSource, interval time.Duration, log *logger.Logger) *AutosaveWorker {
	if interval <= 0 {
		interval = 30 * time.Second
	}

	return &AutosaveWorker{
		documents: documents,
		source:    source,
		interval:  interval,
		logger:    log,
		ctx:       ctx,
	}
}

// Run starts the autosave loop in a background goroutine and returns
// immediately. Empty documents are skipped by the store; write failures are
// logged and the loop keeps going.
func (w *AutosaveWorker) Run() {
	go func() {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		w.logger.Info().Dur("interval", w.interval).Msg("autosave worker started")

		for {
			select {
			case <-w.ctx.Done():
				w.logger.Info().Msg("autosave worker stopped")
				return
			case <-ticker.C:
				content, backgroundMode := w.source.CurrentDocument()
				if _, err := w.documents.Autosave(content, backgroundMode); err != nil {
					w.logger.Warn().Err(err).Msg("autosave tick failed")
				}
			}
		}
	}()
}
