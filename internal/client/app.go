package client

import (
	"context"
	"errors"
	"sync"

	"github.com/MKhiriev/script-writer/internal/autosave"
	"github.com/MKhiriev/script-writer/internal/config"
	"github.com/MKhiriev/script-writer/internal/logger"
	"github.com/MKhiriev/script-writer/internal/service"
	"github.com/MKhiriev/script-writer/internal/tui"
	"github.com/MKhiriev/script-writer/internal/workers"
	"github.com/MKhiriev/script-writer/models"
)

// App owns the desktop shell lifecycle: it restores the last session
// document, keeps the autosave worker fed, and runs the terminal UI until
// the user quits.
type App struct {
	services   *service.ClientServices
	ui         *tui.TUI
	workersCfg config.ClientWorkers
	logger     *logger.Logger

	mu       sync.RWMutex
	document models.Snapshot
}

func NewApp(services *service.ClientServices, ui *tui.TUI, workersCfg config.ClientWorkers, log *logger.Logger) (*App, error) {
	return &App{
		services:   services,
		ui:         ui,
		workersCfg: workersCfg,
		logger:     log,
	}, nil
}

// Run restores the most recent autosave into the session document, starts
// the background workers, and blocks in the UI until the user quits.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	snapshot, err := a.services.DocumentService.Restore()
	switch {
	case errors.Is(err, autosave.ErrSnapshotNotFound):
		a.logger.Debug().Msg("no previous session, starting with an empty document")
	case err != nil:
		a.logger.Warn().Err(err).Msg("error restoring last session")
	}
	a.SetDocument(snapshot.Content, snapshot.BackgroundMode)

	if health, err := a.services.SyncService.Health(ctx); err != nil {
		a.logger.Warn().Err(err).Msg("sync backend unavailable, working offline")
	} else {
		a.logger.Info().Bool("oauth_enabled", health.OAuthEnabled).Msg("sync backend reachable")
	}

	autosaveWorker := workers.NewAutosaveWorker(ctx, a.services.DocumentService, a, a.workersCfg.AutosaveInterval, a.logger)
	workers.NewWorkers(autosaveWorker).Run()

	return a.ui.Run(ctx)
}

// SetDocument replaces the session document fed to the autosave worker.
func (a *App) SetDocument(content, backgroundMode string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.document = models.Snapshot{Content: content, BackgroundMode: backgroundMode}
}

// CurrentDocument implements [workers.DocumentSource].
func (a *App) CurrentDocument() (string, string) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.document.Content, a.document.BackgroundMode
}
