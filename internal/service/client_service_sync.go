package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/script-writer/internal/adapter"
	"github.com/MKhiriev/script-writer/internal/logger"
	"github.com/MKhiriev/script-writer/models"
)

// clientSyncService pushes the local save set to the sync backend through
// the server adapter. It holds no state of its own; the adapter keeps the
// session token.
type clientSyncService struct {
	documents ClientDocumentService
	server    adapter.ServerAdapter
	logger    *logger.Logger
}

// NewClientSyncService constructs a [ClientSyncService] over the local
// document service and the server adapter.
func NewClientSyncService(documents ClientDocumentService, server adapter.ServerAdapter, log *logger.Logger) ClientSyncService {
	return &clientSyncService{
		documents: documents,
		server:    server,
		logger:    log,
	}
}

func (s *clientSyncService) Register(ctx context.Context, creds models.Credentials) (models.User, error) {
	resp, err := s.server.Register(ctx, creds)
	if err != nil {
		return models.User{}, fmt.Errorf("error registering on server: %w", err)
	}
	return resp.User, nil
}

func (s *clientSyncService) Login(ctx context.Context, creds models.Credentials) (models.User, error) {
	resp, err := s.server.Login(ctx, creds)
	if err != nil {
		return models.User{}, fmt.Errorf("error logging in on server: %w", err)
	}
	return resp.User, nil
}

// PushAll reads every save in the local store and uploads the whole set as
// one bulk sync batch. Files that cannot be read are skipped with a warning;
// the rest of the batch still goes out.
func (s *clientSyncService) PushAll(ctx context.Context) (models.SyncResult, error) {
	log := logger.FromContext(ctx)

	saves, err := s.documents.ListSaves()
	if err != nil {
		return models.SyncResult{}, fmt.Errorf("error listing local saves: %w", err)
	}

	scripts := make([]models.Script, 0, len(saves))
	for _, save := range saves {
		content, err := s.documents.LoadSave(save.Path)
		if err != nil {
			log.Warn().Err(err).Str("name", save.Name).Msg("skipping unreadable save")
			continue
		}

		scripts = append(scripts, models.Script{
			Name:        saveDisplayName(save.Name),
			Content:     content,
			DisplayDate: save.ModifiedAt.Format("1/2/2006, 3:04:05 PM"),
			SortTime:    save.ModifiedAt.UnixMilli(),
		})
	}

	result, err := s.server.BulkSync(ctx, scripts)
	if err != nil {
		return models.SyncResult{}, fmt.Errorf("error pushing saves to server: %w", err)
	}

	log.Info().Int("pushed", result.Synced).Int("failed", len(result.Errors)).Msg("local saves pushed")

	return result, nil
}

func (s *clientSyncService) Pull(ctx context.Context) ([]models.Script, error) {
	scripts, err := s.server.ListScripts(ctx)
	if err != nil {
		return nil, fmt.Errorf("error pulling scripts from server: %w", err)
	}
	return scripts, nil
}

func (s *clientSyncService) Health(ctx context.Context) (models.HealthResponse, error) {
	return s.server.Health(ctx)
}

// saveDisplayName strips the file extension so the cloud copy carries the
// name the user chose, not the on-disk file name.
func saveDisplayName(fileName string) string {
	return strings.TrimSuffix(fileName, ".txt")
}
