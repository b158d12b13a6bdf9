package service

import (
	"github.com/MKhiriev/script-writer/internal/autosave"
	"github.com/MKhiriev/script-writer/internal/logger"
	"github.com/MKhiriev/script-writer/models"
)

// clientDocumentService adapts the local autosave store to the
// [ClientDocumentService] contract.
type clientDocumentService struct {
	store  *autosave.Store
	logger *logger.Logger
}

// NewClientDocumentService constructs a [ClientDocumentService] over the
// given local autosave store.
func NewClientDocumentService(store *autosave.Store, log *logger.Logger) ClientDocumentService {
	return &clientDocumentService{store: store, logger: log}
}

func (s *clientDocumentService) Autosave(content, backgroundMode string) (models.SnapshotInfo, error) {
	info, err := s.store.WriteSnapshot(content, backgroundMode)
	if err != nil {
		s.logger.Err(err).Msg("autosave failed")
		return models.SnapshotInfo{}, err
	}
	return info, nil
}

func (s *clientDocumentService) SaveNamed(name, content string) (models.SnapshotInfo, error) {
	return s.store.SaveNamed(name, content)
}

func (s *clientDocumentService) Restore() (models.Snapshot, error) {
	return s.store.LoadMostRecent()
}

func (s *clientDocumentService) ListSaves() ([]models.SnapshotInfo, error) {
	return s.store.ListAll()
}

func (s *clientDocumentService) LoadSave(path string) (string, error) {
	return s.store.LoadByPath(path)
}

func (s *clientDocumentService) StoreDir() string {
	return s.store.Dir()
}

func (s *clientDocumentService) OpenStoreFolder() error {
	return s.store.OpenInFileManager()
}
