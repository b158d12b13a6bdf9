package service

import (
	"github.com/MKhiriev/script-writer/internal/adapter"
	"github.com/MKhiriev/script-writer/internal/autosave"
	"github.com/MKhiriev/script-writer/internal/logger"
)

type ClientServices struct {
	DocumentService ClientDocumentService
	SyncService     ClientSyncService
}

func NewClientServices(localStore *autosave.Store, serverAdapter adapter.ServerAdapter, log *logger.Logger) *ClientServices {
	documentSvc := NewClientDocumentService(localStore, log)

	return &ClientServices{
		DocumentService: documentSvc,
		SyncService:     NewClientSyncService(documentSvc, serverAdapter, log),
	}
}
