package tui

import (
	"github.com/MKhiriev/script-writer/models"
)

type savesLoadedMsg struct {
	saves []models.SnapshotInfo
	err   error
}

type saveLoadedMsg struct {
	content string
	err     error
}

type pushDoneMsg struct {
	result models.SyncResult
	err    error
}

type loginDoneMsg struct {
	user models.User
	err  error
}

type folderOpenedMsg struct {
	err error
}

type copiedMsg struct{}

type clearStatusMsg struct{}
