package workers

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/script-writer/internal/logger"
	"github.com/MKhiriev/script-writer/models"
)

type fixedSource struct {
	content        string
	backgroundMode string
}

func (s *fixedSource) CurrentDocument() (string, string) {
	return s.content, s.backgroundMode
}

type countingDocumentService struct {
	autosaves atomic.Int64
	err       error
}

func (c *countingDocumentService) Autosave(_, _ string) (models.SnapshotInfo, error) {
	c.autosaves.Add(1)
	return models.SnapshotInfo{}, c.err
}

func (c *countingDocumentService) SaveNamed(_, _ string) (models.SnapshotInfo, error) {
	return models.SnapshotInfo{}, nil
}

func (c *countingDocumentService) Restore() (models.Snapshot, error) {
	return models.Snapshot{}, nil
}

func (c *countingDocumentService) ListSaves() ([]models.SnapshotInfo, error) {
	return nil, nil
}

func (c *countingDocumentService) LoadSave(_ string) (string, error) { return "", nil }

func (c *countingDocumentService) StoreDir() string { return "" }

func (c *countingDocumentService) OpenStoreFolder() error { return nil }

func waitForAutosaves(t *testing.T, documents *countingDocumentService, want int64) {
	t.Helper()

	deadline := time.After(2 * time.Second)
	for documents.autosaves.Load() < want {
		select {
		case <-deadline:
			t.Fatalf("expected at least %d autosaves, got %d", want, documents.autosaves.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestAutosaveWorker_TicksWithDocument(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	documents := &countingDocumentService{}
	source := &fixedSource{content: "INT. ROOM - DAY", backgroundMode: models.BackgroundModeLight}

	worker := NewAutosaveWorker(ctx, documents, source, 10*time.Millisecond, logger.Nop())
	worker.Run()

	waitForAutosaves(t, documents, 3)
}

func TestAutosaveWorker_StopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	documents := &countingDocumentService{}
	worker := NewAutosaveWorker(ctx, documents, &fixedSource{content: "x"}, 10*time.Millisecond, logger.Nop())
	worker.Run()

	waitForAutosaves(t, documents, 1)
	cancel()

	// the loop must stop; allow in-flight ticks to drain first
	time.Sleep(30 * time.Millisecond)
	settled := documents.autosaves.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, settled, documents.autosaves.Load())
}

func TestAutosaveWorker_KeepsGoingAfterWriteFailure(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	documents := &countingDocumentService{err: errors.New("disk full")}
	worker := NewAutosaveWorker(ctx, documents, &fixedSource{content: "x"}, 10*time.Millisecond, logger.Nop())
	worker.Run()

	waitForAutosaves(t, documents, 3)
}

func TestNewAutosaveWorker_DefaultsInterval(t *testing.T) {
	worker := NewAutosaveWorker(context.Background(), &countingDocumentService{}, &fixedSource{}, 0, logger.Nop())
	assert.Equal(t, 30*time.Second, worker.interval)
}

func TestWorkers_RunsAll(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	first := &countingDocumentService{}
	second := &countingDocumentService{}
	source := &fixedSource{content: "x"}

	NewWorkers(
		NewAutosaveWorker(ctx, first, source, 10*time.Millisecond, logger.Nop()),
		NewAutosaveWorker(ctx, second, source, 10*time.Millisecond, logger.Nop()),
	).Run()

	waitForAutosaves(t, first, 1)
	waitForAutosaves(t, second, 1)
}
