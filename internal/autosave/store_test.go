package autosave

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/script-writer/internal/config"
	"github.com/MKhiriev/script-writer/internal/logger"
	"github.com/MKhiriev/script-writer/models"
)

func newTestStore(t *testing.T, maxSnapshots int) *Store {
	t.Helper()

	store, err := NewStore(config.ClientAutosave{
		Dir:          t.TempDir(),
		MaxSnapshots: maxSnapshots,
	}, logger.Nop())
	require.NoError(t, err)
	return store
}

func TestNewStore_RequiresDir(t *testing.T) {
	_, err := NewStore(config.ClientAutosave{}, logger.Nop())
	assert.Error(t, err)
}

func TestNewStore_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "saves")

	store, err := NewStore(config.ClientAutosave{Dir: dir, MaxSnapshots: 10}, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, dir, store.Dir())
	assert.DirExists(t, dir)
}

func TestWriteSnapshot_NamesFileByTimestamp(t *testing.T) {
	store := newTestStore(t, 10)
	store.now = func() time.Time {
		return time.Date(2026, time.January, 2, 15, 4, 5, 123000000, time.UTC)
	}

	info, err := store.WriteSnapshot("INT. ROOM - DAY", models.BackgroundModeLight)
	require.NoError(t, err)

	assert.Equal(t, "autosave_2026-01-02T15-04-05-123Z.txt", info.Name)
	assert.FileExists(t, info.Path)

	data, err := os.ReadFile(info.Path)
	require.NoError(t, err)
	assert.Equal(t, "INT. ROOM - DAY", string(data))
}

func TestWriteSnapshot_SkipsEmptyDocument(t *testing.T) {
	store := newTestStore(t, 10)

	for _, content := range []string{"", "   ", "\n\t"} {
		info, err := store.WriteSnapshot(content, models.BackgroundModeLight)
		require.NoError(t, err)
		assert.Zero(t, info)
	}

	infos, err := store.ListAll()
	require.NoError(t, err)
	assert.Empty(t, infos)
}

func TestWriteSnapshot_RecordsPreferences(t *testing.T) {
	store := newTestStore(t, 10)

	_, err := store.WriteSnapshot("content", "dark")
	require.NoError(t, err)

	snapshot, err := store.LoadMostRecent()
	require.NoError(t, err)
	assert.Equal(t, "dark", snapshot.BackgroundMode)
	assert.Equal(t, "content", snapshot.Content)
}

func TestSaveNamed(t *testing.T) {
	store := newTestStore(t, 10)

	info, err := store.SaveNamed("my screenplay", "FADE IN:")
	require.NoError(t, err)
	assert.Equal(t, "my screenplay.txt", info.Name)

	data, err := os.ReadFile(info.Path)
	require.NoError(t, err)
	assert.Equal(t, "FADE IN:", string(data))
}

func TestSaveNamed_KeepsExistingExtension(t *testing.T) {
	store := newTestStore(t, 10)

	info, err := store.SaveNamed("draft.txt", "content")
	require.NoError(t, err)
	assert.Equal(t, "draft.txt", info.Name)
}

func TestSaveNamed_RejectsEmptyName(t *testing.T) {
	store := newTestStore(t, 10)

	_, err := store.SaveNamed("   ", "content")
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestSaveNamed_StripsDirectoryComponents(t *testing.T) {
	store := newTestStore(t, 10)

	info, err := store.SaveNamed("../escape", "content")
	require.NoError(t, err)

	assert.Equal(t, filepath.Clean(store.Dir()), filepath.Dir(info.Path))
	assert.NoFileExists(t, filepath.Join(filepath.Dir(store.Dir()), "escape.txt"))
}

func TestListAll_NewestFirstAndSkipsSidecar(t *testing.T) {
	store := newTestStore(t, 10)

	older, err := store.SaveNamed("older", "a")
	require.NoError(t, err)
	newer, err := store.SaveNamed("newer", "b")
	require.NoError(t, err)

	// distinct mtimes regardless of filesystem timestamp granularity
	now := time.Now()
	require.NoError(t, os.Chtimes(older.Path, now.Add(-time.Hour), now.Add(-time.Hour)))
	require.NoError(t, os.Chtimes(newer.Path, now, now))

	// sidecar present but never listed
	_, err = store.WriteSnapshot("autosaved", models.BackgroundModeLight)
	require.NoError(t, err)

	infos, err := store.ListAll()
	require.NoError(t, err)

	names := make([]string, 0, len(infos))
	for _, info := range infos {
		names = append(names, info.Name)
	}
	assert.NotContains(t, names, "preferences.json")
	require.Len(t, infos, 3)
	assert.True(t, infos[0].ModifiedAt.After(infos[2].ModifiedAt) || infos[0].ModifiedAt.Equal(infos[2].ModifiedAt))
}

func TestListAll_SkipsForeignFiles(t *testing.T) {
	store := newTestStore(t, 10)

	save, err := store.SaveNamed("draft", "content")
	require.NoError(t, err)

	for _, name := range []string{".draft.txt.swp", "notes.md", ".DS_Store"} {
		require.NoError(t, os.WriteFile(filepath.Join(store.Dir(), name), []byte("foreign"), 0o644))
	}

	infos, err := store.ListAll()
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, save.Name, infos[0].Name)
}

func TestLoadMostRecent_EmptyStore(t *testing.T) {
	store := newTestStore(t, 10)

	snapshot, err := store.LoadMostRecent()
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
	assert.Empty(t, snapshot.Content)
	assert.Equal(t, models.BackgroundModeLight, snapshot.BackgroundMode, "preferences still apply on a fresh start")
}

func TestLoadMostRecent_IgnoresNamedSaves(t *testing.T) {
	store := newTestStore(t, 10)

	_, err := store.SaveNamed("named only", "named content")
	require.NoError(t, err)

	snapshot, err := store.LoadMostRecent()
	assert.ErrorIs(t, err, ErrSnapshotNotFound, "named saves must not be restored as the working document")
	assert.Empty(t, snapshot.Content)
}

func TestLoadMostRecent_CorruptPreferencesDegradeToDefaults(t *testing.T) {
	store := newTestStore(t, 10)

	_, err := store.WriteSnapshot("content", "dark")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(store.Dir(), "preferences.json"), []byte("{corrupt"), 0o644))

	snapshot, err := store.LoadMostRecent()
	require.NoError(t, err)
	assert.Equal(t, models.BackgroundModeLight, snapshot.BackgroundMode)
	assert.Equal(t, "content", snapshot.Content)
}

func TestLoadByPath(t *testing.T) {
	store := newTestStore(t, 10)

	info, err := store.SaveNamed("draft", "FADE IN:")
	require.NoError(t, err)

	content, err := store.LoadByPath(info.Path)
	require.NoError(t, err)
	assert.Equal(t, "FADE IN:", content)
}

func TestLoadByPath_OutsideStoreDir(t *testing.T) {
	store := newTestStore(t, 10)

	outside := filepath.Join(t.TempDir(), "secret.txt")
	require.NoError(t, os.WriteFile(outside, []byte("secret"), 0o644))

	_, err := store.LoadByPath(outside)
	assert.ErrorIs(t, err, ErrSnapshotNotFound)

	_, err = store.LoadByPath(filepath.Join(store.Dir(), "..", "secret.txt"))
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
}

func TestLoadByPath_Missing(t *testing.T) {
	store := newTestStore(t, 10)

	_, err := store.LoadByPath(filepath.Join(store.Dir(), "ghost.txt"))
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
}

func TestPrune_CapsAutosavesOnly(t *testing.T) {
	store := newTestStore(t, 3)

	named, err := store.SaveNamed("keep me", "named")
	require.NoError(t, err)

	base := time.Date(2026, time.January, 2, 12, 0, 0, 0, time.UTC)
	var paths []string
	for i := 0; i < 5; i++ {
		stamp := base.Add(time.Duration(i) * time.Minute)
		store.now = func() time.Time { return stamp }

		info, err := store.WriteSnapshot("take "+stamp.String(), models.BackgroundModeLight)
		require.NoError(t, err)
		paths = append(paths, info.Path)
		require.NoError(t, os.Chtimes(info.Path, stamp, stamp))
	}

	require.NoError(t, store.Prune())

	assert.NoFileExists(t, paths[0])
	assert.NoFileExists(t, paths[1])
	assert.FileExists(t, paths[2])
	assert.FileExists(t, paths[3])
	assert.FileExists(t, paths[4])
	assert.FileExists(t, named.Path, "named saves must never be pruned")
}

func TestPrune_DisabledWhenCapIsZero(t *testing.T) {
	store := newTestStore(t, 0)

	base := time.Date(2026, time.January, 2, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		stamp := base.Add(time.Duration(i) * time.Minute)
		store.now = func() time.Time { return stamp }
		_, err := store.WriteSnapshot("take", models.BackgroundModeLight)
		require.NoError(t, err)
	}

	infos, err := store.ListAll()
	require.NoError(t, err)
	assert.Len(t, infos, 5)
}

func TestFilesystemTimestamp(t *testing.T) {
	stamp := filesystemTimestamp(time.Date(2026, time.January, 2, 15, 4, 5, 123000000, time.UTC))

	assert.Equal(t, "2026-01-02T15-04-05-123Z", stamp)
	assert.False(t, strings.ContainsAny(stamp, ":/."))
}
