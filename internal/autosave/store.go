// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package autosave implements the local snapshot store used by the desktop
// shell: timestamped autosave files, named saves, a preferences sidecar and
// retention pruning. Every snapshot is a plain text file, so the store stays
// recoverable with nothing but a file manager.
package autosave

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/MKhiriev/script-writer/internal/config"
	"github.com/MKhiriev/script-writer/internal/logger"
	"github.com/MKhiriev/script-writer/models"
)

const (
	autosavePrefix  = "autosave_"
	snapshotExt     = ".txt"
	preferencesFile = "preferences.json"
	dirPermissions  = 0o755
	filePermissions = 0o644
)

// Store is the local autosave store rooted at a single directory.
//
// All methods are safe for sequential use by one process; the desktop shell
// is the only writer. The preferences sidecar is last-writer-wins.
type Store struct {
	dir          string
	maxSnapshots int
	logger       *logger.Logger

	now func() time.Time
}

// NewStore constructs a [Store] for the configured directory and ensures the
// directory exists.
func NewStore(cfg config.ClientAutosave, log *logger.Logger) (*Store, error) {
	if cfg.Dir == "" {
		return nil, errors.New("autosave directory is required")
	}
	if err := os.MkdirAll(cfg.Dir, dirPermissions); err != nil {
		return nil, fmt.Errorf("error creating autosave directory: %w", err)
	}

	log.Debug().Str("dir", cfg.Dir).Int("max_snapshots", cfg.MaxSnapshots).Msg("autosave store ready")

	return &Store{
		dir:          cfg.Dir,
		maxSnapshots: cfg.MaxSnapshots,
		logger:       log,
	}, nil
}

// Dir returns the absolute store directory.
func (s *Store) Dir() string {
	return s.dir
}

// WriteSnapshot writes the document as a new timestamped autosave file,
// updates the preferences sidecar, and prunes old snapshots beyond the
// retention cap. Returns the info of the file just written.
//
// An empty document is skipped: the caller gets a zero info and no error,
// and nothing is written.
func (s *Store) WriteSnapshot(content, backgroundMode string) (models.SnapshotInfo, error) {
	if strings.TrimSpace(content) == "" {
		return models.SnapshotInfo{}, nil
	}

	stamp := filesystemTimestamp(s.clock()())
	name := autosavePrefix + stamp + snapshotExt
	path := filepath.Join(s.dir, name)

	if err := os.WriteFile(path, []byte(content), filePermissions); err != nil {
		return models.SnapshotInfo{}, fmt.Errorf("error writing snapshot: %w", err)
	}

	if err := s.writePreferences(models.Preferences{
		BackgroundMode: backgroundMode,
		LastAutosave:   stamp,
	}); err != nil {
		s.logger.Warn().Err(err).Msg("error writing preferences sidecar")
	}

	if err := s.Prune(); err != nil {
		s.logger.Warn().Err(err).Msg("error pruning old snapshots")
	}

	info, err := os.Stat(path)
	if err != nil {
		return models.SnapshotInfo{}, fmt.Errorf("error reading snapshot info: %w", err)
	}

	return models.SnapshotInfo{Name: name, Path: path, ModifiedAt: info.ModTime()}, nil
}

// SaveNamed writes the document under a user-chosen file name. The ".txt"
// extension is appended when missing. Named saves count against the same
// retention policy as autosaves only if they carry the autosave prefix,
// which user-chosen names never do.
func (s *Store) SaveNamed(name, content string) (models.SnapshotInfo, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.SnapshotInfo{}, ErrEmptyName
	}
	if !strings.HasSuffix(name, snapshotExt) {
		name += snapshotExt
	}

	path := filepath.Join(s.dir, filepath.Base(name))
	if err := os.WriteFile(path, []byte(content), filePermissions); err != nil {
		return models.SnapshotInfo{}, fmt.Errorf("error writing named save: %w", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return models.SnapshotInfo{}, fmt.Errorf("error reading save info: %w", err)
	}

	return models.SnapshotInfo{Name: filepath.Base(name), Path: path, ModifiedAt: info.ModTime()}, nil
}

// ListAll returns every save in the store, newest first. Only plain-text
// saves are listed; the preferences sidecar and any foreign files that end
// up in the directory (editor swap files, OS metadata) are ignored.
func (s *Store) ListAll() ([]models.SnapshotInfo, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("error reading autosave directory: %w", err)
	}

	infos := make([]models.SnapshotInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), snapshotExt) {
			continue
		}

		fileInfo, err := entry.Info()
		if err != nil {
			s.logger.Warn().Err(err).Str("name", entry.Name()).Msg("error reading file info")
			continue
		}

		infos = append(infos, models.SnapshotInfo{
			Name:       entry.Name(),
			Path:       filepath.Join(s.dir, entry.Name()),
			ModifiedAt: fileInfo.ModTime(),
		})
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].ModifiedAt.After(infos[j].ModifiedAt)
	})

	return infos, nil
}

// LoadMostRecent returns the newest autosave snapshot together with the
// recorded preferences. A missing or corrupt preferences sidecar degrades
// to the "light" background; it never fails the load. When the store holds
// no autosaves at all, [ErrSnapshotNotFound] is returned alongside the
// default preferences, so the caller can still honor them on a fresh start.
func (s *Store) LoadMostRecent() (models.Snapshot, error) {
	snapshot := models.Snapshot{BackgroundMode: models.BackgroundModeLight}

	if prefs, err := s.readPreferences(); err == nil && prefs.BackgroundMode != "" {
		snapshot.BackgroundMode = prefs.BackgroundMode
	}

	infos, err := s.ListAll()
	if err != nil {
		return snapshot, err
	}

	for _, info := range infos {
		if !strings.HasPrefix(info.Name, autosavePrefix) {
			continue
		}

		data, err := os.ReadFile(info.Path)
		if err != nil {
			return snapshot, fmt.Errorf("error reading snapshot: %w", err)
		}
		snapshot.Content = string(data)
		return snapshot, nil
	}

	return snapshot, ErrSnapshotNotFound
}

// LoadByPath reads a single save file. The path must point inside the store
// directory; anything else is treated as not found.
func (s *Store) LoadByPath(path string) (string, error) {
	cleaned := filepath.Clean(path)
	if filepath.Dir(cleaned) != filepath.Clean(s.dir) {
		return "", ErrSnapshotNotFound
	}

	data, err := os.ReadFile(cleaned)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", ErrSnapshotNotFound
		}
		return "", fmt.Errorf("error reading save file: %w", err)
	}

	return string(data), nil
}

// Prune deletes the oldest autosave snapshots beyond the retention cap.
// Named saves are never pruned.
func (s *Store) Prune() error {
	if s.maxSnapshots <= 0 {
		return nil
	}

	infos, err := s.ListAll()
	if err != nil {
		return err
	}

	autosaves := infos[:0:0]
	for _, info := range infos {
		if strings.HasPrefix(info.Name, autosavePrefix) {
			autosaves = append(autosaves, info)
		}
	}

	if len(autosaves) <= s.maxSnapshots {
		return nil
	}

	// ListAll sorts newest first, so everything past the cap is oldest.
	for _, info := range autosaves[s.maxSnapshots:] {
		if err := os.Remove(info.Path); err != nil {
			s.logger.Warn().Err(err).Str("name", info.Name).Msg("error removing old snapshot")
		}
	}

	return nil
}

// OpenInFileManager opens the store directory in the platform file manager.
func (s *Store) OpenInFileManager() error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", s.dir)
	case "windows":
		cmd = exec.Command("explorer", s.dir)
	default:
		cmd = exec.Command("xdg-open", s.dir)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("error opening autosave directory: %w", err)
	}
	return nil
}

func (s *Store) writePreferences(prefs models.Preferences) error {
	data, err := json.MarshalIndent(prefs, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling preferences: %w", err)
	}

	if err := os.WriteFile(filepath.Join(s.dir, preferencesFile), data, filePermissions); err != nil {
		return fmt.Errorf("error writing preferences: %w", err)
	}
	return nil
}

func (s *Store) readPreferences() (models.Preferences, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, preferencesFile))
	if err != nil {
		return models.Preferences{}, err
	}

	var prefs models.Preferences
	if err := json.Unmarshal(data, &prefs); err != nil {
		return models.Preferences{}, fmt.Errorf("error parsing preferences: %w", err)
	}
	return prefs, nil
}

func (s *Store) clock() func() time.Time {
	if s.now != nil {
		return s.now
	}
	return time.Now
}

// filesystemTimestamp renders t in RFC 3339 form with the characters that
// are unsafe in file names (colons, slashes, dots) replaced by dashes.
func filesystemTimestamp(t time.Time) string {
	stamp := t.UTC().Format("2006-01-02T15:04:05.000Z")
	replacer := strings.NewReplacer(":", "-", "/", "-", ".", "-")
	return replacer.Replace(stamp)
}
