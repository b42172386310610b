package service

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"jeoparty/internal/models"
	"jeoparty/internal/repository"
)

// Backup is the portable dump of everything durable: the key/value store
// (Spotify session and settings) and the game snapshot.
type Backup struct {
	ExportedAt time.Time            `json:"exportedAt"`
	Store      map[string]string    `json:"store"`
	Game       *models.GameSnapshot `json:"game,omitempty"`
}

// BackupService exports and imports the durable state, used by the backup
// command-line tool.
type BackupService struct {
	logger *zap.Logger
	store  *repository.StoreRepository
	game   *repository.GameRepository
}

func NewBackupService(store *repository.StoreRepository, game *repository.GameRepository, logger *zap.Logger) *BackupService {
	return &BackupService{
		logger: logger,
		store:  store,
		game:   game,
	}
}

// Export writes the full durable state to path as JSON.
func (s *BackupService) Export(path string) error {
	entries, err := s.store.All()
	if err != nil {
		return fmt.Errorf("failed to read store: %w", err)
	}
	snapshot, err := s.game.LoadSnapshot()
	if err != nil {
		return fmt.Errorf("failed to read game snapshot: %w", err)
	}

	backup := Backup{
		ExportedAt: time.Now().UTC(),
		Store:      entries,
		Game:       snapshot,
	}

	raw, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}

	s.logger.Info("backup exported",
		zap.String("path", path),
		zap.Int("store_entries", len(entries)))
	return nil
}

// Import replaces the durable state with the contents of a backup file.
func (s *BackupService) Import(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read backup file: %w", err)
	}

	var backup Backup
	if err := json.Unmarshal(raw, &backup); err != nil {
		return fmt.Errorf("failed to parse backup file: %w", err)
	}

	if err := s.store.DeleteAll(); err != nil {
		return fmt.Errorf("failed to clear store: %w", err)
	}
	for name, value := range backup.Store {
		if err := s.store.Set(name, value); err != nil {
			return fmt.Errorf("failed to restore store entry %q: %w", name, err)
		}
	}

	if backup.Game != nil {
		if err := s.game.SaveSnapshot(*backup.Game); err != nil {
			return fmt.Errorf("failed to restore game snapshot: %w", err)
		}
	} else if err := s.game.ClearSnapshot(); err != nil {
		return fmt.Errorf("failed to clear game snapshot: %w", err)
	}

	s.logger.Info("backup imported",
		zap.String("path", path),
		zap.Int("store_entries", len(backup.Store)))
	return nil
}
