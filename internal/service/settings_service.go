package service

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"jeoparty/internal/models"
	"jeoparty/internal/repository"
	"jeoparty/internal/utils"
)

// settingsStoreKey is the store entry holding the saved settings JSON.
const settingsStoreKey = "jeoparty_settings"

// SettingsInput is the staged settings form as submitted by the host.
type SettingsInput struct {
	TeamAName       string
	TeamBName       string
	PointsByLevel   string
	AllowSteals     bool
	NegativeScoring bool
	ShowSongMeta    bool
	ColorTheme      string
}

// SettingsService owns the active game settings. Settings change only
// through Save, which builds a complete new value from the staged input and
// swaps it in whole.
type SettingsService struct {
	mu       sync.RWMutex
	logger   *zap.Logger
	store    *repository.StoreRepository
	defaults models.Settings
	current  models.Settings
}

// NewSettingsService starts from the dataset defaults, overlaid with any
// previously saved settings. A corrupt saved entry is deleted and ignored.
func NewSettingsService(store *repository.StoreRepository, defaults models.Settings, logger *zap.Logger) *SettingsService {
	s := &SettingsService{
		logger:   logger,
		store:    store,
		defaults: defaults,
		current:  defaults,
	}

	if store == nil {
		return s
	}

	raw, ok, err := store.Get(settingsStoreKey)
	if err != nil {
		logger.Warn("failed to load saved settings", zap.Error(err))
		return s
	}
	if !ok {
		return s
	}

	var saved models.Settings
	if err := json.Unmarshal([]byte(raw), &saved); err != nil {
		logger.Warn("discarding corrupt saved settings", zap.Error(err))
		if err := store.Delete(settingsStoreKey); err != nil {
			logger.Warn("failed to delete corrupt saved settings", zap.Error(err))
		}
		return s
	}

	if saved.TeamAName == "" {
		saved.TeamAName = defaults.TeamAName
	}
	if saved.TeamBName == "" {
		saved.TeamBName = defaults.TeamBName
	}
	if !models.ValidPointTable(saved.PointsByLevel) {
		saved.PointsByLevel = append([]int(nil), defaults.PointsByLevel...)
	}
	if !models.KnownColorTheme(saved.ColorTheme) {
		saved.ColorTheme = defaults.ColorTheme
	}
	s.current = saved

	return s
}

// Current returns a copy of the active settings
func (s *SettingsService) Current() models.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()

	settings := s.current
	settings.PointsByLevel = append([]int(nil), s.current.PointsByLevel...)
	return settings
}

// Save applies a staged settings form. Invalid fields fall back silently:
// empty team names to the defaults, a malformed point table to the default
// table, an unknown theme to the previous one. The new value replaces the
// old atomically and is persisted best-effort.
func (s *SettingsService) Save(input SettingsInput) models.Settings {
	s.mu.Lock()

	next := models.Settings{
		TeamAName:       utils.SanitizeTeamName(input.TeamAName, s.defaults.TeamAName),
		TeamBName:       utils.SanitizeTeamName(input.TeamBName, s.defaults.TeamBName),
		PointsByLevel:   utils.ParsePointsByLevel(input.PointsByLevel),
		AllowSteals:     input.AllowSteals,
		NegativeScoring: input.NegativeScoring,
		ShowSongMeta:    input.ShowSongMeta,
		ColorTheme:      s.current.ColorTheme,
	}
	if models.KnownColorTheme(input.ColorTheme) {
		next.ColorTheme = input.ColorTheme
	}

	s.current = next
	s.mu.Unlock()

	s.persist(next)
	return next
}

func (s *SettingsService) persist(settings models.Settings) {
	if s.store == nil {
		return
	}

	raw, err := json.Marshal(settings)
	if err != nil {
		s.logger.Warn("failed to encode settings", zap.Error(err))
		return
	}
	if err := s.store.Set(settingsStoreKey, string(raw)); err != nil {
		s.logger.Warn("failed to persist settings", zap.Error(err))
	}
}
