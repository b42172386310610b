package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"jeoparty/internal/service"
)

// SettingsHandler applies the staged settings form.
type SettingsHandler struct {
	logger   *zap.Logger
	settings *service.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settings *service.SettingsService, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{
		logger:   logger,
		settings: settings,
	}
}

// Save applies the whole settings form at once. Checkboxes arrive only when
// ticked, so their presence is the value.
func (h *SettingsHandler) Save(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.logger.Warn("failed to parse settings form", zap.Error(err))
		redirectToBoard(w, r)
		return
	}

	h.settings.Save(service.SettingsInput{
		TeamAName:       r.FormValue("teamAName"),
		TeamBName:       r.FormValue("teamBName"),
		PointsByLevel:   r.FormValue("pointsByLevel"),
		AllowSteals:     r.FormValue("allowSteals") != "",
		NegativeScoring: r.FormValue("negativeScoring") != "",
		ShowSongMeta:    r.FormValue("showSongMeta") != "",
		ColorTheme:      r.FormValue("colorTheme"),
	})

	redirectToBoard(w, r)
}
