package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"jeoparty/internal/service"
)

// SpotifyHandler drives the Spotify connection routes.
type SpotifyHandler struct {
	logger   *zap.Logger
	playback *service.PlaybackService
}

// NewSpotifyHandler creates a new spotify handler
func NewSpotifyHandler(playback *service.PlaybackService, logger *zap.Logger) *SpotifyHandler {
	return &SpotifyHandler{
		logger:   logger,
		playback: playback,
	}
}

// Start begins the authorization flow by redirecting to the Spotify consent
// page. When the flow can't start, the notice explains why and the host
// stays on the board.
func (h *SpotifyHandler) Start(w http.ResponseWriter, r *http.Request) {
	authURL := h.playback.BeginAuthorization()
	if authURL == "" {
		redirectToBoard(w, r)
		return
	}
	http.Redirect(w, r, authURL, http.StatusSeeOther)
}

// Callback completes the flow. It always redirects to the board so the
// authorization code never lingers in the address bar.
func (h *SpotifyHandler) Callback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code != "" {
		h.playback.CompleteAuthorization(r.Context(), code)
	} else {
		h.logger.Warn("spotify callback without code",
			zap.String("error", r.URL.Query().Get("error")))
	}
	redirectToBoard(w, r)
}

// Disconnect drops the Spotify session
func (h *SpotifyHandler) Disconnect(w http.ResponseWriter, r *http.Request) {
	h.playback.Disconnect()
	redirectToBoard(w, r)
}
