package service

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	spotifyapi "github.com/zmb3/spotify/v2"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"jeoparty/internal/models"
	"jeoparty/internal/repository"
)

const (
	tokenStoreKey    = "jeoparty_spotify_token"
	verifierStoreKey = "jeoparty_spotify_verifier"

	// tokenLeeway treats a token expiring within the window as already
	// expired, so a request never goes out with a token about to die.
	tokenLeeway    = 60 * time.Second
	requestTimeout = 10 * time.Second

	verifierLength   = 64
	verifierAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

var spotifyScopes = []string{"user-modify-playback-state", "user-read-playback-state"}

// spotifyEndpoint is a variable so tests can point the token exchange at a
// local server.
var spotifyEndpoint = oauth2.Endpoint{
	AuthURL:   "https://accounts.spotify.com/authorize",
	TokenURL:  "https://accounts.spotify.com/api/token",
	AuthStyle: oauth2.AuthStyleInParams,
}

// TrackCatalog is the playback side of the Spotify Web API: resolve a search
// query to a track URI and start playing it.
type TrackCatalog interface {
	TopTrackURI(ctx context.Context, accessToken, query string) (string, error)
	Play(ctx context.Context, accessToken, uri string) error
}

// PlaybackService manages the Spotify connection: the PKCE authorization
// flow, token refresh, and best-effort playback of the song behind an opened
// question. Playback never blocks or fails a game transition; problems
// surface only as host notices.
type PlaybackService struct {
	logger  *zap.Logger
	store   *repository.StoreRepository
	notices *NoticeService
	catalog TrackCatalog
	cfg     *oauth2.Config

	// isCurrent asks the game whether a playback generation still matches
	// the open question. Bound after construction to break the wiring cycle
	// with the game service.
	isCurrent func(generation uint64) bool
}

// NewPlaybackService builds the playback manager. An empty clientID leaves
// the Spotify integration disabled but the service fully callable.
func NewPlaybackService(store *repository.StoreRepository, notices *NoticeService, catalog TrackCatalog, clientID, redirectURL string, logger *zap.Logger) *PlaybackService {
	return &PlaybackService{
		logger:  logger,
		store:   store,
		notices: notices,
		catalog: catalog,
		cfg: &oauth2.Config{
			ClientID:    clientID,
			RedirectURL: redirectURL,
			Endpoint:    spotifyEndpoint,
			Scopes:      spotifyScopes,
		},
		isCurrent: func(uint64) bool { return true },
	}
}

// BindCurrentCheck attaches the game's generation check.
func (s *PlaybackService) BindCurrentCheck(isCurrent func(generation uint64) bool) {
	s.isCurrent = isCurrent
}

// Enabled reports whether a Spotify client id is configured.
func (s *PlaybackService) Enabled() bool {
	return s.cfg.ClientID != ""
}

// Connected reports whether a Spotify session is stored.
func (s *PlaybackService) Connected() bool {
	_, ok := s.loadSession()
	return ok
}

// BeginAuthorization starts the PKCE flow: it generates and stores a code
// verifier and returns the Spotify consent URL to redirect the host to. An
// empty string means the flow could not start.
func (s *PlaybackService) BeginAuthorization() string {
	if !s.Enabled() {
		s.notices.Publish(models.ToneError, "Spotify is not configured. Set SPOTIFY_CLIENT_ID to enable playback.")
		return ""
	}

	verifier, err := generateVerifier()
	if err != nil {
		s.logger.Error("failed to generate code verifier", zap.Error(err))
		s.notices.Publish(models.ToneError, "Couldn't start the Spotify connection. Try again.")
		return ""
	}
	if err := s.store.Set(verifierStoreKey, verifier); err != nil {
		s.logger.Error("failed to store code verifier", zap.Error(err))
		s.notices.Publish(models.ToneError, "Couldn't start the Spotify connection. Try again.")
		return ""
	}

	return s.cfg.AuthCodeURL("", oauth2.S256ChallengeOption(verifier))
}

// CompleteAuthorization exchanges the callback code for tokens using the
// stored verifier and persists the resulting session. The verifier is
// single-use and removed regardless of outcome.
func (s *PlaybackService) CompleteAuthorization(ctx context.Context, code string) {
	verifier, ok, err := s.store.Get(verifierStoreKey)
	if err != nil || !ok {
		s.logger.Warn("authorization callback without stored verifier", zap.Error(err))
		s.notices.Publish(models.ToneError, "Spotify connection failed. Try connecting again.")
		return
	}
	defer func() {
		if err := s.store.Delete(verifierStoreKey); err != nil {
			s.logger.Warn("failed to delete code verifier", zap.Error(err))
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	token, err := s.cfg.Exchange(ctx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		s.logger.Warn("token exchange failed", zap.Error(err))
		s.notices.Publish(models.ToneError, "Spotify connection failed. Try connecting again.")
		return
	}

	s.saveSession(models.SpotifySession{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		ExpiresAt:    token.Expiry.UnixMilli(),
	})
	s.logger.Info("spotify connected")
	s.notices.Publish(models.ToneSuccess, "Spotify connected! Songs will play when you open a question.")
}

// EnsureFreshToken returns an access token valid for at least the leeway
// window, refreshing when needed. An empty string means there is no usable
// session; an unrefreshable one is cleared.
func (s *PlaybackService) EnsureFreshToken(ctx context.Context) string {
	session, ok := s.loadSession()
	if !ok {
		return ""
	}
	if time.Until(session.ExpiryTime()) > tokenLeeway {
		return session.AccessToken
	}
	if session.RefreshToken == "" {
		s.clearSession()
		return ""
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	token, err := s.cfg.TokenSource(ctx, &oauth2.Token{RefreshToken: session.RefreshToken}).Token()
	if err != nil {
		s.logger.Warn("token refresh failed", zap.Error(err))
		s.clearSession()
		return ""
	}

	refreshed := models.SpotifySession{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		ExpiresAt:    token.Expiry.UnixMilli(),
	}
	// Spotify does not always reissue the refresh token.
	if refreshed.RefreshToken == "" {
		refreshed.RefreshToken = session.RefreshToken
	}
	s.saveSession(refreshed)

	return refreshed.AccessToken
}

// StartForQuestion kicks off playback for an opened question in the
// background. The open transition has already happened; nothing here can
// undo it.
func (s *PlaybackService) StartForQuestion(question models.Question, generation uint64) {
	go s.playForQuestion(question, generation)
}

func (s *PlaybackService) playForQuestion(question models.Question, generation uint64) {
	if _, ok := s.loadSession(); !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	token := s.EnsureFreshToken(ctx)
	if token == "" {
		s.notices.Publish(models.ToneError, "Spotify session expired. Reconnect in settings to play songs.")
		return
	}

	query := fmt.Sprintf("track:%s artist:%s", question.SongTitle, question.Artist)
	uri, err := s.catalog.TopTrackURI(ctx, token, query)
	if err != nil {
		s.logger.Warn("track search failed",
			zap.String("question_id", question.ID),
			zap.Error(err))
		return
	}
	if uri == "" {
		s.notices.Publish(models.ToneError, fmt.Sprintf("Couldn't find %q on Spotify.", question.SongTitle))
		return
	}

	err = s.catalog.Play(ctx, token, uri)
	switch spotifyStatus(err) {
	case 0:
		if s.isCurrent(generation) {
			s.notices.Publish(models.ToneSuccess, fmt.Sprintf("Now playing %q by %s", question.SongTitle, question.Artist))
		}
	case http.StatusNotFound:
		s.notices.Publish(models.ToneError, "No active Spotify device. Open Spotify on a device and try again.")
	case http.StatusForbidden:
		s.notices.Publish(models.ToneError, "Spotify Premium is required to control playback.")
	case http.StatusUnauthorized:
		s.clearSession()
		s.notices.Publish(models.ToneError, "Spotify session expired. Reconnect in settings to play songs.")
	default:
		s.logger.Warn("playback request failed",
			zap.String("question_id", question.ID),
			zap.Error(err))
	}
}

// Disconnect removes the stored session and any pending verifier.
func (s *PlaybackService) Disconnect() {
	s.clearSession()
	if err := s.store.Delete(verifierStoreKey); err != nil {
		s.logger.Warn("failed to delete code verifier", zap.Error(err))
	}
	s.logger.Info("spotify disconnected")
	s.notices.Publish(models.ToneInfo, "Spotify disconnected.")
}

func (s *PlaybackService) loadSession() (models.SpotifySession, bool) {
	raw, ok, err := s.store.Get(tokenStoreKey)
	if err != nil {
		s.logger.Warn("failed to load spotify session", zap.Error(err))
		return models.SpotifySession{}, false
	}
	if !ok {
		return models.SpotifySession{}, false
	}

	var session models.SpotifySession
	if err := json.Unmarshal([]byte(raw), &session); err != nil || session.AccessToken == "" {
		s.clearSession()
		return models.SpotifySession{}, false
	}
	return session, true
}

func (s *PlaybackService) saveSession(session models.SpotifySession) {
	raw, err := json.Marshal(session)
	if err != nil {
		s.logger.Error("failed to encode spotify session", zap.Error(err))
		return
	}
	if err := s.store.Set(tokenStoreKey, string(raw)); err != nil {
		s.logger.Error("failed to persist spotify session", zap.Error(err))
	}
}

func (s *PlaybackService) clearSession() {
	if err := s.store.Delete(tokenStoreKey); err != nil {
		s.logger.Warn("failed to delete spotify session", zap.Error(err))
	}
}

// spotifyStatus extracts the HTTP status from a Spotify API error; 0 means
// no error, -1 an error without a status.
func spotifyStatus(err error) int {
	if err == nil {
		return 0
	}
	var apiErr spotifyapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return -1
}

func generateVerifier() (string, error) {
	buf := make([]byte, verifierLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = verifierAlphabet[int(b)%len(verifierAlphabet)]
	}
	return string(buf), nil
}
