package handlers

import (
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"jeoparty/internal/dataset"
	"jeoparty/internal/models"
	"jeoparty/internal/service"
)

// GameHandler serves the board page and the game transition routes. Every
// transition redirects back to the board; invalid transitions land there
// with nothing changed.
type GameHandler struct {
	logger    *zap.Logger
	library   *dataset.Library
	game      *service.GameService
	settings  *service.SettingsService
	notices   *service.NoticeService
	playback  *service.PlaybackService
	templates *template.Template
}

// NewGameHandler creates a new game handler
func NewGameHandler(library *dataset.Library, game *service.GameService, settings *service.SettingsService, notices *service.NoticeService, playback *service.PlaybackService, templates *template.Template, logger *zap.Logger) *GameHandler {
	return &GameHandler{
		logger:    logger,
		library:   library,
		game:      game,
		settings:  settings,
		notices:   notices,
		playback:  playback,
		templates: templates,
	}
}

// ShowBoard renders the board page
func (h *GameHandler) ShowBoard(w http.ResponseWriter, r *http.Request) {
	settings := h.settings.Current()
	scores := h.game.Scores()

	data := BoardViewData{
		Title:            "Jeoparty!",
		ColorTheme:       settings.ColorTheme,
		ColorThemes:      models.ColorThemes,
		TeamAName:        settings.TeamAName,
		TeamBName:        settings.TeamBName,
		ScoreA:           scores[models.TeamA],
		ScoreB:           scores[models.TeamB],
		Picker:           string(h.game.Picker()),
		PointsByLevel:    formatPointTable(settings.PointsByLevel),
		AllowSteals:      settings.AllowSteals,
		NegativeScoring:  settings.NegativeScoring,
		ShowSongMeta:     settings.ShowSongMeta,
		SpotifyEnabled:   h.playback.Enabled(),
		SpotifyConnected: h.playback.Connected(),
	}

	for _, category := range h.library.Categories() {
		view := CategoryView{Name: category.Name}
		group := LibraryGroupView{Name: category.Name}
		for _, q := range category.Questions {
			points := settings.PointsForLevel(q.Level)
			used := h.game.IsUsed(q.ID)
			view.Tiles = append(view.Tiles, TileView{ID: q.ID, Points: points, Used: used})
			group.Songs = append(group.Songs, SongView{
				SongTitle: q.SongTitle,
				Artist:    q.Artist,
				Points:    points,
				Used:      used,
			})
		}
		data.Categories = append(data.Categories, view)
		data.Library = append(data.Library, group)
	}

	if active := h.game.Active(); active != nil {
		data.Active = &QuestionView{
			CategoryName: active.CategoryName,
			Points:       active.Points,
			TargetWord:   active.Question.TargetWord,
			SongTitle:    active.Question.SongTitle,
			Artist:       active.Question.Artist,
			HasHint:      active.Question.HasHint(),
			HintText:     active.Question.HintText(),
			HintShown:    active.HintShown,
			AnswerShown:  active.AnswerShown,
		}
	}
	if notice := h.notices.Current(); notice != nil {
		data.Notice = &NoticeView{ID: notice.ID, Tone: notice.Tone, Message: notice.Message}
	}

	if err := h.templates.ExecuteTemplate(w, "board.tmpl", data); err != nil {
		respondWithError(w, h.logger, http.StatusInternalServerError, "Failed to render board", err)
	}
}

// OpenQuestion opens the tile named in the path
func (h *GameHandler) OpenQuestion(w http.ResponseWriter, r *http.Request) {
	h.game.Open(r.PathValue("id"))
	redirectToBoard(w, r)
}

// ToggleHint flips hint visibility
func (h *GameHandler) ToggleHint(w http.ResponseWriter, r *http.Request) {
	h.game.ToggleHint()
	redirectToBoard(w, r)
}

// ToggleAnswer flips answer visibility
func (h *GameHandler) ToggleAnswer(w http.ResponseWriter, r *http.Request) {
	h.game.ToggleAnswer()
	redirectToBoard(w, r)
}

// AwardWinner credits the open question to the team named in the path
func (h *GameHandler) AwardWinner(w http.ResponseWriter, r *http.Request) {
	if team, ok := models.ParseTeam(r.PathValue("team")); ok {
		h.game.AwardWinner(team)
	}
	redirectToBoard(w, r)
}

// MarkNoOne consumes the open question with no winner
func (h *GameHandler) MarkNoOne(w http.ResponseWriter, r *http.Request) {
	h.game.MarkNoOne()
	redirectToBoard(w, r)
}

// WrongPick records a wrong answer by the picking team; the steal form value
// names the stealing team or N for no one.
func (h *GameHandler) WrongPick(w http.ResponseWriter, r *http.Request) {
	h.game.WrongPick(r.FormValue("steal"))
	redirectToBoard(w, r)
}

// CloseQuestion dismisses the open question without consuming it
func (h *GameHandler) CloseQuestion(w http.ResponseWriter, r *http.Request) {
	h.game.Close()
	redirectToBoard(w, r)
}

// SetPicker hands the pick to the team named in the path
func (h *GameHandler) SetPicker(w http.ResponseWriter, r *http.Request) {
	if team, ok := models.ParseTeam(r.PathValue("team")); ok {
		h.game.SetPicker(team)
	}
	redirectToBoard(w, r)
}

// ResetGame starts a fresh game
func (h *GameHandler) ResetGame(w http.ResponseWriter, r *http.Request) {
	h.game.Reset()
	redirectToBoard(w, r)
}

func redirectToBoard(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func formatPointTable(points []int) string {
	parts := make([]string, len(points))
	for i, p := range points {
		parts[i] = strconv.Itoa(p)
	}
	return strings.Join(parts, ",")
}
