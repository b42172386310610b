package handlers

import "jeoparty/internal/models"

// TileView is one board cell.
type TileView struct {
	ID     string
	Points int
	Used   bool
}

// CategoryView is one board column.
type CategoryView struct {
	Name  string
	Tiles []TileView
}

// QuestionView is the open-question modal.
type QuestionView struct {
	CategoryName string
	Points       int
	TargetWord   string
	SongTitle    string
	Artist       string
	HasHint      bool
	HintText     string
	HintShown    bool
	AnswerShown  bool
}

// NoticeView is the transient host toast.
type NoticeView struct {
	ID      string
	Tone    string
	Message string
}

// SongView is one entry in the host's song reference list.
type SongView struct {
	SongTitle string
	Artist    string
	Points    int
	Used      bool
}

// LibraryGroupView groups the song reference list by category.
type LibraryGroupView struct {
	Name  string
	Songs []SongView
}

// BoardViewData is everything the board page renders.
type BoardViewData struct {
	Title            string
	ColorTheme       string
	ColorThemes      []models.ColorTheme
	TeamAName        string
	TeamBName        string
	ScoreA           int
	ScoreB           int
	Picker           string
	Categories       []CategoryView
	Active           *QuestionView
	Notice           *NoticeView
	Library          []LibraryGroupView
	PointsByLevel    string
	AllowSteals      bool
	NegativeScoring  bool
	ShowSongMeta     bool
	SpotifyEnabled   bool
	SpotifyConnected bool
}
