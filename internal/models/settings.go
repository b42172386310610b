package models

// DefaultPointsByLevel is the point table used when none is configured or
// the configured one fails to parse.
var DefaultPointsByLevel = []int{100, 200, 300, 400, 500}

// ColorTheme is a selectable board theme.
type ColorTheme struct {
	Value string
	Label string
}

// ColorThemes lists the themes the board templates know how to render.
var ColorThemes = []ColorTheme{
	{Value: "soft-pink", Label: "Soft Pink"},
	{Value: "lavender", Label: "Lavender"},
	{Value: "rose-gold", Label: "Rose Gold"},
	{Value: "midnight", Label: "Midnight"},
	{Value: "barbie", Label: "Barbie"},
}

// KnownColorTheme reports whether value is one of the renderable themes.
func KnownColorTheme(value string) bool {
	for _, theme := range ColorThemes {
		if theme.Value == value {
			return true
		}
	}
	return false
}

// ValidPointTable reports whether points is a usable table: one positive
// value per level.
func ValidPointTable(points []int) bool {
	if len(points) != len(DefaultPointsByLevel) {
		return false
	}
	for _, p := range points {
		if p <= 0 {
			return false
		}
	}
	return true
}

// Settings holds the host-editable game configuration. A Settings value is
// only ever replaced as a whole on save, never partially updated.
type Settings struct {
	TeamAName       string `json:"teamAName"`
	TeamBName       string `json:"teamBName"`
	PointsByLevel   []int  `json:"pointsByLevel"`
	AllowSteals     bool   `json:"allowSteals"`
	NegativeScoring bool   `json:"negativeScoring"`
	ShowSongMeta    bool   `json:"showSongMeta"`
	ColorTheme      string `json:"colorTheme"`
}

// PointsForLevel maps a difficulty level to its point value using the active
// point table. Without a usable table the level itself is the point value.
func (s Settings) PointsForLevel(level int) int {
	if level >= 1 && level <= len(s.PointsByLevel) {
		return s.PointsByLevel[level-1]
	}
	return level
}
