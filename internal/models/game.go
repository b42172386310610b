package models

import "strings"

// Team identifies one of the two competing teams.
type Team string

const (
	TeamA Team = "A"
	TeamB Team = "B"
)

// ParseTeam normalizes input to a Team. Anything other than A or B is
// rejected; callers treat that as "no one".
func ParseTeam(s string) (Team, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "A":
		return TeamA, true
	case "B":
		return TeamB, true
	default:
		return "", false
	}
}

// ActiveQuestion is the currently open question along with its reveal flags.
// Points are fixed at open time; unopened tiles re-derive theirs from the
// live point table.
type ActiveQuestion struct {
	CategoryName string
	Question     Question
	Points       int
	HintShown    bool
	AnswerShown  bool
	// Generation ties detached playback completions to the open transition
	// that spawned them.
	Generation uint64
}

// GameSnapshot is the durable part of a game session: scores, the picking
// team and the consumed question ids. The active question and reveal flags
// are deliberately not persisted.
type GameSnapshot struct {
	Scores          map[Team]int `json:"scores"`
	Picker          Team         `json:"picker"`
	UsedQuestionIDs []string     `json:"usedQuestionIds"`
}
