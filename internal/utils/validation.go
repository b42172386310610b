package utils

import (
	"strconv"
	"strings"

	"jeoparty/internal/models"
)

// MaxTeamNameLength matches the input limit on the settings form.
const MaxTeamNameLength = 24

// SanitizeTeamName trims a submitted team name and falls back to the default
// label on empty input. Overlong names are truncated rather than rejected;
// the limit counts runes so a multi-byte name is never cut mid-character.
func SanitizeTeamName(input, fallback string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return fallback
	}
	if runes := []rune(trimmed); len(runes) > MaxTeamNameLength {
		trimmed = strings.TrimSpace(string(runes[:MaxTeamNameLength]))
	}
	return trimmed
}

// ParsePointsByLevel parses a comma-separated point table. Anything that is
// not exactly five positive integers silently falls back to the default
// table.
func ParsePointsByLevel(raw string) []int {
	parts := strings.Split(raw, ",")
	if len(parts) != len(models.DefaultPointsByLevel) {
		return defaultPointsCopy()
	}

	values := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n <= 0 {
			return defaultPointsCopy()
		}
		values = append(values, n)
	}
	return values
}

func defaultPointsCopy() []int {
	points := make([]int, len(models.DefaultPointsByLevel))
	copy(points, models.DefaultPointsByLevel)
	return points
}
