// Package dataset loads the static question and default-settings documents.
// Failure to load either is the one fatal error in the system; everything
// downstream treats the data as immutable.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"jeoparty/internal/models"
)

// Library is the loaded, validated question dataset with an id index for
// fast tile lookup.
type Library struct {
	categories []models.Category
	byID       map[string]located
}

type located struct {
	categoryName string
	question     models.Question
}

// Load reads questions.json and settings.json from disk.
func Load(questionsPath, settingsPath string) (*Library, models.Settings, error) {
	raw, err := os.ReadFile(questionsPath)
	if err != nil {
		return nil, models.Settings{}, fmt.Errorf("failed to read question data: %w", err)
	}

	var data models.Dataset
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, models.Settings{}, fmt.Errorf("failed to parse question data: %w", err)
	}

	library, err := NewLibrary(data)
	if err != nil {
		return nil, models.Settings{}, err
	}

	settings, err := loadSettings(settingsPath)
	if err != nil {
		return nil, models.Settings{}, err
	}

	return library, settings, nil
}

// NewLibrary validates a dataset and builds the lookup index. Questions
// within each category are ordered by level, the way the board renders them.
func NewLibrary(data models.Dataset) (*Library, error) {
	if len(data.Categories) == 0 {
		return nil, fmt.Errorf("question data contains no categories")
	}

	library := &Library{byID: make(map[string]located)}
	seenCategories := make(map[string]bool)

	for _, category := range data.Categories {
		if category.Name == "" {
			return nil, fmt.Errorf("category with empty name")
		}
		if seenCategories[category.Name] {
			return nil, fmt.Errorf("duplicate category %q", category.Name)
		}
		seenCategories[category.Name] = true

		if len(category.Questions) == 0 {
			return nil, fmt.Errorf("category %q has no questions", category.Name)
		}

		questions := make([]models.Question, len(category.Questions))
		copy(questions, category.Questions)
		sort.SliceStable(questions, func(i, j int) bool {
			return questions[i].Level < questions[j].Level
		})

		for _, q := range questions {
			if q.ID == "" {
				return nil, fmt.Errorf("question without id in category %q", category.Name)
			}
			if _, exists := library.byID[q.ID]; exists {
				return nil, fmt.Errorf("duplicate question id %q", q.ID)
			}
			if q.Level < 1 || q.Level > 5 {
				return nil, fmt.Errorf("question %q has level %d, want 1-5", q.ID, q.Level)
			}
			library.byID[q.ID] = located{categoryName: category.Name, question: q}
		}

		library.categories = append(library.categories, models.Category{
			Name:      category.Name,
			Questions: questions,
		})
	}

	return library, nil
}

// Categories returns the ordered categories with level-sorted questions.
func (l *Library) Categories() []models.Category {
	return l.categories
}

// Question looks a question up by id, returning it with its category name.
func (l *Library) Question(id string) (models.Question, string, bool) {
	entry, ok := l.byID[id]
	if !ok {
		return models.Question{}, "", false
	}
	return entry.question, entry.categoryName, true
}

// loadSettings reads the default settings document, normalizing missing
// fields to usable defaults.
func loadSettings(path string) (models.Settings, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return models.Settings{}, fmt.Errorf("failed to read settings data: %w", err)
	}

	var settings models.Settings
	if err := json.Unmarshal(raw, &settings); err != nil {
		return models.Settings{}, fmt.Errorf("failed to parse settings data: %w", err)
	}

	if settings.TeamAName == "" {
		settings.TeamAName = "Team A"
	}
	if settings.TeamBName == "" {
		settings.TeamBName = "Team B"
	}
	if !models.ValidPointTable(settings.PointsByLevel) {
		settings.PointsByLevel = append([]int(nil), models.DefaultPointsByLevel...)
	}
	if !models.KnownColorTheme(settings.ColorTheme) {
		settings.ColorTheme = models.ColorThemes[0].Value
	}

	return settings, nil
}
