package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"jeoparty/internal/models"
)

func validData() models.Dataset {
	return models.Dataset{
		Categories: []models.Category{
			{
				Name: "Pop",
				Questions: []models.Question{
					{ID: "pop-2", Level: 2, SongTitle: "B", Artist: "Y", TargetWord: "two"},
					{ID: "pop-1", Level: 1, SongTitle: "A", Artist: "X", TargetWord: "one"},
				},
			},
			{
				Name: "Rock",
				Questions: []models.Question{
					{ID: "rock-1", Level: 1, SongTitle: "C", Artist: "Z", TargetWord: "three"},
				},
			},
		},
	}
}

func TestNewLibraryValidData(t *testing.T) {
	library, err := NewLibrary(validData())
	if err != nil {
		t.Fatalf("NewLibrary() error = %v", err)
	}

	categories := library.Categories()
	if len(categories) != 2 {
		t.Fatalf("Categories() returned %d categories, want 2", len(categories))
	}

	// Questions come back sorted by level
	pop := categories[0]
	if pop.Questions[0].ID != "pop-1" || pop.Questions[1].ID != "pop-2" {
		t.Errorf("questions not sorted by level: %s, %s", pop.Questions[0].ID, pop.Questions[1].ID)
	}
}

func TestNewLibraryValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.Dataset)
	}{
		{"no categories", func(d *models.Dataset) { d.Categories = nil }},
		{"empty category name", func(d *models.Dataset) { d.Categories[0].Name = "" }},
		{"duplicate category", func(d *models.Dataset) { d.Categories[1].Name = "Pop" }},
		{"no questions", func(d *models.Dataset) { d.Categories[1].Questions = nil }},
		{"empty question id", func(d *models.Dataset) { d.Categories[0].Questions[0].ID = "" }},
		{"duplicate question id", func(d *models.Dataset) { d.Categories[1].Questions[0].ID = "pop-1" }},
		{"level too low", func(d *models.Dataset) { d.Categories[0].Questions[0].Level = 0 }},
		{"level too high", func(d *models.Dataset) { d.Categories[0].Questions[0].Level = 6 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := validData()
			tt.mutate(&data)
			if _, err := NewLibrary(data); err == nil {
				t.Error("NewLibrary() accepted invalid data")
			}
		})
	}
}

func TestLibraryQuestionLookup(t *testing.T) {
	library, err := NewLibrary(validData())
	if err != nil {
		t.Fatalf("NewLibrary() error = %v", err)
	}

	question, categoryName, ok := library.Question("rock-1")
	if !ok {
		t.Fatal("Question(rock-1) not found")
	}
	if categoryName != "Rock" {
		t.Errorf("category = %q, want Rock", categoryName)
	}
	if question.TargetWord != "three" {
		t.Errorf("target word = %q, want three", question.TargetWord)
	}

	if _, _, ok := library.Question("nope"); ok {
		t.Error("Question(nope) found, want miss")
	}
}

func TestLoadFromFiles(t *testing.T) {
	dir := t.TempDir()

	questionsPath := filepath.Join(dir, "questions.json")
	questionsJSON := `{"categories":[{"name":"Pop","questions":[{"id":"q1","level":1,"songTitle":"A","artist":"X","targetWord":"word","hint":"a hint"}]}]}`
	if err := os.WriteFile(questionsPath, []byte(questionsJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	settingsPath := filepath.Join(dir, "settings.json")
	settingsJSON := `{"teamAName":"Reds","pointsByLevel":[10,20,30,40,50],"colorTheme":"no-such-theme"}`
	if err := os.WriteFile(settingsPath, []byte(settingsJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	library, settings, err := Load(questionsPath, settingsPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(library.Categories()) != 1 {
		t.Errorf("got %d categories, want 1", len(library.Categories()))
	}
	if settings.TeamAName != "Reds" {
		t.Errorf("TeamAName = %q, want Reds", settings.TeamAName)
	}
	if settings.TeamBName != "Team B" {
		t.Errorf("TeamBName = %q, want the default", settings.TeamBName)
	}
	if settings.PointsByLevel[0] != 10 {
		t.Errorf("PointsByLevel[0] = %d, want 10", settings.PointsByLevel[0])
	}
	if settings.ColorTheme != models.ColorThemes[0].Value {
		t.Errorf("ColorTheme = %q, want fallback %q", settings.ColorTheme, models.ColorThemes[0].Value)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, _, err := Load("no-such-file.json", "also-missing.json"); err == nil {
		t.Error("Load() with missing files succeeded")
	}
}
