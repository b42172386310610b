package service

import (
	"path/filepath"
	"sync"
	"testing"

	"go.uber.org/zap"

	"jeoparty/internal/database"
	"jeoparty/internal/dataset"
	"jeoparty/internal/models"
	"jeoparty/internal/repository"
)

// newTestDB opens a throwaway SQLite database with the schema applied.
func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.Initialize(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	schema := []string{
		`CREATE TABLE store (
			name TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE game_state (
			id INTEGER PRIMARY KEY,
			scores TEXT NOT NULL,
			picker TEXT NOT NULL,
			used_ids TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
	}
	for _, ddl := range schema {
		if _, err := db.Exec(ddl); err != nil {
			t.Fatalf("failed to create schema: %v", err)
		}
	}

	return db
}

func newTestStore(t *testing.T) *repository.StoreRepository {
	t.Helper()
	return repository.NewStoreRepository(newTestDB(t))
}

func testDefaults() models.Settings {
	return models.Settings{
		TeamAName:       "Team A",
		TeamBName:       "Team B",
		PointsByLevel:   []int{100, 200, 300, 400, 500},
		AllowSteals:     true,
		NegativeScoring: false,
		ShowSongMeta:    true,
		ColorTheme:      "soft-pink",
	}
}

func testLibrary(t *testing.T) *dataset.Library {
	t.Helper()

	library, err := dataset.NewLibrary(models.Dataset{
		Categories: []models.Category{
			{
				Name: "Pop",
				Questions: []models.Question{
					{ID: "pop-1", Level: 1, SongTitle: "Song One", Artist: "Artist One", TargetWord: "alpha", Hint: "first"},
					{ID: "pop-2", Level: 2, SongTitle: "Song Two", Artist: "Artist Two", TargetWord: "beta"},
				},
			},
			{
				Name: "Rock",
				Questions: []models.Question{
					{ID: "rock-3", Level: 3, SongTitle: "Song Three", Artist: "Artist Three", TargetWord: "gamma", HostNote: "note"},
				},
			},
		},
	})
	if err != nil {
		t.Fatalf("failed to build test library: %v", err)
	}
	return library
}

// fakePlayer records playback starts.
type fakePlayer struct {
	mu     sync.Mutex
	starts []uint64
	ids    []string
}

func (p *fakePlayer) StartForQuestion(question models.Question, generation uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.starts = append(p.starts, generation)
	p.ids = append(p.ids, question.ID)
}

func (p *fakePlayer) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.starts)
}

func newTestGame(t *testing.T, repo *repository.GameRepository) (*GameService, *SettingsService, *fakePlayer) {
	t.Helper()

	settings := NewSettingsService(nil, testDefaults(), zap.NewNop())
	game := NewGameService(testLibrary(t), settings, repo, zap.NewNop())
	player := &fakePlayer{}
	game.BindPlayer(player)
	return game, settings, player
}
