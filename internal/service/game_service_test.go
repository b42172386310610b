package service

import (
	"testing"

	"go.uber.org/zap"

	"jeoparty/internal/models"
	"jeoparty/internal/repository"
)

func TestOpenActivatesQuestion(t *testing.T) {
	game, _, player := newTestGame(t, nil)

	game.Open("pop-2")

	active := game.Active()
	if active == nil {
		t.Fatal("Active() = nil after Open")
	}
	if active.Question.ID != "pop-2" {
		t.Errorf("active question = %q", active.Question.ID)
	}
	if active.CategoryName != "Pop" {
		t.Errorf("category = %q", active.CategoryName)
	}
	if active.Points != 200 {
		t.Errorf("points = %d, want 200", active.Points)
	}
	if active.HintShown || active.AnswerShown {
		t.Error("reveal flags set on a fresh question")
	}
	if player.count() != 1 {
		t.Errorf("player started %d times, want 1", player.count())
	}
}

func TestOpenIsNoOpWhenBusyOrInvalid(t *testing.T) {
	game, _, player := newTestGame(t, nil)

	game.Open("no-such-id")
	if game.Active() != nil {
		t.Fatal("unknown id opened a question")
	}

	game.Open("pop-1")
	game.Open("pop-2") // second open while one is active
	if got := game.Active().Question.ID; got != "pop-1" {
		t.Errorf("active question = %q, want pop-1", got)
	}
	if player.count() != 1 {
		t.Errorf("player started %d times, want 1", player.count())
	}

	// Consume pop-1, then try to reopen it.
	game.AwardWinner(models.TeamA)
	game.Open("pop-1")
	if game.Active() != nil {
		t.Error("consumed tile reopened")
	}
}

func TestPointsFrozenAtOpen(t *testing.T) {
	game, settings, _ := newTestGame(t, nil)

	game.Open("pop-1")
	settings.Save(SettingsInput{PointsByLevel: "11,22,33,44,55"})

	if got := game.Active().Points; got != 100 {
		t.Errorf("points changed after open: %d, want 100", got)
	}

	// A later open picks up the new table.
	game.Close()
	game.Open("pop-2")
	if got := game.Active().Points; got != 22 {
		t.Errorf("points = %d, want 22 from the new table", got)
	}
}

func TestToggleHintAndAnswer(t *testing.T) {
	game, _, _ := newTestGame(t, nil)

	// Without an open question both toggles are no-ops.
	game.ToggleHint()
	game.ToggleAnswer()

	game.Open("pop-1")
	game.ToggleHint()
	game.ToggleAnswer()

	active := game.Active()
	if !active.HintShown || !active.AnswerShown {
		t.Errorf("flags = %v, %v after toggling on", active.HintShown, active.AnswerShown)
	}

	game.ToggleHint()
	if game.Active().HintShown {
		t.Error("second toggle did not hide the hint")
	}
}

func TestAwardWinner(t *testing.T) {
	game, _, _ := newTestGame(t, nil)

	game.AwardWinner(models.TeamB) // nothing open
	if game.Scores()[models.TeamB] != 0 {
		t.Fatal("award without an open question changed the score")
	}

	game.Open("rock-3")
	game.AwardWinner(models.TeamB)

	if got := game.Scores()[models.TeamB]; got != 300 {
		t.Errorf("score B = %d, want 300", got)
	}
	if game.Active() != nil {
		t.Error("question still open after award")
	}
	if !game.IsUsed("rock-3") {
		t.Error("awarded tile not consumed")
	}
}

func TestAwardWinnerKeepsPicker(t *testing.T) {
	game, _, _ := newTestGame(t, nil)

	game.SetPicker(models.TeamA)
	game.Open("pop-1")
	game.AwardWinner(models.TeamB)

	// Scoring a question hands no one the pick; only SetPicker does that.
	if game.Picker() != models.TeamA {
		t.Errorf("picker = %q after AwardWinner(B), want A unchanged", game.Picker())
	}
}

func TestMarkNoOne(t *testing.T) {
	game, _, _ := newTestGame(t, nil)

	game.Open("pop-1")
	game.MarkNoOne()

	scores := game.Scores()
	if scores[models.TeamA] != 0 || scores[models.TeamB] != 0 {
		t.Errorf("scores changed: %v", scores)
	}
	if game.Picker() != models.TeamA {
		t.Errorf("picker = %q, want unchanged A", game.Picker())
	}
	if !game.IsUsed("pop-1") {
		t.Error("tile not consumed")
	}
}

func TestWrongPick(t *testing.T) {
	tests := []struct {
		name            string
		negativeScoring bool
		allowSteals     bool
		steal           string
		wantA, wantB    int
	}{
		{"no penalties, no steal", false, true, "N", 0, 0},
		{"negative scoring charges the picker", true, true, "N", -100, 0},
		{"steal credits the other team", false, true, "B", 0, 100},
		{"steal plus penalty", true, true, "B", -100, 100},
		{"steal ignored when disabled", false, false, "B", 0, 0},
		{"garbage steal value means no one", false, true, "whatever", 0, 0},
		{"lowercase steal accepted", false, true, "b", 0, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			game, settings, _ := newTestGame(t, nil)
			defaults := testDefaults()
			defaults.NegativeScoring = tt.negativeScoring
			defaults.AllowSteals = tt.allowSteals
			settings.current = defaults

			game.Open("pop-1") // picker is A
			game.WrongPick(tt.steal)

			scores := game.Scores()
			if scores[models.TeamA] != tt.wantA || scores[models.TeamB] != tt.wantB {
				t.Errorf("scores = A:%d B:%d, want A:%d B:%d",
					scores[models.TeamA], scores[models.TeamB], tt.wantA, tt.wantB)
			}
			if game.Picker() != models.TeamA {
				t.Errorf("picker = %q, want unchanged A", game.Picker())
			}
			if !game.IsUsed("pop-1") {
				t.Error("tile not consumed")
			}
			if game.Active() != nil {
				t.Error("question still open")
			}
		})
	}
}

func TestWrongPickWithoutOpenQuestion(t *testing.T) {
	game, _, _ := newTestGame(t, nil)
	game.WrongPick("B")
	if game.Scores()[models.TeamB] != 0 {
		t.Error("wrong pick without an open question changed the score")
	}
}

func TestCloseDoesNotConsume(t *testing.T) {
	game, _, player := newTestGame(t, nil)

	game.Open("pop-1")
	first := game.Active().Generation
	game.Close()

	if game.IsUsed("pop-1") {
		t.Fatal("closed tile marked used")
	}

	game.Open("pop-1")
	if game.Active() == nil {
		t.Fatal("tile could not be reopened")
	}
	if game.Active().Generation == first {
		t.Error("reopen kept the old generation")
	}
	if player.count() != 2 {
		t.Errorf("player started %d times, want 2", player.count())
	}
}

func TestSetPicker(t *testing.T) {
	game, _, _ := newTestGame(t, nil)

	game.SetPicker(models.TeamB)
	if game.Picker() != models.TeamB {
		t.Errorf("picker = %q, want B", game.Picker())
	}

	game.SetPicker(models.Team("C"))
	if game.Picker() != models.TeamB {
		t.Error("invalid team changed the picker")
	}
}

func TestReset(t *testing.T) {
	game, _, _ := newTestGame(t, nil)

	game.Open("pop-1")
	game.AwardWinner(models.TeamB)
	game.SetPicker(models.TeamB)
	game.Open("pop-2")
	game.Reset()

	scores := game.Scores()
	if scores[models.TeamA] != 0 || scores[models.TeamB] != 0 {
		t.Errorf("scores after reset = %v", scores)
	}
	if game.IsUsed("pop-1") {
		t.Error("tiles not restored")
	}
	if game.Active() != nil {
		t.Error("question survived the reset")
	}
	// The picking team survives a reset.
	if game.Picker() != models.TeamB {
		t.Errorf("picker = %q, want B kept", game.Picker())
	}
}

func TestIsCurrent(t *testing.T) {
	game, _, _ := newTestGame(t, nil)

	game.Open("pop-1")
	generation := game.Active().Generation

	if !game.IsCurrent(generation) {
		t.Error("IsCurrent false for the open question")
	}
	game.Close()
	if game.IsCurrent(generation) {
		t.Error("IsCurrent true after close")
	}

	game.Open("pop-2")
	if game.IsCurrent(generation) {
		t.Error("IsCurrent true for a stale generation")
	}
}

func TestSnapshotRestore(t *testing.T) {
	repo := repository.NewGameRepository(newTestDB(t))

	game, _, _ := newTestGame(t, repo)
	game.Open("pop-1")
	game.AwardWinner(models.TeamB)
	game.SetPicker(models.TeamB)
	game.Open("pop-2")
	game.MarkNoOne()

	settings := NewSettingsService(nil, testDefaults(), zap.NewNop())
	restored := NewGameService(testLibrary(t), settings, repo, zap.NewNop())

	if got := restored.Scores()[models.TeamB]; got != 100 {
		t.Errorf("restored score B = %d, want 100", got)
	}
	if restored.Picker() != models.TeamB {
		t.Errorf("restored picker = %q, want B", restored.Picker())
	}
	if !restored.IsUsed("pop-1") || !restored.IsUsed("pop-2") {
		t.Error("consumed tiles not restored")
	}
	if restored.IsUsed("rock-3") {
		t.Error("untouched tile restored as used")
	}
	if restored.Active() != nil {
		t.Error("active question restored; it should not be persisted")
	}
}

func TestSnapshotIgnoresUnknownQuestionIDs(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewGameRepository(db)

	err := repo.SaveSnapshot(models.GameSnapshot{
		Scores:          map[models.Team]int{models.TeamA: 50, models.TeamB: 0},
		Picker:          models.TeamA,
		UsedQuestionIDs: []string{"pop-1", "gone-from-dataset"},
	})
	if err != nil {
		t.Fatal(err)
	}

	settings := NewSettingsService(nil, testDefaults(), zap.NewNop())
	game := NewGameService(testLibrary(t), settings, repo, zap.NewNop())

	if !game.IsUsed("pop-1") {
		t.Error("known tile not restored")
	}
	if game.IsUsed("gone-from-dataset") {
		t.Error("stale id restored")
	}
}
