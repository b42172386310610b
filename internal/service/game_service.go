package service

import (
	"sync"

	"go.uber.org/zap"

	"jeoparty/internal/dataset"
	"jeoparty/internal/models"
	"jeoparty/internal/repository"
)

// TrackStarter starts playback for an opened question without blocking the
// caller. The generation lets detached completions be matched against the
// open transition that spawned them.
type TrackStarter interface {
	StartForQuestion(question models.Question, generation uint64)
}

// GameService is the authoritative game session state machine. Every
// transition takes the mutex, checks its preconditions, and silently does
// nothing when they fail; the host UI never sees transition errors.
type GameService struct {
	mu       sync.Mutex
	logger   *zap.Logger
	library  *dataset.Library
	settings *SettingsService
	player   TrackStarter
	repo     *repository.GameRepository

	scores     map[models.Team]int
	picker     models.Team
	used       map[string]bool
	active     *models.ActiveQuestion
	generation uint64
}

// NewGameService builds a fresh session, restoring scores, picker and
// consumed tiles from the saved snapshot when one exists. Player may be nil
// until BindPlayer is called.
func NewGameService(library *dataset.Library, settings *SettingsService, repo *repository.GameRepository, logger *zap.Logger) *GameService {
	s := &GameService{
		logger:   logger,
		library:  library,
		settings: settings,
		repo:     repo,
		scores:   map[models.Team]int{models.TeamA: 0, models.TeamB: 0},
		picker:   models.TeamA,
		used:     make(map[string]bool),
	}

	if repo != nil {
		snapshot, err := repo.LoadSnapshot()
		if err != nil {
			logger.Warn("failed to load game snapshot", zap.Error(err))
		} else if snapshot != nil {
			for team, score := range snapshot.Scores {
				if team == models.TeamA || team == models.TeamB {
					s.scores[team] = score
				}
			}
			s.picker = snapshot.Picker
			for _, id := range snapshot.UsedQuestionIDs {
				if _, _, ok := library.Question(id); ok {
					s.used[id] = true
				}
			}
		}
	}

	return s
}

// BindPlayer attaches the playback starter after construction. The playback
// side needs the game's generation check, so the two are wired in two steps.
func (s *GameService) BindPlayer(player TrackStarter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.player = player
}

// Open activates the question with the given id. A no-op when a question is
// already open, the tile is consumed, or the id is unknown. Playback starts
// in the background after the board state has changed.
func (s *GameService) Open(id string) {
	s.mu.Lock()

	if s.active != nil || s.used[id] {
		s.mu.Unlock()
		return
	}
	question, categoryName, ok := s.library.Question(id)
	if !ok {
		s.mu.Unlock()
		return
	}

	s.generation++
	generation := s.generation
	s.active = &models.ActiveQuestion{
		CategoryName: categoryName,
		Question:     question,
		Points:       s.settings.Current().PointsForLevel(question.Level),
		Generation:   generation,
	}
	player := s.player
	s.mu.Unlock()

	s.logger.Info("question opened",
		zap.String("question_id", id),
		zap.String("category", categoryName),
		zap.Int("level", question.Level))

	if player != nil {
		player.StartForQuestion(question, generation)
	}
}

// ToggleHint flips hint visibility on the open question
func (s *GameService) ToggleHint() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil {
		return
	}
	s.active.HintShown = !s.active.HintShown
}

// ToggleAnswer flips answer visibility on the open question
func (s *GameService) ToggleAnswer() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil {
		return
	}
	s.active.AnswerShown = !s.active.AnswerShown
}

// AwardWinner credits the open question's points to a team, consumes the
// tile, and closes the question. The picking team only changes through
// SetPicker.
func (s *GameService) AwardWinner(team models.Team) {
	s.mu.Lock()

	if s.active == nil || (team != models.TeamA && team != models.TeamB) {
		s.mu.Unlock()
		return
	}

	points := s.active.Points
	id := s.active.Question.ID
	s.scores[team] += points
	s.used[id] = true
	s.active = nil
	s.mu.Unlock()

	s.logger.Info("question awarded",
		zap.String("question_id", id),
		zap.String("team", string(team)),
		zap.Int("points", points))
	s.persist()
}

// MarkNoOne consumes the open question with no score change. The picking
// team stays as it was.
func (s *GameService) MarkNoOne() {
	s.mu.Lock()

	if s.active == nil {
		s.mu.Unlock()
		return
	}
	s.used[s.active.Question.ID] = true
	s.active = nil
	s.mu.Unlock()

	s.persist()
}

// WrongPick records that the picking team answered wrong. With negative
// scoring on, the picker loses the question's points. The steal value names
// the team that stole the answer, or anything else for "no one"; a steal
// only scores when steals are enabled. The tile is consumed either way and
// the picker keeps the next pick.
func (s *GameService) WrongPick(steal string) {
	s.mu.Lock()

	if s.active == nil {
		s.mu.Unlock()
		return
	}

	settings := s.settings.Current()
	points := s.active.Points
	id := s.active.Question.ID

	if settings.NegativeScoring {
		s.scores[s.picker] -= points
	}
	if stealer, ok := models.ParseTeam(steal); ok && settings.AllowSteals {
		s.scores[stealer] += points
	}
	s.used[id] = true
	s.active = nil
	s.mu.Unlock()

	s.logger.Info("wrong pick recorded",
		zap.String("question_id", id),
		zap.String("steal", steal))
	s.persist()
}

// Close dismisses the open question without consuming it; the tile can be
// opened again later.
func (s *GameService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.active = nil
}

// SetPicker hands the pick to a team directly
func (s *GameService) SetPicker(team models.Team) {
	s.mu.Lock()

	if team != models.TeamA && team != models.TeamB {
		s.mu.Unlock()
		return
	}
	s.picker = team
	s.mu.Unlock()

	s.persist()
}

// Reset zeroes both scores, restores every tile, and closes any open
// question. The picking team is kept.
func (s *GameService) Reset() {
	s.mu.Lock()
	s.scores = map[models.Team]int{models.TeamA: 0, models.TeamB: 0}
	s.used = make(map[string]bool)
	s.active = nil
	s.mu.Unlock()

	s.logger.Info("game reset")
	s.persist()
}

// Scores returns a copy of the current team scores
func (s *GameService) Scores() map[models.Team]int {
	s.mu.Lock()
	defer s.mu.Unlock()

	scores := make(map[models.Team]int, len(s.scores))
	for team, score := range s.scores {
		scores[team] = score
	}
	return scores
}

// Picker returns the team that picks next
func (s *GameService) Picker() models.Team {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.picker
}

// Active returns a copy of the open question, or nil
func (s *GameService) Active() *models.ActiveQuestion {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil {
		return nil
	}
	active := *s.active
	return &active
}

// IsUsed reports whether a tile has been consumed
func (s *GameService) IsUsed(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.used[id]
}

// IsCurrent reports whether a playback generation still belongs to the open
// question. Stale completions keep quiet.
func (s *GameService) IsCurrent(generation uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active != nil && s.active.Generation == generation
}

// persist saves the durable snapshot best-effort; the in-memory state is
// authoritative either way.
func (s *GameService) persist() {
	if s.repo == nil {
		return
	}

	s.mu.Lock()
	snapshot := models.GameSnapshot{
		Scores:          map[models.Team]int{models.TeamA: s.scores[models.TeamA], models.TeamB: s.scores[models.TeamB]},
		Picker:          s.picker,
		UsedQuestionIDs: make([]string, 0, len(s.used)),
	}
	for id := range s.used {
		snapshot.UsedQuestionIDs = append(snapshot.UsedQuestionIDs, id)
	}
	s.mu.Unlock()

	if err := s.repo.SaveSnapshot(snapshot); err != nil {
		s.logger.Warn("failed to save game snapshot", zap.Error(err))
	}
}
