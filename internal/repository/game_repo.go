package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"jeoparty/internal/database"
	"jeoparty/internal/models"
)

// GameRepository persists the single game snapshot so a server restart
// restores scores, the picking team and the consumed tiles.
type GameRepository struct {
	db *database.DB
}

func NewGameRepository(db *database.DB) *GameRepository {
	return &GameRepository{db: db}
}

// SaveSnapshot writes the snapshot into the fixed single row
func (r *GameRepository) SaveSnapshot(snapshot models.GameSnapshot) error {
	scores, err := json.Marshal(snapshot.Scores)
	if err != nil {
		return fmt.Errorf("failed to encode scores: %w", err)
	}
	usedIDs, err := json.Marshal(snapshot.UsedQuestionIDs)
	if err != nil {
		return fmt.Errorf("failed to encode used question ids: %w", err)
	}

	_, err = r.db.Exec(r.db.Dialect.UpsertGameState(), string(scores), string(snapshot.Picker), string(usedIDs))
	return err
}

// LoadSnapshot reads the stored snapshot. No snapshot yet, or a corrupt one,
// yields nil; corrupt rows are cleared best-effort.
func (r *GameRepository) LoadSnapshot() (*models.GameSnapshot, error) {
	var scoresJSON, picker, usedIDsJSON string
	query := `SELECT scores, picker, used_ids FROM game_state WHERE id = 1`
	err := r.db.QueryRow(query).Scan(&scoresJSON, &picker, &usedIDsJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	snapshot := models.GameSnapshot{Picker: models.Team(picker)}
	if err := json.Unmarshal([]byte(scoresJSON), &snapshot.Scores); err != nil {
		_ = r.ClearSnapshot()
		return nil, nil
	}
	if err := json.Unmarshal([]byte(usedIDsJSON), &snapshot.UsedQuestionIDs); err != nil {
		_ = r.ClearSnapshot()
		return nil, nil
	}
	if _, ok := models.ParseTeam(picker); !ok {
		snapshot.Picker = models.TeamA
	}

	return &snapshot, nil
}

// ClearSnapshot removes the stored snapshot
func (r *GameRepository) ClearSnapshot() error {
	_, err := r.db.Exec(`DELETE FROM game_state WHERE id = 1`)
	return err
}
