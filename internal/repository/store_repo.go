package repository

import (
	"database/sql"
	"errors"

	"jeoparty/internal/database"
)

// StoreRepository is the durable key/value store backing the Spotify session,
// the transient PKCE verifier and the saved settings.
type StoreRepository struct {
	db *database.DB
}

func NewStoreRepository(db *database.DB) *StoreRepository {
	return &StoreRepository{db: db}
}

// Get retrieves a stored value by name. A missing entry is not an error.
func (r *StoreRepository) Get(name string) (string, bool, error) {
	var value string
	query := `SELECT value FROM store WHERE name = ?`
	err := r.db.QueryRow(query, name).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set updates or inserts a stored value
func (r *StoreRepository) Set(name, value string) error {
	_, err := r.db.Exec(r.db.Dialect.UpsertStore(), name, value)
	return err
}

// Delete removes a stored value; deleting a missing entry is a no-op
func (r *StoreRepository) Delete(name string) error {
	_, err := r.db.Exec(`DELETE FROM store WHERE name = ?`, name)
	return err
}

// All returns every stored entry, used by the backup tool
func (r *StoreRepository) All() (map[string]string, error) {
	rows, err := r.db.Query(`SELECT name, value FROM store`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make(map[string]string)
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, err
		}
		entries[name] = value
	}
	return entries, rows.Err()
}

// DeleteAll clears the store, used by destructive backup imports
func (r *StoreRepository) DeleteAll() error {
	_, err := r.db.Exec(`DELETE FROM store`)
	return err
}
