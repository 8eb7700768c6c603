package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rossw/tvrx/internal/models"
	"github.com/rossw/tvrx/internal/shared"
)

// RecSnapshot is a persisted recommendation batch for one (profile, intent)
// pair. Only the most recent batch is kept per pair.
type RecSnapshot struct {
	ID        string
	Profile   string
	Intent    string
	FetchedAt time.Time
	Items     []models.RecommendationItem
}

// RecSnapshotRepository persists recommendation batches so the last good
// results survive restarts and can be shown while the API is unreachable.
type RecSnapshotRepository struct {
	db *sql.DB
}

// NewRecSnapshotRepository creates a new RecSnapshotRepository with the given database connection
func NewRecSnapshotRepository(db *sql.DB) *RecSnapshotRepository {
	return &RecSnapshotRepository{db: db}
}

// Save upserts the batch for (profile, intent), replacing any previous snapshot.
func (r *RecSnapshotRepository) Save(profile, intent string, items []models.RecommendationItem) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	query := `
		INSERT INTO rec_snapshots (id, profile, intent, fetched_at, payload)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (profile, intent) DO UPDATE SET
			fetched_at = excluded.fetched_at,
			payload = excluded.payload
	`

	_, err = r.db.Exec(query, shared.GenerateID(), profile, intent, time.Now(), string(payload))
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	return nil
}

// Get retrieves the snapshot for (profile, intent).
// Returns shared.ErrNotFound when no batch has been saved for the pair.
func (r *RecSnapshotRepository) Get(profile, intent string) (*RecSnapshot, error) {
	query := `
		SELECT id, profile, intent, fetched_at, payload
		FROM rec_snapshots
		WHERE profile = ? AND intent = ?
	`

	var (
		snap    RecSnapshot
		payload string
	)
	err := r.db.QueryRow(query, profile, intent).Scan(&snap.ID, &snap.Profile, &snap.Intent, &snap.FetchedAt, &payload)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: no snapshot for %s/%s", shared.ErrNotFound, profile, intent)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan snapshot: %w", err)
	}

	if err := json.Unmarshal([]byte(payload), &snap.Items); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot payload: %w", err)
	}

	return &snap, nil
}

// List retrieves all stored snapshots ordered by fetch time, newest first.
func (r *RecSnapshotRepository) List() ([]*RecSnapshot, error) {
	query := `
		SELECT id, profile, intent, fetched_at, payload
		FROM rec_snapshots
		ORDER BY fetched_at DESC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []*RecSnapshot
	for rows.Next() {
		var (
			snap    RecSnapshot
			payload string
		)
		if err := rows.Scan(&snap.ID, &snap.Profile, &snap.Intent, &snap.FetchedAt, &payload); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		if err := json.Unmarshal([]byte(payload), &snap.Items); err != nil {
			return nil, fmt.Errorf("failed to decode snapshot payload: %w", err)
		}
		snaps = append(snaps, &snap)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return snaps, nil
}

// Delete removes the snapshot for (profile, intent).
func (r *RecSnapshotRepository) Delete(profile, intent string) error {
	result, err := r.db.Exec(`DELETE FROM rec_snapshots WHERE profile = ? AND intent = ?`, profile, intent)
	if err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: no snapshot for %s/%s", shared.ErrNotFound, profile, intent)
	}

	return nil
}
