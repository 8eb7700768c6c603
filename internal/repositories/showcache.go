package repositories

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rossw/tvrx/internal/models"
	"github.com/rossw/tvrx/internal/shared"
)

// ShowCacheRepository caches show summaries fetched from the catalog so
// `tvrx cache shows` can list them without a round trip.
type ShowCacheRepository struct {
	db *sql.DB
}

// NewShowCacheRepository creates a new ShowCacheRepository with the given database connection
func NewShowCacheRepository(db *sql.DB) *ShowCacheRepository {
	return &ShowCacheRepository{db: db}
}

// Put caches a single show summary. Re-caching an already known show id
// refreshes its title, year, and timestamp.
func (r *ShowCacheRepository) Put(show models.ShowSummary) error {
	query := `
		INSERT INTO show_cache (id, show_id, title, year_start, cached_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (show_id) DO UPDATE SET
			title = excluded.title,
			year_start = excluded.year_start,
			cached_at = excluded.cached_at
	`

	var year sql.NullInt64
	if show.YearStart != nil {
		year = sql.NullInt64{Int64: int64(*show.YearStart), Valid: true}
	}

	_, err := r.db.Exec(query, shared.GenerateID(), show.ID, show.Title, year, time.Now())
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return nil
		}
		return fmt.Errorf("failed to cache show: %w", err)
	}

	return nil
}

// PutAll caches a batch of show summaries, stopping on the first failure.
func (r *ShowCacheRepository) PutAll(shows []models.ShowSummary) error {
	for _, show := range shows {
		if err := r.Put(show); err != nil {
			return err
		}
	}
	return nil
}

// Get retrieves a cached show by its catalog id.
func (r *ShowCacheRepository) Get(showID string) (*models.ShowSummary, error) {
	query := `
		SELECT show_id, title, year_start
		FROM show_cache
		WHERE show_id = ?
	`

	var (
		show models.ShowSummary
		year sql.NullInt64
	)
	err := r.db.QueryRow(query, showID).Scan(&show.ID, &show.Title, &year)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: show %s not cached", shared.ErrNotFound, showID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan cached show: %w", err)
	}

	if year.Valid {
		y := int(year.Int64)
		show.YearStart = &y
	}

	return &show, nil
}

// List retrieves all cached shows ordered by title.
func (r *ShowCacheRepository) List() ([]models.ShowSummary, error) {
	query := `
		SELECT show_id, title, year_start
		FROM show_cache
		ORDER BY title ASC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query show cache: %w", err)
	}
	defer rows.Close()

	var shows []models.ShowSummary
	for rows.Next() {
		var (
			show models.ShowSummary
			year sql.NullInt64
		)
		if err := rows.Scan(&show.ID, &show.Title, &year); err != nil {
			return nil, fmt.Errorf("failed to scan cached show: %w", err)
		}
		if year.Valid {
			y := int(year.Int64)
			show.YearStart = &y
		}
		shows = append(shows, show)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return shows, nil
}

// Clear drops every cached show.
func (r *ShowCacheRepository) Clear() (int, error) {
	result, err := r.db.Exec(`DELETE FROM show_cache`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear show cache: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}

	return int(rows), nil
}
