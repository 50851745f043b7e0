package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"weathervista/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS weather_lookups (
	id          UUID PRIMARY KEY,
	city        TEXT NOT NULL,
	endpoint    TEXT NOT NULL,
	status      INTEGER NOT NULL,
	duration_ms BIGINT NOT NULL,
	looked_up   TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS weather_lookups_looked_up_idx ON weather_lookups (looked_up);
`

type LookupRepository struct {
	db *sql.DB
}

func NewLookupRepository(db *sql.DB) *LookupRepository {
	return &LookupRepository{db: db}
}

func (r *LookupRepository) DB() *sql.DB {
	return r.db
}

// Migrate creates the lookup table if it does not exist.
func (r *LookupRepository) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate weather_lookups: %w", err)
	}
	return nil
}

// Save is idempotent on event id so redelivered Kafka records are harmless.
func (r *LookupRepository) Save(ctx context.Context, e models.LookupEvent) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO weather_lookups (id, city, endpoint, status, duration_ms, looked_up)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING
	`, e.ID, e.City, e.Endpoint, e.Status, e.DurationMS, e.At)
	if err != nil {
		return fmt.Errorf("save lookup %s: %w", e.ID, err)
	}
	return nil
}

// TopCities returns the most looked-up cities with a successful current
// conditions reply since the given time.
func (r *LookupRepository) TopCities(ctx context.Context, since time.Time, limit int) ([]models.PopularCity, error) {
	const sqlQuery = `
SELECT lower(city) AS city, COUNT(*) AS cnt
FROM weather_lookups
WHERE endpoint = 'weather'
  AND status = 200
  AND looked_up >= $1
GROUP BY lower(city)
ORDER BY cnt DESC, city ASC
LIMIT $2;
`

	rows, err := r.db.QueryContext(ctx, sqlQuery, since, limit)
	if err != nil {
		return nil, fmt.Errorf("query top cities: %w", err)
	}
	defer rows.Close()

	top := make([]models.PopularCity, 0, limit)
	for rows.Next() {
		var p models.PopularCity
		if err := rows.Scan(&p.City, &p.Lookups); err != nil {
			return nil, err
		}
		p.City = strings.TrimSpace(p.City)
		top = append(top, p)
	}

	return top, rows.Err()
}

// DeleteBefore prunes lookups older than cutoff and reports how many went.
func (r *LookupRepository) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM weather_lookups WHERE looked_up < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune lookups: %w", err)
	}
	return res.RowsAffected()
}
