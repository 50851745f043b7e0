package repositories

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weathervista/internal/models"
)

// testRepo connects to TEST_DATABASE_URL and starts from an empty table.
func testRepo(t *testing.T) *LookupRepository {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		t.Skipf("postgres unavailable: %v", err)
	}

	repo := NewLookupRepository(db)
	require.NoError(t, repo.Migrate(ctx))
	_, err = db.ExecContext(ctx, "TRUNCATE weather_lookups")
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })
	return repo
}

func event(city, endpoint string, status int, at time.Time) models.LookupEvent {
	return models.LookupEvent{
		ID:         uuid.NewString(),
		City:       city,
		Endpoint:   endpoint,
		Status:     status,
		DurationMS: 42,
		At:         at,
	}
}

func TestLookupRepository_TopCities(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()
	now := time.Now().UTC()

	for _, e := range []models.LookupEvent{
		event("Oslo", "weather", 200, now),
		event("oslo", "weather", 200, now),
		event("Paris", "weather", 200, now),
		event("Paris", "forecast", 200, now),
		event("Atlantis", "weather", 404, now),
		event("Berlin", "weather", 200, now.Add(-48*time.Hour)),
	} {
		require.NoError(t, repo.Save(ctx, e))
	}

	top, err := repo.TopCities(ctx, now.Add(-24*time.Hour), 5)
	require.NoError(t, err)
	assert.Equal(t, []models.PopularCity{
		{City: "oslo", Lookups: 2},
		{City: "paris", Lookups: 1},
	}, top)
}

func TestLookupRepository_SaveIsIdempotent(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()
	e := event("Oslo", "weather", 200, time.Now().UTC())

	require.NoError(t, repo.Save(ctx, e))
	require.NoError(t, repo.Save(ctx, e))

	top, err := repo.TopCities(ctx, time.Now().Add(-time.Hour), 5)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, 1, top[0].Lookups)
}

func TestLookupRepository_DeleteBefore(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, repo.Save(ctx, event("Old", "weather", 200, now.Add(-40*24*time.Hour))))
	require.NoError(t, repo.Save(ctx, event("New", "weather", 200, now)))

	n, err := repo.DeleteBefore(ctx, now.Add(-30*24*time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	var left int
	require.NoError(t, repo.DB().QueryRowContext(ctx, "SELECT COUNT(*) FROM weather_lookups").Scan(&left))
	assert.Equal(t, 1, left)
}
