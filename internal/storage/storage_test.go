package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func redisURL() string {
	if u := os.Getenv("TEST_REDIS_URL"); u != "" {
		return u
	}
	return "redis://localhost:6379/15"
}

// backends returns every KV implementation reachable in this environment.
func backends(t *testing.T) map[string]KV {
	t.Helper()
	out := map[string]KV{
		"memory": NewMemoryStore(),
	}

	fs, err := NewFileStore(filepath.Join(t.TempDir(), "nested", "storage.json"))
	require.NoError(t, err)
	out["file"] = fs

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if kv, err := Open(ctx, Options{Backend: "redis", RedisURL: redisURL()}); err == nil {
		rs := kv.(*RedisStore)
		rs.client.Del(context.Background(), redisPrefix+KeyRecentCities, redisPrefix+KeyLastCity)
		out["redis"] = rs
	} else {
		t.Logf("redis backend skipped: %v", err)
	}

	t.Cleanup(func() {
		for _, kv := range out {
			kv.Close()
		}
	})
	return out
}

func TestKV_RoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := kv.Get(ctx, KeyLastCity)
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, kv.Set(ctx, KeyLastCity, "Tokyo"))
			require.NoError(t, kv.Set(ctx, KeyLastCity, "Paris"))

			got, err := kv.Get(ctx, KeyLastCity)
			require.NoError(t, err)
			assert.Equal(t, "Paris", got)
		})
	}
}

func TestHistory_RoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			h := NewHistory(kv)

			recent, last, err := h.Load(ctx)
			require.NoError(t, err)
			assert.Empty(t, recent)
			assert.Empty(t, last)

			require.NoError(t, h.Save(ctx, []string{"Tokyo", "Paris"}, "Tokyo"))

			recent, last, err = h.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"Tokyo", "Paris"}, recent)
			assert.Equal(t, "Tokyo", last)
		})
	}
}

func TestHistory_CorruptRecentIsEmpty(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryStore()
	require.NoError(t, kv.Set(ctx, KeyRecentCities, "{not a list"))
	require.NoError(t, kv.Set(ctx, KeyLastCity, "Oslo"))

	recent, last, err := NewHistory(kv).Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, recent)
	assert.Equal(t, "Oslo", last)
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "storage.json")

	first, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, KeyLastCity, "Lisbon"))

	second, err := NewFileStore(path)
	require.NoError(t, err)
	got, err := second.Get(ctx, KeyLastCity)
	require.NoError(t, err)
	assert.Equal(t, "Lisbon", got)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"lastCity": "Lisbon"`)
}

func TestFileStore_FailedWriteKeepsPreviousValue(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "nested")
	fs, err := NewFileStore(filepath.Join(dir, "storage.json"))
	require.NoError(t, err)
	require.NoError(t, fs.Set(ctx, KeyLastCity, "Oslo"))

	// A file where the directory should be makes every flush fail.
	require.NoError(t, os.RemoveAll(dir))
	require.NoError(t, os.WriteFile(dir, []byte("x"), 0o600))

	assert.Error(t, fs.Set(ctx, KeyLastCity, "Paris"))
	assert.Error(t, fs.Set(ctx, KeyRecentCities, `["Paris"]`))

	got, err := fs.Get(ctx, KeyLastCity)
	require.NoError(t, err)
	assert.Equal(t, "Oslo", got)
	_, err = fs.Get(ctx, KeyRecentCities)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o600))

	_, err := NewFileStore(path)
	assert.Error(t, err)
}

func TestRedisStore_UsesPrefix(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	opt, err := redis.ParseURL(redisURL())
	require.NoError(t, err)
	client := redis.NewClient(opt)
	defer client.Close()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("redis unavailable: %v", err)
	}

	s := NewRedisStore(redis.NewClient(opt))
	defer s.Close()
	require.NoError(t, s.Set(ctx, "probe", "1"))

	v, err := client.Get(ctx, "weathervista:probe").Result()
	require.NoError(t, err)
	assert.Equal(t, "1", v)
	client.Del(ctx, "weathervista:probe")
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, err := Open(context.Background(), Options{Backend: "etcd"})
	assert.Error(t, err)
}
