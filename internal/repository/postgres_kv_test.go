package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MelaShop/Mela-Shop-bd/internal/db"
)

// requirePostgres skips unless MELA_TEST_DATABASE_URL points at a database.
func requirePostgres(t *testing.T) *PostgresKV {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping Postgres test in short mode")
	}
	url := os.Getenv("MELA_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("MELA_TEST_DATABASE_URL not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	pool, err := db.Connect(ctx, url)
	if err != nil {
		t.Skipf("Postgres not available: %v", err)
	}
	t.Cleanup(pool.Close)
	return NewPostgresKV(pool)
}

func TestPostgresKV_RoundTrip(t *testing.T) {
	kv := requirePostgres(t)
	ctx := context.Background()
	key := "test:" + time.Now().Format("20060102150405.000000")
	t.Cleanup(func() { _ = kv.Delete(ctx, key) })

	_, ok, err := kv.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Set(ctx, key, "one"))
	require.NoError(t, kv.Set(ctx, key, "two"))
	v, ok, err := kv.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "two", v)
}

func TestPostgresKV_SetMany(t *testing.T) {
	kv := requirePostgres(t)
	ctx := context.Background()
	a := "test:a:" + time.Now().Format("150405.000000")
	b := "test:b:" + time.Now().Format("150405.000000")
	t.Cleanup(func() {
		_ = kv.Delete(ctx, a)
		_ = kv.Delete(ctx, b)
	})

	require.NoError(t, kv.SetMany(ctx, map[string]string{a: "1", b: "2"}))
	v, _, err := kv.Get(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, "2", v)
}
