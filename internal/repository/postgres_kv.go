package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresKV keeps blobs in the mela_kv table (see db.EnsureSchema).
type PostgresKV struct {
	DB *pgxpool.Pool
}

func NewPostgresKV(db *pgxpool.Pool) *PostgresKV {
	return &PostgresKV{DB: db}
}

func (r *PostgresKV) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	query := `SELECT value FROM mela_kv WHERE key=$1`
	if err := r.DB.QueryRow(ctx, query, key).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

const upsertKV = `
	INSERT INTO mela_kv (key, value, updated_at)
	VALUES ($1, $2, $3)
	ON CONFLICT (key)
	DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
`

func (r *PostgresKV) Set(ctx context.Context, key, value string) error {
	_, err := r.DB.Exec(ctx, upsertKV, key, value, time.Now())
	return err
}

// SetMany upserts every entry inside one transaction.
func (r *PostgresKV) SetMany(ctx context.Context, entries map[string]string) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	now := time.Now()
	for k, v := range entries {
		if _, err := tx.Exec(ctx, upsertKV, k, v, now); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *PostgresKV) Delete(ctx context.Context, key string) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM mela_kv WHERE key=$1`, key)
	return err
}
