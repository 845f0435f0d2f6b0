// Package repository содержит хранилище сессий CMS в PostgreSQL.
package repository

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// PostgresRepository хранит значения сессий (токен, email, роль) в PostgreSQL.
type PostgresRepository struct {
	pool   *pgxpool.Pool
	delays []time.Duration
}

// NewPostgresRepository создаёт новый репозиторий и инициализирует схему БД через миграции.
func NewPostgresRepository(dsn string) (*PostgresRepository, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse pool config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	r := &PostgresRepository{
		pool:   pool,
		delays: []time.Duration{1 * time.Second, 3 * time.Second, 5 * time.Second},
	}

	if err := r.runMigrations(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return r, nil
}

func (r *PostgresRepository) runMigrations(ctx context.Context) error {
	db := stdlib.OpenDBFromPool(r.pool)
	defer db.Close()

	goose.SetBaseFS(migrationsFS)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	return nil
}

func (r *PostgresRepository) withRetry(ctx context.Context, fn func() error) error {
	var err error

	for i := 0; i <= len(r.delays); i++ {
		err = fn()
		if err == nil || !retryable(err) || i == len(r.delays) {
			return err
		}

		timer := time.NewTimer(r.delays[i])
		select {
		case <-ctx.Done():
			timer.Stop()
			return err
		case <-timer.C:
		}
	}
	return err
}

// retryable отделяет временные ошибки: сериализация, дедлок, обрыв соединения.
func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.SerializationFailure || pgErr.Code == pgerrcode.DeadlockDetected
	}

	return isConnectionError(err)
}

func isConnectionError(err error) bool {
	// Упрощенная проверка на ошибки соединения
	return strings.Contains(err.Error(), "connection refused") ||
		strings.Contains(err.Error(), "broken pipe") ||
		strings.Contains(err.Error(), "connection reset by peer")
}

// Close закрывает пул соединений с БД.
func (r *PostgresRepository) Close() error {
	r.pool.Close()
	return nil
}

// Get возвращает все значения сессии. Неизвестная сессия даёт пустой набор.
func (r *PostgresRepository) Get(ctx context.Context, sessionID string) (map[string]string, error) {
	var values map[string]string

	err := r.withRetry(ctx, func() error {
		rows, err := r.pool.Query(ctx,
			`SELECT key, value FROM sessions WHERE session_id = $1`,
			sessionID,
		)
		if err != nil {
			return fmt.Errorf("select session: %w", err)
		}

		collected, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) ([2]string, error) {
			var kv [2]string
			err := row.Scan(&kv[0], &kv[1])
			return kv, err
		})
		if err != nil {
			return fmt.Errorf("scan session: %w", err)
		}

		values = make(map[string]string, len(collected))
		for _, kv := range collected {
			values[kv[0]] = kv[1]
		}
		return nil
	})

	return values, err
}

// Set сохраняет значения сессии одной транзакцией.
func (r *PostgresRepository) Set(ctx context.Context, sessionID string, values map[string]string) error {
	return r.withRetry(ctx, func() error {
		tx, err := r.pool.Begin(ctx)
		if err != nil {
			return fmt.Errorf("begin tx: %w", err)
		}
		defer tx.Rollback(ctx)

		batch := &pgx.Batch{}
		for k, v := range values {
			batch.Queue(
				`INSERT INTO sessions (session_id, key, value, updated_at)
				 VALUES ($1, $2, $3, now())
				 ON CONFLICT (session_id, key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
				sessionID, k, v,
			)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("upsert session: %w", err)
		}

		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("commit tx: %w", err)
		}
		return nil
	})
}

// Delete удаляет перечисленные ключи сессии.
func (r *PostgresRepository) Delete(ctx context.Context, sessionID string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	return r.withRetry(ctx, func() error {
		_, err := r.pool.Exec(ctx,
			`DELETE FROM sessions WHERE session_id = $1 AND key = ANY($2)`,
			sessionID, keys,
		)
		if err != nil {
			return fmt.Errorf("delete session keys: %w", err)
		}
		return nil
	})
}

// PurgeStale удаляет сессии, не обновлявшиеся дольше maxAge, и возвращает их идентификаторы.
func (r *PostgresRepository) PurgeStale(ctx context.Context, maxAge time.Duration) ([]string, error) {
	var purged []string

	err := r.withRetry(ctx, func() error {
		rows, err := r.pool.Query(ctx,
			`WITH purged AS (
			     DELETE FROM sessions
			     WHERE session_id IN (
			         SELECT session_id FROM sessions
			         GROUP BY session_id
			         HAVING max(updated_at) < now() - make_interval(secs => $1)
			     )
			     RETURNING session_id
			 )
			 SELECT DISTINCT session_id::text FROM purged`,
			maxAge.Seconds(),
		)
		if err != nil {
			return fmt.Errorf("purge sessions: %w", err)
		}
		ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
		if err != nil {
			return fmt.Errorf("purge sessions: %w", err)
		}
		purged = ids
		return nil
	})

	return purged, err
}
