package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/Tofuswang/journey/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgUniqueViolation = "23505"

const createJourneyMapsTablePG = `
CREATE TABLE IF NOT EXISTS journey_maps (
  journey_id        TEXT PRIMARY KEY,
  author_name       TEXT,
  journey_title     TEXT NOT NULL,
  context           TEXT NOT NULL DEFAULT '',
  goal              TEXT NOT NULL DEFAULT '',
  created_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
  step1_trigger     JSONB NOT NULL,
  step2_interaction JSONB NOT NULL,
  step3_trust       JSONB NOT NULL,
  step4_turning     JSONB NOT NULL,
  step5_conclusion  JSONB NOT NULL,
  step6_aftermath   JSONB NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_journey_maps_created_at ON journey_maps (created_at DESC);`

// PostgresStore keeps journey maps in a hosted PostgreSQL database.
type PostgresStore struct {
	Pool *pgxpool.Pool
}

// ConnectPostgres opens a pool for dsn and creates the table if missing.
func ConnectPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("pgxpool: %w", err)
	}
	store := &PostgresStore{Pool: pool}
	if err := store.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, createJourneyMapsTablePG); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create journey_maps table: %w", err)
	}
	return store, nil
}

func (p *PostgresStore) Ping(ctx context.Context) error {
	var one int
	return p.Pool.QueryRow(ctx, "select 1").Scan(&one)
}

func (p *PostgresStore) Close() error {
	if p.Pool != nil {
		p.Pool.Close()
	}
	return nil
}

func (p *PostgresStore) CreateJourney(ctx context.Context, rec models.JourneyRecord) error {
	stages, err := encodeStages(rec)
	if err != nil {
		return err
	}
	args := []any{rec.ID, nullable(rec.AuthorName), rec.Title, rec.Context, rec.Goal, rec.CreatedAt.UTC()}
	args = append(args, stages...)

	if _, err := p.Pool.Exec(ctx, postgresDialect.insertQuery(), args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrDuplicateJourney
		}
		return fmt.Errorf("insert journey %s: %w", rec.ID, err)
	}
	return nil
}

func (p *PostgresStore) ListJourneys(ctx context.Context, f ListFilter) ([]models.JourneyRecord, error) {
	query, args := postgresDialect.listQuery(f)
	rows, err := p.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list journeys: %w", err)
	}
	defer rows.Close()

	records := []models.JourneyRecord{}
	for rows.Next() {
		rec, err := scanPostgresJourney(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list journeys: %w", err)
	}
	return records, nil
}

func (p *PostgresStore) GetJourney(ctx context.Context, id string) (models.JourneyRecord, error) {
	rec, err := scanPostgresJourney(p.Pool.QueryRow(ctx, postgresDialect.getQuery(), id))
	if errors.Is(err, pgx.ErrNoRows) {
		return rec, ErrJourneyNotFound
	}
	return rec, err
}

func (p *PostgresStore) CountJourneys(ctx context.Context) (int64, error) {
	var n int64
	if err := p.Pool.QueryRow(ctx, countQuery).Scan(&n); err != nil {
		return 0, fmt.Errorf("count journeys: %w", err)
	}
	return n, nil
}

func (p *PostgresStore) CountContributors(ctx context.Context) (int64, error) {
	var n int64
	if err := p.Pool.QueryRow(ctx, contributorsQuery).Scan(&n); err != nil {
		return 0, fmt.Errorf("count contributors: %w", err)
	}
	return n, nil
}

func (p *PostgresStore) RecentContributions(ctx context.Context, limit int) ([]models.Contribution, error) {
	rows, err := p.Pool.Query(ctx, postgresDialect.recentQuery(), limit)
	if err != nil {
		return nil, fmt.Errorf("recent contributions: %w", err)
	}
	defer rows.Close()

	out := []models.Contribution{}
	for rows.Next() {
		var c models.Contribution
		var author *string
		if err := rows.Scan(&author, &c.Title, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan contribution: %w", err)
		}
		if author != nil {
			c.AuthorName = *author
		}
		c.CreatedAt = c.CreatedAt.UTC()
		out = append(out, c)
	}
	return out, rows.Err()
}

func scanPostgresJourney(row rowScanner) (models.JourneyRecord, error) {
	var rec models.JourneyRecord
	var author *string
	var raw [models.StageCount]string

	dest := []any{&rec.ID, &author, &rec.Title, &rec.Context, &rec.Goal, &rec.CreatedAt}
	for i := range raw {
		dest = append(dest, &raw[i])
	}
	if err := row.Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return rec, err
		}
		return rec, fmt.Errorf("scan journey: %w", err)
	}
	if author != nil {
		rec.AuthorName = *author
	}
	rec.CreatedAt = rec.CreatedAt.UTC()
	if err := decodeStages(raw, &rec); err != nil {
		return rec, err
	}
	return rec, nil
}
