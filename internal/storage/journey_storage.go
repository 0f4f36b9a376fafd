package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Tofuswang/journey/internal/models"
	"modernc.org/sqlite"
)

// created_at is stored as fixed-width UTC text so that string order is time order.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z"

// SQLite extended result codes for constraint violations.
const (
	sqliteConstraintPrimaryKey = 1555
	sqliteConstraintUnique     = 2067
)

func (s *SQLiteStore) CreateJourney(ctx context.Context, rec models.JourneyRecord) error {
	stages, err := encodeStages(rec)
	if err != nil {
		return err
	}
	args := []any{
		rec.ID,
		nullable(rec.AuthorName),
		rec.Title,
		rec.Context,
		rec.Goal,
		rec.CreatedAt.UTC().Format(sqliteTimeLayout),
	}
	args = append(args, stages...)

	stmt, err := s.db.PrepareContext(ctx, sqliteDialect.insertQuery())
	if err != nil {
		return fmt.Errorf("prepare insert journey: %w", err)
	}
	defer stmt.Close()

	if _, err = stmt.ExecContext(ctx, args...); err != nil {
		var sqliteErr *sqlite.Error
		if errors.As(err, &sqliteErr) {
			switch sqliteErr.Code() {
			case sqliteConstraintPrimaryKey, sqliteConstraintUnique:
				return ErrDuplicateJourney
			}
		}
		return fmt.Errorf("insert journey %s: %w", rec.ID, err)
	}
	return nil
}

func (s *SQLiteStore) ListJourneys(ctx context.Context, f ListFilter) ([]models.JourneyRecord, error) {
	query, args := sqliteDialect.listQuery(f)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list journeys: %w", err)
	}
	defer rows.Close()

	records := []models.JourneyRecord{}
	for rows.Next() {
		rec, err := scanSQLiteJourney(rows)
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

func (s *SQLiteStore) GetJourney(ctx context.Context, id string) (models.JourneyRecord, error) {
	row := s.db.QueryRowContext(ctx, sqliteDialect.getQuery(), id)
	rec, err := scanSQLiteJourney(row)
	if errors.Is(err, sql.ErrNoRows) {
		return rec, ErrJourneyNotFound
	}
	return rec, err
}

func (s *SQLiteStore) CountJourneys(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, countQuery).Scan(&n); err != nil {
		return 0, fmt.Errorf("count journeys: %w", err)
	}
	return n, nil
}

func (s *SQLiteStore) CountContributors(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, contributorsQuery).Scan(&n); err != nil {
		return 0, fmt.Errorf("count contributors: %w", err)
	}
	return n, nil
}

func (s *SQLiteStore) RecentContributions(ctx context.Context, limit int) ([]models.Contribution, error) {
	rows, err := s.db.QueryContext(ctx, sqliteDialect.recentQuery(), limit)
	if err != nil {
		return nil, fmt.Errorf("recent contributions: %w", err)
	}
	defer rows.Close()

	out := []models.Contribution{}
	for rows.Next() {
		var c models.Contribution
		var author sql.NullString
		var createdStr string
		if err := rows.Scan(&author, &c.Title, &createdStr); err != nil {
			return nil, fmt.Errorf("scan contribution: %w", err)
		}
		c.AuthorName = author.String
		if c.CreatedAt, err = time.Parse(sqliteTimeLayout, createdStr); err != nil {
			return nil, fmt.Errorf("parse created_at %q: %w", createdStr, err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteJourney(row rowScanner) (models.JourneyRecord, error) {
	var rec models.JourneyRecord
	var author sql.NullString
	var createdStr string
	var raw [models.StageCount]string

	dest := []any{&rec.ID, &author, &rec.Title, &rec.Context, &rec.Goal, &createdStr}
	for i := range raw {
		dest = append(dest, &raw[i])
	}
	if err := row.Scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return rec, err
		}
		return rec, fmt.Errorf("scan journey: %w", err)
	}

	rec.AuthorName = author.String
	created, err := time.Parse(sqliteTimeLayout, createdStr)
	if err != nil {
		return rec, fmt.Errorf("parse created_at %q: %w", createdStr, err)
	}
	rec.CreatedAt = created
	if err := decodeStages(raw, &rec); err != nil {
		return rec, err
	}
	return rec, nil
}
