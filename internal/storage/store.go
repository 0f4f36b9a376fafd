package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Tofuswang/journey/internal/models"
)

var (
	ErrDuplicateJourney = errors.New("journey id already exists")
	ErrJourneyNotFound  = errors.New("journey not found")
)

// JourneyStore persists journey maps. Records are inserted once and never
// updated or deleted.
type JourneyStore interface {
	CreateJourney(ctx context.Context, rec models.JourneyRecord) error
	// ListJourneys returns records newest first, optionally filtered.
	ListJourneys(ctx context.Context, f ListFilter) ([]models.JourneyRecord, error)
	GetJourney(ctx context.Context, id string) (models.JourneyRecord, error)
	CountJourneys(ctx context.Context) (int64, error)
	CountContributors(ctx context.Context) (int64, error)
	RecentContributions(ctx context.Context, limit int) ([]models.Contribution, error)
	Ping(ctx context.Context) error
	Close() error
}

// ListFilter narrows a listing. An empty (or blank) Query means no filter.
// Limit <= 0 means no limit.
type ListFilter struct {
	Query string
	Limit int
}

// Open connects to the configured backend ("sqlite" or "postgres") and
// makes sure the journey_maps table exists.
func Open(ctx context.Context, driver, dsn string) (JourneyStore, error) {
	switch driver {
	case "", "sqlite":
		return OpenSQLite(ctx, dsn)
	case "postgres":
		return ConnectPostgres(ctx, dsn)
	}
	return nil, fmt.Errorf("storage: unknown driver %q", driver)
}

// searchColumns are matched by the listing filter, OR-combined.
var searchColumns = []string{"journey_title", "context", "goal"}

func stageColumns() []string {
	defs := models.StageDefinitions()
	cols := make([]string, 0, len(defs))
	for _, def := range defs {
		cols = append(cols, def.Key)
	}
	return cols
}

type dialect struct {
	name        string
	like        string
	placeholder func(n int) string
	stageCast   string
	// fold wraps both sides of a LIKE when the backend cannot match
	// non-ASCII text case-insensitively on its own.
	fold func(expr string) string
}

var sqliteDialect = dialect{
	name:        "sqlite",
	like:        "LIKE",
	placeholder: func(int) string { return "?" },
	fold:        func(expr string) string { return foldFunc + "(" + expr + ")" },
}

var postgresDialect = dialect{
	name:        "postgres",
	like:        "ILIKE",
	placeholder: func(n int) string { return fmt.Sprintf("$%d", n) },
	stageCast:   "::text",
}

func (d dialect) selectColumns() string {
	cols := []string{"journey_id", "author_name", "journey_title", "context", "goal", "created_at"}
	for _, c := range stageColumns() {
		cols = append(cols, c+d.stageCast)
	}
	return strings.Join(cols, ", ")
}

func (d dialect) insertQuery() string {
	cols := append([]string{"journey_id", "author_name", "journey_title", "context", "goal", "created_at"}, stageColumns()...)
	ph := make([]string, len(cols))
	for i := range cols {
		ph[i] = d.placeholder(i + 1)
		// stage columns are jsonb on postgres
		if d.name == "postgres" && i >= 6 {
			ph[i] += "::jsonb"
		}
	}
	return "INSERT INTO journey_maps (" + strings.Join(cols, ", ") + ") VALUES (" + strings.Join(ph, ", ") + ")"
}

func (d dialect) listQuery(f ListFilter) (string, []any) {
	sql := "SELECT " + d.selectColumns() + " FROM journey_maps"
	var args []any
	idx := 1

	if term := strings.TrimSpace(f.Query); term != "" {
		pattern := likePattern(term)
		conds := make([]string, 0, len(searchColumns))
		for _, col := range searchColumns {
			lhs, rhs := col, d.placeholder(idx)
			if d.fold != nil {
				lhs, rhs = d.fold(lhs), d.fold(rhs)
			}
			conds = append(conds, fmt.Sprintf("%s %s %s ESCAPE '\\'", lhs, d.like, rhs))
			args = append(args, pattern)
			idx++
		}
		sql += " WHERE " + strings.Join(conds, " OR ")
	}

	sql += " ORDER BY created_at DESC, journey_id DESC"
	if f.Limit > 0 {
		sql += " LIMIT " + d.placeholder(idx)
		args = append(args, f.Limit)
	}
	return sql, args
}

func (d dialect) getQuery() string {
	return "SELECT " + d.selectColumns() + " FROM journey_maps WHERE journey_id = " + d.placeholder(1)
}

func (d dialect) recentQuery() string {
	return "SELECT author_name, journey_title, created_at FROM journey_maps ORDER BY created_at DESC, journey_id DESC LIMIT " + d.placeholder(1)
}

const (
	countQuery        = "SELECT COUNT(*) FROM journey_maps"
	contributorsQuery = "SELECT COUNT(DISTINCT author_name) FROM journey_maps WHERE author_name IS NOT NULL AND author_name <> ''"
)

// likePattern turns a search term into a substring pattern where the
// term's own wildcard characters match literally.
func likePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(term) + "%"
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
