// Package store keeps the history of contract test runs in SQLite.
package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/exp/slog"
	_ "modernc.org/sqlite"

	"github.com/hairhealth/api-contract-tests/internal/model"
)

//go:embed migrations/*.sql
var migrations embed.FS

// ErrNotFound is returned when a requested run does not exist.
var ErrNotFound = errors.New("not found")

const DefaultListLimit = 50

type Store struct {
	db  *sqlx.DB
	log *slog.Logger
}

// New opens the database at path, creating it if necessary, and applies any pending
// migrations. An empty path opens a private in-memory database.
func New(path string, log *slog.Logger) (*Store, error) {
	db, err := sqlx.Connect("sqlite", connectionString(path))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	var version string
	if err := db.QueryRow("select sqlite_version()").Scan(&version); err != nil {
		db.Close()
		return nil, fmt.Errorf("retrieving sqlite version: %w", err)
	}
	log.Debug("opened run history", "path", path, "sqlite-version", version)

	s := &Store{db: db, log: log}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func connectionString(path string) string {
	options := []string{"_pragma=busy_timeout(5000)", "_pragma=foreign_keys(1)"}
	cs := path
	if path == "" {
		cs = "file:" + uuid.NewString()
		options = append(options, "mode=memory", "cache=shared")
	} else {
		options = append(options, "_pragma=journal_mode(WAL)")
	}
	return cs + "?" + strings.Join(options, "&")
}

func (s *Store) migrate() error {
	source, err := iofs.New(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("loading migrations: %w", err)
	}
	driver, err := sqlite.WithInstance(s.db.DB, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("loading migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", source, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}
	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		s.log.Debug("run history schema is up to date")
		return nil
	}
	if err != nil {
		return fmt.Errorf("applying migrations: %w", err)
	}
	return nil
}

// runRow is a Run as stored; times are kept as RFC 3339 text.
type runRow struct {
	model.Run
	StartTime string `db:"startTime"`
	EndTime   string `db:"endTime"`
}

type resultRow struct {
	model.Result
	RunID    int64 `db:"runId"`
	Position int   `db:"position"`
}

const runColumns = `id, baseUrl, startTime, endTime, total, passed, failed, warned, skipped,
	successRate, securityIssues, strict, success, assessment`

// SaveRun stores a run with its results and returns the new run's ID.
func (s *Store) SaveRun(ctx context.Context, run *model.Run) (int64, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("starting transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			s.log.Warn("could not roll back transaction", "error", err)
		}
	}()

	res, err := tx.NamedExecContext(ctx, `INSERT INTO Run
	(baseUrl, startTime, endTime, total, passed, failed, warned, skipped, successRate, securityIssues, strict, success, assessment) VALUES
	(:baseUrl, :startTime, :endTime, :total, :passed, :failed, :warned, :skipped, :successRate, :securityIssues, :strict, :success, :assessment)`,
		runRow{Run: *run, StartTime: timeFormat(run.Start), EndTime: timeFormat(run.End)})
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("retrieving inserted run id: %w", err)
	}

	for i, r := range run.Results {
		_, err := tx.NamedExecContext(ctx, `INSERT INTO Result
		(runId, position, phase, name, outcome, message, durationMs) VALUES
		(:runId, :position, :phase, :name, :outcome, :message, :durationMs)`,
			resultRow{Result: r, RunID: id, Position: i})
		if err != nil {
			return 0, fmt.Errorf("inserting result %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	return id, nil
}

// LoadRun returns a run with its results, or ErrNotFound.
func (s *Store) LoadRun(ctx context.Context, id int64) (*model.Run, error) {
	var row runRow
	err := s.db.GetContext(ctx, &row, `SELECT `+runColumns+` FROM Run WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading run %d: %w", id, err)
	}
	run, err := row.toRun()
	if err != nil {
		return nil, err
	}

	var results []resultRow
	err = s.db.SelectContext(ctx, &results,
		`SELECT runId, position, phase, name, outcome, message, durationMs FROM Result WHERE runId = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("loading results of run %d: %w", id, err)
	}
	run.Results = make([]model.Result, 0, len(results))
	for _, r := range results {
		run.Results = append(run.Results, r.Result)
	}
	return run, nil
}

// LoadRuns returns up to limit runs, newest first, without their results. A limit of zero
// or less means DefaultListLimit.
func (s *Store) LoadRuns(ctx context.Context, limit int) ([]*model.Run, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	var rows []runRow
	err := s.db.SelectContext(ctx, &rows, `SELECT `+runColumns+` FROM Run ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("loading runs: %w", err)
	}
	runs := make([]*model.Run, 0, len(rows))
	for _, row := range rows {
		run, err := row.toRun()
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, nil
}

func (row runRow) toRun() (*model.Run, error) {
	run := row.Run
	var err error
	if run.Start, err = parseTime(row.StartTime); err != nil {
		return nil, fmt.Errorf("parsing start time of run %d: %w", run.ID, err)
	}
	if run.End, err = parseTime(row.EndTime); err != nil {
		return nil, fmt.Errorf("parsing end time of run %d: %w", run.ID, err)
	}
	return &run, nil
}

func timeFormat(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
