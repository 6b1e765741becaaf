package history

import (
	"context"
	"fmt"
	"time"
)

// Run outcomes.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Run records a single bot invocation.
type Run struct {
	ID         int64
	Bot        string
	Outcome    string
	Detail     string
	StartedAt  time.Time
	FinishedAt time.Time
}

// RunRepo stores and queries bot runs.
type RunRepo struct {
	db *DB
}

// NewRunRepo creates a new RunRepo.
func NewRunRepo(db *DB) *RunRepo {
	return &RunRepo{db: db}
}

// Record inserts a run row.
func (r *RunRepo) Record(ctx context.Context, run Run) error {
	const query = `INSERT INTO runs (bot, outcome, detail, started_at, finished_at) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.Writer.ExecContext(ctx, query,
		run.Bot,
		run.Outcome,
		run.Detail,
		formatTime(run.StartedAt),
		formatTime(run.FinishedAt),
	)
	if err != nil {
		return fmt.Errorf("record run for %q: %w", run.Bot, err)
	}
	return nil
}

// Recent returns up to limit runs for the given bot, most recent first.
func (r *RunRepo) Recent(ctx context.Context, bot string, limit int) ([]Run, error) {
	const query = `SELECT id, bot, outcome, detail, started_at, finished_at
		FROM runs WHERE bot = ? ORDER BY started_at DESC, id DESC LIMIT ?`
	rows, err := r.db.Reader.QueryContext(ctx, query, bot, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs for %q: %w", bot, err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var startedAt, finishedAt string
		if err := rows.Scan(&run.ID, &run.Bot, &run.Outcome, &run.Detail, &startedAt, &finishedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}

		run.StartedAt, err = parseTime(startedAt)
		if err != nil {
			return nil, fmt.Errorf("parse started_at for run %d: %w", run.ID, err)
		}
		run.FinishedAt, err = parseTime(finishedAt)
		if err != nil {
			return nil, fmt.Errorf("parse finished_at for run %d: %w", run.ID, err)
		}

		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	return runs, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
