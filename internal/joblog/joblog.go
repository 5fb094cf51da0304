// Package joblog keeps a per-document job ledger in SQLite so a batch run
// leaves an auditable success/failure trail behind.
package joblog

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/docstream-pl/bailiff-extract/constants"
)

const schemaDDL = `
CREATE TABLE IF NOT EXISTS extract_job (
	id            TEXT PRIMARY KEY,
	doc_path      TEXT NOT NULL,
	status        TEXT NOT NULL,
	error_message TEXT,
	started_at    TIMESTAMP NOT NULL,
	finished_at   TIMESTAMP
);`

type Ledger struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens (or creates) the ledger database at path. Use ":memory:" for an
// ephemeral ledger.
func Open(ctx context.Context, path string, logger *slog.Logger) (*Ledger, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	if _, err := db.ExecContext(ctx, schemaDDL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate ledger: %w", err)
	}
	logger.Debug("joblog.opened", "path", path)
	return &Ledger{db: db, logger: logger}, nil
}

func (l *Ledger) Close() error {
	return l.db.Close()
}

// Start records a new RUNNING job for docPath and returns its ID.
func (l *Ledger) Start(ctx context.Context, docPath string) (uuid.UUID, error) {
	id := uuid.New()
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO extract_job (id, doc_path, status, started_at) VALUES (?, ?, ?, ?)`,
		id.String(), docPath, string(constants.JobStatusRunning), time.Now().UTC(),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("start job: %w", err)
	}
	return id, nil
}

// Advance moves a job to an intermediate status (e.g. OCR_OK).
func (l *Ledger) Advance(ctx context.Context, id uuid.UUID, status constants.JobStatus) error {
	_, err := l.db.ExecContext(ctx,
		`UPDATE extract_job SET status = ? WHERE id = ?`,
		string(status), id.String(),
	)
	if err != nil {
		return fmt.Errorf("advance job: %w", err)
	}
	return nil
}

// Finish records a terminal status with an optional error message.
func (l *Ledger) Finish(ctx context.Context, id uuid.UUID, status constants.JobStatus, errMessage string) error {
	var msg any
	if errMessage != "" {
		msg = errMessage
	}
	_, err := l.db.ExecContext(ctx,
		`UPDATE extract_job SET status = ?, error_message = ?, finished_at = ? WHERE id = ?`,
		string(status), msg, time.Now().UTC(), id.String(),
	)
	if err != nil {
		return fmt.Errorf("finish job: %w", err)
	}
	return nil
}

// Summary counts terminal outcomes for the whole ledger.
func (l *Ledger) Summary(ctx context.Context) (succeeded, failed int, err error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT status, COUNT(*) FROM extract_job GROUP BY status`)
	if err != nil {
		return 0, 0, fmt.Errorf("summarize jobs: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return 0, 0, err
		}
		switch constants.JobStatus(status) {
		case constants.JobStatusLLMOK:
			succeeded += n
		case constants.JobStatusFailed:
			failed += n
		}
	}
	return succeeded, failed, rows.Err()
}
