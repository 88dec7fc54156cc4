package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/backyonatan-alt/hullwatch/backend/internal/model"
)

// SQLite is the single-file store used when no Postgres URL is configured.
type SQLite struct {
	db *sql.DB
}

func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// SQLite allows one writer at a time.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Migrate(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS snapshots (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			response    TEXT NOT NULL,
			created_at  TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_snapshots_created_at ON snapshots (created_at DESC);

		CREATE TABLE IF NOT EXISTS cleanings (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			vessel_id      TEXT NOT NULL,
			proposed_date  TEXT NOT NULL,
			priority       TEXT NOT NULL,
			reference      TEXT NOT NULL DEFAULT '',
			created_at     TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_cleanings_vessel ON cleanings (vessel_id, created_at DESC);
	`
	_, err := s.db.ExecContext(ctx, query)
	return err
}

func (s *SQLite) SaveSnapshot(ctx context.Context, snapshot []byte) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO snapshots (response, created_at) VALUES (?, ?)",
		string(snapshot), time.Now().UTC().Format(time.RFC3339Nano),
	)
	return err
}

func (s *SQLite) LatestSnapshot(ctx context.Context) ([]byte, error) {
	var response string
	err := s.db.QueryRowContext(ctx,
		"SELECT response FROM snapshots ORDER BY id DESC LIMIT 1",
	).Scan(&response)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return []byte(response), nil
}

func (s *SQLite) SaveCleaning(ctx context.Context, c model.ScheduledCleaning) error {
	createdAt, err := cleaningTime(c.CreatedAt)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		"INSERT INTO cleanings (vessel_id, proposed_date, priority, reference, created_at) VALUES (?, ?, ?, ?, ?)",
		c.VesselID, c.ProposedDate, c.Priority, c.Reference, createdAt.Format(time.RFC3339),
	)
	return err
}

func (s *SQLite) Cleanings(ctx context.Context, vesselID string) ([]model.ScheduledCleaning, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT vessel_id, proposed_date, priority, reference, created_at FROM cleanings WHERE vessel_id = ? ORDER BY created_at DESC, id DESC",
		vesselID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.ScheduledCleaning{}
	for rows.Next() {
		var c model.ScheduledCleaning
		if err := rows.Scan(&c.VesselID, &c.ProposedDate, &c.Priority, &c.Reference, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
