package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/backyonatan-alt/hullwatch/backend/internal/model"
)

type Postgres struct {
	db *sql.DB
}

// OpenPostgres connects to databaseURL and verifies the connection.
func OpenPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return NewPostgres(db), nil
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) Migrate(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS snapshots (
			id          BIGSERIAL PRIMARY KEY,
			response    JSONB NOT NULL,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_snapshots_created_at ON snapshots (created_at DESC);

		CREATE TABLE IF NOT EXISTS cleanings (
			id             BIGSERIAL PRIMARY KEY,
			vessel_id      TEXT NOT NULL,
			proposed_date  TEXT NOT NULL,
			priority       TEXT NOT NULL,
			reference      TEXT NOT NULL DEFAULT '',
			created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_cleanings_vessel ON cleanings (vessel_id, created_at DESC);
	`
	_, err := p.db.ExecContext(ctx, query)
	return err
}

func (p *Postgres) SaveSnapshot(ctx context.Context, snapshot []byte) error {
	_, err := p.db.ExecContext(ctx,
		"INSERT INTO snapshots (response) VALUES ($1)",
		snapshot,
	)
	return err
}

func (p *Postgres) LatestSnapshot(ctx context.Context) ([]byte, error) {
	var response []byte
	err := p.db.QueryRowContext(ctx,
		"SELECT response FROM snapshots ORDER BY created_at DESC LIMIT 1",
	).Scan(&response)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return response, err
}

func (p *Postgres) SaveCleaning(ctx context.Context, c model.ScheduledCleaning) error {
	createdAt, err := cleaningTime(c.CreatedAt)
	if err != nil {
		return err
	}
	_, err = p.db.ExecContext(ctx,
		"INSERT INTO cleanings (vessel_id, proposed_date, priority, reference, created_at) VALUES ($1, $2, $3, $4, $5)",
		c.VesselID, c.ProposedDate, c.Priority, c.Reference, createdAt,
	)
	return err
}

func (p *Postgres) Cleanings(ctx context.Context, vesselID string) ([]model.ScheduledCleaning, error) {
	rows, err := p.db.QueryContext(ctx,
		"SELECT vessel_id, proposed_date, priority, reference, created_at FROM cleanings WHERE vessel_id = $1 ORDER BY created_at DESC, id DESC",
		vesselID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.ScheduledCleaning{}
	for rows.Next() {
		var c model.ScheduledCleaning
		var createdAt time.Time
		if err := rows.Scan(&c.VesselID, &c.ProposedDate, &c.Priority, &c.Reference, &createdAt); err != nil {
			return nil, err
		}
		c.CreatedAt = createdAt.UTC().Format(time.RFC3339)
		out = append(out, c)
	}
	return out, rows.Err()
}

func (p *Postgres) Close() error {
	return p.db.Close()
}

// cleaningTime parses a record's creation time, defaulting to now.
func cleaningTime(s string) (time.Time, error) {
	if s == "" {
		return time.Now().UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("cleaning created_at: %w", err)
	}
	return t.UTC(), nil
}
