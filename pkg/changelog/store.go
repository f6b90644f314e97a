package changelog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Store wraps the SQLite connection. Created once at daemon startup
// (connection-pool-config shape carried over from tarsy's pkg/database.Client,
// generalized from pgx/Postgres to modernc.org/sqlite).
type Store struct {
	db *sql.DB
}

// Config bounds the connection pool. SQLite has no server-side connection
// limit, but capping MaxOpenConns keeps writers serialized against SQLITE_BUSY
// the way WAL mode expects.
type Config struct {
	Path            string
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

// Open connects to the SQLite file at cfg.Path, enables WAL mode and foreign
// keys, and applies any pending embedded migration.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.MaxOpenConns <= 0 {
		cfg.MaxOpenConns = 1
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("changelog: open %s: %w", cfg.Path, err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("changelog: ping %s: %w", cfg.Path, err)
	}

	if _, err := db.ExecContext(ctx, `PRAGMA journal_mode = WAL; PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("changelog: set pragmas: %w", err)
	}

	if err := runMigrations(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close releases the underlying connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveChangeUnit upserts the parent row and replaces all child actions in a
// single transaction, making the save idempotent per unit (spec.md §4.7:
// "save_change_unit upserts the parent, deletes then re-inserts children").
func (s *Store) SaveChangeUnit(ctx context.Context, unit ChangeUnit) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("changelog: begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO change_units (id, label, request, status, start_time, end_time, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			label = excluded.label,
			request = excluded.request,
			status = excluded.status,
			start_time = excluded.start_time,
			end_time = excluded.end_time,
			updated_at = CURRENT_TIMESTAMP
	`, unit.ID, unit.Label, unit.Request, string(unit.Status), unit.StartTime, unit.EndTime)
	if err != nil {
		return fmt.Errorf("changelog: upsert change_unit %s: %w", unit.ID, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM change_actions WHERE change_unit_id = ?`, unit.ID); err != nil {
		return fmt.Errorf("changelog: delete child actions for %s: %w", unit.ID, err)
	}

	for _, action := range unit.Actions {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO change_actions (id, change_unit_id, seq, command, exit_code, success, evidence_kind, summary, ran_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, action.ID, unit.ID, action.Seq, action.Command, action.ExitCode, action.Success, action.EvidenceKind, action.Summary, action.RanAt)
		if err != nil {
			return fmt.Errorf("changelog: insert change_action %s: %w", action.ID, err)
		}
	}

	return tx.Commit()
}

// GetChangeUnit loads a ChangeUnit and its child actions by id.
func (s *Store) GetChangeUnit(ctx context.Context, id string) (ChangeUnit, error) {
	var unit ChangeUnit
	var endTime sql.NullTime

	row := s.db.QueryRowContext(ctx, `
		SELECT id, label, request, status, start_time, end_time
		FROM change_units WHERE id = ?
	`, id)
	if err := row.Scan(&unit.ID, &unit.Label, &unit.Request, &unit.Status, &unit.StartTime, &endTime); err != nil {
		return ChangeUnit{}, fmt.Errorf("changelog: get change_unit %s: %w", id, err)
	}
	if endTime.Valid {
		unit.EndTime = &endTime.Time
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, seq, command, exit_code, success, evidence_kind, summary, ran_at
		FROM change_actions WHERE change_unit_id = ? ORDER BY seq
	`, id)
	if err != nil {
		return ChangeUnit{}, fmt.Errorf("changelog: list change_actions for %s: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var a ChangeAction
		if err := rows.Scan(&a.ID, &a.Seq, &a.Command, &a.ExitCode, &a.Success, &a.EvidenceKind, &a.Summary, &a.RanAt); err != nil {
			return ChangeUnit{}, fmt.Errorf("changelog: scan change_action: %w", err)
		}
		unit.Actions = append(unit.Actions, a)
	}
	return unit, rows.Err()
}

// RecentChangeUnits returns up to limit change units, most recent start_time
// first.
func (s *Store) RecentChangeUnits(ctx context.Context, limit int) ([]ChangeUnit, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id FROM change_units ORDER BY start_time DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("changelog: list recent change_units: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("changelog: scan change_unit id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	units := make([]ChangeUnit, 0, len(ids))
	for _, id := range ids {
		unit, err := s.GetChangeUnit(ctx, id)
		if err != nil {
			return nil, err
		}
		units = append(units, unit)
	}
	return units, nil
}

// PruneOlderThan deletes every change unit (and its child actions, via the
// ON DELETE CASCADE foreign key) whose start_time is older than cutoff. It
// returns the number of change units removed.
func (s *Store) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM change_units WHERE start_time < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("changelog: prune older than %s: %w", cutoff, err)
	}
	return result.RowsAffected()
}
