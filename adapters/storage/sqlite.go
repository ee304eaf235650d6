// Package storage - SQLite backend
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/justinharkelroad/agencybrain-bonusgrid/core/types"
	"github.com/justinharkelroad/agencybrain-bonusgrid/internal/errors"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS workbooks (
	id             TEXT PRIMARY KEY,
	account_id     TEXT NOT NULL,
	label          TEXT NOT NULL DEFAULT '',
	schema_version TEXT NOT NULL DEFAULT '',
	state          TEXT NOT NULL DEFAULT '{}',
	created_at     TEXT NOT NULL,
	updated_at     TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_workbooks_account
	ON workbooks (account_id, updated_at DESC);
`

// SQLiteStore persists workbook records to SQLite.
type SQLiteStore struct {
	db *sqlx.DB
}

// NewSQLiteStore opens (and if needed creates) the database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, errors.Storage("opening database", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, errors.Storage("applying schema", err)
	}
	return &SQLiteStore{db: db}, nil
}

// workbookRow is the table representation of a Record.
type workbookRow struct {
	ID            string `db:"id"`
	AccountID     string `db:"account_id"`
	Label         string `db:"label"`
	SchemaVersion string `db:"schema_version"`
	State         string `db:"state"`
	CreatedAt     string `db:"created_at"`
	UpdatedAt     string `db:"updated_at"`
}

func (r *workbookRow) toRecord() (*Record, error) {
	var state types.WorkbookState
	if err := json.Unmarshal([]byte(r.State), &state); err != nil {
		return nil, errors.Storage("decoding workbook state", err)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, r.CreatedAt)
	if err != nil {
		return nil, errors.Storage("parsing created_at", err)
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, r.UpdatedAt)
	if err != nil {
		return nil, errors.Storage("parsing updated_at", err)
	}
	return &Record{
		ID:            r.ID,
		AccountID:     r.AccountID,
		Label:         r.Label,
		SchemaVersion: r.SchemaVersion,
		State:         state,
		CreatedAt:     createdAt,
		UpdatedAt:     updatedAt,
	}, nil
}

// Save stores or updates a record
func (s *SQLiteStore) Save(ctx context.Context, rec *Record) error {
	if rec.AccountID == "" {
		return errors.Input("account_id is required")
	}

	now := time.Now().UTC()
	if rec.ID == "" {
		rec.ID = uuid.NewString()
		rec.CreatedAt = now
	} else {
		var createdAt string
		err := s.db.GetContext(ctx, &createdAt,
			`SELECT created_at FROM workbooks WHERE id = ?`, rec.ID)
		switch {
		case err == sql.ErrNoRows:
			if rec.CreatedAt.IsZero() {
				rec.CreatedAt = now
			}
		case err != nil:
			return errors.Storage("reading existing record", err)
		default:
			if t, perr := time.Parse(time.RFC3339Nano, createdAt); perr == nil {
				rec.CreatedAt = t
			}
		}
	}
	rec.UpdatedAt = now

	stateJSON, err := json.Marshal(rec.State)
	if err != nil {
		return errors.Storage("encoding workbook state", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO workbooks (id, account_id, label, schema_version, state, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			account_id = excluded.account_id,
			label = excluded.label,
			schema_version = excluded.schema_version,
			state = excluded.state,
			updated_at = excluded.updated_at`,
		rec.ID, rec.AccountID, rec.Label, rec.SchemaVersion, string(stateJSON),
		rec.CreatedAt.Format(time.RFC3339Nano), rec.UpdatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return errors.Storage("saving workbook", err)
	}
	return nil
}

// Get retrieves a record by ID
func (s *SQLiteStore) Get(ctx context.Context, id string) (*Record, error) {
	var row workbookRow
	err := s.db.GetContext(ctx, &row, `SELECT * FROM workbooks WHERE id = ?`, id)
	if err == sql.ErrNoRows {
		return nil, errors.Newf(errors.TypeStorage, "workbook not found: %s", id)
	}
	if err != nil {
		return nil, errors.Storage("loading workbook", err)
	}
	return row.toRecord()
}

// Latest returns the most recently updated record for an account
func (s *SQLiteStore) Latest(ctx context.Context, accountID string) (*Record, error) {
	var row workbookRow
	err := s.db.GetContext(ctx, &row, `
		SELECT * FROM workbooks WHERE account_id = ?
		ORDER BY updated_at DESC, id LIMIT 1`, accountID)
	if err == sql.ErrNoRows {
		return nil, errors.Newf(errors.TypeStorage, "no workbooks for account: %s", accountID)
	}
	if err != nil {
		return nil, errors.Storage("loading latest workbook", err)
	}
	return row.toRecord()
}

// List returns all records for an account, newest first
func (s *SQLiteStore) List(ctx context.Context, accountID string) ([]*Record, error) {
	var rows []workbookRow
	err := s.db.SelectContext(ctx, &rows, `
		SELECT * FROM workbooks WHERE account_id = ?
		ORDER BY updated_at DESC, id`, accountID)
	if err != nil {
		return nil, errors.Storage("listing workbooks", err)
	}
	out := make([]*Record, 0, len(rows))
	for i := range rows {
		rec, err := rows[i].toRecord()
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// Delete removes a record
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM workbooks WHERE id = ?`, id)
	if err != nil {
		return errors.Storage("deleting workbook", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.Newf(errors.TypeStorage, "workbook not found: %s", id)
	}
	return nil
}

// Close closes the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
