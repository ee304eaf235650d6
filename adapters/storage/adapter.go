// Package storage persists raw workbook state keyed to an owning account.
// The engine never sees this layer: it stays agnostic to the storage
// mechanism and accepts only an address-to-value map plus an optional schema
// version. Backends: in-memory (tests, single process) and SQLite.
package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/justinharkelroad/agencybrain-bonusgrid/core/types"
	"github.com/justinharkelroad/agencybrain-bonusgrid/internal/errors"
)

// Backend is a storage backend type
type Backend string

const (
	BackendMemory Backend = "memory"
	BackendSQLite Backend = "sqlite"
)

// Record is one persisted workbook state.
type Record struct {
	// ID uniquely identifies the record
	ID string `json:"id" db:"id"`

	// AccountID is the owning account
	AccountID string `json:"account_id" db:"account_id"`

	// Label is an optional human-readable name
	Label string `json:"label,omitempty" db:"label"`

	// SchemaVersion is the schema the state was captured against
	SchemaVersion string `json:"schema_version" db:"schema_version"`

	// State is the raw workbook state
	State types.WorkbookState `json:"state" db:"-"`

	// CreatedAt is when the record was first saved
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// UpdatedAt is when the record was last saved
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Store is the workbook persistence interface.
type Store interface {
	// Save stores or updates a record; a missing ID is assigned.
	Save(ctx context.Context, rec *Record) error

	// Get retrieves a record by ID.
	Get(ctx context.Context, id string) (*Record, error)

	// Latest returns the most recently updated record for an account.
	Latest(ctx context.Context, accountID string) (*Record, error)

	// List returns all records for an account, newest first.
	List(ctx context.Context, accountID string) ([]*Record, error)

	// Delete removes a record.
	Delete(ctx context.Context, id string) error

	// Close closes the store.
	Close() error
}

// Config selects and configures a backend.
type Config struct {
	Backend Backend
	Path    string // SQLite database path
}

// New creates a store for the configured backend.
func New(cfg Config) (Store, error) {
	switch cfg.Backend {
	case BackendMemory, "":
		return NewMemoryStore(), nil
	case BackendSQLite:
		return NewSQLiteStore(cfg.Path)
	}
	return nil, errors.Newf(errors.TypeConfig, "unknown storage backend: %s", cfg.Backend)
}

// MemoryStore is an in-process store.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]*Record
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]*Record)}
}

// Save stores or updates a record
func (s *MemoryStore) Save(ctx context.Context, rec *Record) error {
	if rec.AccountID == "" {
		return errors.Input("account_id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if rec.ID == "" {
		rec.ID = uuid.NewString()
		rec.CreatedAt = now
	} else if prev, ok := s.records[rec.ID]; ok {
		rec.CreatedAt = prev.CreatedAt
	} else if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now

	stored := *rec
	stored.State = rec.State.Clone()
	s.records[rec.ID] = &stored
	return nil
}

// Get retrieves a record by ID
func (s *MemoryStore) Get(ctx context.Context, id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok {
		return nil, errors.Newf(errors.TypeStorage, "workbook not found: %s", id)
	}
	out := *rec
	out.State = rec.State.Clone()
	return &out, nil
}

// Latest returns the most recently updated record for an account
func (s *MemoryStore) Latest(ctx context.Context, accountID string) (*Record, error) {
	recs, err := s.List(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, errors.Newf(errors.TypeStorage, "no workbooks for account: %s", accountID)
	}
	return recs[0], nil
}

// List returns all records for an account, newest first
func (s *MemoryStore) List(ctx context.Context, accountID string) ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Record
	for _, rec := range s.records {
		if rec.AccountID != accountID {
			continue
		}
		cp := *rec
		cp.State = rec.State.Clone()
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

// Delete removes a record
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[id]; !ok {
		return errors.Newf(errors.TypeStorage, "workbook not found: %s", id)
	}
	delete(s.records, id)
	return nil
}

// Close closes the store
func (s *MemoryStore) Close() error {
	return nil
}
