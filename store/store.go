// Package store persists the application state in a SQLite key/value table.
//
// Each top level part of the state is stored as a JSON document under a fixed
// key, so that the stored shapes stay readable and stable.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/etnz/investwise"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Keys of the stored documents.
const (
	KeyFinancialData              = "financialData"
	KeyInvestmentPlan             = "investmentPlan"
	KeyHasCompletedRiskAssessment = "hasCompletedRiskAssessment"
)

const schema = `CREATE TABLE IF NOT EXISTS kv (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`

// Store is a SQLite backed state store.
type Store struct {
	db *sql.DB
}

// Open opens, and creates if needed, the store at path. ":memory:" opens a
// transient store.
func Open(path string) (*Store, error) {
	dsn := ":memory:"
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// a single writer, and a single in-memory database
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// Load returns the stored state. Parts that were never saved take their
// value from investwise.InitialState.
func (s *Store) Load(ctx context.Context) (investwise.State, error) {
	return s.LoadOr(ctx, investwise.InitialState())
}

// LoadOr returns the stored state. Parts that were never saved take their
// value from initial.
func (s *Store) LoadOr(ctx context.Context, initial investwise.State) (investwise.State, error) {
	state := initial

	if err := s.get(ctx, KeyFinancialData, &state.Financial); err != nil {
		return state, err
	}
	if err := s.get(ctx, KeyInvestmentPlan, &state.Plan); err != nil {
		return state, err
	}
	if err := s.get(ctx, KeyHasCompletedRiskAssessment, &state.HasCompletedRiskAssessment); err != nil {
		return state, err
	}
	// amounts are stored as plain numbers, in the financial data currency.
	cur := state.Financial.Currency
	switch m := state.Plan.MonthlyInvestment; m.Currency() {
	case "":
		state.Plan.MonthlyInvestment = m.In(cur)
	case cur:
	default:
		// the plan comes from initial, and was never computed.
		state.Plan.MonthlyInvestment = investwise.M(0, cur)
	}
	return state, nil
}

// Save stores the whole state atomically.
func (s *Store) Save(ctx context.Context, state investwise.State) error {
	docs := []struct {
		key   string
		value any
	}{
		{KeyFinancialData, state.Financial},
		{KeyInvestmentPlan, state.Plan},
		{KeyHasCompletedRiskAssessment, state.HasCompletedRiskAssessment},
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, d := range docs {
		b, err := json.Marshal(d.value)
		if err != nil {
			return fmt.Errorf("cannot encode %q: %w", d.key, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO kv (key, value) VALUES (?, ?)
			 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, d.key, string(b)); err != nil {
			return fmt.Errorf("failed to save %q: %w", d.key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// Reset deletes every stored document, the next Load returns the initial state.
func (s *Store) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv`); err != nil {
		return fmt.Errorf("failed to reset store: %w", err)
	}
	return nil
}

// get decodes the document stored at key into v, leaving v untouched if
// there is none.
func (s *Store) get(ctx context.Context, key string, v any) error {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %q: %w", key, err)
	}
	if err := json.Unmarshal([]byte(value), v); err != nil {
		return fmt.Errorf("invalid %q document: %w", key, err)
	}
	return nil
}
