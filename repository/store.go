// Package repository implements service.Store on MySQL.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"jansunwai/service"
)

// dbtx is the subset of *sql.DB and *sql.Tx the store needs, so every query
// method works identically inside and outside a transaction.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Store is the MySQL-backed repository for complaints, history, remarks,
// notifications and users.
type Store struct {
	db *sql.DB
	q  dbtx
}

// NewStore creates a store over an open database handle.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db, q: db}
}

// WithinTx runs fn against a transaction-bound copy of the store. Nested
// calls reuse the enclosing transaction.
func (s *Store) WithinTx(ctx context.Context, fn func(service.Store) error) error {
	if _, nested := s.q.(*sql.Tx); nested {
		return fn(s)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(&Store{db: s.db, q: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

var _ service.Store = (*Store)(nil)
