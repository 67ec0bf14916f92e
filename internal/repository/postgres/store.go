package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"job-board-backend/internal/domain"
	"job-board-backend/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgreSQL error codes
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// DBTX is satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type txKey struct{}

// Store wraps the pool shared by every repository. It bounds each statement
// with a timeout and lets repositories join a transaction carried in ctx.
type Store struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

func NewStore(pool *pgxpool.Pool, timeout time.Duration) *Store {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Store{pool: pool, timeout: timeout}
}

// NewTxManager exposes the store's transaction support to usecases.
func NewTxManager(store *Store) domain.TxManager {
	return store
}

// WithinTx runs fn in a transaction. A transaction already present in ctx is
// reused, so nested calls commit once at the outermost level.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return fn(ctx)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return apperror.Database(fmt.Errorf("begin transaction: %w", err))
	}
	defer tx.Rollback(ctx)

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return mapError(err)
	}
	return nil
}

// Ping is used by the health check.
func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.pool.Ping(ctx)
}

func (s *Store) conn(ctx context.Context) DBTX {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return s.pool
}

func (s *Store) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

// mapError translates driver errors: missing rows become domain.ErrNotFound,
// unique violations wrap domain.ErrDuplicate, everything else (timeouts
// included) is a database error.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return &DuplicateError{Constraint: pgErr.ConstraintName}
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: %s", domain.ErrNotFound, pgErr.ConstraintName)
		}
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return apperror.Database(err)
}

// DuplicateError reports which unique constraint rejected a write.
type DuplicateError struct {
	Constraint string
}

func (e *DuplicateError) Error() string {
	return "duplicate value violates " + e.Constraint
}

func (e *DuplicateError) Unwrap() error {
	return domain.ErrDuplicate
}
