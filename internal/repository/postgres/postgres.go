// Package postgres implements the repository interfaces on PostgreSQL via
// pgx. Every call runs under its own timeout inside a database span, and
// driver failures surface as StorageUnavailable with the cause attached.
package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/MehmetBegun/Product-Review-App-SolarityAI/pkg/database"
	apperrors "github.com/MehmetBegun/Product-Review-App-SolarityAI/pkg/errors"
)

// DefaultQueryTimeout bounds a single statement when none is configured.
const DefaultQueryTimeout = 5 * time.Second

// Option configures a repository.
type Option func(*base)

// WithQueryTimeout overrides DefaultQueryTimeout. Non-positive values
// leave the caller's deadline as the only bound.
func WithQueryTimeout(d time.Duration) Option {
	return func(b *base) { b.timeout = d }
}

type base struct {
	pool    database.DBTX
	timeout time.Duration
}

func newBase(pool database.DBTX, opts []Option) base {
	b := base{pool: pool, timeout: DefaultQueryTimeout}
	for _, o := range opts {
		o(&b)
	}
	return b
}

// begin derives the per-call context and span. The returned func must be
// called with the call's final error; it ends the span and the timeout.
func (b *base) begin(ctx context.Context, op, stmt string) (context.Context, func(error)) {
	cancel := context.CancelFunc(func() {})
	if b.timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, b.timeout)
	}
	ctx, end := database.TraceQuery(ctx, op, stmt)
	return ctx, func(err error) {
		end(err)
		cancel()
	}
}

// storageError classifies err for op. Application errors pass through.
func storageError(op string, err error) error {
	if err == nil {
		return nil
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return apperrors.StorageUnavailable(op, err)
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// isInvalidText reports a malformed literal such as a non-UUID id.
func isInvalidText(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "22P02"
}
