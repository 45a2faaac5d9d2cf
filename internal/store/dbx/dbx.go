package dbx

import (
	"context"
	"database/sql"
	"time"
)

// Queryer/Execer let store helpers run against *sql.DB or *sql.Tx.
type Queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// DefaultTimeout bounds a single statement when the caller's ctx has no deadline.
const DefaultTimeout = 3 * time.Second

func bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, DefaultTimeout)
}

func Exec(ctx context.Context, e Execer, query string, args ...any) (sql.Result, error) {
	ctx, cancel := bound(ctx)
	defer cancel()
	return e.ExecContext(ctx, query, args...)
}

// Query does not bound ctx: rows are read after it returns.
func Query(ctx context.Context, q Queryer, query string, args ...any) (*sql.Rows, error) {
	return q.QueryContext(ctx, query, args...)
}
