package sqldb

import (
	"context"
	"database/sql"
)

type Queryer interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (sql.Result, error)
	Query(ctx context.Context, sql string, args ...interface{}) (*sql.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) *sql.Row
}

// TxQueryer adapta uma *sql.Tx à interface Queryer
type TxQueryer struct {
	Tx *sql.Tx
}

func (q TxQueryer) Exec(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return q.Tx.ExecContext(ctx, query, args...)
}

func (q TxQueryer) Query(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return q.Tx.QueryContext(ctx, query, args...)
}

func (q TxQueryer) QueryRow(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return q.Tx.QueryRowContext(ctx, query, args...)
}
