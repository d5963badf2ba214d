package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"

	"github.com/alexanderramin/waypoint/internal/db"
)

// FailingUoW runs a real transaction but fails the FailOn-th write with Err.
// Writes are counted from 1; reads are not counted. Used to check that a
// curriculum and its language rows are persisted all-or-nothing.
type FailingUoW struct {
	DB     *sql.DB
	FailOn int32
	Err    error
}

func (u *FailingUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	if err := fn(ctx, &failingExec{DBTX: tx, failOn: u.FailOn, err: u.Err}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

type failingExec struct {
	db.DBTX
	writes atomic.Int32
	failOn int32
	err    error
}

func (f *failingExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if f.writes.Add(1) == f.failOn {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
