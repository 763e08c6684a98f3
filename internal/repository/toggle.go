package repository

import (
	"context"
	"database/sql"
)

// toggleSpec parameterizes the shared "existence check then exclusive
// toggle" routine used by subscriptions and playlist membership. All three
// statements take the same key-pair arguments in the same order.
type toggleSpec struct {
	existsQuery string // SELECT COUNT(*) over the membership key
	insertStmt  string // INSERT for the membership row
	deleteStmt  string // DELETE for the membership row
}

// add inserts the membership row identified by args. An existing row, or a
// duplicate-key error from a raced concurrent insert, yields ErrDuplicate.
func (s toggleSpec) add(ctx context.Context, db *sql.DB, args ...any) error {
	var n int
	if err := db.QueryRowContext(ctx, s.existsQuery, args...).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return ErrDuplicate
	}
	if _, err := db.ExecContext(ctx, s.insertStmt, args...); err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// remove deletes the membership row identified by args. A missing row
// yields ErrNotFound.
func (s toggleSpec) remove(ctx context.Context, db *sql.DB, args ...any) error {
	res, err := db.ExecContext(ctx, s.deleteStmt, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
