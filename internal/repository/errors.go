// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrNotFound indicates that a referenced entity or membership
// row does not exist, while ErrDuplicate signals that an add-style
// operation targets a key that is already present (e.g. subscribing to a
// channel twice).
package repository

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when a lookup or remove-style operation targets
// a row that does not exist. Handlers translate this into a descriptive
// validation failure, never into a transport error.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert would violate a uniqueness
// invariant, either detected by the pre-insert existence check or by the
// store's unique key as the concurrent-insert backstop.
var ErrDuplicate = errors.New("duplicate entry")

// isDuplicateKey reports whether err is a MySQL duplicate-key violation
// (error 1062). The unique constraints are the correctness backstop for
// the application-level existence checks under concurrent inserts.
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}
