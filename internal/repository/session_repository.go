package repository

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"database/sql"
	"encoding/hex"
	"errors"
)

// SessionStore is the narrow capability the auth guard and the login and
// logout handlers depend on. The backing representation (here a relational
// row, one per user) is swappable without touching the guard.
type SessionStore interface {
	// Issue atomically replaces any existing session of the user with a
	// fresh one and returns the new token, hex-encoded.
	Issue(ctx context.Context, userID uint64) (string, error)
	// Validate reports whether the presented hex token exactly matches the
	// user's stored session token.
	Validate(ctx context.Context, userID uint64, hexToken string) (bool, error)
	// Revoke deletes the user's session. Revoking a user without a session
	// is not an error.
	Revoke(ctx context.Context, userID uint64) error
}

// sessionTokenBytes is the size of the random session token. The hex form
// presented by clients is twice as long.
const sessionTokenBytes = 28

// SessionRepo persists the at-most-one session per user in the
// `user_sessions` table.
type SessionRepo struct{ DB *sql.DB }

func NewSessionRepo(db *sql.DB) *SessionRepo { return &SessionRepo{DB: db} }

// Issue generates a fresh random token and replaces the user's session row
// inside one transaction: whichever of two concurrent logins commits last
// wins, and the loser's token stops authenticating.
func (r *SessionRepo) Issue(ctx context.Context, userID uint64) (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM user_sessions WHERE user_id=?", userID); err != nil {
		return "", err
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO user_sessions (user_id, token, created_at) VALUES (?,?,NOW())",
		userID, buf); err != nil {
		return "", err
	}
	if err := tx.Commit(); err != nil {
		return "", err
	}
	committed = true
	return hex.EncodeToString(buf), nil
}

// Validate decodes the presented token and compares it against the stored
// session bytes. No session row, a malformed token, or any mismatch all
// report false; only a store failure is surfaced as an error so the guard
// can fail closed.
func (r *SessionRepo) Validate(ctx context.Context, userID uint64, hexToken string) (bool, error) {
	want, err := hex.DecodeString(hexToken)
	if err != nil || len(want) == 0 {
		return false, nil
	}
	var got []byte
	err = r.DB.QueryRowContext(ctx,
		"SELECT token FROM user_sessions WHERE user_id=? LIMIT 1",
		userID).Scan(&got)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return subtle.ConstantTimeCompare(got, want) == 1, nil
}

// Revoke deletes the user's session row.
func (r *SessionRepo) Revoke(ctx context.Context, userID uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"DELETE FROM user_sessions WHERE user_id=?", userID)
	return err
}
