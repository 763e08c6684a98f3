package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/nbolat/vidshare/internal/model"
)

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

var ErrUsernameExists = errors.New("username already exists")
var ErrEmailExists = errors.New("email already exists")

// Create registers a user and provisions their watch_later playlist in the
// same transaction, returning the new user id. Duplicate username or email
// is reported through the dedicated sentinels; a duplicate-key error from
// a raced insert maps to ErrUsernameExists.
func (r *UserRepo) Create(ctx context.Context, username, password, email string, cost int) (uint64, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return 0, err
	}

	var n int
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM users WHERE username=?", username).Scan(&n); err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, ErrUsernameExists
	}
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM users WHERE email=?", email).Scan(&n); err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, ErrEmailExists
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO users (username, password_hash, email, reg_date) VALUES (?,?,?,NOW())",
		username, string(hash), email)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, ErrUsernameExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	// Every account gets its protected system playlist up front.
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO playlists (user_id, name, is_public, created_at) VALUES (?,?,0,NOW())",
		uint64(id), model.WatchLaterName); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	committed = true
	return uint64(id), nil
}

// Verify checks a username/password pair and returns the user id on
// success. Unknown username and wrong password are indistinguishable to
// the caller; both return ErrNotFound.
func (r *UserRepo) Verify(ctx context.Context, username, password string) (uint64, error) {
	var id uint64
	var hash string
	err := r.DB.QueryRowContext(ctx,
		"SELECT user_id, password_hash FROM users WHERE username=? LIMIT 1",
		username).Scan(&id, &hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return 0, ErrNotFound
	}
	return id, nil
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT user_id, username, password_hash, email, reg_date FROM users WHERE user_id=? LIMIT 1",
		id).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Email, &u.RegDate)
	if errors.Is(err, sql.ErrNoRows) {
		return u, ErrNotFound
	}
	return u, err
}

// GetByUsername fetches a user by exact username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.User, error) {
	username = strings.TrimSpace(username)
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT user_id, username, password_hash, email, reg_date FROM users WHERE username=? LIMIT 1",
		username).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Email, &u.RegDate)
	if errors.Is(err, sql.ErrNoRows) {
		return u, ErrNotFound
	}
	return u, err
}
