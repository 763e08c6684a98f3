package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"golang.org/x/crypto/bcrypt"

	"github.com/nbolat/vidshare/internal/model"
)

func TestCreateProvisionsWatchLaterInSameTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM users WHERE username").
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM users WHERE email").
		WithArgs("alice@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO users").
		WithArgs("alice", sqlmock.AnyArg(), "alice@example.com").
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectExec("INSERT INTO playlists").
		WithArgs(uint64(42), model.WatchLaterName).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	id, err := NewUserRepo(db).Create(context.Background(), "alice", "secret123", "alice@example.com", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id != 42 {
		t.Fatalf("user id = %d, want 42", id)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestCreateRollsBackWhenPlaylistInsertFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM users WHERE username").
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM users WHERE email").
		WithArgs("alice@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO users").
		WithArgs("alice", sqlmock.AnyArg(), "alice@example.com").
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectExec("INSERT INTO playlists").
		WithArgs(uint64(42), model.WatchLaterName).
		WillReturnError(errors.New("insert failed"))
	mock.ExpectRollback()

	if _, err := NewUserRepo(db).Create(context.Background(), "alice", "secret123", "alice@example.com", bcrypt.MinCost); err == nil {
		t.Fatal("create: expected error, got nil")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestCreateRejectsTakenUsername(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM users WHERE username").
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))

	_, err = NewUserRepo(db).Create(context.Background(), "alice", "secret123", "alice@example.com", bcrypt.MinCost)
	if !errors.Is(err, ErrUsernameExists) {
		t.Fatalf("create: got %v, want ErrUsernameExists", err)
	}
}

func TestVerifyChecksPassword(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}

	mock.ExpectQuery("SELECT user_id, password_hash FROM users").
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "password_hash"}).AddRow(7, string(hash)))

	id, err := NewUserRepo(db).Verify(context.Background(), "alice", "secret123")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if id != 7 {
		t.Fatalf("user id = %d, want 7", id)
	}
}

func TestVerifyWrongPasswordIsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}

	mock.ExpectQuery("SELECT user_id, password_hash FROM users").
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "password_hash"}).AddRow(7, string(hash)))

	_, err = NewUserRepo(db).Verify(context.Background(), "alice", "wrongpass")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("verify: got %v, want ErrNotFound", err)
	}
}
