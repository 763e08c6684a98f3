package repository

import (
	"context"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestIssueReplacesSessionInOneTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM user_sessions").
		WithArgs(uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO user_sessions").
		WithArgs(uint64(7), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	token, err := NewSessionRepo(db).Issue(context.Background(), 7)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if len(token) != 2*sessionTokenBytes {
		t.Fatalf("token length = %d, want %d", len(token), 2*sessionTokenBytes)
	}
	if _, err := hex.DecodeString(token); err != nil {
		t.Fatalf("token is not hex: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestIssueRollsBackWhenInsertFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM user_sessions").
		WithArgs(uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO user_sessions").
		WithArgs(uint64(7), sqlmock.AnyArg()).
		WillReturnError(errors.New("insert failed"))
	mock.ExpectRollback()

	if _, err := NewSessionRepo(db).Issue(context.Background(), 7); err == nil {
		t.Fatal("issue: expected error, got nil")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestValidateMatchesStoredToken(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	stored := []byte("0123456789abcdef0123456789ab")
	mock.ExpectQuery("SELECT token FROM user_sessions").
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"token"}).AddRow(stored))

	ok, err := NewSessionRepo(db).Validate(context.Background(), 7, hex.EncodeToString(stored))
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !ok {
		t.Fatal("validate: token should match")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestValidateRejectsMismatchedToken(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	stored := []byte("0123456789abcdef0123456789ab")
	other := []byte("ba9876543210fedcba9876543210")
	mock.ExpectQuery("SELECT token FROM user_sessions").
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"token"}).AddRow(stored))

	ok, err := NewSessionRepo(db).Validate(context.Background(), 7, hex.EncodeToString(other))
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if ok {
		t.Fatal("validate: mismatched token should not match")
	}
}

func TestValidateWithoutSessionRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT token FROM user_sessions").
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"token"}))

	ok, err := NewSessionRepo(db).Validate(context.Background(), 7, "00ff00ff")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if ok {
		t.Fatal("validate: no session row should not match")
	}
}

func TestValidateRejectsMalformedTokenWithoutQuerying(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	ok, err := NewSessionRepo(db).Validate(context.Background(), 7, "not-hex")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if ok {
		t.Fatal("validate: malformed token should not match")
	}

	// No expectations were registered, so any store access would fail here.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
