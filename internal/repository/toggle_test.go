package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestSubscribeInsertsMembershipRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT").
		WithArgs(uint64(2), uint64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	mock.ExpectExec("INSERT INTO subscriptions").
		WithArgs(uint64(2), uint64(9)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := NewSubscriptionRepo(db).Subscribe(context.Background(), 2, 9); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestSubscribeTwiceIsDuplicateWithoutInsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT").
		WithArgs(uint64(2), uint64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))

	err = NewSubscriptionRepo(db).Subscribe(context.Background(), 2, 9)
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("subscribe twice: got %v, want ErrDuplicate", err)
	}

	// The insert must not run once the row is known to exist.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestSubscribeRacedInsertMapsDuplicateKey(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT").
		WithArgs(uint64(2), uint64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	mock.ExpectExec("INSERT INTO subscriptions").
		WithArgs(uint64(2), uint64(9)).
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry '2-9' for key 'subscriptions.PRIMARY'"))

	err = NewSubscriptionRepo(db).Subscribe(context.Background(), 2, 9)
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("raced subscribe: got %v, want ErrDuplicate", err)
	}
}

func TestUnsubscribeMissingRowIsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("DELETE FROM subscriptions").
		WithArgs(uint64(2), uint64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = NewSubscriptionRepo(db).Unsubscribe(context.Background(), 2, 9)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("unsubscribe missing: got %v, want ErrNotFound", err)
	}
}

func TestPlaylistAddVideoDuplicate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT").
		WithArgs(uint64(4), uint64(11)).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))

	err = NewPlaylistRepo(db).AddVideo(context.Background(), 4, 11)
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("add video twice: got %v, want ErrDuplicate", err)
	}
}
