package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestMarkComplete_UpsertShape(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	// The write must be an upsert keyed on the (user, lesson) unique key
	// so repeated calls converge on the same row.
	mock.ExpectExec("INSERT INTO lesson_progress .*ON DUPLICATE KEY UPDATE").
		WithArgs(uint64(2), uint64(10)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	repo := NewProgressRepo(db)
	if err := repo.MarkComplete(context.Background(), 2, 10); err != nil {
		t.Fatalf("MarkComplete: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestMarkComplete_RepeatIsIdempotent(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	// First call inserts (1 row affected), second call updates the
	// existing row (MySQL reports 2 for ON DUPLICATE KEY UPDATE). Both
	// are success to the caller.
	mock.ExpectExec("INSERT INTO lesson_progress").
		WithArgs(uint64(2), uint64(10)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO lesson_progress").
		WithArgs(uint64(2), uint64(10)).
		WillReturnResult(sqlmock.NewResult(0, 2))

	repo := NewProgressRepo(db)
	if err := repo.MarkComplete(context.Background(), 2, 10); err != nil {
		t.Fatalf("first MarkComplete: %v", err)
	}
	if err := repo.MarkComplete(context.Background(), 2, 10); err != nil {
		t.Fatalf("second MarkComplete: %v", err)
	}
}
