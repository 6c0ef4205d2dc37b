package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func refreshTokenRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "token_hash", "expires_at", "revoked_at", "created_at"})
}

func TestValidateRefresh_ActiveTokenReturnsUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectQuery("SELECT id, user_id, token_hash, expires_at, revoked_at, created_at FROM refresh_tokens").
		WithArgs("abc123").
		WillReturnRows(refreshTokenRows().
			AddRow(uint64(5), uint64(2), "abc123", now.Add(time.Hour), nil, now))

	repo := NewTokenRepo(db)
	uid, err := repo.ValidateRefresh(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("ValidateRefresh: %v", err)
	}
	if uid != 2 {
		t.Fatalf("expected user 2, got %d", uid)
	}
}

func TestValidateRefresh_RevokedTokenRejected(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectQuery("SELECT id, user_id, token_hash, expires_at, revoked_at, created_at FROM refresh_tokens").
		WithArgs("abc123").
		WillReturnRows(refreshTokenRows().
			AddRow(uint64(5), uint64(2), "abc123", now.Add(time.Hour), now.Add(-time.Minute), now))

	repo := NewTokenRepo(db)
	if _, err := repo.ValidateRefresh(context.Background(), "abc123"); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected revoked token to be rejected, got %v", err)
	}
}

func TestValidateRefresh_ExpiredTokenRejected(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectQuery("SELECT id, user_id, token_hash, expires_at, revoked_at, created_at FROM refresh_tokens").
		WithArgs("abc123").
		WillReturnRows(refreshTokenRows().
			AddRow(uint64(5), uint64(2), "abc123", now.Add(-time.Minute), nil, now))

	repo := NewTokenRepo(db)
	if _, err := repo.ValidateRefresh(context.Background(), "abc123"); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected expired token to be rejected, got %v", err)
	}
}
