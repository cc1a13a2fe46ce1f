package postgres

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/oksasatya/user-account-service/internal/domain/repository"
)

func TestMapWriteErr(t *testing.T) {
	dup := &pgconn.PgError{Code: uniqueViolation, ConstraintName: usersEmailKey}
	if got := mapWriteErr(dup); !errors.Is(got, repository.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", got)
	}

	other := &pgconn.PgError{Code: uniqueViolation, ConstraintName: "users_pkey"}
	if got := mapWriteErr(other); got != error(other) {
		t.Fatalf("expected passthrough for other constraint, got %v", got)
	}

	plain := errors.New("connection reset")
	if got := mapWriteErr(plain); got != plain {
		t.Fatalf("expected passthrough, got %v", got)
	}
}
