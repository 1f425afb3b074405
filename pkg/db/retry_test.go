package db

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestWithRetryRecoversFromTransientFailure(t *testing.T) {
	attempts := 0
	err := WithRetry(context.Background(), func(context.Context) error {
		attempts++
		if attempts < 2 {
			return &pgconn.PgError{Code: "08006"}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("expected recovery, got %v", err)
	}
	if attempts != 2 {
		t.Fatalf("expected 2 attempts, got %d", attempts)
	}
}

func TestWithRetryGivesUpAfterBoundedAttempts(t *testing.T) {
	attempts := 0
	err := WithRetry(context.Background(), func(context.Context) error {
		attempts++
		return &pgconn.PgError{Code: "08006"}
	})
	if err == nil {
		t.Fatalf("expected failure after exhausting retries")
	}
	if attempts != defaultRetryAttempts {
		t.Fatalf("expected %d attempts, got %d", defaultRetryAttempts, attempts)
	}
}

func TestWithRetryDoesNotRetryIntegrityViolations(t *testing.T) {
	attempts := 0
	violation := &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
	err := WithRetry(context.Background(), func(context.Context) error {
		attempts++
		return violation
	})
	if !errors.Is(err, violation) {
		t.Fatalf("expected the violation back, got %v", err)
	}
	if attempts != 1 {
		t.Fatalf("integrity violations must not be retried, got %d attempts", attempts)
	}
}

func TestWithRetryDoesNotRetryPlainErrors(t *testing.T) {
	attempts := 0
	boom := errors.New("boom")
	err := WithRetry(context.Background(), func(context.Context) error {
		attempts++
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected the error back, got %v", err)
	}
	if attempts != 1 {
		t.Fatalf("expected a single attempt, got %d", attempts)
	}
}
