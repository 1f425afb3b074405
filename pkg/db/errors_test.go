package db

import (
	"context"
	"database/sql/driver"
	"errors"
	"io"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

func TestIsUniqueViolationPgx(t *testing.T) {
	err := &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}

	if !IsUniqueViolation(err, "users_email_key") {
		t.Fatalf("expected match on constraint name")
	}
	if !IsUniqueViolation(err, "") {
		t.Fatalf("expected match with empty constraint filter")
	}
	if IsUniqueViolation(err, "users_username_key") {
		t.Fatalf("different constraint must not match")
	}
}

func TestIsUniqueViolationPq(t *testing.T) {
	err := &pq.Error{Code: "23505", Constraint: "cart_items_user_id_product_id_key"}

	if !IsUniqueViolation(err, "cart_items_user_id_product_id_key") {
		t.Fatalf("expected match on pq constraint")
	}
	if IsUniqueViolation(&pq.Error{Code: "23503", Constraint: "cart_items_user_id_fkey"}, "") {
		t.Fatalf("foreign key violation is not a unique violation")
	}
}

func TestIsUniqueViolationStringFallback(t *testing.T) {
	err := errors.New(`duplicate key value violates unique constraint "wishlist_items_user_id_product_id_key"`)

	if !IsUniqueViolation(err, "wishlist_items_user_id_product_id_key") {
		t.Fatalf("expected string fallback to match constraint name")
	}
	if !IsUniqueViolation(err, "") {
		t.Fatalf("expected string fallback on duplicate key message")
	}
	if IsUniqueViolation(errors.New("connection refused"), "") {
		t.Fatalf("unrelated errors must not match")
	}
}

func TestIsIntegrityViolationCoversClass23(t *testing.T) {
	cases := []string{"23505", "23503", "23502", "23514"}
	for _, code := range cases {
		if !IsIntegrityViolation(&pgconn.PgError{Code: code}) {
			t.Fatalf("expected code %s to be an integrity violation", code)
		}
	}
	if IsIntegrityViolation(&pgconn.PgError{Code: "08006"}) {
		t.Fatalf("connection failure is not an integrity violation")
	}
	if IsIntegrityViolation(nil) {
		t.Fatalf("nil is not a violation")
	}
}

func TestIsTransient(t *testing.T) {
	transient := []error{
		driver.ErrBadConn,
		io.EOF,
		io.ErrUnexpectedEOF,
		&pgconn.PgError{Code: "08006"},
		&pgconn.PgError{Code: "53300"},
		&pq.Error{Code: "08001"},
	}
	for _, err := range transient {
		if !IsTransient(err) {
			t.Fatalf("expected %v to be transient", err)
		}
	}

	permanent := []error{
		nil,
		context.Canceled,
		context.DeadlineExceeded,
		&pgconn.PgError{Code: "23505"},
		errors.New("syntax error at or near"),
	}
	for _, err := range permanent {
		if IsTransient(err) {
			t.Fatalf("expected %v to be permanent", err)
		}
	}
}
