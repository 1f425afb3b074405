package db

import (
	"context"
	"strings"
	"testing"

	"github.com/jerseyforge/jerseyforge-backend/pkg/config"
)

func TestNewRejectsEmptyDSN(t *testing.T) {
	_, err := New(context.Background(), config.DBConfig{}, nil)
	if err == nil {
		t.Fatalf("expected error for missing DSN")
	}
	if !strings.Contains(err.Error(), "DSN") {
		t.Fatalf("error should name the missing DSN, got %v", err)
	}
}
