package responses

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/jerseyforge/jerseyforge-backend/pkg/errors"
)

func decodeErrorBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body
}

func TestWriteSuccessWritesRawBody(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteSuccess(rec, map[string]string{"status": "ready"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected json content type, got %q", ct)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "ready" {
		t.Fatalf("expected raw payload, got %v", body)
	}
	if _, wrapped := body["data"]; wrapped {
		t.Fatalf("payload must not be wrapped in an envelope")
	}
}

func TestWriteErrorConflictMapsTo409(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(context.Background(), nil, rec, pkgerrors.New(pkgerrors.CodeConflict, "email already registered"))

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	body := decodeErrorBody(t, rec)
	if body["message"] != "email already registered" {
		t.Fatalf("expected typed message, got %v", body["message"])
	}
	if body["code"] != string(pkgerrors.CodeConflict) {
		t.Fatalf("expected conflict code, got %v", body["code"])
	}
}

func TestWriteErrorMasksInternalMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	cause := errors.New("pq: connection refused at 10.0.0.3:5432")
	WriteError(context.Background(), nil, rec, pkgerrors.Wrap(pkgerrors.CodeInternal, cause, "saving cart line"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	body := decodeErrorBody(t, rec)
	if body["message"] != "internal server error" {
		t.Fatalf("internal details must be masked, got %v", body["message"])
	}
	if got := rec.Body.String(); strings.Contains(got, "10.0.0.3") || strings.Contains(got, "saving cart line") {
		t.Fatalf("internal cause leaked into body: %s", got)
	}
}

func TestWriteErrorUntypedErrorBecomesInternal(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(context.Background(), nil, rec, errors.New("boom"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	body := decodeErrorBody(t, rec)
	if body["code"] != string(pkgerrors.CodeInternal) {
		t.Fatalf("expected internal code, got %v", body["code"])
	}
}

func TestWriteErrorValidationCarriesDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	err := pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
		WithDetails(map[string]string{"email": "email is required"})
	WriteError(context.Background(), nil, rec, err)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	body := decodeErrorBody(t, rec)
	fieldErrors, ok := body["errors"].(map[string]any)
	if !ok || fieldErrors["email"] != "email is required" {
		t.Fatalf("expected field errors in payload, got %v", body["errors"])
	}
}

func TestWriteErrorNotFoundSuppressesDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	err := pkgerrors.New(pkgerrors.CodeNotFound, "product not found").
		WithDetails(map[string]string{"slug": "home-1994"})
	WriteError(context.Background(), nil, rec, err)

	body := decodeErrorBody(t, rec)
	if _, ok := body["errors"]; ok {
		t.Fatalf("details are not allowed for not found responses")
	}
}

func TestWriteNoContent(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteNoContent(rec)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("204 must have an empty body")
	}
}
