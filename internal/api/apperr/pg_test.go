package apperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestFromPG(t *testing.T) {
	cases := []struct {
		name      string
		pg        *pgconn.PgError
		status    int
		field     string
		retryable bool
	}{
		{"duplicate id", &pgconn.PgError{Code: "23505", ConstraintName: "password_audit_events_pkey"}, 409, "id", false},
		{"check on source", &pgconn.PgError{Code: "23514", ConstraintName: "password_audit_events_source_check"}, 422, "source", false},
		{"not null column", &pgconn.PgError{Code: "23502", ColumnName: "category"}, 400, "category", false},
		{"detail fallback", &pgconn.PgError{Code: "22P02", Detail: "bad value for entropy_bits"}, 400, "entropy_bits", false},
		{"deadlock", &pgconn.PgError{Code: "40P01"}, 409, "", true},
		{"timeout", &pgconn.PgError{Code: "57014"}, 503, "", true},
		{"other", &pgconn.PgError{Code: "XX000", Message: "internal detail"}, 500, "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, ok := FromPG(fmt.Errorf("insert: %w", tc.pg))
			if !ok {
				t.Fatal("wrapped PgError not matched")
			}
			if p.Status != tc.status || p.Retryable != tc.retryable {
				t.Fatalf("got %+v", p)
			}
			if tc.field != "" && (len(p.FieldErrors) != 1 || p.FieldErrors[0].Field != tc.field) {
				t.Fatalf("field errors %+v", p.FieldErrors)
			}
			if p.Detail == "internal detail" {
				t.Fatal("server message leaked")
			}
		})
	}

	if _, ok := FromPG(errors.New("plain")); ok {
		t.Fatal("plain error mapped")
	}
}

func TestHandleDBError(t *testing.T) {
	if HandleDBError(httptest.NewRecorder(), nil, nil, "x") {
		t.Fatal("nil error handled")
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
	req.Header.Set("X-Request-ID", "rid-1")
	rr := httptest.NewRecorder()
	HandleDBError(rr, req, errors.New("conn refused"), "Stats unavailable")

	if rr.Code != http.StatusInternalServerError || rr.Header().Get("Content-Type") != "application/problem+json" {
		t.Fatalf("status=%d ct=%q", rr.Code, rr.Header().Get("Content-Type"))
	}
	var p Problem
	if err := json.Unmarshal(rr.Body.Bytes(), &p); err != nil {
		t.Fatal(err)
	}
	if p.Title != "Stats unavailable" || p.Instance != "/admin/stats" || p.RequestID != "rid-1" {
		t.Fatalf("problem %+v", p)
	}
}
