package apperr

import (
	"errors"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Known constraint names on password_audit_events.
var constraintField = map[string]string{
	"password_audit_events_pkey":           "id",
	"password_audit_events_source_check":   "source",
	"password_audit_events_category_check": "category",
}

func fieldFromConstraint(c string) string {
	return constraintField[c]
}

func fieldFromDetail(detail string) string {
	for _, k := range []string{"source", "category", "entropy_bits", "length", "classes", "id"} {
		if strings.Contains(detail, k) {
			return k
		}
	}
	return ""
}

// FromPG maps a *pgconn.PgError to a Problem. Returns (Problem, true) if mapped.
func FromPG(err error) (Problem, bool) {
	var pg *pgconn.PgError
	if !errors.As(err, &pg) {
		return Problem{}, false
	}

	p := Problem{Title: "Database error", Status: http.StatusInternalServerError}

	field := fieldFromConstraint(pg.ConstraintName)
	if field == "" && pg.Detail != "" {
		field = fieldFromDetail(pg.Detail)
	}
	if field == "" && pg.ColumnName != "" {
		field = pg.ColumnName
	}
	fe := func(code, msg string) {
		f := field
		if f == "" {
			f = "field"
		}
		p.FieldErrors = []FieldError{{Field: f, Code: code, Message: msg}}
	}

	switch pg.Code {
	case "23505": // unique_violation
		p.Status, p.Title = http.StatusConflict, "Conflict"
		fe("unique", "value already exists")
	case "23502": // not_null_violation
		p.Status, p.Title = http.StatusBadRequest, "Bad Request"
		fe("not_null", "required field is missing")
	case "23514": // check_violation
		p.Status, p.Title = http.StatusUnprocessableEntity, "Unprocessable Entity"
		fe("check", "constraint failed")
	case "22P02": // invalid_text_representation
		p.Status, p.Title = http.StatusBadRequest, "Bad Request"
		fe("invalid", "invalid format")
	case "40001", "40P01": // serialization_failure, deadlock_detected
		p.Status, p.Title = http.StatusConflict, "Conflict"
		p.Detail = "transaction conflict, please retry"
		p.Retryable = true
	case "57014": // query_canceled (statement timeout)
		p.Status, p.Title = http.StatusServiceUnavailable, "Service Unavailable"
		p.Retryable = true
	case "53300": // too_many_connections
		p.Status, p.Title = http.StatusServiceUnavailable, "Service Unavailable"
		p.Retryable = true
	}
	return p, true
}

// HandleDBError maps err to a Problem and writes it. Returns true if handled.
func HandleDBError(w http.ResponseWriter, r *http.Request, err error, fallbackTitle string) bool {
	if err == nil {
		return false
	}
	if p, ok := FromPG(err); ok {
		Write(w, r, p)
		return true
	}
	Write(w, r, Problem{Status: http.StatusInternalServerError, Title: fallbackTitle})
	return true
}
