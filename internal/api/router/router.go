package router

import (
	"net/http"

	"github.com/5w1tchy/passkit/internal/api/handlers"
	"github.com/5w1tchy/passkit/internal/api/handlers/passwords"
)

type Middleware = func(http.Handler) http.Handler

// Deps is everything the router needs; nil limiters are skipped.
type Deps struct {
	Passwords *passwords.Handler
	Checks    map[string]handlers.Check

	// Limit guards the expensive routes (generate, hash).
	Limit Middleware
	// VerifyLimit guards /v1/verify against guessing.
	VerifyLimit Middleware
}

func Router(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	mux.Handle("GET /healthz", handlers.Healthz(d.Checks))

	p := d.Passwords
	mux.HandleFunc("POST /v1/evaluate", p.Evaluate)
	mux.Handle("POST /v1/generate", guard(d.Limit, http.HandlerFunc(p.Generate)))
	mux.Handle("POST /v1/hash", guard(d.Limit, http.HandlerFunc(p.Hash)))
	mux.Handle("POST /v1/verify", guard(d.VerifyLimit, http.HandlerFunc(p.Verify)))

	mux.HandleFunc("GET /v1/history", p.ListHistory)
	mux.HandleFunc("DELETE /v1/history", p.ClearHistory)

	return mux
}

func guard(mw Middleware, h http.Handler) http.Handler {
	if mw == nil {
		return h
	}
	return mw(h)
}
