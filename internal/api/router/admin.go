package router

import (
	"net/http"

	admin "github.com/5w1tchy/passkit/internal/api/handlers/admin"
	"github.com/5w1tchy/passkit/internal/api/middlewares"
)

// MountAdmin wires all /admin/* endpoints behind an admin JWT.
func MountAdmin(mux *http.ServeMux, auth middlewares.TokenParser, adminH *admin.Handler) {
	gate := func(next http.HandlerFunc) http.Handler {
		return middlewares.RequireAdmin(auth, next)
	}

	mux.Handle("GET /admin/stats", gate(adminH.Stats))
	mux.Handle("POST /admin/reports", gate(adminH.CreateReport))
}
