package middlewares

import (
	"errors"
	"log"
	"net/http"
	"runtime/debug"

	"github.com/5w1tchy/passkit/internal/api/httpx"
)

type headerTracker struct {
	http.ResponseWriter
	wrote bool
}

func (t *headerTracker) WriteHeader(code int) {
	t.wrote = true
	t.ResponseWriter.WriteHeader(code)
}

func (t *headerTracker) Write(b []byte) (int, error) {
	t.wrote = true
	return t.ResponseWriter.Write(b)
}

func (t *headerTracker) Unwrap() http.ResponseWriter { return t.ResponseWriter }

// Recovery turns a handler panic into a 500 envelope. http.ErrAbortHandler
// is re-raised so the server aborts the connection as intended. Only the
// route is logged: bodies may hold passwords.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tw := &headerTracker{ResponseWriter: w}
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if err, ok := v.(error); ok && errors.Is(err, http.ErrAbortHandler) {
				panic(v)
			}
			log.Printf("[PANIC] rid=%s %s %s: %v\n%s", GetRequestID(r), r.Method, r.URL.Path, v, debug.Stack())
			if tw.wrote {
				return // status already sent
			}
			httpx.ErrorCode(w, http.StatusInternalServerError, "internal", "Internal Server Error")
		}()
		next.ServeHTTP(tw, r)
	})
}
