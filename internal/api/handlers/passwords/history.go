package passwords

import (
	"log"
	"net/http"

	"github.com/5w1tchy/passkit/internal/api/httpx"
	"github.com/5w1tchy/passkit/internal/validate"
)

func (h *Handler) session(w http.ResponseWriter, r *http.Request) (string, bool) {
	s, err := validate.SessionID(r.Header.Get(SessionHeader))
	if err != nil {
		httpx.ErrorCode(w, http.StatusBadRequest, "invalid_session", err.Error())
		return "", false
	}
	if h.History == nil {
		httpx.ErrorCode(w, http.StatusServiceUnavailable, "history_disabled", "history is not configured")
		return "", false
	}
	return s, true
}

// GET /v1/history
func (h *Handler) ListHistory(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	items, err := h.History.List(r.Context(), s)
	if err != nil {
		log.Printf("[history] list failed: %v", err)
		httpx.ErrorCode(w, http.StatusInternalServerError, "internal", "history unavailable")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"passwords": items, "count": len(items)})
}

// DELETE /v1/history
func (h *Handler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := h.History.Clear(r.Context(), s); err != nil {
		log.Printf("[history] clear failed: %v", err)
		httpx.ErrorCode(w, http.StatusInternalServerError, "internal", "history unavailable")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
