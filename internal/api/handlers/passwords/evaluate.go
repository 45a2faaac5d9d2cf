package passwords

import (
	"net/http"

	"github.com/5w1tchy/passkit/internal/api/httpx"
	auditstore "github.com/5w1tchy/passkit/internal/store/audit"
	"github.com/5w1tchy/passkit/internal/strength"
	"github.com/5w1tchy/passkit/internal/validate"
)

// POST /v1/evaluate
func (h *Handler) Evaluate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Password string `json:"password"`
	}
	if !httpx.DecodeJSON(w, r, &body) {
		return
	}
	if err := validate.RequireBounded("password", body.Password, 0, maxPasswordRunes); err != nil {
		httpx.ErrorCode(w, http.StatusBadRequest, "invalid_password", err.Error())
		return
	}

	res := strength.Evaluate(body.Password)
	h.audit(auditstore.SourceCheck, res)
	httpx.WriteJSON(w, http.StatusOK, present(r, res))
}
