package passwords

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/5w1tchy/passkit/internal/api/httpx"
	"github.com/5w1tchy/passkit/internal/security/password"
	auditstore "github.com/5w1tchy/passkit/internal/store/audit"
	"github.com/5w1tchy/passkit/internal/validate"
)

const maxHints = 8

type hashResponse struct {
	Hash       string            `json:"hash"`
	Evaluation evaluation        `json:"evaluation"`
	Warning    *password.Warning `json:"warning,omitempty"`
}

// POST /v1/hash
func (h *Handler) Hash(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Password string   `json:"password"`
		Hints    []string `json:"hints"`
	}
	if !httpx.DecodeJSON(w, r, &body) {
		return
	}
	if err := validate.RequireBounded("password", body.Password, 1, maxPasswordRunes); err != nil {
		httpx.ErrorCode(w, http.StatusBadRequest, "invalid_password", err.Error())
		return
	}

	pwd, res, warn, err := password.Validate(body.Password, validate.Hints(body.Hints, maxHints)...)
	if errors.Is(err, password.ErrTooShort) {
		httpx.ErrorCode(w, http.StatusUnprocessableEntity, "password_too_short",
			"password must be at least 8 characters")
		return
	}

	phc, err := h.Hasher.Hash(pwd)
	if err != nil {
		log.Printf("[hash] argon2id: %v", err)
		httpx.ErrorCode(w, http.StatusInternalServerError, "internal", "hashing failed")
		return
	}
	h.audit(auditstore.SourceHash, res)

	httpx.WriteJSON(w, http.StatusOK, hashResponse{
		Hash:       phc,
		Evaluation: present(r, res),
		Warning:    warn,
	})
}

// POST /v1/verify
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Password string `json:"password"`
		Hash     string `json:"hash"`
	}
	if !httpx.DecodeJSON(w, r, &body) {
		return
	}
	// /v1/hash stores the trimmed password
	pwd := strings.TrimSpace(body.Password)
	if err := validate.RequireBounded("password", pwd, 1, maxPasswordRunes); err != nil {
		httpx.ErrorCode(w, http.StatusBadRequest, "invalid_password", err.Error())
		return
	}

	ok, rehash, err := h.Hasher.Verify(pwd, body.Hash)
	if errors.Is(err, password.ErrHashCost) {
		httpx.ErrorCode(w, http.StatusBadRequest, "invalid_hash", "hash parameters exceed server limits")
		return
	}
	if err != nil {
		// decoding only: bad PHC string, version or variant
		httpx.ErrorCode(w, http.StatusBadRequest, "invalid_hash", "hash must be an argon2id PHC string")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]bool{"match": ok, "needs_rehash": rehash})
}
