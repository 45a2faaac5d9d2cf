package passwords

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/5w1tchy/passkit/internal/api/httpx"
	"github.com/5w1tchy/passkit/internal/generator"
	auditstore "github.com/5w1tchy/passkit/internal/store/audit"
	"github.com/5w1tchy/passkit/internal/strength"
	"github.com/5w1tchy/passkit/internal/validate"
)

// Omitted class toggles default to on, like the original tool.
type generateRequest struct {
	Length           *int  `json:"length"`
	Uppercase        *bool `json:"uppercase"`
	Lowercase        *bool `json:"lowercase"`
	Digits           *bool `json:"digits"`
	Symbols          *bool `json:"symbols"`
	ExcludeAmbiguous bool  `json:"exclude_ambiguous"`
	Remember         bool  `json:"remember"`
}

func (req generateRequest) config() generator.Config {
	cfg := generator.DefaultConfig()
	if req.Length != nil {
		cfg.Length = *req.Length
	}
	cfg.IncludeUpper = orTrue(req.Uppercase)
	cfg.IncludeLower = orTrue(req.Lowercase)
	cfg.IncludeDigits = orTrue(req.Digits)
	cfg.IncludeSymbols = orTrue(req.Symbols)
	cfg.ExcludeAmbiguous = req.ExcludeAmbiguous
	return cfg
}

func orTrue(b *bool) bool { return b == nil || *b }

type generateResponse struct {
	Password   string     `json:"password"`
	Length     int        `json:"length"`
	Evaluation evaluation `json:"evaluation"`
	Remembered bool       `json:"remembered"`
}

// POST /v1/generate
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if !httpx.DecodeJSON(w, r, &req) {
		return
	}
	cfg := req.config()
	if cfg.Length > h.MaxLength {
		httpx.ErrorCode(w, http.StatusUnprocessableEntity, "length_too_long",
			fmt.Sprintf("length must be at most %d", h.MaxLength))
		return
	}

	var session string
	if req.Remember {
		s, err := validate.SessionID(r.Header.Get(SessionHeader))
		if err != nil {
			httpx.ErrorCode(w, http.StatusBadRequest, "invalid_session", err.Error())
			return
		}
		session = s
	}

	pwd, err := h.generate(cfg)
	if err != nil {
		var ce *generator.ConfigurationError
		if errors.As(err, &ce) {
			httpx.ErrorCode(w, http.StatusUnprocessableEntity, ce.Code(), ce.Error())
			return
		}
		httpx.ErrorCode(w, http.StatusInternalServerError, "internal", "generation failed")
		return
	}

	res := strength.Evaluate(pwd)
	h.audit(auditstore.SourceGenerate, res)

	remembered := false
	if session != "" && h.History != nil {
		if err := h.remember(r.Context(), session, pwd); err != nil {
			log.Printf("[history] push failed: %v", err)
		} else {
			remembered = true
		}
	}

	httpx.WriteJSON(w, http.StatusOK, generateResponse{
		Password:   pwd,
		Length:     res.Length,
		Evaluation: present(r, res),
		Remembered: remembered,
	})
}
