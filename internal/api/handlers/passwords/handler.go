package passwords

import (
	"context"
	"net/http"

	"github.com/5w1tchy/passkit/internal/generator"
	"github.com/5w1tchy/passkit/internal/history"
	"github.com/5w1tchy/passkit/internal/security/password"
	auditstore "github.com/5w1tchy/passkit/internal/store/audit"
	"github.com/5w1tchy/passkit/internal/strength"
	"github.com/5w1tchy/passkit/internal/textfmt"
)

// maxPasswordRunes bounds inputs to evaluate/hash/verify.
const maxPasswordRunes = 1024

const SessionHeader = "X-Session-ID"

// Auditor receives one event per evaluation; *auditqueue.Queue is nil-safe.
type Auditor interface {
	Enqueue(ev auditstore.Event)
}

type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, phc string) (ok bool, needsRehash bool, err error)
}

type generateFunc func(cfg generator.Config) (string, error)

type Handler struct {
	History   history.Store
	Audit     Auditor
	Hasher    PasswordHasher
	MaxLength int

	generate generateFunc
}

func NewHandler(hist history.Store, audit Auditor, hasher *password.Hasher, maxLength int) *Handler {
	if maxLength < generator.MinLength {
		maxLength = 128
	}
	return &Handler{
		History:   hist,
		Audit:     audit,
		Hasher:    hasher,
		MaxLength: maxLength,
		generate:  generator.Generate,
	}
}

// WithGenerator swaps the random source, mainly for tests.
func (h *Handler) WithGenerator(g *generator.Generator) *Handler {
	h.generate = g.Generate
	return h
}

// evaluation is strength.Result plus its localized presentation.
type evaluation struct {
	EntropyBits float64           `json:"entropy_bits"`
	Category    strength.Category `json:"category"`
	Label       string            `json:"label"`
	Progress    int               `json:"progress"`
	Color       string            `json:"color"`
	Summary     string            `json:"summary"`
	Length      int               `json:"length"`
	Classes     strength.ClassSet `json:"classes"`
}

func present(r *http.Request, res strength.Result) evaluation {
	p := textfmt.Printer(textfmt.ResolveTag(r))
	return evaluation{
		EntropyBits: res.EntropyBits,
		Category:    res.Category,
		Label:       textfmt.Label(p, res.Category),
		Progress:    res.Progress,
		Color:       res.Category.Color(),
		Summary:     textfmt.Summary(p, res),
		Length:      res.Length,
		Classes:     res.Classes,
	}
}

func (h *Handler) audit(src auditstore.Source, res strength.Result) {
	if h.Audit != nil {
		h.Audit.Enqueue(auditstore.NewEvent(src, res))
	}
}

func (h *Handler) remember(ctx context.Context, session, pwd string) error {
	return h.History.Push(ctx, session, pwd)
}
