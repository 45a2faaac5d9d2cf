package passwords

import (
	"encoding/json"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/5w1tchy/passkit/internal/generator"
	"github.com/5w1tchy/passkit/internal/history"
	"github.com/5w1tchy/passkit/internal/security/password"
	auditstore "github.com/5w1tchy/passkit/internal/store/audit"
)

type fakeAudit struct {
	mu     sync.Mutex
	events []auditstore.Event
}

func (f *fakeAudit) Enqueue(ev auditstore.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, ev)
}

type evalBody struct {
	EntropyBits float64 `json:"entropy_bits"`
	Category    string  `json:"category"`
	Label       string  `json:"label"`
	Progress    int     `json:"progress"`
	Color       string  `json:"color"`
	Summary     string  `json:"summary"`
	Length      int     `json:"length"`
}

type errBody struct {
	Error struct {
		Code string `json:"code"`
	} `json:"error"`
}

func newTestHandler(t *testing.T) (*Handler, *fakeAudit, *history.MemoryStore) {
	t.Helper()
	aud := &fakeAudit{}
	hist := history.NewMemoryStore(5, 0)
	hasher := password.NewHasher(password.Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32})
	h := NewHandler(hist, aud, hasher, 64).WithGenerator(generator.New(rand.New(rand.NewPCG(1, 2))))
	return h, aud, hist
}

func do(h http.HandlerFunc, method, target, body string, hdr map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	h(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rr.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rr.Body.String(), err)
	}
	return v
}

func TestEvaluate(t *testing.T) {
	h, aud, _ := newTestHandler(t)

	rr := do(h.Evaluate, http.MethodPost, "/v1/evaluate", `{"password":"Tr0ub4dor&3Xyz!!"}`, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body)
	}
	got := decode[evalBody](t, rr)
	if got.Category != "very_strong" || got.Progress != 100 || got.Color != "darkgreen" {
		t.Fatalf("unexpected verdict: %+v", got)
	}
	if got.Summary != "Strength: Very Strong (Entropy: 104.87 bits)" {
		t.Fatalf("summary=%q", got.Summary)
	}
	if len(aud.events) != 1 || aud.events[0].Source != auditstore.SourceCheck {
		t.Fatalf("audit events: %+v", aud.events)
	}
}

func TestEvaluate_Localized(t *testing.T) {
	h, _, _ := newTestHandler(t)
	rr := do(h.Evaluate, http.MethodPost, "/v1/evaluate?lang=de", `{"password":"Tr0ub4dor&3Xyz!!"}`, nil)
	got := decode[evalBody](t, rr)
	if got.Summary != "Stärke: Sehr stark (Entropie: 104,87 Bit)" {
		t.Fatalf("summary=%q", got.Summary)
	}
}

func TestEvaluate_EmptyIsVeryWeak(t *testing.T) {
	h, _, _ := newTestHandler(t)
	rr := do(h.Evaluate, http.MethodPost, "/v1/evaluate", `{"password":""}`, nil)
	got := decode[evalBody](t, rr)
	if got.Category != "very_weak" || got.EntropyBits != 0 || got.Progress != 20 {
		t.Fatalf("got %+v", got)
	}
}

func TestEvaluate_RejectsUnknownFields(t *testing.T) {
	h, _, _ := newTestHandler(t)
	rr := do(h.Evaluate, http.MethodPost, "/v1/evaluate", `{"password":"x","extra":1}`, nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", rr.Code)
	}
}

func TestGenerate_Defaults(t *testing.T) {
	h, aud, _ := newTestHandler(t)
	rr := do(h.Generate, http.MethodPost, "/v1/generate", `{}`, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body)
	}
	got := decode[struct {
		Password   string   `json:"password"`
		Length     int      `json:"length"`
		Evaluation evalBody `json:"evaluation"`
		Remembered bool     `json:"remembered"`
	}](t, rr)
	if len(got.Password) != generator.DefaultLength || got.Length != generator.DefaultLength {
		t.Fatalf("password %q length %d", got.Password, got.Length)
	}
	alpha := generator.Alphabet(generator.DefaultConfig())
	for _, c := range got.Password {
		if !strings.ContainsRune(alpha, c) {
			t.Fatalf("unexpected char %q", c)
		}
	}
	if got.Remembered {
		t.Fatal("should not remember without opt-in")
	}
	if len(aud.events) != 1 || aud.events[0].Source != auditstore.SourceGenerate {
		t.Fatalf("audit events: %+v", aud.events)
	}
}

func TestGenerate_Errors(t *testing.T) {
	h, _, _ := newTestHandler(t)
	cases := []struct {
		name, body, code string
		status           int
	}{
		{"too short", `{"length":3}`, "length_too_short", http.StatusUnprocessableEntity},
		{"empty alphabet", `{"uppercase":false,"lowercase":false,"digits":false,"symbols":false}`, "empty_alphabet", http.StatusUnprocessableEntity},
		{"too long", `{"length":65}`, "length_too_long", http.StatusUnprocessableEntity},
		{"bad json", `{"length":"x"}`, "invalid_json", http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := do(h.Generate, http.MethodPost, "/v1/generate", tc.body, nil)
			if rr.Code != tc.status {
				t.Fatalf("status=%d body=%s", rr.Code, rr.Body)
			}
			if got := decode[errBody](t, rr).Error.Code; got != tc.code {
				t.Fatalf("code=%q want %q", got, tc.code)
			}
		})
	}
}

func TestGenerate_DigitsOnlyExcludeAmbiguous(t *testing.T) {
	h, _, _ := newTestHandler(t)
	body := `{"length":40,"uppercase":false,"lowercase":false,"symbols":false,"exclude_ambiguous":true}`
	rr := do(h.Generate, http.MethodPost, "/v1/generate", body, nil)
	got := decode[struct {
		Password string `json:"password"`
	}](t, rr)
	if strings.ContainsAny(got.Password, "01") || strings.Trim(got.Password, "23456789") != "" {
		t.Fatalf("password %q", got.Password)
	}
}

func TestGenerate_RememberAndHistory(t *testing.T) {
	h, _, _ := newTestHandler(t)
	sess := map[string]string{SessionHeader: "session-1234"}

	rr := do(h.Generate, http.MethodPost, "/v1/generate", `{"remember":true}`, nil)
	if rr.Code != http.StatusBadRequest || decode[errBody](t, rr).Error.Code != "invalid_session" {
		t.Fatalf("missing session: status=%d body=%s", rr.Code, rr.Body)
	}

	var generated []string
	for range 7 {
		rr := do(h.Generate, http.MethodPost, "/v1/generate", `{"remember":true}`, sess)
		got := decode[struct {
			Password   string `json:"password"`
			Remembered bool   `json:"remembered"`
		}](t, rr)
		if !got.Remembered {
			t.Fatal("expected remembered=true")
		}
		generated = append(generated, got.Password)
	}

	rr = do(h.ListHistory, http.MethodGet, "/v1/history", "", sess)
	hist := decode[struct {
		Passwords []string `json:"passwords"`
		Count     int      `json:"count"`
	}](t, rr)
	if hist.Count != 5 {
		t.Fatalf("count=%d", hist.Count)
	}
	if hist.Passwords[0] != generated[6] || hist.Passwords[4] != generated[2] {
		t.Fatalf("history order: %v vs %v", hist.Passwords, generated)
	}

	rr = do(h.ClearHistory, http.MethodDelete, "/v1/history", "", sess)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("clear status=%d", rr.Code)
	}
	rr = do(h.ListHistory, http.MethodGet, "/v1/history", "", sess)
	if decode[struct {
		Count int `json:"count"`
	}](t, rr).Count != 0 {
		t.Fatal("history not cleared")
	}
}

func TestHashAndVerify(t *testing.T) {
	h, aud, _ := newTestHandler(t)

	rr := do(h.Hash, http.MethodPost, "/v1/hash", `{"password":"short"}`, nil)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("short: status=%d", rr.Code)
	}

	rr = do(h.Hash, http.MethodPost, "/v1/hash", `{"password":"alice-password1","hints":["Alice"]}`, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("hash status=%d body=%s", rr.Code, rr.Body)
	}
	got := decode[struct {
		Hash    string            `json:"hash"`
		Warning *password.Warning `json:"warning"`
	}](t, rr)
	if !strings.HasPrefix(got.Hash, "$argon2id$") {
		t.Fatalf("hash=%q", got.Hash)
	}
	if got.Warning == nil || len(got.Warning.Suggestions) == 0 {
		t.Fatalf("expected warning, got %+v", got.Warning)
	}
	if len(aud.events) != 1 || aud.events[0].Source != auditstore.SourceHash {
		t.Fatalf("audit events: %+v", aud.events)
	}

	body, _ := json.Marshal(map[string]string{"password": "alice-password1", "hash": got.Hash})
	rr = do(h.Verify, http.MethodPost, "/v1/verify", string(body), nil)
	v := decode[map[string]bool](t, rr)
	if !v["match"] || v["needs_rehash"] {
		t.Fatalf("verify: %v", v)
	}

	body, _ = json.Marshal(map[string]string{"password": "wrong-password", "hash": got.Hash})
	rr = do(h.Verify, http.MethodPost, "/v1/verify", string(body), nil)
	if decode[map[string]bool](t, rr)["match"] {
		t.Fatal("wrong password matched")
	}
}

func TestHashAndVerify_TrimmedRoundTrip(t *testing.T) {
	h, _, _ := newTestHandler(t)
	const pwd = "  Correct-Horse-9!  "

	body, _ := json.Marshal(map[string]string{"password": pwd})
	rr := do(h.Hash, http.MethodPost, "/v1/hash", string(body), nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("hash status=%d body=%s", rr.Code, rr.Body)
	}
	phc := decode[struct {
		Hash string `json:"hash"`
	}](t, rr).Hash

	body, _ = json.Marshal(map[string]string{"password": pwd, "hash": phc})
	rr = do(h.Verify, http.MethodPost, "/v1/verify", string(body), nil)
	if !decode[map[string]bool](t, rr)["match"] {
		t.Fatalf("same input did not verify: %s", rr.Body)
	}
}

func TestVerify_RejectsCostlyHash(t *testing.T) {
	h, _, _ := newTestHandler(t)
	rr := do(h.Hash, http.MethodPost, "/v1/hash", `{"password":"Correct-Horse-9!"}`, nil)
	phc := decode[struct {
		Hash string `json:"hash"`
	}](t, rr).Hash
	if !strings.Contains(phc, "m=1024,t=1,p=1") {
		t.Fatalf("unexpected params in %q", phc)
	}

	costly := strings.Replace(phc, "m=1024,t=1,p=1", "m=262144,t=4,p=1", 1)
	body, _ := json.Marshal(map[string]string{"password": "Correct-Horse-9!", "hash": costly})
	rr = do(h.Verify, http.MethodPost, "/v1/verify", string(body), nil)
	if rr.Code != http.StatusBadRequest || decode[errBody](t, rr).Error.Code != "invalid_hash" {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body)
	}
}

func TestVerify_InvalidHash(t *testing.T) {
	h, _, _ := newTestHandler(t)
	rr := do(h.Verify, http.MethodPost, "/v1/verify", `{"password":"whatever1","hash":"md5:abc"}`, nil)
	if rr.Code != http.StatusBadRequest || decode[errBody](t, rr).Error.Code != "invalid_hash" {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body)
	}
}
