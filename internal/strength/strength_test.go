package strength

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
)

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestDetect(t *testing.T) {
	cases := []struct {
		in   string
		want ClassSet
	}{
		{"", ClassSet{}},
		{"abc", ClassSet{Lower: true}},
		{"ABC", ClassSet{Upper: true}},
		{"123", ClassSet{Digit: true}},
		{"!~`", ClassSet{Symbol: true}},
		{"Aa1!", ClassSet{Upper: true, Lower: true, Digit: true, Symbol: true}},
		{"   ", ClassSet{}},
		{"ÉÄ€", ClassSet{}},
		{"é1", ClassSet{Digit: true}},
	}
	for _, c := range cases {
		if got := Detect(c.in); got != c.want {
			t.Errorf("Detect(%q) = %+v; want %+v", c.in, got, c.want)
		}
	}
}

func TestSymbolsIsASCIIPunctuation(t *testing.T) {
	if SymbolSize != 32 {
		t.Fatalf("want 32 symbols, got %d", SymbolSize)
	}
	for _, r := range Symbols {
		if r < 0x21 || r > 0x7e {
			t.Fatalf("non-printable or non-ASCII symbol %q", r)
		}
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			t.Fatalf("alphanumeric %q in symbol set", r)
		}
	}
}

func TestScoreAndAlphabet(t *testing.T) {
	cs := ClassSet{Upper: true, Lower: true, Digit: true, Symbol: true}
	if cs.Score() != 4 || cs.AlphabetSize() != 94 {
		t.Fatalf("full set: score=%d alphabet=%d", cs.Score(), cs.AlphabetSize())
	}
	cs = ClassSet{Digit: true}
	if cs.Score() != 1 || cs.AlphabetSize() != 10 {
		t.Fatalf("digits: score=%d alphabet=%d", cs.Score(), cs.AlphabetSize())
	}
	if (ClassSet{}).AlphabetSize() != 0 {
		t.Fatal("empty set should have no alphabet")
	}
}

func TestEntropy(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"", 0},
		{"    ", 0},
		{"aaaaaa", 6 * math.Log2(26)},
		{"Aa1!Aa1!Aa1!", 12 * math.Log2(94)},
		{"1234", 4 * math.Log2(10)},
		{"a b", 3 * math.Log2(26)},
		{"ää", 0},
	}
	for _, c := range cases {
		if got := Entropy(c.in); !almostEqual(got, c.want) {
			t.Errorf("Entropy(%q) = %v; want %v", c.in, got, c.want)
		}
	}
}

func TestEntropyCountsRunesNotBytes(t *testing.T) {
	// 'é' contributes length but no class
	got := Entropy("aé")
	want := 2 * math.Log2(26)
	if !almostEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestEvaluate(t *testing.T) {
	cases := []struct {
		in       string
		want     Category
		progress int
	}{
		{"", VeryWeak, 20},
		{"aaaaaa", VeryWeak, 20},
		{"Ab1!x", VeryWeak, 20},
		{"abcde1", Weak, 40},
		{"Abcde1", Weak, 40},
		{"abcdef12", Weak, 40},
		{"Abcdef12", Moderate, 60},
		{"Abcdefghijk1", Moderate, 60},
		{"Aa1!Aa1!Aa1", Moderate, 60},
		{"Aa1!Aa1!Aa1!", Strong, 80},
		{"Aa1!Aa1!Aa1!Aa1", Strong, 80},
		{"Aa1!Aa1!Aa1!Aa1!", VeryStrong, 100},
	}
	for _, c := range cases {
		res := Evaluate(c.in)
		if res.Category != c.want || res.Progress != c.progress {
			t.Errorf("Evaluate(%q) = %s/%d; want %s/%d", c.in, res.Category, res.Progress, c.want, c.progress)
		}
	}
}

func TestEvaluateEmpty(t *testing.T) {
	res := Evaluate("")
	if res.EntropyBits != 0 || res.Category != VeryWeak || res.Progress != 20 || res.Length != 0 {
		t.Fatalf("unexpected verdict for empty password: %+v", res)
	}
}

func TestEvaluateStrongExample(t *testing.T) {
	res := Evaluate("Aa1!Aa1!Aa1!")
	if !almostEqual(res.EntropyBits, 12*math.Log2(94)) {
		t.Fatalf("entropy = %v", res.EntropyBits)
	}
	if res.Category != Strong || res.Progress != 80 {
		t.Fatalf("want Strong/80, got %s/%d", res.Category, res.Progress)
	}
}

func TestEvaluateIsIdempotent(t *testing.T) {
	for _, pwd := range []string{"", "hunter2", "Correct-Horse-Battery-9", "ÄÖÜ ß"} {
		a, b := Evaluate(pwd), Evaluate(pwd)
		if a != b {
			t.Fatalf("Evaluate(%q) not stable: %+v vs %+v", pwd, a, b)
		}
	}
}

func TestClassifyChecksEntropyThresholds(t *testing.T) {
	all := ClassSet{Upper: true, Lower: true, Digit: true, Symbol: true}
	cases := []struct {
		name string
		m    Metrics
		want Category
	}{
		{"very strong", Metrics{Length: 16, Classes: all, Score: 4, Entropy: 80}, VeryStrong},
		{"low entropy drops to strong", Metrics{Length: 16, Classes: all, Score: 4, Entropy: 79.9}, Strong},
		{"low entropy drops to moderate", Metrics{Length: 12, Score: 4, Entropy: 59.9}, Moderate},
		{"low entropy drops to weak", Metrics{Length: 8, Score: 3, Entropy: 39.9}, Weak},
		{"weak ignores entropy", Metrics{Length: 6, Score: 2, Entropy: 0}, Weak},
		{"score 1", Metrics{Length: 40, Score: 1, Entropy: 500}, VeryWeak},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Classify(c.m); got != c.want {
				t.Fatalf("got %s want %s", got, c.want)
			}
		})
	}
}

func TestProgressMonotonicInLength(t *testing.T) {
	patterns := []string{"a", "aB", "aB3", "aB3$"}
	for _, p := range patterns {
		prev := 0
		for n := 0; n <= 40; n++ {
			pwd := strings.Repeat(p, n/len(p)+1)[:n]
			if n >= len(p) && Detect(pwd).Score() != len(p) {
				t.Fatalf("pattern %q len %d lost a class", p, n)
			}
			got := Evaluate(pwd).Progress
			switch got {
			case 20, 40, 60, 80, 100:
			default:
				t.Fatalf("progress %d out of range", got)
			}
			if n >= len(p) && got < prev {
				t.Fatalf("pattern %q: progress dropped from %d to %d at length %d", p, prev, got, n)
			}
			if n >= len(p) {
				prev = got
			}
		}
	}
}

func TestCategoryText(t *testing.T) {
	if VeryStrong.String() != "Very Strong" || VeryStrong.Slug() != "very_strong" || VeryStrong.Color() != "darkgreen" {
		t.Fatal("unexpected VeryStrong text")
	}
	if Category(99).String() != "Category(99)" || Category(99).Progress() != 0 {
		t.Fatal("invalid category should not panic")
	}
	for _, c := range Categories() {
		got, err := ParseCategory(c.Slug())
		if err != nil || got != c {
			t.Fatalf("ParseCategory(%q) = %v, %v", c.Slug(), got, err)
		}
	}
	if _, err := ParseCategory("mighty"); err == nil {
		t.Fatal("expected error for unknown slug")
	}
}

func TestResultJSONUsesSlug(t *testing.T) {
	b, err := json.Marshal(Evaluate("Aa1!Aa1!Aa1!"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), `"category":"strong"`) {
		t.Fatalf("unexpected json: %s", b)
	}
}
