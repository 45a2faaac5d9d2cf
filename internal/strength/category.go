package strength

import "fmt"

type Category int

const (
	VeryWeak Category = iota
	Weak
	Moderate
	Strong
	VeryStrong
)

var categoryInfo = [...]struct {
	label, slug, color string
	progress           int
}{
	VeryWeak:   {"Very Weak", "very_weak", "darkred", 20},
	Weak:       {"Weak", "weak", "red", 40},
	Moderate:   {"Moderate", "moderate", "orange", 60},
	Strong:     {"Strong", "strong", "green", 80},
	VeryStrong: {"Very Strong", "very_strong", "darkgreen", 100},
}

func (c Category) valid() bool { return c >= VeryWeak && c <= VeryStrong }

// String returns the display label, e.g. "Very Strong".
func (c Category) String() string {
	if !c.valid() {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryInfo[c].label
}

// Slug is the stable machine name used in JSON and storage.
func (c Category) Slug() string {
	if !c.valid() {
		return ""
	}
	return categoryInfo[c].slug
}

// Progress is the 0..100 bar value shown next to the verdict.
func (c Category) Progress() int {
	if !c.valid() {
		return 0
	}
	return categoryInfo[c].progress
}

// Color is a display hint only.
func (c Category) Color() string {
	if !c.valid() {
		return ""
	}
	return categoryInfo[c].color
}

func (c Category) MarshalText() ([]byte, error) {
	if !c.valid() {
		return nil, fmt.Errorf("invalid category %d", int(c))
	}
	return []byte(c.Slug()), nil
}

func (c *Category) UnmarshalText(b []byte) error {
	v, err := ParseCategory(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// ParseCategory accepts a slug ("very_strong").
func ParseCategory(s string) (Category, error) {
	for i, info := range categoryInfo {
		if info.slug == s {
			return Category(i), nil
		}
	}
	return VeryWeak, fmt.Errorf("unknown category %q", s)
}

// Categories lists every category, weakest first.
func Categories() []Category {
	return []Category{VeryWeak, Weak, Moderate, Strong, VeryStrong}
}
