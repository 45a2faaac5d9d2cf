package auditstore

import (
	"time"

	"github.com/5w1tchy/passkit/internal/strength"
	"github.com/google/uuid"
)

type Source string

const (
	SourceGenerate Source = "generate"
	SourceCheck    Source = "check"
	SourceHash     Source = "hash"
)

// Event is one evaluation. The password itself is never recorded.
type Event struct {
	ID          uuid.UUID
	Source      Source
	Category    strength.Category
	EntropyBits float64
	Length      int
	Classes     int // bitmask, see ClassMask
	CreatedAt   time.Time
}

// NewEvent stamps an evaluation result with a fresh id and UTC time.
func NewEvent(src Source, res strength.Result) Event {
	return Event{
		ID:          uuid.New(),
		Source:      src,
		Category:    res.Category,
		EntropyBits: res.EntropyBits,
		Length:      res.Length,
		Classes:     ClassMask(res.Classes),
		CreatedAt:   time.Now().UTC(),
	}
}

// ClassMask packs a ClassSet as upper=1 lower=2 digit=4 symbol=8.
func ClassMask(cs strength.ClassSet) int {
	m := 0
	if cs.Upper {
		m |= 1
	}
	if cs.Lower {
		m |= 2
	}
	if cs.Digit {
		m |= 4
	}
	if cs.Symbol {
		m |= 8
	}
	return m
}

type SourceTotals struct {
	Source     Source  `json:"source"`
	Events     int     `json:"events"`
	AvgEntropy float64 `json:"avg_entropy_bits"`
}
