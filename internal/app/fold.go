package app

import (
	"strings"

	"github.com/kljensen/snowball"

	"github.com/chriscorrea/tally/internal/counter"
)

// FoldMode selects optional post-count key folding. Folding runs on the
// finished table, so the counter's verbatim, case-sensitive contract is
// untouched; it only merges rows whose keys collapse to the same form.
type FoldMode int

const (
	// FoldNone leaves the table as counted (default)
	FoldNone FoldMode = iota
	// FoldCase merges keys that differ only in case
	FoldCase
	// FoldStem merges keys sharing an English snowball stem
	FoldStem
)

// String returns the string representation of the fold mode.
func (f FoldMode) String() string {
	switch f {
	case FoldNone:
		return "none"
	case FoldCase:
		return "case"
	case FoldStem:
		return "stem"
	default:
		return "unknown"
	}
}

// Fold merges counts whose keys collapse to the same folded form.
// FoldNone returns the table unchanged (same map, no copy).
func Fold(freqs counter.Frequencies, mode FoldMode) counter.Frequencies {
	if mode == FoldNone {
		return freqs
	}

	folded := make(counter.Frequencies, len(freqs))
	for unit, n := range freqs {
		folded[foldKey(unit, mode)] += n
	}
	return folded
}

func foldKey(unit string, mode FoldMode) string {
	switch mode {
	case FoldCase:
		return strings.ToLower(unit)
	case FoldStem:
		stemmed, err := snowball.Stem(unit, "english", true)
		if err != nil {
			// the stemmer rejects some inputs; keep the raw unit
			return unit
		}
		return stemmed
	default:
		return unit
	}
}
