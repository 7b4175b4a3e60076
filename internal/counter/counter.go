// Package counter provides unit-frequency counting over line-oriented text.
//
// This package counts how many times each distinct unit appears in a UTF-8
// input stream. The unit is selected by a Mode: Unicode characters, word-class
// runs, whole lines, or cl100k_base tokens. The result is a Frequencies map
// from a unit's text to its occurrence count.
//
// Usage Example:
//
//	freqs, err := counter.Count(strings.NewReader("aa bb cc bb"), counter.Word)
//	// freqs["bb"] == 2
//
// Counting is a single linear pass with no buffering beyond one line at a
// time. Invalid UTF-8 anywhere in the input aborts the whole call with an
// error wrapping ErrInvalidEncoding; no partial table is ever returned.
package counter

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"unicode/utf8"
)

// ErrInvalidEncoding indicates input that does not decode as valid UTF-8.
// Count fails on the first malformed line; bad bytes are never skipped
// or substituted.
var ErrInvalidEncoding = errors.New("input is not valid UTF-8")

// maxLineBytes bounds a single input line. Lines are held in memory one at
// a time, so this is the only per-line allocation cap.
const maxLineBytes = 16 * 1024 * 1024

// Mode represents the different available counting strategies.
type Mode int

const (
	// Word counts maximal runs of word-class characters (letters, digits,
	// underscore), case-sensitive, keyed by the matched text verbatim.
	// Word is the zero value and therefore the default mode.
	Word Mode = iota
	// Char counts individual Unicode code points (not bytes or grapheme clusters)
	Char
	// Line counts whole lines, with terminators stripped
	Line
	// Tokens counts cl100k_base tokens, keyed by each token's decoded text
	Tokens
)

// String returns the string representation of the counting mode.
func (m Mode) String() string {
	switch m {
	case Word:
		return "words"
	case Char:
		return "characters"
	case Line:
		return "lines"
	case Tokens:
		return "tokens"
	default:
		return "unknown"
	}
}

// Frequencies maps a unit's text to the number of times it appeared.
// Map iteration order carries no meaning; use Sorted for presentation.
type Frequencies map[string]int

// Total returns the sum of all counts, i.e. the total number of units seen.
func (f Frequencies) Total() int {
	total := 0
	for _, n := range f {
		total += n
	}
	return total
}

// Entry is a single unit/count pair produced by Sorted.
type Entry struct {
	Unit  string
	Count int
}

// Sorted returns the table's entries ordered by descending count, breaking
// ties by ascending unit text. The map itself is left untouched.
func (f Frequencies) Sorted() []Entry {
	entries := make([]Entry, 0, len(f))
	for unit, n := range f {
		entries = append(entries, Entry{Unit: unit, Count: n})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Unit < entries[j].Unit
	})

	return entries
}

// tallier defines the interface for mode-specific counting strategies.
type tallier interface {
	// tally adds one line's units to freqs
	tally(line string, freqs Frequencies)

	// name returns a human-readable strategy name (for logging)
	name() string
}

// newTallier creates a tallier for the specified mode.
// This functions as a factory mirroring the Mode constants; it returns an
// error only when the strategy needs initialization that can fail (e.g.,
// loading the tiktoken encoding) or when the mode is unknown.
func newTallier(mode Mode) (tallier, error) {
	switch mode {
	case Word:
		return wordTallier{re: wordClass}, nil
	case Char:
		return charTallier{}, nil
	case Line:
		return lineTallier{}, nil
	case Tokens:
		return newTokenTallier()
	default:
		return nil, fmt.Errorf("unknown counting mode %d", int(mode))
	}
}

// Count reads input line by line and tallies unit frequencies under mode.
// Both \n and \r\n are recognized as line terminators; terminators are
// stripped before counting and never contribute units themselves.
//
// The zero Mode is Word, so callers that leave the mode unset get word
// counting, identical to passing Word explicitly.
//
// If any line fails UTF-8 validation the call returns a nil table and an
// error wrapping ErrInvalidEncoding; accumulated counts are discarded.
// Empty input is not an error and yields an empty table.
func Count(input io.Reader, mode Mode) (Frequencies, error) {
	t, err := newTallier(mode)
	if err != nil {
		return nil, err
	}

	freqs := make(Frequencies)

	scanner := bufio.NewScanner(input)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		// Scanner strips the \n and any preceding \r
		line := scanner.Text()
		if !utf8.ValidString(line) {
			return nil, fmt.Errorf("line %d: %w", lineNum, ErrInvalidEncoding)
		}
		t.tally(line, freqs)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	slog.Debug("Frequency count complete",
		"mode", t.name(), "lines", lineNum, "distinctUnits", len(freqs))
	return freqs, nil
}
