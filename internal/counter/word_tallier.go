package counter

import "regexp"

// wordClass is compiled once at package initialization. It is the
// Unicode-aware equivalent of \w+: maximal runs of letters, digits,
// and underscore.
var wordClass = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// wordTallier counts maximal word-class runs, keyed by the matched text
// verbatim. Matching is case-sensitive and applies no normalization.
type wordTallier struct {
	re *regexp.Regexp
}

func (w wordTallier) tally(line string, freqs Frequencies) {
	for _, match := range w.re.FindAllString(line, -1) {
		freqs[match]++
	}
}

// name returns the name of this counting strategy for logging and debugging.
func (wordTallier) name() string {
	return "words"
}
