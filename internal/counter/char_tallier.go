package counter

// charTallier counts individual Unicode code points.
// Note that this counts runes properly, not bytes, so a multi-byte character
// is one unit keyed by its full UTF-8 form.
type charTallier struct{}

func (charTallier) tally(line string, freqs Frequencies) {
	for _, r := range line {
		freqs[string(r)]++
	}
}

// name returns the name of this counting strategy for logging and debugging.
func (charTallier) name() string {
	return "characters"
}
