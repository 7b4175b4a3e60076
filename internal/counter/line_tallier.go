package counter

// lineTallier counts each line as a single unit keyed by the full line text.
// The terminator is already stripped by the scanner, so an empty line
// contributes one count under the empty-string key.
type lineTallier struct{}

func (lineTallier) tally(line string, freqs Frequencies) {
	freqs[line]++
}

// name returns the name of this counting strategy for logging and debugging.
func (lineTallier) name() string {
	return "lines"
}
