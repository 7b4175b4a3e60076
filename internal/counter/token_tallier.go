package counter

import (
	"fmt"
	"log/slog"

	"github.com/pkoukk/tiktoken-go"
)

// tokenTallier counts cl100k_base tokens, keyed by each token's decoded
// text. Two occurrences of the same token id always decode to the same
// string, so the key space is the vocabulary actually present in the input.
type tokenTallier struct {
	encoding *tiktoken.Tiktoken
}

// newTokenTallier initializes a tokenTallier with the cl100k_base encoding.
func newTokenTallier() (*tokenTallier, error) {
	slog.Debug("Initializing token tallier with cl100k_base encoding")

	encoding, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cl100k_base encoding: %w", err)
	}

	return &tokenTallier{encoding: encoding}, nil
}

func (t *tokenTallier) tally(line string, freqs Frequencies) {
	// encode line to tokens (nil params mean no special tokens allowed/disallowed)
	for _, id := range t.encoding.Encode(line, nil, nil) {
		freqs[t.encoding.Decode([]int{id})]++
	}
}

// name returns the name of this counting strategy for logging and debugging.
func (t *tokenTallier) name() string {
	return "tokens (cl100k_base)"
}
