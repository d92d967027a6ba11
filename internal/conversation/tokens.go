package conversation

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// TokenCounter estimates token usage for a piece of text. Implementations
// must be deterministic and monotonic in text length.
type TokenCounter func(text string) int

var (
	tk     *tiktoken.Tiktoken
	tkErr  error
	tkOnce sync.Once
)

func getTokenizer() (*tiktoken.Tiktoken, error) {
	tkOnce.Do(func() {
		tk, tkErr = tiktoken.GetEncoding("cl100k_base")
	})
	return tk, tkErr
}

// DefaultTokenCounter counts cl100k_base tokens. When the encoding cannot
// be loaded (offline first run), it falls back to the 4-chars-per-token
// heuristic so context truncation keeps working.
func DefaultTokenCounter(text string) int {
	if text == "" {
		return 0
	}
	enc, err := getTokenizer()
	if err != nil {
		return heuristicTokenCounter(text)
	}
	return len(enc.Encode(text, nil, nil))
}

func heuristicTokenCounter(text string) int {
	n := len(text) / 4
	if n == 0 {
		n = 1
	}
	return n
}
