package tokenizer

import (
	"slices"
)

// MergeSpan replaces the run of tokens covered by override with override
// itself. The run starts at the first token whose From equals override.From
// and ends at the first token whose To equals override.To. When either
// boundary is missing the tokens are returned unchanged and the second
// result is false; a misaligned override is dropped, not an error.
//
// The returned slice may share the backing array of tokens.
func MergeSpan(tokens []Span, override Span) ([]Span, bool) {
	if override.Empty() {
		return tokens, false
	}
	from := slices.IndexFunc(tokens, func(s Span) bool { return s.From == override.From })
	to := slices.IndexFunc(tokens, func(s Span) bool { return s.To == override.To })
	if from < 0 || to < from {
		return tokens, false
	}
	return slices.Replace(tokens, from, to+1, override), true
}
