package tokenizer

import (
	"fmt"
)

// Kind represents the type of a span.
type Kind string

const (
	// Word-like tokens
	Letter  Kind = "letter"  // Run of Unicode letters
	Float   Kind = "float"   // Digits, '.' or ',', digits
	Integer Kind = "integer" // Run of decimal digits

	// Grouped tokens, split into runs of identical characters
	SentencePunct Kind = "spunct" // In-sentence punctuation (",", "-", brackets, quotes)
	Punct         Kind = "punct"  // Sentence-terminal punctuation (".", "!", "?")
	Separator     Kind = "separ"  // Spaces, math symbols, other punctuation
	Break         Kind = "break"  // Line breaks
)

// Span is a half-open interval [From, To) of character (rune) offsets into
// the original text, tagged with a kind. Spans never carry the text itself.
type Span struct {
	From int  `json:"from" msgpack:"from"`
	To   int  `json:"to" msgpack:"to"`
	Kind Kind `json:"kind" msgpack:"kind"`
}

// NewSpan creates a new span.
func NewSpan(from, to int, kind Kind) Span {
	return Span{From: from, To: to, Kind: kind}
}

// Len returns the number of characters covered by the span.
func (s Span) Len() int {
	return s.To - s.From
}

// Empty reports whether the span covers no characters (or is inverted).
func (s Span) Empty() bool {
	return s.To <= s.From
}

// Slice resolves the span against the runes of the original text.
func (s Span) Slice(runes []rune) string {
	if s.From < 0 || s.To > len(runes) || s.Empty() {
		return ""
	}
	return string(runes[s.From:s.To])
}

// String renders the span as kind[from,to).
func (s Span) String() string {
	return fmt.Sprintf("%s[%d,%d)", s.Kind, s.From, s.To)
}

// Validate checks that spans are sorted, contiguous and together cover
// [0, length) with no overlap.
func Validate(spans []Span, length int) error {
	position := 0
	for i, span := range spans {
		if span.From != position {
			return fmt.Errorf("span %d (%s) starts at %d, expected %d", i, span, span.From, position)
		}
		if span.Empty() {
			return fmt.Errorf("span %d (%s) is empty", i, span)
		}
		position = span.To
	}
	if position != length {
		return fmt.Errorf("spans cover [0,%d), expected [0,%d)", position, length)
	}
	return nil
}
