// Package helpers provides recognizers that produce coarse spans (URLs,
// e-mail addresses, abbreviations, times) over raw text, and a registry
// that resolves them by name.
//
// Helpers run against the original text and report character offsets. They
// know nothing about token boundaries: a span that does not line up with
// the token sequence is simply dropped when it is merged.
package helpers

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/spicery/span-tokenizer/pkg/tokenizer"
)

// Helper recognizes spans of a coarser kind in raw text. Spans are returned
// in left-to-right order.
type Helper interface {
	Name() string
	Spans(text string) []tokenizer.Span
}

type funcHelper struct {
	name string
	fn   func(text string) []tokenizer.Span
}

// Func adapts a plain function into a named Helper.
func Func(name string, fn func(text string) []tokenizer.Span) Helper {
	return &funcHelper{name: name, fn: fn}
}

func (h *funcHelper) Name() string { return h.name }

func (h *funcHelper) Spans(text string) []tokenizer.Span { return h.fn(text) }

// PatternHelper reports every non-overlapping match of a regular expression
// as a span of a fixed kind.
type PatternHelper struct {
	name    string
	kind    tokenizer.Kind
	pattern *regexp.Regexp
}

// NewPatternHelper compiles pattern into a helper.
func NewPatternHelper(name string, kind tokenizer.Kind, pattern string) (*PatternHelper, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern for helper '%s': %w", name, err)
	}
	return &PatternHelper{name: name, kind: kind, pattern: re}, nil
}

// MustPatternHelper is like NewPatternHelper but panics on a bad pattern.
func MustPatternHelper(name string, kind tokenizer.Kind, pattern string) *PatternHelper {
	h, err := NewPatternHelper(name, kind, pattern)
	if err != nil {
		panic(err)
	}
	return h
}

func (h *PatternHelper) Name() string { return h.name }

// Kind returns the kind assigned to matched spans.
func (h *PatternHelper) Kind() tokenizer.Kind { return h.kind }

// Spans converts the byte offsets of each match to character offsets.
func (h *PatternHelper) Spans(text string) []tokenizer.Span {
	matches := h.pattern.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return nil
	}
	counter := runeCounter{text: text}
	spans := make([]tokenizer.Span, 0, len(matches))
	for _, m := range matches {
		from := counter.at(m[0])
		to := counter.at(m[1])
		if from < to {
			spans = append(spans, tokenizer.NewSpan(from, to, h.kind))
		}
	}
	return spans
}

// runeCounter maps increasing byte offsets to character offsets without
// rescanning the text from the start.
type runeCounter struct {
	text  string
	bytes int
	runes int
}

func (c *runeCounter) at(offset int) int {
	c.runes += utf8.RuneCountInString(c.text[c.bytes:offset])
	c.bytes = offset
	return c.runes
}
