// Package analyzer combines the tokenizer with helper recognizers: the text
// is tokenized, then each helper's spans are merged over the token
// sequence in a fixed order.
package analyzer

import (
	"io"
	"log/slog"

	"github.com/spicery/span-tokenizer/pkg/helpers"
	"github.com/spicery/span-tokenizer/pkg/tokenizer"
)

var defaultHelperNames = [...]string{"urls", "emails", "abbrevs", "time"}

// DefaultHelperNames returns the built-in helper order.
func DefaultHelperNames() []string {
	names := defaultHelperNames
	return names[:]
}

// Analyzer applies an ordered list of helpers to tokenized text. It is
// read-only after construction and safe for concurrent use.
type Analyzer struct {
	registry    *helpers.Registry
	helperNames []string
	logger      *slog.Logger
}

// NewAnalyzer creates an analyzer with the built-in helpers in default order.
func NewAnalyzer() *Analyzer {
	return NewAnalyzerWithHelpers(helpers.Builtin(), DefaultHelperNames())
}

// NewAnalyzerWithHelpers creates an analyzer that resolves names from
// registry and applies them in the given order.
func NewAnalyzerWithHelpers(registry *helpers.Registry, names []string) *Analyzer {
	return &Analyzer{
		registry:    registry,
		helperNames: append([]string(nil), names...),
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithLogger returns a copy of the analyzer that logs to logger.
func (a *Analyzer) WithLogger(logger *slog.Logger) *Analyzer {
	clone := *a
	clone.logger = logger
	return &clone
}

// HelperNames returns the helper order.
func (a *Analyzer) HelperNames() []string {
	return append([]string(nil), a.helperNames...)
}

// Analyze tokenizes text and merges helper spans over the result.
func (a *Analyzer) Analyze(text string) ([]tokenizer.Span, error) {
	return a.AnalyzeTokenizer(tokenizer.NewTokenizer(text))
}

// AnalyzeTokenizer is like Analyze but reuses the memoized tokens of t.
// Helpers always see the original text, never the merged sequence.
func (a *Analyzer) AnalyzeTokenizer(t *tokenizer.Tokenizer) ([]tokenizer.Span, error) {
	tokens, err := t.Tokens()
	if err != nil {
		return nil, err
	}
	a.logger.Debug("tokenized", "tokens", len(tokens))

	for _, name := range a.helperNames {
		helper, err := a.registry.Lookup(name)
		if err != nil {
			return nil, err
		}
		var merged, dropped int
		for _, span := range helper.Spans(t.Input()) {
			var ok bool
			if tokens, ok = tokenizer.MergeSpan(tokens, span); ok {
				merged++
			} else {
				dropped++
				a.logger.Debug("dropped misaligned span", "helper", name, "span", span.String())
			}
		}
		a.logger.Debug("applied helper", "helper", name, "merged", merged, "dropped", dropped)
	}
	return tokens, nil
}

// Analyze runs the default analyzer over text.
func Analyze(text string) ([]tokenizer.Span, error) {
	return NewAnalyzer().Analyze(text)
}
