package tokenizer

import (
	"regexp"
)

// Rule is one entry of the scanning table. Grouped rules split their match
// into runs of identical consecutive characters, one span per run.
type Rule struct {
	Kind    Kind
	Pattern *regexp.Regexp
	Grouped bool
}

// Regular expressions for token matching. Every pattern is anchored at the
// scan cursor.
var (
	letterRegex        = regexp.MustCompile(`^\p{L}+`)
	floatRegex         = regexp.MustCompile(`^\d+[.,]\d+`)
	integerRegex       = regexp.MustCompile(`^\d+`)
	sentencePunctRegex = regexp.MustCompile(`^[,\-:;\p{Ps}\p{Pe}\p{Pi}\p{Pf}]+`)
	punctRegex         = regexp.MustCompile(`^[.!?]+`)
	separatorRegex     = regexp.MustCompile(`^[ \p{Sm}\p{Pc}\p{Po}\p{Pd}]+`)
	breakRegex         = regexp.MustCompile(`^(?:\r\n|\n|\r)+`)
)

// The order is load-bearing: float must be tried before integer, and
// in-sentence punctuation before separators ("-" is also a dash).
var scanRules = []Rule{
	{Kind: Letter, Pattern: letterRegex},
	{Kind: Float, Pattern: floatRegex},
	{Kind: Integer, Pattern: integerRegex},
	{Kind: SentencePunct, Pattern: sentencePunctRegex, Grouped: true},
	{Kind: Punct, Pattern: punctRegex, Grouped: true},
	{Kind: Separator, Pattern: separatorRegex, Grouped: true},
	{Kind: Break, Pattern: breakRegex, Grouped: true},
}

// Rules returns a copy of the scanning table in priority order.
func Rules() []Rule {
	rules := make([]Rule, len(scanRules))
	copy(rules, scanRules)
	return rules
}
