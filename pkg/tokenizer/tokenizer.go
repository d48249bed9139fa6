package tokenizer

import (
	"fmt"
	"slices"
	"sync"
	"unicode/utf8"
)

// UnrecognizedCharacterError is returned when no rule matches at the scan
// cursor. Pos is a character offset into Text.
type UnrecognizedCharacterError struct {
	Text string
	Pos  int
}

// Char returns the offending character.
func (e *UnrecognizedCharacterError) Char() rune {
	i := 0
	for _, r := range e.Text {
		if i == e.Pos {
			return r
		}
		i++
	}
	return utf8.RuneError
}

func (e *UnrecognizedCharacterError) Error() string {
	return fmt.Sprintf("Could not recognize character \"%s\" @ %d", string(e.Char()), e.Pos)
}

// Tokenizer holds a text together with its memoized token sequence.
// Tokens is safe for concurrent use.
type Tokenizer struct {
	input  string
	once   sync.Once
	tokens []Span
	err    error
}

// NewTokenizer creates a new tokenizer for the given text.
func NewTokenizer(input string) *Tokenizer {
	return &Tokenizer{input: input}
}

// Input returns the text being tokenized.
func (t *Tokenizer) Input() string {
	return t.input
}

// Tokens returns the token sequence for the text. The text is scanned on
// the first call only; later calls return a fresh copy of the cached
// sequence (or the cached error), so callers may merge into the result.
func (t *Tokenizer) Tokens() ([]Span, error) {
	t.once.Do(func() {
		t.tokens, t.err = scan(t.input)
	})
	if t.err != nil {
		return nil, t.err
	}
	return slices.Clone(t.tokens), nil
}

// Tokenize scans text into a token sequence.
func Tokenize(input string) ([]Span, error) {
	return NewTokenizer(input).Tokens()
}

// scanner is the per-run cursor state. It never outlives scan.
type scanner struct {
	input    string
	position int // byte offset, used for matching
	offset   int // character offset, used for spans
	tokens   []Span
}

func scan(input string) ([]Span, error) {
	s := &scanner{
		input:  input,
		tokens: make([]Span, 0),
	}
	for s.hasMoreInput() {
		if !s.nextToken() {
			return nil, &UnrecognizedCharacterError{Text: input, Pos: s.offset}
		}
	}
	return s.tokens, nil
}

// nextToken tries every rule in priority order at the cursor.
func (s *scanner) nextToken() bool {
	for _, rule := range scanRules {
		match := rule.Pattern.FindString(s.input[s.position:])
		if match == "" {
			continue
		}
		if rule.Grouped {
			s.emitGroups(match, rule.Kind)
		} else {
			s.emit(match, rule.Kind)
		}
		return true
	}
	return false
}

func (s *scanner) emit(match string, kind Kind) {
	length := utf8.RuneCountInString(match)
	s.tokens = append(s.tokens, Span{From: s.offset, To: s.offset + length, Kind: kind})
	s.advance(len(match), length)
}

// emitGroups emits one span per run of identical consecutive characters.
func (s *scanner) emitGroups(match string, kind Kind) {
	start := 0
	for start < len(match) {
		first, size := utf8.DecodeRuneInString(match[start:])
		end := start + size
		length := 1
		for end < len(match) {
			r, n := utf8.DecodeRuneInString(match[end:])
			if r != first {
				break
			}
			end += n
			length++
		}
		s.tokens = append(s.tokens, Span{From: s.offset, To: s.offset + length, Kind: kind})
		s.advance(end-start, length)
		start = end
	}
}

func (s *scanner) advance(bytes, chars int) {
	s.position += bytes
	s.offset += chars
}

func (s *scanner) hasMoreInput() bool {
	return s.position < len(s.input)
}
