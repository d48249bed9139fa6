// Package output renders token sequences as JSON lines, msgpack records or
// a human-readable listing.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/spicery/span-tokenizer/pkg/tokenizer"
)

// Format is an output encoding.
type Format string

const (
	JSONLines Format = "jsonl"
	Pretty    Format = "pretty"
	Msgpack   Format = "msgpack"
)

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(name)) {
	case JSONLines, "json":
		return JSONLines, nil
	case Pretty:
		return Pretty, nil
	case Msgpack:
		return Msgpack, nil
	}
	return "", fmt.Errorf("unknown format: %s (must be jsonl, pretty or msgpack)", name)
}

// Document is one analyzed input.
type Document struct {
	Source string // Empty when there is a single input
	Text   string
	Spans  []tokenizer.Span
}

// Record is a span resolved against its text.
type Record struct {
	Source string `json:"source,omitempty" msgpack:"source,omitempty"`
	tokenizer.Span
	Text string `json:"text" msgpack:"text"`
}

// Records resolves every span of the document.
func (d Document) Records() []Record {
	runes := []rune(d.Text)
	records := make([]Record, 0, len(d.Spans))
	for _, span := range d.Spans {
		records = append(records, Record{
			Source: d.Source,
			Span:   span,
			Text:   span.Slice(runes),
		})
	}
	return records
}

// Options controls pretty output.
type Options struct {
	Color     bool
	TextWidth int // Maximum display width of the text column
}

// Write renders the document in the given format.
func Write(w io.Writer, format Format, doc Document, opts Options) error {
	switch format {
	case Pretty:
		return WritePretty(w, doc, opts)
	case Msgpack:
		return WriteMsgpack(w, doc)
	default:
		return WriteJSONLines(w, doc)
	}
}

// WriteJSONLines writes one JSON object per span.
func WriteJSONLines(w io.Writer, doc Document) error {
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	for _, record := range doc.Records() {
		if err := encoder.Encode(record); err != nil {
			return fmt.Errorf("JSON encoding error: %w", err)
		}
	}
	return nil
}

// WriteMsgpack writes one msgpack map per span.
func WriteMsgpack(w io.Writer, doc Document) error {
	encoder := msgpack.NewEncoder(w)
	for _, record := range doc.Records() {
		if err := encoder.Encode(&record); err != nil {
			return fmt.Errorf("msgpack encoding error: %w", err)
		}
	}
	return nil
}

var kindColors = map[tokenizer.Kind]*color.Color{
	tokenizer.Letter:        color.New(color.FgGreen),
	tokenizer.Float:         color.New(color.FgCyan),
	tokenizer.Integer:       color.New(color.FgCyan),
	tokenizer.SentencePunct: color.New(color.FgYellow),
	tokenizer.Punct:         color.New(color.FgYellow, color.Bold),
	tokenizer.Separator:     color.New(color.FgHiBlack),
	tokenizer.Break:         color.New(color.FgHiBlack),
}

var helperColor = color.New(color.FgMagenta, color.Bold)

func colorFor(kind tokenizer.Kind, enabled bool) *color.Color {
	c, ok := kindColors[kind]
	if !ok {
		c = helperColor
	}
	// Copy so toggling does not leak between writers.
	clone := *c
	if enabled {
		clone.EnableColor()
	} else {
		clone.DisableColor()
	}
	return &clone
}

// WritePretty writes a numbered listing with line:column positions.
func WritePretty(w io.Writer, doc Document, opts Options) error {
	width := opts.TextWidth
	if width <= 0 {
		width = 40
	}
	index := newLineIndex(doc.Text)

	if doc.Source != "" {
		if _, err := fmt.Fprintf(w, "==> %s <==\n", doc.Source); err != nil {
			return err
		}
	}
	for i, record := range doc.Records() {
		startLine, startCol := index.position(record.From)
		endLine, endCol := index.position(record.To)
		kind := colorFor(record.Kind, opts.Color).Sprintf("%-8s", record.Kind)
		text := runewidth.Truncate(fmt.Sprintf("%q", record.Text), width, "...")
		if _, err := fmt.Fprintf(w, "%3d: %s %s at %d:%d-%d:%d\n",
			i+1, kind, text, startLine, startCol, endLine, endCol); err != nil {
			return err
		}
	}
	return nil
}

// lineIndex maps character offsets to 1-based line and column numbers.
type lineIndex struct {
	starts []int // character offset of each line start
}

func newLineIndex(text string) *lineIndex {
	index := &lineIndex{starts: []int{0}}
	offset := 0
	for _, r := range text {
		offset++
		if r == '\n' {
			index.starts = append(index.starts, offset)
		}
	}
	return index
}

func (l *lineIndex) position(offset int) (line, col int) {
	line = 0
	for i, start := range l.starts {
		if start > offset {
			break
		}
		line = i
	}
	return line + 1, offset - l.starts[line] + 1
}
