package helpers

import (
	"fmt"

	"github.com/spicery/span-tokenizer/pkg/tokenizer"
)

// Kinds produced by the built-in helpers.
const (
	URL    tokenizer.Kind = "url"
	Email  tokenizer.Kind = "email"
	Abbrev tokenizer.Kind = "abbrev"
	Time   tokenizer.Kind = "time"
)

// Regular expressions for the built-in helpers.
const (
	urlPattern    = `(?i)\b(?:(?:https?|ftp)://|www\.)[\p{L}\d](?:[\p{L}\d\-.]*[\p{L}\d])?(?::\d+)?(?:/(?:[\p{L}\d\-._~/?#@!$&'*+,;=%]*[\p{L}\d/_\-~=#&%+])?)?`
	emailPattern  = `[\p{L}\d._%+\-]+@[\p{L}\d\-]+(?:\.[\p{L}\d\-]+)*\.\p{L}{2,}`
	abbrevPattern = `(?:\p{L}\.){2,}`
	timePattern   = `\b\d{1,2}:\d{2}(?::\d{2})?\b`
)

// UnknownHelperError is returned when a helper name is not registered.
type UnknownHelperError struct {
	Name string
}

func (e *UnknownHelperError) Error() string {
	return fmt.Sprintf("unknown helper '%s'", e.Name)
}

// Registry maps helper names to helpers. It is not safe to Register while
// other goroutines Lookup; build it first, then share it.
type Registry struct {
	helpers map[string]Helper
	names   []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{helpers: make(map[string]Helper)}
}

// Builtin returns a new registry holding the built-in helpers.
func Builtin() *Registry {
	r := NewRegistry()
	for _, h := range []Helper{
		MustPatternHelper("urls", URL, urlPattern),
		MustPatternHelper("emails", Email, emailPattern),
		MustPatternHelper("abbrevs", Abbrev, abbrevPattern),
		MustPatternHelper("time", Time, timePattern),
	} {
		if err := r.Register(h); err != nil {
			panic(fmt.Sprintf("Invalid built-in helpers: %v", err))
		}
	}
	return r
}

// Register adds a helper. Returns an error if the name is already taken.
func (r *Registry) Register(h Helper) error {
	name := h.Name()
	if _, exists := r.helpers[name]; exists {
		return fmt.Errorf("helper '%s' is defined more than once", name)
	}
	r.helpers[name] = h
	r.names = append(r.names, name)
	return nil
}

// Lookup resolves a helper by name.
func (r *Registry) Lookup(name string) (Helper, error) {
	h, ok := r.helpers[name]
	if !ok {
		return nil, &UnknownHelperError{Name: name}
	}
	return h, nil
}

// Names returns the registered names in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.names...)
}
