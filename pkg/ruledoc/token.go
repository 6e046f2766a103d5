package ruledoc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"slices"

	"github.com/invopop/jsonschema"
)

var tokenRe = regexp.MustCompile(`\{([A-Za-z0-9_]+)\}`)

// ExtractTokens returns the placeholder tokens in template, in order of
// appearance. Repeated tokens are kept, since callers render fields by
// position.
func ExtractTokens(template string) []string {
	matches := tokenRe.FindAllStringSubmatch(template, -1)

	tokens := make([]string, 0, len(matches))
	for _, m := range matches {
		tokens = append(tokens, m[1])
	}

	return tokens
}

// ReplaceTokens returns template with every placeholder replaced by
// value(token). The template is scanned once, so placeholders appearing in
// replacement values are left alone.
func ReplaceTokens(template string, value func(token string) string) string {
	return tokenRe.ReplaceAllStringFunc(template, func(m string) string {
		return value(m[1 : len(m)-1])
	})
}

// Placeholder returns the placeholder text for token, e.g. "{year}".
func Placeholder(token string) string {
	return "{" + token + "}"
}

// Kind discriminates the two shapes of [TokenValue].
type Kind int

const (
	// KindSingle is a single string value.
	KindSingle Kind = iota + 1
	// KindMultiple is an ordered list of string values.
	KindMultiple
)

func (k Kind) String() string {
	switch k {
	case KindSingle:
		return "single"
	case KindMultiple:
		return "multiple"
	}

	return "unknown"
}

// ErrInvalidTokenValue indicates a selection entry that is neither a string
// nor a list of strings.
var ErrInvalidTokenValue = errors.New("token value must be a string or a list of strings")

// TokenValue is the value of a selection entry in a rule document. Its [Kind]
// is fixed when it is created or decoded.
//
//nolint:recvcheck // Must satisfy the jsonschema interface.
type TokenValue struct {
	single   string
	multiple []string
	kind     Kind
}

// NewSingle creates a [KindSingle] value.
func NewSingle(v string) TokenValue {
	return TokenValue{kind: KindSingle, single: v}
}

// NewMultiple creates a [KindMultiple] value.
func NewMultiple(v ...string) TokenValue {
	return TokenValue{kind: KindMultiple, multiple: slices.Clone(v)}
}

// Kind returns the shape of the value.
func (v TokenValue) Kind() Kind {
	return v.kind
}

// Single returns the string value when v is [KindSingle].
func (v TokenValue) Single() (string, bool) {
	return v.single, v.kind == KindSingle
}

// Multiple returns a copy of the values when v is [KindMultiple].
func (v TokenValue) Multiple() ([]string, bool) {
	if v.kind != KindMultiple {
		return nil, false
	}

	return slices.Clone(v.multiple), true
}

// UnmarshalJSON decodes either a JSON string or a JSON array of strings.
func (v *TokenValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return ErrInvalidTokenValue
	}

	switch data[0] {
	case '"':
		var s string

		err := json.Unmarshal(data, &s)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidTokenValue, err)
		}

		*v = NewSingle(s)

		return nil

	case '[':
		var ss []string

		err := json.Unmarshal(data, &ss)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidTokenValue, err)
		}

		*v = NewMultiple(ss...)

		return nil
	}

	return fmt.Errorf("%w: got %s", ErrInvalidTokenValue, data)
}

// MarshalJSON encodes the value in the same shape it was decoded from.
func (v TokenValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindSingle:
		return json.Marshal(v.single) //nolint:wrapcheck // Return the original error.
	case KindMultiple:
		if v.multiple == nil {
			return []byte("[]"), nil
		}

		return json.Marshal(v.multiple) //nolint:wrapcheck // Return the original error.
	}

	return nil, ErrInvalidTokenValue
}

// JSONSchema describes [TokenValue] for schema generation.
func (TokenValue) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Title:       "Token Value",
		Description: "A date pattern used to pre-fill the token, or a list of choices.",
		OneOf: []*jsonschema.Schema{
			{Type: "string"},
			{Type: "array", Items: &jsonschema.Schema{Type: "string"}},
		},
	}
}
