// Package filename composes file names from rule templates.
//
// [Resolve] is strict and is used before anything touches the file system.
// [Preview] is lenient and is used to show the user what a name will look
// like while values are still being filled in.
package filename

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/macropower/fileformat/pkg/ruledoc"
)

// Reserved selection keys.
const (
	KeyRule      = "rule"
	KeyExtension = "extension"
	KeyExtends   = "extends" // Legacy spelling of [KeyExtension].
)

// PreviewExtension is shown by [Preview] when no extension is known yet.
const PreviewExtension = "etc"

var (
	ErrMissingSelectionValue = errors.New("missing selection value")
	ErrMissingExtension      = errors.New("missing extension")
)

// MissingSelectionValueError reports a token that has no value in the
// selection.
type MissingSelectionValueError struct {
	Token string
	// Suggestion is the closest selection key, if any.
	Suggestion string
}

func (e *MissingSelectionValueError) Error() string {
	msg := fmt.Sprintf("%v: %q", ErrMissingSelectionValue, e.Token)
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", e.Suggestion)
	}

	return msg
}

func (e *MissingSelectionValueError) Unwrap() error {
	return ErrMissingSelectionValue
}

// Selection maps tokens to the values chosen for them. It also carries the
// reserved keys [KeyRule], [KeyExtension] and [KeyExtends].
type Selection map[string]string

// Rule returns the rule template stored in the selection.
func (s Selection) Rule() string {
	return s[KeyRule]
}

// Extension returns the file extension, preferring [KeyExtension] over the
// legacy [KeyExtends]. A leading dot is removed.
func (s Selection) Extension() (string, bool) {
	for _, key := range []string{KeyExtension, KeyExtends} {
		ext := strings.TrimPrefix(s[key], ".")
		if ext != "" {
			return ext, true
		}
	}

	return "", false
}

// tokenKeys returns the non-reserved keys, sorted.
func (s Selection) tokenKeys() []string {
	keys := slices.Sorted(maps.Keys(s))

	return slices.DeleteFunc(keys, func(k string) bool {
		return k == KeyRule || k == KeyExtension || k == KeyExtends
	})
}

// Resolve substitutes every token in template with its value from sel and
// appends the extension. It returns only a file name and never touches the
// file system.
func Resolve(template string, sel Selection) (string, error) {
	err := checkTokens(template, sel, func(_ string, ok bool) bool { return ok })
	if err != nil {
		return "", err
	}

	ext, ok := sel.Extension()
	if !ok {
		return "", fmt.Errorf("%w: set %q in the selection", ErrMissingExtension, KeyExtension)
	}

	name := ruledoc.ReplaceTokens(template, func(token string) string {
		return sel[token]
	})

	return name + "." + ext, nil
}

// RequireValues returns a [*MissingSelectionValueError] for the first token
// of template that has no value, or only an empty one, in sel. Front ends
// call it before saving, since a form submits every field.
func RequireValues(template string, sel Selection) error {
	return checkTokens(template, sel, func(v string, ok bool) bool { return ok && v != "" })
}

func checkTokens(template string, sel Selection, filled func(v string, ok bool) bool) error {
	for _, token := range ruledoc.ExtractTokens(template) {
		v, ok := sel[token]
		if !filled(v, ok) {
			return &MissingSelectionValueError{
				Token:      token,
				Suggestion: suggest(token, sel.tokenKeys()),
			}
		}
	}

	return nil
}

// Preview renders template for display. Tokens without a non-empty value are
// kept as placeholders, and an empty extension is shown as
// [PreviewExtension].
func Preview(template string, values map[string]string, extension string) string {
	name := ruledoc.ReplaceTokens(template, func(token string) string {
		if v := values[token]; v != "" {
			return v
		}

		return ruledoc.Placeholder(token)
	})

	ext := strings.TrimPrefix(extension, ".")
	if ext == "" {
		ext = PreviewExtension
	}

	return name + "." + ext
}

func suggest(token string, keys []string) string {
	if len(keys) == 0 {
		return ""
	}

	matches := fuzzy.Find(token, keys)
	if len(matches) == 0 {
		return ""
	}

	return keys[matches[0].Index]
}
