// Package prompt asks the user for token values in an interactive terminal
// form.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/macropower/fileformat/pkg/filename"
	"github.com/macropower/fileformat/pkg/ruledoc"
)

var ErrNotInteractive = errors.New("not running interactively")

// Result holds the values entered in the form.
type Result struct {
	Values    map[string]string
	Extension string
}

// Prompter shows token forms.
type Prompter struct {
	theme       *huh.Theme
	interactive func() bool
}

// Opt configures a [Prompter].
type Opt func(*Prompter)

// WithInteractive overrides terminal detection.
func WithInteractive(fn func() bool) Opt {
	return func(p *Prompter) {
		p.interactive = fn
	}
}

// New creates a [Prompter] using the theme called themeName.
func New(themeName string, opts ...Opt) (*Prompter, error) {
	t, err := Theme(themeName)
	if err != nil {
		return nil, err
	}

	p := &Prompter{
		theme: t,
		interactive: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd())) //nolint:gosec // G115: fd fits in int.
		},
	}
	for _, opt := range opts {
		opt(p)
	}

	return p, nil
}

// Prompt asks for a value for every token of doc, starting from values.
// Tokens with choices suggest them, starting from the first one, but accept
// any value. When extension is empty the
// form also asks for one.
func (p *Prompter) Prompt(ctx context.Context, doc *ruledoc.RuleDocument, values map[string]string, extension string) (*Result, error) {
	if !p.interactive() {
		return nil, ErrNotInteractive
	}

	f := newFields(doc, values, extension)

	form := huh.NewForm(huh.NewGroup(f.build(doc)...)).
		WithShowHelp(false).
		WithTheme(p.theme)

	err := form.RunWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("run token form: %w", err)
	}

	return f.result(), nil
}

// fields holds the values bound to the form.
type fields struct {
	values    map[string]*string
	extension *string
	tokens    []string
	askExt    bool
}

func newFields(doc *ruledoc.RuleDocument, initial map[string]string, extension string) *fields {
	f := &fields{
		values:    map[string]*string{},
		extension: &extension,
		askExt:    extension == "",
	}

	for _, token := range doc.Keys() {
		if _, ok := f.values[token]; ok {
			continue
		}

		v := initial[token]
		f.values[token] = &v
		f.tokens = append(f.tokens, token)
	}

	return f
}

func (f *fields) build(doc *ruledoc.RuleDocument) []huh.Field {
	out := []huh.Field{
		huh.NewNote().
			Title("File Name").
			DescriptionFunc(f.preview(doc.Rule), []any{f.values, f.extension}),
	}

	for _, token := range f.tokens {
		v := f.values[token]

		// Choices are suggestions, other values may be typed in.
		choices := doc.Choices(token)
		if len(choices) > 0 {
			if *v == "" {
				*v = choices[0]
			}

			out = append(out, huh.NewInput().
				Title(ruledoc.Label(token)).
				Description(strings.Join(choices, ", ")).
				Suggestions(choices).
				Value(v))

			continue
		}

		out = append(out, huh.NewInput().
			Title(ruledoc.Label(token)).
			Value(v))
	}

	if f.askExt {
		out = append(out, huh.NewInput().
			Title("Extension").
			Placeholder("pdf").
			Validate(func(s string) error {
				if strings.TrimPrefix(s, ".") == "" {
					return filename.ErrMissingExtension
				}

				return nil
			}).
			Value(f.extension))
	}

	return out
}

func (f *fields) preview(rule string) func() string {
	return func() string {
		r := f.result()

		return filename.Preview(rule, r.Values, r.Extension)
	}
}

func (f *fields) result() *Result {
	values := make(map[string]string, len(f.values))
	for k, v := range f.values {
		values[k] = *v
	}

	return &Result{Values: values, Extension: *f.extension}
}
