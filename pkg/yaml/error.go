package yaml

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
	"github.com/goccy/go-yaml/printer"
	"github.com/goccy/go-yaml/token"
)

// NewPathBuilder returns a builder for [yaml.Path] values.
func NewPathBuilder() *yaml.PathBuilder {
	return &yaml.PathBuilder{}
}

// Error is a YAML decoding or validation error. It points at the offending
// value either by [yaml.Path] or by [token.Token]. When Source is set the
// message includes the surrounding lines.
type Error struct {
	Err     error
	Path    *yaml.Path
	Token   *token.Token
	Source  []byte
	Colored bool
}

// ErrorOpt configures an [Error].
type ErrorOpt func(e *Error)

// WithSource sets the YAML document the error refers to.
func WithSource(source []byte) ErrorOpt {
	return func(e *Error) {
		e.Source = source
	}
}

// WithColor enables ANSI colors in the annotated source.
func WithColor(colored bool) ErrorOpt {
	return func(e *Error) {
		e.Colored = colored
	}
}

// Annotate applies opts to err if it is an [*Error], and returns err.
func Annotate(err error, opts ...ErrorOpt) error {
	var yamlErr *Error
	if errors.As(err, &yamlErr) {
		for _, opt := range opts {
			opt(yamlErr)
		}
	}

	return err
}

func (e *Error) Error() string {
	if e.Err == nil {
		return ""
	}

	if e.Path == nil && e.Token == nil {
		return e.Err.Error()
	}

	tk := e.Token
	if tk == nil && len(e.Source) > 0 {
		tk = tokenFromPath(e.Source, e.Path)
	}

	if tk == nil {
		return fmt.Sprintf("error at %s: %v", e.Path.String(), e.Err)
	}

	var pp printer.Printer

	return fmt.Sprintf("[%d:%d] %v\n%s",
		tk.Position.Line, tk.Position.Column, e.Err,
		pp.PrintErrorToken(tk.Clone(), e.Colored))
}

func (e *Error) Unwrap() error {
	return e.Err
}

// tokenFromPath returns the key token for path in source, or the value token
// when there is no key. It returns nil if the path cannot be found.
func tokenFromPath(source []byte, path *yaml.Path) *token.Token {
	file, err := parser.ParseBytes(source, 0)
	if err != nil {
		return nil
	}

	node, err := path.FilterFile(file)
	if err != nil {
		return nil
	}

	if key := keyToken(file, path); key != nil {
		return key
	}

	return node.GetToken()
}

func keyToken(file *ast.File, path *yaml.Path) *token.Token {
	s := path.String()

	dot := strings.LastIndex(s, ".")
	if dot == -1 || dot < strings.LastIndex(s, "[") {
		return nil
	}

	parent, err := yaml.PathString(s[:dot])
	if err != nil {
		return nil
	}

	node, err := parent.FilterFile(file)
	if err != nil {
		return nil
	}

	mapping, ok := node.(*ast.MappingNode)
	if !ok {
		return nil
	}

	for _, v := range mapping.Values {
		if v.Key.String() == s[dot+1:] {
			return v.Key.GetToken()
		}
	}

	return nil
}
