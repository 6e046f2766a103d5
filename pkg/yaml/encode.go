package yaml

import (
	"bytes"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
)

// Encoder writes YAML with two-space indentation and indented sequences.
type Encoder struct {
	e *yaml.Encoder
}

// NewEncoder returns an [Encoder] writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{
		e: yaml.NewEncoder(w, yaml.Indent(2), yaml.IndentSequence(true)),
	}
}

func (e *Encoder) Encode(v any) error {
	return e.e.Encode(v) //nolint:wrapcheck // Return the original error.
}

func (e *Encoder) Close() error {
	return e.e.Close() //nolint:wrapcheck // Return the original error.
}

// Marshal encodes v with an [Encoder].
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer

	enc := NewEncoder(&buf)

	err := enc.Encode(v)
	if err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}

	err = enc.Close()
	if err != nil {
		return nil, fmt.Errorf("close yaml encoder: %w", err)
	}

	return buf.Bytes(), nil
}
