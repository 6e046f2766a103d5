// Package yaml wraps [github.com/goccy/go-yaml] for configuration files.
// Errors are reported as [*Error] so they can point at the offending line.
package yaml

import (
	"bytes"
	"errors"
	"io"

	"github.com/goccy/go-yaml"
)

// Decoder reads YAML values from an input stream.
type Decoder struct {
	d *yaml.Decoder
}

// NewDecoder returns a [Decoder] reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{d: yaml.NewDecoder(r)}
}

// Decode reads the next YAML document into v.
func (d *Decoder) Decode(v any) error {
	return wrapError(d.d.Decode(v))
}

// Unmarshal decodes data into v. Errors carry data as their source.
func Unmarshal(data []byte, v any) error {
	err := NewDecoder(bytes.NewReader(data)).Decode(v)

	return Annotate(err, WithSource(data))
}

func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var yamlErr yaml.Error
	if errors.As(err, &yamlErr) {
		return &Error{
			Err:   errors.New(yamlErr.GetMessage()),
			Token: yamlErr.GetToken(),
		}
	}

	return err //nolint:wrapcheck // Return the original error if it's not a [yaml.Error].
}
