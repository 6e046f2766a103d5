package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"

	"github.com/goccy/go-yaml"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Validator validates decoded YAML against a JSON schema.
// Uses [github.com/santhosh-tekuri/jsonschema/v6].
type Validator struct {
	schema *jsonschema.Schema
}

// NewValidator compiles schemaData, registered under url.
func NewValidator(url string, schemaData []byte) (*Validator, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaData))
	if err != nil {
		return nil, fmt.Errorf("unmarshal schema: %w", err)
	}

	c := jsonschema.NewCompiler()

	err = c.AddResource(url, doc)
	if err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}

	schema, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}

	return &Validator{schema: schema}, nil
}

// MustNewValidator is like [NewValidator] but panics on error.
func MustNewValidator(url string, schemaData []byte) *Validator {
	v, err := NewValidator(url, schemaData)
	if err != nil {
		panic(err)
	}

	return v
}

// Validate checks data, a value decoded from YAML into any. Failures are
// returned as [*Error] with the [yaml.Path] of the most specific cause.
func (v *Validator) Validate(data any) error {
	err := v.schema.Validate(data)
	if err == nil {
		return nil
	}

	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) {
		return fmt.Errorf("schema validation: %w", err)
	}

	leaf := deepestCause(validationErr)

	msg := "schema validation failed"
	if leaf.ErrorKind != nil {
		msg = leaf.ErrorKind.LocalizedString(message.NewPrinter(language.English))
	}

	return &Error{
		Err:  errors.New(msg),
		Path: pathFromLocation(leaf.InstanceLocation),
	}
}

func deepestCause(err *jsonschema.ValidationError) *jsonschema.ValidationError {
	best := err

	for _, cause := range err.Causes {
		c := deepestCause(cause)
		if len(c.InstanceLocation) > len(best.InstanceLocation) {
			best = c
		}
	}

	return best
}

func pathFromLocation(location []string) *yaml.Path {
	pb := NewPathBuilder().Root()

	for _, part := range location {
		i, err := strconv.ParseUint(part, 10, 0)
		if err == nil {
			pb = pb.Index(uint(i))
		} else {
			pb = pb.Child(part)
		}
	}

	return pb.Build()
}
