package ruledoc

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	_ "embed"
)

//go:generate go run ../../internal/schemagen -kind ruledocument -o ruledocument.v1.json

var (
	//go:embed ruledocument.v1.json
	schemaJSON []byte

	// DefaultValidator validates rule documents against the embedded schema.
	DefaultValidator = MustNewValidator("/ruledocument.v1.json", schemaJSON)
)

// ValidationError describes where a rule document failed validation.
type ValidationError struct {
	Err      error
	Location string // JSON pointer to the offending value.
}

func (e *ValidationError) Error() string {
	if e.Location == "" {
		return e.Err.Error()
	}

	return fmt.Sprintf("at %s: %v", e.Location, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Validator validates raw rule documents against a JSON schema.
// Uses [github.com/santhosh-tekuri/jsonschema/v6].
type Validator struct {
	schema *jsonschema.Schema
}

// NewValidator creates a new [Validator] with the provided JSON schema data.
func NewValidator(url string, schemaData []byte) (*Validator, error) {
	schema, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaData))
	if err != nil {
		return nil, fmt.Errorf("unmarshal schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()

	err = compiler.AddResource(url, schema)
	if err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}

	jss, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}

	return &Validator{schema: jss}, nil
}

// MustNewValidator is like [NewValidator] but panics on error.
func MustNewValidator(url string, schemaData []byte) *Validator {
	v, err := NewValidator(url, schemaData)
	if err != nil {
		panic(err)
	}

	return v
}

// Validate checks that data is well-formed JSON matching the schema.
func (v *Validator) Validate(data []byte) error {
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return &ValidationError{Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	err = v.schema.Validate(inst)
	if err == nil {
		return nil
	}

	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) {
		return fmt.Errorf("schema validation: %w", err)
	}

	leaf := mostSpecificCause(validationErr)

	return &ValidationError{
		Err:      errors.New(describe(leaf)),
		Location: pointer(leaf.InstanceLocation),
	}
}

// mostSpecificCause returns the cause with the longest InstanceLocation.
func mostSpecificCause(err *jsonschema.ValidationError) *jsonschema.ValidationError {
	best := err

	for _, cause := range err.Causes {
		candidate := mostSpecificCause(cause)
		if len(candidate.InstanceLocation) > len(best.InstanceLocation) {
			best = candidate
		}
	}

	return best
}

// describe returns the message of a validation error without the schema
// location preamble.
func describe(err *jsonschema.ValidationError) string {
	if err.ErrorKind == nil {
		return "schema validation failed"
	}

	return err.ErrorKind.LocalizedString(message.NewPrinter(language.English))
}

func pointer(location []string) string {
	if len(location) == 0 {
		return ""
	}

	return "/" + strings.Join(location, "/")
}
