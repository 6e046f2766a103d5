package yaml

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// SchemaGenerator reflects a JSON schema from a Go value.
type SchemaGenerator struct {
	reflector *jsonschema.Reflector
	value     any
}

// NewSchemaGenerator creates a [SchemaGenerator] for v. Doc comments are read
// from the Go sources in dirs, which hold packages under the module base.
func NewSchemaGenerator(v any, base string, dirs ...string) *SchemaGenerator {
	r := &jsonschema.Reflector{FieldNameTag: "json"}

	for _, dir := range dirs {
		err := r.AddGoComments(base, dir)
		if err != nil {
			panic(fmt.Sprintf("add go comments from %s: %v", dir, err))
		}
	}

	return &SchemaGenerator{reflector: r, value: v}
}

// Generate returns the indented JSON schema.
func (g *SchemaGenerator) Generate() ([]byte, error) {
	b, err := json.MarshalIndent(g.reflector.Reflect(g.value), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}

	return append(b, '\n'), nil
}
