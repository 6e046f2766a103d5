// Package v1beta1 contains the v1beta1 API types for fileformat configuration.
package v1beta1

import "github.com/invopop/jsonschema"

// APIVersion is the current API version for all configuration kinds.
const APIVersion = "fileformat.jacobcolvin.com/v1beta1"

// ValidAPIVersions contains all valid API versions.
var ValidAPIVersions = []string{APIVersion}

// TypeMeta contains the API version and kind metadata common to all config types.
type TypeMeta struct {
	// APIVersion specifies the API version for this configuration.
	APIVersion string `json:"apiVersion" jsonschema:"title=API Version"`
	// Kind defines the type of configuration.
	Kind string `json:"kind" jsonschema:"title=Kind"`
}

// GetAPIVersion returns the API version.
func (tm TypeMeta) GetAPIVersion() string {
	return tm.APIVersion
}

// GetKind returns the kind.
func (tm TypeMeta) GetKind() string {
	return tm.Kind
}

// Object is the interface that all config types implement.
type Object interface {
	GetAPIVersion() string
	GetKind() string
	EnsureDefaults()
}

// ExtendSchemaWithEnums restricts the apiVersion and kind properties of a
// generated schema to the given values.
func ExtendSchemaWithEnums(jss *jsonschema.Schema, apiVersions, kinds []string) {
	for prop, values := range map[string][]string{
		"apiVersion": apiVersions,
		"kind":       kinds,
	} {
		s, ok := jss.Properties.Get(prop)
		if !ok {
			panic(prop + " property not found in schema")
		}

		for _, v := range values {
			s.OneOf = append(s.OneOf, &jsonschema.Schema{
				Type:  "string",
				Const: v,
				Title: s.Title,
			})
		}

		_, _ = jss.Properties.Set(prop, s)
	}
}
