package yaml_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/fileformat/pkg/yaml"
)

const testSchema = `{
	"type": "object",
	"properties": {
		"save": {
			"type": "object",
			"properties": {"toDesktop": {"type": "boolean"}},
			"additionalProperties": false
		},
		"themes": {
			"type": "array",
			"items": {"type": "string", "enum": ["charm", "base"]}
		}
	},
	"required": ["save"]
}`

func TestNewValidator(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		schema  string
		wantErr string
	}{
		"valid":          {schema: testSchema},
		"invalid json":   {schema: `{"type": }`, wantErr: "unmarshal schema"},
		"invalid schema": {schema: `{"type": "banana"}`, wantErr: "compile schema"},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			v, err := yaml.NewValidator("/test.json", []byte(tc.schema))
			if tc.wantErr != "" {
				require.ErrorContains(t, err, tc.wantErr)

				return
			}

			require.NoError(t, err)
			assert.NotNil(t, v)
		})
	}
}

func TestMustNewValidator_Panics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		yaml.MustNewValidator("/test.json", []byte(`nope`))
	})
}

func TestValidator_Validate(t *testing.T) {
	t.Parallel()

	v := yaml.MustNewValidator("/test.json", []byte(testSchema))

	tcs := map[string]struct {
		input    string
		wantPath string
		wantErr  bool
	}{
		"valid": {
			input: "save:\n  toDesktop: true\nthemes: [charm]\n",
		},
		"missing required": {
			input:    "themes: []\n",
			wantErr:  true,
			wantPath: "$",
		},
		"wrong type": {
			input:    "save:\n  toDesktop: yes please\n",
			wantErr:  true,
			wantPath: "$.save.toDesktop",
		},
		"unknown property": {
			input:    "save:\n  toLaptop: true\n",
			wantErr:  true,
			wantPath: "$.save",
		},
		"array item": {
			input:    "save: {}\nthemes: [charm, neon]\n",
			wantErr:  true,
			wantPath: "$.themes[1]",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var data any
			require.NoError(t, yaml.Unmarshal([]byte(tc.input), &data))

			err := v.Validate(data)
			if !tc.wantErr {
				require.NoError(t, err)

				return
			}

			var yamlErr *yaml.Error
			require.ErrorAs(t, err, &yamlErr)
			require.NotNil(t, yamlErr.Path)
			assert.Equal(t, tc.wantPath, yamlErr.Path.String())
		})
	}
}

type testConfig struct {
	Save *struct {
		ToDesktop *bool `json:"toDesktop,omitempty"`
	} `json:"save,omitempty"`
	Name string `json:"name"`
}

func TestSchemaGenerator(t *testing.T) {
	t.Parallel()

	data, err := yaml.NewSchemaGenerator(&testConfig{}, "github.com/macropower/fileformat").Generate()
	require.NoError(t, err)

	v, err := yaml.NewValidator("/generated.json", data)
	require.NoError(t, err)

	var doc any
	require.NoError(t, yaml.Unmarshal([]byte("name: x\nsave:\n  toDesktop: false\n"), &doc))
	require.NoError(t, v.Validate(doc))

	var missingName any
	require.NoError(t, yaml.Unmarshal([]byte("save: {}\n"), &missingName))
	require.Error(t, v.Validate(missingName))
}
