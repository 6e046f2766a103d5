package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/invopop/jsonschema"

	"github.com/macropower/fileformat/api"
	"github.com/macropower/fileformat/api/v1beta1"
	"github.com/macropower/fileformat/pkg/prompt"
	"github.com/macropower/fileformat/pkg/yaml"

	_ "embed"
)

//go:generate go run ../../internal/schemagen -kind config -o config.v1beta1.json

// FileName is the name of the configuration file in the config directory.
const FileName = "config.yaml"

var (
	//go:embed config.yaml
	defaultConfigYAML []byte

	//go:embed config.v1beta1.json
	schemaJSON []byte

	// ValidKinds contains the valid kind values for configurations.
	ValidKinds = []string{"Configuration"}

	// DefaultValidator validates configurations against the JSON schema.
	DefaultValidator = yaml.MustNewValidator("/config.v1beta1.json", schemaJSON)
)

// Config is the fileformat configuration.
//
//nolint:recvcheck // Must satisfy the jsonschema interface.
type Config struct {
	// Save configures how new files are saved.
	Save *SaveConfig `json:"save,omitempty" jsonschema:"title=Save"`
	// Rename configures how existing files are renamed.
	Rename *RenameConfig `json:"rename,omitempty" jsonschema:"title=Rename"`
	// Prompt configures the interactive token form.
	Prompt *PromptConfig `json:"prompt,omitempty" jsonschema:"title=Prompt"`

	v1beta1.TypeMeta `json:",inline"`
}

type SaveConfig struct {
	// ToDesktop saves new files to the desktop directory. When false, files
	// are saved next to the last loaded rule document.
	ToDesktop *bool `json:"toDesktop,omitempty" jsonschema:"title=To Desktop"`
}

type RenameConfig struct {
	// Strict refuses to rename a file onto an existing file.
	Strict *bool `json:"strict,omitempty" jsonschema:"title=Strict"`
}

//nolint:recvcheck // Must satisfy the jsonschema interface.
type PromptConfig struct {
	// Theme is the color theme of the form.
	Theme string `json:"theme,omitempty" jsonschema:"title=Theme"`
}

func (PromptConfig) JSONSchemaExtend(jss *jsonschema.Schema) {
	theme, ok := jss.Properties.Get("theme")
	if !ok {
		panic("theme property not found in schema")
	}

	for _, name := range prompt.ThemeNames() {
		theme.Enum = append(theme.Enum, name)
	}
}

// NewConfig creates a new [Config] with default values.
func NewConfig() *Config {
	c := &Config{
		TypeMeta: v1beta1.TypeMeta{
			APIVersion: v1beta1.APIVersion,
			Kind:       ValidKinds[0],
		},
	}
	c.EnsureDefaults()

	return c
}

// EnsureDefaults initializes nil fields to their default values.
func (c *Config) EnsureDefaults() {
	if c.Save == nil {
		c.Save = &SaveConfig{}
	}

	if c.Save.ToDesktop == nil {
		c.Save.ToDesktop = ptr(true)
	}

	if c.Rename == nil {
		c.Rename = &RenameConfig{}
	}

	if c.Rename.Strict == nil {
		c.Rename.Strict = ptr(false)
	}

	if c.Prompt == nil {
		c.Prompt = &PromptConfig{}
	}

	if c.Prompt.Theme == "" {
		c.Prompt.Theme = prompt.DefaultTheme
	}
}

func (c Config) JSONSchemaExtend(jss *jsonschema.Schema) {
	v1beta1.ExtendSchemaWithEnums(jss, v1beta1.ValidAPIVersions, ValidKinds)
}

// SaveToDesktop reports whether new files go to the desktop by default.
func (c *Config) SaveToDesktop() bool {
	return c.Save != nil && c.Save.ToDesktop != nil && *c.Save.ToDesktop
}

// StrictRename reports whether renames must not replace existing files.
func (c *Config) StrictRename() bool {
	return c.Rename != nil && c.Rename.Strict != nil && *c.Rename.Strict
}

// GetPath returns the default configuration file path.
func GetPath() string {
	return api.GetConfigPath(FileName)
}

// WriteDefaultConfig writes the default configuration to path. An existing
// file is only replaced when force is set, after backing it up.
func WriteDefaultConfig(path string, force bool) error {
	return api.WriteDefaultFile(path, defaultConfigYAML, force, "config") //nolint:wrapcheck // Already wrapped.
}

// DefaultYAML returns the default configuration file contents.
func DefaultYAML() []byte {
	return defaultConfigYAML
}

// Load reads the configuration at path. A missing file yields the defaults.
func Load(path string, opts ...LoaderOpt) (*Config, error) {
	l, err := NewLoaderFromFile(path, NewConfig, DefaultValidator, opts...)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Debug("config file not found, using defaults", slog.String("path", path))

		return NewConfig(), nil
	}

	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	err = l.Validate()
	if err != nil {
		return nil, fmt.Errorf("validate config %s: %w", path, err)
	}

	cfg, err := l.Load()
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}

	return cfg, nil
}

func ptr[T any](v T) *T {
	return &v
}
