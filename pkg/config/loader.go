package config

import (
	"bytes"

	"github.com/macropower/fileformat/api"
	"github.com/macropower/fileformat/api/v1beta1"
	"github.com/macropower/fileformat/pkg/yaml"
)

// Validator validates configuration data against a schema.
type Validator interface {
	Validate(data any) error
}

// LoaderOpt configures a [Loader].
type LoaderOpt func(*loaderOptions)

type loaderOptions struct {
	validator Validator
	colored   bool
}

// WithValidator sets a custom validator.
func WithValidator(v Validator) LoaderOpt {
	return func(o *loaderOptions) {
		o.validator = v
	}
}

// WithColor enables colors in the source excerpts of errors.
func WithColor(colored bool) LoaderOpt {
	return func(o *loaderOptions) {
		o.colored = colored
	}
}

// Loader validates and decodes configuration data for any config type T.
// Errors point at the offending line of the data.
type Loader[T v1beta1.Object] struct {
	validator Validator
	newFunc   func() T
	data      []byte
	errOpts   []yaml.ErrorOpt
}

// NewLoaderFromBytes creates a [Loader] from byte data.
// The newFunc parameter is the constructor for type T (e.g., NewConfig).
func NewLoaderFromBytes[T v1beta1.Object](
	data []byte,
	newFunc func() T,
	defaultValidator Validator,
	opts ...LoaderOpt,
) *Loader[T] {
	options := &loaderOptions{validator: defaultValidator}
	for _, opt := range opts {
		opt(options)
	}

	return &Loader[T]{
		data:      data,
		newFunc:   newFunc,
		validator: options.validator,
		errOpts: []yaml.ErrorOpt{
			yaml.WithSource(data),
			yaml.WithColor(options.colored),
		},
	}
}

// NewLoaderFromFile creates a [Loader] from a file path.
func NewLoaderFromFile[T v1beta1.Object](
	path string,
	newFunc func() T,
	defaultValidator Validator,
	opts ...LoaderOpt,
) (*Loader[T], error) {
	data, err := api.ReadFile(path)
	if err != nil {
		return nil, err //nolint:wrapcheck // Return the original error.
	}

	return NewLoaderFromBytes(data, newFunc, defaultValidator, opts...), nil
}

// Validate validates the configuration data against the schema.
func (l *Loader[T]) Validate() error {
	var doc any

	err := yaml.NewDecoder(bytes.NewReader(l.data)).Decode(&doc)
	if err != nil {
		return yaml.Annotate(err, l.errOpts...)
	}

	if l.validator == nil {
		return nil
	}

	return yaml.Annotate(l.validator.Validate(doc), l.errOpts...)
}

// Load decodes the configuration and fills in defaults.
//
//nolint:ireturn // Generic type parameter return is intentional.
func (l *Loader[T]) Load() (T, error) {
	cfg := l.newFunc()

	err := yaml.NewDecoder(bytes.NewReader(l.data)).Decode(cfg)
	if err != nil {
		var zero T

		return zero, yaml.Annotate(err, l.errOpts...)
	}

	cfg.EnsureDefaults()

	return cfg, nil
}
