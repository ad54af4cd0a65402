package config

import (
	"bytes"
	"fmt"

	"github.com/macropower/skipgrid/api"
	"github.com/macropower/skipgrid/api/v1beta1"
	"github.com/macropower/skipgrid/pkg/yaml"
)

// Validator validates decoded configuration data against a schema.
type Validator interface {
	Validate(data any) error
}

// semanticValidator is implemented by objects with checks beyond the
// schema.
type semanticValidator interface {
	Validate() error
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

// WithColor enables colored source annotations in errors.
func WithColor(colored bool) LoaderOpt {
	return func(o *loaderOptions) {
		o.colored = colored
	}
}

// Loader is a generic loader for any document type T.
type Loader[T v1beta1.Object] struct {
	validator Validator
	newFunc   func() T
	errOpts   []yaml.ErrorOpt
	data      []byte
}

// NewLoaderFromBytes creates a [Loader] from byte data.
// The newFunc parameter is the constructor for type T (e.g., layouts.New).
func NewLoaderFromBytes[T v1beta1.Object](
	data []byte,
	newFunc func() T,
	defaultValidator Validator,
	opts ...LoaderOpt,
) *Loader[T] {
	options := &loaderOptions{
		validator: defaultValidator,
	}
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

// Validate validates the raw data against the schema.
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

// Load decodes the data, applies defaults and, if T has a Validate method,
// runs it.
//
//nolint:ireturn // Generic type parameter return is intentional.
func (l *Loader[T]) Load() (T, error) {
	var zero T

	obj := l.newFunc()

	err := yaml.NewDecoder(bytes.NewReader(l.data)).Decode(obj)
	if err != nil {
		return zero, yaml.Annotate(err, l.errOpts...)
	}

	obj.EnsureDefaults()

	if v, ok := any(obj).(semanticValidator); ok {
		if err := v.Validate(); err != nil {
			return zero, fmt.Errorf("validate %s: %w", obj.GetKind(), err)
		}
	}

	return obj, nil
}

// ValidateAndLoad runs [Loader.Validate] and then [Loader.Load].
//
//nolint:ireturn // Generic type parameter return is intentional.
func (l *Loader[T]) ValidateAndLoad() (T, error) {
	if err := l.Validate(); err != nil {
		var zero T

		return zero, err
	}

	return l.Load()
}
