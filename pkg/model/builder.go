package model

import (
	"github.com/goliatone/go-l4doc/internal/model"
	pkgopenapi "github.com/goliatone/go-l4doc/pkg/openapi"
)

// Builder converts OpenAPI operations into form models.
type Builder interface {
	Build(op pkgopenapi.Operation) (FormModel, error)
}

// BuilderOption configures the builder behaviour.
type BuilderOption func(*model.Options)

// WithLabeler overrides the default label generation function.
func WithLabeler(labeler func(string) string) BuilderOption {
	return func(opts *model.Options) {
		opts.Labeler = labeler
	}
}

// WithHintNamespace reads hints under namespace instead of x-formgen.
func WithHintNamespace(namespace string) BuilderOption {
	return func(opts *model.Options) {
		opts.Namespace = namespace
	}
}

// WithRequiredOrder rejects fields that carry no order hint.
func WithRequiredOrder() BuilderOption {
	return func(opts *model.Options) {
		opts.RequireOrder = true
	}
}

// WithDocuments restricts the document hint to names.
func WithDocuments(names ...string) BuilderOption {
	return func(opts *model.Options) {
		opts.Documents = append(opts.Documents, names...)
	}
}

// NewBuilder returns a Builder backed by the internal implementation.
func NewBuilder(options ...BuilderOption) Builder {
	var cfg model.Options
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return model.New(cfg)
}
