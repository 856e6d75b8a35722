// Package l4doc wires the OpenAPI loader, parser and form model builder
// together so callers get one ready form per document type.
package l4doc

import (
	"context"
	"fmt"

	internalLoader "github.com/goliatone/go-l4doc/internal/openapi/loader"
	internalParser "github.com/goliatone/go-l4doc/internal/openapi/parser"
	"github.com/goliatone/go-l4doc/pkg/doctype"
	"github.com/goliatone/go-l4doc/pkg/model"
	pkgopenapi "github.com/goliatone/go-l4doc/pkg/openapi"
)

// NewLoader constructs a loader using the internal implementation while keeping
// the concrete type hidden from consumers.
func NewLoader(options ...pkgopenapi.LoaderOption) pkgopenapi.Loader {
	cfg := pkgopenapi.NewLoaderOptions(options...)
	return internalLoader.New(cfg)
}

// NewParser constructs a parser backed by the internal implementation.
func NewParser(options ...pkgopenapi.ParserOption) pkgopenapi.Parser {
	cfg := pkgopenapi.NewParserOptions(options...)
	return internalParser.New(cfg)
}

// Forms is the set of form models keyed by document type.
type Forms map[doctype.Type]model.FormModel

// FormsOption customises LoadForms.
type FormsOption func(*formsConfig)

type formsConfig struct {
	source        pkgopenapi.Source
	loaderOptions []pkgopenapi.LoaderOption
	builder       model.Builder
}

// WithSource loads the contract from src instead of the bundled copy.
func WithSource(src pkgopenapi.Source) FormsOption {
	return func(cfg *formsConfig) {
		if src != nil {
			cfg.source = src
		}
	}
}

// WithLoaderOptions forwards options to the underlying loader.
func WithLoaderOptions(options ...pkgopenapi.LoaderOption) FormsOption {
	return func(cfg *formsConfig) {
		cfg.loaderOptions = append(cfg.loaderOptions, options...)
	}
}

// WithBuilder replaces the default form model builder.
func WithBuilder(builder model.Builder) FormsOption {
	return func(cfg *formsConfig) {
		if builder != nil {
			cfg.builder = builder
		}
	}
}

// NewFormBuilder returns the builder LoadForms uses by default: every field
// must be ordered and the document hint must name a known document type.
func NewFormBuilder(options ...model.BuilderOption) model.Builder {
	names := make([]string, 0, len(doctype.All()))
	for _, t := range doctype.All() {
		names = append(names, string(t))
	}
	defaults := []model.BuilderOption{model.WithRequiredOrder(), model.WithDocuments(names...)}
	return model.NewBuilder(append(defaults, options...)...)
}

// LoadForms loads the API contract (the bundled one unless WithSource says
// otherwise) and builds a form model for every document type. Each type must
// map to an operation through its binding and the operation, when annotated,
// must declare the same document type.
func LoadForms(ctx context.Context, options ...FormsOption) (Forms, error) {
	cfg := formsConfig{source: pkgopenapi.BundledSource()}
	for _, opt := range options {
		opt(&cfg)
	}
	if cfg.builder == nil {
		cfg.builder = NewFormBuilder()
	}

	doc, err := NewLoader(cfg.loaderOptions...).Load(ctx, cfg.source)
	if err != nil {
		return nil, err
	}
	required := make([]string, 0, len(doctype.All()))
	for _, binding := range doctype.Bindings() {
		required = append(required, binding.OperationID)
	}
	operations, err := NewParser(pkgopenapi.WithRequiredOperations(required...)).Operations(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("l4doc: %w", err)
	}

	forms := make(Forms, len(doctype.All()))
	for _, binding := range doctype.Bindings() {
		op := operations[binding.OperationID]
		form, err := cfg.builder.Build(op)
		if err != nil {
			return nil, fmt.Errorf("l4doc: %s: %w", binding.Type, err)
		}
		if form.Document != "" && form.Document != string(binding.Type) {
			return nil, fmt.Errorf("l4doc: operation %q declares document %q, want %q", op.ID, form.Document, binding.Type)
		}
		if len(form.Fields) == 0 {
			return nil, fmt.Errorf("l4doc: %s: operation %q has no fields", binding.Type, op.ID)
		}
		forms[binding.Type] = form
	}
	return forms, nil
}
