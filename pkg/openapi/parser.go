package openapi

import "context"

const (
	// DefaultExtensionNamespace prefixes every form hint in a contract.
	DefaultExtensionNamespace = "x-formgen"
	// DefaultRequestMediaType is the payload encoding the document API accepts.
	DefaultRequestMediaType = "application/json"
)

// Parser extracts the operations of a contract, keyed by operationId.
type Parser interface {
	Operations(ctx context.Context, doc Document) (map[string]Operation, error)
}

// ParserOptions controls how strictly a contract is read.
type ParserOptions struct {
	// ResolveReferences validates the contract and resolves $ref pointers.
	ResolveReferences bool

	// AllowPartialDocuments accepts contracts without paths, as the linter
	// does for component-only files.
	AllowPartialDocuments bool

	// RequiredOperations must all be present or Operations fails naming the
	// missing ones.
	RequiredOperations []string

	// RequestMediaType picks the request body schema.
	RequestMediaType string

	// ExtensionNamespace selects which vendor extensions are kept.
	ExtensionNamespace string
}

// ParserOption mutates ParserOptions during construction.
type ParserOption func(*ParserOptions)

// WithReferenceResolution toggles validation and $ref resolution.
func WithReferenceResolution(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.ResolveReferences = enabled
	}
}

// WithPartialDocuments toggles support for component-only contracts.
func WithPartialDocuments(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.AllowPartialDocuments = enabled
	}
}

// WithRequiredOperations adds operation ids the contract must declare.
func WithRequiredOperations(ids ...string) ParserOption {
	return func(opts *ParserOptions) {
		opts.RequiredOperations = append(opts.RequiredOperations, ids...)
	}
}

// WithRequestMediaType overrides DefaultRequestMediaType.
func WithRequestMediaType(mediaType string) ParserOption {
	return func(opts *ParserOptions) {
		if mediaType != "" {
			opts.RequestMediaType = mediaType
		}
	}
}

// WithExtensionNamespace overrides DefaultExtensionNamespace.
func WithExtensionNamespace(namespace string) ParserOption {
	return func(opts *ParserOptions) {
		if namespace != "" {
			opts.ExtensionNamespace = namespace
		}
	}
}

// NewParserOptions resolves references, reads JSON request bodies and keeps
// x-formgen hints unless options say otherwise.
func NewParserOptions(options ...ParserOption) ParserOptions {
	cfg := ParserOptions{
		ResolveReferences:  true,
		RequestMediaType:   DefaultRequestMediaType,
		ExtensionNamespace: DefaultExtensionNamespace,
	}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
