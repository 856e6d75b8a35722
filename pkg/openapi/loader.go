package openapi

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goliatone/go-l4doc/api"
)

const (
	// LiveContractPath is where the document API publishes its own contract.
	LiveContractPath = "/openapi.json"
	// DefaultMaxContractSize caps contracts fetched over HTTP.
	DefaultMaxContractSize int64 = 4 << 20
)

// Loader reads the document API contract from a Source.
type Loader interface {
	Load(ctx context.Context, src Source) (Document, error)
}

// LoaderOptions selects where contracts may come from.
type LoaderOptions struct {
	// Contracts resolves fs sources. NewLoaderOptions sets it to the bundled
	// contract set.
	Contracts fs.FS

	// HTTPClient fetches URL sources. URL sources are rejected while it is nil.
	HTTPClient *http.Client

	// RequestTimeout bounds one remote fetch.
	RequestTimeout time.Duration

	// MaxContractSize caps a remote contract body, in bytes.
	MaxContractSize int64
}

// LoaderOption mutates LoaderOptions prior to construction.
type LoaderOption func(*LoaderOptions)

// WithContracts replaces the bundled contract set used for fs sources.
func WithContracts(files fs.FS) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.Contracts = files
	}
}

// WithHTTPClient fetches URL sources through client.
func WithHTTPClient(client *http.Client) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.HTTPClient = client
	}
}

// WithRemoteContracts allows URL sources, each fetch bounded by timeout
// (zero means no bound). A client set through WithHTTPClient is kept.
func WithRemoteContracts(timeout time.Duration) LoaderOption {
	return func(opts *LoaderOptions) {
		if opts.HTTPClient == nil {
			opts.HTTPClient = &http.Client{}
		}
		opts.RequestTimeout = timeout
	}
}

// WithMaxContractSize overrides DefaultMaxContractSize.
func WithMaxContractSize(n int64) LoaderOption {
	return func(opts *LoaderOptions) {
		if n > 0 {
			opts.MaxContractSize = n
		}
	}
}

// NewLoaderOptions starts from the bundled contract set and applies options.
func NewLoaderOptions(options ...LoaderOption) LoaderOptions {
	cfg := LoaderOptions{
		Contracts:       api.Contracts(),
		MaxContractSize: DefaultMaxContractSize,
	}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// BundledSource points at the contract shipped with this module.
func BundledSource() Source {
	return SourceFromFS(api.ContractPath)
}

// LiveSource points at the contract published by the API at baseURL.
func LiveSource(baseURL string) (Source, error) {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	u, err := url.Parse(base)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("openapi: invalid API base URL %q", baseURL)
	}
	return urlSourceFrom(base + LiveContractPath)
}
