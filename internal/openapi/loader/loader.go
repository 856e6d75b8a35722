package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	pkgopenapi "github.com/goliatone/go-l4doc/pkg/openapi"
)

// Loader reads contracts from the bundled set, local files or the live API.
type Loader struct {
	contracts fs.FS
	http      *http.Client
	timeout   time.Duration
	maxSize   int64
}

var _ pkgopenapi.Loader = (*Loader)(nil)

// New constructs a Loader from resolved options. Zero options load nothing
// but files; use pkgopenapi.NewLoaderOptions to get the bundled defaults.
func New(options pkgopenapi.LoaderOptions) pkgopenapi.Loader {
	maxSize := options.MaxContractSize
	if maxSize <= 0 {
		maxSize = pkgopenapi.DefaultMaxContractSize
	}
	return &Loader{
		contracts: options.Contracts,
		http:      options.HTTPClient,
		timeout:   options.RequestTimeout,
		maxSize:   maxSize,
	}
}

// Load reads src and wraps the payload in a Document.
func (l *Loader) Load(ctx context.Context, src pkgopenapi.Source) (pkgopenapi.Document, error) {
	if src == nil {
		return pkgopenapi.Document{}, errors.New("openapi loader: source is nil")
	}

	var (
		data []byte
		err  error
	)
	switch src.Kind() {
	case pkgopenapi.SourceKindFile:
		data, err = loadFile(ctx, src.Location())
	case pkgopenapi.SourceKindFS:
		data, err = loadFromFS(ctx, l.contracts, src.Location())
	case pkgopenapi.SourceKindURL:
		if l.http == nil {
			return pkgopenapi.Document{}, fmt.Errorf("openapi loader: %s: remote contracts disabled", src.Location())
		}
		data, err = loadHTTP(ctx, l.http, src.Location(), l.timeout, l.maxSize)
	default:
		err = fmt.Errorf("unsupported source kind %q", src.Kind())
	}
	if err != nil {
		return pkgopenapi.Document{}, fmt.Errorf("openapi loader: load %s: %w", src.Location(), err)
	}

	return pkgopenapi.NewDocument(src, data)
}
