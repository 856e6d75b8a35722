// Package client talks to the document generation API: it posts form records
// to /gerar/{tipo} and returns the generated file, and reads the document
// history and health endpoints.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-l4doc/pkg/doctype"
	"github.com/goliatone/go-l4doc/pkg/form"
)

const (
	// RequestIDHeader carries the per-submission correlation id.
	RequestIDHeader = "X-Request-ID"

	maxErrorBody = 1 << 20
)

// Document is a generated file as returned by the API.
type Document struct {
	Type          doctype.Type
	Content       []byte
	ContentType   string
	SuggestedName string
	RequestID     string
}

// Client is safe for concurrent use.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	logger    *slog.Logger
	userAgent string
	requestID func() string
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithRequestIDs overrides the correlation id generator.
func WithRequestIDs(fn func() string) Option {
	return func(c *Client) {
		if fn != nil {
			c.requestID = fn
		}
	}
}

// New builds a client for the API rooted at baseURL. Requests carry no
// timeout unless the injected HTTP client or the caller's context sets one.
func New(baseURL string, options ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrBaseURL, baseURL)
	}
	u.Path = strings.TrimRight(u.Path, "/")

	c := &Client{
		baseURL:   u,
		http:      &http.Client{},
		logger:    slog.Default(),
		userAgent: "go-l4doc",
		requestID: uuid.NewString,
	}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// BaseURL returns the API root the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Generate posts rec to /gerar/{tipo} and returns the generated document.
// Failures are *RequestError for non-2xx answers and *TransportError for
// everything around the exchange.
func (c *Client) Generate(ctx context.Context, t doctype.Type, rec form.Record) (Document, error) {
	if !t.Valid() {
		return Document{}, fmt.Errorf("client: generate: %w: %q", doctype.ErrUnknown, string(t))
	}

	body, err := json.Marshal(rec)
	if err != nil {
		return Document{}, &TransportError{Op: "encode", Err: err}
	}

	requestID := c.requestID()
	endpoint := c.endpoint("gerar", t.PathSegment())
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return Document{}, &TransportError{Op: "build request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	started := time.Now()
	c.logger.DebugContext(ctx, "posting document request",
		slog.String("type", t.String()),
		slog.String("url", endpoint),
		slog.String("request_id", requestID),
		slog.Int("fields", rec.Len()),
	)

	resp, err := c.http.Do(req)
	if err != nil {
		return Document{}, &TransportError{Op: "post " + endpoint, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		reqErr := &RequestError{Status: resp.StatusCode, Detail: parseDetail(raw), RequestID: requestID}
		attrs := []any{
			slog.String("type", t.String()),
			slog.Int("status", resp.StatusCode),
			slog.String("request_id", requestID),
			slog.String("detail", reqErr.Detail),
		}
		if reqErr.Detail == "" {
			attrs = append(attrs, slog.String("body", bodyExcerpt(raw)))
		}
		c.logger.DebugContext(ctx, "document request rejected", attrs...)
		return Document{}, reqErr
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return Document{}, &TransportError{Op: "read document", Err: err}
	}

	doc := Document{
		Type:          t,
		Content:       content,
		ContentType:   resp.Header.Get("Content-Type"),
		SuggestedName: suggestedName(resp.Header.Get("Content-Disposition")),
		RequestID:     requestID,
	}
	c.logger.DebugContext(ctx, "document received",
		slog.String("type", t.String()),
		slog.String("request_id", requestID),
		slog.Int("bytes", len(content)),
		slog.String("server_filename", doc.SuggestedName),
		slog.Duration("elapsed", time.Since(started)),
	)
	return doc, nil
}

// Ping calls the API root and returns its greeting message.
func (c *Client) Ping(ctx context.Context) (string, error) {
	var out struct {
		Message string `json:"message"`
	}
	if err := c.getJSON(ctx, c.endpoint(), &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return &TransportError{Op: "build request", Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, c.requestID())
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Op: "get " + endpoint, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &RequestError{Status: resp.StatusCode, Detail: parseDetail(raw), RequestID: req.Header.Get(RequestIDHeader)}
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return &TransportError{Op: "decode " + endpoint, Err: err}
	}
	return nil
}

func (c *Client) endpoint(segments ...string) string {
	u := *c.baseURL
	u.Path = strings.Join(append([]string{u.Path}, segments...), "/")
	if u.Path == "" {
		u.Path = "/"
	}
	return u.String()
}

func suggestedName(disposition string) string {
	if disposition == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(disposition)
	if err != nil {
		return ""
	}
	return params["filename"]
}
