package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-l4doc/pkg/doctype"
)

// DefaultListLimit mirrors the API's default page size.
const DefaultListLimit = 50

// DocumentInfo is one entry of the API's generation history.
type DocumentInfo struct {
	ID            int       `json:"id"`
	Type          string    `json:"tipo"`
	PrincipalName string    `json:"nome_principal"`
	CreatedAt     Timestamp `json:"criado_em"`
}

// Kind resolves the history entry's type. The API records declarations as
// "declaracao_quitacao", which maps to doctype.Declaration.
func (d DocumentInfo) Kind() (doctype.Type, bool) {
	raw := d.Type
	if strings.HasPrefix(raw, string(doctype.Declaration)) {
		raw = string(doctype.Declaration)
	}
	t, err := doctype.Parse(raw)
	return t, err == nil
}

// ListOptions pages through the history. Zero Limit means DefaultListLimit.
type ListOptions struct {
	Limit  int
	Offset int
}

// ListDocuments returns generated documents, newest first.
func (c *Client) ListDocuments(ctx context.Context, opts ListOptions) ([]DocumentInfo, error) {
	if opts.Limit < 0 || opts.Offset < 0 {
		return nil, fmt.Errorf("client: list documents: negative limit or offset")
	}
	limit := opts.Limit
	if limit == 0 {
		limit = DefaultListLimit
	}

	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("offset", strconv.Itoa(opts.Offset))
	endpoint := c.endpoint("documentos") + "?" + query.Encode()

	var out []DocumentInfo
	if err := c.getJSON(ctx, endpoint, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Timestamp accepts the API's naive ISO timestamps (no zone, read as UTC) as
// well as RFC 3339.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// UnmarshalJSON implements json.Unmarshaler.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("client: timestamp: %w", err)
	}
	if raw == "" {
		ts.Time = time.Time{}
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			ts.Time = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("client: timestamp: unsupported format %q", raw)
}

// MarshalJSON implements json.Marshaler.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(ts.Time.Format(time.RFC3339Nano))
}
