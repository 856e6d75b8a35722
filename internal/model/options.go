package model

import pkgopenapi "github.com/goliatone/go-l4doc/pkg/openapi"

// Options tunes how contract hints become form fields.
type Options struct {
	// Labeler names fields that carry no label hint.
	Labeler func(string) string

	// Namespace prefixes the hint keys read from the contract.
	Namespace string

	// RequireOrder rejects fields without an order hint. The first ordered
	// field names the downloaded file.
	RequireOrder bool

	// Documents, when set, is the closed list of values accepted for the
	// document hint.
	Documents []string
}

func (o Options) withDefaults() Options {
	out := Options{
		Labeler:      DefaultLabeler,
		Namespace:    pkgopenapi.DefaultExtensionNamespace,
		RequireOrder: o.RequireOrder,
		Documents:    append([]string(nil), o.Documents...),
	}
	if o.Labeler != nil {
		out.Labeler = o.Labeler
	}
	if o.Namespace != "" {
		out.Namespace = o.Namespace
	}
	return out
}

func (o Options) allowsDocument(name string) bool {
	if len(o.Documents) == 0 {
		return true
	}
	for _, doc := range o.Documents {
		if doc == name {
			return true
		}
	}
	return false
}
