package download

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/goliatone/go-l4doc/pkg/doctype"
	"github.com/goliatone/go-l4doc/pkg/form"
)

const (
	// Extension is appended to every generated filename.
	Extension = ".docx"
	// FallbackFragment replaces a first field that sanitizes to nothing.
	FallbackFragment = "documento"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Filename computes "{tipo}_{fragment}.docx" where fragment is the record's
// first value with whitespace runs replaced by "_". Characters that would
// break a path (separators, reserved punctuation, control runes) are dropped
// and the result is NFC normalized.
func Filename(t doctype.Type, rec form.Record) string {
	var first string
	if entry, ok := rec.First(); ok {
		first = entry.Value
	}
	return t.PathSegment() + "_" + Fragment(first) + Extension
}

// Fragment sanitizes a single value for use inside a filename.
func Fragment(value string) string {
	cleaned, _, err := transform.String(transform.Chain(norm.NFC, runes.Remove(runes.Predicate(unsafeRune))), value)
	if err != nil {
		cleaned = value
	}
	cleaned = strings.TrimSpace(cleaned)
	cleaned = whitespaceRun.ReplaceAllString(cleaned, "_")
	cleaned = strings.Trim(cleaned, ".")
	if cleaned == "" {
		return FallbackFragment
	}
	return cleaned
}

func unsafeRune(r rune) bool {
	switch r {
	case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
		return true
	}
	return unicode.IsControl(r) && !unicode.IsSpace(r)
}
