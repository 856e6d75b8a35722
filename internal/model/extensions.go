package model

import "sort"

var allowedExtensionKeys = map[string]struct{}{
	"label":       {},
	"placeholder": {},
	"order":       {},
	"document":    {},
}

// IsAllowedExtensionKey reports whether key (without the x-formgen prefix)
// is understood by the builder.
func IsAllowedExtensionKey(key string) bool {
	_, ok := allowedExtensionKeys[key]
	return ok
}

// AllowedExtensionKeys returns the supported keys, sorted.
func AllowedExtensionKeys() []string {
	keys := make([]string, 0, len(allowedExtensionKeys))
	for key := range allowedExtensionKeys {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// CanonicalizeExtensionValue renders a scalar extension value as the builder
// sees it. Non-scalar values report false.
func CanonicalizeExtensionValue(value any) (string, bool) {
	return canonicalValue(value)
}
