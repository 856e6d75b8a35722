package main

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	internalmodel "github.com/goliatone/go-l4doc/internal/model"
	"github.com/goliatone/go-l4doc/pkg/doctype"
	pkgopenapi "github.com/goliatone/go-l4doc/pkg/openapi"
)

const extensionNamespace = pkgopenapi.DefaultExtensionNamespace

type violation struct {
	file     string
	location string
	message  string
}

func lintDocument(ctx context.Context, parser pkgopenapi.Parser, doc pkgopenapi.Document) ([]violation, error) {
	operations, err := parser.Operations(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("parse operations: %w", err)
	}

	ids := make([]string, 0, len(operations))
	for id := range operations {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	file := doc.Location()
	var result []violation
	for _, id := range ids {
		op := operations[id]
		base := []string{"operation", id}
		result = append(result, lintExtensions(file, base, op.Extensions)...)
		result = append(result, lintSchema(file, appendPath(base, "requestBody"), op.RequestBody)...)
		result = append(result, lintOrder(file, appendPath(base, "requestBody"), op.RequestBody)...)
	}
	return result, nil
}

func lintSchema(file string, path []string, schema pkgopenapi.Schema) []violation {
	var result []violation
	if len(schema.Extensions) > 0 {
		result = append(result, lintExtensions(file, path, schema.Extensions)...)
	}

	if len(schema.Properties) > 0 {
		keys := make([]string, 0, len(schema.Properties))
		for key := range schema.Properties {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			result = append(result, lintSchema(file, appendPath(path, "properties."+key), schema.Properties[key])...)
		}
	}

	if schema.Items != nil {
		result = append(result, lintSchema(file, appendPath(path, "items"), *schema.Items)...)
	}
	return result
}

// lintOrder flags x-formgen-order values shared by two properties of the
// same body; the filename depends on which field comes first.
func lintOrder(file string, path []string, schema pkgopenapi.Schema) []violation {
	seen := make(map[string][]string)
	for name, prop := range schema.Properties {
		if raw, ok := hintValue(prop.Extensions, "order"); ok {
			seen[raw] = append(seen[raw], name)
		}
	}
	orders := make([]string, 0, len(seen))
	for order := range seen {
		orders = append(orders, order)
	}
	sort.Strings(orders)

	var result []violation
	for _, order := range orders {
		names := seen[order]
		if len(names) < 2 {
			continue
		}
		sort.Strings(names)
		result = append(result, violation{
			file:     file,
			location: formatLocation(path),
			message:  fmt.Sprintf("order %s used by %s", order, strings.Join(names, ", ")),
		})
	}
	return result
}

func lintExtensions(file string, path []string, extensions map[string]any) []violation {
	if len(extensions) == 0 {
		return nil
	}

	var result []violation
	sortedKeys := make([]string, 0, len(extensions))
	for key := range extensions {
		sortedKeys = append(sortedKeys, key)
	}
	sort.Strings(sortedKeys)

	for _, key := range sortedKeys {
		value := extensions[key]
		switch {
		case key == extensionNamespace:
			nested, ok := value.(map[string]any)
			if !ok {
				result = append(result, violation{
					file:     file,
					location: formatLocation(path),
					message:  fmt.Sprintf("%s must be an object, found %T", extensionNamespace, value),
				})
				continue
			}
			nestedKeys := make([]string, 0, len(nested))
			for nestedKey := range nested {
				nestedKeys = append(nestedKeys, nestedKey)
			}
			sort.Strings(nestedKeys)
			for _, nestedKey := range nestedKeys {
				result = append(result, validateHint(file, appendPath(path, nestedKey), nestedKey, nested[nestedKey])...)
			}
		case strings.HasPrefix(key, extensionNamespace+"-"):
			trimmed := strings.TrimPrefix(key, extensionNamespace+"-")
			result = append(result, validateHint(file, path, trimmed, value)...)
		}
	}
	return result
}

func validateHint(file string, path []string, key string, value any) []violation {
	fail := func(format string, args ...any) []violation {
		return []violation{{file: file, location: formatLocation(path), message: fmt.Sprintf(format, args...)}}
	}

	if key == "" {
		return fail("extension key is empty")
	}
	if !internalmodel.IsAllowedExtensionKey(key) {
		return fail("unsupported extension key %q (supported: %s)", key, strings.Join(internalmodel.AllowedExtensionKeys(), ", "))
	}

	str, ok := internalmodel.CanonicalizeExtensionValue(value)
	if !ok {
		return fail("value for %q must be a string, number, or boolean (got %T)", key, value)
	}

	switch key {
	case "order":
		if n, err := strconv.Atoi(str); err != nil || n <= 0 {
			return fail("order must be a positive integer, got %q", str)
		}
	case "document":
		if _, err := doctype.Parse(str); err != nil {
			return fail("%v", err)
		}
	}
	return nil
}

func hintValue(extensions map[string]any, key string) (string, bool) {
	if nested, ok := extensions[extensionNamespace].(map[string]any); ok {
		if v, ok := internalmodel.CanonicalizeExtensionValue(nested[key]); ok {
			return v, true
		}
	}
	if v, ok := extensions[extensionNamespace+"-"+key]; ok {
		return internalmodel.CanonicalizeExtensionValue(v)
	}
	return "", false
}

func appendPath(path []string, segment string) []string {
	next := append([]string(nil), path...)
	next = append(next, segment)
	return next
}

func formatLocation(path []string) string {
	return strings.Join(path, " > ")
}
