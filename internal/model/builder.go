package model

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	pkgopenapi "github.com/goliatone/go-l4doc/pkg/openapi"
)

// Builder converts OpenAPI operations into flat form models.
type Builder struct {
	opts Options
}

// New creates a Builder; zero fields of options take their defaults.
func New(options Options) *Builder {
	return &Builder{opts: options.withDefaults()}
}

// Build transforms an OpenAPI operation into a FormModel. Fields are ordered by
// their x-formgen-order extension; fields without one follow, sorted by name.
func (b *Builder) Build(op pkgopenapi.Operation) (FormModel, error) {
	if err := validateOperation(op); err != nil {
		return FormModel{}, err
	}

	form := FormModel{
		OperationID: op.ID,
		Endpoint:    op.Path,
		Method:      strings.ToUpper(op.Method),
		Summary:     op.Summary,
		Description: op.Description,
		Metadata:    b.hints(op.Extensions),
	}
	if doc, ok := form.Metadata["document"]; ok {
		if !b.opts.allowsDocument(doc) {
			return FormModel{}, fmt.Errorf("model builder: %s: unknown document %q", op.ID, doc)
		}
		form.Document = doc
		delete(form.Metadata, "document")
	}
	if len(form.Metadata) == 0 {
		form.Metadata = nil
	}

	body := op.RequestBody
	required := make(map[string]struct{}, len(body.Required))
	for _, name := range body.Required {
		required[name] = struct{}{}
	}

	fields := make([]Field, 0, len(body.Properties))
	for name, prop := range body.Properties {
		_, isRequired := required[name]
		field, err := b.fieldFromPrimitive(name, prop, isRequired)
		if err != nil {
			return FormModel{}, fmt.Errorf("model builder: %s: %w", op.ID, err)
		}
		fields = append(fields, field)
	}
	sortFields(fields)
	form.Fields = fields

	return form, nil
}

func (b *Builder) fieldFromPrimitive(name string, schema pkgopenapi.Schema, required bool) (Field, error) {
	field := Field{
		Name:        name,
		Type:        mapType(schema.Type),
		Format:      schema.Format,
		Label:       b.opts.Labeler(name),
		Description: schema.Description,
		Required:    required,
		Default:     schema.Default,
	}
	if len(schema.Enum) > 0 {
		field.Enum = append([]any(nil), schema.Enum...)
	}
	applyValidations(&field, schema)

	meta := b.hints(schema.Extensions)
	if label := meta["label"]; label != "" {
		field.Label = label
		delete(meta, "label")
	}
	if placeholder := meta["placeholder"]; placeholder != "" {
		field.Placeholder = placeholder
		delete(meta, "placeholder")
	}
	if raw, ok := meta["order"]; ok {
		order, err := strconv.Atoi(raw)
		if err != nil || order <= 0 {
			return Field{}, fmt.Errorf("field %q: invalid %s-order %q", name, b.opts.Namespace, raw)
		}
		field.Order = order
		delete(meta, "order")
	} else if b.opts.RequireOrder {
		return Field{}, fmt.Errorf("field %q: missing %s-order", name, b.opts.Namespace)
	}
	if len(meta) > 0 {
		field.Metadata = meta
	}
	return field, nil
}

func sortFields(fields []Field) {
	sort.SliceStable(fields, func(i, j int) bool {
		a, b := fields[i], fields[j]
		switch {
		case a.Order > 0 && b.Order > 0 && a.Order != b.Order:
			return a.Order < b.Order
		case a.Order > 0 && b.Order == 0:
			return true
		case a.Order == 0 && b.Order > 0:
			return false
		default:
			return a.Name < b.Name
		}
	})
}

func mapType(schemaType string) FieldType {
	switch schemaType {
	case "integer":
		return FieldTypeInteger
	case "number":
		return FieldTypeNumber
	case "boolean":
		return FieldTypeBoolean
	default:
		return FieldTypeString
	}
}

func applyValidations(field *Field, schema pkgopenapi.Schema) {
	if schema.Minimum != nil {
		params := map[string]string{"value": formatFloat(*schema.Minimum)}
		if schema.ExclusiveMinimum {
			params["exclusive"] = "true"
		}
		field.Validations = append(field.Validations, ValidationRule{Kind: ValidationRuleMin, Params: params})
	}
	if schema.Maximum != nil {
		params := map[string]string{"value": formatFloat(*schema.Maximum)}
		if schema.ExclusiveMaximum {
			params["exclusive"] = "true"
		}
		field.Validations = append(field.Validations, ValidationRule{Kind: ValidationRuleMax, Params: params})
	}
	if schema.MinLength != nil {
		field.Validations = append(field.Validations, ValidationRule{
			Kind:   ValidationRuleMinLength,
			Params: map[string]string{"value": strconv.Itoa(*schema.MinLength)},
		})
	}
	if schema.MaxLength != nil {
		field.Validations = append(field.Validations, ValidationRule{
			Kind:   ValidationRuleMaxLength,
			Params: map[string]string{"value": strconv.Itoa(*schema.MaxLength)},
		})
	}
	if schema.Pattern != "" {
		field.Validations = append(field.Validations, ValidationRule{
			Kind:   ValidationRulePattern,
			Params: map[string]string{"pattern": schema.Pattern},
		})
	}
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// hints flattens namespace: {key: v} and namespace-key: v into a string map
// keyed by the bare key.
func (b *Builder) hints(ext map[string]any) map[string]string {
	if len(ext) == 0 {
		return map[string]string{}
	}
	namespace := b.opts.Namespace

	result := make(map[string]string)
	for key, value := range ext {
		if key == namespace {
			nested, ok := value.(map[string]any)
			if !ok {
				continue
			}
			for nestedKey, nestedValue := range nested {
				if str, ok := canonicalValue(nestedValue); ok {
					result[nestedKey] = str
				}
			}
			continue
		}
		if strings.HasPrefix(key, namespace+"-") {
			if str, ok := canonicalValue(value); ok {
				result[strings.TrimPrefix(key, namespace+"-")] = str
			}
		}
	}
	return result
}

func canonicalValue(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v), true
	case bool:
		return strconv.FormatBool(v), true
	case float64:
		if v == math.Trunc(v) {
			return strconv.FormatInt(int64(v), 10), true
		}
		return formatFloat(v), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	default:
		return "", false
	}
}
