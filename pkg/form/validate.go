package form

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/goliatone/go-l4doc/pkg/model"
)

// Issue is one failed constraint on one field.
type Issue struct {
	Field   string `json:"field"`
	Label   string `json:"label,omitempty"`
	Message string `json:"message"`
}

// ValidationError reports that a form failed its constraints. It is raised
// before any request is made.
type ValidationError struct {
	FormID string
	Issues []Issue
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return fmt.Sprintf("form: %s is invalid", e.FormID)
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, issue.Field+": "+issue.Message)
	}
	return fmt.Sprintf("form: %s is invalid: %s", e.FormID, strings.Join(parts, "; "))
}

// Validator checks a snapshot against the form's constraints and returns the
// failures in field order. An empty result means the form is valid.
type Validator interface {
	CheckValidity(ctx context.Context, m model.FormModel, rec Record) []Issue
}

// Reporter surfaces validation failures to the person filling the form.
type Reporter interface {
	ReportValidity(ctx context.Context, formID string, issues []Issue)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(ctx context.Context, formID string, issues []Issue)

// ReportValidity calls fn.
func (fn ReporterFunc) ReportValidity(ctx context.Context, formID string, issues []Issue) {
	fn(ctx, formID, issues)
}

// ConstraintValidator enforces the constraints carried by the field model:
// required, numeric type, min/max, minLength/maxLength and pattern. Patterns
// must match the whole value.
type ConstraintValidator struct {
	mu       sync.Mutex
	patterns map[string]*regexp.Regexp
}

// NewConstraintValidator returns a ready validator.
func NewConstraintValidator() *ConstraintValidator {
	return &ConstraintValidator{patterns: make(map[string]*regexp.Regexp)}
}

var _ Validator = (*ConstraintValidator)(nil)

// CheckValidity implements Validator.
func (v *ConstraintValidator) CheckValidity(_ context.Context, m model.FormModel, rec Record) []Issue {
	var issues []Issue
	for _, field := range m.Fields {
		value, _ := rec.Get(field.Name)
		if msg := v.checkField(field, value); msg != "" {
			issues = append(issues, Issue{Field: field.Name, Label: field.Label, Message: msg})
		}
	}
	return issues
}

func (v *ConstraintValidator) checkField(field model.Field, value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		if field.Required {
			return "campo obrigatório"
		}
		return ""
	}

	var number float64
	switch field.Type {
	case model.FieldTypeNumber:
		n, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return "informe um número"
		}
		number = n
	case model.FieldTypeInteger:
		n, err := strconv.ParseInt(trimmed, 10, 64)
		if err != nil {
			return "informe um número inteiro"
		}
		number = float64(n)
	case model.FieldTypeBoolean:
		if _, err := strconv.ParseBool(trimmed); err != nil {
			return "informe verdadeiro ou falso"
		}
	}

	numeric := field.Type == model.FieldTypeNumber || field.Type == model.FieldTypeInteger
	for _, rule := range field.Validations {
		switch rule.Kind {
		case model.ValidationRuleMin:
			limit, ok := parseFloat(rule.Params["value"])
			if !numeric || !ok {
				continue
			}
			if number < limit || (rule.Params["exclusive"] == "true" && number == limit) {
				return fmt.Sprintf("valor mínimo %s", rule.Params["value"])
			}
		case model.ValidationRuleMax:
			limit, ok := parseFloat(rule.Params["value"])
			if !numeric || !ok {
				continue
			}
			if number > limit || (rule.Params["exclusive"] == "true" && number == limit) {
				return fmt.Sprintf("valor máximo %s", rule.Params["value"])
			}
		case model.ValidationRuleMinLength:
			if limit, err := strconv.Atoi(rule.Params["value"]); err == nil && utf8.RuneCountInString(value) < limit {
				return fmt.Sprintf("mínimo de %d caracteres", limit)
			}
		case model.ValidationRuleMaxLength:
			if limit, err := strconv.Atoi(rule.Params["value"]); err == nil && utf8.RuneCountInString(value) > limit {
				return fmt.Sprintf("máximo de %d caracteres", limit)
			}
		case model.ValidationRulePattern:
			re := v.pattern(rule.Params["pattern"])
			if re != nil && !re.MatchString(value) {
				return "formato inválido"
			}
		}
	}
	return ""
}

func (v *ConstraintValidator) pattern(expr string) *regexp.Regexp {
	if expr == "" {
		return nil
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.patterns == nil {
		v.patterns = make(map[string]*regexp.Regexp)
	}
	if re, ok := v.patterns[expr]; ok {
		return re
	}
	re, err := regexp.Compile("^(?:" + expr + ")$")
	if err != nil {
		// an unusable pattern never blocks submission
		re = nil
	}
	v.patterns[expr] = re
	return re
}

func parseFloat(raw string) (float64, bool) {
	if raw == "" {
		return 0, false
	}
	val, err := strconv.ParseFloat(raw, 64)
	return val, err == nil
}
