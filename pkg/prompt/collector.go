// Package prompt collects form values interactively in a terminal.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-l4doc/pkg/doctype"
	"github.com/goliatone/go-l4doc/pkg/form"
	"github.com/goliatone/go-l4doc/pkg/model"
)

// Collector walks a form's fields in order and asks for each value.
type Collector struct {
	driver    PromptDriver
	validator form.Validator
}

// Option configures a Collector.
type Option func(*Collector)

// WithPromptDriver overrides the prompt driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(c *Collector) {
		if driver != nil {
			c.driver = driver
		}
	}
}

// WithValidator overrides the per-field validator used while typing.
func WithValidator(v form.Validator) Option {
	return func(c *Collector) {
		if v != nil {
			c.validator = v
		}
	}
}

// New returns a Collector. Without WithPromptDriver it talks to the terminal
// through survey.
func New(options ...Option) *Collector {
	c := &Collector{}
	for _, opt := range options {
		opt(c)
	}
	if c.driver == nil {
		c.driver = NewSurveyDriver(nil)
	}
	if c.validator == nil {
		c.validator = form.NewConstraintValidator()
	}
	return c
}

var _ form.Reporter = (*Collector)(nil)

// ChooseType asks which document to generate.
func (c *Collector) ChooseType(ctx context.Context) (doctype.Type, error) {
	bindings := doctype.Bindings()
	options := make([]string, 0, len(bindings))
	for _, b := range bindings {
		options = append(options, b.Title)
	}
	idx, err := c.driver.Select(ctx, SelectConfig{Message: "Documento:", Options: options})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(bindings) {
		return "", fmt.Errorf("prompt: invalid selection %d", idx)
	}
	return bindings[idx].Type, nil
}

// Fill prompts for every field of f in order, offering the current value as
// default. Fields already valid are still asked so they can be edited.
func (c *Collector) Fill(ctx context.Context, f *form.Form) error {
	m := f.Model()
	for _, field := range m.Fields {
		value, err := c.ask(ctx, field, f.Value(field.Name))
		if err != nil {
			if errors.Is(err, ErrAborted) {
				return err
			}
			return fmt.Errorf("prompt: %s: %w", field.Name, err)
		}
		if err := f.Set(field.Name, value); err != nil {
			return err
		}
	}
	return nil
}

// Confirm asks a yes/no question.
func (c *Collector) Confirm(ctx context.Context, message string, def bool) (bool, error) {
	return c.driver.Confirm(ctx, ConfirmConfig{Message: message, Default: def})
}

// ReportValidity prints each issue through the driver.
func (c *Collector) ReportValidity(ctx context.Context, _ string, issues []form.Issue) {
	for _, issue := range issues {
		label := issue.Label
		if label == "" {
			label = issue.Field
		}
		_ = c.driver.Info(ctx, fmt.Sprintf("  • %s: %s", label, issue.Message))
	}
}

func (c *Collector) ask(ctx context.Context, field model.Field, current string) (string, error) {
	message := field.Label
	if field.Required {
		message += " *"
	}

	if options := enumOptions(field.Enum); len(options) > 0 {
		def := indexOf(options, current)
		if def < 0 {
			def = 0
		}
		idx, err := c.driver.Select(ctx, SelectConfig{
			Message:      message,
			Options:      options,
			DefaultIndex: def,
			Help:         field.Description,
		})
		if err != nil {
			return "", err
		}
		if idx < 0 || idx >= len(options) {
			return "", fmt.Errorf("invalid selection %d", idx)
		}
		return options[idx], nil
	}

	single := model.FormModel{Fields: []model.Field{field}}
	value, err := c.driver.Input(ctx, InputConfig{
		Message: message,
		Default: current,
		Help:    helpFor(field),
		Validator: func(answer string) error {
			issues := c.validator.CheckValidity(ctx, single, form.RecordOf(form.Entry{Name: field.Name, Value: answer}))
			if len(issues) > 0 {
				return errors.New(issues[0].Message)
			}
			return nil
		},
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(value), nil
}

func helpFor(field model.Field) string {
	if field.Description != "" {
		return field.Description
	}
	return field.Placeholder
}

func enumOptions(values []any) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, fmt.Sprint(v))
	}
	return out
}
