// Package controller drives document requests end to end: it owns one form
// per document type, the tab selection and the status board, and turns a
// submission into a saved .docx file or a status message explaining why not.
package controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/goliatone/go-l4doc/pkg/client"
	"github.com/goliatone/go-l4doc/pkg/doctype"
	"github.com/goliatone/go-l4doc/pkg/download"
	"github.com/goliatone/go-l4doc/pkg/form"
	"github.com/goliatone/go-l4doc/pkg/model"
	"github.com/goliatone/go-l4doc/pkg/status"
	"github.com/goliatone/go-l4doc/pkg/tabs"
)

// Status texts shown in a document type's region.
const (
	MsgMissingFields = "Preencha todos os campos obrigatórios!"
	MsgGenerating    = "⏳ Gerando documento..."
	MsgGenerated     = "✅ Documento gerado com sucesso!"
	ErrorPrefix      = "❌ "
)

// ErrNoGenerator is returned by New when no Generator is supplied.
var ErrNoGenerator = errors.New("controller: generator is required")

// Generator submits a record and returns the generated document.
// *client.Client satisfies it.
type Generator interface {
	Generate(ctx context.Context, t doctype.Type, rec form.Record) (client.Document, error)
}

// Controller is safe for concurrent use. Overlapping submissions for the same
// type are not coordinated; the last status message wins.
type Controller struct {
	generator Generator
	forms     map[doctype.Type]*form.Form
	validator form.Validator
	reporter  form.Reporter
	sink      download.Sink
	board     *status.Board
	tabs      *tabs.Switcher
	logger    *slog.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithValidator replaces the constraint validator.
func WithValidator(v form.Validator) Option {
	return func(c *Controller) {
		if v != nil {
			c.validator = v
		}
	}
}

// WithReporter sets where field level validation issues are shown.
func WithReporter(r form.Reporter) Option {
	return func(c *Controller) {
		if r != nil {
			c.reporter = r
		}
	}
}

// WithSink sets the download destination.
func WithSink(s download.Sink) Option {
	return func(c *Controller) {
		if s != nil {
			c.sink = s
		}
	}
}

// WithBoard sets the status board.
func WithBoard(b *status.Board) Option {
	return func(c *Controller) {
		if b != nil {
			c.board = b
		}
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New builds a controller with one form per document type. Every type must
// have a model in models.
func New(generator Generator, models map[doctype.Type]model.FormModel, options ...Option) (*Controller, error) {
	if generator == nil {
		return nil, ErrNoGenerator
	}

	bindings := doctype.Bindings()
	panels := make([]string, 0, len(bindings))
	buttons := make([]string, 0, len(bindings))
	forms := make(map[doctype.Type]*form.Form, len(bindings))
	for _, b := range bindings {
		m, ok := models[b.Type]
		if !ok {
			return nil, fmt.Errorf("controller: no form model for %s", b.Type)
		}
		forms[b.Type] = form.New(b.FormID, m)
		panels = append(panels, b.PanelID)
		buttons = append(buttons, b.ButtonID)
	}

	c := &Controller{
		generator: generator,
		forms:     forms,
		validator: form.NewConstraintValidator(),
		reporter:  form.ReporterFunc(func(context.Context, string, []form.Issue) {}),
		tabs:      tabs.New(panels, buttons),
		logger:    slog.Default(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	if c.sink == nil {
		c.sink = download.NewDirSink(".", download.WithLogger(c.logger))
	}
	if c.board == nil {
		c.board = status.NewBoard()
	}
	return c, nil
}

// Form returns the form bound to t.
func (c *Controller) Form(t doctype.Type) (*form.Form, error) {
	f, ok := c.forms[t]
	if !ok {
		return nil, fmt.Errorf("controller: %w: %q", doctype.ErrUnknown, string(t))
	}
	return f, nil
}

// Board returns the status board.
func (c *Controller) Board() *status.Board {
	return c.board
}

// SwitchTab shows t's panel and marks button as the active tab button.
func (c *Controller) SwitchTab(t doctype.Type, button string) error {
	b, err := t.Binding()
	if err != nil {
		return fmt.Errorf("controller: switch tab: %w", err)
	}
	return c.tabs.Switch(b.PanelID, button)
}

// ActiveTab returns the document type whose panel is shown, if any.
func (c *Controller) ActiveTab() (doctype.Type, bool) {
	panel, _ := c.tabs.Active()
	for _, b := range doctype.Bindings() {
		if b.PanelID == panel {
			return b.Type, true
		}
	}
	return "", false
}

// Generate submits t's form. On success the document is saved through the
// sink and its location returned. Every outcome is also published on the
// status board; the returned error is a *form.ValidationError,
// *client.RequestError or *client.TransportError.
func (c *Controller) Generate(ctx context.Context, t doctype.Type) (string, error) {
	f, err := c.Form(t)
	if err != nil {
		return "", err
	}

	rec := f.Snapshot()
	if issues := c.validator.CheckValidity(ctx, f.Model(), rec); len(issues) > 0 {
		c.show(t, MsgMissingFields, status.SeverityError)
		c.reporter.ReportValidity(ctx, f.ID(), issues)
		return "", &form.ValidationError{FormID: f.ID(), Issues: issues}
	}

	c.show(t, MsgGenerating, status.SeveritySuccess)

	doc, err := c.generator.Generate(ctx, t, rec)
	if err != nil {
		return "", c.fail(ctx, t, err)
	}

	artifact := download.Artifact{
		Filename:    download.Filename(t, rec),
		Content:     doc.Content,
		ContentType: doc.ContentType,
	}
	path, err := c.sink.Save(ctx, artifact)
	if err != nil {
		return "", c.fail(ctx, t, &client.TransportError{Op: "download", Err: err})
	}

	c.show(t, MsgGenerated, status.SeveritySuccess)
	c.logger.InfoContext(ctx, "document generated",
		slog.String("type", t.String()),
		slog.String("path", path),
		slog.String("request_id", doc.RequestID),
		slog.Int("bytes", len(doc.Content)),
	)
	return path, nil
}

func (c *Controller) fail(ctx context.Context, t doctype.Type, err error) error {
	c.logger.ErrorContext(ctx, "document generation failed",
		slog.String("type", t.String()),
		slog.Any("error", err),
	)
	c.show(t, ErrorPrefix+UserMessage(err), status.SeverityError)
	return err
}

func (c *Controller) show(t doctype.Type, text string, severity status.Severity) {
	if _, err := c.board.Show(t, text, severity); err != nil {
		c.logger.Warn("status update dropped", slog.String("type", t.String()), slog.Any("error", err))
	}
}

// UserMessage is the text shown after the error prefix for err.
func UserMessage(err error) string {
	if err == nil {
		return client.FallbackMessage
	}
	var reqErr *client.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Message()
	}
	var trErr *client.TransportError
	if errors.As(err, &trErr) {
		return trErr.Message()
	}
	var valErr *form.ValidationError
	if errors.As(err, &valErr) {
		return MsgMissingFields
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return client.FallbackMessage
}
