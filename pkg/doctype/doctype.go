// Package doctype enumerates the document kinds the generation API can
// produce. The set is closed: callers resolve identifiers through Parse and
// never construct a Type from an arbitrary string.
package doctype

import (
	"errors"
	"fmt"
	"strings"
)

// Type identifies a document kind by its API path segment.
type Type string

const (
	Contract        Type = "contrato"
	PowerOfAttorney Type = "procuracao"
	Acknowledgment  Type = "ciencia"
	Declaration     Type = "declaracao"
)

// ErrUnknown is returned when an identifier does not name a document type.
var ErrUnknown = errors.New("doctype: unknown document type")

// Binding ties a document type to the identifiers used by the form layer.
type Binding struct {
	Type        Type
	Title       string
	FormID      string
	PanelID     string
	ButtonID    string
	StatusID    string
	OperationID string
}

var bindings = []Binding{
	{Type: Contract, Title: "Contrato de Cessão", FormID: "contratoForm", PanelID: "contrato", ButtonID: "contratoTab", StatusID: "contratoMsg", OperationID: "gerarContrato"},
	{Type: PowerOfAttorney, Title: "Procuração", FormID: "procuracaoForm", PanelID: "procuracao", ButtonID: "procuracaoTab", StatusID: "procuracaoMsg", OperationID: "gerarProcuracao"},
	{Type: Acknowledgment, Title: "Declaração de Ciência", FormID: "cienciaForm", PanelID: "ciencia", ButtonID: "cienciaTab", StatusID: "cienciaMsg", OperationID: "gerarCiencia"},
	{Type: Declaration, Title: "Declaração de Quitação", FormID: "declaracaoForm", PanelID: "declaracao", ButtonID: "declaracaoTab", StatusID: "declaracaoMsg", OperationID: "gerarDeclaracao"},
}

// All returns every document type in display order.
func All() []Type {
	out := make([]Type, 0, len(bindings))
	for _, b := range bindings {
		out = append(out, b.Type)
	}
	return out
}

// Bindings returns a copy of the lookup table in display order.
func Bindings() []Binding {
	return append([]Binding(nil), bindings...)
}

// Parse resolves an identifier to a Type. Matching is case-insensitive and
// ignores surrounding whitespace.
func Parse(raw string) (Type, error) {
	candidate := Type(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := lookup(candidate); ok {
		return candidate, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknown, raw)
}

// Valid reports whether t belongs to the closed set.
func (t Type) Valid() bool {
	_, ok := lookup(t)
	return ok
}

// Binding returns the identifiers bound to t.
func (t Type) Binding() (Binding, error) {
	b, ok := lookup(t)
	if !ok {
		return Binding{}, fmt.Errorf("%w: %q", ErrUnknown, string(t))
	}
	return b, nil
}

// PathSegment is the API path segment, e.g. "contrato" in /gerar/contrato.
func (t Type) PathSegment() string {
	return string(t)
}

func (t Type) String() string {
	return string(t)
}

func lookup(t Type) (Binding, bool) {
	for _, b := range bindings {
		if b.Type == t {
			return b, true
		}
	}
	return Binding{}, false
}
