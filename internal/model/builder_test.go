package model

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	pkgopenapi "github.com/goliatone/go-l4doc/pkg/openapi"
)

func ptr[T any](v T) *T { return &v }

func TestBuildOrdersFieldsByExtension(t *testing.T) {
	op := pkgopenapi.MustNewOperation("gerarContrato", "post", "/gerar/contrato", pkgopenapi.Schema{
		Type:     "object",
		Required: []string{"cedente_nome", "processo_valor_bruto"},
		Properties: map[string]pkgopenapi.Schema{
			"processo_valor_bruto": {Type: "number", Minimum: ptr(0.0), Extensions: map[string]any{"x-formgen-order": float64(2)}},
			"cedente_nome": {Type: "string", Extensions: map[string]any{
				"x-formgen": map[string]any{"order": float64(1), "label": "Nome do cedente", "placeholder": "Fulano de Tal"},
			}},
			"zeta_extra":  {Type: "string"},
			"alpha_extra": {Type: "string", MaxLength: ptr(10)},
		},
	}, nil)
	op.Extensions = map[string]any{"x-formgen-document": "contrato"}

	form, err := New(Options{}).Build(op)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	want := FormModel{
		OperationID: "gerarContrato",
		Endpoint:    "/gerar/contrato",
		Method:      "POST",
		Document:    "contrato",
		Fields: []Field{
			{Name: "cedente_nome", Type: FieldTypeString, Required: true, Label: "Nome do cedente", Placeholder: "Fulano de Tal", Order: 1},
			{
				Name: "processo_valor_bruto", Type: FieldTypeNumber, Required: true, Label: "Processo Valor Bruto", Order: 2,
				Validations: []ValidationRule{{Kind: ValidationRuleMin, Params: map[string]string{"value": "0"}}},
			},
			{
				Name: "alpha_extra", Type: FieldTypeString, Label: "Alpha Extra",
				Validations: []ValidationRule{{Kind: ValidationRuleMaxLength, Params: map[string]string{"value": "10"}}},
			},
			{Name: "zeta_extra", Type: FieldTypeString, Label: "Zeta Extra"},
		},
	}
	if diff := cmp.Diff(want, form); diff != "" {
		t.Fatalf("form mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"cedente_nome", "processo_valor_bruto", "alpha_extra", "zeta_extra"}, form.FieldNames()); diff != "" {
		t.Fatalf("field names mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildRejectsNestedFields(t *testing.T) {
	op := pkgopenapi.MustNewOperation("gerarContrato", "post", "/gerar/contrato", pkgopenapi.Schema{
		Type: "object",
		Properties: map[string]pkgopenapi.Schema{
			"endereco": {Type: "object"},
		},
	}, nil)
	if _, err := New(Options{}).Build(op); err == nil {
		t.Fatalf("expected error for nested object field")
	}
}

func TestBuildRejectsInvalidOrder(t *testing.T) {
	op := pkgopenapi.MustNewOperation("gerarContrato", "post", "/gerar/contrato", pkgopenapi.Schema{
		Type: "object",
		Properties: map[string]pkgopenapi.Schema{
			"cedente_nome": {Type: "string", Extensions: map[string]any{"x-formgen-order": "first"}},
		},
	}, nil)
	if _, err := New(Options{}).Build(op); err == nil {
		t.Fatalf("expected error for non-numeric order")
	}
}

func TestBuildRequireOrder(t *testing.T) {
	op := pkgopenapi.MustNewOperation("gerarCiencia", "post", "/gerar/ciencia", pkgopenapi.Schema{
		Type: "object",
		Properties: map[string]pkgopenapi.Schema{
			"cedente2_nome": {Type: "string", Extensions: map[string]any{"x-formgen-order": float64(1)}},
			"cedente2_cpf":  {Type: "string"},
		},
	}, nil)

	if _, err := New(Options{}).Build(op); err != nil {
		t.Fatalf("build without order requirement: %v", err)
	}
	_, err := New(Options{RequireOrder: true}).Build(op)
	if err == nil || !strings.Contains(err.Error(), `"cedente2_cpf": missing x-formgen-order`) {
		t.Fatalf("expected missing order error, got %v", err)
	}
}

func TestBuildRestrictsDocuments(t *testing.T) {
	op := pkgopenapi.MustNewOperation("gerarRecibo", "post", "/gerar/recibo", pkgopenapi.Schema{
		Type:       "object",
		Properties: map[string]pkgopenapi.Schema{"nome": {Type: "string"}},
	}, nil)
	op.Extensions = map[string]any{"x-formgen-document": "recibo"}

	if _, err := New(Options{}).Build(op); err != nil {
		t.Fatalf("build with open document list: %v", err)
	}
	if _, err := New(Options{Documents: []string{"contrato", "procuracao"}}).Build(op); err == nil {
		t.Fatalf("expected unknown document error")
	}
}

func TestBuildHintNamespace(t *testing.T) {
	op := pkgopenapi.MustNewOperation("gerarDeclaracao", "post", "/gerar/declaracao", pkgopenapi.Schema{
		Type: "object",
		Properties: map[string]pkgopenapi.Schema{
			"decl_nome": {Type: "string", Extensions: map[string]any{
				"x-l4-label":      "Nome",
				"x-formgen-label": "ignored",
			}},
		},
	}, nil)

	form, err := New(Options{Namespace: "x-l4"}).Build(op)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if got := form.Fields[0].Label; got != "Nome" {
		t.Fatalf("label = %q, want %q", got, "Nome")
	}
}

func TestDefaultLabeler(t *testing.T) {
	cases := map[string]string{
		"cedente_estado_civil": "Cedente Estado Civil",
		"proc2_numero":         "Proc 2 Numero",
		"dataNasc":             "Data Nasc",
		"":                     "",
	}
	for in, want := range cases {
		if got := DefaultLabeler(in); got != want {
			t.Fatalf("DefaultLabeler(%q) = %q, want %q", in, got, want)
		}
	}
}
