package l4doc_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	l4doc "github.com/goliatone/go-l4doc"
	"github.com/goliatone/go-l4doc/pkg/doctype"
	"github.com/goliatone/go-l4doc/pkg/model"
	pkgopenapi "github.com/goliatone/go-l4doc/pkg/openapi"
	"github.com/goliatone/go-l4doc/pkg/testsupport"
)

func TestLoadForms_Bundled(t *testing.T) {
	forms, err := l4doc.LoadForms(context.Background())
	if err != nil {
		t.Fatalf("load forms: %v", err)
	}
	if len(forms) != len(doctype.All()) {
		t.Fatalf("expected %d forms, got %d", len(doctype.All()), len(forms))
	}

	firstFields := map[doctype.Type]string{}
	counts := map[doctype.Type]int{}
	for typ, form := range forms {
		if form.Document != string(typ) {
			t.Errorf("%s: document = %q", typ, form.Document)
		}
		if form.Method != "POST" || form.Endpoint != "/gerar/"+typ.PathSegment() {
			t.Errorf("%s: endpoint = %s %s", typ, form.Method, form.Endpoint)
		}
		firstFields[typ] = form.Fields[0].Name
		counts[typ] = len(form.Fields)
		for _, field := range form.Fields {
			if !field.Required {
				t.Errorf("%s: field %q should be required", typ, field.Name)
			}
		}
	}

	wantFirst := map[doctype.Type]string{
		doctype.Contract:        "cedente_nome",
		doctype.PowerOfAttorney: "outorgante_nome",
		doctype.Acknowledgment:  "cedente2_nome",
		doctype.Declaration:     "decl_nome",
	}
	if diff := cmp.Diff(wantFirst, firstFields); diff != "" {
		t.Fatalf("first fields mismatch (-want +got):\n%s", diff)
	}
	wantCounts := map[doctype.Type]int{
		doctype.Contract:        14,
		doctype.PowerOfAttorney: 12,
		doctype.Acknowledgment:  23,
		doctype.Declaration:     17,
	}
	if diff := cmp.Diff(wantCounts, counts); diff != "" {
		t.Fatalf("field counts mismatch (-want +got):\n%s", diff)
	}

	contract := forms[doctype.Contract]
	bruto, ok := contract.Field("processo_valor_bruto")
	if !ok {
		t.Fatalf("processo_valor_bruto missing")
	}
	if bruto.Type != model.FieldTypeNumber {
		t.Fatalf("processo_valor_bruto type = %s", bruto.Type)
	}
	if got := contract.Fields[len(contract.Fields)-1].Name; got != "processo_valor_liquido" {
		t.Fatalf("last contract field = %q", got)
	}
}

func TestLoadForms_MissingOperation(t *testing.T) {
	const partial = `openapi: 3.0.3
info: {title: partial, version: "1"}
paths:
  /gerar/contrato:
    post:
      operationId: gerarContrato
      requestBody:
        content:
          application/json:
            schema:
              type: object
              properties:
                cedente_nome: {type: string}
      responses:
        "200": {description: ok}
`
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte(partial), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, err := l4doc.LoadForms(context.Background(), l4doc.WithSource(pkgopenapi.SourceFromFile(path)))
	if err == nil {
		t.Fatalf("expected error for missing operations")
	}
	if !strings.Contains(err.Error(), "gerarProcuracao") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNewFormBuilder(t *testing.T) {
	unordered := pkgopenapi.MustNewOperation("gerarContrato", "post", "/gerar/contrato", pkgopenapi.Schema{
		Type:       "object",
		Properties: map[string]pkgopenapi.Schema{"cedente_nome": {Type: "string"}},
	}, nil)
	if _, err := l4doc.NewFormBuilder().Build(unordered); err == nil {
		t.Fatalf("expected unordered field to be rejected")
	}

	ordered := pkgopenapi.MustNewOperation("gerarContrato", "post", "/gerar/contrato", pkgopenapi.Schema{
		Type: "object",
		Properties: map[string]pkgopenapi.Schema{
			"cedente_nome": {Type: "string", Extensions: map[string]any{"x-formgen-order": float64(1)}},
		},
	}, nil)
	ordered.Extensions = map[string]any{"x-formgen-document": "recibo"}
	if _, err := l4doc.NewFormBuilder().Build(ordered); err == nil {
		t.Fatalf("expected unknown document to be rejected")
	}

	ordered.Extensions = map[string]any{"x-formgen-document": "contrato"}
	form, err := l4doc.NewFormBuilder().Build(ordered)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if form.Document != "contrato" {
		t.Fatalf("document = %q", form.Document)
	}
}

type failingBuilder struct{}

var errBuild = errors.New("boom")

func (failingBuilder) Build(pkgopenapi.Operation) (model.FormModel, error) {
	return model.FormModel{}, errBuild
}

func TestLoadForms_BuilderError(t *testing.T) {
	_, err := l4doc.LoadForms(context.Background(), l4doc.WithBuilder(failingBuilder{}))
	if !errors.Is(err, errBuild) {
		t.Fatalf("expected builder error, got %v", err)
	}
}

func TestLoadForms_Golden(t *testing.T) {
	forms, err := l4doc.LoadForms(context.Background())
	if err != nil {
		t.Fatalf("load forms: %v", err)
	}
	got := forms[doctype.PowerOfAttorney]

	golden := filepath.Join("testdata", "golden", "procuracao.form.json")
	testsupport.WriteFormModel(t, golden, got)
	want := testsupport.MustLoadFormModel(t, golden)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("form model mismatch (-want +got):\n%s", diff)
	}
}
