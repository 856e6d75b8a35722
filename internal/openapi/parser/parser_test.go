package parser

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	pkgopenapi "github.com/goliatone/go-l4doc/pkg/openapi"
)

const generateDocument = `
openapi: 3.0.3
info:
  title: Docs
  version: 1.0.0
paths:
  /gerar/contrato:
    post:
      operationId: gerarContrato
      summary: Contrato de cessão
      x-formgen-document: contrato
      requestBody:
        required: true
        content:
          application/json:
            schema:
              type: object
              required: [cedente_nome]
              properties:
                cedente_nome:
                  type: string
                  x-formgen-order: 1
                  x-formgen-label: Nome
                  x-vendor-ignored: true
                processo_valor_bruto:
                  type: number
                  minimum: 0
                  x-formgen-order: 2
      responses:
        "200":
          description: Documento gerado
          content:
            application/vnd.openxmlformats-officedocument.wordprocessingml.document:
              schema:
                type: string
                format: binary
        "500":
          description: Falha
          content:
            application/json:
              schema:
                type: object
                properties:
                  detail:
                    type: string
`

func TestOperationsExtractsRequestBodyAndExtensions(t *testing.T) {
	doc := pkgopenapi.MustNewDocument(pkgopenapi.SourceFromFS("openapi.yaml"), []byte(generateDocument))
	p := New(pkgopenapi.NewParserOptions())

	ops, err := p.Operations(context.Background(), doc)
	if err != nil {
		t.Fatalf("operations: %v", err)
	}
	op, ok := ops["gerarContrato"]
	if !ok {
		t.Fatalf("expected gerarContrato, got %v", keys(ops))
	}
	if op.Method != "POST" || op.Path != "/gerar/contrato" {
		t.Fatalf("unexpected method/path %s %s", op.Method, op.Path)
	}
	if diff := cmp.Diff(map[string]any{"x-formgen-document": "contrato"}, op.Extensions); diff != "" {
		t.Fatalf("operation extensions mismatch (-want +got):\n%s", diff)
	}

	body := op.RequestBody
	if diff := cmp.Diff([]string{"cedente_nome"}, body.Required); diff != "" {
		t.Fatalf("required mismatch (-want +got):\n%s", diff)
	}
	nome := body.Properties["cedente_nome"]
	wantExt := map[string]any{"x-formgen-order": float64(1), "x-formgen-label": "Nome"}
	if diff := cmp.Diff(wantExt, nome.Extensions); diff != "" {
		t.Fatalf("property extensions mismatch (-want +got):\n%s", diff)
	}
	valor := body.Properties["processo_valor_bruto"]
	if valor.Type != "number" || valor.Minimum == nil || *valor.Minimum != 0 {
		t.Fatalf("unexpected numeric schema %+v", valor)
	}

	if !op.HasResponse("200") || !op.HasResponse("500") {
		t.Fatalf("expected 200 and 500 responses, got %v", op.Responses)
	}
	if op.Responses["200"].Format != "binary" {
		t.Fatalf("expected binary success payload, got %q", op.Responses["200"].Format)
	}
}

func TestOperationsRejectsEmptyPaths(t *testing.T) {
	doc := pkgopenapi.MustNewDocument(pkgopenapi.SourceFromFS("openapi.yaml"), []byte("openapi: 3.0.0\ninfo: {title: t, version: '1'}\npaths: {}\n"))

	if _, err := New(pkgopenapi.NewParserOptions()).Operations(context.Background(), doc); err == nil {
		t.Fatalf("expected error for document without paths")
	}

	partial := New(pkgopenapi.NewParserOptions(pkgopenapi.WithPartialDocuments(true)))
	ops, err := partial.Operations(context.Background(), doc)
	if err != nil {
		t.Fatalf("partial operations: %v", err)
	}
	if len(ops) != 0 {
		t.Fatalf("expected no operations, got %d", len(ops))
	}
}

func TestOperationsHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	doc := pkgopenapi.MustNewDocument(pkgopenapi.SourceFromFS("openapi.yaml"), []byte(generateDocument))
	if _, err := New(pkgopenapi.NewParserOptions()).Operations(ctx, doc); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestOperationsRequiredOperations(t *testing.T) {
	doc := pkgopenapi.MustNewDocument(pkgopenapi.SourceFromFS("openapi.yaml"), []byte(generateDocument))

	p := New(pkgopenapi.NewParserOptions(pkgopenapi.WithRequiredOperations("gerarContrato", "gerarProcuracao", "gerarCiencia")))
	_, err := p.Operations(context.Background(), doc)
	if err == nil {
		t.Fatalf("expected missing operations error")
	}
	if !strings.Contains(err.Error(), "missing operations gerarCiencia, gerarProcuracao") {
		t.Fatalf("unexpected error %v", err)
	}

	present := New(pkgopenapi.NewParserOptions(pkgopenapi.WithRequiredOperations("gerarContrato")))
	if _, err := present.Operations(context.Background(), doc); err != nil {
		t.Fatalf("operations: %v", err)
	}
}

func TestOperationsRequestMediaType(t *testing.T) {
	doc := pkgopenapi.MustNewDocument(pkgopenapi.SourceFromFS("openapi.yaml"), []byte(generateDocument))

	p := New(pkgopenapi.NewParserOptions(pkgopenapi.WithRequestMediaType("multipart/form-data")))
	ops, err := p.Operations(context.Background(), doc)
	if err != nil {
		t.Fatalf("operations: %v", err)
	}
	if props := ops["gerarContrato"].RequestBody.Properties; len(props) != 0 {
		t.Fatalf("expected no form-data schema, got %v", props)
	}
}

func TestOperationsExtensionNamespace(t *testing.T) {
	doc := pkgopenapi.MustNewDocument(pkgopenapi.SourceFromFS("openapi.yaml"), []byte(generateDocument))

	p := New(pkgopenapi.NewParserOptions(pkgopenapi.WithExtensionNamespace("x-vendor")))
	ops, err := p.Operations(context.Background(), doc)
	if err != nil {
		t.Fatalf("operations: %v", err)
	}
	op := ops["gerarContrato"]
	if op.Extensions != nil {
		t.Fatalf("expected x-formgen operation hints to be dropped, got %v", op.Extensions)
	}
	want := map[string]any{"x-vendor-ignored": true}
	if diff := cmp.Diff(want, op.RequestBody.Properties["cedente_nome"].Extensions); diff != "" {
		t.Fatalf("extensions mismatch (-want +got):\n%s", diff)
	}
}

func keys(m map[string]pkgopenapi.Operation) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
