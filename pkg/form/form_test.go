package form

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-l4doc/pkg/model"
)

func contractModel() model.FormModel {
	return model.FormModel{
		OperationID: "gerarContrato",
		Endpoint:    "/gerar/contrato",
		Method:      "POST",
		Fields: []model.Field{
			{Name: "cedente_nome", Type: model.FieldTypeString, Required: true, Label: "Nome"},
			{Name: "cedente_cpf", Type: model.FieldTypeString, Required: true, Label: "CPF", Validations: []model.ValidationRule{
				{Kind: model.ValidationRulePattern, Params: map[string]string{"pattern": `\d{3}\.\d{3}\.\d{3}-\d{2}`}},
			}},
			{Name: "cedente_uf", Type: model.FieldTypeString, Label: "UF", Default: "SP", Validations: []model.ValidationRule{
				{Kind: model.ValidationRuleMaxLength, Params: map[string]string{"value": "2"}},
			}},
			{Name: "processo_valor_bruto", Type: model.FieldTypeNumber, Required: true, Label: "Valor bruto", Validations: []model.ValidationRule{
				{Kind: model.ValidationRuleMin, Params: map[string]string{"value": "0", "exclusive": "true"}},
			}},
		},
	}
}

func TestSnapshotKeepsFieldOrder(t *testing.T) {
	f := New("contratoForm", contractModel())
	if err := f.Fill(map[string]string{
		"processo_valor_bruto": "1000.50",
		"cedente_nome":         "Maria da Silva",
	}); err != nil {
		t.Fatalf("fill: %v", err)
	}

	rec := f.Snapshot()
	want := []Entry{
		{Name: "cedente_nome", Value: "Maria da Silva"},
		{Name: "cedente_cpf", Value: ""},
		{Name: "cedente_uf", Value: "SP"},
		{Name: "processo_valor_bruto", Value: "1000.50"},
	}
	if diff := cmp.Diff(want, rec.Entries()); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}

	first, ok := rec.First()
	if !ok || first.Value != "Maria da Silva" {
		t.Fatalf("unexpected first entry %+v", first)
	}

	raw, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	const wantJSON = `{"cedente_nome":"Maria da Silva","cedente_cpf":"","cedente_uf":"SP","processo_valor_bruto":"1000.50"}`
	if string(raw) != wantJSON {
		t.Fatalf("unexpected json\nwant %s\n got %s", wantJSON, raw)
	}
}

func TestFillRejectsUnknownFields(t *testing.T) {
	f := New("contratoForm", contractModel())
	err := f.Fill(map[string]string{"cedente_nome": "Ana", "apelido": "x"})
	if !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if f.Value("cedente_nome") != "" {
		t.Fatalf("fill must not apply partial values")
	}
	if err := f.Set("apelido", "x"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField from Set, got %v", err)
	}
}

func TestResetRestoresDefaults(t *testing.T) {
	f := New("contratoForm", contractModel())
	_ = f.Set("cedente_uf", "RJ")
	_ = f.Set("cedente_nome", "Ana")
	f.Reset()
	if f.Value("cedente_uf") != "SP" || f.Value("cedente_nome") != "" {
		t.Fatalf("unexpected values after reset: uf=%q nome=%q", f.Value("cedente_uf"), f.Value("cedente_nome"))
	}
}

func TestConstraintValidator(t *testing.T) {
	v := NewConstraintValidator()
	m := contractModel()

	valid := RecordOf(
		Entry{Name: "cedente_nome", Value: "Maria"},
		Entry{Name: "cedente_cpf", Value: "123.456.789-00"},
		Entry{Name: "cedente_uf", Value: "SP"},
		Entry{Name: "processo_valor_bruto", Value: "10"},
	)
	if issues := v.CheckValidity(context.Background(), m, valid); len(issues) != 0 {
		t.Fatalf("expected valid record, got %+v", issues)
	}

	invalid := RecordOf(
		Entry{Name: "cedente_nome", Value: "   "},
		Entry{Name: "cedente_cpf", Value: "12345678900"},
		Entry{Name: "cedente_uf", Value: "São Paulo"},
		Entry{Name: "processo_valor_bruto", Value: "0"},
	)
	want := []Issue{
		{Field: "cedente_nome", Label: "Nome", Message: "campo obrigatório"},
		{Field: "cedente_cpf", Label: "CPF", Message: "formato inválido"},
		{Field: "cedente_uf", Label: "UF", Message: "máximo de 2 caracteres"},
		{Field: "processo_valor_bruto", Label: "Valor bruto", Message: "valor mínimo 0"},
	}
	if diff := cmp.Diff(want, v.CheckValidity(context.Background(), m, invalid)); diff != "" {
		t.Fatalf("issues mismatch (-want +got):\n%s", diff)
	}

	notNumber := RecordOf(
		Entry{Name: "cedente_nome", Value: "Maria"},
		Entry{Name: "cedente_cpf", Value: "123.456.789-00"},
		Entry{Name: "processo_valor_bruto", Value: "mil"},
	)
	issues := v.CheckValidity(context.Background(), m, notNumber)
	if len(issues) != 1 || issues[0].Message != "informe um número" {
		t.Fatalf("unexpected issues %+v", issues)
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{FormID: "contratoForm", Issues: []Issue{{Field: "cedente_nome", Message: "campo obrigatório"}}}
	if got := err.Error(); got != "form: contratoForm is invalid: cedente_nome: campo obrigatório" {
		t.Fatalf("unexpected error text %q", got)
	}
}
