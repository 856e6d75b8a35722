package prompt

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-l4doc/pkg/doctype"
	"github.com/goliatone/go-l4doc/pkg/form"
	"github.com/goliatone/go-l4doc/pkg/model"
)

// stubDriver replays scripted answers. Input answers rejected by the
// validator are recorded and the next scripted answer is tried, as survey
// re-asks on validation failure.
type stubDriver struct {
	inputs       []string
	selectIdx    []int
	confirm      []bool
	inputPos     int
	selectPos    int
	confirmPos   int
	rejected     []string
	defaults     []string
	infoMessages []string
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	s.defaults = append(s.defaults, cfg.Default)
	for {
		if s.inputPos >= len(s.inputs) {
			return "", errors.New("no input scripted")
		}
		val := s.inputs[s.inputPos]
		s.inputPos++
		if cfg.Validator != nil {
			if err := cfg.Validator(val); err != nil {
				s.rejected = append(s.rejected, err.Error())
				continue
			}
		}
		return val, nil
	}
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, _ SelectConfig) (int, error) {
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func procuracaoModel() model.FormModel {
	return model.FormModel{
		OperationID: "gerarProcuracao",
		Document:    "procuracao",
		Fields: []model.Field{
			{Name: "outorgante_nome", Label: "Nome completo (outorgante)", Type: model.FieldTypeString, Required: true},
			{Name: "proc_local", Label: "Local", Type: model.FieldTypeString, Enum: []any{"São Paulo", "Campinas"}},
			{
				Name: "valor", Label: "Valor", Type: model.FieldTypeNumber, Required: true,
				Validations: []model.ValidationRule{{Kind: model.ValidationRuleMin, Params: map[string]string{"value": "0"}}},
			},
		},
	}
}

func TestCollectorFill(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"", "  Maria Souza ", "abc", "-3", "1500.50"},
		selectIdx: []int{1},
	}
	f := form.New("procuracaoForm", procuracaoModel())
	if err := f.Set("outorgante_nome", "Antiga"); err != nil {
		t.Fatalf("set: %v", err)
	}

	c := New(WithPromptDriver(driver))
	if err := c.Fill(context.Background(), f); err != nil {
		t.Fatalf("fill: %v", err)
	}

	want := map[string]string{
		"outorgante_nome": "Maria Souza",
		"proc_local":      "Campinas",
		"valor":           "1500.50",
	}
	if diff := cmp.Diff(want, f.Snapshot().Map()); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"campo obrigatório", "informe um número", "valor mínimo 0"}, driver.rejected); diff != "" {
		t.Fatalf("rejections mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Antiga", ""}, driver.defaults); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestCollectorFill_Aborted(t *testing.T) {
	f := form.New("procuracaoForm", procuracaoModel())
	c := New(WithPromptDriver(abortingDriver{&stubDriver{}}))
	if err := c.Fill(context.Background(), f); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

type abortingDriver struct{ *stubDriver }

func (abortingDriver) Input(context.Context, InputConfig) (string, error) {
	return "", ErrAborted
}

func TestChooseType(t *testing.T) {
	driver := &stubDriver{selectIdx: []int{3, 7}}
	c := New(WithPromptDriver(driver))

	got, err := c.ChooseType(context.Background())
	if err != nil {
		t.Fatalf("choose: %v", err)
	}
	if got != doctype.Declaration {
		t.Fatalf("expected declaracao, got %s", got)
	}
	if _, err := c.ChooseType(context.Background()); err == nil {
		t.Fatalf("expected error for out of range selection")
	}
}

func TestReportValidity(t *testing.T) {
	driver := &stubDriver{}
	c := New(WithPromptDriver(driver))
	c.ReportValidity(context.Background(), "contratoForm", []form.Issue{
		{Field: "cedente_nome", Label: "Nome completo (cedente)", Message: "campo obrigatório"},
		{Field: "cedente_uf", Message: "máximo de 2 caracteres"},
	})
	want := []string{
		"  • Nome completo (cedente): campo obrigatório",
		"  • cedente_uf: máximo de 2 caracteres",
	}
	if diff := cmp.Diff(want, driver.infoMessages); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}
}
