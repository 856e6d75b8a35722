package tabs

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func newSwitcher() *Switcher {
	return New(
		[]string{"contrato", "procuracao", "ciencia", "declaracao"},
		[]string{"contratoTab", "procuracaoTab", "cienciaTab", "declaracaoTab"},
	)
}

func TestSwitchActivatesExactlyOnePair(t *testing.T) {
	s := newSwitcher()
	if len(s.ActivePanels()) != 0 || len(s.ActiveButtons()) != 0 {
		t.Fatalf("nothing should be active initially")
	}

	for _, step := range []struct{ panel, button string }{
		{"procuracao", "procuracaoTab"},
		{"declaracao", "declaracaoTab"},
		{"contrato", "contratoTab"},
	} {
		if err := s.Switch(step.panel, step.button); err != nil {
			t.Fatalf("switch %s: %v", step.panel, err)
		}
		if diff := cmp.Diff([]string{step.panel}, s.ActivePanels()); diff != "" {
			t.Fatalf("panels mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]string{step.button}, s.ActiveButtons()); diff != "" {
			t.Fatalf("buttons mismatch (-want +got):\n%s", diff)
		}
		if !s.IsPanelActive(step.panel) {
			t.Fatalf("%s should be active", step.panel)
		}
	}
}

func TestSwitchUnknownKeepsState(t *testing.T) {
	s := newSwitcher()
	if err := s.Switch("ciencia", "cienciaTab"); err != nil {
		t.Fatalf("switch: %v", err)
	}
	if err := s.Switch("recibo", "cienciaTab"); !errors.Is(err, ErrUnknownPanel) {
		t.Fatalf("expected ErrUnknownPanel, got %v", err)
	}
	if err := s.Switch("contrato", "menu"); !errors.Is(err, ErrUnknownButton) {
		t.Fatalf("expected ErrUnknownButton, got %v", err)
	}
	panel, button := s.Active()
	if panel != "ciencia" || button != "cienciaTab" {
		t.Fatalf("state changed after failed switch: %s %s", panel, button)
	}
}
