// Package tabs tracks which document form panel and which tab button are
// active. The triggering button is always passed in explicitly.
package tabs

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrUnknownPanel is returned when switching to a panel that was never
	// registered.
	ErrUnknownPanel = errors.New("tabs: unknown panel")
	// ErrUnknownButton is returned when the triggering button is not
	// registered.
	ErrUnknownButton = errors.New("tabs: unknown button")
)

// Switcher holds the active panel/button pair. The zero state has nothing
// active; after a successful Switch exactly one of each is active.
type Switcher struct {
	mu      sync.RWMutex
	panels  []string
	buttons []string
	panel   string
	button  string
}

// New registers the panel and button identifiers.
func New(panels, buttons []string) *Switcher {
	return &Switcher{
		panels:  append([]string(nil), panels...),
		buttons: append([]string(nil), buttons...),
	}
}

// Switch deactivates everything, then activates panel and the button that
// triggered the change. On error the previous state is kept.
func (s *Switcher) Switch(panel, button string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !contains(s.panels, panel) {
		return fmt.Errorf("%w: %q", ErrUnknownPanel, panel)
	}
	if !contains(s.buttons, button) {
		return fmt.Errorf("%w: %q", ErrUnknownButton, button)
	}
	s.panel, s.button = panel, button
	return nil
}

// Active returns the active panel and button ("" when none).
func (s *Switcher) Active() (panel, button string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.panel, s.button
}

// ActivePanels lists panels carrying the active marker.
func (s *Switcher) ActivePanels() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return activeOf(s.panels, s.panel)
}

// ActiveButtons lists buttons carrying the active marker.
func (s *Switcher) ActiveButtons() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return activeOf(s.buttons, s.button)
}

// IsPanelActive reports whether id is the active panel.
func (s *Switcher) IsPanelActive(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return id != "" && s.panel == id
}

func activeOf(ids []string, active string) []string {
	var out []string
	for _, id := range ids {
		if id == active {
			out = append(out, id)
		}
	}
	return out
}

func contains(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
