// Package status keeps the per-form feedback line shown next to each document
// form: the latest message text plus a severity used for styling.
package status

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-l4doc/pkg/doctype"
)

// Severity selects the styling of a message.
type Severity string

const (
	SeverityNeutral Severity = ""
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

const (
	// ProgressMarker flags transient in-progress notices; those never revert.
	ProgressMarker = "⏳"
	// DefaultRevertAfter is how long success styling stays before reverting.
	DefaultRevertAfter = 5 * time.Second

	baseClass = "message"
)

// Message is what a status region currently shows.
type Message struct {
	Type     doctype.Type
	Region   string
	Text     string
	Severity Severity
	At       time.Time
}

// Class returns the style class list, "message" or "message <severity>".
func (m Message) Class() string {
	if m.Severity == SeverityNeutral {
		return baseClass
	}
	return baseClass + " " + string(m.Severity)
}

// Listener observes every change to any region, including reverts.
type Listener func(Message)

// Option configures a Board.
type Option func(*Board)

// WithClock replaces the wall clock.
func WithClock(clock Clock) Option {
	return func(b *Board) {
		if clock != nil {
			b.clock = clock
		}
	}
}

// WithRevertAfter sets the success styling lifetime.
func WithRevertAfter(d time.Duration) Option {
	return func(b *Board) {
		if d > 0 {
			b.revertAfter = d
		}
	}
}

// WithListener registers a listener at construction.
func WithListener(fn Listener) Option {
	return func(b *Board) {
		if fn != nil {
			b.listeners = append(b.listeners, fn)
		}
	}
}

type region struct {
	id    string
	msg   Message
	timer Timer
	gen   uint64
}

// Board holds one status region per document type. Each region owns at most
// one pending revert timer; a new message cancels it before anything else, so
// an older message can never reset the styling of a newer one.
type Board struct {
	clock       Clock
	revertAfter time.Duration

	mu        sync.Mutex
	regions   map[doctype.Type]*region
	listeners []Listener
}

// NewBoard creates a board with a region for every document type.
func NewBoard(options ...Option) *Board {
	b := &Board{
		clock:       systemClock{},
		revertAfter: DefaultRevertAfter,
		regions:     make(map[doctype.Type]*region),
	}
	for _, binding := range doctype.Bindings() {
		b.regions[binding.Type] = &region{id: binding.StatusID}
	}
	for _, opt := range options {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

// Subscribe adds a listener.
func (b *Board) Subscribe(fn Listener) {
	if fn == nil {
		return
	}
	b.mu.Lock()
	b.listeners = append(b.listeners, fn)
	b.mu.Unlock()
}

// Show replaces the message of t's region. A success message that is not an
// in-progress notice schedules its styling to revert to neutral; the text is
// kept.
func (b *Board) Show(t doctype.Type, text string, severity Severity) (Message, error) {
	b.mu.Lock()
	r, ok := b.regions[t]
	if !ok {
		b.mu.Unlock()
		return Message{}, fmt.Errorf("status: %w: %q", doctype.ErrUnknown, string(t))
	}

	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	r.gen++
	r.msg = Message{
		Type:     t,
		Region:   r.id,
		Text:     text,
		Severity: severity,
		At:       b.clock.Now(),
	}
	if severity == SeveritySuccess && !strings.Contains(text, ProgressMarker) {
		gen := r.gen
		r.timer = b.clock.AfterFunc(b.revertAfter, func() {
			b.revert(t, gen)
		})
	}
	msg := r.msg
	listeners := append([]Listener(nil), b.listeners...)
	b.mu.Unlock()

	notify(listeners, msg)
	return msg, nil
}

// Current returns the message shown for t.
func (b *Board) Current(t doctype.Type) (Message, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	r, ok := b.regions[t]
	if !ok {
		return Message{}, false
	}
	return r.msg, true
}

// Pending reports whether t has a revert scheduled.
func (b *Board) Pending(t doctype.Type) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	r, ok := b.regions[t]
	return ok && r.timer != nil
}

// Close cancels every pending revert.
func (b *Board) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, r := range b.regions {
		if r.timer != nil {
			r.timer.Stop()
			r.timer = nil
		}
		r.gen++
	}
}

func (b *Board) revert(t doctype.Type, gen uint64) {
	b.mu.Lock()
	r := b.regions[t]
	// the generation check covers a timer that fired while Show held the lock
	if r == nil || r.gen != gen {
		b.mu.Unlock()
		return
	}
	r.timer = nil
	r.msg.Severity = SeverityNeutral
	msg := r.msg
	listeners := append([]Listener(nil), b.listeners...)
	b.mu.Unlock()

	notify(listeners, msg)
}

func notify(listeners []Listener, msg Message) {
	for _, fn := range listeners {
		fn(msg)
	}
}
