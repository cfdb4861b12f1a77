// Package pointer defines the pointer event vocabulary consumed by the
// resize manager and an in-process hub that routes events to bound
// listeners.
package pointer

import (
	"golang.org/x/net/html"

	"github.com/dshills/tablestorm/internal/dom"
)

// Kind is the type of pointer event.
type Kind uint8

const (
	// KindDown is a button press.
	KindDown Kind = iota
	// KindMove is pointer motion.
	KindMove
	// KindUp is a button release.
	KindUp
	// KindOver is pointer motion onto an element (hover).
	KindOver
)

// String returns a string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindDown:
		return "down"
	case KindMove:
		return "move"
	case KindUp:
		return "up"
	case KindOver:
		return "over"
	default:
		return "unknown"
	}
}

// Button represents a pointer button.
type Button uint8

const (
	// ButtonNone indicates no button.
	ButtonNone Button = iota
	// ButtonLeft is the primary button.
	ButtonLeft
	// ButtonMiddle is the middle button.
	ButtonMiddle
	// ButtonRight is the secondary button.
	ButtonRight
)

// String returns a string representation of the button.
func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonMiddle:
		return "middle"
	case ButtonRight:
		return "right"
	default:
		return "none"
	}
}

// Point is a position in document pixels.
type Point struct {
	X, Y float64
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Event is one pointer event.
type Event struct {
	Kind   Kind
	Target *html.Node
	Pos    Point
	Button Button
}

// Handler receives pointer events.
type Handler func(Event)

// Binding is a registered listener. Unbind is idempotent.
type Binding interface {
	Unbind()
}

// Source delivers pointer events to listeners.
//
// A listener bound with a scope only receives events whose target lies
// inside scope. A nil scope captures every event of that kind.
type Source interface {
	Bind(kind Kind, scope *html.Node, h Handler) Binding
}

type listener struct {
	hub   *Hub
	kind  Kind
	scope *html.Node
	fn    Handler
	bound bool
}

func (l *listener) Unbind() {
	if !l.bound {
		return
	}
	l.bound = false
	l.hub.remove(l)
}

// Hub is a Source fed by Dispatch. It is not safe for concurrent use;
// dispatch from the UI goroutine.
type Hub struct {
	listeners []*listener
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{}
}

// Bind implements Source.
func (h *Hub) Bind(kind Kind, scope *html.Node, fn Handler) Binding {
	l := &listener{hub: h, kind: kind, scope: scope, fn: fn, bound: fn != nil}
	if l.bound {
		h.listeners = append(h.listeners, l)
	}
	return l
}

// Dispatch delivers ev to every matching listener in bind order.
func (h *Hub) Dispatch(ev Event) {
	snapshot := make([]*listener, len(h.listeners))
	copy(snapshot, h.listeners)
	for _, l := range snapshot {
		if !l.bound || l.kind != ev.Kind {
			continue
		}
		if l.scope != nil && !dom.Contains(l.scope, ev.Target) {
			continue
		}
		l.fn(ev)
	}
}

// Len returns the number of bound listeners.
func (h *Hub) Len() int {
	return len(h.listeners)
}

func (h *Hub) remove(target *listener) {
	for i, l := range h.listeners {
		if l == target {
			h.listeners = append(h.listeners[:i], h.listeners[i+1:]...)
			return
		}
	}
}
