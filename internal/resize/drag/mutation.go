package drag

import (
	"golang.org/x/net/html"

	"github.com/dshills/tablestorm/internal/event"
	"github.com/dshills/tablestorm/internal/pointer"
)

// MoveEvent is one relative motion of the drag subject.
type MoveEvent struct {
	Target *html.Node
	Delta  pointer.Point
}

// Mutator receives relative motion from a Dragger.
type Mutator interface {
	Mutate(delta pointer.Point)
}

// Mutation is the single-slot drag subject.
type Mutation struct {
	target *html.Node

	// Drag fires for every motion while a subject is assigned.
	Drag event.Event[MoveEvent]
}

// NewMutation creates an empty mutation.
func NewMutation() *Mutation {
	return &Mutation{}
}

// Assign makes target the drag subject, replacing any previous one.
func (m *Mutation) Assign(target *html.Node) {
	m.target = target
}

// Get returns the current subject.
func (m *Mutation) Get() (*html.Node, bool) {
	return m.target, m.target != nil
}

// Clear releases the subject.
func (m *Mutation) Clear() {
	m.target = nil
}

// Mutate implements Mutator.
func (m *Mutation) Mutate(delta pointer.Point) {
	if m.target == nil {
		return
	}
	m.Drag.Trigger(MoveEvent{Target: m.target, Delta: delta})
}
