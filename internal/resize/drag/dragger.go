package drag

import (
	"golang.org/x/net/html"

	"github.com/dshills/tablestorm/internal/event"
	"github.com/dshills/tablestorm/internal/pointer"
)

// Dragger tracks one pointer gesture at a time.
type Dragger struct {
	source  pointer.Source
	mutator Mutator

	enabled   bool
	active    bool
	container *html.Node
	last      pointer.Point
	bindings  []pointer.Binding

	// Start fires when Go begins a gesture.
	Start event.Event[struct{}]
	// Stop fires when an active gesture is released.
	Stop event.Event[struct{}]
}

// NewDragger creates an enabled dragger feeding mutator.
func NewDragger(source pointer.Source, mutator Mutator) *Dragger {
	return &Dragger{
		source:  source,
		mutator: mutator,
		enabled: true,
	}
}

// Go starts a gesture at origin inside container. Motion is measured from
// origin. Go is ignored while disabled or while a gesture is active.
func (d *Dragger) Go(container *html.Node, origin pointer.Point) {
	if !d.enabled || d.active {
		return
	}
	d.active = true
	d.container = container
	d.last = origin
	d.bindings = append(d.bindings,
		d.source.Bind(pointer.KindMove, nil, d.move),
		d.source.Bind(pointer.KindUp, nil, d.release),
	)
	d.Start.Trigger(struct{}{})
}

func (d *Dragger) move(ev pointer.Event) {
	if !d.active {
		return
	}
	delta := ev.Pos.Sub(d.last)
	d.last = ev.Pos
	if delta == (pointer.Point{}) {
		return
	}
	d.mutator.Mutate(delta)
}

func (d *Dragger) release(pointer.Event) {
	if !d.active {
		return
	}
	d.unbind()
	d.Stop.Trigger(struct{}{})
}

func (d *Dragger) unbind() {
	for _, b := range d.bindings {
		b.Unbind()
	}
	d.bindings = nil
	d.active = false
	d.container = nil
}

// IsActive reports whether a gesture is in progress.
func (d *Dragger) IsActive() bool {
	return d.active
}

// Container returns the element the active gesture is scoped to.
func (d *Dragger) Container() (*html.Node, bool) {
	return d.container, d.container != nil
}

// On enables new gestures.
func (d *Dragger) On() {
	d.enabled = true
}

// Off prevents new gestures. An active gesture runs to completion.
func (d *Dragger) Off() {
	d.enabled = false
}

// IsEnabled reports whether Go may start a gesture.
func (d *Dragger) IsEnabled() bool {
	return d.enabled
}

// Destroy abandons any active gesture without publishing Stop and drops
// its pointer listeners. It is safe to call repeatedly.
func (d *Dragger) Destroy() {
	d.unbind()
}
