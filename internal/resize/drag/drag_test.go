package drag

import (
	"testing"

	"github.com/dshills/tablestorm/internal/dom"
	"github.com/dshills/tablestorm/internal/pointer"
)

type recorder struct {
	deltas []pointer.Point
}

func (r *recorder) Mutate(d pointer.Point) { r.deltas = append(r.deltas, d) }

func (r *recorder) total() pointer.Point {
	var sum pointer.Point
	for _, d := range r.deltas {
		sum.X += d.X
		sum.Y += d.Y
	}
	return sum
}

func TestMutationSlot(t *testing.T) {
	m := NewMutation()
	if _, ok := m.Get(); ok {
		t.Fatal("new mutation should be empty")
	}

	a, b := dom.NewElement("div"), dom.NewElement("div")
	m.Assign(a)
	m.Assign(b)
	if got, ok := m.Get(); !ok || got != b {
		t.Errorf("Get() = %v, want second target", got)
	}

	var events []MoveEvent
	m.Drag.Bind(func(e MoveEvent) { events = append(events, e) })
	m.Mutate(pointer.Point{X: 1})
	if len(events) != 1 || events[0].Target != b {
		t.Errorf("Drag events = %+v", events)
	}

	m.Clear()
	m.Mutate(pointer.Point{X: 1})
	if len(events) != 1 {
		t.Error("Mutate without subject should not publish")
	}
}

func TestDraggerDeltas(t *testing.T) {
	hub := pointer.NewHub()
	rec := &recorder{}
	d := NewDragger(hub, rec)

	starts, stops := 0, 0
	d.Start.Bind(func(struct{}) { starts++ })
	d.Stop.Bind(func(struct{}) { stops++ })

	container := dom.NewElement("div")
	d.Go(container, pointer.Point{X: 100, Y: 50})
	if !d.IsActive() || hub.Len() != 2 {
		t.Fatalf("active = %v, listeners = %d", d.IsActive(), hub.Len())
	}
	if c, ok := d.Container(); !ok || c != container {
		t.Error("Container() should report the gesture scope")
	}

	for _, p := range []pointer.Point{{X: 103, Y: 50}, {X: 103, Y: 50}, {X: 110, Y: 44}} {
		hub.Dispatch(pointer.Event{Kind: pointer.KindMove, Pos: p})
	}
	hub.Dispatch(pointer.Event{Kind: pointer.KindUp})

	if len(rec.deltas) != 2 {
		t.Errorf("deltas = %v, want zero motion skipped", rec.deltas)
	}
	if got := rec.total(); got != (pointer.Point{X: 10, Y: -6}) {
		t.Errorf("total delta = %+v, want {10 -6}", got)
	}
	if starts != 1 || stops != 1 {
		t.Errorf("starts = %d, stops = %d, want 1, 1", starts, stops)
	}
	if d.IsActive() || hub.Len() != 0 {
		t.Errorf("after release: active = %v, listeners = %d", d.IsActive(), hub.Len())
	}

	hub.Dispatch(pointer.Event{Kind: pointer.KindUp})
	if stops != 1 {
		t.Error("release without gesture should not publish Stop")
	}
}

func TestDraggerGoTwice(t *testing.T) {
	hub := pointer.NewHub()
	d := NewDragger(hub, &recorder{})
	d.Go(nil, pointer.Point{})
	d.Go(nil, pointer.Point{})
	if hub.Len() != 2 {
		t.Errorf("listeners = %d, want 2", hub.Len())
	}
}

func TestDraggerOff(t *testing.T) {
	hub := pointer.NewHub()
	d := NewDragger(hub, &recorder{})

	d.Off()
	d.Go(nil, pointer.Point{})
	if d.IsActive() || d.IsEnabled() {
		t.Error("disabled dragger should not start")
	}
	d.On()
	d.Go(nil, pointer.Point{})
	if !d.IsActive() {
		t.Error("re-enabled dragger should start")
	}
}

func TestDraggerDestroy(t *testing.T) {
	hub := pointer.NewHub()
	rec := &recorder{}
	d := NewDragger(hub, rec)
	stops := 0
	d.Stop.Bind(func(struct{}) { stops++ })

	d.Go(nil, pointer.Point{})
	d.Destroy()
	d.Destroy()
	hub.Dispatch(pointer.Event{Kind: pointer.KindMove, Pos: pointer.Point{X: 5}})
	hub.Dispatch(pointer.Event{Kind: pointer.KindUp})

	if stops != 0 || len(rec.deltas) != 0 || hub.Len() != 0 {
		t.Errorf("after Destroy: stops = %d, deltas = %v, listeners = %d", stops, rec.deltas, hub.Len())
	}
}
