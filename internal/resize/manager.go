package resize

import (
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/net/html"

	"github.com/dshills/tablestorm/internal/dom"
	"github.com/dshills/tablestorm/internal/event"
	"github.com/dshills/tablestorm/internal/logging"
	"github.com/dshills/tablestorm/internal/pointer"
	"github.com/dshills/tablestorm/internal/resize/bars"
	"github.com/dshills/tablestorm/internal/resize/drag"
)

// HoverState is the manager's hover tracking state.
type HoverState uint8

const (
	// HoverIdle means no table is under the pointer.
	HoverIdle HoverState = iota
	// HoverTable means the bars belong to the hovered table.
	HoverTable
)

// String returns a string representation of the state.
func (s HoverState) String() string {
	if s == HoverTable {
		return "hovering-table"
	}
	return "idle"
}

// DefaultDraggingOpacity is applied to the bar being dragged.
const DefaultDraggingOpacity = "0.2"

// session is the state of one bar drag, from press to release.
type session struct {
	id          string
	bar         *html.Node
	orientation bars.Orientation
	index       int
	initial     float64
}

// Manager owns the resize bars of one editable view.
type Manager struct {
	wire    bars.Wire
	geo     bars.Geometry
	styles  bars.Styles
	opacity string
	logger  *slog.Logger

	mutation *drag.Mutation
	dragger  *drag.Dragger

	hover   *html.Node
	session *session

	bindings  []pointer.Binding
	internal  event.Group
	events    Events
	destroyed bool
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithStyles sets the bar class prefix and thickness.
func WithStyles(s bars.Styles) Option {
	return func(m *Manager) {
		m.styles = s
	}
}

// WithDraggingOpacity sets the CSS opacity of the bar being dragged.
func WithDraggingOpacity(opacity string) Option {
	return func(m *Manager) {
		m.opacity = opacity
	}
}

// New creates a manager and binds its pointer listeners: presses on the
// wire's parent, hover on the wire's view.
func New(wire bars.Wire, source pointer.Source, geo bars.Geometry, opts ...Option) *Manager {
	m := &Manager{
		wire:     wire,
		geo:      geo,
		styles:   bars.DefaultStyles(),
		opacity:  DefaultDraggingOpacity,
		logger:   logging.Discard(),
		mutation: drag.NewMutation(),
	}
	for _, opt := range opts {
		opt(m)
	}

	m.dragger = drag.NewDragger(source, m.mutation)
	m.internal.Add(
		m.mutation.Drag.Bind(m.reposition),
		m.dragger.Stop.Bind(func(struct{}) { m.commit() }),
	)
	m.bindings = append(m.bindings,
		source.Bind(pointer.KindDown, wire.Parent, m.press),
		source.Bind(pointer.KindOver, wire.View, m.over),
	)
	return m
}

// Events returns the notification channels.
func (m *Manager) Events() *Events {
	return &m.events
}

// press starts a drag when a bar is pressed.
func (m *Manager) press(ev pointer.Event) {
	if ev.Button != pointer.ButtonLeft && ev.Button != pointer.ButtonNone {
		return
	}
	if m.session != nil || !m.dragger.IsEnabled() {
		return
	}
	o, index, ok := bars.Classify(ev.Target, m.styles)
	if !ok {
		return
	}

	m.events.StartAdjust.Trigger(StartAdjust{})

	bar := ev.Target
	m.mutation.Assign(bar)
	m.session = &session{
		id:          uuid.NewString(),
		bar:         bar,
		orientation: o,
		index:       index,
		initial:     dom.PxStyle(bar, o.Offset()),
	}
	dom.AddClass(bar, m.styles.DraggingClass())
	dom.SetStyle(bar, "opacity", m.opacity)
	m.dragger.Go(m.wire.Parent, ev.Pos)

	m.logger.Debug("resize drag started",
		"session", m.session.id,
		"orientation", o.String(),
		"index", index,
		"initial", m.session.initial)
}

// reposition moves the dragged bar in lock-step with the pointer.
func (m *Manager) reposition(e drag.MoveEvent) {
	o, _, ok := bars.Classify(e.Target, m.styles)
	if !ok {
		return
	}
	step := e.Delta.Y
	if o == bars.Column {
		step = e.Delta.X
	}
	dom.SetPxStyle(e.Target, o.Offset(), dom.PxStyle(e.Target, o.Offset())+step)
}

// commit publishes the adjustment of a released bar.
func (m *Manager) commit() {
	s := m.session
	m.session = nil
	target, ok := m.mutation.Get()
	m.mutation.Clear()
	if !ok || s == nil || target != s.bar {
		return
	}

	table := m.hover
	if table == nil {
		m.logger.Debug("resize drag released without a table", "session", s.id)
		return
	}

	delta := dom.PxStyle(target, s.orientation.Offset()) - s.initial
	m.logger.Debug("resize drag released",
		"session", s.id,
		"orientation", s.orientation.String(),
		"index", s.index,
		"delta", delta)

	switch s.orientation {
	case bars.Row:
		m.events.AdjustHeight.Trigger(AdjustHeight{Table: table, Delta: delta, Row: s.index})
	case bars.Column:
		m.events.AdjustWidth.Trigger(AdjustWidth{Table: table, Delta: delta, Column: s.index})
	}
	m.Refresh(table)
}

// over tracks the table under the pointer.
func (m *Manager) over(ev pointer.Event) {
	if m.session != nil {
		return
	}
	if _, _, isBar := bars.Classify(ev.Target, m.styles); isBar {
		return
	}
	table, ok := m.editableTable(ev.Target)
	if !ok {
		if dom.InBody(ev.Target) {
			m.Leave()
		}
		return
	}
	if m.hover != table {
		m.logger.Debug("hovering table", "state", HoverTable.String())
	}
	m.hover = table
	m.Refresh(table)
}

// editableTable finds the nearest table around target that sits inside an
// editable region of the view.
func (m *Manager) editableTable(target *html.Node) (*html.Node, bool) {
	isRoot := dom.Is(m.wire.View)
	table, ok := dom.Closest(target, dom.Tag("table"), isRoot)
	if !ok {
		return nil, false
	}
	editable, ok := dom.ClosestContentEditable(table, isRoot)
	if !ok || !dom.IsContentEditableTrue(editable) {
		return nil, false
	}
	return table, true
}

// Leave moves the manager to Idle and removes the bars. It is ignored
// while a bar is being dragged.
func (m *Manager) Leave() {
	if m.session != nil {
		return
	}
	if m.hover != nil {
		m.logger.Debug("left table", "state", HoverIdle.String())
	}
	m.hover = nil
	bars.Destroy(m.wire, m.styles)
}

// State returns the hover state.
func (m *Manager) State() HoverState {
	if m.hover != nil {
		return HoverTable
	}
	return HoverIdle
}

// Hovered returns the table the bars belong to.
func (m *Manager) Hovered() (*html.Node, bool) {
	return m.hover, m.hover != nil
}

// Dragging returns the bar being dragged.
func (m *Manager) Dragging() (*html.Node, bool) {
	if m.session == nil {
		return nil, false
	}
	return m.session.bar, true
}

// Refresh redraws the bars of table from its current geometry.
func (m *Manager) Refresh(table *html.Node) {
	if m.destroyed {
		return
	}
	bars.Refresh(m.wire, table, m.geo, m.styles)
}

// HideBars hides the bars without removing them.
func (m *Manager) HideBars() {
	bars.Hide(m.wire, m.styles)
}

// ShowBars reveals hidden bars.
func (m *Manager) ShowBars() {
	bars.Show(m.wire, m.styles)
}

// On enables dragging.
func (m *Manager) On() {
	m.dragger.On()
}

// Off disables dragging; hover tracking continues.
func (m *Manager) Off() {
	m.dragger.Off()
}

// Destroy unbinds every listener, abandons an active drag without rolling
// it back, and removes the bars. It is safe to call more than once.
func (m *Manager) Destroy() {
	if m.destroyed {
		return
	}
	m.destroyed = true
	for _, b := range m.bindings {
		b.Unbind()
	}
	m.bindings = nil
	m.dragger.Destroy()
	m.internal.CancelAll()
	m.mutation.Clear()
	m.session = nil
	m.hover = nil
	bars.Destroy(m.wire, m.styles)
}
