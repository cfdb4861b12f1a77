// Package bars creates, repositions and removes the resize bar elements of
// a table.
package bars

import (
	"strconv"

	"golang.org/x/net/html"

	"github.com/dshills/tablestorm/internal/dom"
	"github.com/dshills/tablestorm/internal/table/layout"
)

// Orientation tells row bars from column bars.
type Orientation uint8

const (
	// Row bars sit on a row's bottom edge and adjust its height.
	Row Orientation = iota
	// Column bars sit on a column's right edge and adjust its width.
	Column
)

// String returns a string representation of the orientation.
func (o Orientation) String() string {
	if o == Column {
		return "column"
	}
	return "row"
}

// Offset returns the style property a bar of this orientation moves along.
func (o Orientation) Offset() string {
	if o == Column {
		return "left"
	}
	return "top"
}

// Attr returns the index attribute of a bar of this orientation.
func (o Orientation) Attr() string {
	if o == Column {
		return "data-column"
	}
	return "data-row"
}

// Wire ties the bars to a document: bars are children of Parent and hover
// tracking is scoped to View.
type Wire struct {
	Parent *html.Node
	View   *html.Node
}

// Styles names the bar classes and sizes.
type Styles struct {
	Prefix    string
	Thickness float64
}

// DefaultStyles returns the default bar styling.
func DefaultStyles() Styles {
	return Styles{Prefix: "ts", Thickness: 7}
}

func (s Styles) class(name string) string { return s.Prefix + "-resizer-" + name }

// BarClass is carried by every bar.
func (s Styles) BarClass() string { return s.class("bar") }

// RowsClass is carried by row bars.
func (s Styles) RowsClass() string { return s.class("rows") }

// ColumnsClass is carried by column bars.
func (s Styles) ColumnsClass() string { return s.class("cols") }

// DraggingClass marks the bar being dragged.
func (s Styles) DraggingClass() string { return s.class("bar-dragging") }

// Geometry is the layout service the bars are positioned from.
type Geometry interface {
	layout.RowPositions
	layout.ColumnPositions
	TableBox(table *html.Node) layout.Box
}

// Refresh replaces the bars of wire with one bar per row edge and one bar
// per column edge of table.
func Refresh(w Wire, table *html.Node, geo Geometry, s Styles) {
	Destroy(w, s)
	if w.Parent == nil || table == nil {
		return
	}

	box := geo.TableBox(table)
	half := s.Thickness / 2
	for _, r := range geo.RowEdges(table) {
		bar := newBar(s, Row, r.Row)
		dom.SetPxStyle(bar, "left", box.X)
		dom.SetPxStyle(bar, "top", r.Y-half)
		dom.SetPxStyle(bar, "width", box.Width)
		dom.SetPxStyle(bar, "height", s.Thickness)
		w.Parent.AppendChild(bar)
	}
	for _, c := range geo.ColumnEdges(table) {
		bar := newBar(s, Column, c.Column)
		dom.SetPxStyle(bar, "left", c.X-half)
		dom.SetPxStyle(bar, "top", box.Y)
		dom.SetPxStyle(bar, "width", s.Thickness)
		dom.SetPxStyle(bar, "height", box.Height)
		w.Parent.AppendChild(bar)
	}
}

func newBar(s Styles, o Orientation, index int) *html.Node {
	bar := dom.NewElement("div")
	dom.AddClass(bar, s.BarClass())
	if o == Column {
		dom.AddClass(bar, s.ColumnsClass())
	} else {
		dom.AddClass(bar, s.RowsClass())
	}
	dom.SetAttr(bar, o.Attr(), strconv.Itoa(index))
	dom.SetStyle(bar, "position", "absolute")
	return bar
}

// All returns the bars currently attached to wire.
func All(w Wire, s Styles) []*html.Node {
	if w.Parent == nil {
		return nil
	}
	return dom.QueryAll(w.Parent, dom.ClassQuery(s.BarClass()))
}

// Destroy removes every bar from wire.
func Destroy(w Wire, s Styles) {
	for _, bar := range All(w, s) {
		dom.Detach(bar)
	}
}

// Hide makes every bar invisible without removing it.
func Hide(w Wire, s Styles) {
	for _, bar := range All(w, s) {
		dom.SetStyle(bar, "display", "none")
	}
}

// Show reverses Hide.
func Show(w Wire, s Styles) {
	for _, bar := range All(w, s) {
		dom.RemoveStyle(bar, "display")
	}
}

// IsRowBar reports whether n is a row bar.
func IsRowBar(n *html.Node, s Styles) bool {
	return dom.HasClass(n, s.RowsClass()) && dom.HasAttr(n, Row.Attr())
}

// IsColumnBar reports whether n is a column bar.
func IsColumnBar(n *html.Node, s Styles) bool {
	return dom.HasClass(n, s.ColumnsClass()) && dom.HasAttr(n, Column.Attr())
}

// Classify returns the orientation and index of a bar element.
func Classify(n *html.Node, s Styles) (Orientation, int, bool) {
	var o Orientation
	switch {
	case IsRowBar(n, s):
		o = Row
	case IsColumnBar(n, s):
		o = Column
	default:
		return 0, 0, false
	}
	raw, _ := dom.Attr(n, o.Attr())
	index, ok := dom.ParseInt(raw)
	if !ok {
		return 0, 0, false
	}
	return o, index, true
}
