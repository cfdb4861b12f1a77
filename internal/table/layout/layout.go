// Package layout derives table geometry from inline styles and reports the
// positions resize bars are drawn at.
//
// Rows take their height from the tr's inline height, else from the tallest
// unit-rowspan cell in the row, else from the default. Columns take their
// width from the widest unit-colspan cell anchored in the column, else from
// the default. A table's origin is its own inline left/top.
package layout

import (
	"golang.org/x/net/html"

	"github.com/dshills/tablestorm/internal/dom"
	"github.com/dshills/tablestorm/internal/table/grid"
)

// RowInfo is the bottom edge of one row.
type RowInfo struct {
	Row int
	Y   float64
}

// ColumnInfo is the trailing edge of one column.
type ColumnInfo struct {
	Column int
	X      float64
}

// Box is a rectangle in document pixels.
type Box struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the box.
func (b Box) Contains(x, y float64) bool {
	return x >= b.X && x < b.X+b.Width && y >= b.Y && y < b.Y+b.Height
}

// RowPositions reports where row bars belong.
type RowPositions interface {
	RowEdges(table *html.Node) []RowInfo
}

// ColumnPositions reports where column bars belong.
type ColumnPositions interface {
	ColumnEdges(table *html.Node) []ColumnInfo
}

// Options configures the default track sizes.
type Options struct {
	DefaultRowHeight   float64
	DefaultColumnWidth float64
}

// DefaultOptions returns the default track sizes.
func DefaultOptions() Options {
	return Options{
		DefaultRowHeight:   24,
		DefaultColumnWidth: 80,
	}
}

// Layout is the style-based geometry service. It implements RowPositions
// and ColumnPositions.
type Layout struct {
	opts Options
}

// New creates a layout.
func New(opts Options) *Layout {
	d := DefaultOptions()
	if opts.DefaultRowHeight <= 0 {
		opts.DefaultRowHeight = d.DefaultRowHeight
	}
	if opts.DefaultColumnWidth <= 0 {
		opts.DefaultColumnWidth = d.DefaultColumnWidth
	}
	return &Layout{opts: opts}
}

// RowHeights returns the height of every grid row.
func (l *Layout) RowHeights(g *grid.Grid) []float64 {
	heights := make([]float64, g.Rows())
	for r := range heights {
		tr, _ := g.Row(r)
		if h, ok := dom.PxStyleOK(tr, "height"); ok && h > 0 {
			heights[r] = h
			continue
		}
		for _, d := range g.Details() {
			if d.Row != r || d.RowSpan != 1 {
				continue
			}
			if h, ok := dom.PxStyleOK(d.Cell, "height"); ok {
				heights[r] = max(heights[r], h)
			}
		}
		if heights[r] <= 0 {
			heights[r] = l.opts.DefaultRowHeight
		}
	}
	return heights
}

// ColumnWidths returns the width of every grid column.
func (l *Layout) ColumnWidths(g *grid.Grid) []float64 {
	widths := make([]float64, g.Columns())
	for _, d := range g.Details() {
		if d.ColSpan != 1 {
			continue
		}
		if w, ok := dom.PxStyleOK(d.Cell, "width"); ok {
			widths[d.Column] = max(widths[d.Column], w)
		}
	}
	for c := range widths {
		if widths[c] <= 0 {
			widths[c] = l.opts.DefaultColumnWidth
		}
	}
	return widths
}

// Origin returns the top-left corner of table.
func (l *Layout) Origin(table *html.Node) (x, y float64) {
	return dom.PxStyle(table, "left"), dom.PxStyle(table, "top")
}

// TableBox returns the outer rectangle of table.
func (l *Layout) TableBox(table *html.Node) Box {
	g := grid.Build(table)
	x, y := l.Origin(table)
	return Box{X: x, Y: y, Width: sum(l.ColumnWidths(g)), Height: sum(l.RowHeights(g))}
}

// CellBox returns the rectangle covered by cell, spans included.
func (l *Layout) CellBox(table, cell *html.Node) (Box, bool) {
	g := grid.Build(table)
	d, ok := g.Find(cell)
	if !ok {
		return Box{}, false
	}
	return l.detailBox(table, g, d), true
}

// Cells returns every cell of table with its rectangle.
func (l *Layout) Cells(table *html.Node) []CellBox {
	g := grid.Build(table)
	details := g.Details()
	out := make([]CellBox, 0, len(details))
	for _, d := range details {
		out = append(out, CellBox{Detail: d, Box: l.detailBox(table, g, d)})
	}
	return out
}

// CellBox pairs a grid detail with its rectangle.
type CellBox struct {
	grid.Detail
	Box Box
}

func (l *Layout) detailBox(table *html.Node, g *grid.Grid, d grid.Detail) Box {
	heights := l.RowHeights(g)
	widths := l.ColumnWidths(g)
	x, y := l.Origin(table)
	return Box{
		X:      x + sum(widths[:d.Column]),
		Y:      y + sum(heights[:d.Row]),
		Width:  sum(widths[d.Column : d.LastColumn()+1]),
		Height: sum(heights[d.Row : d.LastRow()+1]),
	}
}

// RowEdges implements RowPositions: one entry per row at its bottom edge.
func (l *Layout) RowEdges(table *html.Node) []RowInfo {
	g := grid.Build(table)
	_, y := l.Origin(table)
	heights := l.RowHeights(g)
	out := make([]RowInfo, len(heights))
	for r, h := range heights {
		y += h
		out[r] = RowInfo{Row: r, Y: y}
	}
	return out
}

// ColumnEdges implements ColumnPositions: one entry per column at its
// right edge.
func (l *Layout) ColumnEdges(table *html.Node) []ColumnInfo {
	g := grid.Build(table)
	x, _ := l.Origin(table)
	widths := l.ColumnWidths(g)
	out := make([]ColumnInfo, len(widths))
	for c, w := range widths {
		x += w
		out[c] = ColumnInfo{Column: c, X: x}
	}
	return out
}

func sum(v []float64) float64 {
	total := 0.0
	for _, f := range v {
		total += f
	}
	return total
}
