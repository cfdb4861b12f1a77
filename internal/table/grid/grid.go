// Package grid builds the structural grid of an HTML table: which cell
// occupies each row/column slot once rowspan and colspan are applied.
package grid

import (
	"golang.org/x/net/html"

	"github.com/dshills/tablestorm/internal/dom"
)

// Detail describes one cell's anchor position and spans.
type Detail struct {
	Cell    *html.Node
	Row     int
	Column  int
	RowSpan int
	ColSpan int
}

// LastRow returns the last grid row the cell covers.
func (d Detail) LastRow() int { return d.Row + d.RowSpan - 1 }

// LastColumn returns the last grid column the cell covers.
func (d Detail) LastColumn() int { return d.Column + d.ColSpan - 1 }

// Grid is the slot map of a table.
type Grid struct {
	table   *html.Node
	rows    []*html.Node
	slots   [][]*Detail
	details []Detail
	index   map[*html.Node]int
	columns int
}

// Build scans table rows in document order (thead, tbody, tfoot and direct
// rows) and lays their cells into slots.
func Build(table *html.Node) *Grid {
	g := &Grid{table: table, index: make(map[*html.Node]int)}
	for _, section := range dom.Children(table) {
		switch {
		case dom.IsElement(section, "tr"):
			g.rows = append(g.rows, section)
		case dom.IsElement(section, "thead", "tbody", "tfoot"):
			g.rows = append(g.rows, dom.Children(section, "tr")...)
		}
	}

	g.slots = make([][]*Detail, len(g.rows))
	for r, tr := range g.rows {
		col := 0
		for _, cell := range dom.Children(tr, "td", "th") {
			for g.occupied(r, col) {
				col++
			}
			d := Detail{
				Cell:    cell,
				Row:     r,
				Column:  col,
				RowSpan: span(cell, "rowspan"),
				ColSpan: span(cell, "colspan"),
			}
			// A rowspan can not reach past the last row.
			if d.LastRow() >= len(g.rows) {
				d.RowSpan = len(g.rows) - r
			}
			g.index[cell] = len(g.details)
			g.details = append(g.details, d)
			g.fill(d)
			col += d.ColSpan
		}
	}

	// Pointers into details are only taken once the slice is final.
	for r := range g.slots {
		for c := range g.slots[r] {
			if g.slots[r][c] != nil {
				g.slots[r][c] = &g.details[g.index[g.slots[r][c].Cell]]
			}
		}
	}
	return g
}

// Span limits applied by HTML parsers.
const (
	MaxColSpan = 1000
	MaxRowSpan = 65534
)

func span(cell *html.Node, name string) int {
	n := dom.IntAttr(cell, name, 1)
	if n < 1 {
		return 1
	}
	limit := MaxRowSpan
	if name == "colspan" {
		limit = MaxColSpan
	}
	return min(n, limit)
}

func (g *Grid) occupied(r, c int) bool {
	return c < len(g.slots[r]) && g.slots[r][c] != nil
}

func (g *Grid) fill(d Detail) {
	entry := d
	for r := d.Row; r <= d.LastRow(); r++ {
		for c := d.Column; c <= d.LastColumn(); c++ {
			for len(g.slots[r]) <= c {
				g.slots[r] = append(g.slots[r], nil)
			}
			g.slots[r][c] = &entry
		}
	}
	if d.LastColumn()+1 > g.columns {
		g.columns = d.LastColumn() + 1
	}
}

// Table returns the table element the grid was built from.
func (g *Grid) Table() *html.Node { return g.table }

// Rows returns the number of grid rows.
func (g *Grid) Rows() int { return len(g.rows) }

// Columns returns the number of grid columns.
func (g *Grid) Columns() int { return g.columns }

// Row returns the tr element for grid row r.
func (g *Grid) Row(r int) (*html.Node, bool) {
	if r < 0 || r >= len(g.rows) {
		return nil, false
	}
	return g.rows[r], true
}

// At returns the cell covering slot (r, c).
func (g *Grid) At(r, c int) (Detail, bool) {
	if r < 0 || r >= len(g.slots) || c < 0 || c >= len(g.slots[r]) || g.slots[r][c] == nil {
		return Detail{}, false
	}
	return *g.slots[r][c], true
}

// Find returns the anchor detail of cell.
func (g *Grid) Find(cell *html.Node) (Detail, bool) {
	i, ok := g.index[cell]
	if !ok {
		return Detail{}, false
	}
	return g.details[i], true
}

// Details returns every cell in row-major anchor order.
func (g *Grid) Details() []Detail {
	out := make([]Detail, len(g.details))
	copy(out, g.details)
	return out
}
