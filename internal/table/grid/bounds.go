package grid

import (
	"golang.org/x/net/html"

	"github.com/dshills/tablestorm/internal/dom"
)

// Bounds is an inclusive rectangle of grid slots.
type Bounds struct {
	StartRow     int
	StartColumn  int
	FinishRow    int
	FinishColumn int
}

// Rows returns the number of rows the bounds cover.
func (b Bounds) Rows() int { return b.FinishRow - b.StartRow + 1 }

// Columns returns the number of columns the bounds cover.
func (b Bounds) Columns() int { return b.FinishColumn - b.StartColumn + 1 }

// Contains reports whether slot (r, c) lies inside the bounds.
func (b Bounds) Contains(r, c int) bool {
	return r >= b.StartRow && r <= b.FinishRow && c >= b.StartColumn && c <= b.FinishColumn
}

// GetBox returns the minimal rectangle covering both cells, spans included.
func GetBox(g *Grid, start, finish *html.Node) (Bounds, bool) {
	s, ok := g.Find(start)
	if !ok {
		return Bounds{}, false
	}
	f, ok := g.Find(finish)
	if !ok {
		return Bounds{}, false
	}
	return Bounds{
		StartRow:     min(s.Row, f.Row),
		StartColumn:  min(s.Column, f.Column),
		FinishRow:    max(s.LastRow(), f.LastRow()),
		FinishColumn: max(s.LastColumn(), f.LastColumn()),
	}, true
}

// RetrieveBox locates the first and last selected cells of table by XPath
// and returns the box between them. It reports false when either marker is
// missing or does not belong to table.
func RetrieveBox(table *html.Node, firstSelector, lastSelector string) (Bounds, bool) {
	first, ok := markerCell(table, firstSelector)
	if !ok {
		return Bounds{}, false
	}
	last, ok := markerCell(table, lastSelector)
	if !ok {
		return Bounds{}, false
	}
	return GetBox(Build(table), first, last)
}

func markerCell(table *html.Node, selector string) (*html.Node, bool) {
	for _, n := range dom.QueryAll(table, selector) {
		if !dom.IsElement(n, "td", "th") {
			continue
		}
		// Skip markers that belong to a nested table.
		if owner, ok := dom.Closest(n, dom.Tag("table"), nil); ok && owner == table {
			return n, true
		}
	}
	return nil, false
}
