package selection

import (
	"slices"
	"strconv"

	"golang.org/x/net/html"

	"github.com/dshills/tablestorm/internal/dom"
)

// Ephemera names the transient marker attributes a selection tracker
// writes onto cells.
type Ephemera struct {
	Selected      string
	FirstSelected string
	LastSelected  string
}

// DefaultEphemera returns the editor's marker attribute names.
func DefaultEphemera() Ephemera {
	return Ephemera{
		Selected:      "data-mce-selected",
		FirstSelected: "data-mce-first-selected",
		LastSelected:  "data-mce-last-selected",
	}
}

// FirstSelector returns the XPath selector of the first selected cell.
func (e Ephemera) FirstSelector() string { return attrSelector(e.FirstSelected) }

// LastSelector returns the XPath selector of the last selected cell.
func (e Ephemera) LastSelector() string { return attrSelector(e.LastSelected) }

// SelectedSelector returns the XPath selector of every selected cell.
func (e Ephemera) SelectedSelector() string { return attrSelector(e.Selected) }

func attrSelector(attr string) string {
	return ".//*[self::td or self::th][@" + attr + "]"
}

// FromTable builds a snapshot from the selection markers in table.
// Cells are returned in document order.
func FromTable(table *html.Node, e Ephemera) Snapshot {
	cells := ownCells(table, e.SelectedSelector())
	switch len(cells) {
	case 0:
		return None()
	case 1:
		return Single(cells[0])
	default:
		return Multiple(cells)
	}
}

// Toggle adds cell to, or removes it from, the marked selection of table
// and moves the first/last markers to the oldest and newest selected cells.
func Toggle(table, cell *html.Node, e Ephemera) {
	if dom.HasAttr(cell, e.Selected) {
		dom.RemoveAttr(cell, e.Selected)
	} else {
		dom.SetAttr(cell, e.Selected, strconv.Itoa(nextSequence(table, e)))
	}
	remark(table, e)
}

// Clear removes every selection marker from table.
func Clear(table *html.Node, e Ephemera) {
	for _, c := range ownCells(table, e.SelectedSelector()) {
		dom.RemoveAttr(c, e.Selected)
	}
	remark(table, e)
}

// ownCells returns the cells matching selector whose nearest table is
// table, leaving out cells of nested tables.
func ownCells(table *html.Node, selector string) []*html.Node {
	var out []*html.Node
	for _, n := range dom.QueryAll(table, selector) {
		if owner, ok := dom.Closest(n, dom.Tag("table"), nil); ok && owner == table {
			out = append(out, n)
		}
	}
	return out
}

func sequence(cell *html.Node, e Ephemera) int {
	return dom.IntAttr(cell, e.Selected, 0)
}

func nextSequence(table *html.Node, e Ephemera) int {
	next := 1
	for _, c := range ownCells(table, e.SelectedSelector()) {
		next = max(next, sequence(c, e)+1)
	}
	return next
}

func remark(table *html.Node, e Ephemera) {
	for _, attr := range []string{e.FirstSelected, e.LastSelected} {
		for _, c := range ownCells(table, attrSelector(attr)) {
			dom.RemoveAttr(c, attr)
		}
	}

	cells := ownCells(table, e.SelectedSelector())
	if len(cells) == 0 {
		return
	}
	ordered := slices.Clone(cells)
	slices.SortStableFunc(ordered, func(a, b *html.Node) int {
		return sequence(a, e) - sequence(b, e)
	})
	dom.SetAttr(ordered[0], e.FirstSelected, "1")
	dom.SetAttr(ordered[len(ordered)-1], e.LastSelected, "1")
}
