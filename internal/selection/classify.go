package selection

import (
	"golang.org/x/net/html"

	"github.com/dshills/tablestorm/internal/dom"
	"github.com/dshills/tablestorm/internal/table/grid"
)

// MergeCandidate is a selection that can be collapsed into one cell
// spanning Bounds.
type MergeCandidate struct {
	Bounds grid.Bounds
	Cells  []*html.Node
}

// HasSpan reports whether cell spans more than one row or column.
// Missing and malformed span attributes count as 1.
func HasSpan(cell *html.Node) bool {
	return dom.IntAttr(cell, "rowspan", 1) > 1 || dom.IntAttr(cell, "colspan", 1) > 1
}

// Unmergeable returns the selected cells when every one of them already
// spans more than one row or column. A single spanned cell qualifies.
func Unmergeable(s Snapshot) ([]*html.Node, bool) {
	cells := Selection(s)
	if len(cells) == 0 || !allSpanned(cells) {
		return nil, false
	}
	return cells, true
}

func allSpanned(cells []*html.Node) bool {
	for _, c := range cells {
		if !HasSpan(c) {
			return false
		}
	}
	return true
}

// Mergeable returns the bounding box and cells of an explicit selection of
// at least two cells, not all of them already spanned. The box is derived from the first and last
// selection markers inside table.
func Mergeable(table *html.Node, s Snapshot, e Ephemera) (MergeCandidate, bool) {
	if s.Mode() != ModeMultiple {
		return MergeCandidate{}, false
	}
	cells := Selection(s)
	if len(cells) == 0 {
		return MergeCandidate{}, false
	}
	// A selection made only of spanned cells is an unmerge.
	if allSpanned(cells) {
		return MergeCandidate{}, false
	}

	bounds, ok := grid.RetrieveBox(table, e.FirstSelector(), e.LastSelector())
	if !ok || len(cells) < 2 {
		return MergeCandidate{}, false
	}
	return MergeCandidate{Bounds: bounds, Cells: cells}, true
}
