// Package selection classifies the current table cell selection into merge
// and unmerge candidates.
package selection

import "golang.org/x/net/html"

// Mode tags how a snapshot was produced.
type Mode uint8

const (
	// ModeNone means no cell is selected.
	ModeNone Mode = iota
	// ModeSingle is the implicit one-cell selection around the caret.
	ModeSingle
	// ModeMultiple is an explicit multi-cell selection.
	ModeMultiple
)

// String returns a string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeSingle:
		return "single"
	case ModeMultiple:
		return "multiple"
	default:
		return "none"
	}
}

// Snapshot is an immutable view of the selected cells.
type Snapshot struct {
	mode  Mode
	cells []*html.Node
}

// None returns an empty snapshot.
func None() Snapshot {
	return Snapshot{mode: ModeNone}
}

// Single returns the implicit selection of one cell.
func Single(cell *html.Node) Snapshot {
	if cell == nil {
		return None()
	}
	return Snapshot{mode: ModeSingle, cells: []*html.Node{cell}}
}

// Multiple returns an explicit selection. The slice is copied.
func Multiple(cells []*html.Node) Snapshot {
	cp := make([]*html.Node, len(cells))
	copy(cp, cells)
	return Snapshot{mode: ModeMultiple, cells: cp}
}

// Mode returns the snapshot mode.
func (s Snapshot) Mode() Mode { return s.mode }

// Selection projects a snapshot onto a flat cell sequence:
// none is empty, single is one cell, multiple is the sequence as-is.
func Selection(s Snapshot) []*html.Node {
	switch s.mode {
	case ModeSingle, ModeMultiple:
		out := make([]*html.Node, len(s.cells))
		copy(out, s.cells)
		return out
	default:
		return nil
	}
}
