// Package terminal is the interactive table editor front end.
//
// The document is drawn on a tcell screen at a fixed scale: one screen
// cell covers CellWidthPx by CellHeightPx document pixels. Mouse input is
// hit tested against the drawn bars and table cells and fed to the resize
// manager as pointer events.
//
// Mouse:
//
//	move          hover tables; bars follow the hovered table
//	left drag     drag a resize bar
//	right click   toggle cell selection
//
// Keys:
//
//	m      classify the selection (mergeable / unmergeable)
//	x      export the table to xlsx
//	h, s   hide / show the bars
//	q, Esc quit
package terminal
