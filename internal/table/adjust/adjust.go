// Package adjust applies committed bar drags to table markup.
package adjust

import (
	"log/slog"

	"github.com/dshills/tablestorm/internal/dom"
	"github.com/dshills/tablestorm/internal/event"
	"github.com/dshills/tablestorm/internal/logging"
	"github.com/dshills/tablestorm/internal/resize"
	"github.com/dshills/tablestorm/internal/table/grid"
)

// Sizes reports the current track sizes of a grid.
type Sizes interface {
	RowHeights(g *grid.Grid) []float64
	ColumnWidths(g *grid.Grid) []float64
}

// Limits are the smallest track sizes an adjustment may produce.
type Limits struct {
	MinRowHeight   float64
	MinColumnWidth float64
}

// Adjuster rewrites row heights and column widths.
type Adjuster struct {
	sizes  Sizes
	limits Limits
	logger *slog.Logger
}

// Option configures an Adjuster.
type Option func(*Adjuster)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *Adjuster) {
		if l != nil {
			a.logger = l
		}
	}
}

// New creates an adjuster.
func New(sizes Sizes, limits Limits, opts ...Option) *Adjuster {
	a := &Adjuster{sizes: sizes, limits: limits, logger: logging.Discard()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Bind subscribes the adjuster to a manager's adjustment events.
func (a *Adjuster) Bind(ev *resize.Events) *event.Group {
	g := &event.Group{}
	g.Add(
		ev.AdjustHeight.Bind(func(e resize.AdjustHeight) { a.Height(e) }),
		ev.AdjustWidth.Bind(func(e resize.AdjustWidth) { a.Width(e) }),
	)
	return g
}

// Height grows or shrinks a row by e.Delta and returns the new height.
// The height is written on the tr and never drops below MinRowHeight.
func (a *Adjuster) Height(e resize.AdjustHeight) (float64, bool) {
	g := grid.Build(e.Table)
	tr, ok := g.Row(e.Row)
	if !ok {
		a.logger.Warn("adjust height: no such row", "row", e.Row)
		return 0, false
	}
	current := a.sizes.RowHeights(g)[e.Row]
	height := max(current+e.Delta, a.limits.MinRowHeight)
	dom.SetPxStyle(tr, "height", height)

	a.logger.Debug("row height adjusted", "row", e.Row, "from", current, "to", height)
	return height, true
}

// Width grows or shrinks a column by e.Delta and returns the new width.
// The width is written on every cell of the column that does not span
// several columns, and never drops below MinColumnWidth. A table with an
// explicit width grows by the same amount.
func (a *Adjuster) Width(e resize.AdjustWidth) (float64, bool) {
	g := grid.Build(e.Table)
	if e.Column < 0 || e.Column >= g.Columns() {
		a.logger.Warn("adjust width: no such column", "column", e.Column)
		return 0, false
	}
	current := a.sizes.ColumnWidths(g)[e.Column]
	width := max(current+e.Delta, a.limits.MinColumnWidth)

	written := 0
	for _, d := range g.Details() {
		if d.Column != e.Column || d.ColSpan != 1 {
			continue
		}
		dom.SetPxStyle(d.Cell, "width", width)
		written++
	}
	if written == 0 {
		a.logger.Warn("adjust width: column has only spanning cells", "column", e.Column)
		return current, false
	}
	if tw, ok := dom.PxStyleOK(e.Table, "width"); ok {
		dom.SetPxStyle(e.Table, "width", tw+width-current)
	}

	a.logger.Debug("column width adjusted", "column", e.Column, "from", current, "to", width)
	return width, true
}
