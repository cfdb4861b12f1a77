package terminal

import (
	"fmt"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
	"golang.org/x/net/html"

	"github.com/dshills/tablestorm/internal/dom"
	"github.com/dshills/tablestorm/internal/resize/bars"
	"github.com/dshills/tablestorm/internal/table/layout"
)

// rect is a half-open range of screen cells.
type rect struct {
	x0, y0, x1, y1 int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x0 && x < r.x1 && y >= r.y0 && y < r.y1
}

// cellRect converts a document box to the screen cells it starts in.
func (a *App) cellRect(b layout.Box) rect {
	cw, ch := float64(a.cfg.CellWidthPx), float64(a.cfg.CellHeightPx)
	r := rect{
		x0: int(b.X / cw),
		y0: int(b.Y / ch),
		x1: int((b.X + b.Width) / cw),
		y1: int((b.Y + b.Height) / ch),
	}
	r.x1 = max(r.x1, r.x0+1)
	r.y1 = max(r.y1, r.y0+1)
	return r
}

// barRect is the line of screen cells a bar is drawn on: the cell row of
// a row bar's centre, or the cell column of a column bar's centre.
func (a *App) barRect(bar *html.Node) (rect, bool) {
	if v, ok := dom.Style(bar, "display"); ok && v == "none" {
		return rect{}, false
	}
	o, _, ok := bars.Classify(bar, a.styles)
	if !ok {
		return rect{}, false
	}
	b := layout.Box{
		X:      dom.PxStyle(bar, "left"),
		Y:      dom.PxStyle(bar, "top"),
		Width:  dom.PxStyle(bar, "width"),
		Height: dom.PxStyle(bar, "height"),
	}
	cw, ch := float64(a.cfg.CellWidthPx), float64(a.cfg.CellHeightPx)
	if o == bars.Row {
		r := a.cellRect(layout.Box{X: b.X, Width: b.Width})
		y := int((b.Y + b.Height/2) / ch)
		return rect{x0: r.x0, x1: r.x1, y0: y, y1: y + 1}, true
	}
	r := a.cellRect(layout.Box{Y: b.Y, Height: b.Height})
	x := int((b.X + b.Width/2) / cw)
	return rect{x0: x, x1: x + 1, y0: r.y0, y1: r.y1}, true
}

// Draw renders the tables, the bars and the status line.
func (a *App) Draw() {
	a.screen.Clear()
	for _, t := range a.tables {
		a.drawTable(t)
	}
	a.drawBars()
	a.drawStatus()
	a.screen.Show()
}

func (a *App) drawTable(t *html.Node) {
	e := a.cfg.Ephemera()
	for _, c := range a.layout.Cells(t) {
		r := a.cellRect(c.Box)
		style := a.theme.Cell
		if dom.IsElement(c.Cell, "th") {
			style = a.theme.Header
		}
		if dom.HasAttr(c.Cell, e.Selected) {
			style = a.theme.Selected
		}
		for y := r.y0; y < r.y1; y++ {
			for x := r.x0; x < r.x1-1; x++ {
				a.screen.SetContent(x, y, ' ', nil, style)
			}
			a.screen.SetContent(r.x1-1, y, '│', nil, a.theme.Cell)
		}
		putText(a.screen, r.x0, r.y0, r.x1-r.x0-1, dom.Text(c.Cell), style)
	}
}

func (a *App) drawBars() {
	dragging, _ := a.manager.Dragging()
	for _, bar := range bars.All(a.wire, a.styles) {
		r, ok := a.barRect(bar)
		if !ok {
			continue
		}
		style := a.theme.Bar
		if bar == dragging {
			style = a.theme.Dragging
		}
		glyph := '─'
		if bars.IsColumnBar(bar, a.styles) {
			glyph = '┃'
		}
		for y := r.y0; y < r.y1; y++ {
			for x := r.x0; x < r.x1; x++ {
				a.screen.SetContent(x, y, glyph, nil, style)
			}
		}
	}
}

func (a *App) drawStatus() {
	w, h := a.screen.Size()
	if h == 0 {
		return
	}
	for x := 0; x < w; x++ {
		a.screen.SetContent(x, h-1, ' ', nil, a.theme.Status)
	}
	line := fmt.Sprintf(" %s | %s", a.manager.State(), a.status)
	putText(a.screen, 0, h-1, w, line, a.theme.Status)
}

// putText writes s from (x, y), stopping before a grapheme would cross
// width columns. Whitespace runs are collapsed.
func putText(screen tcell.Screen, x, y, width int, s string, style tcell.Style) int {
	used := 0
	space := false
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		runes := g.Runes()
		w := g.Width()
		if isSpace(runes) {
			if space || used == 0 {
				continue
			}
			space = true
			runes, w = []rune{' '}, 1
		} else {
			space = false
		}
		if w == 0 {
			continue
		}
		if used+w > width {
			break
		}
		screen.SetContent(x+used, y, runes[0], runes[1:], style)
		used += w
	}
	return used
}

func isSpace(runes []rune) bool {
	for _, r := range runes {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
