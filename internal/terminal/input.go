package terminal

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/net/html"

	"github.com/dshills/tablestorm/internal/config"
	"github.com/dshills/tablestorm/internal/dom"
	"github.com/dshills/tablestorm/internal/pointer"
	"github.com/dshills/tablestorm/internal/resize/bars"
	"github.com/dshills/tablestorm/internal/selection"
)

// HandleEvent processes one screen event. It returns false once the
// session should end.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch e := ev.(type) {
	case *tcell.EventMouse:
		a.mouse(e)
	case *tcell.EventKey:
		a.key(e)
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventInterrupt:
		switch data := e.Data().(type) {
		case *config.Config:
			a.applyConfig(data)
		case error:
			a.quit = true
		}
	}
	return !a.quit
}

func (a *App) key(e *tcell.EventKey) {
	switch e.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		a.quit = true
		return
	case tcell.KeyRune:
	default:
		return
	}

	switch e.Rune() {
	case 'q':
		a.quit = true
	case 'h':
		a.manager.HideBars()
		a.status = "bars hidden"
	case 's':
		a.manager.ShowBars()
		a.status = "bars shown"
	case 'm':
		a.status = a.classify()
	case 'x':
		if err := a.exporter.WriteFile(a.Table(), a.exportPath); err != nil {
			a.status = "export failed: " + err.Error()
			a.logger.Warn("export failed", "path", a.exportPath, "error", err)
			return
		}
		a.status = "exported to " + a.exportPath
	}
}

// classify describes the merge action available for the selection.
func (a *App) classify() string {
	table, snap := a.currentSelection()
	if m, ok := selection.Mergeable(table, snap, a.cfg.Ephemera()); ok {
		return fmt.Sprintf("mergeable: %dx%d, %d cells", m.Bounds.Rows(), m.Bounds.Columns(), len(m.Cells))
	}
	if cells, ok := selection.Unmergeable(snap); ok {
		return fmt.Sprintf("unmergeable: %d cells", len(cells))
	}
	return fmt.Sprintf("no merge action (%s selection)", snap.Mode())
}

func (a *App) mouse(e *tcell.EventMouse) {
	cx, cy := e.Position()
	pos := a.toDocument(cx, cy)
	buttons := e.Buttons() & (tcell.Button1 | tcell.Button2 | tcell.Button3)
	prev := a.buttons
	a.buttons = buttons

	pressed := buttons &^ prev
	released := prev &^ buttons

	switch {
	case pressed&tcell.Button1 != 0:
		a.hub.Dispatch(pointer.Event{Kind: pointer.KindDown, Target: a.hit(cx, cy), Pos: pos, Button: pointer.ButtonLeft})
	case pressed&tcell.Button2 != 0:
		a.toggle(cx, cy)
	case released&tcell.Button1 != 0:
		a.hub.Dispatch(pointer.Event{Kind: pointer.KindUp, Target: a.hit(cx, cy), Pos: pos, Button: pointer.ButtonLeft})
	case buttons&tcell.Button1 != 0:
		a.hub.Dispatch(pointer.Event{Kind: pointer.KindMove, Target: a.hit(cx, cy), Pos: pos, Button: pointer.ButtonLeft})
	case buttons == tcell.ButtonNone:
		a.hub.Dispatch(pointer.Event{Kind: pointer.KindOver, Target: a.hit(cx, cy), Pos: pos})
	}
}

func (a *App) toggle(cx, cy int) {
	cell := a.hit(cx, cy)
	if !dom.IsElement(cell, "td", "th") {
		return
	}
	table, ok := dom.Closest(cell, dom.Tag("table"), dom.Is(a.view))
	if !ok {
		return
	}
	selection.Toggle(table, cell, a.cfg.Ephemera())
	snap := selection.FromTable(table, a.cfg.Ephemera())
	a.status = fmt.Sprintf("%s selection, %d cells", snap.Mode(), len(selection.Selection(snap)))
}

// toDocument returns the document position of the top-left corner of a
// screen cell.
func (a *App) toDocument(cx, cy int) pointer.Point {
	return pointer.Point{
		X: float64(cx * a.cfg.CellWidthPx),
		Y: float64(cy * a.cfg.CellHeightPx),
	}
}

// hit returns the element drawn at a screen cell: a visible bar, a table
// cell, a table, or the view itself when nothing else is there.
func (a *App) hit(cx, cy int) *html.Node {
	for _, bar := range bars.All(a.wire, a.styles) {
		if r, ok := a.barRect(bar); ok && r.contains(cx, cy) {
			return bar
		}
	}

	x := float64(cx*a.cfg.CellWidthPx) + float64(a.cfg.CellWidthPx)/2
	y := float64(cy*a.cfg.CellHeightPx) + float64(a.cfg.CellHeightPx)/2
	for _, t := range a.tables {
		for _, c := range a.layout.Cells(t) {
			if c.Box.Contains(x, y) {
				return c.Cell
			}
		}
		if a.layout.TableBox(t).Contains(x, y) {
			return t
		}
	}
	return a.view
}
