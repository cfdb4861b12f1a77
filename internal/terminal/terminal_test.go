package terminal

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	lua "github.com/yuin/gopher-lua"
	"golang.org/x/net/html"

	"github.com/dshills/tablestorm/internal/config"
	"github.com/dshills/tablestorm/internal/dom"
	"github.com/dshills/tablestorm/internal/resize"
)

const page = `<html><body><div id="view" contenteditable="true"><table>
<tr><td id="a">alpha</td><td id="b">beta</td></tr>
<tr><td id="c">gamma</td><td id="d">delta</td></tr>
</table></div></body></html>`

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	s.SetSize(80, 25)
	t.Cleanup(s.Fini)
	return s
}

func newApp(t *testing.T, src string, opts Options) (*App, tcell.SimulationScreen, func(string) *html.Node) {
	t.Helper()
	doc, err := dom.Parse(src)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	s := newScreen(t)
	a, err := New(s, doc, opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(a.Close)
	return a, s, func(id string) *html.Node {
		n, ok := dom.QueryOne(doc, "//*[@id='"+id+"']")
		if !ok {
			t.Fatalf("element %q not found", id)
		}
		return n
	}
}

func mouse(a *App, x, y int, buttons tcell.ButtonMask) {
	a.HandleEvent(tcell.NewEventMouse(x, y, buttons, tcell.ModNone))
}

func key(a *App, r rune) bool {
	return a.HandleEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
}

func content(s tcell.Screen, x, y int) rune {
	r, _, _, _ := s.GetContent(x, y) //nolint:staticcheck // GetContent is the correct API
	return r
}

func TestHoverAndDraw(t *testing.T) {
	a, s, _ := newApp(t, page, Options{})

	mouse(a, 1, 0, tcell.ButtonNone)
	if a.Manager().State() != resize.HoverTable {
		t.Fatalf("State() = %v, want hovering-table", a.Manager().State())
	}
	a.Draw()

	if got := content(s, 0, 0); got != 'a' {
		t.Errorf("cell text at (0,0) = %q, want 'a'", got)
	}
	if got := content(s, 10, 0); got != '┃' {
		t.Errorf("column bar at (10,0) = %q", got)
	}
	if got := content(s, 2, 1); got != '─' {
		t.Errorf("row bar at (2,1) = %q", got)
	}

	mouse(a, 40, 10, tcell.ButtonNone)
	if a.Manager().State() != resize.HoverIdle {
		t.Errorf("State() off the table = %v, want idle", a.Manager().State())
	}
}

func TestDragColumnBar(t *testing.T) {
	a, _, byID := newApp(t, page, Options{})

	mouse(a, 1, 0, tcell.ButtonNone)
	mouse(a, 10, 0, tcell.Button1)
	if _, ok := a.Manager().Dragging(); !ok {
		t.Fatal("pressing a column bar should start a drag")
	}
	mouse(a, 11, 0, tcell.Button1)
	mouse(a, 12, 0, tcell.Button1)
	mouse(a, 12, 0, tcell.ButtonNone)

	for _, id := range []string{"a", "c"} {
		if w := dom.PxStyle(byID(id), "width"); w != 96 {
			t.Errorf("%s width = %v, want 96", id, w)
		}
	}
	if _, ok := a.Manager().Dragging(); ok {
		t.Error("release should end the drag")
	}
}

func TestDragRowBarClamped(t *testing.T) {
	cfg := config.Default()
	cfg.MinRowHeight = 20
	a, _, byID := newApp(t, page, Options{Config: cfg})

	mouse(a, 1, 0, tcell.ButtonNone)
	mouse(a, 2, 1, tcell.Button1)
	mouse(a, 2, 0, tcell.Button1)
	mouse(a, 2, 0, tcell.ButtonNone)

	tr := byID("a").Parent
	if h := dom.PxStyle(tr, "height"); h != 20 {
		t.Errorf("row height = %v, want 20", h)
	}
}

func TestSelectAndClassify(t *testing.T) {
	a, _, byID := newApp(t, page, Options{})

	mouse(a, 1, 0, tcell.Button2)
	mouse(a, 1, 0, tcell.ButtonNone)
	mouse(a, 11, 0, tcell.Button2)
	mouse(a, 11, 0, tcell.ButtonNone)

	e := config.Default().Ephemera()
	for _, id := range []string{"a", "b"} {
		if !dom.HasAttr(byID(id), e.Selected) {
			t.Errorf("%s should be selected", id)
		}
	}

	key(a, 'm')
	if got := a.Status(); got != "mergeable: 1x2, 2 cells" {
		t.Errorf("Status() = %q", got)
	}

	mouse(a, 1, 0, tcell.Button2)
	mouse(a, 1, 0, tcell.ButtonNone)
	key(a, 'm')
	if got := a.Status(); got != "no merge action (single selection)" {
		t.Errorf("Status() = %q", got)
	}
}

func TestUnmergeableStatus(t *testing.T) {
	src := strings.Replace(page, `<td id="a">`, `<td id="a" colspan="2">`, 1)
	src = strings.Replace(src, `<td id="b">beta</td>`, "", 1)
	a, _, _ := newApp(t, src, Options{})

	mouse(a, 1, 0, tcell.Button2)
	mouse(a, 1, 0, tcell.ButtonNone)
	key(a, 'm')
	if got := a.Status(); got != "unmergeable: 1 cells" {
		t.Errorf("Status() = %q", got)
	}
}

func TestHideShowKeys(t *testing.T) {
	a, _, _ := newApp(t, page, Options{})
	mouse(a, 1, 0, tcell.ButtonNone)

	key(a, 'h')
	if bar := a.hit(10, 0); dom.IsElement(bar, "div") {
		t.Error("hidden bars should not be hit")
	}
	key(a, 's')
	if bar := a.hit(10, 0); !dom.IsElement(bar, "div") {
		t.Error("shown bars should be hit")
	}
}

func TestExportKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	a, _, _ := newApp(t, page, Options{ExportPath: path})

	key(a, 'x')
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("export missing: %v", err)
	}
	if !strings.Contains(a.Status(), path) {
		t.Errorf("Status() = %q", a.Status())
	}
}

func TestQuitKeys(t *testing.T) {
	a, _, _ := newApp(t, page, Options{})
	if !key(a, 'z') {
		t.Error("unbound key should not quit")
	}
	if key(a, 'q') {
		t.Error("q should quit")
	}

	b, _, _ := newApp(t, page, Options{})
	if b.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Error("Esc should quit")
	}
}

func TestReloadInterrupt(t *testing.T) {
	a, _, _ := newApp(t, page, Options{})
	cfg := config.Default()
	cfg.CellWidthPx = 4
	cfg.BarColor = "#ff0000"

	a.HandleEvent(tcell.NewEventInterrupt(cfg))
	if a.cfg.CellWidthPx != 4 {
		t.Errorf("CellWidthPx = %d, want 4", a.cfg.CellWidthPx)
	}
	fg, _, _ := a.theme.Bar.Decompose()
	if r, _, _ := fg.RGB(); r != 255 {
		t.Errorf("bar red = %d, want 255", r)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	a, _, _ := newApp(t, page, Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := a.Run(ctx); err != nil {
		t.Errorf("Run() = %v, want nil", err)
	}
}

func TestPlugin(t *testing.T) {
	script := filepath.Join(t.TempDir(), "init.lua")
	err := os.WriteFile(script, []byte(`
moved = 0
ts.on("adjust_width", function(column, delta) moved = moved + delta end)
`), 0644)
	if err != nil {
		t.Fatal(err)
	}
	cfg := config.Default()
	cfg.PluginScript = script
	a, _, _ := newApp(t, page, Options{Config: cfg})

	mouse(a, 1, 0, tcell.ButtonNone)
	mouse(a, 10, 0, tcell.Button1)
	mouse(a, 13, 0, tcell.Button1)
	mouse(a, 13, 0, tcell.ButtonNone)

	if got := a.plugin.L.GetGlobal("moved"); got != lua.LNumber(24) {
		t.Errorf("moved = %v, want 24", got)
	}
}

func TestNewWithoutEditableRegion(t *testing.T) {
	src := `<html><body><table><tr><td id="x">x</td></tr></table></body></html>`
	a, _, _ := newApp(t, src, Options{})
	if v, _ := dom.Attr(a.view, "contenteditable"); v != "true" {
		t.Error("body should become editable")
	}
	mouse(a, 1, 0, tcell.ButtonNone)
	if a.Manager().State() != resize.HoverTable {
		t.Error("table in the body should be hoverable")
	}
}

func TestNewWithoutTable(t *testing.T) {
	doc, _ := dom.Parse(`<html><body><p>nothing</p></body></html>`)
	if _, err := New(newScreen(t), doc, Options{}); !errors.Is(err, ErrNoTable) {
		t.Errorf("New() error = %v, want ErrNoTable", err)
	}
}

func TestStackTables(t *testing.T) {
	src := `<html><body><div contenteditable="true">
<table id="t1"><tr><td>1</td></tr></table>
<table id="t2"><tr><td>2</td></tr></table>
</div></body></html>`
	_, _, byID := newApp(t, src, Options{})
	if top := dom.PxStyle(byID("t2"), "top"); top != 24+tableGap {
		t.Errorf("second table top = %v, want %v", top, 24+tableGap)
	}
}

func TestPutTextClipsWideGraphemes(t *testing.T) {
	s := newScreen(t)
	n := putText(s, 0, 0, 5, "  ab\n\n  日本", tcell.StyleDefault)
	if n != 5 {
		t.Errorf("putText() = %d, want 5", n)
	}
	want := []rune{'a', 'b', ' ', '日'}
	for i, x := range []int{0, 1, 2, 3} {
		if got := content(s, x, 0); got != want[i] {
			t.Errorf("content(%d) = %q, want %q", x, got, want[i])
		}
	}
}
