package selection

import (
	"testing"

	"golang.org/x/net/html"

	"github.com/dshills/tablestorm/internal/dom"
	"github.com/dshills/tablestorm/internal/table/grid"
)

const twoByTwo = `<html><body><table>
<tr><td id="a">A</td><td id="b">B</td></tr>
<tr><td id="c" rowspan="2">C</td><td id="d" colspan="2">D</td></tr>
<tr><td id="e" colspan="zz">E</td></tr>
</table></body></html>`

type fixture struct {
	table *html.Node
	cells map[string]*html.Node
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	doc, err := dom.Parse(twoByTwo)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	table, _ := dom.QueryOne(doc, "//table")
	f := fixture{table: table, cells: make(map[string]*html.Node)}
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		n, ok := dom.QueryOne(doc, "//*[@id='"+id+"']")
		if !ok {
			t.Fatalf("cell %q not found", id)
		}
		f.cells[id] = n
	}
	return f
}

func (f fixture) pick(ids ...string) []*html.Node {
	out := make([]*html.Node, 0, len(ids))
	for _, id := range ids {
		out = append(out, f.cells[id])
	}
	return out
}

func (f fixture) mark(first, last string) {
	e := DefaultEphemera()
	dom.SetAttr(f.cells[first], e.FirstSelected, "1")
	dom.SetAttr(f.cells[last], e.LastSelected, "1")
}

func TestSelection(t *testing.T) {
	f := newFixture(t)

	if got := Selection(None()); len(got) != 0 {
		t.Errorf("Selection(none) = %v, want empty", got)
	}
	if got := Selection(Single(f.cells["a"])); len(got) != 1 || got[0] != f.cells["a"] {
		t.Errorf("Selection(single) = %v", got)
	}
	got := Selection(Multiple(f.pick("b", "a")))
	if len(got) != 2 || got[0] != f.cells["b"] || got[1] != f.cells["a"] {
		t.Errorf("Selection(multiple) = %v, want input order", got)
	}
	if Single(nil).Mode() != ModeNone {
		t.Error("Single(nil) should be none")
	}
}

func TestModeString(t *testing.T) {
	tests := []struct {
		mode Mode
		want string
	}{
		{ModeNone, "none"},
		{ModeSingle, "single"},
		{ModeMultiple, "multiple"},
	}
	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("Mode.String() = %q, want %q", got, tt.want)
		}
	}
}

func spanCell(attr, value string) *html.Node {
	td := dom.NewElement("td")
	dom.SetAttr(td, attr, value)
	return td
}

func TestHasSpan(t *testing.T) {
	tests := []struct {
		attr, value string
		want        bool
	}{
		{"rowspan", "2", true},
		{"colspan", "3", true},
		{"rowspan", "1", false},
		{"colspan", "0", false},
		{"rowspan", "x", false},
		{"rowspan", "9223372036854775808", true},
		{"colspan", "18446744073709551618", true},
		{"colspan", "-18446744073709551618", false},
	}
	for _, tt := range tests {
		t.Run(tt.attr+"="+tt.value, func(t *testing.T) {
			if got := HasSpan(spanCell(tt.attr, tt.value)); got != tt.want {
				t.Errorf("HasSpan(%s=%q) = %v, want %v", tt.attr, tt.value, got, tt.want)
			}
		})
	}
}

func TestUnmergeable(t *testing.T) {
	f := newFixture(t)
	huge := spanCell("rowspan", "9223372036854775808")

	tests := []struct {
		name   string
		snap   Snapshot
		wantOK bool
	}{
		{"none", None(), false},
		{"empty multiple", Multiple(nil), false},
		{"all spanned", Multiple(f.pick("c", "d")), true},
		{"single spanned", Single(f.cells["c"]), true},
		{"one unit cell", Multiple(f.pick("c", "d", "a")), false},
		{"malformed span", Multiple(f.pick("c", "e")), false},
		{"single plain", Single(f.cells["a"]), false},
		{"overflowing rowspan", Single(huge), true},
		{"overflowing spans", Multiple([]*html.Node{huge, spanCell("colspan", "18446744073709551618")}), true},
		{"overflowing with unit cell", Multiple([]*html.Node{huge, f.cells["a"]}), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Unmergeable(tt.snap)
			if ok != tt.wantOK {
				t.Fatalf("Unmergeable() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && len(got) != len(Selection(tt.snap)) {
				t.Errorf("Unmergeable() returned %d cells, want %d", len(got), len(Selection(tt.snap)))
			}
		})
	}
}

func TestMergeableTwoColumns(t *testing.T) {
	f := newFixture(t)
	f.mark("a", "b")

	got, ok := Mergeable(f.table, Multiple(f.pick("a", "b")), DefaultEphemera())
	if !ok {
		t.Fatal("Mergeable() should find a candidate")
	}
	want := grid.Bounds{StartRow: 0, StartColumn: 0, FinishRow: 0, FinishColumn: 1}
	if got.Bounds != want {
		t.Errorf("Bounds = %+v, want %+v", got.Bounds, want)
	}
	if len(got.Cells) != 2 || got.Cells[0] != f.cells["a"] || got.Cells[1] != f.cells["b"] {
		t.Errorf("Cells = %v, want [a b]", got.Cells)
	}
}

func TestMergeableRejects(t *testing.T) {
	f := newFixture(t)
	f.mark("a", "b")
	e := DefaultEphemera()

	tests := []struct {
		name string
		snap Snapshot
	}{
		{"none", None()},
		{"single", Single(f.cells["a"])},
		{"empty multiple", Multiple(nil)},
		{"one cell", Multiple(f.pick("a"))},
		{"all spanned", Multiple(f.pick("c", "d"))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := Mergeable(f.table, tt.snap, e); ok {
				t.Error("Mergeable() should report false")
			}
		})
	}
}

func TestMergeableWithSpannedCell(t *testing.T) {
	f := newFixture(t)
	f.mark("a", "c")

	got, ok := Mergeable(f.table, Multiple(f.pick("a", "c")), DefaultEphemera())
	if !ok {
		t.Fatal("Mergeable() should accept a spanned cell next to a plain one")
	}
	want := grid.Bounds{StartRow: 0, StartColumn: 0, FinishRow: 2, FinishColumn: 0}
	if got.Bounds != want {
		t.Errorf("Bounds = %+v, want %+v", got.Bounds, want)
	}
	if _, ok := Unmergeable(Multiple(f.pick("a", "c"))); ok {
		t.Error("Unmergeable() should reject a selection with a plain cell")
	}
}

func TestMergeableMissingMarkers(t *testing.T) {
	f := newFixture(t)
	if _, ok := Mergeable(f.table, Multiple(f.pick("a", "b")), DefaultEphemera()); ok {
		t.Error("Mergeable() without markers should report false")
	}
}

func TestMergeAndUnmergeExclusive(t *testing.T) {
	f := newFixture(t)
	f.mark("a", "d")
	e := DefaultEphemera()

	snaps := []Snapshot{
		None(),
		Single(f.cells["c"]),
		Multiple(f.pick("a", "b")),
		Multiple(f.pick("c", "d")),
		Multiple(f.pick("a", "c")),
		Multiple(f.pick("a", "d")),
	}
	for i, s := range snaps {
		_, merge := Mergeable(f.table, s, e)
		_, unmerge := Unmergeable(s)
		if merge && unmerge {
			t.Errorf("snapshot %d classified as both mergeable and unmergeable", i)
		}
	}
}

func TestToggleAndFromTable(t *testing.T) {
	f := newFixture(t)
	e := DefaultEphemera()

	if FromTable(f.table, e).Mode() != ModeNone {
		t.Fatal("fresh table should have no selection")
	}

	Toggle(f.table, f.cells["b"], e)
	if s := FromTable(f.table, e); s.Mode() != ModeSingle {
		t.Fatalf("mode = %v, want single", s.Mode())
	}

	Toggle(f.table, f.cells["a"], e)
	s := FromTable(f.table, e)
	if s.Mode() != ModeMultiple {
		t.Fatalf("mode = %v, want multiple", s.Mode())
	}
	if cells := Selection(s); cells[0] != f.cells["a"] || cells[1] != f.cells["b"] {
		t.Error("FromTable should keep document order")
	}
	if !dom.HasAttr(f.cells["b"], e.FirstSelected) || !dom.HasAttr(f.cells["a"], e.LastSelected) {
		t.Error("first marker should follow the oldest cell and last marker the newest")
	}

	cand, ok := Mergeable(f.table, s, e)
	if !ok || cand.Bounds.Columns() != 2 {
		t.Errorf("Mergeable() after toggles = %+v, %v", cand, ok)
	}

	Toggle(f.table, f.cells["b"], e)
	if !dom.HasAttr(f.cells["a"], e.FirstSelected) || !dom.HasAttr(f.cells["a"], e.LastSelected) {
		t.Error("remaining cell should carry both markers")
	}

	Clear(f.table, e)
	if FromTable(f.table, e).Mode() != ModeNone {
		t.Error("Clear should drop every marker")
	}
	if dom.HasAttr(f.cells["a"], e.FirstSelected) {
		t.Error("Clear should drop first marker")
	}
}

func TestFromTableSkipsNestedTables(t *testing.T) {
	doc, err := dom.Parse(`<html><body><table id="outer">
<tr><td id="o1">1</td><td id="o2"><table id="inner"><tr><td id="i1">i</td></tr></table></td></tr>
</table></body></html>`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	byID := func(id string) *html.Node {
		n, ok := dom.QueryOne(doc, "//*[@id='"+id+"']")
		if !ok {
			t.Fatalf("element %q not found", id)
		}
		return n
	}
	outer, inner := byID("outer"), byID("inner")
	e := DefaultEphemera()

	Toggle(inner, byID("i1"), e)
	Toggle(outer, byID("o1"), e)

	s := FromTable(outer, e)
	if s.Mode() != ModeSingle || Selection(s)[0] != byID("o1") {
		t.Errorf("FromTable(outer) = %v %v, want single o1", s.Mode(), Selection(s))
	}
	if !dom.HasAttr(byID("i1"), e.FirstSelected) {
		t.Error("toggling the outer table should keep the inner table's markers")
	}
	if s := FromTable(inner, e); s.Mode() != ModeSingle || Selection(s)[0] != byID("i1") {
		t.Errorf("FromTable(inner) = %v, want single i1", s.Mode())
	}

	Clear(outer, e)
	if !dom.HasAttr(byID("i1"), e.Selected) {
		t.Error("Clear(outer) should leave inner selection alone")
	}
}
