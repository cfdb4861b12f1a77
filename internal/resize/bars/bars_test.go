package bars

import (
	"testing"

	"golang.org/x/net/html"

	"github.com/dshills/tablestorm/internal/dom"
	"github.com/dshills/tablestorm/internal/table/layout"
)

const doc = `<html><body>
<div id="view" contenteditable="true"><table>
<tr><td style="width: 50px; height: 20px">a</td><td style="width: 70px">b</td></tr>
<tr><td>c</td><td>d</td></tr>
</table></div>
<div id="ui"></div>
</body></html>`

func setup(t *testing.T) (Wire, *html.Node) {
	t.Helper()
	root, err := dom.Parse(doc)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	view, _ := dom.QueryOne(root, "//*[@id='view']")
	ui, _ := dom.QueryOne(root, "//*[@id='ui']")
	table, _ := dom.QueryOne(root, "//table")
	return Wire{Parent: ui, View: view}, table
}

func TestRefresh(t *testing.T) {
	w, table := setup(t)
	s := DefaultStyles()
	geo := layout.New(layout.Options{DefaultRowHeight: 30})

	Refresh(w, table, geo, s)
	all := All(w, s)
	if len(all) != 4 {
		t.Fatalf("len(All()) = %d, want 4", len(all))
	}

	var rows, cols int
	for _, bar := range all {
		o, index, ok := Classify(bar, s)
		if !ok {
			t.Fatalf("Classify(%s) failed", dom.Render(bar))
		}
		switch o {
		case Row:
			rows++
			if index == 0 && dom.PxStyle(bar, "top") != 20-s.Thickness/2 {
				t.Errorf("row 0 bar top = %v", dom.PxStyle(bar, "top"))
			}
			if dom.PxStyle(bar, "width") != 120 {
				t.Errorf("row bar width = %v, want 120", dom.PxStyle(bar, "width"))
			}
		case Column:
			cols++
			if index == 1 && dom.PxStyle(bar, "left") != 120-s.Thickness/2 {
				t.Errorf("column 1 bar left = %v", dom.PxStyle(bar, "left"))
			}
			if dom.PxStyle(bar, "height") != 50 {
				t.Errorf("column bar height = %v, want 50", dom.PxStyle(bar, "height"))
			}
		}
	}
	if rows != 2 || cols != 2 {
		t.Errorf("rows = %d, cols = %d, want 2, 2", rows, cols)
	}
}

func TestRefreshIdempotent(t *testing.T) {
	w, table := setup(t)
	s := DefaultStyles()
	geo := layout.New(layout.Options{})

	Refresh(w, table, geo, s)
	first := dom.Render(w.Parent)
	Refresh(w, table, geo, s)
	if second := dom.Render(w.Parent); first != second {
		t.Errorf("second Refresh changed geometry:\n%s\n%s", first, second)
	}
}

func TestHideShowDestroy(t *testing.T) {
	w, table := setup(t)
	s := DefaultStyles()
	Refresh(w, table, layout.New(layout.Options{}), s)

	Hide(w, s)
	for _, bar := range All(w, s) {
		if v, _ := dom.Style(bar, "display"); v != "none" {
			t.Fatalf("hidden bar display = %q", v)
		}
	}
	Show(w, s)
	for _, bar := range All(w, s) {
		if _, ok := dom.Style(bar, "display"); ok {
			t.Fatal("shown bar still carries display")
		}
	}

	Destroy(w, s)
	Destroy(w, s)
	if n := len(All(w, s)); n != 0 {
		t.Errorf("len(All()) after Destroy = %d", n)
	}
}

func TestClassify(t *testing.T) {
	s := DefaultStyles()
	plain := dom.NewElement("div")
	if _, _, ok := Classify(plain, s); ok {
		t.Error("plain element classified as bar")
	}
	if IsRowBar(plain, s) || IsColumnBar(plain, s) {
		t.Error("plain element should not be a bar")
	}

	bad := newBar(s, Row, 0)
	dom.SetAttr(bad, "data-row", "x")
	if _, _, ok := Classify(bad, s); ok {
		t.Error("bar with malformed index classified")
	}
}

func TestOrientation(t *testing.T) {
	tests := []struct {
		o            Orientation
		name, offset string
	}{
		{Row, "row", "top"},
		{Column, "column", "left"},
	}
	for _, tt := range tests {
		if tt.o.String() != tt.name || tt.o.Offset() != tt.offset {
			t.Errorf("%v: String() = %q, Offset() = %q", tt.o, tt.o.String(), tt.o.Offset())
		}
	}
}
