// Package dialog describes the general tab of the row properties dialog.
package dialog

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"golang.org/x/net/html"

	"github.com/dshills/tablestorm/internal/dom"
)

// Kind is a form component type.
type Kind string

const (
	// KindSelectBox is a single choice from Items.
	KindSelectBox Kind = "selectbox"
	// KindInput is free text.
	KindInput Kind = "input"
)

// Item is one choice of a select box.
type Item struct {
	Text  string
	Value string
}

// Component is one form field.
type Component struct {
	Type  Kind
	Name  string
	Label string
	Items []Item
}

// RowData is the state of a row as the dialog edits it.
type RowData struct {
	Type   string
	Align  string
	Height string
	Class  string
}

var baseComponents = []Component{
	{
		Type:  KindSelectBox,
		Name:  "type",
		Label: "Row type",
		Items: []Item{
			{Text: "Header", Value: "header"},
			{Text: "Body", Value: "body"},
			{Text: "Footer", Value: "footer"},
		},
	},
	{
		Type:  KindSelectBox,
		Name:  "align",
		Label: "Alignment",
		Items: []Item{
			{Text: "None", Value: ""},
			{Text: "Left", Value: "left"},
			{Text: "Center", Value: "center"},
			{Text: "Right", Value: "right"},
		},
	},
	{
		Type:  KindInput,
		Name:  "height",
		Label: "Height",
	},
}

// GeneralTab returns the row type, alignment and height fields, followed
// by a class select box when classList names at least one class.
func GeneralTab(classList string) ([]Component, error) {
	out := make([]Component, 0, len(baseComponents)+1)
	for _, c := range baseComponents {
		c.Items = append([]Item(nil), c.Items...)
		out = append(out, c)
	}

	classes, err := ListItems(classList)
	if err != nil {
		return nil, err
	}
	if len(classes) > 0 {
		out = append(out, Component{
			Type:  KindSelectBox,
			Name:  "class",
			Label: "Class",
			Items: classes,
		})
	}
	return out, nil
}

// ListItems parses a class list. Entries are plain strings, objects with
// a title (or text) and value, or groups with a nested menu; groups are
// flattened in order. An empty list is valid.
func ListItems(classList string) ([]Item, error) {
	if strings.TrimSpace(classList) == "" {
		return nil, nil
	}
	if !gjson.Valid(classList) {
		return nil, ErrInvalidClassList
	}
	list := gjson.Parse(classList)
	if !list.IsArray() {
		return nil, ErrInvalidClassList
	}
	return appendItems(nil, list), nil
}

func appendItems(out []Item, list gjson.Result) []Item {
	list.ForEach(func(_, v gjson.Result) bool {
		switch {
		case v.Type == gjson.String:
			out = append(out, Item{Text: v.String(), Value: v.String()})
		case v.IsObject():
			if menu := v.Get("menu"); menu.IsArray() {
				out = appendItems(out, menu)
				break
			}
			text := v.Get("title")
			if !text.Exists() {
				text = v.Get("text")
			}
			out = append(out, Item{Text: text.String(), Value: v.Get("value").String()})
		}
		return true
	})
	return out
}

// ReadRow extracts the dialog data of a tr.
func ReadRow(tr *html.Node) RowData {
	data := RowData{Type: "body"}
	if tr == nil {
		return data
	}
	if p := tr.Parent; p != nil {
		switch {
		case dom.IsElement(p, "thead"):
			data.Type = "header"
		case dom.IsElement(p, "tfoot"):
			data.Type = "footer"
		}
	}
	if v, ok := dom.Style(tr, "text-align"); ok {
		data.Align = v
	} else if v, ok := dom.Attr(tr, "align"); ok {
		data.Align = strings.ToLower(v)
	}
	if v, ok := dom.Style(tr, "height"); ok {
		data.Height = v
	} else if v, ok := dom.Attr(tr, "height"); ok {
		data.Height = v
	}
	data.Class, _ = dom.Attr(tr, "class")
	return data
}

// Render encodes the tab and its initial data as dialog JSON. The class
// field is only written when the tab has a class select box.
func Render(components []Component, data RowData) (string, error) {
	doc := `{"name":"general","title":"General"}`
	var err error
	set := func(path string, value any) {
		if err == nil {
			doc, err = sjson.Set(doc, path, value)
		}
	}

	hasClass := false
	for i, c := range components {
		base := fmt.Sprintf("items.%d", i)
		set(base+".type", string(c.Type))
		set(base+".name", c.Name)
		set(base+".label", c.Label)
		for j, it := range c.Items {
			set(fmt.Sprintf("%s.items.%d.text", base, j), it.Text)
			set(fmt.Sprintf("%s.items.%d.value", base, j), it.Value)
		}
		if c.Name == "class" {
			hasClass = true
		}
	}

	set("data.type", data.Type)
	set("data.align", data.Align)
	set("data.height", data.Height)
	if hasClass {
		set("data.class", data.Class)
	}
	if err != nil {
		return "", fmt.Errorf("rendering dialog: %w", err)
	}
	return doc, nil
}
