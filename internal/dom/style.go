package dom

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

type declaration struct {
	prop  string
	value string
}

// parseStyle splits an inline style attribute into ordered declarations.
func parseStyle(s string) []declaration {
	var decls []declaration
	for _, part := range strings.Split(s, ";") {
		prop, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		prop = strings.ToLower(strings.TrimSpace(prop))
		if prop == "" {
			continue
		}
		decls = append(decls, declaration{prop: prop, value: strings.TrimSpace(value)})
	}
	return decls
}

func formatStyle(decls []declaration) string {
	parts := make([]string, 0, len(decls))
	for _, d := range decls {
		parts = append(parts, d.prop+": "+d.value)
	}
	return strings.Join(parts, "; ")
}

// Style returns the inline value of a CSS property.
func Style(n *html.Node, prop string) (string, bool) {
	raw, ok := Attr(n, "style")
	if !ok {
		return "", false
	}
	prop = strings.ToLower(prop)
	for _, d := range parseStyle(raw) {
		if d.prop == prop {
			return d.value, true
		}
	}
	return "", false
}

// SetStyle sets an inline CSS property, keeping the order of the others.
func SetStyle(n *html.Node, prop, value string) {
	raw, _ := Attr(n, "style")
	decls := parseStyle(raw)
	prop = strings.ToLower(prop)
	for i := range decls {
		if decls[i].prop == prop {
			decls[i].value = value
			SetAttr(n, "style", formatStyle(decls))
			return
		}
	}
	decls = append(decls, declaration{prop: prop, value: value})
	SetAttr(n, "style", formatStyle(decls))
}

// RemoveStyle deletes an inline CSS property.
func RemoveStyle(n *html.Node, prop string) {
	raw, ok := Attr(n, "style")
	if !ok {
		return
	}
	prop = strings.ToLower(prop)
	var kept []declaration
	for _, d := range parseStyle(raw) {
		if d.prop != prop {
			kept = append(kept, d)
		}
	}
	if len(kept) == 0 {
		RemoveAttr(n, "style")
		return
	}
	SetAttr(n, "style", formatStyle(kept))
}

// PxStyle returns a pixel-valued property as a number.
// Missing or unparsable values read as 0.
func PxStyle(n *html.Node, prop string) float64 {
	v, ok := PxStyleOK(n, prop)
	if !ok {
		return 0
	}
	return v
}

// PxStyleOK is PxStyle with an explicit presence result.
func PxStyleOK(n *html.Node, prop string) (float64, bool) {
	raw, ok := Style(n, prop)
	if !ok {
		return 0, false
	}
	raw = strings.TrimSuffix(strings.TrimSpace(raw), "px")
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// SetPxStyle writes a pixel-valued property.
func SetPxStyle(n *html.Node, prop string, v float64) {
	SetStyle(n, prop, FormatPx(v))
}

// FormatPx renders v as a CSS pixel length.
func FormatPx(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}
