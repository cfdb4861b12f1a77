package dom

import (
	"strings"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Predicate tests a node.
type Predicate func(n *html.Node) bool

// IsElement reports whether n is an element whose tag is one of tags.
// With no tags it matches any element.
func IsElement(n *html.Node, tags ...string) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	if len(tags) == 0 {
		return true
	}
	for _, t := range tags {
		if strings.EqualFold(n.Data, t) {
			return true
		}
	}
	return false
}

// Tag returns a predicate matching elements with one of the given tags.
func Tag(tags ...string) Predicate {
	return func(n *html.Node) bool { return IsElement(n, tags...) }
}

// Is returns a predicate matching exactly the node want.
func Is(want *html.Node) Predicate {
	return func(n *html.Node) bool { return n == want }
}

// Closest walks from n (inclusive) towards the document root and returns the
// first node matching pred. The walk stops after testing a node for which
// isRoot returns true. isRoot may be nil.
func Closest(n *html.Node, pred, isRoot Predicate) (*html.Node, bool) {
	for cur := n; cur != nil; cur = cur.Parent {
		if pred(cur) {
			return cur, true
		}
		if isRoot != nil && isRoot(cur) {
			break
		}
	}
	return nil, false
}

// ClosestContentEditable returns the nearest ancestor-or-self carrying a
// contenteditable attribute, bounded by isRoot.
func ClosestContentEditable(n *html.Node, isRoot Predicate) (*html.Node, bool) {
	return Closest(n, func(c *html.Node) bool {
		return IsElement(c) && HasAttr(c, "contenteditable")
	}, isRoot)
}

// IsContentEditableTrue reports whether n is explicitly editable.
// An empty attribute value counts as "true".
func IsContentEditableTrue(n *html.Node) bool {
	v, ok := Attr(n, "contenteditable")
	if !ok {
		return false
	}
	v = strings.ToLower(strings.TrimSpace(v))
	return v == "" || v == "true"
}

// Contains reports whether n is ancestor or n itself.
func Contains(ancestor, n *html.Node) bool {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur == ancestor {
			return true
		}
	}
	return false
}

// InBody reports whether n is attached under a <body> element.
func InBody(n *html.Node) bool {
	_, ok := Closest(n, Tag("body"), nil)
	return ok
}

// Children returns the element children of n, optionally filtered by tag.
func Children(n *html.Node, tags ...string) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if IsElement(c, tags...) {
			out = append(out, c)
		}
	}
	return out
}

// NewElement creates a detached element.
func NewElement(tag string, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
		Attr:     attrs,
	}
}

// Detach removes n from its parent. Detaching a detached node is a no-op.
func Detach(n *html.Node) {
	if n != nil && n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// QueryAll evaluates an XPath expression relative to root. An invalid
// expression matches nothing.
func QueryAll(root *html.Node, expr string) []*html.Node {
	if root == nil || expr == "" {
		return nil
	}
	nodes, err := htmlquery.QueryAll(root, expr)
	if err != nil {
		return nil
	}
	return nodes
}

// QueryOne returns the first match of an XPath expression relative to root.
func QueryOne(root *html.Node, expr string) (*html.Node, bool) {
	nodes := QueryAll(root, expr)
	if len(nodes) == 0 {
		return nil, false
	}
	return nodes[0], true
}

// ValidateQuery reports whether expr compiles as an XPath expression.
func ValidateQuery(expr string) error {
	_, err := htmlquery.QueryAll(&html.Node{Type: html.DocumentNode}, expr)
	return err
}

// ClassQuery returns an XPath expression matching descendants carrying class c.
func ClassQuery(c string) string {
	return ".//*[contains(concat(' ', normalize-space(@class), ' '), ' " + c + " ')]"
}

// Text returns the concatenated text content of n.
func Text(n *html.Node) string {
	return htmlquery.InnerText(n)
}

// Parse reads an HTML document.
func Parse(s string) (*html.Node, error) {
	return htmlquery.Parse(strings.NewReader(s))
}

// Render serialises n and its subtree.
func Render(n *html.Node) string {
	return htmlquery.OutputHTML(n, true)
}
