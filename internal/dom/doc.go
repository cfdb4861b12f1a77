// Package dom provides the attribute, style and tree helpers that the table
// plugin uses to read and write state on an HTML document.
//
// The document is a golang.org/x/net/html node tree. Nothing in this package
// performs layout; geometric offsets are plain inline style properties
// expressed in pixels:
//
//	dom.SetPxStyle(bar, "top", 42)
//	top := dom.PxStyle(bar, "top") // 42
//
// Lookups that may not find anything return an explicit (value, ok) pair.
// Malformed attribute text never produces an error: integer attributes that
// cannot be parsed fall back to the caller's default.
package dom
