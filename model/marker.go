package model

import "golang.org/x/net/html"

// BaselineVersion is the version of a document that carries no marker.
const BaselineVersion = "0.0"

// DefaultMarkerAttr is the attribute that holds the schema version.
const DefaultMarkerAttr = "data-oe-version"

// A Marker describes the convention used to record the schema version in a
// document: the first element carrying Attr is the marker node, and the
// attribute's value is the version.
type Marker struct {
	Attr string
}

// DefaultMarker is the marker convention used when none is configured.
var DefaultMarker = Marker{Attr: DefaultMarkerAttr}

func (m Marker) attr() string {
	if m.Attr == "" {
		return DefaultMarkerAttr
	}
	return m.Attr
}

// Find returns the marker node of the body, or nil when there is none.
func (m Marker) Find(body *html.Node) *html.Node {
	key := m.attr()
	var found *html.Node
	Walk(body, func(n *html.Node) bool {
		if found != nil {
			return false
		}
		if n != body && n.Type == html.ElementNode {
			if _, ok := Attr(n, key); ok {
				found = n
				return false
			}
		}
		return true
	})
	return found
}

// Declared returns the version the body says it conforms to, falling back to
// BaselineVersion when the marker node or its value is missing.
func (m Marker) Declared(body *html.Node) string {
	node := m.Find(body)
	if node == nil {
		return BaselineVersion
	}
	if v, _ := Attr(node, m.attr()); v != "" {
		return v
	}
	return BaselineVersion
}

// Stamp records version on the marker node. A body without a marker gets
// the attribute on its first top-level element; a body holding no element
// is left untouched, and Stamp reports false.
func (m Marker) Stamp(body *html.Node, version string) bool {
	node := m.Find(body)
	if node == nil {
		for c := body.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode {
				node = c
				break
			}
		}
	}
	if node == nil {
		return false
	}
	SetAttr(node, m.attr(), version)
	return true
}
