package model

import (
	"bytes"
	"strings"

	"github.com/juju/errors"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// A Document is the parsed, mutable form of a Value. Its Body is a detached
// container element whose children are the top-level nodes of the markup.
//
// Unlike a Value, a Document is meant to be changed in place: upgrade steps
// receive the body and rewrite it. A Document is owned by a single caller at
// a time.
type Document struct {
	Body *html.Node
}

// bodyContext is the element the markup is parsed as the content of.
func bodyContext() *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
}

// NewBody creates an empty container for top-level nodes.
func NewBody() *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Div,
		Data:     "div",
	}
}

// Parse repairs and parses markup into a document. It never fails: the
// tree builder recovers from any malformed input, and a document that
// cannot be read at all comes back empty.
func Parse(markup string) *Document {
	body := NewBody()
	if markup == "" {
		return &Document{Body: body}
	}
	nodes, err := html.ParseFragment(strings.NewReader(Repair(markup)), bodyContext())
	if err != nil {
		return &Document{Body: body}
	}
	for _, n := range nodes {
		body.AppendChild(n)
	}
	return &Document{Body: body}
}

// Render serializes the children of the body, which is the markup the
// document was parsed from after any upgrade.
func (d *Document) Render() (string, error) {
	return RenderChildren(d.Body)
}

// RenderChildren returns the inner markup of n. It fails when a node cannot
// be serialized, such as a void element that was given children; no partial
// markup is returned then.
func RenderChildren(n *html.Node) (string, error) {
	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", errors.Annotatef(err, "rendering <%s>", c.Data)
		}
	}
	return buf.String(), nil
}

// Clone makes a deep copy of the document, sharing nothing with d.
func (d *Document) Clone() *Document {
	return &Document{Body: CloneNode(d.Body)}
}

// CloneNode deep copies n and its descendants. The copy is detached: it has
// no parent or siblings.
func CloneNode(n *html.Node) *html.Node {
	c := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
	}
	if len(n.Attr) > 0 {
		c.Attr = make([]html.Attribute, len(n.Attr))
		copy(c.Attr, n.Attr)
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		c.AppendChild(CloneNode(child))
	}
	return c
}
