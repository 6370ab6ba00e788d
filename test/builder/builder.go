// Package builder provides helpers to write document trees in tests, e.g.
// Doc(P("hello ", B("world"))).
package builder

import (
	"fmt"
	"sort"

	"github.com/cozy/docupgrade/model"
	"golang.org/x/net/html"
)

// Attrs can be passed to an element builder to set attributes.
type Attrs map[string]string

// NodeBuilder builds an element. It takes any mix of Attrs, strings (turned
// into text nodes) and *html.Node children.
type NodeBuilder func(args ...interface{}) *html.Node

// Element creates a builder for the given tag.
func Element(tag string) NodeBuilder {
	return func(args ...interface{}) *html.Node {
		n := model.NewBody()
		model.Rename(n, tag)
		for _, arg := range args {
			switch a := arg.(type) {
			case Attrs:
				// Sorted, so that rendered output is stable.
				for _, k := range sortedKeys(a) {
					model.SetAttr(n, k, a[k])
				}
			case string:
				n.AppendChild(Text(a))
			case *html.Node:
				n.AppendChild(a)
			default:
				panic(fmt.Errorf("Unexpected builder argument %T", arg))
			}
		}
		return n
	}
}

// Text creates a text node.
func Text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// Doc creates a document whose body holds the given top-level nodes.
func Doc(children ...*html.Node) *model.Document {
	body := model.NewBody()
	for _, c := range children {
		body.AppendChild(c)
	}
	return &model.Document{Body: body}
}

func sortedKeys(a Attrs) []string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var (
	P    = Element("p")
	B    = Element("b")
	Em   = Element("em")
	Div  = Element("div")
	Span = Element("span")
	Font = Element("font")
	Ul   = Element("ul")
	Li   = Element("li")
	H1   = Element("h1")
	Br   = Element("br")
	Img  = Element("img")
)
