package model

import (
	"strings"

	"golang.org/x/net/html"
)

// Invoke a callback for n and all its descendants, in document order. When
// the callback returns false for a given node, that node's children will not
// be recursed over.
//
// The callback must not detach the node it is given or its siblings; collect
// the nodes with Elements first when the tree is going to be rewritten.
func Walk(n *html.Node, fn func(*html.Node) bool) {
	if !fn(n) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		Walk(c, fn)
	}
}

// Elements returns the descendant elements of root (root excluded) whose tag
// is one of tags, in document order. With no tag given, every element is
// returned. The result is a snapshot, so it is safe to mutate the tree while
// iterating over it.
func Elements(root *html.Node, tags ...string) []*html.Node {
	var result []*html.Node
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		Walk(c, func(n *html.Node) bool {
			if n.Type == html.ElementNode && matchTag(n, tags) {
				result = append(result, n)
			}
			return true
		})
	}
	return result
}

func matchTag(n *html.Node, tags []string) bool {
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

// Unwrap replaces n by its children.
func Unwrap(n *html.Node) {
	parent := n.Parent
	if parent == nil {
		return
	}
	for c := n.FirstChild; c != nil; c = n.FirstChild {
		n.RemoveChild(c)
		parent.InsertBefore(c, n)
	}
	parent.RemoveChild(n)
}

// Detach removes n from its parent, if it has one.
func Detach(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// TextContent concatenates all the text nodes found in n and its children.
func TextContent(n *html.Node) string {
	var sb strings.Builder
	Walk(n, func(c *html.Node) bool {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
		return true
	})
	return sb.String()
}
