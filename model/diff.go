package model

import (
	"sort"

	"golang.org/x/net/html"
)

// FindDiffStart returns the path (child indexes from a and b) to the first
// node where the two trees do not have the same content, and false when
// they are the same. Attributes are compared as a set.
func FindDiffStart(a, b *html.Node) ([]int, bool) {
	return findDiffStart(a, b, nil)
}

func findDiffStart(a, b *html.Node, path []int) ([]int, bool) {
	if !sameMarkup(a, b) {
		return path, true
	}
	childA, childB := a.FirstChild, b.FirstChild
	for i := 0; ; i++ {
		if childA == nil || childB == nil {
			if childA == childB {
				return nil, false
			}
			return append(path, i), true
		}
		if diff, found := findDiffStart(childA, childB, append(path, i)); found {
			return diff, true
		}
		childA, childB = childA.NextSibling, childB.NextSibling
	}
}

// SameContent tells if a and b represent the same piece of document.
func SameContent(a, b *html.Node) bool {
	_, found := FindDiffStart(a, b)
	return !found
}

// sameMarkup compares the node itself: its kind, name, text, and attributes.
func sameMarkup(a, b *html.Node) bool {
	if a.Type != b.Type || a.Data != b.Data || a.Namespace != b.Namespace {
		return false
	}
	if len(a.Attr) != len(b.Attr) {
		return false
	}
	attrsA, attrsB := sortedAttrs(a.Attr), sortedAttrs(b.Attr)
	for i := range attrsA {
		if attrsA[i] != attrsB[i] {
			return false
		}
	}
	return true
}

func sortedAttrs(attrs []html.Attribute) []html.Attribute {
	sorted := make([]html.Attribute, len(attrs))
	copy(sorted, attrs)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Namespace != sorted[j].Namespace {
			return sorted[i].Namespace < sorted[j].Namespace
		}
		return sorted[i].Key < sorted[j].Key
	})
	return sorted
}
