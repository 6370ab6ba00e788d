package model_test

import (
	"testing"

	. "github.com/cozy/docupgrade/model"
	"github.com/stretchr/testify/assert"
)

func TestFindDiffStart(t *testing.T) {
	start := func(a, b *Document, expected []int) {
		path, found := FindDiffStart(a.Body, b.Body)
		if expected == nil {
			assert.False(t, found, "expected no difference, got %v", path)
			return
		}
		if assert.True(t, found) {
			assert.Equal(t, expected, path)
		}
	}

	// returns nothing for identical nodes
	start(doc(p("foo"), p("bar")), doc(p("foo"), p("bar")), nil)

	// notices when one node is longer
	start(doc(p("a")), doc(p("a"), p("b")), []int{1})

	// notices when one node is shorter
	start(doc(p("a"), p("b")), doc(p("a")), []int{1})

	// notices differing text
	start(doc(p("a"), p("foo")), doc(p("a"), p("fob")), []int{1, 0})

	// notices differing tags
	start(doc(p("a"), p("b")), doc(p("a"), div("b")), []int{1})

	// notices differing attributes
	start(doc(p(attrs("class", "x"), "a")), doc(p(attrs("class", "y"), "a")), []int{0})

	// ignores attribute order
	a := p("a")
	SetAttr(a, "id", "1")
	SetAttr(a, "class", "x")
	c := p("a")
	SetAttr(c, "class", "x")
	SetAttr(c, "id", "1")
	start(doc(a), doc(c), nil)

	// looks into nested content
	start(doc(div(p("a", b("x")))), doc(div(p("a", b("y")))), []int{0, 0, 1, 0})
}

func TestSameContent(t *testing.T) {
	assert.True(t, SameContent(Parse("<p><b>text</p>").Body, doc(p(b("text"))).Body))
	assert.False(t, SameContent(Parse("<p>a</p>").Body, Parse("<p>b</p>").Body))
}
