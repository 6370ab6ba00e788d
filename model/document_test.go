package model_test

import (
	"testing"

	. "github.com/cozy/docupgrade/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRender(t *testing.T) {
	roundtrip := func(markup, expected, msg string) {
		assert.Equal(t, expected, render(t, Parse(markup)), msg)
	}

	roundtrip("<p>hello</p>", "<p>hello</p>", "simple paragraph")
	roundtrip("", "", "empty input")
	roundtrip("just text", "just text", "text without element")
	roundtrip("<p>one</p><p>two</p>", "<p>one</p><p>two</p>", "siblings")
	roundtrip("<p>hi<br/>there</p>", "<p>hi<br/>there</p>", "void element")
	roundtrip(`<div data-oe-version="1.2"><p>x</p></div>`, `<div data-oe-version="1.2"><p>x</p></div>`, "marker kept")
}

func TestParseMalformed(t *testing.T) {
	assert.Equal(t, "<p><b>text</b></p>", render(t, Parse("<p><b>text</p>")))
	assert.Equal(t, "<p>open</p>", render(t, Parse("<p>open")))
	assert.Equal(t, "<div><p>a</p></div>", render(t, Parse("<div><p>a</div>")))
	assert.NotPanics(t, func() { Parse("<<<>>></b></i><p") })
}

func TestRepair(t *testing.T) {
	assert.Equal(t, `<span class="x"></span><p>a</p>`, Repair(`<span class="x"/><p>a</p>`))
	assert.Equal(t, `<t t-esc="name"></t>`, Repair(`<t t-esc="name"/>`))
	assert.Equal(t, `<br/><img src="a.png"/>`, Repair(`<br/><img src="a.png"/>`))
	assert.Equal(t, `<p>plain</p>`, Repair(`<p>plain</p>`))

	assert.Equal(t, `<T t-esc="x"></T>`, Repair(`<T t-esc="x" />`))
	assert.Equal(t, `<span></span><p`, Repair(`<span/><p`))

	// Without the repair, the paragraph would end up inside the span.
	assert.Equal(t, `<span></span><p>a</p>`, render(t, Parse(`<span/><p>a</p>`)))
}

func TestRepairLeavesValuesAndRawText(t *testing.T) {
	link := `<p><a title="x/>y" href="/a">link</a></p>`
	assert.Equal(t, link, Repair(link))
	assert.Equal(t, `<p><a title="x/&gt;y" href="/a">link</a></p>`, render(t, Parse(link)))

	script := `<script>var s = "<div/>";</script>`
	assert.Equal(t, script, Repair(script))
	assert.Equal(t, script, render(t, Parse(script)))

	comment := `<!-- <span/> --><p>a</p>`
	assert.Equal(t, comment, Repair(comment))

	// Raw text is skipped, but the tags after it are still repaired.
	assert.Equal(t, `<style>a/>b{}</style><i></i><p>x</p>`, Repair(`<style>a/>b{}</style><i/><p>x</p>`))
}

func TestRenderFailure(t *testing.T) {
	d := Parse(`<p>before <i>gone</i> after</p><p>second</p>`)
	Rename(Elements(d.Body, "i")[0], "img")

	out, err := d.Render()
	assert.Error(t, err)
	assert.Empty(t, out, "no partial markup")
}

func TestClone(t *testing.T) {
	d := Parse(`<p class="a">one<b>two</b></p>`)
	c := d.Clone()
	require.True(t, SameContent(d.Body, c.Body))

	para := c.Body.FirstChild
	SetAttr(para, "class", "b")
	para.FirstChild.Data = "changed"

	assert.Equal(t, `<p class="a">one<b>two</b></p>`, render(t, d))
	assert.Equal(t, `<p class="b">changed<b>two</b></p>`, render(t, c))
	assert.Nil(t, c.Body.Parent)
}

func TestValue(t *testing.T) {
	assert.False(t, Plain("<p>a</p>").Trusted)
	assert.True(t, Trusted("<p>a</p>").Trusted)
	assert.Equal(t, "<p>a</p>", Trusted("<p>a</p>").String())
	assert.Equal(t, Trusted("<p>b</p>"), Trusted("<p>a</p>").WithHTML("<p>b</p>"))
	assert.Equal(t, Plain("<p>b</p>"), Plain("<p>a</p>").WithHTML("<p>b</p>"))
}
