package basic

import (
	"testing"

	"github.com/cozy/docupgrade/model"
	"github.com/cozy/docupgrade/transform"
	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

// renderBody serializes the children of body, failing the test when it
// cannot be rendered.
func renderBody(t *testing.T, body *html.Node) string {
	t.Helper()
	out, err := model.RenderChildren(body)
	require.NoError(t, err)
	return out
}

func TestSteps(t *testing.T) {
	apply := func(step transform.Step, in, expected, msg string) {
		doc := model.Parse(in)
		require.NoError(t, step(doc.Body, nil), msg)
		assert.Equal(t, expected, renderBody(t, doc.Body), msg)
	}

	apply(SetAttr("p", "data-migrated", "true"),
		"<p>a</p><div>b</div><p>c</p>",
		`<p data-migrated="true">a</p><div>b</div><p data-migrated="true">c</p>`,
		"sets attribute on matching tags")

	apply(SetAttr("", "dir", "ltr"),
		"<div><p>a</p></div>",
		`<div dir="ltr"><p dir="ltr">a</p></div>`,
		"empty tag matches every element")

	apply(RemoveAttr("p", "style"),
		`<p style="color: red" class="x">a</p><div style="x">b</div>`,
		`<p class="x">a</p><div style="x">b</div>`,
		"removes attribute")

	apply(RenameTag("font", "span"),
		`<p><font color="red">a</font></p>`,
		`<p><span color="red">a</span></p>`,
		"renames deprecated tag")

	apply(RenameClass("btn-default", "btn-secondary"),
		`<a class="btn btn-default">a</a><a class="btn-default">b</a>`,
		`<a class="btn btn-secondary">a</a><a class="btn-secondary">b</a>`,
		"renames class")

	apply(RenameClass("o_legacy", ""),
		`<div class="o_legacy">a</div>`,
		`<div>a</div>`,
		"drops class when renamed to nothing")

	apply(Unwrap("span"),
		`<p>a<span>b<span>c</span></span>d</p>`,
		`<p>abcd</p>`,
		"unwraps nested elements")

	apply(Remove("script"),
		`<p>a</p><script>alert(1)</script><p>b</p>`,
		`<p>a</p><p>b</p>`,
		"removes elements")
}

func TestStepsRejectEmptyTag(t *testing.T) {
	doc := model.Parse("<p>a</p>")
	assert.True(t, errors.Is(Unwrap("")(doc.Body, nil), errors.NotValid))
	assert.True(t, errors.Is(Remove("")(doc.Body, nil), errors.NotValid))
	assert.True(t, errors.Is(RenameTag("p", "")(doc.Body, nil), errors.NotValid))
	assert.Equal(t, "<p>a</p>", renderBody(t, doc.Body))
}

func TestFromRule(t *testing.T) {
	valid := []Rule{
		{Key: "a", Action: ActionSetAttr, Tag: "p", Attr: "x", Value: "1"},
		{Key: "b", Action: ActionRemoveAttr, Attr: "x"},
		{Key: "c", Action: ActionRenameTag, Tag: "font", To: "span"},
		{Key: "d", Action: ActionRenameClass, Class: "a", To: "b"},
		{Key: "e", Action: ActionUnwrap, Tag: "span"},
		{Key: "f", Action: ActionRemove, Tag: "script"},
	}
	for _, r := range valid {
		step, err := FromRule(r)
		assert.NoError(t, err, r.Key)
		assert.NotNil(t, step, r.Key)
	}

	invalid := []Rule{
		{Key: "a", Action: ActionSetAttr, Tag: "p"},
		{Key: "b", Action: ActionRemoveAttr},
		{Key: "c", Action: ActionRenameTag, Tag: "font"},
		{Key: "d", Action: ActionRenameClass, To: "b"},
		{Key: "e", Action: ActionUnwrap},
		{Key: "f", Action: ActionRemove},
		{Key: "g", Action: "explode"},
	}
	for _, r := range invalid {
		_, err := FromRule(r)
		assert.True(t, errors.Is(err, errors.NotValid), "%s: %v", r.Key, err)
	}
}

func TestRegisterRules(t *testing.T) {
	reg := transform.NewRegistry()
	err := RegisterRules(reg, []Rule{
		{Version: "1.0", Key: "fonts", Action: ActionRenameTag, Tag: "font", To: "span"},
		{Version: "1.1", Key: "flag", Action: ActionSetAttr, Tag: "span", Attr: "data-migrated", Value: "true"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"1.0", "1.1"}, reg.Versions())

	res := transform.Apply(reg, model.Parse(`<p><font>a</font></p>`).Body, model.BaselineVersion, nil)
	require.False(t, res.Failed())
	assert.Equal(t, `<p><span data-migrated="true">a</span></p>`, renderBody(t, res.Body))

	err = RegisterRules(reg, []Rule{{Version: "1.0", Key: "fonts", Action: ActionUnwrap, Tag: "b"}})
	assert.True(t, errors.Is(err, errors.AlreadyExists), "%v", err)

	err = RegisterRules(reg, []Rule{{Version: "x", Key: "bad", Action: ActionUnwrap, Tag: "b"}})
	assert.True(t, errors.Is(err, errors.NotValid), "%v", err)
}
