package model_test

import (
	"testing"

	"github.com/cozy/docupgrade/model"
	"github.com/cozy/docupgrade/test/builder"
	"github.com/stretchr/testify/require"
)

var (
	doc   = builder.Doc
	p     = builder.P
	b     = builder.B
	div   = builder.Div
	span  = builder.Span
	ul    = builder.Ul
	li    = builder.Li
	br    = builder.Br
	attrs = func(kv ...string) builder.Attrs {
		a := builder.Attrs{}
		for i := 0; i+1 < len(kv); i += 2 {
			a[kv[i]] = kv[i+1]
		}
		return a
	}
)

func render(t *testing.T, d *model.Document) string {
	t.Helper()
	out, err := d.Render()
	require.NoError(t, err)
	return out
}
