package model

import (
	"strings"

	"golang.org/x/net/html"
)

// Elements that are allowed to self-close in HTML. Every other element
// written as <tag/> is treated by the HTML5 parser as an open tag, which
// swallows the rest of the document into it.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// Repair rewrites self-closing non-void elements as an explicit open/close
// pair, so that <span class="x"/> keeps its siblings. Only tags are touched:
// attribute values, comments and the content of raw text elements such as
// <script> are copied byte for byte. Other structural problems (unclosed or
// misnested tags) are left to the tree builder, which recovers from them the
// way browsers do.
func Repair(markup string) string {
	if !strings.Contains(markup, "/>") {
		return markup
	}
	var buf strings.Builder
	consumed := 0
	z := html.NewTokenizer(strings.NewReader(markup))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			// Whatever the tokenizer gave up on goes through untouched.
			buf.WriteString(markup[consumed:])
			return buf.String()
		}
		// TagName lowercases the tokenizer buffer, so copy the raw bytes first.
		raw := string(z.Raw())
		consumed += len(raw)
		if tt != html.SelfClosingTagToken {
			buf.WriteString(raw)
			continue
		}
		name, _ := z.TagName()
		if voidElements[string(name)] {
			buf.WriteString(raw)
			continue
		}
		tag := raw[1 : 1+len(name)]
		buf.WriteString(strings.TrimRight(raw[:len(raw)-2], " \t\r\n\f"))
		buf.WriteString("></")
		buf.WriteString(tag)
		buf.WriteString(">")
	}
}
