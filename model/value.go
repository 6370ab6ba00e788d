// Package model defines the document that upgrades operate on: a markup
// value, the tree it parses into, and the marker node that records which
// schema version the document was last written for.
package model

// A Value is the serialized form of a document, as it is stored by the
// surrounding editor. Trusted values have already passed a content-safety
// check and should not be sanitized again downstream; code that transforms a
// value must hand back a value with the same trust.
type Value struct {
	HTML    string
	Trusted bool
}

// Plain wraps markup that has not been vetted.
func Plain(markup string) Value {
	return Value{HTML: markup}
}

// Trusted wraps markup flagged as safe.
func Trusted(markup string) Value {
	return Value{HTML: markup, Trusted: true}
}

// String returns the markup itself, without any trace of the trust flag.
func (v Value) String() string {
	return v.HTML
}

// WithHTML returns a value holding the given markup and the trust of v.
func (v Value) WithHTML(markup string) Value {
	return Value{HTML: markup, Trusted: v.Trusted}
}
