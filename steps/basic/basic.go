// Package basic defines common upgrade steps, whose rewrites can be reused to
// build the migrations of any document schema.
package basic

import (
	"github.com/cozy/docupgrade/model"
	"github.com/cozy/docupgrade/transform"
	"github.com/juju/errors"
	"golang.org/x/net/html"
)

// SetAttr sets an attribute on every element with the given tag. An empty tag
// matches every element.
func SetAttr(tag, attr, value string) transform.Step {
	return func(body *html.Node, env transform.Env) error {
		for _, n := range elements(body, tag) {
			model.SetAttr(n, attr, value)
		}
		return nil
	}
}

// RemoveAttr removes an attribute from every element with the given tag.
func RemoveAttr(tag, attr string) transform.Step {
	return func(body *html.Node, env transform.Env) error {
		for _, n := range elements(body, tag) {
			model.RemoveAttr(n, attr)
		}
		return nil
	}
}

// RenameTag changes every <from> element into a <to> element, keeping its
// attributes and content. It is typically used to replace deprecated tags,
// like <font> by <span>.
func RenameTag(from, to string) transform.Step {
	return func(body *html.Node, env transform.Env) error {
		if to == "" {
			return errors.NotValidf("empty target tag for %q", from)
		}
		for _, n := range elements(body, from) {
			model.Rename(n, to)
		}
		return nil
	}
}

// RenameClass replaces a class name by another one on every element carrying
// it.
func RenameClass(from, to string) transform.Step {
	return func(body *html.Node, env transform.Env) error {
		for _, n := range elements(body, "") {
			if !model.HasClass(n, from) {
				continue
			}
			model.RemoveClass(n, from)
			if to != "" {
				model.AddClass(n, to)
			}
		}
		return nil
	}
}

// Unwrap replaces every element with the given tag by its content.
func Unwrap(tag string) transform.Step {
	return func(body *html.Node, env transform.Env) error {
		if tag == "" {
			return errors.NotValidf("unwrapping every element")
		}
		for _, n := range elements(body, tag) {
			model.Unwrap(n)
		}
		return nil
	}
}

// Remove deletes every element with the given tag, content included.
func Remove(tag string) transform.Step {
	return func(body *html.Node, env transform.Env) error {
		if tag == "" {
			return errors.NotValidf("removing every element")
		}
		for _, n := range elements(body, tag) {
			model.Detach(n)
		}
		return nil
	}
}

func elements(body *html.Node, tag string) []*html.Node {
	if tag == "" {
		return model.Elements(body)
	}
	return model.Elements(body, tag)
}
