package basic

import (
	"github.com/cozy/docupgrade/transform"
	"github.com/juju/errors"
)

// Actions understood by FromRule.
const (
	ActionSetAttr     = "set_attr"
	ActionRemoveAttr  = "remove_attr"
	ActionRenameTag   = "rename_tag"
	ActionRenameClass = "rename_class"
	ActionUnwrap      = "unwrap"
	ActionRemove      = "remove"
)

// A Rule describes one of the steps of this package in plain data, so that
// migrations can be written in a configuration file.
type Rule struct {
	Version string `toml:"version"`
	Key     string `toml:"key"`
	Action  string `toml:"action"`
	Tag     string `toml:"tag,omitempty"`
	To      string `toml:"to,omitempty"`
	Attr    string `toml:"attr,omitempty"`
	Value   string `toml:"value,omitempty"`
	Class   string `toml:"class,omitempty"`
}

// FromRule builds the step a rule describes.
func FromRule(r Rule) (transform.Step, error) {
	switch r.Action {
	case ActionSetAttr:
		if r.Attr == "" {
			return nil, errors.NotValidf("rule %q: %s without attr", r.Key, r.Action)
		}
		return SetAttr(r.Tag, r.Attr, r.Value), nil
	case ActionRemoveAttr:
		if r.Attr == "" {
			return nil, errors.NotValidf("rule %q: %s without attr", r.Key, r.Action)
		}
		return RemoveAttr(r.Tag, r.Attr), nil
	case ActionRenameTag:
		if r.Tag == "" || r.To == "" {
			return nil, errors.NotValidf("rule %q: %s without tag and to", r.Key, r.Action)
		}
		return RenameTag(r.Tag, r.To), nil
	case ActionRenameClass:
		if r.Class == "" {
			return nil, errors.NotValidf("rule %q: %s without class", r.Key, r.Action)
		}
		return RenameClass(r.Class, r.To), nil
	case ActionUnwrap:
		if r.Tag == "" {
			return nil, errors.NotValidf("rule %q: %s without tag", r.Key, r.Action)
		}
		return Unwrap(r.Tag), nil
	case ActionRemove:
		if r.Tag == "" {
			return nil, errors.NotValidf("rule %q: %s without tag", r.Key, r.Action)
		}
		return Remove(r.Tag), nil
	default:
		return nil, errors.NotValidf("rule %q: action %q", r.Key, r.Action)
	}
}

// RegisterRules registers the step of every rule, in order.
func RegisterRules(reg *transform.Registry, rules []Rule) error {
	for _, r := range rules {
		step, err := FromRule(r)
		if err != nil {
			return errors.Trace(err)
		}
		if err := reg.Register(r.Version, r.Key, step); err != nil {
			return errors.Annotatef(err, "rule %q", r.Key)
		}
	}
	return nil
}
