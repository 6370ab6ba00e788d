package transform

import (
	"sort"

	"github.com/hashicorp/go-version"
	"github.com/juju/errors"
)

// A NamedStep is an upgrade step along with the key it was registered with.
// Keys only need to be unique within one version.
type NamedStep struct {
	Key     string
	Upgrade Step
}

type versionEntry struct {
	token string
	v     *version.Version
	steps []NamedStep
}

// A Registry holds the upgrade steps known to the program, grouped by the
// version they bring a document to. It is populated once, before documents
// are processed, and is then only read.
type Registry struct {
	// Sorted by ascending version.
	entries []*versionEntry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a step that brings documents to the given version. Steps
// sharing a version run in the order they were registered. Versions that are
// numerically equal ("1" and "1.0") are the same version, and keep the
// spelling they were first registered with.
func (r *Registry) Register(token, key string, step Step) error {
	v, err := ParseVersion(token)
	if err != nil {
		return errors.Trace(err)
	}
	if key == "" {
		return errors.NotValidf("empty step key for version %q", token)
	}
	if step == nil {
		return errors.NotValidf("nil step %q for version %q", key, token)
	}

	i := sort.Search(len(r.entries), func(i int) bool {
		return r.entries[i].v.GreaterThanOrEqual(v)
	})
	if i < len(r.entries) && r.entries[i].v.Equal(v) {
		entry := r.entries[i]
		for _, s := range entry.steps {
			if s.Key == key {
				return errors.AlreadyExistsf("step %q for version %q", key, entry.token)
			}
		}
		entry.steps = append(entry.steps, NamedStep{Key: key, Upgrade: step})
		return nil
	}

	entry := &versionEntry{token: token, v: v, steps: []NamedStep{{Key: key, Upgrade: step}}}
	r.entries = append(r.entries, nil)
	copy(r.entries[i+1:], r.entries[i:])
	r.entries[i] = entry
	return nil
}

// MustRegister is like Register, but panics on error. It is meant for
// registries built from static tables at init time.
func (r *Registry) MustRegister(token, key string, step Step) {
	if err := r.Register(token, key, step); err != nil {
		panic(err)
	}
}

// Versions returns all the known versions, in ascending order.
func (r *Registry) Versions() []string {
	result := make([]string, len(r.entries))
	for i, e := range r.entries {
		result[i] = e.token
	}
	return result
}

// Target returns the highest known version, or "" for an empty registry.
func (r *Registry) Target() string {
	if len(r.entries) == 0 {
		return ""
	}
	return r.entries[len(r.entries)-1].token
}

// Steps returns the steps registered for a version, in registration order.
func (r *Registry) Steps(token string) []NamedStep {
	if e := r.lookup(token); e != nil {
		result := make([]NamedStep, len(e.steps))
		copy(result, e.steps)
		return result
	}
	return nil
}

func (r *Registry) lookup(token string) *versionEntry {
	v, err := ParseVersion(token)
	if err != nil {
		return nil
	}
	for _, e := range r.entries {
		if e.v.Equal(v) {
			return e
		}
	}
	return nil
}

// Sequence returns the versions strictly greater than declared, in
// ascending order: the versions a document declaring that version still has
// to be upgraded through.
func (r *Registry) Sequence(declared string) ([]string, error) {
	v, err := ParseVersion(declared)
	if err != nil {
		return nil, errors.Trace(err)
	}
	var result []string
	for _, e := range r.entries {
		if e.v.GreaterThan(v) {
			result = append(result, e.token)
		}
	}
	return result, nil
}
