// Package upgrade brings stored documents up to date with the latest schema
// version, as they are loaded into an editing session.
package upgrade

import (
	"github.com/cozy/docupgrade/model"
	"github.com/cozy/docupgrade/transform"
	"github.com/juju/errors"
	"go.uber.org/zap"
)

// Event describes an upgrade attempt, for auditing. Err is set when the
// attempt was abandoned and the original content kept.
type Event struct {
	Declared string
	Target   string
	Applied  []transform.StepRef
	Err      error
}

// Option configures an Upgrader.
type Option func(*Upgrader)

// WithEnv sets the context passed to every step.
func WithEnv(env transform.Env) Option {
	return func(u *Upgrader) { u.env = env }
}

// WithMarker sets the convention used to find the document version.
func WithMarker(m model.Marker) Option {
	return func(u *Upgrader) { u.marker = m }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(u *Upgrader) {
		if logger != nil {
			u.logger = logger
		}
	}
}

// WithAudit registers a function called after every upgrade attempt that
// had steps to run, including the failed ones.
func WithAudit(fn func(Event)) Option {
	return func(u *Upgrader) { u.audit = fn }
}

// cacheEntry is the last value processed and what it was turned into.
type cacheEntry struct {
	input  model.Value
	output model.Value
}

// An Upgrader upgrades the documents of one editing session. It remembers
// the last value it processed, so that feeding it the same value, or the
// value it returned, costs nothing.
//
// An Upgrader is not safe for concurrent use; give each session its own.
type Upgrader struct {
	registry *transform.Registry
	env      transform.Env
	marker   model.Marker
	logger   *zap.Logger
	audit    func(Event)
	cache    *cacheEntry
}

// New creates an upgrader applying the steps of reg. The registry must be
// fully populated before the first call to Process.
func New(reg *transform.Registry, opts ...Option) *Upgrader {
	u := &Upgrader{
		registry: reg,
		marker:   model.DefaultMarker,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Process returns value upgraded to the latest known version. The returned
// value is trusted if and only if value is.
//
// Process never fails: if any step fails, or the upgraded tree cannot be
// serialized, the whole upgrade is abandoned and the content is returned as
// it was parsed, before any step ran.
func (u *Upgrader) Process(value model.Value) model.Value {
	if out, ok := u.cached(value); ok {
		u.logger.Debug("Document already processed")
		return out
	}

	out := value.WithHTML(u.safeUpgrade(value.String()))
	u.cache = &cacheEntry{input: value, output: out}
	return out
}

// Invalidate forgets the last processed value.
func (u *Upgrader) Invalidate() {
	u.cache = nil
}

func (u *Upgrader) cached(value model.Value) (model.Value, bool) {
	if u.cache == nil || value.Trusted != u.cache.output.Trusted {
		return model.Value{}, false
	}
	str := value.String()
	if str == u.cache.input.String() || str == u.cache.output.String() {
		return u.cache.output, true
	}
	return model.Value{}, false
}

// safeUpgrade is upgrade, returning markup as is if anything goes wrong
// outside of the steps themselves.
func (u *Upgrader) safeUpgrade(markup string) (result string) {
	defer func() {
		if r := recover(); r != nil {
			u.logger.Error("Document upgrade crashed", zap.Any("panic", r))
			result = markup
		}
	}()
	return u.upgrade(markup)
}

func (u *Upgrader) upgrade(markup string) string {
	doc := model.Parse(markup)
	original, err := doc.Render()
	if err != nil {
		u.logger.Warn("Cannot render document, content kept as is", zap.Error(err))
		return markup
	}
	target := u.registry.Target()
	if target == "" {
		return original
	}

	declared := u.marker.Declared(doc.Body)
	if _, err := transform.ParseVersion(declared); err != nil {
		u.logger.Debug("Invalid document version, upgrading from baseline",
			zap.String("declared", declared))
		declared = model.BaselineVersion
	}
	if declared == target {
		return original
	}

	res := transform.Apply(u.registry, doc.Body, declared, u.env)
	if res.Failed() {
		u.abandon(Event{Declared: declared, Target: target, Applied: res.Applied, Err: res.Err})
		return original
	}
	if res.Target == "" {
		return original
	}

	u.marker.Stamp(res.Body, res.Target)
	upgraded, err := model.RenderChildren(res.Body)
	if err != nil {
		u.abandon(Event{Declared: declared, Target: res.Target, Applied: res.Applied,
			Err: errors.Annotate(err, "cannot render upgraded document")})
		return original
	}
	u.logger.Debug("Document upgraded",
		zap.String("declared", declared),
		zap.String("target", res.Target),
		zap.Int("steps", len(res.Applied)))
	u.notify(Event{Declared: declared, Target: res.Target, Applied: res.Applied})
	return upgraded
}

// abandon reports an upgrade whose result is thrown away.
func (u *Upgrader) abandon(e Event) {
	u.logger.Warn("Document upgrade abandoned",
		zap.String("declared", e.Declared),
		zap.String("target", e.Target),
		zap.Error(e.Err))
	u.notify(e)
}

func (u *Upgrader) notify(e Event) {
	if u.audit != nil {
		u.audit(e)
	}
}
