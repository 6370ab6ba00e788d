// Package transform implements document upgrades: steps that rewrite a
// document tree to bring it from one schema version to the next, the
// registry that orders them, and the procedure that runs them.
package transform

import (
	"fmt"

	"github.com/cozy/docupgrade/model"
	"github.com/juju/errors"
	"golang.org/x/net/html"
)

// Env is the context handed to every step (current user, session settings,
// and so on). Steps may read it but must not change it.
type Env map[string]interface{}

// A Step rewrites a document body in place, to conform to the version it is
// registered for. Returning an error (or panicking) aborts the whole upgrade
// of the document, not just this step.
//
// Steps run strictly one after the other, each one on the tree left by the
// previous one.
type Step func(body *html.Node, env Env) error

// StepRef identifies a registered step.
type StepRef struct {
	Version string
	Key     string
}

func (s StepRef) String() string {
	return s.Version + "/" + s.Key
}

// StepError reports the step that made an upgrade fail.
type StepError struct {
	Step StepRef
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("upgrade step %s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Result is the outcome of an upgrade. It holds either the upgraded body, or
// an error along with the body as it was before the upgrade started. A
// partially upgraded body is never exposed.
type Result struct {
	// The upgraded body on success, the untouched original on failure.
	Body *html.Node
	// The version the body was upgraded to. Empty when nothing ran.
	Target string
	// The steps that ran, in order. On failure, this includes the failing
	// step.
	Applied []StepRef
	// Why the upgrade failed.
	Err error
}

// OK creates a successful result.
func OK(body *html.Node, target string, applied []StepRef) Result {
	return Result{Body: body, Target: target, Applied: applied}
}

// Fail creates a failed result, carrying the pre-upgrade snapshot.
func Fail(err error, snapshot *html.Node, applied []StepRef) Result {
	return Result{Body: snapshot, Applied: applied, Err: err}
}

// Failed tells if the upgrade was abandoned.
func (r Result) Failed() bool {
	return r.Err != nil
}

// Apply runs, in version order, the steps of every version of the registry
// greater than declared. The steps work on a copy of body, which is left
// untouched whatever happens; on success, the result holds the copy.
func Apply(reg *Registry, body *html.Node, declared string, env Env) Result {
	sequence, err := reg.Sequence(declared)
	if err != nil {
		return Fail(errors.Annotate(err, "cannot upgrade"), body, nil)
	}
	if len(sequence) == 0 {
		return OK(body, "", nil)
	}

	work := model.CloneNode(body)
	var applied []StepRef
	for _, v := range sequence {
		for _, step := range reg.Steps(v) {
			ref := StepRef{Version: v, Key: step.Key}
			applied = append(applied, ref)
			if err := runStep(step.Upgrade, work, env); err != nil {
				return Fail(&StepError{Step: ref, Err: err}, body, applied)
			}
		}
	}
	return OK(work, sequence[len(sequence)-1], applied)
}

// runStep calls step, turning a panic into an error.
func runStep(step Step, body *html.Node, env Env) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("panic: %v", r)
		}
	}()
	return step(body, env)
}
