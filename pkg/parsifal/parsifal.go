// Package parsifal provides the public API for the template engine.
package parsifal

import (
	"github.com/TheCulprit/parsifal/internal/content"
	"github.com/TheCulprit/parsifal/internal/eval"
	"github.com/TheCulprit/parsifal/internal/random"
)

// Runtime is a template interpreter with persistent state: variables,
// overrides, registry entries, intercepts and macros accumulate across its
// Parse calls. Independent generations should each use their own Runtime;
// runtimes share nothing.
type Runtime struct {
	evaluator *eval.Evaluator
	source    content.Source
	seed      int64
	seeded    bool
	libraries []string
	initErr   error
}

// New creates a new runtime with the given options.
func New(opts ...Option) *Runtime {
	r := &Runtime{}
	for _, opt := range opts {
		opt(r)
	}

	src := random.NewUnseeded()
	if r.seeded {
		src = random.New(r.seed)
	}

	evalOpts := []eval.Option{eval.WithRandom(src)}
	if r.source != nil {
		evalOpts = append(evalOpts, eval.WithSource(r.source))
	}
	r.evaluator = eval.New(evalOpts...)

	for _, dir := range r.libraries {
		if err := r.LoadLibrary(dir); err != nil {
			r.initErr = err
			break
		}
	}
	return r
}

// Parse evaluates a template and returns the generated text. For a fixed
// seed and template the output is reproducible byte for byte.
func (r *Runtime) Parse(template string) (string, error) {
	if r.initErr != nil {
		return "", r.initErr
	}
	return r.evaluator.Eval(template)
}

// LoadLibrary evaluates every file in a directory of the content source,
// feeding its register and def commands into the runtime's state.
func (r *Runtime) LoadLibrary(dir string) error {
	return r.evaluator.LoadLibrary(dir)
}

// Parse evaluates a template with a one-shot runtime. State never leaks
// between calls.
func Parse(template string, opts ...Option) (string, error) {
	return New(opts...).Parse(template)
}
