// Package eval implements the template evaluation engine.
package eval

import (
	"errors"
	"strconv"
	"strings"

	"github.com/TheCulprit/parsifal/internal/ast"
	"github.com/TheCulprit/parsifal/internal/content"
	"github.com/TheCulprit/parsifal/internal/expr"
	"github.com/TheCulprit/parsifal/internal/parser"
	"github.com/TheCulprit/parsifal/internal/random"
)

// signal is an out-of-band evaluation result that travels alongside the
// produced text: pass discards an intercept's output, break leaves the
// innermost loop, stop halts the whole run keeping output so far.
type signal int

const (
	sigNone signal = iota
	sigPass
	sigBreak
	sigStop
)

// handlerFunc executes one command node.
type handlerFunc func(e *Evaluator, t *ast.Tag) (string, signal, error)

// Evaluator walks a command tree, threading one ExecutionContext through
// every handler.
type Evaluator struct {
	ctx    *Context
	rng    *random.Source
	source content.Source

	// interceptDepth tracks whether a pass command is meaningful; outside
	// intercept content it is an inert no-op.
	interceptDepth int
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithRandom sets the seeded random source.
func WithRandom(src *random.Source) Option {
	return func(e *Evaluator) { e.rng = src }
}

// WithSource sets the content source used by file, all and library.
func WithSource(s content.Source) Option {
	return func(e *Evaluator) { e.source = s }
}

// New creates a new Evaluator with the given options.
func New(opts ...Option) *Evaluator {
	e := &Evaluator{ctx: NewContext()}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = random.NewUnseeded()
	}
	return e
}

// Context returns the evaluator's execution context.
func (e *Evaluator) Context() *Context {
	return e.ctx
}

// Eval parses and evaluates a template, returning the flattened output.
// Variables, overrides, registry entries, intercepts and macros accumulate
// on the evaluator's context across calls.
func (e *Evaluator) Eval(input string) (string, error) {
	nodes, err := parser.Parse(input)
	if err != nil {
		return "", err
	}
	out, _, err := e.evalNodes(nodes)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// LoadLibrary evaluates every file under dir for its side effects, feeding
// register and def commands into the current context. Output is discarded.
func (e *Evaluator) LoadLibrary(dir string) error {
	if e.source == nil {
		return errors.New("no content source configured")
	}
	ids, err := e.source.List(dir)
	if err != nil {
		return err
	}
	for _, id := range ids {
		text, err := e.source.Load(id)
		if err != nil {
			return err
		}
		nodes, err := parser.Parse(text)
		if err != nil {
			return err
		}
		if _, _, err := e.evalNodes(nodes); err != nil {
			return err
		}
	}
	return nil
}

// evalNodes evaluates a body in order, concatenating output until a signal
// interrupts the walk.
func (e *Evaluator) evalNodes(nodes []ast.Node) (string, signal, error) {
	var sb strings.Builder
	for _, n := range nodes {
		out, sig, err := e.evalNode(n)
		if err != nil {
			return "", sigNone, err
		}
		sb.WriteString(out)
		if sig != sigNone {
			return sb.String(), sig, nil
		}
	}
	return sb.String(), sigNone, nil
}

func (e *Evaluator) evalNode(n ast.Node) (string, signal, error) {
	switch node := n.(type) {
	case *ast.Text:
		return node.Value, sigNone, nil
	case *ast.Tag:
		h := handlerFor(node.Name)
		if h == nil {
			return "", sigNone, &UnknownCommandError{Name: node.Name, Line: node.Line}
		}
		return h(e, node)
	}
	return "", sigNone, nil
}

func (e *Evaluator) evalBody(t *ast.Tag) (string, signal, error) {
	return e.evalNodes(t.Body)
}

// handlerFor returns the handler for a command name, or nil if the command
// is unknown.
func handlerFor(name string) handlerFunc {
	switch name {
	case "ran":
		return cmdRan
	case "shuffle":
		return cmdShuffle
	case "range":
		return cmdRange
	case "chance":
		return cmdChance
	case "rw":
		return cmdRw
	case "irw":
		return cmdIrw
	case "register":
		return cmdRegister
	case "select":
		return cmdSelect
	case "intercept":
		return cmdIntercept
	case "pass":
		return cmdPass
	case "set":
		return cmdSet
	case "override":
		return cmdOverride
	case "get":
		return cmdGet
	case "inc":
		return cmdInc
	case "dec":
		return cmdDec
	case "exists":
		return cmdExists
	case "len":
		return cmdLen
	case "join":
		return cmdJoin
	case "calc":
		return cmdCalc
	case "if":
		return cmdIf
	case "elseif", "else":
		return cmdDanglingBranch
	case "switch":
		return cmdSwitch
	case "case", "default":
		return cmdDanglingBranch
	case "def":
		return cmdDef
	case "call":
		return cmdCall
	case "loop":
		return cmdLoop
	case "break":
		return cmdBreak
	case "stop":
		return cmdStop
	case "mute":
		return cmdMute
	case "ignore":
		return cmdIgnore
	case "comment", "#":
		return cmdComment
	case "file":
		return cmdFile
	case "all":
		return cmdAll
	case "library":
		return cmdLibrary
	}
	return nil
}

// parseNumber reports a string's numeric value, tolerating surrounding
// whitespace.
func parseNumber(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return v, err == nil
}

// splitList splits a comma list, trimming and lowercasing each element.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.ToLower(strings.TrimSpace(part)); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// splitItems splits a ran/shuffle/join body into items: on pipes when any
// are present, otherwise on newlines. Blank items are dropped.
func splitItems(s string) []string {
	sep := "\n"
	if strings.Contains(s, "|") {
		sep = "|"
	}
	var items []string
	for _, part := range strings.Split(s, sep) {
		if p := strings.TrimSpace(part); p != "" {
			items = append(items, p)
		}
	}
	return items
}

// intArg parses an integer command argument.
func intArg(t *ast.Tag, key string, idx int, def int) (int, error) {
	raw, ok := t.Arg(key, idx)
	if !ok {
		return def, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, &TypeError{Tag: t.Name, Line: t.Line, Message: "expected an integer, got " + strconv.Quote(raw)}
	}
	return n, nil
}

// formatNumber renders a numeric result: integers without a decimal point.
func formatNumber(v float64) string {
	return expr.Format(v)
}
