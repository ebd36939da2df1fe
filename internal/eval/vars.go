package eval

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/TheCulprit/parsifal/internal/ast"
)

func nameArg(t *ast.Tag) (string, error) {
	name, ok := t.Arg("name", 0)
	if !ok || name == "" {
		return "", fmt.Errorf("[%s] at line %d: missing variable name", t.Name, t.Line)
	}
	return name, nil
}

// cmdSet evaluates its body and stores the result, unless the name is
// pinned by an override.
func cmdSet(e *Evaluator, t *ast.Tag) (string, signal, error) {
	name, err := nameArg(t)
	if err != nil {
		return "", sigNone, err
	}
	val, sig, err := e.evalBody(t)
	if err != nil {
		return "", sigNone, err
	}
	e.ctx.SetVar(name, val)
	return "", sig, nil
}

// cmdOverride pins a name to a value for the rest of the run; set writes
// to that name become no-ops and reads always see this value.
func cmdOverride(e *Evaluator, t *ast.Tag) (string, signal, error) {
	name, err := nameArg(t)
	if err != nil {
		return "", sigNone, err
	}
	val, sig, err := e.evalBody(t)
	if err != nil {
		return "", sigNone, err
	}
	e.ctx.SetOverride(name, val)
	return "", sig, nil
}

// cmdGet resolves overrides first, then variables; a missing name is an
// empty string, never an error.
func cmdGet(e *Evaluator, t *ast.Tag) (string, signal, error) {
	name, err := nameArg(t)
	if err != nil {
		return "", sigNone, err
	}
	val, _ := e.ctx.Lookup(name)
	return val, sigNone, nil
}

func cmdInc(e *Evaluator, t *ast.Tag) (string, signal, error) {
	return adjust(e, t, 1)
}

func cmdDec(e *Evaluator, t *ast.Tag) (string, signal, error) {
	return adjust(e, t, -1)
}

// adjust implements inc and dec. A missing variable counts from 0; a
// non-numeric current value is fatal. Overridden names are left alone.
func adjust(e *Evaluator, t *ast.Tag, dir float64) (string, signal, error) {
	name, err := nameArg(t)
	if err != nil {
		return "", sigNone, err
	}

	delta := 1.0
	if raw, ok := t.Arg("by", 1); ok {
		d, ok := parseNumber(raw)
		if !ok {
			return "", sigNone, &TypeError{Tag: t.Name, Line: t.Line, Message: fmt.Sprintf("delta %q is not numeric", raw)}
		}
		delta = d
	}

	if e.ctx.Overridden(name) {
		return "", sigNone, nil
	}

	cur := 0.0
	if raw, ok := e.ctx.Lookup(name); ok {
		v, numeric := parseNumber(raw)
		if !numeric {
			return "", sigNone, &TypeError{Tag: t.Name, Line: t.Line, Message: fmt.Sprintf("variable %q holds non-numeric value %q", name, raw)}
		}
		cur = v
	}

	e.ctx.SetVar(name, formatNumber(cur+dir*delta))
	return "", sigNone, nil
}

// cmdExists emits "1" when the name resolves, otherwise nothing.
func cmdExists(e *Evaluator, t *ast.Tag) (string, signal, error) {
	name, err := nameArg(t)
	if err != nil {
		return "", sigNone, err
	}
	if e.ctx.Has(name) {
		return "1", sigNone, nil
	}
	return "", sigNone, nil
}

// cmdLen emits the rune count of its evaluated body.
func cmdLen(e *Evaluator, t *ast.Tag) (string, signal, error) {
	body, sig, err := e.evalBody(t)
	if err != nil {
		return "", sigNone, err
	}
	return fmt.Sprintf("%d", utf8.RuneCountInString(body)), sig, nil
}

// cmdJoin re-joins the body's items (pipe or newline separated) with sep.
func cmdJoin(e *Evaluator, t *ast.Tag) (string, signal, error) {
	body, sig, err := e.evalBody(t)
	if err != nil {
		return "", sigNone, err
	}
	sep := ", "
	if s, ok := t.Named["sep"]; ok {
		sep = s
	}
	return strings.Join(splitItems(body), sep), sig, nil
}
