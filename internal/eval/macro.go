package eval

import (
	"fmt"
	"strings"

	"github.com/TheCulprit/parsifal/internal/ast"
)

// cmdDef stores the body subtree under a macro name; redefining replaces
// the previous body.
func cmdDef(e *Evaluator, t *ast.Tag) (string, signal, error) {
	name, ok := t.Arg("name", 0)
	if !ok || name == "" {
		return "", sigNone, fmt.Errorf("[def] at line %d: missing macro name", t.Line)
	}
	e.ctx.macros[name] = t.Body
	return "", sigNone, nil
}

// cmdCall evaluates a macro body in the caller's context: macros see and
// mutate the caller's variables and registry.
func cmdCall(e *Evaluator, t *ast.Tag) (string, signal, error) {
	name, ok := t.Arg("name", 0)
	if !ok || name == "" {
		return "", sigNone, fmt.Errorf("[call] at line %d: missing macro name", t.Line)
	}
	body, defined := e.ctx.macros[name]
	if !defined {
		return "", sigNone, &UndefinedMacroError{Name: name, Line: t.Line}
	}
	return e.evalNodes(body)
}

// cmdLoop evaluates its body count times in the shared context, so
// counters accumulate across iterations. break leaves the loop early.
func cmdLoop(e *Evaluator, t *ast.Tag) (string, signal, error) {
	count, err := intArg(t, "count", 0, 1)
	if err != nil {
		return "", sigNone, err
	}

	var sb strings.Builder
	for i := 0; i < count; i++ {
		out, sig, err := e.evalBody(t)
		if err != nil {
			return "", sigNone, err
		}
		sb.WriteString(out)
		switch sig {
		case sigBreak:
			return sb.String(), sigNone, nil
		case sigStop, sigPass:
			return sb.String(), sig, nil
		}
	}
	return sb.String(), sigNone, nil
}

func cmdBreak(e *Evaluator, t *ast.Tag) (string, signal, error) {
	return "", sigBreak, nil
}

// cmdStop halts the whole run; output produced so far is kept.
func cmdStop(e *Evaluator, t *ast.Tag) (string, signal, error) {
	return "", sigStop, nil
}
