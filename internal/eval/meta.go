package eval

import (
	"fmt"
	"strings"

	"github.com/TheCulprit/parsifal/internal/ast"
)

// cmdMute runs its body for side effects and discards the output.
func cmdMute(e *Evaluator, t *ast.Tag) (string, signal, error) {
	_, sig, err := e.evalBody(t)
	if err != nil {
		return "", sigNone, err
	}
	return "", sig, nil
}

// cmdIgnore emits its body verbatim; the parser never looked inside it.
func cmdIgnore(e *Evaluator, t *ast.Tag) (string, signal, error) {
	return t.Raw, sigNone, nil
}

func cmdComment(e *Evaluator, t *ast.Tag) (string, signal, error) {
	return "", sigNone, nil
}

// cmdFile emits the text behind a content identifier; missing content
// resolves to nothing so templates can probe optional files.
func cmdFile(e *Evaluator, t *ast.Tag) (string, signal, error) {
	id, ok := t.Arg("name", 0)
	if !ok || e.source == nil {
		return "", sigNone, nil
	}
	text, err := e.source.Load(id)
	if err != nil {
		return "", sigNone, nil
	}
	return text, sigNone, nil
}

// cmdAll emits every file under a directory, sorted by identifier and
// joined by newlines.
func cmdAll(e *Evaluator, t *ast.Tag) (string, signal, error) {
	dir, ok := t.Arg("dir", 0)
	if !ok || e.source == nil {
		return "", sigNone, nil
	}
	ids, err := e.source.List(dir)
	if err != nil {
		return "", sigNone, nil
	}
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		text, err := e.source.Load(id)
		if err != nil {
			continue
		}
		parts = append(parts, strings.TrimRight(text, "\n"))
	}
	return strings.Join(parts, "\n"), sigNone, nil
}

// cmdLibrary evaluates every file under a directory into the current
// context, so their register and def commands take effect. Unlike file
// and all, a missing library directory is a hard error.
func cmdLibrary(e *Evaluator, t *ast.Tag) (string, signal, error) {
	dir, ok := t.Arg("dir", 0)
	if !ok {
		return "", sigNone, fmt.Errorf("[library] at line %d: missing directory", t.Line)
	}
	if err := e.LoadLibrary(dir); err != nil {
		return "", sigNone, fmt.Errorf("[library] at line %d: %w", t.Line, err)
	}
	return "", sigNone, nil
}
