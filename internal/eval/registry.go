package eval

import (
	"fmt"

	"github.com/TheCulprit/parsifal/internal/ast"
)

// cmdRegister appends a registry entry whose content is the unevaluated
// body subtree. Identical registrations stack; nothing is deduplicated.
func cmdRegister(e *Evaluator, t *ast.Tag) (string, signal, error) {
	raw, ok := t.Arg("tags", 0)
	if !ok {
		return "", sigNone, fmt.Errorf("[register] at line %d: missing tags", t.Line)
	}
	e.ctx.registry = append(e.ctx.registry, Entry{Tags: tagSet(raw), Content: t.Body})
	return "", sigNone, nil
}

// cmdIntercept registers a tag-keyed replacement consulted by select.
func cmdIntercept(e *Evaluator, t *ast.Tag) (string, signal, error) {
	raw, ok := t.Arg("tags", 0)
	if !ok {
		return "", sigNone, fmt.Errorf("[intercept] at line %d: missing tags", t.Line)
	}
	e.ctx.intercepts = append(e.ctx.intercepts, Intercept{Tags: tagSet(raw), Content: t.Body})
	return "", sigNone, nil
}

// cmdPass inside intercept content tells the select resolution to discard
// this intercept and try the next; anywhere else it is inert.
func cmdPass(e *Evaluator, t *ast.Tag) (string, signal, error) {
	if e.interceptDepth > 0 {
		return "", sigPass, nil
	}
	return "", sigNone, nil
}

// cmdSelect filters the registry by required/any/exclude tags, picks one
// matching entry uniformly, then resolves intercepts. Intercepts run
// strictly after the pick, so they never shift selection probabilities.
func cmdSelect(e *Evaluator, t *ast.Tag) (string, signal, error) {
	requiredRaw := namedFirst(t, "required", "tags")
	if requiredRaw == "" && len(t.Pos) > 0 {
		requiredRaw = t.Pos[0]
	}
	required := splitList(requiredRaw)
	any := splitList(namedFirst(t, "any", "oneof"))
	exclude := splitList(t.Named["exclude"])

	var candidates []Entry
	for _, entry := range e.ctx.registry {
		if !containsAll(required, entry.Tags) {
			continue
		}
		if len(any) > 0 && !intersects(any, entry.Tags) {
			continue
		}
		if intersects(exclude, entry.Tags) {
			continue
		}
		candidates = append(candidates, entry)
	}

	// No matching content is a legitimate outcome, not an error.
	if len(candidates) == 0 {
		return "", sigNone, nil
	}

	chosen := candidates[e.rng.Intn(len(candidates))]

	for _, ic := range e.ctx.intercepts {
		if !subset(ic.Tags, chosen.Tags) {
			continue
		}
		e.interceptDepth++
		out, sig, err := e.evalNodes(ic.Content)
		e.interceptDepth--
		if err != nil {
			return "", sigNone, err
		}
		if sig == sigPass {
			continue
		}
		return out, sig, nil
	}

	return e.evalNodes(chosen.Content)
}

// namedFirst returns the first of the named keys that is set.
func namedFirst(t *ast.Tag, keys ...string) string {
	for _, key := range keys {
		if v, ok := t.Named[key]; ok {
			return v
		}
	}
	return ""
}

func containsAll(list []string, set map[string]struct{}) bool {
	for _, tag := range list {
		if _, ok := set[tag]; !ok {
			return false
		}
	}
	return true
}
