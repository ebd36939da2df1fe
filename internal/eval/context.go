package eval

import "github.com/TheCulprit/parsifal/internal/ast"

// Entry is one registered piece of selectable content. The subtree stays
// unevaluated until selection so nested randomness re-rolls per pick.
type Entry struct {
	Tags    map[string]struct{}
	Content []ast.Node
}

// Intercept replaces a selected entry's content when its tag set is a
// subset of the entry's. Registration order breaks ties.
type Intercept struct {
	Tags    map[string]struct{}
	Content []ast.Node
}

// Context is the mutable interpreter state threaded through one run:
// variables, overrides, the content registry, intercepts and macros.
// Nothing in it survives the evaluator that owns it.
type Context struct {
	vars       map[string]string
	overrides  map[string]string
	registry   []Entry
	intercepts []Intercept
	macros     map[string][]ast.Node
}

// NewContext creates an empty execution context.
func NewContext() *Context {
	return &Context{
		vars:      make(map[string]string),
		overrides: make(map[string]string),
		macros:    make(map[string][]ast.Node),
	}
}

// Lookup resolves a name, overrides first, then variables.
func (c *Context) Lookup(name string) (string, bool) {
	if v, ok := c.overrides[name]; ok {
		return v, true
	}
	v, ok := c.vars[name]
	return v, ok
}

// Has reports whether a name resolves at all.
func (c *Context) Has(name string) bool {
	_, ok := c.Lookup(name)
	return ok
}

// SetVar stores a variable. Writes to an overridden name are silently
// dropped.
func (c *Context) SetVar(name, value string) {
	if _, ok := c.overrides[name]; ok {
		return
	}
	c.vars[name] = value
}

// SetOverride forces a name to a value for the rest of the run.
func (c *Context) SetOverride(name, value string) {
	c.overrides[name] = value
}

// Overridden reports whether a name is pinned by an override.
func (c *Context) Overridden(name string) bool {
	_, ok := c.overrides[name]
	return ok
}

// tagSet builds a lowercase tag set from a comma list.
func tagSet(raw string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tag := range splitList(raw) {
		set[tag] = struct{}{}
	}
	return set
}

// subset reports whether every tag in a is present in b.
func subset(a, b map[string]struct{}) bool {
	for tag := range a {
		if _, ok := b[tag]; !ok {
			return false
		}
	}
	return true
}

// intersects reports whether any element of list is present in set.
func intersects(list []string, set map[string]struct{}) bool {
	for _, tag := range list {
		if _, ok := set[tag]; ok {
			return true
		}
	}
	return false
}
