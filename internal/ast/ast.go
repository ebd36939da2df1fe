// Package ast defines the command tree produced by the template parser.
package ast

// Node is a single element of the command tree: literal text or a tag.
type Node interface {
	node()
}

// Text is a literal run of template text.
type Text struct {
	Value string
	Line  int
}

func (Text) node() {}

// Tag is a parsed command. Void commands have an empty Body; block commands
// own the subtree between their opening and closing tags. Secondary branches
// (else, elseif, case, default) are kept in order on the command they extend.
type Tag struct {
	Name    string            // command name, lowercased
	Line    int               // line of the opening tag
	Pos     []string          // positional arguments in source order
	Named   map[string]string // named arguments, keys lowercased, last wins
	RawArgs string            // header text after the command name, verbatim
	Body    []Node
	Branches []*Tag
	Raw     string // unparsed body for raw-block commands (ignore, comment, #)
}

func (*Tag) node() {}

// Arg returns the named argument key if present, falling back to the
// positional argument at idx. A negative idx disables the fallback.
func (t *Tag) Arg(key string, idx int) (string, bool) {
	if v, ok := t.Named[key]; ok {
		return v, true
	}
	if idx >= 0 && idx < len(t.Pos) {
		return t.Pos[idx], true
	}
	return "", false
}
