// Package parser turns raw template text into a command tree.
package parser

import (
	"strings"

	"github.com/TheCulprit/parsifal/internal/ast"
	"github.com/TheCulprit/parsifal/internal/scanner"
	"github.com/TheCulprit/parsifal/internal/token"
)

// blockCommands require a matching closing tag; everything else is void.
// Unknown command names parse as void tags and are rejected at evaluation.
var blockCommands = map[string]bool{
	"ran": true, "shuffle": true, "chance": true,
	"register": true, "intercept": true,
	"set": true, "override": true, "calc": true,
	"if": true, "elseif": true, "else": true,
	"switch": true, "case": true, "default": true,
	"def": true, "loop": true,
	"rw": true, "irw": true,
	"len": true, "join": true,
	"mute": true, "ignore": true, "comment": true, "#": true,
}

// rawCommands capture their body verbatim, without parsing inner tags.
var rawCommands = map[string]bool{
	"ignore": true, "comment": true, "#": true,
}

// branchParents maps a secondary-branch command to the commands it may
// extend, either as a segment inside the open block or as a closed sibling
// block immediately following it.
var branchParents = map[string][]string{
	"elseif":  {"if", "elseif"},
	"else":    {"if", "elseif"},
	"case":    {"switch"},
	"default": {"switch"},
}

type frame struct {
	tag    *ast.Tag
	seg    *ast.Tag // open branch segment, if any
	attach *ast.Tag // sibling chain head this frame extends, if any
}

type treeBuilder struct {
	scan  *scanner.Scanner
	stack []*frame
	root  []ast.Node
}

// Parse converts template text into a command tree.
func Parse(input string) ([]ast.Node, error) {
	b := &treeBuilder{scan: scanner.NewFromString(input)}

	for {
		item, err := b.scan.Next()
		if err != nil {
			return nil, err
		}

		switch item.Kind {
		case token.EOF:
			if len(b.stack) > 0 {
				top := b.stack[len(b.stack)-1]
				return nil, &UnterminatedBlockError{Tag: top.tag.Name, Line: top.tag.Line}
			}
			return b.root, nil

		case token.TEXT:
			b.append(&ast.Text{Value: item.Value, Line: item.Line})

		case token.TAG:
			if name, ok := closeName(item.Value); ok {
				if err := b.close(name, item.Line); err != nil {
					return nil, err
				}
				continue
			}
			if err := b.open(item); err != nil {
				return nil, err
			}
		}
	}
}

// closeName extracts the command name from a closing header like "/ran".
func closeName(h string) (string, bool) {
	h = strings.TrimSpace(h)
	if !strings.HasPrefix(h, string(token.RuneSlash)) {
		return "", false
	}
	return strings.ToLower(strings.TrimSpace(h[1:])), true
}

func (b *treeBuilder) open(item *scanner.Item) error {
	h, err := parseHeader(item.Value, item.Line)
	if err != nil {
		return err
	}

	tag := &ast.Tag{
		Name:    h.name,
		Line:    item.Line,
		Pos:     h.pos,
		Named:   h.named,
		RawArgs: h.rawArgs,
	}

	if rawCommands[tag.Name] {
		raw, err := b.scanRaw(tag.Name, item.Line)
		if err != nil {
			return err
		}
		tag.Raw = raw
		b.append(tag)
		return nil
	}

	if parents, isBranch := branchParents[tag.Name]; isBranch {
		if top := b.top(); top != nil && contains(parents, top.tag.Name) && top.attach == nil {
			// Segment form: [if c]a[else]b[/if]
			top.endSegment()
			top.seg = tag
			return nil
		}
		if prev := b.lastTag(); prev != nil && contains(parents, prev.Name) {
			// Sibling form: [if c]a[/if][else]b[/else]
			b.stack = append(b.stack, &frame{tag: tag, attach: prev})
			return nil
		}
		// Dangling branch with nothing to extend; parsed as a plain block
		// and ignored at evaluation.
	}

	if blockCommands[tag.Name] {
		b.stack = append(b.stack, &frame{tag: tag})
		return nil
	}

	b.append(tag)
	return nil
}

func (b *treeBuilder) close(name string, line int) error {
	top := b.top()
	if top == nil {
		return &UnmatchedCloseError{Tag: name, Line: line}
	}

	if top.seg != nil && top.seg.Name == name {
		top.endSegment()
		return nil
	}

	if top.tag.Name != name {
		return &UnmatchedCloseError{Tag: name, Line: line}
	}

	top.endSegment()
	b.stack = b.stack[:len(b.stack)-1]
	if top.attach != nil {
		top.attach.Branches = append(top.attach.Branches, top.tag)
		return nil
	}
	b.append(top.tag)
	return nil
}

// scanRaw consumes spans until the matching close of a raw-body command,
// returning the body source verbatim. Nested opens of the same command are
// tracked by their first header word only; inner tags are never parsed.
func (b *treeBuilder) scanRaw(name string, line int) (string, error) {
	var raw strings.Builder
	depth := 1

	for {
		item, err := b.scan.Next()
		if err != nil {
			return "", err
		}
		switch item.Kind {
		case token.EOF:
			return "", &UnterminatedBlockError{Tag: name, Line: line}
		case token.TAG:
			if n, ok := closeName(item.Value); ok && n == name {
				depth--
				if depth == 0 {
					return raw.String(), nil
				}
			} else if firstWord(item.Value) == name {
				depth++
			}
		}
		raw.WriteString(item.Raw)
	}
}

func firstWord(h string) string {
	fields := strings.Fields(h)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[0])
}

func (b *treeBuilder) top() *frame {
	if len(b.stack) == 0 {
		return nil
	}
	return b.stack[len(b.stack)-1]
}

// append adds a node to the innermost open body.
func (b *treeBuilder) append(n ast.Node) {
	if top := b.top(); top != nil {
		if top.seg != nil {
			top.seg.Body = append(top.seg.Body, n)
		} else {
			top.tag.Body = append(top.tag.Body, n)
		}
		return
	}
	b.root = append(b.root, n)
}

// lastTag returns the most recent tag appended to the innermost open body.
func (b *treeBuilder) lastTag() *ast.Tag {
	body := b.root
	if top := b.top(); top != nil {
		if top.seg != nil {
			body = top.seg.Body
		} else {
			body = top.tag.Body
		}
	}
	for i := len(body) - 1; i >= 0; i-- {
		switch n := body[i].(type) {
		case *ast.Tag:
			return n
		case *ast.Text:
			if strings.TrimSpace(n.Value) != "" {
				return nil
			}
		}
	}
	return nil
}

func (f *frame) endSegment() {
	if f.seg != nil {
		f.tag.Branches = append(f.tag.Branches, f.seg)
		f.seg = nil
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
