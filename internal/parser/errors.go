package parser

import "fmt"

// ArgumentError reports a malformed token inside a tag header.
type ArgumentError struct {
	Line    int
	Tag     string // command name, when already known
	Token   string // the offending header token
	Message string
}

func (e *ArgumentError) Error() string {
	if e.Tag != "" {
		return fmt.Sprintf("bad argument %q in [%s] at line %d: %s", e.Token, e.Tag, e.Line, e.Message)
	}
	return fmt.Sprintf("bad argument %q at line %d: %s", e.Token, e.Line, e.Message)
}

// UnterminatedBlockError reports a block tag that never found its closing tag.
type UnterminatedBlockError struct {
	Tag  string
	Line int // line of the opening tag
}

func (e *UnterminatedBlockError) Error() string {
	return fmt.Sprintf("[%s] opened at line %d is never closed", e.Tag, e.Line)
}

// UnmatchedCloseError reports a closing tag with no matching open tag.
type UnmatchedCloseError struct {
	Tag  string
	Line int
}

func (e *UnmatchedCloseError) Error() string {
	return fmt.Sprintf("[/%s] at line %d has no matching open tag", e.Tag, e.Line)
}
