package eval

import "fmt"

// UnknownCommandError reports a tag whose name matches no command.
type UnknownCommandError struct {
	Name string
	Line int
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command [%s] at line %d", e.Name, e.Line)
}

// TypeError reports a non-numeric operand where a command needs a number.
type TypeError struct {
	Tag     string
	Line    int
	Message string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("[%s] at line %d: %s", e.Tag, e.Line, e.Message)
}

// UndefinedMacroError reports a call to a macro that was never defined.
type UndefinedMacroError struct {
	Name string
	Line int
}

func (e *UndefinedMacroError) Error() string {
	return fmt.Sprintf("call to undefined macro %q at line %d", e.Name, e.Line)
}
