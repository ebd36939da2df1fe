// Package expr evaluates the arithmetic expressions accepted by calc and
// numeric condition operands.
package expr

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Resolver maps a bare identifier to its numeric value. Unresolved names
// evaluate to 0.
type Resolver func(name string) (float64, bool)

// DivisionByZeroError reports a division or modulo with a zero divisor.
type DivisionByZeroError struct{}

func (e *DivisionByZeroError) Error() string { return "division by zero" }

// SyntaxError reports a malformed arithmetic expression.
type SyntaxError struct {
	Input   string
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("bad expression %q: %s", e.Input, e.Message)
}

// Eval evaluates an arithmetic expression over + - * / % ( ) with standard
// precedence. Operands are numeric literals, identifiers resolved through
// resolve, or calls to the built-in functions max, min, abs, floor, ceil
// and round.
func Eval(input string, resolve Resolver) (float64, error) {
	p := &parser{input: input, runes: []rune(input), resolve: resolve}
	v, err := p.expression()
	if err != nil {
		return 0, err
	}
	p.skipSpace()
	if p.pos < len(p.runes) {
		return 0, p.errorf("unexpected %q", string(p.runes[p.pos]))
	}
	return v, nil
}

// Format renders a result the way calc emits it: integers without a decimal
// point, everything else in the shortest exact float form.
func Format(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

type parser struct {
	input   string
	runes   []rune
	pos     int
	resolve Resolver
}

func (p *parser) errorf(format string, args ...any) error {
	return &SyntaxError{Input: p.input, Message: fmt.Sprintf(format, args...)}
}

func (p *parser) skipSpace() {
	for p.pos < len(p.runes) && unicode.IsSpace(p.runes[p.pos]) {
		p.pos++
	}
}

func (p *parser) peek() rune {
	p.skipSpace()
	if p.pos >= len(p.runes) {
		return 0
	}
	return p.runes[p.pos]
}

func (p *parser) expression() (float64, error) {
	v, err := p.term()
	if err != nil {
		return 0, err
	}
	for {
		switch p.peek() {
		case '+':
			p.pos++
			rhs, err := p.term()
			if err != nil {
				return 0, err
			}
			v += rhs
		case '-':
			p.pos++
			rhs, err := p.term()
			if err != nil {
				return 0, err
			}
			v -= rhs
		default:
			return v, nil
		}
	}
}

func (p *parser) term() (float64, error) {
	v, err := p.unary()
	if err != nil {
		return 0, err
	}
	for {
		switch p.peek() {
		case '*':
			p.pos++
			rhs, err := p.unary()
			if err != nil {
				return 0, err
			}
			v *= rhs
		case '/':
			p.pos++
			rhs, err := p.unary()
			if err != nil {
				return 0, err
			}
			if rhs == 0 {
				return 0, &DivisionByZeroError{}
			}
			v /= rhs
		case '%':
			p.pos++
			rhs, err := p.unary()
			if err != nil {
				return 0, err
			}
			if rhs == 0 {
				return 0, &DivisionByZeroError{}
			}
			v = math.Mod(v, rhs)
		default:
			return v, nil
		}
	}
}

func (p *parser) unary() (float64, error) {
	switch p.peek() {
	case '-':
		p.pos++
		v, err := p.unary()
		return -v, err
	case '+':
		p.pos++
		return p.unary()
	}
	return p.primary()
}

func (p *parser) primary() (float64, error) {
	r := p.peek()
	switch {
	case r == '(':
		p.pos++
		v, err := p.expression()
		if err != nil {
			return 0, err
		}
		if p.peek() != ')' {
			return 0, p.errorf("missing closing parenthesis")
		}
		p.pos++
		return v, nil

	case unicode.IsDigit(r) || r == '.':
		return p.number()

	case unicode.IsLetter(r) || r == '_':
		return p.identifier()

	case r == 0:
		return 0, p.errorf("unexpected end of expression")
	}
	return 0, p.errorf("unexpected %q", string(r))
}

func (p *parser) number() (float64, error) {
	start := p.pos
	for p.pos < len(p.runes) && (unicode.IsDigit(p.runes[p.pos]) || p.runes[p.pos] == '.') {
		p.pos++
	}
	v, err := strconv.ParseFloat(string(p.runes[start:p.pos]), 64)
	if err != nil {
		return 0, p.errorf("bad number %q", string(p.runes[start:p.pos]))
	}
	return v, nil
}

func (p *parser) identifier() (float64, error) {
	start := p.pos
	for p.pos < len(p.runes) && (unicode.IsLetter(p.runes[p.pos]) || unicode.IsDigit(p.runes[p.pos]) || p.runes[p.pos] == '_') {
		p.pos++
	}
	name := string(p.runes[start:p.pos])

	if p.peek() == '(' {
		return p.call(name)
	}

	if p.resolve != nil {
		if v, ok := p.resolve(name); ok {
			return v, nil
		}
	}
	return 0, nil
}

func (p *parser) call(name string) (float64, error) {
	p.pos++ // consume '('
	var args []float64
	if p.peek() != ')' {
		for {
			v, err := p.expression()
			if err != nil {
				return 0, err
			}
			args = append(args, v)
			if p.peek() != ',' {
				break
			}
			p.pos++
		}
	}
	if p.peek() != ')' {
		return 0, p.errorf("missing closing parenthesis in call to %s", name)
	}
	p.pos++

	return apply(p, name, args)
}

func apply(p *parser, name string, args []float64) (float64, error) {
	need := func(n int) error {
		if len(args) != n {
			return p.errorf("%s takes %d argument(s), got %d", name, n, len(args))
		}
		return nil
	}

	switch strings.ToLower(name) {
	case "max":
		if len(args) == 0 {
			return 0, p.errorf("max needs at least one argument")
		}
		v := args[0]
		for _, a := range args[1:] {
			v = math.Max(v, a)
		}
		return v, nil
	case "min":
		if len(args) == 0 {
			return 0, p.errorf("min needs at least one argument")
		}
		v := args[0]
		for _, a := range args[1:] {
			v = math.Min(v, a)
		}
		return v, nil
	case "abs":
		if err := need(1); err != nil {
			return 0, err
		}
		return math.Abs(args[0]), nil
	case "floor":
		if err := need(1); err != nil {
			return 0, err
		}
		return math.Floor(args[0]), nil
	case "ceil":
		if err := need(1); err != nil {
			return 0, err
		}
		return math.Ceil(args[0]), nil
	case "round":
		if err := need(1); err != nil {
			return 0, err
		}
		return math.Round(args[0]), nil
	}
	return 0, p.errorf("unknown function %s", name)
}
