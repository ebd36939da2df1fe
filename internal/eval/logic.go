package eval

import (
	"fmt"
	"strings"

	"github.com/TheCulprit/parsifal/internal/ast"
	"github.com/TheCulprit/parsifal/internal/expr"
	"github.com/TheCulprit/parsifal/internal/token"
)

// cmdIf evaluates the first branch whose condition holds: the main body,
// then each elseif/else branch in order. Probability conditions draw once
// when their branch is reached; branches after the match are never sampled.
func cmdIf(e *Evaluator, t *ast.Tag) (string, signal, error) {
	ok, err := e.evalCondition(t.RawArgs, t)
	if err != nil {
		return "", sigNone, err
	}
	if ok {
		return e.evalBody(t)
	}

	for _, br := range t.Branches {
		switch br.Name {
		case "elseif":
			ok, err := e.evalCondition(br.RawArgs, br)
			if err != nil {
				return "", sigNone, err
			}
			if ok {
				return e.evalNodes(br.Body)
			}
		case "else":
			return e.evalNodes(br.Body)
		}
	}
	return "", sigNone, nil
}

// cmdDanglingBranch handles an elseif/else/case/default with nothing to
// extend. The tree builder keeps it as a plain block; it emits nothing.
func cmdDanglingBranch(e *Evaluator, t *ast.Tag) (string, signal, error) {
	return "", sigNone, nil
}

// cmdSwitch compares a variable's value against each case header in order;
// default matches unconditionally.
func cmdSwitch(e *Evaluator, t *ast.Tag) (string, signal, error) {
	name, ok := t.Arg("var", 0)
	if !ok {
		return "", sigNone, fmt.Errorf("[switch] at line %d: missing variable name", t.Line)
	}
	val, _ := e.ctx.Lookup(name)

	for _, br := range t.Branches {
		switch br.Name {
		case "case":
			target := br.RawArgs
			if len(br.Pos) > 0 {
				target = br.Pos[0]
			}
			if looseEqual(val, target) {
				return e.evalNodes(br.Body)
			}
		case "default":
			return e.evalNodes(br.Body)
		}
	}
	return "", sigNone, nil
}

// cmdCalc evaluates its body as an arithmetic expression; identifiers
// resolve through the variable table and default to 0.
func cmdCalc(e *Evaluator, t *ast.Tag) (string, signal, error) {
	body, sig, err := e.evalBody(t)
	if err != nil {
		return "", sigNone, err
	}
	v, err := expr.Eval(strings.TrimSpace(body), func(name string) (float64, bool) {
		if raw, ok := e.ctx.Lookup(name); ok {
			if n, numeric := parseNumber(raw); numeric {
				return n, true
			}
		}
		return 0, true
	})
	if err != nil {
		return "", sigNone, err
	}
	return expr.Format(v), sig, nil
}

var comparisonOps = []string{"==", "!=", "<=", ">=", "<", ">"}

// evalCondition decides an if/elseif condition: `lhs op rhs`, a bare `N%`
// probability check, or a bare name tested for truthiness.
func (e *Evaluator) evalCondition(raw string, t *ast.Tag) (bool, error) {
	cond := strings.TrimSpace(raw)
	if cond == "" {
		return false, nil
	}

	if lhs, op, rhs, found := splitComparison(cond); found {
		return e.compare(lhs, op, rhs)
	}

	if p, ok := percentLiteral(cond); ok {
		return e.rng.Percent(p), nil
	}

	// Bare name: truthy unless empty, "0" or "false".
	val := e.resolveOperand(cond)
	return val != "" && val != "0" && val != "false", nil
}

// splitComparison finds the first comparison operator outside quotes.
func splitComparison(cond string) (lhs, op, rhs string, found bool) {
	var quote rune
	runes := []rune(cond)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if quote != 0 {
			if r == quote {
				quote = 0
			}
			continue
		}
		if token.IsQuote(r) {
			quote = r
			continue
		}
		rest := string(runes[i:])
		for _, candidate := range comparisonOps {
			if strings.HasPrefix(rest, candidate) {
				return string(runes[:i]), candidate, rest[len(candidate):], true
			}
		}
	}
	return "", "", "", false
}

func percentLiteral(cond string) (float64, bool) {
	if !strings.HasSuffix(cond, "%") {
		return 0, false
	}
	return parseNumber(strings.TrimSuffix(cond, "%"))
}

// resolveOperand turns a condition operand into a value: quoted text is
// literal, a defined variable resolves to its value, anything else is
// taken verbatim.
func (e *Evaluator) resolveOperand(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		first := rune(s[0])
		if token.IsQuote(first) && s[len(s)-1] == s[0] {
			return s[1 : len(s)-1]
		}
	}
	if v, ok := e.ctx.Lookup(s); ok {
		return v
	}
	return s
}

// compare applies a comparison operator, numerically when both operands
// coerce to numbers, lexicographically otherwise.
func (e *Evaluator) compare(lhsRaw, op, rhsRaw string) (bool, error) {
	lhs := e.resolveOperand(lhsRaw)
	rhs := e.resolveOperand(rhsRaw)

	ln, lok := parseNumber(lhs)
	rn, rok := parseNumber(rhs)
	if lok && rok {
		switch op {
		case "==":
			return ln == rn, nil
		case "!=":
			return ln != rn, nil
		case "<":
			return ln < rn, nil
		case ">":
			return ln > rn, nil
		case "<=":
			return ln <= rn, nil
		case ">=":
			return ln >= rn, nil
		}
	}

	switch op {
	case "==":
		return lhs == rhs, nil
	case "!=":
		return lhs != rhs, nil
	case "<":
		return lhs < rhs, nil
	case ">":
		return lhs > rhs, nil
	case "<=":
		return lhs <= rhs, nil
	case ">=":
		return lhs >= rhs, nil
	}
	return false, fmt.Errorf("unsupported comparison operator %q", op)
}

// looseEqual is the switch/case comparison: numeric when both sides
// coerce, string equality otherwise.
func looseEqual(a, b string) bool {
	an, aok := parseNumber(a)
	bn, bok := parseNumber(b)
	if aok && bok {
		return an == bn
	}
	return strings.TrimSpace(a) == strings.TrimSpace(b)
}
