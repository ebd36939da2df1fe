package eval

import (
	"fmt"
	"strings"

	"github.com/TheCulprit/parsifal/internal/ast"
)

// Default weight range shared by rw and irw.
const (
	weightMin = 1.0
	weightMax = 1.5
)

// cmdRan draws count items from its body without replacement. With count
// at or above the item count every item is returned in random order.
func cmdRan(e *Evaluator, t *ast.Tag) (string, signal, error) {
	body, sig, err := e.evalBody(t)
	if err != nil {
		return "", sigNone, err
	}
	count, err := intArg(t, "count", 0, 1)
	if err != nil {
		return "", sigNone, err
	}

	items := splitItems(body)
	if len(items) == 0 || count <= 0 {
		return "", sig, nil
	}
	if count > len(items) {
		count = len(items)
	}

	perm := e.rng.Perm(len(items))
	picks := make([]string, 0, count)
	for _, idx := range perm[:count] {
		picks = append(picks, items[idx])
	}

	sep := ", "
	if s, ok := t.Named["sep"]; ok {
		sep = s
	}
	return strings.Join(picks, sep), sig, nil
}

// cmdShuffle returns every item in a random permutation.
func cmdShuffle(e *Evaluator, t *ast.Tag) (string, signal, error) {
	body, sig, err := e.evalBody(t)
	if err != nil {
		return "", sigNone, err
	}
	items := splitItems(body)
	if len(items) == 0 {
		return "", sig, nil
	}

	shuffled := make([]string, 0, len(items))
	for _, idx := range e.rng.Perm(len(items)) {
		shuffled = append(shuffled, items[idx])
	}

	sep := ", "
	if s, ok := t.Named["sep"]; ok {
		sep = s
	}
	return strings.Join(shuffled, sep), sig, nil
}

// cmdRange draws a uniform value between two inclusive bounds. Integer
// bounds yield an integer; a decimal point in either bound switches to
// floats printed with the wider precision of the two.
func cmdRange(e *Evaluator, t *ast.Tag) (string, signal, error) {
	minRaw, okMin := t.Arg("min", 0)
	maxRaw, okMax := t.Arg("max", 1)
	if !okMin || !okMax {
		return "", sigNone, fmt.Errorf("[range] at line %d: needs min and max bounds", t.Line)
	}

	if !strings.Contains(minRaw, ".") && !strings.Contains(maxRaw, ".") {
		lo, err := intArg(t, "min", 0, 0)
		if err != nil {
			return "", sigNone, err
		}
		hi, err := intArg(t, "max", 1, 0)
		if err != nil {
			return "", sigNone, err
		}
		if lo > hi {
			lo, hi = hi, lo
		}
		return formatNumber(float64(e.rng.IntBetween(lo, hi))), sigNone, nil
	}

	lo, okLo := parseNumber(minRaw)
	hi, okHi := parseNumber(maxRaw)
	if !okLo || !okHi {
		return "", sigNone, &TypeError{Tag: t.Name, Line: t.Line, Message: "bounds must be numeric"}
	}
	if lo > hi {
		lo, hi = hi, lo
		minRaw, maxRaw = maxRaw, minRaw
	}
	prec := decimals(minRaw)
	if p := decimals(maxRaw); p > prec {
		prec = p
	}
	return fmt.Sprintf("%.*f", prec, e.rng.FloatBetween(lo, hi)), sigNone, nil
}

func decimals(s string) int {
	if i := strings.IndexByte(strings.TrimSpace(s), '.'); i >= 0 {
		return len(strings.TrimSpace(s)) - i - 1
	}
	return 0
}

// cmdChance evaluates its body with the given 0-100 probability, otherwise
// emits nothing. The body is only evaluated on success, so its side effects
// and random draws happen only then.
func cmdChance(e *Evaluator, t *ast.Tag) (string, signal, error) {
	raw, ok := t.Arg("percent", 0)
	if !ok {
		return "", sigNone, fmt.Errorf("[chance] at line %d: missing percent", t.Line)
	}
	p, numeric := parseNumber(strings.TrimSuffix(strings.TrimSpace(raw), "%"))
	if !numeric {
		return "", sigNone, &TypeError{Tag: t.Name, Line: t.Line, Message: fmt.Sprintf("percent %q is not numeric", raw)}
	}
	if !e.rng.Percent(p) {
		return "", sigNone, nil
	}
	return e.evalBody(t)
}

// cmdRw emits (tag:weight) with a random weight.
func cmdRw(e *Evaluator, t *ast.Tag) (string, signal, error) {
	tag, w, sig, err := drawWeight(e, t)
	if err != nil {
		return "", sigNone, err
	}
	return fmt.Sprintf("(%s:%.2f)", tag, w), sig, nil
}

// cmdIrw emits (tag)weight with a random weight.
func cmdIrw(e *Evaluator, t *ast.Tag) (string, signal, error) {
	tag, w, sig, err := drawWeight(e, t)
	if err != nil {
		return "", sigNone, err
	}
	return fmt.Sprintf("(%s)%.2f", tag, w), sig, nil
}

// drawWeight evaluates the body to a tag string and draws a weight from
// the default range, or from two positional bounds when given.
func drawWeight(e *Evaluator, t *ast.Tag) (string, float64, signal, error) {
	lo, hi := weightMin, weightMax
	if raw, ok := t.Arg("min", 0); ok {
		v, numeric := parseNumber(raw)
		if !numeric {
			return "", 0, sigNone, &TypeError{Tag: t.Name, Line: t.Line, Message: fmt.Sprintf("weight bound %q is not numeric", raw)}
		}
		lo = v
	}
	if raw, ok := t.Arg("max", 1); ok {
		v, numeric := parseNumber(raw)
		if !numeric {
			return "", 0, sigNone, &TypeError{Tag: t.Name, Line: t.Line, Message: fmt.Sprintf("weight bound %q is not numeric", raw)}
		}
		hi = v
	}
	if lo > hi {
		lo, hi = hi, lo
	}

	tag, sig, err := e.evalBody(t)
	if err != nil {
		return "", 0, sigNone, err
	}
	return strings.TrimSpace(tag), e.rng.FloatBetween(lo, hi), sig, nil
}
