package eval

import (
	"errors"
	"testing"

	"github.com/TheCulprit/parsifal/internal/content"
	"github.com/TheCulprit/parsifal/internal/random"
)

// run evaluates a template on a fresh evaluator with a fixed seed.
func run(t *testing.T, template string) string {
	t.Helper()
	out, err := New(WithRandom(random.New(42))).Eval(template)
	if err != nil {
		t.Fatalf("Eval(%q): %v", template, err)
	}
	return out
}

// runErr evaluates a template expecting an error.
func runErr(t *testing.T, template string) error {
	t.Helper()
	_, err := New(WithRandom(random.New(42))).Eval(template)
	if err == nil {
		t.Fatalf("Eval(%q): expected an error", template)
	}
	return err
}

func runWithFiles(t *testing.T, template string, files map[string]string) string {
	t.Helper()
	e := New(WithRandom(random.New(42)), WithSource(content.NewMap(files)))
	out, err := e.Eval(template)
	if err != nil {
		t.Fatalf("Eval(%q): %v", template, err)
	}
	return out
}

func TestPlainText(t *testing.T) {
	if got := run(t, "just words"); got != "just words" {
		t.Errorf("got %q", got)
	}
}

func TestOutputIsTrimmed(t *testing.T) {
	if got := run(t, "  hi  \n"); got != "hi" {
		t.Errorf("got %q, want %q", got, "hi")
	}
}

func TestUnknownCommand(t *testing.T) {
	err := runErr(t, "[frobnicate]")
	var uc *UnknownCommandError
	if !errors.As(err, &uc) {
		t.Fatalf("got %v, want UnknownCommandError", err)
	}
	if uc.Name != "frobnicate" {
		t.Errorf("name = %q", uc.Name)
	}
}

func TestStateAccumulatesAcrossEvalCalls(t *testing.T) {
	e := New(WithRandom(random.New(1)))
	if _, err := e.Eval("[set hero]Ryn[/set]"); err != nil {
		t.Fatal(err)
	}
	out, err := e.Eval("[get hero]")
	if err != nil {
		t.Fatal(err)
	}
	if out != "Ryn" {
		t.Errorf("got %q, want %q", out, "Ryn")
	}
}

func TestSeededDeterminism(t *testing.T) {
	template := `[register tags="ship, fighter"]X-Wing[/register]` +
		`[register tags="ship, capital"]Star Destroyer[/register]` +
		`[ran count=2]alpha|beta|gamma|delta[/ran] / ` +
		`[range 1 100] / [select ship] / [shuffle]x|y|z[/shuffle]`

	a, err := New(WithRandom(random.New(99))).Eval(template)
	if err != nil {
		t.Fatal(err)
	}
	b, err := New(WithRandom(random.New(99))).Eval(template)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Errorf("same seed diverged:\n%q\n%q", a, b)
	}
}
