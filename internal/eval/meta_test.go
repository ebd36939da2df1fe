package eval

import (
	"testing"

	"github.com/TheCulprit/parsifal/internal/content"
	"github.com/TheCulprit/parsifal/internal/random"
)

func TestMuteKeepsSideEffects(t *testing.T) {
	got := run(t, "[mute]loud[set x]5[/set][/mute][get x]")
	if got != "5" {
		t.Errorf("got %q, want %q", got, "5")
	}
}

func TestIgnoreEmitsBodyVerbatim(t *testing.T) {
	got := run(t, "[ignore][ran]A|B[/ran][/ignore]")
	if got != "[ran]A|B[/ran]" {
		t.Errorf("got %q", got)
	}
}

func TestComments(t *testing.T) {
	if got := run(t, "a[comment]hidden[/comment]b"); got != "ab" {
		t.Errorf("got %q, want %q", got, "ab")
	}
	if got := run(t, "a[#]also hidden[/#]b"); got != "ab" {
		t.Errorf("got %q, want %q", got, "ab")
	}
}

func TestCommentBodyNeverEvaluated(t *testing.T) {
	got := run(t, "[comment][call ghost][key=][/comment]ok")
	if got != "ok" {
		t.Errorf("got %q, want %q", got, "ok")
	}
}

func TestFile(t *testing.T) {
	got := runWithFiles(t, "[file greet.txt]", map[string]string{"greet.txt": "Well met"})
	if got != "Well met" {
		t.Errorf("got %q, want %q", got, "Well met")
	}
}

func TestFileMissingIsEmpty(t *testing.T) {
	got := runWithFiles(t, "x[file nope.txt]y", map[string]string{})
	if got != "xy" {
		t.Errorf("got %q, want %q", got, "xy")
	}
}

func TestAllJoinsDirectorySorted(t *testing.T) {
	got := runWithFiles(t, "[all lore]", map[string]string{
		"lore/b.txt": "beta\n",
		"lore/a.txt": "alpha",
	})
	if got != "alpha\nbeta" {
		t.Errorf("got %q, want %q", got, "alpha\nbeta")
	}
}

func TestLibraryLoadsDefinitions(t *testing.T) {
	got := runWithFiles(t, "[library lib][call hi]", map[string]string{
		"lib/defs.txt": "[def hi]Yo[/def]",
	})
	if got != "Yo" {
		t.Errorf("got %q, want %q", got, "Yo")
	}
}

func TestLibraryMissingDirFails(t *testing.T) {
	e := New(WithRandom(random.New(1)), WithSource(content.NewMap(nil)))
	if _, err := e.Eval("[library nowhere]"); err == nil {
		t.Error("missing library directory should fail")
	}
}

func TestLibraryWithoutSourceFails(t *testing.T) {
	e := New(WithRandom(random.New(1)))
	if _, err := e.Eval("[library lib]"); err == nil {
		t.Error("library without a content source should fail")
	}
}
