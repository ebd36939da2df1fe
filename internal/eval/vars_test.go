package eval

import (
	"errors"
	"testing"
)

func TestSetGet(t *testing.T) {
	if got := run(t, "[set hero]Ryn[/set]Hello [get hero]"); got != "Hello Ryn" {
		t.Errorf("got %q", got)
	}
}

func TestGetMissingIsEmpty(t *testing.T) {
	if got := run(t, "x[get nope]y"); got != "xy" {
		t.Errorf("got %q", got)
	}
}

func TestSetBodyIsEvaluated(t *testing.T) {
	got := run(t, "[set greeting][ran]Hi[/ran], friend[/set][get greeting]")
	if got != "Hi, friend" {
		t.Errorf("got %q", got)
	}
}

func TestOverrideWinsOverSet(t *testing.T) {
	got := run(t, "[set mood]happy[/set][override mood]locked[/override][set mood]sad[/set][get mood]")
	if got != "locked" {
		t.Errorf("got %q, want %q", got, "locked")
	}
}

func TestIncDec(t *testing.T) {
	tests := []struct {
		template string
		want     string
	}{
		{"[inc n][inc n][get n]", "2"},
		{"[inc n by=5][get n]", "5"},
		{"[inc n 3][dec n][get n]", "2"},
		{"[dec n][get n]", "-1"},
		{"[set n]2.5[/set][inc n by=0.25][get n]", "2.75"},
	}
	for _, tc := range tests {
		t.Run(tc.template, func(t *testing.T) {
			if got := run(t, tc.template); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestIncNonNumericFails(t *testing.T) {
	err := runErr(t, "[set n]abc[/set][inc n]")
	var te *TypeError
	if !errors.As(err, &te) {
		t.Fatalf("got %v, want TypeError", err)
	}
}

func TestIncSkipsOverriddenName(t *testing.T) {
	if got := run(t, "[override n]7[/override][inc n][get n]"); got != "7" {
		t.Errorf("got %q, want %q", got, "7")
	}
}

func TestExists(t *testing.T) {
	if got := run(t, "[exists q]"); got != "" {
		t.Errorf("got %q, want empty", got)
	}
	if got := run(t, "[set q]x[/set][exists q]"); got != "1" {
		t.Errorf("got %q, want %q", got, "1")
	}
}

func TestLenCountsRunes(t *testing.T) {
	if got := run(t, "[len]héllo[/len]"); got != "5" {
		t.Errorf("got %q, want %q", got, "5")
	}
	if got := run(t, "[set w]four[/set][len][get w][/len]"); got != "4" {
		t.Errorf("got %q, want %q", got, "4")
	}
}

func TestJoin(t *testing.T) {
	tests := []struct {
		template string
		want     string
	}{
		{`[join sep="-"]a|b|c[/join]`, "a-b-c"},
		{"[join]a|b[/join]", "a, b"},
		{"[join sep=\"+\"]a\nb[/join]", "a+b"},
	}
	for _, tc := range tests {
		if got := run(t, tc.template); got != tc.want {
			t.Errorf("%s: got %q, want %q", tc.template, got, tc.want)
		}
	}
}
