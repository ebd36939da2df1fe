package parser

import (
	"errors"
	"testing"
)

func TestParseHeaderPositionalAndNamed(t *testing.T) {
	h, err := parseHeader(`select required="outfit" any='school, club'`, 1)
	if err != nil {
		t.Fatalf("parseHeader: %v", err)
	}
	if h.name != "select" {
		t.Errorf("name = %q, want %q", h.name, "select")
	}
	if len(h.pos) != 0 {
		t.Errorf("pos = %v, want none", h.pos)
	}
	if h.named["required"] != "outfit" {
		t.Errorf("required = %q, want %q", h.named["required"], "outfit")
	}
	if h.named["any"] != "school, club" {
		t.Errorf("any = %q, want %q", h.named["any"], "school, club")
	}
}

func TestParseHeaderPositional(t *testing.T) {
	h, err := parseHeader("range 10 20", 1)
	if err != nil {
		t.Fatalf("parseHeader: %v", err)
	}
	if len(h.pos) != 2 || h.pos[0] != "10" || h.pos[1] != "20" {
		t.Errorf("pos = %v, want [10 20]", h.pos)
	}
}

func TestParseHeaderQuotedPositionalKeepsSpaces(t *testing.T) {
	h, err := parseHeader(`case "red shoes"`, 1)
	if err != nil {
		t.Fatalf("parseHeader: %v", err)
	}
	if len(h.pos) != 1 || h.pos[0] != "red shoes" {
		t.Errorf("pos = %v, want [red shoes]", h.pos)
	}
}

func TestParseHeaderDuplicateKeyLastWins(t *testing.T) {
	h, err := parseHeader(`set name=a name=b`, 1)
	if err != nil {
		t.Fatalf("parseHeader: %v", err)
	}
	if h.named["name"] != "b" {
		t.Errorf("name = %q, want %q", h.named["name"], "b")
	}
}

func TestParseHeaderKeysAreLowercased(t *testing.T) {
	h, err := parseHeader(`SELECT Required=Ship`, 1)
	if err != nil {
		t.Fatalf("parseHeader: %v", err)
	}
	if h.name != "select" {
		t.Errorf("name = %q, want %q", h.name, "select")
	}
	if h.named["required"] != "Ship" {
		t.Errorf("required = %q, want value case preserved", h.named["required"])
	}
}

func TestParseHeaderUnquotedValueWithSpace(t *testing.T) {
	_, err := parseHeader(`select key=my var`, 1)
	var argErr *ArgumentError
	if !errors.As(err, &argErr) {
		t.Fatalf("got %v, want ArgumentError", err)
	}
}

func TestParseHeaderEmptyValue(t *testing.T) {
	if _, err := parseHeader(`set name=`, 1); err == nil {
		t.Error("name= with no value should fail")
	}
	h, err := parseHeader(`set name=""`, 1)
	if err != nil {
		t.Fatalf("quoted empty value: %v", err)
	}
	if v, ok := h.named["name"]; !ok || v != "" {
		t.Errorf("name = %q (ok=%v), want empty string", v, ok)
	}
}

func TestParseHeaderConditionIsRaw(t *testing.T) {
	tests := []string{
		`if count == 3`,
		`if hp <= 10`,
		`elseif mood != "angry"`,
		`if 25%`,
	}
	for _, header := range tests {
		h, err := parseHeader(header, 1)
		if err != nil {
			t.Errorf("parseHeader(%q): %v", header, err)
			continue
		}
		if len(h.pos) != 0 || len(h.named) != 0 {
			t.Errorf("parseHeader(%q): condition parsed as arguments: pos=%v named=%v", header, h.pos, h.named)
		}
	}
}

func TestParseHeaderRawArgs(t *testing.T) {
	h, err := parseHeader("if count > 3", 1)
	if err != nil {
		t.Fatalf("parseHeader: %v", err)
	}
	if h.rawArgs != "count > 3" {
		t.Errorf("rawArgs = %q, want %q", h.rawArgs, "count > 3")
	}
}
