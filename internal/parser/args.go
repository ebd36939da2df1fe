package parser

import (
	"strings"
	"unicode"

	"github.com/TheCulprit/parsifal/internal/token"
)

// conditionCommands take a free-form condition instead of an argument list.
var conditionCommands = map[string]bool{
	"if":     true,
	"elseif": true,
}

// header holds the parsed pieces of a tag header.
type header struct {
	name    string
	pos     []string
	named   map[string]string
	rawArgs string
}

// argToken is one whitespace-delimited token of a header, with quoting
// resolved.
type argToken struct {
	raw    string // as written, quotes included
	cooked string // quotes stripped
	eq     int    // index of the first unquoted '=' in cooked, -1 if none
	quoted bool   // true if any part of the token was quoted
}

// parseHeader splits a tag header into the command name, positional
// arguments, and named arguments. Keys are lowercased and duplicates are
// last-wins. Positional arguments may not follow a named argument; a token
// like `key=my var` therefore fails on the dangling `var`.
func parseHeader(h string, line int) (*header, error) {
	tokens := tokenizeHeader(h)
	if len(tokens) == 0 || tokens[0].cooked == "" {
		return nil, &ArgumentError{Line: line, Token: h, Message: "empty tag"}
	}

	first := tokens[0]
	if first.eq >= 0 {
		return nil, &ArgumentError{Line: line, Token: first.raw, Message: "tag must start with a command name"}
	}

	out := &header{
		name:  strings.ToLower(first.cooked),
		named: map[string]string{},
	}
	out.rawArgs = strings.TrimSpace(strings.TrimPrefix(strings.TrimLeftFunc(h, unicode.IsSpace), first.raw))

	// Condition headers carry a raw expression; the '=' in comparison
	// operators like == and <= must not parse as named arguments.
	if conditionCommands[out.name] {
		return out, nil
	}

	sawNamed := false
	for _, tok := range tokens[1:] {
		if tok.eq < 0 {
			if sawNamed && !tok.quoted {
				return nil, &ArgumentError{
					Line: line, Tag: out.name, Token: tok.raw,
					Message: "positional argument after named arguments (quote the value?)",
				}
			}
			out.pos = append(out.pos, tok.cooked)
			continue
		}

		key := strings.ToLower(tok.cooked[:tok.eq])
		val := tok.cooked[tok.eq+1:]
		if key == "" {
			return nil, &ArgumentError{Line: line, Tag: out.name, Token: tok.raw, Message: "named argument has no key"}
		}
		if val == "" && !tok.quoted {
			return nil, &ArgumentError{Line: line, Tag: out.name, Token: tok.raw, Message: "named argument has no value"}
		}
		out.named[key] = val
		sawNamed = true
	}

	return out, nil
}

// tokenizeHeader splits a header on unquoted whitespace. Quoted runs keep
// their spaces and commas verbatim; the quote characters themselves are
// stripped from the cooked form. The scanner guarantees quotes are paired.
func tokenizeHeader(h string) []argToken {
	var tokens []argToken
	var raw, cooked strings.Builder
	eq := -1
	quoted := false

	flush := func() {
		if raw.Len() == 0 {
			return
		}
		tokens = append(tokens, argToken{raw: raw.String(), cooked: cooked.String(), eq: eq, quoted: quoted})
		raw.Reset()
		cooked.Reset()
		eq = -1
		quoted = false
	}

	runes := []rune(h)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			flush()

		case token.IsQuote(r):
			quoted = true
			raw.WriteRune(r)
			for i++; i < len(runes); i++ {
				raw.WriteRune(runes[i])
				if runes[i] == r {
					break
				}
				cooked.WriteRune(runes[i])
			}

		case r == token.RuneAssign:
			if eq < 0 {
				eq = cooked.Len()
			}
			raw.WriteRune(r)
			cooked.WriteRune(r)

		default:
			raw.WriteRune(r)
			cooked.WriteRune(r)
		}
	}
	flush()

	return tokens
}
