// Package token defines the span kinds and structural runes of the
// bracket-tag template syntax.
package token

// Kind classifies a scanned span.
type Kind int

const (
	EOF Kind = iota
	// TEXT is a literal run of template text.
	TEXT
	// TAG is the header of a bracket tag, without the enclosing brackets.
	// A header beginning with '/' is a closing tag.
	TAG
)

// Structural runes of the tag syntax.
const (
	RuneOpen   = '[' // starts a tag
	RuneClose  = ']' // ends a tag
	RuneSlash  = '/' // marks a closing tag header
	RuneAssign = '=' // separates a named argument key from its value
	RunePipe   = '|' // list separator inside ran/shuffle/join bodies
)

// IsQuote reports whether r opens or closes a quoted argument value.
// Double and single quotes are interchangeable but must be paired.
func IsQuote(r rune) bool {
	return r == '"' || r == '\''
}

// String returns the name of a span kind.
func (k Kind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case TEXT:
		return "TEXT"
	case TAG:
		return "TAG"
	}
	return "UNKNOWN"
}
