// Package scanner provides a quote-aware bracket scanner for template text.
package scanner

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/TheCulprit/parsifal/internal/token"
)

// Scanner splits raw template text into literal and tag-header spans.
type Scanner struct {
	reader *bufio.Reader
	buf    strings.Builder
	line   int // Current line number (1-based)
}

// Item represents a scanned span.
type Item struct {
	Kind  token.Kind
	Value string // TEXT: the literal run; TAG: the header between brackets
	Raw   string // The span exactly as it appeared in the source
	Line  int    // Line number where this span started
}

// UnterminatedQuoteError reports a quote opened inside a tag header that
// never closed.
type UnterminatedQuoteError struct {
	Line int
}

func (e *UnterminatedQuoteError) Error() string {
	return fmt.Sprintf("unterminated quote in tag header starting at line %d", e.Line)
}

// New creates a new Scanner from an io.Reader.
func New(r io.Reader) *Scanner {
	return &Scanner{
		reader: bufio.NewReader(r),
		line:   1,
	}
}

// NewFromString creates a new Scanner from a string.
func NewFromString(s string) *Scanner {
	return New(strings.NewReader(s))
}

// Line returns the current line number (1-based).
func (s *Scanner) Line() int {
	return s.line
}

// Next returns the next span from the input.
//
// A '[' begins a tag header that runs to the first ']' outside quotes; '|',
// '=', '[' and ']' inside an active quote are not structural. A ']' with no
// open tag is literal text. A '[' whose header never terminates is also
// demoted to literal text, but an unclosed quote inside a header is an
// UnterminatedQuoteError.
func (s *Scanner) Next() (*Item, error) {
	s.buf.Reset()
	startLine := s.line

	for {
		r, _, err := s.reader.ReadRune()
		if err == io.EOF {
			if s.buf.Len() > 0 {
				text := s.buf.String()
				return &Item{Kind: token.TEXT, Value: text, Raw: text, Line: startLine}, nil
			}
			return &Item{Kind: token.EOF, Line: s.line}, nil
		}
		if err != nil {
			return nil, err
		}

		if r == token.RuneOpen {
			// Flush any accumulated text first.
			if s.buf.Len() > 0 {
				s.reader.UnreadRune()
				text := s.buf.String()
				return &Item{Kind: token.TEXT, Value: text, Raw: text, Line: startLine}, nil
			}
			return s.scanTag()
		}

		if r == '\n' {
			s.line++
		}
		s.buf.WriteRune(r)
	}
}

// scanTag consumes a tag header after its opening bracket.
func (s *Scanner) scanTag() (*Item, error) {
	startLine := s.line
	var header strings.Builder

	for {
		r, _, err := s.reader.ReadRune()
		if err == io.EOF {
			// No closing bracket: the whole fragment is literal text.
			raw := string(token.RuneOpen) + header.String()
			return &Item{Kind: token.TEXT, Value: raw, Raw: raw, Line: startLine}, nil
		}
		if err != nil {
			return nil, err
		}

		switch {
		case r == token.RuneClose:
			h := header.String()
			raw := string(token.RuneOpen) + h + string(token.RuneClose)
			return &Item{Kind: token.TAG, Value: h, Raw: raw, Line: startLine}, nil

		case token.IsQuote(r):
			header.WriteRune(r)
			if err := s.scanQuoted(r, &header, startLine); err != nil {
				return nil, err
			}

		default:
			if r == '\n' {
				s.line++
			}
			header.WriteRune(r)
		}
	}
}

// scanQuoted copies a quoted run into the header, including the closing
// quote. Brackets and pipes inside the run stay inert.
func (s *Scanner) scanQuoted(quote rune, header *strings.Builder, startLine int) error {
	for {
		r, _, err := s.reader.ReadRune()
		if err == io.EOF {
			return &UnterminatedQuoteError{Line: startLine}
		}
		if err != nil {
			return err
		}
		if r == '\n' {
			s.line++
		}
		header.WriteRune(r)
		if r == quote {
			return nil
		}
	}
}
