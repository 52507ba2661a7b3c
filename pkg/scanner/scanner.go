package scanner

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// EOF is reported as current rune after the end of the input.
const EOF rune = -1

// Scanner provides rune based access to a textual input
// used by the recursive descent parsers of this module.
type Scanner interface {
	Next() rune
	Current() rune
	Position() int

	// ConsumeRune consumes the expected rune (after skipping blanks)
	// or reports an error.
	ConsumeRune(r rune) error
	SkipBlanks() rune
	// Scan consumes the longest sequence of runes
	// accepted by the given function.
	Scan(accept func(r rune) bool) string

	Errorf(msg string, args ...interface{}) error
}

type scanner struct {
	in      []byte
	offset  int
	no      int
	current rune
}

func NewScanner(in string) Scanner {
	s := &scanner{
		in: []byte(in),
	}
	s.Next()
	return s
}

func (s *scanner) Next() rune {
	if s.offset >= len(s.in) {
		s.current = EOF
		return EOF
	}
	// invalid encodings are reported as utf8.RuneError with size 1
	r, size := utf8.DecodeRune(s.in[s.offset:])
	s.current = r
	s.offset += size
	s.no++
	return r
}

func (s *scanner) Current() rune {
	return s.current
}

func (s *scanner) Position() int {
	return s.no
}

func (s *scanner) ConsumeRune(r rune) error {
	if s.SkipBlanks() != r {
		if s.Current() == EOF {
			return s.Errorf("%q expected, but end of input found", string(r))
		}
		return s.Errorf("%q expected, but found %q", string(r), string(s.Current()))
	}
	s.Next()
	return nil
}

func (s *scanner) SkipBlanks() rune {
	n := s.Current()
	for unicode.IsSpace(n) {
		n = s.Next()
	}
	return n
}

func (s *scanner) Scan(accept func(r rune) bool) string {
	seg := ""
	for c := s.Current(); c != EOF && c != utf8.RuneError && accept(c); c = s.Next() {
		seg += string(c)
	}
	return seg
}

func (s *scanner) Errorf(msg string, args ...interface{}) error {
	return &Error{input: string(s.in), pos: s.Position(), msg: fmt.Sprintf(msg, args...)}
}

// Error describes a syntax error at a dedicated position
// of the scanned input.
type Error struct {
	input string
	pos   int
	msg   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%q %d: %s", e.input, e.pos, e.msg)
}

func (e *Error) Position() int {
	return e.pos
}

func (e *Error) Message() string {
	return e.msg
}
