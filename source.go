package pat

import (
	"io"
	"unicode/utf8"
)

// The matcher reads its input through io.RuneReader. A symbol is one rune,
// and its size is the number of bytes its UTF-8 encoding occupies, which is
// what capture offsets count. Invalid UTF-8, reported by readers as
// (utf8.RuneError, 1), aborts the match with ErrDecode.
//
// strings.Reader, bytes.Reader and bufio.Reader all satisfy io.RuneReader.

// PullFunc is a pull-based source of symbols. Each call returns the next
// symbol, or ok == false once the input is exhausted.
//
// Runes that cannot be encoded as UTF-8, such as surrogate halves, abort the
// match with ErrDecode.
type PullFunc func() (r rune, ok bool)

var _ io.RuneReader = PullFunc(nil)

// ReadRune implements io.RuneReader.
func (f PullFunc) ReadRune() (rune, int, error) {
	r, ok := f()
	if !ok {
		return 0, 0, io.EOF
	}
	size := utf8.RuneLen(r)
	if size < 0 {
		return utf8.RuneError, 0, ErrDecode
	}
	return r, size, nil
}

// runeSource reads symbols with one symbol of lookahead, so the matcher knows
// whether the current position is the end of input before running the
// instructions that do not consume anything.
type runeSource struct {
	rr    io.RuneReader
	pos   int
	r     rune
	size  int
	atEnd bool
}

func (s *runeSource) read() error {
	r, size, err := s.rr.ReadRune()
	if err == io.EOF {
		s.r, s.size, s.atEnd = 0, 0, true
		return nil
	}
	if err != nil {
		return &MatchError{Pos: s.pos, Err: err}
	}
	if size <= 0 || (r == utf8.RuneError && size == 1) {
		return &MatchError{Pos: s.pos, Err: ErrDecode}
	}
	s.r, s.size = r, size
	return nil
}

func (s *runeSource) advance() {
	s.pos += s.size
}
