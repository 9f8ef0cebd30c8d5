// Package pat compiles regular expressions into a small bytecode program and
// runs them on a virtual machine that simulates every possible path through
// the program at once, so matching time grows linearly with the input.
//
// Supported syntax:
//
//	x?  x*  x+   optional, zero or more, one or more (greedy)
//	x|y          alternation, the left branch is preferred
//	(x)          capturing group
//	^            start of input (only at the very beginning of the pattern)
//	$            end of input
//	.            any symbol except newline
//	[a-z] [^a]   bracket expressions
//	\d \s \a \u \l \C
//	             digit, whitespace, letter, upper case, lower case, any symbol
//	\n \t        newline, tab
//	\x           the character x, for any other x
//
// A match is searched for at every position of the input. The left-most match
// wins, and among matches starting at the same position the longest one.
package pat

import (
	"bytes"
	"context"
	"io"
	"strings"
	"unicode/utf8"
)

// Flag is a bitmask of compile options.
// The zero value compiles the pattern as written.
type Flag uint8

const (
	// FlagIgnoreCase matches letters case-insensitively using simple case
	// folding.
	FlagIgnoreCase Flag = 1 << iota

	// FlagDotAll makes "." match newlines too.
	FlagDotAll

	// FlagAnchored only accepts matches starting at the beginning of the
	// input, as if the pattern started with "^".
	FlagAnchored
)

// Pattern is a compiled regular expression.
// It is safe for concurrent use by multiple goroutines: matching never
// mutates it, every call owns its own matcher state.
type Pattern struct {
	source     string
	flags      Flag
	prog       []Inst
	sets       []*charSet
	groups     int
	anchored   bool
	maxThreads int
}

// Match holds the capture groups of a successful match.
type Match struct {
	// Groups[0] spans the whole match; Groups[i] is the i-th parenthesized
	// group counting opening parentheses from the left.
	Groups []Capture
}

// Compile parses a pattern and returns a Pattern that can be matched
// against UTF-8 input.
//
// Errors are of type *SyntaxError and wrap one of ErrMalformedEscape,
// ErrUnbalancedGroup, ErrMissingOperand, ErrBadClass, ErrInvalidUTF8 or
// ErrProgramTooLarge.
func Compile(pattern string, flags Flag) (*Pattern, error) {
	c, err := compilePattern(pattern, flags)
	if err != nil {
		return nil, err
	}
	return &Pattern{
		source:   pattern,
		flags:    flags,
		prog:     c.prog,
		sets:     c.sets,
		groups:   c.groups,
		anchored: c.anchored,
	}, nil
}

// MustCompile is like [Compile] but panics if the expression cannot be parsed.
// It simplifies safe initialization of global variables containing patterns.
func MustCompile(pattern string, flags Flag) *Pattern {
	p, err := Compile(pattern, flags)
	if err != nil {
		panic("pat: MustCompile: " + err.Error())
	}
	return p
}

// String returns the source text of the pattern.
func (p *Pattern) String() string {
	return p.source
}

// NumGroups returns the number of capture groups, including group 0.
func (p *Pattern) NumGroups() int {
	return p.groups
}

// Program returns a copy of the compiled instructions.
func (p *Pattern) Program() []Inst {
	prog := make([]Inst, len(p.prog))
	copy(prog, p.prog)
	return prog
}

// Disassemble returns a human-readable listing of the compiled program,
// one instruction per line.
func (p *Pattern) Disassemble() string {
	return formatProgram(p.prog)
}

// WithThreadLimit returns a copy of p whose match attempts fail with
// ErrOutOfMemory once they need more than n live threads.
// n <= 0 removes the limit. Without a limit the number of live threads never
// exceeds the program length.
func (p *Pattern) WithThreadLimit(n int) *Pattern {
	q := *p
	q.maxThreads = n
	return &q
}

func (p *Pattern) class(id int) *charSet {
	if id < numBuiltinClasses {
		return builtinClasses[id]
	}
	return p.sets[id-numBuiltinClasses]
}

// MatchString searches s for the first match of p.
// It returns nil, nil if there is no match.
func (p *Pattern) MatchString(s string) (*Match, error) {
	return p.MatchContext(context.Background(), strings.NewReader(s))
}

// MatchBytes searches b for the first match of p.
// It returns nil, nil if there is no match.
func (p *Pattern) MatchBytes(b []byte) (*Match, error) {
	return p.MatchContext(context.Background(), bytes.NewReader(b))
}

// MatchReader searches the symbols read from rr for the first match of p.
// Reading stops as soon as the result is decided, so rr may be left
// partially consumed.
func (p *Pattern) MatchReader(rr io.RuneReader) (*Match, error) {
	return p.MatchContext(context.Background(), rr)
}

// MatchFunc searches the symbols pulled from next for the first match of p.
func (p *Pattern) MatchFunc(next PullFunc) (*Match, error) {
	return p.MatchContext(context.Background(), next)
}

// MatchContext is like [Pattern.MatchReader] but gives up with ctx.Err() if
// ctx is done before the match is decided. The context is checked once per
// input symbol.
//
// It returns nil, nil if there is no match. Other errors are of type
// *MatchError.
func (p *Pattern) MatchContext(ctx context.Context, rr io.RuneReader) (*Match, error) {
	return newMachine(ctx, p, rr, 0).run()
}

// MatchAllString returns the successive non-overlapping matches of p in s.
//
// Each search begins where the previous match ended. After an empty match
// the search position is first advanced by one symbol, so the same empty
// match is not returned again.
func (p *Pattern) MatchAllString(s string) ([]*Match, error) {
	var matches []*Match
	pos := 0
	for pos <= len(s) {
		m, err := newMachine(context.Background(), p, strings.NewReader(s[pos:]), pos).run()
		if err != nil {
			return matches, err
		}
		if m == nil {
			break
		}
		matches = append(matches, m)
		if p.anchored {
			break
		}
		pos = m.Groups[0].End()
		if m.Groups[0].Extent == 0 {
			if pos == len(s) {
				break
			}
			_, size := utf8.DecodeRuneInString(s[pos:])
			pos += size
		}
	}
	return matches, nil
}
