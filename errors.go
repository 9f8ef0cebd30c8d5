package pat

import (
	"errors"
	"fmt"
)

// Errors reported by Compile, wrapped in a *SyntaxError.
var (
	// ErrMalformedEscape is reported when the pattern ends with a lone backslash.
	ErrMalformedEscape = errors.New("trailing backslash at end of pattern")

	// ErrUnbalancedGroup is reported for a ')' without a matching '('
	// or a '(' that is never closed.
	ErrUnbalancedGroup = errors.New("unbalanced parenthesis")

	// ErrMissingOperand is reported when a quantifier has nothing to repeat.
	ErrMissingOperand = errors.New("missing argument to repetition operator")

	// ErrBadClass is reported for an unterminated bracket expression or an
	// invalid range inside one.
	ErrBadClass = errors.New("malformed character class")

	// ErrInvalidUTF8 is reported when the pattern is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("invalid UTF-8 in pattern")

	// ErrProgramTooLarge is reported when the compiled program would exceed
	// the maximum program length.
	ErrProgramTooLarge = errors.New("compiled program too large")
)

// Errors reported while matching, wrapped in a *MatchError.
var (
	// ErrDecode is reported when the input does not decode to a complete symbol.
	ErrDecode = errors.New("invalid UTF-8 in input")

	// ErrOutOfMemory is reported when a match attempt needs more live threads
	// than the pattern's thread limit allows.
	ErrOutOfMemory = errors.New("thread limit exceeded")
)

// SyntaxError describes why a pattern failed to compile.
type SyntaxError struct {
	// Pattern is the source text passed to Compile.
	Pattern string
	// Pos is the byte offset in Pattern where the problem was found.
	Pos int
	Err error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("pat: compiling %q: %v at offset %d", e.Pattern, e.Err, e.Pos)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

var _ error = (*SyntaxError)(nil)

func newSyntaxError(pattern string, pos int, err error) *SyntaxError {
	return &SyntaxError{Pattern: pattern, Pos: pos, Err: err}
}

// MatchError aborts a match attempt. It wraps ErrDecode, ErrOutOfMemory or an
// error returned by the input source.
type MatchError struct {
	// Pos is the input offset at which the attempt was aborted.
	Pos int
	Err error
}

func (e *MatchError) Error() string {
	return fmt.Sprintf("pat: match aborted at offset %d: %v", e.Pos, e.Err)
}

func (e *MatchError) Unwrap() error {
	return e.Err
}
