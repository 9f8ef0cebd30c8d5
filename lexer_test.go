package pat

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gotest.tools/v3/assert"
)

func TestLex(t *testing.T) {
	lit := func(r rune) token { return token{kind: tokenLiteral, r: r} }
	class := func(id int) token { return token{kind: tokenClass, class: id} }
	set := func(ranges ...charRange) token { return token{kind: tokenSet, set: &charSet{chars: ranges}} }
	negatedSet := func(ranges ...charRange) token {
		tok := set(ranges...)
		tok.negated = true
		return tok
	}

	cases := []struct {
		pattern  string
		offset   int
		expected token
		n        int
	}{
		{"a", 0, lit('a'), 1},
		{"é", 0, lit('é'), 2},
		{"?", 0, token{kind: tokenQuestionMark}, 1},
		{"*", 0, token{kind: tokenStar}, 1},
		{"+", 0, token{kind: tokenPlus}, 1},
		{"|", 0, token{kind: tokenAlternation}, 1},
		{"(", 0, token{kind: tokenGroupOpen}, 1},
		{")", 0, token{kind: tokenGroupClose}, 1},
		{"$", 0, token{kind: tokenAnchorEnd}, 1},
		{"^a", 0, token{kind: tokenAnchorStart}, 1},
		{"a^", 1, lit('^'), 1},
		{".", 0, class(ClassDot), 1},
		{`\*`, 0, lit('*'), 2},
		{`\(`, 0, lit('('), 2},
		{`\|`, 0, lit('|'), 2},
		{`\\`, 0, lit('\\'), 2},
		{`\n`, 0, lit('\n'), 2},
		{`\t`, 0, lit('\t'), 2},
		{`\é`, 0, lit('é'), 3},
		{`\d`, 0, class(ClassDigit), 2},
		{`\s`, 0, class(ClassSpace), 2},
		{`\a`, 0, class(ClassAlpha), 2},
		{`\u`, 0, class(ClassUpper), 2},
		{`\l`, 0, class(ClassLower), 2},
		{`\C`, 0, class(ClassAny), 2},
		{"[ab]", 0, set(charRange{'a', 'b'}), 4},
		{"[a-cx]z", 0, set(charRange{'a', 'c'}, charRange{'x', 'x'}), 6},
		{"[]]", 0, set(charRange{']', ']'}), 3},
		{"[^]]", 0, negatedSet(charRange{']', ']'}), 4},
		{"[^a-c]", 0, negatedSet(charRange{'a', 'c'}), 6},
		{"\ufffd", 0, lit(0xfffd), 3},
		{"[-]", 0, set(charRange{'-', '-'}), 3},
		{`[\n\]]`, 0, set(charRange{'\n', '\n'}, charRange{']', ']'}), 6},
	}

	for _, c := range cases {
		t.Run(c.pattern, func(t *testing.T) {
			tok, n, err := lex(c.pattern, c.offset)
			assert.NilError(t, err)
			assert.Equal(t, n, c.n)
			assert.DeepEqual(t, tok, c.expected,
				cmp.AllowUnexported(token{}, charSet{}, charRange{}))
		})
	}
}

func TestLexSetWithClass(t *testing.T) {
	tok, n, err := lex(`[\d_]`, 0)
	assert.NilError(t, err)
	assert.Equal(t, n, 5)
	assert.Equal(t, tok.kind, tokenSet)
	assert.Equal(t, tok.set.containsRune('7'), true)
	assert.Equal(t, tok.set.containsRune('_'), true)
	assert.Equal(t, tok.set.containsRune('a'), false)

	// the builtin class must not be modified through the set
	assert.Equal(t, builtinClasses[ClassDigit].containsRune('_'), false)
}

func TestLexErrors(t *testing.T) {
	cases := []struct {
		pattern string
		offset  int
		err     error
	}{
		{`\`, 0, ErrMalformedEscape},
		{`ab\`, 2, ErrMalformedEscape},
		{"[", 0, ErrBadClass},
		{"[]", 0, ErrBadClass},
		{"[b-a]", 0, ErrBadClass},
		{`[\`, 0, ErrMalformedEscape},
		{"\xff", 0, ErrInvalidUTF8},
		{"a\xe2\x82", 1, ErrInvalidUTF8},
		{"\\\xff", 0, ErrInvalidUTF8},
		{"[\xff]", 0, ErrInvalidUTF8},
		{"[a-\xff]", 0, ErrInvalidUTF8},
	}
	for _, c := range cases {
		t.Run(c.pattern, func(t *testing.T) {
			_, _, err := lex(c.pattern, c.offset)
			assert.Assert(t, errors.Is(err, c.err), "got %v", err)
		})
	}
}

func TestTokenKindString(t *testing.T) {
	assert.Equal(t, tokenGroupOpen.String(), "GroupOpen")
	assert.Equal(t, tokenKind(99).String(), "Unknown")
}
