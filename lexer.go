package pat

import (
	"unicode/utf8"
)

type tokenKind uint8

const (
	tokenLiteral tokenKind = iota
	tokenQuestionMark
	tokenStar
	tokenPlus
	tokenAlternation
	tokenAnchorStart
	tokenAnchorEnd
	tokenGroupOpen
	tokenGroupClose
	// '.' and class escapes such as \d
	tokenClass
	// bracket expression
	tokenSet
)

var tokenKindNames = [...]string{
	tokenLiteral:      "Literal",
	tokenQuestionMark: "QuestionMark",
	tokenStar:         "Star",
	tokenPlus:         "Plus",
	tokenAlternation:  "Alternation",
	tokenAnchorStart:  "AnchorStart",
	tokenAnchorEnd:    "AnchorEnd",
	tokenGroupOpen:    "GroupOpen",
	tokenGroupClose:   "GroupClose",
	tokenClass:        "Class",
	tokenSet:          "Set",
}

func (k tokenKind) String() string {
	if int(k) < len(tokenKindNames) {
		return tokenKindNames[k]
	}
	return "Unknown"
}

type token struct {
	kind tokenKind
	// tokenLiteral
	r rune
	// tokenClass
	class int
	// tokenSet, before negation so that case folding can be applied first
	set     *charSet
	negated bool
}

// lex returns the token starting at offset and the number of bytes it spans.
// Errors carry the offset of the offending byte.
func lex(pattern string, offset int) (token, int, error) {
	r, size, err := decodeRune(pattern[offset:])
	if err != nil {
		return token{}, 0, err
	}
	switch r {
	case '?':
		return token{kind: tokenQuestionMark}, 1, nil
	case '*':
		return token{kind: tokenStar}, 1, nil
	case '+':
		return token{kind: tokenPlus}, 1, nil
	case '|':
		return token{kind: tokenAlternation}, 1, nil
	case '(':
		return token{kind: tokenGroupOpen}, 1, nil
	case ')':
		return token{kind: tokenGroupClose}, 1, nil
	case '$':
		return token{kind: tokenAnchorEnd}, 1, nil
	case '.':
		return token{kind: tokenClass, class: ClassDot}, 1, nil
	case '^':
		if offset == 0 {
			return token{kind: tokenAnchorStart}, 1, nil
		}
		return token{kind: tokenLiteral, r: '^'}, 1, nil
	case '[':
		set, negated, n, err := lexSet(pattern, offset)
		if err != nil {
			return token{}, 0, err
		}
		return token{kind: tokenSet, set: set, negated: negated}, n, nil
	case '\\':
		if offset+1 >= len(pattern) {
			return token{}, 0, ErrMalformedEscape
		}
		if class, ok := classEscapes[pattern[offset+1]]; ok {
			return token{kind: tokenClass, class: class}, 2, nil
		}
		r, n, err := lexEscapedRune(pattern, offset+1)
		if err != nil {
			return token{}, 0, err
		}
		return token{kind: tokenLiteral, r: r}, 1 + n, nil
	}
	return token{kind: tokenLiteral, r: r}, size, nil
}

func decodeRune(s string) (rune, int, error) {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && size == 1 {
		return 0, 0, ErrInvalidUTF8
	}
	return r, size, nil
}

// lexEscapedRune decodes the character following a backslash.
func lexEscapedRune(pattern string, offset int) (rune, int, error) {
	switch pattern[offset] {
	case 'n':
		return '\n', 1, nil
	case 't':
		return '\t', 1, nil
	}
	return decodeRune(pattern[offset:])
}

// lexSet parses a bracket expression starting at the '[' at offset and
// returns its members with a leading '^' reported separately.
// A ']' right after the opening bracket (or after '^') is a literal.
func lexSet(pattern string, offset int) (*charSet, bool, int, error) {
	pos := offset + 1
	negated := false
	if pos < len(pattern) && pattern[pos] == '^' {
		negated = true
		pos++
	}

	set := &charSet{}
	first := true
	for {
		if pos >= len(pattern) {
			return nil, false, 0, ErrBadClass
		}
		if pattern[pos] == ']' && !first {
			pos++
			break
		}
		first = false

		lo, class, n, err := lexSetAtom(pattern, pos)
		if err != nil {
			return nil, false, 0, err
		}
		pos += n
		if class != nil {
			set.union(class)
			continue
		}

		// a '-' right before ']' is a literal
		if pos+1 < len(pattern) && pattern[pos] == '-' && pattern[pos+1] != ']' {
			hi, hiClass, n, err := lexSetAtom(pattern, pos+1)
			if err != nil {
				return nil, false, 0, err
			}
			if hiClass != nil || hi < lo {
				return nil, false, 0, ErrBadClass
			}
			pos += 1 + n
			set.unionRange(lo, hi)
			continue
		}
		set.unionChar(lo)
	}

	return set, negated, pos - offset, nil
}

func lexSetAtom(pattern string, pos int) (rune, *charSet, int, error) {
	if pattern[pos] != '\\' {
		r, n, err := decodeRune(pattern[pos:])
		return r, nil, n, err
	}
	if pos+1 >= len(pattern) {
		return 0, nil, 0, ErrMalformedEscape
	}
	if class, ok := classEscapes[pattern[pos+1]]; ok {
		return 0, builtinClasses[class], 2, nil
	}
	r, n, err := lexEscapedRune(pattern, pos+1)
	if err != nil {
		return 0, nil, 0, err
	}
	return r, nil, 1 + n, nil
}
