package pat

import (
	"cmp"
	"slices"
	"unicode"
)

type charRange struct {
	lo rune
	hi rune
}

type charSet struct {
	// Non-overlapping ranges sorted in ascending order
	chars []charRange
}

// union merges other into s. s never aliases other's storage afterwards.
func (s *charSet) union(other *charSet) {
	if len(other.chars) == 0 {
		return
	}
	chars := append(slices.Clone(s.chars), other.chars...)
	slices.SortFunc(chars, func(a, b charRange) int { return cmp.Compare(a.lo, b.lo) })
	merged := chars[:1]
	for _, cr := range chars[1:] {
		last := &merged[len(merged)-1]
		if cr.lo <= last.hi+1 {
			last.hi = max(last.hi, cr.hi)
			continue
		}
		merged = append(merged, cr)
	}
	s.chars = merged
}

func (s *charSet) unionRange(lo, hi rune) {
	s.union(&charSet{chars: []charRange{{lo: lo, hi: hi}}})
}

func (s *charSet) unionChar(r rune) {
	// first range that r could extend or precede
	i, _ := slices.BinarySearchFunc(s.chars, r, func(cr charRange, r rune) int {
		return cmp.Compare(cr.hi+1, r)
	})
	if i == len(s.chars) {
		s.chars = append(s.chars, charRange{lo: r, hi: r})
		return
	}
	cur := &s.chars[i]
	switch {
	case cur.lo <= r && r <= cur.hi:
	case cur.lo <= r:
		cur.hi = r
		if i+1 < len(s.chars) && s.chars[i+1].lo == r+1 {
			cur.hi = s.chars[i+1].hi
			s.chars = slices.Delete(s.chars, i+1, i+2)
		}
	case cur.lo == r+1:
		cur.lo = r
	default:
		s.chars = slices.Insert(s.chars, i, charRange{lo: r, hi: r})
	}
}

func (s *charSet) containsRune(r rune) bool {
	i, _ := slices.BinarySearchFunc(s.chars, r, func(cr charRange, r rune) int {
		return cmp.Compare(cr.hi, r)
	})
	return i < len(s.chars) && s.chars[i].lo <= r
}

// containsFolded reports whether s contains r or any rune in the simple case
// folding orbit of r.
func (s *charSet) containsFolded(r rune) bool {
	if s.containsRune(r) {
		return true
	}
	for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
		if s.containsRune(f) {
			return true
		}
	}
	return false
}

// maxFoldRune is the largest rune with a non-trivial simple folding orbit.
const maxFoldRune = 0x1e943

// foldCase closes s under simple case folding. A set must be folded before it
// is complemented, otherwise the complement still holds the other case of
// the excluded letters.
func (s *charSet) foldCase() {
	folded := &charSet{chars: slices.Clone(s.chars)}
	for _, cr := range s.chars {
		for r := cr.lo; r <= min(cr.hi, maxFoldRune); r++ {
			for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
				folded.unionChar(f)
			}
		}
	}
	s.chars = folded.chars
}

func (s *charSet) complement() {
	chars := make([]charRange, 0, len(s.chars)+1)
	next := rune(0)
	for _, cr := range s.chars {
		if cr.lo > next {
			chars = append(chars, charRange{lo: next, hi: cr.lo - 1})
		}
		next = cr.hi + 1
	}
	if next <= unicode.MaxRune {
		chars = append(chars, charRange{lo: next, hi: unicode.MaxRune})
	}
	s.chars = chars
}

func tableCharSet(t *unicode.RangeTable) *charSet {
	var chars []charRange
	add := func(lo, hi, stride rune) {
		if stride == 1 {
			chars = append(chars, charRange{lo: lo, hi: hi})
			return
		}
		for r := lo; r <= hi; r += stride {
			chars = append(chars, charRange{lo: r, hi: r})
		}
	}
	for _, r := range t.R16 {
		add(rune(r.Lo), rune(r.Hi), rune(r.Stride))
	}
	for _, r := range t.R32 {
		add(rune(r.Lo), rune(r.Hi), rune(r.Stride))
	}
	s := &charSet{}
	s.union(&charSet{chars: chars})
	return s
}

// Builtin class ids. Bracket expressions compiled into a Pattern are numbered
// from numBuiltinClasses on.
const (
	ClassAny   = iota // any symbol
	ClassDot          // any symbol but '\n'
	ClassAlpha        // letters
	ClassUpper
	ClassLower
	ClassDigit
	ClassSpace

	numBuiltinClasses
)

var builtinClasses = func() [numBuiltinClasses]*charSet {
	var classes [numBuiltinClasses]*charSet

	classes[ClassAny] = &charSet{}
	classes[ClassAny].complement()

	classes[ClassDot] = &charSet{chars: []charRange{{lo: '\n', hi: '\n'}}}
	classes[ClassDot].complement()

	classes[ClassAlpha] = tableCharSet(unicode.Letter)
	classes[ClassUpper] = tableCharSet(unicode.Upper)
	classes[ClassLower] = tableCharSet(unicode.Lower)
	classes[ClassDigit] = tableCharSet(unicode.Digit)
	classes[ClassSpace] = tableCharSet(unicode.White_Space)
	return classes
}()

var classNames = [numBuiltinClasses]string{
	ClassAny:   "any",
	ClassDot:   "dot",
	ClassAlpha: "alpha",
	ClassUpper: "upper",
	ClassLower: "lower",
	ClassDigit: "digit",
	ClassSpace: "space",
}

// classEscapes maps the letter following '\' to a builtin class.
var classEscapes = map[byte]int{
	'C': ClassAny,
	'a': ClassAlpha,
	'u': ClassUpper,
	'l': ClassLower,
	'd': ClassDigit,
	's': ClassSpace,
}
