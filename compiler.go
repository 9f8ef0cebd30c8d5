package pat

// maxProgramLen bounds the number of instructions in a compiled program.
// It keeps every relative jump well inside int32.
const maxProgramLen = 1 << 20

type stack[T any] []T

func (s *stack[T]) push(v T) { *s = append(*s, v) }

func (s *stack[T]) peekPtr() *T { return &(*s)[len(*s)-1] }

func (s *stack[T]) pop() T {
	i := len(*s) - 1
	v := (*s)[i]
	*s = (*s)[:i]
	return v
}

// groupFrame tracks a group that is still open while compiling.
type groupFrame struct {
	group int
	// index of the group's Mark instruction
	mark int
	// index of the first instruction of the current alternative
	altStart int
	// Jump instructions leaving earlier alternatives, resolved when the
	// group closes
	exits []int
	// pattern offset of the '(' for error reporting
	pos int
}

type compiler struct {
	pattern string
	flags   Flag

	prog   []Inst
	sets   []*charSet
	groups int
	frames stack[groupFrame]

	// index of the first instruction of the atom a quantifier would apply
	// to, or -1
	lastAtom int
	anchored bool
}

func compilePattern(pattern string, flags Flag) (*compiler, error) {
	c := compiler{
		pattern:  pattern,
		flags:    flags,
		lastAtom: -1,
	}
	if err := c.compile(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Returns the position of the emitted instruction
func (c *compiler) emit(op Opcode, arg int) int {
	pos := len(c.prog)
	c.prog = append(c.prog, Inst{Op: op, Arg: int32(arg)})
	return pos
}

func (c *compiler) insert(at int, insts ...Inst) {
	c.prog = append(c.prog, insts...)
	copy(c.prog[at+len(insts):], c.prog[at:])
	copy(c.prog[at:], insts)
}

func (c *compiler) compile() error {
	pos := 0
	c.anchored = c.flags&FlagAnchored != 0
	if len(c.pattern) > 0 {
		tok, n, err := lex(c.pattern, 0)
		if err != nil {
			return newSyntaxError(c.pattern, 0, err)
		}
		if tok.kind == tokenAnchorStart {
			c.anchored = true
			pos += n
		}
	}

	if !c.anchored {
		// (?:.*?) in front of the match, preferring to start right here
		c.emit(OpFork, 3)
		c.emit(OpClass, ClassAny)
		c.emit(OpJump, -2)
	}
	c.groups++
	c.frames.push(groupFrame{
		group:    0,
		mark:     c.emit(OpMark, 0),
		altStart: len(c.prog),
	})

	for pos < len(c.pattern) {
		tok, n, err := lex(c.pattern, pos)
		if err != nil {
			return newSyntaxError(c.pattern, pos, err)
		}
		if err := c.compileToken(tok, pos); err != nil {
			return newSyntaxError(c.pattern, pos, err)
		}
		if len(c.prog) > maxProgramLen {
			return newSyntaxError(c.pattern, pos, ErrProgramTooLarge)
		}
		pos += n
	}

	if len(c.frames) > 1 {
		return newSyntaxError(c.pattern, c.frames.peekPtr().pos, ErrUnbalancedGroup)
	}
	c.closeFrame(c.frames.pop())
	c.emit(OpSave, 0)
	c.emit(OpHalt, 0)
	if len(c.prog) > maxProgramLen {
		return newSyntaxError(c.pattern, len(c.pattern), ErrProgramTooLarge)
	}
	return nil
}

func (c *compiler) compileToken(tok token, pos int) error {
	switch tok.kind {
	case tokenLiteral:
		c.lastAtom = c.emit(OpChar, int(tok.r))
	case tokenClass:
		class := tok.class
		if class == ClassDot && c.flags&FlagDotAll != 0 {
			class = ClassAny
		}
		c.lastAtom = c.emit(OpClass, class)
	case tokenSet:
		set := tok.set
		if c.flags&FlagIgnoreCase != 0 {
			set.foldCase()
		}
		if tok.negated {
			set.complement()
		}
		c.lastAtom = c.emit(OpClass, numBuiltinClasses+len(c.sets))
		c.sets = append(c.sets, set)
	case tokenQuestionMark, tokenStar, tokenPlus:
		if c.lastAtom < 0 {
			return ErrMissingOperand
		}
		c.quantify(tok.kind)
	case tokenAlternation:
		c.alternate()
		c.lastAtom = -1
	case tokenGroupOpen:
		group := c.groups
		c.groups++
		c.frames.push(groupFrame{
			group:    group,
			mark:     c.emit(OpMark, group),
			altStart: len(c.prog),
			pos:      pos,
		})
		c.lastAtom = -1
	case tokenGroupClose:
		if len(c.frames) == 1 {
			return ErrUnbalancedGroup
		}
		f := c.frames.pop()
		c.closeFrame(f)
		c.emit(OpSave, f.group)
		c.lastAtom = f.mark
	case tokenAnchorEnd:
		c.emit(OpAssertEnd, 0)
		c.lastAtom = -1
	case tokenAnchorStart:
		// only produced at offset 0, which compile consumes up front
		c.lastAtom = -1
	}
	return nil
}

// quantify wraps the instructions from lastAtom to the end of the program.
// The thread that repeats (or takes the optional atom) is always the forked
// one, so it outranks the thread that moves on.
func (c *compiler) quantify(kind tokenKind) {
	start := c.lastAtom
	n := len(c.prog) - start
	switch kind {
	case tokenQuestionMark:
		c.insert(start,
			Inst{Op: OpFork, Arg: 2},
			Inst{Op: OpJump, Arg: int32(n + 1)},
		)
	case tokenStar:
		c.insert(start, Inst{Op: OpJump, Arg: int32(n + 1)})
		c.emit(OpFork, -n)
	case tokenPlus:
		c.emit(OpFork, -n)
	}
}

// alternate turns the current alternative of the innermost open group into
// the preferred branch of a Fork and leaves a pending Jump behind it.
func (c *compiler) alternate() {
	f := c.frames.peekPtr()
	start := f.altStart
	n := len(c.prog) - start
	c.insert(start,
		Inst{Op: OpFork, Arg: 2},
		Inst{Op: OpJump, Arg: int32(n + 2)},
	)
	f.exits = append(f.exits, c.emit(OpJump, 0))
	f.altStart = len(c.prog)
}

func (c *compiler) closeFrame(f groupFrame) {
	end := len(c.prog)
	for _, exit := range f.exits {
		c.prog[exit].Arg = int32(end - exit)
	}
}
