package pat

import (
	"fmt"
	"strings"
)

// Opcode identifies the operation of an Inst.
type Opcode uint8

const (
	// OpHalt ends a thread with a complete match.
	OpHalt Opcode = iota
	// OpChar consumes one symbol equal to Arg.
	OpChar
	// OpFork spawns a thread at pc+Arg that takes priority over the
	// current one, which continues at pc+1.
	OpFork
	// OpJump continues at pc+Arg.
	OpJump
	// OpMark opens capture group Arg at the current position.
	OpMark
	// OpSave closes capture group Arg at the current position.
	OpSave
	// OpClass consumes one symbol belonging to class Arg.
	OpClass
	// OpBackRef is reserved. It executes as a no-op.
	OpBackRef
	// OpAssertEnd succeeds only at the end of the input. It consumes nothing.
	OpAssertEnd
)

var opcodeNames = [...]string{
	OpHalt:      "halt",
	OpChar:      "char",
	OpFork:      "fork",
	OpJump:      "jump",
	OpMark:      "mark",
	OpSave:      "save",
	OpClass:     "class",
	OpBackRef:   "backref",
	OpAssertEnd: "end",
}

func (op Opcode) String() string {
	if int(op) < len(opcodeNames) {
		return opcodeNames[op]
	}
	return fmt.Sprintf("op(%d)", uint8(op))
}

// consumes reports whether op reads an input symbol.
func (op Opcode) consumes() bool {
	return op == OpChar || op == OpClass
}

// Inst is a single bytecode instruction. Jump and Fork targets are relative
// to the instruction's own index.
type Inst struct {
	Op  Opcode
	Arg int32
}

func (i Inst) String() string {
	switch i.Op {
	case OpHalt, OpAssertEnd, OpBackRef:
		return i.Op.String()
	case OpChar:
		return fmt.Sprintf("char %q", rune(i.Arg))
	case OpFork, OpJump:
		return fmt.Sprintf("%s %+d", i.Op, i.Arg)
	case OpClass:
		if i.Arg < numBuiltinClasses {
			return "class " + classNames[i.Arg]
		}
		return fmt.Sprintf("class set%d", i.Arg-numBuiltinClasses)
	}
	return fmt.Sprintf("%s %d", i.Op, i.Arg)
}

func formatProgram(prog []Inst) string {
	var b strings.Builder
	for pc, inst := range prog {
		fmt.Fprintf(&b, "%3d  %s", pc, inst)
		if inst.Op == OpFork || inst.Op == OpJump {
			fmt.Fprintf(&b, "\t(-> %d)", pc+int(inst.Arg))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
