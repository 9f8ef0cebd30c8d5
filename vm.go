package pat

import (
	"context"
	"io"
	"slices"
	"unicode"

	"github.com/auvred/pat/internal/sparse"
)

type thread struct {
	pc int
	// owned by the thread; never shared with a sibling
	caps []Capture
}

// machine is the state of a single match attempt. Threads are kept in
// priority order: a thread earlier in the list is preferred over every
// thread after it.
type machine struct {
	p   *Pattern
	ctx context.Context
	src runeSource

	threads []thread
	// instructions already reached at the current position
	visited *sparse.Set
	caps    captureStore
	best    []Capture
}

func newMachine(ctx context.Context, p *Pattern, rr io.RuneReader, pos int) *machine {
	return &machine{
		p:       p,
		ctx:     ctx,
		src:     runeSource{rr: rr, pos: pos},
		visited: sparse.New(len(p.prog)),
		caps:    captureStore{size: p.groups},
	}
}

func (vm *machine) run() (*Match, error) {
	if err := vm.src.read(); err != nil {
		return nil, err
	}
	vm.threads = append(vm.threads, thread{pc: 0, caps: vm.caps.get(nil)})

	for {
		if err := vm.ctx.Err(); err != nil {
			return nil, err
		}
		vm.visited.Clear()
		if err := vm.closure(); err != nil {
			return nil, err
		}
		if len(vm.threads) == 0 || vm.src.atEnd {
			break
		}
		vm.consume()
		vm.src.advance()
		if len(vm.threads) == 0 {
			break
		}
		if err := vm.src.read(); err != nil {
			return nil, err
		}
	}

	if vm.best == nil {
		return nil, nil
	}
	return &Match{Groups: vm.best}, nil
}

// closure runs every live thread up to its next symbol-consuming
// instruction. A forked thread is inserted right before its parent and runs
// first, so the list stays in priority order. A thread reaching an
// instruction that a higher-priority thread already reached at this position
// is dropped: from here on it could only repeat that thread's work.
func (vm *machine) closure() error {
	prog := vm.p.prog
	pos := vm.src.pos

	for i := 0; i < len(vm.threads); {
		t := &vm.threads[i]
	Thread:
		for {
			if !vm.visited.Insert(uint32(t.pc)) {
				vm.kill(i)
				break
			}
			inst := prog[t.pc]
			if inst.Op.consumes() {
				i++
				break
			}
			switch inst.Op {
			case OpJump:
				t.pc += int(inst.Arg)
			case OpFork:
				clone := thread{pc: t.pc + int(inst.Arg), caps: vm.caps.get(t.caps)}
				t.pc++
				vm.threads = slices.Insert(vm.threads, i, clone)
				if vm.p.maxThreads > 0 && len(vm.threads) > vm.p.maxThreads {
					return &MatchError{Pos: pos, Err: ErrOutOfMemory}
				}
				// the clone now sits at i and runs next
				break Thread
			case OpMark:
				openGroup(t.caps, int(inst.Arg), pos)
				t.pc++
			case OpSave:
				closeGroup(t.caps, int(inst.Arg), pos)
				t.pc++
			case OpAssertEnd:
				if !vm.src.atEnd {
					vm.kill(i)
					break Thread
				}
				t.pc++
			case OpBackRef:
				t.pc++
			case OpHalt:
				i = vm.finish(i)
				break Thread
			default:
				vm.kill(i)
				break Thread
			}
		}
	}
	return nil
}

// consume feeds the current symbol to every thread. Threads that accept it
// move past their instruction, the rest die.
func (vm *machine) consume() {
	prog := vm.p.prog
	live := vm.threads[:0]
	for _, t := range vm.threads {
		if vm.accepts(prog[t.pc]) {
			t.pc++
			live = append(live, t)
		} else {
			vm.caps.put(t.caps)
		}
	}
	clear(vm.threads[len(live):])
	vm.threads = live
}

func (vm *machine) accepts(inst Inst) bool {
	r := vm.src.r
	fold := vm.p.flags&FlagIgnoreCase != 0
	switch inst.Op {
	case OpChar:
		c := rune(inst.Arg)
		if r == c {
			return true
		}
		if !fold {
			return false
		}
		for f := unicode.SimpleFold(c); f != c; f = unicode.SimpleFold(f) {
			if f == r {
				return true
			}
		}
		return false
	case OpClass:
		id := int(inst.Arg)
		set := vm.p.class(id)
		// bracket sets are folded when compiled
		if fold && id < numBuiltinClasses {
			return set.containsFolded(r)
		}
		return set.containsRune(r)
	}
	return false
}

// finish promotes the halted thread at i to a finished result, keeps the
// better of it and the current best, then prunes every live thread that can
// no longer beat the best. It returns the index of the next thread to run.
func (vm *machine) finish(i int) int {
	caps := vm.threads[i].caps
	vm.threads = slices.Delete(vm.threads, i, i+1)

	if vm.best == nil || outranks(caps, vm.best) {
		vm.caps.put(vm.best)
		vm.best = caps
	} else {
		vm.caps.put(caps)
	}

	// A thread with group 0 still unopened can only start after the best
	// match did, and so can one that opened it later.
	start := vm.best[0].Offset
	next := i
	live := vm.threads[:0]
	for j, t := range vm.threads {
		if t.caps[0].Offset == Unset || t.caps[0].Offset > start {
			vm.caps.put(t.caps)
			if j < i {
				next--
			}
			continue
		}
		live = append(live, t)
	}
	clear(vm.threads[len(live):])
	vm.threads = live
	return next
}

func (vm *machine) kill(i int) {
	vm.caps.put(vm.threads[i].caps)
	vm.threads = slices.Delete(vm.threads, i, i+1)
}
