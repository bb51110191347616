package bootcode

import (
	"github.com/tliron/commonlog"
)

// NoSwap runs the program as written, with no instruction inverted.
const NoSwap = -1

// Machine executes boot-code programs. A Machine holds no state between
// runs: every Run allocates its own trace, so repeated runs (one per
// repair candidate) are independent and could execute in any order.
type Machine struct {
	log commonlog.Logger
}

// NewMachine creates a machine.
func NewMachine() *Machine {
	return &Machine{
		log: commonlog.GetLogger("bootfix.machine"),
	}
}

// RunResult is the classified outcome of one execution.
type RunResult struct {
	// Acc is the accumulator value: final on termination, the value
	// accumulated so far on a loop.
	Acc int64

	// LoopedAt is the position that was about to be visited a second
	// time, or NoSwap (-1) when the run terminated normally.
	LoopedAt int

	// Trace holds every visited position and the transition taken from
	// it, exactly as built up to (not including) a repeated visit.
	Trace TraceMap
}

// Terminated reports whether the run advanced past the end of the program.
func (r RunResult) Terminated() bool {
	return r.LoopedAt == NoSwap
}

// Run executes prog from position 0 with accumulator 0 and classifies
// the outcome. If swapAt names a position, the jmp/nop behavior of the
// instruction there is inverted for this run only (operand unchanged);
// pass NoSwap to run the program as written. The program itself is
// never mutated.
//
// Before executing the instruction at the current position the machine
// checks the trace: a recorded position means the program is looping and
// the run stops immediately. Otherwise a position past the end of the
// program means normal termination. Every distinct position is enterable
// at most once per run, so a run always stops within len(prog)+1 steps;
// no separate step limit is needed.
//
// A jmp whose computed target is negative clamps to position 0. This is
// a defensive floor carried over from the reference behavior, not a
// wraparound; real inputs are not expected to exercise it.
func (m *Machine) Run(prog Program, swapAt int) RunResult {
	trace := NewTraceMap(len(prog))
	var acc int64
	pos := 0

	traceEnabled := m.log.AllowLevel(commonlog.Debug)

	for {
		if trace.Visited(pos) {
			if traceEnabled {
				m.log.Debugf("loop detected at position %d (acc=%d, visited=%d)", pos, acc, trace.Len())
			}
			return RunResult{Acc: acc, LoopedAt: pos, Trace: trace}
		}
		if pos >= len(prog) {
			if traceEnabled {
				m.log.Debugf("terminated at position %d (acc=%d)", pos, acc)
			}
			return RunResult{Acc: acc, LoopedAt: NoSwap, Trace: trace}
		}

		ins := prog[pos]
		if pos == swapAt {
			ins = ins.Swapped()
		}

		var next int
		switch ins.Op {
		case OpAcc:
			acc += ins.Arg
			next = pos + 1
		case OpJmp:
			next = jumpTarget(pos, ins.Arg)
		default: // OpNop
			next = pos + 1
		}

		if traceEnabled {
			m.log.Debugf("[%04d] %-8s acc=%-6d -> %d", pos, ins, acc, next)
		}

		// Record cannot fail here: the loop check above already
		// rejected revisits.
		trace[pos] = next
		pos = next
	}
}

// jumpTarget computes a relative jump, clamping negative targets to 0.
func jumpTarget(pos int, offset int64) int {
	target := int64(pos) + offset
	if target < 0 {
		return 0
	}
	return int(target)
}
