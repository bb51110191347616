package bootcode

import (
	"errors"
	"fmt"

	"github.com/tliron/commonlog"
)

// ErrNoRepair indicates every loop-path candidate was tried and none made
// the program terminate. Valid puzzle inputs always contain exactly one
// fixable instruction, so this surfaces bad input rather than looping or
// panicking.
var ErrNoRepair = errors.New("no single jmp/nop swap fixes the loop")

// RepairResult describes a successful repair run.
type RepairResult struct {
	// Acc is the final accumulator value of the terminating run.
	Acc int64

	// Patched is the position whose instruction was inverted to reach
	// termination, or NoSwap when the program terminated as written.
	Patched int

	// LoopPath is the cycle detected in the unmodified run, in
	// visitation order. Empty when no repair was needed.
	LoopPath []int

	// Trials counts executor runs performed, the unmodified run included.
	Trials int
}

// Repair runs prog and, if it loops, searches for the single jmp/nop
// inversion that makes it terminate.
//
// Candidates are restricted to positions on the detected loop: the faulty
// instruction must lie on the cycle, and acc positions are skipped
// because they have no alternate form. Candidates are tried in loop
// visitation order and the search stops at the first terminating run.
func Repair(prog Program) (RepairResult, error) {
	log := commonlog.GetLogger("bootfix.repair")
	m := NewMachine()

	first := m.Run(prog, NoSwap)
	if first.Terminated() {
		log.Infof("program terminates unmodified (acc=%d)", first.Acc)
		return RepairResult{Acc: first.Acc, Patched: NoSwap, Trials: 1}, nil
	}

	path, err := first.Trace.LoopPath(first.LoopedAt)
	if err != nil {
		return RepairResult{}, fmt.Errorf("extracting loop path: %w", err)
	}
	log.Infof("loop of %d positions detected at %d (acc=%d)", len(path), first.LoopedAt, first.Acc)

	trials := 1
	for _, pos := range path {
		if !prog[pos].Op.Swappable() {
			continue
		}
		trials++
		result := m.Run(prog, pos)
		if result.Terminated() {
			log.Infof("swapping %q at position %d terminates (acc=%d, trials=%d)", prog[pos], pos, result.Acc, trials)
			return RepairResult{
				Acc:      result.Acc,
				Patched:  pos,
				LoopPath: path,
				Trials:   trials,
			}, nil
		}
		log.Debugf("swap at %d still loops at %d", pos, result.LoopedAt)
	}

	return RepairResult{LoopPath: path, Trials: trials}, ErrNoRepair
}
