package bootcode

import (
	"errors"
	"fmt"
)

// ErrBrokenTrace indicates a loop-path walk hit a position with no
// recorded transition. The machine only reports loops whose start is
// reachable from itself through the trace, so this is a caller bug,
// not an input condition.
var ErrBrokenTrace = errors.New("trace has no transition for position")

// TraceMap records, for every position a run visited, the position it
// moved to next. A position is recorded at most once per run; re-visiting
// a recorded position is precisely how the machine detects a loop.
//
// A TraceMap is built fresh by every run and shares no state between runs.
type TraceMap map[int]int

// NewTraceMap returns an empty trace sized for a program of n positions.
func NewTraceMap(n int) TraceMap {
	return make(TraceMap, n)
}

// Visited reports whether the position has already been executed this run.
func (t TraceMap) Visited(pos int) bool {
	_, ok := t[pos]
	return ok
}

// Record stores the transition taken from pos. The first visit wins;
// recording an already-visited position is rejected because the run
// should have stopped before re-executing it.
func (t TraceMap) Record(pos, next int) error {
	if _, ok := t[pos]; ok {
		return fmt.Errorf("position %d recorded twice in one run", pos)
	}
	t[pos] = next
	return nil
}

// Next returns the recorded transition from pos.
func (t TraceMap) Next(pos int) (int, bool) {
	next, ok := t[pos]
	return next, ok
}

// Len returns the number of distinct positions visited.
func (t TraceMap) Len() int {
	return len(t)
}

// LoopPath reconstructs the ordered cycle of positions beginning at
// loopStart: each element appears exactly once, the first element is
// loopStart, and the transition out of the last element returns to
// loopStart.
//
// loopStart must be a key in the trace and the recorded transitions must
// lead back to it; both hold for any loop the machine reports. A missing
// transition fails fast with ErrBrokenTrace rather than walking forever,
// and the walk is additionally bounded by the trace size.
func (t TraceMap) LoopPath(loopStart int) ([]int, error) {
	path := make([]int, 0, len(t))
	pos := loopStart
	for {
		next, ok := t[pos]
		if !ok {
			return nil, fmt.Errorf("walking loop from %d: %w %d", loopStart, ErrBrokenTrace, pos)
		}
		path = append(path, pos)
		if next == loopStart {
			return path, nil
		}
		if len(path) > len(t) {
			// Every recorded position appears at most once, so a walk
			// longer than the trace can never close on loopStart.
			return nil, fmt.Errorf("walking loop from %d: cycle does not return to start (%w)", loopStart, ErrBrokenTrace)
		}
		pos = next
	}
}
