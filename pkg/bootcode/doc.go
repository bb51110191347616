// Package bootcode implements a deterministic interpreter for the
// three-opcode handheld boot-code dialect (acc, jmp, nop), with loop
// detection and automatic single-instruction repair.
//
// # Execution model
//
// A Program is an immutable sequence of instructions. The Machine runs a
// program from position 0, recording every visited position and the
// transition taken from it in a per-run TraceMap. Because each position
// is recorded on first visit only, re-reaching a recorded position is an
// infinite loop and the run stops there; advancing past the last
// instruction is normal termination. Either outcome is reached within
// len(program)+1 steps, so no step budget is required.
//
// # Repair
//
// Exactly one instruction in a looping program is assumed faulty: a jmp
// that should be a nop or vice versa. The faulty instruction necessarily
// lies on the detected cycle, so Repair extracts the cycle from the
// trace and re-runs the program once per swappable cycle position with
// that instruction's behavior inverted, stopping at the first run that
// terminates. acc instructions have no alternate form and are skipped.
//
// Runs share no state: each candidate trial allocates its own trace and
// reads the program without mutating it, so trials are independent and
// order-free, though the search runs them sequentially and stops at the
// first success.
//
// # Surface
//
// The package also provides assembly-text parsing with a deliberately
// lenient policy (unknown mnemonics decode as nop, unparseable operands
// as 0), a disassembler for annotated listings, and a canonical CBOR
// codec for repair reports.
package bootcode
