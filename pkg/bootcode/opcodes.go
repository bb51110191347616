package bootcode

import "fmt"

// Op identifies a boot-code instruction kind.
// The instruction set is fixed at three operations; there is no
// open-ended dispatch table.
type Op uint8

const (
	// OpNop does nothing and falls through to the next position.
	// Its operand is carried but unused, because a repair swap may
	// reinterpret the instruction as a jump using that same operand.
	OpNop Op = iota

	// OpAcc adds its operand to the accumulator and falls through.
	OpAcc

	// OpJmp jumps relative to the current position by its operand.
	OpJmp
)

// OpInfo provides metadata about each operation.
type OpInfo struct {
	Mnemonic  string // Assembly-text name
	Swappable bool   // Whether the op participates in jmp/nop repair swaps
}

// opInfoTable maps operations to their metadata.
var opInfoTable = map[Op]OpInfo{
	OpNop: {"nop", true},
	OpAcc: {"acc", false},
	OpJmp: {"jmp", true},
}

// GetOpInfo returns metadata for an operation.
// Returns a zero OpInfo with mnemonic "unknown" for unrecognized values.
func GetOpInfo(op Op) OpInfo {
	if info, ok := opInfoTable[op]; ok {
		return info
	}
	return OpInfo{Mnemonic: fmt.Sprintf("unknown(%d)", op)}
}

// String returns the assembly mnemonic of an operation.
func (op Op) String() string {
	return GetOpInfo(op).Mnemonic
}

// Swappable reports whether the operation has a jmp/nop alternate form.
// An acc can never be the faulty instruction in a repair.
func (op Op) Swappable() bool {
	return GetOpInfo(op).Swappable
}

// Instruction is a single decoded boot-code instruction.
// The operand is an arbitrary signed integer; no range restriction
// applies beyond what the source text carried.
type Instruction struct {
	Op  Op
	Arg int64
}

// Swapped returns the instruction with its jmp/nop behavior inverted.
// The operand is unchanged. An acc swaps to itself.
func (ins Instruction) Swapped() Instruction {
	switch ins.Op {
	case OpJmp:
		return Instruction{Op: OpNop, Arg: ins.Arg}
	case OpNop:
		return Instruction{Op: OpJmp, Arg: ins.Arg}
	default:
		return ins
	}
}

// String renders the instruction in assembly text, e.g. "jmp -3".
func (ins Instruction) String() string {
	return fmt.Sprintf("%s %+d", ins.Op, ins.Arg)
}
