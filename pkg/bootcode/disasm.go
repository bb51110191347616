package bootcode

import (
	"fmt"
	"strings"
)

// Disassemble returns a human-readable listing of the program.
func (p Program) Disassemble() string {
	return p.disassemble(nil, NoSwap)
}

// DisassembleRepair returns a listing annotated with the repair outcome:
// loop-path positions are marked and the patched instruction is shown in
// both its original and inverted forms.
func (p Program) DisassembleRepair(res RepairResult) string {
	onLoop := make(map[int]bool, len(res.LoopPath))
	for _, pos := range res.LoopPath {
		onLoop[pos] = true
	}
	return p.disassemble(onLoop, res.Patched)
}

func (p Program) disassemble(onLoop map[int]bool, patched int) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("; boot code, %d instructions\n", len(p)))
	sb.WriteString(fmt.Sprintf("; hash %.12s\n", p.HashString()))
	if patched != NoSwap {
		sb.WriteString(fmt.Sprintf("; patched at %d\n", patched))
	}
	sb.WriteString("\n")

	for pos, ins := range p {
		sb.WriteString(fmt.Sprintf("%04d  %s", pos, ins))
		switch {
		case pos == patched:
			sb.WriteString(fmt.Sprintf("    ; patched -> %s", ins.Swapped()))
		case onLoop[pos]:
			sb.WriteString("    ; on loop")
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
