package bootcode

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// instructionPattern matches one instruction: a mnemonic followed by an
// explicitly signed integer. The pattern is a package constant with no
// shared mutable state; Regexp is safe for concurrent use.
var instructionPattern = regexp.MustCompile(`(acc|nop|jmp) ([+-][0-9]+)`)

// Program is an ordered, immutable sequence of instructions indexed
// 0..len-1. A position equal to len denotes normal termination.
// Callers own the Program; the machine and repair search only read it.
type Program []Instruction

// Parse reads boot-code assembly text and returns the decoded program.
// Every match of the instruction grammar becomes one instruction, in
// input order; text outside the grammar is ignored.
//
// Decoding is deliberately lenient: a mnemonic other than acc/jmp maps
// to nop, and an operand that fails integer parsing decodes as 0 rather
// than failing the whole program.
func Parse(r io.Reader) (Program, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading program: %w", err)
	}
	return ParseString(string(data)), nil
}

// ParseString decodes boot-code assembly from a string. See Parse for
// the grammar and the lenient decoding policy.
func ParseString(src string) Program {
	matches := instructionPattern.FindAllStringSubmatch(src, -1)
	prog := make(Program, 0, len(matches))
	for _, m := range matches {
		prog = append(prog, decodeInstruction(m[1], m[2]))
	}
	return prog
}

// LoadFile reads and decodes a program from a file.
func LoadFile(path string) (Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	return ParseString(string(data)), nil
}

// decodeInstruction maps one grammar match to an instruction.
func decodeInstruction(mnemonic, operand string) Instruction {
	// Unparseable operands decode as 0. The pattern only admits signed
	// digit runs, so this fires on overflow rather than bad syntax.
	arg, err := strconv.ParseInt(operand, 10, 64)
	if err != nil {
		arg = 0
	}
	switch mnemonic {
	case "acc":
		return Instruction{Op: OpAcc, Arg: arg}
	case "jmp":
		return Instruction{Op: OpJmp, Arg: arg}
	default:
		return Instruction{Op: OpNop, Arg: arg}
	}
}

// Hash returns the sha256 content hash of the program's canonical
// assembly text. Equal programs hash equally regardless of the
// surrounding text they were parsed from.
func (p Program) Hash() [32]byte {
	var sb strings.Builder
	for _, ins := range p {
		sb.WriteString(ins.String())
		sb.WriteByte('\n')
	}
	return sha256.Sum256([]byte(sb.String()))
}

// HashString returns the hex form of Hash.
func (p Program) HashString() string {
	return fmt.Sprintf("%x", p.Hash())
}
