package vm

import "strings"

// Instruction is a single VM instruction: an opcode plus its ordered
// operands, with an optional debug string carried alongside for
// diagnostics. Operand order and meaning are opcode-specific; callers
// build instructions through the typed constructors in this package or the
// op-family helpers in the emitter package.
type Instruction struct {
	Op       Op
	Operands []Operand
	Debug    string
}

// NewInstruction builds an instruction with the given opcode and operands.
func NewInstruction(op Op, operands ...Operand) Instruction {
	return Instruction{Op: op, Operands: operands}
}

// Operand returns the i'th operand, or the zero Operand if absent.
func (in Instruction) Operand(i int) Operand {
	if i < 0 || i >= len(in.Operands) {
		return Operand{}
	}
	return in.Operands[i]
}

func (in Instruction) String() string {
	var b strings.Builder
	b.WriteString(in.Op.String())
	for i, o := range in.Operands {
		if i == 0 {
			b.WriteByte(' ')
		} else {
			b.WriteString(", ")
		}
		b.WriteString(o.String())
	}
	if in.Debug != "" {
		b.WriteString("  ; ")
		b.WriteString(in.Debug)
	}
	return b.String()
}
