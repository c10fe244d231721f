package vm

import "fmt"

// ConstKind identifies the element type of a pooled tensor constant.
type ConstKind byte

const (
	ConstFloat ConstKind = iota
	ConstInt
)

// DType names the source tensor element type, carried through to the
// Constant instructions verbatim (the VM uses it to pick a kernel, the
// emitter never interprets it beyond float/int classification).
type DType string

const (
	DTypeFloat32 DType = "float32"
	DTypeFloat64 DType = "float64"
	DTypeInt8    DType = "int8"
	DTypeInt16   DType = "int16"
	DTypeInt32   DType = "int32"
	DTypeInt64   DType = "int64"
	DTypeBool    DType = "bool"
)

// IsFloat reports whether d is a floating-point element type.
func (d DType) IsFloat() bool {
	return d == DTypeFloat32 || d == DTypeFloat64
}

// Const is one entry of a Program's constant pool: the flattened element
// values of a non-scalar Constant node, plus its shape and source dtype.
type Const struct {
	Kind   ConstKind
	Floats []float64
	Ints   []int64
	Shape  []int64
	DType  DType
	Host   bool // "host residency" flag, forwarded verbatim from the graph
}

// Program is a flat, ordered instruction stream plus a constant pool. The
// emitter never fills the pool: its Constant-family instructions carry their
// values as immediate operands. Program is the sole artifact the
// emitter produces; nothing outside of it (serialization, VM dispatch) is
// this package's concern.
type Program struct {
	Instructions []Instruction
	Consts       []Const
}

// NewProgram returns an empty program ready to be appended to.
func NewProgram() *Program {
	return &Program{}
}

// Emit appends an instruction and returns its index, for callers that need
// to backpatch an operand later (loop jump targets).
func (p *Program) Emit(op Op, operands ...Operand) int {
	idx := len(p.Instructions)
	p.Instructions = append(p.Instructions, NewInstruction(op, operands...))
	return idx
}

// SetDebug attaches a debug string to the instruction at idx.
func (p *Program) SetDebug(idx int, debug string) {
	p.Instructions[idx].Debug = debug
}

// PatchOperand overwrites operand i of the instruction at idx. Used to
// backpatch a jump target once it becomes known, without a second pass
// over the whole program.
func (p *Program) PatchOperand(idx, i int, operand Operand) {
	in := &p.Instructions[idx]
	for len(in.Operands) <= i {
		in.Operands = append(in.Operands, Operand{})
	}
	in.Operands[i] = operand
}

// Len returns the current instruction count, i.e. the PC that the next
// Emit call will be assigned.
func (p *Program) Len() int {
	return len(p.Instructions)
}

// AddConst appends a constant-pool entry and returns its index.
func (p *Program) AddConst(c Const) int {
	idx := len(p.Consts)
	p.Consts = append(p.Consts, c)
	return idx
}

func (p *Program) String() string {
	s := ""
	for i, in := range p.Instructions {
		s += fmt.Sprintf("%4d: %s\n", i, in.String())
	}
	return s
}
