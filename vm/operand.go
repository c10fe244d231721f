package vm

import "fmt"

// NoReg is the sentinel register id for an omitted optional input or output.
const NoReg int32 = -1

// OperandKind identifies which field of an Operand is meaningful.
type OperandKind byte

const (
	KindReg      OperandKind = iota // a register id (or NoReg)
	KindRegList                     // a list of register ids
	KindImmInt                      // an int64 immediate
	KindImmFloat                    // a float64 immediate
	KindImmBool                     // a bool immediate
	KindIntList                     // a list of int64 immediates (axes, pads, strides, shape...)
	KindFloatList                   // a list of float64 immediates
	KindString                      // a string immediate (value name, dtype, cast target...)
	KindConstRef                    // an index into the Program's constant pool
)

// Operand is a single typed operand of an Instruction. Exactly one field is
// meaningful, selected by Kind.
type Operand struct {
	Kind      OperandKind
	Reg       int32
	Regs      []int32
	ImmInt    int64
	ImmFloat  float64
	ImmBool   bool
	IntList   []int64
	FloatList []float64
	Str       string
	ConstRef  int
}

// Reg creates a register operand.
func Reg(id int32) Operand { return Operand{Kind: KindReg, Reg: id} }

// RegList creates a register-list operand. The emitter's variadic lowerings
// (Concat included) do not use it; they emit one Reg operand per register.
func RegList(ids []int32) Operand { return Operand{Kind: KindRegList, Regs: ids} }

// Int creates an int64 immediate operand.
func Int(v int64) Operand { return Operand{Kind: KindImmInt, ImmInt: v} }

// Float creates a float64 immediate operand.
func Float(v float64) Operand { return Operand{Kind: KindImmFloat, ImmFloat: v} }

// Bool creates a bool immediate operand.
func Bool(v bool) Operand { return Operand{Kind: KindImmBool, ImmBool: v} }

// IntList creates an int64-list immediate operand (axes, pads, strides...).
func IntList(v []int64) Operand { return Operand{Kind: KindIntList, IntList: v} }

// FloatList creates a float64-list immediate operand.
func FloatList(v []float64) Operand { return Operand{Kind: KindFloatList, FloatList: v} }

// Str creates a string immediate operand.
func Str(v string) Operand { return Operand{Kind: KindString, Str: v} }

// ConstRef creates an operand referencing an entry in the Program's constant
// pool. The emitter's FloatConstant/IntConstant lowering does not use it: it
// embeds tensor values as immediate FloatList/IntList operands.
func ConstRef(idx int) Operand { return Operand{Kind: KindConstRef, ConstRef: idx} }

func (o Operand) String() string {
	switch o.Kind {
	case KindReg:
		if o.Reg == NoReg {
			return "-"
		}
		return fmt.Sprintf("$%d", o.Reg)
	case KindRegList:
		return fmt.Sprintf("%v", o.Regs)
	case KindImmInt:
		return fmt.Sprintf("%d", o.ImmInt)
	case KindImmFloat:
		return fmt.Sprintf("%g", o.ImmFloat)
	case KindImmBool:
		return fmt.Sprintf("%t", o.ImmBool)
	case KindIntList:
		return fmt.Sprintf("%v", o.IntList)
	case KindFloatList:
		return fmt.Sprintf("%v", o.FloatList)
	case KindString:
		return fmt.Sprintf("%q", o.Str)
	case KindConstRef:
		return fmt.Sprintf("const[%d]", o.ConstRef)
	default:
		return "???"
	}
}
