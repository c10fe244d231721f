package vm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProgramEmitReturnsSequentialIndices(t *testing.T) {
	p := NewProgram()
	i0 := p.Emit(OpIn, Reg(1), Str("x"))
	i1 := p.Emit(OpFree, Reg(1))
	require.Equal(t, 0, i0)
	require.Equal(t, 1, i1)
	require.Equal(t, 2, p.Len())
}

func TestProgramPatchOperandRewritesInPlace(t *testing.T) {
	p := NewProgram()
	idx := p.Emit(OpJmpFalse, Reg(1), Int(-1))
	p.PatchOperand(idx, 1, Int(7))
	require.Equal(t, Int(7), p.Instructions[idx].Operand(1))
}

func TestProgramPatchOperandGrowsShortOperandList(t *testing.T) {
	p := NewProgram()
	idx := p.Emit(OpNop)
	p.PatchOperand(idx, 2, Reg(5))
	require.Len(t, p.Instructions[idx].Operands, 3)
	require.Equal(t, Reg(5), p.Instructions[idx].Operand(2))
}

func TestProgramAddConstReturnsPoolIndex(t *testing.T) {
	p := NewProgram()
	idx := p.AddConst(Const{Kind: ConstFloat, Floats: []float64{1, 2, 3}, DType: DTypeFloat32})
	require.Equal(t, 0, idx)
	require.Len(t, p.Consts, 1)
}

func TestOpStringKnownAndUnknown(t *testing.T) {
	require.Equal(t, "relu", OpRelu.String())
	require.Equal(t, "???", Op(255).String())
}

func TestOpIsJump(t *testing.T) {
	require.True(t, OpJmpTrue.IsJump())
	require.True(t, OpJmpFalse.IsJump())
	require.False(t, OpAdd.IsJump())
}

func TestOperandStringFormsForEachKind(t *testing.T) {
	cases := []struct {
		name string
		o    Operand
		want string
	}{
		{"reg", Reg(3), "$3"},
		{"noreg", Reg(NoReg), "-"},
		{"int", Int(42), "42"},
		{"str", Str("axis"), `"axis"`},
		{"constref", ConstRef(2), "const[2]"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, tc.o.String())
		})
	}
}
