package emitter

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/NERVsystems/gflow/fixtures"
	"github.com/NERVsystems/gflow/graph"
	"github.com/NERVsystems/gflow/vm"
)

func opsOf(prog *vm.Program) []vm.Op {
	ops := make([]vm.Op, len(prog.Instructions))
	for i, in := range prog.Instructions {
		ops[i] = in.Op
	}
	return ops
}

func TestEmitSingleRelu(t *testing.T) {
	prog := vm.NewProgram()
	require.NoError(t, Emit(fixtures.Relu(), prog, false, zap.NewNop()))

	require.Equal(t, []vm.Op{vm.OpIn, vm.OpRelu, vm.OpFree, vm.OpOut, vm.OpFree}, opsOf(prog))

	in := prog.Instructions[0]
	require.Equal(t, vm.Reg(1), in.Operand(0))
	require.Equal(t, vm.Str("x"), in.Operand(1))

	relu := prog.Instructions[1]
	require.Equal(t, vm.Reg(1), relu.Operand(1)) // reads x's register

	out := prog.Instructions[3]
	require.Equal(t, vm.Str("y"), out.Operand(0))
}

func TestEmitAddOfTwoInputs(t *testing.T) {
	prog := vm.NewProgram()
	require.NoError(t, Emit(fixtures.AddTwoInputs(), prog, false, zap.NewNop()))

	require.Equal(t,
		[]vm.Op{vm.OpIn, vm.OpIn, vm.OpAdd, vm.OpFree, vm.OpFree, vm.OpOut, vm.OpFree},
		opsOf(prog))
}

func TestEmitScalarConstant(t *testing.T) {
	prog := vm.NewProgram()
	require.NoError(t, Emit(fixtures.ScalarConstant(), prog, false, zap.NewNop()))

	require.Equal(t, []vm.Op{vm.OpFloatScalarConstant, vm.OpOut, vm.OpFree}, opsOf(prog))

	c := prog.Instructions[0]
	require.Equal(t, vm.Float(3.14), c.Operand(1))
	require.Equal(t, vm.Str(string(vm.DTypeFloat32)), c.Operand(2))
	require.Equal(t, vm.Bool(false), c.Operand(3))
}

func TestEmitNegativeAxisSoftmaxDefaultsToOne(t *testing.T) {
	prog := vm.NewProgram()
	require.NoError(t, Emit(fixtures.NegativeAxisSoftmax(), prog, false, zap.NewNop()))

	var softmax vm.Instruction
	for _, in := range prog.Instructions {
		if in.Op == vm.OpSoftmax {
			softmax = in
		}
	}
	require.Equal(t, vm.Int(1), softmax.Operand(2))
}

func TestEmitConvOperandOrderAndArity(t *testing.T) {
	prog := vm.NewProgram()
	require.NoError(t, Emit(fixtures.Conv(), prog, false, zap.NewNop()))

	var conv vm.Instruction
	found := false
	for _, in := range prog.Instructions {
		if in.Op == vm.OpConv {
			conv = in
			found = true
		}
	}
	require.True(t, found, "expected a Conv instruction")

	// out(0), in(0)=X, in(1)=W, oin(2)=B, strides, pads — no group operand.
	require.Len(t, conv.Operands, 6)
	require.Equal(t, vm.Reg(4), conv.Operand(0)) // y
	require.Equal(t, vm.Reg(1), conv.Operand(1)) // x
	require.Equal(t, vm.Reg(2), conv.Operand(2)) // w
	require.Equal(t, vm.Reg(3), conv.Operand(3)) // b
	require.Equal(t, vm.IntList([]int64{2, 2}), conv.Operand(4))
	require.Equal(t, vm.IntList([]int64{1, 1}), conv.Operand(5))
}

func TestEmitConvTransposeWithDynamicShapeRequiresThirdInput(t *testing.T) {
	prog := vm.NewProgram()
	require.NoError(t, Emit(fixtures.ConvTransposeWithDynamicShape(), prog, false, zap.NewNop()))

	var conv vm.Instruction
	found := false
	for _, in := range prog.Instructions {
		if in.Op == vm.OpConvTransposeWithDynamicShape {
			conv = in
			found = true
		}
	}
	require.True(t, found, "expected a ConvTransposeWithDynamicShape instruction")

	// out(0), in(0)=X, in(1)=W, in(2)=shape (required), strides, pads.
	require.Len(t, conv.Operands, 6)
	require.Equal(t, vm.Reg(4), conv.Operand(0)) // y
	require.Equal(t, vm.Reg(1), conv.Operand(1)) // x
	require.Equal(t, vm.Reg(2), conv.Operand(2)) // w
	require.Equal(t, vm.Reg(3), conv.Operand(3)) // shape
	require.Equal(t, vm.IntList([]int64{2, 2}), conv.Operand(4))
	require.Equal(t, vm.IntList([]int64{0, 0}), conv.Operand(5))
}

func TestEmitDropoutWarnsOnceAndEmitsIdentity(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	log := zap.New(core)

	prog := vm.NewProgram()
	require.NoError(t, Emit(fixtures.DropoutPassthrough(), prog, false, log))

	identityCount := 0
	for _, in := range prog.Instructions {
		if in.Op == vm.OpIdentity {
			identityCount++
		}
	}
	require.Equal(t, 1, identityCount)
	require.Equal(t, 1, logs.Len())
}

func TestEmitCountedLoopSum(t *testing.T) {
	prog := vm.NewProgram()
	require.NoError(t, Emit(fixtures.CountedLoopSum(), prog, false, zap.NewNop()))

	ops := opsOf(prog)
	require.Contains(t, ops, vm.OpSequenceCreate)
	require.Contains(t, ops, vm.OpSequenceAppend)
	require.Contains(t, ops, vm.OpSequenceStack)
	require.Contains(t, ops, vm.OpJmpTrue)

	// Both loop outputs (final_state, final_scan) are published.
	outCount := 0
	for _, in := range prog.Instructions {
		if in.Op == vm.OpOut {
			outCount++
		}
	}
	require.Equal(t, 2, outCount)
}

func TestEmitLoopWithBothConditionsBackpatchesSkipJump(t *testing.T) {
	prog := vm.NewProgram()
	require.NoError(t, Emit(loopWithBothConditions(), prog, false, zap.NewNop()))

	jmpFalseIdx := -1
	for i, in := range prog.Instructions {
		if in.Op == vm.OpJmpFalse {
			jmpFalseIdx = i
		}
	}
	require.NotEqual(t, -1, jmpFalseIdx, "expected a JmpFalse skip-check")

	target := int(prog.Instructions[jmpFalseIdx].Operand(1).ImmInt)
	require.Greater(t, target, jmpFalseIdx)
	require.LessOrEqual(t, target, prog.Len())
}

func TestEmitRejectsInfiniteLoop(t *testing.T) {
	prog := vm.NewProgram()
	err := Emit(infiniteLoop(), prog, false, zap.NewNop())
	require.Error(t, err)
}

func TestEmitDumpValueNamesDoesNotError(t *testing.T) {
	prog := vm.NewProgram()
	require.NoError(t, Emit(fixtures.Relu(), prog, true, zap.NewNop()))
}

// loopWithBothConditions builds a one-state, no-scan Loop whose inputs
// carry both a max_trip_count and a terminal_condition, exercising §4.3
// step 10's "both present" termination-condition branch.
func loopWithBothConditions() *graph.Model {
	tripCount := graph.NewValue("trip_count", graph.Temp)
	tripCountTensor := graph.NewIntTensor(vm.DTypeInt64, nil, []int64{5})
	tripCountNode := graph.NewNode(graph.OpConstant, nil, []*graph.Value{tripCount},
		graph.Attrs{}.WithTensor(tripCountTensor))

	termCond := graph.NewValue("term_cond", graph.Temp)
	termCondTensor := graph.NewIntTensor(vm.DTypeInt64, nil, []int64{1})
	termCondNode := graph.NewNode(graph.OpConstant, nil, []*graph.Value{termCond},
		graph.Attrs{}.WithTensor(termCondTensor))

	stateInit := graph.NewValue("state_init", graph.Temp)
	stateInitTensor := graph.NewIntTensor(vm.DTypeInt64, nil, []int64{0})
	stateInitNode := graph.NewNode(graph.OpConstant, nil, []*graph.Value{stateInit},
		graph.Attrs{}.WithTensor(stateInitTensor))

	iter := graph.NewValue("iter", graph.Input)
	cond := graph.NewValue("cond", graph.Input)
	state := graph.NewValue("state", graph.Input)
	condOut := graph.NewValue("cond_out", graph.Output)
	stateOut := graph.NewValue("state_out", graph.Output)

	condPass := graph.NewNode(graph.OpIdentity, []*graph.Value{cond}, []*graph.Value{condOut}, graph.Attrs{})
	sum := graph.NewNode(graph.OpAdd, []*graph.Value{state, iter}, []*graph.Value{stateOut}, graph.Attrs{})

	body := graph.New([]*graph.Value{iter, cond, state}, nil, []*graph.Value{condOut, stateOut},
		[]*graph.Node{condPass, sum})

	finalState := graph.NewValue("final_state", graph.Output)
	loop := graph.NewNode(graph.OpLoop, []*graph.Value{tripCount, termCond, stateInit},
		[]*graph.Value{finalState}, graph.Attrs{}.WithBody(body))

	g := graph.New(nil, []*graph.Value{tripCount, termCond, stateInit}, []*graph.Value{finalState},
		[]*graph.Node{tripCountNode, termCondNode, stateInitNode, loop})
	return graph.NewModel("loop_both_conditions", g)
}

// infiniteLoop builds a Loop whose max_trip_count and terminal_condition
// are both absent, which Emit must reject (§7, §9).
func infiniteLoop() *graph.Model {
	stateInit := graph.NewValue("state_init", graph.Temp)
	stateInitTensor := graph.NewIntTensor(vm.DTypeInt64, nil, []int64{0})
	stateInitNode := graph.NewNode(graph.OpConstant, nil, []*graph.Value{stateInit},
		graph.Attrs{}.WithTensor(stateInitTensor))

	iter := graph.NewValue("iter", graph.Input)
	cond := graph.NewValue("cond", graph.Input)
	state := graph.NewValue("state", graph.Input)
	condOut := graph.NewValue("cond_out", graph.Output)
	stateOut := graph.NewValue("state_out", graph.Output)
	condPass := graph.NewNode(graph.OpIdentity, []*graph.Value{cond}, []*graph.Value{condOut}, graph.Attrs{})
	sum := graph.NewNode(graph.OpAdd, []*graph.Value{state, iter}, []*graph.Value{stateOut}, graph.Attrs{})
	body := graph.New([]*graph.Value{iter, cond, state}, nil, []*graph.Value{condOut, stateOut},
		[]*graph.Node{condPass, sum})

	finalState := graph.NewValue("final_state", graph.Output)
	loop := graph.NewNode(graph.OpLoop, []*graph.Value{graph.NullValue(), graph.NullValue(), stateInit},
		[]*graph.Value{finalState}, graph.Attrs{}.WithBody(body))

	g := graph.New(nil, []*graph.Value{stateInit}, []*graph.Value{finalState},
		[]*graph.Node{stateInitNode, loop})
	return graph.NewModel("infinite_loop", g)
}
