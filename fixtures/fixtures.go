// Package fixtures builds small, hand-assembled graph.Model values used by
// the emitter's own tests and by the cmd/emit demo harness. None of this
// exercises a real ONNX importer; it constructs the post-type-inference
// graph shape the emitter expects directly.
package fixtures

import (
	"fmt"

	"github.com/NERVsystems/gflow/graph"
	"github.com/NERVsystems/gflow/vm"
)

// Model resolves a fixture by name, for the CLI's -graph flag.
func Model(name string) (*graph.Model, error) {
	switch name {
	case "relu":
		return Relu(), nil
	case "add":
		return AddTwoInputs(), nil
	case "constant":
		return ScalarConstant(), nil
	case "softmax":
		return NegativeAxisSoftmax(), nil
	case "loop_sum":
		return CountedLoopSum(), nil
	case "dropout":
		return DropoutPassthrough(), nil
	case "conv":
		return Conv(), nil
	case "conv_transpose_dynamic_shape":
		return ConvTransposeWithDynamicShape(), nil
	default:
		return nil, fmt.Errorf("no such fixture graph %q", name)
	}
}

// Relu builds: input x -> Relu -> output y.
func Relu() *graph.Model {
	x := graph.NewValue("x", graph.Input)
	y := graph.NewValue("y", graph.Output)
	n := graph.NewNode(graph.OpRelu, []*graph.Value{x}, []*graph.Value{y}, graph.Attrs{})
	g := graph.New([]*graph.Value{x}, nil, []*graph.Value{y}, []*graph.Node{n})
	return graph.NewModel("relu", g)
}

// AddTwoInputs builds: inputs a, b -> Add -> output c.
func AddTwoInputs() *graph.Model {
	a := graph.NewValue("a", graph.Input)
	b := graph.NewValue("b", graph.Input)
	c := graph.NewValue("c", graph.Output)
	n := graph.NewNode(graph.OpAdd, []*graph.Value{a, b}, []*graph.Value{c}, graph.Attrs{})
	g := graph.New([]*graph.Value{a, b}, nil, []*graph.Value{c}, []*graph.Node{n})
	return graph.NewModel("add", g)
}

// ScalarConstant builds: Constant(3.14f32) -> output y.
func ScalarConstant() *graph.Model {
	y := graph.NewValue("y", graph.Output)
	tensor := graph.NewFloatTensor(vm.DTypeFloat32, nil, []float64{3.14})
	attrs := graph.Attrs{}.WithTensor(tensor)
	n := graph.NewNode(graph.OpConstant, []*graph.Value{}, []*graph.Value{y}, attrs)
	g := graph.New(nil, nil, []*graph.Value{y}, []*graph.Node{n})
	return graph.NewModel("constant", g)
}

// NegativeAxisSoftmax builds: input x -> Softmax(axis=-1) -> output y.
func NegativeAxisSoftmax() *graph.Model {
	x := graph.NewValue("x", graph.Input)
	y := graph.NewValue("y", graph.Output)
	attrs := graph.Attrs{}.WithInt("axis", -1)
	n := graph.NewNode(graph.OpSoftmax, []*graph.Value{x}, []*graph.Value{y}, attrs)
	g := graph.New([]*graph.Value{x}, nil, []*graph.Value{y}, []*graph.Node{n})
	return graph.NewModel("softmax", g)
}

// DropoutPassthrough builds: input x -> Dropout -> outputs y, mask (unused).
func DropoutPassthrough() *graph.Model {
	x := graph.NewValue("x", graph.Input)
	y := graph.NewValue("y", graph.Output)
	mask := graph.NewValue("mask", graph.Temp)
	n := graph.NewNode(graph.OpDropout, []*graph.Value{x}, []*graph.Value{y, mask}, graph.Attrs{})
	g := graph.New([]*graph.Value{x}, []*graph.Value{mask}, []*graph.Value{y}, []*graph.Node{n})
	return graph.NewModel("dropout", g)
}

// Conv builds: inputs x, w, b -> Conv(strides=[2,2], pads=[1,1,1,1]) ->
// output y. Exercises the optional bias input.
func Conv() *graph.Model {
	x := graph.NewValue("x", graph.Input)
	w := graph.NewValue("w", graph.Input)
	b := graph.NewValue("b", graph.Input)
	y := graph.NewValue("y", graph.Output)
	attrs := graph.Attrs{}.
		WithInts("strides", []int64{2, 2}).
		WithInts("pads", []int64{1, 1, 1, 1})
	n := graph.NewNode(graph.OpConv, []*graph.Value{x, w, b}, []*graph.Value{y}, attrs)
	g := graph.New([]*graph.Value{x, w, b}, nil, []*graph.Value{y}, []*graph.Node{n})
	return graph.NewModel("conv", g)
}

// ConvTransposeWithDynamicShape builds: inputs x, w, shape ->
// ConvTransposeWithDynamicShape -> output y. The 3rd input is a required
// dynamic output-shape tensor, not an optional bias.
func ConvTransposeWithDynamicShape() *graph.Model {
	x := graph.NewValue("x", graph.Input)
	w := graph.NewValue("w", graph.Input)
	shape := graph.NewValue("shape", graph.Input)
	y := graph.NewValue("y", graph.Output)
	attrs := graph.Attrs{}.
		WithInts("strides", []int64{2, 2}).
		WithInts("pads", []int64{0, 0, 0, 0})
	n := graph.NewNode(graph.OpConvTransposeWithDynamicShape,
		[]*graph.Value{x, w, shape}, []*graph.Value{y}, attrs)
	g := graph.New([]*graph.Value{x, w, shape}, nil, []*graph.Value{y}, []*graph.Node{n})
	return graph.NewModel("conv_transpose_dynamic_shape", g)
}

// CountedLoopSum builds a Loop with one carried state (a running sum,
// initialized to 0) and one scan output (the iteration index each pass),
// trip count 3 and no terminal_condition: final state = 0+1+2 = 3, scan
// output = [0,1,2].
func CountedLoopSum() *graph.Model {
	tripCountVal := graph.NewValue("trip_count", graph.Temp)
	tripCountTensor := graph.NewIntTensor(vm.DTypeInt64, nil, []int64{3})
	tripCountNode := graph.NewNode(graph.OpConstant, nil, []*graph.Value{tripCountVal},
		graph.Attrs{}.WithTensor(tripCountTensor))

	stateInitVal := graph.NewValue("state_init", graph.Temp)
	stateInitTensor := graph.NewIntTensor(vm.DTypeInt64, nil, []int64{0})
	stateInitNode := graph.NewNode(graph.OpConstant, nil, []*graph.Value{stateInitVal},
		graph.Attrs{}.WithTensor(stateInitTensor))

	// Body graph: inputs [iter, cond, state], outputs [cond', state', scan].
	iter := graph.NewValue("iter", graph.Input)
	cond := graph.NewValue("cond", graph.Input)
	state := graph.NewValue("state", graph.Input)
	condOut := graph.NewValue("cond_out", graph.Output)
	stateOut := graph.NewValue("state_out", graph.Output)
	scanOut := graph.NewValue("scan_out", graph.Output)

	condPass := graph.NewNode(graph.OpIdentity, []*graph.Value{cond}, []*graph.Value{condOut}, graph.Attrs{})
	sum := graph.NewNode(graph.OpAdd, []*graph.Value{state, iter}, []*graph.Value{stateOut}, graph.Attrs{})
	scanPass := graph.NewNode(graph.OpIdentity, []*graph.Value{iter}, []*graph.Value{scanOut}, graph.Attrs{})

	body := graph.New(
		[]*graph.Value{iter, cond, state},
		nil,
		[]*graph.Value{condOut, stateOut, scanOut},
		[]*graph.Node{condPass, sum, scanPass},
	)

	finalState := graph.NewValue("final_state", graph.Output)
	finalScan := graph.NewValue("final_scan", graph.Output)
	loop := graph.NewNode(graph.OpLoop,
		[]*graph.Value{tripCountVal, graph.NullValue(), stateInitVal},
		[]*graph.Value{finalState, finalScan},
		graph.Attrs{}.WithBody(body))

	g := graph.New(nil,
		[]*graph.Value{tripCountVal, stateInitVal},
		[]*graph.Value{finalState, finalScan},
		[]*graph.Node{tripCountNode, stateInitNode, loop},
	)
	return graph.NewModel("loop_sum", g)
}
