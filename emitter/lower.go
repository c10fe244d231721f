package emitter

import (
	"github.com/NERVsystems/gflow/graph"
	"github.com/NERVsystems/gflow/vm"
	"go.uber.org/zap"
)

// NodeLowerer appends the instructions for one graph.Node at a time. It
// holds no per-graph state beyond the id table and program it was built
// with, so one instance serves an entire emitter invocation, root graph and
// nested loop bodies alike.
type NodeLowerer struct {
	prog          *vm.Program
	ids           *ValueIdTable
	log           *zap.Logger
	warnedDropout bool
}

// NewNodeLowerer builds a lowerer that appends to prog, resolving register
// ids through ids and logging soft warnings through log.
func NewNodeLowerer(prog *vm.Program, ids *ValueIdTable, log *zap.Logger) *NodeLowerer {
	return &NodeLowerer{prog: prog, ids: ids, log: log}
}

// in returns the register id of node n's i'th required input, or an error
// if that slot is absent or null.
func (nl *NodeLowerer) in(n *graph.Node, i int) (int32, error) {
	ins := n.Inputs()
	if i >= len(ins) || ins[i].IsNull() {
		return 0, errInvariant("%s: required input %d missing", n.OpType(), i)
	}
	return nl.ids.get(ins[i]), nil
}

// oin returns the register id of node n's i'th optional input, or
// vm.NoReg if that slot is absent or null.
func (nl *NodeLowerer) oin(n *graph.Node, i int) int32 {
	ins := n.Inputs()
	if i >= len(ins) || ins[i].IsNull() {
		return vm.NoReg
	}
	return nl.ids.get(ins[i])
}

// out returns the register id of node n's i'th required output.
func (nl *NodeLowerer) out(n *graph.Node, i int) (int32, error) {
	outs := n.Outputs()
	if i >= len(outs) || outs[i].IsNull() {
		return 0, errInvariant("%s: required output %d missing", n.OpType(), i)
	}
	return nl.ids.get(outs[i]), nil
}

// oout returns the register id of node n's i'th optional output, or
// vm.NoReg if that slot is absent or null.
func (nl *NodeLowerer) oout(n *graph.Node, i int) int32 {
	outs := n.Outputs()
	if i >= len(outs) || outs[i].IsNull() {
		return vm.NoReg
	}
	return nl.ids.get(outs[i])
}

// emit appends op with the given operands, tagging the instruction with
// n's debug string. Inside a loop body the tag is prefixed so a bad
// instruction can be traced back to the loop lowering rather than the
// enclosing graph.
func (nl *NodeLowerer) emit(n *graph.Node, inLoop bool, op vm.Op, operands ...vm.Operand) int {
	idx := nl.prog.Emit(op, operands...)
	debug := n.DebugString()
	if inLoop {
		debug = "loop-body: " + debug
	}
	nl.prog.SetDebug(idx, debug)
	return idx
}

func regs(ids ...int32) []vm.Operand {
	out := make([]vm.Operand, len(ids))
	for i, id := range ids {
		out[i] = vm.Reg(id)
	}
	return out
}

// Lower appends the instruction(s) computing n's outputs from its inputs.
// Loop nodes are not handled here: the walker special-cases them and
// delegates to LoopLowerer instead, since loop lowering needs to emit into
// a nested body graph and backpatch jump targets.
func (nl *NodeLowerer) Lower(n *graph.Node, inLoop bool) error {
	if op, ok := sameNameUnary[n.OpType()]; ok {
		return nl.lowerUnary(n, inLoop, op)
	}
	if op, ok := sameNameBinary[n.OpType()]; ok {
		return nl.lowerBinary(n, inLoop, op)
	}

	switch n.OpType() {
	case graph.OpSelectItemGrad:
		return nl.lowerVariadic(n, inLoop, vm.OpSelectItemGrad)

	case graph.OpSelu:
		return nl.lowerActivationAttrs(n, inLoop, vm.OpSelu, "alpha", "gamma")
	case graph.OpElu:
		return nl.lowerActivationAttrs(n, inLoop, vm.OpElu, "alpha")
	case graph.OpLeakyRelu:
		return nl.lowerActivationAttrs(n, inLoop, vm.OpLeakyRelu, "alpha")

	case graph.OpDropout:
		return nl.lowerDropout(n, inLoop)

	case graph.OpConv, graph.OpConvTranspose, graph.OpConvTransposeWithDynamicShape, graph.OpConvGradWeight:
		return nl.lowerConv(n, inLoop)

	case graph.OpRNN:
		return nl.lowerRecurrent(n, inLoop, vm.OpRNN)
	case graph.OpGRU:
		return nl.lowerRecurrent(n, inLoop, vm.OpGRU)
	case graph.OpLSTM:
		return nl.lowerRecurrent(n, inLoop, vm.OpLSTM)

	case graph.OpShape, graph.OpSize:
		return nl.lowerUnarySameName(n, inLoop, mustOp(n.OpType()))
	case graph.OpReshape, graph.OpExpand:
		return nl.lowerVariadic(n, inLoop, mustOp(n.OpType()))
	case graph.OpSqueeze, graph.OpUnsqueeze:
		return nl.lowerAxesOp(n, inLoop, mustOp(n.OpType()))

	case graph.OpMatMul:
		return nl.lowerVariadic(n, inLoop, vm.OpMatMul)
	case graph.OpGemm:
		return nl.lowerGemm(n, inLoop)

	case graph.OpBatchNormalization:
		return nl.lowerBatchNormalization(n, inLoop)
	case graph.OpBatchNormalizationGrad:
		return nl.lowerVariadic(n, inLoop, vm.OpBatchNormalizationGrad)
	case graph.OpLRN:
		return nl.lowerLRN(n, inLoop)
	case graph.OpLRNGrad:
		return nl.lowerVariadic(n, inLoop, vm.OpLRNGrad)

	case graph.OpMaxPool:
		return nl.lowerPool(n, inLoop, vm.OpMaxPool, false)
	case graph.OpAveragePool:
		return nl.lowerPool(n, inLoop, vm.OpAveragePool, true)

	case graph.OpSoftmax, graph.OpLogSoftmax, graph.OpHardmax, graph.OpArgMax:
		return nl.lowerSoftmaxFamily(n, inLoop, mustOp(n.OpType()))

	case graph.OpReduceMax, graph.OpReduceSum, graph.OpReduceSumSquare, graph.OpReduceMean, graph.OpReduceSumTo:
		return nl.lowerReduction(n, inLoop, mustOp(n.OpType()))

	case graph.OpCast:
		return nl.lowerCast(n, inLoop)
	case graph.OpConstantFill:
		return nl.lowerConstantFill(n, inLoop)

	case graph.OpSlice:
		return nl.lowerSlice(n, inLoop)
	case graph.OpDynamicSlice:
		return nl.lowerVariadic(n, inLoop, vm.OpDynamicSlice)
	case graph.OpGather:
		return nl.lowerAxesOp(n, inLoop, vm.OpGather)

	case graph.OpConcat:
		return nl.lowerVariadicAxis(n, inLoop, vm.OpConcat)
	case graph.OpSplit:
		return nl.lowerVariadicAxis(n, inLoop, vm.OpSplit)
	case graph.OpMax:
		return nl.lowerVariadic(n, inLoop, vm.OpMax)
	case graph.OpClip:
		return nl.lowerClip(n, inLoop)
	case graph.OpTranspose:
		return nl.lowerPerm(n, inLoop)
	case graph.OpPad:
		return nl.lowerPad(n, inLoop)

	case graph.OpConstant:
		return nl.lowerConstant(n, inLoop)

	case graph.OpSequenceCreate, graph.OpSequenceSize, graph.OpSequenceLengths,
		graph.OpSequenceLookup, graph.OpSequenceStack, graph.OpSequenceSplit,
		graph.OpSequenceUnpad, graph.OpSequencePad,
		graph.OpGenericLen, graph.OpGenericGetItem, graph.OpGenericGetSlice, graph.OpGenericAdd:
		return nl.lowerVariadic(n, inLoop, mustOp(n.OpType()))
	case graph.OpSequenceAppend:
		return nl.lowerSequenceAppend(n, inLoop)

	case graph.OpLoop:
		return errInvariant("Loop must be lowered by LoopLowerer, not NodeLowerer")

	default:
		return errInvariant("unsupported operator kind %q", n.OpType())
	}
}

// sameNameUnary covers the 1-input, 1-output elementwise ops whose VM
// opcode shares the graph op's name with no attribute handling at all.
var sameNameUnary = map[graph.OpType]vm.Op{
	graph.OpNeg:        vm.OpNeg,
	graph.OpReciprocal: vm.OpReciprocal,
	graph.OpExp:        vm.OpExp,
	graph.OpLog:        vm.OpLog,
	graph.OpSqrt:       vm.OpSqrt,
	graph.OpTanh:       vm.OpTanh,
	graph.OpAbs:        vm.OpAbs,
	graph.OpRelu:       vm.OpRelu,
	graph.OpFloor:      vm.OpFloor,
	graph.OpCeil:       vm.OpCeil,
	graph.OpSigmoid:    vm.OpSigmoid,
	graph.OpNot:        vm.OpNot,
	graph.OpIdentity:   vm.OpIdentity,
}

// sameNameBinary covers 2-input, 1-output ops (elementwise binary plus the
// gradient helpers that share that shape) with no attribute handling.
var sameNameBinary = map[graph.OpType]vm.Op{
	graph.OpAdd:               vm.OpAdd,
	graph.OpSub:                vm.OpSub,
	graph.OpMul:               vm.OpMul,
	graph.OpDiv:               vm.OpDiv,
	graph.OpPow:                vm.OpPow,
	graph.OpEqual:              vm.OpEqual,
	graph.OpGreater:            vm.OpGreater,
	graph.OpReluGrad:           vm.OpReluGrad,
	graph.OpMaxPoolGrad:        vm.OpMaxPoolGrad,
	graph.OpAveragePoolGrad:    vm.OpAveragePoolGrad,
	graph.OpSelectItem:         vm.OpSelectItem,
}

var sameNameOp = map[graph.OpType]vm.Op{
	graph.OpShape:                           vm.OpShape,
	graph.OpSize:                            vm.OpSize,
	graph.OpReshape:                         vm.OpReshape,
	graph.OpExpand:                          vm.OpExpand,
	graph.OpSqueeze:                         vm.OpSqueeze,
	graph.OpUnsqueeze:                       vm.OpUnsqueeze,
	graph.OpSoftmax:                         vm.OpSoftmax,
	graph.OpLogSoftmax:                      vm.OpLogSoftmax,
	graph.OpHardmax:                         vm.OpHardmax,
	graph.OpArgMax:                          vm.OpArgMax,
	graph.OpReduceMax:                       vm.OpReduceMax,
	graph.OpReduceSum:                       vm.OpReduceSum,
	graph.OpReduceSumSquare:                 vm.OpReduceSumSquare,
	graph.OpReduceMean:                      vm.OpReduceMean,
	graph.OpReduceSumTo:                     vm.OpReduceSumTo,
	graph.OpSequenceCreate:                  vm.OpSequenceCreate,
	graph.OpSequenceSize:                    vm.OpSequenceSize,
	graph.OpSequenceLengths:                 vm.OpSequenceLengths,
	graph.OpSequenceLookup:                  vm.OpSequenceLookup,
	graph.OpSequenceStack:                   vm.OpSequenceStack,
	graph.OpSequenceSplit:                   vm.OpSequenceSplit,
	graph.OpSequenceUnpad:                   vm.OpSequenceUnpad,
	graph.OpSequencePad:                     vm.OpSequencePad,
	graph.OpGenericLen:                      vm.OpGenericLen,
	graph.OpGenericGetItem:                  vm.OpGenericGetItem,
	graph.OpGenericGetSlice:                 vm.OpGenericGetSlice,
	graph.OpGenericAdd:                      vm.OpGenericAdd,
}

func mustOp(t graph.OpType) vm.Op {
	if op, ok := sameNameOp[t]; ok {
		return op
	}
	panic("emitter: no VM opcode registered for " + string(t))
}

func (nl *NodeLowerer) lowerUnary(n *graph.Node, inLoop bool, op vm.Op) error {
	i0, err := nl.in(n, 0)
	if err != nil {
		return err
	}
	o0, err := nl.out(n, 0)
	if err != nil {
		return err
	}
	nl.emit(n, inLoop, op, vm.Reg(o0), vm.Reg(i0))
	return nil
}

func (nl *NodeLowerer) lowerUnarySameName(n *graph.Node, inLoop bool, op vm.Op) error {
	return nl.lowerUnary(n, inLoop, op)
}

func (nl *NodeLowerer) lowerBinary(n *graph.Node, inLoop bool, op vm.Op) error {
	i0, err := nl.in(n, 0)
	if err != nil {
		return err
	}
	i1, err := nl.in(n, 1)
	if err != nil {
		return err
	}
	o0, err := nl.out(n, 0)
	if err != nil {
		return err
	}
	nl.emit(n, inLoop, op, vm.Reg(o0), vm.Reg(i0), vm.Reg(i1))
	return nil
}

// lowerVariadic emits op with every non-null output register followed by
// every non-null input register, for op kinds whose arity is driven
// entirely by the node's input/output lists with no attribute operands.
func (nl *NodeLowerer) lowerVariadic(n *graph.Node, inLoop bool, op vm.Op) error {
	var outs, ins []int32
	for _, o := range n.Outputs() {
		if !o.IsNull() {
			outs = append(outs, nl.ids.get(o))
		}
	}
	for _, i := range n.Inputs() {
		if !i.IsNull() {
			ins = append(ins, nl.ids.get(i))
		}
	}
	if len(outs) == 0 {
		return errInvariant("%s: no output registers", n.OpType())
	}
	operands := append(regs(outs...), regs(ins...)...)
	nl.emit(n, inLoop, op, operands...)
	return nil
}

func (nl *NodeLowerer) lowerActivationAttrs(n *graph.Node, inLoop bool, op vm.Op, attrNames ...string) error {
	i0, err := nl.in(n, 0)
	if err != nil {
		return err
	}
	o0, err := nl.out(n, 0)
	if err != nil {
		return err
	}
	operands := []vm.Operand{vm.Reg(o0), vm.Reg(i0)}
	for _, name := range attrNames {
		operands = append(operands, vm.Float(n.Attrs().Float(name, 1.0)))
	}
	nl.emit(n, inLoop, op, operands...)
	return nil
}

func (nl *NodeLowerer) lowerDropout(n *graph.Node, inLoop bool) error {
	i0, err := nl.in(n, 0)
	if err != nil {
		return err
	}
	o0, err := nl.out(n, 0)
	if err != nil {
		return err
	}
	if len(n.Outputs()) > 1 && !n.Outputs()[1].IsNull() {
		if !nl.warnedDropout {
			nl.warnedDropout = true
			nl.log.Warn("Dropout mask output requested but ignored; lowering to Identity",
				zap.String("node", n.DebugString()))
		}
	}
	nl.emit(n, inLoop, vm.OpIdentity, vm.Reg(o0), vm.Reg(i0))
	return nil
}

func (nl *NodeLowerer) lowerConv(n *graph.Node, inLoop bool) error {
	// ConvTransposeWithDynamicShape and ConvGradWeight carry no dilation
	// attribute to validate in the grounding source; only Conv and
	// ConvTranspose need the all-1s check.
	if n.OpType() == graph.OpConv || n.OpType() == graph.OpConvTranspose {
		if _, err := dilations(n.Attrs()); err != nil {
			return err
		}
	}
	begin, err := padsBegin(n.Attrs())
	if err != nil {
		return err
	}
	str := strides(n.Attrs())

	i0, err := nl.in(n, 0) // X
	if err != nil {
		return err
	}
	i1, err := nl.in(n, 1) // W
	if err != nil {
		return err
	}
	o0, err := nl.out(n, 0)
	if err != nil {
		return err
	}

	op := mustConvOp(n.OpType())
	operands := []vm.Operand{vm.Reg(o0), vm.Reg(i0), vm.Reg(i1)}

	switch n.OpType() {
	case graph.OpConv:
		bias := nl.oin(n, 2) // optional B
		operands = append(operands, vm.Reg(bias), vm.IntList(str), vm.IntList(begin))
	case graph.OpConvTranspose:
		bias := nl.oin(n, 2) // optional B
		operands = append(operands, vm.Reg(bias), vm.IntList(str), vm.IntList(begin),
			vm.IntList(n.Attrs().Ints("output_shape")))
	case graph.OpConvTransposeWithDynamicShape, graph.OpConvGradWeight:
		i2, err := nl.in(n, 2) // required 3rd input: dynamic output shape, or grad input
		if err != nil {
			return err
		}
		operands = append(operands, vm.Reg(i2), vm.IntList(str), vm.IntList(begin))
	}
	nl.emit(n, inLoop, op, operands...)
	return nil
}

func mustConvOp(t graph.OpType) vm.Op {
	switch t {
	case graph.OpConv:
		return vm.OpConv
	case graph.OpConvTranspose:
		return vm.OpConvTranspose
	case graph.OpConvTransposeWithDynamicShape:
		return vm.OpConvTransposeWithDynamicShape
	case graph.OpConvGradWeight:
		return vm.OpConvGradWeight
	default:
		panic("emitter: not a convolution op: " + string(t))
	}
}

func (nl *NodeLowerer) lowerRecurrent(n *graph.Node, inLoop bool, op vm.Op) error {
	dirCode, err := direction(n.Attrs(), true)
	if err != nil {
		return err
	}
	if err := rejectCustomActivations(n.Attrs()); err != nil {
		return err
	}
	var outs, ins []int32
	for _, o := range n.Outputs() {
		if !o.IsNull() {
			outs = append(outs, nl.ids.get(o))
		}
	}
	for _, i := range n.Inputs() {
		ins = append(ins, nl.oregOrSentinel(i))
	}
	operands := append(regs(outs...), regs(ins...)...)
	operands = append(operands, vm.Int(n.Attrs().Int("hidden_size", 0)), vm.Int(dirCode))
	nl.emit(n, inLoop, op, operands...)
	return nil
}

// oregOrSentinel resolves a possibly-null value's register, returning
// vm.NoReg for an omitted optional operand instead of erroring. Used for
// RNN-family nodes where several trailing inputs are commonly absent.
func (nl *NodeLowerer) oregOrSentinel(v *graph.Value) int32 {
	if v == nil || v.IsNull() {
		return vm.NoReg
	}
	return nl.ids.get(v)
}

func (nl *NodeLowerer) lowerAxesOp(n *graph.Node, inLoop bool, op vm.Op) error {
	i0, err := nl.in(n, 0)
	if err != nil {
		return err
	}
	o0, err := nl.out(n, 0)
	if err != nil {
		return err
	}
	operands := []vm.Operand{vm.Reg(o0), vm.Reg(i0)}
	for i := 1; i < len(n.Inputs()); i++ {
		operands = append(operands, vm.Reg(nl.oregOrSentinel(n.Inputs()[i])))
	}
	operands = append(operands, vm.IntList(n.Attrs().Ints("axes")), vm.Int(n.Attrs().Int("axis", 0)))
	nl.emit(n, inLoop, op, operands...)
	return nil
}

func (nl *NodeLowerer) lowerGemm(n *graph.Node, inLoop bool) error {
	a, err := nl.in(n, 0)
	if err != nil {
		return err
	}
	b, err := nl.in(n, 1)
	if err != nil {
		return err
	}
	c := nl.oin(n, 2)
	o0, err := nl.out(n, 0)
	if err != nil {
		return err
	}
	attrs := n.Attrs()
	nl.emit(n, inLoop, vm.OpGemm,
		vm.Reg(o0), vm.Reg(a), vm.Reg(b), vm.Reg(c),
		vm.Float(attrs.Float("alpha", 1.0)), vm.Float(attrs.Float("beta", 1.0)),
		vm.Bool(attrs.Bool("transA", false)), vm.Bool(attrs.Bool("transB", false)))
	return nil
}

func (nl *NodeLowerer) lowerBatchNormalization(n *graph.Node, inLoop bool) error {
	var outs, ins []int32
	for _, o := range n.Outputs() {
		outs = append(outs, nl.oregOrSentinel(o))
	}
	for _, i := range n.Inputs() {
		ins = append(ins, nl.oregOrSentinel(i))
	}
	attrs := n.Attrs()
	operands := append(regs(outs...), regs(ins...)...)
	operands = append(operands,
		vm.Float(attrs.Float("epsilon", 1e-5)),
		vm.Float(attrs.Float("momentum", 0.9)),
		vm.Bool(attrs.Bool("spatial", true)))
	nl.emit(n, inLoop, vm.OpBatchNormalization, operands...)
	return nil
}

func (nl *NodeLowerer) lowerLRN(n *graph.Node, inLoop bool) error {
	i0, err := nl.in(n, 0)
	if err != nil {
		return err
	}
	o0, err := nl.out(n, 0)
	if err != nil {
		return err
	}
	attrs := n.Attrs()
	nl.emit(n, inLoop, vm.OpLRN, vm.Reg(o0), vm.Reg(i0),
		vm.Float(attrs.Float("alpha", 1e-4)), vm.Float(attrs.Float("beta", 0.75)),
		vm.Float(attrs.Float("bias", 1.0)), vm.Int(attrs.Int("size", 0)))
	return nil
}

func (nl *NodeLowerer) lowerPool(n *graph.Node, inLoop bool, op vm.Op, avg bool) error {
	i0, err := nl.in(n, 0)
	if err != nil {
		return err
	}
	o0, err := nl.out(n, 0)
	if err != nil {
		return err
	}
	begin, err := padsBegin(n.Attrs())
	if err != nil {
		return err
	}
	str := strides(n.Attrs())
	attrs := n.Attrs()
	operands := []vm.Operand{vm.Reg(o0), vm.Reg(i0),
		vm.IntList(attrs.Ints("kernel_shape")), vm.IntList(begin), vm.IntList(str)}
	if avg {
		operands = append(operands, vm.Bool(attrs.Bool("count_include_pad", false)))
	}
	nl.emit(n, inLoop, op, operands...)
	return nil
}

func (nl *NodeLowerer) lowerSoftmaxFamily(n *graph.Node, inLoop bool, op vm.Op) error {
	i0, err := nl.in(n, 0)
	if err != nil {
		return err
	}
	o0, err := nl.out(n, 0)
	if err != nil {
		return err
	}
	nl.emit(n, inLoop, op, vm.Reg(o0), vm.Reg(i0), vm.Int(softmaxAxis(n.Attrs())))
	return nil
}

func (nl *NodeLowerer) lowerReduction(n *graph.Node, inLoop bool, op vm.Op) error {
	i0, err := nl.in(n, 0)
	if err != nil {
		return err
	}
	o0, err := nl.out(n, 0)
	if err != nil {
		return err
	}
	attrs := n.Attrs()
	nl.emit(n, inLoop, op, vm.Reg(o0), vm.Reg(i0),
		vm.IntList(attrs.Ints("axes")), vm.Bool(attrs.Bool("keepdims", true)))
	return nil
}

func (nl *NodeLowerer) lowerCast(n *graph.Node, inLoop bool) error {
	i0, err := nl.in(n, 0)
	if err != nil {
		return err
	}
	o0, err := nl.out(n, 0)
	if err != nil {
		return err
	}
	nl.emit(n, inLoop, vm.OpCast, vm.Reg(o0), vm.Reg(i0), vm.Str(n.Attrs().String("to", "")))
	return nil
}

func (nl *NodeLowerer) lowerConstantFill(n *graph.Node, inLoop bool) error {
	o0, err := nl.out(n, 0)
	if err != nil {
		return err
	}
	attrs := n.Attrs()
	operands := []vm.Operand{vm.Reg(o0)}
	if attrs.Bool("input_as_shape", false) {
		i0, err := nl.in(n, 0)
		if err != nil {
			return err
		}
		operands = append(operands, vm.Reg(i0))
	} else {
		operands = append(operands, vm.Reg(vm.NoReg), vm.IntList(attrs.Ints("shape")))
	}
	operands = append(operands, vm.Float(attrs.Float("value", 0.0)), vm.Str(attrs.String("dtype", "float32")))
	nl.emit(n, inLoop, vm.OpConstantFill, operands...)
	return nil
}

func (nl *NodeLowerer) lowerSlice(n *graph.Node, inLoop bool) error {
	i0, err := nl.in(n, 0)
	if err != nil {
		return err
	}
	o0, err := nl.out(n, 0)
	if err != nil {
		return err
	}
	attrs := n.Attrs()
	starts := attrs.Ints("starts")
	ends := attrs.Ints("ends")
	if len(starts) != len(ends) {
		return errInvariant("Slice: starts (%d) and ends (%d) length mismatch", len(starts), len(ends))
	}
	axes := attrs.Ints("axes")
	if len(axes) == 0 {
		axes = make([]int64, len(starts))
		for i := range axes {
			axes[i] = int64(i)
		}
	}
	nl.emit(n, inLoop, vm.OpSlice, vm.Reg(o0), vm.Reg(i0),
		vm.IntList(axes), vm.IntList(starts), vm.IntList(ends))
	return nil
}

func (nl *NodeLowerer) lowerVariadicAxis(n *graph.Node, inLoop bool, op vm.Op) error {
	var outs, ins []int32
	for _, o := range n.Outputs() {
		if !o.IsNull() {
			outs = append(outs, nl.ids.get(o))
		}
	}
	for _, i := range n.Inputs() {
		if !i.IsNull() {
			ins = append(ins, nl.ids.get(i))
		}
	}
	operands := append(regs(outs...), regs(ins...)...)
	operands = append(operands, vm.Int(n.Attrs().Int("axis", 0)))
	if n.OpType() == graph.OpSplit {
		operands = append(operands, vm.IntList(n.Attrs().Ints("split")))
	}
	nl.emit(n, inLoop, op, operands...)
	return nil
}

func (nl *NodeLowerer) lowerClip(n *graph.Node, inLoop bool) error {
	i0, err := nl.in(n, 0)
	if err != nil {
		return err
	}
	o0, err := nl.out(n, 0)
	if err != nil {
		return err
	}
	attrs := n.Attrs()
	nl.emit(n, inLoop, vm.OpClip, vm.Reg(o0), vm.Reg(i0),
		vm.Float(attrs.Float("min", 0)), vm.Float(attrs.Float("max", 0)))
	return nil
}

func (nl *NodeLowerer) lowerPerm(n *graph.Node, inLoop bool) error {
	i0, err := nl.in(n, 0)
	if err != nil {
		return err
	}
	o0, err := nl.out(n, 0)
	if err != nil {
		return err
	}
	nl.emit(n, inLoop, vm.OpTranspose, vm.Reg(o0), vm.Reg(i0), vm.IntList(n.Attrs().Ints("perm")))
	return nil
}

func (nl *NodeLowerer) lowerPad(n *graph.Node, inLoop bool) error {
	if mode := n.Attrs().String("mode", "constant"); mode != "constant" {
		return errUnsupported("Pad mode %q not supported", mode)
	}
	i0, err := nl.in(n, 0)
	if err != nil {
		return err
	}
	o0, err := nl.out(n, 0)
	if err != nil {
		return err
	}
	attrs := n.Attrs()
	nl.emit(n, inLoop, vm.OpPad, vm.Reg(o0), vm.Reg(i0),
		vm.IntList(attrs.Ints("pads")), vm.Float(attrs.Float("value", 0.0)))
	return nil
}
