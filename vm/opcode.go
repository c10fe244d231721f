// Package vm defines the instruction set of the register-based virtual
// machine that the emitter targets: opcodes, operands, instructions, and
// the flat program container they are appended to.
package vm

// Op is a VM opcode.
type Op byte

// All opcodes understood by the VM. Register ids are dense positive
// integers; id 0 is reserved and never emitted as an operand.
const (
	OpNop Op = iota

	// Lifetime management.
	OpIn   // In reg, name: bind a named external input to a register
	OpOut  // Out name, reg: publish a named result
	OpFree // Free reg: release a register

	// Control flow.
	OpJmpTrue  // JmpTrue cond, target
	OpJmpFalse // JmpFalse cond, target

	// Unary elementwise.
	OpNeg
	OpReciprocal
	OpExp
	OpLog
	OpSqrt
	OpTanh
	OpAbs
	OpRelu
	OpFloor
	OpCeil
	OpSigmoid
	OpNot
	OpIdentity

	// Binary elementwise.
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpPow
	OpEqual
	OpGreater

	// Gradient helpers and item selection.
	OpReluGrad
	OpMaxPoolGrad
	OpAveragePoolGrad
	OpSelectItem
	OpSelectItemGrad

	// Activations with extra scalar attributes.
	OpSelu
	OpElu
	OpLeakyRelu

	// Convolutions.
	OpConv
	OpConvTranspose
	OpConvTransposeWithDynamicShape
	OpConvGradWeight

	// Recurrent layers.
	OpRNN
	OpGRU
	OpLSTM

	// Shape manipulation.
	OpShape
	OpSize
	OpReshape
	OpExpand
	OpSqueeze
	OpUnsqueeze

	// Matmul family.
	OpMatMul
	OpGemm

	// Normalization.
	OpBatchNormalization
	OpBatchNormalizationGrad
	OpLRN
	OpLRNGrad

	// Pooling.
	OpMaxPool
	OpAveragePool

	// Softmax family.
	OpSoftmax
	OpLogSoftmax
	OpHardmax
	OpArgMax

	// Reductions.
	OpReduceMax
	OpReduceSum
	OpReduceSumSquare
	OpReduceMean
	OpReduceSumTo

	// Cast and fill.
	OpCast
	OpConstantFill

	// Slicing and gathering.
	OpSlice
	OpDynamicSlice
	OpGather

	// Variadic / shape-rearranging ops.
	OpConcat
	OpSplit
	OpMax
	OpClip
	OpTranspose
	OpPad

	// Constant materialization.
	OpFloatScalarConstant
	OpFloatConstant
	OpIntScalarConstant
	OpIntConstant

	// Sequence operations.
	OpSequenceCreate
	OpSequenceSize
	OpSequenceLengths
	OpSequenceAppend
	OpSequenceMove
	OpSequenceCopy
	OpSequenceLookup
	OpSequenceStack
	OpSequenceSplit
	OpSequenceUnpad
	OpSequencePad

	// Generic container ops (used on values of statically unknown container
	// kind, e.g. inside polymorphic loop bodies).
	OpGenericLen
	OpGenericGetItem
	OpGenericGetSlice
	OpGenericAdd

	maxOp
)

var opNames = [maxOp]string{
	OpNop:      "nop",
	OpIn:       "in",
	OpOut:      "out",
	OpFree:     "free",
	OpJmpTrue:  "jmp_true",
	OpJmpFalse: "jmp_false",

	OpNeg:        "neg",
	OpReciprocal: "reciprocal",
	OpExp:        "exp",
	OpLog:        "log",
	OpSqrt:       "sqrt",
	OpTanh:       "tanh",
	OpAbs:        "abs",
	OpRelu:       "relu",
	OpFloor:      "floor",
	OpCeil:       "ceil",
	OpSigmoid:    "sigmoid",
	OpNot:        "not",
	OpIdentity:   "identity",

	OpAdd:     "add",
	OpSub:     "sub",
	OpMul:     "mul",
	OpDiv:     "div",
	OpPow:     "pow",
	OpEqual:   "equal",
	OpGreater: "greater",

	OpReluGrad:        "relu_grad",
	OpMaxPoolGrad:     "max_pool_grad",
	OpAveragePoolGrad: "average_pool_grad",
	OpSelectItem:      "select_item",
	OpSelectItemGrad:  "select_item_grad",

	OpSelu:      "selu",
	OpElu:       "elu",
	OpLeakyRelu: "leaky_relu",

	OpConv:                          "conv",
	OpConvTranspose:                 "conv_transpose",
	OpConvTransposeWithDynamicShape: "conv_transpose_dyn_shape",
	OpConvGradWeight:                "conv_grad_weight",

	OpRNN:  "rnn",
	OpGRU:  "gru",
	OpLSTM: "lstm",

	OpShape:     "shape",
	OpSize:      "size",
	OpReshape:   "reshape",
	OpExpand:    "expand",
	OpSqueeze:   "squeeze",
	OpUnsqueeze: "unsqueeze",

	OpMatMul: "matmul",
	OpGemm:   "gemm",

	OpBatchNormalization:     "batch_normalization",
	OpBatchNormalizationGrad: "batch_normalization_grad",
	OpLRN:                    "lrn",
	OpLRNGrad:                "lrn_grad",

	OpMaxPool:     "max_pool",
	OpAveragePool: "average_pool",

	OpSoftmax:    "softmax",
	OpLogSoftmax: "log_softmax",
	OpHardmax:    "hardmax",
	OpArgMax:     "arg_max",

	OpReduceMax:       "reduce_max",
	OpReduceSum:       "reduce_sum",
	OpReduceSumSquare: "reduce_sum_square",
	OpReduceMean:      "reduce_mean",
	OpReduceSumTo:     "reduce_sum_to",

	OpCast:         "cast",
	OpConstantFill: "constant_fill",

	OpSlice:        "slice",
	OpDynamicSlice: "dynamic_slice",
	OpGather:       "gather",

	OpConcat:    "concat",
	OpSplit:     "split",
	OpMax:       "max",
	OpClip:      "clip",
	OpTranspose: "transpose",
	OpPad:       "pad",

	OpFloatScalarConstant: "float_scalar_constant",
	OpFloatConstant:       "float_constant",
	OpIntScalarConstant:   "int_scalar_constant",
	OpIntConstant:         "int_constant",

	OpSequenceCreate:   "sequence_create",
	OpSequenceSize:     "sequence_size",
	OpSequenceLengths:  "sequence_lengths",
	OpSequenceAppend:   "sequence_append",
	OpSequenceMove:     "sequence_move",
	OpSequenceCopy:     "sequence_copy",
	OpSequenceLookup:   "sequence_lookup",
	OpSequenceStack:    "sequence_stack",
	OpSequenceSplit:    "sequence_split",
	OpSequenceUnpad:    "sequence_unpad",
	OpSequencePad:      "sequence_pad",
	OpGenericLen:       "generic_len",
	OpGenericGetItem:   "generic_get_item",
	OpGenericGetSlice:  "generic_get_slice",
	OpGenericAdd:       "generic_add",
}

func (op Op) String() string {
	if int(op) < len(opNames) && opNames[op] != "" {
		return opNames[op]
	}
	return "???"
}

// IsJump reports whether op takes an instruction-index target that a loop
// backpatch may need to rewrite after the fact.
func (op Op) IsJump() bool {
	return op == OpJmpTrue || op == OpJmpFalse
}
