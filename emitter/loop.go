package emitter

import (
	"github.com/NERVsystems/gflow/graph"
	"github.com/NERVsystems/gflow/vm"
)

// LoopLowerer implements §4.3: translate a Loop node into a register-level
// control-flow program around its body graph. It shares the id table and
// program with the rest of the emitter, and drives the body's emission
// through the same GraphWalker the root graph uses (with inLoop=true).
type LoopLowerer struct {
	prog   *vm.Program
	ids    *ValueIdTable
	walker *GraphWalker
}

// NewLoopLowerer builds a loop lowerer. walker is expected to route its own
// Loop nodes back to this lowerer (see NewGraphWalker / the wiring in
// emit.go), so nested loops lower correctly.
func NewLoopLowerer(prog *vm.Program, ids *ValueIdTable, walker *GraphWalker) *LoopLowerer {
	return &LoopLowerer{prog: prog, ids: ids, walker: walker}
}

// emit appends op, tagging it with loop's debug string plus a short phase
// marker so a bad instruction can be traced back to the specific step of
// the lowering protocol that produced it.
func (ll *LoopLowerer) emit(loop *graph.Node, phase string, op vm.Op, operands ...vm.Operand) int {
	idx := ll.prog.Emit(op, operands...)
	ll.prog.SetDebug(idx, loop.DebugString()+" @"+phase)
	return idx
}

// move emits Identity dst,src then frees src: the loop protocol's
// recurring "copy this register's content and release the source" pattern
// used for state propagation, the iteration counter, and the condition.
func (ll *LoopLowerer) move(loop *graph.Node, phase string, dst, src int32) {
	ll.emit(loop, phase, vm.OpIdentity, vm.Reg(dst), vm.Reg(src))
	ll.emit(loop, phase, vm.OpFree, vm.Reg(src))
}

// Lower appends the control-flow program for a single Loop node.
func (ll *LoopLowerer) Lower(loop *graph.Node, inLoop bool) error {
	body := loop.Attrs().Body()
	if body == nil {
		return errInvariant("Loop: node has no body graph")
	}

	numLoopInputs := len(loop.Inputs())
	numLoopOutputs := len(loop.Outputs())
	bodyIns := body.InputValues()
	bodyOuts := body.OutputValues()
	numStates := numLoopInputs - 2
	numScans := len(bodyOuts) - 1 - numStates
	if numStates < 0 || len(bodyIns) != numStates+2 {
		return errInvariant("Loop: body has %d inputs, want %d", len(bodyIns), numStates+2)
	}
	if numLoopOutputs != numStates+numScans {
		return errInvariant("Loop: node has %d outputs, want %d", numLoopOutputs, numStates+numScans)
	}

	maxTripCount := loop.Inputs()[0]
	terminalCond := loop.Inputs()[1]
	if maxTripCount.IsNull() && terminalCond.IsNull() {
		return errUnsupported("Loop: both max_trip_count and terminal_condition are absent (infinite loop)")
	}

	// Step 1: assign fresh ids to every value of the body graph.
	assignValueIds(ll.ids, body)

	iterID := ll.ids.get(bodyIns[0])
	condID := ll.ids.get(bodyIns[1])

	// Step 2: initialize iter, cond, and loop-carried state.
	ll.emit(loop, "init-iter", vm.OpIntScalarConstant, vm.Reg(iterID), vm.Int(0), vm.Str(string(vm.DTypeInt64)), vm.Bool(false))
	ll.emit(loop, "init-cond", vm.OpIntScalarConstant, vm.Reg(condID), vm.Int(1), vm.Str("bool"), vm.Bool(false))
	for i := 0; i < numStates; i++ {
		outerReg := ll.ids.get(loop.Inputs()[i+2])
		bodyInReg := ll.ids.get(bodyIns[i+2])
		ll.emit(loop, "init-state", vm.OpIdentity, vm.Reg(bodyInReg), vm.Reg(outerReg))
	}

	// Step 3: one accumulator sequence per scan output.
	scanAccIDs := make([]int32, numScans)
	for i := 0; i < numScans; i++ {
		id := ll.ids.fresh()
		ll.emit(loop, "scan-init", vm.OpSequenceCreate, vm.Reg(id))
		scanAccIDs[i] = id
	}

	// Step 4: conditional skip of a zero-trip loop.
	skipLoopJmp := -1
	if !terminalCond.IsNull() {
		skipLoopJmp = ll.emit(loop, "skip-check", vm.OpJmpFalse, vm.Reg(ll.ids.get(terminalCond)), vm.Int(-1))
	}

	// Step 5.
	loopBegin := ll.prog.Len()

	// Step 6: emit the body.
	if err := ll.walker.Walk(body, true); err != nil {
		return err
	}

	// Step 7: advance the iteration counter and release the body's inputs.
	oneID := ll.ids.fresh()
	ll.emit(loop, "iter-inc", vm.OpIntScalarConstant, vm.Reg(oneID), vm.Int(1), vm.Str(string(vm.DTypeInt64)), vm.Bool(false))
	tmpID := ll.ids.fresh()
	ll.emit(loop, "iter-inc", vm.OpAdd, vm.Reg(tmpID), vm.Reg(iterID), vm.Reg(oneID))
	ll.emit(loop, "iter-inc", vm.OpFree, vm.Reg(oneID))
	for _, v := range bodyIns {
		ll.emit(loop, "free-body-inputs", vm.OpFree, vm.Reg(ll.ids.get(v)))
	}
	ll.move(loop, "iter-inc", iterID, tmpID)
	ll.move(loop, "cond-move", condID, ll.ids.get(bodyOuts[0]))

	// Step 8: propagate loop-carried state into the body's input registers.
	for i := 0; i < numStates; i++ {
		bodyInReg := ll.ids.get(bodyIns[i+2])
		bodyOutReg := ll.ids.get(bodyOuts[i+1])
		ll.move(loop, "state-propagate", bodyInReg, bodyOutReg)
	}

	// Step 9: push this iteration's scan values onto their accumulators.
	for i := 0; i < numScans; i++ {
		bodyOutReg := ll.ids.get(bodyOuts[i+numStates+1])
		ll.emit(loop, "scan-append", vm.OpSequenceAppend, vm.Reg(scanAccIDs[i]), vm.Reg(scanAccIDs[i]), vm.Reg(bodyOutReg))
		ll.emit(loop, "scan-append", vm.OpFree, vm.Reg(bodyOutReg))
	}

	// Step 10: compute the termination condition.
	switch {
	case terminalCond.IsNull():
		// Only max_trip_count: cond := max_trip_count > iter.
		ll.emit(loop, "terminate", vm.OpFree, vm.Reg(condID))
		ll.emit(loop, "terminate", vm.OpGreater, vm.Reg(condID), vm.Reg(ll.ids.get(maxTripCount)), vm.Reg(iterID))
	case maxTripCount.IsNull():
		// Only terminal_condition: cond already holds the body's verdict.
	default:
		// Both present: cond := cond AND (max_trip_count > iter).
		ll.emit(loop, "terminate", vm.OpGreater, vm.Reg(tmpID), vm.Reg(ll.ids.get(maxTripCount)), vm.Reg(iterID))
		tmp2ID := ll.ids.fresh()
		ll.emit(loop, "terminate", vm.OpMul, vm.Reg(tmp2ID), vm.Reg(condID), vm.Reg(tmpID))
		ll.emit(loop, "terminate", vm.OpFree, vm.Reg(condID))
		ll.move(loop, "terminate", condID, tmp2ID)
		ll.emit(loop, "terminate", vm.OpFree, vm.Reg(tmpID))
	}

	// Step 11.
	ll.emit(loop, "back-edge", vm.OpJmpTrue, vm.Reg(condID), vm.Int(int64(loopBegin)))

	// Step 12: backpatch the zero-trip skip, if any, to just past the loop.
	if skipLoopJmp >= 0 {
		ll.prog.PatchOperand(skipLoopJmp, 1, vm.Int(int64(ll.prog.Len())))
	}

	// Step 13: publish final state and stacked scan outputs.
	for i := 0; i < numStates; i++ {
		bodyInReg := ll.ids.get(bodyIns[i+2])
		outReg := ll.ids.get(loop.Outputs()[i])
		ll.move(loop, "final-state", outReg, bodyInReg)
	}
	for i := 0; i < numScans; i++ {
		outReg := ll.ids.get(loop.Outputs()[i+numStates])
		axis := loop.Attrs().Int("stack_axis", 0)
		ll.emit(loop, "scan-stack", vm.OpSequenceStack, vm.Reg(outReg), vm.Reg(scanAccIDs[i]), vm.Int(axis))
		ll.emit(loop, "scan-stack", vm.OpFree, vm.Reg(scanAccIDs[i]))
	}

	// Step 14.
	ll.emit(loop, "teardown", vm.OpFree, vm.Reg(iterID))
	ll.emit(loop, "teardown", vm.OpFree, vm.Reg(condID))
	return nil
}
