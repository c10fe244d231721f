package emitter

import (
	"math"

	"github.com/NERVsystems/gflow/graph"
	"github.com/NERVsystems/gflow/vm"
)

// lowerConstant implements §4.2.1: read the node's tensor attribute,
// validate its dimensions, and emit the scalar or list constant opcode
// matching its element type.
func (nl *NodeLowerer) lowerConstant(n *graph.Node, inLoop bool) error {
	t := n.Attrs().Tensor()
	if t == nil {
		return errInvariant("Constant: missing tensor attribute")
	}
	o0, err := nl.out(n, 0)
	if err != nil {
		return err
	}
	for _, d := range t.Dims() {
		if d < 0 || d > math.MaxUint32 {
			return errInvariant("Constant: dimension %d out of range", d)
		}
	}
	host := n.Attrs().Bool("onikux_host", false)

	if t.Dtype().IsFloat() {
		n2 := t.NumElements()
		values := make([]float64, n2)
		for i := int64(0); i < n2; i++ {
			values[i] = t.GetFloat(i)
		}
		if len(t.Dims()) == 0 {
			nl.emit(n, inLoop, vm.OpFloatScalarConstant, vm.Reg(o0), vm.Float(values[0]),
				vm.Str(string(t.Dtype())), vm.Bool(host))
			return nil
		}
		nl.emit(n, inLoop, vm.OpFloatConstant, vm.Reg(o0), vm.FloatList(values),
			vm.IntList(t.Dims()), vm.Str(string(t.Dtype())), vm.Bool(host))
		return nil
	}

	n2 := t.NumElements()
	values := make([]int64, n2)
	for i := int64(0); i < n2; i++ {
		values[i] = t.GetInt(i)
	}
	if len(t.Dims()) == 0 {
		nl.emit(n, inLoop, vm.OpIntScalarConstant, vm.Reg(o0), vm.Int(values[0]),
			vm.Str(string(t.Dtype())), vm.Bool(host))
		return nil
	}
	nl.emit(n, inLoop, vm.OpIntConstant, vm.Reg(o0), vm.IntList(values),
		vm.IntList(t.Dims()), vm.Str(string(t.Dtype())), vm.Bool(host))
	return nil
}
