package emitter

import (
	"github.com/NERVsystems/gflow/graph"
	"github.com/NERVsystems/gflow/vm"
)

// lowerSequenceAppend implements §4.2.2: avoid an O(n^2) copy when the
// source value has exactly one user (this append), since nothing else can
// observe the original sequence afterward. Otherwise the original must be
// preserved for its other readers, so a defensive copy runs first.
func (nl *NodeLowerer) lowerSequenceAppend(n *graph.Node, inLoop bool) error {
	seq, err := nl.in(n, 0)
	if err != nil {
		return err
	}
	item, err := nl.in(n, 1)
	if err != nil {
		return err
	}
	o0, err := nl.out(n, 0)
	if err != nil {
		return err
	}

	seqValue := n.Inputs()[0]
	if len(seqValue.Users()) == 1 {
		nl.emit(n, inLoop, vm.OpSequenceMove, vm.Reg(o0), vm.Reg(seq))
	} else {
		nl.emit(n, inLoop, vm.OpSequenceCopy, vm.Reg(o0), vm.Reg(seq))
	}
	nl.emit(n, inLoop, vm.OpSequenceAppend, vm.Reg(o0), vm.Reg(o0), vm.Reg(item))
	return nil
}
