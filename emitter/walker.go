package emitter

import (
	"github.com/NERVsystems/gflow/graph"
	"github.com/NERVsystems/gflow/vm"
	"go.uber.org/zap"
)

// GraphWalker drives a single topological pass over a graph (the root
// graph, or a loop body entered by LoopLowerer), lazily staging graph
// inputs and freeing values as soon as their last reader has run.
type GraphWalker struct {
	prog *vm.Program
	ids  *ValueIdTable
	nl   *NodeLowerer
	ll   *LoopLowerer
	log  *zap.Logger
}

// NewGraphWalker builds a walker sharing prog, ids and nl with the rest of
// the emitter. ll lowers any Loop node the walk encounters; it is wired in
// after construction (see NewLoopLowerer) to break the two types' mutual
// dependency.
func NewGraphWalker(prog *vm.Program, ids *ValueIdTable, nl *NodeLowerer, log *zap.Logger) *GraphWalker {
	return &GraphWalker{prog: prog, ids: ids, nl: nl, log: log}
}

// assignValueIds assigns a fresh id to every value of g, in the order §4.1
// specifies: inputs, then temps, then outputs. None of g's values may
// already be assigned (ValueIdTable.assign panics on a repeat).
func assignValueIds(ids *ValueIdTable, g *graph.Graph) {
	for _, v := range g.InputValues() {
		ids.assign(v)
	}
	for _, v := range g.TempValues() {
		ids.assign(v)
	}
	for _, v := range g.OutputValues() {
		ids.assign(v)
	}
}

// Walk emits every node of g in topological order, staging inputs lazily
// (unless inLoop, per §4.3 step 2: a loop body's inputs are initialized
// explicitly by LoopLowerer instead) and freeing temps as soon as their
// last reader runs. It does not assign ids (the caller does that, since a
// loop body's ids must be assigned before LoopLowerer's initializer
// instructions reference them) and it does not emit the graph's trailing
// Out instructions (also the caller's job: a loop body's outputs are
// consumed directly by LoopLowerer, never published with Out).
func (w *GraphWalker) Walk(g *graph.Graph, inLoop bool) error {
	numUsers := make(map[*graph.Value]int)
	if !inLoop {
		for _, v := range g.InputValues() {
			numUsers[v] = len(v.Users())
		}
	}
	for _, v := range g.TempValues() {
		numUsers[v] = len(v.Users())
	}

	staged := make(map[*graph.Value]bool)
	order := g.GetComputationSequence()

	for _, n := range order {
		if !inLoop {
			for _, in := range n.Inputs() {
				if in.IsNull() || in.Kind() != graph.Input || staged[in] {
					continue
				}
				staged[in] = true
				w.prog.Emit(vm.OpIn, vm.Reg(w.ids.get(in)), vm.Str(in.Name()))
			}
		}

		if n.OpType() == graph.OpLoop {
			if err := w.ll.Lower(n, inLoop); err != nil {
				return err
			}
		} else if err := w.nl.Lower(n, inLoop); err != nil {
			return err
		}

		for _, out := range n.Outputs() {
			if out.IsNull() || out.Kind() != graph.Temp {
				continue
			}
			if len(out.Users()) == 0 && n.OpType() != graph.OpBatchNormalization {
				w.prog.Emit(vm.OpFree, vm.Reg(w.ids.get(out)))
			}
		}

		for _, in := range n.Inputs() {
			if in.IsNull() {
				continue
			}
			if _, tracked := numUsers[in]; !tracked {
				continue
			}
			numUsers[in]--
			if numUsers[in] == 0 {
				w.prog.Emit(vm.OpFree, vm.Reg(w.ids.get(in)))
			}
		}
	}
	return nil
}
