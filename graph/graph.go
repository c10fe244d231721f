package graph

import "fmt"

// Graph is a directed acyclic collection of Nodes over typed Values: the
// finalized, type-inferred computation the emitter translates to VM
// bytecode. A Graph is also used as the body of a Loop node, in which
// case its Inputs are [iter, cond, state_0..state_S-1] and its Outputs are
// [cond', state'_0..state'_S-1, scan_0..scan_K-1] (see the Loop lowering
// protocol in package emitter).
type Graph struct {
	inputs  []*Value
	temps   []*Value
	outputs []*Value
	nodes   []*Node // in an arbitrary, not-necessarily-topological order
}

// New builds a graph from its value sets and member nodes. Nodes need not
// be given in dependency order; GetComputationSequence computes one.
func New(inputs, temps, outputs []*Value, nodes []*Node) *Graph {
	return &Graph{inputs: inputs, temps: temps, outputs: outputs, nodes: nodes}
}

func (g *Graph) InputValues() []*Value  { return g.inputs }
func (g *Graph) TempValues() []*Value   { return g.temps }
func (g *Graph) OutputValues() []*Value { return g.outputs }

// GetNecessaryInputs returns the graph's input values. Retained for parity
// with the upstream graph contract; the emitter does not call it (inputs
// are staged lazily by the walker on first use instead).
func (g *Graph) GetNecessaryInputs() []*Value {
	return g.inputs
}

// GetComputationSequence returns the graph's nodes in a topologically
// valid order: every node appears after every node that produces one of
// its inputs. Ties are broken by original insertion order, so callers that
// already hand nodes in dependency order get that order back unchanged.
func (g *Graph) GetComputationSequence() []*Node {
	indegree := make(map[*Node]int, len(g.nodes))
	consumers := make(map[*Node][]*Node, len(g.nodes))
	index := make(map[*Node]int, len(g.nodes))
	for i, n := range g.nodes {
		index[n] = i
	}

	for _, n := range g.nodes {
		seen := make(map[*Node]bool)
		for _, in := range n.inputs {
			if in.IsNull() {
				continue
			}
			p := in.producer
			if p == nil || seen[p] {
				continue
			}
			// Only count dependencies within this graph's own node set.
			if _, ok := index[p]; !ok {
				continue
			}
			seen[p] = true
			indegree[n]++
			consumers[p] = append(consumers[p], n)
		}
	}

	var ready []*Node
	for _, n := range g.nodes {
		if indegree[n] == 0 {
			ready = append(ready, n)
		}
	}

	var order []*Node
	for len(ready) > 0 {
		// Pop the lowest-original-index ready node to keep the order stable.
		bestIdx := 0
		for i := 1; i < len(ready); i++ {
			if index[ready[i]] < index[ready[bestIdx]] {
				bestIdx = i
			}
		}
		n := ready[bestIdx]
		ready = append(ready[:bestIdx], ready[bestIdx+1:]...)
		order = append(order, n)

		for _, c := range consumers[n] {
			indegree[c]--
			if indegree[c] == 0 {
				ready = append(ready, c)
			}
		}
	}

	if len(order) != len(g.nodes) {
		panic(fmt.Sprintf("graph: cycle detected among %d nodes (scheduled %d)", len(g.nodes), len(order)))
	}
	return order
}
