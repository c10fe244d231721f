package emitter

import (
	"fmt"
	"sort"

	"github.com/NERVsystems/gflow/graph"
)

// ValueIdTable is a bijection between graph values and VM register ids,
// plus an allocator for ids not bound to any value (lowering temporaries,
// loop-internal scratch registers). Id 0 is reserved and never handed out;
// the first assigned id is 1.
type ValueIdTable struct {
	ids  map[*graph.Value]int32
	next int32
}

// NewValueIdTable returns an empty table whose next allocation is id 1.
func NewValueIdTable() *ValueIdTable {
	return &ValueIdTable{ids: make(map[*graph.Value]int32), next: 1}
}

// assign allocates a fresh id for v and records it. It panics if v is
// already assigned: calling assign twice on the same value is a bug in the
// caller (the walker/loop lowerer), not a condition that can arise from a
// malformed input graph.
func (t *ValueIdTable) assign(v *graph.Value) int32 {
	if v == nil || v.IsNull() {
		panic("emitter: assign called on a null value")
	}
	if _, ok := t.ids[v]; ok {
		panic(fmt.Sprintf("emitter: value %q already assigned an id", v.Name()))
	}
	id := t.next
	t.next++
	t.ids[v] = id
	return id
}

// get returns the id recorded for v. It panics if v was never assigned: per
// the invariant that every operand referenced in an emitted instruction
// must have a registered id, reaching an unassigned value here means a node
// references a value that is not listed among its graph's inputs, temps, or
// outputs (ids are assigned for those before any node is walked).
func (t *ValueIdTable) get(v *graph.Value) int32 {
	if v == nil || v.IsNull() {
		panic("emitter: get called on a null value")
	}
	id, ok := t.ids[v]
	if !ok {
		panic(fmt.Sprintf("emitter: value %q has no assigned id", v.Name()))
	}
	return id
}

// fresh returns a new id bound to no value, for registers introduced by
// lowering itself (loop iteration counters, Move temporaries, and so on).
func (t *ValueIdTable) fresh() int32 {
	id := t.next
	t.next++
	return id
}

// idValue pairs a register id with the value it was assigned to, for the
// dump_value_names diagnostic.
type idValue struct {
	id    int32
	value *graph.Value
}

// entries returns every value-bound id in ascending id order. Ids
// allocated via fresh() (not bound to a value) are not included.
func (t *ValueIdTable) entries() []idValue {
	out := make([]idValue, 0, len(t.ids))
	for v, id := range t.ids {
		out = append(out, idValue{id: id, value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}
