// Package graph is the input data model the emitter consumes: a typed
// dataflow DAG of Values produced and consumed by Nodes, rooted in a
// Model. Construction and validation of graphs (the importer, shape
// inference, optimization passes) live upstream of this package; graph
// only models the finalized, already type-inferred shape the emitter is
// handed.
package graph

// ValueKind classifies how a Value enters and leaves the dataflow graph.
type ValueKind int

const (
	// Input is bound by an In instruction the first time a consumer needs it.
	Input ValueKind = iota
	// Temp is produced by the instruction that computes it.
	Temp
	// Output is published by the graph's trailing Out instructions.
	Output
)

func (k ValueKind) String() string {
	switch k {
	case Input:
		return "input"
	case Temp:
		return "temp"
	case Output:
		return "output"
	default:
		return "unknown"
	}
}

// Value is one typed edge of the dataflow graph: something produced by at
// most one Node and consumed by zero or more.
type Value struct {
	name     string
	kind     ValueKind
	null     bool // true for an omitted optional input/output slot
	nbytes   int64
	users    []*Node
	producer *Node // the node that writes this value, nil for graph inputs
}

// NewValue creates a named, non-null value of the given kind.
func NewValue(name string, kind ValueKind) *Value {
	return &Value{name: name, kind: kind}
}

// NullValue returns the sentinel for an omitted optional operand slot.
func NullValue() *Value {
	return &Value{null: true}
}

func (v *Value) Name() string     { return v.name }
func (v *Value) Kind() ValueKind  { return v.kind }
func (v *Value) IsNull() bool     { return v == nil || v.null }
func (v *Value) Users() []*Node   { return v.users }
func (v *Value) GetNBytes() int64 { return v.nbytes }

// Producer returns the node that writes v, or nil if v is a graph input.
func (v *Value) Producer() *Node { return v.producer }

// SetNBytes records the declared byte size used in the dump_value_names
// diagnostic. Zero-valued if the upstream importer never set it.
func (v *Value) SetNBytes(n int64) { v.nbytes = n }

// addUser records n as a consumer of v. Called while a graph is assembled;
// not meant for use once a graph has been handed to the emitter.
func (v *Value) addUser(n *Node) {
	v.users = append(v.users, n)
}
