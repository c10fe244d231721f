package graph

// Attrs is a node's bag of typed attributes. The zero value is an empty
// bag; use the With* builders to populate one when constructing a fixture
// or importer output.
type Attrs struct {
	ints       map[string]int64
	floats     map[string]float64
	intLists   map[string][]int64
	strs       map[string]string
	bools      map[string]bool
	tensor     *Tensor
	body       *Graph
}

func (a Attrs) WithInt(name string, v int64) Attrs {
	a.ints = cloneSet(a.ints, name, v)
	return a
}

func (a Attrs) WithFloat(name string, v float64) Attrs {
	a.floats = cloneSet(a.floats, name, v)
	return a
}

func (a Attrs) WithInts(name string, v []int64) Attrs {
	m := map[string][]int64{}
	for k, vv := range a.intLists {
		m[k] = vv
	}
	m[name] = v
	a.intLists = m
	return a
}

func (a Attrs) WithString(name string, v string) Attrs {
	m := map[string]string{}
	for k, vv := range a.strs {
		m[k] = vv
	}
	m[name] = v
	a.strs = m
	return a
}

func (a Attrs) WithBool(name string, v bool) Attrs {
	m := map[string]bool{}
	for k, vv := range a.bools {
		m[k] = vv
	}
	m[name] = v
	a.bools = m
	return a
}

func (a Attrs) WithTensor(t *Tensor) Attrs {
	a.tensor = t
	return a
}

func (a Attrs) WithBody(g *Graph) Attrs {
	a.body = g
	return a
}

func cloneSet[V any](m map[string]V, name string, v V) map[string]V {
	out := map[string]V{}
	for k, vv := range m {
		out[k] = vv
	}
	out[name] = v
	return out
}

// Int returns the named int attribute, or def if unset.
func (a Attrs) Int(name string, def int64) int64 {
	if v, ok := a.ints[name]; ok {
		return v
	}
	return def
}

// Float returns the named float attribute, or def if unset.
func (a Attrs) Float(name string, def float64) float64 {
	if v, ok := a.floats[name]; ok {
		return v
	}
	return def
}

// Ints returns the named int-list attribute, or nil if unset.
func (a Attrs) Ints(name string) []int64 {
	return a.intLists[name]
}

// String returns the named string attribute, or def if unset.
func (a Attrs) String(name string, def string) string {
	if v, ok := a.strs[name]; ok {
		return v
	}
	return def
}

// Bool returns the named bool attribute, or def if unset.
func (a Attrs) Bool(name string, def bool) bool {
	if v, ok := a.bools[name]; ok {
		return v
	}
	return def
}

// Tensor returns the Constant node's tensor value, or nil if unset.
func (a Attrs) Tensor() *Tensor { return a.tensor }

// Body returns the Loop node's nested body graph, or nil if unset.
func (a Attrs) Body() *Graph { return a.body }
