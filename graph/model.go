package graph

// Model is the top-level unit the emitter consumes: a single root Graph
// plus whatever metadata the upstream importer attached to it. Nested
// Loop bodies are plain Graphs reached through a node's Attrs, not
// separate Models.
type Model struct {
	name string
	root *Graph
}

// NewModel wraps root as a named model.
func NewModel(name string, root *Graph) *Model {
	return &Model{name: name, root: root}
}

func (m *Model) Name() string  { return m.name }
func (m *Model) Graph() *Graph { return m.root }
