package graph

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetComputationSequenceOrdersByDependency(t *testing.T) {
	a := NewValue("a", Input)
	b := NewValue("b", Temp)
	c := NewValue("c", Temp)
	d := NewValue("d", Output)

	// n2 depends on n1's output; n3 depends on both n1 and n2.
	n1 := NewNode(OpRelu, []*Value{a}, []*Value{b}, Attrs{})
	n2 := NewNode(OpNeg, []*Value{b}, []*Value{c}, Attrs{})
	n3 := NewNode(OpAdd, []*Value{b, c}, []*Value{d}, Attrs{})

	// Constructed out of dependency order on purpose.
	g := New([]*Value{a}, []*Value{b, c}, []*Value{d}, []*Node{n3, n1, n2})

	order := g.GetComputationSequence()
	require.Equal(t, []*Node{n1, n2, n3}, order)
}

func TestGetComputationSequencePreservesInputOrderAmongIndependentNodes(t *testing.T) {
	a := NewValue("a", Input)
	b := NewValue("b", Input)
	o1 := NewValue("o1", Output)
	o2 := NewValue("o2", Output)

	n1 := NewNode(OpRelu, []*Value{a}, []*Value{o1}, Attrs{})
	n2 := NewNode(OpRelu, []*Value{b}, []*Value{o2}, Attrs{})

	g := New([]*Value{a, b}, nil, []*Value{o1, o2}, []*Node{n1, n2})
	require.Equal(t, []*Node{n1, n2}, g.GetComputationSequence())
}

func TestNodeWiresUsersAndProducer(t *testing.T) {
	a := NewValue("a", Input)
	b := NewValue("b", Output)
	n := NewNode(OpRelu, []*Value{a}, []*Value{b}, Attrs{})

	require.Equal(t, []*Node{n}, a.Users())
	require.Same(t, n, b.Producer())
	require.Nil(t, a.Producer())
}

func TestNullValueIsNullAndHasNoProducer(t *testing.T) {
	null := NullValue()
	require.True(t, null.IsNull())
	require.Nil(t, null.Producer())
}

func TestAttrsBuildersDoNotMutateSharedState(t *testing.T) {
	base := Attrs{}.WithInt("axis", 1)
	derived := base.WithInt("axis", 2)

	require.Equal(t, int64(1), base.Int("axis", 0))
	require.Equal(t, int64(2), derived.Int("axis", 0))
}

func TestAttrsDefaultsWhenUnset(t *testing.T) {
	a := Attrs{}
	require.Equal(t, int64(7), a.Int("missing", 7))
	require.Equal(t, 1.5, a.Float("missing", 1.5))
	require.Equal(t, "fallback", a.String("missing", "fallback"))
	require.True(t, a.Bool("missing", true))
	require.Nil(t, a.Ints("missing"))
}
