package ir

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeKindValid(t *testing.T) {
	for _, k := range ValidKinds {
		assert.True(t, k.Valid(), "kind %q should be valid", k)
	}
	assert.False(t, NodeKind("").Valid())
	assert.False(t, NodeKind("basic_block").Valid())
}

func TestGraphAddAndLookup(t *testing.T) {
	g := NewGraph([]string{"let %1 : Int = load(%0)"})

	n := &Node{ID: "%1", Kind: KindInstruction, Opcode: "load"}
	g.AddNode(n)
	g.AddEdge("%0", "%1")

	require.NotNil(t, g.Node("%1"))
	assert.Equal(t, "load", g.Node("%1").Opcode)
	assert.Nil(t, g.Node("%404"))
	assert.Equal(t, []Edge{{From: "%0", To: "%1"}}, g.Edges)
}

func TestGraphDuplicateEdgesKept(t *testing.T) {
	g := NewGraph(nil)
	g.AddEdge("%5", "%9")
	g.AddEdge("%5", "%9")
	assert.Len(t, g.Edges, 2)
}

func TestGraphRedefinitionReplacesIndex(t *testing.T) {
	g := NewGraph(nil)
	g.AddNode(&Node{ID: "%1", Opcode: "first"})
	g.AddNode(&Node{ID: "%1", Opcode: "second"})

	assert.Len(t, g.Nodes, 2)
	assert.Equal(t, "second", g.Node("%1").Opcode)
}

func TestGraphContextWindow(t *testing.T) {
	g := NewGraph([]string{"a", "b", "c", "d", "e"})

	assert.Equal(t, []string{"a", "b", "c"}, g.Context(1, 1))
	assert.Equal(t, []string{"d", "e"}, g.Context(4, 1))
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, g.Context(2, 10))
	assert.Nil(t, g.Context(0, -1))
	assert.Nil(t, NewGraph(nil).Context(0, 2))
}

func TestGraphContextOutOfRangeClamps(t *testing.T) {
	g := NewGraph([]string{"a", "b"})
	assert.Nil(t, g.Context(10, 1))
	assert.Equal(t, []string{"a"}, g.Context(-1, 1))
}

func TestNodeJSONRoundTrip(t *testing.T) {
	n := &Node{
		ID:         "%9",
		Kind:       KindInstruction,
		Opcode:     "typeLayout",
		ResultType: "Void",
		Attributes: []Attribute{
			{Name: "layout", ArgsRaw: "%5", Raw: "[layout(%5)]", Operands: []Operand{{Raw: "%5", ReferencedID: "%5"}}},
		},
		SourceLine:   2,
		OriginalLine: "let %9 : Void = typeLayout",
	}

	data, err := json.Marshal(n)
	require.NoError(t, err)

	var back Node
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, *n, back)
}
