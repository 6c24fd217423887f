package chemgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInteractionGraph(Te *testing.T) {
	G := NewInteractionGraph()
	G.LinkAll([]string{"A", "B"})
	G.LinkAll([]string{"B", "C"})
	G.AddChain("D")
	G.Link("D", "D")

	assert.True(Te, G.Interact("A", "B"))
	assert.True(Te, G.Interact("B", "A"), "links are symmetric")
	assert.False(Te, G.Interact("A", "C"))
	assert.False(Te, G.Interact("A", "Z"))
	assert.True(Te, G.HasRecord("C"))
	assert.False(Te, G.HasRecord("D"), "a lone chain has no interaction evidence")
	assert.False(Te, G.HasRecord("Z"))
	assert.Equal(Te, []string{"A", "C"}, G.Partners("B"))
	assert.Equal(Te, []string{"A", "B", "C", "D"}, G.Chains())
	assert.Equal(Te, 4, G.Graph().Nodes().Len())
}

func TestFromContacts(Te *testing.T) {
	G := FromContacts(map[string][]string{"B": {"A", "C"}, "A": {"B"}, "C": {"B"}, "D": {}})
	assert.Equal(Te, []string{"A", "B", "C", "D"}, G.Chains())
	assert.True(Te, G.Interact("C", "B"))
	assert.False(Te, G.Interact("A", "C"))
	assert.Equal(Te, "B", G.Label(1))
}
