package clash

import (
	"testing"

	chem "github.com/rmera/gocomplex"
	"github.com/rmera/gocomplex/internal/synth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInteractions(Te *testing.T) {
	//A and B 4 A apart, C far away from both.
	mol := synth.Molecule("ABC",
		synth.Chain{Label: "A", Seq: "MKTAY"},
		synth.Chain{Label: "B", Seq: "GSHML", Origin: [3]float64{0, 4, 0}},
		synth.Chain{Label: "C", Seq: "AAAA", Origin: [3]float64{0, 40, 0}})
	inter := Interactions(mol, mol.Coords[0], InteractionCutoff)
	assert.Equal(Te, map[string][]string{"A": {"B"}, "B": {"A"}, "C": {}}, inter)

	a, _ := mol.Chain("A")
	c, _ := mol.Chain("C")
	d, _ := LowestDist(a.Coords[0], c.Coords[0])
	assert.Greater(Te, d, InteractionCutoff)
}

func TestClash(Te *testing.T) {
	far := synth.Molecule("far",
		synth.Chain{Label: "A", Seq: "MKTAY"},
		synth.Chain{Label: "B", Seq: "GSHML", Origin: [3]float64{0, 3, 0}})
	assert.False(Te, Clash(far, far.Coords[0], ClashCutoff))

	near := synth.Molecule("near",
		synth.Chain{Label: "A", Seq: "MKTAY"},
		synth.Chain{Label: "B", Seq: "GSHML", Origin: [3]float64{0.1, 0.1, 0}})
	assert.True(Te, Clash(near, near.Coords[0], ClashCutoff))
}

// The clashing pair is in the last two chains, so a check that only looks
// at the first chain would miss it.
func TestClashAnyChain(Te *testing.T) {
	mol := synth.Molecule("ABC",
		synth.Chain{Label: "A", Seq: "MKT", Origin: [3]float64{0, -30, 0}},
		synth.Chain{Label: "B", Seq: "GSH"},
		synth.Chain{Label: "C", Seq: "AAA", Origin: [3]float64{0, 0, 0.2}})
	i, j, found := FirstClash(mol, mol.Coords[0], ClashCutoff)
	require.True(Te, found)
	assert.NotEqual(Te, mol.Atom(i).Chain, mol.Atom(j).Chain)
	assert.NotEqual(Te, "A", mol.Atom(i).Chain)
}

func TestSearcherWithin(Te *testing.T) {
	mol := synth.Molecule("A", synth.Chain{Label: "A", Seq: "GG"})
	S := NewSearcher(mol, mol.Coords[0])
	//N of residue 1 sees its own CA (1.76 A) but not its C (2.45 A).
	assert.ElementsMatch(Te, []int{1}, S.Within(0, 2.0))
	assert.Empty(Te, NewSearcher(&chem.Molecule{}, nil).Within(0, 1))
}

func TestClosest(Te *testing.T) {
	mol := synth.Molecule("ABC",
		synth.Chain{Label: "A", Seq: "MKT"},
		synth.Chain{Label: "B", Seq: "GSH", Origin: [3]float64{0, 6, 0}},
		synth.Chain{Label: "C", Seq: "AAA", Origin: [3]float64{0, 0, 3}})
	a, _ := mol.Chain("A")
	b, _ := mol.Chain("B")
	c, _ := mol.Chain("C")
	ac, _ := LowestDist(a.Coords[0], c.Coords[0])
	ab, _ := LowestDist(a.Coords[0], b.Coords[0])
	bc, _ := LowestDist(b.Coords[0], c.Coords[0])
	assert.Less(Te, ac, 3.0+1e-9)
	assert.Less(Te, ac, ab)
	assert.Less(Te, ac, bc)
	assert.Equal(Te, ac, Closest(mol, mol.Coords[0]))

	one := synth.Molecule("A", synth.Chain{Label: "A", Seq: "MKT"})
	assert.Equal(Te, -1.0, Closest(one, one.Coords[0]))
}
