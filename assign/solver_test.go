package assign

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/rmera/gocomplex/chemgraph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func targetGraph(inputs ...[]string) *chemgraph.InteractionGraph {
	G := chemgraph.NewInteractionGraph()
	for _, in := range inputs {
		G.LinkAll(in)
	}
	return G
}

// AB and BC as inputs, a three chain template where every chain touches
// the other two.
func TestSolveThreeChains(Te *testing.T) {
	M := NewModel(targetGraph([]string{"A", "B"}, []string{"B", "C"}))
	tg := chemgraph.NewInteractionGraph()
	tg.LinkAll([]string{"X", "Y", "Z"})
	T := M.AddTemplate("1abc", []string{"X", "Y", "Z"}, tg)
	T.SetCandidates("X", []string{"A"})
	T.SetCandidates("Y", []string{"B"})
	T.SetCandidates("Z", []string{"C"})

	A, stats, err := M.Solve("1abc", []string{"A", "B", "C"})
	require.NoError(Te, err)
	assert.Equal(Te, []string{"X", "Y", "Z"}, A.Chains)
	assert.Equal(Te, Stats{Tried: 3}, stats)
	assert.Equal(Te, map[string]string{"X": "A", "Y": "B", "Z": "C"}, A.ByTemplateChain())
	z, ok := A.Of("C")
	assert.True(Te, ok)
	assert.Equal(Te, "Z", z)
}

func TestSolveBacktracks(Te *testing.T) {
	tg := chemgraph.NewInteractionGraph()
	tg.AddChain("X")
	tg.Link("Z", "Y")
	T := &Template{Name: "t", Chains: []string{"X", "Y", "Z"}, Candidates: map[string][]string{"X": {"A"}, "Y": {"B"}, "Z": {"A"}}, Graph: tg}
	A, stats, err := Solve([]string{"A", "B"}, T, targetGraph([]string{"A", "B"}))
	require.NoError(Te, err)
	assert.Equal(Te, []string{"Z", "Y"}, A.Chains)
	assert.Equal(Te, Stats{Tried: 4, Rejected: 1, Backtracks: 1}, stats)
}

func TestSolveAsymmetricRule(Te *testing.T) {
	//A and C never appear together, but their template chains touch.
	tg := chemgraph.NewInteractionGraph()
	tg.LinkAll([]string{"X", "Y"})
	T := &Template{Name: "t", Chains: []string{"X", "Y"}, Candidates: map[string][]string{"X": {"A"}, "Y": {"C"}}, Graph: tg}
	_, _, err := Solve([]string{"A", "C"}, T, targetGraph([]string{"A", "B"}, []string{"B", "C"}))
	assert.NoError(Te, err)
}

func TestSolveRequiresEvidence(Te *testing.T) {
	//D comes from a single chain input, so there is no evidence about it.
	target := targetGraph([]string{"A", "B"}, []string{"D"})
	tg := chemgraph.NewInteractionGraph()
	tg.LinkAll([]string{"X", "Y"})
	T := &Template{Name: "t", Chains: []string{"X", "Y"}, Candidates: map[string][]string{"X": {"A"}, "Y": {"D"}}, Graph: tg}
	_, stats, err := Solve([]string{"A", "D"}, T, target)
	assert.ErrorIs(Te, err, ErrNoAssignment)
	assert.Equal(Te, 1, stats.Rejected)

	_, _, err = Solve([]string{"D"}, T, target)
	assert.NoError(Te, err, "a lone chain has nothing to be checked against")
}

func TestSolveEmptyCandidates(Te *testing.T) {
	T := &Template{Name: "t", Chains: []string{"X"}, Candidates: map[string][]string{"X": {"A"}}, Graph: chemgraph.NewInteractionGraph()}
	A, stats, err := Solve([]string{"A", "B"}, T, targetGraph([]string{"A", "B"}))
	assert.ErrorIs(Te, err, ErrEmptyCandidates)
	assert.Nil(Te, A)
	assert.Equal(Te, Stats{}, stats)

	M := NewModel(targetGraph())
	_, _, err = M.Solve("nope", []string{"A"})
	assert.ErrorIs(Te, err, ErrUnknownTemplate)
}

func TestModel(Te *testing.T) {
	M := NewModel(targetGraph([]string{"A", "B"}))
	T := M.AddTemplate("1abc", []string{"A"}, nil)
	assert.Same(Te, T, M.AddTemplate("1abc", nil, nil))
	M.AddTemplate("2xyz", nil, nil)
	T.SetCandidates("B", []string{"A", "B"})
	T.SetCandidates("A", []string{"B"})
	assert.Equal(Te, []string{"A", "B"}, T.Chains)
	assert.Equal(Te, []string{"A", "B"}, T.CandidatesFor("B"))
	assert.Equal(Te, []string{"1abc", "2xyz"}, M.Templates())
	_, ok := M.Template("2xyz")
	assert.True(Te, ok)
}

// instance is a random solver problem.
type instance struct {
	targets []string
	tmpl    *Template
	target  *chemgraph.InteractionGraph
}

func randomInstance(seed int64) instance {
	r := rand.New(rand.NewSource(seed))
	nt, nc := 1+r.Intn(4), 1+r.Intn(5)
	var in instance
	for i := 0; i < nt; i++ {
		in.targets = append(in.targets, fmt.Sprintf("T%d", i))
	}
	in.target = chemgraph.NewInteractionGraph()
	for i, a := range in.targets {
		in.target.AddChain(a)
		for _, b := range in.targets[i+1:] {
			if r.Intn(2) == 0 {
				in.target.Link(a, b)
			}
		}
	}
	in.tmpl = &Template{Name: "t", Candidates: map[string][]string{}, Graph: chemgraph.NewInteractionGraph()}
	for c := 0; c < nc; c++ {
		name := fmt.Sprintf("C%d", c)
		in.tmpl.Chains = append(in.tmpl.Chains, name)
		in.tmpl.Graph.AddChain(name)
		for _, t := range in.targets {
			if r.Intn(3) > 0 {
				in.tmpl.Candidates[name] = append(in.tmpl.Candidates[name], t)
			}
		}
	}
	for i, a := range in.tmpl.Chains {
		for _, b := range in.tmpl.Chains[i+1:] {
			if r.Intn(3) > 0 {
				in.tmpl.Graph.Link(a, b)
			}
		}
	}
	return in
}

func (in instance) pairOK(a, b, ta, tb string) bool {
	if !in.target.HasRecord(a) || !in.target.HasRecord(b) {
		return false
	}
	return !in.target.Interact(a, b) || in.tmpl.Graph.Interact(ta, tb)
}

// bruteForce is true if any injective placement respecting candidates
// passes the pairwise check.
func (in instance) bruteForce() bool {
	var try func(i int, used []string) bool
	try = func(i int, used []string) bool {
		if i == len(in.targets) {
			return true
		}
		for _, c := range in.tmpl.Chains {
			if slices.Contains(used, c) || !slices.Contains(in.tmpl.Candidates[c], in.targets[i]) {
				continue
			}
			ok := true
			for j := 0; j < i; j++ {
				ok = ok && in.pairOK(in.targets[i], in.targets[j], c, used[j])
			}
			if ok && try(i+1, append(used, c)) {
				return true
			}
		}
		return false
	}
	return try(0, nil)
}

func TestSolveProperties(Te *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)

	properties.Property("assignments are injective, respect candidates and interactions", prop.ForAll(
		func(seed int64) bool {
			in := randomInstance(seed)
			A, _, err := Solve(in.targets, in.tmpl, in.target)
			if err != nil {
				return true
			}
			seen := map[string]bool{}
			for i, c := range A.Chains {
				if seen[c] || !slices.Contains(in.tmpl.Candidates[c], A.Targets[i]) {
					return false
				}
				seen[c] = true
				for j := 0; j < i; j++ {
					if in.target.Interact(A.Targets[i], A.Targets[j]) && !in.tmpl.Graph.Interact(c, A.Chains[j]) {
						return false
					}
				}
			}
			return len(A.Chains) == len(in.targets)
		},
		gen.Int64(),
	))

	properties.Property("an empty candidate list fails before any binding", prop.ForAll(
		func(seed int64) bool {
			in := randomInstance(seed)
			in.targets = append(in.targets, "orphan")
			A, stats, err := Solve(in.targets, in.tmpl, in.target)
			return A == nil && stats == Stats{} && errors.Is(err, ErrEmptyCandidates)
		},
		gen.Int64(),
	))

	properties.Property("the search is complete", prop.ForAll(
		func(seed int64) bool {
			in := randomInstance(seed)
			for _, t := range in.targets {
				if len(in.tmpl.CandidatesFor(t)) == 0 {
					return true
				}
			}
			_, _, err := Solve(in.targets, in.tmpl, in.target)
			return (err == nil) == in.bruteForce()
		},
		gen.Int64(),
	))
	properties.TestingRun(Te)
}
