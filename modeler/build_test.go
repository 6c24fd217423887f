package modeler

import (
	"bytes"
	"context"
	"errors"
	"log"
	"testing"

	chem "github.com/rmera/gocomplex"
	"github.com/rmera/gocomplex/assign"
	"github.com/rmera/gocomplex/chemgraph"
	"github.com/rmera/gocomplex/internal/synth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A template that lost its coordinates makes the superposition panic. The
// panic must end up in the Result, not take the run down.
func TestBuildRecoversPanics(Te *testing.T) {
	opts := DefaultOptions()
	opts.Database = "pdbaa"
	opts.WorkDir = Te.TempDir()
	var logs bytes.Buffer
	opts.Logger = log.New(&logs, "", 0)
	M, err := New(opts)
	require.NoError(Te, err)

	target := synth.Molecule("AB", synth.Chain{Label: "A", Seq: "MKTAYIAKQRQI"})
	a, err := target.Chain("A")
	require.NoError(Te, err)
	sc := &chem.SplitChain{ID: chem.ChainID{Name: "AB", Chain: "A"}, Mol: a, Seq: "MKTAYIAKQRQI"}
	T := &targetSet{
		all:    []*chem.SplitChain{sc},
		labels: []string{"A"},
		byID:   map[string]*chem.SplitChain{"A": sc},
		graph:  chemgraph.NewInteractionGraph(),
	}
	T.graph.AddChain("A")

	tg := chemgraph.NewInteractionGraph()
	tg.AddChain("X")
	t := &template{id: "1tmp", mol: &chem.Molecule{Name: "1tmp"}, chains: []string{"X"}, graph: tg}
	model := assign.NewModel(T.graph)
	model.AddTemplate(t.id, t.chains, t.graph).SetCandidates("X", []string{"A"})

	res := &Result{Template: t.id}
	require.NotPanics(Te, func() { M.build(model, t, T, res) })
	assert.Equal(Te, StageSuperpose, res.Stage)
	require.Error(Te, res.Err)
	assert.Contains(Te, res.Err.Error(), "panic")
	assert.NotNil(Te, res.Assignment)
	assert.Empty(Te, res.Chains)
}

type panicFetch struct{}

func (panicFetch) Fetch(ctx context.Context, id, dir string) (string, error) {
	panic(errors.New("corrupt archive"))
}

func TestPrepareRecoversPanics(Te *testing.T) {
	opts := DefaultOptions()
	opts.Database = "pdbaa"
	opts.WorkDir = Te.TempDir()
	M, err := New(opts)
	require.NoError(Te, err)
	M.SetFetcher(panicFetch{})

	res := &Result{Template: "1tmp"}
	var t *template
	require.NotPanics(Te, func() { t = M.prepare(context.Background(), "1tmp", &targetSet{}, res) })
	assert.Nil(Te, t)
	assert.Equal(Te, StageFetch, res.Stage)
	assert.EqualError(Te, res.Err, "panic: corrupt archive")
}
