package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rmera/gocomplex/assign"
	"github.com/rmera/gocomplex/modeler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(Te *testing.T, args ...string) cliArgs {
	Te.Helper()
	a, err := parseArgs(newFlagSet("test"), args)
	require.NoError(Te, err)
	return a
}

func TestExpandInputs(Te *testing.T) {
	got := expandInputs([]string{"-i", "AB.pdb", "BC.pdb", "-d", "db", "--input", "CD.pdb"})
	assert.Equal(Te, []string{"-i", "AB.pdb", "-i", "BC.pdb", "-d", "db", "--input", "CD.pdb"}, got)
	assert.Equal(Te, []string{"-d", "db", "--", "-i", "x"}, expandInputs([]string{"-d", "db", "--", "-i", "x"}))
	assert.Equal(Te, []string{"-i"}, expandInputs([]string{"-i"}))

	got = expandInputs([]string{"--input=AB.pdb", "BC.pdb", "-d", "db"})
	assert.Equal(Te, []string{"--input=AB.pdb", "--input", "BC.pdb", "-d", "db"}, got)
	assert.Equal(Te, []string{"-d=db", "x.pdb"}, expandInputs([]string{"-d=db", "x.pdb"}))
}

func TestParseArgs(Te *testing.T) {
	a := mustParse(Te, "-i", "AB.pdb", "BC.pdb", "-d", "/data/pdbaa")
	assert.Equal(Te, []string{"AB.pdb", "BC.pdb"}, a.Inputs)
	assert.Equal(Te, "/data/pdbaa", a.Database)

	a = mustParse(Te, "--input=AB.pdb", "BC.pdb", "-d", "db")
	assert.Equal(Te, []string{"AB.pdb", "BC.pdb"}, a.Inputs)
	assert.Equal(Te, "db", a.Database)

	a = mustParse(Te, "--database", "db", "--input", "AB.pdb", "--input", "BC.pdb", "-w", "out", "--plot", "rmsd.png")
	assert.Equal(Te, []string{"AB.pdb", "BC.pdb"}, a.Inputs)
	assert.Equal(Te, "out", a.WorkDir)

	O, err := a.options()
	require.NoError(Te, err)
	assert.Equal(Te, "db", O.Database)
	assert.Equal(Te, "out", O.WorkDir)
	assert.Equal(Te, "rmsd.png", O.Plot)
}

func TestParseArgsErrors(Te *testing.T) {
	_, err := parseArgs(newFlagSet("test"), []string{"-d", "db"})
	assert.Error(Te, err, "no inputs")
	_, err = parseArgs(newFlagSet("test"), []string{"-i", "a.pdb", "--cpus", "-1"})
	assert.Error(Te, err)

	a := mustParse(Te, "-i", "a.pdb")
	_, err = a.options()
	assert.Error(Te, err, "no database")
}

func TestConfigFile(Te *testing.T) {
	dir := Te.TempDir()
	conf := filepath.Join(dir, "gocomplex.yaml")
	require.NoError(Te, os.WriteFile(conf, []byte("database: fromfile\nclustalw: /opt/clustalw2\ncpus: 2\n"), 0o644))

	O, err := mustParse(Te, "-i", "a.pdb", "-c", conf).options()
	require.NoError(Te, err)
	assert.Equal(Te, "fromfile", O.Database)
	assert.Equal(Te, "/opt/clustalw2", O.ClustalW)
	assert.Equal(Te, 2, O.Cpus)

	O, err = mustParse(Te, "-i", "a.pdb", "-c", conf, "-d", "flag", "--cpus", "5").options()
	require.NoError(Te, err)
	assert.Equal(Te, "flag", O.Database, "the command line wins")
	assert.Equal(Te, 5, O.Cpus)
}

func TestRunUsage(Te *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(Te, 2, run(context.Background(), []string{"-i", "a.pdb"}, &stdout, &stderr))
	assert.Contains(Te, stderr.String(), "--database is required")

	stderr.Reset()
	assert.Equal(Te, 2, run(context.Background(), []string{"-x"}, &stdout, &stderr))
	assert.Equal(Te, 0, run(context.Background(), []string{"-h"}, &stdout, &stderr))
	assert.Contains(Te, stderr.String(), "Usage of gocomplex")

	stderr.Reset()
	missing := filepath.Join(Te.TempDir(), "missing.pdb")
	assert.Equal(Te, 1, run(context.Background(), []string{"-i", missing, "-d", "db", "-w", Te.TempDir()}, &stdout, &stderr))
	assert.Empty(Te, stdout.String())
}

func TestRender(Te *testing.T) {
	rep := &modeler.Report{
		RunID:        "run1",
		Targets:      []string{"A", "B"},
		SearchErrors: map[string]error{"BC_B": errors.New("boom")},
		Results: []*modeler.Result{
			{
				Template:   "1abc",
				Stage:      modeler.StageDone,
				Assignment: &assign.Assignment{Template: "1abc", Targets: []string{"A", "B"}, Chains: []string{"X", "Y"}},
				Chains:     []modeler.ChainModel{{Target: "A", RMSD: 0.5}, {Target: "B", RMSD: 1.5}},
				Model:      "1abc_0_aligned.pdb",
				Closest:    3.25,
			},
			{Template: "2bad", Stage: modeler.StageFetch, Err: errors.New("entry not found")},
		},
	}
	out := render(rep)
	assert.Contains(Te, out, "Run run1, target chains: A B")
	assert.Contains(Te, out, "Search failed for BC_B: boom")
	assert.Contains(Te, out, "A>X B>Y")
	assert.Contains(Te, out, "1.000")
	assert.Contains(Te, out, "3.25")
	assert.Contains(Te, out, "failed at fetch: entry not found")
	assert.Contains(Te, out, "Models without clashes:\n  1abc_0_aligned.pdb\n")

	out = render(&modeler.Report{RunID: "run2"})
	assert.Contains(Te, out, "No templates found.")
}
