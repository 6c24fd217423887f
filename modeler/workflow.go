/*
 * workflow.go, part of gocomplex.
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package modeler

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/google/uuid"
	chem "github.com/rmera/gocomplex"
	"github.com/rmera/gocomplex/assign"
	"github.com/rmera/gocomplex/chemgraph"
	"github.com/rmera/gocomplex/chemplot"
	"github.com/rmera/gocomplex/clash"
	"github.com/rmera/gocomplex/msa"
	"github.com/rmera/gocomplex/runner"
	"github.com/rmera/gocomplex/search"
	"golang.org/x/sync/errgroup"
)

// ErrNoInput is returned by Run when no structure is given.
var ErrNoInput = errors.New("no input structures")

// targetSet holds the target chains of a run.
type targetSet struct {
	all    []*chem.SplitChain // every chain of every input
	labels []string           // distinct labels, first occurrence first
	byID   map[string]*chem.SplitChain
	graph  *chemgraph.InteractionGraph
}

func (T *targetSet) fasta() []chem.FastaEntry {
	ret := make([]chem.FastaEntry, 0, len(T.labels))
	for _, l := range T.labels {
		sc := T.byID[l]
		ret = append(ret, chem.FastaEntry{Name: sc.ID.String(), Seq: sc.Seq})
	}
	return ret
}

// template is a downloaded template, split and aligned against the
// targets.
type template struct {
	id         string
	mol        *chem.Molecule
	chains     []string
	graph      *chemgraph.InteractionGraph
	candidates map[string][]string
	lastResort []string
}

// Run models the complex formed by the chains of the input structures.
// Every input holds chains that interact with each other. Only problems
// with the inputs themselves, the working directory, or ctx are returned
// as errors: a template that fails at any step is recorded in its Result
// and the others go on.
func (M *Modeler) Run(ctx context.Context, inputs []string) (*Report, error) {
	if len(inputs) == 0 {
		return nil, ErrNoInput
	}
	rep := &Report{RunID: uuid.NewString(), SearchErrors: make(map[string]error)}
	M.log.Printf("run %s: %d input structures", rep.RunID, len(inputs))
	ctx = runner.WithWarnf(ctx, func(format string, args ...any) {
		M.log.Printf("WARN: run %s: "+format, append([]any{rep.RunID}, args...)...)
	})
	if err := os.MkdirAll(M.opts.WorkDir, 0o755); err != nil {
		return nil, err
	}
	targets, err := M.readTargets(inputs)
	if err != nil {
		return nil, err
	}
	rep.Targets = slices.Clone(targets.labels)

	best := M.search(ctx, targets, rep)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rep.Templates = search.SelectTemplates(best)
	if len(rep.Templates) == 0 {
		M.log.Printf("WARN: run %s: no templates found", rep.RunID)
		return rep, nil
	}
	M.log.Printf("run %s: templates %s", rep.RunID, strings.Join(rep.Templates, " "))

	results := make([]*Result, len(rep.Templates))
	prepared := make([]*template, len(rep.Templates))
	M.parallel(len(rep.Templates), func(i int) {
		results[i] = &Result{Template: rep.Templates[i]}
		prepared[i] = M.prepare(ctx, rep.Templates[i], targets, results[i])
	})
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	//the model is filled in one pass, and only read afterwards.
	model := assign.NewModel(targets.graph)
	for i, t := range prepared {
		if results[i].Err != nil {
			prepared[i] = nil
			continue
		}
		tm := model.AddTemplate(t.id, t.chains, t.graph)
		for _, c := range t.chains {
			tm.SetCandidates(c, t.candidates[c])
		}
	}

	M.parallel(len(rep.Templates), func(i int) {
		if prepared[i] != nil {
			M.build(model, prepared[i], targets, results[i])
		}
	})
	rep.Results = results
	for _, r := range results {
		if r.Err != nil {
			M.log.Printf("WARN: run %s: template %s failed at %s: %v", rep.RunID, r.Template, r.Stage, r.Err)
		}
	}
	if M.opts.Plot != "" {
		if err := M.plot(rep); err != nil {
			M.log.Printf("WARN: run %s: plot: %v", rep.RunID, err)
		}
	}
	return rep, nil
}

// parallel calls f for 0..n-1 on at most Cpus goroutines.
func (M *Modeler) parallel(n int, f func(i int)) {
	var g errgroup.Group
	g.SetLimit(M.opts.Cpus)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			f(i)
			return nil
		})
	}
	g.Wait()
}

// readTargets reads and splits the inputs. All protein chains of one input
// are taken to interact with each other. Chains without a protein
// sequence, such as ligands or waters, are not targets.
func (M *Modeler) readTargets(inputs []string) (*targetSet, error) {
	T := &targetSet{byID: make(map[string]*chem.SplitChain), graph: chemgraph.NewInteractionGraph()}
	for _, in := range inputs {
		mol, err := chem.PDBFileRead(in)
		if err != nil {
			return nil, err
		}
		chains, err := chem.SplitChains(mol, M.opts.WorkDir)
		if err != nil {
			return nil, err
		}
		var protein []string
		for _, sc := range chains {
			if sc.Seq == "" {
				M.log.Printf("WARN: target chain %s has no protein sequence, skipped", sc.ID)
				continue
			}
			protein = append(protein, sc.ID.Chain)
			T.all = append(T.all, sc)
			if _, ok := T.byID[sc.ID.Chain]; ok {
				continue
			}
			T.byID[sc.ID.Chain] = sc
			T.labels = append(T.labels, sc.ID.Chain)
		}
		if len(protein) == 0 {
			return nil, fmt.Errorf("%s: no protein chains: %w", in, chem.ErrNoChain)
		}
		T.graph.LinkAll(protein)
	}
	return T, nil
}

// search looks for templates for every target chain, and returns the best
// hits of each.
func (M *Modeler) search(ctx context.Context, T *targetSet, rep *Report) [][]search.Hit {
	best := make([][]search.Hit, len(T.all))
	errs := make([]error, len(T.all))
	M.parallel(len(T.all), func(i int) {
		best[i], errs[i] = M.searchChain(ctx, T.all[i])
	})
	for i, err := range errs {
		if err != nil {
			id := T.all[i].ID.String()
			rep.SearchErrors[id] = err
			M.log.Printf("WARN: run %s: search for %s failed: %v", rep.RunID, id, err)
		}
	}
	return best
}

func (M *Modeler) searchChain(ctx context.Context, sc *chem.SplitChain) ([]search.Hit, error) {
	report, err := M.searcher.Search(ctx, strings.TrimSuffix(sc.Fasta, ".fa"))
	if err != nil {
		return nil, err
	}
	hits, err := search.ParseReportFile(report)
	if err != nil {
		return nil, err
	}
	if len(hits) == 0 {
		M.log.Printf("WARN: no significant hits for %s", sc.ID)
	}
	return search.BestHits(hits), nil
}

// recovered turns a panic into the error of res, which keeps the stage it
// happened at.
func recovered(res *Result) {
	if r := recover(); r != nil {
		res.Err = fmt.Errorf("panic: %v", r)
	}
}

// prepare gets template id, splits it and aligns each of its chains
// against the targets. If res ends up with an error, the template must not
// be used.
func (M *Modeler) prepare(ctx context.Context, id string, T *targetSet, res *Result) *template {
	defer recovered(res)
	res.Stage = StageFetch
	fail := func(err error) *template {
		res.Err = err
		return nil
	}
	path, err := M.fetcher.Fetch(ctx, id, M.opts.WorkDir)
	if err != nil {
		return fail(err)
	}
	res.Stage = StageRead
	mol, err := chem.PDBFileRead(path)
	if err != nil {
		return fail(err)
	}
	mol.Name = id
	split, err := chem.SplitChains(mol, M.opts.WorkDir)
	if err != nil {
		return fail(err)
	}
	t := &template{
		id:         id,
		mol:        mol,
		graph:      chemgraph.FromContacts(clash.Interactions(mol, mol.Coords[0], M.opts.InteractionCutoff)),
		candidates: make(map[string][]string),
	}

	res.Stage = StageAlign
	targets := T.fasta()
	for _, sc := range split {
		if sc.Seq == "" {
			M.log.Printf("WARN: template chain %s has no protein sequence, skipped", sc.ID)
			continue
		}
		cands, last, err := M.candidates(ctx, targets, sc, T)
		if err != nil {
			return fail(fmt.Errorf("%s: %w", sc.ID, err))
		}
		if last {
			M.log.Printf("WARN: chain %s only matched at the lowest threshold, the template may be unreliable", sc.ID)
			t.lastResort = append(t.lastResort, sc.ID.Chain)
		}
		t.chains = append(t.chains, sc.ID.Chain)
		t.candidates[sc.ID.Chain] = cands
	}
	res.Candidates = t.candidates
	res.LastResort = t.lastResort
	return t
}

// candidates aligns the target sequences with one template chain and
// returns the labels of the target chains that match it.
func (M *Modeler) candidates(ctx context.Context, targets []chem.FastaEntry, sc *chem.SplitChain, T *targetSet) ([]string, bool, error) {
	fasta, err := msa.WriteJoinedFasta(M.opts.WorkDir, targets, chem.FastaEntry{Name: sc.ID.String(), Seq: sc.Seq})
	if err != nil {
		return nil, false, err
	}
	scores, err := M.aligner.Align(ctx, fasta)
	if err != nil {
		return nil, false, err
	}
	report, err := msa.ParseScoresFile(scores)
	if err != nil {
		return nil, false, err
	}
	cr, err := report.Cascade(sc.ID.String(), M.opts.Thresholds)
	if err != nil {
		return nil, false, err
	}
	ret := []string{}
	for _, m := range cr.Matches {
		label := chem.ChainOf(m)
		if _, ok := T.byID[label]; ok && !slices.Contains(ret, label) {
			ret = append(ret, label)
		}
	}
	return ret, cr.LastResort, nil
}

// build assigns the targets onto a prepared template, superimposes them
// and checks the model.
func (M *Modeler) build(model *assign.Model, t *template, T *targetSet, res *Result) {
	defer recovered(res)
	res.Stage = StageAssign
	asg, stats, err := model.Solve(t.id, T.labels)
	res.Stats = stats
	if err != nil {
		res.Err = err
		return
	}
	res.Assignment = asg

	res.Stage = StageSuperpose
	chains, file, err := Assemble(t.mol, asg, T.byID, M.opts.WindowStart, M.opts.WorkDir)
	if err != nil {
		res.Err = err
		return
	}
	res.Chains = chains
	res.Model = file

	res.Stage = StageValidate
	clashes, closest, err := CheckModel(file, M.opts.ClashCutoff)
	if err != nil {
		res.Err = err
		return
	}
	res.Clash = clashes
	res.Closest = closest
	res.Stage = StageDone
}

// plot draws the per-chain RMSD of every model built.
func (M *Modeler) plot(rep *Report) error {
	var names []string
	var built []*Result
	for _, r := range rep.Results {
		if len(r.Chains) > 0 {
			names = append(names, r.Template)
			built = append(built, r)
		}
	}
	if len(built) == 0 {
		return fmt.Errorf("no models to plot")
	}
	values := make([][]float64, len(rep.Targets))
	for s, target := range rep.Targets {
		values[s] = make([]float64, len(built))
		for t, r := range built {
			values[s][t] = r.RMSDOf(target)
		}
	}
	return chemplot.RMSDBars("Run "+rep.RunID, names, rep.Targets, values, M.opts.Plot)
}
