/*
 * solver.go, part of gocomplex.
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

package assign

import (
	"errors"
	"fmt"
	"slices"

	"github.com/rmera/gocomplex/chemgraph"
)

var (
	// ErrEmptyCandidates is returned, before any binding is tried, when a
	// target chain has no candidate template chain.
	ErrEmptyCandidates = errors.New("target chain without candidates")
	// ErrNoAssignment is returned when every binding has been tried and
	// none is consistent.
	ErrNoAssignment = errors.New("no consistent assignment")
	// ErrUnknownTemplate is returned when solving for a template the model
	// does not have.
	ErrUnknownTemplate = errors.New("unknown template")
)

// Stats describes the work done by a search.
type Stats struct {
	Tried      int // bindings attempted
	Rejected   int // bindings that failed the consistency check
	Backtracks int // consistent bindings undone because nothing fit after them
}

// Assignment places every target chain on one template chain.
type Assignment struct {
	Template string
	Targets  []string
	Chains   []string // Chains[i] is the template chain of Targets[i]
}

// Of returns the template chain target was placed on.
func (A *Assignment) Of(target string) (string, bool) {
	for i, t := range A.Targets {
		if t == target {
			return A.Chains[i], true
		}
	}
	return "", false
}

// ByTemplateChain returns the template chain -> target chain mapping.
func (A *Assignment) ByTemplateChain() map[string]string {
	ret := make(map[string]string, len(A.Chains))
	for i, c := range A.Chains {
		ret[c] = A.Targets[i]
	}
	return ret
}

// Solve assigns targets onto the chains of the named template.
func (M *Model) Solve(template string, targets []string) (*Assignment, Stats, error) {
	T, ok := M.templates[template]
	if !ok {
		return nil, Stats{}, fmt.Errorf("%w: %s", ErrUnknownTemplate, template)
	}
	return Solve(targets, T, M.Target)
}

// solver holds the search state. Template chains and targets are referred
// to by index; bound[c] is the target placed on template chain c, placed[t]
// the template chain target t is on, -1 meaning none.
type solver struct {
	targets []string
	tmpl    *Template
	target  *chemgraph.InteractionGraph
	cands   [][]int
	bound   []int
	placed  []int
	stats   Stats
}

// Solve runs a depth-first search for an injective placement of targets,
// in order, onto the chains of tmpl. Candidates for each target are tried
// in template chain order and the first complete placement is returned.
//
// A new binding of target A is checked against every target B placed
// before it. Both A and B must have interaction evidence in target, that
// is, be linked to some chain. If A and B interact, their template chains
// must interact in tmpl.Graph. Template chains interacting when the
// targets do not is allowed.
func Solve(targets []string, tmpl *Template, target *chemgraph.InteractionGraph) (*Assignment, Stats, error) {
	S := &solver{
		targets: targets,
		tmpl:    tmpl,
		target:  target,
		cands:   make([][]int, len(targets)),
		bound:   make([]int, len(tmpl.Chains)),
		placed:  make([]int, len(targets)),
	}
	for i, t := range targets {
		for c, name := range tmpl.Chains {
			if slices.Contains(tmpl.Candidates[name], t) {
				S.cands[i] = append(S.cands[i], c)
			}
		}
		if len(S.cands[i]) == 0 {
			return nil, Stats{}, fmt.Errorf("%w: %s on template %s", ErrEmptyCandidates, t, tmpl.Name)
		}
		S.placed[i] = -1
	}
	for c := range S.bound {
		S.bound[c] = -1
	}
	if !S.place(0) {
		return nil, S.stats, fmt.Errorf("%w: template %s", ErrNoAssignment, tmpl.Name)
	}
	A := &Assignment{Template: tmpl.Name, Targets: append([]string(nil), targets...), Chains: make([]string, len(targets))}
	for i, c := range S.placed {
		A.Chains[i] = tmpl.Chains[c]
	}
	return A, S.stats, nil
}

func (S *solver) place(i int) bool {
	if i == len(S.targets) {
		return true
	}
	for _, c := range S.cands[i] {
		if S.bound[c] >= 0 {
			continue
		}
		S.stats.Tried++
		S.bind(i, c)
		if !S.consistent(i) {
			S.stats.Rejected++
			S.unbind(i)
			continue
		}
		if S.place(i + 1) {
			return true
		}
		S.stats.Backtracks++
		S.unbind(i)
	}
	return false
}

func (S *solver) bind(i, c int) {
	S.bound[c] = i
	S.placed[i] = c
}

func (S *solver) unbind(i int) {
	S.bound[S.placed[i]] = -1
	S.placed[i] = -1
}

// consistent checks the binding of target i against all earlier ones.
func (S *solver) consistent(i int) bool {
	a := S.targets[i]
	ta := S.tmpl.Chains[S.placed[i]]
	for j := 0; j < i; j++ {
		b := S.targets[j]
		if !S.target.HasRecord(a) || !S.target.HasRecord(b) {
			return false
		}
		if S.target.Interact(a, b) && !S.tmpl.Graph.Interact(ta, S.tmpl.Chains[S.placed[j]]) {
			return false
		}
	}
	return true
}
