/*
 * model.go, part of gocomplex.
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

// Package assign places target chains onto the chains of template
// structures, so that chains known to interact in the target end up on
// template chains that interact too.
package assign

import (
	"slices"

	"github.com/rmera/gocomplex/chemgraph"
)

// Template is what the model knows about one template structure.
type Template struct {
	Name string
	// Chains are the template chain labels, in file order.
	Chains []string
	// Candidates maps a template chain label to the target chain labels
	// whose sequences align to it well enough.
	Candidates map[string][]string
	// Graph tells which template chains are in contact.
	Graph *chemgraph.InteractionGraph
}

// SetCandidates records the target chains that may go onto chain.
func (T *Template) SetCandidates(chain string, targets []string) {
	if !slices.Contains(T.Chains, chain) {
		T.Chains = append(T.Chains, chain)
	}
	T.Candidates[chain] = slices.Clone(targets)
}

// CandidatesFor returns the template chains, in template order, whose
// candidate list contains target.
func (T *Template) CandidatesFor(target string) []string {
	var ret []string
	for _, c := range T.Chains {
		if slices.Contains(T.Candidates[c], target) {
			ret = append(ret, c)
		}
	}
	return ret
}

// Model correlates the target interaction graph, shared by all templates,
// with what is known about every template. It is filled while templates
// are aligned and only read while assigning chains.
type Model struct {
	Target    *chemgraph.InteractionGraph
	templates map[string]*Template
	order     []string
}

// NewModel returns an empty model around the target interaction graph.
func NewModel(target *chemgraph.InteractionGraph) *Model {
	return &Model{Target: target, templates: make(map[string]*Template)}
}

// AddTemplate adds a template with the given chains and interaction
// graph, or returns the existing one with that name.
func (M *Model) AddTemplate(name string, chains []string, graph *chemgraph.InteractionGraph) *Template {
	if T, ok := M.templates[name]; ok {
		return T
	}
	if graph == nil {
		graph = chemgraph.NewInteractionGraph()
	}
	T := &Template{Name: name, Chains: slices.Clone(chains), Candidates: make(map[string][]string), Graph: graph}
	M.templates[name] = T
	M.order = append(M.order, name)
	return T
}

// Template returns the template called name.
func (M *Model) Template(name string) (*Template, bool) {
	T, ok := M.templates[name]
	return T, ok
}

// Templates returns the template names in the order they were added.
func (M *Model) Templates() []string {
	return slices.Clone(M.order)
}
