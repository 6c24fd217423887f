/*
 * graph.go, part of gocomplex.
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

// Package chemgraph represents which chains of a set of structures are in
// contact, as gonum undirected graphs keyed by chain label.
package chemgraph

import (
	"slices"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
)

// InteractionGraph is an undirected graph where nodes are chains and
// edges join chains known to interact.
type InteractionGraph struct {
	g      *simple.UndirectedGraph
	ids    map[string]int64
	labels []string // node ID -> label
}

// NewInteractionGraph returns an empty graph.
func NewInteractionGraph() *InteractionGraph {
	return &InteractionGraph{g: simple.NewUndirectedGraph(), ids: make(map[string]int64)}
}

// FromContacts builds a graph from a chain -> partners map, such as the one
// returned by clash.Interactions. Chains are added in sorted order, so the
// node IDs do not depend on map iteration.
func FromContacts(contacts map[string][]string) *InteractionGraph {
	G := NewInteractionGraph()
	keys := make([]string, 0, len(contacts))
	for k := range contacts {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		G.AddChain(k)
		for _, p := range contacts[k] {
			G.Link(k, p)
		}
	}
	return G
}

// AddChain adds a chain if it is not yet in the graph, and returns its
// node ID.
func (G *InteractionGraph) AddChain(label string) int64 {
	if id, ok := G.ids[label]; ok {
		return id
	}
	id := int64(len(G.labels))
	G.g.AddNode(simple.Node(id))
	G.ids[label] = id
	G.labels = append(G.labels, label)
	return id
}

// Link records that chains a and b interact. Self-links are ignored.
func (G *InteractionGraph) Link(a, b string) {
	if a == b {
		G.AddChain(a)
		return
	}
	ia, ib := G.AddChain(a), G.AddChain(b)
	if !G.g.HasEdgeBetween(ia, ib) {
		G.g.SetEdge(G.g.NewEdge(simple.Node(ia), simple.Node(ib)))
	}
}

// LinkAll links every pair of the given chains.
func (G *InteractionGraph) LinkAll(labels []string) {
	for i, a := range labels {
		G.AddChain(a)
		for _, b := range labels[i+1:] {
			G.Link(a, b)
		}
	}
}

// Interact is true if a and b are linked, in either direction.
func (G *InteractionGraph) Interact(a, b string) bool {
	ia, oka := G.ids[a]
	ib, okb := G.ids[b]
	return oka && okb && G.g.HasEdgeBetween(ia, ib)
}

// HasRecord is true if there is interaction evidence for chain a, that is,
// a is linked to at least one other chain.
func (G *InteractionGraph) HasRecord(a string) bool {
	id, ok := G.ids[a]
	return ok && G.g.From(id).Len() > 0
}

// Partners returns the sorted labels of the chains linked to a.
func (G *InteractionGraph) Partners(a string) []string {
	id, ok := G.ids[a]
	if !ok {
		return nil
	}
	var ret []string
	for _, n := range graph.NodesOf(G.g.From(id)) {
		ret = append(ret, G.labels[n.ID()])
	}
	slices.Sort(ret)
	return ret
}

// Chains returns the chain labels in the order they were added.
func (G *InteractionGraph) Chains() []string {
	return slices.Clone(G.labels)
}

// Graph exposes the underlying gonum graph. Node IDs index Label.
func (G *InteractionGraph) Graph() graph.Undirected {
	return G.g
}

// Label returns the chain label of the node with the given ID.
func (G *InteractionGraph) Label(id int64) string {
	return G.labels[id]
}
