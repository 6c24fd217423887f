/*
 * clash.go, part of gocomplex.
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

// Package clash finds chains in contact, and chains clashing, within a
// structure, using a k-d tree for the neighbour search.
package clash

import (
	"slices"

	chem "github.com/rmera/gocomplex"
	"github.com/rmera/gocomplex/v3"
	"gonum.org/v1/gonum/spatial/kdtree"
)

const (
	// InteractionCutoff is the default distance, in A, under which two
	// chains are considered to interact.
	InteractionCutoff = 5.0
	// ClashCutoff is the default distance, in A, under which two atoms of
	// different chains are considered to clash.
	ClashCutoff = 0.4
)

// point is an atom position, tagged with the atom's index and chain.
type point struct {
	x     [3]float64
	index int
	chain string
}

func (p point) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	return p.x[d] - c.(point).x[d]
}

func (p point) Dims() int { return 3 }

// Distance returns the squared distance, as kdtree expects.
func (p point) Distance(c kdtree.Comparable) float64 {
	q := c.(point)
	var d float64
	for i := range p.x {
		d += (p.x[i] - q.x[i]) * (p.x[i] - q.x[i])
	}
	return d
}

type points []point

func (p points) Index(i int) kdtree.Comparable         { return p[i] }
func (p points) Len() int                              { return len(p) }
func (p points) Pivot(d kdtree.Dim) int                { return plane{Dim: d, points: p}.Pivot() }
func (p points) Slice(start, end int) kdtree.Interface { return p[start:end] }

type plane struct {
	kdtree.Dim
	points
}

func (p plane) Less(i, j int) bool { return p.points[i].x[p.Dim] < p.points[j].x[p.Dim] }
func (p plane) Pivot() int         { return kdtree.Partition(p, kdtree.MedianOfMedians(p)) }
func (p plane) Swap(i, j int)      { p.points[i], p.points[j] = p.points[j], p.points[i] }
func (p plane) Slice(start, end int) kdtree.SortSlicer {
	p.points = p.points[start:end]
	return p
}

// Searcher answers "which atoms are within a distance of this one"
// queries over one set of coordinates.
type Searcher struct {
	tree *kdtree.Tree
	pts  []point // in atom order
}

// NewSearcher builds a Searcher for the atoms of mol placed at coords.
func NewSearcher(mol *chem.Molecule, coords *v3.Matrix) *Searcher {
	S := &Searcher{pts: make([]point, mol.Len())}
	for i, at := range mol.Atoms {
		r := coords.RawRowView(i)
		S.pts[i] = point{x: [3]float64{r[0], r[1], r[2]}, index: i, chain: at.Chain}
	}
	if len(S.pts) > 0 {
		//kdtree.New reorders what it gets.
		S.tree = kdtree.New(slices.Clone(points(S.pts)), false)
	}
	return S
}

// Within returns the indexes of the atoms within cutoff of atom i,
// excluding i itself.
func (S *Searcher) Within(i int, cutoff float64) []int {
	if S.tree == nil {
		return nil
	}
	keep := kdtree.NewDistKeeper(cutoff * cutoff)
	S.tree.NearestSet(keep, S.pts[i])
	var ret []int
	for _, c := range keep.Heap {
		//the heap keeps a sentinel with a nil Comparable.
		if c.Comparable == nil {
			continue
		}
		if j := c.Comparable.(point).index; j != i {
			ret = append(ret, j)
		}
	}
	return ret
}

// Interactions returns, for every chain of mol, the sorted labels of the
// other chains with at least one atom within cutoff of one of its atoms.
// Chains without partners map to an empty slice.
func Interactions(mol *chem.Molecule, coords *v3.Matrix, cutoff float64) map[string][]string {
	S := NewSearcher(mol, coords)
	ret := make(map[string][]string)
	for _, c := range mol.Chains() {
		ret[c] = []string{}
	}
	for i, p := range S.pts {
		for _, j := range S.Within(i, cutoff) {
			other := S.pts[j].chain
			if other != p.chain && !slices.Contains(ret[p.chain], other) {
				ret[p.chain] = append(ret[p.chain], other)
			}
		}
	}
	for _, v := range ret {
		slices.Sort(v)
	}
	return ret
}

// FirstClash returns the first pair of atoms, in atom order, that belong to
// different chains and are within cutoff of each other. Every chain is
// checked.
func FirstClash(mol *chem.Molecule, coords *v3.Matrix, cutoff float64) (a, b int, found bool) {
	S := NewSearcher(mol, coords)
	for i, p := range S.pts {
		for _, j := range S.Within(i, cutoff) {
			if S.pts[j].chain != p.chain {
				return i, j, true
			}
		}
	}
	return -1, -1, false
}

// Clash is true if any atom of mol is within cutoff of an atom belonging
// to a different chain.
func Clash(mol *chem.Molecule, coords *v3.Matrix, cutoff float64) bool {
	_, _, found := FirstClash(mol, coords, cutoff)
	return found
}

// LowestDist returns the smallest distance between a vector in test and
// one in other, and the indexes of that pair. Brute force.
func LowestDist(test, other *v3.Matrix) (dist float64, indexes [2]int) {
	dist = -1
	for i := 0; i < test.NVecs(); i++ {
		for j := 0; j < other.NVecs(); j++ {
			if dt := test.Distance(i, other, j); dist < 0 || dt < dist {
				dist = dt
				indexes = [2]int{i, j}
			}
		}
	}
	return
}

// Closest returns the smallest distance between atoms of different chains
// of mol, and -1 if mol has less than two chains.
func Closest(mol *chem.Molecule, coords *v3.Matrix) float64 {
	var sets []*v3.Matrix
	for _, c := range mol.Chains() {
		idx := mol.ChainIndexes(c)
		m := v3.Zeros(len(idx))
		m.SomeVecs(coords, idx)
		sets = append(sets, m)
	}
	closest := -1.0
	for i := range sets {
		for j := i + 1; j < len(sets); j++ {
			if d, _ := LowestDist(sets[i], sets[j]); closest < 0 || d < closest {
				closest = d
			}
		}
	}
	return closest
}
