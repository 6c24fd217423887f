/*
 * chem.go, part of gocomplex.
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

package chem

import (
	"slices"

	"github.com/rmera/gocomplex/v3"
)

// Atom contains the atom data read from a structure except for the
// coordinates, which are kept in a v3.Matrix in the Molecule.
type Atom struct {
	Name      string
	ID        int
	Molname   string // residue name
	Molname1  byte   // one-letter residue name, 0 if not an amino acid
	Molid     int    // residue number
	ICode     byte
	AltLoc    byte
	Chain     string
	Symbol    string
	Occupancy float64
	Bfactor   float64
	Het       bool // is hetatm in the pdb file?
}

// Copy returns a copy of the Atom.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic("Attempted to copy a nil atom")
	}
	n := *A
	return &n
}

// Molecule is a structure: a named, ordered set of atoms with one coordinate
// matrix per model. Chains keep the order in which they appear in the file.
type Molecule struct {
	Name   string
	Atoms  []*Atom
	Coords []*v3.Matrix
}

// NewMolecule builds a Molecule, checking that every coordinate set has one
// vector per atom.
func NewMolecule(name string, atoms []*Atom, coords []*v3.Matrix) (*Molecule, error) {
	if len(atoms) == 0 {
		return nil, newError("NewMolecule", name, ErrNoAtoms, "structure %s has no atoms", name)
	}
	for i, c := range coords {
		if c.NVecs() != len(atoms) {
			return nil, newError("NewMolecule", name, ErrMismatch, "model %d has %d coordinates for %d atoms", i, c.NVecs(), len(atoms))
		}
	}
	return &Molecule{Name: name, Atoms: atoms, Coords: coords}, nil
}

// Len returns the number of atoms in M.
func (M *Molecule) Len() int {
	return len(M.Atoms)
}

// Atom returns the ith atom.
func (M *Molecule) Atom(i int) *Atom {
	return M.Atoms[i]
}

// Copy returns a deep copy of M.
func (M *Molecule) Copy() *Molecule {
	ret := &Molecule{Name: M.Name, Atoms: make([]*Atom, len(M.Atoms)), Coords: make([]*v3.Matrix, len(M.Coords))}
	for i, a := range M.Atoms {
		ret.Atoms[i] = a.Copy()
	}
	for i, c := range M.Coords {
		n := v3.Zeros(c.NVecs())
		n.Copy(c.Dense)
		ret.Coords[i] = n
	}
	return ret
}

// Chains returns the chain labels of M in file order.
func (M *Molecule) Chains() []string {
	var ret []string
	for _, a := range M.Atoms {
		if !slices.Contains(ret, a.Chain) {
			ret = append(ret, a.Chain)
		}
	}
	return ret
}

// ChainIndexes returns the indexes of the atoms belonging to chain.
func (M *Molecule) ChainIndexes(chain string) []int {
	var ret []int
	for i, a := range M.Atoms {
		if a.Chain == chain {
			ret = append(ret, i)
		}
	}
	return ret
}

// Chain returns a new Molecule, named after M, containing deep copies of the
// atoms and coordinates of one chain of M.
func (M *Molecule) Chain(chain string) (*Molecule, error) {
	return M.Subset(M.Name, M.ChainIndexes(chain))
}

// Subset returns a new Molecule named name with deep copies of the atoms
// in indexes, for every model.
func (M *Molecule) Subset(name string, indexes []int) (*Molecule, error) {
	if len(indexes) == 0 {
		return nil, newError("Molecule.Subset", M.Name, ErrNoAtoms, "empty selection")
	}
	ret := &Molecule{Name: name}
	for _, i := range indexes {
		ret.Atoms = append(ret.Atoms, M.Atoms[i].Copy())
	}
	for _, c := range M.Coords {
		n := v3.Zeros(len(indexes))
		n.SomeVecs(c, indexes)
		ret.Coords = append(ret.Coords, n)
	}
	return ret, nil
}

// CAlphas returns the indexes of the alpha carbons of chain with residue
// numbers in the window [lo, hi).
func (M *Molecule) CAlphas(chain string, lo, hi int) []int {
	var ret []int
	for i, a := range M.Atoms {
		if a.Chain == chain && a.Name == "CA" && !a.Het && a.Molid >= lo && a.Molid < hi {
			ret = append(ret, i)
		}
	}
	return ret
}

// Join returns a molecule named name with the atoms and first-model
// coordinates of all mols, in order.
func Join(name string, mols ...*Molecule) (*Molecule, error) {
	var atoms []*Atom
	var data []float64
	for _, m := range mols {
		if len(m.Coords) == 0 {
			return nil, newError("Join", m.Name, ErrNoAtoms, "structure has no coordinates")
		}
		for i, a := range m.Atoms {
			atoms = append(atoms, a.Copy())
			data = append(data, m.Coords[0].Vec(i)...)
		}
	}
	coords, err := v3.NewMatrix(data)
	if err != nil {
		return nil, newError("Join", name, ErrNoAtoms, "nothing to join")
	}
	return NewMolecule(name, atoms, []*v3.Matrix{coords})
}
