/*
 * synth.go, part of gocomplex.
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

// Package synth builds small synthetic protein structures for tests.
package synth

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	chem "github.com/rmera/gocomplex"
	"github.com/rmera/gocomplex/v3"
)

var one2three = map[byte]string{
	'A': "ALA", 'R': "ARG", 'N': "ASN", 'D': "ASP", 'C': "CYS",
	'Q': "GLN", 'E': "GLU", 'G': "GLY", 'H': "HIS", 'I': "ILE",
	'L': "LEU", 'K': "LYS", 'M': "MET", 'F': "PHE", 'P': "PRO",
	'S': "SER", 'T': "THR", 'W': "TRP", 'Y': "TYR", 'V': "VAL",
}

// Chain describes one synthetic chain: a straight backbone along x,
// starting at Origin, with one residue per letter of Seq.
type Chain struct {
	Label  string
	Seq    string
	Origin [3]float64
	// Gap, if positive, is the residue index before which the backbone is
	// broken by an extra 4 A.
	Gap int
}

// Molecule builds a structure with N, CA and C atoms for every residue.
// Consecutive residues are bonded (C-N 1.35 A) and the CA atoms wobble
// off the axis so they are never collinear.
func Molecule(name string, chains ...Chain) *chem.Molecule {
	var atoms []*chem.Atom
	var data []float64
	id := 1
	for _, c := range chains {
		shift := 0.0
		for i := 0; i < len(c.Seq); i++ {
			if c.Gap > 0 && i == c.Gap {
				shift = 4
			}
			x := c.Origin[0] + 3.8*float64(i) + shift
			pos := map[string][3]float64{
				"N":  {x, c.Origin[1], c.Origin[2]},
				"CA": {x + 1.45, c.Origin[1] + math.Sin(float64(i)), c.Origin[2] + math.Cos(float64(i))},
				"C":  {x + 2.45, c.Origin[1], c.Origin[2]},
			}
			for _, n := range []string{"N", "CA", "C"} {
				res := one2three[c.Seq[i]]
				atoms = append(atoms, &chem.Atom{Name: n, ID: id, Molname: res, Molname1: chem.OneLetter(res), Molid: i + 1,
					ICode: ' ', Chain: c.Label, Symbol: n[:1], Occupancy: 1})
				p := pos[n]
				data = append(data, p[:]...)
				id++
			}
		}
	}
	coords, err := v3.NewMatrix(data)
	if err != nil {
		panic(err)
	}
	mol, err := chem.NewMolecule(name, atoms, []*v3.Matrix{coords})
	if err != nil {
		panic(err)
	}
	return mol
}

// WritePDB writes mol to dir/file and returns the path.
func WritePDB(t testing.TB, dir, file string, mol *chem.Molecule) string {
	t.Helper()
	path := filepath.Join(dir, file)
	if err := chem.PDBFileWrite(path, mol, 0); err != nil {
		t.Fatal(err)
	}
	return path
}

// WriteFile writes content to dir/file and returns the path.
func WriteFile(t testing.TB, dir, file, content string) string {
	t.Helper()
	path := filepath.Join(dir, file)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
