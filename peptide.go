/*
 * peptide.go, part of gocomplex.
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

// peptideBondCutoff is the largest C-N distance, in A, for two consecutive
// residues to be considered bonded.
const peptideBondCutoff = 1.8

// Peptide is a stretch of consecutive, bonded, standard residues of a chain.
type Peptide struct {
	Chain    string
	Residues []int // residue numbers, in order
	Seq      string
}

// Len returns the number of residues in the peptide.
func (P Peptide) Len() int {
	return len(P.Residues)
}

type residue struct {
	molid int
	icode byte
	name  string
	n, c  int // atom indexes, -1 if absent
	ca    int
}

// residues returns the standard amino acid residues of chain that have
// backbone N, CA and C atoms.
func (M *Molecule) residues(chain string) []residue {
	var ret []residue
	for i, a := range M.Atoms {
		if a.Chain != chain || a.Het && a.Molname != "MSE" || a.Molname1 == 0 {
			continue
		}
		if len(ret) == 0 || ret[len(ret)-1].molid != a.Molid || ret[len(ret)-1].icode != a.ICode {
			ret = append(ret, residue{molid: a.Molid, icode: a.ICode, name: a.Molname, n: -1, c: -1, ca: -1})
		}
		r := &ret[len(ret)-1]
		switch a.Name {
		case "N":
			r.n = i
		case "CA":
			r.ca = i
		case "C":
			r.c = i
		}
	}
	full := ret[:0]
	for _, r := range ret {
		if r.n >= 0 && r.ca >= 0 && r.c >= 0 {
			full = append(full, r)
		}
	}
	return full
}

// Peptides splits chain into peptides, breaking wherever the C atom of a
// residue and the N atom of the next one are more than 1.8 A apart. Only
// the first model is considered.
func (M *Molecule) Peptides(chain string) []Peptide {
	if len(M.Coords) == 0 {
		return nil
	}
	coords := M.Coords[0]
	var ret []Peptide
	var cur *Peptide
	var prev residue
	for i, r := range M.residues(chain) {
		if i == 0 || coords.Distance(prev.c, coords, r.n) > peptideBondCutoff {
			ret = append(ret, Peptide{Chain: chain})
			cur = &ret[len(ret)-1]
		}
		cur.Residues = append(cur.Residues, r.molid)
		cur.Seq += string(three2OneLetter[r.name])
		prev = r
	}
	return ret
}
