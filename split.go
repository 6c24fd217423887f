/*
 * split.go, part of gocomplex.
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

import "path/filepath"

// SplitChain is one chain of a structure, written to its own files.
type SplitChain struct {
	ID    ChainID
	Mol   *Molecule
	PDB   string
	Fasta string
	Seq   string
}

// SplitChains writes, for every chain of mol, a PDB file and a FASTA file
// named name_chain.pdb and name_chain.fa into dir. Each chain molecule is
// a deep copy, so the returned chains can be modified independently.
func SplitChains(mol *Molecule, dir string) ([]*SplitChain, error) {
	var ret []*SplitChain
	for _, c := range mol.Chains() {
		cm, err := mol.Chain(c)
		if err != nil {
			return nil, errDecorate(err, "SplitChains")
		}
		id := ChainID{Name: mol.Name, Chain: c}
		sc := &SplitChain{
			ID:    id,
			Mol:   cm,
			PDB:   filepath.Join(dir, id.String()+".pdb"),
			Fasta: filepath.Join(dir, id.String()+".fa"),
			Seq:   cm.Sequence(c),
		}
		if err := PDBFileWrite(sc.PDB, cm, 0); err != nil {
			return nil, errDecorate(err, "SplitChains")
		}
		if err := FastaFileWrite(sc.Fasta, FastaEntry{Name: id.String(), Seq: sc.Seq}); err != nil {
			return nil, errDecorate(err, "SplitChains")
		}
		ret = append(ret, sc)
	}
	return ret, nil
}
