/*
 * assemble.go, part of gocomplex.
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
	"errors"
	"fmt"
	"path/filepath"

	chem "github.com/rmera/gocomplex"
	"github.com/rmera/gocomplex/assign"
	"github.com/rmera/gocomplex/clash"
	"github.com/rmera/gocomplex/v3"
)

var (
	// ErrWindow is returned when the chains are too short to leave any
	// residue for the superposition.
	ErrWindow = errors.New("empty superposition window")
	// ErrUnassigned is returned when an assignment names a chain the
	// model doesn't have.
	ErrUnassigned = errors.New("chain not available")
)

// ModelFileName returns the name of the i-th per-chain model file for
// template. The combined model uses i = 0.
func ModelFileName(template string, i int) string {
	return fmt.Sprintf("%s_%d_aligned.pdb", template, i)
}

// firstPeptideLen is the length of the first peptide of chain, or 0.
func firstPeptideLen(mol *chem.Molecule, chain string) int {
	p := mol.Peptides(chain)
	if len(p) == 0 {
		return 0
	}
	return p[0].Len()
}

// Window returns the residue window [lo, hi) used to superimpose the
// targets on the template: hi is the shortest first peptide among the
// template chains and the target chains. Chains without peptides are not
// considered.
func Window(lo int, templ *chem.Molecule, targets []*chem.SplitChain) (int, int, error) {
	hi := -1
	consider := func(n int) {
		if n > 0 && (hi < 0 || n < hi) {
			hi = n
		}
	}
	for _, c := range templ.Chains() {
		consider(firstPeptideLen(templ, c))
	}
	for _, t := range targets {
		consider(firstPeptideLen(t.Mol, t.ID.Chain))
	}
	if hi <= lo {
		return lo, hi, fmt.Errorf("%w: [%d, %d)", ErrWindow, lo, hi)
	}
	return lo, hi, nil
}

// Assemble superimposes every target chain on the template chain it was
// assigned to, using the alpha carbons in the residue window, and writes
// one file per chain and a combined model into dir. targets maps chain
// labels to the target chains.
func Assemble(templ *chem.Molecule, asg *assign.Assignment, targets map[string]*chem.SplitChain, windowStart int, dir string) ([]ChainModel, string, error) {
	var involved []*chem.SplitChain
	for _, t := range asg.Targets {
		sc, ok := targets[t]
		if !ok {
			return nil, "", fmt.Errorf("%w: target %s", ErrUnassigned, t)
		}
		involved = append(involved, sc)
	}
	lo, hi, err := Window(windowStart, templ, involved)
	if err != nil {
		return nil, "", err
	}
	ref := templ.Coords[0]
	var chains []ChainModel
	var moved []*chem.Molecule
	for i, sc := range involved {
		tchain := asg.Chains[i]
		refIdx := templ.CAlphas(tchain, lo, hi)
		mobIdx := sc.Mol.CAlphas(sc.ID.Chain, lo, hi)
		coords, _, err := chem.Super(sc.Mol.Coords[0], ref, mobIdx, refIdx)
		if err != nil {
			return nil, "", fmt.Errorf("%s on %s_%s: %w", sc.ID, templ.Name, tchain, err)
		}
		rmsd, err := fitRMSD(coords, ref, mobIdx, refIdx)
		if err != nil {
			return nil, "", err
		}
		out := sc.Mol.Copy()
		out.Name = fmt.Sprintf("%s_%s", templ.Name, sc.ID)
		out.Coords = []*v3.Matrix{coords}
		file := filepath.Join(dir, ModelFileName(templ.Name, i+1))
		if err := chem.PDBFileWrite(file, out, 0); err != nil {
			return nil, "", err
		}
		moved = append(moved, out)
		chains = append(chains, ChainModel{Target: sc.ID.Chain, TemplateChain: tchain, File: file, RMSD: rmsd, Atoms: len(mobIdx)})
	}
	combined, err := chem.Join(templ.Name+"_model", moved...)
	if err != nil {
		return nil, "", err
	}
	file := filepath.Join(dir, ModelFileName(templ.Name, 0))
	if err := chem.PDBFileWrite(file, combined, 0); err != nil {
		return nil, "", err
	}
	return chains, file, nil
}

func fitRMSD(moved, ref *v3.Matrix, mobIdx, refIdx []int) (float64, error) {
	a := v3.Zeros(len(mobIdx))
	a.SomeVecs(moved, mobIdx)
	b := v3.Zeros(len(refIdx))
	b.SomeVecs(ref, refIdx)
	return chem.RMSD(a, b)
}

// CheckModel reads a model file and tells whether atoms of different
// chains come closer than cutoff. It also returns the smallest distance
// between atoms of different chains.
func CheckModel(path string, cutoff float64) (bool, float64, error) {
	mol, err := chem.PDBFileRead(path)
	if err != nil {
		return false, -1, err
	}
	return clash.Clash(mol, mol.Coords[0], cutoff), clash.Closest(mol, mol.Coords[0]), nil
}
