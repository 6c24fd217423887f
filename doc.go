/*
 * doc.go, part of gocomplex.
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

/*
Package chem is the main package of the gocomplex library. It provides atom
and structure types, reading and writing of PDB and FASTA files, splitting of
structures into per-chain files, peptide detection and rigid-body
superposition.

	**gocomplex Capabilities**

	Reads PDB files, transparently decompressing .gz and .zst files, and
	writes single-model PDB files with TER records between chains.

	Splits multi-chain structures into one PDB and one FASTA file per chain,
	named after the chain identifier (name_chain).

	Splits chains into peptides, breaking them where consecutive residues
	are not bonded.

	Superimposes sets of coordinates (Kabsch, via gonum's SVD) and applies
	the resulting transformation to whole structures.

	Calculates RMSD between sets of coordinates.

The sub-packages build a homology-based complex modelling workflow on top of
this: template search (search), alignment scoring (msa), structure download
(fetch), interaction detection (clash, chemgraph), chain assignment (assign)
and model building (modeler).
*/
package chem
