/*
 * atomicdata.go, part of gocomplex.
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

// A map between 3-letter names for amino acidic residues and the
// corresponding 1-letter names.
var three2OneLetter = map[string]byte{
	"SER": 'S',
	"THR": 'T',
	"ASN": 'N',
	"GLN": 'Q',
	"SEC": 'U', //Selenocysteine!
	"CYS": 'C',
	"GLY": 'G',
	"PRO": 'P',
	"ALA": 'A',
	"VAL": 'V',
	"ILE": 'I',
	"LEU": 'L',
	"MET": 'M',
	"PHE": 'F',
	"TYR": 'Y',
	"TRP": 'W',
	"ARG": 'R',
	"HIS": 'H',
	"LYS": 'K',
	"ASP": 'D',
	"GLU": 'E',
	"MSE": 'M',
}

// OneLetter returns the one-letter code for the residue name res, or 0 if
// res is not a known amino acid.
func OneLetter(res string) byte {
	return three2OneLetter[res]
}

// symbolFromName guesses a chemical element symbol from a PDB atom name.
// It only deals with common bio-elements.
func symbolFromName(name string) string {
	if name == "" {
		return ""
	}
	switch name[0] {
	case 'H', 'C', 'N', 'O', 'S', 'P':
		return name[:1]
	}
	return ""
}
