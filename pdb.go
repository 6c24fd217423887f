/*
 * pdb.go, part of gocomplex.
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
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/rmera/gocomplex/v3"
)

// StructureName returns the name a structure read from path gets: the
// base name of the file up to the first dot.
func StructureName(path string) string {
	base := filepath.Base(path)
	if i := strings.Index(base, "."); i > 0 {
		return base[:i]
	}
	return base
}

type multiCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiCloser) Close() error {
	var err error
	for i := len(m.closers) - 1; i >= 0; i-- {
		if e := m.closers[i].Close(); e != nil && err == nil {
			err = e
		}
	}
	return err
}

// openMaybeCompressed opens name, decompressing it on the fly if the
// extension is .gz or .zst.
func openMaybeCompressed(name string) (io.ReadCloser, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	switch {
	case strings.HasSuffix(name, ".gz"):
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return &multiCloser{gz, []io.Closer{f, gz}}, nil
	case strings.HasSuffix(name, ".zst"):
		zs, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		rc := zs.IOReadCloser()
		return &multiCloser{rc, []io.Closer{f, rc}}, nil
	}
	return f, nil
}

// PDBFileRead reads a PDB file, which may be gzip or zstd compressed.
// The structure is named after the file.
func PDBFileRead(pdbname string) (*Molecule, error) {
	f, err := openMaybeCompressed(pdbname)
	if err != nil {
		return nil, newError("PDBFileRead", pdbname, err, "can't open file")
	}
	defer f.Close()
	mol, err := PDBRead(f, StructureName(pdbname))
	if err != nil {
		if e, ok := err.(*CError); ok {
			e.filename = pdbname
		}
		return nil, errDecorate(err, "PDBFileRead")
	}
	return mol, nil
}

// PDBRead reads the ATOM and HETATM records of a PDB stream. Atom data is
// taken from the first model, and every model contributes one coordinate
// set. Alternate locations other than the first are ignored.
func PDBRead(r io.Reader, name string) (*Molecule, error) {
	var atoms []*Atom
	frames := [][]float64{nil}
	firstModel := true
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024), 1<<20)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "ATOM") || strings.HasPrefix(line, "HETATM"):
			if len(line) > 16 && !firstAltLoc(line[16]) {
				continue
			}
			atom, c, err := readPDBLine(line)
			if err != nil {
				return nil, newError("PDBRead", "", err, "line %d: %v", lineno, err)
			}
			if firstModel {
				atoms = append(atoms, atom)
			}
			frames[len(frames)-1] = append(frames[len(frames)-1], c[:]...)
		case strings.HasPrefix(line, "MODEL"):
			if len(frames[len(frames)-1]) > 0 {
				firstModel = false
				frames = append(frames, nil)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, newError("PDBRead", "", err, "reading: %v", err)
	}
	if len(frames[len(frames)-1]) == 0 && len(frames) > 1 {
		frames = frames[:len(frames)-1]
	}
	coords := make([]*v3.Matrix, 0, len(frames))
	for i, f := range frames {
		if len(f) != 3*len(atoms) {
			return nil, newError("PDBRead", "", ErrMismatch, "model %d has %d atoms, first model has %d", i+1, len(f)/3, len(atoms))
		}
		if len(f) == 0 {
			continue
		}
		m, _ := v3.NewMatrix(f)
		coords = append(coords, m)
	}
	return NewMolecule(name, atoms, coords)
}

func firstAltLoc(b byte) bool {
	return b == ' ' || b == 'A' || b == '1'
}

// readPDBLine parses a valid ATOM or HETATM line, returning an Atom with
// everything but the coordinates, which are returned separately.
func readPDBLine(line string) (*Atom, [3]float64, error) {
	var c [3]float64
	if len(line) < 54 {
		return nil, c, fmt.Errorf("record too short (%d characters)", len(line))
	}
	line = fmt.Sprintf("%-80s", line)
	atom := new(Atom)
	var err [6]error
	atom.Het = strings.HasPrefix(line, "HETATM")
	atom.ID, err[0] = strconv.Atoi(strings.TrimSpace(line[6:11]))
	atom.Name = strings.TrimSpace(line[12:16])
	atom.AltLoc = line[16]
	atom.Molname = strings.TrimSpace(line[17:20])
	atom.Molname1 = three2OneLetter[atom.Molname]
	atom.Chain = strings.TrimSpace(line[21:22])
	atom.Molid, err[1] = strconv.Atoi(strings.TrimSpace(line[22:26]))
	atom.ICode = line[26]
	c[0], err[2] = strconv.ParseFloat(strings.TrimSpace(line[30:38]), 64)
	c[1], err[3] = strconv.ParseFloat(strings.TrimSpace(line[38:46]), 64)
	c[2], err[4] = strconv.ParseFloat(strings.TrimSpace(line[46:54]), 64)
	if occ := strings.TrimSpace(line[54:60]); occ != "" {
		atom.Occupancy, err[5] = strconv.ParseFloat(occ, 64)
	}
	//b-factors are not always there, and we don't really need them.
	atom.Bfactor, _ = strconv.ParseFloat(strings.TrimSpace(line[60:66]), 64)
	atom.Symbol = strings.TrimSpace(line[76:78])
	if atom.Symbol == "" {
		atom.Symbol = symbolFromName(atom.Name)
	}
	for _, e := range err {
		if e != nil {
			return nil, c, e
		}
	}
	return atom, c, nil
}

// PDBFileWrite writes the given model of mol to a PDB file.
func PDBFileWrite(pdbname string, mol *Molecule, frame int) error {
	out, err := os.Create(pdbname)
	if err != nil {
		return newError("PDBFileWrite", pdbname, err, "can't create file")
	}
	if err := PDBWrite(out, mol, frame); err != nil {
		out.Close()
		return errDecorate(err, "PDBFileWrite")
	}
	return out.Close()
}

// PDBWrite writes the given model of mol in PDB format to out. A TER
// record closes every chain, and END closes the file.
func PDBWrite(out io.Writer, mol *Molecule, frame int) error {
	if frame < 0 || frame >= len(mol.Coords) {
		return newError("PDBWrite", "", ErrNoAtoms, "structure %s has no model %d", mol.Name, frame)
	}
	w := bufio.NewWriter(out)
	fmt.Fprint(w, "REMARK     WRITTEN WITH GOCOMPLEX\n")
	coords := mol.Coords[frame]
	for i, at := range mol.Atoms {
		if i > 0 && mol.Atoms[i-1].Chain != at.Chain {
			writeTER(w, mol.Atoms[i-1])
		}
		first := "ATOM"
		if at.Het {
			first = "HETATM"
		}
		c := coords.RawRowView(i)
		chain := at.Chain
		if chain == "" {
			chain = " "
		}
		icode := at.ICode
		if icode == 0 {
			icode = ' '
		}
		//4 chars for the atom name are used mostly for hydrogens.
		name := fmt.Sprintf(" %-3s", at.Name)
		if len(at.Name) >= 4 {
			name = fmt.Sprintf("%-4.4s", at.Name)
		}
		fmt.Fprintf(w, "%-6s%5d %s %3s %1.1s%4d%c   %8.3f%8.3f%8.3f%6.2f%6.2f          %2s\n", first, at.ID%100000, name, at.Molname, chain,
			at.Molid, icode, c[0], c[1], c[2], at.Occupancy, at.Bfactor, at.Symbol)
	}
	if len(mol.Atoms) > 0 {
		writeTER(w, mol.Atoms[len(mol.Atoms)-1])
	}
	fmt.Fprint(w, "END\n")
	return w.Flush()
}

func writeTER(w io.Writer, last *Atom) {
	chain := last.Chain
	if chain == "" {
		chain = " "
	}
	fmt.Fprintf(w, "TER   %5d      %3s %1.1s%4d\n", (last.ID+1)%100000, last.Molname, chain, last.Molid)
}
