/*
 * fasta.go, part of gocomplex.
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
	"strings"
)

// FastaEntry is one record of a FASTA file.
type FastaEntry struct {
	Name string
	Seq  string
}

// Sequence returns the one-letter sequence of the standard residues of
// chain, one letter per residue, in file order.
func (M *Molecule) Sequence(chain string) string {
	var b strings.Builder
	for _, p := range M.Peptides(chain) {
		b.WriteString(p.Seq)
	}
	return b.String()
}

// FastaWrite writes entries to out, wrapping sequences at 60 characters.
func FastaWrite(out io.Writer, entries ...FastaEntry) error {
	w := bufio.NewWriter(out)
	for _, e := range entries {
		fmt.Fprintf(w, ">%s\n", e.Name)
		for i := 0; i < len(e.Seq); i += 60 {
			fmt.Fprintln(w, e.Seq[i:min(i+60, len(e.Seq))])
		}
	}
	return w.Flush()
}

// FastaFileWrite writes entries to the file fastaname.
func FastaFileWrite(fastaname string, entries ...FastaEntry) error {
	out, err := os.Create(fastaname)
	if err != nil {
		return newError("FastaFileWrite", fastaname, err, "can't create file")
	}
	if err := FastaWrite(out, entries...); err != nil {
		out.Close()
		return newError("FastaFileWrite", fastaname, err, "writing: %v", err)
	}
	return out.Close()
}

// FastaRead reads all the records in a FASTA stream.
func FastaRead(r io.Reader) ([]FastaEntry, error) {
	var ret []FastaEntry
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
		case strings.HasPrefix(line, ">"):
			ret = append(ret, FastaEntry{Name: strings.TrimSpace(line[1:])})
		case len(ret) == 0:
			return nil, newError("FastaRead", "", nil, "sequence data before the first header")
		default:
			ret[len(ret)-1].Seq += line
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, newError("FastaRead", "", err, "reading: %v", err)
	}
	return ret, nil
}
