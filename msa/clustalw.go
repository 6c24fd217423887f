/*
 * clustalw.go, part of gocomplex.
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

// Package msa scores the alignment of target chains against template
// chains with ClustalW, and picks the target chains that match each
// template chain.
package msa

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	chem "github.com/rmera/gocomplex"
	"github.com/rmera/gocomplex/runner"
)

// JoinedFastaName returns the name of the FASTA file that joins the given
// sequences: every name followed by an underscore, then ".fa".
func JoinedFastaName(entries []chem.FastaEntry) string {
	var b strings.Builder
	for _, e := range entries {
		b.WriteString(e.Name)
		b.WriteString("_")
	}
	b.WriteString(".fa")
	return b.String()
}

// WriteJoinedFasta writes the target sequences followed by the template
// sequence into one FASTA file in dir, and returns its path.
func WriteJoinedFasta(dir string, targets []chem.FastaEntry, template chem.FastaEntry) (string, error) {
	entries := append(append([]chem.FastaEntry{}, targets...), template)
	path := filepath.Join(dir, JoinedFastaName(entries))
	if err := chem.FastaFileWrite(path, entries...); err != nil {
		return "", err
	}
	return path, nil
}

// ScoreFileName returns the file the console report for the alignment of
// fasta is saved to: the base name up to the first dot, plus
// "ClustalScore.txt".
func ScoreFileName(fasta string) string {
	base := filepath.Base(fasta)
	if i := strings.Index(base, "."); i >= 0 {
		base = base[:i]
	}
	return filepath.Join(filepath.Dir(fasta), base+"ClustalScore.txt")
}

// ClustalWHandle runs ClustalW alignments.
type ClustalWHandle struct {
	command string
	timeout time.Duration
	retries int
	delay   time.Duration
}

// NewClustalWHandle returns a handle with default settings.
func NewClustalWHandle() *ClustalWHandle {
	O := new(ClustalWHandle)
	O.SetDefaults()
	return O
}

// SetDefaults sets the clustalw2 command, no timeout and a single attempt.
func (O *ClustalWHandle) SetDefaults() {
	O.command = "clustalw2"
	O.timeout = 0
	O.retries = 1
	O.delay = time.Second
}

// SetCommand sets the name or path of the ClustalW executable.
func (O *ClustalWHandle) SetCommand(c string) { O.command = c }

// SetTimeout sets the time limit for each attempt.
func (O *ClustalWHandle) SetTimeout(t time.Duration) { O.timeout = t }

// SetRetries sets how many times a failing alignment is attempted, and the
// wait between attempts.
func (O *ClustalWHandle) SetRetries(n int, delay time.Duration) {
	O.retries = n
	O.delay = delay
}

// Align aligns the sequences in fasta. The alignment files are written
// next to fasta, and the console report is saved to ScoreFileName(fasta),
// whose name is returned.
func (O *ClustalWHandle) Align(ctx context.Context, fasta string) (string, error) {
	scores := ScoreFileName(fasta)
	err := runner.Retry(ctx, O.retries, O.delay, func(ctx context.Context) error {
		out, err := os.Create(scores)
		if err != nil {
			return runner.Permanent(err)
		}
		c := &runner.Command{
			Path:    O.command,
			Args:    []string{"-INFILE=" + filepath.Base(fasta)},
			Dir:     filepath.Dir(fasta),
			Timeout: O.timeout,
			Stdout:  out,
		}
		err = c.Run(ctx)
		if cerr := out.Close(); err == nil {
			err = cerr
		}
		return err
	})
	if err != nil {
		return "", fmt.Errorf("aligning %s: %w", fasta, err)
	}
	return scores, nil
}
