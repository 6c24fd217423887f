/*
 * psiblast.go, part of gocomplex.
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

// Package search finds template structures for a set of chain sequences,
// running PSI-BLAST against a local structure database and selecting the
// templates with the best e-values.
package search

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rmera/gocomplex/runner"
)

// PSIBlastHandle runs PSI-BLAST searches against one database.
type PSIBlastHandle struct {
	command string
	db      string
	evalue  float64
	timeout time.Duration
	retries int
	delay   time.Duration
}

// NewPSIBlastHandle returns a handle for the database db, with default
// settings.
func NewPSIBlastHandle(db string) *PSIBlastHandle {
	O := &PSIBlastHandle{db: db}
	O.SetDefaults()
	return O
}

// SetDefaults sets the psiblast command, an e-value cutoff of 10, no
// timeout and a single attempt per search.
func (O *PSIBlastHandle) SetDefaults() {
	O.command = "psiblast"
	O.evalue = 10
	O.timeout = 0
	O.retries = 1
	O.delay = time.Second
}

// SetCommand sets the name or path of the psiblast executable.
func (O *PSIBlastHandle) SetCommand(c string) { O.command = c }

// SetEValue sets the e-value cutoff for reported hits.
func (O *PSIBlastHandle) SetEValue(e float64) { O.evalue = e }

// SetTimeout sets the time limit for each attempt.
func (O *PSIBlastHandle) SetTimeout(t time.Duration) { O.timeout = t }

// SetRetries sets how many times a failing search is attempted, and the
// wait between attempts.
func (O *PSIBlastHandle) SetRetries(n int, delay time.Duration) {
	O.retries = n
	O.delay = delay
}

func (O *PSIBlastHandle) buildCommand(prefix string) *runner.Command {
	return &runner.Command{
		Path: O.command,
		Args: []string{
			"-db", O.db,
			"-query", prefix + ".fa",
			"-out", prefix + ".xml",
			"-evalue", strconv.FormatFloat(O.evalue, 'g', -1, 64),
			"-outfmt", "3",
			"-out_pssm", prefix + "_pssm",
		},
		Timeout: O.timeout,
	}
}

// Search runs PSI-BLAST with prefix.fa as query. The report is written to
// prefix.xml and the scoring matrix to prefix_pssm. It returns the report
// file name.
func (O *PSIBlastHandle) Search(ctx context.Context, prefix string) (string, error) {
	if _, err := os.Stat(prefix + ".fa"); err != nil {
		return "", fmt.Errorf("psiblast query: %w", err)
	}
	c := O.buildCommand(prefix)
	err := runner.Retry(ctx, O.retries, O.delay, func(ctx context.Context) error {
		return c.Run(ctx)
	})
	if err != nil {
		return "", err
	}
	return prefix + ".xml", nil
}
