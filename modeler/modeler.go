/*
 * modeler.go, part of gocomplex.
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

// Package modeler builds models of protein complexes from homologous
// templates. Target chains are placed onto the chains of every suitable
// template so that chains known to interact sit on template chains in
// contact, and each placement is written as a superimposed model.
package modeler

import (
	"context"
	"log"
	"os"

	"github.com/rmera/gocomplex/fetch"
	"github.com/rmera/gocomplex/msa"
	"github.com/rmera/gocomplex/search"
)

// Searcher looks for templates for the sequence in prefix.fa and returns
// the name of the report file.
type Searcher interface {
	Search(ctx context.Context, prefix string) (string, error)
}

// Aligner aligns the sequences of a FASTA file and returns the name of
// the file with the pairwise scores.
type Aligner interface {
	Align(ctx context.Context, fasta string) (string, error)
}

// Fetcher puts the structure of a template in dir and returns its path.
type Fetcher interface {
	Fetch(ctx context.Context, id, dir string) (string, error)
}

// Modeler runs the modelling workflow. Searches, alignments and downloads
// go through replaceable collaborators.
type Modeler struct {
	opts     *Options
	log      *log.Logger
	searcher Searcher
	aligner  Aligner
	fetcher  Fetcher
}

// New returns a Modeler that uses PSI-BLAST, ClustalW and the wwPDB
// archive as set in opts. opts is validated.
func New(opts *Options) (*Modeler, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	M := &Modeler{opts: opts, log: opts.Logger}
	if M.log == nil {
		M.log = log.New(os.Stderr, "gocomplex: ", log.LstdFlags)
	}

	blast := search.NewPSIBlastHandle(opts.Database)
	blast.SetCommand(opts.PSIBlast)
	blast.SetEValue(opts.EValue)
	blast.SetTimeout(opts.Timeout)
	blast.SetRetries(opts.Retries, opts.RetryDelay)
	M.searcher = blast

	clustal := msa.NewClustalWHandle()
	clustal.SetCommand(opts.ClustalW)
	clustal.SetTimeout(opts.Timeout)
	clustal.SetRetries(opts.Retries, opts.RetryDelay)
	M.aligner = clustal

	f := fetch.NewFetcher()
	f.BaseURL = opts.DownloadURL
	f.Retries = opts.Retries
	f.Delay = opts.RetryDelay
	M.fetcher = f
	return M, nil
}

// SetSearcher replaces the template search.
func (M *Modeler) SetSearcher(s Searcher) { M.searcher = s }

// SetAligner replaces the sequence aligner.
func (M *Modeler) SetAligner(a Aligner) { M.aligner = a }

// SetFetcher replaces the template download.
func (M *Modeler) SetFetcher(f Fetcher) { M.fetcher = f }

// Options returns the options in use.
func (M *Modeler) Options() *Options { return M.opts }
