/*
 * cli.go, part of gocomplex.
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

package main

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/rmera/gocomplex/modeler"
)

// cliArgs holds the parsed command line.
type cliArgs struct {
	Inputs   []string
	Database string
	Config   string
	WorkDir  string
	Plot     string
	Cpus     int
}

// stringSlice allows repeatable string flags.
type stringSlice []string

func (s *stringSlice) String() string     { return strings.Join(*s, ",") }
func (s *stringSlice) Set(v string) error { *s = append(*s, v); return nil }

// inputFlags are the flags that take one or more values.
var inputFlags = map[string]bool{"-i": true, "--i": true, "-input": true, "--input": true}

// expandInputs rewrites "-i a b c" as "-i a -i b -i c", and "-i=a b" as
// "-i=a -i b", so the input flag can take several values at once.
func expandInputs(argv []string) []string {
	var ret []string
	for i := 0; i < len(argv); i++ {
		a := argv[i]
		ret = append(ret, a)
		if a == "--" {
			ret = append(ret, argv[i+1:]...)
			break
		}
		name, _, inline := strings.Cut(a, "=")
		if !inputFlags[name] {
			continue
		}
		a = name
		if !inline && i+1 < len(argv) {
			i++
			ret = append(ret, argv[i])
		}
		for i+1 < len(argv) && !strings.HasPrefix(argv[i+1], "-") {
			i++
			ret = append(ret, a, argv[i])
		}
	}
	return ret
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), `%s: models protein complexes from homologous templates

Usage of %s:
  %s -i AB.pdb BC.pdb -d /path/to/pdbaa [options]

`, name, name, name)
		fs.PrintDefaults()
	}
	return fs
}

// parseArgs registers and parses all flags.
func parseArgs(fs *flag.FlagSet, argv []string) (cliArgs, error) {
	var a cliArgs
	var inputs stringSlice
	fs.Var(&inputs, "input", "input structure file(s), one or more (repeatable) [*]")
	fs.Var(&inputs, "i", "alias of --input")
	fs.StringVar(&a.Database, "database", "", "local database for the template search [*]")
	fs.StringVar(&a.Database, "d", "", "alias of --database")
	fs.StringVar(&a.Config, "config", "", "YAML configuration file")
	fs.StringVar(&a.Config, "c", "", "alias of --config")
	fs.StringVar(&a.WorkDir, "workdir", "", "directory for intermediate files and models [.]")
	fs.StringVar(&a.WorkDir, "w", "", "alias of --workdir")
	fs.StringVar(&a.Plot, "plot", "", "save an RMSD bar chart of the models to this file")
	fs.IntVar(&a.Cpus, "cpus", 0, "concurrent searches and alignments (0 = all CPUs) [0]")

	if err := fs.Parse(expandInputs(argv)); err != nil {
		return a, err
	}
	a.Inputs = append(inputs, fs.Args()...)
	if len(a.Inputs) == 0 {
		return a, errors.New("at least one --input structure is required")
	}
	if a.Cpus < 0 {
		return a, errors.New("--cpus must be >= 0")
	}
	return a, nil
}

// options builds the modelling options: defaults, then the config file,
// then the command line.
func (a cliArgs) options() (*modeler.Options, error) {
	O := modeler.DefaultOptions()
	if a.Config != "" {
		var err error
		if O, err = modeler.LoadOptions(a.Config); err != nil {
			return nil, err
		}
	}
	if a.Database != "" {
		O.Database = a.Database
	}
	if a.WorkDir != "" {
		O.WorkDir = a.WorkDir
	}
	if a.Plot != "" {
		O.Plot = a.Plot
	}
	if a.Cpus > 0 {
		O.Cpus = a.Cpus
	}
	if O.Database == "" {
		return nil, errors.New("--database is required")
	}
	if err := O.Validate(); err != nil {
		return nil, err
	}
	return O, nil
}
