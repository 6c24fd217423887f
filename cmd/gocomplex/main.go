/*
 * main.go, part of gocomplex.
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

// Command gocomplex models a protein complex from structures of its
// interacting chain pairs, using homologous complexes of known structure
// as templates.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/rmera/gocomplex/modeler"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run parses argv, runs the workflow and prints the report. It returns the
// exit code: 2 for usage errors, 1 if the run could not be completed.
func run(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("gocomplex")
	fs.SetOutput(stderr)
	args, err := parseArgs(fs, argv)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintln(stderr, "gocomplex:", err)
		return 2
	}
	opts, err := args.options()
	if err != nil {
		fmt.Fprintln(stderr, "gocomplex:", err)
		return 2
	}
	opts.Logger = log.New(stderr, "gocomplex: ", log.LstdFlags)
	M, err := modeler.New(opts)
	if err != nil {
		fmt.Fprintln(stderr, "gocomplex:", err)
		return 2
	}
	rep, err := M.Run(ctx, args.Inputs)
	if err != nil {
		fmt.Fprintln(stderr, "gocomplex:", err)
		return 1
	}
	fmt.Fprint(stdout, render(rep))
	return 0
}
