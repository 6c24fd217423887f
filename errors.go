/*
 * errors.go, part of gocomplex.
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
	"errors"
	"fmt"
	"strings"
)

// Error is the interface for errors that all packages in this library implement.
// The Decorate method allows to add and retrieve info from the error, without
// changing its type or wrapping it around something else. If passed an empty
// string, it just returns the current decoration.
type Error interface {
	Error() string
	Decorate(string) []string
}

// CError is the concrete error type returned by this package.
type CError struct {
	msg      string
	filename string
	deco     []string
	critical bool
	err      error
}

func (err CError) Error() string {
	var b strings.Builder
	if len(err.deco) > 0 {
		b.WriteString(strings.Join(err.deco, ": "))
		b.WriteString(": ")
	}
	b.WriteString(err.msg)
	if err.filename != "" {
		fmt.Fprintf(&b, " (file: %s)", err.filename)
	}
	return b.String()
}

// Decorate adds dec to the decoration slice and returns it.
func (err *CError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// Critical is true if the error should stop the current operation.
func (err CError) Critical() bool { return err.critical }

// FileName returns the file involved in the error, if any.
func (err CError) FileName() string { return err.filename }

func (err CError) Unwrap() error { return err.err }

func newError(caller, filename string, wrapped error, format string, args ...any) *CError {
	return &CError{msg: fmt.Sprintf(format, args...), filename: filename, deco: []string{caller}, critical: true, err: wrapped}
}

// errDecorate adds caller to err if err implements Error.
func errDecorate(err error, caller string) error {
	var e Error
	if errors.As(err, &e) {
		e.Decorate(caller)
		return e
	}
	return fmt.Errorf("%s: %w", caller, err)
}

var (
	// ErrNoAtoms is returned when a structure, chain or selection has no atoms.
	ErrNoAtoms = errors.New("no atoms")
	// ErrNoChain is returned when a requested chain is not in a structure.
	ErrNoChain = errors.New("chain not found")
	// ErrMismatch is returned when two coordinate sets to be superimposed differ in size.
	ErrMismatch = errors.New("mismatched atom numbers")
	// ErrBadChainID is returned when a string can't be parsed as a chain identifier.
	ErrBadChainID = errors.New("malformed chain identifier")
)
