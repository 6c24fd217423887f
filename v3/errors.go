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

package v3

import "strings"

// Error is the error type returned by functions in this package.
type Error struct {
	message  string
	deco     []string
	critical bool
}

func (err Error) Error() string {
	if len(err.deco) == 0 {
		return err.message
	}
	return strings.Join(err.deco, ": ") + ": " + err.message
}

// Decorate adds dec to the list of callers in the error and returns it.
func (err Error) Decorate(dec string) []string {
	err.deco = append(err.deco, dec)
	return err.deco
}

// Critical is true for errors that should stop the current operation.
func (err Error) Critical() bool { return err.critical }

// PanicMsg is the type of the messages used in panics by this package.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const ErrShape = PanicMsg("v3: Dimension mismatch")
