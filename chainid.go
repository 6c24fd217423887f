/*
 * chainid.go, part of gocomplex.
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

import "strings"

// ChainID identifies one chain within one structure.
type ChainID struct {
	Name  string
	Chain string
}

// String returns the serialized form, name_chain.
func (C ChainID) String() string {
	return C.Name + "_" + C.Chain
}

// ParseChainID parses a name_chain string. The split happens at the last
// underscore, so structure names may contain underscores themselves.
func ParseChainID(s string) (ChainID, error) {
	i := strings.LastIndex(s, "_")
	if i <= 0 || i == len(s)-1 {
		return ChainID{}, newError("ParseChainID", "", ErrBadChainID, "can't parse %q as name_chain", s)
	}
	return ChainID{Name: s[:i], Chain: s[i+1:]}, nil
}

// NameWOChain returns the structure name part of a name_chain string. If
// there is no underscore, s is returned unchanged.
func NameWOChain(s string) string {
	i := strings.LastIndex(s, "_")
	if i < 0 {
		return s
	}
	return s[:i]
}

// ChainOf returns the chain label part of a name_chain string, or the empty
// string if there is no underscore.
func ChainOf(s string) string {
	i := strings.LastIndex(s, "_")
	if i < 0 {
		return ""
	}
	return s[i+1:]
}
