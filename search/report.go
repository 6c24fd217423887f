/*
 * report.go, part of gocomplex.
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

package search

import (
	"bufio"
	"cmp"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"slices"
	"strconv"
	"strings"

	chem "github.com/rmera/gocomplex"
)

// Header marks the start of the table of significant hits in a
// PSI-BLAST report.
const Header = "Sequences producing significant alignments:"

// ErrMalformed is returned when a line in the hit table can't be parsed.
var ErrMalformed = errors.New("malformed search report")

// Hit is one line of the significant hits table.
type Hit struct {
	Subject  string  // chain identifier, name_chain
	Template string  // Subject without the chain suffix
	Bits     float64 // bit score
	EValue   float64
}

// normalizeSubject turns identifiers of the form pdb|1ABC|A into 1ABC_A.
// Other identifiers are returned unchanged.
func normalizeSubject(s string) string {
	f := strings.Split(s, "|")
	if len(f) == 3 && strings.EqualFold(f[0], "pdb") {
		return f[1] + "_" + f[2]
	}
	return s
}

// parseEValue parses BLAST e-values, which may be printed as, say, e-180
// for 1e-180.
func parseEValue(s string) (float64, error) {
	if strings.HasPrefix(s, "e") {
		s = "1" + s
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || v < 0 {
		return 0, fmt.Errorf("bad e-value %q", s)
	}
	return v, nil
}

// parseHit parses one hit line: the subject identifier first, the bit
// score and the e-value last.
func parseHit(line string) (Hit, error) {
	f := strings.Fields(line)
	if len(f) < 3 {
		return Hit{}, fmt.Errorf("%w: hit line %q has %d fields", ErrMalformed, line, len(f))
	}
	ev, err := parseEValue(f[len(f)-1])
	if err != nil {
		return Hit{}, fmt.Errorf("%w: %v in %q", ErrMalformed, err, line)
	}
	bits, err := strconv.ParseFloat(f[len(f)-2], 64)
	if err != nil {
		return Hit{}, fmt.Errorf("%w: bad bit score in %q", ErrMalformed, line)
	}
	subject := normalizeSubject(f[0])
	return Hit{Subject: subject, Template: chem.NameWOChain(subject), Bits: bits, EValue: ev}, nil
}

// ParseReport reads the first table of significant hits of a PSI-BLAST
// report, in report order. A report without the table header has no hits,
// and is not an error. A line in the table that is not a valid hit is.
func ParseReport(r io.Reader) ([]Hit, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), 1<<20)
	inTable := false
	var hits []Hit
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if !inTable {
			inTable = strings.HasPrefix(line, Header)
			continue
		}
		if line == "" {
			if len(hits) > 0 {
				break
			}
			continue
		}
		h, err := parseHit(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineno, err)
		}
		hits = append(hits, h)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return hits, nil
}

// ParseReportFile is ParseReport on the file name.
func ParseReportFile(name string) ([]Hit, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	hits, err := ParseReport(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return hits, nil
}

// BestHits returns the hits tied at the lowest e-value, in report order.
func BestHits(hits []Hit) []Hit {
	if len(hits) == 0 {
		return nil
	}
	best := slices.MinFunc(hits, func(a, b Hit) int { return cmp.Compare(a.EValue, b.EValue) }).EValue
	var ret []Hit
	for _, h := range hits {
		if h.EValue == best {
			ret = append(ret, h)
		}
	}
	return ret
}

// SelectTemplates takes the best hits of every query and returns the
// sorted, distinct template names whose e-value equals the lowest e-value
// over all queries. Queries without hits contribute nothing.
func SelectTemplates(best [][]Hit) []string {
	first := true
	var lowest float64
	for _, q := range best {
		for _, h := range q {
			if first || h.EValue < lowest {
				lowest = h.EValue
				first = false
			}
		}
	}
	var ret []string
	for _, q := range best {
		for _, h := range q {
			if h.EValue == lowest && !slices.Contains(ret, h.Template) {
				ret = append(ret, h.Template)
			}
		}
	}
	slices.Sort(ret)
	return ret
}

