/*
 * scores.go, part of gocomplex.
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

package msa

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
)

var (
	// ErrMalformed is returned when a score report line can't be parsed.
	ErrMalformed = errors.New("malformed alignment score report")
	// ErrUnknownSequence is returned when a name is not in a score report.
	ErrUnknownSequence = errors.New("sequence not in score report")
)

// DefaultThresholds are the alignment scores tried, in order, when looking
// for the target chains that match a template chain.
var DefaultThresholds = []float64{100, 90, 50, 0}

var (
	equivRe = regexp.MustCompile(`^Sequence\s+([0-9]+):\s+(\S+)`)
	pairRe  = regexp.MustCompile(`^Sequences\s+\(([0-9]+):([0-9]+)\)\s+Aligned\.\s+Score:\s+([0-9]+(?:\.[0-9]+)?)`)
)

// Equivalence is a "Sequence i: name" record.
type Equivalence struct {
	Index int
	Name  string
}

// PairScore is a "Sequences (i:j) Aligned. Score: s" record.
type PairScore struct {
	I, J  int
	Score float64
}

// ScoreReport holds the records of a ClustalW console report.
type ScoreReport struct {
	Sequences []Equivalence
	Pairs     []PairScore
	names     map[int]string
}

// ParseScores reads a ClustalW console report. Lines that start like a
// record but do not parse as one are an error, as are pair scores for
// sequence numbers that were never declared.
func ParseScores(r io.Reader) (*ScoreReport, error) {
	R := &ScoreReport{names: make(map[int]string)}
	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		switch {
		case strings.HasPrefix(line, "Sequences ("):
			m := pairRe.FindStringSubmatch(line)
			if m == nil {
				return nil, fmt.Errorf("%w: line %d: %q", ErrMalformed, lineno, line)
			}
			i, _ := strconv.Atoi(m[1])
			j, _ := strconv.Atoi(m[2])
			s, _ := strconv.ParseFloat(m[3], 64)
			R.Pairs = append(R.Pairs, PairScore{I: i, J: j, Score: s})
		case strings.HasPrefix(line, "Sequence ") && strings.Contains(line, ":"):
			m := equivRe.FindStringSubmatch(line)
			if m == nil {
				return nil, fmt.Errorf("%w: line %d: %q", ErrMalformed, lineno, line)
			}
			i, _ := strconv.Atoi(m[1])
			R.Sequences = append(R.Sequences, Equivalence{Index: i, Name: m[2]})
			R.names[i] = m[2]
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	for _, p := range R.Pairs {
		if _, ok := R.names[p.I]; !ok {
			return nil, fmt.Errorf("%w: score for undeclared sequence %d", ErrMalformed, p.I)
		}
		if _, ok := R.names[p.J]; !ok {
			return nil, fmt.Errorf("%w: score for undeclared sequence %d", ErrMalformed, p.J)
		}
	}
	return R, nil
}

// ParseScoresFile is ParseScores on the file name.
func ParseScoresFile(name string) (*ScoreReport, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	R, err := ParseScores(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return R, nil
}

// Index returns the sequence number of name.
func (R *ScoreReport) Index(name string) (int, bool) {
	for _, e := range R.Sequences {
		if e.Name == name {
			return e.Index, true
		}
	}
	return 0, false
}

// Matches returns the names of the sequences aligned to name with a score
// of at least threshold, in report order. All sequences tied at the
// threshold are included.
func (R *ScoreReport) Matches(name string, threshold float64) ([]string, error) {
	idx, ok := R.Index(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSequence, name)
	}
	ret := []string{}
	for _, p := range R.Pairs {
		if p.Score < threshold {
			continue
		}
		switch idx {
		case p.I:
			ret = append(ret, R.names[p.J])
		case p.J:
			ret = append(ret, R.names[p.I])
		}
	}
	return ret, nil
}

// CascadeResult is the outcome of a threshold cascade.
type CascadeResult struct {
	Matches   []string
	Threshold float64
	// LastResort is true if only the last threshold gave matches, or none
	// did. Templates chosen this way are unreliable.
	LastResort bool
}

// Cascade tries thresholds in order, and returns the matches for the first
// one that gives any. If none does, the result is empty, with LastResort
// set, and no error: that is for the caller to decide.
func (R *ScoreReport) Cascade(name string, thresholds []float64) (CascadeResult, error) {
	if len(thresholds) == 0 {
		thresholds = DefaultThresholds
	}
	var res CascadeResult
	for i, t := range thresholds {
		m, err := R.Matches(name, t)
		if err != nil {
			return CascadeResult{}, err
		}
		res = CascadeResult{Matches: m, Threshold: t, LastResort: i == len(thresholds)-1}
		if len(m) > 0 {
			break
		}
	}
	return res, nil
}
