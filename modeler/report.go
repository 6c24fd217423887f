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

package modeler

import (
	"math"
	"slices"

	"github.com/rmera/gocomplex/assign"
	"gonum.org/v1/gonum/stat"
)

// Stage is a step of the work done for one template.
type Stage string

const (
	StageFetch     Stage = "fetch"
	StageRead      Stage = "read"
	StageAlign     Stage = "align"
	StageAssign    Stage = "assign"
	StageSuperpose Stage = "superpose"
	StageValidate  Stage = "validate"
	StageDone      Stage = "done"
)

// ChainModel is one target chain superimposed on its template chain.
type ChainModel struct {
	Target        string
	TemplateChain string
	File          string
	RMSD          float64 // over the alpha carbons used for the fit
	Atoms         int     // number of alpha carbons used for the fit
}

// Result is what happened with one template. If Err is not nil, Stage is
// the step that failed, and the fields belonging to later steps are empty.
type Result struct {
	Template string
	Stage    Stage
	Err      error
	// Candidates maps every template chain to the target chains that align
	// to it.
	Candidates map[string][]string
	// LastResort lists the template chains whose candidates only came at
	// the lowest score threshold.
	LastResort []string
	Assignment *assign.Assignment
	Stats      assign.Stats
	Chains     []ChainModel
	Model      string // combined model file
	Clash      bool
	// Closest is the smallest distance between atoms of different chains
	// in the model.
	Closest float64
}

// OK is true if a model was built and checked.
func (R *Result) OK() bool {
	return R.Err == nil && R.Stage == StageDone
}

// Passed is true if a model was built and it has no clashes.
func (R *Result) Passed() bool {
	return R.OK() && !R.Clash
}

// MeanRMSD is the mean of the per-chain RMSDs, or NaN if there are none.
func (R *Result) MeanRMSD() float64 {
	if len(R.Chains) == 0 {
		return math.NaN()
	}
	v := make([]float64, len(R.Chains))
	for i, c := range R.Chains {
		v[i] = c.RMSD
	}
	return stat.Mean(v, nil)
}

// RMSDOf returns the RMSD of target in this model, or NaN.
func (R *Result) RMSDOf(target string) float64 {
	i := slices.IndexFunc(R.Chains, func(c ChainModel) bool { return c.Target == target })
	if i < 0 {
		return math.NaN()
	}
	return R.Chains[i].RMSD
}

// Report summarizes a run.
type Report struct {
	RunID string
	// Targets are the distinct target chain labels, in input order.
	Targets   []string
	Templates []string
	// SearchErrors holds the searches that failed, by chain identifier.
	SearchErrors map[string]error
	Results      []*Result
}

// Passed returns the model files that passed the clash check, in template
// order.
func (R *Report) Passed() []string {
	var ret []string
	for _, r := range R.Results {
		if r.Passed() {
			ret = append(ret, r.Model)
		}
	}
	return ret
}

// Result returns the result for template, or nil.
func (R *Report) Result(template string) *Result {
	for _, r := range R.Results {
		if r.Template == template {
			return r
		}
	}
	return nil
}
