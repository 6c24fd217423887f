/*
 * geometric.go, part of gocomplex.
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
	"math"

	"github.com/rmera/gocomplex/v3"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Transform is a rigid-body transformation. A set of row vectors X is
// transformed as (X + Trans1) * Rotation + Trans2.
type Transform struct {
	Trans1   *v3.Matrix
	Rotation *mat.Dense
	Trans2   *v3.Matrix
}

// Apply returns a transformed copy of coords.
func (T *Transform) Apply(coords *v3.Matrix) *v3.Matrix {
	n := coords.NVecs()
	moved := v3.Zeros(n)
	moved.AddVec(coords, T.Trans1)
	ret := v3.Zeros(n)
	ret.Mul(moved.Dense, T.Rotation)
	ret.AddVec(ret, T.Trans2)
	return ret
}

// Centroid returns the geometric center of the vectors in coords.
func Centroid(coords *v3.Matrix) *v3.Matrix {
	c := v3.Zeros(1)
	for j := 0; j < 3; j++ {
		c.Set(0, j, stat.Mean(mat.Col(nil, j, coords.Dense), nil))
	}
	return c
}

// RotatorTranslatorToSuper returns the rotation and translations that
// superimpose test onto templa with the least RMSD (Kabsch), along with the
// transformed test. Both matrices must have the same number of vectors. A
// reflection is never returned.
func RotatorTranslatorToSuper(test, templa *v3.Matrix) (*v3.Matrix, *Transform, error) {
	n := test.NVecs()
	if n != templa.NVecs() {
		return nil, nil, newError("RotatorTranslatorToSuper", "", ErrMismatch, "%d test vs %d template atoms", n, templa.NVecs())
	}
	if n == 0 {
		return nil, nil, newError("RotatorTranslatorToSuper", "", ErrNoAtoms, "nothing to superimpose")
	}
	ctest := Centroid(test)
	ctempla := Centroid(templa)
	ttest := v3.Zeros(n)
	ttest.SubVec(test, ctest)
	ttempla := v3.Zeros(n)
	ttempla.SubVec(templa, ctempla)
	var h mat.Dense
	h.Mul(ttest.T(), ttempla.Dense)
	var svd mat.SVD
	if ok := svd.Factorize(&h, mat.SVDFull); !ok {
		return nil, nil, newError("RotatorTranslatorToSuper", "", nil, "SVD failed to converge")
	}
	var u, vt, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	vt.CloneFrom(v.T())
	//Correct for reflections
	var vut mat.Dense
	vut.Mul(&v, u.T())
	d := 1.0
	if mat.Det(&vut) < 0 {
		d = -1
	}
	diag := mat.NewDiagDense(3, []float64{1, 1, d})
	rot := mat.NewDense(3, 3, nil)
	rot.Product(&u, diag, &vt)
	ctest.Scale(-1, ctest.Dense)
	tr := &Transform{Trans1: ctest, Rotation: rot, Trans2: ctempla}
	return tr.Apply(test), tr, nil
}

// Super determines the best rotation and translations to superimpose the
// vectors in test listed in testlst on the vectors of templa listed in
// templalst. It returns a copy of the whole of test with the transformation
// applied, and the transformation. testlst and templalst must have the same
// number of elements.
func Super(test, templa *v3.Matrix, testlst, templalst []int) (*v3.Matrix, *Transform, error) {
	if len(testlst) != len(templalst) {
		return nil, nil, newError("Super", "", ErrMismatch, "mismatched template and test atom numbers: %d, %d", len(templalst), len(testlst))
	}
	if len(testlst) == 0 {
		return nil, nil, newError("Super", "", ErrNoAtoms, "no atoms to superimpose")
	}
	ctest := v3.Zeros(len(testlst))
	ctest.SomeVecs(test, testlst)
	ctempla := v3.Zeros(len(templalst))
	ctempla.SomeVecs(templa, templalst)
	_, tr, err := RotatorTranslatorToSuper(ctest, ctempla)
	if err != nil {
		return nil, nil, errDecorate(err, "Super")
	}
	return tr.Apply(test), tr, nil
}

// RMSD returns the root of the mean square deviation between the sets of
// cartesian coordinates in test and template.
func RMSD(test, template *v3.Matrix) (float64, error) {
	n := test.NVecs()
	if n != template.NVecs() || n == 0 {
		return 0, newError("RMSD", "", ErrMismatch, "ill formed matrices for RMSD calculation: %d and %d vectors", n, template.NVecs())
	}
	var sq float64
	for i := 0; i < n; i++ {
		d := floats.Distance(test.RawRowView(i), template.RawRowView(i), 2)
		sq += d * d
	}
	return math.Sqrt(sq / float64(n)), nil
}
