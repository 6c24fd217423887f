/*
 * v3.go, part of gocomplex.
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

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Matrix is a set of 3D vectors, one per row.
type Matrix struct {
	*mat.Dense
}

// Zeros returns a zero-filled Matrix with vecs vectors.
func Zeros(vecs int) *Matrix {
	return &Matrix{mat.NewDense(vecs, 3, make([]float64, vecs*3))}
}

// NewMatrix builds a Matrix from data, which is used as backing storage.
// The length of data must be a positive multiple of 3.
func NewMatrix(data []float64) (*Matrix, error) {
	if len(data) == 0 || len(data)%3 != 0 {
		return nil, Error{fmt.Sprintf("Input slice length %d not a positive multiple of 3", len(data)), []string{"NewMatrix"}, true}
	}
	return &Matrix{mat.NewDense(len(data)/3, 3, data)}, nil
}

// NVecs returns the number of vectors (rows) in F.
func (F *Matrix) NVecs() int {
	r, _ := F.Dims()
	return r
}

// Vec returns a copy of the ith vector as a slice.
func (F *Matrix) Vec(i int) []float64 {
	return mat.Row(nil, i, F.Dense)
}

// SomeVecs copies into F the vectors of A with indexes in clist.
// F must have len(clist) vectors.
func (F *Matrix) SomeVecs(A *Matrix, clist []int) {
	if F.NVecs() != len(clist) {
		panic(ErrShape)
	}
	for i, j := range clist {
		F.SetRow(i, A.RawRowView(j))
	}
}

// AddVec puts in F the result of adding the 1x3 vec to every vector of A.
func (F *Matrix) AddVec(A, vec *Matrix) {
	F.opVec(A, vec, 1)
}

// SubVec puts in F the result of subtracting the 1x3 vec from every vector of A.
func (F *Matrix) SubVec(A, vec *Matrix) {
	F.opVec(A, vec, -1)
}

func (F *Matrix) opVec(A, vec *Matrix, sign float64) {
	if F.NVecs() != A.NVecs() || vec.NVecs() != 1 {
		panic(ErrShape)
	}
	v := vec.RawRowView(0)
	for i := 0; i < A.NVecs(); i++ {
		row := make([]float64, 3)
		floats.AddScaledTo(row, A.RawRowView(i), sign, v)
		F.SetRow(i, row)
	}
}

// Distance returns the euclidean distance between the ith vector of F
// and the jth vector of A.
func (F *Matrix) Distance(i int, A *Matrix, j int) float64 {
	return floats.Distance(F.RawRowView(i), A.RawRowView(j), 2)
}

func (F *Matrix) String() string {
	var b strings.Builder
	for i := 0; i < F.NVecs(); i++ {
		r := F.RawRowView(i)
		fmt.Fprintf(&b, "[%8.3f %8.3f %8.3f]\n", r[0], r[1], r[2])
	}
	return b.String()
}
