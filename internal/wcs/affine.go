// Copyright (C) 2021 Karl Lark
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.


package wcs

import (
	"errors"
	"fmt"
)

// An affine world coordinate transform
//   wx = a*x + b*y + c
//   wy = d*x + e*y + f
// with an optional declared pixel array shape [rows, cols].
type Affine struct {
	A, B, C float64
	D, E, F float64
	Shape   []int32
}

// Creates an affine transform from the six coefficients
func NewAffine(a, b, c, d, e, f float64) *Affine {
	return &Affine{a, b, c, d, e, f, nil}
}

// Creates the identity transform
func Identity() *Affine {
	return NewAffine(1, 0, 0, 0, 1, 0)
}

// Creates a translation transform by the given world offsets
func Translation(dx, dy float64) *Affine {
	return NewAffine(1, 0, dx, 0, 1, dy)
}

// Creates a scaling transform with the given per-axis factors
func Scale(sx, sy float64) *Affine {
	return NewAffine(sx, 0, 0, 0, sy, 0)
}

func (t *Affine) PixelShape() []int32 { return t.Shape }

// Apply the transform to a single coordinate pair
func (t *Affine) Apply(x, y float64) (wx, wy float64) {
	wx=t.A*x + t.B*y + t.C
	wy=t.D*x + t.E*y + t.F
	return wx, wy
}

func (t *Affine) PixelToWorld(xs, ys []float64) (wxs, wys []float64, err error) {
	if len(xs)!=len(ys) { return nil, nil, fmt.Errorf("coordinate slice lengths differ: %d vs %d", len(xs), len(ys)) }
	wxs, wys=make([]float64, len(xs)), make([]float64, len(ys))
	for i:=range xs {
		wxs[i], wys[i]=t.Apply(xs[i], ys[i])
	}
	return wxs, wys, nil
}

func (t *Affine) WorldToPixel(wxs, wys []float64) (xs, ys []float64, err error) {
	inv, err:=t.Invert()
	if err!=nil { return nil, nil, err }
	return inv.PixelToWorld(wxs, wys)
}

// Invert the transform. Returns an error for degenerate matrices
func (t *Affine) Invert() (inv *Affine, err error) {
	det:=t.A*t.E-t.B*t.D
	if det<1e-12 && -det<1e-12 {
		msg:=fmt.Sprintf("matrix has no inverse, determinant=%g", det)
		return nil, errors.New(msg)
	}
	/*	wx      = a*x + b*y + c
		wy      = d*x + e*y + f
		solving for x and y gives
		x = ( e*wx - b*wy + b*f - c*e) / (a*e - b*d)
		y = (-d*wx + a*wy + c*d - a*f) / (a*e - b*d) */
	return &Affine{
		A:  t.E/det,
		B: -t.B/det,
		C: (t.B*t.F-t.C*t.E)/det,
		D: -t.D/det,
		E:  t.A/det,
		F: (t.C*t.D-t.A*t.F)/det,
		Shape: t.Shape,
	}, nil
}
