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
	"fmt"
	"gonum.org/v1/gonum/optimize"   // source via "go get gonum.org/v1/gonum"
)

// A polynomial world coordinate transform modeling optical distortion.
// XCoeffs[i][j] and YCoeffs[i][j] multiply the x^i*y^j term of the world
// x and y coordinate respectively. A well-formed transform has nonzero
// linear terms, so the forward mapping is locally invertible.
// There is no closed-form inverse; WorldToPixel solves for each pixel
// coordinate numerically.
type Polynomial struct {
	XCoeffs [][]float64
	YCoeffs [][]float64
	Shape   []int32
}

func (t *Polynomial) PixelShape() []int32 { return t.Shape }

// Evaluate the polynomial with the given coefficient grid at (x,y)
func evalPoly(coeffs [][]float64, x, y float64) (v float64) {
	xPow:=1.0
	for i:=0; i<len(coeffs); i++ {
		yPow:=1.0
		for j:=0; j<len(coeffs[i]); j++ {
			v+=coeffs[i][j]*xPow*yPow
			yPow*=y
		}
		xPow*=x
	}
	return v
}

// Apply the forward transform to a single coordinate pair
func (t *Polynomial) Apply(x, y float64) (wx, wy float64) {
	return evalPoly(t.XCoeffs, x, y), evalPoly(t.YCoeffs, x, y)
}

func (t *Polynomial) PixelToWorld(xs, ys []float64) (wxs, wys []float64, err error) {
	if len(xs)!=len(ys) { return nil, nil, fmt.Errorf("coordinate slice lengths differ: %d vs %d", len(xs), len(ys)) }
	wxs, wys=make([]float64, len(xs)), make([]float64, len(ys))
	for i:=range xs {
		wxs[i], wys[i]=t.Apply(xs[i], ys[i])
	}
	return wxs, wys, nil
}

// Numerically inverts the forward mapping for each world coordinate pair,
// minimizing the squared residual with Nelder-Mead. The world coordinates
// themselves seed the search, which suffices for near-linear distortions.
func (t *Polynomial) WorldToPixel(wxs, wys []float64) (xs, ys []float64, err error) {
	if len(wxs)!=len(wys) { return nil, nil, fmt.Errorf("coordinate slice lengths differ: %d vs %d", len(wxs), len(wys)) }
	xs, ys=make([]float64, len(wxs)), make([]float64, len(wys))
	for i:=range wxs {
		wx, wy:=wxs[i], wys[i]
		problem := optimize.Problem{
			Func:func(p []float64) float64 {
				px, py:=t.Apply(p[0], p[1])
				dx, dy:=px-wx, py-wy
				return dx*dx + dy*dy
			},
		}
		result, err := optimize.Minimize(problem, []float64{wx, wy}, nil, &optimize.NelderMead{})
		if err!=nil { return nil, nil, fmt.Errorf("inverting polynomial at world (%g,%g): %s", wx, wy, err.Error()) }
		xs[i], ys[i]=result.X[0], result.X[1]
	}
	return xs, ys, nil
}
