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


package align

import (
	"fmt"
	"math"
)

// A bounding box over pixel coordinates, as per-axis (min,max) ranges.
// Bounds bracket pixel edges, not just pixel centers: the box for an
// array of n pixels per axis runs from -0.5 to n-0.5.
type BBox struct {
	XMin, XMax float64
	YMin, YMax float64
}

// Calculates the bounding box covering a pixel array of the given
// shape [rows, cols], under the half-pixel edge convention.
func BBoxFromShape(shape []int32) (bb BBox, err error) {
	if len(shape)!=2 {
		return BBox{}, fmt.Errorf("shape needs exactly 2 axes, got %d", len(shape))
	}
	if shape[0]<=0 || shape[1]<=0 {
		return BBox{}, fmt.Errorf("shape axes must be positive, got %v", shape)
	}
	return BBox{
		XMin: -0.5, XMax: float64(shape[1])-0.5,
		YMin: -0.5, YMax: float64(shape[0])-0.5,
	}, nil
}

// Returns the number of integer pixel centers inside the box per axis
func (bb BBox) GridShape() (rows, cols int32) {
	cols=int32(math.Floor(bb.XMax)-math.Ceil(bb.XMin)) + 1
	rows=int32(math.Floor(bb.YMax)-math.Ceil(bb.YMin)) + 1
	return rows, cols
}

// Samples every integer pixel center inside the bounding box, row-major.
// Returns two flat coordinate grids of rows*cols entries each, indexed
// col + row*cols, holding the x and y pixel coordinates respectively.
func GridFromBBox(bb BBox) (xs, ys []float64, rows, cols int32) {
	rows, cols=bb.GridShape()
	x0, y0:=math.Ceil(bb.XMin), math.Ceil(bb.YMin)

	xs, ys=make([]float64, int(rows)*int(cols)), make([]float64, int(rows)*int(cols))
	for row:=int32(0); row<rows; row++ {
		offset:=row*cols
		y:=y0+float64(row)
		for col:=int32(0); col<cols; col++ {
			xs[offset+col]=x0+float64(col)
			ys[offset+col]=y
		}
	}
	return xs, ys, rows, cols
}
