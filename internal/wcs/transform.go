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

// A world coordinate system transform, mapping pixel array coordinates to
// world coordinates and back. Implementations operate on whole coordinate
// slices at once; xs and ys must have equal length, and the returned slices
// match that length. Implementations must not mutate their inputs.
type Transform interface {
	PixelToWorld(xs, ys []float64) (wxs, wys []float64, err error)
	WorldToPixel(wxs, wys []float64) (xs, ys []float64, err error)
}

// Optional capability of a Transform that knows the extent of the pixel
// array it belongs to. PixelShape returns [rows, cols], or nil when the
// transform declares no extent.
type PixelShaper interface {
	PixelShape() []int32
}
