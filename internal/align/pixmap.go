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
	"errors"
	"fmt"
	"github.com/pbnjay/memory"
	nl "github.com/karllark/stcal/internal"
	"github.com/karllark/stcal/internal/wcs"
)

// Returned by CalcPixmap when no shape is given and the input transform
// declares no pixel shape of its own
var ErrMissingExtent=errors.New("no shape given, and input transform declares no pixel shape")

// Upper limit in bytes for a single pixel map allocation, default 70% of physical memory
var MaxPixmapBytes=memory.TotalMemory()/10*7

// A dense pixel grid map of shape (Rows, Cols, 2). Data holds one (x,y)
// coordinate pair per grid point, row-major: the pair for grid point
// (row, col) lives at Data[2*(col + row*Cols)] and the following entry.
type Pixmap struct {
	Rows int32     `json:"rows"`
	Cols int32     `json:"cols"`
	Data []float64 `json:"data"`
}

// Creates a zeroed pixel map of the given grid shape
func NewPixmap(rows, cols int32) *Pixmap {
	return &Pixmap{rows, cols, make([]float64, 2*int(rows)*int(cols))}
}

// Returns the mapped (x,y) coordinate pair for the given grid point
func (p *Pixmap) At(row, col int32) (x, y float64) {
	i:=2*(col + row*p.Cols)
	return p.Data[i], p.Data[i+1]
}

// Reproject returns a function mapping pixel coordinates in the from frame
// to pixel coordinates in the to frame, passing through world coordinates.
func Reproject(from, to wcs.Transform) func(xs, ys []float64) (mxs, mys []float64, err error) {
	return func(xs, ys []float64) (mxs, mys []float64, err error) {
		wxs, wys, err:=from.PixelToWorld(xs, ys)
		if err!=nil { return nil, nil, err }
		return to.WorldToPixel(wxs, wys)
	}
}

// CalcPixmap returns a dense pixel grid map from the input frame into the
// output frame: entry (row, col) holds the output-frame pixel coordinates
// corresponding to input-frame pixel (col, row). The grid covers the given
// shape [rows, cols]; a nil shape falls back on the pixel shape declared
// by the input transform, and fails with ErrMissingExtent when there is
// none. Coordinates mapping outside the output frame are not clipped or
// masked; whatever the transforms produce there is passed through.
func CalcPixmap(in, out wcs.Transform, shape []int32) (p *Pixmap, err error) {
	var bb BBox
	if shape!=nil {
		bb, err=BBoxFromShape(shape)
		if err!=nil { return nil, err }
		nl.LogDebugf("Bounding box from data shape: %v\n", bb)
	} else {
		shaper, ok:=in.(wcs.PixelShaper)
		if !ok || shaper.PixelShape()==nil { return nil, ErrMissingExtent }
		bb, err=BBoxFromShape(shaper.PixelShape())
		if err!=nil { return nil, err }
		nl.LogDebugf("Bounding box from WCS: %v\n", bb)
	}

	rows, cols:=bb.GridShape()
	if bytes:=uint64(rows)*uint64(cols)*2*8; bytes>MaxPixmapBytes {
		return nil, fmt.Errorf("pixel map of %d MiB exceeds memory limit of %d MiB", bytes/1024/1024, MaxPixmapBytes/1024/1024)
	}

	xs, ys, rows, cols:=GridFromBBox(bb)

	mxs, mys, err:=Reproject(in, out)(xs, ys)
	if err!=nil { return nil, err }

	p=NewPixmap(rows, cols)
	for i:=range mxs {
		p.Data[2*i  ]=mxs[i]
		p.Data[2*i+1]=mys[i]
	}
	return p, nil
}
