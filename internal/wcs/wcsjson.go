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
	"encoding/json"
	"fmt"
	"os"
)

// A JSON-serializable description of a world coordinate transform,
// as consumed by the CLI and the REST API.
type Description struct {
	Type       string      `json:"type"`                 // "affine" or "polynomial"
	Coeffs     []float64   `json:"coeffs,omitempty"`     // affine: [a, b, c, d, e, f]
	XCoeffs    [][]float64 `json:"xCoeffs,omitempty"`    // polynomial x coefficient grid
	YCoeffs    [][]float64 `json:"yCoeffs,omitempty"`    // polynomial y coefficient grid
	PixelShape []int32     `json:"pixelShape,omitempty"` // optional [rows, cols]
}

// Materializes the transform this description denotes
func (d *Description) Transform() (Transform, error) {
	switch d.Type {
	case "affine":
		if len(d.Coeffs)!=6 {
			return nil, fmt.Errorf("affine transform needs 6 coefficients, got %d", len(d.Coeffs))
		}
		c:=d.Coeffs
		t:=NewAffine(c[0], c[1], c[2], c[3], c[4], c[5])
		t.Shape=d.PixelShape
		return t, nil

	case "polynomial":
		if len(d.XCoeffs)==0 || len(d.YCoeffs)==0 {
			return nil, fmt.Errorf("polynomial transform needs xCoeffs and yCoeffs")
		}
		return &Polynomial{d.XCoeffs, d.YCoeffs, d.PixelShape}, nil

	default:
		return nil, fmt.Errorf("unknown transform type '%s'", d.Type)
	}
}

// Loads a transform description from the given JSON file
func LoadDescription(fileName string) (*Description, error) {
	data, err:=os.ReadFile(fileName)
	if err!=nil { return nil, err }
	var d Description
	if err:=json.Unmarshal(data, &d); err!=nil {
		return nil, fmt.Errorf("parsing transform file '%s': %s", fileName, err.Error())
	}
	return &d, nil
}
