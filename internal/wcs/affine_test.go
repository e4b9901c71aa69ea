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
	"math"
	"testing"
	"github.com/valyala/fastrand"
)


func TestAffineIdentity(t *testing.T) {
	tr:=Identity()
	xs:=[]float64{0, 1, 2.5, -3}
	ys:=[]float64{0, -1, 4.5, 7}
	wxs, wys, err:=tr.PixelToWorld(xs, ys)
	if err!=nil { t.Fatalf("identity transform failed: %s", err.Error()) }
	for i:=range xs {
		if wxs[i]!=xs[i] || wys[i]!=ys[i] {
			t.Logf("identity(%f,%f) got (%f,%f)\n", xs[i], ys[i], wxs[i], wys[i])
			t.Fail()
		}
	}
}

func TestAffineInvertRoundTrip(t *testing.T) {
	rng:=fastrand.RNG{}
	coeff:=func() float64 { return float64(rng.Uint32n(2000))/100.0 - 10.0 }

	for i:=0; i<100; i++ {
		tr:=NewAffine(coeff(), coeff(), coeff(), coeff(), coeff(), coeff())
		if det:=tr.A*tr.E-tr.B*tr.D; det<1e-3 && -det<1e-3 {
			continue // skip near-degenerate random draws
		}

		xs:=[]float64{0, 17.25, -4}
		ys:=[]float64{0, -3.5, 12}
		wxs, wys, err:=tr.PixelToWorld(xs, ys)
		if err!=nil { t.Fatalf("forward transform failed: %s", err.Error()) }
		rxs, rys, err:=tr.WorldToPixel(wxs, wys)
		if err!=nil { t.Fatalf("inverse transform failed: %s", err.Error()) }

		for j:=range xs {
			if math.Abs(rxs[j]-xs[j])>1e-6 || math.Abs(rys[j]-ys[j])>1e-6 {
				t.Logf("round trip of (%f,%f) through %v got (%f,%f)\n", xs[j], ys[j], *tr, rxs[j], rys[j])
				t.Fail()
			}
		}
	}
}

func TestAffineInvertDegenerate(t *testing.T) {
	tr:=NewAffine(1, 2, 3, 2, 4, 6) // rows are linearly dependent
	_, err:=tr.Invert()
	if err==nil {
		t.Logf("inverting degenerate matrix did not fail\n")
		t.Fail()
	}
}

func TestAffineTranslation(t *testing.T) {
	tr:=Translation(2, -3)
	wx, wy:=tr.Apply(5, 7)
	if wx!=7 || wy!=4 {
		t.Logf("translation(2,-3) of (5,7) got (%f,%f) expect (7,4)\n", wx, wy)
		t.Fail()
	}
}

func TestAffineMismatchedSlices(t *testing.T) {
	tr:=Identity()
	_, _, err:=tr.PixelToWorld([]float64{1, 2}, []float64{1})
	if err==nil {
		t.Logf("mismatched slice lengths did not fail\n")
		t.Fail()
	}
}
