/*
 * geometry_test.go, part of gocada.
 *
 * Copyright 2026 The gocada authors.
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

package gocada

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
)

const tol = 1e-9

func unitHexagon(u, v Point) []Point {
	ret := make([]Point, 0, 6)
	for i := 0; i < 6; i++ {
		t := float64(i) * math.Pi / 3
		c, s := math.Cos(t), math.Sin(t)
		ret = append(ret, Point{c*u[0] + s*v[0], c*u[1] + s*v[1], c*u[2] + s*v[2]})
	}
	return ret
}

// TestRingGeometry checks centroid and normal for a perfect hexagon of unit radius at the origin,
// both in the XY plane and in a tilted plane.
func TestRingGeometry(Te *testing.T) {
	s := 1 / math.Sqrt2
	planes := [][2]Point{
		{{1, 0, 0}, {0, 1, 0}},
		{{s, s, 0}, {0, 0, 1}},
	}
	for _, pl := range planes {
		ring := unitHexagon(pl[0], pl[1])
		c, err := Centroid(ring)
		if err != nil {
			Te.Fatal(err)
		}
		if Distance(c, Point{}) > tol {
			Te.Errorf("centroid should be the origin, got %v", c)
		}
		n, err := Normal(ring)
		if err != nil {
			Te.Fatal(err)
		}
		if math.Abs(floats.Norm(n[:], 2)-1) > tol {
			Te.Errorf("normal %v is not unitary", n)
		}
		for _, p := range ring {
			if d := floats.Dot(n[:], p[:]); math.Abs(d) > 1e-8 {
				Te.Errorf("normal %v not perpendicular to in-plane vector %v (dot %g)", n, p, d)
			}
		}
		_, rms, _ := PlaneFit(ring)
		if rms > 1e-8 {
			Te.Errorf("a planar ring should have zero RMS, got %g", rms)
		}
	}
}

func TestPlaneFitNonPlanar(Te *testing.T) {
	ring := unitHexagon(Point{1, 0, 0}, Point{0, 1, 0})
	for i := range ring {
		if i%2 == 0 {
			ring[i][2] = 0.5
		} else {
			ring[i][2] = -0.5
		}
	}
	n, rms, err := PlaneFit(ring)
	if err != nil {
		Te.Fatal(err)
	}
	if math.Abs(math.Abs(n[2])-1) > 1e-8 {
		Te.Errorf("best plane should still be XY, normal %v", n)
	}
	if math.Abs(rms-0.5) > 1e-8 {
		Te.Errorf("expected RMS 0.5, got %g", rms)
	}
}

func TestInsufficientPoints(Te *testing.T) {
	pts := []Point{{0, 0, 0}, {1, 0, 0}}
	_, err := Centroid(pts)
	var ip *InsufficientPointsError
	if !errors.As(err, &ip) {
		Te.Fatalf("expected InsufficientPointsError, got %v", err)
	}
	if !ip.Critical() || ip.Got != 2 {
		Te.Errorf("unexpected error contents: %+v", ip)
	}
	_, err = Normal(pts)
	if !errors.As(err, &ip) {
		Te.Fatalf("expected InsufficientPointsError from Normal, got %v", err)
	}
	if len(ip.Decorate("")) == 0 {
		Te.Errorf("error from Normal should be decorated")
	}
}

func TestAngles(Te *testing.T) {
	cases := []struct {
		u, v  Point
		angle float64
		axis  float64
	}{
		{Point{1, 0, 0}, Point{1, 0, 0}, 0, 0},
		{Point{1, 0, 0}, Point{3, 0, 0}, 0, 0},
		{Point{1, 0, 0}, Point{-1, 0, 0}, math.Pi, 0},
		{Point{1, 0, 0}, Point{0, 2, 0}, math.Pi / 2, math.Pi / 2},
		{Point{1, 1, 0}, Point{-1, 0, 0}, 3 * math.Pi / 4, math.Pi / 4},
		{Point{0.1, 0.2, 0.3}, Point{0.1 * 7, 0.2 * 7, 0.3 * 7}, 0, 0}, //rounding would push the cosine over 1
	}
	for _, c := range cases {
		a := AngleBetween(c.u, c.v)
		if math.IsNaN(a) || math.Abs(a-c.angle) > 1e-7 {
			Te.Errorf("AngleBetween(%v, %v) = %g, want %g", c.u, c.v, a, c.angle)
		}
		if ax := AxisAngle(c.u, c.v); math.Abs(ax-c.axis) > 1e-7 {
			Te.Errorf("AxisAngle(%v, %v) = %g, want %g", c.u, c.v, ax, c.axis)
		}
	}
}

func TestDistance(Te *testing.T) {
	if d := Distance(Point{1, 2, 3}, Point{4, 6, 3}); math.Abs(d-5) > tol {
		Te.Errorf("expected 5, got %g", d)
	}
	if (Point{1, math.NaN(), 0}).Finite() || (Point{math.Inf(1), 0, 0}).Finite() {
		Te.Errorf("non-finite points reported as finite")
	}
}
