/*
 * geometry.go, part of gocada.
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
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Deg2Rad and Rad2Deg convert between degrees and radians.
const (
	Deg2Rad = math.Pi / 180
	Rad2Deg = 180 / math.Pi
)

// appzero is the tolerance under which a norm is taken as zero.
const appzero = 1e-12

// Point is a cartesian coordinate, in A.
type Point [3]float64

// Finite returns true if none of the components is NaN or Inf.
func (p Point) Finite() bool {
	for _, v := range p {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{p[0] - q[0], p[1] - q[1], p[2] - q[2]}
}

// Distance returns the euclidean distance between p and q.
// Both points must be finite, see Point.Finite.
func Distance(p, q Point) float64 {
	return floats.Distance(p[:], q[:], 2)
}

// Centroid returns the geometric center of points. It needs
// at least 3 points, as it is meant for rings.
func Centroid(points []Point) (Point, error) {
	var c Point
	if len(points) < 3 {
		return c, &InsufficientPointsError{Got: len(points), Need: 3}
	}
	for _, p := range points {
		c[0] += p[0]
		c[1] += p[1]
		c[2] += p[2]
	}
	n := float64(len(points))
	return Point{c[0] / n, c[1] / n, c[2] / n}, nil
}

// Normal returns a unit vector normal to the least-squares plane through points.
// The sign of the vector is arbitrary, so it should be treated as an axis (see AxisAngle).
func Normal(points []Point) (Point, error) {
	n, _, err := PlaneFit(points)
	return n, errDecorate(err, "Normal")
}

// PlaneFit fits a plane through points and returns its unit normal and the
// RMS distance of the points to the plane. The normal is the right singular vector
// for the smallest singular value of the centered coordinates.
func PlaneFit(points []Point) (Point, float64, error) {
	var normal Point
	c, err := Centroid(points)
	if err != nil {
		return normal, 0, errDecorate(err, "PlaneFit")
	}
	centered := mat.NewDense(len(points), 3, nil)
	for i, p := range points {
		d := p.Sub(c)
		centered.SetRow(i, d[:])
	}
	var svd mat.SVD
	if ok := svd.Factorize(centered, mat.SVDThin); !ok {
		//Only happens with non-finite input. We fall back to the
		//cross product of the first two edges.
		return crossNormal(points), 0, nil
	}
	var v mat.Dense
	svd.VTo(&v)
	values := svd.Values(nil)
	last := len(values) - 1
	for i := 0; i < 3; i++ {
		normal[i] = v.At(i, last)
	}
	nn := floats.Norm(normal[:], 2)
	if nn < appzero {
		return crossNormal(points), 0, nil
	}
	floats.Scale(1/nn, normal[:])
	rms := values[last] / math.Sqrt(float64(len(points)))
	return normal, rms, nil
}

// crossNormal is the unit normal defined by the first 3 points.
func crossNormal(points []Point) Point {
	a := points[1].Sub(points[0])
	b := points[2].Sub(points[0])
	n := Point{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
	nn := floats.Norm(n[:], 2)
	if nn > appzero {
		floats.Scale(1/nn, n[:])
	}
	return n
}

// AngleBetween returns the angle between u and v in radians, in [0, pi].
// The cosine is clamped to [-1,1] to take care of floating point errors.
// A zero vector gives an angle of 0.
func AngleBetween(u, v Point) float64 {
	normproduct := floats.Norm(u[:], 2) * floats.Norm(v[:], 2)
	if normproduct < appzero {
		return 0
	}
	argument := floats.Dot(u[:], v[:]) / normproduct
	argument = math.Max(-1, math.Min(1, argument))
	return math.Acos(argument)
}

// AxisAngle is the angle between the lines spanned by u and v, in [0, pi/2].
// Use it for ring normals, which have no meaningful sign.
func AxisAngle(u, v Point) float64 {
	a := AngleBetween(u, v)
	return math.Min(a, math.Pi-a)
}
