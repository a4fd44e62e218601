/*
 * helpers_test.go, part of gocada.
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
	"math/rand"
	"testing"
)

type atomSpec struct {
	name string
	p    Point
}

type resSpec struct {
	chain string
	name  string
	num   int
	atoms []atomSpec
}

// build makes a structure from the given residues, failing the test on error.
func build(Te testing.TB, c *Cutoffs, residues ...resSpec) *Structure {
	Te.Helper()
	b := NewBuilder("test", "test.pdb")
	serial := 1
	for _, r := range residues {
		for _, a := range r.atoms {
			b.AddAtom(r.chain, "", r.name, r.num, 0, Atom{Serial: serial, Name: a.name, Element: a.name[:1], Coord: a.p, Occupancy: 1})
			serial++
		}
	}
	s, err := b.Structure(c)
	if err != nil {
		Te.Fatal(err)
	}
	return s
}

// hexagon returns the 6 ring atoms of a Phe/Tyr ring of radius 1.39 A centered at center. The
// ring lies in the plane spanned by u and v, which should be orthonormal.
func hexagon(center, u, v Point) []atomSpec {
	names := []string{"CG", "CD1", "CE1", "CZ", "CE2", "CD2"}
	ret := make([]atomSpec, 0, 6)
	for i, n := range names {
		t := float64(i) * math.Pi / 3
		c, s := 1.39*math.Cos(t), 1.39*math.Sin(t)
		ret = append(ret, atomSpec{n, Point{
			center[0] + c*u[0] + s*v[0],
			center[1] + c*u[1] + s*v[1],
			center[2] + c*u[2] + s*v[2],
		}})
	}
	return ret
}

// phe returns a phenylalanine with its ring centered at center, in the plane spanned by u and v.
// The CA is placed 3.5 A away from the ring center along u.
func phe(chain string, num int, center, u, v Point) resSpec {
	ca := Point{center[0] - 3.5*u[0], center[1] - 3.5*u[1], center[2] - 3.5*u[2]}
	atoms := []atomSpec{{"N", Point{ca[0] - 1, ca[1], ca[2] + 1}}, {"CA", ca}, {"CB", Point{ca[0] + 1.5*u[0], ca[1] + 1.5*u[1], ca[2] + 1.5*u[2]}}}
	atoms = append(atoms, hexagon(center, u, v)...)
	return resSpec{chain, "PHE", num, atoms}
}

// indole returns the 9 ring atoms of a tryptophan, centered near center, in the plane spanned
// by the orthonormal vectors u and v.
func indole(center, u, v Point) []atomSpec {
	flat := []struct {
		name string
		x, y float64
	}{
		{"CD2", -1.21, 0.7}, {"CE2", -1.21, -0.7}, {"CZ2", 0, -1.4}, {"CH2", 1.21, -0.7},
		{"CZ3", 1.21, 0.7}, {"CE3", 0, 1.4}, {"CG", -2.55, 1.1}, {"NE1", -2.55, -1.1}, {"CD1", -3.3, 0},
	}
	ret := make([]atomSpec, 0, len(flat))
	for _, f := range flat {
		ret = append(ret, atomSpec{f.name, Point{
			center[0] + f.x*u[0] + f.y*v[0],
			center[1] + f.x*u[1] + f.y*v[1],
			center[2] + f.x*u[2] + f.y*v[2],
		}})
	}
	return ret
}

// randomFrame returns two random orthonormal vectors.
func randomFrame(rnd *rand.Rand) (Point, Point) {
	scale := func(p Point, f float64) Point { return Point{p[0] * f, p[1] * f, p[2] * f} }
	for {
		a, b := jitter(rnd, Point{}, 1), jitter(rnd, Point{}, 1)
		na := Distance(a, Point{})
		if na < 0.1 {
			continue
		}
		u := scale(a, 1/na)
		dot := b[0]*u[0] + b[1]*u[1] + b[2]*u[2]
		w := b.Sub(scale(u, dot))
		nw := Distance(w, Point{})
		if nw < 0.1 {
			continue
		}
		return u, scale(w, 1/nw)
	}
}

// single returns a residue with a CA at ca and one more atom called name at p.
func single(chain, resname string, num int, ca Point, name string, p Point) resSpec {
	return resSpec{chain, resname, num, []atomSpec{{"CA", ca}, {name, p}}}
}

var randomKinds = []struct {
	name  string
	atoms []string
}{
	{"LYS", []string{"CB", "NZ"}},
	{"ASP", []string{"CB", "OD1", "OD2"}},
	{"GLU", []string{"CB", "OE1", "OE2"}},
	{"ARG", []string{"CB", "NE", "NH1", "NH2"}},
	{"CYS", []string{"CB", "SG"}},
	{"LEU", []string{"CB", "CG", "CD1", "CD2"}},
	{"SER", []string{"CB", "OG"}},
	{"GLY", []string{"O"}},
	{"PHE", []string{"CB"}},
	{"TRP", []string{"CB"}},
}

// randomResidues returns n residues with alpha carbons in a box of side box, and side chain atoms up to
// maxreach away from them.
func randomResidues(rnd *rand.Rand, n int, box, maxreach float64) []resSpec {
	ret := make([]resSpec, 0, n)
	for i := 0; i < n; i++ {
		k := randomKinds[rnd.Intn(len(randomKinds))]
		ca := Point{rnd.Float64() * box, rnd.Float64() * box, rnd.Float64() * box}
		atoms := []atomSpec{{"N", jitter(rnd, ca, 1.5)}, {"CA", ca}}
		for _, name := range k.atoms {
			atoms = append(atoms, atomSpec{name, jitter(rnd, ca, maxreach)})
		}
		if k.name == "PHE" || k.name == "TRP" {
			center := jitter(rnd, ca, math.Max(maxreach-2.5, 0))
			u, v := randomFrame(rnd)
			if k.name == "PHE" {
				atoms = append(atoms, hexagon(center, u, v)...)
			} else {
				atoms = append(atoms, indole(center, u, v)...)
			}
		}
		chain := "A"
		if i >= n/2 {
			chain = "B"
		}
		ret = append(ret, resSpec{chain, k.name, i + 1, atoms})
	}
	return ret
}

// jitter returns a random point at most r away from p.
func jitter(rnd *rand.Rand, p Point, r float64) Point {
	for {
		d := Point{rnd.Float64()*2 - 1, rnd.Float64()*2 - 1, rnd.Float64()*2 - 1}
		if d[0]*d[0]+d[1]*d[1]+d[2]*d[2] <= 1 {
			return Point{p[0] + r*d[0], p[1] + r*d[1], p[2] + r*d[2]}
		}
	}
}
