/*
 * detect_test.go, part of gocada.
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
	"bytes"
	"log/slog"
	"math/rand"
	"reflect"
	"strings"
	"testing"
)

func detectTestStructure(Te *testing.T) *Structure {
	x, y := Point{1, 0, 0}, Point{0, 1, 0}
	incomplete := phe("B", 30, Point{40, 40, 40}, x, y)
	incomplete.atoms = incomplete.atoms[:5]
	return build(Te, nil,
		single("A", "LYS", 1, Point{0, 0, 0}, "NZ", Point{5, 0, 0}),
		single("A", "ASP", 10, Point{11, 0, 0}, "OD1", Point{8, 0, 0}),
		single("B", "GLU", 1, Point{0, 11, 0}, "OE1", Point{3, 5, 0}),
		incomplete,
	)
}

func TestDetect(Te *testing.T) {
	var buf bytes.Buffer
	o := DefaultOptions()
	o.Logger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	s := detectTestStructure(Te)
	r, err := Detect(s, nil, o)
	if err != nil {
		Te.Fatal(err)
	}
	//LYS A1 with ASP A10 (NZ-OD1 3.0) and with GLU B1 (NZ-OE1 5.39).
	if r.Counts[SaltBridge] != 1 || r.Counts[Attractive] != 1 || r.Counts[HydrogenBond] != 1 {
		Te.Errorf("unexpected counts %v", r.Counts)
	}
	sum := 0
	for _, n := range r.Counts {
		sum += n
	}
	if sum != r.Total() {
		Te.Errorf("counts add up to %d, but there are %d contacts", sum, r.Total())
	}
	if r.MalformedRings != 1 || r.Residues != 4 {
		Te.Errorf("expected 4 residues and 1 malformed ring, got %d and %d", r.Residues, r.MalformedRings)
	}
	if !strings.Contains(buf.String(), "ring.malformed") || !strings.Contains(buf.String(), "structure.done") {
		Te.Errorf("missing log entries:\n%s", buf.String())
	}
	for i := 1; i < len(r.Contacts); i++ {
		p, c := r.Contacts[i-1], r.Contacts[i]
		if p.Res1.Chain == c.Res1.Chain && p.Res1.Number > c.Res1.Number {
			Te.Errorf("contacts out of order: %v, %v", p, c)
		}
	}
}

func TestDetectInterface(Te *testing.T) {
	o := DefaultOptions()
	o.Interface(true)
	c := DefaultCutoffs().Widen(1)
	r, err := Detect(detectTestStructure(Te), c, o)
	if err != nil {
		Te.Fatal(err)
	}
	if r.Total() == 0 {
		Te.Fatal("the NZ-OE1 salt bridge between chains should be found with a 1 A epsilon")
	}
	for _, ct := range r.Contacts {
		if ct.Res1.Chain == ct.Res2.Chain {
			Te.Errorf("interface mode reported an intra-chain contact: %+v", ct)
		}
	}
	if r.Counts[SaltBridge] != 1 {
		Te.Errorf("expected 1 salt bridge, got %d", r.Counts[SaltBridge])
	}
	if r.Strength != 10 {
		Te.Errorf("a lone salt bridge should have a strength of 10, got %g", r.Strength)
	}
	want := []ResidueID{{Chain: "A", Number: 1, Name: "LYS"}, {Chain: "B", Number: 1, Name: "GLU"}}
	if !reflect.DeepEqual(r.InterfaceResidues, want) {
		Te.Errorf("got interface residues %v, want %v", r.InterfaceResidues, want)
	}
	plain, _ := Detect(detectTestStructure(Te), c, nil)
	if plain.Strength != 0 || plain.InterfaceResidues != nil {
		Te.Errorf("strength and interface residues are only set in interface mode")
	}
}

func TestDetectRegion(Te *testing.T) {
	cases := []struct {
		region []int
		counts map[ContactType]int
	}{
		{nil, map[ContactType]int{SaltBridge: 1, Attractive: 1, HydrogenBond: 1}},
		{[]int{1, 10}, map[ContactType]int{SaltBridge: 1, Attractive: 1, HydrogenBond: 1}},
		{[]int{1}, map[ContactType]int{}},
		{[]int{10, 30}, map[ContactType]int{}},
	}
	for _, cs := range cases {
		o := DefaultOptions()
		o.Region(cs.region)
		r, err := Detect(detectTestStructure(Te), nil, o)
		if err != nil {
			Te.Fatal(err)
		}
		for t, n := range r.Counts {
			if n != cs.counts[ContactType(t)] {
				Te.Errorf("region %v: got %d %s contacts, want %d", cs.region, n, ContactType(t), cs.counts[ContactType(t)])
			}
		}
		if r.Residues != 4 {
			Te.Errorf("region %v: the region should not change the residue count", cs.region)
		}
	}
}

// TestDetectRepeatable runs the same structure many times to check that
// the output doesn't depend on map iteration order.
func TestDetectRepeatable(Te *testing.T) {
	rnd := rand.New(rand.NewSource(3))
	s := build(Te, nil, randomResidues(rnd, 200, 30, 6)...)
	first, err := Detect(s, nil, nil)
	if err != nil {
		Te.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		r, _ := Detect(s, nil, nil)
		if r.Total() != first.Total() {
			Te.Fatalf("run %d gave %d contacts, the first %d", i, r.Total(), first.Total())
		}
		for j := range r.Contacts {
			if r.Contacts[j] != first.Contacts[j] {
				Te.Fatalf("run %d differs at contact %d: %v vs %v", i, j, r.Contacts[j], first.Contacts[j])
			}
		}
	}
}
