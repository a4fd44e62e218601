/*
 * cutoffs.go, part of gocada.
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
	"fmt"
	"math"
)

// ContactType is the physicochemical class of a contact.
type ContactType uint8

const (
	HydrogenBond ContactType = iota
	Hydrophobic
	Attractive
	Repulsive
	SaltBridge
	Disulfide
	Stacking
	// The apolar types are only searched for in interface mode, between
	// entities. They are unfavorable contacts, and weigh nothing in Strength.
	PolarApolar
	PositiveApolar
	NegativeApolar
	NumContactTypes
)

var contactNames = [NumContactTypes]string{
	HydrogenBond:   "hydrogen_bond",
	Hydrophobic:    "hydrophobic",
	Attractive:     "attractive",
	Repulsive:      "repulsive",
	SaltBridge:     "salt_bridge",
	Disulfide:      "disulfide_bond",
	Stacking:       "stacking",
	PolarApolar:    "polar_apolar",
	PositiveApolar: "positive_apolar",
	NegativeApolar: "negative_apolar",
}

var contactAbbrevs = [NumContactTypes]string{"HB", "HY", "AT", "RE", "SB", "DS", "AS", "PA", "PosA", "NegA"}

// contact strengths, in arbitrary units.
var contactStrengths = [NumContactTypes]float64{
	HydrogenBond: 2.6,
	Hydrophobic:  0.6,
	Attractive:   10,
	Repulsive:    10,
	SaltBridge:   10,
	Disulfide:    85,
	Stacking:     1.5,
}

func (t ContactType) String() string {
	if t >= NumContactTypes {
		return fmt.Sprintf("ContactType(%d)", t)
	}
	return contactNames[t]
}

// Abbrev returns the short code of the type, as used in summaries.
func (t ContactType) Abbrev() string { return contactAbbrevs[t] }

// Strength returns the weight of one contact of type t in the interface strength
// of a structure (see Result.Strength).
func (t ContactType) Strength() float64 { return contactStrengths[t] }

// InterfaceOnly returns true for the types that are only searched for between entities.
func (t ContactType) InterfaceOnly() bool { return t >= PolarApolar && t < NumContactTypes }

var contactAliases = map[string]ContactType{
	"aromatic":     Stacking, //the name used for stacking in some configuration files
	"polar-apolar": PolarApolar,
	"pos-apolar":   PositiveApolar,
	"neg-apolar":   NegativeApolar,
}

// ContactTypeFromName returns the type with the given name.
func ContactTypeFromName(name string) (ContactType, bool) {
	for i, n := range contactNames {
		if n == name {
			return ContactType(i), true
		}
	}
	t, ok := contactAliases[name]
	return t, ok
}

// ResidueReach is the largest distance, in A, between the alpha carbon and
// any heavy atom of a standard aminoacid in a normal conformation (the NH1/NH2
// of arginine).
const ResidueReach = 7.235

// Range is a closed interval of distances, in A.
type Range struct {
	Min float64
	Max float64
}

// Contains returns true if Min <= d <= Max.
func (r Range) Contains(d float64) bool { return d >= r.Min && d <= r.Max }

// StackingAngles are the windows, in degrees, for the angle between two ring planes
// (0 is parallel, 90 perpendicular).
type StackingAngles struct {
	ParallelMax      float64
	PerpendicularMin float64
	IncludeOther     bool
}

// Cutoffs is the table of distance criteria for every contact type. It is built once
// per run and not modified afterwards, so it can be shared by all workers.
type Cutoffs struct {
	Ranges        [NumContactTypes]Range
	MinSeparation [NumContactTypes]int //minimum |i-j| in sequence for residues of the same chain
	Angles        StackingAngles
	Planarity     float64 //max RMS deviation from the plane for an aromatic ring, 0 disables the check
}

// DefaultCutoffs returns the built-in criteria.
func DefaultCutoffs() *Cutoffs {
	c := new(Cutoffs)
	c.Ranges = [NumContactTypes]Range{
		HydrogenBond:   {0, 3.9},
		Hydrophobic:    {2.0, 4.5},
		Attractive:     {2.0, 4.0},
		Repulsive:      {2.0, 6.0},
		SaltBridge:     {0, 5.0},
		Disulfide:      {0, 2.05},
		Stacking:       {2.0, 5.5},
		PolarApolar:    {2.0, 4.0},
		PositiveApolar: {2.0, 4.0},
		NegativeApolar: {2.0, 4.0},
	}
	c.MinSeparation = [NumContactTypes]int{
		HydrogenBond:   4,
		Hydrophobic:    2,
		Attractive:     1,
		Repulsive:      1,
		SaltBridge:     2,
		Disulfide:      2,
		Stacking:       2,
		PolarApolar:    1,
		PositiveApolar: 1,
		NegativeApolar: 1,
	}
	c.Angles = StackingAngles{ParallelMax: 20, PerpendicularMin: 80, IncludeOther: true}
	c.Planarity = 0.25
	return c
}

// Copy returns a copy of c.
func (c *Cutoffs) Copy() *Cutoffs {
	r := *c
	return &r
}

// Validate checks that the criteria make sense.
func (c *Cutoffs) Validate() error {
	for i, r := range c.Ranges {
		t := ContactType(i)
		if math.IsNaN(r.Min) || math.IsNaN(r.Max) || math.IsInf(r.Max, 0) {
			return fmt.Errorf("cutoffs: non-finite range for %s", t)
		}
		if r.Min < 0 || r.Max <= 0 || r.Min > r.Max {
			return fmt.Errorf("cutoffs: invalid range [%g, %g] for %s", r.Min, r.Max, t)
		}
		if c.MinSeparation[i] < 1 {
			return fmt.Errorf("cutoffs: minimum sequence separation for %s must be at least 1", t)
		}
	}
	a := c.Angles
	if a.ParallelMax < 0 || a.PerpendicularMin > 90 || a.ParallelMax > a.PerpendicularMin {
		return fmt.Errorf("cutoffs: invalid stacking angles: parallel <= %g, perpendicular >= %g", a.ParallelMax, a.PerpendicularMin)
	}
	if c.Planarity < 0 {
		return fmt.Errorf("cutoffs: negative planarity tolerance")
	}
	return nil
}

// Widen returns a copy of c where epsilon is added to the upper bound of every range.
func (c *Cutoffs) Widen(epsilon float64) *Cutoffs {
	r := c.Copy()
	for i := range r.Ranges {
		r.Ranges[i].Max += epsilon
	}
	return r
}

// MaxDistance returns the largest distance cutoff over all types.
func (c *Cutoffs) MaxDistance() float64 {
	m := 0.0
	for _, r := range c.Ranges {
		m = math.Max(m, r.Max)
	}
	return m
}

// PruningRadius is the largest Calpha-Calpha distance at which two standard residues
// can still have atoms closer than MaxDistance. With the default cutoffs it is 20.47 A.
func (c *Cutoffs) PruningRadius() float64 {
	return c.MaxDistance() + 2*ResidueReach
}
