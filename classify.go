/*
 * classify.go, part of gocada.
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

// StackMode is the geometry of an aromatic stacking.
type StackMode uint8

const (
	NoStack StackMode = iota
	Parallel
	Perpendicular
	OtherStack
)

func (m StackMode) String() string {
	switch m {
	case Parallel:
		return "parallel"
	case Perpendicular:
		return "perpendicular"
	case OtherStack:
		return "other"
	}
	return ""
}

// Contact is a classified interaction between two residues. For stacking, the atom names are
// RingAtomName and the distance is between ring centroids. Contacts only hold identifiers, not
// references to the structure, so they can outlive it.
type Contact struct {
	Res1, Res2   ResidueID
	Atom1, Atom2 string
	Type         ContactType
	Mode         StackMode
	Distance     float64
	Angle        float64 //degrees between ring planes, only for stacking
}

// Label returns the type name, with the stacking mode appended for stacking contacts
// (i.e. "stacking-parallel").
func (C Contact) Label() string {
	if C.Type == Stacking && C.Mode != NoStack {
		return C.Type.String() + "-" + C.Mode.String()
	}
	return C.Type.String()
}

// sameChainSeparation returns |i-j| in sequence, or -1 if the residues are in different chains.
// Residues that share a number and differ only in insertion code (52, 52A, 52B) are
// separated by their distance along the chain.
func sameChainSeparation(a, b *Residue) int {
	if a.ChainID != b.ChainID {
		return -1
	}
	d := a.Number - b.Number
	if d == 0 {
		d = a.seq - b.seq
	}
	if d < 0 {
		d = -d
	}
	return d
}

// allowed checks the sequence separation rule for type t.
func (c *Cutoffs) allowed(t ContactType, sep int) bool {
	return sep < 0 || sep >= c.MinSeparation[t]
}

// Classify returns all the contacts between residues a and b. The residues are put in
// structure order first, so Classify(a, b) and Classify(b, a) give the same result. A residue
// is never in contact with itself. Classify doesn't modify the residues. The interface only
// types are not searched for, see ClassifyInterface.
func Classify(a, b *Residue, c *Cutoffs) []Contact {
	return classify(a, b, c, false)
}

// ClassifyInterface is like Classify, but it returns nothing for residues of the same entity,
// and it also looks for the contacts between apolar and polar or charged atoms.
func ClassifyInterface(a, b *Residue, c *Cutoffs) []Contact {
	if a.Entity == b.Entity {
		return nil
	}
	return classify(a, b, c, true)
}

func classify(a, b *Residue, c *Cutoffs, iface bool) []Contact {
	if a == b {
		return nil
	}
	if b.index < a.index {
		a, b = b, a
	}
	var ret []Contact
	sep := sameChainSeparation(a, b)
	ret = classifyAtoms(ret, a, b, c, sep, iface)
	if c.allowed(SaltBridge, sep) && a.Type.Charge()*b.Type.Charge() < 0 {
		ret = saltBridge(ret, a, b, c)
	}
	if c.allowed(Stacking, sep) {
		ret = stacking(ret, a, b, c)
	}
	return ret
}

// classifyAtoms goes through the atom pairs for the atom-level contact types.
func classifyAtoms(ret []Contact, a, b *Residue, c *Cutoffs, sep int, iface bool) []Contact {
	hydrophobic := a.Type.Hydrophobic() && b.Type.Hydrophobic() && c.allowed(Hydrophobic, sep)
	disulfide := a.Type == Cys && b.Type == Cys && c.allowed(Disulfide, sep)
	hbond := c.allowed(HydrogenBond, sep)
	attractive := c.allowed(Attractive, sep)
	repulsive := c.allowed(Repulsive, sep)
	polarApolar := iface && c.allowed(PolarApolar, sep)
	posApolar := iface && c.allowed(PositiveApolar, sep)
	negApolar := iface && c.allowed(NegativeApolar, sep)
	maxd := c.MaxDistance()
	for _, a1 := range a.Atoms {
		r1 := a.Type.Role(a1.Name)
		if r1 == 0 || !a1.Coord.Finite() {
			continue
		}
		for _, a2 := range b.Atoms {
			r2 := b.Type.Role(a2.Name)
			if r2 == 0 || !a2.Coord.Finite() {
				continue
			}
			d := Distance(a1.Coord, a2.Coord)
			if d > maxd {
				continue
			}
			add := func(t ContactType) {
				ret = append(ret, Contact{Res1: a.ID(), Res2: b.ID(), Atom1: a1.Name, Atom2: a2.Name, Type: t, Distance: d})
			}
			if hbond && c.Ranges[HydrogenBond].Contains(d) &&
				((r1.Has(Donor) && r2.Has(Acceptor)) || (r1.Has(Acceptor) && r2.Has(Donor))) {
				add(HydrogenBond)
			}
			if hydrophobic && r1.Has(Apolar) && r2.Has(Apolar) && c.Ranges[Hydrophobic].Contains(d) {
				add(Hydrophobic)
			}
			if attractive && c.Ranges[Attractive].Contains(d) &&
				((r1.Has(Positive) && r2.Has(Negative)) || (r1.Has(Negative) && r2.Has(Positive))) {
				add(Attractive)
			}
			if repulsive && c.Ranges[Repulsive].Contains(d) &&
				((r1.Has(Positive) && r2.Has(Positive)) || (r1.Has(Negative) && r2.Has(Negative))) {
				add(Repulsive)
			}
			if disulfide && a1.Name == "SG" && a2.Name == "SG" && c.Ranges[Disulfide].Contains(d) {
				add(Disulfide)
			}
			if polarApolar && c.Ranges[PolarApolar].Contains(d) && either(r1, r2, polar, apolar) {
				add(PolarApolar)
			}
			if posApolar && c.Ranges[PositiveApolar].Contains(d) && either(r1, r2, positive, apolar) {
				add(PositiveApolar)
			}
			if negApolar && c.Ranges[NegativeApolar].Contains(d) && either(r1, r2, negative, apolar) {
				add(NegativeApolar)
			}
		}
	}
	return ret
}

func polar(r AtomRole) bool    { return r&(Donor|Acceptor) != 0 && r&(Positive|Negative) == 0 }
func apolar(r AtomRole) bool   { return r.Has(Apolar) }
func positive(r AtomRole) bool { return r.Has(Positive) }
func negative(r AtomRole) bool { return r.Has(Negative) }

// either returns true if r1 is f and r2 is g, or the other way around.
func either(r1, r2 AtomRole, f, g func(AtomRole) bool) bool {
	return (f(r1) && g(r2)) || (g(r1) && f(r2))
}

// saltBridge adds one contact for the closest pair of oppositely charged atoms
// of a and b, if it is within range.
func saltBridge(ret []Contact, a, b *Residue, c *Cutoffs) []Contact {
	var best *Contact
	for _, a1 := range a.Atoms {
		r1 := a.Type.Role(a1.Name)
		if !(r1.Has(Positive) || r1.Has(Negative)) || !a1.Coord.Finite() {
			continue
		}
		for _, a2 := range b.Atoms {
			r2 := b.Type.Role(a2.Name)
			if !a2.Coord.Finite() {
				continue
			}
			if !((r1.Has(Positive) && r2.Has(Negative)) || (r1.Has(Negative) && r2.Has(Positive))) {
				continue
			}
			d := Distance(a1.Coord, a2.Coord)
			if !c.Ranges[SaltBridge].Contains(d) {
				continue
			}
			if best == nil || d < best.Distance {
				best = &Contact{Res1: a.ID(), Res2: b.ID(), Atom1: a1.Name, Atom2: a2.Name, Type: SaltBridge, Distance: d}
			}
		}
	}
	if best != nil {
		ret = append(ret, *best)
	}
	return ret
}

// stacking adds the aromatic stacking between the rings of a and b, if any.
func stacking(ret []Contact, a, b *Residue, c *Cutoffs) []Contact {
	ra, _ := a.Ring()
	rb, _ := b.Ring()
	if ra == nil || rb == nil {
		return ret
	}
	d := Distance(ra.Centroid, rb.Centroid)
	if !c.Ranges[Stacking].Contains(d) {
		return ret
	}
	angle := AxisAngle(ra.Normal, rb.Normal) * Rad2Deg
	mode := OtherStack
	switch {
	case angle < c.Angles.ParallelMax:
		mode = Parallel
	case angle >= c.Angles.PerpendicularMin:
		mode = Perpendicular
	}
	if mode == OtherStack && !c.Angles.IncludeOther {
		return ret
	}
	return append(ret, Contact{Res1: a.ID(), Res2: b.ID(), Atom1: RingAtomName, Atom2: RingAtomName,
		Type: Stacking, Mode: mode, Distance: d, Angle: angle})
}
