/*
 * structure.go, part of gocada.
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
	"fmt"
	"strings"
)

// RingAtomName is the atom name used for aromatic ring centroids in contacts.
const RingAtomName = "RNG"

// Atom is a heavy atom of a residue. Atoms are not modified after the
// Structure containing them is built.
type Atom struct {
	Serial    int
	Name      string
	Element   string
	Coord     Point
	Occupancy float64
	residue   *Residue
}

// Residue returns the residue the atom belongs to.
func (A *Atom) Residue() *Residue {
	return A.residue
}

// Ring holds the geometry of an aromatic ring.
type Ring struct {
	Centroid Point
	Normal   Point //unit vector, arbitrary sign
	RMS      float64
}

// ResidueID identifies a residue inside a structure.
type ResidueID struct {
	Chain  string
	Number int
	ICode  byte //insertion code, 0 if none
	Name   string
}

func (R ResidueID) String() string {
	if R.ICode != 0 {
		return fmt.Sprintf("%s:%s%d%c", R.Chain, R.Name, R.Number, R.ICode)
	}
	return fmt.Sprintf("%s:%s%d", R.Chain, R.Name, R.Number)
}

// Residue is an aminoacid in a chain.
type Residue struct {
	Name    string //3-letter name as in the file, aliases resolved
	Type    ResType
	Number  int
	ICode   byte
	ChainID string
	Entity  string
	Atoms   []*Atom //file order

	index   int //position in Structure.Residues()
	seq     int //position in its chain
	ca      *Atom
	reach   float64 //largest Calpha-atom distance
	ring    *Ring
	ringErr error
}

// ID returns the identifier of the residue.
func (R *Residue) ID() ResidueID {
	return ResidueID{Chain: R.ChainID, Number: R.Number, ICode: R.ICode, Name: R.Name}
}

// Index is the position of the residue in its Structure, over all chains.
func (R *Residue) Index() int { return R.index }

// CA returns the alpha carbon, or nil if the residue has none (or it has
// non-finite coordinates).
func (R *Residue) CA() *Atom { return R.ca }

// Reach is the largest distance between the alpha carbon and any atom of
// the residue. It is 0 for residues without alpha carbon.
func (R *Residue) Reach() float64 { return R.reach }

// Atom returns the atom with the given name, or nil.
func (R *Residue) Atom(name string) *Atom {
	for _, a := range R.Atoms {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// Ring returns the aromatic ring of the residue. The error is nil and the ring nil
// for non-aromatic residues, and a *MalformedRingError if the residue is aromatic but the
// ring can't be used.
func (R *Residue) Ring() (*Ring, error) {
	return R.ring, R.ringErr
}

func (R *Residue) String() string { return R.ID().String() }

// Chain is an ordered set of residues.
type Chain struct {
	ID       string
	Entity   string
	Residues []*Residue
}

// Structure is a protein model read from one file. Once returned by
// Builder.Structure it is read-only, and safe to share between goroutines.
type Structure struct {
	ID     string
	Source string
	Title  string
	PH     float64 //0 if not given in the file
	Chains []*Chain

	residues  []*Residue
	malformed []error
}

// Residues returns all residues, chain after chain, in file order. Don't modify the slice.
func (S *Structure) Residues() []*Residue { return S.residues }

// Len returns the total number of residues.
func (S *Structure) Len() int { return len(S.residues) }

// Malformed returns the problems found while building the structure that
// don't prevent processing it: missing alpha carbons and unusable aromatic rings.
func (S *Structure) Malformed() []error { return S.malformed }

// Builder assembles a Structure atom by atom, in file order.
type Builder struct {
	s        *Structure
	chains   map[string]*Chain
	seen     map[string]map[resKey]bool
	curChain *Chain
	curRes   *Residue
	err      error
}

type resKey struct {
	number int
	icode  byte
}

// NewBuilder returns a Builder for a structure with the given id and source file.
func NewBuilder(id, source string) *Builder {
	B := new(Builder)
	B.s = &Structure{ID: id, Source: source}
	B.chains = make(map[string]*Chain)
	B.seen = make(map[string]map[resKey]bool)
	return B
}

// SetTitle sets the structure title.
func (B *Builder) SetTitle(title string) { B.s.Title = strings.TrimSpace(title) }

// SetPH sets the pH reported in the file.
func (B *Builder) SetPH(ph float64) { B.s.PH = ph }

// SetID changes the structure id.
func (B *Builder) SetID(id string) { B.s.ID = strings.TrimSpace(id) }

// AddAtom adds an atom to the residue (chain, number, icode). A new residue is started whenever
// the chain, number or insertion code change from the previous call. resname must be a standard
// aminoacid (or histidine alias); other residues are silently ignored and false is returned. A second
// atom with the same name in the same residue (alternate locations) is ignored, too. entity can be empty,
// in which case the chain id is used.
func (B *Builder) AddAtom(chain, entity, resname string, number int, icode byte, at Atom) bool {
	if B.err != nil {
		return false
	}
	t, ok := ResTypeFromName(resname)
	if !ok {
		return false
	}
	if entity == "" {
		entity = chain
	}
	if B.curChain == nil || B.curChain.ID != chain {
		c, ok := B.chains[chain]
		if !ok {
			c = &Chain{ID: chain, Entity: entity}
			B.chains[chain] = c
			B.s.Chains = append(B.s.Chains, c)
			B.seen[chain] = make(map[resKey]bool)
		}
		B.curChain = c
		B.curRes = nil
	}
	key := resKey{number, icode}
	if B.curRes == nil || B.curRes.Number != number || B.curRes.ICode != icode {
		if B.seen[chain][key] {
			B.err = fmt.Errorf("residue %s%d%s appears twice in chain %s", resname, number, icodeString(icode), chain)
			return false
		}
		B.seen[chain][key] = true
		B.curRes = &Residue{Name: t.String(), Type: t, Number: number, ICode: icode, ChainID: chain, Entity: entity,
			seq: len(B.curChain.Residues)}
		B.curChain.Residues = append(B.curChain.Residues, B.curRes)
	}
	if B.curRes.Atom(at.Name) != nil {
		return false
	}
	a := at
	a.residue = B.curRes
	B.curRes.Atoms = append(B.curRes.Atoms, &a)
	return true
}

func icodeString(c byte) string {
	if c == 0 {
		return ""
	}
	return string(c)
}

// Structure finishes the building process and returns the Structure. The
// alpha carbons and aromatic rings are located and cached here, with cutoffs.Planarity
// as the largest RMS deviation from the plane allowed for a ring. If cutoffs is nil
// the defaults are used. The Builder should not be used after this call.
func (B *Builder) Structure(cutoffs *Cutoffs) (*Structure, error) {
	if B.err != nil {
		return nil, B.err
	}
	if cutoffs == nil {
		cutoffs = DefaultCutoffs()
	}
	S := B.s
	for _, c := range S.Chains {
		for _, r := range c.Residues {
			if len(r.Atoms) == 0 {
				continue
			}
			r.index = len(S.residues)
			S.residues = append(S.residues, r)
			if err := r.cache(cutoffs.Planarity); err != nil {
				var ip *InsufficientPointsError
				if errors.As(err, &ip) {
					return nil, errDecorate(err, fmt.Sprintf("Builder.Structure: residue %s", r))
				}
				S.malformed = append(S.malformed, err)
			}
		}
	}
	if len(S.residues) == 0 {
		return nil, fmt.Errorf("no aminoacid residues found")
	}
	return S, nil
}

// MissingCAError is recorded in Structure.Malformed for residues without
// a usable alpha carbon.
type MissingCAError struct {
	Residue string
}

func (err *MissingCAError) Error() string {
	return fmt.Sprintf("residue %s has no usable alpha carbon, excluded from contact search", err.Residue)
}

// cache locates the alpha carbon, the reach and the aromatic ring of R.
// It returns the first non-fatal problem found, if any.
func (R *Residue) cache(planarity float64) error {
	var problem error
	if ca := R.Atom("CA"); ca != nil && ca.Coord.Finite() {
		R.ca = ca
		for _, a := range R.Atoms {
			if !a.Coord.Finite() {
				continue
			}
			if d := Distance(ca.Coord, a.Coord); d > R.reach {
				R.reach = d
			}
		}
	} else {
		problem = &MissingCAError{Residue: R.String()}
	}
	if !R.Type.Aromatic() {
		return problem
	}
	R.ring, R.ringErr = buildRing(R, planarity)
	if R.ringErr != nil {
		var ip *InsufficientPointsError
		if errors.As(R.ringErr, &ip) {
			return R.ringErr
		}
		if problem == nil {
			problem = R.ringErr
		}
	}
	return problem
}

// buildRing collects the ring atoms of R and fits a plane through them.
func buildRing(R *Residue, planarity float64) (*Ring, error) {
	names := R.Type.RingAtoms()
	points := make([]Point, 0, len(names))
	var missing, partial []string
	for _, n := range names {
		a := R.Atom(n)
		if a == nil || !a.Coord.Finite() {
			missing = append(missing, n)
			continue
		}
		if a.Occupancy < 1 {
			partial = append(partial, n)
		}
		points = append(points, a.Coord)
	}
	if len(missing) > 0 {
		return nil, &MalformedRingError{Residue: R.String(),
			Reason: fmt.Sprintf("%d of %d ring atoms missing (%s)", len(missing), len(names), strings.Join(missing, " "))}
	}
	if len(partial) > 0 {
		return nil, &MalformedRingError{Residue: R.String(),
			Reason: fmt.Sprintf("ring atoms with partial occupancy (%s)", strings.Join(partial, " "))}
	}
	centroid, err := Centroid(points)
	if err != nil {
		return nil, errDecorate(err, "buildRing")
	}
	normal, rms, err := PlaneFit(points)
	if err != nil {
		return nil, errDecorate(err, "buildRing")
	}
	if planarity > 0 && rms > planarity {
		return nil, &MalformedRingError{Residue: R.String(),
			Reason: fmt.Sprintf("ring is not planar (RMS deviation %.3f A)", rms)}
	}
	return &Ring{Centroid: centroid, Normal: normal, RMS: rms}, nil
}
