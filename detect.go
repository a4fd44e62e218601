/*
 * detect.go, part of gocada.
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
)

// Result is the outcome of the contact search on one structure.
type Result struct {
	ID         string
	Source     string
	Title      string
	Residues   int
	Candidates int //residue pairs that survived the pruning
	Contacts   []Contact
	Counts     [NumContactTypes]int
	// MalformedRings and MissingCA count the residues excluded from
	// stacking and from the whole search, respectively.
	MalformedRings int
	MissingCA      int
	// Strength is the sum of ContactType.Strength over the contacts, and InterfaceResidues
	// the residues with at least one contact, in structure order. Both are only set in
	// interface mode.
	Strength          float64
	InterfaceResidues []ResidueID
}

// Total returns the number of contacts.
func (R *Result) Total() int { return len(R.Contacts) }

// Detect runs the whole contact search on S: the alpha carbon based pruning
// followed by the classification of every candidate pair. The contacts are sorted by
// residue pair, in structure order. Malformed residues are logged and counted, but don't
// stop the search. A nil o means DefaultOptions.
func Detect(S *Structure, c *Cutoffs, o *Options) (*Result, error) {
	if S == nil {
		return nil, fmt.Errorf("Detect: nil structure")
	}
	if c == nil {
		c = DefaultCutoffs()
	}
	if o == nil {
		o = DefaultOptions()
	}
	log := o.Logger()
	res := &Result{ID: S.ID, Source: S.Source, Title: S.Title, Residues: S.Len()}
	for _, err := range S.Malformed() {
		var ring *MalformedRingError
		var ca *MissingCAError
		switch {
		case errors.As(err, &ring):
			res.MalformedRings++
			log.Warn("ring.malformed", "structure", S.ID, "residue", ring.Residue, "reason", ring.Reason)
		case errors.As(err, &ca):
			res.MissingCA++
			log.Warn("residue.missing_ca", "structure", S.ID, "residue", ca.Residue)
		}
	}
	residues := S.Residues()
	pairs := CandidatePairs(residues, c.PruningRadius(), c.MaxDistance())
	res.Candidates = len(pairs)
	iface := o.Interface()
	var region map[int]bool
	if r := o.Region(); len(r) > 0 {
		region = make(map[int]bool, len(r))
		for _, n := range r {
			region[n] = true
		}
	}
	var inface map[int]bool
	if iface {
		inface = make(map[int]bool)
	}
	for _, p := range pairs {
		a, b := residues[p.I], residues[p.J]
		if region != nil && !(region[a.Number] && region[b.Number]) {
			continue
		}
		var contacts []Contact
		if iface {
			contacts = ClassifyInterface(a, b, c)
		} else {
			contacts = Classify(a, b, c)
		}
		for _, ct := range contacts {
			res.Counts[ct.Type]++
			if iface {
				res.Strength += ct.Type.Strength()
			}
		}
		if iface && len(contacts) > 0 {
			inface[p.I], inface[p.J] = true, true
		}
		res.Contacts = append(res.Contacts, contacts...)
	}
	for i, r := range residues {
		if inface[i] {
			res.InterfaceResidues = append(res.InterfaceResidues, r.ID())
		}
	}
	log.Debug("structure.done", "structure", S.ID, "residues", res.Residues,
		"candidates", res.Candidates, "contacts", res.Total())
	return res, nil
}
