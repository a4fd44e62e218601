/*
 * restypes.go, part of gocada.
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

// ResType is one of the 20 standard aminoacids. The zero value, Unknown,
// is never part of a built Structure.
type ResType uint8

const (
	Unknown ResType = iota
	Ala
	Arg
	Asn
	Asp
	Cys
	Gln
	Glu
	Gly
	His
	Ile
	Leu
	Lys
	Met
	Phe
	Pro
	Ser
	Thr
	Trp
	Tyr
	Val
	numResTypes
)

// AtomRole is a bit set with the interaction capabilities of an atom.
type AtomRole uint8

const (
	Donor AtomRole = 1 << iota
	Acceptor
	Positive
	Negative
	Apolar
)

// Has returns true if r contains all the bits in q.
func (r AtomRole) Has(q AtomRole) bool { return r&q == q }

// resInfo is the static capability table entry for a residue type.
type resInfo struct {
	three       string
	one         byte
	hydrophobic bool
	charge      int      //formal side chain charge sign at pH 7
	ring        []string //aromatic ring atoms, nil if not aromatic
	roles       map[string]AtomRole
}

// backbone roles, shared by all residues but Pro, which has no amide H.
var backboneRoles = map[string]AtomRole{
	"N": Donor,
	"O": Acceptor,
}

var resTable = [numResTypes]resInfo{
	Unknown: {three: "UNK", one: 'X'},
	Ala: {three: "ALA", one: 'A', hydrophobic: true, roles: map[string]AtomRole{
		"CB": Apolar}},
	Arg: {three: "ARG", one: 'R', charge: 1, roles: map[string]AtomRole{
		"NE": Donor | Positive, "NH1": Donor | Positive, "NH2": Donor | Positive}},
	Asn: {three: "ASN", one: 'N', roles: map[string]AtomRole{
		"OD1": Acceptor, "ND2": Donor}},
	Asp: {three: "ASP", one: 'D', charge: -1, roles: map[string]AtomRole{
		"OD1": Acceptor | Negative, "OD2": Acceptor | Negative}},
	Cys: {three: "CYS", one: 'C', hydrophobic: true, roles: map[string]AtomRole{
		"CB": Apolar, "SG": Apolar}},
	Gln: {three: "GLN", one: 'Q', roles: map[string]AtomRole{
		"OE1": Acceptor, "NE2": Donor}},
	Glu: {three: "GLU", one: 'E', charge: -1, roles: map[string]AtomRole{
		"OE1": Acceptor | Negative, "OE2": Acceptor | Negative}},
	Gly: {three: "GLY", one: 'G'},
	His: {three: "HIS", one: 'H', ring: []string{"CG", "ND1", "CE1", "NE2", "CD2"}, roles: map[string]AtomRole{
		"ND1": Donor | Acceptor, "NE2": Donor | Acceptor}},
	Ile: {three: "ILE", one: 'I', hydrophobic: true, roles: map[string]AtomRole{
		"CB": Apolar, "CG1": Apolar, "CG2": Apolar, "CD1": Apolar}},
	Leu: {three: "LEU", one: 'L', hydrophobic: true, roles: map[string]AtomRole{
		"CB": Apolar, "CG": Apolar, "CD1": Apolar, "CD2": Apolar}},
	Lys: {three: "LYS", one: 'K', charge: 1, roles: map[string]AtomRole{
		"NZ": Donor | Positive}},
	Met: {three: "MET", one: 'M', hydrophobic: true, roles: map[string]AtomRole{
		"CB": Apolar, "CG": Apolar, "SD": Apolar, "CE": Apolar}},
	Phe: {three: "PHE", one: 'F', hydrophobic: true, ring: []string{"CG", "CD1", "CE1", "CZ", "CE2", "CD2"}, roles: map[string]AtomRole{
		"CB": Apolar, "CG": Apolar, "CD1": Apolar, "CD2": Apolar, "CE1": Apolar, "CE2": Apolar, "CZ": Apolar}},
	Pro: {three: "PRO", one: 'P', hydrophobic: true, roles: map[string]AtomRole{
		"CB": Apolar, "CG": Apolar}},
	Ser: {three: "SER", one: 'S', roles: map[string]AtomRole{
		"OG": Donor | Acceptor}},
	Thr: {three: "THR", one: 'T', roles: map[string]AtomRole{
		"OG1": Donor | Acceptor, "CG2": Apolar}},
	Trp: {three: "TRP", one: 'W', hydrophobic: true, ring: []string{"CG", "CD1", "NE1", "CE2", "CZ2", "CH2", "CZ3", "CE3", "CD2"}, roles: map[string]AtomRole{
		"NE1": Donor, "CB": Apolar, "CG": Apolar, "CD2": Apolar, "CE3": Apolar, "CZ2": Apolar, "CZ3": Apolar, "CH2": Apolar}},
	Tyr: {three: "TYR", one: 'Y', hydrophobic: true, ring: []string{"CG", "CD1", "CE1", "CZ", "CE2", "CD2"}, roles: map[string]AtomRole{
		"OH": Donor | Acceptor, "CB": Apolar, "CG": Apolar, "CD1": Apolar, "CD2": Apolar, "CE1": Apolar, "CE2": Apolar}},
	Val: {three: "VAL", one: 'V', hydrophobic: true, roles: map[string]AtomRole{
		"CB": Apolar, "CG1": Apolar, "CG2": Apolar}},
}

// alternative names, mostly protonation states of histidine.
var resAliases = map[string]ResType{
	"HID": His,
	"HIE": His,
	"HIP": His,
	"HSD": His,
	"HSE": His,
	"HSP": His,
}

var three2Type map[string]ResType

func init() {
	three2Type = make(map[string]ResType, len(resTable)+len(resAliases))
	for i := Ala; i < numResTypes; i++ {
		three2Type[resTable[i].three] = i
	}
	for k, v := range resAliases {
		three2Type[k] = v
	}
}

// ResTypeFromName returns the ResType for a 3-letter residue name, and false if the
// name is not a standard aminoacid (or one of the histidine aliases).
func ResTypeFromName(name string) (ResType, bool) {
	t, ok := three2Type[name]
	return t, ok
}

func (t ResType) String() string { return resTable[t].three }

// OneLetter returns the one-letter code, 'X' for Unknown.
func (t ResType) OneLetter() byte { return resTable[t].one }

func (t ResType) Hydrophobic() bool { return resTable[t].hydrophobic }

// Aromatic is true for the residues that can take part in stacking.
func (t ResType) Aromatic() bool { return resTable[t].ring != nil }

// Charge returns the sign of the side chain formal charge: -1, 0 or 1.
func (t ResType) Charge() int { return resTable[t].charge }

// RingAtoms returns the names of the aromatic ring atoms. Don't modify the slice.
func (t ResType) RingAtoms() []string { return resTable[t].ring }

// Role returns the interaction roles of the atom called name in a residue of type t.
func (t ResType) Role(name string) AtomRole {
	if r, ok := resTable[t].roles[name]; ok {
		return r
	}
	if t == Pro && name == "N" {
		return 0
	}
	return backboneRoles[name]
}
