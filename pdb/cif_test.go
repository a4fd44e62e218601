/*
 * cif_test.go, part of gocada.
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

package pdb

import (
	"errors"
	"strings"
	"testing"

	"github.com/gocada/gocada"
)

const sampleCIF = `data_2XYZ
#
_entry.id   2XYZ
#
_struct.title
;A multi-line
 test title
;
#
loop_
_exptl_crystal_grow.crystal_id
_exptl_crystal_grow.method
_exptl_crystal_grow.pH
1 'VAPOR DIFFUSION' 6.5
#
loop_
_atom_site.group_PDB
_atom_site.id
_atom_site.type_symbol
_atom_site.label_atom_id
_atom_site.label_alt_id
_atom_site.label_comp_id
_atom_site.label_asym_id
_atom_site.label_entity_id
_atom_site.label_seq_id
_atom_site.pdbx_PDB_ins_code
_atom_site.Cartn_x
_atom_site.Cartn_y
_atom_site.Cartn_z
_atom_site.occupancy
_atom_site.B_iso_or_equiv
_atom_site.auth_seq_id
_atom_site.auth_asym_id
_atom_site.pdbx_PDB_model_num
ATOM   1  N N   . SER A 1 1 ? 0.000 0.000 0.000 1.00 10.0 5 A 1
ATOM   2  C CA  . SER A 1 1 ? 1.458 0.000 0.000 1.00 10.0 5 A 1
ATOM   3  O OG  A SER A 1 1 ? 2.000 1.000 1.000 0.50 10.0 5 A 1
ATOM   4  O OG  B SER A 1 1 ? 2.000 -1.000 1.000 0.50 10.0 5 A 1
ATOM   5  H H   . SER A 1 1 ? -0.5 0.500 0.000 1.00 10.0 5 A 1
ATOM   6  C CA  . GLY A 1 2 A 3.800 0.000 0.000 1.00 10.0 5 A 1
HETATM 7  O O   . HOH C 3 . ? 9.000 9.000 9.000 1.00 10.0 101 A 1
ATOM   8  C CA  . LYS B 2 1 ? 10.00 0.000 0.000 1.00 10.0 1 B 1
ATOM   9  C CA  . LYS B 2 2 ? 20.00 0.000 0.000 1.00 10.0 2 B 2
#
`

func TestReadCIF(Te *testing.T) {
	s, err := Read(strings.NewReader(sampleCIF), CIF, "sample", "sample.cif", nil)
	if err != nil {
		Te.Fatal(err)
	}
	if s.ID != "2XYZ" || s.Title != "A multi-line test title" || s.PH != 6.5 {
		Te.Errorf("bad header data: id %q title %q pH %g", s.ID, s.Title, s.PH)
	}
	res := s.Residues()
	if len(res) != 3 {
		Te.Fatalf("expected SER A5, GLY A5A and LYS B1, got %v", res)
	}
	ser, gly, lys := res[0], res[1], res[2]
	if ser.Number != 5 || len(ser.Atoms) != 3 {
		Te.Errorf("SER should be number 5 with N CA OG, got %d with %d atoms", ser.Number, len(ser.Atoms))
	}
	if og := ser.Atom("OG"); og == nil || og.Coord[1] != 1 {
		Te.Errorf("the first OG conformer should be kept: %+v", og)
	}
	if gly.Number != 5 || gly.ICode != 'A' {
		Te.Errorf("GLY should be 5A, got %d%c", gly.Number, gly.ICode)
	}
	if lys.ChainID != "B" || lys.Entity != "2" || ser.Entity != "1" {
		Te.Errorf("bad chains or entities: %s/%s %s/%s", lys.ChainID, lys.Entity, ser.ChainID, ser.Entity)
	}
}

func TestSplitCIFLine(Te *testing.T) {
	toks := splitCIFLine(`ATOM 1 "O5'" 'it''s' "a b" plain # comment`, 1, nil)
	want := []string{"ATOM", "1", "O5'", "it''s", "a b", "plain"}
	if len(toks) != len(want) {
		Te.Fatalf("got %d tokens %v, want %v", len(toks), toks, want)
	}
	for i, t := range toks {
		if t.text != want[i] {
			Te.Errorf("token %d: got %q, want %q", i, t.text, want[i])
		}
	}
	if toks[0].quoted || !toks[2].quoted {
		Te.Errorf("wrong quoting flags")
	}
}

func TestCIFErrors(Te *testing.T) {
	cases := map[string]string{
		"columns": "data_x\nloop_\n_atom_site.group_PDB\n_atom_site.label_atom_id\nATOM CA\n",
		"leftover": "data_x\nloop_\n_atom_site.group_PDB\n_atom_site.label_atom_id\n_atom_site.label_comp_id\n" +
			"_atom_site.auth_asym_id\n_atom_site.auth_seq_id\n_atom_site.Cartn_x\n_atom_site.Cartn_y\n_atom_site.Cartn_z\n" +
			"ATOM CA ALA A 1 0 0 0\nATOM CA ALA A\n",
		"number": "data_x\nloop_\n_atom_site.group_PDB\n_atom_site.label_atom_id\n_atom_site.label_comp_id\n" +
			"_atom_site.auth_asym_id\n_atom_site.auth_seq_id\n_atom_site.Cartn_x\n_atom_site.Cartn_y\n_atom_site.Cartn_z\n" +
			"ATOM CA ALA A one 0 0 0\n",
	}
	for name, text := range cases {
		_, err := Read(strings.NewReader(text), CIF, name, name+".cif", nil)
		var pe *gocada.ParseError
		if !errors.As(err, &pe) {
			Te.Errorf("%s: expected a ParseError, got %v", name, err)
		}
	}
}
