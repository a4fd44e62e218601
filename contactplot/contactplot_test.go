/*
 * contactplot_test.go, part of gocada.
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

package contactplot

import (
	"bytes"
	"os"
	"testing"

	"github.com/gocada/gocada"
	"github.com/gocada/gocada/batch"
)

func results() []*gocada.Result {
	a := gocada.ResidueID{Chain: "A", Number: 1, Name: "LEU"}
	b := gocada.ResidueID{Chain: "A", Number: 9, Name: "ILE"}
	R := &gocada.Result{ID: "t1", Residues: 2}
	for i := 0; i < 40; i++ {
		R.Contacts = append(R.Contacts, gocada.Contact{Res1: a, Res2: b, Atom1: "CD1", Atom2: "CG2",
			Type: gocada.Hydrophobic, Distance: 2 + float64(i)*0.05})
	}
	R.Counts[gocada.Hydrophobic] = len(R.Contacts)
	return []*gocada.Result{R}
}

func TestPNG(Te *testing.T) {
	res := results()
	p, err := Counts(res[0].Counts, "test")
	if err != nil {
		Te.Fatal(err)
	}
	var buf bytes.Buffer
	if err := WritePNG(&buf, p); err != nil {
		Te.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		Te.Errorf("not a PNG image")
	}
	if _, err := Distances(res, gocada.Stacking); err == nil {
		Te.Errorf("a histogram without data should be an error")
	}
	if _, err := Distances(res, gocada.Hydrophobic); err != nil {
		Te.Error(err)
	}
}

func TestSave(Te *testing.T) {
	res := results()
	B := &batch.Report{RunID: "run", Done: 1, Counts: res[0].Counts,
		Jobs: []*batch.Job{{Path: "t1.pdb", State: batch.Done, Result: res[0]}}}
	files, err := Save(Te.TempDir(), B)
	if err != nil {
		Te.Fatal(err)
	}
	if len(files) != 2 {
		Te.Fatalf("expected the counts and one histogram, got %v", files)
	}
	for _, f := range files {
		if fi, err := os.Stat(f); err != nil || fi.Size() == 0 {
			Te.Errorf("%s not written: %v", f, err)
		}
	}
}
