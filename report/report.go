/*
 * report.go, part of gocada.
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

// Package report writes the contacts of a structure, and the summary of a batch run,
// as CSV, JSON or MessagePack.
package report

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gocada/gocada"
	"github.com/gocada/gocada/batch"
	"github.com/vmihailenco/msgpack/v5"
)

// Format is an output encoding.
type Format int

const (
	CSV Format = iota
	JSON
	MsgPack
)

var formatNames = []string{"csv", "json", "msgpack"}
var formatExts = []string{".csv", ".json", ".msgpack"}

func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return fmt.Sprintf("Format(%d)", int(f))
	}
	return formatNames[f]
}

// Ext returns the file extension for the format, with the dot.
func (f Format) Ext() string {
	if f < 0 || int(f) >= len(formatExts) {
		return ""
	}
	return formatExts[f]
}

// ParseFormat returns the format with the given name. "mpk" and "messagepack" are
// accepted for MsgPack.
func ParseFormat(name string) (Format, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	switch n {
	case "mpk", "messagepack":
		n = "msgpack"
	case "":
		n = "csv"
	}
	for i, v := range formatNames {
		if v == n {
			return Format(i), nil
		}
	}
	return CSV, fmt.Errorf("unknown format %q, use one of %s", name, strings.Join(formatNames, ", "))
}

// Header is the first row of the CSV contact files.
var Header = []string{"Chain1", "Res1", "ResName1", "Atom1", "Chain2", "Res2", "ResName2", "Atom2", "Distance", "Type", "Angle"}

// Record is one contact, ready to serialize.
type Record struct {
	Chain1   string  `json:"chain1" msgpack:"chain1"`
	Res1     string  `json:"res1" msgpack:"res1"`
	ResName1 string  `json:"resname1" msgpack:"resname1"`
	Atom1    string  `json:"atom1" msgpack:"atom1"`
	Chain2   string  `json:"chain2" msgpack:"chain2"`
	Res2     string  `json:"res2" msgpack:"res2"`
	ResName2 string  `json:"resname2" msgpack:"resname2"`
	Atom2    string  `json:"atom2" msgpack:"atom2"`
	Distance float64 `json:"distance" msgpack:"distance"`
	Type     string  `json:"type" msgpack:"type"`
	Angle    float64 `json:"angle,omitempty" msgpack:"angle,omitempty"`
}

// Structure is the serializable form of a gocada.Result.
type Structure struct {
	ID         string         `json:"id" msgpack:"id"`
	Source     string         `json:"source,omitempty" msgpack:"source,omitempty"`
	Title      string         `json:"title,omitempty" msgpack:"title,omitempty"`
	Residues   int            `json:"residues" msgpack:"residues"`
	Candidates int            `json:"candidates" msgpack:"candidates"`
	Counts     map[string]int `json:"counts" msgpack:"counts"`
	Contacts   []Record       `json:"contacts" msgpack:"contacts"`
	// only in interface mode
	Strength          float64   `json:"strength,omitempty" msgpack:"strength,omitempty"`
	InterfaceResidues []Residue `json:"interface_residues,omitempty" msgpack:"interface_residues,omitempty"`
}

// Residue identifies a residue in the serialized output.
type Residue struct {
	Chain   string `json:"chain" msgpack:"chain"`
	Res     string `json:"res" msgpack:"res"`
	ResName string `json:"resname" msgpack:"resname"`
}

func resNumber(id gocada.ResidueID) string {
	s := strconv.Itoa(id.Number)
	if id.ICode != 0 && id.ICode != ' ' {
		s += string(id.ICode)
	}
	return s
}

// NewRecord returns the serializable form of c. The distance is rounded to 2 decimals.
func NewRecord(c gocada.Contact) Record {
	r := Record{
		Chain1: c.Res1.Chain, Res1: resNumber(c.Res1), ResName1: c.Res1.Name, Atom1: c.Atom1,
		Chain2: c.Res2.Chain, Res2: resNumber(c.Res2), ResName2: c.Res2.Name, Atom2: c.Atom2,
		Distance: math.Round(c.Distance*100) / 100,
		Type:     c.Label(),
	}
	if c.Type == gocada.Stacking {
		r.Angle = math.Round(c.Angle*100) / 100
	}
	return r
}

// NewStructure returns the serializable form of R, keeping the order of the contacts.
func NewStructure(R *gocada.Result) *Structure {
	S := &Structure{ID: R.ID, Source: R.Source, Title: R.Title, Residues: R.Residues, Candidates: R.Candidates,
		Counts: make(map[string]int, gocada.NumContactTypes), Contacts: make([]Record, 0, len(R.Contacts))}
	for t, n := range R.Counts {
		S.Counts[gocada.ContactType(t).String()] = n
	}
	for _, c := range R.Contacts {
		S.Contacts = append(S.Contacts, NewRecord(c))
	}
	S.Strength = math.Round(R.Strength*100) / 100
	for _, id := range R.InterfaceResidues {
		S.InterfaceResidues = append(S.InterfaceResidues, Residue{Chain: id.Chain, Res: resNumber(id), ResName: id.Name})
	}
	return S
}

// WriteContacts writes the contacts in R to w in the given format.
func WriteContacts(w io.Writer, R *gocada.Result, f Format) error {
	if R == nil {
		return fmt.Errorf("report.WriteContacts: nil result")
	}
	switch f {
	case CSV:
		return writeCSV(w, R)
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", " ")
		return enc.Encode(NewStructure(R))
	case MsgPack:
		return msgpack.NewEncoder(w).Encode(NewStructure(R))
	}
	return fmt.Errorf("report.WriteContacts: unknown format %s", f)
}

func writeCSV(w io.Writer, R *gocada.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	row := make([]string, len(Header))
	for _, c := range R.Contacts {
		r := NewRecord(c)
		row[0], row[1], row[2], row[3] = r.Chain1, r.Res1, r.ResName1, r.Atom1
		row[4], row[5], row[6], row[7] = r.Chain2, r.Res2, r.ResName2, r.Atom2
		row[8] = strconv.FormatFloat(c.Distance, 'f', 2, 64)
		row[9] = r.Type
		row[10] = ""
		if c.Type == gocada.Stacking {
			row[10] = strconv.FormatFloat(c.Angle, 'f', 2, 64)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ContactsFileName returns the name of the contact file for R, "<id>_contacts<ext>". If the
// structure has no id, the base name of its source file is used.
func ContactsFileName(R *gocada.Result, f Format) string {
	id := R.ID
	if id == "" {
		id = strings.TrimSuffix(filepath.Base(R.Source), filepath.Ext(R.Source))
	}
	return id + "_contacts" + f.Ext()
}

// ContactsFileNames returns ContactsFileName for each result, in the same order. Names that
// would be repeated, ignoring case, get the 1-based position of the result appended to
// the id ("1abc_3_contacts.csv"), so no file overwrites another.
func ContactsFileNames(results []*gocada.Result, f Format) []string {
	names := make([]string, len(results))
	seen := make(map[string]int, len(results))
	for i, R := range results {
		names[i] = ContactsFileName(R, f)
		seen[strings.ToLower(names[i])]++
	}
	for i, n := range names {
		if seen[strings.ToLower(n)] > 1 {
			base := strings.TrimSuffix(n, "_contacts"+f.Ext())
			names[i] = base + "_" + strconv.Itoa(i+1) + "_contacts" + f.Ext()
		}
	}
	return names
}

// SummaryLine returns the one line summary of a processed structure, as
// "ID: 1abc | Size: 120     | Contacts: 431     | Time: 0.012s".
func SummaryLine(R *gocada.Result, elapsed time.Duration) string {
	return fmt.Sprintf("ID: %s | Size: %-7d | Contacts: %-7d | Time: %.3fs", R.ID, R.Residues, R.Total(), elapsed.Seconds())
}

// WriteSummary writes one line per job of the run, in input order: the summary line
// for the processed structures and the reason for the others, followed by the totals.
func WriteSummary(w io.Writer, B *batch.Report) error {
	for _, j := range B.Jobs {
		var err error
		if j.State == batch.Done {
			_, err = fmt.Fprintln(w, SummaryLine(j.Result, j.Elapsed))
		} else {
			var tl *batch.TooLargeError
			if errors.As(j.Err, &tl) {
				_, err = fmt.Fprintf(w, "Skipping %s. Size: %d residues\n", j.Path, tl.Residues)
			} else {
				_, err = fmt.Fprintf(w, "Error processing %s: %v\n", j.Path, j.Err)
			}
		}
		if err != nil {
			return err
		}
	}
	counts := make([]string, 0, gocada.NumContactTypes)
	for t, n := range B.Counts {
		counts = append(counts, fmt.Sprintf("%s: %d", gocada.ContactType(t).Abbrev(), n))
	}
	_, err := fmt.Fprintf(w, "Structures: %d | Failed: %d | Contacts: %d (%s)\nTotal time elapsed: %.3fs\n",
		B.Done, B.Failed, B.Total(), strings.Join(counts, ", "), B.Elapsed.Seconds())
	return err
}
