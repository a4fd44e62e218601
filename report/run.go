/*
 * run.go, part of gocada.
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

package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/gocada/gocada"
	"github.com/gocada/gocada/batch"
	"github.com/vmihailenco/msgpack/v5"
)

// TypeStats is the serializable summary of the contacts of one type in a run.
// Undefined statistics (i.e. the deviation of a single distance) are nil.
type TypeStats struct {
	Type   string   `json:"type" msgpack:"type"`
	Count  int      `json:"count" msgpack:"count"`
	Mean   *float64 `json:"mean,omitempty" msgpack:"mean,omitempty"`
	StdDev *float64 `json:"stddev,omitempty" msgpack:"stddev,omitempty"`
	Min    *float64 `json:"min,omitempty" msgpack:"min,omitempty"`
	Max    *float64 `json:"max,omitempty" msgpack:"max,omitempty"`
}

// FileOutcome is the serializable state of one job of a run.
type FileOutcome struct {
	Path     string  `json:"path" msgpack:"path"`
	ID       string  `json:"id,omitempty" msgpack:"id,omitempty"`
	State    string  `json:"state" msgpack:"state"`
	Worker   int     `json:"worker" msgpack:"worker"`
	Residues int     `json:"residues,omitempty" msgpack:"residues,omitempty"`
	Contacts int     `json:"contacts,omitempty" msgpack:"contacts,omitempty"`
	Seconds  float64 `json:"seconds" msgpack:"seconds"`
	Error    string  `json:"error,omitempty" msgpack:"error,omitempty"`
}

// Run is the serializable form of a batch.Report.
type Run struct {
	RunID   string        `json:"run_id" msgpack:"run_id"`
	Workers int           `json:"workers" msgpack:"workers"`
	Policy  string        `json:"policy" msgpack:"policy"`
	Seconds float64       `json:"seconds" msgpack:"seconds"`
	Done    int           `json:"done" msgpack:"done"`
	Failed  int           `json:"failed" msgpack:"failed"`
	Total   int           `json:"total" msgpack:"total"`
	Types   []TypeStats   `json:"types" msgpack:"types"`
	Files   []FileOutcome `json:"files" msgpack:"files"`
}

func defined(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}

// NewRun returns the serializable form of B.
func NewRun(B *batch.Report) *Run {
	R := &Run{RunID: B.RunID, Workers: B.Workers, Policy: B.Policy.String(), Seconds: B.Elapsed.Seconds(),
		Done: B.Done, Failed: B.Failed, Total: B.Total()}
	for t, s := range B.Stats {
		R.Types = append(R.Types, TypeStats{Type: gocada.ContactType(t).String(), Count: B.Counts[t],
			Mean: defined(s.Mean), StdDev: defined(s.StdDev), Min: defined(s.Min), Max: defined(s.Max)})
	}
	for _, j := range B.Jobs {
		f := FileOutcome{Path: j.Path, State: j.State.String(), Worker: j.Worker, Seconds: j.Elapsed.Seconds()}
		if j.Result != nil {
			f.ID, f.Residues, f.Contacts = j.Result.ID, j.Result.Residues, j.Result.Total()
		}
		if j.Err != nil {
			f.Error = j.Err.Error()
		}
		R.Files = append(R.Files, f)
	}
	return R
}

// WriteRun writes the summary of a batch run. In CSV, only the per-type table is written.
func WriteRun(w io.Writer, B *batch.Report, f Format) error {
	R := NewRun(B)
	switch f {
	case CSV:
		cw := csv.NewWriter(w)
		cw.Write([]string{"Type", "Count", "Mean", "StdDev", "Min", "Max"})
		for _, t := range R.Types {
			row := []string{t.Type, strconv.Itoa(t.Count)}
			for _, v := range []*float64{t.Mean, t.StdDev, t.Min, t.Max} {
				if v == nil {
					row = append(row, "")
					continue
				}
				row = append(row, strconv.FormatFloat(*v, 'f', 3, 64))
			}
			cw.Write(row)
		}
		cw.Flush()
		return cw.Error()
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", " ")
		return enc.Encode(R)
	case MsgPack:
		return msgpack.NewEncoder(w).Encode(R)
	}
	return fmt.Errorf("report.WriteRun: unknown format %s", f)
}
