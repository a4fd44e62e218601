/*
 * aggregate.go, part of gocada.
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

package batch

import (
	"math"
	"time"

	"github.com/gocada/gocada"
	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"
)

// DistanceStats summarizes the distances of the contacts of one type.
type DistanceStats struct {
	N      int
	Mean   float64
	StdDev float64 //NaN for fewer than 2 contacts
	Min    float64
	Max    float64
}

// Report is the outcome of a batch run. Jobs are in input order, whatever the order
// in which they were processed.
type Report struct {
	RunID   string
	Workers int
	Policy  Policy
	Cutoffs *gocada.Cutoffs
	Elapsed time.Duration
	Jobs    []*Job
	Done    int
	Failed  int
	Counts  [gocada.NumContactTypes]int
	Stats   [gocada.NumContactTypes]DistanceStats
}

func newReport(jobs []*Job, workers int, policy Policy, cutoffs *gocada.Cutoffs, elapsed time.Duration) *Report {
	R := &Report{RunID: uuid.NewString(), Workers: workers, Policy: policy, Cutoffs: cutoffs, Elapsed: elapsed, Jobs: jobs}
	var dists [gocada.NumContactTypes][]float64
	for _, j := range jobs {
		if j.State != Done {
			R.Failed++
			continue
		}
		R.Done++
		for _, c := range j.Result.Contacts {
			R.Counts[c.Type]++
			dists[c.Type] = append(dists[c.Type], c.Distance)
		}
	}
	for t, d := range dists {
		R.Stats[t] = distanceStats(d)
	}
	return R
}

func distanceStats(d []float64) DistanceStats {
	s := DistanceStats{N: len(d), Mean: math.NaN(), StdDev: math.NaN(), Min: math.NaN(), Max: math.NaN()}
	if len(d) == 0 {
		return s
	}
	if len(d) == 1 {
		s.Mean = d[0]
	} else {
		s.Mean, s.StdDev = stat.MeanStdDev(d, nil)
	}
	s.Min, s.Max = d[0], d[0]
	for _, v := range d[1:] {
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
	}
	return s
}

// Results returns the results of the successful jobs, in input order.
func (R *Report) Results() []*gocada.Result {
	ret := make([]*gocada.Result, 0, R.Done)
	for _, j := range R.Jobs {
		if j.State == Done {
			ret = append(ret, j.Result)
		}
	}
	return ret
}

// Failures returns the jobs that failed, in input order.
func (R *Report) Failures() []*Job {
	var ret []*Job
	for _, j := range R.Jobs {
		if j.State == Failed {
			ret = append(ret, j)
		}
	}
	return ret
}

// Total returns the number of contacts found in all the structures.
func (R *Report) Total() int {
	n := 0
	for _, c := range R.Counts {
		n += c
	}
	return n
}
