/*
 * job.go, part of gocada.
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
	"fmt"
	"time"

	"github.com/gocada/gocada"
)

// JobState is the processing state of an input file.
type JobState int

const (
	Pending JobState = iota
	Assigned
	Running
	Done
	Failed
)

func (s JobState) String() string {
	switch s {
	case Pending:
		return "pending"
	case Assigned:
		return "assigned"
	case Running:
		return "running"
	case Done:
		return "done"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("JobState(%d)", int(s))
}

// Job is one input file and, once processed, its outcome. A job is only modified by
// the worker it is assigned to, and only read by others after the run is over.
type Job struct {
	Index   int //position in the input list
	Path    string
	Size    int64 //file size in bytes, 0 if it couldn't be read
	State   JobState
	History []JobState //all the states the job has been in, in order
	Worker  int        //-1 while pending
	Result  *gocada.Result
	Err     error
	Elapsed time.Duration
}

func newJob(i int, path string, size int64) *Job {
	return &Job{Index: i, Path: path, Size: size, State: Pending, History: []JobState{Pending}, Worker: -1}
}

// legal transitions
var nextStates = map[JobState][]JobState{
	Pending:  {Assigned},
	Assigned: {Running},
	Running:  {Done, Failed},
}

// to moves the job to state s. It panics on a transition the scheduler should never make.
func (J *Job) to(s JobState) {
	for _, n := range nextStates[J.State] {
		if n == s {
			J.State = s
			J.History = append(J.History, s)
			return
		}
	}
	panic(fmt.Sprintf("batch: job %d (%s): illegal transition %s -> %s", J.Index, J.Path, J.State, s))
}

// TooLargeError is recorded for structures with more residues than allowed.
type TooLargeError struct {
	gocada.Decorations
	File     string
	Residues int
	Max      int
}

func (err *TooLargeError) Error() string {
	return fmt.Sprintf("%s: %d residues, more than the maximum of %d%s", err.File, err.Residues, err.Max, err.Trail())
}

func (err *TooLargeError) Critical() bool { return false }
