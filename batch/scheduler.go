/*
 * scheduler.go, part of gocada.
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

// Package batch runs the contact search over many structure files, on a set of
// worker goroutines, each of which can be pinned to a CPU core.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/gocada/gocada"
	"github.com/gocada/gocada/pdb"
	"golang.org/x/sync/errgroup"
)

// Policy is the way files are distributed among workers.
type Policy int

const (
	// Pull puts all files, largest first, in one queue, and idle workers take the next one.
	Pull Policy = iota
	// RoundRobin gives file i to worker i mod n, before starting.
	RoundRobin
	// Greedy sorts the files by size, largest first, and gives each to the worker with
	// the smallest total size so far, before starting.
	Greedy
)

var policyNames = []string{"pull", "round-robin", "greedy"}

func (p Policy) String() string {
	if p < 0 || int(p) >= len(policyNames) {
		return fmt.Sprintf("Policy(%d)", int(p))
	}
	return policyNames[p]
}

// ParsePolicy returns the Policy with the given name.
func ParsePolicy(name string) (Policy, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "roundrobin" || n == "rr" {
		n = "round-robin"
	}
	for i, p := range policyNames {
		if p == n {
			return Policy(i), nil
		}
	}
	return Pull, fmt.Errorf("unknown policy %q, use one of %s", name, strings.Join(policyNames, ", "))
}

// ParseFunc turns a file into a Structure.
type ParseFunc func(path string) (*gocada.Structure, error)

// DefaultMaxResidues is the largest structure processed by default.
const DefaultMaxResidues = 25000

// Options for a batch run. Get them from DefaultOptions, and change them with the
// methods, which return the current value and set a new one if given.
type Options struct {
	cores       []int
	workers     int
	policy      Policy
	pin         bool
	maxResidues int
	parse       ParseFunc
	cutoffs     *gocada.Cutoffs
	iface       bool
	region      []int
	logger      *slog.Logger
}

// DefaultOptions returns options to use all cores, the Pull policy, no pinning, the default
// cutoffs and pdb.ReadFile as parser.
func DefaultOptions() *Options {
	o := new(Options)
	o.cores, _ = ParseCores("all")
	o.policy = Pull
	o.maxResidues = DefaultMaxResidues
	o.cutoffs = gocada.DefaultCutoffs()
	o.logger = slog.Default()
	return o
}

// Cores returns the selected cores, and sets them if a list is given. See ParseCores.
func (o *Options) Cores(c ...[]int) []int {
	ret := o.cores
	if len(c) > 0 {
		o.cores = append([]int(nil), c[0]...)
	}
	return ret
}

// Workers returns the number of workers, and sets it if given. 0, the default, means one
// per selected core. With more workers than cores, the cores are shared in turns.
func (o *Options) Workers(n ...int) int {
	ret := o.workers
	if ret <= 0 {
		ret = len(o.cores)
	}
	if len(n) > 0 {
		o.workers = n[0]
	}
	return ret
}

func (o *Options) Policy(p ...Policy) Policy {
	ret := o.policy
	if len(p) > 0 {
		o.policy = p[0]
	}
	return ret
}

// Pin returns whether each worker is bound to its core, and sets it if given.
// Pinning is only supported on Linux. Elsewhere a warning is logged and the run goes on.
func (o *Options) Pin(pin ...bool) bool {
	ret := o.pin
	if len(pin) > 0 {
		o.pin = pin[0]
	}
	return ret
}

// MaxResidues returns the largest number of residues a structure can have to be processed,
// and sets it if given. 0 or less means no limit.
func (o *Options) MaxResidues(n ...int) int {
	ret := o.maxResidues
	if len(n) > 0 {
		o.maxResidues = n[0]
	}
	return ret
}

// Parser returns the ParseFunc in use, and sets it if a non-nil one is given. nil
// means pdb.ReadFile with the current cutoffs.
func (o *Options) Parser(f ...ParseFunc) ParseFunc {
	ret := o.parse
	if len(f) > 0 {
		o.parse = f[0]
	}
	return ret
}

// Cutoffs returns the cutoffs in use and sets them if given. The cutoffs are shared by all
// workers, they must not be modified during a run.
func (o *Options) Cutoffs(c ...*gocada.Cutoffs) *gocada.Cutoffs {
	ret := o.cutoffs
	if len(c) > 0 && c[0] != nil {
		o.cutoffs = c[0]
	}
	return ret
}

// Interface returns whether only contacts between entities are searched, and sets it if given.
func (o *Options) Interface(iface ...bool) bool {
	ret := o.iface
	if len(iface) > 0 {
		o.iface = iface[0]
	}
	return ret
}

// Region returns the residue numbers the search is limited to, and sets them if given.
// See gocada.Options.Region.
func (o *Options) Region(r ...[]int) []int {
	ret := o.region
	if len(r) > 0 {
		o.region = append([]int(nil), r[0]...)
	}
	return ret
}

func (o *Options) Logger(l ...*slog.Logger) *slog.Logger {
	ret := o.logger
	if len(l) > 0 && l[0] != nil {
		o.logger = l[0]
	}
	if ret == nil {
		ret = slog.Default()
	}
	return ret
}

// a queue gives a worker its next job, and false when there are no more.
type queue func() (*Job, bool)

// partition distributes the jobs among n workers according to policy. Static policies
// assign every job before any worker starts.
func partition(jobs []*Job, n int, policy Policy) []queue {
	bySize := append([]*Job(nil), jobs...)
	sort.SliceStable(bySize, func(i, j int) bool { return bySize[i].Size > bySize[j].Size })
	queues := make([]queue, n)
	if policy == Pull {
		ch := make(chan *Job, len(bySize))
		for _, j := range bySize {
			ch <- j
		}
		close(ch)
		for w := range queues {
			w := w
			queues[w] = func() (*Job, bool) {
				j, ok := <-ch
				if ok {
					j.Worker = w
					j.to(Assigned)
				}
				return j, ok
			}
		}
		return queues
	}
	lists := make([][]*Job, n)
	switch policy {
	case RoundRobin:
		for i, j := range jobs {
			lists[i%n] = append(lists[i%n], j)
		}
	case Greedy:
		load := make([]int64, n)
		for _, j := range bySize {
			w := 0
			for k := 1; k < n; k++ {
				if load[k] < load[w] {
					w = k
				}
			}
			load[w] += j.Size
			lists[w] = append(lists[w], j)
		}
	}
	for w, l := range lists {
		for _, j := range l {
			j.Worker = w
			j.to(Assigned)
		}
		l := l
		queues[w] = func() (*Job, bool) {
			if len(l) == 0 {
				return nil, false
			}
			j := l[0]
			l = l[1:]
			return j, true
		}
	}
	return queues
}

// Run processes the files in paths and returns the report, with the jobs in the same order
// as paths. Files that can't be processed are recorded as Failed and don't stop the run.
// The core selection and cutoffs are checked before any file is touched. If ctx is
// cancelled, the workers finish the file they are working on and Run returns ctx.Err()
// and no report.
func Run(ctx context.Context, paths []string, o *Options) (*Report, error) {
	if o == nil {
		o = DefaultOptions()
	}
	log := o.Logger()
	cores := o.Cores()
	if len(cores) == 0 {
		err := &InvalidCoreSelectionError{Spec: "", Reason: "no cores selected"}
		err.Decorate("batch.Run")
		return nil, err
	}
	ncpu := runtime.NumCPU()
	for _, c := range cores {
		if c < 0 || c >= ncpu {
			err := &InvalidCoreSelectionError{Spec: fmt.Sprint(cores), Reason: fmt.Sprintf("core %d out of range, this machine has cores 0-%d", c, ncpu-1)}
			err.Decorate("batch.Run")
			return nil, err
		}
	}
	if p := o.Policy(); p < Pull || p > Greedy {
		return nil, fmt.Errorf("batch.Run: unknown policy %s", p)
	}
	cutoffs := o.Cutoffs()
	if err := cutoffs.Validate(); err != nil {
		return nil, fmt.Errorf("batch.Run: %w", err)
	}
	parse := o.Parser()
	if parse == nil {
		parse = func(path string) (*gocada.Structure, error) { return pdb.ReadFile(path, cutoffs) }
	}
	detopt := gocada.DefaultOptions()
	detopt.Interface(o.Interface())
	detopt.Region(o.Region())
	detopt.Logger(log)

	start := time.Now()
	jobs := make([]*Job, len(paths))
	for i, p := range paths {
		var size int64
		if fi, err := os.Stat(p); err == nil {
			size = fi.Size()
		}
		jobs[i] = newJob(i, p, size)
	}
	nworkers := o.Workers()
	if nworkers > len(jobs) && len(jobs) > 0 {
		nworkers = len(jobs)
	}
	queues := partition(jobs, nworkers, o.Policy())
	log.Debug("batch.start", "files", len(jobs), "workers", nworkers, "policy", o.Policy().String(), "cores", cores)

	var g errgroup.Group
	for w, next := range queues {
		w, next := w, next
		core := cores[w%len(cores)]
		g.Go(func() error {
			if o.Pin() {
				runtime.LockOSThread()
				defer runtime.UnlockOSThread()
				if err := pinThread(core); err != nil {
					log.Warn("batch.pin.failed", "worker", w, "core", core, "error", err)
				}
			}
			for {
				if err := ctx.Err(); err != nil {
					return err
				}
				j, ok := next()
				if !ok {
					return nil
				}
				process(j, parse, cutoffs, detopt, o.MaxResidues(), log)
			}
		})
	}
	if err := g.Wait(); err != nil {
		log.Warn("batch.cancelled", "error", err)
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return newReport(jobs, nworkers, o.Policy(), cutoffs, time.Since(start)), nil
}

// process runs the whole pipeline on one job. Any problem, including a panic, is
// recorded in the job.
func process(j *Job, parse ParseFunc, cutoffs *gocada.Cutoffs, detopt *gocada.Options, maxres int, log *slog.Logger) {
	j.to(Running)
	t := time.Now()
	defer func() {
		if r := recover(); r != nil {
			j.Err = fmt.Errorf("%s: panic: %v", j.Path, r)
		}
		j.Elapsed = time.Since(t)
		if j.Err != nil {
			j.Result = nil
			j.to(Failed)
			log.Warn("batch.file.failed", "file", j.Path, "worker", j.Worker, "error", j.Err)
			return
		}
		j.to(Done)
		log.Info("batch.file.done", "file", j.Path, "worker", j.Worker, "residues", j.Result.Residues,
			"contacts", j.Result.Total(), "elapsed", j.Elapsed)
	}()
	S, err := parse(j.Path)
	if err != nil {
		j.Err = err
		return
	}
	if maxres > 0 && S.Len() > maxres {
		j.Err = &TooLargeError{File: j.Path, Residues: S.Len(), Max: maxres}
		return
	}
	j.Result, j.Err = gocada.Detect(S, cutoffs, detopt)
}
