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

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"syscall"

	"github.com/gocada/gocada/batch"
	"github.com/gocada/gocada/contactplot"
	"github.com/gocada/gocada/pdb"
	"github.com/gocada/gocada/report"
	"github.com/gocada/gocada/settings"
	"github.com/spf13/cobra"
)

type runFlags struct {
	files       []string
	cores       string
	workers     int
	policy      string
	output      string
	format      string
	config      string
	epsilon     float64
	iface       bool
	region      string
	maxResidues int
	pin         bool
	plot        bool
	debug       bool
}

func runCmd() *cobra.Command {
	var f runFlags
	c := &cobra.Command{
		Use:   "run [files...]",
		Short: "Find the contacts in a set of PDB or mmCIF files",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, cmd.OutOrStdout(), cmd.ErrOrStderr(), append(f.files, args...), &f)
		},
	}
	fl := c.Flags()
	fl.StringSliceVarP(&f.files, "files", "f", nil, "Structure files, glob patterns or directories")
	fl.StringVar(&f.cores, "cores", "all", "Cores to use: all, a number, a range (0-3) or a list (0,2,5)")
	fl.IntVar(&f.workers, "workers", 0, "Number of workers (default one per core)")
	fl.StringVar(&f.policy, "policy", batch.Pull.String(), "Distribution of files among workers: pull|round-robin|greedy")
	fl.StringVarP(&f.output, "output", "o", "", "Directory for the contact files (none are written if empty)")
	fl.StringVar(&f.format, "format", report.CSV.String(), "Format of the contact files: csv|json|msgpack")
	fl.StringVarP(&f.config, "config", "c", "", "Settings file with the contact criteria (YAML, JSON or TOML)")
	fl.Float64Var(&f.epsilon, "epsilon", 0, "Widen every distance range by this amount, in A")
	fl.BoolVar(&f.iface, "interface", false, "Only report contacts between different entities, including the apolar types")
	fl.StringVar(&f.region, "region", "", "Only look at residues with these numbers, i.e. 10-50,72")
	fl.IntVar(&f.maxResidues, "max-residues", batch.DefaultMaxResidues, "Skip structures with more residues (0 for no limit)")
	fl.BoolVar(&f.pin, "pin", false, "Pin each worker to its core (Linux only)")
	fl.BoolVar(&f.plot, "plot", false, "Write PNG plots of the contact counts and distances to the output directory")
	fl.BoolVar(&f.debug, "debug", false, "Verbose logging")
	return c
}

// parseRegion turns a list of residue numbers and ranges ("10-50,72,-3") into the numbers.
func parseRegion(spec string) ([]int, error) {
	var ret []int
	if strings.TrimSpace(spec) == "" {
		return nil, nil
	}
	for _, item := range strings.Split(spec, ",") {
		item = strings.TrimSpace(item)
		lo, hi := item, item
		if i := strings.Index(item[min(1, len(item)):], "-"); i >= 0 {
			lo, hi = item[:i+1], item[i+2:]
		}
		a, err := strconv.Atoi(lo)
		if err != nil {
			return nil, fmt.Errorf("bad region item %q", item)
		}
		b, err := strconv.Atoi(hi)
		if err != nil || b < a {
			return nil, fmt.Errorf("bad region item %q", item)
		}
		for n := a; n <= b; n++ {
			ret = append(ret, n)
		}
	}
	return ret, nil
}

// expandInputs turns globs and directories into the list of structure files, sorted
// and without repetitions.
func expandInputs(inputs []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}
	for _, in := range inputs {
		matches, err := filepath.Glob(in)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", in, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("%s: no such file", in)
		}
		for _, m := range matches {
			fi, err := os.Stat(m)
			if err != nil {
				return nil, err
			}
			if !fi.IsDir() {
				add(m)
				continue
			}
			entries, err := os.ReadDir(m)
			if err != nil {
				return nil, err
			}
			for _, e := range entries {
				if format, _, _ := pdb.Detect(e.Name()); !e.IsDir() && format != pdb.Unknown {
					add(filepath.Join(m, e.Name()))
				}
			}
		}
	}
	sort.Strings(files)
	if len(files) == 0 {
		return nil, fmt.Errorf("no structure files given")
	}
	return files, nil
}

func run(ctx context.Context, stdout, stderr io.Writer, inputs []string, f *runFlags) error {
	log := newLogger(stderr, f.debug)
	cutoffs, err := settings.Load(f.config)
	if err != nil {
		return err
	}
	if f.epsilon != 0 {
		cutoffs = cutoffs.Widen(f.epsilon)
		if err := cutoffs.Validate(); err != nil {
			return err
		}
	}
	cores, err := batch.ParseCores(f.cores)
	if err != nil {
		return err
	}
	policy, err := batch.ParsePolicy(f.policy)
	if err != nil {
		return err
	}
	format, err := report.ParseFormat(f.format)
	if err != nil {
		return err
	}
	region, err := parseRegion(f.region)
	if err != nil {
		return err
	}
	if f.plot && f.output == "" {
		return fmt.Errorf("--plot needs an --output directory")
	}
	files, err := expandInputs(inputs)
	if err != nil {
		return err
	}
	if f.output != "" {
		if err := os.MkdirAll(f.output, 0o755); err != nil {
			return err
		}
	}
	o := batch.DefaultOptions()
	o.Cores(cores)
	o.Workers(f.workers)
	o.Policy(policy)
	o.Pin(f.pin)
	o.MaxResidues(f.maxResidues)
	o.Cutoffs(cutoffs)
	o.Interface(f.iface)
	o.Region(region)
	o.Logger(log)

	B, err := batch.Run(ctx, files, o)
	if err != nil {
		return err
	}
	if err := report.WriteSummary(stdout, B); err != nil {
		return err
	}
	if f.output == "" {
		return nil
	}
	results := B.Results()
	for i, name := range report.ContactsFileNames(results, format) {
		R := results[i]
		if err := writeFile(filepath.Join(f.output, name), func(w io.Writer) error {
			return report.WriteContacts(w, R, format)
		}); err != nil {
			return err
		}
	}
	if err := writeFile(filepath.Join(f.output, B.RunID+"_run"+format.Ext()), func(w io.Writer) error {
		return report.WriteRun(w, B, format)
	}); err != nil {
		return err
	}
	if f.plot {
		written, err := contactplot.Save(f.output, B)
		if err != nil {
			return err
		}
		log.Debug("plots.written", "files", written)
	}
	log.Info("run.done", "run", B.RunID, "output", f.output, "done", B.Done, "failed", B.Failed)
	return nil
}

func writeFile(name string, write func(io.Writer) error) error {
	fout, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := write(fout); err != nil {
		fout.Close()
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return fout.Close()
}
