/*
 * cores.go, part of gocada.
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
	"runtime"
	"sort"
	"strconv"
	"strings"

	"github.com/gocada/gocada"
)

// InvalidCoreSelectionError is returned when a core selection can't be satisfied
// on this machine. Nothing is processed in that case.
type InvalidCoreSelectionError struct {
	gocada.Decorations
	Spec   string
	Reason string
}

func (err *InvalidCoreSelectionError) Error() string {
	return fmt.Sprintf("invalid core selection %q: %s%s", err.Spec, err.Reason, err.Trail())
}

func (err *InvalidCoreSelectionError) Critical() bool { return true }

// ParseCores turns a core selection into a sorted list of core indexes, checked against
// the number of CPUs available. The selection can be empty or "all" (every core), a single
// index ("3"), a range ("0-3") or a comma-separated list of indexes and ranges ("0,2,5-7").
func ParseCores(spec string) ([]int, error) {
	return parseCores(spec, runtime.NumCPU())
}

func parseCores(spec string, ncpu int) ([]int, error) {
	bad := func(format string, args ...interface{}) error {
		return &InvalidCoreSelectionError{Spec: spec, Reason: fmt.Sprintf(format, args...)}
	}
	s := strings.TrimSpace(strings.ToLower(spec))
	if s == "" || s == "all" {
		ret := make([]int, ncpu)
		for i := range ret {
			ret[i] = i
		}
		return ret, nil
	}
	index := func(f string) (int, error) {
		f = strings.TrimSpace(f)
		if f == "" {
			return 0, bad("empty core index")
		}
		i, err := strconv.Atoi(f)
		if err != nil {
			return 0, bad("%q is not a core index", f)
		}
		if i < 0 || i >= ncpu {
			return 0, bad("core %d out of range, this machine has cores 0-%d", i, ncpu-1)
		}
		return i, nil
	}
	set := make(map[int]bool)
	for _, item := range strings.Split(s, ",") {
		from, to, isRange := strings.Cut(item, "-")
		first, err := index(from)
		if err != nil {
			return nil, err
		}
		last := first
		if isRange {
			if last, err = index(to); err != nil {
				return nil, err
			}
			if last < first {
				return nil, bad("range %s is reversed", strings.TrimSpace(item))
			}
		}
		for i := first; i <= last; i++ {
			set[i] = true
		}
	}
	ret := make([]int, 0, len(set))
	for i := range set {
		ret = append(ret, i)
	}
	sort.Ints(ret)
	return ret, nil
}
