/*
 * options.go, part of gocada.
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

import "log/slog"

// Options controls the contact search for one structure. The zero value is not
// usable, get one from DefaultOptions.
type Options struct {
	iface  bool
	region []int
	logger *slog.Logger
}

// DefaultOptions returns Options with all contacts considered and slog.Default() as logger.
func DefaultOptions() *Options {
	o := new(Options)
	o.logger = slog.Default()
	return o
}

// Interface returns whether only contacts between different entities are
// reported, and sets it, if a value is given.
func (o *Options) Interface(iface ...bool) bool {
	ret := o.iface
	if len(iface) > 0 {
		o.iface = iface[0]
	}
	return ret
}

// Region returns the residue numbers the search is limited to, and sets them, if given.
// Only pairs of residues whose numbers are both in the region, in any chain, are
// classified. An empty region, the default, means the whole structure.
func (o *Options) Region(r ...[]int) []int {
	ret := o.region
	if len(r) > 0 {
		o.region = append([]int(nil), r[0]...)
	}
	return ret
}

// Logger returns the logger in use and sets it, if a non-nil one is given.
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
