/*
 * errors.go, part of gocada.
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

import (
	"errors"
	"fmt"
	"strings"
)

// Error is the interface for errors that all packages in this library implement. The Decorate method allows
// to add and retrieve info from the error, without changing its type or wrapping it around something else.
// Each call to Decorate appends the given string (normally "FunctionName: extra info") and returns the
// current decoration slice. An empty string only returns the slice.
type Error interface {
	Error() string
	Decorate(string) []string
	Critical() bool
}

// Decorations implements the Decorate method of Error. Embed it in an error type
// to satisfy that part of the interface.
type Decorations struct {
	deco []string
}

func (d *Decorations) Decorate(dec string) []string {
	if dec != "" {
		d.deco = append(d.deco, dec)
	}
	return d.deco
}

// Trail returns the decorations as " (a <- b)", or "" if there are none.
func (d *Decorations) Trail() string {
	if len(d.deco) == 0 {
		return ""
	}
	return " (" + strings.Join(d.deco, " <- ") + ")"
}

// errDecorate decorates err with caller if err implements Error, and returns it
// unchanged otherwise. nil stays nil.
func errDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	var e Error
	if errors.As(err, &e) {
		e.Decorate(caller)
	}
	return err
}

// ParseError means a whole input file could not be turned into a Structure.
// The batch goes on with the other files.
type ParseError struct {
	Decorations
	File string
	Line int //0 if not known
	Err  error
}

func (err *ParseError) Error() string {
	loc := err.File
	if err.Line > 0 {
		loc = fmt.Sprintf("%s:%d", err.File, err.Line)
	}
	return fmt.Sprintf("parse %s: %v%s", loc, err.Err, err.Trail())
}

func (err *ParseError) Unwrap() error  { return err.Err }
func (err *ParseError) Critical() bool { return false }

// MalformedRingError is returned for an aromatic residue whose ring can't be used
// for stacking. Only that residue is affected.
type MalformedRingError struct {
	Decorations
	Residue string
	Reason  string
}

func (err *MalformedRingError) Error() string {
	return fmt.Sprintf("malformed aromatic ring in %s: %s%s", err.Residue, err.Reason, err.Trail())
}

func (err *MalformedRingError) Critical() bool { return false }

// InsufficientPointsError is returned by the geometry functions when they get fewer points than
// needed to define a plane. Given a well built Structure it can't happen, so it is critical.
type InsufficientPointsError struct {
	Decorations
	Got  int
	Need int
}

func (err *InsufficientPointsError) Error() string {
	return fmt.Sprintf("insufficient points: got %d, need at least %d%s", err.Got, err.Need, err.Trail())
}

func (err *InsufficientPointsError) Critical() bool { return true }
