/*
 * read.go, part of gocada.
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

// Package pdb reads protein structures in the PDB and PDBx/mmCIF formats into
// gocada Structures. Files can be compressed with gzip (.gz) or zstandard (.zst).
// Only the first model is read, hydrogens and terminal oxygens are dropped, and for
// atoms with alternate locations only the first conformer with occupancy 0 or at least 0.5
// is kept.
package pdb

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocada/gocada"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// DefaultPH is the pH assigned to structures whose files don't report one.
const DefaultPH = 7.4

// Format is a structure file format.
type Format int

const (
	Unknown Format = iota
	PDB
	CIF
)

func (f Format) String() string {
	switch f {
	case PDB:
		return "pdb"
	case CIF:
		return "mmcif"
	}
	return "unknown"
}

// Compression is the compression applied to a structure file.
type Compression int

const (
	None Compression = iota
	Gzip
	Zstd
)

// Detect guesses the format and compression of a file from its name, for instance
// 1abc.pdb, 1abc.ent.gz or 1abc.cif.zst. It also returns the base name with all the
// recognized extensions removed, which is used as default id of the structure.
func Detect(name string) (Format, Compression, string) {
	base := filepath.Base(name)
	comp := None
	switch strings.ToLower(filepath.Ext(base)) {
	case ".gz":
		comp = Gzip
	case ".zst", ".zstd":
		comp = Zstd
	}
	if comp != None {
		base = strings.TrimSuffix(base, filepath.Ext(base))
	}
	format := Unknown
	switch strings.ToLower(filepath.Ext(base)) {
	case ".pdb", ".ent":
		format = PDB
	case ".cif", ".mmcif":
		format = CIF
	}
	if format != Unknown {
		base = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return format, comp, base
}

// ReadFile reads the structure in the file path. The format and compression are taken from
// the extension. The cutoffs are used to check the planarity of aromatic rings, nil means the
// default ones. All errors are *gocada.ParseError.
func ReadFile(path string, cutoffs *gocada.Cutoffs) (*gocada.Structure, error) {
	format, comp, id := Detect(path)
	if format == Unknown {
		return nil, &gocada.ParseError{File: path, Err: fmt.Errorf("unknown structure format for %q", filepath.Base(path))}
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, &gocada.ParseError{File: path, Err: err}
	}
	defer f.Close()
	r, err := decompress(f, comp)
	if err != nil {
		return nil, &gocada.ParseError{File: path, Err: err}
	}
	defer r.Close()
	S, err := read(r, format, id, path, cutoffs)
	return S, decorate(err, "ReadFile")
}

// Read reads a structure in the given format from r. id is the default id for the
// structure and source the name reported in errors.
func Read(r io.Reader, format Format, id, source string, cutoffs *gocada.Cutoffs) (*gocada.Structure, error) {
	S, err := read(r, format, id, source, cutoffs)
	return S, decorate(err, "Read")
}

func read(r io.Reader, format Format, id, source string, cutoffs *gocada.Cutoffs) (*gocada.Structure, error) {
	b := gocada.NewBuilder(id, source)
	b.SetPH(DefaultPH)
	var err error
	switch format {
	case PDB:
		err = readPDB(bufio.NewReader(r), b, source)
	case CIF:
		err = readCIF(r, b, source)
	default:
		err = &gocada.ParseError{File: source, Err: fmt.Errorf("unknown format")}
	}
	if err != nil {
		return nil, err
	}
	S, err := b.Structure(cutoffs)
	if err != nil {
		var ge gocada.Error
		if errors.As(err, &ge) && ge.Critical() {
			return nil, err
		}
		return nil, &gocada.ParseError{File: source, Err: err}
	}
	return S, nil
}

// decompress returns a reader for the uncompressed content of r.
func decompress(r io.Reader, c Compression) (io.ReadCloser, error) {
	switch c {
	case Gzip:
		return gzip.NewReader(r)
	case Zstd:
		d, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return d.IOReadCloser(), nil
	}
	return io.NopCloser(r), nil
}

func decorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	var ge gocada.Error
	if errors.As(err, &ge) {
		ge.Decorate(caller)
	}
	return err
}

// keep tells whether an atom record should be read. Hydrogens and the terminal
// oxygen are skipped, as are atoms with partial occupancy below 0.5.
func keep(name, element string, occupancy float64) bool {
	if name == "OXT" || name == "" {
		return false
	}
	e := strings.ToUpper(element)
	if e == "H" || e == "D" {
		return false
	}
	if e == "" && (name[0] == 'H' || name[0] == 'D') {
		return false
	}
	return occupancy == 0 || occupancy >= 0.5
}

// elementFromName guesses the element of a protein atom from its name.
func elementFromName(name string) string {
	for _, c := range name {
		if c >= 'A' && c <= 'Z' {
			return string(c)
		}
	}
	return ""
}
