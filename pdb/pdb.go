/*
 * pdb.go, part of gocada.
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

package pdb

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/gocada/gocada"
)

// pH as given in REMARK 200 (X-ray) and REMARK 210/215/217 (NMR) records.
var phRegexp = regexp.MustCompile(`\bPH\b\s*[:\s]\s*([-+]?\d*\.\d+|\d+)`)

type pdbParser struct {
	b       *gocada.Builder
	source  string
	lineno  int
	line    string
	title   []string
	entity  string            //current MOL_ID while reading COMPND
	entity4 map[string]string //chain -> entity
	compnd  strings.Builder
}

// readPDB reads the first model of a PDB file into b.
func readPDB(r *bufio.Reader, b *gocada.Builder, source string) error {
	p := &pdbParser{b: b, source: source, entity4: make(map[string]string)}
	for {
		line, err := r.ReadString('\n')
		if err != nil && err != io.EOF {
			return p.errorf("%w", err)
		}
		if len(line) == 0 && err == io.EOF {
			break
		}
		p.lineno++
		p.line = strings.TrimRight(line, "\r\n")
		stop, perr := p.parseLine()
		if perr != nil {
			return perr
		}
		if stop || err == io.EOF {
			break
		}
	}
	if len(p.title) > 0 {
		b.SetTitle(strings.Join(p.title, " "))
	}
	return nil
}

func (p *pdbParser) errorf(format string, args ...interface{}) error {
	return &gocada.ParseError{File: p.source, Line: p.lineno, Err: fmt.Errorf(format, args...)}
}

// cols returns the columns from-to (1-based, inclusive) of the current line, trimmed.
func (p *pdbParser) cols(from, to int) string {
	if from > len(p.line) {
		return ""
	}
	if to > len(p.line) {
		to = len(p.line)
	}
	return strings.TrimSpace(p.line[from-1 : to])
}

func (p *pdbParser) at(col int) byte {
	if col > len(p.line) {
		return ' '
	}
	return p.line[col-1]
}

// parseLine processes a record. It returns true when the first model is over.
func (p *pdbParser) parseLine() (bool, error) {
	switch p.cols(1, 6) {
	case "ENDMDL", "END":
		return true, nil
	case "HEADER":
		if id := p.cols(63, 66); id != "" {
			p.b.SetID(id)
		}
	case "TITLE":
		p.title = append(p.title, p.cols(11, 80))
	case "COMPND":
		p.parseCompnd()
	case "REMARK":
		p.parseRemark()
	case "ATOM":
		if err := p.parseAtom(); err != nil {
			return false, err
		}
	}
	return false, nil
}

// parseCompnd collects the MOL_ID / CHAIN specifications, which may span several records.
func (p *pdbParser) parseCompnd() {
	p.compnd.WriteString(p.cols(11, 80))
	text := p.compnd.String()
	if !strings.HasSuffix(text, ";") {
		return
	}
	p.compnd.Reset()
	for _, spec := range strings.Split(text, ";") {
		k, v, ok := strings.Cut(spec, ":")
		if !ok {
			continue
		}
		v = strings.TrimSpace(v)
		switch strings.TrimSpace(k) {
		case "MOL_ID":
			p.entity = v
		case "CHAIN":
			if p.entity == "" {
				continue
			}
			for _, c := range strings.Split(v, ",") {
				p.entity4[strings.TrimSpace(c)] = p.entity
			}
		}
	}
}

func (p *pdbParser) parseRemark() {
	n := p.cols(7, 10)
	if n != "200" && !strings.HasPrefix(n, "21") {
		return
	}
	text := strings.ToUpper(p.line)
	if strings.Contains(text, "NULL") {
		return
	}
	m := phRegexp.FindStringSubmatchIndex(text)
	if m == nil {
		return
	}
	//ranges such as 7.0-8.0 or 7.0/8.0 are ambiguous.
	if rest := strings.TrimSpace(text[m[3]:]); strings.HasPrefix(rest, "-") || strings.HasPrefix(rest, "/") {
		return
	}
	ph, err := strconv.ParseFloat(text[m[2]:m[3]], 64)
	if err == nil && ph >= 0 && ph <= 14 {
		p.b.SetPH(ph)
	}
}

func (p *pdbParser) parseAtom() error {
	if len(p.line) < 54 {
		return p.errorf("ATOM record too short (%d columns)", len(p.line))
	}
	var at gocada.Atom
	at.Name = p.cols(13, 16)
	at.Element = p.cols(77, 78)
	if at.Element == "" {
		at.Element = elementFromName(at.Name)
	}
	at.Occupancy = 1
	var err error
	if occ := p.cols(55, 60); occ != "" {
		at.Occupancy, err = strconv.ParseFloat(occ, 64)
		if err != nil {
			return p.errorf("bad occupancy %q: %w", occ, err)
		}
	}
	if !keep(at.Name, at.Element, at.Occupancy) {
		return nil
	}
	if s := p.cols(7, 11); s != "" {
		//serials beyond 99999 are often written in hexadecimal or garbled. They are not needed.
		at.Serial, _ = strconv.Atoi(s)
	}
	resname := p.cols(18, 20)
	chain := p.cols(22, 22)
	number, err := strconv.Atoi(p.cols(23, 26))
	if err != nil {
		return p.errorf("bad residue number %q: %w", p.cols(23, 26), err)
	}
	icode := p.at(27)
	if icode == ' ' {
		icode = 0
	}
	for i, c := range [][2]int{{31, 38}, {39, 46}, {47, 54}} {
		at.Coord[i], err = strconv.ParseFloat(p.cols(c[0], c[1]), 64)
		if err != nil {
			return p.errorf("bad coordinate %q: %w", p.cols(c[0], c[1]), err)
		}
	}
	p.b.AddAtom(chain, p.entity4[chain], resname, number, icode, at)
	return nil
}
