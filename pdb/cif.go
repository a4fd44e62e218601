/*
 * cif.go, part of gocada.
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
	"strconv"
	"strings"

	"github.com/gocada/gocada"
)

// a CIF token. Quoted values and text fields can't be tags or keywords.
type cifToken struct {
	text   string
	quoted bool
	line   int
}

func (t cifToken) isTag() bool { return !t.quoted && strings.HasPrefix(t.text, "_") }

func (t cifToken) isKeyword() bool {
	if t.quoted {
		return false
	}
	l := strings.ToLower(t.text)
	return l == "loop_" || strings.HasPrefix(l, "data_") || strings.HasPrefix(l, "save_") || l == "stop_" || l == "global_"
}

// cifLexer splits a CIF file in tokens, one line at a time.
type cifLexer struct {
	sc      *bufio.Scanner
	lineno  int
	pending []cifToken
	err     error
}

func newCIFLexer(r io.Reader) *cifLexer {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 4*1024*1024)
	return &cifLexer{sc: sc}
}

// next returns the next token, and false at the end of the input.
func (L *cifLexer) next() (cifToken, bool) {
	for len(L.pending) == 0 {
		if !L.sc.Scan() {
			L.err = L.sc.Err()
			return cifToken{}, false
		}
		L.lineno++
		line := L.sc.Text()
		if strings.HasPrefix(line, ";") {
			L.pending = append(L.pending, L.textField(line))
			continue
		}
		L.pending = splitCIFLine(line, L.lineno, L.pending)
	}
	t := L.pending[0]
	L.pending = L.pending[1:]
	return t, true
}

// textField reads a multi-line value delimited by lines starting with ';'.
func (L *cifLexer) textField(first string) cifToken {
	start := L.lineno
	parts := []string{strings.TrimSpace(first[1:])}
	for L.sc.Scan() {
		L.lineno++
		line := L.sc.Text()
		if strings.HasPrefix(line, ";") {
			break
		}
		parts = append(parts, strings.TrimSpace(line))
	}
	return cifToken{text: strings.TrimSpace(strings.Join(parts, " ")), quoted: true, line: start}
}

// splitCIFLine appends the tokens of a line to dst. A quote only closes a value
// when followed by whitespace or the end of the line, so O5' and "N'" both work.
func splitCIFLine(line string, lineno int, dst []cifToken) []cifToken {
	i := 0
	for i < len(line) {
		c := line[i]
		switch {
		case c == ' ' || c == '\t':
			i++
		case c == '#':
			return dst
		case c == '\'' || c == '"':
			j := i + 1
			for j < len(line) && !(line[j] == c && (j+1 == len(line) || line[j+1] == ' ' || line[j+1] == '\t')) {
				j++
			}
			dst = append(dst, cifToken{text: line[i+1 : min(j, len(line))], quoted: true, line: lineno})
			i = j + 1
		default:
			j := i
			for j < len(line) && line[j] != ' ' && line[j] != '\t' {
				j++
			}
			dst = append(dst, cifToken{text: line[i:j], line: lineno})
			i = j
		}
	}
	return dst
}

// the _atom_site columns we use, and their position in the loop (-1 if absent).
type atomSiteColumns struct {
	group, symbol, atomName, compID, labelAsym, authAsym int
	authSeq, labelSeq, insCode, x, y, z, occupancy, model, entity, id int
}

func newAtomSiteColumns(tags []string) (*atomSiteColumns, error) {
	idx := make(map[string]int, len(tags))
	for i, t := range tags {
		idx[strings.ToLower(strings.TrimPrefix(t, "_atom_site."))] = i
	}
	get := func(names ...string) int {
		for _, n := range names {
			if i, ok := idx[strings.ToLower(n)]; ok {
				return i
			}
		}
		return -1
	}
	c := &atomSiteColumns{
		group:     get("group_PDB"),
		symbol:    get("type_symbol"),
		atomName:  get("label_atom_id", "auth_atom_id"),
		compID:    get("label_comp_id", "auth_comp_id"),
		labelAsym: get("label_asym_id"),
		authAsym:  get("auth_asym_id"),
		authSeq:   get("auth_seq_id"),
		labelSeq:  get("label_seq_id"),
		insCode:   get("pdbx_PDB_ins_code"),
		x:         get("Cartn_x"),
		y:         get("Cartn_y"),
		z:         get("Cartn_z"),
		occupancy: get("occupancy"),
		model:     get("pdbx_PDB_model_num"),
		entity:    get("label_entity_id"),
		id:        get("id"),
	}
	switch {
	case c.atomName < 0, c.compID < 0, c.x < 0, c.y < 0, c.z < 0:
		return nil, fmt.Errorf("_atom_site loop lacks atom name, residue name or coordinates")
	case c.labelAsym < 0 && c.authAsym < 0:
		return nil, fmt.Errorf("_atom_site loop lacks a chain id")
	case c.authSeq < 0 && c.labelSeq < 0:
		return nil, fmt.Errorf("_atom_site loop lacks a residue number")
	}
	return c, nil
}

type cifParser struct {
	b      *gocada.Builder
	source string
	lex    *cifLexer
	model  string //first model number seen
	done   bool   //the first model is over
}

// readCIF reads the first model of a PDBx/mmCIF file into b.
func readCIF(r io.Reader, b *gocada.Builder, source string) error {
	p := &cifParser{b: b, source: source, lex: newCIFLexer(r)}
	t, ok := p.lex.next()
	for ok {
		switch {
		case strings.EqualFold(t.text, "loop_") && !t.quoted:
			var err error
			t, ok, err = p.loop()
			if err != nil {
				return err
			}
			continue
		case t.isTag():
			v, vok := p.lex.next()
			if !vok || v.isTag() || v.isKeyword() {
				t, ok = v, vok
				continue
			}
			p.item(t.text, v.text)
		}
		t, ok = p.lex.next()
	}
	if p.lex.err != nil {
		return &gocada.ParseError{File: source, Line: p.lex.lineno, Err: p.lex.err}
	}
	return nil
}

// item handles a tag-value pair outside loops.
func (p *cifParser) item(tag, value string) {
	switch strings.ToLower(tag) {
	case "_entry.id":
		p.b.SetID(value)
	case "_struct.title":
		p.b.SetTitle(value)
	case "_exptl_crystal_grow.ph", "_pdbx_nmr_exptl_sample_conditions.ph":
		p.setPH(value)
	}
}

func (p *cifParser) setPH(value string) {
	if ph, err := strconv.ParseFloat(value, 64); err == nil && ph >= 0 && ph <= 14 {
		p.b.SetPH(ph)
	}
}

// loop reads a loop_ block. It returns the first token after the loop.
func (p *cifParser) loop() (cifToken, bool, error) {
	var tags []string
	t, ok := p.lex.next()
	for ok && t.isTag() {
		tags = append(tags, t.text)
		t, ok = p.lex.next()
	}
	if len(tags) == 0 {
		return t, ok, nil
	}
	category, _, _ := strings.Cut(strings.ToLower(tags[0]), ".")
	var handle func(row []cifToken) error
	switch category {
	case "_atom_site":
		cols, err := newAtomSiteColumns(tags)
		if err != nil {
			return t, ok, &gocada.ParseError{File: p.source, Line: t.line, Err: err}
		}
		handle = func(row []cifToken) error { return p.atom(cols, row) }
	case "_exptl_crystal_grow", "_pdbx_nmr_exptl_sample_conditions":
		col := -1
		for i, tag := range tags {
			if strings.HasSuffix(strings.ToLower(tag), ".ph") {
				col = i
			}
		}
		first := true
		handle = func(row []cifToken) error {
			if first && col >= 0 {
				p.setPH(row[col].text)
			}
			first = false
			return nil
		}
	}
	row := make([]cifToken, 0, len(tags))
	for ok && !t.isTag() && !t.isKeyword() {
		row = append(row, t)
		if len(row) == len(tags) {
			if handle != nil && !p.done {
				if err := handle(row); err != nil {
					return t, ok, err
				}
			}
			row = row[:0]
		}
		t, ok = p.lex.next()
	}
	if len(row) != 0 {
		return t, ok, &gocada.ParseError{File: p.source, Line: p.lex.lineno,
			Err: fmt.Errorf("loop %s has %d values left over, with %d columns", category, len(row), len(tags))}
	}
	return t, ok, nil
}

func value(row []cifToken, i int) string {
	if i < 0 {
		return ""
	}
	v := row[i].text
	if !row[i].quoted && (v == "." || v == "?") {
		return ""
	}
	return v
}

// atom handles one _atom_site row.
func (p *cifParser) atom(c *atomSiteColumns, row []cifToken) error {
	line := row[0].line
	errorf := func(format string, args ...interface{}) error {
		return &gocada.ParseError{File: p.source, Line: line, Err: fmt.Errorf(format, args...)}
	}
	if g := value(row, c.group); g != "" && g != "ATOM" {
		return nil
	}
	if m := value(row, c.model); m != "" {
		if p.model == "" {
			p.model = m
		} else if m != p.model {
			p.done = true
			return nil
		}
	}
	var at gocada.Atom
	at.Name = value(row, c.atomName)
	at.Element = value(row, c.symbol)
	if at.Element == "" {
		at.Element = elementFromName(at.Name)
	}
	at.Occupancy = 1
	var err error
	if o := value(row, c.occupancy); o != "" {
		at.Occupancy, err = strconv.ParseFloat(o, 64)
		if err != nil {
			return errorf("bad occupancy %q: %w", o, err)
		}
	}
	if !keep(at.Name, at.Element, at.Occupancy) {
		return nil
	}
	at.Serial, _ = strconv.Atoi(value(row, c.id))
	chain := value(row, c.authAsym)
	if chain == "" {
		chain = value(row, c.labelAsym)
	}
	num := value(row, c.authSeq)
	if num == "" {
		num = value(row, c.labelSeq)
	}
	number, err := strconv.Atoi(num)
	if err != nil {
		return errorf("bad residue number %q: %w", num, err)
	}
	var icode byte
	if ic := value(row, c.insCode); ic != "" {
		icode = ic[0]
	}
	for i, k := range []int{c.x, c.y, c.z} {
		at.Coord[i], err = strconv.ParseFloat(value(row, k), 64)
		if err != nil {
			return errorf("bad coordinate %q: %w", value(row, k), err)
		}
	}
	p.b.AddAtom(chain, value(row, c.entity), value(row, c.compID), number, icode, at)
	return nil
}
