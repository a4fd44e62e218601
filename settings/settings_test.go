/*
 * settings_test.go, part of gocada.
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

package settings

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/gocada/gocada"
)

func writeFile(Te *testing.T, name, content string) string {
	Te.Helper()
	p := filepath.Join(Te.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		Te.Fatal(err)
	}
	return p
}

func TestLoadDefaults(Te *testing.T) {
	c, err := Load("")
	if err != nil {
		Te.Fatal(err)
	}
	if !reflect.DeepEqual(c, gocada.DefaultCutoffs()) {
		Te.Errorf("without overrides Load should give the defaults, got %+v", c)
	}
}

func TestLoadFormats(Te *testing.T) {
	files := map[string]string{
		"over.yaml": `
hydrogen_bond: {max: 3.5, min_separation: 3}
disulfide_bond: 2.1
aromatic:
  max: 6
stacking_angles:
  parallel_max: 25
  include_other: true
planarity: 0.3
`,
		"over.json": `{"hydrogen_bond": {"max": 3.5, "min_separation": 3}, "disulfide_bond": 2.1,
"aromatic": {"max": 6}, "stacking_angles": {"parallel_max": 25, "include_other": true}, "planarity": 0.3}`,
		"over.toml": `
disulfide_bond = 2.1
planarity = 0.3

[hydrogen_bond]
max = 3.5
min_separation = 3

[aromatic]
max = 6

[stacking_angles]
parallel_max = 25
include_other = true
`,
	}
	want := gocada.DefaultCutoffs()
	want.Ranges[gocada.HydrogenBond].Max = 3.5
	want.MinSeparation[gocada.HydrogenBond] = 3
	want.Ranges[gocada.Disulfide].Max = 2.1
	want.Ranges[gocada.Stacking].Max = 6
	want.Angles.ParallelMax = 25
	want.Angles.IncludeOther = true
	want.Planarity = 0.3
	for name, content := range files {
		c, err := Load(writeFile(Te, name, content))
		if err != nil {
			Te.Errorf("%s: %v", name, err)
			continue
		}
		if !reflect.DeepEqual(c, want) {
			Te.Errorf("%s: got %+v, want %+v", name, c, want)
		}
	}
}

func TestLoadEnv(Te *testing.T) {
	Te.Setenv("GOCADA_SALT_BRIDGE_MAX", "4.5")
	Te.Setenv("GOCADA_PLANARITY", "0.1")
	p := writeFile(Te, "s.yaml", "salt_bridge: {max: 6, min: 1}\n")
	c, err := Load(p)
	if err != nil {
		Te.Fatal(err)
	}
	if r := c.Ranges[gocada.SaltBridge]; r.Max != 4.5 || r.Min != 1 {
		Te.Errorf("the environment should override the file: %+v", r)
	}
	if c.Planarity != 0.1 {
		Te.Errorf("planarity from the environment not read: %g", c.Planarity)
	}
}

func TestLoadErrors(Te *testing.T) {
	cases := map[string]string{
		"negative.yaml": "hydrophobic: {min: -1}\n",
		"inverted.yaml": "repulsive: {min: 5, max: 4}\n",
		"unknown.yaml":  "hydrogen_bonds: 3.5\n",
		"nan.yaml":      "disulfide_bond: close\n",
		"sep.yaml":      "attractive: {min_separation: 1.5}\n",
		"angles.yaml":   "stacking_angles: {parallel_max: 85}\n",
	}
	for name, content := range cases {
		if c, err := Load(writeFile(Te, name, content)); err == nil {
			Te.Errorf("%s: expected an error, got %+v", name, c)
		}
	}
	if _, err := Load(filepath.Join(Te.TempDir(), "missing.yaml")); err == nil {
		Te.Errorf("a missing file should be an error")
	}
}

func TestDumpRoundTrip(Te *testing.T) {
	c := gocada.DefaultCutoffs().Widen(0.25)
	c.MinSeparation[gocada.Stacking] = 3
	c.Angles.IncludeOther = true
	var buf bytes.Buffer
	if err := Dump(&buf, c); err != nil {
		Te.Fatal(err)
	}
	if !strings.Contains(buf.String(), "hydrogen_bond: {min: 0, max: 4.1") || !strings.Contains(buf.String(), "stacking_angles:\n  parallel_max: 20") {
		Te.Errorf("unexpected YAML:\n%s", buf.String())
	}
	back, err := Load(writeFile(Te, "dump.yaml", buf.String()))
	if err != nil {
		Te.Fatal(err)
	}
	if !reflect.DeepEqual(back, c) {
		Te.Errorf("round trip changed the cutoffs:\n%+v\n%+v", c, back)
	}
}
