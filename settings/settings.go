/*
 * settings.go, part of gocada.
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

// Package settings loads contact criteria from YAML, JSON or TOML files and from
// GOCADA_ environment variables, on top of the built-in defaults.
//
// A file overrides only what it names. Each contact type takes either a mapping or
// a bare number, which is the upper distance bound:
//
//	hydrogen_bond: {min: 0, max: 3.5, min_separation: 4}
//	disulfide_bond: 2.1
//	aromatic: {max: 6}
//	stacking_angles: {parallel_max: 25, perpendicular_min: 65, include_other: true}
//	planarity: 0.3
//
// Environment variables use the same keys in upper case, with underscores, for instance
// GOCADA_SALT_BRIDGE_MAX=4.5 or GOCADA_PLANARITY=0.2.
package settings

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gocada/gocada"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of the environment variables read by Load.
const EnvPrefix = "GOCADA"

const (
	anglesKey    = "stacking_angles"
	planarityKey = "planarity"
)

// Load returns the default cutoffs with the overrides in the file path (if not empty)
// and in the environment applied. The result is validated.
func Load(path string) (*gocada.Cutoffs, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("settings: reading %s: %w", path, err)
		}
	}
	c := gocada.DefaultCutoffs()
	if err := apply(v, c); err != nil {
		if path != "" {
			return nil, fmt.Errorf("settings: %s: %w", path, err)
		}
		return nil, fmt.Errorf("settings: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("settings: %w", err)
	}
	return c, nil
}

// apply copies the settings in v over c.
func apply(v *viper.Viper, c *gocada.Cutoffs) error {
	seen := make(map[string]bool)
	for _, k := range v.AllKeys() {
		top, _, _ := strings.Cut(k, ".")
		if seen[top] {
			continue
		}
		seen[top] = true
		if top == anglesKey || top == planarityKey {
			continue
		}
		t, ok := gocada.ContactTypeFromName(top)
		if !ok {
			return fmt.Errorf("unknown setting %q", top)
		}
		if err := applyType(v, top, t, c); err != nil {
			return err
		}
	}
	//canonical names again, for values only set in the environment.
	for i := 0; i < int(gocada.NumContactTypes); i++ {
		t := gocada.ContactType(i)
		if err := applyType(v, t.String(), t, c); err != nil {
			return err
		}
	}
	if v.IsSet(anglesKey + ".parallel_max") {
		c.Angles.ParallelMax = v.GetFloat64(anglesKey + ".parallel_max")
	}
	if v.IsSet(anglesKey + ".perpendicular_min") {
		c.Angles.PerpendicularMin = v.GetFloat64(anglesKey + ".perpendicular_min")
	}
	if v.IsSet(anglesKey + ".include_other") {
		c.Angles.IncludeOther = v.GetBool(anglesKey + ".include_other")
	}
	if v.IsSet(planarityKey) {
		p, err := number(v.Get(planarityKey))
		if err != nil {
			return fmt.Errorf("%s: %w", planarityKey, err)
		}
		c.Planarity = p
	}
	return nil
}

// applyType reads the settings under key for contact type t.
func applyType(v *viper.Viper, key string, t gocada.ContactType, c *gocada.Cutoffs) error {
	raw := v.Get(key)
	if _, isMap := raw.(map[string]interface{}); raw != nil && !isMap {
		max, err := number(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		c.Ranges[t].Max = max
		return nil
	}
	for _, f := range []string{"min", "max", "min_separation"} {
		k := key + "." + f
		if !v.IsSet(k) {
			continue
		}
		val, err := number(v.Get(k))
		if err != nil {
			return fmt.Errorf("%s: %w", k, err)
		}
		switch f {
		case "min":
			c.Ranges[t].Min = val
		case "max":
			c.Ranges[t].Max = val
		case "min_separation":
			if val != float64(int(val)) {
				return fmt.Errorf("%s: %g is not an integer", k, val)
			}
			c.MinSeparation[t] = int(val)
		}
	}
	return nil
}

func number(raw interface{}) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(fmt.Sprint(raw)), 64)
	if err != nil {
		return 0, fmt.Errorf("%v is not a number", raw)
	}
	return f, nil
}

type rangeDoc struct {
	Min           float64 `yaml:"min"`
	Max           float64 `yaml:"max"`
	MinSeparation int     `yaml:"min_separation"`
}

type anglesDoc struct {
	ParallelMax      float64 `yaml:"parallel_max"`
	PerpendicularMin float64 `yaml:"perpendicular_min"`
	IncludeOther     bool    `yaml:"include_other"`
}

// Dump writes c as a YAML settings file that Load can read back.
func Dump(w io.Writer, c *gocada.Cutoffs) error {
	doc := &yaml.Node{Kind: yaml.MappingNode}
	doc.HeadComment = "gocada contact criteria. Distances in A, angles in degrees."
	add := func(key string, val interface{}, style yaml.Style) error {
		var n yaml.Node
		if err := n.Encode(val); err != nil {
			return err
		}
		n.Style = style
		doc.Content = append(doc.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: key}, &n)
		return nil
	}
	for i := 0; i < int(gocada.NumContactTypes); i++ {
		r := c.Ranges[i]
		if err := add(gocada.ContactType(i).String(), rangeDoc{r.Min, r.Max, c.MinSeparation[i]}, yaml.FlowStyle); err != nil {
			return err
		}
	}
	a := c.Angles
	if err := add(anglesKey, anglesDoc{a.ParallelMax, a.PerpendicularMin, a.IncludeOther}, 0); err != nil {
		return err
	}
	if err := add(planarityKey, c.Planarity, 0); err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}
