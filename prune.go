/*
 * prune.go, part of gocada.
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
	"math"
	"sort"
)

// Pair is a pair of residue indexes (see Residue.Index), with I < J.
type Pair struct {
	I, J int
}

type cell [3]int

// CandidatePairs returns the pairs of residues whose alpha carbons are close enough for
// any of their atoms to be within maxdist of each other. Residues without alpha carbon
// are ignored. The pairs are sorted by I and then by J.
//
// The residues are binned in a cubic grid, so only residues in the same or neighbouring
// cells are compared. The cell edge is the larger of radius and maxdist plus twice the
// largest reach in the set, so residues with distorted geometries make the cells larger
// instead of losing contacts. A pair is kept if the distance between the alpha
// carbons is not larger than maxdist plus the reach of both residues.
func CandidatePairs(residues []*Residue, radius, maxdist float64) []Pair {
	maxreach := 0.0
	active := make([]*Residue, 0, len(residues))
	for _, r := range residues {
		if r.ca == nil {
			continue
		}
		active = append(active, r)
		maxreach = math.Max(maxreach, r.reach)
	}
	if len(active) < 2 {
		return nil
	}
	edge := math.Max(radius, maxdist+2*maxreach)
	if edge <= 0 {
		edge = 1
	}
	grid := make(map[cell][]*Residue, len(active))
	for _, r := range active {
		k := cellOf(r.ca.Coord, edge)
		grid[k] = append(grid[k], r)
	}
	var pairs []Pair
	for _, r := range active {
		k := cellOf(r.ca.Coord, edge)
		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				for dz := -1; dz <= 1; dz++ {
					for _, s := range grid[cell{k[0] + dx, k[1] + dy, k[2] + dz}] {
						if s.index <= r.index {
							continue
						}
						if Distance(r.ca.Coord, s.ca.Coord) <= maxdist+r.reach+s.reach {
							pairs = append(pairs, Pair{r.index, s.index})
						}
					}
				}
			}
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].I != pairs[j].I {
			return pairs[i].I < pairs[j].I
		}
		return pairs[i].J < pairs[j].J
	})
	return pairs
}

func cellOf(p Point, edge float64) cell {
	return cell{
		int(math.Floor(p[0] / edge)),
		int(math.Floor(p[1] / edge)),
		int(math.Floor(p[2] / edge)),
	}
}
