/*
 * doc.go, part of gocada.
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

/*
Package gocada finds and classifies the contacts between residues in protein structures.

	**gocada Capabilities**

	Represents proteins as chains of residues of heavy atoms, with the alpha carbon
	and the aromatic ring geometry (centroid and normal) of each residue cached.

	Prunes the residue pairs to be examined using only alpha carbon positions, binned
	in a grid, without ever losing a real contact.

	Classifies contacts as hydrogen bonds, hydrophobic, attractive, repulsive,
	salt bridges, disulfide bonds and aromatic stackings (parallel, perpendicular).

	The distance criteria are held in an immutable Cutoffs table, which can be widened
	by a constant or overridden from a file (see the settings package).

The pdb package reads PDB and mmCIF files (optionally compressed) into Structures, the batch
package runs the search over many files on a set of CPU cores, and the report and contactplot
packages write the results.

A minimal use:

	s, err := pdb.ReadFile("1abc.pdb", nil)
	if err != nil {
		//...
	}
	res, err := gocada.Detect(s, gocada.DefaultCutoffs(), nil)
	for _, c := range res.Contacts {
		fmt.Println(c.Res1, c.Atom1, c.Res2, c.Atom2, c.Label(), c.Distance)
	}

*/
package gocada
