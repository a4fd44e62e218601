/*
 * contactplot.go, part of gocada.
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

// Package contactplot draws the contacts found in a batch run: the number of contacts
// per type as a bar chart, and the distribution of contact distances as a histogram.
package contactplot

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/gocada/gocada"
	"github.com/gocada/gocada/batch"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Size of the images written by Save.
var (
	Width  = 16 * vg.Centimeter
	Height = 10 * vg.Centimeter
)

// Bins is the number of bins of the distance histograms.
var Bins = 30

func basicPlot(title, xlabel, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.Padding = 3 * vg.Millimeter
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())
	return p
}

// Counts returns a bar chart of the number of contacts of each type.
func Counts(counts [gocada.NumContactTypes]int, title string) (*plot.Plot, error) {
	p := basicPlot(title, "", "Contacts")
	vals := make(plotter.Values, len(counts))
	names := make([]string, len(counts))
	for t, n := range counts {
		vals[t] = float64(n)
		names[t] = gocada.ContactType(t).Abbrev()
	}
	bars, err := plotter.NewBarChart(vals, vg.Points(20))
	if err != nil {
		return nil, fmt.Errorf("contactplot.Counts: %w", err)
	}
	bars.Color = plotutil.Color(0)
	bars.LineStyle.Width = 0
	p.Add(bars)
	p.NominalX(names...)
	p.Y.Min = 0
	return p, nil
}

// Distances returns a histogram of the distances of the contacts of type t in results.
// It fails if there are no such contacts.
func Distances(results []*gocada.Result, t gocada.ContactType) (*plot.Plot, error) {
	var d plotter.Values
	for _, r := range results {
		for _, c := range r.Contacts {
			if c.Type == t {
				d = append(d, c.Distance)
			}
		}
	}
	if len(d) == 0 {
		return nil, fmt.Errorf("contactplot.Distances: no %s contacts", t)
	}
	p := basicPlot(fmt.Sprintf("%s distances", t), "Distance (A)", "Contacts")
	h, err := plotter.NewHist(d, Bins)
	if err != nil {
		return nil, fmt.Errorf("contactplot.Distances: %w", err)
	}
	h.FillColor = plotutil.Color(int(t))
	p.Add(h)
	return p, nil
}

// WritePNG writes p as a PNG image of the default size to w.
func WritePNG(w io.Writer, p *plot.Plot) error {
	wt, err := p.WriterTo(Width, Height, "png")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

// Save writes the plots for the run B to dir: <runid>_counts.png and, for each type with
// contacts, <runid>_<type>.png. It returns the paths written.
func Save(dir string, B *batch.Report) ([]string, error) {
	var written []string
	p, err := Counts(B.Counts, fmt.Sprintf("%d structures, %d contacts", B.Done, B.Total()))
	if err != nil {
		return nil, err
	}
	name := filepath.Join(dir, B.RunID+"_counts.png")
	if err := p.Save(Width, Height, name); err != nil {
		return written, fmt.Errorf("contactplot.Save: %w", err)
	}
	written = append(written, name)
	results := B.Results()
	for t, n := range B.Counts {
		if n == 0 {
			continue
		}
		ct := gocada.ContactType(t)
		p, err := Distances(results, ct)
		if err != nil {
			return written, err
		}
		name := filepath.Join(dir, B.RunID+"_"+ct.String()+".png")
		if err := p.Save(Width, Height, name); err != nil {
			return written, fmt.Errorf("contactplot.Save: %w", err)
		}
		written = append(written, name)
	}
	return written, nil
}
