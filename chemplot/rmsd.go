/*
 * rmsd.go, part of gocomplex.
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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

// Package chemplot draws plots of modelling results with gonum/plot.
package chemplot

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// RMSDBars draws a grouped bar chart with one group per template and one
// bar per target chain in every group. values[s][t] is the RMSD of chain
// series[s] on templates[t]; NaN marks a chain with no value, drawn as a
// zero-height bar. The chart is saved to plotname, whose extension sets
// the format.
func RMSDBars(title string, templates, series []string, values [][]float64, plotname string) error {
	if len(templates) == 0 || len(series) == 0 {
		return fmt.Errorf("RMSDBars: nothing to plot")
	}
	if len(values) != len(series) {
		return fmt.Errorf("RMSDBars: %d series names for %d value sets", len(series), len(values))
	}
	p := plot.New()
	p.Title.Text = title
	p.Title.Padding = 3 * vg.Millimeter
	p.Y.Label.Text = "RMSD (A)"
	p.Y.Min = 0
	w := vg.Points(float64(60) / float64(len(series)))
	for s, name := range series {
		if len(values[s]) != len(templates) {
			return fmt.Errorf("RMSDBars: series %s has %d values for %d templates", name, len(values[s]), len(templates))
		}
		vals := make(plotter.Values, len(templates))
		for t, v := range values[s] {
			if !math.IsNaN(v) {
				vals[t] = v
			}
		}
		bars, err := plotter.NewBarChart(vals, w)
		if err != nil {
			return err
		}
		bars.Color = colors(s, len(series))
		bars.LineStyle.Width = vg.Length(0)
		bars.Offset = w * vg.Length(float64(s)-float64(len(series)-1)/2)
		p.Add(bars)
		p.Legend.Add(name, bars)
	}
	p.Legend.Top = true
	p.NominalX(templates...)
	return p.Save(vg.Length(max(4, len(templates)))*vg.Inch, 4*vg.Inch, plotname)
}
