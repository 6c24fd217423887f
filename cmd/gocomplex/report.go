/*
 * report.go, part of gocomplex.
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

package main

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rmera/gocomplex/modeler"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	failStyle   = cellStyle.Foreground(lipgloss.Color("9"))
	passStyle   = cellStyle.Foreground(lipgloss.Color("10"))
)

// status is the last column of the report table.
func status(r *modeler.Result) string {
	switch {
	case r.Err != nil:
		return fmt.Sprintf("failed at %s: %v", r.Stage, r.Err)
	case r.Clash:
		return "clash"
	default:
		return "ok"
	}
}

func placement(r *modeler.Result) string {
	if r.Assignment == nil {
		return "-"
	}
	var parts []string
	for i, t := range r.Assignment.Targets {
		parts = append(parts, t+">"+r.Assignment.Chains[i])
	}
	return strings.Join(parts, " ")
}

// render formats a run report: a table with one row per template, then
// the models that passed the clash check.
func render(rep *modeler.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Run %s, target chains: %s\n", rep.RunID, strings.Join(rep.Targets, " "))
	for _, id := range slices.Sorted(maps.Keys(rep.SearchErrors)) {
		fmt.Fprintf(&b, "Search failed for %s: %v\n", id, rep.SearchErrors[id])
	}
	if len(rep.Results) == 0 {
		b.WriteString("No templates found.\n")
		return b.String()
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Template", "Chains", "RMSD", "Closest", "Status")
	for _, r := range rep.Results {
		rmsd := "-"
		if m := r.MeanRMSD(); !math.IsNaN(m) {
			rmsd = fmt.Sprintf("%.3f", m)
		}
		closest := "-"
		if r.OK() {
			closest = fmt.Sprintf("%.2f", r.Closest)
		}
		t.Row(r.Template, placement(r), rmsd, closest, status(r))
	}
	t.StyleFunc(func(row, col int) lipgloss.Style {
		switch {
		case row == table.HeaderRow:
			return headerStyle
		case col == 4 && rep.Results[row].Passed():
			return passStyle
		case col == 4:
			return failStyle
		}
		return cellStyle
	})
	b.WriteString(t.String())
	b.WriteString("\n")
	passed := rep.Passed()
	if len(passed) == 0 {
		b.WriteString("No model passed the clash check.\n")
		return b.String()
	}
	b.WriteString("Models without clashes:\n")
	for _, p := range passed {
		b.WriteString("  " + p + "\n")
	}
	return b.String()
}
