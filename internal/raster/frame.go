// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package raster

import (
	"fmt"
	"math"

	"github.com/aclements/go-moremath/vec"
	"github.com/aclements/sup/internal/grid"
)

// A Frame is the complete rendered figure: the plot grid with its axis
// decorations, plus whatever colorbars, bars, legends and info lines
// the mode appends below it.
type Frame struct {
	Lines []Line

	style Style
	ff    string // axis label format, e.g. "% .2e"
	ff2   string // plain float format, e.g. "%.2e"
}

// NewFrame frames g with y-axis and x-axis lines, tick marks and tick
// labels. yGridLines adds faint horizontal guides across empty cells
// at y-tick rows, which the 1D modes use.
func NewFrame(g *Grid, ax, ay *grid.Axis, style Style, decimals int, yGridLines bool) *Frame {
	fr := &Frame{
		style: style,
		ff:    fmt.Sprintf("%% .%de", decimals),
		ff2:   fmt.Sprintf("%%.%de", decimals),
	}
	fg := style.Theme.FG
	emptyFG := style.Theme.EmptyBin

	tickWidth := len(fmt.Sprintf(fr.ff, 0.0))

	// X ticks: the most ticks whose labels still fit, at two display
	// columns per bin.
	var xTicks []int
	for n := 2; n < 100; n++ {
		idx := floorLinspace(0, g.W, n)
		if (idx[1]-idx[0])*2 < tickWidth+1 {
			break
		}
		xTicks = idx
	}

	// Y ticks: scale the x-tick count by the aspect ratio, within
	// bounds that keep short plots labeled and tall plots readable.
	maxYTicks := (g.H + 1) / 2
	minYTicks := g.H/10 + 3
	nYTicks := int(math.Ceil(float64(len(xTicks)) * float64(g.H) / float64(g.W)))
	if nYTicks > maxYTicks {
		nYTicks = maxYTicks
	}
	if nYTicks < minYTicks {
		nYTicks = minYTicks
	}
	yTicks := make(map[int]bool)
	for _, i := range floorLinspace(0, g.H, nYTicks) {
		yTicks[i] = true
	}

	yEdges := ay.Edges() // indexed top-down below via len-1-...

	// Top border. As a y-tick row under yGridLines it becomes a guide
	// line.
	var top Line
	if yGridLines && yTicks[0] {
		top.add(" ", fg, true)
		for i := 0; i < g.W; i++ {
			top.add(" _", emptyFG, true)
		}
		top.add("_", fg, true)
	} else {
		top.add(" ", fg, true)
		for i := 0; i < g.W; i++ {
			top.add("  ", fg, true)
		}
		top.add("_", fg, true)
	}
	lines := []Line{top}

	// Plot rows, top-down.
	empty := Cell{style.Markers.Empty, emptyFG}
	for li := 1; li <= g.H; li++ {
		row := g.H - li
		var l Line
		l.add(" ", fg, true)
		for i := 0; i < g.W; i++ {
			c := g.At(i, row)
			if yGridLines && yTicks[li] && c == empty {
				l.add(" _", emptyFG, true)
			} else {
				l.add(c.Glyph, c.FG, true)
			}
		}
		if yTicks[li] {
			l.addW("│̲", 1, fg, true) // axis segment with tick
		} else {
			l.addW("│", 1, fg, true)
		}
		lines = append(lines, l)
	}

	// Y tick labels, and right padding on unlabeled rows.
	for li := range lines {
		if yTicks[li] && li > 0 {
			label := fmt.Sprintf(fr.ff, yEdges[len(yEdges)-1-li])
			lines[li].add(label+"   ", fg, true)
		} else {
			lines[li].add(spaces(tickWidth+3), fg, true)
		}
	}

	// X axis with tick marks.
	var xa Line
	xAxis := " "
	for i := range xTicks {
		if i == len(xTicks)-1 {
			xAxis += "┼"
			break
		}
		xAxis += "┼─"
		xAxis += runs("─", (xTicks[i+1]-xTicks[i])*2-2)
	}
	xa.add(xAxis, fg, true)
	lines = append(lines, xa)

	// X tick labels.
	var xl Line
	labels := " "
	for i, ti := range xTicks {
		label := fmt.Sprintf(fr.ff, ax.Edges()[ti])
		labels += label
		if i == len(xTicks)-1 {
			break
		}
		labels += spaces((xTicks[i+1]-xTicks[i])*2 - len(label))
	}
	xl.add(labels+"     ", fg, true)
	lines = append(lines, xl)

	fr.Lines = lines
	return fr
}

// AddBlank appends an empty line.
func (fr *Frame) AddBlank() {
	fr.Lines = append(fr.Lines, Line{})
}

// AddText appends a single-span line of figure text.
func (fr *Frame) AddText(text string, fg int, bold bool) {
	var l Line
	l.add(text, fg, bold)
	fr.Lines = append(fr.Lines, l)
}

// AddColorbar appends a colorbar: color swatches separated by value
// thresholds, with threshold labels on alternate separators underneath.
func (fr *Frame) AddColorbar(thresholds []float64) {
	fg := fr.style.Theme.FG
	emptyFG := fr.style.Theme.EmptyBin
	codes := fr.style.Palette.Codes

	fr.AddBlank()

	var bar Line
	bar.add("  ", fg, true)
	for i := range thresholds {
		barFG := fg
		if i%2 == 1 {
			barFG = emptyFG
		}
		bar.add("|", barFG, true)
		if i < len(thresholds)-1 {
			bar.add("■■■■■■", codes[i], true)
		}
		bar.add(" ", fg, true)
	}
	fr.Lines = append(fr.Lines, bar)

	var nums Line
	nums.add("  ", fg, true)
	for i, v := range thresholds {
		if i%2 == 0 {
			nums.add(fmt.Sprintf(fr.ff2, v), fg, true)
		} else {
			gap := 8
			if n := len(fmt.Sprintf(fr.ff2, v)); n > gap {
				gap -= n - gap
			}
			nums.add(spaces(gap), fg, true)
		}
	}
	fr.Lines = append(fr.Lines, nums)
}

// AddBars appends one horizontal interval bar. intervals are [begin,
// end) pairs in bin-edge index space over nBins bins; the bar aligns
// with the plot columns above it and is labeled on the right.
func (fr *Frame) AddBars(intervals [][2]int, nBins int, label string, fg int) {
	bar := "   "
	prevEnd := 0
	for _, iv := range intervals {
		b, e := iv[0], iv[1]
		openStart := b == 0
		openEnd := e == nBins
		if openStart {
			bar = " "
		}
		bar += runs("  ", b-prevEnd-1)
		if openStart {
			bar += "╶─"
		} else {
			bar += "├─"
		}
		bar += runs("─", (e-b)*2-2)
		if openEnd {
			bar += "╴ "
		} else {
			bar += "┤ "
		}
		prevEnd = e
	}
	bar += label

	var l Line
	l.add(bar, fg, true)
	fr.Lines = append(fr.Lines, l)
}

// A LegendEntry is one item of a legend line: an optional colored
// marker followed by text.
type LegendEntry struct {
	Marker   string
	MarkerFG int
	Text     string
}

// AddLegend appends a one-line legend with the given entries.
func (fr *Frame) AddLegend(entries ...LegendEntry) {
	fg := fr.style.Theme.FG
	var l Line
	l.add(" ", fg, true)
	for k, e := range entries {
		if k > 0 {
			l.add("   ", fg, true)
		}
		if e.Marker != "" {
			l.add(e.Marker, e.MarkerFG, true)
			l.add(" ", fg, true)
		}
		l.add(e.Text, fg, true)
	}
	fr.Lines = append(fr.Lines, l)
}

// Num formats a value with the frame's plain float format, for legend
// text that should match the axis label precision.
func (fr *Frame) Num(v float64) string {
	return fmt.Sprintf(fr.ff2, v)
}

// PadLeft prepends n background spaces to every line so the figure
// does not sit flush against the terminal edge.
func (fr *Frame) PadLeft(n int) {
	fg := fr.style.Theme.FG
	for i := range fr.Lines {
		padded := Line{}
		padded.add(spaces(n), fg, true)
		padded.Spans = append(padded.Spans, fr.Lines[i].Spans...)
		padded.Width += fr.Lines[i].Width
		fr.Lines[i] = padded
	}
}

func floorLinspace(lo, hi, n int) []int {
	vals := vec.Linspace(float64(lo), float64(hi), n)
	out := make([]int, 0, n)
	var prev int
	for k, v := range vals {
		i := int(math.Floor(v))
		if k > 0 && i == prev {
			continue
		}
		out = append(out, i)
		prev = i
	}
	return out
}

func spaces(n int) string {
	return runs(" ", n)
}

func runs(s string, n int) string {
	if n <= 0 {
		return ""
	}
	out := ""
	for i := 0; i < n; i++ {
		out += s
	}
	return out
}
