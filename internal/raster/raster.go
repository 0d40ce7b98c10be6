// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package raster turns quantized fields into grids of terminal cells
// and frames them with axes, colorbars, region bars, legends and info
// text. It performs no I/O; the ansi package writes the result.
package raster

import (
	"unicode/utf8"

	"github.com/aclements/sup/internal/palette"
)

// A Cell is one plot bin as displayed: a two-column glyph and its
// foreground color. The background color is uniform per plot and comes
// from the theme.
type Cell struct {
	Glyph string
	FG    int
}

// Grid is the W×H cell raster of the plot area. Row 0 is the bottom
// row, matching bin indices.
type Grid struct {
	W, H  int
	cells []Cell
}

// NewGrid returns a grid with every cell set to the empty-bin cell of
// the style.
func NewGrid(w, h int, style Style) *Grid {
	g := &Grid{W: w, H: h, cells: make([]Cell, w*h)}
	for i := range g.cells {
		g.cells[i] = Cell{style.Markers.Empty, style.Theme.EmptyBin}
	}
	return g
}

// At returns the cell at bin (i, j).
func (g *Grid) At(i, j int) Cell {
	return g.cells[j*g.W+i]
}

// Set replaces the cell at bin (i, j).
func (g *Grid) Set(i, j int, c Cell) {
	g.cells[j*g.W+i] = c
}

// Markers is the glyph set used for plot cells. Each glyph occupies
// two display columns.
type Markers struct {
	Regular string // filled bin (2D) or plain point
	Up      string // value in the upper half of its bin (1D)
	Down    string // value in the lower half of its bin (1D)
	Fill    string // fill-below block (1D bar plots)
	Special string // highlighted point (plr maximum)
	Empty   string // empty bin
}

// Markers2D is the glyph set for 2D block plots.
func Markers2D() Markers {
	return Markers{
		Regular: " ■",
		Up:      " ▀",
		Down:    " ▄",
		Fill:    " █",
		Special: " 🟊",
		Empty:   " □",
	}
}

// Markers1D is the glyph set for 1D line plots: empty bins are blank.
func Markers1D() Markers {
	m := Markers2D()
	m.Empty = "  "
	return m
}

// MarkersBar is the glyph set for 1D bar plots (hist/post), whose bar
// tops use a full block for the upper half.
func MarkersBar() Markers {
	m := Markers1D()
	m.Up = " █"
	m.Fill = " █"
	return m
}

// Style bundles everything the rasterizer needs to color a plot.
type Style struct {
	Theme   palette.Theme
	Palette palette.Palette
	Markers Markers
}

// A Span is a run of styled text in a framed output line.
type Span struct {
	Text string
	FG   int
	Bold bool
}

// A Line is one framed output row: styled spans plus the display width
// of their concatenation. Width is tracked explicitly because some
// span texts use combining characters.
type Line struct {
	Spans []Span
	Width int
}

func (l *Line) add(text string, fg int, bold bool) {
	l.addW(text, utf8.RuneCountInString(text), fg, bold)
}

func (l *Line) addW(text string, width, fg int, bold bool) {
	l.Spans = append(l.Spans, Span{text, fg, bold})
	l.Width += width
}
