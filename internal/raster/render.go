// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package raster

import (
	"github.com/aclements/sup/internal/field"
	"github.com/aclements/sup/internal/grid"
	"github.com/aclements/sup/internal/quantize"
)

// Render2D maps a quantized 2D level field onto a cell grid: one
// marker cell per bin, colored by palette level, empty bins as
// background. Identical levels and style always produce an identical
// grid.
func Render2D(l *quantize.Levels, style Style) *Grid {
	g := NewGrid(l.W, l.H, style)
	for j := 0; j < l.H; j++ {
		for i := 0; i < l.W; i++ {
			lv := l.At(i, j)
			if lv == quantize.Empty {
				continue
			}
			g.Set(i, j, Cell{style.Markers.Regular, style.Palette.Codes[lv]})
		}
	}
	return g
}

// Render1D lays a 1D reduced field out as a curve over a W×ay.N grid:
// each x bin's value is binned on the y axis and drawn with the upper
// or lower half-bin glyph depending on where in the bin it falls.
// With fillBelow set, the cells under each value are filled solid,
// producing bars instead of a line. Values outside the y range are not
// drawn. The curve uses the theme's graph color.
func Render1D(f *field.Field, ay *grid.Axis, style Style, fillBelow bool) *Grid {
	g := NewGrid(f.W, ay.N, style)
	centers := ay.Centers()
	for i := 0; i < f.W; i++ {
		v, ok := f.At(i, 0)
		if !ok {
			continue
		}
		yi := ay.Bin(v)
		if yi < 0 {
			continue
		}
		glyph := style.Markers.Down
		if v > centers[yi] {
			glyph = style.Markers.Up
		}
		g.Set(i, yi, Cell{glyph, style.Theme.Graph})
		if fillBelow {
			for j := yi - 1; j >= 0; j-- {
				g.Set(i, j, Cell{style.Markers.Fill, style.Theme.Graph})
			}
		}
	}
	return g
}

// MarkSpecial overrides the cells holding the extreme field value with
// the special marker in the theme's max-bin color: the maximum, or the
// minimum when min is set. Used to star best-fit and extremum bins.
func MarkSpecial(g *Grid, f *field.Field, style Style, min bool) {
	lo, hi, ok := f.Bounds()
	if !ok {
		return
	}
	target := hi
	if min {
		target = lo
	}
	for j := 0; j < f.H; j++ {
		for i := 0; i < f.W; i++ {
			if v, set := f.At(i, j); set && v == target {
				g.Set(i, j, Cell{style.Markers.Special, style.Theme.MaxBin})
			}
		}
	}
}
