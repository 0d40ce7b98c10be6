// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package quantize maps a scalar field onto a bounded number of
// discrete color levels.
package quantize

import (
	"github.com/aclements/go-moremath/vec"
	"github.com/aclements/sup/internal/field"
)

// Levels is a W×H grid of color levels in [0, L-1]. Empty indicates a
// cell with no level (rendered as background).
type Levels struct {
	W, H, L int

	idx []int
}

// Empty is the level of a cell with no data.
const Empty = -1

// NewLevels returns a level field with every cell Empty, for modes
// that assign levels directly (region and confidence coloring) rather
// than by linear quantization.
func NewLevels(w, h, n int) *Levels {
	idx := make([]int, w*h)
	for i := range idx {
		idx[i] = Empty
	}
	return &Levels{W: w, H: h, L: n, idx: idx}
}

// Set assigns the level of cell (i, j).
func (l *Levels) Set(i, j, level int) {
	l.idx[j*l.W+i] = level
}

// At returns the level of cell (i, j), or Empty.
func (l *Levels) At(i, j int) int {
	return l.idx[j*l.W+i]
}

// AllEmpty reports whether no cell has a level. An all-empty level
// field renders as a blank canvas; it is a caller-visible condition,
// not an error.
func (l *Levels) AllEmpty() bool {
	for _, v := range l.idx {
		if v != Empty {
			return false
		}
	}
	return true
}

// Range describes the value range mapped onto the levels. When Auto is
// set the range comes from the field's own min/max.
type Range struct {
	Min, Max float64
	Auto     bool
}

// AutoRange quantizes against the field's own bounds.
var AutoRange = Range{Auto: true}

// Quantize maps f onto n levels. Values map linearly from the range
// onto [0, n-1], clamping outside values to the end levels. A constant
// field maps every non-empty cell to the top level. Empty cells stay
// empty. The value range actually used is returned alongside the
// levels, for colorbar labeling.
func Quantize(f *field.Field, n int, r Range) (*Levels, Range) {
	min, max := r.Min, r.Max
	if r.Auto {
		var ok bool
		min, max, ok = f.Bounds()
		if !ok {
			min, max = 0, 0
		}
	}
	used := Range{Min: min, Max: max}

	l := &Levels{W: f.W, H: f.H, L: n, idx: make([]int, f.W*f.H)}
	for j := 0; j < f.H; j++ {
		for i := 0; i < f.W; i++ {
			v, ok := f.At(i, j)
			if !ok {
				l.idx[j*f.W+i] = Empty
				continue
			}
			l.idx[j*f.W+i] = level(v, min, max, n)
		}
	}
	return l, used
}

func level(v, min, max float64, n int) int {
	if min == max {
		// Constant field: everything is "the maximum".
		return n - 1
	}
	lv := int((v - min) / (max - min) * float64(n-1))
	if lv < 0 {
		lv = 0
	} else if lv > n-1 {
		lv = n - 1
	}
	return lv
}

// Thresholds returns the n+1 value boundaries that separate the levels
// of the given range, for colorbar labeling.
func Thresholds(r Range, n int) []float64 {
	return vec.Linspace(r.Min, r.Max, n+1)
}
