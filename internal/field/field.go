// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package field reduces sample columns (or an analytic function) to a
// scalar value per coordinate-grid cell.
//
// A Field is a dense 1D or 2D array of scalars with a per-cell "empty"
// sentinel that distinguishes "no data landed here" from a computed
// zero. Fields are produced once per render and never mutated after
// reduction, except by Transform, which is part of reduction.
package field

import (
	"math"

	"github.com/aclements/sup/internal/mathexpr"
)

// Field is a W×H grid of scalars. For 1D reductions H is 1.
type Field struct {
	W, H int

	vals []float64
	set  []bool
}

// New returns a Field of the given shape with every cell empty.
func New(w, h int) *Field {
	return &Field{W: w, H: h, vals: make([]float64, w*h), set: make([]bool, w*h)}
}

func (f *Field) index(i, j int) int {
	return j*f.W + i
}

// Set stores v in cell (i, j) and marks it non-empty.
func (f *Field) Set(i, j int, v float64) {
	n := f.index(i, j)
	f.vals[n] = v
	f.set[n] = true
}

// Clear marks cell (i, j) empty.
func (f *Field) Clear(i, j int) {
	n := f.index(i, j)
	f.vals[n] = 0
	f.set[n] = false
}

// At returns the value of cell (i, j) and whether the cell is non-empty.
func (f *Field) At(i, j int) (float64, bool) {
	n := f.index(i, j)
	return f.vals[n], f.set[n]
}

// Empty reports whether cell (i, j) holds no reduced value.
func (f *Field) Empty(i, j int) bool {
	return !f.set[f.index(i, j)]
}

// AllEmpty reports whether no cell holds a value.
func (f *Field) AllEmpty() bool {
	for _, ok := range f.set {
		if ok {
			return false
		}
	}
	return true
}

// Bounds returns the minimum and maximum over non-empty cells. ok is
// false if every cell is empty.
func (f *Field) Bounds() (min, max float64, ok bool) {
	for n, isSet := range f.set {
		if !isSet {
			continue
		}
		v := f.vals[n]
		if !ok {
			min, max, ok = v, v, true
			continue
		}
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return
}

// Sum returns the sum over non-empty cells.
func (f *Field) Sum() float64 {
	sum := 0.0
	for n, isSet := range f.set {
		if isSet {
			sum += f.vals[n]
		}
	}
	return sum
}

// Row returns the values and set flags of row j. For 1D fields use
// Row(0). The returned slices alias the field.
func (f *Field) Row(j int) ([]float64, []bool) {
	return f.vals[j*f.W : (j+1)*f.W], f.set[j*f.W : (j+1)*f.W]
}

// ArgMax returns the cell index of the maximum non-empty value of a 1D
// field, or -1 if the field is all-empty.
func (f *Field) ArgMax() int {
	best, bestVal := -1, math.Inf(-1)
	for n, isSet := range f.set {
		if isSet && f.vals[n] > bestVal {
			best, bestVal = n, f.vals[n]
		}
	}
	return best
}

// Transform applies fn element-wise to the non-empty cells. Cells where
// fn fails or produces a non-finite value become empty; the render
// continues with the remaining cells.
func (f *Field) Transform(fn *mathexpr.Func) {
	for j := 0; j < f.H; j++ {
		for i := 0; i < f.W; i++ {
			v, ok := f.At(i, j)
			if !ok {
				continue
			}
			out, err := fn.Eval(v)
			if err != nil || math.IsNaN(out) || math.IsInf(out, 0) {
				f.Clear(i, j)
				continue
			}
			f.Set(i, j, out)
		}
	}
}

// Cap replaces every non-empty value above max with max.
func (f *Field) Cap(max float64) {
	for n, isSet := range f.set {
		if isSet && f.vals[n] > max {
			f.vals[n] = max
		}
	}
}

// Clamp replaces non-empty values outside [lo, hi] with the nearer
// bound and reports whether any value was clamped below or above.
func (f *Field) Clamp(lo, hi float64) (below, above bool) {
	for n, isSet := range f.set {
		if !isSet {
			continue
		}
		if f.vals[n] < lo {
			f.vals[n] = lo
			below = true
		} else if f.vals[n] > hi {
			f.vals[n] = hi
			above = true
		}
	}
	return
}
