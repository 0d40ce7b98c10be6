// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package grid constructs the coordinate axes that the reducers bin
// samples over.
//
// An Axis divides [Lo, Hi] into N equal-width bins. Bins are half-open
// intervals [edge[i], edge[i+1]), except the last bin, which also
// includes Hi so that boundary samples are not dropped.
package grid

import (
	"fmt"
	"math"

	"github.com/aclements/go-moremath/vec"
)

// Axis is an ordered partition of [Lo, Hi] into N equal-width bins.
type Axis struct {
	Lo, Hi float64
	N      int

	edges []float64
}

// InvalidRangeError reports a degenerate or reversed axis range.
type InvalidRangeError struct {
	Lo, Hi float64
	N      int
}

func (e *InvalidRangeError) Error() string {
	if e.N < 1 {
		return fmt.Sprintf("invalid axis resolution %d; need at least 1 bin", e.N)
	}
	return fmt.Sprintf("invalid axis range [%g, %g]; need min < max", e.Lo, e.Hi)
}

// NewAxis returns an axis over [lo, hi) with n bins. It fails with an
// *InvalidRangeError if lo >= hi or n < 1.
func NewAxis(lo, hi float64, n int) (*Axis, error) {
	if n < 1 {
		return nil, &InvalidRangeError{lo, hi, n}
	}
	if !(lo < hi) {
		return nil, &InvalidRangeError{lo, hi, n}
	}
	return &Axis{Lo: lo, Hi: hi, N: n, edges: vec.Linspace(lo, hi, n+1)}, nil
}

// Edges returns the n+1 bin edges. The caller must not modify the
// returned slice.
func (a *Axis) Edges() []float64 {
	return a.edges
}

// Centers returns the n bin centers.
func (a *Axis) Centers() []float64 {
	dx := a.Width()
	c := make([]float64, a.N)
	for i := range c {
		c[i] = a.edges[i] + 0.5*dx
	}
	return c
}

// Width returns the common bin width.
func (a *Axis) Width() float64 {
	return (a.Hi - a.Lo) / float64(a.N)
}

// Bin returns the bin index of x, or -1 if x falls outside [Lo, Hi].
// x == Hi lands in the last bin.
func (a *Axis) Bin(x float64) int {
	if math.IsNaN(x) || x < a.Lo || x > a.Hi {
		return -1
	}
	if x == a.Hi {
		return a.N - 1
	}
	i := int((x - a.Lo) / (a.Hi - a.Lo) * float64(a.N))
	// Guard against floating-point overshoot at the upper edge.
	if i >= a.N {
		i = a.N - 1
	}
	return i
}

// NudgeBounds widens (lo, hi) by one part in 10^12 of the span so
// samples exactly on the bounds stay inside the binned range. A
// degenerate span is widened to a unit interval around the value.
func NudgeBounds(lo, hi float64) (float64, float64) {
	if lo == hi {
		return lo - 0.5, hi + 0.5
	}
	eps := (hi - lo) * 1e-12
	return lo - eps, hi + eps
}
