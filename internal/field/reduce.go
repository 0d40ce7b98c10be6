// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package field

import (
	"fmt"
	"math"

	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/sup/internal/grid"
	"github.com/aclements/sup/internal/mathexpr"
)

// EmptyDatasetError reports a sample-driven reduction over zero rows.
type EmptyDatasetError struct {
	Mode string
}

func (e *EmptyDatasetError) Error() string {
	return fmt.Sprintf("%s: no usable data points", e.Mode)
}

// ExprError reports a graph expression that failed on every grid point.
type ExprError struct {
	Expr string
}

func (e *ExprError) Error() string {
	return fmt.Sprintf("expression %q could not be evaluated at any grid point", e.Expr)
}

// Op selects the per-cell reduction for value-column modes.
type Op int

const (
	OpAvg Op = iota
	OpMax
	OpMin
)

func (op Op) String() string {
	switch op {
	case OpAvg:
		return "avg"
	case OpMax:
		return "max"
	case OpMin:
		return "min"
	}
	return fmt.Sprintf("Op(%d)", int(op))
}

// Hist1D bins xs over ax and returns the per-bin weighted count. A nil
// ws means unit weights. With density set, contents are divided by the
// total weight and the bin width so the field integrates to one; this
// happens before any color scaling downstream. Every bin holds a value
// (a zero count is a value, not an empty cell); samples outside the
// axis range are ignored.
func Hist1D(xs, ws []float64, ax *grid.Axis, density bool) (*Field, error) {
	if len(xs) == 0 {
		return nil, &EmptyDatasetError{"hist"}
	}
	f := New(ax.N, 1)
	for i := 0; i < ax.N; i++ {
		f.Set(i, 0, 0)
	}
	var sumW float64
	for n, x := range xs {
		bi := ax.Bin(x)
		if bi < 0 {
			continue
		}
		w := 1.0
		if ws != nil {
			w = ws[n]
		}
		v, _ := f.At(bi, 0)
		f.Set(bi, 0, v+w)
		sumW += w
	}
	if density && sumW > 0 {
		norm := sumW * ax.Width()
		for i := 0; i < ax.N; i++ {
			v, _ := f.At(i, 0)
			f.Set(i, 0, v/norm)
		}
	}
	return f, nil
}

// Hist2D bins (xs, ys) over (ax, ay). Bins with a zero unweighted count
// are empty; others hold the weighted (optionally density-normalized)
// content.
func Hist2D(xs, ys, ws []float64, ax, ay *grid.Axis, density bool) (*Field, error) {
	if len(xs) == 0 {
		return nil, &EmptyDatasetError{"hist"}
	}
	f := New(ax.N, ay.N)
	counts := make([]int, ax.N*ay.N)
	var sumW float64
	for n := range xs {
		xi, yi := ax.Bin(xs[n]), ay.Bin(ys[n])
		if xi < 0 || yi < 0 {
			continue
		}
		w := 1.0
		if ws != nil {
			w = ws[n]
		}
		v, _ := f.At(xi, yi)
		f.Set(xi, yi, v+w)
		counts[yi*ax.N+xi]++
		sumW += w
	}
	// Zero-count bins are empty, not zero.
	for j := 0; j < ay.N; j++ {
		for i := 0; i < ax.N; i++ {
			if counts[j*ax.N+i] == 0 {
				f.Clear(i, j)
			}
		}
	}
	if density && sumW > 0 {
		norm := sumW * ax.Width() * ay.Width()
		for j := 0; j < ay.N; j++ {
			for i := 0; i < ax.N; i++ {
				if v, ok := f.At(i, j); ok {
					f.Set(i, j, v/norm)
				}
			}
		}
	}
	return f, nil
}

// Reduce1D reduces the value column vs over the x bins of ax. Bins that
// receive no samples stay empty.
func Reduce1D(op Op, xs, vs []float64, ax *grid.Axis) (*Field, error) {
	if len(xs) == 0 {
		return nil, &EmptyDatasetError{op.String()}
	}
	cells := make([][]float64, ax.N)
	for n, x := range xs {
		bi := ax.Bin(x)
		if bi < 0 {
			continue
		}
		cells[bi] = append(cells[bi], vs[n])
	}
	f := New(ax.N, 1)
	for i, vals := range cells {
		if len(vals) == 0 {
			continue
		}
		f.Set(i, 0, reduceCell(op, vals))
	}
	return f, nil
}

// Reduce2D reduces the value column vs over the (x, y) bins of (ax, ay).
func Reduce2D(op Op, xs, ys, vs []float64, ax, ay *grid.Axis) (*Field, error) {
	if len(xs) == 0 {
		return nil, &EmptyDatasetError{op.String()}
	}
	cells := make([][]float64, ax.N*ay.N)
	for n := range xs {
		xi, yi := ax.Bin(xs[n]), ay.Bin(ys[n])
		if xi < 0 || yi < 0 {
			continue
		}
		cells[yi*ax.N+xi] = append(cells[yi*ax.N+xi], vs[n])
	}
	f := New(ax.N, ay.N)
	for n, vals := range cells {
		if len(vals) == 0 {
			continue
		}
		f.Set(n%ax.N, n/ax.N, reduceCell(op, vals))
	}
	return f, nil
}

// ReduceBy1D reduces vs over the x bins by selecting, per bin, the row
// whose sel sample is extremal under op (OpMax or OpMin). It returns
// both the selected vs values and the winning sel values.
func ReduceBy1D(op Op, xs, vs, sel []float64, ax *grid.Axis) (vals, selvals *Field, err error) {
	if len(xs) == 0 {
		return nil, nil, &EmptyDatasetError{op.String()}
	}
	vals, selvals = New(ax.N, 1), New(ax.N, 1)
	for n, x := range xs {
		bi := ax.Bin(x)
		if bi < 0 {
			continue
		}
		cur, ok := selvals.At(bi, 0)
		if !ok || better(op, sel[n], cur) {
			selvals.Set(bi, 0, sel[n])
			vals.Set(bi, 0, vs[n])
		}
	}
	return vals, selvals, nil
}

// ReduceBy2D is ReduceBy1D over two coordinate columns.
func ReduceBy2D(op Op, xs, ys, vs, sel []float64, ax, ay *grid.Axis) (vals, selvals *Field, err error) {
	if len(xs) == 0 {
		return nil, nil, &EmptyDatasetError{op.String()}
	}
	vals, selvals = New(ax.N, ay.N), New(ax.N, ay.N)
	for n := range xs {
		xi, yi := ax.Bin(xs[n]), ay.Bin(ys[n])
		if xi < 0 || yi < 0 {
			continue
		}
		cur, ok := selvals.At(xi, yi)
		if !ok || better(op, sel[n], cur) {
			selvals.Set(xi, yi, sel[n])
			vals.Set(xi, yi, vs[n])
		}
	}
	return vals, selvals, nil
}

func better(op Op, a, b float64) bool {
	if op == OpMin {
		return a < b
	}
	return a > b
}

func reduceCell(op Op, vals []float64) float64 {
	switch op {
	case OpAvg:
		return stats.Mean(vals)
	case OpMax:
		best := vals[0]
		for _, v := range vals[1:] {
			if v > best {
				best = v
			}
		}
		return best
	case OpMin:
		best := vals[0]
		for _, v := range vals[1:] {
			if v < best {
				best = v
			}
		}
		return best
	}
	panic("unknown reduction op")
}

// LikelihoodRatio converts a log-likelihood column to L/Lmax values in
// (0, 1].
func LikelihoodRatio(loglike []float64) []float64 {
	max := math.Inf(-1)
	for _, ll := range loglike {
		if ll > max {
			max = ll
		}
	}
	out := make([]float64, len(loglike))
	for i, ll := range loglike {
		out[i] = math.Exp(ll - max)
	}
	return out
}

// PLR1D computes the 1D profile likelihood ratio: the per-bin maximum
// of the likelihood ratio, renormalized by the global maximum over
// bins so the field spans (0, 1]. Bins with no samples stay empty.
func PLR1D(xs, loglike []float64, ax *grid.Axis) (*Field, error) {
	if len(xs) == 0 {
		return nil, &EmptyDatasetError{"plr"}
	}
	f, err := Reduce1D(OpMax, xs, LikelihoodRatio(loglike), ax)
	if err != nil {
		return nil, err
	}
	normalizeByMax(f)
	return f, nil
}

// PLR2D is PLR1D over two coordinate columns.
func PLR2D(xs, ys, loglike []float64, ax, ay *grid.Axis) (*Field, error) {
	if len(xs) == 0 {
		return nil, &EmptyDatasetError{"plr"}
	}
	f, err := Reduce2D(OpMax, xs, ys, LikelihoodRatio(loglike), ax, ay)
	if err != nil {
		return nil, err
	}
	normalizeByMax(f)
	return f, nil
}

func normalizeByMax(f *Field) {
	_, max, ok := f.Bounds()
	if !ok || max == 0 {
		return
	}
	for j := 0; j < f.H; j++ {
		for i := 0; i < f.W; i++ {
			if v, isSet := f.At(i, j); isSet {
				f.Set(i, j, v/max)
			}
		}
	}
}

// Graph1D evaluates fn at the bin centers of ax. Points where fn fails
// or is non-finite become empty cells; if every point fails the whole
// render fails with an *ExprError.
func Graph1D(fn *mathexpr.Func, ax *grid.Axis) (*Field, error) {
	f := New(ax.N, 1)
	for i, x := range ax.Centers() {
		v, err := fn.Eval(x)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		f.Set(i, 0, v)
	}
	if f.AllEmpty() {
		return nil, &ExprError{fn.String()}
	}
	return f, nil
}

// Graph2D evaluates fn at the bin-center products of ax and ay.
func Graph2D(fn *mathexpr.Func, ax, ay *grid.Axis) (*Field, error) {
	f := New(ax.N, ay.N)
	ycenters := ay.Centers()
	for i, x := range ax.Centers() {
		for j, y := range ycenters {
			v, err := fn.Eval(x, y)
			if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			f.Set(i, j, v)
		}
	}
	if f.AllEmpty() {
		return nil, &ExprError{fn.String()}
	}
	return f, nil
}

// AutoRange returns the bounds of the finite values of xs, nudged
// outward so boundary points land inside the binned range.
func AutoRange(xs []float64) (lo, hi float64, err error) {
	finite := make([]float64, 0, len(xs))
	for _, x := range xs {
		if !math.IsNaN(x) && !math.IsInf(x, 0) {
			finite = append(finite, x)
		}
	}
	if len(finite) == 0 {
		return 0, 0, &EmptyDatasetError{"range"}
	}
	lo, hi = (stats.Sample{Xs: finite}).Bounds()
	lo, hi = grid.NudgeBounds(lo, hi)
	return lo, hi, nil
}
