// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package field

import (
	"math"
	"testing"

	"github.com/aclements/sup/internal/grid"
	"github.com/aclements/sup/internal/mathexpr"
)

func mustAxis(t *testing.T, lo, hi float64, n int) *grid.Axis {
	t.Helper()
	ax, err := grid.NewAxis(lo, hi, n)
	if err != nil {
		t.Fatal(err)
	}
	return ax
}

func row(t *testing.T, f *Field) []float64 {
	t.Helper()
	vals, set := f.Row(0)
	out := make([]float64, len(vals))
	for i := range vals {
		if !set[i] {
			out[i] = math.NaN()
		} else {
			out[i] = vals[i]
		}
	}
	return out
}

func TestHist1DCounts(t *testing.T) {
	ax := mustAxis(t, 0, 1, 2)
	f, err := Hist1D([]float64{0.1, 0.2, 0.2, 0.9}, nil, ax, false)
	if err != nil {
		t.Fatal(err)
	}
	got := row(t, f)
	if got[0] != 3 || got[1] != 1 {
		t.Errorf("want [3 1], got %v", got)
	}
	if sum := f.Sum(); sum != 4 {
		t.Errorf("want count sum 4, got %v", sum)
	}
}

func TestHist1DWeighted(t *testing.T) {
	ax := mustAxis(t, 0, 1, 2)
	f, err := Hist1D([]float64{0.1, 0.9}, []float64{2, 0.5}, ax, false)
	if err != nil {
		t.Fatal(err)
	}
	got := row(t, f)
	if got[0] != 2 || got[1] != 0.5 {
		t.Errorf("want [2 0.5], got %v", got)
	}
}

func TestHist1DDensitySumsToOne(t *testing.T) {
	ax := mustAxis(t, 0, 10, 7)
	xs := []float64{0.3, 1.1, 2.2, 2.3, 5.5, 9.9, 9.99, 4.2}
	f, err := Hist1D(xs, nil, ax, true)
	if err != nil {
		t.Fatal(err)
	}
	if got := f.Sum() * ax.Width(); math.Abs(got-1) > 1e-12 {
		t.Errorf("density integral: want 1, got %v", got)
	}
}

func TestHist2DDensitySumsToOne(t *testing.T) {
	ax := mustAxis(t, 0, 1, 3)
	ay := mustAxis(t, 0, 1, 4)
	xs := []float64{0.1, 0.5, 0.9, 0.3, 0.7}
	ys := []float64{0.2, 0.8, 0.5, 0.1, 0.9}
	f, err := Hist2D(xs, ys, nil, ax, ay, true)
	if err != nil {
		t.Fatal(err)
	}
	if got := f.Sum() * ax.Width() * ay.Width(); math.Abs(got-1) > 1e-12 {
		t.Errorf("density integral: want 1, got %v", got)
	}
}

func TestHist2DEmptyBins(t *testing.T) {
	ax := mustAxis(t, 0, 1, 2)
	ay := mustAxis(t, 0, 1, 2)
	f, err := Hist2D([]float64{0.1}, []float64{0.1}, nil, ax, ay, false)
	if err != nil {
		t.Fatal(err)
	}
	if v, ok := f.At(0, 0); !ok || v != 1 {
		t.Errorf("cell (0,0): want 1, got %v (set %v)", v, ok)
	}
	// A zero-count bin is empty, not zero.
	if !f.Empty(1, 1) {
		t.Error("cell (1,1): want empty")
	}
}

func TestHistBoundaryValue(t *testing.T) {
	// A sample exactly on the upper bound lands in the last bin.
	ax := mustAxis(t, 0, 1, 4)
	f, err := Hist1D([]float64{1.0}, nil, ax, false)
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := f.At(3, 0); v != 1 {
		t.Errorf("upper-bound sample: want last bin count 1, got %v", v)
	}
}

func TestEmptyDataset(t *testing.T) {
	ax := mustAxis(t, 0, 1, 2)
	if _, err := Hist1D(nil, nil, ax, false); err == nil {
		t.Error("Hist1D: want EmptyDatasetError")
	} else if _, ok := err.(*EmptyDatasetError); !ok {
		t.Errorf("Hist1D: want EmptyDatasetError, got %T", err)
	}
	if _, err := Reduce1D(OpAvg, nil, nil, ax); err == nil {
		t.Error("Reduce1D: want EmptyDatasetError")
	}
	if _, err := PLR1D(nil, nil, ax); err == nil {
		t.Error("PLR1D: want EmptyDatasetError")
	}
}

func TestReduce1D(t *testing.T) {
	ax := mustAxis(t, 0, 1, 2)
	xs := []float64{0.1, 0.2, 0.3, 0.9}
	vs := []float64{1, 3, 2, 7}

	f, err := Reduce1D(OpAvg, xs, vs, ax)
	if err != nil {
		t.Fatal(err)
	}
	if got := row(t, f); got[0] != 2 || got[1] != 7 {
		t.Errorf("avg: want [2 7], got %v", got)
	}

	f, err = Reduce1D(OpMax, xs, vs, ax)
	if err != nil {
		t.Fatal(err)
	}
	if got := row(t, f); got[0] != 3 || got[1] != 7 {
		t.Errorf("max: want [3 7], got %v", got)
	}

	f, err = Reduce1D(OpMin, xs, vs, ax)
	if err != nil {
		t.Fatal(err)
	}
	if got := row(t, f); got[0] != 1 || got[1] != 7 {
		t.Errorf("min: want [1 7], got %v", got)
	}
}

func TestReduce1DEmptyCell(t *testing.T) {
	ax := mustAxis(t, 0, 1, 4)
	f, err := Reduce1D(OpAvg, []float64{0.1}, []float64{5}, ax)
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < 4; i++ {
		if !f.Empty(i, 0) {
			t.Errorf("cell %d: want empty", i)
		}
	}
}

func TestReduceBy1D(t *testing.T) {
	// Two rows in bin 0: (y=1, sel=9) and (y=3, sel=2). Sorting by max
	// sel keeps the first row's y, not the larger y.
	ax := mustAxis(t, 0, 1, 2)
	xs := []float64{0.1, 0.2, 0.9}
	vs := []float64{1, 3, 7}
	sel := []float64{9, 2, 5}

	vals, selvals, err := ReduceBy1D(OpMax, xs, vs, sel, ax)
	if err != nil {
		t.Fatal(err)
	}
	if got := row(t, vals); got[0] != 1 || got[1] != 7 {
		t.Errorf("max sel values: want [1 7], got %v", got)
	}
	if got := row(t, selvals); got[0] != 9 || got[1] != 5 {
		t.Errorf("max sel: want [9 5], got %v", got)
	}

	vals, selvals, err = ReduceBy1D(OpMin, xs, vs, sel, ax)
	if err != nil {
		t.Fatal(err)
	}
	if got := row(t, vals); got[0] != 3 {
		t.Errorf("min sel values: want bin 0 = 3, got %v", got)
	}
	if got := row(t, selvals); got[0] != 2 {
		t.Errorf("min sel: want bin 0 = 2, got %v", got)
	}
}

func TestReduceBy2D(t *testing.T) {
	ax := mustAxis(t, 0, 1, 2)
	ay := mustAxis(t, 0, 1, 2)
	xs := []float64{0.1, 0.2, 0.9}
	ys := []float64{0.1, 0.2, 0.9}
	vs := []float64{10, 20, 30}
	sel := []float64{5, 1, 2}

	vals, selvals, err := ReduceBy2D(OpMax, xs, ys, vs, sel, ax, ay)
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := vals.At(0, 0); v != 10 {
		t.Errorf("cell (0,0) value: want 10, got %v", v)
	}
	if s, _ := selvals.At(0, 0); s != 5 {
		t.Errorf("cell (0,0) sel: want 5, got %v", s)
	}
	if v, _ := vals.At(1, 1); v != 30 {
		t.Errorf("cell (1,1) value: want 30, got %v", v)
	}
	if !vals.Empty(0, 1) || !selvals.Empty(0, 1) {
		t.Error("cell (0,1): want empty")
	}
}

func TestPLR1D(t *testing.T) {
	// Likelihoods 0.2, 0.9, 0.4 in bin 0 and 0.3 in bin 1; the global
	// max 0.9 normalizes the field to [1, 1/3].
	ax := mustAxis(t, 0, 1, 2)
	xs := []float64{0.1, 0.2, 0.3, 0.9}
	ll := []float64{math.Log(0.2), math.Log(0.9), math.Log(0.4), math.Log(0.3)}
	f, err := PLR1D(xs, ll, ax)
	if err != nil {
		t.Fatal(err)
	}
	got := row(t, f)
	if math.Abs(got[0]-1) > 1e-12 || math.Abs(got[1]-1.0/3) > 1e-12 {
		t.Errorf("want [1 0.333...], got %v", got)
	}
}

func TestPLRShiftInvariance(t *testing.T) {
	// Adding a constant to every log-likelihood must not change the
	// ratio field.
	ax := mustAxis(t, 0, 1, 2)
	xs := []float64{0.1, 0.7, 0.8}
	ll := []float64{-12.5, -14, -13}
	shifted := []float64{887.5, 886, 887}
	f1, err := PLR1D(xs, ll, ax)
	if err != nil {
		t.Fatal(err)
	}
	f2, err := PLR1D(xs, shifted, ax)
	if err != nil {
		t.Fatal(err)
	}
	a, b := row(t, f1), row(t, f2)
	for i := range a {
		if math.Abs(a[i]-b[i]) > 1e-9 {
			t.Errorf("bin %d: %v != %v", i, a[i], b[i])
		}
	}
}

func TestGraph1D(t *testing.T) {
	fn, err := mathexpr.Compile("x * x", "x")
	if err != nil {
		t.Fatal(err)
	}
	ax := mustAxis(t, 0, 2, 3)
	f, err := Graph1D(fn, ax)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{1.0 / 9, 1, 25.0 / 9} // squares of the bin centers
	got := row(t, f)
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("bin %d: want %v, got %v", i, want[i], got[i])
		}
	}
}

func TestGraph1DPartialDomain(t *testing.T) {
	// log is undefined on half the range; those cells must be empty
	// without failing the render.
	fn, err := mathexpr.Compile("log(x)", "x")
	if err != nil {
		t.Fatal(err)
	}
	ax := mustAxis(t, -1, 1, 10)
	f, err := Graph1D(fn, ax)
	if err != nil {
		t.Fatal(err)
	}
	vals, set := f.Row(0)
	for i := range vals {
		center := ax.Centers()[i]
		if center < 0 && set[i] {
			t.Errorf("bin %d (x=%v): want empty", i, center)
		}
		if center > 0 && !set[i] {
			t.Errorf("bin %d (x=%v): want value", i, center)
		}
	}
}

func TestGraph1DAllFail(t *testing.T) {
	fn, err := mathexpr.Compile("sqrt(-1 - x*x)", "x")
	if err != nil {
		t.Fatal(err)
	}
	ax := mustAxis(t, 0, 1, 4)
	if _, err := Graph1D(fn, ax); err == nil {
		t.Error("want ExprError")
	} else if _, ok := err.(*ExprError); !ok {
		t.Errorf("want ExprError, got %T", err)
	}
}

func TestGraph2D(t *testing.T) {
	fn, err := mathexpr.Compile("x + 10*y", "x", "y")
	if err != nil {
		t.Fatal(err)
	}
	ax := mustAxis(t, 0, 2, 2)
	ay := mustAxis(t, 0, 2, 2)
	f, err := Graph2D(fn, ax, ay)
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := f.At(0, 0); math.Abs(v-(0.5+5)) > 1e-12 {
		t.Errorf("cell (0,0): want 5.5, got %v", v)
	}
	if v, _ := f.At(1, 1); math.Abs(v-(1.5+15)) > 1e-12 {
		t.Errorf("cell (1,1): want 16.5, got %v", v)
	}
}

func TestTransformMarksNonFiniteEmpty(t *testing.T) {
	ax := mustAxis(t, 0, 1, 2)
	f, err := Hist1D([]float64{0.1, 0.2, 0.2}, nil, ax, false)
	if err != nil {
		t.Fatal(err)
	}
	fn, err := mathexpr.Compile("log10(y)", "y")
	if err != nil {
		t.Fatal(err)
	}
	f.Transform(fn)
	if v, ok := f.At(0, 0); !ok || math.Abs(v-math.Log10(3)) > 1e-12 {
		t.Errorf("cell 0: want log10(3), got %v (set %v)", v, ok)
	}
	// log10(0) is -Inf: the cell becomes empty rather than poisoning
	// the scale.
	if !f.Empty(1, 0) {
		t.Error("cell 1: want empty after log10(0)")
	}
}

func TestAutoRange(t *testing.T) {
	lo, hi, err := AutoRange([]float64{3, 1, 2, math.NaN(), math.Inf(1)})
	if err != nil {
		t.Fatal(err)
	}
	if !(lo < 1 && lo > 0.99 && hi > 3 && hi < 3.01) {
		t.Errorf("want nudged [1, 3], got [%v, %v]", lo, hi)
	}
	if _, _, err := AutoRange([]float64{math.NaN()}); err == nil {
		t.Error("want error for no finite values")
	}
}
