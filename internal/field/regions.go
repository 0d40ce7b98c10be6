// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package field

import (
	"math"
	"sort"

	"github.com/aclements/go-moremath/stats"
)

// CredibleBins returns the bins of a 1D density field that make up the
// crPercent highest-density credible region. Bins are accumulated in
// order of decreasing content until the enclosed probability mass
// (content · dx) reaches crPercent, closing on whichever side of the
// target is nearer.
func CredibleBins(f *Field, dx float64, crPercent float64) []int {
	contents, set := f.Row(0)
	order := make([]int, 0, len(contents))
	for i, ok := range set {
		if ok {
			order = append(order, i)
		}
	}
	sort.SliceStable(order, func(a, b int) bool {
		return contents[order[a]] > contents[order[b]]
	})

	if crPercent >= 100 {
		return order
	}

	var sum float64
	var inc []int
	for n, i := range order {
		sum += contents[i] * dx * 100
		inc = append(inc, i)
		if sum > crPercent {
			break
		}
		if n < len(order)-1 {
			next := sum + contents[order[n+1]]*dx*100
			if math.Abs(sum-crPercent) < math.Abs(next-crPercent) {
				break
			}
		}
	}
	return inc
}

// RegionLevels assigns each set cell of a 2D density field a
// highest-density credible region index. Cells are visited in order of
// decreasing content; each gets the index of the region currently
// accumulating, and a region closes only once the enclosed mass
// (content · cellVolume) strictly exceeds its probability, so a cell
// that meets a boundary exactly still belongs to the inner region.
// regions must be ascending probabilities in percent ending at 100, and
// cellVolume is dx·dy of one bin. The result is a row-major W·H slice
// with -1 for cells that have no data.
func RegionLevels(f *Field, cellVolume float64, regions []float64) []int {
	type cell struct {
		i, j int
		v    float64
	}
	var order []cell
	for j := 0; j < f.H; j++ {
		for i := 0; i < f.W; i++ {
			if v, ok := f.At(i, j); ok {
				order = append(order, cell{i, j, v})
			}
		}
	}
	sort.SliceStable(order, func(a, b int) bool {
		return order[a].v > order[b].v
	})

	out := make([]int, f.W*f.H)
	for k := range out {
		out[k] = -1
	}
	idx := 0
	var sum float64
	for _, c := range order {
		sum += c.v * cellVolume * 100
		if sum > 100 {
			sum = 100
		}
		out[c.j*f.W+c.i] = idx
		if idx < len(regions)-1 && sum > regions[idx] {
			idx++
		}
	}
	return out
}

// ConfidenceThreshold returns the L/Lmax value above which a point lies
// inside the clPercent confidence region of a one-parameter profile
// likelihood: exp(-χ²₁(p)/2), with the χ²₁ quantile taken from the
// standard normal inverse CDF.
func ConfidenceThreshold(clPercent float64) float64 {
	p := clPercent / 100
	z := stats.StdNormal.InvCDF((1 + p) / 2)
	return math.Exp(-0.5 * z * z)
}

// ConfidenceThreshold2D is ConfidenceThreshold for a two-parameter
// profile likelihood. The χ²₂ quantile is -2·ln(1-p), so the threshold
// exp(-χ²₂(p)/2) reduces to 1-p.
func ConfidenceThreshold2D(clPercent float64) float64 {
	return 1 - clPercent/100
}

// ConfidenceBins returns the non-empty bins of a 1D likelihood-ratio
// field whose value clears the clPercent confidence threshold.
func ConfidenceBins(f *Field, clPercent float64) []int {
	vals, set := f.Row(0)
	var inc []int
	if clPercent >= 100 {
		for i, ok := range set {
			if ok {
				inc = append(inc, i)
			}
		}
		return inc
	}
	thres := ConfidenceThreshold(clPercent)
	for i, ok := range set {
		if ok && vals[i] >= thres {
			inc = append(inc, i)
		}
	}
	return inc
}

// Runs collapses a set of bin indices into maximal contiguous runs,
// returned as [begin, end) pairs in bin-edge index space (so a single
// bin i becomes [i, i+1]).
func Runs(bins []int) [][2]int {
	if len(bins) == 0 {
		return nil
	}
	sorted := append([]int(nil), bins...)
	sort.Ints(sorted)

	var runs [][2]int
	begin, prev := sorted[0], sorted[0]
	for _, bi := range sorted[1:] {
		if bi == prev || bi == prev+1 {
			prev = bi
			continue
		}
		runs = append(runs, [2]int{begin, prev + 1})
		begin, prev = bi, bi
	}
	runs = append(runs, [2]int{begin, prev + 1})
	return runs
}
