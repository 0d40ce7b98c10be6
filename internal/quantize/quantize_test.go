// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quantize

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/aclements/sup/internal/field"
)

func fieldOf(vals []float64) *field.Field {
	f := field.New(len(vals), 1)
	for i, v := range vals {
		f.Set(i, 0, v)
	}
	return f
}

func TestQuantizeEndpoints(t *testing.T) {
	f := fieldOf([]float64{0, 5, 10})
	l, used := Quantize(f, 8, AutoRange)
	if l.At(0, 0) != 0 {
		t.Errorf("min value: want level 0, got %d", l.At(0, 0))
	}
	if l.At(2, 0) != 7 {
		t.Errorf("max value: want level 7, got %d", l.At(2, 0))
	}
	if used.Min != 0 || used.Max != 10 {
		t.Errorf("want auto range [0, 10], got [%v, %v]", used.Min, used.Max)
	}
}

func TestQuantizeMonotonic(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	vals := make([]float64, 100)
	for i := range vals {
		vals[i] = rng.NormFloat64() * 100
	}
	f := fieldOf(vals)
	l, _ := Quantize(f, 10, AutoRange)

	order := make([]int, len(vals))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return vals[order[a]] < vals[order[b]] })
	prev := -1
	for _, i := range order {
		lv := l.At(i, 0)
		if lv < prev {
			t.Fatalf("levels not monotonic: value %v got level %d after level %d", vals[i], lv, prev)
		}
		prev = lv
	}
}

func TestQuantizeConstantField(t *testing.T) {
	f := fieldOf([]float64{3, 3, 3})
	l, _ := Quantize(f, 5, AutoRange)
	for i := 0; i < 3; i++ {
		if l.At(i, 0) != 4 {
			t.Errorf("constant field cell %d: want top level 4, got %d", i, l.At(i, 0))
		}
	}
}

func TestQuantizeEmptyPropagates(t *testing.T) {
	f := field.New(3, 1)
	f.Set(0, 0, 1)
	f.Set(2, 0, 2)
	l, _ := Quantize(f, 4, AutoRange)
	if l.At(1, 0) != Empty {
		t.Errorf("empty cell: want Empty, got %d", l.At(1, 0))
	}
	if l.AllEmpty() {
		t.Error("AllEmpty: want false")
	}
}

func TestQuantizeAllEmpty(t *testing.T) {
	f := field.New(4, 2)
	l, _ := Quantize(f, 4, AutoRange)
	if !l.AllEmpty() {
		t.Error("want all-empty levels")
	}
	for j := 0; j < 2; j++ {
		for i := 0; i < 4; i++ {
			if l.At(i, j) != Empty {
				t.Errorf("cell (%d,%d): want Empty", i, j)
			}
		}
	}
}

func TestQuantizeExplicitRange(t *testing.T) {
	f := fieldOf([]float64{-5, 2.5, 20})
	l, used := Quantize(f, 6, Range{Min: 0, Max: 10})
	if used.Auto {
		t.Error("used range should not be auto")
	}
	if l.At(0, 0) != 0 {
		t.Errorf("below-range value: want clamp to level 0, got %d", l.At(0, 0))
	}
	if l.At(2, 0) != 5 {
		t.Errorf("above-range value: want clamp to level 5, got %d", l.At(2, 0))
	}
	if l.At(1, 0) != 1 {
		// (2.5-0)/10 * 5 = 1.25 -> floor 1
		t.Errorf("mid value: want level 1, got %d", l.At(1, 0))
	}
}

func TestThresholds(t *testing.T) {
	got := Thresholds(Range{Min: 0, Max: 10}, 5)
	want := []float64{0, 2, 4, 6, 8, 10}
	if len(got) != len(want) {
		t.Fatalf("want %d thresholds, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("threshold %d: want %v, got %v", i, want[i], got[i])
		}
	}
}
