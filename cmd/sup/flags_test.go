// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"reflect"
	"testing"
)

func TestRangeFlag(t *testing.T) {
	var r rangeFlag
	if err := r.Set("-1.5,2"); err != nil {
		t.Fatal(err)
	}
	if !r.set || r.lo != -1.5 || r.hi != 2 {
		t.Errorf("want {-1.5 2 true}, got %+v", r)
	}
	for _, bad := range []string{"1", "1,2,3", "a,b", "2,1", "1,1"} {
		var r rangeFlag
		if err := r.Set(bad); err == nil {
			t.Errorf("Set(%q): want error", bad)
		}
	}
}

func TestSizeFlag(t *testing.T) {
	var z sizeFlag
	if err := z.Set("80, 25"); err != nil {
		t.Fatal(err)
	}
	if !z.set || z.w != 80 || z.h != 25 {
		t.Errorf("want {80 25 true}, got %+v", z)
	}
	for _, bad := range []string{"80", "80,5", "5,80", "x,y"} {
		var z sizeFlag
		if err := z.Set(bad); err == nil {
			t.Errorf("Set(%q): want error", bad)
		}
	}
}

func TestSliceFlag(t *testing.T) {
	var sl sliceFlag
	if err := sl.Set("10,-1,2"); err != nil {
		t.Fatal(err)
	}
	if sl.s.Start != 10 || sl.s.End != -1 || sl.s.Step != 2 {
		t.Errorf("want {10 -1 2}, got %+v", sl.s)
	}
	for _, bad := range []string{"1,2", "1,2,0", "1,2,-1", "a,b,c"} {
		var sl sliceFlag
		if err := sl.Set(bad); err == nil {
			t.Errorf("Set(%q): want error", bad)
		}
	}
}

func TestIntList(t *testing.T) {
	var l intList
	if err := l.Set("3"); err != nil {
		t.Fatal(err)
	}
	if err := l.Set("5,7"); err != nil {
		t.Fatal(err)
	}
	if want := (intList{3, 5, 7}); !reflect.DeepEqual(l, want) {
		t.Errorf("want %v, got %v", want, l)
	}
}

func TestFloatList(t *testing.T) {
	var l floatList
	if err := l.Set("68.3,95.45"); err != nil {
		t.Fatal(err)
	}
	if want := (floatList{68.3, 95.45}); !reflect.DeepEqual(l, want) {
		t.Errorf("want %v, got %v", want, l)
	}
	if err := l.Set("abc"); err == nil {
		t.Error("Set(abc): want error")
	}
}

func TestOptFlags(t *testing.T) {
	var oi optInt
	if oi.set {
		t.Error("optInt: zero value must be unset")
	}
	if err := oi.Set("0"); err != nil {
		t.Fatal(err)
	}
	if !oi.set || oi.v != 0 {
		t.Errorf("want {0 true}, got %+v", oi)
	}

	var of optFloat
	if err := of.Set("-3.5"); err != nil {
		t.Fatal(err)
	}
	if !of.set || of.v != -3.5 {
		t.Errorf("want {-3.5 true}, got %+v", of)
	}
}

func TestPlotOptsValidate(t *testing.T) {
	good := newPlotOpts()
	if err := good.validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*plotOpts)
	}{
		{"decimals low", func(o *plotOpts) { o.decimals = 0 }},
		{"decimals high", func(o *plotOpts) { o.decimals = 9 }},
		{"num-colors low", func(o *plotOpts) { o.nColors = 0 }},
		{"num-colors high", func(o *plotOpts) { o.nColors = 11 }},
		{"colormap", func(o *plotOpts) { o.colormap = 99 }},
		{"watch", func(o *plotOpts) { o.watch = -1 }},
		{"credible", func(o *plotOpts) { o.credible = floatList{110} }},
		{"confidence", func(o *plotOpts) { o.confidence = floatList{-1} }},
	}
	for _, test := range tests {
		o := newPlotOpts()
		test.mutate(o)
		if err := o.validate(); err == nil {
			t.Errorf("%s: want error", test.name)
		}
	}
}

func TestCenter(t *testing.T) {
	tests := []struct {
		s    string
		w    int
		want string
	}{
		{"1", 5, "  1  "},
		{"10", 5, " 10  "},
		{"255", 5, " 255 "},
		{"12345", 5, "12345"},
	}
	for _, test := range tests {
		if got := center(test.s, test.w); got != test.want {
			t.Errorf("center(%q, %d): want %q, got %q", test.s, test.w, test.want, got)
		}
	}
}
