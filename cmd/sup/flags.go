// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/aclements/sup/internal/dataset"
	"github.com/aclements/sup/internal/palette"
)

// rangeFlag is an optional "MIN,MAX" axis range.
type rangeFlag struct {
	lo, hi float64
	set    bool
}

func (r *rangeFlag) String() string {
	if !r.set {
		return ""
	}
	return fmt.Sprintf("%g,%g", r.lo, r.hi)
}

func (r *rangeFlag) Set(s string) error {
	lo, hi, err := parsePair(s)
	if err != nil {
		return fmt.Errorf("expected MIN,MAX")
	}
	if lo >= hi {
		return fmt.Errorf("MIN must be smaller than MAX")
	}
	r.lo, r.hi, r.set = lo, hi, true
	return nil
}

// sizeFlag is the "X_SIZE,Y_SIZE" grid resolution.
type sizeFlag struct {
	w, h int
	set  bool
}

func (z *sizeFlag) String() string {
	return fmt.Sprintf("%d,%d", z.w, z.h)
}

func (z *sizeFlag) Set(s string) error {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return fmt.Errorf("expected X_SIZE,Y_SIZE")
	}
	w, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	h, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil {
		return fmt.Errorf("expected X_SIZE,Y_SIZE")
	}
	if w < 6 || h < 6 {
		return fmt.Errorf("X_SIZE and Y_SIZE must be at least 6")
	}
	z.w, z.h, z.set = w, h, true
	return nil
}

// sliceFlag is the "START,END,STEP" row selection.
type sliceFlag struct {
	s dataset.Slice
}

func (sl *sliceFlag) String() string {
	return fmt.Sprintf("%d,%d,%d", sl.s.Start, sl.s.End, sl.s.Step)
}

func (sl *sliceFlag) Set(s string) error {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return fmt.Errorf("expected START,END,STEP")
	}
	var vals [3]int
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return fmt.Errorf("expected START,END,STEP")
		}
		vals[i] = v
	}
	if vals[2] <= 0 {
		return fmt.Errorf("STEP must be an integer greater than 0")
	}
	sl.s = dataset.Slice{Start: vals[0], End: vals[1], Step: vals[2]}
	return nil
}

// intList collects repeated integer flags (filter dataset indices).
type intList []int

func (l *intList) String() string {
	parts := make([]string, len(*l))
	for i, v := range *l {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

func (l *intList) Set(s string) error {
	for _, p := range strings.Split(s, ",") {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return err
		}
		*l = append(*l, v)
	}
	return nil
}

// floatList collects probability lists (credible regions, confidence
// levels).
type floatList []float64

func (l *floatList) String() string {
	parts := make([]string, len(*l))
	for i, v := range *l {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

func (l *floatList) Set(s string) error {
	for _, p := range strings.Split(s, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return err
		}
		*l = append(*l, v)
	}
	return nil
}

// optInt is an integer flag that records whether it was given, for
// dataset indices where 0 is valid.
type optInt struct {
	v   int
	set bool
}

func (o *optInt) String() string {
	if !o.set {
		return ""
	}
	return strconv.Itoa(o.v)
}

func (o *optInt) Set(s string) error {
	v, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	o.v, o.set = v, true
	return nil
}

// optFloat is a float flag that records whether it was given.
type optFloat struct {
	v   float64
	set bool
}

func (o *optFloat) String() string {
	if !o.set {
		return ""
	}
	return strconv.FormatFloat(o.v, 'g', -1, 64)
}

func (o *optFloat) Set(s string) error {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	o.v, o.set = v, true
	return nil
}

func parsePair(s string) (float64, float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected two values")
	}
	a, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, err
	}
	b, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

// plotOpts holds the flag values shared by the plotting modes. Each
// mode registers only the flag groups it supports; the rest keep their
// defaults.
type plotOpts struct {
	xRange, yRange, zRange rangeFlag
	size                   sizeFlag
	readSlice              sliceFlag
	filters                intList
	weights                optInt
	sortBy                 optInt
	capLog                 optFloat
	credible               floatList
	confidence             floatList

	gray, whiteBG bool
	normalize     bool
	noStar        bool
	nColors       int
	colormap      int
	reverseCmap   bool
	decimals      int
	delimiter     string
	stdinFormat   string
	watch         float64

	xTransf, yTransf, zTransf, wTransf, sTransf string
}

func newPlotOpts() *plotOpts {
	return &plotOpts{
		size:        sizeFlag{w: 40, h: 40},
		readSlice:   sliceFlag{dataset.Slice{Start: 0, End: -1, Step: 1}},
		nColors:     10,
		decimals:    2,
		delimiter:   " ",
		stdinFormat: "text",
	}
}

// commonFlags registers the flags every plotting mode accepts.
func (o *plotOpts) commonFlags(f *flag.FlagSet) {
	f.Var(&o.xRange, "x-range", "x-axis range `MIN,MAX`")
	f.Var(&o.yRange, "y-range", "y-axis range `MIN,MAX`")
	f.Var(&o.size, "size", "plot size in bins, `X_SIZE,Y_SIZE`")
	f.BoolVar(&o.gray, "gray", false, "grayscale plot")
	f.BoolVar(&o.whiteBG, "white-bg", false, "white background")
	f.IntVar(&o.decimals, "decimals", o.decimals, "`number` of decimals for tick labels (1-8)")
}

// dataFlags registers the flags of the file-reading modes.
func (o *plotOpts) dataFlags(f *flag.FlagSet) {
	f.Var(&o.filters, "filter", "`indices` of boolean datasets used for filtering (repeatable)")
	f.Var(&o.readSlice, "read-slice", "read only rows `START,END,STEP` of each dataset")
	f.StringVar(&o.delimiter, "delimiter", o.delimiter, "column `delimiter` for text input files")
	f.StringVar(&o.stdinFormat, "stdin-format", o.stdinFormat, "input `format` when reading from \"-\": text, csv or json")
	f.Float64Var(&o.watch, "watch", 0, "regenerate the plot every `N` seconds")
	f.StringVar(&o.xTransf, "x-transf", "", "transform `expr` for the x dataset (e.g. \"log10(x)\")")
}

func (o *plotOpts) weightFlags(f *flag.FlagSet) {
	f.Var(&o.weights, "weights", "`index` of the weights dataset")
	f.StringVar(&o.wTransf, "w-transf", "", "transform `expr` for the weights dataset")
}

func (o *plotOpts) sortFlags(f *flag.FlagSet) {
	f.Var(&o.sortBy, "sort", "`index` of the sort dataset")
	f.StringVar(&o.sTransf, "s-transf", "", "transform `expr` for the sort dataset")
}

func (o *plotOpts) colormapFlags(f *flag.FlagSet, def int, reversible bool) {
	f.IntVar(&o.colormap, "colormap", def, "colormap `index`: 0 = viridis-ish, 1 = jet-ish, 2 = inferno-ish, 3 = blue-red-ish, 4 = gambit-ish")
	if reversible {
		f.BoolVar(&o.reverseCmap, "reverse-colormap", false, "reverse the colormap")
	}
}

func (o *plotOpts) nColorsFlag(f *flag.FlagSet) {
	f.IntVar(&o.nColors, "num-colors", o.nColors, "`number` of colors in the colorbar (1-10)")
}

// validate checks the flag values that the flag.Value parsers cannot
// check on their own.
func (o *plotOpts) validate() error {
	if o.decimals < 1 || o.decimals > 8 {
		return fmt.Errorf("decimals must be an integer between 1 and 8")
	}
	if o.nColors < 1 || o.nColors > 10 {
		return fmt.Errorf("num-colors must be an integer between 1 and 10")
	}
	if o.colormap < 0 || o.colormap >= len(palette.Colormaps) {
		return fmt.Errorf("colormap must be an integer between 0 and %d", len(palette.Colormaps)-1)
	}
	if o.watch < 0 {
		return fmt.Errorf("watch interval must be greater than 0")
	}
	for _, p := range o.credible {
		if p < 0 || p > 100 {
			return fmt.Errorf("credible region probabilities must be between 0 and 100")
		}
	}
	for _, p := range o.confidence {
		if p < 0 || p > 100 {
			return fmt.Errorf("confidence level probabilities must be between 0 and 100")
		}
	}
	return nil
}
