// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/aclements/sup/internal/field"
	"github.com/aclements/sup/internal/quantize"
	"github.com/aclements/sup/internal/raster"
)

var cmdMax1DFlags = flag.NewFlagSet(os.Args[0]+" max1d", flag.ExitOnError)
var cmdMin1DFlags = flag.NewFlagSet(os.Args[0]+" min1d", flag.ExitOnError)
var cmdMax2DFlags = flag.NewFlagSet(os.Args[0]+" max2d", flag.ExitOnError)
var cmdMin2DFlags = flag.NewFlagSet(os.Args[0]+" min2d", flag.ExitOnError)

var max1d = newPlotOpts()
var min1d = newPlotOpts()
var max2d = newPlotOpts()
var min2d = newPlotOpts()

func init() {
	for _, m := range []struct {
		flags *flag.FlagSet
		opts  *plotOpts
		name  string
		desc  string
	}{
		{cmdMax1DFlags, max1d, "max1d", "plot the maximum y value across the x axis"},
		{cmdMin1DFlags, min1d, "min1d", "plot the minimum y value across the x axis"},
	} {
		f, o := m.flags, m.opts
		name := m.name
		f.Usage = func() {
			fmt.Fprintf(os.Stderr, "Usage: %s %s [flags] <input file> <x index> <y index>\n", os.Args[0], name)
			f.PrintDefaults()
		}
		o.commonFlags(f)
		o.dataFlags(f)
		o.sortFlags(f)
		f.StringVar(&o.yTransf, "y-transf", "", "transform `expr` for the y dataset (e.g. \"log10(y)\")")
		op := field.OpMax
		if name == "min1d" {
			op = field.OpMin
		}
		registerSubcommand(name, m.desc, func() { cmdMaxMin1D(f, o, op) }, f)
	}

	for _, m := range []struct {
		flags *flag.FlagSet
		opts  *plotOpts
		name  string
		desc  string
	}{
		{cmdMax2DFlags, max2d, "max2d", "plot the maximum z value across the (x,y) plane"},
		{cmdMin2DFlags, min2d, "min2d", "plot the minimum z value across the (x,y) plane"},
	} {
		f, o := m.flags, m.opts
		name := m.name
		f.Usage = func() {
			fmt.Fprintf(os.Stderr, "Usage: %s %s [flags] <input file> <x index> <y index> <z index>\n", os.Args[0], name)
			f.PrintDefaults()
		}
		o.commonFlags(f)
		o.dataFlags(f)
		o.sortFlags(f)
		o.nColorsFlag(f)
		o.colormapFlags(f, 0, true)
		f.Var(&o.zRange, "z-range", "z-axis range `MIN,MAX`")
		f.StringVar(&o.yTransf, "y-transf", "", "transform `expr` for the y dataset (e.g. \"log10(y)\")")
		f.StringVar(&o.zTransf, "z-transf", "", "transform `expr` for the z dataset (e.g. \"log10(z)\")")
		f.BoolVar(&o.noStar, "no-star", false, "switch off the star marker for the max/min point(s)")
		op := field.OpMax
		if name == "min2d" {
			op = field.OpMin
		}
		registerSubcommand(name, m.desc, func() { cmdMaxMin2D(f, o, op) }, f)
	}
}

func cmdMaxMin1D(f *flag.FlagSet, o *plotOpts, op field.Op) {
	if f.NArg() != 3 {
		f.Usage()
		os.Exit(2)
	}
	fatalIfErr(o.validate())
	path, xIdx, yIdx := f.Arg(0), parseIndex(f.Arg(1)), parseIndex(f.Arg(2))
	o.run(func() error { return renderMaxMin1D(o, op, path, xIdx, yIdx) })
}

func renderMaxMin1D(o *plotOpts, op field.Op, path string, xIdx, yIdx int) error {
	idx := []int{xIdx, yIdx}
	if o.sortBy.set {
		idx = append(idx, o.sortBy.v)
	}
	in, err := o.load(path, idx...)
	if err != nil {
		return err
	}
	xs, ys := in.cols[0], in.cols[1]
	if err := transformColumn(xs.vals, o.xTransf, "x"); err != nil {
		return err
	}
	if err := transformColumn(ys.vals, o.yTransf, "y"); err != nil {
		return err
	}
	var sortCol column
	if o.sortBy.set {
		sortCol = in.cols[2]
		if err := transformColumn(sortCol.vals, o.sTransf, "s"); err != nil {
			return err
		}
	}

	nx, ny := o.bins()
	ax, err := axisFor(o.xRange, xs.vals, nx, false)
	if err != nil {
		return err
	}
	var fld, sel *field.Field
	if o.sortBy.set {
		fld, sel, err = field.ReduceBy1D(op, xs.vals, ys.vals, sortCol.vals, ax)
	} else {
		fld, err = field.Reduce1D(op, xs.vals, ys.vals, ax)
	}
	if err != nil {
		return err
	}
	ay, err := valueAxis(o.yRange, fld, ny, false)
	if err != nil {
		return err
	}

	style := o.style1D(raster.Markers1D(), 6, 14)
	g := raster.Render1D(fld, ay, style, false)
	fr := raster.NewFrame(g, ax, ay, style, o.decimals, true)

	// Legend: the overall extremum, or the extremum of the sort
	// dataset when one is in use.
	centers := ax.Centers()
	fr.AddBlank()
	if o.sortBy.set {
		if bi := argExt(sel, op); bi >= 0 {
			y, _ := fld.At(bi, 0)
			s, _ := sel.At(bi, 0)
			fr.AddLegend(raster.LegendEntry{Text: fmt.Sprintf(
				"sort_%s point:  (x, y, sort) = (%s, %s, %s)",
				op, fr.Num(centers[bi]), fr.Num(y), fr.Num(s))})
		}
	} else {
		if bi := argExt(fld, op); bi >= 0 {
			y, _ := fld.At(bi, 0)
			fr.AddLegend(raster.LegendEntry{Text: fmt.Sprintf(
				"y_%s point:  (x, y) = (%s, %s)",
				op, fr.Num(centers[bi]), fr.Num(y))})
		}
	}

	info := raster.Info{
		XLabel: xs.name, XTransf: o.xTransf,
		XBinWidth: ax.Width(), XRange: axisRange(ax),
		YLabel: fmt.Sprintf("%s [binned %s]", ys.name, op), YTransf: o.yTransf,
		YBinWidth: ay.Width(), YRange: axisRange(ay),
		Filters: in.filters,
		Mode:    op.String(),
	}
	if o.sortBy.set {
		info.SortLabel, info.SortType, info.SortTransf = sortCol.name, op.String(), o.sTransf
	}
	fr.AddInfo(info, leftPadding)
	return emit(fr, style.Theme)
}

func cmdMaxMin2D(f *flag.FlagSet, o *plotOpts, op field.Op) {
	if f.NArg() != 4 {
		f.Usage()
		os.Exit(2)
	}
	fatalIfErr(o.validate())
	path := f.Arg(0)
	xIdx, yIdx, zIdx := parseIndex(f.Arg(1)), parseIndex(f.Arg(2)), parseIndex(f.Arg(3))
	o.run(func() error { return renderMaxMin2D(o, op, path, xIdx, yIdx, zIdx) })
}

func renderMaxMin2D(o *plotOpts, op field.Op, path string, xIdx, yIdx, zIdx int) error {
	idx := []int{xIdx, yIdx, zIdx}
	if o.sortBy.set {
		idx = append(idx, o.sortBy.v)
	}
	in, err := o.load(path, idx...)
	if err != nil {
		return err
	}
	xs, ys, zs := in.cols[0], in.cols[1], in.cols[2]
	if err := transformColumn(xs.vals, o.xTransf, "x"); err != nil {
		return err
	}
	if err := transformColumn(ys.vals, o.yTransf, "y"); err != nil {
		return err
	}
	if err := transformColumn(zs.vals, o.zTransf, "z"); err != nil {
		return err
	}
	var sortCol column
	if o.sortBy.set {
		sortCol = in.cols[3]
		if err := transformColumn(sortCol.vals, o.sTransf, "s"); err != nil {
			return err
		}
	}

	nx, ny := o.bins()
	ax, err := axisFor(o.xRange, xs.vals, nx, false)
	if err != nil {
		return err
	}
	ay, err := axisFor(o.yRange, ys.vals, ny, false)
	if err != nil {
		return err
	}
	var fld, sel *field.Field
	if o.sortBy.set {
		fld, sel, err = field.ReduceBy2D(op, xs.vals, ys.vals, zs.vals, sortCol.vals, ax, ay)
	} else {
		fld, err = field.Reduce2D(op, xs.vals, ys.vals, zs.vals, ax, ay)
	}
	if err != nil {
		return err
	}
	warnAllEmpty(fld)

	r := quantize.AutoRange
	if o.zRange.set {
		r = quantize.Range{Min: o.zRange.lo, Max: o.zRange.hi}
	}
	style := o.style2D()
	lv, used := quantize.Quantize(fld, o.nColors, r)
	g := raster.Render2D(lv, style)

	target := fld
	if o.sortBy.set {
		target = sel
	}
	if !o.noStar {
		raster.MarkSpecial(g, target, style, op == field.OpMin)
	}

	fr := raster.NewFrame(g, ax, ay, style, o.decimals, false)
	fr.AddColorbar(quantize.Thresholds(used, o.nColors))

	// Legend: the extremal bin with its coordinates.
	if i, j, ok := argExt2D(target, op); ok {
		x, y := ax.Centers()[i], ay.Centers()[j]
		z, _ := fld.At(i, j)
		var text string
		if o.sortBy.set {
			s, _ := sel.At(i, j)
			text = fmt.Sprintf("sort_%s point:  (x, y, z, sort) = (%s, %s, %s, %s)",
				op, fr.Num(x), fr.Num(y), fr.Num(z), fr.Num(s))
		} else {
			text = fmt.Sprintf("z_%s point:  (x, y, z) = (%s, %s, %s)",
				op, fr.Num(x), fr.Num(y), fr.Num(z))
		}
		entry := raster.LegendEntry{Text: text}
		if !o.noStar {
			entry.Marker, entry.MarkerFG = "🟊", style.Theme.MaxBin
		}
		fr.AddBlank()
		fr.AddLegend(entry)
	}

	zr := [2]float64{used.Min, used.Max}
	info := raster.Info{
		XLabel: xs.name, XTransf: o.xTransf,
		XBinWidth: ax.Width(), XRange: axisRange(ax),
		YLabel: ys.name, YTransf: o.yTransf,
		YBinWidth: ay.Width(), YRange: axisRange(ay),
		ZLabel: zs.name, ZTransf: o.zTransf,
		ZRange:  &zr,
		Filters: in.filters,
		Mode:    op.String(),
	}
	if o.sortBy.set {
		info.SortLabel, info.SortType, info.SortTransf = sortCol.name, op.String(), o.sTransf
	}
	markCapped(&info, fld, o.zRange, zs.name)
	fr.AddInfo(info, leftPadding)
	return emit(fr, style.Theme)
}

// argExt returns the bin index of the extremal non-empty value of a 1D
// field, or -1.
func argExt(f *field.Field, op field.Op) int {
	best := -1
	var bestVal float64
	for i := 0; i < f.W; i++ {
		v, ok := f.At(i, 0)
		if !ok {
			continue
		}
		if best < 0 || (op == field.OpMin && v < bestVal) || (op != field.OpMin && v > bestVal) {
			best, bestVal = i, v
		}
	}
	return best
}

// argExt2D is argExt for 2D fields.
func argExt2D(f *field.Field, op field.Op) (int, int, bool) {
	bi, bj, found := 0, 0, false
	var bestVal float64
	for j := 0; j < f.H; j++ {
		for i := 0; i < f.W; i++ {
			v, ok := f.At(i, j)
			if !ok {
				continue
			}
			if !found || (op == field.OpMin && v < bestVal) || (op != field.OpMin && v > bestVal) {
				bi, bj, bestVal, found = i, j, v, true
			}
		}
	}
	return bi, bj, found
}
