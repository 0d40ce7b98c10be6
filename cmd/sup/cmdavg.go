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

var cmdAvg1DFlags = flag.NewFlagSet(os.Args[0]+" avg1d", flag.ExitOnError)
var cmdAvg2DFlags = flag.NewFlagSet(os.Args[0]+" avg2d", flag.ExitOnError)

var avg1d = newPlotOpts()
var avg2d = newPlotOpts()

func init() {
	f := cmdAvg1DFlags
	f.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s avg1d [flags] <input file> <x index> <y index>\n", os.Args[0])
		f.PrintDefaults()
	}
	avg1d.commonFlags(f)
	avg1d.dataFlags(f)
	f.StringVar(&avg1d.yTransf, "y-transf", "", "transform `expr` for the y dataset (e.g. \"log10(y)\")")
	registerSubcommand("avg1d", "plot the average y value across the x axis", cmdAvg1D, f)

	f = cmdAvg2DFlags
	f.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s avg2d [flags] <input file> <x index> <y index> <z index>\n", os.Args[0])
		f.PrintDefaults()
	}
	avg2d.commonFlags(f)
	avg2d.dataFlags(f)
	avg2d.nColorsFlag(f)
	avg2d.colormapFlags(f, 0, true)
	f.Var(&avg2d.zRange, "z-range", "z-axis range `MIN,MAX`")
	f.StringVar(&avg2d.yTransf, "y-transf", "", "transform `expr` for the y dataset (e.g. \"log10(y)\")")
	f.StringVar(&avg2d.zTransf, "z-transf", "", "transform `expr` for the z dataset (e.g. \"log10(z)\")")
	registerSubcommand("avg2d", "plot the average z value across the (x,y) plane", cmdAvg2D, f)
}

func cmdAvg1D() {
	f := cmdAvg1DFlags
	if f.NArg() != 3 {
		f.Usage()
		os.Exit(2)
	}
	fatalIfErr(avg1d.validate())
	path, xIdx, yIdx := f.Arg(0), parseIndex(f.Arg(1)), parseIndex(f.Arg(2))
	avg1d.run(func() error { return renderAvg1D(avg1d, path, xIdx, yIdx) })
}

func renderAvg1D(o *plotOpts, path string, xIdx, yIdx int) error {
	in, err := o.load(path, xIdx, yIdx)
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

	nx, ny := o.bins()
	ax, err := axisFor(o.xRange, xs.vals, nx, false)
	if err != nil {
		return err
	}
	fld, err := field.Reduce1D(field.OpAvg, xs.vals, ys.vals, ax)
	if err != nil {
		return err
	}
	ay, err := valueAxis(o.yRange, fld, ny, false)
	if err != nil {
		return err
	}

	style := o.style1D(raster.Markers1D(), 5, 6)
	g := raster.Render1D(fld, ay, style, false)
	fr := raster.NewFrame(g, ax, ay, style, o.decimals, true)

	fr.AddInfo(raster.Info{
		XLabel: xs.name, XTransf: o.xTransf,
		XBinWidth: ax.Width(), XRange: axisRange(ax),
		YLabel: ys.name + " [binned average]", YTransf: o.yTransf,
		YBinWidth: ay.Width(), YRange: axisRange(ay),
		Filters: in.filters,
		Mode:    "average",
	}, leftPadding)
	return emit(fr, style.Theme)
}

func cmdAvg2D() {
	f := cmdAvg2DFlags
	if f.NArg() != 4 {
		f.Usage()
		os.Exit(2)
	}
	fatalIfErr(avg2d.validate())
	path := f.Arg(0)
	xIdx, yIdx, zIdx := parseIndex(f.Arg(1)), parseIndex(f.Arg(2)), parseIndex(f.Arg(3))
	avg2d.run(func() error { return renderAvg2D(avg2d, path, xIdx, yIdx, zIdx) })
}

func renderAvg2D(o *plotOpts, path string, xIdx, yIdx, zIdx int) error {
	in, err := o.load(path, xIdx, yIdx, zIdx)
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

	nx, ny := o.bins()
	ax, err := axisFor(o.xRange, xs.vals, nx, true)
	if err != nil {
		return err
	}
	ay, err := axisFor(o.yRange, ys.vals, ny, true)
	if err != nil {
		return err
	}
	fld, err := field.Reduce2D(field.OpAvg, xs.vals, ys.vals, zs.vals, ax, ay)
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
	fr := raster.NewFrame(g, ax, ay, style, o.decimals, false)
	fr.AddColorbar(quantize.Thresholds(used, o.nColors))

	zr := [2]float64{used.Min, used.Max}
	info := raster.Info{
		XLabel: xs.name, XTransf: o.xTransf,
		XBinWidth: ax.Width(), XRange: axisRange(ax),
		YLabel: ys.name, YTransf: o.yTransf,
		YBinWidth: ay.Width(), YRange: axisRange(ay),
		ZLabel: zs.name + " [binned average]", ZTransf: o.zTransf,
		ZRange:  &zr,
		Filters: in.filters,
		Mode:    "average",
	}
	markCapped(&info, fld, o.zRange, zs.name)
	fr.AddInfo(info, leftPadding)
	return emit(fr, style.Theme)
}
