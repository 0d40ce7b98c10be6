// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/aclements/sup/internal/field"
	"github.com/aclements/sup/internal/mathexpr"
	"github.com/aclements/sup/internal/quantize"
	"github.com/aclements/sup/internal/raster"
)

var cmdGraph1DFlags = flag.NewFlagSet(os.Args[0]+" graph1d", flag.ExitOnError)
var cmdGraph2DFlags = flag.NewFlagSet(os.Args[0]+" graph2d", flag.ExitOnError)

var graph1d = newPlotOpts()
var graph2d = newPlotOpts()

func init() {
	f := cmdGraph1DFlags
	f.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s graph1d [flags] <expression of x>\n", os.Args[0])
		f.PrintDefaults()
	}
	graph1d.commonFlags(f)
	registerSubcommand("graph1d", "plot an analytic function of x", cmdGraph1D, f)

	f = cmdGraph2DFlags
	f.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s graph2d [flags] <expression of x and y>\n", os.Args[0])
		f.PrintDefaults()
	}
	graph2d.commonFlags(f)
	graph2d.nColorsFlag(f)
	graph2d.colormapFlags(f, 0, true)
	f.Var(&graph2d.zRange, "z-range", "z-axis range `MIN,MAX`")
	registerSubcommand("graph2d", "plot an analytic function of x and y", cmdGraph2D, f)
}

func cmdGraph1D() {
	f := cmdGraph1DFlags
	if f.NArg() != 1 {
		f.Usage()
		os.Exit(2)
	}
	fatalIfErr(graph1d.validate())
	fatalIfErr(renderGraph1D(graph1d, f.Arg(0)))
}

func renderGraph1D(o *plotOpts, expr string) error {
	fn, err := mathexpr.Compile(expr, "x")
	if err != nil {
		return err
	}

	nx, ny := o.bins()
	ax, err := unitAxis(o.xRange, nx)
	if err != nil {
		return err
	}
	fld, err := field.Graph1D(fn, ax)
	if err != nil {
		return err
	}
	ay, err := valueAxis(o.yRange, fld, ny, true)
	if err != nil {
		return err
	}

	style := o.style1D(raster.Markers1D(), 4, 12)
	g := raster.Render1D(fld, ay, style, false)
	fr := raster.NewFrame(g, ax, ay, style, o.decimals, true)

	fr.AddInfo(raster.Info{
		XLabel:    "x",
		XBinWidth: ax.Width(), XRange: axisRange(ax),
		YLabel:    "f(x) = " + expr,
		YBinWidth: ay.Width(), YRange: axisRange(ay),
		Mode: "graph",
	}, leftPadding)
	return emit(fr, style.Theme)
}

func cmdGraph2D() {
	f := cmdGraph2DFlags
	if f.NArg() != 1 {
		f.Usage()
		os.Exit(2)
	}
	fatalIfErr(graph2d.validate())
	fatalIfErr(renderGraph2D(graph2d, f.Arg(0)))
}

func renderGraph2D(o *plotOpts, expr string) error {
	fn, err := mathexpr.Compile(expr, "x", "y")
	if err != nil {
		return err
	}

	nx, ny := o.bins()
	ax, err := unitAxis(o.xRange, nx)
	if err != nil {
		return err
	}
	ay, err := unitAxis(o.yRange, ny)
	if err != nil {
		return err
	}
	fld, err := field.Graph2D(fn, ax, ay)
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
		XLabel:    "x",
		XBinWidth: ax.Width(), XRange: axisRange(ax),
		YLabel:    "y",
		YBinWidth: ay.Width(), YRange: axisRange(ay),
		ZLabel: "f(x,y) = " + expr,
		ZRange: &zr,
		Mode:   "graph",
	}
	markCapped(&info, fld, o.zRange, "f(x,y)")
	fr.AddInfo(info, leftPadding)
	return emit(fr, style.Theme)
}
