// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/aclements/sup/internal/dataset"
	"github.com/aclements/sup/internal/field"
	"github.com/aclements/sup/internal/quantize"
	"github.com/aclements/sup/internal/raster"
)

var cmdHist1DFlags = flag.NewFlagSet(os.Args[0]+" hist1d", flag.ExitOnError)
var cmdHist2DFlags = flag.NewFlagSet(os.Args[0]+" hist2d", flag.ExitOnError)

var hist1d = newPlotOpts()
var hist2d = newPlotOpts()

func init() {
	f := cmdHist1DFlags
	f.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s hist1d [flags] <input file> <x index>\n", os.Args[0])
		f.PrintDefaults()
	}
	hist1d.commonFlags(f)
	hist1d.dataFlags(f)
	hist1d.weightFlags(f)
	f.StringVar(&hist1d.yTransf, "y-transf", "", "transform `expr` for the bin heights (e.g. \"log10(y)\")")
	f.BoolVar(&hist1d.normalize, "normalize", false, "normalize the histogram to integrate to unity")
	registerSubcommand("hist1d", "plot the x histogram", cmdHist1D, f)

	f = cmdHist2DFlags
	f.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s hist2d [flags] <input file> <x index> <y index>\n", os.Args[0])
		f.PrintDefaults()
	}
	hist2d.commonFlags(f)
	hist2d.dataFlags(f)
	hist2d.weightFlags(f)
	hist2d.nColorsFlag(f)
	hist2d.colormapFlags(f, 0, true)
	f.Var(&hist2d.zRange, "z-range", "bin content range `MIN,MAX`")
	f.StringVar(&hist2d.yTransf, "y-transf", "", "transform `expr` for the y dataset (e.g. \"log10(y)\")")
	f.StringVar(&hist2d.zTransf, "z-transf", "", "transform `expr` for the bin heights (e.g. \"log10(z)\")")
	f.BoolVar(&hist2d.normalize, "normalize", false, "normalize the histogram to integrate to unity")
	registerSubcommand("hist2d", "plot the (x,y) histogram", cmdHist2D, f)
}

func cmdHist1D() {
	f := cmdHist1DFlags
	if f.NArg() != 2 {
		f.Usage()
		os.Exit(2)
	}
	fatalIfErr(hist1d.validate())
	path, xIdx := f.Arg(0), parseIndex(f.Arg(1))
	hist1d.run(func() error { return renderHist1D(hist1d, path, xIdx) })
}

func renderHist1D(o *plotOpts, path string, xIdx int) error {
	xs, ws, wName, filters, err := loadWeighted(o, path, xIdx)
	if err != nil {
		return err
	}

	nx, ny := o.bins()
	ax, err := axisFor(o.xRange, xs.vals, nx, false)
	if err != nil {
		return err
	}
	fld, err := field.Hist1D(xs.vals, ws, ax, o.normalize)
	if err != nil {
		return err
	}
	if err := transformField(fld, o.yTransf, "y"); err != nil {
		return err
	}
	ay, err := valueAxis(o.yRange, fld, ny, false)
	if err != nil {
		return err
	}
	// Bars taller than the y range fill to the top instead of
	// vanishing.
	fld.Cap(ay.Hi)

	t := o.theme()
	style := raster.Style{Theme: t, Palette: t.Colormap(0), Markers: raster.MarkersBar()}
	g := raster.Render1D(fld, ay, style, true)
	fr := raster.NewFrame(g, ax, ay, style, o.decimals, true)

	info := raster.Info{
		XLabel: xs.name, XTransf: o.xTransf,
		XBinWidth: ax.Width(), XRange: axisRange(ax),
		YLabel: "bin height", YTransf: o.yTransf,
		YNormalized: o.normalize,
		YBinWidth:   ay.Width(), YRange: axisRange(ay),
		WeightsLabel: wName,
		Filters:      filters,
		Mode:         "histogram",
	}
	if ws != nil {
		info.WeightsTransf = o.wTransf
	}
	fr.AddInfo(info, leftPadding)
	return emit(fr, t)
}

func cmdHist2D() {
	f := cmdHist2DFlags
	if f.NArg() != 3 {
		f.Usage()
		os.Exit(2)
	}
	fatalIfErr(hist2d.validate())
	path, xIdx, yIdx := f.Arg(0), parseIndex(f.Arg(1)), parseIndex(f.Arg(2))
	hist2d.run(func() error { return renderHist2D(hist2d, path, xIdx, yIdx) })
}

func renderHist2D(o *plotOpts, path string, xIdx, yIdx int) error {
	idx := []int{xIdx, yIdx}
	if o.weights.set {
		idx = append(idx, o.weights.v)
	}
	in, err := o.load(path, idx...)
	if err != nil {
		return err
	}
	xs, ys := in.cols[0], in.cols[1]
	var ws []float64
	var wName string
	if o.weights.set {
		ws, wName = in.cols[2].vals, in.cols[2].name
	}
	if err := transformColumn(xs.vals, o.xTransf, "x"); err != nil {
		return err
	}
	if err := transformColumn(ys.vals, o.yTransf, "y"); err != nil {
		return err
	}
	if ws != nil {
		if err := transformColumn(ws, o.wTransf, "w"); err != nil {
			return err
		}
		if err := dataset.CheckWeights(ws, wName); err != nil {
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
	fld, err := field.Hist2D(xs.vals, ys.vals, ws, ax, ay, o.normalize)
	if err != nil {
		return err
	}
	if err := transformField(fld, o.zTransf, "z"); err != nil {
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
		ZLabel: "bin height", ZTransf: o.zTransf,
		ZNormalized: o.normalize, ZRange: &zr,
		WeightsLabel: wName,
		Filters:      in.filters,
		Mode:         "histogram",
	}
	if ws != nil {
		info.WeightsTransf = o.wTransf
	}
	markCapped(&info, fld, o.zRange, "bin height")
	fr.AddInfo(info, leftPadding)
	return emit(fr, style.Theme)
}

// loadWeighted loads the single coordinate column of a 1D histogram
// mode plus its optional weights column, with transforms applied.
func loadWeighted(o *plotOpts, path string, xIdx int) (xs column, ws []float64, wName string, filters []string, err error) {
	idx := []int{xIdx}
	if o.weights.set {
		idx = append(idx, o.weights.v)
	}
	in, err := o.load(path, idx...)
	if err != nil {
		return column{}, nil, "", nil, err
	}
	xs = in.cols[0]
	if o.weights.set {
		ws, wName = in.cols[1].vals, in.cols[1].name
	}
	if err := transformColumn(xs.vals, o.xTransf, "x"); err != nil {
		return column{}, nil, "", nil, err
	}
	if ws != nil {
		if err := transformColumn(ws, o.wTransf, "w"); err != nil {
			return column{}, nil, "", nil, err
		}
		if err := dataset.CheckWeights(ws, wName); err != nil {
			return column{}, nil, "", nil, err
		}
	}
	return xs, ws, wName, in.filters, nil
}
