// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/aclements/go-moremath/stats"

	"github.com/aclements/sup/internal/dataset"
	"github.com/aclements/sup/internal/field"
	"github.com/aclements/sup/internal/quantize"
	"github.com/aclements/sup/internal/raster"
)

var cmdPost1DFlags = flag.NewFlagSet(os.Args[0]+" post1d", flag.ExitOnError)
var cmdPost2DFlags = flag.NewFlagSet(os.Args[0]+" post2d", flag.ExitOnError)

var post1d = newPlotOpts()
var post2d = newPlotOpts()

// defaultCredibleRegions are the probabilities used when the
// -credible-regions flag is not given: the 1σ and 2σ masses.
var defaultCredibleRegions = []float64{68.3, 95.45}

func init() {
	f := cmdPost1DFlags
	f.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s post1d [flags] <input file> <x index>\n", os.Args[0])
		f.PrintDefaults()
	}
	post1d.commonFlags(f)
	post1d.dataFlags(f)
	post1d.weightFlags(f)
	f.Var(&post1d.credible, "credible-regions", "`probabilities` (in percent) defining the credible regions")
	f.StringVar(&post1d.yTransf, "y-transf", "", "transform `expr` for the bin heights (e.g. \"log10(y)\")")
	registerSubcommand("post1d", "plot the x posterior probability distribution", cmdPost1D, f)

	f = cmdPost2DFlags
	f.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s post2d [flags] <input file> <x index> <y index>\n", os.Args[0])
		f.PrintDefaults()
	}
	post2d.commonFlags(f)
	post2d.dataFlags(f)
	post2d.weightFlags(f)
	post2d.colormapFlags(f, 0, true)
	f.Var(&post2d.credible, "credible-regions", "`probabilities` (in percent) defining the credible regions")
	f.StringVar(&post2d.yTransf, "y-transf", "", "transform `expr` for the y dataset (e.g. \"log10(y)\")")
	registerSubcommand("post2d", "plot the (x,y) posterior probability distribution", cmdPost2D, f)
}

func cmdPost1D() {
	f := cmdPost1DFlags
	if f.NArg() != 2 {
		f.Usage()
		os.Exit(2)
	}
	fatalIfErr(post1d.validate())
	path, xIdx := f.Arg(0), parseIndex(f.Arg(1))
	post1d.run(func() error { return renderPost1D(post1d, path, xIdx) })
}

func renderPost1D(o *plotOpts, path string, xIdx int) error {
	xs, ws, wName, filters, err := loadWeighted(o, path, xIdx)
	if err != nil {
		return err
	}

	nx, ny := o.bins()
	ax, err := axisFor(o.xRange, xs.vals, nx, true)
	if err != nil {
		return err
	}
	fld, err := field.Hist1D(xs.vals, ws, ax, true)
	if err != nil {
		return err
	}

	// Credible regions come from the raw density, before any bin
	// height transform.
	crs := o.credible
	if len(crs) == 0 {
		crs = defaultCredibleRegions
	}
	type crBars struct {
		prob float64
		runs [][2]int
	}
	var bars []crBars
	for _, cr := range crs {
		bins := field.CredibleBins(fld, ax.Width(), cr)
		bars = append(bars, crBars{cr, field.Runs(bins)})
	}

	if err := transformField(fld, o.yTransf, "y"); err != nil {
		return err
	}
	ay, err := valueAxis(o.yRange, fld, ny, true)
	if err != nil {
		return err
	}
	fld.Cap(ay.Hi)

	style := o.style1D(raster.MarkersBar(), 3, 11)
	g := raster.Render1D(fld, ay, style, true)
	fr := raster.NewFrame(g, ax, ay, style, o.decimals, true)

	fr.AddBlank()
	for i, b := range bars {
		fr.AddBars(b.runs, ax.N, fmt.Sprintf("%.12g%% CR", b.prob), style.Theme.Bars[i%2])
	}

	fr.AddBlank()
	if bi := fld.ArgMax(); bi >= 0 {
		edges := ax.Edges()
		v, _ := fld.At(bi, 0)
		fr.AddLegend(raster.LegendEntry{Text: fmt.Sprintf(
			"posterior max bin:  x: (%s, %s)  bin height: %s",
			fr.Num(edges[bi]), fr.Num(edges[bi+1]), fr.Num(v))})
	}
	mean := (stats.Sample{Xs: xs.vals, Weights: ws}).Mean()
	fr.AddLegend(raster.LegendEntry{Text: "posterior mean point:  x = " + fr.Num(mean)})

	info := raster.Info{
		XLabel: xs.name, XTransf: o.xTransf,
		XBinWidth: ax.Width(), XRange: axisRange(ax),
		YLabel: "bin height", YTransf: o.yTransf,
		YNormalized: true,
		YBinWidth:   ay.Width(), YRange: axisRange(ay),
		WeightsLabel: wName,
		Filters:      filters,
		Mode:         "posterior",
	}
	if ws != nil {
		info.WeightsTransf = o.wTransf
	}
	fr.AddInfo(info, leftPadding)
	return emit(fr, style.Theme)
}

func cmdPost2D() {
	f := cmdPost2DFlags
	if f.NArg() != 3 {
		f.Usage()
		os.Exit(2)
	}
	fatalIfErr(post2d.validate())
	path, xIdx, yIdx := f.Arg(0), parseIndex(f.Arg(1)), parseIndex(f.Arg(2))
	post2d.run(func() error { return renderPost2D(post2d, path, xIdx, yIdx) })
}

func renderPost2D(o *plotOpts, path string, xIdx, yIdx int) error {
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
	ax, err := axisFor(o.xRange, xs.vals, nx, true)
	if err != nil {
		return err
	}
	ay, err := axisFor(o.yRange, ys.vals, ny, true)
	if err != nil {
		return err
	}
	fld, err := field.Hist2D(xs.vals, ys.vals, ws, ax, ay, true)
	if err != nil {
		return err
	}
	warnAllEmpty(fld)

	// Each cell is colored by the smallest credible region containing
	// it; everything outside the requested regions forms an implicit
	// 100% region.
	crs := append([]float64(nil), o.credible...)
	if len(crs) == 0 {
		crs = append(crs, defaultCredibleRegions...)
	}
	sort.Float64s(crs)
	regions := append(append([]float64(nil), crs...), 100)
	levels := field.RegionLevels(fld, ax.Width()*ay.Width(), regions)

	t := o.theme()
	pal := t.Colormap(o.colormap).Resample(len(regions))
	// The innermost region gets the hot end of the map.
	if !o.reverseCmap {
		pal = pal.Reversed()
	}
	style := raster.Style{Theme: t, Palette: pal, Markers: raster.Markers2D()}

	lv := quantize.NewLevels(ax.N, ay.N, len(regions))
	for j := 0; j < ay.N; j++ {
		for i := 0; i < ax.N; i++ {
			if l := levels[j*ax.N+i]; l >= 0 {
				lv.Set(i, j, l)
			}
		}
	}
	g := raster.Render2D(lv, style)
	fr := raster.NewFrame(g, ax, ay, style, o.decimals, false)

	fr.AddBlank()
	var entries []raster.LegendEntry
	for i, cr := range crs {
		entries = append(entries, raster.LegendEntry{
			Marker: "■", MarkerFG: pal.Codes[i],
			Text: fmt.Sprintf("%.12g%% CR", cr),
		})
	}
	fr.AddLegend(entries...)

	if i, j, ok := argExt2D(fld, field.OpMax); ok {
		ex, ey := ax.Edges(), ay.Edges()
		v, _ := fld.At(i, j)
		fr.AddLegend(raster.LegendEntry{Text: fmt.Sprintf(
			"posterior max bin:  x: (%s, %s)  y: (%s, %s)  bin height: %s",
			fr.Num(ex[i]), fr.Num(ex[i+1]), fr.Num(ey[j]), fr.Num(ey[j+1]), fr.Num(v))})
	}
	mx := (stats.Sample{Xs: xs.vals, Weights: ws}).Mean()
	my := (stats.Sample{Xs: ys.vals, Weights: ws}).Mean()
	fr.AddLegend(raster.LegendEntry{Text: fmt.Sprintf(
		"posterior mean point:  (x, y) = (%s, %s)", fr.Num(mx), fr.Num(my))})

	info := raster.Info{
		XLabel: xs.name, XTransf: o.xTransf,
		XBinWidth: ax.Width(), XRange: axisRange(ax),
		YLabel: ys.name, YTransf: o.yTransf,
		YBinWidth: ay.Width(), YRange: axisRange(ay),
		ZLabel:      "bin height",
		ZNormalized: true,
		WeightsLabel: wName,
		Filters:      in.filters,
		Mode:         "posterior",
	}
	if ws != nil {
		info.WeightsTransf = o.wTransf
	}
	fr.AddInfo(info, leftPadding)
	return emit(fr, style.Theme)
}
