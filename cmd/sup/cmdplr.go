// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/aclements/sup/internal/field"
	"github.com/aclements/sup/internal/quantize"
	"github.com/aclements/sup/internal/raster"
)

var cmdPLR1DFlags = flag.NewFlagSet(os.Args[0]+" plr1d", flag.ExitOnError)
var cmdPLR2DFlags = flag.NewFlagSet(os.Args[0]+" plr2d", flag.ExitOnError)

var plr1d = newPlotOpts()
var plr2d = newPlotOpts()

// Default confidence levels: 1σ and 2σ for the 1D profile, plus 3σ for
// the 2D one.
var (
	defaultConfidence1D = []float64{68.3, 95.45}
	defaultConfidence2D = []float64{68.3, 95.45, 99.73}
)

func init() {
	f := cmdPLR1DFlags
	f.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s plr1d [flags] <input file> <x index> <loglike index>\n", os.Args[0])
		f.PrintDefaults()
	}
	plr1d.commonFlags(f)
	plr1d.dataFlags(f)
	f.Var(&plr1d.confidence, "confidence-levels", "`probabilities` (in percent) defining the confidence intervals")
	f.Var(&plr1d.capLog, "cap-loglike", "cap the log-likelihood at `value` before profiling")
	registerSubcommand("plr1d", "plot the x profile likelihood ratio", cmdPLR1D, f)

	f = cmdPLR2DFlags
	f.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s plr2d [flags] <input file> <x index> <y index> <loglike index>\n", os.Args[0])
		f.PrintDefaults()
	}
	plr2d.commonFlags(f)
	plr2d.dataFlags(f)
	plr2d.colormapFlags(f, 4, false)
	f.Var(&plr2d.confidence, "confidence-levels", "`probabilities` (in percent) defining the confidence regions")
	f.Var(&plr2d.capLog, "cap-loglike", "cap the log-likelihood at `value` before profiling")
	f.StringVar(&plr2d.yTransf, "y-transf", "", "transform `expr` for the y dataset (e.g. \"log10(y)\")")
	f.BoolVar(&plr2d.noStar, "no-star", false, "switch off the star marker for the best-fit point(s)")
	registerSubcommand("plr2d", "plot the (x,y) profile likelihood ratio", cmdPLR2D, f)
}

func cmdPLR1D() {
	f := cmdPLR1DFlags
	if f.NArg() != 3 {
		f.Usage()
		os.Exit(2)
	}
	fatalIfErr(plr1d.validate())
	path, xIdx, llIdx := f.Arg(0), parseIndex(f.Arg(1)), parseIndex(f.Arg(2))
	plr1d.run(func() error { return renderPLR1D(plr1d, path, xIdx, llIdx) })
}

// capLoglike clamps the log-likelihood samples from above, which bounds
// the ratio denominator when a few samples dominate the fit.
func capLoglike(lnl []float64, limit optFloat) {
	if !limit.set {
		return
	}
	for i, v := range lnl {
		if v > limit.v {
			lnl[i] = limit.v
		}
	}
}

func renderPLR1D(o *plotOpts, path string, xIdx, llIdx int) error {
	in, err := o.load(path, xIdx, llIdx)
	if err != nil {
		return err
	}
	xs, lnl := in.cols[0], in.cols[1]
	if err := transformColumn(xs.vals, o.xTransf, "x"); err != nil {
		return err
	}
	capLoglike(lnl.vals, o.capLog)

	nx, ny := o.bins()
	ax, err := axisFor(o.xRange, xs.vals, nx, false)
	if err != nil {
		return err
	}
	fld, err := field.PLR1D(xs.vals, lnl.vals, ax)
	if err != nil {
		return err
	}
	ay, err := unitAxis(o.yRange, ny)
	if err != nil {
		return err
	}

	style := o.style1D(raster.Markers1D(), 1, 9)
	if !o.gray {
		style.Theme.Bars = []int{3, 11}
	}
	g := raster.Render1D(fld, ay, style, false)
	fr := raster.NewFrame(g, ax, ay, style, o.decimals, true)

	cls := o.confidence
	if len(cls) == 0 {
		cls = defaultConfidence1D
	}
	fr.AddBlank()
	for i, cl := range cls {
		bins := field.ConfidenceBins(fld, cl)
		fr.AddBars(field.Runs(bins), ax.N, fmt.Sprintf("%.12g%% CI", cl), style.Theme.Bars[i%2])
	}

	info := raster.Info{
		XLabel: xs.name, XTransf: o.xTransf,
		XBinWidth: ax.Width(), XRange: axisRange(ax),
		YLabel:    "likelihood ratio, L(x)/L_max",
		YBinWidth: ay.Width(), YRange: axisRange(ay),
		SortLabel: lnl.name, SortType: "max",
		Filters: in.filters,
		Mode:    "profile likelihood ratio, L/L_max",
	}
	if o.capLog.set {
		info.Capped, info.CappedLabel, info.CapVal = true, "ln(L)", o.capLog.v
	}
	fr.AddInfo(info, leftPadding)
	return emit(fr, style.Theme)
}

func cmdPLR2D() {
	f := cmdPLR2DFlags
	if f.NArg() != 4 {
		f.Usage()
		os.Exit(2)
	}
	fatalIfErr(plr2d.validate())
	path := f.Arg(0)
	xIdx, yIdx, llIdx := parseIndex(f.Arg(1)), parseIndex(f.Arg(2)), parseIndex(f.Arg(3))
	plr2d.run(func() error { return renderPLR2D(plr2d, path, xIdx, yIdx, llIdx) })
}

func renderPLR2D(o *plotOpts, path string, xIdx, yIdx, llIdx int) error {
	in, err := o.load(path, xIdx, yIdx, llIdx)
	if err != nil {
		return err
	}
	xs, ys, lnl := in.cols[0], in.cols[1], in.cols[2]
	if err := transformColumn(xs.vals, o.xTransf, "x"); err != nil {
		return err
	}
	if err := transformColumn(ys.vals, o.yTransf, "y"); err != nil {
		return err
	}
	capLoglike(lnl.vals, o.capLog)

	nx, ny := o.bins()
	ax, err := axisFor(o.xRange, xs.vals, nx, true)
	if err != nil {
		return err
	}
	ay, err := axisFor(o.yRange, ys.vals, ny, true)
	if err != nil {
		return err
	}
	fld, err := field.PLR2D(xs.vals, ys.vals, lnl.vals, ax, ay)
	if err != nil {
		return err
	}
	warnAllEmpty(fld)

	cls := append([]float64(nil), o.confidence...)
	if len(cls) == 0 {
		cls = append(cls, defaultConfidence2D...)
	}
	sort.Float64s(cls)

	// Cells are leveled by the smallest confidence region containing
	// them. The thresholds are ascending L/Lmax values, one per level
	// boundary, with everything below the widest region at level 0.
	lims := []float64{0}
	for i := len(cls) - 1; i >= 0; i-- {
		lims = append(lims, field.ConfidenceThreshold2D(cls[i]))
	}

	nLevels := len(cls) + 1
	t := o.theme()
	pal := t.Colormap(o.colormap).Resample(nLevels)
	style := raster.Style{Theme: t, Palette: pal, Markers: raster.Markers2D()}

	lv := quantize.NewLevels(ax.N, ay.N, nLevels)
	for j := 0; j < ay.N; j++ {
		for i := 0; i < ax.N; i++ {
			v, ok := fld.At(i, j)
			if !ok {
				continue
			}
			level := 0
			for k := 1; k < len(lims); k++ {
				if v > lims[k] {
					level = k
				}
			}
			lv.Set(i, j, level)
		}
	}
	g := raster.Render2D(lv, style)

	// The best-fit marker loses its meaning once the likelihood is
	// capped: every capped sample ties at ratio 1.
	star := !o.noStar && !o.capLog.set
	if star {
		raster.MarkSpecial(g, fld, style, false)
	}

	fr := raster.NewFrame(g, ax, ay, style, o.decimals, false)

	fr.AddBlank()
	var entries []raster.LegendEntry
	if star {
		entries = append(entries, raster.LegendEntry{Marker: "🟊", MarkerFG: t.MaxBin, Text: "best-fit"})
	}
	for i, cl := range cls {
		entries = append(entries, raster.LegendEntry{
			Marker: "■", MarkerFG: pal.Codes[len(pal.Codes)-1-i],
			Text: fmt.Sprintf("%.12g%% CL", cl),
		})
	}
	fr.AddLegend(entries...)

	info := raster.Info{
		XLabel: xs.name, XTransf: o.xTransf,
		XBinWidth: ax.Width(), XRange: axisRange(ax),
		YLabel: ys.name, YTransf: o.yTransf,
		YBinWidth: ay.Width(), YRange: axisRange(ay),
		ZLabel:    "likelihood ratio, L(x,y)/L_max",
		SortLabel: lnl.name, SortType: "max",
		Filters: in.filters,
		Mode:    "profile likelihood ratio, L/L_max",
	}
	if o.capLog.set {
		info.Capped, info.CappedLabel, info.CapVal = true, "ln(L)", o.capLog.v
	}
	fr.AddInfo(info, leftPadding)
	return emit(fr, style.Theme)
}
