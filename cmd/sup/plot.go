// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/aclements/sup/internal/ansi"
	"github.com/aclements/sup/internal/dataset"
	"github.com/aclements/sup/internal/field"
	"github.com/aclements/sup/internal/grid"
	"github.com/aclements/sup/internal/mathexpr"
	"github.com/aclements/sup/internal/palette"
	"github.com/aclements/sup/internal/raster"
)

// leftPadding is the number of background columns between the terminal
// edge and the figure.
const leftPadding = 2

func fatalIfErr(err error) {
	if err != nil {
		log.Fatal(err)
	}
}

// parseIndex parses a dataset index argument.
func parseIndex(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		log.Fatalf("bad dataset index %q", s)
	}
	return n
}

// run executes render once, or repeatedly in watch mode with a screen
// clear between frames. Watch mode treats render errors (such as a
// missing input file) as transient and keeps trying.
func (o *plotOpts) run(render func() error) {
	if o.watch == 0 {
		if err := render(); err != nil {
			log.Fatal(err)
		}
		return
	}
	interval := time.Duration(o.watch * float64(time.Second))
	for {
		if ansi.IsTerminal(os.Stdout) {
			ansi.ClearScreen(os.Stdout)
		}
		msg := fmt.Sprintf("Regenerating the plot in %g seconds. Press CTRL+C to abort.", o.watch)
		if err := render(); err != nil {
			msg = fmt.Sprintf("%v\nTrying again in %g seconds. Press CTRL+C to abort.", err, o.watch)
		}
		fmt.Printf("\n\x1b[1m%s\x1b[0m\n\n", msg)
		time.Sleep(interval)
	}
}

// column is one loaded dataset column.
type column struct {
	name string
	vals []float64
}

// input is the loaded and filtered data of one render.
type input struct {
	cols    []column
	filters []string
}

// load reads the input file, applies the read slice, fetches the
// requested columns, and drops the rows rejected by the filter
// datasets.
func (o *plotOpts) load(path string, indices ...int) (*input, error) {
	d, err := dataset.Read(path, o.delimiter, o.stdinFormat)
	if err != nil {
		return nil, err
	}
	d = o.readSlice.s.Apply(d)

	var cols [][]float64
	var names []string
	for _, idx := range indices {
		vals, name, err := d.Col(idx)
		if err != nil {
			return nil, err
		}
		cols = append(cols, vals)
		names = append(names, name)
	}
	var filters [][]float64
	var filterNames []string
	for _, idx := range o.filters {
		vals, name, err := d.Col(idx)
		if err != nil {
			return nil, err
		}
		filters = append(filters, vals)
		filterNames = append(filterNames, name)
	}
	cols, err = dataset.ApplyFilters(cols, filters)
	if err != nil {
		return nil, err
	}

	in := &input{filters: filterNames}
	for i := range cols {
		in.cols = append(in.cols, column{names[i], cols[i]})
	}
	return in, nil
}

// transformColumn applies an expression transform, in place, to one
// column. The expression sees each sample as the named variable.
func transformColumn(vals []float64, expr, varName string) error {
	if expr == "" {
		return nil
	}
	fn, err := mathexpr.Compile(expr, varName)
	if err != nil {
		return err
	}
	for i, v := range vals {
		out, err := fn.Eval(v)
		if err != nil {
			return fmt.Errorf("transform %q: %v", expr, err)
		}
		vals[i] = out
	}
	return nil
}

// transformField applies an expression transform to the non-empty
// cells of a reduced field.
func transformField(f *field.Field, expr, varName string) error {
	if expr == "" {
		return nil
	}
	fn, err := mathexpr.Compile(expr, varName)
	if err != nil {
		return err
	}
	f.Transform(fn)
	return nil
}

// bins returns the grid resolution. The default width is clamped to
// the terminal so unconfigured plots fit on screen.
func (o *plotOpts) bins() (nx, ny int) {
	nx, ny = o.size.w, o.size.h
	if !o.size.set {
		if w, _, ok := ansi.Size(os.Stdout); ok {
			if max := (w - 16) / 2; max >= 6 && nx > max {
				nx = max
			}
		}
	}
	return
}

// axisFor builds a coordinate axis from an explicit range flag or the
// data bounds. With nudge set an explicit range is widened like an
// automatic one, so boundary samples stay inside the last bin.
func axisFor(r rangeFlag, xs []float64, n int, nudge bool) (*grid.Axis, error) {
	if r.set {
		lo, hi := r.lo, r.hi
		if nudge {
			lo, hi = grid.NudgeBounds(lo, hi)
		}
		return grid.NewAxis(lo, hi, n)
	}
	lo, hi, err := field.AutoRange(xs)
	if err != nil {
		return nil, err
	}
	return grid.NewAxis(lo, hi, n)
}

// valueAxis builds the value (y) axis of a 1D mode from the reduced
// field.
func valueAxis(r rangeFlag, f *field.Field, n int, nudge bool) (*grid.Axis, error) {
	if r.set {
		lo, hi := r.lo, r.hi
		if nudge {
			lo, hi = grid.NudgeBounds(lo, hi)
		}
		return grid.NewAxis(lo, hi, n)
	}
	lo, hi, ok := f.Bounds()
	if !ok {
		return nil, fmt.Errorf("no data points inside the plotted range")
	}
	lo, hi = grid.NudgeBounds(lo, hi)
	return grid.NewAxis(lo, hi, n)
}

// unitAxis builds an axis defaulting to [0, 1], for the graph and plr
// value axes.
func unitAxis(r rangeFlag, n int) (*grid.Axis, error) {
	lo, hi := 0.0, 1.0
	if r.set {
		lo, hi = r.lo, r.hi
	}
	lo, hi = grid.NudgeBounds(lo, hi)
	return grid.NewAxis(lo, hi, n)
}

func (o *plotOpts) theme() palette.Theme {
	return palette.NewTheme(o.whiteBG, o.gray)
}

// style1D builds the style of a 1D curve mode with the mode's color
// pair for black and white backgrounds.
func (o *plotOpts) style1D(m raster.Markers, blackBG, whiteBG int) raster.Style {
	t := o.theme()
	t.Graph = t.GraphColor(blackBG, whiteBG)
	return raster.Style{Theme: t, Palette: t.Colormap(0), Markers: m}
}

// style2D builds the style of a quantized 2D mode from the colormap
// flags.
func (o *plotOpts) style2D() raster.Style {
	t := o.theme()
	p := t.Colormap(o.colormap).Resample(o.nColors)
	if o.reverseCmap {
		p = p.Reversed()
	}
	return raster.Style{Theme: t, Palette: p, Markers: raster.Markers2D()}
}

// axisRange returns the bounds of ax for the info block.
func axisRange(ax *grid.Axis) *[2]float64 {
	r := [2]float64{ax.Lo, ax.Hi}
	return &r
}

// markCapped notes in the info block when reduced values fall outside
// an explicit z range; the quantizer clamps them to the end colors.
func markCapped(info *raster.Info, f *field.Field, r rangeFlag, label string) {
	if !r.set {
		return
	}
	lo, hi, ok := f.Bounds()
	if !ok {
		return
	}
	if hi > r.hi {
		info.Capped, info.CappedLabel, info.CapVal = true, label, r.hi
	} else if lo < r.lo {
		info.Capped, info.CappedLabel, info.CapVal = true, label, r.lo
	}
}

// warnAllEmpty notes a blank canvas on stderr; it is not an error.
func warnAllEmpty(f *field.Field) {
	if f.AllEmpty() {
		log.Print("warning: no data points inside the plotted range")
	}
}

// emit writes fr to stdout with the standard left padding.
func emit(fr *raster.Frame, t palette.Theme) error {
	fr.PadLeft(leftPadding)
	w := ansi.NewWriter(os.Stdout, t.FG, t.BG)
	fmt.Println()
	return w.WriteFrame(fr)
}
