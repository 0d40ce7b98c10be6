// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package raster

import "fmt"

// Info describes the text block printed below a plot: axis labels,
// ranges, transforms, weights, filters and the mode name. Zero values
// mean "not shown"; bin widths are always positive, so 0 marks an
// absent width.
type Info struct {
	XLabel    string
	XTransf   string
	XBinWidth float64
	XRange    *[2]float64

	YLabel      string
	YTransf     string
	YNormalized bool
	YBinWidth   float64
	YRange      *[2]float64

	ZLabel      string
	ZTransf     string
	ZNormalized bool
	ZRange      *[2]float64

	SortLabel  string
	SortType   string
	SortTransf string

	WeightsLabel  string
	WeightsTransf string

	Capped      bool
	CappedLabel string
	CapVal      float64

	Filters []string
	Mode    string
}

// AddInfo appends the info block. pad is the left padding of the plot
// lines; the info text indents one column further.
func (fr *Frame) AddInfo(info Info, pad int) {
	fg := fr.style.Theme.FG
	lp := spaces(pad + 1)
	add := func(format string, args ...interface{}) {
		fr.AddText(lp+fmt.Sprintf(format, args...), fg, false)
	}
	f := func(v float64) string { return fmt.Sprintf(fr.ff2, v) }

	fr.AddBlank()

	add("x-axis: %s", info.XLabel)
	if info.XTransf != "" {
		add("  - transf.: %s", info.XTransf)
	}
	if info.XBinWidth != 0 {
		add("  - bin width: %s", f(info.XBinWidth))
	}
	if info.XRange != nil {
		add("  - range: [%s, %s]", f(info.XRange[0]), f(info.XRange[1]))
	}

	if info.YLabel != "" {
		add("y-axis: %s", info.YLabel)
		if info.YTransf != "" {
			add("  - transf.: %s", info.YTransf)
		}
		if info.YNormalized {
			add("  - normalized")
		}
		if info.YBinWidth != 0 {
			add("  - bin width: %s", f(info.YBinWidth))
		}
		if info.YRange != nil {
			add("  - range: [%s, %s]", f(info.YRange[0]), f(info.YRange[1]))
		}
	}

	if info.ZLabel != "" {
		add("z-axis: %s", info.ZLabel)
		if info.ZTransf != "" {
			add("  - transf.: %s", info.ZTransf)
		}
		if info.ZNormalized {
			add("  - normalized")
		}
		if info.ZRange != nil {
			add("  - range: [%s, %s]", f(info.ZRange[0]), f(info.ZRange[1]))
		}
	}

	if info.SortLabel != "" && info.SortType != "" {
		add("sort: %s [%s]", info.SortLabel, info.SortType)
		if info.SortTransf != "" {
			add("  - transf.: %s", info.SortTransf)
		}
	}

	if info.WeightsLabel != "" {
		add("weights: %s", info.WeightsLabel)
		if info.WeightsTransf != "" {
			add("  - transf.: %s", info.WeightsTransf)
		}
	}

	if info.Capped {
		add("capped: %s dataset capped at %s", info.CappedLabel, f(info.CapVal))
	}

	for _, name := range info.Filters {
		add("filter: %s", name)
	}

	if info.Mode != "" {
		fr.AddBlank()
		add("plot type: %s", info.Mode)
	}

	fr.AddBlank()
}
