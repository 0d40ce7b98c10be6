// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package raster

import (
	"reflect"
	"strings"
	"testing"

	"github.com/aclements/sup/internal/field"
	"github.com/aclements/sup/internal/grid"
	"github.com/aclements/sup/internal/palette"
	"github.com/aclements/sup/internal/quantize"
)

func testStyle2D() Style {
	theme := palette.NewTheme(false, false)
	return Style{theme, theme.Colormap(0), Markers2D()}
}

func testStyle1D() Style {
	theme := palette.NewTheme(false, false)
	theme.Graph = theme.GraphColor(5, 6)
	return Style{theme, theme.Colormap(0), Markers1D()}
}

func lineText(l Line) string {
	var sb strings.Builder
	for _, s := range l.Spans {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

func TestRender2D(t *testing.T) {
	style := testStyle2D()

	f := field.New(2, 2)
	f.Set(0, 0, 1)
	f.Set(1, 1, 3)

	l, _ := quantize.Quantize(f, 10, quantize.AutoRange)
	g := Render2D(l, style)

	if got := g.At(0, 0); got.Glyph != style.Markers.Regular {
		t.Errorf("filled bin: want marker %q, got %q", style.Markers.Regular, got.Glyph)
	}
	if got := g.At(0, 1); got != (Cell{style.Markers.Empty, style.Theme.EmptyBin}) {
		t.Errorf("empty bin: got %v", got)
	}
	// The maximum bin gets the top palette color.
	if got := g.At(1, 1); got.FG != style.Palette.Codes[len(style.Palette.Codes)-1] {
		t.Errorf("max bin: want color %d, got %d", style.Palette.Codes[len(style.Palette.Codes)-1], got.FG)
	}
}

func TestRender2DDeterministic(t *testing.T) {
	style := testStyle2D()
	f := field.New(3, 3)
	f.Set(0, 0, 1)
	f.Set(1, 2, 2)
	f.Set(2, 1, 3)
	l, _ := quantize.Quantize(f, 10, quantize.AutoRange)

	g1 := Render2D(l, style)
	g2 := Render2D(l, style)
	if !reflect.DeepEqual(g1, g2) {
		t.Error("identical inputs produced different grids")
	}
}

func TestRender2DAllEmpty(t *testing.T) {
	style := testStyle2D()
	f := field.New(2, 2)
	l, _ := quantize.Quantize(f, 10, quantize.AutoRange)
	g := Render2D(l, style)
	for j := 0; j < 2; j++ {
		for i := 0; i < 2; i++ {
			if got := g.At(i, j); got != (Cell{style.Markers.Empty, style.Theme.EmptyBin}) {
				t.Fatalf("bin (%d,%d): want empty, got %v", i, j, got)
			}
		}
	}
}

func TestRender1DSplitMarkers(t *testing.T) {
	style := testStyle1D()
	ay, err := grid.NewAxis(0, 4, 4)
	if err != nil {
		t.Fatal(err)
	}

	// Bin centers are 0.5, 1.5, 2.5, 3.5.
	f := field.New(3, 1)
	f.Set(0, 0, 0.9) // upper half of bin 0
	f.Set(1, 0, 1.1) // lower half of bin 1
	f.Set(2, 0, 9.0) // above the y range, not drawn

	g := Render1D(f, ay, style, false)
	if got := g.At(0, 0); got.Glyph != style.Markers.Up || got.FG != style.Theme.Graph {
		t.Errorf("bin 0: want up marker in graph color, got %v", got)
	}
	if got := g.At(1, 1); got.Glyph != style.Markers.Down {
		t.Errorf("bin 1: want down marker, got %v", got)
	}
	for j := 0; j < ay.N; j++ {
		if got := g.At(2, j); got.Glyph != style.Markers.Empty {
			t.Errorf("out-of-range value drawn at (2,%d): %v", j, got)
		}
	}
}

func TestRender1DFillBelow(t *testing.T) {
	style := testStyle1D()
	style.Markers = MarkersBar()
	ay, err := grid.NewAxis(0, 4, 4)
	if err != nil {
		t.Fatal(err)
	}

	f := field.New(1, 1)
	f.Set(0, 0, 2.9)

	g := Render1D(f, ay, style, true)
	for j := 0; j < 2; j++ {
		if got := g.At(0, j); got.Glyph != style.Markers.Fill {
			t.Errorf("row %d: want fill below the bar top, got %v", j, got)
		}
	}
	if got := g.At(0, 3); got.Glyph != style.Markers.Empty {
		t.Errorf("row above bar: want empty, got %v", got)
	}
}

func TestMarkSpecial(t *testing.T) {
	style := testStyle2D()
	f := field.New(2, 1)
	f.Set(0, 0, 1)
	f.Set(1, 0, 5)
	l, _ := quantize.Quantize(f, 10, quantize.AutoRange)
	g := Render2D(l, style)
	MarkSpecial(g, f, style, false)

	if got := g.At(1, 0); got.Glyph != style.Markers.Special {
		t.Errorf("max bin: want special marker, got %q", got.Glyph)
	}
	if got := g.At(0, 0); got.Glyph != style.Markers.Regular {
		t.Errorf("non-max bin: want regular marker, got %q", got.Glyph)
	}
}

func TestNewFrameGeometry(t *testing.T) {
	style := testStyle2D()
	ax, _ := grid.NewAxis(0, 1, 20)
	ay, _ := grid.NewAxis(0, 1, 10)
	g := NewGrid(ax.N, ay.N, style)
	fr := NewFrame(g, ax, ay, style, 2, false)

	// Top border, one line per row, x axis, x labels.
	if want := 1 + ay.N + 2; len(fr.Lines) != want {
		t.Fatalf("want %d lines, got %d", want, len(fr.Lines))
	}

	// The border glyphs come before the uniform right padding that
	// squares off the background rectangle.
	top := strings.TrimRight(lineText(fr.Lines[0]), " ")
	if !strings.HasSuffix(top, "_") {
		t.Errorf("top border does not end in _: %q", top)
	}

	// Every plot row ends with the axis, a label or label-width
	// padding.
	for i := 1; i <= ay.N; i++ {
		if !strings.Contains(lineText(fr.Lines[i]), "│") {
			t.Errorf("row %d is missing the y axis", i)
		}
	}

	xAxis := lineText(fr.Lines[ay.N+1])
	if !strings.Contains(xAxis, "┼") {
		t.Errorf("x axis has no tick marks: %q", xAxis)
	}

	// Plot rows all have the same display width.
	w := fr.Lines[1].Width
	for i := 2; i <= ay.N; i++ {
		if fr.Lines[i].Width != w {
			t.Errorf("row %d: width %d, want %d", i, fr.Lines[i].Width, w)
		}
	}
}

func TestNewFrameDeterministic(t *testing.T) {
	style := testStyle1D()
	ax, _ := grid.NewAxis(-3, 3, 30)
	ay, _ := grid.NewAxis(0, 1, 20)

	f := field.New(30, 1)
	for i := 0; i < 30; i++ {
		f.Set(i, 0, float64(i)/30)
	}
	g1 := Render1D(f, ay, style, false)
	g2 := Render1D(f, ay, style, false)
	fr1 := NewFrame(g1, ax, ay, style, 2, true)
	fr2 := NewFrame(g2, ax, ay, style, 2, true)
	if !reflect.DeepEqual(fr1.Lines, fr2.Lines) {
		t.Error("identical inputs produced different frames")
	}
}

func TestAddColorbar(t *testing.T) {
	style := testStyle2D()
	ax, _ := grid.NewAxis(0, 1, 20)
	ay, _ := grid.NewAxis(0, 1, 10)
	fr := NewFrame(NewGrid(ax.N, ay.N, style), ax, ay, style, 2, false)
	n := len(fr.Lines)

	thresholds := quantize.Thresholds(quantize.Range{Min: 0, Max: 1}, len(style.Palette.Codes))
	fr.AddColorbar(thresholds)

	// A blank spacer, the swatch line and the number line.
	if len(fr.Lines) != n+3 {
		t.Fatalf("want 3 new lines, got %d", len(fr.Lines)-n)
	}
	swatches := lineText(fr.Lines[n+1])
	if got := strings.Count(swatches, "|"); got != len(thresholds) {
		t.Errorf("want %d separators, got %d", len(thresholds), got)
	}
	if got := strings.Count(swatches, "■"); got != 6*len(style.Palette.Codes) {
		t.Errorf("want %d swatch cells, got %d", 6*len(style.Palette.Codes), got)
	}
	nums := lineText(fr.Lines[n+2])
	if !strings.Contains(nums, "0.00e+00") || !strings.Contains(nums, "1.00e+00") {
		t.Errorf("number line is missing the range ends: %q", nums)
	}
}

func TestAddBars(t *testing.T) {
	style := testStyle1D()
	ax, _ := grid.NewAxis(0, 1, 10)
	ay, _ := grid.NewAxis(0, 1, 10)
	fr := NewFrame(NewGrid(ax.N, ay.N, style), ax, ay, style, 2, false)

	fr.AddBars([][2]int{{2, 5}}, 10, "68.3% CR", style.Theme.Bars[0])
	got := lineText(fr.Lines[len(fr.Lines)-1])
	want := "     ├─────┤ 68.3% CR"
	if got != want {
		t.Errorf("closed interval:\nwant %q\ngot  %q", want, got)
	}

	// Intervals touching the range ends are drawn open.
	fr.AddBars([][2]int{{0, 10}}, 10, "95.45% CR", style.Theme.Bars[1])
	got = lineText(fr.Lines[len(fr.Lines)-1])
	want = " ╶───────────────────╴ 95.45% CR"
	if got != want {
		t.Errorf("open interval:\nwant %q\ngot  %q", want, got)
	}
}

func TestAddInfo(t *testing.T) {
	style := testStyle1D()
	ax, _ := grid.NewAxis(0, 1, 10)
	ay, _ := grid.NewAxis(0, 1, 10)
	fr := NewFrame(NewGrid(ax.N, ay.N, style), ax, ay, style, 2, false)

	xr := [2]float64{0, 1}
	fr.AddInfo(Info{
		XLabel:       "mass",
		XTransf:      "log10(x)",
		XBinWidth:    0.1,
		XRange:       &xr,
		YLabel:       "count",
		YNormalized:  true,
		WeightsLabel: "w",
		Filters:      []string{"valid"},
		Mode:         "posterior",
	}, 2)

	var text []string
	for _, l := range fr.Lines {
		text = append(text, lineText(l))
	}
	all := strings.Join(text, "\n")
	for _, want := range []string{
		"x-axis: mass",
		"  - transf.: log10(x)",
		"  - bin width: 1.00e-01",
		"  - range: [0.00e+00, 1.00e+00]",
		"y-axis: count",
		"  - normalized",
		"weights: w",
		"filter: valid",
		"plot type: posterior",
	} {
		if !strings.Contains(all, want) {
			t.Errorf("info text is missing %q", want)
		}
	}
}
