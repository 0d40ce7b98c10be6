// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package palette holds the immutable color tables used by the
// rasterizer. All colors are xterm-256 color codes.
package palette

import "math"

// Palette is an ordered sequence of color codes, indexed by
// quantization level.
type Palette struct {
	Name  string
	Codes []int
}

// Colormaps are the selectable color palettes, in the order exposed by
// the --colormap flag.
var Colormaps = []Palette{
	{"viridis-ish", []int{53, 56, 62, 26, 31, 36, 42, 47, 154, 226}},
	{"jet-ish", []int{18, 20, 27, 45, 122, 155, 226, 214, 202, 196}},
	{"inferno-ish", []int{16, 53, 90, 125, 161, 197, 202, 208, 214, 220}},
	{"blue-red-ish", []int{21, 27, 33, 39, 75, 217, 210, 203, 196, 160}},
	{"gambit-ish", []int{22, 28, 34, 40, 46, 118, 154, 190, 226, 220}},
}

// Grayscale maps for black and white backgrounds. The white-background
// map runs dark-on-light, so it is the reverse of the usual ramp.
var (
	GrayscaleDark  = Palette{"grayscale", []int{233, 236, 239, 242, 244, 247, 250, 253, 255, 231}}
	GrayscaleLight = Palette{"grayscale", []int{255, 253, 251, 248, 246, 243, 240, 238, 235, 232}}
)

// Resample returns a palette of n colors drawn evenly from p. n is
// clamped to [1, len(p.Codes)].
func (p Palette) Resample(n int) Palette {
	if n < 1 {
		n = 1
	} else if n > len(p.Codes) {
		n = len(p.Codes)
	}
	codes := make([]int, n)
	if n == 1 {
		codes[0] = p.Codes[len(p.Codes)-1]
	} else {
		for i := range codes {
			// Evenly spaced, rounding to the nearest source entry.
			pos := float64(i) / float64(n-1) * float64(len(p.Codes)-1)
			codes[i] = p.Codes[int(math.Round(pos))]
		}
	}
	return Palette{Name: p.Name, Codes: codes}
}

// Reversed returns the palette with its color order flipped.
func (p Palette) Reversed() Palette {
	codes := make([]int, len(p.Codes))
	for i, c := range p.Codes {
		codes[len(codes)-1-i] = c
	}
	return Palette{Name: p.Name, Codes: codes}
}

// Theme carries the fixed (non-colormap) colors of a plot for one
// background/grayscale combination.
type Theme struct {
	BG       int // plot background
	FG       int // axes, labels, text
	EmptyBin int // empty-cell marker
	FillBin  int // fill-below blocks in 1D plots
	MaxBin   int // the special max-value marker in plr modes
	Graph    int // line color for 1D sample plots
	Bars     []int // alternating colors for CR/CI bars

	WhiteBG   bool
	Grayscale bool
}

// NewTheme returns the theme for the requested background and color
// mode.
func NewTheme(whiteBG, grayscale bool) Theme {
	t := Theme{WhiteBG: whiteBG, Grayscale: grayscale}
	if whiteBG {
		t.BG, t.FG = 231, 16
		t.EmptyBin = 252
		t.FillBin = 252
		t.MaxBin = 232
	} else {
		t.BG, t.FG = 16, 231
		t.EmptyBin = 237
		t.FillBin = 237
		t.MaxBin = 231
	}
	t.Graph = t.EmptyBin
	if grayscale {
		t.Bars = []int{243, 240}
	} else {
		t.Bars = []int{4, 12}
	}
	return t
}

// GraphColor picks a mode's 1D curve color for this theme: the given
// color for black or white backgrounds, or plain white/black in
// grayscale mode.
func (t Theme) GraphColor(blackBG, whiteBG int) int {
	if t.Grayscale {
		if t.WhiteBG {
			return 232
		}
		return 231
	}
	if t.WhiteBG {
		return whiteBG
	}
	return blackBG
}

// Colormap returns the colormap to use under this theme: the indexed
// color map normally, or the background-appropriate grayscale ramp in
// grayscale mode.
func (t Theme) Colormap(index int) Palette {
	if t.Grayscale {
		if t.WhiteBG {
			return GrayscaleLight
		}
		return GrayscaleDark
	}
	if index < 0 || index >= len(Colormaps) {
		index = 0
	}
	return Colormaps[index]
}
