// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package palette

import (
	"reflect"
	"testing"
)

func TestResample(t *testing.T) {
	p := Palette{"test", []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}}

	got := p.Resample(10)
	if !reflect.DeepEqual(got.Codes, p.Codes) {
		t.Errorf("Resample(10): want identity, got %v", got.Codes)
	}

	got = p.Resample(2)
	if !reflect.DeepEqual(got.Codes, []int{1, 10}) {
		t.Errorf("Resample(2): want ends, got %v", got.Codes)
	}

	got = p.Resample(1)
	if len(got.Codes) != 1 {
		t.Errorf("Resample(1): want 1 color, got %v", got.Codes)
	}

	// Out-of-range requests clamp.
	if got := p.Resample(99); len(got.Codes) != 10 {
		t.Errorf("Resample(99): want 10 colors, got %d", len(got.Codes))
	}
	if got := p.Resample(-1); len(got.Codes) != 1 {
		t.Errorf("Resample(-1): want 1 color, got %d", len(got.Codes))
	}
}

func TestReversed(t *testing.T) {
	p := Palette{"test", []int{1, 2, 3}}
	got := p.Reversed()
	if !reflect.DeepEqual(got.Codes, []int{3, 2, 1}) {
		t.Errorf("want [3 2 1], got %v", got.Codes)
	}
	// The original must be untouched.
	if !reflect.DeepEqual(p.Codes, []int{1, 2, 3}) {
		t.Errorf("source mutated: %v", p.Codes)
	}
}

func TestThemeColormap(t *testing.T) {
	dark := NewTheme(false, false)
	if got := dark.Colormap(1); got.Name != "jet-ish" {
		t.Errorf("want jet-ish, got %s", got.Name)
	}
	// Out-of-range colormap index falls back to the default.
	if got := dark.Colormap(99); got.Name != "viridis-ish" {
		t.Errorf("want viridis-ish fallback, got %s", got.Name)
	}

	gray := NewTheme(false, true)
	if got := gray.Colormap(0); got.Name != "grayscale" {
		t.Errorf("grayscale theme: want grayscale map, got %s", got.Name)
	}
	grayWB := NewTheme(true, true)
	if got := grayWB.Colormap(0); got.Codes[0] != GrayscaleLight.Codes[0] {
		t.Errorf("white-bg grayscale: want light ramp")
	}
}

func TestThemeBackground(t *testing.T) {
	dark := NewTheme(false, false)
	light := NewTheme(true, false)
	if dark.BG == light.BG || dark.FG == light.FG {
		t.Error("white-background theme must flip bg/fg")
	}
	if dark.BG != light.FG || dark.FG != light.BG {
		t.Errorf("themes are not mirrored: dark %d/%d light %d/%d", dark.FG, dark.BG, light.FG, light.BG)
	}
}
