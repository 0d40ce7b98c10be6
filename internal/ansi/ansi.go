// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ansi writes rendered frames to a terminal using xterm-256
// SGR escape sequences.
package ansi

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/aclements/sup/internal/raster"
)

// SGR wraps text in a select-graphic-rendition sequence setting the
// 256-color background and foreground, with an optional bold weight,
// and resets at the end.
func SGR(text string, fg, bg int, bold bool) string {
	var sb strings.Builder
	if bold {
		fmt.Fprintf(&sb, "\x1b[48;5;%d;1;38;5;%dm", bg, fg)
	} else {
		fmt.Fprintf(&sb, "\x1b[48;5;%d;38;5;%dm", bg, fg)
	}
	sb.WriteString(text)
	sb.WriteString("\x1b[0m")
	return sb.String()
}

// A Writer renders frames to an output stream. Every line is padded
// with background-colored spaces to the width of the widest line, so
// the figure forms a solid rectangle.
type Writer struct {
	Out    io.Writer
	FG, BG int
}

// NewWriter returns a Writer for the given stream and theme colors.
func NewWriter(out io.Writer, fg, bg int) *Writer {
	return &Writer{Out: out, FG: fg, BG: bg}
}

// WriteFrame writes all lines of fr, one terminal row per line.
func (w *Writer) WriteFrame(fr *raster.Frame) error {
	width := 0
	for _, l := range fr.Lines {
		if l.Width > width {
			width = l.Width
		}
	}
	var sb strings.Builder
	for _, l := range fr.Lines {
		for _, s := range l.Spans {
			sb.WriteString(SGR(s.Text, s.FG, w.BG, s.Bold))
		}
		if pad := width - l.Width; pad > 0 {
			sb.WriteString(SGR(strings.Repeat(" ", pad), w.FG, w.BG, true))
		}
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w.Out, sb.String())
	return err
}

// IsTerminal reports whether f is connected to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Size returns the terminal dimensions of f in character cells, or
// ok=false if f is not a terminal.
func Size(f *os.File) (w, h int, ok bool) {
	w, h, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0, 0, false
	}
	return w, h, true
}

// ClearScreen erases the screen and homes the cursor. Used between
// redraws in watch mode.
func ClearScreen(out io.Writer) {
	io.WriteString(out, "\x1b[2J\x1b[H")
}
