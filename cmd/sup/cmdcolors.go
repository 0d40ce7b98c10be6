// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/aclements/sup/internal/ansi"
	"github.com/aclements/sup/internal/palette"
)

var cmdColorsFlags = flag.NewFlagSet(os.Args[0]+" colors", flag.ExitOnError)
var cmdColormapsFlags = flag.NewFlagSet(os.Args[0]+" colormaps", flag.ExitOnError)

func init() {
	cmdColorsFlags.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s colors\n", os.Args[0])
	}
	cmdColormapsFlags.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s colormaps\n", os.Args[0])
	}
	registerSubcommand("colors", "display the colors available for creating colormaps", cmdColors, cmdColorsFlags)
	registerSubcommand("colormaps", "display the available colormaps", cmdColormaps, cmdColormapsFlags)
}

func cmdColors() {
	fmt.Println("Available colors")
	fmt.Println("----------------")
	var sb strings.Builder
	for i := 0; i < 256; i++ {
		sb.WriteString(ansi.SGR(" "+center(fmt.Sprint(i), 5)+" ", 232, i, false))
		sb.WriteString(" ")
		if (i+1)%8 == 0 {
			sb.WriteString("\n")
		}
	}
	fmt.Println(sb.String())
}

func cmdColormaps() {
	fmt.Println("Available colormaps")
	fmt.Println("-------------------")
	fmt.Println()
	for i, p := range palette.Colormaps {
		var sb strings.Builder
		fmt.Fprintf(&sb, "%d) ", i)
		for _, code := range p.Codes {
			sb.WriteString(ansi.SGR("██████", code, 232, false))
		}
		fmt.Println(sb.String())
		fmt.Println()
	}
}

func center(s string, w int) string {
	if len(s) >= w {
		return s
	}
	left := (w - len(s)) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", w-len(s)-left)
}
