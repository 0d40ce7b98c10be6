// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Sup plots statistical summaries of columnar data files as colored
// Unicode grids directly in the terminal.
//
// Usage:
//
//	sup <mode> [flags] <args>
//
// Sup reads named numeric columns ("datasets") from whitespace- or
// delimiter-separated text files, CSV files, JSON files or standard
// input, bins them over a coordinate grid, and renders the result with
// xterm-256 colors. Datasets are addressed by index; "sup list <file>"
// prints the available indices.
//
// Modes:
//
//	list        list dataset names and indices
//	hist1d      plot the x histogram
//	hist2d      plot the (x,y) histogram
//	max1d       plot the maximum y value across the x axis
//	max2d       plot the maximum z value across the (x,y) plane
//	min1d       plot the minimum y value across the x axis
//	min2d       plot the minimum z value across the (x,y) plane
//	avg1d       plot the average y value across the x axis
//	avg2d       plot the average z value across the (x,y) plane
//	post1d      plot the x posterior probability distribution
//	post2d      plot the (x,y) posterior probability distribution
//	plr1d       plot the profile likelihood ratio across the x axis
//	plr2d       plot the profile likelihood ratio across the (x,y) plane
//	graph1d     plot the function y = f(x) across the x axis
//	graph2d     plot the function z = f(x,y) across the (x,y) plane
//	colormaps   display the available colormaps
//	colors      display the colors available for creating colormaps
//
// Examples:
//
//	sup list data.txt -delimiter ","
//
//	sup hist1d data.txt 0 -x-range -10,10 -size 100,20 -delimiter ","
//
//	sup hist2d data.txt 0 1 -x-range -10,10 -y-range -10,10 -size 30,30 -colormap 1
//
//	sup post2d posterior.dat 2 3 -x-range -10,10 -y-range -10,10 -size 30,30
//
//	sup plr2d data.csv 0 1 4 -x-range 0,10 -y-range 0,10 -size 20,20
//
//	sup graph1d "x * cos(2 * pi * x)" -x-range 0,2 -y-range -2,2 -size 40,20 -white-bg
//
//	sup graph2d "sin(x**2 + y**2) / (x**2 + y**2)" -x-range -5,5 -y-range -5,5 -size 50,50
//
// Expressions (the graph modes and the -*-transf flags) use ordinary
// arithmetic plus the usual math functions (sqrt, exp, log, log10, sin,
// cos, pow, ...) and the constants pi and e, with the dataset bound to
// the variable named by the flag (x, y, z, w or s).
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
)

type subcommand struct {
	name  string
	desc  string
	run   func()
	flags *flag.FlagSet
}

var subcommands []subcommand

// registerSubcommand is called from the init function of each mode
// file.
func registerSubcommand(name, desc string, run func(), flags *flag.FlagSet) {
	subcommands = append(subcommands, subcommand{name, desc, run, flags})
}

func main() {
	log.SetPrefix("sup: ")
	log.SetFlags(0)

	flag.Usage = usage
	flag.Parse()
	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}

	name := flag.Arg(0)
	for _, cmd := range subcommands {
		if cmd.name == name {
			cmd.flags.Parse(flag.Args()[1:])
			cmd.run()
			return
		}
	}
	fmt.Fprintf(os.Stderr, "unknown mode %q\n\n", name)
	usage()
	os.Exit(2)
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <mode> [flags] <args>\n\nmodes:\n", os.Args[0])
	cmds := append([]subcommand(nil), subcommands...)
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].name < cmds[j].name })
	for _, cmd := range cmds {
		fmt.Fprintf(os.Stderr, "  %-11s %s\n", cmd.name, cmd.desc)
	}
	fmt.Fprintf(os.Stderr, "\nRun \"%s <mode> -h\" for the flags of each mode.\n", os.Args[0])
}
