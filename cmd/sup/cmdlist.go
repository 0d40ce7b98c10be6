// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/aclements/sup/internal/dataset"
)

var cmdListFlags = flag.NewFlagSet(os.Args[0]+" list", flag.ExitOnError)

var listOpts struct {
	delimiter   string
	stdinFormat string
}

func init() {
	f := cmdListFlags
	f.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s list [flags] <input file>\n", os.Args[0])
		f.PrintDefaults()
	}
	f.StringVar(&listOpts.delimiter, "delimiter", " ", "column `delimiter` for text input files")
	f.StringVar(&listOpts.stdinFormat, "stdin-format", "text", "input `format` when reading from \"-\": text, csv or json")
	registerSubcommand("list", "list dataset names and indices", cmdList, f)
}

func cmdList() {
	f := cmdListFlags
	if f.NArg() != 1 {
		f.Usage()
		os.Exit(2)
	}
	d, err := dataset.Read(f.Arg(0), listOpts.delimiter, listOpts.stdinFormat)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("Index \t Dataset")
	fmt.Println("----------------")
	for i, name := range d.Names {
		fmt.Printf("%d \t %s\n", i, name)
	}
}
