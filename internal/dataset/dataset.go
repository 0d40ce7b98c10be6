// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dataset reads columnar numeric data from text, CSV and JSON
// files or standard input, and prepares it for binning: row slicing,
// boolean filter masks and weight validation.
package dataset

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// A Dataset is a set of equal-length named columns.
type Dataset struct {
	Names []string
	Cols  [][]float64
}

// An IndexError reports a column index outside the dataset.
type IndexError struct {
	Index int
	N     int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("dataset index %d out of range (file has %d datasets)", e.Index, e.N)
}

// A ParseError reports unparseable input data.
type ParseError struct {
	Path string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Col returns column i and its name.
func (d *Dataset) Col(i int) ([]float64, string, error) {
	if i < 0 || i >= len(d.Cols) {
		return nil, "", &IndexError{i, len(d.Cols)}
	}
	return d.Cols[i], d.Names[i], nil
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	if len(d.Cols) == 0 {
		return 0
	}
	return len(d.Cols[0])
}

// A Slice selects rows [Start, End) with the given stride. A negative
// Start or End counts from just past the last row, so {0, -1, 1}
// selects everything.
type Slice struct {
	Start, End, Step int
}

// Apply returns the row selection over all columns of d.
func (s Slice) Apply(d *Dataset) *Dataset {
	n := d.Len()
	start, end := s.Start, s.End
	if start < 0 {
		start += n + 1
	}
	if end < 0 {
		end += n + 1
	}
	if start < 0 {
		start = 0
	}
	if end > n {
		end = n
	}
	step := s.Step
	if step < 1 {
		step = 1
	}

	out := &Dataset{Names: d.Names}
	for _, col := range d.Cols {
		var sel []float64
		for i := start; i < end; i += step {
			sel = append(sel, col[i])
		}
		out.Cols = append(out.Cols, sel)
	}
	return out
}

// Read reads the named file, or standard input if path is "-". The
// format is chosen by file extension (.csv, .json, anything else is
// plain text); stdinFormat ("text", "csv" or "json") selects it for
// standard input. delimiter applies to plain text only.
func Read(path, delimiter, stdinFormat string) (*Dataset, error) {
	var r io.Reader
	format := stdinFormat
	if path == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
		switch strings.ToLower(filepath.Ext(path)) {
		case ".hdf5", ".h5":
			return nil, fmt.Errorf("%s: HDF5 input is not supported; convert to text, CSV or JSON", path)
		case ".csv":
			format = "csv"
		case ".json":
			format = "json"
		default:
			format = "text"
		}
	}

	var d *Dataset
	var err error
	switch format {
	case "csv":
		d, err = readCSV(path, r)
	case "json":
		d, err = readJSON(path, r)
	case "text", "":
		d, err = readText(path, r, delimiter)
	default:
		return nil, fmt.Errorf("unknown input format %q", format)
	}
	if err != nil {
		return nil, err
	}
	if err := checkLengths(path, d); err != nil {
		return nil, err
	}
	return d, nil
}

// readText reads whitespace- or delimiter-separated columns. The first
// non-empty line may be a "#"-prefixed header naming the columns;
// otherwise columns are named dataset0, dataset1, and so on.
func readText(path string, r io.Reader, delimiter string) (*Dataset, error) {
	split := func(s string) []string {
		if strings.TrimSpace(delimiter) == "" {
			return strings.Fields(s)
		}
		var out []string
		for _, f := range strings.Split(s, delimiter) {
			f = strings.TrimSpace(f)
			if f != "" {
				out = append(out, f)
			}
		}
		return out
	}

	d := &Dataset{}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	lineno := 0
	for sc.Scan() {
		lineno++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			// The first comment line is the header.
			if d.Names == nil && len(d.Cols) == 0 {
				d.Names = split(strings.TrimLeft(line, "# "))
			}
			continue
		}
		fields := split(line)
		if d.Cols == nil {
			d.Cols = make([][]float64, len(fields))
		}
		if len(fields) != len(d.Cols) {
			return nil, &ParseError{path, lineno,
				fmt.Errorf("got %d columns, want %d", len(fields), len(d.Cols))}
		}
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, &ParseError{path, lineno, err}
			}
			d.Cols[i] = append(d.Cols[i], v)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	fillNames(d)
	return d, nil
}

// readCSV reads comma-separated columns. If the first record has any
// non-numeric field it is taken as the header.
func readCSV(path string, r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	d := &Dataset{}
	for ri, rec := range records {
		if ri == 0 {
			if header := !allNumeric(rec); header {
				for _, name := range rec {
					d.Names = append(d.Names, strings.TrimSpace(name))
				}
				d.Cols = make([][]float64, len(rec))
				continue
			}
			d.Cols = make([][]float64, len(rec))
		}
		if len(rec) != len(d.Cols) {
			return nil, &ParseError{path, ri + 1,
				fmt.Errorf("got %d columns, want %d", len(rec), len(d.Cols))}
		}
		for i, f := range rec {
			v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err != nil {
				return nil, &ParseError{path, ri + 1, err}
			}
			d.Cols[i] = append(d.Cols[i], v)
		}
	}
	fillNames(d)
	return d, nil
}

// readJSON reads either an object mapping column names to value
// arrays, or an array of equal-length row arrays.
func readJSON(path string, r io.Reader) (*Dataset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var byName map[string][]float64
	if err := json.Unmarshal(data, &byName); err == nil {
		d := &Dataset{}
		// Deterministic column order.
		for name := range byName {
			d.Names = append(d.Names, name)
		}
		sort.Strings(d.Names)
		for _, name := range d.Names {
			d.Cols = append(d.Cols, byName[name])
		}
		return d, nil
	}

	var rows [][]float64
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, &ParseError{path, 1, err}
	}
	d := &Dataset{}
	for ri, row := range rows {
		if ri == 0 {
			d.Cols = make([][]float64, len(row))
		}
		if len(row) != len(d.Cols) {
			return nil, &ParseError{path, ri + 1,
				fmt.Errorf("got %d columns, want %d", len(row), len(d.Cols))}
		}
		for i, v := range row {
			d.Cols[i] = append(d.Cols[i], v)
		}
	}
	fillNames(d)
	return d, nil
}

func fillNames(d *Dataset) {
	for i := len(d.Names); i < len(d.Cols); i++ {
		d.Names = append(d.Names, fmt.Sprintf("dataset%d", i))
	}
	d.Names = d.Names[:len(d.Cols)]
}

func allNumeric(fields []string) bool {
	for _, f := range fields {
		if _, err := strconv.ParseFloat(strings.TrimSpace(f), 64); err != nil {
			return false
		}
	}
	return true
}

func checkLengths(path string, d *Dataset) error {
	if len(d.Cols) == 0 {
		return fmt.Errorf("no datasets found in %s", path)
	}
	n := len(d.Cols[0])
	for i, col := range d.Cols {
		if len(col) != n {
			return fmt.Errorf("%s: dataset %s has %d entries, want %d",
				path, d.Names[i], len(col), n)
		}
	}
	return nil
}

// ApplyFilters drops every row for which any filter column is zero.
// All columns and filters must have equal length. Filtering away every
// row is an error.
func ApplyFilters(cols [][]float64, filters [][]float64) ([][]float64, error) {
	if len(filters) == 0 {
		return cols, nil
	}
	n := len(filters[0])
	for _, f := range filters {
		if len(f) != n {
			return nil, fmt.Errorf("filter datasets have unequal lengths")
		}
	}
	keep := make([]bool, n)
	for i := range keep {
		keep[i] = true
		for _, f := range filters {
			if f[i] == 0 {
				keep[i] = false
				break
			}
		}
	}

	out := make([][]float64, len(cols))
	for ci, col := range cols {
		if len(col) != n {
			return nil, fmt.Errorf(
				"attempted to apply a filter of length %d to a dataset of length %d",
				n, len(col))
		}
		for i, v := range col {
			if keep[i] {
				out[ci] = append(out[ci], v)
			}
		}
	}
	if len(out) > 0 && len(out[0]) == 0 {
		return nil, fmt.Errorf("no data points left after applying filters")
	}
	return out, nil
}

// CheckWeights validates a weights column: negative weights are not
// allowed, and at least one weight must be positive.
func CheckWeights(w []float64, name string) error {
	extra := ""
	if name != "" {
		extra = fmt.Sprintf(" (weights dataset: %s)", name)
	}
	anyPositive := false
	for _, v := range w {
		if v < 0 {
			return fmt.Errorf("negative weights are not allowed%s", extra)
		}
		if v > 0 {
			anyPositive = true
		}
	}
	if !anyPositive {
		return fmt.Errorf("found no weights greater than zero%s", extra)
	}
	return nil
}
