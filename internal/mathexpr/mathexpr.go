// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mathexpr compiles the scalar math expressions accepted on the
// command line: the function definitions for the graph modes and the
// per-column transforms (e.g. "log10(x)").
//
// The grammar is expr-lang arithmetic plus a fixed set of math
// functions and constants. It is deliberately not a general scripting
// surface: the only inputs are the named coordinate variables.
package mathexpr

import (
	"fmt"
	"math"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Func is a compiled scalar expression over named float64 variables.
type Func struct {
	src     string
	vars    []string
	program *vm.Program
}

// baseEnv returns the fixed function and constant namespace available
// inside expressions.
func baseEnv() map[string]interface{} {
	return map[string]interface{}{
		"pi":    math.Pi,
		"e":     math.E,
		"abs":   math.Abs,
		"sqrt":  math.Sqrt,
		"cbrt":  math.Cbrt,
		"exp":   math.Exp,
		"log":   math.Log,
		"log2":  math.Log2,
		"log10": math.Log10,
		"sin":   math.Sin,
		"cos":   math.Cos,
		"tan":   math.Tan,
		"asin":  math.Asin,
		"acos":  math.Acos,
		"atan":  math.Atan,
		"atan2": math.Atan2,
		"sinh":  math.Sinh,
		"cosh":  math.Cosh,
		"tanh":  math.Tanh,
		"floor": math.Floor,
		"ceil":  math.Ceil,
		"round": math.Round,
		"pow":   math.Pow,
		"mod":   math.Mod,
		"hypot": math.Hypot,
		"gamma": math.Gamma,
		"erf":   math.Erf,
		"min":   math.Min,
		"max":   math.Max,
	}
}

// Compile compiles src as an expression over the given variables.
func Compile(src string, vars ...string) (*Func, error) {
	env := baseEnv()
	for _, v := range vars {
		env[v] = float64(0)
	}
	program, err := expr.Compile(src, expr.Env(env))
	if err != nil {
		return nil, fmt.Errorf("bad expression %q: %v", src, err)
	}
	return &Func{src: src, vars: vars, program: program}, nil
}

// Eval evaluates the expression with the variables bound, in order, to
// vals. A non-numeric result or an evaluation failure (such as integer
// division by zero) is reported as an error; NaN and Inf results are
// returned as-is for the caller to treat as empty cells.
func (f *Func) Eval(vals ...float64) (float64, error) {
	if len(vals) != len(f.vars) {
		return 0, fmt.Errorf("expression %q: got %d values for %d variables", f.src, len(vals), len(f.vars))
	}
	env := baseEnv()
	for i, v := range f.vars {
		env[v] = vals[i]
	}
	out, err := expr.Run(f.program, env)
	if err != nil {
		return 0, err
	}
	switch v := out.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case float32:
		return float64(v), nil
	}
	return 0, fmt.Errorf("expression %q: non-numeric result %T", f.src, out)
}

// String returns the source text of the expression.
func (f *Func) String() string {
	return f.src
}
