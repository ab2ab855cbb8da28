// Package script parses row store operation scripts and applies them.
//
// Two forms are accepted. The YAML form is a document with a steps list:
//
//	steps:
//	  - op: create
//	    count: 3
//	  - op: swap
//	    n: 0
//	    m: 2
//
// The line form has one step per line, arguments positional, # comments:
//
//	create 3
//	swap 0 2
package script

import (
	"errors"
	"fmt"
	"slices"

	"rowbench/internal/rowstore"
)

// ErrSyntax is wrapped by every parse error.
var ErrSyntax = errors.New("script syntax error")

// Op names a store operation.
type Op string

const (
	OpCreate      Op = "create"
	OpAppend      Op = "append"
	OpUpdate      Op = "update"
	OpSelect      Op = "select"
	OpDelete      Op = "delete"
	OpDeleteIndex Op = "delete-index"
	OpSwap        Op = "swap"
	OpClear       Op = "clear"
	OpRunLots     Op = "run-lots"
)

// Ops lists every known operation in documentation order.
var Ops = []Op{OpCreate, OpAppend, OpUpdate, OpSelect, OpDelete, OpDeleteIndex, OpSwap, OpClear, OpRunLots}

// Positions swapped by the benchmark's swap action when none are given.
const (
	DefaultSwapN = 1
	DefaultSwapM = 998
)

// Step is one resolved operation. Only the fields the Op uses are set.
type Step struct {
	Op     Op
	Count  int
	Stride int
	ID     rowstore.ID
	Index  int
	N, M   int
	// Line is the 1-based source line (line form) or step number (YAML form).
	Line int
}

func (s Step) String() string {
	switch s.Op {
	case OpCreate, OpAppend, OpRunLots:
		return fmt.Sprintf("%s %d", s.Op, s.Count)
	case OpUpdate:
		return fmt.Sprintf("%s %d", s.Op, s.Stride)
	case OpSelect, OpDelete:
		return fmt.Sprintf("%s %d", s.Op, s.ID)
	case OpDeleteIndex:
		return fmt.Sprintf("%s %d", s.Op, s.Index)
	case OpSwap:
		return fmt.Sprintf("%s %d %d", s.Op, s.N, s.M)
	default:
		return string(s.Op)
	}
}

// Script is an ordered list of steps.
type Script struct {
	Steps []Step
}

// Target is the set of store operations a script drives. *rowstore.Store
// and the traced wrapper both satisfy it.
type Target interface {
	Create(count int)
	RunLarge(count int)
	Append(count int) []*rowstore.Row
	UpdateEvery(stride int)
	Select(id rowstore.ID)
	DeleteRow(id rowstore.ID) bool
	DeleteByIndex(index int) error
	SwapRows(n, m int)
	Clear()
}

// Apply runs every step against t in order, stopping at the first error.
func (sc *Script) Apply(t Target) error {
	for _, st := range sc.Steps {
		if err := st.Apply(t); err != nil {
			return fmt.Errorf("step %d (%s): %w", st.Line, st, err)
		}
	}
	return nil
}

// Apply runs a single step.
func (s Step) Apply(t Target) error {
	switch s.Op {
	case OpCreate:
		t.Create(s.Count)
	case OpRunLots:
		t.RunLarge(s.Count)
	case OpAppend:
		t.Append(s.Count)
	case OpUpdate:
		t.UpdateEvery(s.Stride)
	case OpSelect:
		t.Select(s.ID)
	case OpDelete:
		t.DeleteRow(s.ID)
	case OpDeleteIndex:
		return t.DeleteByIndex(s.Index)
	case OpSwap:
		t.SwapRows(s.N, s.M)
	case OpClear:
		t.Clear()
	default:
		return fmt.Errorf("unknown op %q", s.Op)
	}
	return nil
}

// arg is one positional argument of an op. Required args have no default.
type arg struct {
	name string
	def  *int
	set  func(*Step, int)
}

func intp(v int) *int { return &v }

var opArgs = map[Op][]arg{
	OpCreate:      {{"count", intp(rowstore.DefaultCount), setCount}},
	OpAppend:      {{"count", intp(rowstore.DefaultCount), setCount}},
	OpRunLots:     {{"count", intp(rowstore.DefaultLargeCount), setCount}},
	OpUpdate:      {{"stride", intp(rowstore.DefaultStride), func(s *Step, v int) { s.Stride = v }}},
	OpSelect:      {{"id", nil, setID}},
	OpDelete:      {{"id", nil, setID}},
	OpDeleteIndex: {{"index", nil, func(s *Step, v int) { s.Index = v }}},
	OpSwap: {
		{"n", intp(DefaultSwapN), func(s *Step, v int) { s.N = v }},
		{"m", intp(DefaultSwapM), func(s *Step, v int) { s.M = v }},
	},
	OpClear: nil,
}

func setCount(s *Step, v int) { s.Count = v }
func setID(s *Step, v int)    { s.ID = rowstore.ID(v) }

// resolve builds a Step from an op name and its argument values by name.
// Missing optional args take their default.
func resolve(at where, op string, vals map[string]int) (Step, error) {
	o := Op(op)
	if !slices.Contains(Ops, o) {
		return Step{}, at.errorf("unknown op %q", op)
	}
	for name := range vals {
		if !slices.ContainsFunc(opArgs[o], func(a arg) bool { return a.name == name }) {
			return Step{}, at.errorf("%s: unexpected argument %s", op, name)
		}
	}
	st := Step{Op: o, Line: at.n}
	for _, a := range opArgs[o] {
		v, ok := vals[a.name]
		switch {
		case ok:
		case a.def != nil:
			v = *a.def
		default:
			return Step{}, at.errorf("%s: missing %s", op, a.name)
		}
		if a.name != "index" && a.name != "n" && a.name != "m" && v < 0 {
			return Step{}, at.errorf("%s: %s must not be negative", op, a.name)
		}
		a.set(&st, v)
	}
	return st, nil
}

// where locates a step in its source: a line of the line form or a step
// of the YAML form.
type where struct {
	unit string // "line" or "step"
	n    int
}

func atLine(n int) where { return where{unit: "line", n: n} }
func atStep(n int) where { return where{unit: "step", n: n} }

func (w where) errorf(format string, args ...any) error {
	return fmt.Errorf("%s %d: %s: %w", w.unit, w.n, fmt.Sprintf(format, args...), ErrSyntax)
}
