package expr

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"
)

// Protect CEL environment creation and compilation from concurrent access.
var celMutex sync.Mutex

var ErrNotBool = errors.New("expression must return a boolean")

// Environment provides a thread-safe wrapper around a [*cel.Env].
type Environment struct {
	env *cel.Env
}

// NewEnvironment creates a new [Environment] declaring the slot variables.
func NewEnvironment(opts ...cel.EnvOption) (*Environment, error) {
	env, err := createEnvironment(opts...)
	if err != nil {
		return nil, err
	}

	return &Environment{env: env}, nil
}

// MustNewEnvironment creates a new [Environment] and panics on error.
func MustNewEnvironment(opts ...cel.EnvOption) *Environment {
	env, err := NewEnvironment(opts...)
	if err != nil {
		panic(err)
	}

	return env
}

func createEnvironment(opts ...cel.EnvOption) (*cel.Env, error) {
	celMutex.Lock()
	defer celMutex.Unlock()

	opts = append(opts,
		cel.Variable("index", cel.IntType),
		cel.Variable("count", cel.IntType),
		cel.Variable("columns", cel.IntType),
		cel.Variable("row", cel.IntType),
		cel.Variable("col", cel.IntType),
		cel.Variable("label", cel.StringType),
		cel.Lib(&lib{}),
	)

	celEnv, err := cel.NewEnv(opts...)
	if err != nil {
		return nil, fmt.Errorf("create CEL environment: %w", err)
	}

	return celEnv, nil
}

// Compile compiles a CEL expression and returns a program.
//
//nolint:ireturn // Following CEL's function signature.
func (e *Environment) Compile(expression string) (cel.Program, error) {
	celMutex.Lock()
	defer celMutex.Unlock()

	ast, issues := e.env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile expression: %w", issues.Err())
	}

	program, err := e.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("create program: %w", err)
	}

	return program, nil
}

// Selector is a compiled boolean slot expression.
type Selector struct {
	program    cel.Program
	expression string
}

// NewSelector compiles expression into a [Selector]. The expression must
// have a boolean result type.
func (e *Environment) NewSelector(expression string) (*Selector, error) {
	celMutex.Lock()
	defer celMutex.Unlock()

	ast, issues := e.env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile %q: %w", expression, issues.Err())
	}

	if out := ast.OutputType(); !out.IsExactType(cel.BoolType) && !out.IsExactType(cel.DynType) {
		return nil, fmt.Errorf("compile %q: %w, got %s", expression, ErrNotBool, out)
	}

	program, err := e.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("create program: %w", err)
	}

	return &Selector{program: program, expression: expression}, nil
}

// String returns the source expression.
func (s *Selector) String() string {
	return s.expression
}

// Slot describes the item a [Selector] is evaluated against.
type Slot struct {
	Label   string
	Index   int
	Count   int
	Columns int
}

// Matches evaluates the selector for a single slot.
func (s *Selector) Matches(ctx context.Context, slot Slot) (bool, error) {
	columns := max(slot.Columns, 1)

	out, _, err := s.program.ContextEval(ctx, map[string]any{
		"index":   slot.Index,
		"count":   slot.Count,
		"columns": slot.Columns,
		"row":     slot.Index / columns,
		"col":     slot.Index % columns,
		"label":   slot.Label,
	})
	if err != nil {
		return false, fmt.Errorf("evaluate %q for index %d: %w", s.expression, slot.Index, err)
	}

	b, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("evaluate %q for index %d: %w, got %T", s.expression, slot.Index, ErrNotBool, out.Value())
	}

	return b, nil
}

// Select returns every index in [0, count) that the selector matches.
// labels may be shorter than count.
func (s *Selector) Select(ctx context.Context, count, columns int, labels []string) ([]int, error) {
	var out []int

	for i := range count {
		slot := Slot{Index: i, Count: count, Columns: columns}
		if i < len(labels) {
			slot.Label = labels[i]
		}

		ok, err := s.Matches(ctx, slot)
		if err != nil {
			return nil, err
		}

		if ok {
			out = append(out, i)
		}
	}

	return out, nil
}
