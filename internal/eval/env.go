package eval

import (
	"errors"
	"fmt"
	"sort"
)

var ErrNotDefined = errors.New("variable not defined")

// Environment maps variable names to their current value. It is owned by
// one Evaluator and lives as long as the session it belongs to.
type Environment struct {
	values map[string]Value
}

func NewEnvironment() *Environment {
	return &Environment{
		values: make(map[string]Value),
	}
}

func (e *Environment) Define(name string, value Value) {
	e.values[name] = value
}

func (e *Environment) Resolve(name string) (Value, error) {
	v, ok := e.values[name]
	if !ok {
		return Undefined{}, fmt.Errorf("%s: %w", name, ErrNotDefined)
	}
	return v, nil
}

// Names returns the defined variable names in sorted order.
func (e *Environment) Names() []string {
	names := make([]string, 0, len(e.values))
	for name := range e.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (e *Environment) Len() int {
	return len(e.values)
}
