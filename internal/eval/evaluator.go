// Package eval walks a parsed Jolt program and produces its results.
package eval

import (
	"jolt/internal/parser"
)

// Evaluator holds the runtime state of one interpreter session. A REPL
// reuses a single Evaluator across lines so variables persist.
type Evaluator struct {
	env *Environment
}

// New returns an Evaluator over env. A nil env gets a fresh Environment.
func New(env *Environment) *Evaluator {
	if env == nil {
		env = NewEnvironment()
	}
	return &Evaluator{env: env}
}

func (e *Evaluator) Env() *Environment {
	return e.env
}

// EmitSource parses src and evaluates it. A syntax error aborts the whole
// unit and leaves the environment untouched.
func (e *Evaluator) EmitSource(src string) ([]Result, error) {
	prog, err := parser.Parse(src)
	if err != nil {
		return nil, err
	}
	return e.Evaluate(prog), nil
}

// EmitFile is EmitSource with file named in diagnostics.
func (e *Evaluator) EmitFile(src, file string) ([]Result, error) {
	prog, err := parser.ParseFile(src, file)
	if err != nil {
		return nil, err
	}
	return e.Evaluate(prog), nil
}

// Evaluate runs every top-level statement in order. Buffers from if
// statements are flattened into the returned sequence and suppressed
// results are dropped.
func (e *Evaluator) Evaluate(prog *parser.Program) []Result {
	var results []Result
	if prog == nil || prog.Body == nil {
		return results
	}
	for _, stmt := range prog.Body.Body {
		r := e.Statement(stmt)
		switch r.Kind {
		case Suppressed:
		case Buffered:
			for _, inner := range r.Buffer {
				if !inner.IsSuppressed() {
					results = append(results, inner)
				}
			}
		default:
			results = append(results, r)
		}
	}
	return results
}

func (e *Evaluator) Statement(stmt parser.Stmt) Result {
	switch s := stmt.(type) {
	case *parser.VariableAssignment:
		e.assign(s)
		return suppressed
	case *parser.Output:
		return displayable(e.operand(s.Value))
	case *parser.Comment:
		return suppressed
	case *parser.IfStatement:
		if !Truthy(e.Expression(s.Condition)) {
			return suppressed
		}
		return e.block(s.Body)
	case *parser.Block:
		return e.block(s)
	case parser.Expr:
		return plain(e.Expression(s))
	default:
		return plain(Undefined{})
	}
}

// block evaluates body in order. Nested buffers are spliced so that a
// buffer never contains another one.
func (e *Evaluator) block(body *parser.Block) Result {
	buf := []Result{}
	if body == nil {
		return Result{Kind: Buffered, Buffer: buf}
	}
	for _, stmt := range body.Body {
		r := e.Statement(stmt)
		switch r.Kind {
		case Suppressed:
		case Buffered:
			buf = append(buf, r.Buffer...)
		default:
			buf = append(buf, r)
		}
	}
	return Result{Kind: Buffered, Buffer: buf}
}

func (e *Evaluator) Expression(expr parser.Expr) Value {
	switch x := expr.(type) {
	case *parser.Number:
		return Number(x.Value)
	case *parser.String:
		return String(x.Value)
	case *parser.Identifier:
		v, _ := e.env.Resolve(x.Name)
		return v
	case *parser.BooleanExpression:
		return compare(x.Operator, e.Expression(x.Left), e.Expression(x.Right))
	case *parser.BinaryExpression:
		return binary(x.Operator, e.Expression(x.Left), e.Expression(x.Right))
	case *parser.Type:
		return String(e.Expression(x.Value).Type())
	case *parser.TernaryOperator:
		if Truthy(e.Expression(x.Condition)) {
			return e.Expression(x.True)
		}
		return e.Expression(x.False)
	case *parser.VariableAssignment:
		e.assign(x)
		return Undefined{}
	default:
		return Undefined{}
	}
}

// operand evaluates the value of an out statement. Statement-only nodes
// carry no value and are not evaluated.
func (e *Evaluator) operand(stmt parser.Stmt) Value {
	if expr, ok := stmt.(parser.Expr); ok {
		return e.Expression(expr)
	}
	return Undefined{}
}

// assign stores the right-hand side under the target's name. Compound
// operators combine with the stored value when there is one. A target
// that is not an identifier names no variable and nothing is stored.
func (e *Evaluator) assign(a *parser.VariableAssignment) {
	value := e.Statement(a.Value).Unwrap()
	target, ok := a.Target.(*parser.Identifier)
	if !ok {
		return
	}
	if op := compoundOperator(a.Operator); op != "" {
		if stored, err := e.env.Resolve(target.Name); err == nil && isDefined(stored) {
			value = binary(op, stored, value)
		}
	}
	e.env.Define(target.Name, value)
}
