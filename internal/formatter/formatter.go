// Package formatter prints a Program back as canonical Jolt source.
// Formatting a program and parsing the output yields the same tree.
package formatter

import (
	"strconv"
	"strings"

	"jolt/internal/parser"
)

// Binding levels, loosest first. They mirror the parser's precedence.
const (
	levelAssignment = iota
	levelTernary
	levelType
	levelComparison
	levelAdditive
	levelMultiplicative
	levelLiteral
)

type Formatter struct {
	indent    int
	indentStr string
	output    strings.Builder
	lineBreak string
}

func NewFormatter() *Formatter {
	return &Formatter{
		indent:    0,
		indentStr: "    ", // 4 spaces
		lineBreak: "\n",
	}
}

// Format is a shorthand for NewFormatter().Format(prog).
func Format(prog *parser.Program) string {
	return NewFormatter().Format(prog)
}

func (f *Formatter) Format(prog *parser.Program) string {
	f.output.Reset()
	f.indent = 0

	if prog != nil && prog.Body != nil {
		f.formatBlock(prog.Body)
	}
	return f.output.String()
}

func (f *Formatter) writeIndent() {
	for i := 0; i < f.indent; i++ {
		f.output.WriteString(f.indentStr)
	}
}

func (f *Formatter) formatBlock(block *parser.Block) {
	for _, stmt := range block.Body {
		f.writeIndent()
		f.formatStmt(stmt)
		if needsTerminator(stmt) && !incomplete(stmt) {
			f.output.WriteString(";")
		}
		f.output.WriteString(f.lineBreak)
	}
}

// needsTerminator reports whether stmt is closed with ';'. Comments and
// blocks end themselves.
func needsTerminator(stmt parser.Stmt) bool {
	switch stmt.(type) {
	case *parser.Comment, *parser.IfStatement:
		return false
	default:
		return true
	}
}

// incomplete reports whether stmt ran into the end of input. Its last
// operand is then an empty placeholder and a terminator would be read
// back as one more token.
func incomplete(stmt parser.Stmt) bool {
	switch s := stmt.(type) {
	case *parser.Unrecognized:
		return s.Text == ""
	case *parser.Output:
		return incomplete(s.Value)
	case *parser.VariableAssignment:
		return incomplete(s.Value)
	case *parser.Type:
		return incomplete(s.Value)
	case *parser.BinaryExpression:
		return incomplete(s.Right)
	case *parser.BooleanExpression:
		return incomplete(s.Right)
	case *parser.TernaryOperator:
		return incomplete(s.False)
	default:
		return false
	}
}

// keywords are only recognized when followed by a space.
var keywords = map[string]bool{"out": true, "type": true, "if": true}

func (f *Formatter) formatStmt(stmt parser.Stmt) {
	switch s := stmt.(type) {
	case *parser.Comment:
		f.output.WriteString(s.Text)

	case *parser.IfStatement:
		f.output.WriteString("if ")
		f.formatExpr(s.Condition, levelAssignment)
		f.output.WriteString(" {")
		f.output.WriteString(f.lineBreak)

		f.indent++
		if s.Body != nil {
			f.formatBlock(s.Body)
		}
		f.indent--

		f.writeIndent()
		f.output.WriteString("}")

	case *parser.Output:
		f.output.WriteString("out ")
		f.formatOperand(s.Value, levelTernary)

	case *parser.VariableAssignment:
		f.formatAssignment(s)

	case parser.Expr:
		f.formatExpr(s, levelAssignment)
	}
}

// formatOperand prints a statement-or-expression operand, wrapping
// expressions that bind looser than min.
func (f *Formatter) formatOperand(stmt parser.Stmt, min int) {
	if expr, ok := stmt.(parser.Expr); ok {
		f.formatExpr(expr, min)
		return
	}
	f.formatStmt(stmt)
}

// formatAssignment prints `target op value`. A chained target comes out
// parenthesised; the parser reads `(a = b) = c` into the same tree.
func (f *Formatter) formatAssignment(a *parser.VariableAssignment) {
	f.formatOperand(a.Target, levelTernary)
	f.output.WriteString(" ")
	f.output.WriteString(a.Operator)
	f.output.WriteString(" ")
	f.formatOperand(a.Value, levelTernary)
}

func (f *Formatter) formatExpr(expr parser.Expr, min int) {
	level := levelOf(expr)
	if level < min {
		f.output.WriteString("(")
		defer f.output.WriteString(")")
	}

	switch e := expr.(type) {
	case *parser.VariableAssignment:
		f.formatAssignment(e)
	case *parser.TernaryOperator:
		f.formatExpr(e.Condition, levelType)
		if incomplete(e.True) {
			f.output.WriteString(" ?")
			return
		}
		f.output.WriteString(" ? ")
		f.formatExpr(e.True, levelType)
		f.output.WriteString(" : ")
		f.formatExpr(e.False, levelType)
	case *parser.Type:
		f.output.WriteString("type ")
		f.formatExpr(e.Value, levelComparison)
	case *parser.BooleanExpression:
		f.formatExpr(e.Left, levelComparison)
		f.output.WriteString(" " + e.Operator + " ")
		f.formatExpr(e.Right, levelAdditive)
	case *parser.BinaryExpression:
		f.formatExpr(e.Left, level)
		f.output.WriteString(" " + e.Operator + " ")
		f.formatExpr(e.Right, level+1)
	case *parser.Number:
		f.output.WriteString(strconv.FormatFloat(e.Value, 'f', -1, 64))
	case *parser.String:
		f.output.WriteString(`"` + e.Value + `"`)
	case *parser.Identifier:
		if keywords[e.Name] {
			f.output.WriteString("(" + e.Name + ")")
		} else {
			f.output.WriteString(e.Name)
		}
	case *parser.Unrecognized:
		f.output.WriteString(e.Text)
		if keywords[e.Text] {
			f.output.WriteString(" ")
		}
	}
}

func levelOf(expr parser.Expr) int {
	switch e := expr.(type) {
	case *parser.VariableAssignment:
		return levelAssignment
	case *parser.TernaryOperator:
		return levelTernary
	case *parser.Type:
		return levelType
	case *parser.BooleanExpression:
		return levelComparison
	case *parser.BinaryExpression:
		if e.Operator == "*" || e.Operator == "/" {
			return levelMultiplicative
		}
		return levelAdditive
	default:
		return levelLiteral
	}
}
