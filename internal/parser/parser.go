// Package parser turns Jolt tokens into a Program.
//
// Precedence, lowest first:
//
//	comment, assignment, out, if, ternary, type, comparison,
//	additive, multiplicative, literal
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"jolt/internal/errors"
	"jolt/internal/lexer"
)

type Parser struct {
	tokens      []lexer.Token
	current     int
	file        string
	sourceLines []string // Source lines for error reporting
}

// Parse tokenizes and parses source.
func Parse(source string) (*Program, error) {
	return NewParserWithSource(lexer.Tokenize(source), source, "").Parse()
}

// ParseFile is like Parse but names file in diagnostics.
func ParseFile(source, file string) (*Program, error) {
	return NewParserWithSource(lexer.Tokenize(source), source, file).Parse()
}

func NewParser(tokens []lexer.Token) *Parser {
	if n := len(tokens); n == 0 || tokens[n-1].Kind != lexer.EndOfInput {
		tokens = append(tokens, lexer.Token{Kind: lexer.EndOfInput})
	}
	return &Parser{
		tokens: tokens,
	}
}

func NewParserWithSource(tokens []lexer.Token, source string, file string) *Parser {
	p := NewParser(tokens)
	p.file = file
	p.sourceLines = strings.Split(source, "\n")
	return p
}

// Parse consumes every token. A syntax error aborts the whole unit: no
// partial program is returned.
func (p *Parser) Parse() (prog *Program, err error) {
	defer func() {
		if r := recover(); r != nil {
			je, ok := r.(*errors.JoltError)
			if !ok {
				panic(r)
			}
			prog, err = nil, je
		}
	}()

	body := &Block{}
	for !p.isAtEnd() {
		if p.match(lexer.EndOfLine) {
			continue
		}
		body.Body = append(body.Body, p.statement())
		p.match(lexer.EndOfLine)
	}
	return &Program{Body: body}, nil
}

func (p *Parser) statement() Stmt {
	if p.check(lexer.Comment) {
		return &Comment{Text: p.advance().Text}
	}
	return p.assignment()
}

// assignment wraps everything parsed so far as the target of each
// assignment operator it meets.
func (p *Parser) assignment() Stmt {
	left := p.output()
	for p.check(lexer.Equals) {
		operator := p.advance().Text
		value := p.output()
		left = &VariableAssignment{Target: left, Operator: operator, Value: value}
	}
	return left
}

func (p *Parser) output() Stmt {
	if p.match(lexer.Output) {
		return &Output{Value: p.ifStatement()}
	}
	return p.ifStatement()
}

// ifStatement parses `if cond { ... }`. Without a block the condition is
// returned as a plain expression statement.
func (p *Parser) ifStatement() Stmt {
	if !p.match(lexer.If) {
		return p.ternary()
	}
	condition := p.expression()
	if !p.match(lexer.OpenBlock) {
		return condition
	}

	body := &Block{}
	for !p.check(lexer.CloseBlock) {
		if p.isAtEnd() {
			panic(p.errorAt(p.peek(), "Expect '}' after if body"))
		}
		if p.match(lexer.EndOfLine) {
			continue
		}
		body.Body = append(body.Body, p.statement())
		p.match(lexer.EndOfLine)
	}
	p.advance()
	return &IfStatement{Condition: condition, Body: body}
}

// expression parses from the assignment level down and requires the
// result to yield a value.
func (p *Parser) expression() Expr {
	start := p.peek()
	stmt := p.assignment()
	expr, ok := stmt.(Expr)
	if !ok {
		panic(p.errorAt(start, fmt.Sprintf("Expect expression (got '%s')", describe(start))))
	}
	return expr
}

func (p *Parser) ternary() Expr {
	condition := p.typeExpr()
	if !p.match(lexer.TernaryQuestion) {
		return condition
	}
	ifTrue := p.typeExpr()
	p.advance() // ':' is taken on trust
	ifFalse := p.typeExpr()
	return &TernaryOperator{Condition: condition, True: ifTrue, False: ifFalse}
}

func (p *Parser) typeExpr() Expr {
	if p.match(lexer.Type) {
		return &Type{Value: p.comparison()}
	}
	return p.comparison()
}

func (p *Parser) comparison() Expr {
	left := p.additive()
	for p.check(lexer.Comparison) {
		operator := p.advance().Text
		right := p.additive()
		left = &BooleanExpression{Left: left, Operator: operator, Right: right}
	}
	return left
}

func (p *Parser) additive() Expr {
	left := p.multiplicative()
	for p.checkOperator("+", "-") {
		operator := p.advance().Text
		right := p.multiplicative()
		left = &BinaryExpression{Left: left, Operator: operator, Right: right}
	}
	return left
}

func (p *Parser) multiplicative() Expr {
	left := p.literal()
	for p.checkOperator("*", "/") {
		operator := p.advance().Text
		right := p.literal()
		left = &BinaryExpression{Left: left, Operator: operator, Right: right}
	}
	return left
}

func (p *Parser) literal() Expr {
	tok := p.peek()
	switch tok.Kind {
	case lexer.Identifier:
		p.advance()
		return &Identifier{Name: tok.Text}
	case lexer.Number:
		p.advance()
		value, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			panic(p.errorAt(tok, fmt.Sprintf("Invalid number '%s'", tok.Text)))
		}
		return &Number{Value: value}
	case lexer.OpenParen:
		p.advance()
		expr := p.expression()
		p.consume(lexer.ClosedParen, "Expect ')' after expression")
		return expr
	case lexer.String:
		p.advance()
		if len(tok.Text) < 2 || !strings.HasSuffix(tok.Text, `"`) {
			panic(p.errorAt(tok, "Unterminated string literal"))
		}
		return &String{Value: tok.Text[1 : len(tok.Text)-1]}
	case lexer.Unknown:
		panic(p.errorAt(tok, fmt.Sprintf("Unexpected token '%s'", tok.Text)))
	default:
		p.advance()
		return &Unrecognized{Text: tok.Text}
	}
}

// --- Utility methods ---

func (p *Parser) match(k lexer.Kind) bool {
	if p.check(k) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) consume(k lexer.Kind, msg string) lexer.Token {
	if p.check(k) {
		return p.advance()
	}
	tok := p.peek()
	panic(p.errorAt(tok, fmt.Sprintf("%s (got '%s')", msg, describe(tok))))
}

func (p *Parser) check(k lexer.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) checkOperator(ops ...string) bool {
	tok := p.peek()
	if tok.Kind != lexer.BinaryOperator {
		return false
	}
	for _, op := range ops {
		if tok.Text == op {
			return true
		}
	}
	return false
}

func (p *Parser) advance() lexer.Token {
	tok := p.peek()
	if !p.isAtEnd() {
		p.current++
	}
	return tok
}

func (p *Parser) peek() lexer.Token {
	return p.tokens[p.current]
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Kind == lexer.EndOfInput
}

func (p *Parser) errorAt(tok lexer.Token, msg string) *errors.JoltError {
	err := errors.NewSyntaxError(msg, tok.Line, tok.Column).WithFile(p.file)
	if p.sourceLines != nil && tok.Line > 0 && tok.Line <= len(p.sourceLines) {
		err = err.WithSource(p.sourceLines[tok.Line-1])
	}
	return err
}

func describe(tok lexer.Token) string {
	if tok.Kind == lexer.EndOfInput {
		return "end of input"
	}
	return tok.Text
}
