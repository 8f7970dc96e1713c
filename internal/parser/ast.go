package parser

// Stmt is any node that may stand as a statement.
type Stmt interface {
	stmtNode()
}

// Expr is a node that yields a value. Every expression is also a valid
// statement.
type Expr interface {
	Stmt
	exprNode()
}

// Program is the root of a parsed unit of source.
type Program struct {
	Body *Block
}

// Block is an ordered list of statements.
type Block struct {
	Body []Stmt
}

// VariableAssignment: x = expr, x += expr, ...
//
// Target is whatever was parsed left of the operator. Chained operators
// nest, so `a = b = c` has an assignment as its target.
type VariableAssignment struct {
	Target   Stmt
	Operator string
	Value    Stmt
}

// Output: out expr
type Output struct {
	Value Stmt
}

// Comment: <text>
type Comment struct {
	Text string
}

// IfStatement: if cond { body }
type IfStatement struct {
	Condition Expr
	Body      *Block
}

type Number struct {
	Value float64
}

// String holds the literal without its surrounding quotes.
type String struct {
	Value string
}

type Identifier struct {
	Name string
}

// BinaryExpression: a + b, a - b, a * b, a / b
type BinaryExpression struct {
	Left     Expr
	Operator string
	Right    Expr
}

// BooleanExpression: a < b, a > b, a == b
type BooleanExpression struct {
	Left     Expr
	Operator string
	Right    Expr
}

// TernaryOperator: cond ? a : b
type TernaryOperator struct {
	Condition Expr
	True      Expr
	False     Expr
}

// Type: type expr
type Type struct {
	Value Expr
}

// Unrecognized stands in for a token that cannot start an expression.
type Unrecognized struct {
	Text string
}

func (*Program) stmtNode()            {}
func (*Block) stmtNode()              {}
func (*VariableAssignment) stmtNode() {}
func (*Output) stmtNode()             {}
func (*Comment) stmtNode()            {}
func (*IfStatement) stmtNode()        {}
func (*Number) stmtNode()             {}
func (*String) stmtNode()             {}
func (*Identifier) stmtNode()         {}
func (*BinaryExpression) stmtNode()   {}
func (*BooleanExpression) stmtNode()  {}
func (*TernaryOperator) stmtNode()    {}
func (*Type) stmtNode()               {}
func (*Unrecognized) stmtNode()       {}

func (*VariableAssignment) exprNode() {}
func (*Number) exprNode()             {}
func (*String) exprNode()             {}
func (*Identifier) exprNode()         {}
func (*BinaryExpression) exprNode()   {}
func (*BooleanExpression) exprNode()  {}
func (*TernaryOperator) exprNode()    {}
func (*Type) exprNode()               {}
func (*Unrecognized) exprNode()       {}
