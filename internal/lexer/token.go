package lexer

import "fmt"

// Kind identifies the class of a token.
type Kind int

const (
	Unknown Kind = iota
	EndOfLine
	EndOfInput
	Comment
	Number
	String
	Identifier
	BinaryOperator
	Equals
	OpenParen
	ClosedParen
	OpenBlock
	CloseBlock
	TernaryQuestion
	TernaryColon
	Comparison
	Output
	Type
	If
)

var kindNames = map[Kind]string{
	Unknown:         "UNKNOWN",
	EndOfLine:       "EOL",
	EndOfInput:      "EOF",
	Comment:         "COMMENT",
	Number:          "NUMBER",
	String:          "STRING",
	Identifier:      "IDENT",
	BinaryOperator:  "BINOP",
	Equals:          "EQUALS",
	OpenParen:       "(",
	ClosedParen:     ")",
	OpenBlock:       "{",
	CloseBlock:      "}",
	TernaryQuestion: "?",
	TernaryColon:    ":",
	Comparison:      "COMPARISON",
	Output:          "OUT",
	Type:            "TYPE",
	If:              "IF",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Position locates a token in the source. Line and Column are 1-based.
type Position struct {
	Offset int
	Line   int
	Column int
}

type Token struct {
	Text string
	Kind Kind
	Position
}

func (t Token) String() string {
	return fmt.Sprintf("[%s] '%s'", t.Kind, t.Text)
}
