package lexer

import "strings"

// A classifier recognizes one token class at pos. It returns the token and
// the number of bytes consumed, or zero when src[pos:] does not start with
// its class. Classifiers only look at src and pos.
type classifier func(src string, pos int) (Token, int)

// classifiers is tried in order at every position; the first match wins.
// Several prefixes overlap (`<` comment vs comparison, `if ` vs an
// identifier, `+=` vs `+`), so the order is significant.
var classifiers = []classifier{
	classifyComment,
	classifyString,
	classifyNumber,
	classifyKeyword("out", Output),
	classifyKeyword("type", Type),
	classifyKeyword("if", If),
	classifyByte('?', TernaryQuestion),
	classifyByte(':', TernaryColon),
	classifyIdentifier,
	classifyBinaryOperator,
	classifyComparison,
	classifyByte('=', Equals),
	classifyByte('(', OpenParen),
	classifyByte(')', ClosedParen),
	classifyByte('{', OpenBlock),
	classifyByte('}', CloseBlock),
	classifyByte(';', EndOfLine),
}

// classifyComment consumes `<` through the first `>`. An unclosed `<` is
// not a comment, which lets it fall through to the comparison classifier.
func classifyComment(src string, pos int) (Token, int) {
	if src[pos] != '<' {
		return Token{}, 0
	}
	end := strings.IndexByte(src[pos+1:], '>')
	if end < 0 {
		return Token{}, 0
	}
	return emit(Comment, src[pos:pos+end+2])
}

// classifyString consumes a quoted string including both quotes. Without
// a closing quote the token runs to the end of input and keeps only its
// opening quote; the parser rejects it.
func classifyString(src string, pos int) (Token, int) {
	if src[pos] != '"' {
		return Token{}, 0
	}
	end := strings.IndexByte(src[pos+1:], '"')
	if end < 0 {
		return emit(String, src[pos:])
	}
	return emit(String, src[pos:pos+end+2])
}

// classifyNumber accepts digits and a single dot once a digit was seen.
func classifyNumber(src string, pos int) (Token, int) {
	i := pos
	dot := false
	for ; i < len(src); i++ {
		c := src[i]
		if isDigit(c) {
			continue
		}
		if c == '.' && !dot && i > pos {
			dot = true
			continue
		}
		break
	}
	if i == pos {
		return Token{}, 0
	}
	return emit(Number, src[pos:i])
}

// classifyKeyword matches word followed by one space. The space is
// consumed but is not part of the token text.
func classifyKeyword(word string, kind Kind) classifier {
	lit := word + " "
	return func(src string, pos int) (Token, int) {
		if !strings.HasPrefix(src[pos:], lit) {
			return Token{}, 0
		}
		return Token{Text: word, Kind: kind}, len(lit)
	}
}

func classifyByte(b byte, kind Kind) classifier {
	return func(src string, pos int) (Token, int) {
		if src[pos] != b {
			return Token{}, 0
		}
		return emit(kind, src[pos:pos+1])
	}
}

func classifyIdentifier(src string, pos int) (Token, int) {
	i := pos
	for i < len(src) && isLetter(src[i]) {
		i++
	}
	if i == pos {
		return Token{}, 0
	}
	return emit(Identifier, src[pos:i])
}

// classifyBinaryOperator turns `op=` into a compound assignment token.
func classifyBinaryOperator(src string, pos int) (Token, int) {
	switch src[pos] {
	case '+', '-', '*', '/':
	default:
		return Token{}, 0
	}
	if pos+1 < len(src) && src[pos+1] == '=' {
		return emit(Equals, src[pos:pos+2])
	}
	return emit(BinaryOperator, src[pos:pos+1])
}

func classifyComparison(src string, pos int) (Token, int) {
	switch {
	case src[pos] == '<' || src[pos] == '>':
		return emit(Comparison, src[pos:pos+1])
	case strings.HasPrefix(src[pos:], "=="):
		return emit(Comparison, "==")
	default:
		return Token{}, 0
	}
}

func emit(kind Kind, text string) (Token, int) {
	return Token{Text: text, Kind: kind}, len(text)
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isLetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || c == '_'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\n' || c == '\t' || c == '\r'
}
