package lexer

// Scanner splits Jolt source into tokens. It never fails: characters no
// classifier accepts become single-character Unknown tokens and are left
// for the parser to reject.
type Scanner struct {
	source  string
	tokens  []Token
	current int
	line    int
	column  int
}

func NewScanner(source string) *Scanner {
	return &Scanner{
		source: source,
		line:   1,
		column: 1,
	}
}

// Tokenize is a shorthand for NewScanner(source).ScanTokens().
func Tokenize(source string) []Token {
	return NewScanner(source).ScanTokens()
}

func (s *Scanner) ScanTokens() []Token {
	for {
		s.sanitize()
		if s.isAtEnd() {
			break
		}
		s.scanToken()
	}
	s.tokens = append(s.tokens, Token{Kind: EndOfInput, Position: s.position()})
	return s.tokens
}

func (s *Scanner) scanToken() {
	pos := s.position()
	for _, classify := range classifiers {
		tok, n := classify(s.source, s.current)
		if n == 0 {
			continue
		}
		tok.Position = pos
		s.tokens = append(s.tokens, tok)
		s.advance(n)
		return
	}
	s.tokens = append(s.tokens, Token{
		Text:     s.source[s.current : s.current+1],
		Kind:     Unknown,
		Position: pos,
	})
	s.advance(1)
}

func (s *Scanner) advance(n int) {
	for i := 0; i < n && !s.isAtEnd(); i++ {
		if s.source[s.current] == '\n' {
			s.line++
			s.column = 1
		} else {
			s.column++
		}
		s.current++
	}
}

func (s *Scanner) position() Position {
	return Position{Offset: s.current, Line: s.line, Column: s.column}
}

func (s *Scanner) isAtEnd() bool {
	return s.current >= len(s.source)
}

func (s *Scanner) sanitize() {
	for !s.isAtEnd() && isSpace(s.source[s.current]) {
		s.advance(1)
	}
}
