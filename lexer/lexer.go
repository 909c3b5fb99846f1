package lexer

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/tsani/nutcalc/token"
)

// Lex splits source into tokens. Whitespace and `#` line comments are
// skipped. All lexical errors are collected and joined; the token list always
// ends with EOF.
func Lex(source string) ([]token.Token, error) {
	return LexFile("", source)
}

// LexFile is like Lex, but errors are reported against filename.
func LexFile(filename, source string) ([]token.Token, error) {
	l := lexer{
		filename: filename,
		source:   []rune(source),
		tokens:   []token.Token{},
		pos:      token.Pos{Line: 1, Column: 1},
	}

	var err error

	for l.skipJunk(); !l.isAtEnd(); l.skipJunk() {
		err = errors.Join(err, l.scanToken())
	}

	l.tokens = append(l.tokens, token.Token{Kind: token.EOF, Lexeme: "", Start: l.pos, End: l.pos})

	return l.tokens, err
}

type lexer struct {
	filename string
	source   []rune
	tokens   []token.Token

	start   int       // start of current lexeme
	current int       // current position in source
	startAt token.Pos // position of source[start]
	pos     token.Pos // position of source[current]
}

func (l lexer) isAtEnd() bool {
	return l.current >= len(l.source)
}

func (l lexer) peek() rune {
	if l.isAtEnd() {
		return '\x00'
	}
	return l.source[l.current]
}

func (l *lexer) advance() rune {
	c := l.source[l.current]
	l.current++
	if c == '\n' {
		l.pos.Line++
		l.pos.Column = 1
	} else {
		l.pos.Column++
	}
	return c
}

func (l *lexer) addToken(kind token.Kind, literal any) {
	text := string(l.source[l.start:l.current])
	l.tokens = append(l.tokens, token.Token{
		Kind:    kind,
		Lexeme:  text,
		Start:   l.startAt,
		End:     l.pos,
		Literal: literal,
	})
}

func (l *lexer) skipJunk() {
	for !l.isAtEnd() {
		switch l.peek() {
		case ' ', '\t', '\r', '\n':
			l.advance()
		case '#':
			for !l.isAtEnd() && l.peek() != '\n' {
				l.advance()
			}
		default:
			return
		}
	}
}

// Error is a lexical error.
type Error struct {
	Where token.Span
	Msg   string
}

func (e *Error) Error() string {
	return e.Where.Prefix() + e.Msg
}

func (l *lexer) errorf(format string, args ...any) error {
	return &Error{
		Where: token.Span{Filename: l.filename, Start: l.startAt, End: l.pos},
		Msg:   fmt.Sprintf(format, args...),
	}
}

func (l *lexer) scanToken() error {
	l.start = l.current
	l.startAt = l.pos
	c := l.advance()
	switch c {
	case '(':
		l.addToken(token.LEFTPAREN, nil)
	case ')':
		l.addToken(token.RIGHTPAREN, nil)
	case '+':
		l.addToken(token.PLUS, nil)
	case '-':
		l.addToken(token.MINUS, nil)
	case '*':
		l.addToken(token.STAR, nil)
	case '/':
		l.addToken(token.SLASH, nil)
	case '=':
		l.addToken(token.EQUAL, nil)
	case ':':
		l.addToken(token.COLON, nil)
	case '\'', '"':
		return l.quoted(c)
	default:
		if isDigit(c) {
			return l.number()
		}
		if isAlpha(c) {
			return l.identifier()
		}
		return l.errorf("unexpected character: %q", c)
	}
	return nil
}

// quoted scans a name delimited by quote. The body is any non-empty run of
// characters other than quote; no escapes are processed.
func (l *lexer) quoted(quote rune) error {
	for !l.isAtEnd() && l.peek() != quote {
		l.advance()
	}

	if l.isAtEnd() {
		return l.errorf("unterminated quoted name")
	}
	l.advance()

	value := string(l.source[l.start+1 : l.current-1])
	if value == "" {
		return l.errorf("empty quoted name")
	}
	l.addToken(token.IDENT, value)
	return nil
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

// number scans digits, optionally followed by `.` and more digits. A trailing
// bare `.` reads as `.0`.
func (l *lexer) number() error {
	for isDigit(l.peek()) {
		l.advance()
	}
	if l.peek() == '.' {
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
	}

	text := string(l.source[l.start:l.current])
	if text[len(text)-1] == '.' {
		text += "0"
	}
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return l.errorf("invalid number: %v", err)
	}
	l.addToken(token.NUMBER, value)
	return nil
}

func isAlpha(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func (l *lexer) identifier() error {
	for isAlpha(l.peek()) || isDigit(l.peek()) {
		l.advance()
	}

	value := string(l.source[l.start:l.current])

	if k, ok := keywords[value]; ok {
		l.addToken(k, nil)
	} else {
		l.addToken(token.IDENT, value)
	}
	return nil
}

// Keywords are always lexed as such in bare form. The parser still accepts
// them in name positions, and a quoted name may spell any of them.
var keywords = map[string]token.Kind{
	"facts":  token.FACTS,
	"import": token.IMPORT,
	"print":  token.PRINT,
	"weighs": token.WEIGHS,
}
