package token

import "fmt"

type Kind int

const (
	EOF Kind = iota

	// Single-character tokens.
	LEFTPAREN
	RIGHTPAREN
	PLUS
	MINUS
	STAR
	SLASH
	EQUAL
	COLON

	// Literals and identifiers.
	IDENT
	NUMBER

	// Keywords.
	FACTS
	IMPORT
	PRINT
	WEIGHS
)

// kindNames spells each kind the way diagnostics quote it: punctuation and
// keywords in backticks, everything else in words. Expected-token sets are
// rendered from these names.
var kindNames = map[Kind]string{
	EOF:        "end of input",
	LEFTPAREN:  "`(`",
	RIGHTPAREN: "`)`",
	PLUS:       "`+`",
	MINUS:      "`-`",
	STAR:       "`*`",
	SLASH:      "`/`",
	EQUAL:      "`=`",
	COLON:      "`:`",
	IDENT:      "name",
	NUMBER:     "number",
	FACTS:      "`facts`",
	IMPORT:     "`import`",
	PRINT:      "`print`",
	WEIGHS:     "`weighs`",
}

// String returns the name used for the kind in diagnostics.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsKeyword reports whether k is one of the keyword kinds.
func (k Kind) IsKeyword() bool {
	return k >= FACTS && k <= WEIGHS
}

// Token is a lexeme together with where it was found.
// Literal holds the float64 value of a NUMBER and the name of an IDENT, with
// the quotes of a quoted name removed.
type Token struct {
	Kind    Kind
	Lexeme  string
	Start   Pos
	End     Pos
	Literal any
}

func (t Token) String() string {
	return fmt.Sprintf("{%v, %q, %v-%v, %v}", t.Kind, t.Lexeme, t.Start, t.End, t.Literal)
}

// Span returns the span covered by the token.
func (t Token) Span() Span {
	return Span{Start: t.Start, End: t.End}
}
