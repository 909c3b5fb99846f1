// Package parser is a parser for the nutcalc language.
package parser

import (
	"errors"
	"slices"
	"strings"

	"github.com/tsani/nutcalc/ast"
	"github.com/tsani/nutcalc/lexer"
	"github.com/tsani/nutcalc/token"
	"github.com/tsani/nutcalc/utils"
)

var (
	ErrWeighsInUnitDefinition = errors.New("unit definition forbids a `weighs` clause")
	ErrDivisionByZero         = errors.New("division by zero")
)

// ParseModule lexes and parses source as a whole module. name is the origin
// of source; it is stamped onto every node of the tree and prefixed to errors.
func ParseModule(name, source string) (*ast.Module, error) {
	tokens, err := lexer.LexFile(name, source)
	if err != nil {
		return nil, err
	}
	p := NewParser(tokens)
	p.filename = name
	module, err := p.ParseModule()
	if err != nil {
		return nil, err
	}
	ast.SetFilename(module, name)
	return module, nil
}

// ParseStmt lexes and parses a single statement, e.g. one REPL line.
func ParseStmt(line string) (ast.Stmt, error) {
	tokens, err := lexer.Lex(line)
	if err != nil {
		return nil, err
	}
	return NewParser(tokens).ParseStmt()
}

type Parser struct {
	tokens   []token.Token
	current  int
	err      error
	filename string

	// kinds tried and rejected at tokens[expectedAt]
	expected   []string
	expectedAt int
}

func NewParser(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens, expectedAt: -1}
}

// ParseModule parses import declarations followed by statements up to the end
// of input.
//
// module = importStmt* stmt* ;
func (p *Parser) ParseModule() (*ast.Module, error) {
	p.err = nil
	start := p.peek().Span()
	module := &ast.Module{}
	for p.err == nil && p.match(token.IMPORT) {
		module.Imports = append(module.Imports, p.importStmt())
	}
	for p.err == nil && !p.match(token.EOF) {
		module.Body = append(module.Body, p.stmt())
	}
	module.Loc = start.To(p.previousOr(start))
	if p.err != nil {
		return nil, p.err
	}
	return module, nil
}

// ParseStmt parses exactly one statement spanning the whole input.
func (p *Parser) ParseStmt() (ast.Stmt, error) {
	p.err = nil
	stmt := p.stmt()
	p.consume(token.EOF)
	if p.err != nil {
		return nil, p.err
	}
	return stmt, nil
}

// importStmt = "import" IDENT ;
func (p *Parser) importStmt() *ast.ImportStmt {
	start := p.consume(token.IMPORT).Span()
	path := p.ident()
	return &ast.ImportStmt{Located: p.located(start), Path: path}
}

// stmt = printStmt | definitionStmt ;
func (p *Parser) stmt() ast.Stmt {
	switch {
	case p.match(token.PRINT), p.match(token.FACTS):
		return p.printStmt()
	case p.match(token.NUMBER), p.match(token.LEFTPAREN):
		return p.definitionStmt()
	default:
		p.recover(p.unexpectedToken())
		return nil
	}
}

// printStmt = ("print" | "facts") expr ;
func (p *Parser) printStmt() *ast.PrintStmt {
	start := p.advance().Span()
	body := p.expr()
	return &ast.PrintStmt{Located: p.located(start), Body: body}
}

// definitionStmt = quantifiedFood ("weighs" quantity)? ("=" rhs | ":" bulletExpr) ;
// rhs = expr | quantity ;
//
// A `=` definition whose right-hand side is a single quantity of the food being
// defined (a bare quantity counts as such) defines a unit rather than a food.
func (p *Parser) definitionStmt() ast.Stmt {
	start := p.peek().Span()
	lhs := p.quantifiedFood()

	var weight *ast.Quantity
	if p.match(token.WEIGHS) {
		p.advance()
		weight = p.quantity()
	}

	switch {
	case p.match(token.EQUAL):
		p.advance()
		body := p.rhs(lhs)
		if p.err != nil {
			return nil
		}
		if len(body.Items) == 1 && body.Items[0].Food == lhs.Food {
			if weight != nil {
				p.recover(utils.PosError{Where: p.span(weight.Loc), Err: ErrWeighsInUnitDefinition})
				return nil
			}
			return &ast.WeightStmt{Located: p.located(start), Lhs: lhs, Rhs: body.Items[0]}
		}
		return &ast.FoodStmt{Located: p.located(start), Lhs: lhs, Weight: weight, Body: body}
	case p.match(token.COLON):
		p.advance()
		body := p.bulletExpr()
		return &ast.FoodStmt{Located: p.located(start), Lhs: lhs, Weight: weight, Body: body}
	default:
		p.recover(p.unexpectedToken())
		return nil
	}
}

// rhs = expr | quantity ;
// A bare quantity is read as a quantity of the food named by lhs.
func (p *Parser) rhs(lhs *ast.QuantifiedFood) *ast.Expr {
	start := p.peek().Span()
	qty := p.quantity()
	if !p.matchName() {
		item := &ast.QuantifiedFood{Located: qty.Located, Quantity: qty, Food: lhs.Food}
		return &ast.Expr{Located: qty.Located, Items: []*ast.QuantifiedFood{item}}
	}
	first := &ast.QuantifiedFood{Quantity: qty, Food: p.ident()}
	first.Located = p.located(start)
	return p.exprTail(start, []*ast.QuantifiedFood{first})
}

// expr = quantifiedFood ("+" quantifiedFood)* ;
func (p *Parser) expr() *ast.Expr {
	start := p.peek().Span()
	return p.exprTail(start, []*ast.QuantifiedFood{p.quantifiedFood()})
}

func (p *Parser) exprTail(start token.Span, items []*ast.QuantifiedFood) *ast.Expr {
	for p.err == nil && p.match(token.PLUS) {
		p.advance()
		items = append(items, p.quantifiedFood())
	}
	return &ast.Expr{Located: p.located(start), Items: items}
}

// bulletExpr = ("-" expr)+ ;
// The items of every bullet are concatenated into one expression.
func (p *Parser) bulletExpr() *ast.Expr {
	start := p.peek().Span()
	var items []*ast.QuantifiedFood
	p.consume(token.MINUS)
	items = append(items, p.expr().Items...)
	for p.err == nil && p.match(token.MINUS) {
		p.advance()
		items = append(items, p.expr().Items...)
	}
	return &ast.Expr{Located: p.located(start), Items: items}
}

// quantifiedFood = quantity IDENT ;
func (p *Parser) quantifiedFood() *ast.QuantifiedFood {
	start := p.peek().Span()
	qty := p.quantity()
	food := p.ident()
	return &ast.QuantifiedFood{Located: p.located(start), Quantity: qty, Food: food}
}

// quantity = arith IDENT ;
func (p *Parser) quantity() *ast.Quantity {
	start := p.peek().Span()
	count := p.arith()
	unit := p.ident()
	return &ast.Quantity{Located: p.located(start), Count: count, Unit: unit}
}

// arith = term ("+" term)* ;
func (p *Parser) arith() float64 {
	value := p.term()
	for p.err == nil && p.match(token.PLUS) {
		p.advance()
		value += p.term()
	}
	return value
}

// term = factor (("*" | "/") factor)* ;
func (p *Parser) term() float64 {
	value := p.factor()
	for p.err == nil {
		switch {
		case p.match(token.STAR):
			p.advance()
			value *= p.factor()
		case p.match(token.SLASH):
			slash := p.advance()
			divisor := p.factor()
			if p.err == nil && divisor == 0 {
				p.recover(utils.PosError{Where: p.span(slash.Span()), Err: ErrDivisionByZero})
				return 0
			}
			value /= divisor
		default:
			return value
		}
	}
	return value
}

// factor = NUMBER | "(" arith ")" ;
func (p *Parser) factor() float64 {
	switch {
	case p.match(token.NUMBER):
		return p.advance().Literal.(float64)
	case p.match(token.LEFTPAREN):
		p.advance()
		value := p.arith()
		p.consume(token.RIGHTPAREN)
		return value
	default:
		p.recover(p.unexpectedToken())
		return 0
	}
}

// ident consumes a name. Keywords are only reserved where a statement or a
// clause begins; in a name position they read as plain names.
func (p *Parser) ident() string {
	if tok := p.peek(); tok.Kind.IsKeyword() {
		p.advance()
		return tok.Lexeme
	}
	tok := p.consume(token.IDENT)
	if name, ok := tok.Literal.(string); ok && tok.Kind == token.IDENT {
		return name
	}
	return ""
}

// located returns the position of the text from start up to the last
// consumed token.
func (p *Parser) located(start token.Span) ast.Located {
	return ast.Located{Loc: start.To(p.previousOr(start))}
}

func (p *Parser) span(s token.Span) token.Span {
	s.Filename = p.filename
	return s
}

// recover records err unless an earlier error is already recorded; parsing
// stops at the first error.
func (p *Parser) recover(err error) {
	if p.err == nil {
		p.err = err
	}
}

func (p Parser) peek() token.Token {
	return p.tokens[p.current]
}

// advance consumes the next token and returns it. EOF is never consumed, so
// advancing at the end returns EOF again.
func (p *Parser) advance() token.Token {
	if p.IsAtEnd() {
		return p.peek()
	}
	p.current++
	return p.previous()
}

func (p Parser) previous() token.Token {
	return p.tokens[p.current-1]
}

func (p Parser) previousOr(s token.Span) token.Span {
	if p.current == 0 {
		return s
	}
	return p.previous().Span()
}

func (p Parser) IsAtEnd() bool {
	return p.peek().Kind == token.EOF
}

// match reports whether the next token is of the given kind. A failed match
// is remembered as an alternative that would have been accepted here.
func (p *Parser) match(kind token.Kind) bool {
	if p.peek().Kind == kind {
		return true
	}
	if p.expectedAt != p.current {
		p.expected = nil
		p.expectedAt = p.current
	}
	if what := kind.String(); !slices.Contains(p.expected, what) {
		p.expected = append(p.expected, what)
	}
	return false
}

// matchName reports whether a name follows. `print` and `facts` are left to
// start the next statement.
func (p *Parser) matchName() bool {
	switch p.peek().Kind {
	case token.WEIGHS, token.IMPORT:
		return true
	}
	return p.match(token.IDENT)
}

func (p *Parser) consume(kind token.Kind) token.Token {
	if p.match(kind) {
		return p.advance()
	}

	p.recover(p.unexpectedToken())

	return p.peek()
}

type UnexpectedTokenError struct {
	Found    token.Token
	Expected []string
}

func (e UnexpectedTokenError) Error() string {
	found := e.Found.Kind.String()
	if e.Found.Kind != token.EOF {
		found = "`" + e.Found.Lexeme + "`"
	}
	return "unexpected " + found + ": expected " + strings.Join(e.Expected, ", ")
}

func (p *Parser) unexpectedToken() error {
	var expected []string
	if p.expectedAt == p.current {
		expected = slices.Clone(p.expected)
	}
	return utils.PosError{
		Where: p.span(p.peek().Span()),
		Err:   UnexpectedTokenError{Found: p.peek(), Expected: expected},
	}
}
