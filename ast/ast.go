package ast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tsani/nutcalc/token"
)

// AST

type Node interface {
	fmt.Stringer
	Span() token.Span
	// Plate applies the given function to each child node.
	// If f returns an error, f also must return the original argument n.
	// It is similar to Visitor pattern.
	// FYI: https://hackage.haskell.org/package/lens-5.2.3/docs/Control-Lens-Plated.html
	Plate(error, func(Node, error) (Node, error)) (Node, error)
	setFilename(string)
}

// Stmt is one of *FoodStmt, *WeightStmt or *PrintStmt.
type Stmt interface {
	Node
	stmt()
}

// Located carries the source span of a node. Every node embeds it.
type Located struct {
	Loc token.Span
}

func (l *Located) Span() token.Span {
	return l.Loc
}

func (l *Located) setFilename(name string) {
	l.Loc.Filename = name
}

// Quantity is a count of some unit. The count is the value of the arithmetic
// expression written in the source.
type Quantity struct {
	Located
	Count float64
	Unit  string
}

func (q Quantity) String() string {
	return parenthesize("quantity", text(formatCount(q.Count)), name(q.Unit)).String()
}

func (q *Quantity) Plate(err error, _ func(Node, error) (Node, error)) (Node, error) {
	return q, err
}

var _ Node = &Quantity{}

type QuantifiedFood struct {
	Located
	Quantity *Quantity
	Food     string
}

func (q QuantifiedFood) String() string {
	return parenthesize("food", q.Quantity, name(q.Food)).String()
}

func (q *QuantifiedFood) Plate(err error, f func(Node, error) (Node, error)) (Node, error) {
	var n Node
	n, err = f(q.Quantity, err)
	q.Quantity = n.(*Quantity)
	return q, err
}

var _ Node = &QuantifiedFood{}

// Expr is a sum of quantified foods. A bullet list is flattened into a single
// Expr.
type Expr struct {
	Located
	Items []*QuantifiedFood
}

func (e Expr) String() string {
	return parenthesize("expr", concat(e.Items)).String()
}

func (e *Expr) Plate(err error, f func(Node, error) (Node, error)) (Node, error) {
	for i, item := range e.Items {
		var n Node
		n, err = f(item, err)
		e.Items[i] = n.(*QuantifiedFood)
	}
	return e, err
}

var _ Node = &Expr{}

// FoodStmt defines a new food from its constituents. Weight is nil unless a
// `weighs` clause was given.
type FoodStmt struct {
	Located
	Lhs    *QuantifiedFood
	Weight *Quantity
	Body   *Expr
}

func (s FoodStmt) String() string {
	if s.Weight == nil {
		return parenthesize("define", s.Lhs, s.Body).String()
	}
	return parenthesize("define", s.Lhs, parenthesize("weighs", s.Weight), s.Body).String()
}

func (s *FoodStmt) Plate(err error, f func(Node, error) (Node, error)) (Node, error) {
	var n Node
	n, err = f(s.Lhs, err)
	s.Lhs = n.(*QuantifiedFood)
	if s.Weight != nil {
		n, err = f(s.Weight, err)
		s.Weight = n.(*Quantity)
	}
	n, err = f(s.Body, err)
	s.Body = n.(*Expr)
	return s, err
}

func (*FoodStmt) stmt() {}

var _ Stmt = &FoodStmt{}

// WeightStmt defines a new unit for an existing food by equating Lhs to Rhs.
// Both sides name the same food.
type WeightStmt struct {
	Located
	Lhs *QuantifiedFood
	Rhs *QuantifiedFood
}

func (s WeightStmt) String() string {
	return parenthesize("unit", s.Lhs, s.Rhs).String()
}

func (s *WeightStmt) Plate(err error, f func(Node, error) (Node, error)) (Node, error) {
	var n Node
	n, err = f(s.Lhs, err)
	s.Lhs = n.(*QuantifiedFood)
	n, err = f(s.Rhs, err)
	s.Rhs = n.(*QuantifiedFood)
	return s, err
}

func (*WeightStmt) stmt() {}

var _ Stmt = &WeightStmt{}

type PrintStmt struct {
	Located
	Body *Expr
}

func (s PrintStmt) String() string {
	return parenthesize("print", s.Body).String()
}

func (s *PrintStmt) Plate(err error, f func(Node, error) (Node, error)) (Node, error) {
	var n Node
	n, err = f(s.Body, err)
	s.Body = n.(*Expr)
	return s, err
}

func (*PrintStmt) stmt() {}

var _ Stmt = &PrintStmt{}

// ImportStmt names a module. Mapping the name to a file is up to the driver.
type ImportStmt struct {
	Located
	Path string
}

func (s ImportStmt) String() string {
	return parenthesize("import", name(s.Path)).String()
}

func (s *ImportStmt) Plate(err error, _ func(Node, error) (Node, error)) (Node, error) {
	return s, err
}

var _ Node = &ImportStmt{}

type Module struct {
	Located
	Imports []*ImportStmt
	Body    []Stmt
}

func (m Module) String() string {
	var b strings.Builder
	b.WriteString("(module")
	for _, imp := range m.Imports {
		b.WriteString("\n  ")
		b.WriteString(imp.String())
	}
	for _, stmt := range m.Body {
		b.WriteString("\n  ")
		b.WriteString(stmt.String())
	}
	b.WriteString(")")
	return b.String()
}

func (m *Module) Plate(err error, f func(Node, error) (Node, error)) (Node, error) {
	for i, imp := range m.Imports {
		var n Node
		n, err = f(imp, err)
		m.Imports[i] = n.(*ImportStmt)
	}
	for i, stmt := range m.Body {
		var n Node
		n, err = f(stmt, err)
		m.Body[i] = n.(Stmt)
	}
	return m, err
}

var _ Node = &Module{}

func formatCount(c float64) string {
	return strconv.FormatFloat(c, 'g', -1, 64)
}

type text string

func (t text) String() string {
	return string(t)
}

func name(s string) fmt.Stringer {
	return text(strconv.Quote(s))
}

// parenthesize takes a head string and a variadic number of nodes that implement the fmt.Stringer interface.
// It returns a fmt.Stringer that represents a string where each node is parenthesized and separated by a space.
// If the head string is not empty, it is added at the beginning of the string.
func parenthesize(head string, elems ...fmt.Stringer) fmt.Stringer {
	var b strings.Builder
	b.WriteString("(")
	elemsStr := concat(elems).String()
	if head != "" {
		b.WriteString(head)
	}
	if elemsStr != "" {
		if head != "" {
			b.WriteString(" ")
		}
		b.WriteString(elemsStr)
	}
	b.WriteString(")")
	return &b
}

// concat takes a slice of nodes that implement the fmt.Stringer interface.
// It returns a fmt.Stringer that represents a string where each node is separated by a space.
func concat[T fmt.Stringer](elems []T) fmt.Stringer {
	var b strings.Builder
	for _, elem := range elems {
		// ignore empty string
		// e.g. concat({}) == ""
		str := elem.String()
		if str == "" {
			continue
		}
		if b.Len() != 0 {
			b.WriteString(" ")
		}
		b.WriteString(str)
	}
	return &b
}
