package formulas

import (
	"math"
	"strconv"
	"strings"
)

// Expr is a node in the abstract syntax tree of an expression. The concrete
// types are *Num, *Name, *BinaryOp, and *Call.
type Expr interface {
	// fmt writes the expression to b as source text with the same value.
	fmt(b *strings.Builder)
	String() string
}

// Num is a numeric literal.
type Num struct {
	Value float64
}

// Name is a reference to a variable.
type Name struct {
	Name string
}

// BinaryOp applies an arithmetic operator to two operands. Op is one of
// TokenPlus, TokenMinus, TokenStar, or TokenSlash in any tree the parser
// produces.
type BinaryOp struct {
	Left  Expr
	Op    TokenKind
	Right Expr
}

// Call is a call of a function by name.
type Call struct {
	Func string
	Args []Expr
}

// Statement is a single top-level statement: either a *Function definition
// or an *ExprStmt.
type Statement interface {
	fmt(b *strings.Builder)
	String() string
}

// Function is a user-defined function. Its body is exactly one expression.
type Function struct {
	Name   string
	Params []string
	Body   Expr
}

// ExprStmt is an expression evaluated for its result.
type ExprStmt struct {
	X Expr
}

// Program is the sequence of statements parsed from one line of input.
type Program []Statement

func (n *Num) fmt(b *strings.Builder) {
	if math.IsInf(n.Value, 1) {
		// Literals too large for float64 scan as infinity.
		b.WriteString("(1 / 0)")
		return
	}
	b.WriteString(strconv.FormatFloat(n.Value, 'f', -1, 64))
}

func (n *Name) fmt(b *strings.Builder) {
	b.WriteString(n.Name)
}

func (n *BinaryOp) fmt(b *strings.Builder) {
	b.WriteByte('(')
	n.Left.fmt(b)
	b.WriteByte(' ')
	b.WriteString(opstr(n.Op))
	b.WriteByte(' ')
	n.Right.fmt(b)
	b.WriteByte(')')
}

func (n *Call) fmt(b *strings.Builder) {
	b.WriteString(n.Func)
	b.WriteByte('(')
	for i, a := range n.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		a.fmt(b)
	}
	b.WriteByte(')')
}

func (f *Function) fmt(b *strings.Builder) {
	b.WriteString(Keyword)
	b.WriteByte(' ')
	b.WriteString(f.Name)
	b.WriteByte('(')
	b.WriteString(strings.Join(f.Params, ", "))
	b.WriteString(") (")
	f.Body.fmt(b)
	b.WriteByte(')')
}

func (s *ExprStmt) fmt(b *strings.Builder) {
	s.X.fmt(b)
}

func (n *Num) String() string      { return str(n) }
func (n *Name) String() string     { return str(n) }
func (n *BinaryOp) String() string { return str(n) }
func (n *Call) String() string     { return str(n) }
func (f *Function) String() string { return str(f) }
func (s *ExprStmt) String() string { return str(s) }

// String formats the program as source text, one statement per line.
func (p Program) String() string {
	var b strings.Builder
	for i, s := range p {
		if i > 0 {
			b.WriteByte('\n')
		}
		s.fmt(&b)
	}
	return b.String()
}

func str(n interface{ fmt(*strings.Builder) }) string {
	var b strings.Builder
	n.fmt(&b)
	return b.String()
}

// opstr gets the source text of an operator. Kinds which are not operators
// use an invalid character so that they cannot reparse.
func opstr(k TokenKind) string {
	switch k {
	case TokenPlus:
		return "+"
	case TokenMinus:
		return "-"
	case TokenStar:
		return "*"
	case TokenSlash:
		return "/"
	default:
		return "$" + k.String() + "$"
	}
}
