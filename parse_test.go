package formulas

import (
	"errors"
	"strings"
	"testing"

	"github.com/kr/pretty"
)

func num(v float64) *Num                   { return &Num{Value: v} }
func name(s string) *Name                  { return &Name{Name: s} }
func bin(l Expr, op TokenKind, r Expr) Expr { return &BinaryOp{Left: l, Op: op, Right: r} }
func call(f string, args ...Expr) *Call    { return &Call{Func: f, Args: args} }

func TestParseFunction(t *testing.T) {
	prog, err := ParseString("function add(x, y) (x + y)")
	if err != nil {
		t.Fatal(err)
	}
	want := Program{&Function{
		Name:   "add",
		Params: []string{"x", "y"},
		Body:   bin(name("x"), TokenPlus, name("y")),
	}}
	if d := pretty.Diff(want, prog); len(d) != 0 {
		t.Errorf("wrong tree:\n%s", strings.Join(d, "\n"))
	}
}

func TestParseTrees(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want Program
	}{
		{"empty", "", nil},
		{"spaces", "  \t", nil},
		{"num", "1", Program{&ExprStmt{num(1)}}},
		{"name", "x", Program{&ExprStmt{name("x")}}},
		{"paren", "((x))", Program{&ExprStmt{name("x")}}},
		{"add", "x+y", Program{&ExprStmt{bin(name("x"), TokenPlus, name("y"))}}},
		{"sub-left", "x-y-z", Program{&ExprStmt{bin(bin(name("x"), TokenMinus, name("y")), TokenMinus, name("z"))}}},
		{"div-left", "x/y/z", Program{&ExprStmt{bin(bin(name("x"), TokenSlash, name("y")), TokenSlash, name("z"))}}},
		{"prec", "1+2*3", Program{&ExprStmt{bin(num(1), TokenPlus, bin(num(2), TokenStar, num(3)))}}},
		{"prec-left", "1*2+3", Program{&ExprStmt{bin(bin(num(1), TokenStar, num(2)), TokenPlus, num(3))}}},
		{"group", "(1+2)*3", Program{&ExprStmt{bin(bin(num(1), TokenPlus, num(2)), TokenStar, num(3))}}},
		{"call0", "f()", Program{&ExprStmt{call("f")}}},
		{"call1", "f(x)", Program{&ExprStmt{call("f", name("x"))}}},
		{"call-space", "f (x)", Program{&ExprStmt{call("f", name("x"))}}},
		{"call2", "f(1, x*2)", Program{&ExprStmt{call("f", num(1), bin(name("x"), TokenStar, num(2)))}}},
		{"call-nested", "f(g(1))+2", Program{&ExprStmt{bin(call("f", call("g", num(1))), TokenPlus, num(2))}}},
		{"two", "1 2", Program{&ExprStmt{num(1)}, &ExprStmt{num(2)}}},
		{"def-call", "function id(x) (x) id(3)", Program{
			&Function{Name: "id", Params: []string{"x"}, Body: name("x")},
			&ExprStmt{call("id", num(3))},
		}},
		{"def0", "function one() (1)", Program{&Function{Name: "one", Body: num(1)}}},
		{"def-dup", "function f(x, x) (x)", Program{&Function{Name: "f", Params: []string{"x", "x"}, Body: name("x")}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			prog, err := ParseString(c.src)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			if d := pretty.Diff(c.want, prog); len(d) != 0 {
				t.Errorf("%q parsed wrong:\n%s", c.src, strings.Join(d, "\n"))
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	type errkind int
	const (
		unexpected errkind = iota
		expected
		lexical
	)
	cases := []struct {
		name string
		src  string
		kind errkind
		want TokenKind
		pos  int
	}{
		{"unterminated-body", "function f(x) (x + y", expected, TokenRParen, 21},
		{"unterminated-group", "(1", expected, TokenRParen, 3},
		{"unterminated-call", "f(1, 2", expected, TokenRParen, 7},
		{"unbracketed-body", "function f(x) x", expected, TokenLParen, 15},
		{"no-name", "function (x) (x)", expected, TokenIdent, 10},
		{"keyword-name", "function function() (1)", expected, TokenIdent, 10},
		{"num-param", "function f(1) (1)", expected, TokenIdent, 12},
		{"trailing-comma-param", "function f(x,) (x)", expected, TokenIdent, 14},
		{"no-params", "function f (1)", expected, TokenIdent, 13},
		{"body-two-exprs", "function f() (1 2)", expected, TokenRParen, 17},
		{"dangling-op", "1 +", unexpected, 0, 4},
		{"leading-op", "* 2", unexpected, 0, 1},
		{"unary-minus", "-1", unexpected, 0, 1},
		{"close", ")", unexpected, 0, 1},
		{"empty-group", "()", unexpected, 0, 2},
		{"trailing-comma-arg", "f(1,)", unexpected, 0, 5},
		{"comma", "1, 2", unexpected, 0, 2},
		{"keyword-in-expr", "1 + function", unexpected, 0, 5},
		{"lex", "1 + $", lexical, 0, 5},
		{"lex-first", "#", lexical, 0, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			prog, err := ParseString(c.src)
			if err == nil {
				t.Fatalf("%q parsed as %v", c.src, prog)
			}
			if prog != nil {
				t.Errorf("%q gave program %v with error", c.src, prog)
			}
			var ie InputError
			if !errors.As(err, &ie) {
				t.Fatalf("%#v is not an InputError", err)
			}
			if ie.Pos() != c.pos {
				t.Errorf("%q: want error at %d, got %d (%v)", c.src, c.pos, ie.Pos(), err)
			}
			switch c.kind {
			case unexpected:
				if _, ok := err.(*UnexpectedTokenError); !ok {
					t.Errorf("%q: want *UnexpectedTokenError, got %#v", c.src, err)
				}
			case expected:
				e, ok := err.(*ExpectedTokenError)
				if !ok {
					t.Fatalf("%q: want *ExpectedTokenError, got %#v", c.src, err)
				}
				if e.Want != c.want {
					t.Errorf("%q: want expected %v, got %v", c.src, c.want, e.Want)
				}
			case lexical:
				if _, ok := err.(*UnknownCharacterError); !ok {
					t.Errorf("%q: want *UnknownCharacterError, got %#v", c.src, err)
				}
			}
		})
	}
}

func TestParseErrorMessages(t *testing.T) {
	cases := []struct {
		src string
		msg string
	}{
		{"function f(x) (x + y", "21: expected RParen, got EOF"},
		{"1 +", "4: unexpected end of input"},
		{") 1", "1: unexpected token RParen"},
		{"f(1 g)", `5: expected RParen, got Ident("g")`},
	}
	for _, c := range cases {
		_, err := ParseString(c.src)
		if err == nil {
			t.Errorf("%q parsed", c.src)
			continue
		}
		if got := err.Error(); got != c.msg {
			t.Errorf("%q: want message %q, got %q", c.src, c.msg, got)
		}
	}
}

func TestParseStringRoundTrip(t *testing.T) {
	cases := []string{
		"1",
		"x",
		"(1 + 2)",
		"((1 - 2) - 3)",
		"(1 - (2 - 3))",
		"f()",
		"f(x, (y * 2))",
		"function add(x, y) ((x + y))",
		"function zero() (0)",
		"0.5",
	}
	for _, src := range cases {
		prog, err := ParseString(src)
		if err != nil {
			t.Errorf("%q failed to parse: %v", src, err)
			continue
		}
		if got := prog.String(); got != src {
			t.Errorf("%q formatted as %q", src, got)
		}
		again, err := ParseString(prog.String())
		if err != nil {
			t.Errorf("%q failed to reparse: %v", prog.String(), err)
			continue
		}
		if d := pretty.Diff(prog, again); len(d) != 0 {
			t.Errorf("%q reparsed differently:\n%s", src, strings.Join(d, "\n"))
		}
	}
}
