package formulas

import (
	"io"
	"strings"
)

// program     = { statement } EOF
// statement   = function_def | expr
// function_def = "function" IDENT "(" [ IDENT { "," IDENT } ] ")" "(" expr ")"
// expr        = term { ("+" | "-") term }
// term        = factor { ("*" | "/") factor }
// factor      = NUMBER | IDENT [ "(" [ expr { "," expr } ] ")" ] | "(" expr ")"

// Parser builds statements from a scanner by recursive descent with one token
// of lookahead.
type Parser struct {
	scan *Scanner
	tok  Token
}

// NewParser creates a parser reading from s. The first token is scanned
// immediately, so a lexical error there is returned here.
func NewParser(s *Scanner) (*Parser, error) {
	p := Parser{scan: s}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Parse parses a program from src.
func Parse(src io.RuneScanner) (Program, error) {
	p, err := NewParser(Scan(src))
	if err != nil {
		return nil, err
	}
	return p.ParseProgram()
}

// ParseString is a shortcut to parse a program from a string.
func ParseString(src string) (Program, error) {
	return Parse(strings.NewReader(src))
}

// advance scans the next token into the lookahead.
func (p *Parser) advance() error {
	tok, err := p.scan.Next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

// expect consumes the lookahead if it is of kind k and returns it.
func (p *Parser) expect(k TokenKind) (Token, error) {
	tok := p.tok
	if tok.Kind != k {
		return tok, &ExpectedTokenError{Col: tok.Pos, Want: k, Got: tok}
	}
	return tok, p.advance()
}

// ParseProgram parses statements until the end of the input. There is no
// error recovery: the first error aborts the whole program.
func (p *Parser) ParseProgram() (Program, error) {
	var prog Program
	for p.tok.Kind != TokenEOF {
		s, err := p.statement()
		if err != nil {
			return nil, err
		}
		prog = append(prog, s)
	}
	return prog, nil
}

func (p *Parser) statement() (Statement, error) {
	if p.tok.Kind == TokenFunction {
		return p.function()
	}
	x, err := p.expr()
	if err != nil {
		return nil, err
	}
	return &ExprStmt{X: x}, nil
}

func (p *Parser) function() (*Function, error) {
	if _, err := p.expect(TokenFunction); err != nil {
		return nil, err
	}
	name, err := p.expect(TokenIdent)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenLParen); err != nil {
		return nil, err
	}
	// Duplicate parameter names are allowed. The last one wins.
	var params []string
	if p.tok.Kind != TokenRParen {
		for {
			id, err := p.expect(TokenIdent)
			if err != nil {
				return nil, err
			}
			params = append(params, id.Text)
			if p.tok.Kind != TokenComma {
				break
			}
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}
	if _, err := p.expect(TokenRParen); err != nil {
		return nil, err
	}
	// The body must be parenthesized.
	if _, err := p.expect(TokenLParen); err != nil {
		return nil, err
	}
	body, err := p.expr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenRParen); err != nil {
		return nil, err
	}
	return &Function{Name: name.Text, Params: params, Body: body}, nil
}

// expr parses a sum of terms.
func (p *Parser) expr() (Expr, error) {
	return p.binary(p.term, TokenPlus, TokenMinus)
}

// term parses a product of factors.
func (p *Parser) term() (Expr, error) {
	return p.binary(p.factor, TokenStar, TokenSlash)
}

// binary parses a left-associative chain of operands joined by either of two
// operators of equal precedence.
func (p *Parser) binary(operand func() (Expr, error), a, b TokenKind) (Expr, error) {
	n, err := operand()
	if err != nil {
		return nil, err
	}
	for p.tok.Kind == a || p.tok.Kind == b {
		op := p.tok.Kind
		if err := p.advance(); err != nil {
			return nil, err
		}
		rhs, err := operand()
		if err != nil {
			return nil, err
		}
		n = &BinaryOp{Left: n, Op: op, Right: rhs}
	}
	return n, nil
}

func (p *Parser) factor() (Expr, error) {
	tok := p.tok
	switch tok.Kind {
	case TokenNum:
		return &Num{Value: tok.Num}, p.advance()
	case TokenIdent:
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.tok.Kind != TokenLParen {
			return &Name{Name: tok.Text}, nil
		}
		args, err := p.args()
		if err != nil {
			return nil, err
		}
		return &Call{Func: tok.Text, Args: args}, nil
	case TokenLParen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		x, err := p.expr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenRParen); err != nil {
			return nil, err
		}
		return x, nil
	default:
		return nil, &UnexpectedTokenError{Col: tok.Pos, Got: tok}
	}
}

// args parses a parenthesized argument list, including the brackets.
func (p *Parser) args() ([]Expr, error) {
	if _, err := p.expect(TokenLParen); err != nil {
		return nil, err
	}
	var args []Expr
	if p.tok.Kind != TokenRParen {
		for {
			x, err := p.expr()
			if err != nil {
				return nil, err
			}
			args = append(args, x)
			if p.tok.Kind != TokenComma {
				break
			}
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}
	if _, err := p.expect(TokenRParen); err != nil {
		return nil, err
	}
	return args, nil
}
