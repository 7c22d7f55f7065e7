package formulas

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"
)

// Token is a single lexeme scanned from the input.
type Token struct {
	// Kind is the type of the token.
	Kind TokenKind
	// Text is the source text of the token. It is empty for EOF.
	Text string
	// Num is the value of a TokenNum.
	Num float64
	// Pos is the column of the token's first rune, counting from 1.
	Pos int
}

func (t Token) String() string {
	switch t.Kind {
	case TokenIdent:
		return "Ident(" + strconv.Quote(t.Text) + ")"
	case TokenNum:
		return "Number(" + t.Text + ")"
	default:
		return t.Kind.String()
	}
}

// TokenKind is the type of a token.
type TokenKind int8

const (
	tokenNone TokenKind = iota
	// TokenEOF indicates the end of the input.
	TokenEOF
	// TokenFunction is the keyword "function".
	TokenFunction
	// TokenIdent is a variable or function name.
	TokenIdent
	// TokenNum is a numeric literal.
	TokenNum
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenLParen
	TokenRParen
	TokenComma
)

var kindnames = [...]string{
	tokenNone:     "None",
	TokenEOF:      "EOF",
	TokenFunction: "Function",
	TokenIdent:    "Ident",
	TokenNum:      "Number",
	TokenPlus:     "Plus",
	TokenMinus:    "Minus",
	TokenStar:     "Star",
	TokenSlash:    "Slash",
	TokenLParen:   "LParen",
	TokenRParen:   "RParen",
	TokenComma:    "Comma",
}

func (k TokenKind) String() string {
	if k < 0 || int(k) >= len(kindnames) {
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindnames[k]
}

// Keyword introduces a function definition.
const Keyword = "function"

// punct maps single-rune tokens to their kinds.
var punct = map[rune]TokenKind{
	'+': TokenPlus,
	'-': TokenMinus,
	'*': TokenStar,
	'/': TokenSlash,
	'(': TokenLParen,
	')': TokenRParen,
	',': TokenComma,
}

// Scanner produces tokens from source text one at a time.
type Scanner struct {
	src  io.RuneScanner
	buf  strings.Builder
	rune int
	eof  bool
}

// Scan creates a scanner reading from src.
func Scan(src io.RuneScanner) *Scanner {
	return &Scanner{src: src}
}

// ScanString creates a scanner over a string.
func ScanString(src string) *Scanner {
	return Scan(strings.NewReader(src))
}

// readRune reads a rune from the src and updates the scanner's position info.
func (s *Scanner) readRune() (rune, error) {
	r, sz, err := s.src.ReadRune()
	if sz > 0 {
		s.rune++
	}
	return r, err
}

// unreadRune unreads a rune from the src and updates the scanner's position
// info. Panics if unreading returns an error.
func (s *Scanner) unreadRune() {
	if err := s.src.UnreadRune(); err != nil {
		panic(err)
	}
	s.rune--
}

// Next scans the next token from the input. Once the input is exhausted, every
// call returns an EOF token with a nil error. An unrecognized rune produces an
// *UnknownCharacterError; the rune is consumed, so scanning may continue past
// it.
func (s *Scanner) Next() (Token, error) {
	if s.eof {
		return Token{Kind: TokenEOF, Pos: s.rune + 1}, nil
	}
	defer s.buf.Reset()
	for {
		r, err := s.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.eof = true
				return Token{Kind: TokenEOF, Pos: s.rune + 1}, nil
			}
			return Token{Pos: s.rune}, err
		}
		tok := Token{Pos: s.rune}
		switch {
		case unicode.IsSpace(r):
			continue
		case isdigit(r), r == '.':
			s.unreadRune()
			if !s.scanNum() {
				return Token{Pos: tok.Pos}, &UnknownCharacterError{Col: tok.Pos, Char: '.'}
			}
			tok.Kind = TokenNum
			tok.Text = s.buf.String()
			tok.Num, err = strconv.ParseFloat(tok.Text, 64)
			if err != nil && !errors.Is(err, strconv.ErrRange) {
				// scanNum only accepts digits around at most one dot.
				panic("formulas: invalid number " + strconv.Quote(tok.Text) + ": " + err.Error())
			}
			return tok, nil
		case unicode.IsLetter(r):
			s.unreadRune()
			s.scanIdent()
			tok.Text = s.buf.String()
			if tok.Text == Keyword {
				tok.Kind = TokenFunction
			} else {
				tok.Kind = TokenIdent
			}
			return tok, nil
		default:
			k, ok := punct[r]
			if !ok {
				return Token{Pos: tok.Pos}, &UnknownCharacterError{Col: tok.Pos, Char: r}
			}
			tok.Kind = k
			tok.Text = string(r)
			return tok, nil
		}
	}
}

// scanNum scans digits with at most one dot into the buffer. The result is
// false if the literal has no digits at all, i.e. it is a lone dot.
func (s *Scanner) scanNum() bool {
	var dig, dot bool
	for {
		r, err := s.readRune()
		if err != nil {
			break
		}
		switch {
		case isdigit(r):
			dig = true
		case r == '.' && !dot:
			dot = true
		default:
			s.unreadRune()
			return dig
		}
		s.buf.WriteRune(r)
	}
	return dig
}

func (s *Scanner) scanIdent() {
	for {
		r, err := s.readRune()
		if err != nil {
			// Next unreads the rune that decides ident scanning before
			// calling scanIdent, so we have scanned at least one rune.
			return
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			s.unreadRune()
			return
		}
		s.buf.WriteRune(r)
	}
}

func isdigit(r rune) bool {
	return '0' <= r && r <= '9'
}

// UnknownCharacterError indicates a rune that begins no token. It implements
// InputError.
type UnknownCharacterError struct {
	// Col is the position of the rune.
	Col int
	// Char is the offending rune.
	Char rune
}

func (err *UnknownCharacterError) Error() string {
	return errpos(err.Col, "unknown character "+strconv.QuoteRune(err.Char))
}

func (err *UnknownCharacterError) Pos() int {
	return err.Col
}
