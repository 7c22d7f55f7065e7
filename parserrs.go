package formulas

import "strconv"

// UnexpectedTokenError is an error indicating a token that cannot begin an
// operand where one is required. It implements InputError.
type UnexpectedTokenError struct {
	// Col is the position of the token.
	Col int
	// Got is the token that was found.
	Got Token
}

func (err *UnexpectedTokenError) Error() string {
	if err.Got.Kind == TokenEOF {
		return errpos(err.Col, "unexpected end of input")
	}
	return errpos(err.Col, "unexpected token "+err.Got.String())
}

func (err *UnexpectedTokenError) Pos() int {
	return err.Col
}

// ExpectedTokenError is an error indicating that a specific token, such as a
// closing bracket, was required but missing. It implements InputError.
type ExpectedTokenError struct {
	// Col is the position of the token found instead.
	Col int
	// Want is the kind of token the parser required.
	Want TokenKind
	// Got is the token that was found.
	Got Token
}

func (err *ExpectedTokenError) Error() string {
	return errpos(err.Col, "expected "+err.Want.String()+", got "+err.Got.String())
}

func (err *ExpectedTokenError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// scanning or parsing invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*UnknownCharacterError)(nil)
	_ InputError = (*UnexpectedTokenError)(nil)
	_ InputError = (*ExpectedTokenError)(nil)
)
