package formulas

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/oarkflow/log"
)

// Interpreter evaluates programs. It keeps a table of functions for its whole
// lifetime; variables exist only as the parameters of active calls, and a
// called function sees the parameters of every call still active beneath it
// unless it shadows them with its own. It is not safe to use an Interpreter
// concurrently.
type Interpreter struct {
	funcs    map[string]Func
	frames   frames
	maxDepth int
	log      *log.Logger
}

// NewInterpreter creates an interpreter with an empty function table, then
// applies options in order.
func NewInterpreter(opts ...Option) *Interpreter {
	in := Interpreter{
		funcs:  make(map[string]Func),
		frames: newFrames(),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.apply(&in)
	}
	return &in
}

// Define sets the function for a name, replacing any previous definition. A
// nil fn removes the name.
func (in *Interpreter) Define(name string, fn Func) {
	_, replaced := in.funcs[name]
	setfunc(in.funcs, name, fn)
	if fn == nil {
		return
	}
	if in.log != nil {
		in.log.Debug().Str("func", name).Int("arity", fn.Arity()).Bool("replaced", replaced).Msg("defined function")
	}
}

// Lookup returns the function defined for a name, or nil if there is none.
func (in *Interpreter) Lookup(name string) Func {
	return in.funcs[name]
}

// Functions returns the names of all defined functions in sorted order.
func (in *Interpreter) Functions() []string {
	names := make([]string, 0, len(in.funcs))
	for k := range in.funcs {
		names = append(names, k)
	}
	sortstrs(names)
	return names
}

// Depth returns the number of active calls of user-defined functions. It is
// zero between statements.
func (in *Interpreter) Depth() int {
	return in.frames.depth()
}

// Interpret executes the statements of a program in order. Each expression
// statement's result is passed to emit, which may be nil. The first error
// stops execution; statements before it keep their effects.
func (in *Interpreter) Interpret(prog Program, emit func(float64)) error {
	for _, s := range prog {
		switch s := s.(type) {
		case *Function:
			in.Define(s.Name, s)
		case *ExprStmt:
			r, err := in.Eval(s.X)
			if err != nil {
				return err
			}
			if emit != nil {
				emit(r)
			}
		default:
			panic(fmt.Sprintf("formulas: invalid statement %T", s))
		}
	}
	return nil
}

// Exec scans, parses, and interprets one line of source.
func (in *Interpreter) Exec(src string, emit func(float64)) error {
	prog, err := ParseString(src)
	if err != nil {
		return err
	}
	return in.Interpret(prog, emit)
}

// Eval evaluates an expression against the bindings of the active calls, or
// against no bindings if no call is active.
func (in *Interpreter) Eval(e Expr) (float64, error) {
	switch e := e.(type) {
	case *Num:
		return e.Value, nil
	case *Name:
		v, ok := in.frames.lookup(e.Name)
		if !ok {
			return 0, &NameError{Name: e.Name}
		}
		return v, nil
	case *BinaryOp:
		l, err := in.Eval(e.Left)
		if err != nil {
			return 0, err
		}
		r, err := in.Eval(e.Right)
		if err != nil {
			return 0, err
		}
		switch e.Op {
		case TokenPlus:
			return l + r, nil
		case TokenMinus:
			return l - r, nil
		case TokenStar:
			return l * r, nil
		case TokenSlash:
			return l / r, nil
		default:
			return 0, &OperatorError{Op: e.Op}
		}
	case *Call:
		// Arguments are evaluated in the caller's environment before the
		// function is looked up.
		args := make([]float64, len(e.Args))
		for i, a := range e.Args {
			v, err := in.Eval(a)
			if err != nil {
				return 0, err
			}
			args[i] = v
		}
		fn := in.funcs[e.Func]
		if fn == nil {
			return 0, &FuncError{Name: e.Func}
		}
		if n := fn.Arity(); n != len(args) {
			return 0, &ArityError{Func: e.Func, Want: n, Got: len(args)}
		}
		return fn.Call(in, args)
	default:
		panic(fmt.Sprintf("formulas: invalid AST node %T", e))
	}
}

// Arity returns the number of parameters f declares.
func (f *Function) Arity() int {
	return len(f.Params)
}

// Call evaluates the body of f with its parameters bound to args on top of
// the bindings of all active calls.
func (f *Function) Call(in *Interpreter, args []float64) (float64, error) {
	if in.maxDepth > 0 && in.frames.depth() >= in.maxDepth {
		if in.log != nil {
			in.log.Debug().Str("func", f.Name).Int("limit", in.maxDepth).Msg("call depth limit reached")
		}
		return 0, &DepthError{Func: f.Name, Limit: in.maxDepth}
	}
	pop := in.frames.push(f.Name, f.Params, args)
	defer pop()
	return in.Eval(f.Body)
}

// sortstrs sorts a string slice without using package sort because that has
// reflection and allocation problems.
func sortstrs(names []string) {
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j] < names[j-1]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
}

// NameError is an error from a lookup for a variable that is not bound by any
// active call.
type NameError struct {
	// Name is the name that was missing.
	Name string
}

func (err *NameError) Error() string {
	return "undefined variable: " + strconv.Quote(err.Name)
}

// FuncError is an error from a call of a function that is not defined.
type FuncError struct {
	// Name is the function that was called.
	Name string
}

func (err *FuncError) Error() string {
	return "undefined function: " + strconv.Quote(err.Name)
}

// ArityError is an error indicating a function call with the wrong number of
// arguments.
type ArityError struct {
	// Func is the function that was called.
	Func string
	// Want is the number of parameters the function declares.
	Want int
	// Got is the number of arguments in the call.
	Got int
}

func (err *ArityError) Error() string {
	return "cannot call " + err.Func + " with " + strconv.Itoa(err.Got) + " arguments (want " + strconv.Itoa(err.Want) + ")"
}

// OperatorError indicates a binary operation whose operator is not
// arithmetic. The parser never produces one, so this means the tree was
// built by hand.
type OperatorError struct {
	Op TokenKind
}

func (err *OperatorError) Error() string {
	return "unsupported operator " + err.Op.String()
}

// DepthError is an error returned when a call would exceed the interpreter's
// call depth limit.
type DepthError struct {
	// Func is the function whose call was refused.
	Func string
	// Limit is the maximum call depth.
	Limit int
}

func (err *DepthError) Error() string {
	var b strings.Builder
	b.WriteString("recursion limit exceeded calling ")
	b.WriteString(err.Func)
	b.WriteString(" (limit ")
	b.WriteString(strconv.Itoa(err.Limit))
	b.WriteByte(')')
	return b.String()
}
