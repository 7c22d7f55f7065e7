package formulas

import "github.com/oarkflow/log"

// Option is an option used when creating an interpreter.
type Option interface {
	apply(*Interpreter)
}

type (
	funcopt struct {
		name string
		fn   Func
	}
	funcsopt  map[string]Func
	depthopt  int
	loggeropt struct{ l *log.Logger }
	builtopt  struct{}
)

// SetFunc defines a function in the interpreter's table. A nil fn removes the
// name instead.
func SetFunc(name string, fn Func) Option {
	return funcopt{name, fn}
}

// SetFuncs defines any number of functions in the interpreter's table, with
// nil values removing names as for SetFunc.
func SetFuncs(fns map[string]Func) Option {
	return funcsopt(fns)
}

// MaxDepth limits the number of simultaneously active calls of user-defined
// functions. A call beyond the limit fails with a *DepthError. Zero, the
// default, means no limit; recursion is then bounded only by the goroutine
// stack.
func MaxDepth(n int) Option {
	return depthopt(n)
}

// WithLogger sets a logger to receive debug events, e.g. function
// definitions.
func WithLogger(l *log.Logger) Option {
	return loggeropt{l}
}

// WithBuiltins defines the built-in functions exp, ln, log, sqrt, pow, pi,
// and e. Later definitions of the same names replace them.
func WithBuiltins() Option {
	return builtopt{}
}

func (o funcopt) apply(in *Interpreter) {
	setfunc(in.funcs, o.name, o.fn)
}

func (o funcsopt) apply(in *Interpreter) {
	for k, v := range o {
		setfunc(in.funcs, k, v)
	}
}

func setfunc(m map[string]Func, name string, fn Func) {
	if fn == nil {
		delete(m, name)
		return
	}
	m[name] = fn
}

func (o depthopt) apply(in *Interpreter) {
	if o < 0 {
		o = 0
	}
	in.maxDepth = int(o)
}

func (o loggeropt) apply(in *Interpreter) {
	in.log = o.l
}

func (builtopt) apply(in *Interpreter) {
	for k, v := range builtins {
		in.funcs[k] = v
	}
}
