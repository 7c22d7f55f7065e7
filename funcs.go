package formulas

import (
	"errors"
	"math"
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

// Func is a callable entry in an interpreter's function table. *Function
// implements Func for user definitions.
type Func interface {
	// Arity returns the exact number of arguments the function accepts. The
	// interpreter checks calls against it before calling.
	Arity() int

	// Call evaluates the function. len(args) is always Arity(). Call may
	// evaluate expressions with in, in which case they see the bindings of
	// the calls active at the call site.
	Call(in *Interpreter, args []float64) (float64, error)
}

// prec is the precision in bits of intermediate results of built-in
// functions. Results are rounded to float64.
const prec = 64

var builtins = map[string]Func{
	"exp": guarded{edge: expEdge, fn: Monadic(bigfloat.Exp)},
	"ln":  guarded{edge: logEdge, fn: Monadic(bigfloat.Log)},
	"log": guarded{edge: logEdge, fn: Monadic(func(out, in *big.Float) *big.Float {
		ten := new(big.Float).SetPrec(out.Prec()).SetFloat64(10)
		return out.Quo(bigfloat.Log(out, in), bigfloat.Log(ten, ten))
	})},
	"sqrt": guarded{edge: sqrtEdge, fn: Monadic((*big.Float).Sqrt)},
	"pow":  guarded{edge: powEdge, fn: Dyadic(bigfloat.Pow)},

	// constants
	"pi": Niladic(bigfloat.Pi),
	"e": Niladic(func(out *big.Float) *big.Float {
		var one big.Float
		one.SetFloat64(1)
		return bigfloat.Exp(out, &one)
	}),
}

// Builtins returns the names of the built-in functions in sorted order.
func Builtins() []string {
	names := make([]string, 0, len(builtins))
	for k := range builtins {
		names = append(names, k)
	}
	sortstrs(names)
	return names
}

// native is a function computed with big floats.
type native struct {
	n int
	f func(out *big.Float, in []*big.Float)
}

func (f native) Arity() int {
	return f.n
}

func (f native) Call(in *Interpreter, args []float64) (r float64, err error) {
	for _, x := range args {
		if math.IsNaN(x) {
			return x, nil
		}
	}
	defer func() {
		p := recover()
		if p == nil {
			return
		}
		if e, ok := p.(error); ok && errors.As(e, new(big.ErrNaN)) {
			r, err = math.NaN(), nil
			return
		}
		panic(p)
	}()
	v := make([]*big.Float, len(args))
	for i, x := range args {
		v[i] = new(big.Float).SetPrec(prec).SetFloat64(x)
	}
	out := new(big.Float).SetPrec(prec)
	f.f(out, v)
	r, _ = out.Float64()
	return r, nil
}

// Monadic wraps a function of one variable into a Func. f receives out at the
// working precision and returns its result, which need not be out. If f is
// called on an argument outside its domain, it should panic with an error of
// type big.ErrNaN, which the call reports as a NaN result.
func Monadic(f func(out, in *big.Float) *big.Float) Func {
	return native{n: 1, f: func(out *big.Float, in []*big.Float) { out.Set(f(out, in[0])) }}
}

// Dyadic wraps a function of two variables into a Func in the same manner as
// Monadic.
func Dyadic(f func(out, x, y *big.Float) *big.Float) Func {
	return native{n: 2, f: func(out *big.Float, in []*big.Float) { out.Set(f(out, in[0], in[1])) }}
}

// Niladic wraps a function of zero variables, generally a function which
// computes a constant, into a Func. f returns its result as for Monadic.
func Niladic(f func(out *big.Float) *big.Float) Func {
	return native{n: 0, f: func(out *big.Float, _ []*big.Float) { out.Set(f(out)) }}
}

// guarded handles arguments for which a function's IEEE result is known
// without computing it, such as infinities and points outside the domain.
type guarded struct {
	edge func(args []float64) (float64, bool)
	fn   Func
}

func (g guarded) Arity() int {
	return g.fn.Arity()
}

func (g guarded) Call(in *Interpreter, args []float64) (float64, error) {
	if r, ok := g.edge(args); ok {
		return r, nil
	}
	return g.fn.Call(in, args)
}

func expEdge(args []float64) (float64, bool) {
	x := args[0]
	switch {
	case math.IsNaN(x):
		return x, true
	case math.IsInf(x, 1):
		return x, true
	case math.IsInf(x, -1):
		return 0, true
	case x == 0:
		return 1, true
	}
	return 0, false
}

func logEdge(args []float64) (float64, bool) {
	x := args[0]
	switch {
	case math.IsNaN(x), x < 0:
		return math.NaN(), true
	case x == 0:
		return math.Inf(-1), true
	case math.IsInf(x, 1):
		return x, true
	}
	return 0, false
}

func sqrtEdge(args []float64) (float64, bool) {
	x := args[0]
	switch {
	case math.IsNaN(x), x < 0:
		return math.NaN(), true
	case x == 0, math.IsInf(x, 1):
		// Keeps the sign of zero.
		return x, true
	}
	return 0, false
}

func powEdge(args []float64) (float64, bool) {
	x, y := args[0], args[1]
	if x <= 0 || math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
		return math.Pow(x, y), true
	}
	if y == 0 || x == 1 {
		return 1, true
	}
	return 0, false
}
