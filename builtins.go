package rpncalc

import (
	"math"
	"sort"
)

// builtin is a function implemented in Go. Builtins are resolved by name
// after user functions and variables.
type builtin struct {
	arity int
	f     func(args []float64) float64
}

var builtins = map[string]builtin{
	"sin":  monadic(math.Sin),
	"cos":  monadic(math.Cos),
	"tan":  monadic(math.Tan),
	"asin": monadic(math.Asin),
	"acos": monadic(math.Acos),
	"atan": monadic(math.Atan),
	"min":  dyadic(math.Min),
	"max":  dyadic(math.Max),
}

// monadic wraps a function of one variable.
func monadic(f func(float64) float64) builtin {
	return builtin{
		arity: 1,
		f:     func(args []float64) float64 { return f(args[0]) },
	}
}

// dyadic wraps a function of two variables.
func dyadic(f func(a, b float64) float64) builtin {
	return builtin{
		arity: 2,
		f:     func(args []float64) float64 { return f(args[0], args[1]) },
	}
}

func (b builtin) call(name string, args []float64) (float64, error) {
	if len(args) != b.arity {
		return 0, &CallError{Func: name, Want: b.arity, Have: len(args)}
	}
	r := b.f(args)
	if math.IsNaN(r) {
		for _, x := range args {
			if math.IsNaN(x) {
				return r, nil
			}
		}
		return 0, &DomainError{X: args[0], Func: name}
	}
	return r, nil
}

// Builtins returns the names of the builtin functions, sorted.
func Builtins() []string {
	r := make([]string, 0, len(builtins))
	for k := range builtins {
		r = append(r, k)
	}
	sort.Strings(r)
	return r
}

// IsBuiltin returns whether name is a builtin function.
func IsBuiltin(name string) bool {
	_, ok := builtins[name]
	return ok
}
