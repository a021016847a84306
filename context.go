package rpncalc

import (
	"io"
	"sort"

	"github.com/sirupsen/logrus"
)

// DefaultMaxDepth is the function call nesting limit for a context created
// without the MaxDepth option.
const DefaultMaxDepth = 1000

// Context holds the variables and functions known to a session. Parsing and
// evaluation read it; declarations change it. It is not safe to use a
// Context concurrently.
type Context struct {
	vars  map[Ident]float64
	funcs map[Ident]*Function
	// depth is the current user function call nesting.
	depth int
	max   int
	log   logrus.FieldLogger
}

// ContextOption is an option used when creating a context.
type ContextOption interface {
	ctxOption()
}

type (
	varopt struct {
		name Ident
		val  float64
	}
	varsopt  map[Ident]float64
	depthopt int
	logopt   struct {
		log logrus.FieldLogger
	}
)

func (varopt) ctxOption()   {}
func (varsopt) ctxOption()  {}
func (depthopt) ctxOption() {}
func (logopt) ctxOption()   {}

// SetVar sets the value of a variable in the context.
func SetVar(name Ident, val float64) ContextOption {
	return varopt{name, val}
}

// SetVars sets the values of any number of variables in the context.
func SetVars(vars map[Ident]float64) ContextOption {
	return varsopt(vars)
}

// MaxDepth sets how deeply user function calls may nest before evaluation
// fails with a DepthError.
func MaxDepth(n int) ContextOption {
	return depthopt(n)
}

// Log sets the logger that receives debug entries about declarations,
// evaluations, and function calls.
func Log(log logrus.FieldLogger) ContextOption {
	return logopt{log}
}

var discard = func() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}()

// NewContext creates a new context with no variables or user functions.
func NewContext(opts ...ContextOption) *Context {
	ctx := Context{max: DefaultMaxDepth, log: discard}
	return ctx.Clone(opts...)
}

// Clone creates a copy of a context and applies options to it. Functions are
// immutable, so the copy shares them with ctx.
func (ctx *Context) Clone(opts ...ContextOption) *Context {
	n := Context{
		vars:  make(map[Ident]float64, len(ctx.vars)),
		funcs: make(map[Ident]*Function, len(ctx.funcs)),
		max:   ctx.max,
		log:   ctx.log,
	}
	for k, v := range ctx.vars {
		n.vars[k] = v
	}
	for k, v := range ctx.funcs {
		n.funcs[k] = v
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case varopt:
			n.Set(opt.name, opt.val)
		case varsopt:
			for k, v := range opt {
				n.Set(k, v)
			}
		case depthopt:
			n.max = int(opt)
		case logopt:
			n.log = opt.log
			if n.log == nil {
				n.log = discard
			}
		default:
			panic("rpncalc: unknown option type")
		}
	}
	return &n
}

// Set sets the value of a variable, replacing any variable or user function
// with the same name. Panics if name is the zero Ident. Returns ctx for
// chaining.
func (ctx *Context) Set(name Ident, value float64) *Context {
	if ctx.depth != 0 {
		panic("rpncalc: Set on in-use context")
	}
	if name.IsZero() {
		panic("rpncalc: Set with zero Ident")
	}
	delete(ctx.funcs, name)
	ctx.vars[name] = value
	ctx.log.WithFields(logrus.Fields{"var": name.String(), "value": value}).Debug("set variable")
	return ctx
}

// Define adds a user function, replacing any variable or user function with
// the same name. A user function takes priority over a builtin of the same
// name. Returns ctx for chaining.
func (ctx *Context) Define(f *Function) *Context {
	if ctx.depth != 0 {
		panic("rpncalc: Define on in-use context")
	}
	delete(ctx.vars, f.name)
	ctx.funcs[f.name] = f
	ctx.log.WithField("func", f.name.String()).Debugf("defined %v", f)
	return ctx
}

// Lookup returns the value of a variable.
func (ctx *Context) Lookup(name Ident) (float64, bool) {
	v, ok := ctx.vars[name]
	return v, ok
}

// Func returns the user function with the given name.
func (ctx *Context) Func(name Ident) (*Function, bool) {
	f, ok := ctx.funcs[name]
	return f, ok
}

// Vars returns the names of all variables in the context, sorted.
func (ctx *Context) Vars() []Ident {
	r := make([]Ident, 0, len(ctx.vars))
	for k := range ctx.vars {
		r = append(r, k)
	}
	sort.Slice(r, func(i, j int) bool { return r[i].name < r[j].name })
	return r
}

// Funcs returns all user functions in the context, sorted by name.
func (ctx *Context) Funcs() []*Function {
	r := make([]*Function, 0, len(ctx.funcs))
	for _, f := range ctx.funcs {
		r = append(r, f)
	}
	sort.Slice(r, func(i, j int) bool { return r[i].name.name < r[j].name.name })
	return r
}

// resolve finds what a name means in an expression: a user function, a
// variable, or a builtin, in that order. If the name is a function, the
// result is a call token; if a variable, a value token.
func (ctx *Context) resolve(name Ident) (Token, error) {
	if f, ok := ctx.funcs[name]; ok {
		return Call(name, f.Arity()), nil
	}
	if v, ok := ctx.vars[name]; ok {
		return Num(v), nil
	}
	if b, ok := builtins[name.name]; ok {
		return Call(name, b.arity), nil
	}
	return Token{}, &NameError{Name: name.name}
}

// isFunc returns whether name resolves to a user function or builtin.
func (ctx *Context) isFunc(name Ident) bool {
	if _, ok := ctx.funcs[name]; ok {
		return true
	}
	if _, ok := ctx.vars[name]; ok {
		return false
	}
	_, ok := builtins[name.name]
	return ok
}

// CallFunction calls the user function or builtin with the given name. User
// functions take priority over builtins.
func (ctx *Context) CallFunction(name Ident, args []float64) (float64, error) {
	if f, ok := ctx.funcs[name]; ok {
		return f.Call(ctx, args)
	}
	if b, ok := builtins[name.name]; ok {
		return b.call(name.name, args)
	}
	return 0, &NameError{Name: name.name}
}
