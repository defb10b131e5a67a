package routr

import (
	"errors"

	"github.com/valyala/fasthttp"
)

// TraceUserValue is the user-value key under which the dispatcher
// stores the match trace on the request context.
const TraceUserValue = "__routr::trace__"

// View is a target with a declared-parameter contract: Params names the
// values the handler needs, resolved by name against the trace (guard
// keyword values, then pattern captures, then payload) at dispatch
// time.
type View struct {
	Params []string
	Handle func(ctx *fasthttp.RequestCtx, params map[string]interface{})
}

// Dispatcher bridges a route tree to fasthttp: it matches every request
// against the tree, invokes the matched target and translates
// classified failures into responses.
type Dispatcher struct {
	root Route

	// NotFound is called when no route matched the path.
	// Defaults to a plain 404 response.
	NotFound fasthttp.RequestHandler

	// MethodNotAllowed is called when a path matched but the method did
	// not; the Allow header is already set. Defaults to a plain 405
	// response.
	MethodNotAllowed fasthttp.RequestHandler

	// GuardRejected is called when a guard rejected the request.
	// Defaults to the guard cause's StatusCode (400 if none) with the
	// cause's message as body.
	GuardRejected func(ctx *fasthttp.RequestCtx, err *GuardError)

	// PanicHandler, if set, recovers panics from targets and guards.
	PanicHandler func(ctx *fasthttp.RequestCtx, recovered interface{})
}

// NewDispatcher returns a dispatcher serving the given route tree.
func NewDispatcher(root Route) *Dispatcher {
	if root == nil {
		panic(&ConfigurationError{Reason: "dispatcher requires a route tree"})
	}

	return &Dispatcher{root: root}
}

// Root returns the served route tree.
func (d *Dispatcher) Root() Route {
	return d.root
}

func (d *Dispatcher) recv(ctx *fasthttp.RequestCtx) {
	if rcv := recover(); rcv != nil {
		d.PanicHandler(ctx, rcv)
	}
}

// Handler makes the dispatcher usable as a fasthttp request handler.
func (d *Dispatcher) Handler(ctx *fasthttp.RequestCtx) {
	if d.PanicHandler != nil {
		defer d.recv(ctx)
	}

	req := RequestFromCtx(ctx)

	tr, err := d.root.Match(req.Path(), req)
	if err == nil {
		d.dispatch(ctx, tr)

		return
	}

	switch e := err.(type) {
	case *MethodNotAllowedError:
		ctx.Response.Header.Set("Allow", e.AllowHeader())

		if d.MethodNotAllowed != nil {
			d.MethodNotAllowed(ctx)
		} else {
			ctx.Error(
				fasthttp.StatusMessage(fasthttp.StatusMethodNotAllowed),
				fasthttp.StatusMethodNotAllowed,
			)
		}
	case *GuardError:
		if d.GuardRejected != nil {
			d.GuardRejected(ctx, e)
		} else {
			code := fasthttp.StatusBadRequest

			var sc StatusCoder
			if errors.As(e.Cause, &sc) {
				code = sc.StatusCode()
			}

			ctx.Error(e.Cause.Error(), code)
		}
	default:
		if d.NotFound != nil {
			d.NotFound(ctx)
		} else {
			ctx.Error(
				fasthttp.StatusMessage(fasthttp.StatusNotFound),
				fasthttp.StatusNotFound,
			)
		}
	}
}

// dispatch hands the matched trace to its target. The engine core never
// invokes targets; this adapter does, for the target kinds it knows.
func (d *Dispatcher) dispatch(ctx *fasthttp.RequestCtx, tr *Trace) {
	ctx.SetUserValue(TraceUserValue, tr)

	switch target := tr.Target().(type) {
	case fasthttp.RequestHandler:
		target(ctx)
	case func(*fasthttp.RequestCtx):
		target(ctx)
	case View:
		d.serveView(ctx, target, tr)
	case *View:
		d.serveView(ctx, *target, tr)
	default:
		ctx.Error(
			fasthttp.StatusMessage(fasthttp.StatusInternalServerError),
			fasthttp.StatusInternalServerError,
		)
	}
}

func (d *Dispatcher) serveView(ctx *fasthttp.RequestCtx, v View, tr *Trace) {
	params := make(map[string]interface{}, len(v.Params))

	for _, name := range v.Params {
		val, ok := tr.Lookup(name)
		if !ok {
			// A declared parameter the match cannot supply is a wiring
			// bug, not a client error
			ctx.Error(
				fasthttp.StatusMessage(fasthttp.StatusInternalServerError),
				fasthttp.StatusInternalServerError,
			)

			return
		}

		params[name] = val
	}

	v.Handle(ctx, params)
}

// TraceFromCtx returns the trace the dispatcher stored on the request
// context, nil outside a dispatched request.
func TraceFromCtx(ctx *fasthttp.RequestCtx) *Trace {
	tr, _ := ctx.UserValue(TraceUserValue).(*Trace)

	return tr
}
