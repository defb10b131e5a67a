package routr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/valyala/fasthttp"
)

func newCtx(method, uri string) *fasthttp.RequestCtx {
	var req fasthttp.Request

	req.Header.SetMethod(method)
	req.SetRequestURI(uri)

	ctx := &fasthttp.RequestCtx{}
	ctx.Init(&req, nil, nil)

	return ctx
}

func TestDispatcherServesTarget(t *testing.T) {
	invoked := false

	d := NewDispatcher(NewGroup("api",
		GET("news", fasthttp.RequestHandler(func(ctx *fasthttp.RequestCtx) {
			invoked = true
			ctx.SetBodyString("news")
		})),
	))

	ctx := newCtx(MethodGet, "/api/news")
	d.Handler(ctx)

	if !invoked {
		t.Fatal("target handler was not invoked")
	}

	if ctx.Response.StatusCode() != fasthttp.StatusOK {
		t.Errorf("status == %d, want 200", ctx.Response.StatusCode())
	}

	tr := TraceFromCtx(ctx)
	if tr == nil || tr.Target() == nil {
		t.Error("trace must be stored on the request context")
	}
}

func TestDispatcherNotFound(t *testing.T) {
	d := NewDispatcher(NewGroup("api",
		GET("news", func(ctx *fasthttp.RequestCtx) {}),
	))

	ctx := newCtx(MethodGet, "/api/missing")
	d.Handler(ctx)

	if ctx.Response.StatusCode() != fasthttp.StatusNotFound {
		t.Errorf("status == %d, want 404", ctx.Response.StatusCode())
	}

	// Custom NotFound handler takes over
	custom := false
	d.NotFound = func(ctx *fasthttp.RequestCtx) {
		custom = true
		ctx.SetStatusCode(fasthttp.StatusTeapot)
	}

	ctx = newCtx(MethodGet, "/api/missing")
	d.Handler(ctx)

	if !custom || ctx.Response.StatusCode() != fasthttp.StatusTeapot {
		t.Error("custom NotFound handler was not used")
	}
}

func TestDispatcherMethodNotAllowed(t *testing.T) {
	d := NewDispatcher(NewGroup("api",
		GET("news", func(ctx *fasthttp.RequestCtx) {}),
		POST("news", func(ctx *fasthttp.RequestCtx) {}),
	))

	ctx := newCtx(MethodDelete, "/api/news")
	d.Handler(ctx)

	if ctx.Response.StatusCode() != fasthttp.StatusMethodNotAllowed {
		t.Errorf("status == %d, want 405", ctx.Response.StatusCode())
	}

	if allow := string(ctx.Response.Header.Peek("Allow")); allow != "GET, POST" {
		t.Errorf("Allow == %q, want 'GET, POST'", allow)
	}
}

type teapotRejection struct{}

func (teapotRejection) Error() string {
	return "short and stout"
}

func (teapotRejection) StatusCode() int {
	return fasthttp.StatusTeapot
}

func TestDispatcherGuardRejected(t *testing.T) {
	d := NewDispatcher(NewGroup("api",
		GET("news", func(ctx *fasthttp.RequestCtx) {},
			WithGuards(GuardFunc(func(Request, *Trace) error {
				return errors.New("nope")
			}))),
	))

	ctx := newCtx(MethodGet, "/api/news")
	d.Handler(ctx)

	if ctx.Response.StatusCode() != fasthttp.StatusBadRequest {
		t.Errorf("status == %d, want 400 by default", ctx.Response.StatusCode())
	}

	// A rejection with its own status code wins
	d = NewDispatcher(NewGroup("api",
		GET("news", func(ctx *fasthttp.RequestCtx) {},
			WithGuards(GuardFunc(func(Request, *Trace) error {
				return teapotRejection{}
			}))),
	))

	ctx = newCtx(MethodGet, "/api/news")
	d.Handler(ctx)

	if ctx.Response.StatusCode() != fasthttp.StatusTeapot {
		t.Errorf("status == %d, want the rejection's own 418", ctx.Response.StatusCode())
	}
}

func TestDispatcherView(t *testing.T) {
	var got map[string]interface{}

	d := NewDispatcher(NewGroup("news",
		GET("{id:int}", View{
			Params: []string{"id", "who"},
			Handle: func(ctx *fasthttp.RequestCtx, params map[string]interface{}) {
				got = params
				fmt.Fprintf(ctx, "news %v", params["id"])
			},
		}, WithGuards(GuardFunc(func(_ Request, tr *Trace) error {
			tr.SetKwarg("who", "alice")

			return nil
		}))),
	))

	ctx := newCtx(MethodGet, "/news/42")
	d.Handler(ctx)

	if got == nil {
		t.Fatal("view was not invoked")
	}

	if got["id"] != 42 || got["who"] != "alice" {
		t.Errorf("params == %v, want id=42 who=alice", got)
	}
}

func TestDispatcherViewMissingParam(t *testing.T) {
	d := NewDispatcher(NewGroup("news",
		GET("{id:int}", View{
			Params: []string{"absent"},
			Handle: func(ctx *fasthttp.RequestCtx, params map[string]interface{}) {
				t.Error("view must not run with unresolved params")
			},
		}),
	))

	ctx := newCtx(MethodGet, "/news/42")
	d.Handler(ctx)

	if ctx.Response.StatusCode() != fasthttp.StatusInternalServerError {
		t.Errorf("status == %d, want 500", ctx.Response.StatusCode())
	}
}

func TestDispatcherUnknownTargetKind(t *testing.T) {
	d := NewDispatcher(NewGroup("api",
		GET("news", "not a handler"),
	))

	ctx := newCtx(MethodGet, "/api/news")
	d.Handler(ctx)

	if ctx.Response.StatusCode() != fasthttp.StatusInternalServerError {
		t.Errorf("status == %d, want 500", ctx.Response.StatusCode())
	}
}

func TestDispatcherPanicHandler(t *testing.T) {
	var recovered interface{}

	d := NewDispatcher(NewGroup("api",
		GET("news", func(ctx *fasthttp.RequestCtx) {
			panic("boom")
		}),
	))
	d.PanicHandler = func(ctx *fasthttp.RequestCtx, rcv interface{}) {
		recovered = rcv
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
	}

	ctx := newCtx(MethodGet, "/api/news")
	d.Handler(ctx)

	if recovered != "boom" {
		t.Errorf("recovered == %v, want 'boom'", recovered)
	}
}

func TestDispatcherRequiresRoot(t *testing.T) {
	if recv := catchPanic(func() { NewDispatcher(nil) }); recv == nil {
		t.Error("NewDispatcher(nil) must panic")
	}
}

func TestRequestFromCtx(t *testing.T) {
	ctx := newCtx(MethodPost, "/api/news?page=2&page=3&q=go")

	req := RequestFromCtx(ctx)

	if req.Path() != "/api/news" {
		t.Errorf("path == %q, want '/api/news'", req.Path())
	}

	if req.Method() != MethodPost {
		t.Errorf("method == %q, want POST", req.Method())
	}

	q, ok := req.(Queryer)
	if !ok {
		t.Fatal("ctx request must implement Queryer")
	}

	values := q.Query()
	if got := values["page"]; len(got) != 2 || got[0] != "2" {
		t.Errorf("query['page'] == %v, want [2 3]", got)
	}

	if values.Get("q") != "go" {
		t.Errorf("query['q'] == %q, want 'go'", values.Get("q"))
	}
}

func TestNewRequestQuery(t *testing.T) {
	req := NewRequest(MethodGet, "/news/42/?q=search&page=100")

	if req.Path() != "/news/42/" {
		t.Errorf("path == %q, want '/news/42/'", req.Path())
	}

	q, ok := req.(Queryer)
	if !ok {
		t.Fatal("request must implement Queryer")
	}

	if q.Query().Get("page") != "100" {
		t.Errorf("query['page'] == %q, want '100'", q.Query().Get("page"))
	}
}
