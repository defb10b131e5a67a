package routr

import (
	"net/url"
	"strings"

	"github.com/savsgio/gotils/strconv"
	"github.com/valyala/fasthttp"
)

// Request is the incoming-request abstraction consumed by the engine.
// Matching only needs the path and the method; guards may type-assert
// for richer optional interfaces such as Queryer.
type Request interface {
	Path() string
	Method() string
}

// Queryer is optionally implemented by requests that carry query
// parameters.
type Queryer interface {
	Query() url.Values
}

type simpleRequest struct {
	method string
	path   string
	query  url.Values
}

// NewRequest returns a minimal Request for the given method and
// request-URI. A query string in uri is split off the path and exposed
// through the Queryer interface.
func NewRequest(method, uri string) Request {
	path, rawQuery, _ := strings.Cut(uri, "?")

	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		query = nil
	}

	return &simpleRequest{
		method: method,
		path:   path,
		query:  query,
	}
}

func (r *simpleRequest) Path() string {
	return r.path
}

func (r *simpleRequest) Method() string {
	return r.method
}

func (r *simpleRequest) Query() url.Values {
	return r.query
}

type ctxRequest struct {
	ctx *fasthttp.RequestCtx
}

// RequestFromCtx adapts a fasthttp request context to the Request
// interface.
func RequestFromCtx(ctx *fasthttp.RequestCtx) Request {
	return ctxRequest{ctx: ctx}
}

func (r ctxRequest) Path() string {
	return strconv.B2S(r.ctx.Path())
}

func (r ctxRequest) Method() string {
	return strconv.B2S(r.ctx.Method())
}

func (r ctxRequest) Query() url.Values {
	query := make(url.Values, r.ctx.QueryArgs().Len())

	r.ctx.QueryArgs().VisitAll(func(key, value []byte) {
		k := string(key)
		query[k] = append(query[k], string(value))
	})

	return query
}
