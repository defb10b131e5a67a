// Package schema provides guards that constrain routes on query-string
// parameters: typed declarations with optional values and defaults, and
// struct binding validated with go-playground/validator tag rules.
package schema

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/valyala/fasthttp"

	"github.com/routr-go/routr"
)

var validate = validator.New()

// Kind is the declared type of a query parameter.
type Kind uint8

const (
	String Kind = iota
	Int
	Float
	Bool
)

func (k Kind) convert(raw string) (interface{}, error) {
	switch k {
	case Int:
		return strconv.Atoi(raw)
	case Float:
		return strconv.ParseFloat(raw, 64)
	case Bool:
		return strconv.ParseBool(raw)
	default:
		return raw, nil
	}
}

// Param declares one query parameter.
type Param struct {
	Name     string
	Kind     Kind
	Optional bool
	Default  interface{}

	// Rules holds validator tag rules applied to the converted value,
	// e.g. "min=1,max=100".
	Rules string
}

// Required declares a mandatory query parameter.
func Required(name string, kind Kind) Param {
	return Param{Name: name, Kind: kind}
}

// Opt declares an optional query parameter without a default.
func Opt(name string, kind Kind) Param {
	return Param{Name: name, Kind: kind, Optional: true}
}

// OptDefault declares an optional query parameter with a default value
// used when the parameter is absent.
func OptDefault(name string, kind Kind, def interface{}) Param {
	return Param{Name: name, Kind: kind, Optional: true, Default: def}
}

// Validate attaches validator tag rules to the parameter.
func (p Param) Validate(rules string) Param {
	p.Rules = rules

	return p
}

// BadRequestError is the rejection raised by schema guards. It maps to
// 400 Bad Request.
type BadRequestError struct {
	Param  string
	Reason string
}

func (e *BadRequestError) Error() string {
	return "schema: invalid query parameter '" + e.Param + "': " + e.Reason
}

func (e *BadRequestError) StatusCode() int {
	return fasthttp.StatusBadRequest
}

type queryParams struct {
	params []Param
}

// QueryParams returns a guard that converts and validates the declared
// query parameters and stores the converted values as trace keyword
// values. Declarations are checked in order; the first failing one
// rejects the request.
func QueryParams(params ...Param) routr.Guard {
	for _, p := range params {
		if p.Name == "" {
			panic(&routr.ConfigurationError{Reason: "schema: query parameter without a name"})
		}
	}

	return queryParams{params: params}
}

func (g queryParams) Check(req routr.Request, tr *routr.Trace) error {
	values := queryOf(req)

	for _, p := range g.params {
		raw, present := firstValue(values, p.Name)
		if !present {
			if !p.Optional {
				return &BadRequestError{Param: p.Name, Reason: "required"}
			}

			if p.Default != nil {
				tr.SetKwarg(p.Name, p.Default)
			}

			continue
		}

		v, err := p.Kind.convert(raw)
		if err != nil {
			return &BadRequestError{Param: p.Name, Reason: "malformed value '" + raw + "'"}
		}

		if p.Rules != "" {
			if err := validate.Var(v, p.Rules); err != nil {
				return &BadRequestError{Param: p.Name, Reason: err.Error()}
			}
		}

		tr.SetKwarg(p.Name, v)
	}

	return nil
}

func queryOf(req routr.Request) url.Values {
	q, ok := req.(routr.Queryer)
	if !ok {
		return nil
	}

	return q.Query()
}

func firstValue(values url.Values, name string) (string, bool) {
	vs, ok := values[name]
	if !ok || len(vs) == 0 {
		return "", false
	}

	return vs[0], true
}

// guardPanic is a convenience for misdeclared bindings discovered at
// guard construction.
func guardPanic(format string, args ...interface{}) {
	panic(&routr.ConfigurationError{Reason: fmt.Sprintf(format, args...)})
}
