// Package routr is a declarative route-definition and request-dispatch
// engine. Applications build an immutable tree of path, method and
// guard rules once at startup; every incoming request is then matched
// against that tree to produce a target handler plus extracted
// parameters, or a classified failure. Named routes reverse back into
// concrete URLs.
package routr

import (
	"strings"
	"sync"

	"github.com/routr-go/routr/urlpattern"
)

// Route is one node of the route tree: either an *Endpoint bound to a
// target handler, or a *Group with an ordered list of children. The
// tree is immutable after construction and safe for concurrent
// matching.
type Route interface {
	// Match matches the remaining path and the request against this
	// subtree, returning the accumulated trace or a classified failure
	// (NoMatchError, MethodNotAllowedError or GuardError).
	Match(path string, req Request) (*Trace, error)

	// Reverse generates the URL of the named route below this node,
	// substituting args for its pattern placeholders.
	Reverse(name string, args ...interface{}) (string, error)

	// Pattern returns the node's compiled pattern, nil if absent.
	Pattern() *urlpattern.Pattern

	// Guards returns the node's ordered guard list.
	Guards() []Guard

	// Annotations returns the node's annotation mapping.
	Annotations() map[string]interface{}

	reverseIndex() (map[string]*urlpattern.Pattern, error)
}

// Endpoint is a leaf route bound to one target handler and one method.
type Endpoint struct {
	pattern     *urlpattern.Pattern
	method      string
	target      interface{}
	name        string
	guards      []Guard
	annotations map[string]interface{}
}

// Method returns the HTTP method the endpoint is bound to.
func (e *Endpoint) Method() string {
	return e.method
}

// Target returns the opaque handler reference. The engine never invokes
// it.
func (e *Endpoint) Target() interface{} {
	return e.target
}

// Name returns the endpoint's reversal name, empty if unnamed.
func (e *Endpoint) Name() string {
	return e.name
}

func (e *Endpoint) Pattern() *urlpattern.Pattern {
	return e.pattern
}

func (e *Endpoint) Guards() []Guard {
	return e.guards
}

func (e *Endpoint) Annotations() map[string]interface{} {
	return e.annotations
}

// Group is an interior route with ordered children, matched by trying
// each child in declared order.
type Group struct {
	pattern     *urlpattern.Pattern
	children    []Route
	guards      []Guard
	annotations map[string]interface{}

	revOnce sync.Once
	revIdx  map[string]*urlpattern.Pattern
	revErr  error
}

// Children returns the group's children in declared order.
func (g *Group) Children() []Route {
	return g.children
}

func (g *Group) Pattern() *urlpattern.Pattern {
	return g.pattern
}

func (g *Group) Guards() []Guard {
	return g.guards
}

func (g *Group) Annotations() map[string]interface{} {
	return g.annotations
}

// Def is a route definition: either an endpoint (Target set, optionally
// Method and Name) or a group (Children set). Pattern, Guards and
// Annotations apply to both.
type Def struct {
	Method      string
	Pattern     string
	Target      interface{}
	Children    []Route
	Guards      []Guard
	Name        string
	Annotations map[string]interface{}
}

// TryNew validates def and builds the route. All shape ambiguity is
// rejected here, never at request time.
func TryNew(def Def) (Route, error) {
	hasTarget := def.Target != nil
	hasChildren := len(def.Children) > 0

	switch {
	case !hasTarget && !hasChildren:
		return nil, &ConfigurationError{Reason: "empty route definition: a target or children are required"}
	case hasTarget && hasChildren:
		return nil, &ConfigurationError{Reason: "a route cannot have both a target and children"}
	}

	pattern, err := compilePattern(def.Pattern)
	if err != nil {
		return nil, err
	}

	guards := make([]Guard, len(def.Guards))
	copy(guards, def.Guards)

	annotations := copyAnnotations(def.Annotations)

	if hasChildren {
		switch {
		case def.Method != "":
			return nil, &ConfigurationError{Reason: "a method marker is not allowed on a group"}
		case def.Name != "":
			return nil, &ConfigurationError{Reason: "a name is not allowed on a group"}
		}

		children := make([]Route, len(def.Children))

		for i, child := range def.Children {
			if child == nil {
				return nil, &ConfigurationError{Reason: "nil child in group definition"}
			}

			children[i] = child
		}

		return &Group{
			pattern:     pattern,
			children:    children,
			guards:      guards,
			annotations: annotations,
		}, nil
	}

	if _, ok := def.Target.(Route); ok {
		return nil, &ConfigurationError{Reason: "a route cannot be used as an endpoint target, add it as a child instead"}
	}

	method := def.Method
	if method == "" {
		method = MethodGet
	}

	return &Endpoint{
		pattern:     pattern,
		method:      method,
		target:      def.Target,
		name:        def.Name,
		guards:      guards,
		annotations: annotations,
	}, nil
}

// New is like TryNew but panics on an invalid definition. Route trees
// are built once at startup, so configuration errors halt it.
func New(def Def) Route {
	r, err := TryNew(def)
	if err != nil {
		panic(err)
	}

	return r
}

// compilePattern normalizes and eagerly compiles a path template.
// The empty template means "no pattern" (matching identity). A missing
// leading slash is added, like in '/'-rooted request paths.
func compilePattern(raw string) (*urlpattern.Pattern, error) {
	if raw == "" {
		return nil, nil
	}

	if !strings.HasPrefix(raw, "/") {
		raw = "/" + raw
	}

	p, err := urlpattern.Compile(raw)
	if err != nil {
		return nil, &ConfigurationError{Reason: err.Error()}
	}

	return p, nil
}

func copyAnnotations(annotations map[string]interface{}) map[string]interface{} {
	if len(annotations) == 0 {
		return nil
	}

	cp := make(map[string]interface{}, len(annotations))
	for k, v := range annotations {
		cp[k] = v
	}

	return cp
}

// Option configures an endpoint built through the method shortcuts.
type Option func(*Def)

// WithGuards appends guards to the route's guard list, in order.
func WithGuards(guards ...Guard) Option {
	return func(def *Def) {
		def.Guards = append(def.Guards, guards...)
	}
}

// WithName sets the route's reversal name.
func WithName(name string) Option {
	return func(def *Def) {
		def.Name = name
	}
}

// WithAnnotations overlays the given annotations onto the route.
func WithAnnotations(annotations map[string]interface{}) Option {
	return func(def *Def) {
		if def.Annotations == nil {
			def.Annotations = make(map[string]interface{}, len(annotations))
		}

		for k, v := range annotations {
			def.Annotations[k] = v
		}
	}
}

// Handle builds an endpoint for the given method and path template.
// It panics on an invalid definition.
//
// For GET, POST, PUT, PATCH and DELETE the respective shortcut
// functions can be used.
func Handle(method, pattern string, target interface{}, opts ...Option) *Endpoint {
	def := Def{
		Method:  method,
		Pattern: pattern,
		Target:  target,
	}

	for _, opt := range opts {
		opt(&def)
	}

	return New(def).(*Endpoint)
}

// GET is a shortcut for Handle(MethodGet, pattern, target, opts...)
func GET(pattern string, target interface{}, opts ...Option) *Endpoint {
	return Handle(MethodGet, pattern, target, opts...)
}

// HEAD is a shortcut for Handle(MethodHead, pattern, target, opts...)
func HEAD(pattern string, target interface{}, opts ...Option) *Endpoint {
	return Handle(MethodHead, pattern, target, opts...)
}

// POST is a shortcut for Handle(MethodPost, pattern, target, opts...)
func POST(pattern string, target interface{}, opts ...Option) *Endpoint {
	return Handle(MethodPost, pattern, target, opts...)
}

// PUT is a shortcut for Handle(MethodPut, pattern, target, opts...)
func PUT(pattern string, target interface{}, opts ...Option) *Endpoint {
	return Handle(MethodPut, pattern, target, opts...)
}

// PATCH is a shortcut for Handle(MethodPatch, pattern, target, opts...)
func PATCH(pattern string, target interface{}, opts ...Option) *Endpoint {
	return Handle(MethodPatch, pattern, target, opts...)
}

// DELETE is a shortcut for Handle(MethodDelete, pattern, target, opts...)
func DELETE(pattern string, target interface{}, opts ...Option) *Endpoint {
	return Handle(MethodDelete, pattern, target, opts...)
}

// OPTIONS is a shortcut for Handle(MethodOptions, pattern, target, opts...)
func OPTIONS(pattern string, target interface{}, opts ...Option) *Endpoint {
	return Handle(MethodOptions, pattern, target, opts...)
}

// ANY is a shortcut for Handle(MethodWild, pattern, target, opts...)
//
// WARNING: Use only for routes where the request method is not important
func ANY(pattern string, target interface{}, opts ...Option) *Endpoint {
	return Handle(MethodWild, pattern, target, opts...)
}

// NewGroup builds a group with the given path template and children.
// It panics on an invalid definition. Use New for groups that carry
// guards or annotations.
func NewGroup(pattern string, children ...Route) *Group {
	return New(Def{
		Pattern:  pattern,
		Children: children,
	}).(*Group)
}
