package routr

import (
	"net/url"

	"github.com/valyala/bytebufferpool"

	"github.com/routr-go/routr/urlpattern"
)

const questionMark = byte('?')

// Reverse generates the URL of the named route below the endpoint
// itself, i.e. its own pattern. Present for interface symmetry with
// Group.
func (e *Endpoint) Reverse(name string, args ...interface{}) (string, error) {
	return reverseRoute(e, name, args...)
}

// Reverse generates the URL of the named route in the group's subtree,
// substituting args for the placeholders of the fully ancestor-prefixed
// pattern.
func (g *Group) Reverse(name string, args ...interface{}) (string, error) {
	return reverseRoute(g, name, args...)
}

// ReverseQuery is like Reverse but appends the encoded query values.
func (g *Group) ReverseQuery(name string, query url.Values, args ...interface{}) (string, error) {
	path, err := g.Reverse(name, args...)
	if err != nil {
		return "", err
	}

	if len(query) == 0 {
		return path, nil
	}

	uri := bytebufferpool.Get()
	defer bytebufferpool.Put(uri)

	uri.SetString(path)
	uri.WriteByte(questionMark)
	uri.WriteString(query.Encode())

	return uri.String(), nil
}

func reverseRoute(r Route, name string, args ...interface{}) (string, error) {
	idx, err := r.reverseIndex()
	if err != nil {
		return "", err
	}

	p, ok := idx[name]
	if !ok {
		return "", &ReversalError{Name: name, Reason: "no route with this name"}
	}

	if p == nil {
		// A fully patternless chain reverses to the root path
		return "/", nil
	}

	path, err := p.Reverse(args...)
	if err != nil {
		return "", &ReversalError{Name: name, Reason: err.Error()}
	}

	return path, nil
}

// reverseIndex of an endpoint is its own name bound to its own pattern.
func (e *Endpoint) reverseIndex() (map[string]*urlpattern.Pattern, error) {
	if e.name == "" {
		return nil, nil
	}

	return map[string]*urlpattern.Pattern{e.name: e.pattern}, nil
}

// reverseIndex of a group is the union of its children's indices, every
// pattern prefixed with the group's own. It is built once on first use
// and memoized; the tree is immutable so it is never invalidated. A
// name reachable twice within the subtree is a configuration error.
func (g *Group) reverseIndex() (map[string]*urlpattern.Pattern, error) {
	g.revOnce.Do(func() {
		idx := make(map[string]*urlpattern.Pattern)

		for _, child := range g.children {
			sub, err := child.reverseIndex()
			if err != nil {
				g.revErr = err

				return
			}

			for name, p := range sub {
				if _, dup := idx[name]; dup {
					g.revErr = &ConfigurationError{Reason: "duplicate route name '" + name + "'"}

					return
				}

				full, err := urlpattern.Concat(g.pattern, p)
				if err != nil {
					g.revErr = &ConfigurationError{Reason: err.Error()}

					return
				}

				idx[name] = full
			}
		}

		g.revIdx = idx
	})

	return g.revIdx, g.revErr
}
