package routr

import (
	gstrings "github.com/savsgio/gotils/strings"
)

// Match matches the request against the route tree rooted at root.
// It returns the complete trace on success, or exactly one classified
// failure: NoMatchError when nothing matched the path,
// MethodNotAllowedError when a path matched but no method did, or
// GuardError when a guard rejected the request.
func Match(root Route, req Request) (*Trace, error) {
	return root.Match(req.Path(), req)
}

// Match matches the remaining path against the endpoint. The endpoint
// must consume the entire remaining path; an endpoint without a pattern
// only matches an empty remainder or a bare slash.
func (e *Endpoint) Match(path string, req Request) (*Trace, error) {
	var args []interface{}

	if e.pattern == nil {
		if path != "" && path != "/" {
			return nil, &NoMatchError{Path: path}
		}
	} else {
		rest, captured, ok := e.pattern.Match(path)
		if !ok || rest != "" {
			return nil, &NoMatchError{Path: path}
		}

		args = captured
	}

	if e.method != MethodWild && e.method != req.Method() {
		return nil, &MethodNotAllowedError{
			Method: req.Method(),
			Allow:  []string{e.method},
		}
	}

	tr := newTrace(args, e)

	if err := foldGuards(e.guards, req, tr); err != nil {
		return nil, err
	}

	return tr, nil
}

// Match matches the remaining path against the group: its own pattern
// consumes a prefix, its guards run, then children are tried in
// declared order. The first successful child wins.
//
// A child's NoMatchError is absorbed and the next sibling is tried.
// MethodNotAllowedError and GuardError are remembered (the last one
// overwriting earlier ones) and re-raised once every child is
// exhausted, so the most specific rejection reaches the caller instead
// of a generic not-found.
func (g *Group) Match(path string, req Request) (*Trace, error) {
	rest := path

	var args []interface{}

	if g.pattern != nil {
		suffix, captured, ok := g.pattern.Match(path)
		if !ok {
			return nil, &NoMatchError{Path: path}
		}

		rest, args = suffix, captured
	}

	tr := newTrace(args, g)

	if err := foldGuards(g.guards, req, tr); err != nil {
		return nil, err
	}

	var remembered error

	for _, child := range g.children {
		childTrace, err := child.Match(rest, req)
		if err == nil {
			tr.merge(childTrace)

			return tr, nil
		}

		switch e := err.(type) {
		case *NoMatchError:
			continue
		case *MethodNotAllowedError:
			// Keep the full allowed-method set across siblings so a
			// terminal 405 can report every acceptable method
			if prev, ok := remembered.(*MethodNotAllowedError); ok {
				e.Allow = mergeAllow(prev.Allow, e.Allow)
			}

			remembered = e
		default:
			remembered = err
		}
	}

	if remembered != nil {
		return nil, remembered
	}

	return nil, &NoMatchError{Path: path}
}

func mergeAllow(prev, next []string) []string {
	for _, method := range prev {
		if !gstrings.Include(next, method) {
			next = append(next, method)
		}
	}

	return next
}
