package routr

import "sync"

// The fragment registry lets separate modules contribute pre-built
// route subtrees under a stable identifier, assembled by the host
// application with Include. Registration and lookup failures are
// configuration errors: they surface while the tree is being built,
// never at request time.
var (
	fragmentsMu sync.RWMutex
	fragments   = make(map[string]Route)
)

// RegisterFragment registers a pre-built route subtree under the given
// identifier. It panics if the identifier is empty or taken, or the
// route is nil.
func RegisterFragment(name string, r Route) {
	switch {
	case name == "":
		panic(&ConfigurationError{Reason: "fragment identifier must not be empty"})
	case r == nil:
		panic(&ConfigurationError{Reason: "fragment '" + name + "' must not be nil"})
	}

	fragmentsMu.Lock()
	defer fragmentsMu.Unlock()

	if _, dup := fragments[name]; dup {
		panic(&ConfigurationError{Reason: "fragment '" + name + "' is already registered"})
	}

	fragments[name] = r
}

// Include returns the route subtree registered under the given
// identifier, panicking if it is unknown.
func Include(name string) Route {
	r, err := TryInclude(name)
	if err != nil {
		panic(err)
	}

	return r
}

// TryInclude is like Include but returns an error for unknown
// identifiers.
func TryInclude(name string) (Route, error) {
	fragmentsMu.RLock()
	defer fragmentsMu.RUnlock()

	r, ok := fragments[name]
	if !ok {
		return nil, &ConfigurationError{Reason: "no fragment registered as '" + name + "'"}
	}

	return r, nil
}
