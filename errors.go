package routr

import "strings"

// ConfigurationError reports an improperly configured route tree:
// a malformed definition, an invalid path template or a duplicate
// reversal name. It only ever surfaces at construction time, never
// while matching a request.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "routr: " + e.Reason
}

// NoMatchError reports that no pattern in the attempted subtree matched
// the given path. Groups absorb it silently while trying siblings; it
// only reaches the caller when the whole tree was exhausted.
type NoMatchError struct {
	Path string
}

func (e *NoMatchError) Error() string {
	return "routr: no route matched path '" + e.Path + "'"
}

// MethodNotAllowedError reports that the path matched an endpoint but
// the request method did not. Allow carries every method that would
// have been accepted on this path.
type MethodNotAllowedError struct {
	Method string
	Allow  []string
}

func (e *MethodNotAllowedError) Error() string {
	return "routr: method " + e.Method + " not allowed, allowed: " + e.AllowHeader()
}

// AllowHeader returns the allowed methods sorted as a comma separated
// list, suitable for an Allow response header.
func (e *MethodNotAllowedError) AllowHeader() string {
	allow := make([]string, len(e.Allow))
	copy(allow, e.Allow)

	// Insertion sort to avoid the allocations of sort.Strings on a
	// near-always tiny slice
	for i, l := 1, len(allow); i < l; i++ {
		for j := i; j > 0 && allow[j] < allow[j-1]; j-- {
			allow[j], allow[j-1] = allow[j-1], allow[j]
		}
	}

	return strings.Join(allow, ", ")
}

// GuardError reports that the path and method matched but a guard
// rejected the request. The engine never interprets the cause, it only
// carries it to the caller.
type GuardError struct {
	Cause error
}

func (e *GuardError) Error() string {
	return "routr: request rejected by guard: " + e.Cause.Error()
}

func (e *GuardError) Unwrap() error {
	return e.Cause
}

// ReversalError reports a failed URL reversal: an unknown route name or
// insufficient substitution values.
type ReversalError struct {
	Name   string
	Reason string
}

func (e *ReversalError) Error() string {
	return "routr: cannot reverse route '" + e.Name + "': " + e.Reason
}

// StatusCoder is optionally implemented by guard rejections that map to
// a specific HTTP status code. The dispatcher falls back to 400 Bad
// Request for causes that don't implement it.
type StatusCoder interface {
	StatusCode() int
}
