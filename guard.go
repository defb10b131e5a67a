package routr

// Guard validates and enriches a match attempt. It runs after the path
// and method matched and may add keyword values or payload entries to
// the trace, or reject the request by returning an error.
//
// Guards must only mutate the trace passed to them, never shared tree
// state. The engine wraps any returned error as a GuardError without
// interpreting it.
type Guard interface {
	Check(req Request, tr *Trace) error
}

// GuardFunc adapts a plain function to the Guard interface.
type GuardFunc func(req Request, tr *Trace) error

func (fn GuardFunc) Check(req Request, tr *Trace) error {
	return fn(req, tr)
}

func foldGuards(guards []Guard, req Request, tr *Trace) error {
	for _, g := range guards {
		if err := g.Check(req, tr); err != nil {
			return &GuardError{Cause: err}
		}
	}

	return nil
}
