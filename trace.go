package routr

// Trace accumulates the result of a successful match: the positional
// values captured by patterns along the matched chain, keyword values
// and payload entries contributed by guards, and the chain of matched
// routes itself (root first, matched endpoint last).
//
// A Trace is created fresh for every node attempt; partial traces
// combine by concatenating args, overlaying kwargs and payload
// (last write wins) and appending routes.
type Trace struct {
	Args   []interface{}
	Kwargs map[string]interface{}
	Routes []Route

	payload map[string]interface{}
}

func newTrace(args []interface{}, r Route) *Trace {
	return &Trace{
		Args:   args,
		Routes: []Route{r},
	}
}

// SetKwarg stores a keyword value on the trace, overwriting any earlier
// value under the same key.
func (t *Trace) SetKwarg(key string, value interface{}) {
	if t.Kwargs == nil {
		t.Kwargs = make(map[string]interface{})
	}

	t.Kwargs[key] = value
}

// Kwarg returns the keyword value stored under key.
func (t *Trace) Kwarg(key string) (interface{}, bool) {
	v, ok := t.Kwargs[key]

	return v, ok
}

// SetValue stores a guard-contributed payload entry, overwriting any
// earlier value under the same key.
func (t *Trace) SetValue(key string, value interface{}) {
	if t.payload == nil {
		t.payload = make(map[string]interface{})
	}

	t.payload[key] = value
}

// Value returns the payload entry stored under key.
func (t *Trace) Value(key string) (interface{}, bool) {
	v, ok := t.payload[key]

	return v, ok
}

// Endpoint returns the matched endpoint, i.e. the last route of the
// matched chain.
func (t *Trace) Endpoint() *Endpoint {
	if len(t.Routes) == 0 {
		return nil
	}

	e, _ := t.Routes[len(t.Routes)-1].(*Endpoint)

	return e
}

// Target returns the matched endpoint's target handler reference.
func (t *Trace) Target() interface{} {
	e := t.Endpoint()
	if e == nil {
		return nil
	}

	return e.Target()
}

// Captured maps the positional args back to their placeholder labels,
// in root-to-leaf pattern order. On duplicate labels the leaf-most
// capture wins.
func (t *Trace) Captured() map[string]interface{} {
	captured := make(map[string]interface{}, len(t.Args))
	n := 0

	for _, r := range t.Routes {
		p := r.Pattern()
		if p == nil {
			continue
		}

		for _, label := range p.Labels() {
			if n >= len(t.Args) {
				return captured
			}

			captured[label] = t.Args[n]
			n++
		}
	}

	return captured
}

// Lookup resolves a name against the trace: guard keyword values first,
// then pattern captures by label, then payload entries.
func (t *Trace) Lookup(name string) (interface{}, bool) {
	if v, ok := t.Kwargs[name]; ok {
		return v, true
	}

	if v, ok := t.Captured()[name]; ok {
		return v, true
	}

	v, ok := t.payload[name]

	return v, ok
}

// Annotation resolves an annotation key against the matched chain,
// leaf-most route first.
func (t *Trace) Annotation(key string) (interface{}, bool) {
	for i := len(t.Routes) - 1; i >= 0; i-- {
		if v, ok := t.Routes[i].Annotations()[key]; ok {
			return v, true
		}
	}

	return nil, false
}

// merge combines a child trace into t: args are concatenated, kwargs
// and payload overlaid with the child winning, routes appended.
func (t *Trace) merge(child *Trace) {
	t.Args = append(t.Args, child.Args...)
	t.Routes = append(t.Routes, child.Routes...)

	for k, v := range child.Kwargs {
		t.SetKwarg(k, v)
	}

	for k, v := range child.payload {
		t.SetValue(k, v)
	}
}
