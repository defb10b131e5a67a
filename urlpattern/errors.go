package urlpattern

import "fmt"

// InvalidPatternError is returned by Compile when a template uses an
// unknown placeholder type or malformed placeholder arguments.
//
// It is always a configuration-time error: a compiled Pattern never
// produces it while matching or reversing.
type InvalidPatternError struct {
	Pattern string
	Reason  string
}

func (e *InvalidPatternError) Error() string {
	return "urlpattern: invalid pattern '" + e.Pattern + "': " + e.Reason
}

// ReverseError is returned by Reverse when the supplied values do not
// fill every placeholder of the pattern.
type ReverseError struct {
	Pattern string
	Reason  string
}

func (e *ReverseError) Error() string {
	return "urlpattern: cannot reverse '" + e.Pattern + "': " + e.Reason
}

func errInvalidArgs(typ string) error {
	return fmt.Errorf("invalid args for '%s' type", typ)
}

func errNoArgs(typ string) error {
	return fmt.Errorf("'%s' type doesn't accept args", typ)
}

func errRequiredArgs(typ string) error {
	return fmt.Errorf("'%s' type requires positional args", typ)
}

func errNoKeywordArgs(typ string) error {
	return fmt.Errorf("'%s' type doesn't accept keyword args", typ)
}
