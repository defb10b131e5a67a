package urlpattern

import (
	"regexp"
	"strconv"
	"strings"
)

// convertFunc converts a captured segment into its final value.
// A nil convertFunc keeps the raw string.
type convertFunc func(s string) (interface{}, error)

// typeHandler translates a placeholder's argument list into a regexp
// subexpression and an optional converter for the captured text.
type typeHandler func(args string) (expr string, conv convertFunc, err error)

// typeHandlers maps placeholder type names to their handlers.
// The empty name is the default (same as 'str').
var typeHandlers = map[string]typeHandler{
	"":       handleStr,
	"str":    handleStr,
	"string": handleStr,
	"path":   handlePath,
	"int":    handleInt,
	"any":    handleAny,
}

// parseArgs splits a placeholder argument list into positional and
// keyword arguments. Items are comma separated, keywords use 'key=value'.
func parseArgs(line string) (args []string, kwargs map[string]string) {
	if line == "" {
		return nil, nil
	}

	for _, item := range strings.Split(line, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}

		if k, v, found := strings.Cut(item, "="); found {
			if kwargs == nil {
				kwargs = make(map[string]string)
			}
			kwargs[strings.TrimSpace(k)] = strings.TrimSpace(v)
		} else {
			args = append(args, item)
		}
	}

	return args, kwargs
}

func handleStr(args string) (string, convertFunc, error) {
	// Everything after 're=' is the expression verbatim, commas included
	if expr, found := strings.CutPrefix(args, "re="); found {
		if expr == "" {
			return "", nil, errInvalidArgs("str")
		}

		// The custom expression is used as-is. Unlike the default it is
		// not bounded to a single segment.
		return "(?:" + expr + ")", nil, nil
	}

	if args != "" {
		return "", nil, errInvalidArgs("str")
	}

	return "[^/]+", nil, nil
}

func handlePath(args string) (string, convertFunc, error) {
	if args != "" {
		return "", nil, errNoArgs("path")
	}

	return ".*", nil, nil
}

func handleInt(args string) (string, convertFunc, error) {
	if args != "" {
		return "", nil, errNoArgs("int")
	}

	// Leading zeros are accepted on match and dropped by the conversion,
	// so zero-padded values do not round-trip through Reverse.
	conv := func(s string) (interface{}, error) {
		v, err := strconv.Atoi(s)
		if err != nil {
			return nil, err
		}

		return v, nil
	}

	return "[0-9]+", conv, nil
}

func handleAny(args string) (string, convertFunc, error) {
	pos, kw := parseArgs(args)

	if len(pos) == 0 {
		return "", nil, errRequiredArgs("any")
	} else if len(kw) > 0 {
		return "", nil, errNoKeywordArgs("any")
	}

	alternatives := make([]string, len(pos))
	for i, alt := range pos {
		alternatives[i] = regexp.QuoteMeta(alt)
	}

	return "(?:" + strings.Join(alternatives, "|") + ")", nil, nil
}
