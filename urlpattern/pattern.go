// Package urlpattern compiles path templates into prefix matchers and
// reverse URL generators.
//
// A template is literal path text interspersed with placeholders of the
// form {label}, {label:type} or {label:type(args)}. Recognized types are
// 'str'/'string' (one path segment, optionally overridden with a custom
// expression via the 're=' keyword argument), 'path' (the rest of the
// path, slashes included), 'int' (digits, converted to int) and
// 'any(v1,v2,...)' (exactly one of the listed literals).
package urlpattern

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/valyala/bytebufferpool"
)

// Pattern is a compiled path template. It is immutable and safe for
// concurrent use.
type Pattern struct {
	raw   string
	exact bool

	segs []segment
	phs  []placeholder

	re     *regexp.Regexp
	groups []int

	// exprs holds the regexp subexpression of each placeholder between
	// parse and compile; cleared once the regexp is built.
	exprs []string
}

// placeholder is one {label:type(args)} occurrence, in template order.
type placeholder struct {
	label string
	conv  convertFunc
}

// segment is a run of literal text (ph < 0) or a placeholder reference.
type segment struct {
	literal string
	ph      int
}

// Compile parses and compiles the given template. All work happens here:
// a returned Pattern never fails later due to the template itself.
func Compile(raw string) (*Pattern, error) {
	p := &Pattern{raw: raw}

	if err := p.parse(); err != nil {
		return nil, &InvalidPatternError{Pattern: raw, Reason: err.Error()}
	}

	if len(p.phs) == 0 {
		p.exact = true

		return p, nil
	}

	if err := p.compile(); err != nil {
		return nil, &InvalidPatternError{Pattern: raw, Reason: err.Error()}
	}

	return p, nil
}

// MustCompile is like Compile but panics if the template is invalid.
func MustCompile(raw string) *Pattern {
	p, err := Compile(raw)
	if err != nil {
		panic(err)
	}

	return p
}

// String returns the raw template.
func (p *Pattern) String() string {
	return p.raw
}

// IsExact reports whether the template contains no placeholders.
// Exact patterns match by plain prefix comparison and reverse to
// themselves unchanged.
func (p *Pattern) IsExact() bool {
	return p.exact
}

// NumArgs returns the number of placeholders in the template.
func (p *Pattern) NumArgs() int {
	return len(p.phs)
}

// Labels returns the placeholder labels in template order.
func (p *Pattern) Labels() []string {
	if len(p.phs) == 0 {
		return nil
	}

	labels := make([]string, len(p.phs))
	for i, ph := range p.phs {
		labels[i] = ph.label
	}

	return labels
}

// parse splits the raw template into literal and placeholder segments.
// Braced text that does not form a valid placeholder is kept literal.
func (p *Pattern) parse() error {
	raw := p.raw
	lit := 0

	for start := 0; start < len(raw); start++ {
		if raw[start] != '{' {
			continue
		}

		end := closingBrace(raw, start)
		if end < 0 {
			// Unbalanced brace, the rest of the template is literal
			break
		}

		label, typ, args, ok := splitPlaceholder(raw[start+1 : end])
		if !ok {
			start = end

			continue
		}

		handler, known := typeHandlers[typ]
		if !known {
			return fmt.Errorf("unknown type '%s'", typ)
		}

		expr, conv, err := handler(args)
		if err != nil {
			return err
		}

		if start > lit {
			p.segs = append(p.segs, segment{literal: raw[lit:start], ph: -1})
		}

		p.segs = append(p.segs, segment{ph: len(p.phs)})
		p.phs = append(p.phs, placeholder{label: label, conv: conv})
		p.exprs = append(p.exprs, expr)

		lit = end + 1
		start = end
	}

	if lit < len(raw) {
		p.segs = append(p.segs, segment{literal: raw[lit:], ph: -1})
	}

	return nil
}

// compile assembles and compiles the anchored regexp for a non-exact
// pattern and resolves the capture group index of every placeholder.
func (p *Pattern) compile() error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	buf.WriteString("^")

	for _, seg := range p.segs {
		if seg.ph < 0 {
			buf.WriteString(regexp.QuoteMeta(seg.literal))

			continue
		}

		fmt.Fprintf(buf, "(?P<%s>%s)", groupName(seg.ph), p.exprs[seg.ph])
	}

	re, err := regexp.Compile(buf.String())
	if err != nil {
		return err
	}

	p.re = re
	p.exprs = nil

	p.groups = make([]int, len(p.phs))
	for i := range p.phs {
		p.groups[i] = re.SubexpIndex(groupName(i))
	}

	return nil
}

// Match runs the pattern against the beginning of path. On success it
// returns the unconsumed suffix and the converted captured values in
// placeholder order. A failed value conversion (e.g. an out-of-range
// int) demotes the match to a no-match instead of failing hard.
func (p *Pattern) Match(path string) (rest string, args []interface{}, ok bool) {
	if p.exact {
		if !strings.HasPrefix(path, p.raw) {
			return "", nil, false
		}

		return path[len(p.raw):], nil, true
	}

	m := p.re.FindStringSubmatchIndex(path)
	if m == nil {
		return "", nil, false
	}

	args = make([]interface{}, len(p.phs))

	for i, ph := range p.phs {
		g := p.groups[i]
		captured := path[m[2*g]:m[2*g+1]]

		if ph.conv == nil {
			args[i] = captured

			continue
		}

		v, err := ph.conv(captured)
		if err != nil {
			return "", nil, false
		}

		args[i] = v
	}

	return path[m[1]:], args, true
}

// Reverse substitutes the given values for the placeholders in template
// order and returns the resulting literal path. Surplus values are
// ignored; missing values are an error.
func (p *Pattern) Reverse(args ...interface{}) (string, error) {
	if p.exact {
		return p.raw, nil
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	n := 0

	for _, seg := range p.segs {
		if seg.ph < 0 {
			buf.WriteString(seg.literal)

			continue
		}

		if n >= len(args) {
			return "", &ReverseError{
				Pattern: p.raw,
				Reason:  fmt.Sprintf("placeholder '%s' left unfilled, only %d value(s) supplied", p.phs[seg.ph].label, len(args)),
			}
		}

		fmt.Fprint(buf, args[n])
		n++
	}

	return buf.String(), nil
}

// Join joins two URL parts with exactly one separating slash.
//
//	Join("/a/", "/b/") == "/a/b/"
func Join(a, b string) string {
	return strings.TrimRight(a, "/") + "/" + strings.TrimLeft(b, "/")
}

// Concat concatenates a parent-prefix pattern with a child pattern,
// normalizing the slash boundary. A nil pattern is the identity.
func Concat(a, b *Pattern) (*Pattern, error) {
	switch {
	case a == nil:
		return b, nil
	case b == nil:
		return a, nil
	}

	return Compile(Join(a.raw, b.raw))
}

// closingBrace returns the index of the brace closing raw[open], taking
// nested braces (e.g. repetition counts inside an 're=' argument) into
// account. Returns -1 if the brace is unbalanced.
func closingBrace(raw string, open int) int {
	depth := 0

	for i := open + 1; i < len(raw); i++ {
		switch raw[i] {
		case '{':
			depth++
		case '}':
			if depth == 0 {
				return i
			}

			depth--
		}
	}

	return -1
}

// splitPlaceholder parses the text between braces into label, type and
// argument list. It reports false when the text is not a well-formed
// placeholder, in which case the caller keeps it as literal path text.
func splitPlaceholder(inner string) (label, typ, args string, ok bool) {
	label, rest, hasType := strings.Cut(inner, ":")

	if !isIdent(label) {
		return "", "", "", false
	}

	if !hasType {
		return label, "", "", true
	}

	if i := strings.IndexByte(rest, '('); i >= 0 {
		if !strings.HasSuffix(rest, ")") {
			return "", "", "", false
		}

		typ, args = rest[:i], rest[i+1:len(rest)-1]
	} else {
		typ = rest
	}

	if !isIdent(typ) {
		return "", "", "", false
	}

	return label, typ, args, true
}

// isIdent reports whether s is a valid label or type identifier:
// a letter followed by letters or digits.
func isIdent(s string) bool {
	if len(s) == 0 {
		return false
	}

	for i := 0; i < len(s); i++ {
		c := s[i]

		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}

	return true
}

func groupName(i int) string {
	return fmt.Sprintf("_gpt%d", i)
}
