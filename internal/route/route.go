// Package route parses navigation fragments such as "#/result?mbti=INFP"
// into a closed set of routes.
package route

import (
	"errors"
	"strings"
)

// Kind is the closed set of pages the application can show.
type Kind int

const (
	Home Kind = iota
	Result
)

func (k Kind) String() string {
	switch k {
	case Home:
		return "home"
	case Result:
		return "result"
	}
	return "unknown"
}

const (
	PathHome   = "/"
	PathResult = "/result"
	QueryCode  = "mbti"
)

// ErrEmptyCode is returned by FromInput for blank input.
var ErrEmptyCode = errors.New("route: empty code")

// Route is a parsed fragment. Code is the raw "mbti" query value and is
// only meaningful for Result; it is empty when the parameter is absent.
type Route struct {
	Kind Kind
	Code string
}

// SplitFragment strips a leading '#' and splits on the first '?'.
// An empty path becomes "/".
func SplitFragment(fragment string) (path, query string) {
	fragment = strings.TrimPrefix(fragment, "#")
	path, query, _ = strings.Cut(fragment, "?")
	if path == "" {
		path = PathHome
	}
	return path, query
}

// Parse maps a fragment to a route. Unrecognised paths fall back to Home;
// a missing "mbti" parameter leaves Code empty.
func Parse(fragment string) Route {
	path, query := SplitFragment(fragment)
	switch path {
	case PathResult:
		code, _ := QueryValue(query, QueryCode)
		return Route{Kind: Result, Code: code}
	default:
		return Route{Kind: Home}
	}
}

// QueryValue returns the first value of key in query, read the way a
// browser's URLSearchParams reads it: pairs split on '&' only, '+' is a
// space, and percent escapes that do not decode are kept as written.
func QueryValue(query, key string) (string, bool) {
	for query != "" {
		var pair string
		pair, query, _ = strings.Cut(query, "&")
		if pair == "" {
			continue
		}
		k, v, _ := strings.Cut(pair, "=")
		if unescape(k) == key {
			return unescape(v), true
		}
	}
	return "", false
}

func unescape(s string) string {
	if !strings.ContainsAny(s, "%+") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '+':
			b.WriteByte(' ')
		case c == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]):
			b.WriteByte(unhex(s[i+1])<<4 | unhex(s[i+2]))
			i += 2
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}

// FromInput builds the route a submitted input value navigates to.
// The trimmed value is carried verbatim; it is not checked against the
// catalog.
func FromInput(value string) (Route, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return Route{}, ErrEmptyCode
	}
	return Route{Kind: Result, Code: v}, nil
}

// Path returns the fragment path for the route's kind.
func (r Route) Path() string {
	if r.Kind == Result {
		return PathResult
	}
	return PathHome
}

// Fragment formats the route without the leading '#'.
func (r Route) Fragment() string {
	if r.Kind == Result && r.Code != "" {
		return PathResult + "?" + QueryCode + "=" + r.Code
	}
	return r.Path()
}

func (r Route) String() string {
	return "#" + r.Fragment()
}
