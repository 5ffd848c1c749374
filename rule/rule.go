// Package rule builds routing-rule expressions: boolean combinations of
// matcher calls like Host(`example.com`) && PathPrefix(`/api`). Matcher
// arguments are backtick-quoted, matching the syntax the reverse proxy
// parses from its dynamic configuration.
package rule

import (
	"fmt"
	"strings"
)

const (
	opAnd = "&&"
	opOr  = "||"
)

// Builder accumulates matchers and combines them into one expression.
//
// The combining operator is a single property of the builder: the most
// recent And/Or call decides how every accumulated top-level matcher is
// joined, not just the pair it was called between. Mixed And/Or chains
// on one builder therefore all join with the last operator used; use
// sub-builders to scope operators.
type Builder struct {
	matchers []string
	op       string
}

// New returns an empty rule builder.
func New() *Builder {
	return &Builder{op: opAnd}
}

func (b *Builder) add(matcher string, args ...string) *Builder {
	quoted := make([]string, len(args))
	for i, a := range args {
		quoted[i] = "`" + a + "`"
	}
	b.matchers = append(b.matchers, fmt.Sprintf("%s(%s)", matcher, strings.Join(quoted, ", ")))
	return b
}

// Host matches the given host name exactly.
func (b *Builder) Host(host string) *Builder {
	return b.add("Host", host)
}

// HostRegexp matches hosts against a regular expression.
func (b *Builder) HostRegexp(pattern string) *Builder {
	return b.add("HostRegexp", pattern)
}

// Path matches the request path exactly.
func (b *Builder) Path(path string) *Builder {
	return b.add("Path", path)
}

// PathPrefix matches request paths by prefix.
func (b *Builder) PathPrefix(prefix string) *Builder {
	return b.add("PathPrefix", prefix)
}

// Method matches any of the given HTTP methods.
func (b *Builder) Method(methods ...string) *Builder {
	return b.add("Method", methods...)
}

// Header matches an exact header value.
func (b *Builder) Header(key, value string) *Builder {
	return b.add("Header", key, value)
}

// HeaderRegexp matches a header value against a regular expression.
func (b *Builder) HeaderRegexp(key, pattern string) *Builder {
	return b.add("HeaderRegexp", key, pattern)
}

// Query matches an exact query parameter value.
func (b *Builder) Query(key, value string) *Builder {
	return b.add("Query", key, value)
}

// ClientIP matches the client IP or CIDR range.
func (b *Builder) ClientIP(ip string) *Builder {
	return b.add("ClientIP", ip)
}

// Custom appends a raw matcher expression verbatim.
func (b *Builder) Custom(raw string) *Builder {
	b.matchers = append(b.matchers, raw)
	return b
}

// And appends another builder's expression, parenthesized, and switches
// the combining operator to AND.
func (b *Builder) And(other *Builder) *Builder {
	return b.combine(opAnd, other.Build())
}

// AndFunc builds a sub-expression with a fresh builder and appends it,
// parenthesized, switching the combining operator to AND.
func (b *Builder) AndFunc(fn func(*Builder)) *Builder {
	sub := New()
	fn(sub)
	return b.combine(opAnd, sub.Build())
}

// Or appends another builder's expression, parenthesized, and switches
// the combining operator to OR.
func (b *Builder) Or(other *Builder) *Builder {
	return b.combine(opOr, other.Build())
}

// OrFunc builds a sub-expression with a fresh builder and appends it,
// parenthesized, switching the combining operator to OR.
func (b *Builder) OrFunc(fn func(*Builder)) *Builder {
	sub := New()
	fn(sub)
	return b.combine(opOr, sub.Build())
}

func (b *Builder) combine(op, expr string) *Builder {
	b.op = op
	if expr == "" {
		return b
	}
	b.matchers = append(b.matchers, "("+expr+")")
	return b
}

// Build renders the accumulated expression. A single matcher is
// returned bare; zero matchers yield an empty string.
func (b *Builder) Build() string {
	switch len(b.matchers) {
	case 0:
		return ""
	case 1:
		return b.matchers[0]
	}
	return strings.Join(b.matchers, " "+b.op+" ")
}

// And joins independently built expressions with AND. Every
// sub-expression is parenthesized, even when only one is given.
func And(builders ...*Builder) string {
	return join(opAnd, builders)
}

// Or joins independently built expressions with OR. Every
// sub-expression is parenthesized, even when only one is given.
func Or(builders ...*Builder) string {
	return join(opOr, builders)
}

func join(op string, builders []*Builder) string {
	exprs := make([]string, 0, len(builders))
	for _, b := range builders {
		if expr := b.Build(); expr != "" {
			exprs = append(exprs, "("+expr+")")
		}
	}
	return strings.Join(exprs, " "+op+" ")
}
