// Package builder constructs dynamic configuration documents: typed
// fluent builders for routers, services, middlewares, and TLS, plus the
// aggregate ConfigurationBuilder that loads, builds, compiles, and
// exports whole documents.
//
// All builders are two-phase: setters accumulate a private draft, and
// Build validates it and returns an independent copy, so reusing a
// builder can never mutate a previously built document.
package builder

import (
	"fmt"

	"github.com/wudi/proxyconf/dynamic"
	"github.com/wudi/proxyconf/rule"
)

// RouterBuilder accumulates one named router configuration.
type RouterBuilder struct {
	name  string
	draft dynamic.Router
}

// NewRouter creates a router builder for the given name.
func NewRouter(name string) *RouterBuilder {
	return &RouterBuilder{name: name}
}

// Name returns the router name.
func (b *RouterBuilder) Name() string {
	return b.name
}

// Rule sets the matching rule expression.
func (b *RouterBuilder) Rule(expr string) *RouterBuilder {
	b.draft.Rule = expr
	return b
}

// RuleFrom sets the matching rule from a rule builder.
func (b *RouterBuilder) RuleFrom(r *rule.Builder) *RouterBuilder {
	b.draft.Rule = r.Build()
	return b
}

// Service sets the target service name.
func (b *RouterBuilder) Service(name string) *RouterBuilder {
	b.draft.Service = name
	return b
}

// EntryPoints sets the entry-point names, in order.
func (b *RouterBuilder) EntryPoints(names ...string) *RouterBuilder {
	b.draft.EntryPoints = names
	return b
}

// Middlewares sets the middleware chain, applied in list order.
func (b *RouterBuilder) Middlewares(names ...string) *RouterBuilder {
	b.draft.Middlewares = names
	return b
}

// Priority sets the router priority.
func (b *RouterBuilder) Priority(p int) *RouterBuilder {
	b.draft.Priority = p
	return b
}

// TLS enables or disables TLS. No argument (or true) sets the plain
// boolean form; false clears the TLS setting entirely. Structured
// fields set earlier via CertResolver or Domain survive re-enabling.
func (b *RouterBuilder) TLS(enabled ...bool) *RouterBuilder {
	if len(enabled) > 0 && !enabled[0] {
		b.draft.TLS = nil
		return b
	}
	if b.draft.TLS == nil {
		b.draft.TLS = &dynamic.RouterTLS{}
	}
	b.draft.TLS.Enabled = true
	return b
}

// CertResolver sets the certificate resolver name, promoting a plain
// boolean TLS flag to the structured form without losing it.
func (b *RouterBuilder) CertResolver(name string) *RouterBuilder {
	b.structuredTLS().CertResolver = name
	return b
}

// Domain appends a certificate domain entry (main name plus optional
// alternative names), promoting a plain boolean TLS flag to the
// structured form without losing it.
func (b *RouterBuilder) Domain(main string, sans ...string) *RouterBuilder {
	cfg := b.structuredTLS()
	cfg.Domains = append(cfg.Domains, dynamic.Domain{Main: main, SANs: sans})
	return b
}

func (b *RouterBuilder) structuredTLS() *dynamic.RouterTLSConfig {
	if b.draft.TLS == nil {
		b.draft.TLS = &dynamic.RouterTLS{Enabled: true}
	}
	if b.draft.TLS.Config == nil {
		b.draft.TLS.Config = &dynamic.RouterTLSConfig{}
	}
	return b.draft.TLS.Config
}

// Build validates the draft and returns an independent router
// configuration.
func (b *RouterBuilder) Build() (*dynamic.Router, error) {
	if b.draft.Rule == "" {
		return nil, fmt.Errorf("Router '%s' must have a rule", b.name)
	}
	if b.draft.Service == "" {
		return nil, fmt.Errorf("Router '%s' must have a service", b.name)
	}
	return b.draft.DeepCopy(), nil
}
