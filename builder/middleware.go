package builder

import (
	"errors"
	"fmt"

	"github.com/wudi/proxyconf/dynamic"
)

// MiddlewareBuilder accumulates one named middleware configuration.
// Exactly one behavior kind may be configured; Build rejects anything
// else, and a builder with no kind at all fails with "Middleware
// configuration is empty".
type MiddlewareBuilder struct {
	name  string
	draft dynamic.Middleware
}

// NewMiddleware creates a middleware builder for the given name.
func NewMiddleware(name string) *MiddlewareBuilder {
	return &MiddlewareBuilder{name: name}
}

// Name returns the middleware name.
func (b *MiddlewareBuilder) Name() string {
	return b.name
}

func (b *MiddlewareBuilder) headers() *dynamic.Headers {
	if b.draft.Headers == nil {
		b.draft.Headers = &dynamic.Headers{}
	}
	return b.draft.Headers
}

// RequestHeaders sets custom request headers on the headers kind.
func (b *MiddlewareBuilder) RequestHeaders(headers map[string]string) *MiddlewareBuilder {
	b.headers().CustomRequestHeaders = headers
	return b
}

// ResponseHeaders sets custom response headers on the headers kind.
func (b *MiddlewareBuilder) ResponseHeaders(headers map[string]string) *MiddlewareBuilder {
	b.headers().CustomResponseHeaders = headers
	return b
}

// CORS configures the CORS fields of the headers kind.
func (b *MiddlewareBuilder) CORS(origins, methods, headers []string) *MiddlewareBuilder {
	h := b.headers()
	h.AccessControlAllowOriginList = origins
	h.AccessControlAllowMethods = methods
	h.AccessControlAllowHeaders = headers
	return b
}

// AddPrefix prepends a path prefix.
func (b *MiddlewareBuilder) AddPrefix(prefix string) *MiddlewareBuilder {
	b.draft.AddPrefix = &dynamic.AddPrefix{Prefix: prefix}
	return b
}

// StripPrefix removes the given path prefixes.
func (b *MiddlewareBuilder) StripPrefix(prefixes ...string) *MiddlewareBuilder {
	b.draft.StripPrefix = &dynamic.StripPrefix{Prefixes: prefixes}
	return b
}

// ReplacePath replaces the request path entirely.
func (b *MiddlewareBuilder) ReplacePath(path string) *MiddlewareBuilder {
	b.draft.ReplacePath = &dynamic.ReplacePath{Path: path}
	return b
}

// ReplacePathRegex rewrites the request path by regex.
func (b *MiddlewareBuilder) ReplacePathRegex(regex, replacement string) *MiddlewareBuilder {
	b.draft.ReplacePathRegex = &dynamic.ReplacePathRegex{Regex: regex, Replacement: replacement}
	return b
}

// RedirectScheme redirects to a different scheme and/or port.
func (b *MiddlewareBuilder) RedirectScheme(scheme, port string, permanent bool) *MiddlewareBuilder {
	b.draft.RedirectScheme = &dynamic.RedirectScheme{Scheme: scheme, Port: port, Permanent: permanent}
	return b
}

// RedirectRegex redirects by regex rewrite of the full URL.
func (b *MiddlewareBuilder) RedirectRegex(regex, replacement string, permanent bool) *MiddlewareBuilder {
	b.draft.RedirectRegex = &dynamic.RedirectRegex{Regex: regex, Replacement: replacement, Permanent: permanent}
	return b
}

// BasicAuth enforces basic authentication for the given users.
func (b *MiddlewareBuilder) BasicAuth(users ...string) *MiddlewareBuilder {
	b.draft.BasicAuth = &dynamic.BasicAuth{Users: users}
	return b
}

// DigestAuth enforces digest authentication for the given users.
func (b *MiddlewareBuilder) DigestAuth(users ...string) *MiddlewareBuilder {
	b.draft.DigestAuth = &dynamic.DigestAuth{Users: users}
	return b
}

// ForwardAuth delegates authentication to the service at address.
func (b *MiddlewareBuilder) ForwardAuth(address string) *MiddlewareBuilder {
	b.draft.ForwardAuth = &dynamic.ForwardAuth{Address: address}
	return b
}

// Chain groups other middlewares by name, applied in order.
func (b *MiddlewareBuilder) Chain(middlewares ...string) *MiddlewareBuilder {
	b.draft.Chain = &dynamic.Chain{Middlewares: middlewares}
	return b
}

// Compress enables response compression.
func (b *MiddlewareBuilder) Compress() *MiddlewareBuilder {
	b.draft.Compress = &dynamic.Compress{}
	return b
}

// RateLimit caps the request rate at average per period with the given
// burst.
func (b *MiddlewareBuilder) RateLimit(average, burst int64) *MiddlewareBuilder {
	b.draft.RateLimit = &dynamic.RateLimit{
		Average: dynamic.NumberOf(average),
		Burst:   dynamic.NumberOf(burst),
	}
	return b
}

// RateLimitRaw sets the rate limit from raw string values, typically
// placeholder tokens resolved at deploy time.
func (b *MiddlewareBuilder) RateLimitRaw(average, burst string) *MiddlewareBuilder {
	b.draft.RateLimit = &dynamic.RateLimit{
		Average: dynamic.NumberString(average),
		Burst:   dynamic.NumberString(burst),
	}
	return b
}

// RateLimitPeriod sets the rate-limit period (e.g. "1m"). Requires a
// prior RateLimit or RateLimitRaw call.
func (b *MiddlewareBuilder) RateLimitPeriod(period string) *MiddlewareBuilder {
	if b.draft.RateLimit == nil {
		b.draft.RateLimit = &dynamic.RateLimit{}
	}
	b.draft.RateLimit.Period = period
	return b
}

// Retry re-issues failed requests up to attempts times.
func (b *MiddlewareBuilder) Retry(attempts int64) *MiddlewareBuilder {
	b.draft.Retry = &dynamic.Retry{Attempts: dynamic.NumberOf(attempts)}
	return b
}

// Buffering buffers bodies with the given size limits.
func (b *MiddlewareBuilder) Buffering(maxRequestBodyBytes, maxResponseBodyBytes int64) *MiddlewareBuilder {
	b.draft.Buffering = &dynamic.Buffering{
		MaxRequestBodyBytes:  dynamic.NumberOf(maxRequestBodyBytes),
		MaxResponseBodyBytes: dynamic.NumberOf(maxResponseBodyBytes),
	}
	return b
}

// CircuitBreaker trips on the given expression.
func (b *MiddlewareBuilder) CircuitBreaker(expression string) *MiddlewareBuilder {
	b.draft.CircuitBreaker = &dynamic.CircuitBreaker{Expression: expression}
	return b
}

// InFlightReq caps simultaneous in-flight requests.
func (b *MiddlewareBuilder) InFlightReq(amount int64) *MiddlewareBuilder {
	b.draft.InFlightReq = &dynamic.InFlightReq{Amount: dynamic.NumberOf(amount)}
	return b
}

// IPAllowList rejects clients outside the given IP ranges.
func (b *MiddlewareBuilder) IPAllowList(sourceRanges ...string) *MiddlewareBuilder {
	b.draft.IPAllowList = &dynamic.IPAllowList{SourceRange: sourceRanges}
	return b
}

func (b *MiddlewareBuilder) kindCount() int {
	count := 0
	for _, set := range []bool{
		b.draft.Headers != nil,
		b.draft.AddPrefix != nil,
		b.draft.StripPrefix != nil,
		b.draft.ReplacePath != nil,
		b.draft.ReplacePathRegex != nil,
		b.draft.RedirectScheme != nil,
		b.draft.RedirectRegex != nil,
		b.draft.BasicAuth != nil,
		b.draft.DigestAuth != nil,
		b.draft.ForwardAuth != nil,
		b.draft.Chain != nil,
		b.draft.Compress != nil,
		b.draft.RateLimit != nil,
		b.draft.Retry != nil,
		b.draft.Buffering != nil,
		b.draft.CircuitBreaker != nil,
		b.draft.InFlightReq != nil,
		b.draft.IPAllowList != nil,
	} {
		if set {
			count++
		}
	}
	return count
}

// Build validates the draft and returns an independent middleware
// configuration.
func (b *MiddlewareBuilder) Build() (*dynamic.Middleware, error) {
	switch b.kindCount() {
	case 0:
		return nil, errors.New("Middleware configuration is empty")
	case 1:
	default:
		return nil, fmt.Errorf("Middleware '%s' must configure exactly one behavior", b.name)
	}
	return b.draft.DeepCopy(), nil
}
