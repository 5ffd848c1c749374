package dynamic

// Middleware is a named single-purpose request/response transformation.
// Exactly one behavior kind is set per entry; the builder package
// enforces this at build time.
type Middleware struct {
	Headers          *Headers          `json:"headers,omitempty" yaml:"headers,omitempty"`
	AddPrefix        *AddPrefix        `json:"addPrefix,omitempty" yaml:"addPrefix,omitempty"`
	StripPrefix      *StripPrefix      `json:"stripPrefix,omitempty" yaml:"stripPrefix,omitempty"`
	ReplacePath      *ReplacePath      `json:"replacePath,omitempty" yaml:"replacePath,omitempty"`
	ReplacePathRegex *ReplacePathRegex `json:"replacePathRegex,omitempty" yaml:"replacePathRegex,omitempty"`
	RedirectScheme   *RedirectScheme   `json:"redirectScheme,omitempty" yaml:"redirectScheme,omitempty"`
	RedirectRegex    *RedirectRegex    `json:"redirectRegex,omitempty" yaml:"redirectRegex,omitempty"`
	BasicAuth        *BasicAuth        `json:"basicAuth,omitempty" yaml:"basicAuth,omitempty"`
	DigestAuth       *DigestAuth       `json:"digestAuth,omitempty" yaml:"digestAuth,omitempty"`
	ForwardAuth      *ForwardAuth      `json:"forwardAuth,omitempty" yaml:"forwardAuth,omitempty"`
	Chain            *Chain            `json:"chain,omitempty" yaml:"chain,omitempty"`
	Compress         *Compress         `json:"compress,omitempty" yaml:"compress,omitempty"`
	RateLimit        *RateLimit        `json:"rateLimit,omitempty" yaml:"rateLimit,omitempty"`
	Retry            *Retry            `json:"retry,omitempty" yaml:"retry,omitempty"`
	Buffering        *Buffering        `json:"buffering,omitempty" yaml:"buffering,omitempty"`
	CircuitBreaker   *CircuitBreaker   `json:"circuitBreaker,omitempty" yaml:"circuitBreaker,omitempty"`
	InFlightReq      *InFlightReq      `json:"inFlightReq,omitempty" yaml:"inFlightReq,omitempty"`
	IPAllowList      *IPAllowList      `json:"ipAllowList,omitempty" yaml:"ipAllowList,omitempty"`
}

// Headers injects, rewrites, or removes request and response headers,
// and carries the CORS field set.
type Headers struct {
	CustomRequestHeaders  map[string]string `json:"customRequestHeaders,omitempty" yaml:"customRequestHeaders,omitempty"`
	CustomResponseHeaders map[string]string `json:"customResponseHeaders,omitempty" yaml:"customResponseHeaders,omitempty"`

	AccessControlAllowCredentials bool     `json:"accessControlAllowCredentials,omitempty" yaml:"accessControlAllowCredentials,omitempty"`
	AccessControlAllowHeaders     []string `json:"accessControlAllowHeaders,omitempty" yaml:"accessControlAllowHeaders,omitempty"`
	AccessControlAllowMethods     []string `json:"accessControlAllowMethods,omitempty" yaml:"accessControlAllowMethods,omitempty"`
	AccessControlAllowOriginList  []string `json:"accessControlAllowOriginList,omitempty" yaml:"accessControlAllowOriginList,omitempty"`
	AccessControlExposeHeaders    []string `json:"accessControlExposeHeaders,omitempty" yaml:"accessControlExposeHeaders,omitempty"`
	AccessControlMaxAge           int64    `json:"accessControlMaxAge,omitempty" yaml:"accessControlMaxAge,omitempty"`
}

// AddPrefix prepends a path prefix before forwarding.
type AddPrefix struct {
	Prefix string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
}

// StripPrefix removes matching path prefixes before forwarding.
type StripPrefix struct {
	Prefixes []string `json:"prefixes,omitempty" yaml:"prefixes,omitempty"`
}

// ReplacePath replaces the request path entirely.
type ReplacePath struct {
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// ReplacePathRegex rewrites the request path by regex.
type ReplacePathRegex struct {
	Regex       string `json:"regex,omitempty" yaml:"regex,omitempty"`
	Replacement string `json:"replacement,omitempty" yaml:"replacement,omitempty"`
}

// RedirectScheme redirects to a different scheme and/or port.
type RedirectScheme struct {
	Scheme    string `json:"scheme,omitempty" yaml:"scheme,omitempty"`
	Port      string `json:"port,omitempty" yaml:"port,omitempty"`
	Permanent bool   `json:"permanent,omitempty" yaml:"permanent,omitempty"`
}

// RedirectRegex redirects by regex rewrite of the full URL.
type RedirectRegex struct {
	Regex       string `json:"regex,omitempty" yaml:"regex,omitempty"`
	Replacement string `json:"replacement,omitempty" yaml:"replacement,omitempty"`
	Permanent   bool   `json:"permanent,omitempty" yaml:"permanent,omitempty"`
}

// BasicAuth enforces HTTP basic authentication.
type BasicAuth struct {
	Users        []string `json:"users,omitempty" yaml:"users,omitempty"`
	UsersFile    string   `json:"usersFile,omitempty" yaml:"usersFile,omitempty"`
	Realm        string   `json:"realm,omitempty" yaml:"realm,omitempty"`
	HeaderField  string   `json:"headerField,omitempty" yaml:"headerField,omitempty"`
	RemoveHeader bool     `json:"removeHeader,omitempty" yaml:"removeHeader,omitempty"`
}

// DigestAuth enforces HTTP digest authentication.
type DigestAuth struct {
	Users        []string `json:"users,omitempty" yaml:"users,omitempty"`
	UsersFile    string   `json:"usersFile,omitempty" yaml:"usersFile,omitempty"`
	Realm        string   `json:"realm,omitempty" yaml:"realm,omitempty"`
	HeaderField  string   `json:"headerField,omitempty" yaml:"headerField,omitempty"`
	RemoveHeader bool     `json:"removeHeader,omitempty" yaml:"removeHeader,omitempty"`
}

// ForwardAuth delegates the authentication decision to an external
// service.
type ForwardAuth struct {
	Address             string   `json:"address,omitempty" yaml:"address,omitempty"`
	TrustForwardHeader  bool     `json:"trustForwardHeader,omitempty" yaml:"trustForwardHeader,omitempty"`
	AuthResponseHeaders []string `json:"authResponseHeaders,omitempty" yaml:"authResponseHeaders,omitempty"`
	AuthRequestHeaders  []string `json:"authRequestHeaders,omitempty" yaml:"authRequestHeaders,omitempty"`
}

// Chain groups other middlewares by name, applied in order.
type Chain struct {
	Middlewares []string `json:"middlewares,omitempty" yaml:"middlewares,omitempty"`
}

// Compress enables response compression.
type Compress struct {
	ExcludedContentTypes []string `json:"excludedContentTypes,omitempty" yaml:"excludedContentTypes,omitempty"`
	MinResponseBodyBytes int64    `json:"minResponseBodyBytes,omitempty" yaml:"minResponseBodyBytes,omitempty"`
}

// RateLimit caps the request rate. The numeric fields may be authored
// as placeholder strings and resolved at deploy time.
type RateLimit struct {
	Average *Number `json:"average,omitempty" yaml:"average,omitempty"`
	Burst   *Number `json:"burst,omitempty" yaml:"burst,omitempty"`
	Period  string  `json:"period,omitempty" yaml:"period,omitempty"`
}

// Retry re-issues failed requests.
type Retry struct {
	Attempts        *Number `json:"attempts,omitempty" yaml:"attempts,omitempty"`
	InitialInterval string  `json:"initialInterval,omitempty" yaml:"initialInterval,omitempty"`
}

// Buffering buffers request and response bodies, with size limits.
type Buffering struct {
	MaxRequestBodyBytes  *Number `json:"maxRequestBodyBytes,omitempty" yaml:"maxRequestBodyBytes,omitempty"`
	MemRequestBodyBytes  *Number `json:"memRequestBodyBytes,omitempty" yaml:"memRequestBodyBytes,omitempty"`
	MaxResponseBodyBytes *Number `json:"maxResponseBodyBytes,omitempty" yaml:"maxResponseBodyBytes,omitempty"`
	MemResponseBodyBytes *Number `json:"memResponseBodyBytes,omitempty" yaml:"memResponseBodyBytes,omitempty"`
	RetryExpression      string  `json:"retryExpression,omitempty" yaml:"retryExpression,omitempty"`
}

// CircuitBreaker trips on the given expression and short-circuits the
// backend while open.
type CircuitBreaker struct {
	Expression       string `json:"expression,omitempty" yaml:"expression,omitempty"`
	CheckPeriod      string `json:"checkPeriod,omitempty" yaml:"checkPeriod,omitempty"`
	FallbackDuration string `json:"fallbackDuration,omitempty" yaml:"fallbackDuration,omitempty"`
	RecoveryDuration string `json:"recoveryDuration,omitempty" yaml:"recoveryDuration,omitempty"`
}

// InFlightReq caps the number of simultaneous in-flight requests.
type InFlightReq struct {
	Amount *Number `json:"amount,omitempty" yaml:"amount,omitempty"`
}

// IPAllowList rejects requests whose client IP is outside the given
// ranges.
type IPAllowList struct {
	SourceRange []string `json:"sourceRange,omitempty" yaml:"sourceRange,omitempty"`
}
