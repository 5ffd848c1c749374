package builder

import (
	"reflect"
	"strings"
	"testing"

	"github.com/wudi/proxyconf/dynamic"
	"github.com/wudi/proxyconf/rule"
)

func TestRouterBuilder(t *testing.T) {
	router, err := NewRouter("api").
		Rule("Host(`api.example.com`)").
		Service("api-service").
		EntryPoints("web", "websecure").
		Middlewares("auth", "rate-limit").
		Priority(10).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if router.Rule != "Host(`api.example.com`)" {
		t.Errorf("Rule = %q", router.Rule)
	}
	if router.Service != "api-service" {
		t.Errorf("Service = %q", router.Service)
	}
	if !reflect.DeepEqual(router.EntryPoints, []string{"web", "websecure"}) {
		t.Errorf("EntryPoints = %v", router.EntryPoints)
	}
	if !reflect.DeepEqual(router.Middlewares, []string{"auth", "rate-limit"}) {
		t.Errorf("Middlewares = %v", router.Middlewares)
	}
	if router.Priority != 10 {
		t.Errorf("Priority = %d", router.Priority)
	}
}

func TestRouterBuilderRuleFrom(t *testing.T) {
	router, err := NewRouter("api").
		RuleFrom(rule.New().Host("api.example.com").PathPrefix("/v1")).
		Service("api-service").
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if router.Rule != "Host(`api.example.com`) && PathPrefix(`/v1`)" {
		t.Errorf("Rule = %q", router.Rule)
	}
}

func TestRouterBuilderValidation(t *testing.T) {
	if _, err := NewRouter("broken").Service("svc").Build(); err == nil ||
		err.Error() != "Router 'broken' must have a rule" {
		t.Errorf("missing rule error = %v", err)
	}
	if _, err := NewRouter("broken").Rule("Path(`/`)").Build(); err == nil ||
		err.Error() != "Router 'broken' must have a service" {
		t.Errorf("missing service error = %v", err)
	}
}

func TestRouterBuilderTLSForms(t *testing.T) {
	t.Run("boolean", func(t *testing.T) {
		router, err := NewRouter("secure").Rule("Host(`a`)").Service("s").TLS().Build()
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		if router.TLS == nil || !router.TLS.Enabled || router.TLS.Config != nil {
			t.Errorf("TLS = %+v, want the plain boolean form", router.TLS)
		}
	})

	t.Run("disable clears", func(t *testing.T) {
		router, err := NewRouter("plain").Rule("Host(`a`)").Service("s").
			TLS().TLS(false).Build()
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		if router.TLS != nil {
			t.Errorf("TLS = %+v, want nil", router.TLS)
		}
	})

	t.Run("structured promotes boolean", func(t *testing.T) {
		router, err := NewRouter("secure").Rule("Host(`a`)").Service("s").
			TLS().
			CertResolver("letsencrypt").
			Domain("example.com", "www.example.com").
			Build()
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		tls := router.TLS
		if tls == nil || !tls.Enabled || tls.Config == nil {
			t.Fatalf("TLS = %+v", tls)
		}
		if tls.Config.CertResolver != "letsencrypt" {
			t.Errorf("CertResolver = %q", tls.Config.CertResolver)
		}
		want := []dynamic.Domain{{Main: "example.com", SANs: []string{"www.example.com"}}}
		if !reflect.DeepEqual(tls.Config.Domains, want) {
			t.Errorf("Domains = %+v", tls.Config.Domains)
		}
	})

	t.Run("re-enabling keeps structured fields", func(t *testing.T) {
		router, err := NewRouter("secure").Rule("Host(`a`)").Service("s").
			CertResolver("letsencrypt").
			TLS().
			Build()
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		if router.TLS.Config == nil || router.TLS.Config.CertResolver != "letsencrypt" {
			t.Errorf("TLS = %+v, structured fields lost", router.TLS)
		}
	})
}

func TestRouterBuildReturnsIndependentCopy(t *testing.T) {
	rb := NewRouter("api").Rule("Host(`a`)").Service("s").EntryPoints("web")
	first, err := rb.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	rb.EntryPoints("web", "websecure").Priority(5)
	second, err := rb.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if len(first.EntryPoints) != 1 || first.Priority != 0 {
		t.Errorf("first build mutated by later setters: %+v", first)
	}
	if len(second.EntryPoints) != 2 || second.Priority != 5 {
		t.Errorf("second build = %+v", second)
	}
}

func TestServiceBuilderLoadBalancer(t *testing.T) {
	svc, err := NewService("api").
		URL("http://10.0.0.1:8080").
		Server("http://10.0.0.2:8080", 3).
		HealthCheck("/health", "10s", "3s").
		HealthCheckScheme("http").
		Sticky("session").
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	lb := svc.LoadBalancer
	if lb == nil {
		t.Fatal("LoadBalancer is nil")
	}
	if len(lb.Servers) != 2 {
		t.Fatalf("Servers = %+v", lb.Servers)
	}
	if lb.Servers[0].URL != "http://10.0.0.1:8080" || lb.Servers[0].Weight != nil {
		t.Errorf("Servers[0] = %+v", lb.Servers[0])
	}
	if lb.Servers[1].Weight == nil || *lb.Servers[1].Weight != 3 {
		t.Errorf("Servers[1] = %+v", lb.Servers[1])
	}
	if lb.HealthCheck == nil || lb.HealthCheck.Path != "/health" || lb.HealthCheck.Scheme != "http" {
		t.Errorf("HealthCheck = %+v", lb.HealthCheck)
	}
	if lb.Sticky == nil || lb.Sticky.Cookie == nil || lb.Sticky.Cookie.Name != "session" {
		t.Errorf("Sticky = %+v", lb.Sticky)
	}
}

func TestServiceBuilderWeighted(t *testing.T) {
	svc, err := NewService("canary").
		Weighted("stable", 9).
		Weighted("canary", 1).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if svc.Weighted == nil || len(svc.Weighted.Services) != 2 {
		t.Fatalf("Weighted = %+v", svc.Weighted)
	}
	if svc.Weighted.Services[0].Name != "stable" || *svc.Weighted.Services[0].Weight != 9 {
		t.Errorf("Services[0] = %+v", svc.Weighted.Services[0])
	}
}

func TestServiceBuilderMirroring(t *testing.T) {
	svc, err := NewService("mirror").
		Mirror("primary").
		MirrorTo("shadow", 10).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if svc.Mirroring == nil || svc.Mirroring.Service != "primary" {
		t.Fatalf("Mirroring = %+v", svc.Mirroring)
	}
	want := []dynamic.MirrorService{{Name: "shadow", Percent: 10}}
	if !reflect.DeepEqual(svc.Mirroring.Mirrors, want) {
		t.Errorf("Mirrors = %+v", svc.Mirroring.Mirrors)
	}
}

func TestServiceBuilderValidation(t *testing.T) {
	if _, err := NewService("empty").Build(); err == nil ||
		err.Error() != "Service 'empty' has no configuration" {
		t.Errorf("empty service error = %v", err)
	}
	if _, err := NewService("both").URL("http://a").Weighted("x", 1).Build(); err == nil ||
		!strings.Contains(err.Error(), "exactly one of") {
		t.Errorf("multi-shape error = %v", err)
	}
	if _, err := NewService("bare").Sticky("session").Build(); err == nil ||
		err.Error() != "Service 'bare' load balancer needs at least one server" {
		t.Errorf("serverless load balancer error = %v", err)
	}
}

func TestMiddlewareBuilderKinds(t *testing.T) {
	tests := []struct {
		name  string
		build func(*MiddlewareBuilder) *MiddlewareBuilder
		check func(*dynamic.Middleware) bool
	}{
		{
			"addPrefix",
			func(b *MiddlewareBuilder) *MiddlewareBuilder { return b.AddPrefix("/api") },
			func(m *dynamic.Middleware) bool { return m.AddPrefix != nil && m.AddPrefix.Prefix == "/api" },
		},
		{
			"stripPrefix",
			func(b *MiddlewareBuilder) *MiddlewareBuilder { return b.StripPrefix("/v1", "/v2") },
			func(m *dynamic.Middleware) bool {
				return m.StripPrefix != nil && len(m.StripPrefix.Prefixes) == 2
			},
		},
		{
			"replacePathRegex",
			func(b *MiddlewareBuilder) *MiddlewareBuilder { return b.ReplacePathRegex("^/old/(.*)", "/new/$1") },
			func(m *dynamic.Middleware) bool {
				return m.ReplacePathRegex != nil && m.ReplacePathRegex.Replacement == "/new/$1"
			},
		},
		{
			"redirectScheme",
			func(b *MiddlewareBuilder) *MiddlewareBuilder { return b.RedirectScheme("https", "443", true) },
			func(m *dynamic.Middleware) bool {
				return m.RedirectScheme != nil && m.RedirectScheme.Permanent
			},
		},
		{
			"basicAuth",
			func(b *MiddlewareBuilder) *MiddlewareBuilder { return b.BasicAuth("admin:hash") },
			func(m *dynamic.Middleware) bool { return m.BasicAuth != nil && len(m.BasicAuth.Users) == 1 },
		},
		{
			"forwardAuth",
			func(b *MiddlewareBuilder) *MiddlewareBuilder { return b.ForwardAuth("http://auth:4181") },
			func(m *dynamic.Middleware) bool {
				return m.ForwardAuth != nil && m.ForwardAuth.Address == "http://auth:4181"
			},
		},
		{
			"chain",
			func(b *MiddlewareBuilder) *MiddlewareBuilder { return b.Chain("auth", "compress") },
			func(m *dynamic.Middleware) bool { return m.Chain != nil && len(m.Chain.Middlewares) == 2 },
		},
		{
			"compress",
			func(b *MiddlewareBuilder) *MiddlewareBuilder { return b.Compress() },
			func(m *dynamic.Middleware) bool { return m.Compress != nil },
		},
		{
			"circuitBreaker",
			func(b *MiddlewareBuilder) *MiddlewareBuilder {
				return b.CircuitBreaker("NetworkErrorRatio() > 0.30")
			},
			func(m *dynamic.Middleware) bool { return m.CircuitBreaker != nil },
		},
		{
			"ipAllowList",
			func(b *MiddlewareBuilder) *MiddlewareBuilder { return b.IPAllowList("10.0.0.0/8") },
			func(m *dynamic.Middleware) bool {
				return m.IPAllowList != nil && len(m.IPAllowList.SourceRange) == 1
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := tt.build(NewMiddleware(tt.name)).Build()
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			if !tt.check(m) {
				t.Errorf("unexpected result: %+v", m)
			}
		})
	}
}

func TestMiddlewareBuilderRateLimit(t *testing.T) {
	m, err := NewMiddleware("limit").
		RateLimit(100, 50).
		RateLimitPeriod("1m").
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	rl := m.RateLimit
	if rl == nil || rl.Average == nil || rl.Burst == nil {
		t.Fatalf("RateLimit = %+v", rl)
	}
	if avg, err := rl.Average.Value(); err != nil || avg != 100 {
		t.Errorf("Average = %v, %v", avg, err)
	}
	if burst, err := rl.Burst.Value(); err != nil || burst != 50 {
		t.Errorf("Burst = %v, %v", burst, err)
	}
	if rl.Period != "1m" {
		t.Errorf("Period = %q", rl.Period)
	}
}

func TestMiddlewareBuilderRateLimitRaw(t *testing.T) {
	m, err := NewMiddleware("limit").
		RateLimitRaw("~##rateLimit##~", "~##burst##~").
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !m.RateLimit.Average.IsString() || m.RateLimit.Average.String() != "~##rateLimit##~" {
		t.Errorf("Average = %+v", m.RateLimit.Average)
	}
}

func TestMiddlewareBuilderValidation(t *testing.T) {
	if _, err := NewMiddleware("empty").Build(); err == nil ||
		err.Error() != "Middleware configuration is empty" {
		t.Errorf("empty middleware error = %v", err)
	}
	if _, err := NewMiddleware("both").Compress().AddPrefix("/x").Build(); err == nil ||
		err.Error() != "Middleware 'both' must configure exactly one behavior" {
		t.Errorf("multi-kind error = %v", err)
	}
}

func TestMiddlewareHeadersShareOneKind(t *testing.T) {
	m, err := NewMiddleware("headers").
		RequestHeaders(map[string]string{"X-Proto": "https"}).
		ResponseHeaders(map[string]string{"X-Served-By": "edge"}).
		CORS([]string{"https://example.com"}, []string{"GET"}, []string{"Content-Type"}).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	h := m.Headers
	if h == nil || h.CustomRequestHeaders["X-Proto"] != "https" {
		t.Fatalf("Headers = %+v", h)
	}
	if len(h.AccessControlAllowOriginList) != 1 {
		t.Errorf("CORS origins = %v", h.AccessControlAllowOriginList)
	}
}

func TestTLSBuilder(t *testing.T) {
	cfg := NewTLS().
		Certificate("/certs/site.crt", "/certs/site.key", "default").
		Options("modern", dynamic.Options{MinVersion: "VersionTLS13"}).
		Store("default", &dynamic.Certificate{CertFile: "/certs/fallback.crt", KeyFile: "/certs/fallback.key"}).
		Build()

	if len(cfg.Certificates) != 1 {
		t.Fatalf("Certificates = %+v", cfg.Certificates)
	}
	cert := cfg.Certificates[0]
	if cert.CertFile != "/certs/site.crt" || !reflect.DeepEqual(cert.Stores, []string{"default"}) {
		t.Errorf("certificate = %+v", cert)
	}
	if cfg.Options["modern"].MinVersion != "VersionTLS13" {
		t.Errorf("Options = %+v", cfg.Options)
	}
	if cfg.Stores["default"].DefaultCertificate == nil {
		t.Errorf("Stores = %+v", cfg.Stores)
	}
}
