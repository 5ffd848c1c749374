package builder

import (
	"encoding/json"
	"fmt"

	"github.com/goccy/go-yaml"
	"go.uber.org/zap"

	"github.com/wudi/proxyconf/dynamic"
	"github.com/wudi/proxyconf/internal/logging"
	"github.com/wudi/proxyconf/variables"
)

// ConfigurationBuilder composes component builders into one dynamic
// configuration document. Build always yields the raw document with
// any placeholder tokens intact (the persisted template form); Compile
// resolves it against a variable context into the deploy-time form.
//
// A builder is not safe for concurrent use. Concurrent deployments
// each take their own instance, via Load of the persisted template or
// via Clone.
type ConfigurationBuilder struct {
	routers     map[string]*dynamic.Router
	services    map[string]*dynamic.Service
	middlewares map[string]*dynamic.Middleware
	tcp         *dynamic.TCPConfiguration
	udp         *dynamic.UDPConfiguration
	tls         *dynamic.TLSConfiguration
	registry    *variables.Registry
}

// New creates an empty configuration builder with its own variable
// registry.
func New() *ConfigurationBuilder {
	return &ConfigurationBuilder{
		routers:     make(map[string]*dynamic.Router),
		services:    make(map[string]*dynamic.Service),
		middlewares: make(map[string]*dynamic.Middleware),
		registry:    variables.NewRegistry(),
	}
}

// Variables returns the builder's variable registry.
func (b *ConfigurationBuilder) Variables() *variables.Registry {
	return b.registry
}

// Router configures and registers a router under name. The last
// registration for a given name wins.
func (b *ConfigurationBuilder) Router(name string, fn func(*RouterBuilder)) error {
	rb := NewRouter(name)
	fn(rb)
	return b.AddRouter(rb)
}

// AddRouter finalizes the given builder and registers the result.
func (b *ConfigurationBuilder) AddRouter(rb *RouterBuilder) error {
	router, err := rb.Build()
	if err != nil {
		return err
	}
	b.routers[rb.Name()] = router
	return nil
}

// Service configures and registers a service under name. The last
// registration for a given name wins.
func (b *ConfigurationBuilder) Service(name string, fn func(*ServiceBuilder)) error {
	sb := NewService(name)
	fn(sb)
	return b.AddService(sb)
}

// AddService finalizes the given builder and registers the result.
func (b *ConfigurationBuilder) AddService(sb *ServiceBuilder) error {
	service, err := sb.Build()
	if err != nil {
		return err
	}
	b.services[sb.Name()] = service
	return nil
}

// Middleware configures and registers a middleware under name. The
// last registration for a given name wins.
func (b *ConfigurationBuilder) Middleware(name string, fn func(*MiddlewareBuilder)) error {
	mb := NewMiddleware(name)
	fn(mb)
	return b.AddMiddleware(mb)
}

// AddMiddleware finalizes the given builder and registers the result.
func (b *ConfigurationBuilder) AddMiddleware(mb *MiddlewareBuilder) error {
	middleware, err := mb.Build()
	if err != nil {
		return err
	}
	b.middlewares[mb.Name()] = middleware
	return nil
}

// ConfigureTLS builds a TLS section and replaces the current draft
// entirely (no merge).
func (b *ConfigurationBuilder) ConfigureTLS(fn func(*TLSBuilder)) {
	tb := NewTLS()
	fn(tb)
	b.SetTLS(tb)
}

// SetTLS finalizes the given builder and replaces the TLS draft.
func (b *ConfigurationBuilder) SetTLS(tb *TLSBuilder) {
	b.tls = tb.Build()
}

// Build returns the raw document: only sections with content are
// present, and any placeholder tokens are left intact. The returned
// document is an independent copy.
func (b *ConfigurationBuilder) Build() *dynamic.Configuration {
	cfg := &dynamic.Configuration{}

	if len(b.routers) > 0 || len(b.services) > 0 || len(b.middlewares) > 0 {
		httpCfg := &dynamic.HTTPConfiguration{}
		if len(b.routers) > 0 {
			httpCfg.Routers = make(map[string]*dynamic.Router, len(b.routers))
			for name, r := range b.routers {
				httpCfg.Routers[name] = r.DeepCopy()
			}
		}
		if len(b.services) > 0 {
			httpCfg.Services = make(map[string]*dynamic.Service, len(b.services))
			for name, s := range b.services {
				httpCfg.Services[name] = s.DeepCopy()
			}
		}
		if len(b.middlewares) > 0 {
			httpCfg.Middlewares = make(map[string]*dynamic.Middleware, len(b.middlewares))
			for name, m := range b.middlewares {
				httpCfg.Middlewares[name] = m.DeepCopy()
			}
		}
		cfg.HTTP = httpCfg
	}

	cfg.TCP = b.tcp.DeepCopy()
	cfg.UDP = b.udp.DeepCopy()
	cfg.TLS = b.tls.DeepCopy()
	return cfg
}

// Compile builds the raw document and resolves it against the given
// context. By default the context is validated against the registry
// and resolution is lenient; see WithStrict and WithoutValidation.
// All validation errors and unresolved names are aggregated into one
// error.
func (b *ConfigurationBuilder) Compile(ctx variables.Context, opts ...CompileOption) (*dynamic.Configuration, error) {
	o := defaultCompileOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if ctx == nil {
		ctx = variables.Context{}
	}

	var validationErrors []variables.FieldError
	if o.validate {
		result := variables.NewValidator(b.registry).Validate(ctx, variables.ValidateOptions{})
		validationErrors = result.Errors
	}

	ctx = b.registry.ApplyDefaults(ctx)

	doc, err := toGeneric(b.Build())
	if err != nil {
		return nil, fmt.Errorf("failed to encode configuration: %w", err)
	}

	resolver := variables.NewResolver(b.registry)
	resolved, resolveErr := resolver.Resolve(doc, ctx, variables.Options{
		Strict:   o.strict,
		MaxDepth: o.maxDepth,
	})

	if combined := combineErrors(validationErrors, resolveErr); combined != nil {
		return nil, combined
	}

	out := &dynamic.Configuration{}
	if err := fromGeneric(resolved, out); err != nil {
		return nil, fmt.Errorf("failed to decode compiled configuration: %w", err)
	}

	logging.Debug("configuration compiled",
		zap.Int("variables", len(ctx)),
		zap.Bool("strict", o.strict))
	return out, nil
}

// combineErrors merges context-validation failures with a resolver
// failure into a single aggregated error. Cycle errors pass through
// unwrapped when they are the only problem, so callers can detect the
// subtype.
func combineErrors(validationErrors []variables.FieldError, resolveErr error) error {
	if len(validationErrors) == 0 {
		return resolveErr
	}

	combined := &variables.ResolveError{Errors: validationErrors}
	switch e := resolveErr.(type) {
	case nil:
	case *variables.ResolveError:
		combined.Errors = append(combined.Errors, e.Errors...)
		combined.Unresolved = e.Unresolved
	default:
		combined.Errors = append(combined.Errors, variables.FieldError{Message: e.Error()})
	}
	return combined
}

// ToJSON compiles the document and serializes it as JSON.
func (b *ConfigurationBuilder) ToJSON(ctx variables.Context, opts ...CompileOption) ([]byte, error) {
	cfg, err := b.Compile(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(cfg, "", "  ")
}

// ToYAML compiles the document and serializes it as YAML.
func (b *ConfigurationBuilder) ToYAML(ctx variables.Context, opts ...CompileOption) ([]byte, error) {
	cfg, err := b.Compile(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(cfg)
}

// Preview reports which placeholder names in the raw document the
// given context can satisfy, without resolving or failing.
func (b *ConfigurationBuilder) Preview(ctx variables.Context) (*variables.Preview, error) {
	doc, err := toGeneric(b.Build())
	if err != nil {
		return nil, fmt.Errorf("failed to encode configuration: %w", err)
	}
	return variables.NewResolver(b.registry).PreviewDocument(doc, ctx), nil
}

// Clone returns a fully independent copy of the builder: documents,
// TLS draft, and variable registry. Mutating either side never affects
// the other.
func (b *ConfigurationBuilder) Clone() *ConfigurationBuilder {
	out := New()
	for name, r := range b.routers {
		out.routers[name] = r.DeepCopy()
	}
	for name, s := range b.services {
		out.services[name] = s.DeepCopy()
	}
	for name, m := range b.middlewares {
		out.middlewares[name] = m.DeepCopy()
	}
	out.tcp = b.tcp.DeepCopy()
	out.udp = b.udp.DeepCopy()
	out.tls = b.tls.DeepCopy()
	out.registry = b.registry.Clone()
	return out
}

// Stats summarizes the builder's contents.
type Stats struct {
	Routers     int
	Services    int
	Middlewares int
	Variables   int
	TLS         bool
}

// Stats reports component and variable counts and TLS presence.
func (b *ConfigurationBuilder) Stats() Stats {
	return Stats{
		Routers:     len(b.routers),
		Services:    len(b.services),
		Middlewares: len(b.middlewares),
		Variables:   b.registry.Len(),
		TLS:         b.tls != nil,
	}
}

// toGeneric converts a typed configuration into the generic tree the
// resolver walks.
func toGeneric(cfg *dynamic.Configuration) (any, error) {
	data, err := json.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// fromGeneric converts a resolved generic tree back into the typed
// configuration.
func fromGeneric(doc any, out *dynamic.Configuration) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}
