package builder

import (
	"fmt"

	"github.com/wudi/proxyconf/dynamic"
)

// ServiceBuilder accumulates one named service configuration. Exactly
// one of the three shapes (load balancer, weighted group, mirroring)
// may be populated; Build rejects anything else.
type ServiceBuilder struct {
	name      string
	lb        *dynamic.ServersLoadBalancer
	weighted  *dynamic.WeightedRoundRobin
	mirroring *dynamic.Mirroring
}

// NewService creates a service builder for the given name.
func NewService(name string) *ServiceBuilder {
	return &ServiceBuilder{name: name}
}

// Name returns the service name.
func (b *ServiceBuilder) Name() string {
	return b.name
}

func (b *ServiceBuilder) loadBalancer() *dynamic.ServersLoadBalancer {
	if b.lb == nil {
		b.lb = &dynamic.ServersLoadBalancer{}
	}
	return b.lb
}

// URL appends a backend target to the load-balancer shape.
func (b *ServiceBuilder) URL(url string) *ServiceBuilder {
	lb := b.loadBalancer()
	lb.Servers = append(lb.Servers, dynamic.Server{URL: url})
	return b
}

// Server appends a weighted backend target to the load-balancer shape.
func (b *ServiceBuilder) Server(url string, weight int) *ServiceBuilder {
	lb := b.loadBalancer()
	w := weight
	lb.Servers = append(lb.Servers, dynamic.Server{URL: url, Weight: &w})
	return b
}

// HealthCheck configures active health probing on the load-balancer
// shape.
func (b *ServiceBuilder) HealthCheck(path, interval, timeout string) *ServiceBuilder {
	lb := b.loadBalancer()
	if lb.HealthCheck == nil {
		lb.HealthCheck = &dynamic.ServerHealthCheck{}
	}
	lb.HealthCheck.Path = path
	lb.HealthCheck.Interval = interval
	lb.HealthCheck.Timeout = timeout
	return b
}

// HealthCheckScheme sets the probe scheme (http or https).
func (b *ServiceBuilder) HealthCheckScheme(scheme string) *ServiceBuilder {
	lb := b.loadBalancer()
	if lb.HealthCheck == nil {
		lb.HealthCheck = &dynamic.ServerHealthCheck{}
	}
	lb.HealthCheck.Scheme = scheme
	return b
}

// Sticky enables cookie-based session affinity with the given cookie
// name.
func (b *ServiceBuilder) Sticky(cookieName string) *ServiceBuilder {
	lb := b.loadBalancer()
	lb.Sticky = &dynamic.Sticky{Cookie: &dynamic.Cookie{Name: cookieName}}
	return b
}

// StickyCookie enables session affinity with a fully specified cookie.
func (b *ServiceBuilder) StickyCookie(cookie dynamic.Cookie) *ServiceBuilder {
	lb := b.loadBalancer()
	lb.Sticky = &dynamic.Sticky{Cookie: &cookie}
	return b
}

// Weighted appends a sub-service to the weighted-group shape.
func (b *ServiceBuilder) Weighted(name string, weight int) *ServiceBuilder {
	if b.weighted == nil {
		b.weighted = &dynamic.WeightedRoundRobin{}
	}
	w := weight
	b.weighted.Services = append(b.weighted.Services, dynamic.WRRService{Name: name, Weight: &w})
	return b
}

// Mirror sets the primary service of the mirroring shape.
func (b *ServiceBuilder) Mirror(primary string) *ServiceBuilder {
	if b.mirroring == nil {
		b.mirroring = &dynamic.Mirroring{}
	}
	b.mirroring.Service = primary
	return b
}

// MirrorTo appends a mirror target receiving the given percentage of
// traffic.
func (b *ServiceBuilder) MirrorTo(name string, percent int) *ServiceBuilder {
	if b.mirroring == nil {
		b.mirroring = &dynamic.Mirroring{}
	}
	b.mirroring.Mirrors = append(b.mirroring.Mirrors, dynamic.MirrorService{Name: name, Percent: percent})
	return b
}

// Build validates the draft and returns an independent service
// configuration.
func (b *ServiceBuilder) Build() (*dynamic.Service, error) {
	populated := 0
	if b.lb != nil {
		populated++
	}
	if b.weighted != nil {
		populated++
	}
	if b.mirroring != nil {
		populated++
	}
	switch {
	case populated == 0:
		return nil, fmt.Errorf("Service '%s' has no configuration", b.name)
	case populated > 1:
		return nil, fmt.Errorf("Service '%s' must populate exactly one of loadBalancer, weighted, or mirroring", b.name)
	}

	if b.lb != nil && len(b.lb.Servers) == 0 {
		return nil, fmt.Errorf("Service '%s' load balancer needs at least one server", b.name)
	}

	draft := &dynamic.Service{
		LoadBalancer: b.lb,
		Weighted:     b.weighted,
		Mirroring:    b.mirroring,
	}
	return draft.DeepCopy(), nil
}
