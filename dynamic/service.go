package dynamic

// Service is a named backend target group. Exactly one of the three
// shapes is populated per entry; the builder package enforces this at
// build time.
type Service struct {
	LoadBalancer *ServersLoadBalancer `json:"loadBalancer,omitempty" yaml:"loadBalancer,omitempty"`
	Weighted     *WeightedRoundRobin  `json:"weighted,omitempty" yaml:"weighted,omitempty"`
	Mirroring    *Mirroring           `json:"mirroring,omitempty" yaml:"mirroring,omitempty"`
}

// ServersLoadBalancer balances requests across an ordered list of
// backend servers.
type ServersLoadBalancer struct {
	Servers     []Server           `json:"servers,omitempty" yaml:"servers,omitempty"`
	HealthCheck *ServerHealthCheck `json:"healthCheck,omitempty" yaml:"healthCheck,omitempty"`
	Sticky      *Sticky            `json:"sticky,omitempty" yaml:"sticky,omitempty"`
}

// Server is a single backend target.
type Server struct {
	URL    string `json:"url,omitempty" yaml:"url,omitempty"`
	Weight *int   `json:"weight,omitempty" yaml:"weight,omitempty"`
}

// ServerHealthCheck configures active health probing for a
// load-balanced service.
type ServerHealthCheck struct {
	Path     string `json:"path,omitempty" yaml:"path,omitempty"`
	Scheme   string `json:"scheme,omitempty" yaml:"scheme,omitempty"`
	Interval string `json:"interval,omitempty" yaml:"interval,omitempty"`
	Timeout  string `json:"timeout,omitempty" yaml:"timeout,omitempty"`
}

// Sticky enables cookie-based session affinity.
type Sticky struct {
	Cookie *Cookie `json:"cookie,omitempty" yaml:"cookie,omitempty"`
}

// Cookie describes the sticky-session cookie.
type Cookie struct {
	Name     string `json:"name,omitempty" yaml:"name,omitempty"`
	Secure   bool   `json:"secure,omitempty" yaml:"secure,omitempty"`
	HTTPOnly bool   `json:"httpOnly,omitempty" yaml:"httpOnly,omitempty"`
	SameSite string `json:"sameSite,omitempty" yaml:"sameSite,omitempty"`
}

// WeightedRoundRobin splits traffic between named sub-services by
// weight.
type WeightedRoundRobin struct {
	Services []WRRService `json:"services,omitempty" yaml:"services,omitempty"`
}

// WRRService is one weighted sub-service reference.
type WRRService struct {
	Name   string `json:"name,omitempty" yaml:"name,omitempty"`
	Weight *int   `json:"weight,omitempty" yaml:"weight,omitempty"`
}

// Mirroring sends traffic to a primary service and mirrors a percentage
// of it to each listed mirror.
type Mirroring struct {
	Service string          `json:"service,omitempty" yaml:"service,omitempty"`
	Mirrors []MirrorService `json:"mirrors,omitempty" yaml:"mirrors,omitempty"`
}

// MirrorService is one mirror target with its traffic percentage.
type MirrorService struct {
	Name    string `json:"name,omitempty" yaml:"name,omitempty"`
	Percent int    `json:"percent,omitempty" yaml:"percent,omitempty"`
}
