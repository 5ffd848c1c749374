package dynamic

// TCPRouter binds an SNI-based matching rule to a TCP service.
type TCPRouter struct {
	EntryPoints []string      `json:"entryPoints,omitempty" yaml:"entryPoints,omitempty"`
	Middlewares []string      `json:"middlewares,omitempty" yaml:"middlewares,omitempty"`
	Rule        string        `json:"rule,omitempty" yaml:"rule,omitempty"`
	Service     string        `json:"service,omitempty" yaml:"service,omitempty"`
	Priority    int           `json:"priority,omitempty" yaml:"priority,omitempty"`
	TLS         *TCPRouterTLS `json:"tls,omitempty" yaml:"tls,omitempty"`
}

// TCPRouterTLS configures TLS termination on a TCP router.
type TCPRouterTLS struct {
	Passthrough  bool     `json:"passthrough,omitempty" yaml:"passthrough,omitempty"`
	CertResolver string   `json:"certResolver,omitempty" yaml:"certResolver,omitempty"`
	Domains      []Domain `json:"domains,omitempty" yaml:"domains,omitempty"`
}

// TCPService is a TCP backend target group.
type TCPService struct {
	LoadBalancer *TCPServersLoadBalancer `json:"loadBalancer,omitempty" yaml:"loadBalancer,omitempty"`
	Weighted     *TCPWeightedRoundRobin  `json:"weighted,omitempty" yaml:"weighted,omitempty"`
}

// TCPServersLoadBalancer balances connections across backend addresses.
type TCPServersLoadBalancer struct {
	Servers []TCPServer `json:"servers,omitempty" yaml:"servers,omitempty"`
}

// TCPServer is a single TCP backend address (host:port).
type TCPServer struct {
	Address string `json:"address,omitempty" yaml:"address,omitempty"`
}

// TCPWeightedRoundRobin splits TCP traffic between named sub-services.
type TCPWeightedRoundRobin struct {
	Services []WRRService `json:"services,omitempty" yaml:"services,omitempty"`
}

// TCPMiddleware is a named TCP-level transformation.
type TCPMiddleware struct {
	IPAllowList  *TCPIPAllowList  `json:"ipAllowList,omitempty" yaml:"ipAllowList,omitempty"`
	InFlightConn *TCPInFlightConn `json:"inFlightConn,omitempty" yaml:"inFlightConn,omitempty"`
}

// TCPIPAllowList rejects connections from outside the given ranges.
type TCPIPAllowList struct {
	SourceRange []string `json:"sourceRange,omitempty" yaml:"sourceRange,omitempty"`
}

// TCPInFlightConn caps simultaneous connections.
type TCPInFlightConn struct {
	Amount *Number `json:"amount,omitempty" yaml:"amount,omitempty"`
}

// UDPRouter forwards datagrams on an entry point to a UDP service.
// UDP routing has no matching rule.
type UDPRouter struct {
	EntryPoints []string `json:"entryPoints,omitempty" yaml:"entryPoints,omitempty"`
	Service     string   `json:"service,omitempty" yaml:"service,omitempty"`
}

// UDPService is a UDP backend target group.
type UDPService struct {
	LoadBalancer *UDPServersLoadBalancer `json:"loadBalancer,omitempty" yaml:"loadBalancer,omitempty"`
}

// UDPServersLoadBalancer balances datagrams across backend addresses.
type UDPServersLoadBalancer struct {
	Servers []UDPServer `json:"servers,omitempty" yaml:"servers,omitempty"`
}

// UDPServer is a single UDP backend address (host:port).
type UDPServer struct {
	Address string `json:"address,omitempty" yaml:"address,omitempty"`
}
