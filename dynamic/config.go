// Package dynamic defines the dynamic routing configuration document
// consumed by the reverse proxy's file provider: routers, load-balanced
// services, middlewares, and TLS stores, grouped by transport.
//
// The document is designed to round-trip losslessly through YAML and
// JSON. String fields may carry unresolved placeholder tokens
// (~##name##~) that are substituted at deploy time by the variables
// package; see the builder package for construction and compilation.
package dynamic

// Configuration is the top-level dynamic configuration document.
// Sections that have no content are nil and are omitted from any
// serialized form.
type Configuration struct {
	HTTP *HTTPConfiguration `json:"http,omitempty" yaml:"http,omitempty"`
	TCP  *TCPConfiguration  `json:"tcp,omitempty" yaml:"tcp,omitempty"`
	UDP  *UDPConfiguration  `json:"udp,omitempty" yaml:"udp,omitempty"`
	TLS  *TLSConfiguration  `json:"tls,omitempty" yaml:"tls,omitempty"`
}

// HTTPConfiguration holds the HTTP transport section.
type HTTPConfiguration struct {
	Routers     map[string]*Router     `json:"routers,omitempty" yaml:"routers,omitempty"`
	Services    map[string]*Service    `json:"services,omitempty" yaml:"services,omitempty"`
	Middlewares map[string]*Middleware `json:"middlewares,omitempty" yaml:"middlewares,omitempty"`
}

// TCPConfiguration holds the TCP transport section.
type TCPConfiguration struct {
	Routers     map[string]*TCPRouter     `json:"routers,omitempty" yaml:"routers,omitempty"`
	Services    map[string]*TCPService    `json:"services,omitempty" yaml:"services,omitempty"`
	Middlewares map[string]*TCPMiddleware `json:"middlewares,omitempty" yaml:"middlewares,omitempty"`
}

// UDPConfiguration holds the UDP transport section. UDP has no
// middleware concept.
type UDPConfiguration struct {
	Routers  map[string]*UDPRouter  `json:"routers,omitempty" yaml:"routers,omitempty"`
	Services map[string]*UDPService `json:"services,omitempty" yaml:"services,omitempty"`
}
