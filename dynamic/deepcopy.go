package dynamic

func copyStrings(src []string) []string {
	if src == nil {
		return nil
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}

func copyStringMap(src map[string]string) map[string]string {
	if src == nil {
		return nil
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

func copyIntPtr(src *int) *int {
	if src == nil {
		return nil
	}
	v := *src
	return &v
}

// DeepCopy returns a fully independent copy of the configuration.
func (c *Configuration) DeepCopy() *Configuration {
	if c == nil {
		return nil
	}
	return &Configuration{
		HTTP: c.HTTP.DeepCopy(),
		TCP:  c.TCP.DeepCopy(),
		UDP:  c.UDP.DeepCopy(),
		TLS:  c.TLS.DeepCopy(),
	}
}

// DeepCopy returns an independent copy of the HTTP section.
func (c *HTTPConfiguration) DeepCopy() *HTTPConfiguration {
	if c == nil {
		return nil
	}
	out := &HTTPConfiguration{}
	if c.Routers != nil {
		out.Routers = make(map[string]*Router, len(c.Routers))
		for k, v := range c.Routers {
			out.Routers[k] = v.DeepCopy()
		}
	}
	if c.Services != nil {
		out.Services = make(map[string]*Service, len(c.Services))
		for k, v := range c.Services {
			out.Services[k] = v.DeepCopy()
		}
	}
	if c.Middlewares != nil {
		out.Middlewares = make(map[string]*Middleware, len(c.Middlewares))
		for k, v := range c.Middlewares {
			out.Middlewares[k] = v.DeepCopy()
		}
	}
	return out
}

// DeepCopy returns an independent copy of the router.
func (r *Router) DeepCopy() *Router {
	if r == nil {
		return nil
	}
	return &Router{
		EntryPoints: copyStrings(r.EntryPoints),
		Middlewares: copyStrings(r.Middlewares),
		Rule:        r.Rule,
		Service:     r.Service,
		Priority:    r.Priority,
		TLS:         r.TLS.DeepCopy(),
	}
}

// DeepCopy returns an independent copy of the router TLS setting.
func (t *RouterTLS) DeepCopy() *RouterTLS {
	if t == nil {
		return nil
	}
	out := &RouterTLS{Enabled: t.Enabled}
	if t.Config != nil {
		out.Config = &RouterTLSConfig{
			CertResolver: t.Config.CertResolver,
			Domains:      copyDomains(t.Config.Domains),
		}
	}
	return out
}

func copyDomains(src []Domain) []Domain {
	if src == nil {
		return nil
	}
	out := make([]Domain, len(src))
	for i, d := range src {
		out[i] = Domain{Main: d.Main, SANs: copyStrings(d.SANs)}
	}
	return out
}

// DeepCopy returns an independent copy of the service.
func (s *Service) DeepCopy() *Service {
	if s == nil {
		return nil
	}
	out := &Service{}
	if s.LoadBalancer != nil {
		lb := &ServersLoadBalancer{}
		if s.LoadBalancer.Servers != nil {
			lb.Servers = make([]Server, len(s.LoadBalancer.Servers))
			for i, srv := range s.LoadBalancer.Servers {
				lb.Servers[i] = Server{URL: srv.URL, Weight: copyIntPtr(srv.Weight)}
			}
		}
		if hc := s.LoadBalancer.HealthCheck; hc != nil {
			c := *hc
			lb.HealthCheck = &c
		}
		if st := s.LoadBalancer.Sticky; st != nil {
			lb.Sticky = &Sticky{}
			if st.Cookie != nil {
				c := *st.Cookie
				lb.Sticky.Cookie = &c
			}
		}
		out.LoadBalancer = lb
	}
	if s.Weighted != nil {
		w := &WeightedRoundRobin{}
		if s.Weighted.Services != nil {
			w.Services = make([]WRRService, len(s.Weighted.Services))
			for i, ws := range s.Weighted.Services {
				w.Services[i] = WRRService{Name: ws.Name, Weight: copyIntPtr(ws.Weight)}
			}
		}
		out.Weighted = w
	}
	if s.Mirroring != nil {
		m := &Mirroring{Service: s.Mirroring.Service}
		if s.Mirroring.Mirrors != nil {
			m.Mirrors = make([]MirrorService, len(s.Mirroring.Mirrors))
			copy(m.Mirrors, s.Mirroring.Mirrors)
		}
		out.Mirroring = m
	}
	return out
}

// DeepCopy returns an independent copy of the number.
func (n *Number) DeepCopy() *Number {
	if n == nil {
		return nil
	}
	c := *n
	return &c
}

// DeepCopy returns an independent copy of the middleware.
func (m *Middleware) DeepCopy() *Middleware {
	if m == nil {
		return nil
	}
	out := &Middleware{}
	if m.Headers != nil {
		h := *m.Headers
		h.CustomRequestHeaders = copyStringMap(m.Headers.CustomRequestHeaders)
		h.CustomResponseHeaders = copyStringMap(m.Headers.CustomResponseHeaders)
		h.AccessControlAllowHeaders = copyStrings(m.Headers.AccessControlAllowHeaders)
		h.AccessControlAllowMethods = copyStrings(m.Headers.AccessControlAllowMethods)
		h.AccessControlAllowOriginList = copyStrings(m.Headers.AccessControlAllowOriginList)
		h.AccessControlExposeHeaders = copyStrings(m.Headers.AccessControlExposeHeaders)
		out.Headers = &h
	}
	if m.AddPrefix != nil {
		c := *m.AddPrefix
		out.AddPrefix = &c
	}
	if m.StripPrefix != nil {
		out.StripPrefix = &StripPrefix{Prefixes: copyStrings(m.StripPrefix.Prefixes)}
	}
	if m.ReplacePath != nil {
		c := *m.ReplacePath
		out.ReplacePath = &c
	}
	if m.ReplacePathRegex != nil {
		c := *m.ReplacePathRegex
		out.ReplacePathRegex = &c
	}
	if m.RedirectScheme != nil {
		c := *m.RedirectScheme
		out.RedirectScheme = &c
	}
	if m.RedirectRegex != nil {
		c := *m.RedirectRegex
		out.RedirectRegex = &c
	}
	if m.BasicAuth != nil {
		c := *m.BasicAuth
		c.Users = copyStrings(m.BasicAuth.Users)
		out.BasicAuth = &c
	}
	if m.DigestAuth != nil {
		c := *m.DigestAuth
		c.Users = copyStrings(m.DigestAuth.Users)
		out.DigestAuth = &c
	}
	if m.ForwardAuth != nil {
		c := *m.ForwardAuth
		c.AuthResponseHeaders = copyStrings(m.ForwardAuth.AuthResponseHeaders)
		c.AuthRequestHeaders = copyStrings(m.ForwardAuth.AuthRequestHeaders)
		out.ForwardAuth = &c
	}
	if m.Chain != nil {
		out.Chain = &Chain{Middlewares: copyStrings(m.Chain.Middlewares)}
	}
	if m.Compress != nil {
		c := *m.Compress
		c.ExcludedContentTypes = copyStrings(m.Compress.ExcludedContentTypes)
		out.Compress = &c
	}
	if m.RateLimit != nil {
		out.RateLimit = &RateLimit{
			Average: m.RateLimit.Average.DeepCopy(),
			Burst:   m.RateLimit.Burst.DeepCopy(),
			Period:  m.RateLimit.Period,
		}
	}
	if m.Retry != nil {
		out.Retry = &Retry{
			Attempts:        m.Retry.Attempts.DeepCopy(),
			InitialInterval: m.Retry.InitialInterval,
		}
	}
	if m.Buffering != nil {
		out.Buffering = &Buffering{
			MaxRequestBodyBytes:  m.Buffering.MaxRequestBodyBytes.DeepCopy(),
			MemRequestBodyBytes:  m.Buffering.MemRequestBodyBytes.DeepCopy(),
			MaxResponseBodyBytes: m.Buffering.MaxResponseBodyBytes.DeepCopy(),
			MemResponseBodyBytes: m.Buffering.MemResponseBodyBytes.DeepCopy(),
			RetryExpression:      m.Buffering.RetryExpression,
		}
	}
	if m.CircuitBreaker != nil {
		c := *m.CircuitBreaker
		out.CircuitBreaker = &c
	}
	if m.InFlightReq != nil {
		out.InFlightReq = &InFlightReq{Amount: m.InFlightReq.Amount.DeepCopy()}
	}
	if m.IPAllowList != nil {
		out.IPAllowList = &IPAllowList{SourceRange: copyStrings(m.IPAllowList.SourceRange)}
	}
	return out
}

// DeepCopy returns an independent copy of the TLS section.
func (t *TLSConfiguration) DeepCopy() *TLSConfiguration {
	if t == nil {
		return nil
	}
	out := &TLSConfiguration{}
	if t.Certificates != nil {
		out.Certificates = make([]*CertAndStores, len(t.Certificates))
		for i, c := range t.Certificates {
			out.Certificates[i] = &CertAndStores{
				CertFile: c.CertFile,
				KeyFile:  c.KeyFile,
				Stores:   copyStrings(c.Stores),
			}
		}
	}
	if t.Options != nil {
		out.Options = make(map[string]Options, len(t.Options))
		for k, o := range t.Options {
			c := o
			c.CipherSuites = copyStrings(o.CipherSuites)
			if o.ClientAuth != nil {
				c.ClientAuth = &ClientAuth{
					CAFiles:        copyStrings(o.ClientAuth.CAFiles),
					ClientAuthType: o.ClientAuth.ClientAuthType,
				}
			}
			out.Options[k] = c
		}
	}
	if t.Stores != nil {
		out.Stores = make(map[string]Store, len(t.Stores))
		for k, s := range t.Stores {
			c := Store{}
			if s.DefaultCertificate != nil {
				dc := *s.DefaultCertificate
				c.DefaultCertificate = &dc
			}
			out.Stores[k] = c
		}
	}
	return out
}

// DeepCopy returns an independent copy of the TCP section.
func (c *TCPConfiguration) DeepCopy() *TCPConfiguration {
	if c == nil {
		return nil
	}
	out := &TCPConfiguration{}
	if c.Routers != nil {
		out.Routers = make(map[string]*TCPRouter, len(c.Routers))
		for k, r := range c.Routers {
			cp := &TCPRouter{
				EntryPoints: copyStrings(r.EntryPoints),
				Middlewares: copyStrings(r.Middlewares),
				Rule:        r.Rule,
				Service:     r.Service,
				Priority:    r.Priority,
			}
			if r.TLS != nil {
				cp.TLS = &TCPRouterTLS{
					Passthrough:  r.TLS.Passthrough,
					CertResolver: r.TLS.CertResolver,
					Domains:      copyDomains(r.TLS.Domains),
				}
			}
			out.Routers[k] = cp
		}
	}
	if c.Services != nil {
		out.Services = make(map[string]*TCPService, len(c.Services))
		for k, s := range c.Services {
			cp := &TCPService{}
			if s.LoadBalancer != nil {
				lb := &TCPServersLoadBalancer{}
				if s.LoadBalancer.Servers != nil {
					lb.Servers = make([]TCPServer, len(s.LoadBalancer.Servers))
					copy(lb.Servers, s.LoadBalancer.Servers)
				}
				cp.LoadBalancer = lb
			}
			if s.Weighted != nil {
				w := &TCPWeightedRoundRobin{}
				if s.Weighted.Services != nil {
					w.Services = make([]WRRService, len(s.Weighted.Services))
					for i, ws := range s.Weighted.Services {
						w.Services[i] = WRRService{Name: ws.Name, Weight: copyIntPtr(ws.Weight)}
					}
				}
				cp.Weighted = w
			}
			out.Services[k] = cp
		}
	}
	if c.Middlewares != nil {
		out.Middlewares = make(map[string]*TCPMiddleware, len(c.Middlewares))
		for k, m := range c.Middlewares {
			cp := &TCPMiddleware{}
			if m.IPAllowList != nil {
				cp.IPAllowList = &TCPIPAllowList{SourceRange: copyStrings(m.IPAllowList.SourceRange)}
			}
			if m.InFlightConn != nil {
				cp.InFlightConn = &TCPInFlightConn{Amount: m.InFlightConn.Amount.DeepCopy()}
			}
			out.Middlewares[k] = cp
		}
	}
	return out
}

// DeepCopy returns an independent copy of the UDP section.
func (c *UDPConfiguration) DeepCopy() *UDPConfiguration {
	if c == nil {
		return nil
	}
	out := &UDPConfiguration{}
	if c.Routers != nil {
		out.Routers = make(map[string]*UDPRouter, len(c.Routers))
		for k, r := range c.Routers {
			out.Routers[k] = &UDPRouter{
				EntryPoints: copyStrings(r.EntryPoints),
				Service:     r.Service,
			}
		}
	}
	if c.Services != nil {
		out.Services = make(map[string]*UDPService, len(c.Services))
		for k, s := range c.Services {
			cp := &UDPService{}
			if s.LoadBalancer != nil {
				lb := &UDPServersLoadBalancer{}
				if s.LoadBalancer.Servers != nil {
					lb.Servers = make([]UDPServer, len(s.LoadBalancer.Servers))
					copy(lb.Servers, s.LoadBalancer.Servers)
				}
				cp.LoadBalancer = lb
			}
			out.Services[k] = cp
		}
	}
	return out
}
