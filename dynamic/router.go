package dynamic

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/goccy/go-yaml"
)

// Router binds a matching rule to a target service, with optional entry
// points, middleware chain, priority, and TLS settings.
type Router struct {
	EntryPoints []string   `json:"entryPoints,omitempty" yaml:"entryPoints,omitempty"`
	Middlewares []string   `json:"middlewares,omitempty" yaml:"middlewares,omitempty"`
	Rule        string     `json:"rule,omitempty" yaml:"rule,omitempty"`
	Service     string     `json:"service,omitempty" yaml:"service,omitempty"`
	Priority    int        `json:"priority,omitempty" yaml:"priority,omitempty"`
	TLS         *RouterTLS `json:"tls,omitempty" yaml:"tls,omitempty"`
}

// RouterTLS is a router's TLS setting. It serializes either as a bare
// boolean (plain enable) or, once a cert resolver or domain has been
// configured, as a structured object. Both forms round-trip.
type RouterTLS struct {
	Enabled bool
	Config  *RouterTLSConfig
}

// RouterTLSConfig is the structured form of a router TLS setting.
type RouterTLSConfig struct {
	CertResolver string   `json:"certResolver,omitempty" yaml:"certResolver,omitempty"`
	Domains      []Domain `json:"domains,omitempty" yaml:"domains,omitempty"`
}

// Domain is a certificate domain entry: a main name plus optional
// alternative names.
type Domain struct {
	Main string   `json:"main,omitempty" yaml:"main,omitempty"`
	SANs []string `json:"sans,omitempty" yaml:"sans,omitempty"`
}

// MarshalJSON emits the structured form when present, the boolean form
// otherwise.
func (t *RouterTLS) MarshalJSON() ([]byte, error) {
	if t.Config != nil {
		return json.Marshal(t.Config)
	}
	return json.Marshal(t.Enabled)
}

// UnmarshalJSON accepts either a boolean or a structured object.
func (t *RouterTLS) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("true")) || bytes.Equal(trimmed, []byte("false")) {
		t.Enabled = bytes.Equal(trimmed, []byte("true"))
		t.Config = nil
		return nil
	}
	cfg := &RouterTLSConfig{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("router tls: %w", err)
	}
	t.Enabled = true
	t.Config = cfg
	return nil
}

// MarshalYAML emits the structured form when present, the boolean form
// otherwise.
func (t *RouterTLS) MarshalYAML() (interface{}, error) {
	if t.Config != nil {
		return t.Config, nil
	}
	return t.Enabled, nil
}

// UnmarshalYAML accepts either a boolean or a structured object.
func (t *RouterTLS) UnmarshalYAML(data []byte) error {
	var b bool
	if err := yaml.Unmarshal(data, &b); err == nil {
		t.Enabled = b
		t.Config = nil
		return nil
	}
	cfg := &RouterTLSConfig{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("router tls: %w", err)
	}
	t.Enabled = true
	t.Config = cfg
	return nil
}
