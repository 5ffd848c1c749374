package builder

import (
	"encoding/json"

	"github.com/goccy/go-yaml"
	"go.uber.org/zap"

	"github.com/wudi/proxyconf/dynamic"
	"github.com/wudi/proxyconf/internal/logging"
)

// Load parses a serialized document, trying YAML first and JSON on
// failure, and populates the builder from it. When neither format
// parses, the returned ParseError carries both failure reasons.
func (b *ConfigurationBuilder) Load(data []byte) error {
	cfg := &dynamic.Configuration{}
	yamlErr := yaml.Unmarshal(data, cfg)
	if yamlErr != nil {
		cfg = &dynamic.Configuration{}
		if jsonErr := json.Unmarshal(data, cfg); jsonErr != nil {
			return &ParseError{YAMLErr: yamlErr, JSONErr: jsonErr}
		}
	}
	b.LoadConfiguration(cfg)
	return nil
}

// LoadString parses a serialized document from a string.
func (b *ConfigurationBuilder) LoadString(s string) error {
	return b.Load([]byte(s))
}

// LoadConfiguration populates the builder from an in-memory document.
// Sections present in the document replace the builder's; absent
// sections leave the builder untouched. The document is copied, so
// later mutation of cfg does not affect the builder.
func (b *ConfigurationBuilder) LoadConfiguration(cfg *dynamic.Configuration) {
	if cfg == nil {
		return
	}

	if cfg.HTTP != nil {
		b.routers = make(map[string]*dynamic.Router, len(cfg.HTTP.Routers))
		for name, r := range cfg.HTTP.Routers {
			b.routers[name] = r.DeepCopy()
		}
		b.services = make(map[string]*dynamic.Service, len(cfg.HTTP.Services))
		for name, s := range cfg.HTTP.Services {
			b.services[name] = s.DeepCopy()
		}
		b.middlewares = make(map[string]*dynamic.Middleware, len(cfg.HTTP.Middlewares))
		for name, m := range cfg.HTTP.Middlewares {
			b.middlewares[name] = m.DeepCopy()
		}
	}
	if cfg.TCP != nil {
		b.tcp = cfg.TCP.DeepCopy()
	}
	if cfg.UDP != nil {
		b.udp = cfg.UDP.DeepCopy()
	}
	if cfg.TLS != nil {
		b.tls = cfg.TLS.DeepCopy()
	}

	logging.Debug("configuration loaded",
		zap.Int("routers", len(b.routers)),
		zap.Int("services", len(b.services)),
		zap.Int("middlewares", len(b.middlewares)),
		zap.Bool("tls", b.tls != nil))
}
