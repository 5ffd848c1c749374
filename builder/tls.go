package builder

import (
	"github.com/wudi/proxyconf/dynamic"
)

// TLSBuilder accumulates the document's TLS section: certificates,
// named option sets, and named stores. Unlike the other component
// builders it is unnamed and cannot fail validation.
type TLSBuilder struct {
	draft dynamic.TLSConfiguration
}

// NewTLS creates an empty TLS builder.
func NewTLS() *TLSBuilder {
	return &TLSBuilder{}
}

// Certificate appends a certificate/key pair, optionally assigned to
// named stores.
func (b *TLSBuilder) Certificate(certFile, keyFile string, stores ...string) *TLSBuilder {
	b.draft.Certificates = append(b.draft.Certificates, &dynamic.CertAndStores{
		CertFile: certFile,
		KeyFile:  keyFile,
		Stores:   stores,
	})
	return b
}

// Options registers a named TLS option set.
func (b *TLSBuilder) Options(name string, opts dynamic.Options) *TLSBuilder {
	if b.draft.Options == nil {
		b.draft.Options = make(map[string]dynamic.Options)
	}
	b.draft.Options[name] = opts
	return b
}

// Store registers a named certificate store.
func (b *TLSBuilder) Store(name string, defaultCert *dynamic.Certificate) *TLSBuilder {
	if b.draft.Stores == nil {
		b.draft.Stores = make(map[string]dynamic.Store)
	}
	b.draft.Stores[name] = dynamic.Store{DefaultCertificate: defaultCert}
	return b
}

// Build returns an independent TLS configuration.
func (b *TLSBuilder) Build() *dynamic.TLSConfiguration {
	return b.draft.DeepCopy()
}
