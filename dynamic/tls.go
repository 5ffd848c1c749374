package dynamic

// TLSConfiguration is the document's TLS section: certificates, named
// option sets, and named certificate stores.
type TLSConfiguration struct {
	Certificates []*CertAndStores `json:"certificates,omitempty" yaml:"certificates,omitempty"`
	Options      map[string]Options `json:"options,omitempty" yaml:"options,omitempty"`
	Stores       map[string]Store   `json:"stores,omitempty" yaml:"stores,omitempty"`
}

// CertAndStores references a certificate/key pair and the stores it
// belongs to.
type CertAndStores struct {
	CertFile string   `json:"certFile,omitempty" yaml:"certFile,omitempty"`
	KeyFile  string   `json:"keyFile,omitempty" yaml:"keyFile,omitempty"`
	Stores   []string `json:"stores,omitempty" yaml:"stores,omitempty"`
}

// Options is a named TLS option set.
type Options struct {
	MinVersion   string      `json:"minVersion,omitempty" yaml:"minVersion,omitempty"`
	MaxVersion   string      `json:"maxVersion,omitempty" yaml:"maxVersion,omitempty"`
	CipherSuites []string    `json:"cipherSuites,omitempty" yaml:"cipherSuites,omitempty"`
	ClientAuth   *ClientAuth `json:"clientAuth,omitempty" yaml:"clientAuth,omitempty"`
}

// ClientAuth configures mutual-TLS client verification.
type ClientAuth struct {
	CAFiles        []string `json:"caFiles,omitempty" yaml:"caFiles,omitempty"`
	ClientAuthType string   `json:"clientAuthType,omitempty" yaml:"clientAuthType,omitempty"`
}

// Store is a named certificate store.
type Store struct {
	DefaultCertificate *Certificate `json:"defaultCertificate,omitempty" yaml:"defaultCertificate,omitempty"`
}

// Certificate is a certificate/key file pair.
type Certificate struct {
	CertFile string `json:"certFile,omitempty" yaml:"certFile,omitempty"`
	KeyFile  string `json:"keyFile,omitempty" yaml:"keyFile,omitempty"`
}
