package quickteller

import (
	"context"
	"sync"
	"time"

	"go-quickteller/internal/pkg/soap"
)

// Transport invokes a remote operation with the optional xmlParams argument
// and returns the fields of the operation response, such as GetBillersResult.
type Transport interface {
	Call(ctx context.Context, operation string, xmlParams *string) (map[string]string, error)
}

// TransportFactory establishes a Transport for the given endpoint.
type TransportFactory func(ctx context.Context, endpoint string) (Transport, error)

type Config struct {
	Namespace       string
	Timeout         time.Duration
	SkipTLSVerify   bool
	ProxyURL        string
	ReferenceLength int

	// Transport overrides the SOAP transport, mainly for tests.
	Transport TransportFactory
	// Reference overrides the request reference generator.
	Reference func(prefix string, length int) (string, error)
}

// Client is the Quickteller operation facade. The zero state is uninitialized;
// Init moves it to ready exactly once.
type Client struct {
	cfg Config

	mu            sync.RWMutex
	transport     Transport
	terminalID    string
	requestPrefix string
}

func New(cfg *Config) *Client {
	c := &Client{}
	if cfg != nil {
		c.cfg = *cfg
	}
	if c.cfg.ReferenceLength <= 0 {
		c.cfg.ReferenceLength = DefaultReferenceLength
	}
	if c.cfg.Reference == nil {
		c.cfg.Reference = NewRequestReference
	}
	if c.cfg.Transport == nil {
		c.cfg.Transport = c.dialSOAP
	}
	return c
}

func (c *Client) dialSOAP(ctx context.Context, endpoint string) (Transport, error) {
	client, err := soap.Dial(ctx, &soap.Config{
		Endpoint:      endpoint,
		Namespace:     c.cfg.Namespace,
		Timeout:       c.cfg.Timeout,
		SkipTLSVerify: c.cfg.SkipTLSVerify,
		ProxyURL:      c.cfg.ProxyURL,
	})
	if err != nil {
		return nil, err
	}
	return client, nil
}

// Init establishes the transport and records the terminal id and request
// reference prefix. On failure the client stays uninitialized.
func (c *Client) Init(ctx context.Context, endpoint, terminalID, requestPrefix string) error {
	var missing []string
	if endpoint == "" {
		missing = append(missing, "endpoint url")
	}
	if terminalID == "" {
		missing = append(missing, "terminal id")
	}
	if requestPrefix == "" {
		missing = append(missing, "request reference prefix")
	}
	if len(missing) > 0 {
		return &ConfigError{Missing: missing}
	}

	if c.Ready() {
		return ErrAlreadyInitialized
	}

	// Dial without the lock so readers are not blocked by the WSDL probe.
	transport, err := c.cfg.Transport(ctx, endpoint)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.transport != nil {
		return ErrAlreadyInitialized
	}

	c.transport = transport
	c.terminalID = terminalID
	c.requestPrefix = requestPrefix
	return nil
}

// CheckInitialized returns ErrNotInitialized until Init has succeeded.
func (c *Client) CheckInitialized() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.transport == nil {
		return ErrNotInitialized
	}
	return nil
}

func (c *Client) Ready() bool {
	return c.CheckInitialized() == nil
}

type session struct {
	transport     Transport
	terminalID    string
	requestPrefix string
}

func (c *Client) session() (*session, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.transport == nil {
		return nil, ErrNotInitialized
	}
	return &session{
		transport:     c.transport,
		terminalID:    c.terminalID,
		requestPrefix: c.requestPrefix,
	}, nil
}
