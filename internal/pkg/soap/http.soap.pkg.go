package soap

import (
	"crypto/tls"
	"net"
	"net/http"
	"net/url"
	"time"

	"go-quickteller/internal/pkg/logger"
)

const defaultTimeout = 60 * time.Second

// newHTTPClient builds the client used for both the WSDL probe and operation
// calls. An invalid proxy URL is logged and ignored.
func newHTTPClient(cfg *Config) *http.Client {
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout: 10 * time.Second,
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: cfg.SkipTLSVerify,
		},
	}

	if cfg.ProxyURL != "" {
		proxyURL, err := url.Parse(cfg.ProxyURL)
		if err != nil {
			logger.Error.Printf("Invalid proxy URL: %v", err)
		} else {
			transport.Proxy = http.ProxyURL(proxyURL)
			logger.Debug.Printf("Using proxy: %s", cfg.ProxyURL)
		}
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}
}
