package soap

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go-quickteller/internal/pkg/logger"
)

const DefaultNamespace = "http://services.interswitchng.com/quicktellerservice/"

// maxBodySize bounds how much of a response is read.
const maxBodySize = 10 << 20

type Config struct {
	// Endpoint is the service URL, with or without the ?wsdl query.
	Endpoint      string
	Namespace     string
	ActionPrefix  string
	Timeout       time.Duration
	SkipTLSVerify bool
	ProxyURL      string
	HTTPClient    *http.Client
}

// Result holds the child elements of an operation response, keyed by name.
type Result = map[string]string

type Client struct {
	serviceURL   string
	namespace    string
	actionPrefix string
	http         *http.Client
}

// Dial fetches the service WSDL to make sure the endpoint is reachable and
// returns a client bound to it.
func Dial(ctx context.Context, cfg *Config) (*Client, error) {
	serviceURL, err := serviceURL(cfg.Endpoint)
	if err != nil {
		return nil, err
	}

	namespace := cfg.Namespace
	if namespace == "" {
		namespace = DefaultNamespace
	}
	actionPrefix := cfg.ActionPrefix
	if actionPrefix == "" {
		actionPrefix = strings.TrimSuffix(namespace, "/") + "/IQuickTellerService/"
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = newHTTPClient(cfg)
	}

	c := &Client{
		serviceURL:   serviceURL,
		namespace:    namespace,
		actionPrefix: actionPrefix,
		http:         httpClient,
	}
	if err := c.probe(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

func serviceURL(endpoint string) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid soap endpoint: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("invalid soap endpoint: %q", endpoint)
	}
	q := u.Query()
	q.Del("wsdl")
	q.Del("WSDL")
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (c *Client) probe(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.serviceURL+"?wsdl", nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch wsdl: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
		return &HTTPError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// Call posts operation with the raw xmlParams argument. A nil xmlParams sends
// the operation element without arguments.
func (c *Client) Call(ctx context.Context, operation string, xmlParams *string) (Result, error) {
	payload, err := buildEnvelope(c.namespace, operation, xmlParams)
	if err != nil {
		return nil, fmt.Errorf("failed to build soap envelope: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.serviceURL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	req.Header.Set("SOAPAction", `"`+c.actionPrefix+operation+`"`)

	logger.Debug.Printf("Making SOAP request %s to: %s", operation, c.serviceURL)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("soap request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read soap response: %w", err)
	}

	logger.Debug.Printf("SOAP request %s completed with status: %d", operation, resp.StatusCode)

	result, err := parseEnvelope(body, operation)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var fault *Fault
		if errors.As(err, &fault) {
			return nil, fault
		}
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return result, err
}
