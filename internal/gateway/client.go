package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/muurk/apsetup/internal/logging"
	"github.com/muurk/apsetup/internal/state"
	"github.com/muurk/apsetup/internal/urls"
	"github.com/muurk/apsetup/internal/version"
)

const (
	// DefaultPort is the HTTP port a device in setup mode listens on
	DefaultPort = 80

	// DefaultTimeout is the default HTTP request timeout
	DefaultTimeout = 10 * time.Second

	// maxBodySize caps how much of a response is read
	maxBodySize = 1 << 20
)

// Endpoint paths served by the device.
const (
	PathBrowse = "/browse.json"
	PathConfig = "/config.json"
	PathSave   = "/save"
)

// Client represents an HTTP client for communicating with a device
type Client struct {
	// HTTPClient is the underlying HTTP client
	HTTPClient *http.Client

	// UserAgent is sent with every request
	UserAgent string

	mu      sync.RWMutex
	baseURL string
}

// NewClient creates a client for the device at host:port
func NewClient(host string, port int) *Client {
	if port == 0 {
		port = DefaultPort
	}
	return NewClientWithURL(fmt.Sprintf("http://%s:%d", host, port))
}

// NewClientWithURL creates a client with a full base URL
// (e.g., "http://192.168.4.1" or "http://kitchen.local:8080")
func NewClientWithURL(baseURL string) *Client {
	return &Client{
		HTTPClient: &http.Client{Timeout: DefaultTimeout},
		UserAgent:  version.UserAgent(),
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// SetTimeout sets the HTTP request timeout
func (c *Client) SetTimeout(timeout time.Duration) {
	c.HTTPClient.Timeout = timeout
}

// BaseURL returns the URL requests are currently sent to
func (c *Client) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL
}

// Rebase points the client at a new base URL. The console uses it in place of
// a browser redirect once a device has been renamed.
func (c *Client) Rebase(baseURL string) {
	c.mu.Lock()
	c.baseURL = strings.TrimRight(baseURL, "/")
	c.mu.Unlock()
}

// Hostname returns the host the client talks to, without port
func (c *Client) Hostname() string {
	return urls.Hostname(c.BaseURL())
}

// Browse lists the wireless networks the device can see
func (c *Client) Browse(ctx context.Context) ([]state.AccessPoint, error) {
	status, body, err := c.do(ctx, http.MethodGet, PathBrowse, nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, NewHTTPError(status, fmt.Sprintf("browse failed with status %d", status))
	}

	var aps []state.AccessPoint
	if err := decode(body, &aps); err != nil {
		return nil, NewParseError("failed to parse access point list", err)
	}
	if aps == nil {
		aps = []state.AccessPoint{}
	}
	return aps, nil
}

// FetchConfig retrieves the device configuration
func (c *Client) FetchConfig(ctx context.Context) (*state.DeviceConfig, error) {
	status, body, err := c.do(ctx, http.MethodGet, PathConfig, nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, NewHTTPError(status, fmt.Sprintf("config fetch failed with status %d", status))
	}

	var cfg state.DeviceConfig
	if err := decode(body, &cfg); err != nil {
		return nil, NewParseError("failed to parse device configuration", err)
	}
	return &cfg, nil
}

// Save submits a new configuration. A 422 response is returned as an
// ErrTypeRejected error whose Message is the device's reason.
func (c *Client) Save(ctx context.Context, req *SaveRequest) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return NewParseError("failed to encode save request", err)
	}

	status, body, err := c.do(ctx, http.MethodPost, PathSave, payload)
	if err != nil {
		return err
	}

	switch status {
	case http.StatusOK:
		return nil
	case http.StatusUnprocessableEntity:
		return NewRejectedError(string(body))
	default:
		return NewHTTPError(status, fmt.Sprintf("save failed with status %d: %s", status, strings.TrimSpace(string(body))))
	}
}

// do performs one request and returns the status and body. A non-nil error
// means no usable response arrived.
func (c *Client) do(ctx context.Context, method, path string, payload []byte) (int, []byte, error) {
	target := c.BaseURL() + path

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return 0, nil, NewNetworkError(fmt.Sprintf("failed to create %s request", method), err)
	}
	req.Header.Set("Content-type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		devErr := ClassifyNetworkError(err, urls.Hostname(target))
		devErr.Message = fmt.Sprintf("%s %s failed", method, path)
		logging.LogRequest(method, target, 0, time.Since(start), devErr)
		return 0, nil, devErr
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		devErr := NewNetworkError("failed to read response body", err)
		logging.LogRequest(method, target, resp.StatusCode, time.Since(start), devErr)
		return 0, nil, devErr
	}

	logging.LogRequest(method, target, resp.StatusCode, time.Since(start), nil)
	logging.LogRawBytes("Response body", body)

	return resp.StatusCode, body, nil
}

// decode parses the first JSON value in body. Some firmware appends
// trailing bytes after the document, which are ignored.
func decode(body []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	if err := dec.Decode(v); err != nil {
		return err
	}
	return nil
}
