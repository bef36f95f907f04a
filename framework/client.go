package framework

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"
)

// DefaultRequestTimeout is the per-request timeout used when none is configured.
const DefaultRequestTimeout = 30 * time.Second

const maxLoggedBodyLength = 500

// ServiceClient issues JSON requests against the base URL of the service under test.
type ServiceClient struct {
	baseURL    string
	httpClient *http.Client
	logger     Logger
}

// Request is the outgoing half of one HTTP exchange.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	// Body is JSON-encoded if it is non-nil and the method is one that carries a body.
	Body interface{}
	// BearerToken, if non-empty, is sent as an Authorization header.
	BearerToken string
	// Header values are added last, so they can override Authorization or Content-Type.
	Header http.Header
}

// Response is the incoming half of one HTTP exchange, with the body fully read.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// NewServiceClient creates a ServiceClient. Cookies set by the service are kept for the
// lifetime of the client.
func NewServiceClient(baseURL string, timeout time.Duration, logger Logger) *ServiceClient {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	if logger == nil {
		logger = NullLogger()
	}
	jar, _ := cookiejar.New(nil)
	return &ServiceClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout, Jar: jar},
		logger:     logger,
	}
}

func (c *ServiceClient) BaseURL() string {
	return c.baseURL
}

// Do performs the request. A non-nil error means that no HTTP response was received at all
// (connection refused, timeout, or a similar transport failure); any status code, including
// 4xx and 5xx, is returned as a Response with a nil error.
//
// Every exchange is logged to the client's logger and, if it is non-nil, to requestLogger.
func (c *ServiceClient) Do(ctx context.Context, r Request, requestLogger Logger) (*Response, error) {
	logger := MultiLogger(c.logger, requestLogger)

	u := c.baseURL + r.Path
	if len(r.Query) != 0 {
		u += "?" + r.Query.Encode()
	}

	var body io.Reader
	var data []byte
	if r.Body != nil && methodHasBody(r.Method) {
		var err error
		if data, err = json.Marshal(r.Body); err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, u, body)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if r.BearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+r.BearerToken)
	}
	for k, vv := range r.Header {
		req.Header.Del(k)
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}

	if data != nil {
		logger.Printf(">> %s %s %s", r.Method, u, truncate(data))
	} else {
		logger.Printf(">> %s %s", r.Method, u)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Printf("<< request failed: %s", err)
		return nil, fmt.Errorf("%s %s: %w", r.Method, u, err)
	}
	defer resp.Body.Close()

	respData, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Printf("<< %d, error reading body: %s", resp.StatusCode, err)
		return nil, fmt.Errorf("%s %s: reading response body: %w", r.Method, u, err)
	}
	logger.Printf("<< %d %s", resp.StatusCode, truncate(respData))

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respData,
	}, nil
}

// ErrorMessage returns the "message" or "error" property of a JSON error body, or else a
// prefix of the raw body.
func (r *Response) ErrorMessage() string {
	if r == nil {
		return ""
	}
	var fields struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(r.Body, &fields); err == nil {
		if fields.Message != "" {
			return fields.Message
		}
		if fields.Error != "" {
			return fields.Error
		}
	}
	return string(truncate(r.Body))
}

func methodHasBody(method string) bool {
	switch strings.ToUpper(method) {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

func truncate(data []byte) []byte {
	if len(data) <= maxLoggedBodyLength {
		return data
	}
	return append(append([]byte(nil), data[:maxLoggedBodyLength]...), "..."...)
}
