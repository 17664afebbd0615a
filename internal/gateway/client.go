// Package gateway is the typed HTTP client for the GadgetHub REST API. It is
// the only place the storefront talks to the backend.
//
// Every method returns a *Failure on error. Collection endpoints follow one
// explicit rule: a 404 means "nothing here yet" and yields an empty slice
// with a nil error. Single-resource and mutating endpoints report 404 as a
// KindNotFound failure.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const maxResponseSize int64 = 8 << 20

type Client struct {
	httpClient *http.Client
	baseURL    *url.URL
	log        *slog.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New builds a Client rooted at baseURL (e.g. https://localhost:7217/api).
func New(baseURL string, timeout time.Duration, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("gateway: base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("gateway: base url %q must be absolute", baseURL)
	}
	c := &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    u,
		log:        slog.Default(),
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = c.baseURL.Path + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// do issues one request. body (if non-nil) is sent as JSON; out (if non-nil)
// receives the decoded 2xx body.
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return &Failure{Op: op, Kind: KindTransport, Err: err}
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), rd)
	if err != nil {
		return &Failure{Op: op, Kind: KindTransport, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Failure{Op: op, Kind: KindTransport, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return &Failure{Op: op, Kind: KindTransport, Status: resp.StatusCode, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Failure{
			Op:      op,
			Kind:    kindForStatus(resp.StatusCode),
			Status:  resp.StatusCode,
			Message: errorMessage(data),
		}
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		// some mutations answer with a bare message, quoted or not
		if m, ok := out.(messageSetter); ok {
			var s string
			switch {
			case json.Unmarshal(data, &s) == nil:
				m.setMessage(strings.TrimSpace(s))
				return nil
			case !json.Valid(data):
				m.setMessage(strings.TrimSpace(string(data)))
				return nil
			}
		}
		return &Failure{Op: op, Kind: KindDecode, Status: resp.StatusCode, Err: err}
	}
	return nil
}

type messageSetter interface{ setMessage(string) }

// list fetches a collection. A 404 leaves out untouched and returns nil.
func (c *Client) list(ctx context.Context, op, path string, query url.Values, out any) error {
	err := c.do(ctx, op, http.MethodGet, path, query, nil, out)
	if IsNotFound(err) {
		c.log.Debug("empty collection", "op", op, "path", path)
		return nil
	}
	return err
}

// errorMessage pulls a human message out of an error body: {"message"},
// {"error"}, {"title"} (ASP.NET problem details) or the raw text.
func errorMessage(data []byte) string {
	var m struct {
		Message string `json:"message"`
		Error   string `json:"error"`
		Title   string `json:"title"`
	}
	if json.Unmarshal(data, &m) == nil {
		for _, s := range []string{m.Message, m.Error, m.Title} {
			if s != "" {
				return s
			}
		}
	}
	var s string
	if json.Unmarshal(data, &s) != nil {
		s = string(data)
	}
	s = strings.TrimSpace(s)
	if len(s) > 200 {
		s = s[:200]
	}
	return s
}

func pathID(id int64) string { return strconv.FormatInt(id, 10) }
