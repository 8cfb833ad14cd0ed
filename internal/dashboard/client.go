package dashboard

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/revanthlol/focusd/internal/dateutil"
	"github.com/revanthlol/focusd/internal/usage"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DefaultTimeout bounds each remote request.
const DefaultTimeout = 2 * time.Second

// Client fetches dashboards from a focusd HTTP server.
type Client struct {
	base string
	http *http.Client
}

// NewClient creates a Client for the server at base, e.g. http://127.0.0.1:7878.
func NewClient(base string, httpClient *http.Client) (*Client, error) {
	if !strings.Contains(base, "://") {
		base = "http://" + base
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parsing server url: %w", err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("server url %q has no host", base)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &Client{base: strings.TrimRight(u.String(), "/"), http: httpClient}, nil
}

// Fetch implements Source.
func (c *Client) Fetch(ctx context.Context, req usage.Request) (*usage.Dashboard, error) {
	q := url.Values{}
	q.Set("view", string(req.View))
	if !req.Date.IsZero() {
		q.Set("date", req.Date.Format(dateutil.Layout))
	}

	var d usage.Dashboard
	if err := c.get(ctx, "/api/data?"+q.Encode(), &d); err != nil {
		return nil, err
	}
	return d.Normalize(), nil
}

// Apps lists known applications from the server.
func (c *Client) Apps(ctx context.Context) ([]usage.AppInfo, error) {
	var apps []usage.AppInfo
	if err := c.get(ctx, "/api/apps", &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("requesting %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("requesting %s: %s: %s", path, resp.Status, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	return nil
}
