package marketplace

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/five82/plotgrid/internal/booking"
)

var (
	// ErrNotConfigured is returned when no api_base is set.
	ErrNotConfigured = errors.New("marketplace api not configured")
	// ErrConflict is returned when the service rejects a booking because
	// some units were taken first.
	ErrConflict = errors.New("units no longer available")
)

// PlotService defines the marketplace calls plotgrid makes.
// This interface is implemented by *Client and can be used for testing.
type PlotService interface {
	FetchPlot(ctx context.Context, plotID string) (*Plot, error)
	FetchAvailability(ctx context.Context, plotID string) (*Availability, error)
	SubmitBooking(ctx context.Context, req booking.Request) (*Confirmation, error)
}

// Ensure Client implements PlotService at compile time.
var _ PlotService = (*Client)(nil)

// Client talks to the marketplace HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultUserAgent = "plotgrid/0.1"
	requestTimeout   = 5 * time.Second
	maxAssetBytes    = 32 << 20
)

// NewClient builds a Client rooted at apiBase. A path in apiBase is kept as
// the prefix for every endpoint.
func NewClient(apiBase string) (*Client, error) {
	base, err := parseBaseURL(apiBase)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// FetchPlot retrieves the plot layout and pricing.
func (c *Client) FetchPlot(ctx context.Context, plotID string) (*Plot, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	id, err := plotPath(plotID)
	if err != nil {
		return nil, err
	}
	var payload Plot
	if err := c.do(ctx, http.MethodGet, "public/plots/"+id+"/", nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// FetchAvailability retrieves the units currently booked on a plot.
func (c *Client) FetchAvailability(ctx context.Context, plotID string) (*Availability, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	id, err := plotPath(plotID)
	if err != nil {
		return nil, err
	}
	var payload Availability
	if err := c.do(ctx, http.MethodGet, "public/plots/"+id+"/availability/", nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// SubmitBooking posts a booking request. The request id lets the service
// deduplicate retries.
func (c *Client) SubmitBooking(ctx context.Context, req booking.Request) (*Confirmation, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if len(req.Units) == 0 {
		return nil, fmt.Errorf("submit booking: no units")
	}
	var payload Confirmation
	if err := c.do(ctx, http.MethodPost, "bookings/", req, &payload); err != nil {
		return nil, fmt.Errorf("submit booking: %w", err)
	}
	return &payload, nil
}

// FetchAsset downloads a file the plot refers to, such as its layout image.
// Relative references resolve against the api base.
func (c *Client) FetchAsset(ctx context.Context, ref string) ([]byte, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	rel, err := url.Parse(strings.TrimSpace(ref))
	if err != nil || rel.String() == "" {
		return nil, fmt.Errorf("parse asset reference %q: invalid", ref)
	}
	assetURL := c.baseURL.ResolveReference(rel)
	if assetURL.Scheme != "http" && assetURL.Scheme != "https" {
		return nil, fmt.Errorf("asset %q: unsupported scheme %q", ref, assetURL.Scheme)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, assetURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("asset %s returned status %d", assetURL.Path, resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxAssetBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read asset: %w", err)
	}
	if len(data) > maxAssetBytes {
		return nil, fmt.Errorf("asset %s exceeds %d bytes", assetURL.Path, maxAssetBytes)
	}
	return data, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	rel := &url.URL{Path: path}
	return c.doURL(ctx, method, rel, body, dest)
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, body, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusConflict {
		return fmt.Errorf("api %s: %w", rel.String(), ErrConflict)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("api %s returned status %d", rel.String(), resp.StatusCode)
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func plotPath(plotID string) (string, error) {
	id := strings.TrimSpace(plotID)
	if id == "" {
		return "", fmt.Errorf("plot id required")
	}
	return url.PathEscape(id), nil
}

func parseBaseURL(apiBase string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiBase)
	if trimmed == "" {
		return nil, ErrNotConfigured
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_base %q: %w", apiBase, err)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
