package opencage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/israelis-abroad/footballmap/internal/domain/geo"
	"github.com/israelis-abroad/footballmap/internal/platform/logging"
	"github.com/israelis-abroad/footballmap/internal/platform/metrics"
	"github.com/israelis-abroad/footballmap/internal/usecase"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	defaultBaseURL = "https://api.opencagedata.com/geocode/v1/json"
	maxBodyBytes   = 2 << 20
)

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	Logger     *logging.Logger
	Metrics    *metrics.Recorder
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *logging.Logger
	metrics    *metrics.Recorder
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 10 * time.Second
	}

	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     strings.TrimSpace(cfg.APIKey),
		logger:     logger,
		metrics:    cfg.Metrics,
	}
}

type geocodeResponse struct {
	Status struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"status"`
	TotalResults int `json:"total_results"`
	Results      []struct {
		Formatted  string `json:"formatted"`
		Confidence int    `json:"confidence"`
		Geometry   struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"geometry"`
	} `json:"results"`
}

// Geocode resolves a free-text place to the first result's coordinates.
// It never returns an error value: failures come back as a fallback Result.
func (c *Client) Geocode(ctx context.Context, query string) geo.Result {
	query = strings.TrimSpace(query)
	if query == "" {
		return geo.Fallback(fmt.Errorf("%w: geocode query is required", usecase.ErrInvalidInput))
	}

	started := time.Now()
	result := c.lookup(ctx, query)
	c.metrics.RecordProviderAttempt("opencage", "geocode", time.Since(started), result.Err)
	return result
}

func (c *Client) lookup(ctx context.Context, query string) geo.Result {
	values := url.Values{}
	values.Set("q", query)
	values.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+values.Encode(), nil)
	if err != nil {
		return geo.Fallback(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return geo.Fallback(crerr.Wrapf(usecase.ErrDependencyUnavailable, "send request: %s", redactKey(err.Error(), c.apiKey)))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return geo.Fallback(crerr.Wrapf(usecase.ErrDependencyUnavailable, "read response body: %v", err))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return geo.Fallback(&usecase.UpstreamStatusError{Status: resp.StatusCode, Body: abbreviateBody(raw)})
	}

	var payload geocodeResponse
	if err := sonic.Unmarshal(raw, &payload); err != nil {
		return geo.Fallback(crerr.Wrapf(usecase.ErrDependencyUnavailable, "decode geocode payload: %v", err))
	}
	if len(payload.Results) == 0 {
		c.logger.DebugContext(ctx, "geocode returned no results", "query", query)
		return geo.Fallback(nil)
	}

	first := payload.Results[0].Geometry
	return geo.Found(geo.Point{Lat: first.Lat, Lng: first.Lng})
}

func redactKey(value, apiKey string) string {
	if apiKey == "" {
		return value
	}
	return strings.ReplaceAll(value, apiKey, "REDACTED")
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
