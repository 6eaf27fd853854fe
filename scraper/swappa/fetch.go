package swappa

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// DefaultAPIEndpoint is the ScrapingBee rendering endpoint.
const DefaultAPIEndpoint = "https://app.scrapingbee.com/api/v1/"

// maxErrorBody caps how much of a failed response is kept for diagnostics.
const maxErrorBody = 2048

// ErrMissingAPIKey is returned before any request when no key is configured.
var ErrMissingAPIKey = errors.New("swappa: rendering service api key is empty")

// Fetcher returns the HTML of a listings page.
type Fetcher interface {
	Fetch(ctx context.Context, pageURL string) (string, error)
}

// FetchError is a non-success response from the rendering service.
type FetchError struct {
	StatusCode int
	Body       string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("swappa: fetch failed with status %d: %s", e.StatusCode, e.Body)
}

// APIFetcher fetches pages through a JavaScript-rendering proxy service.
// It does not retry.
type APIFetcher struct {
	APIKey   string
	Endpoint string
	RenderJS bool
	Client   *http.Client
}

// NewAPIFetcher creates an APIFetcher against DefaultAPIEndpoint with JS
// rendering on.
func NewAPIFetcher(apiKey string, timeout time.Duration) *APIFetcher {
	return &APIFetcher{
		APIKey:   apiKey,
		Endpoint: DefaultAPIEndpoint,
		RenderJS: true,
		Client:   &http.Client{Timeout: timeout},
	}
}

// Fetch requests pageURL through the service and returns the rendered HTML.
func (f *APIFetcher) Fetch(ctx context.Context, pageURL string) (string, error) {
	if f.APIKey == "" {
		return "", ErrMissingAPIKey
	}

	endpoint := f.Endpoint
	if endpoint == "" {
		endpoint = DefaultAPIEndpoint
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("swappa: parse endpoint: %w", err)
	}
	q := u.Query()
	q.Set("api_key", f.APIKey)
	q.Set("url", pageURL)
	q.Set("render_js", strconv.FormatBool(f.RenderJS))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("swappa: create request: %w", err)
	}

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("swappa: http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", &FetchError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("swappa: read body: %w", err)
	}
	return string(body), nil
}
