package tracking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/storefront-ai/assistant-service/internal/domain/models"
)

const defaultTimeout = 10 * time.Second

// ErrProviderUnavailable wraps every failed provider lookup.
var ErrProviderUnavailable = errors.New("tracking provider unavailable")

// Client looks up a shipment. On failure the returned info is still usable:
// status awaiting_update with a tracking link.
type Client interface {
	TrackByNumber(ctx context.Context, number, carrierHint string) (models.TrackingInfo, error)
}

// Config holds the tracking provider configuration.
type Config struct {
	APIURL  string
	APIKey  string
	Timeout time.Duration
}

// NewClient returns an HTTP client, or a link-only client when no provider URL is configured.
func NewClient(cfg *Config) Client {
	if cfg == nil || cfg.APIURL == "" {
		return LinkOnlyClient{}
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return &HTTPClient{
		baseURL:    strings.TrimSuffix(cfg.APIURL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Degraded is the info reported when no live status is available.
func Degraded(number, carrierHint string) models.TrackingInfo {
	number = strings.ToUpper(strings.TrimSpace(number))
	carrier := carrierHint
	if carrier == "" {
		carrier = DetectCarrier(number)
	}
	return models.TrackingInfo{
		Number:  number,
		Courier: carrier,
		Status:  models.TrackingStatusAwaitingUpdate,
		Link:    Link(number, carrier),
	}
}

// LinkOnlyClient never calls out; it reports awaiting_update with a link.
type LinkOnlyClient struct{}

// TrackByNumber implements Client.
func (LinkOnlyClient) TrackByNumber(ctx context.Context, number, carrierHint string) (models.TrackingInfo, error) {
	return Degraded(number, carrierHint), nil
}

// HTTPClient queries a JSON tracking API at GET {base}/trackings/{number}.
type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

type trackingResponse struct {
	Status     string     `json:"status"`
	Courier    string     `json:"courier"`
	LastUpdate *time.Time `json:"last_update"`
	Checkpoint string     `json:"checkpoint"`
	Link       string     `json:"link"`
}

// TrackByNumber implements Client.
func (c *HTTPClient) TrackByNumber(ctx context.Context, number, carrierHint string) (models.TrackingInfo, error) {
	info := Degraded(number, carrierHint)

	endpoint := fmt.Sprintf("%s/trackings/%s", c.baseURL, url.PathEscape(info.Number))
	if info.Courier != "" {
		endpoint += "?carrier=" + url.QueryEscape(info.Courier)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return info, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return info, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		// Carrier has not scanned the parcel yet.
		return info, nil
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return info, fmt.Errorf("%w: status=%d, body=%s", ErrProviderUnavailable, resp.StatusCode, string(body))
	}

	var out trackingResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return info, fmt.Errorf("%w: failed to decode response: %v", ErrProviderUnavailable, err)
	}

	if out.Status != "" {
		info.Status = out.Status
	}
	if out.Courier != "" {
		info.Courier = out.Courier
	}
	if out.Link != "" {
		info.Link = out.Link
	}
	info.LastUpdate = out.LastUpdate
	info.Checkpoint = out.Checkpoint
	return info, nil
}
