// Package timezone looks up the time zone a device is configured with,
// via the platform's device settings service.
package timezone

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client resolves the IANA time zone configured on a device.
type Client interface {
	SystemTimeZone(ctx context.Context, deviceID string) (string, error)
}

// ServiceError reports that the settings service answered with a failure
// status. Callers distinguish it from transport errors: a ServiceError
// degrades to the default zone, anything else means the service could not
// be reached at all.
type ServiceError struct {
	Status int
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("device settings service returned status %d", e.Status)
}

// HTTPClient queries the device settings service over HTTP.
type HTTPClient struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewHTTPClient builds a client for the settings service at baseURL.
func NewHTTPClient(baseURL, token string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: timeout},
	}
}

// SystemTimeZone fetches the device's configured zone, e.g. "Europe/Paris".
func (c *HTTPClient) SystemTimeZone(ctx context.Context, deviceID string) (string, error) {
	endpoint := fmt.Sprintf("%s/v2/devices/%s/settings/System.timeZone", c.baseURL, url.PathEscape(deviceID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("build settings request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("query device settings: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &ServiceError{Status: resp.StatusCode}
	}

	var zone string
	if err := json.NewDecoder(resp.Body).Decode(&zone); err != nil {
		return "", fmt.Errorf("decode device settings response: %w", err)
	}
	return zone, nil
}

// StaticClient always answers with a fixed zone. Used when no settings
// service is configured and in tests.
type StaticClient string

func (c StaticClient) SystemTimeZone(context.Context, string) (string, error) {
	return string(c), nil
}
