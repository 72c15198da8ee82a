package timezone

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemTimeZone(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/devices/device-1/settings/System.timeZone", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`"America/New_York"`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "secret", time.Second)
	zone, err := c.SystemTimeZone(context.Background(), "device-1")
	require.NoError(t, err)
	assert.Equal(t, "America/New_York", zone)
}

func TestSystemTimeZoneServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no zone configured", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "", time.Second)
	_, err := c.SystemTimeZone(context.Background(), "device-1")

	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, http.StatusNotFound, svcErr.Status)
}

func TestSystemTimeZoneTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // unreachable on purpose

	c := NewHTTPClient(srv.URL, "", time.Second)
	_, err := c.SystemTimeZone(context.Background(), "device-1")

	require.Error(t, err)
	var svcErr *ServiceError
	assert.False(t, errors.As(err, &svcErr), "transport failures must not look like service errors")
}

func TestStaticClient(t *testing.T) {
	zone, err := StaticClient("Europe/Paris").SystemTimeZone(context.Background(), "any")
	require.NoError(t, err)
	assert.Equal(t, "Europe/Paris", zone)
}
