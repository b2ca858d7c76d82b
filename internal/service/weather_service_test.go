package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dashdeck/internal/cache"
)

func newTestWeatherService(baseURL, apiKey string) *weatherService {
	return &weatherService{
		client:  &http.Client{Timeout: time.Second},
		baseURL: baseURL,
		apiKey:  apiKey,
		cache:   &cache.Client{},
		log:     testLogger(),
	}
}

func TestWeatherCurrentParsesUpstream(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "auto:ip", r.URL.Query().Get("q"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"location": {"name": "Riga"},
			"current": {"temp_c": 17.5, "condition": {"text": "Sunny"}}
		}`))
	}))
	defer upstream.Close()

	svc := newTestWeatherService(upstream.URL, "test-key")

	weather, err := svc.Current(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "Riga", weather.Location)
	assert.Equal(t, 17.5, weather.TempC)
	assert.Equal(t, "Sunny", weather.Condition)
	assert.False(t, weather.Fallback)
}

func TestWeatherCurrentFallsBackWhenUpstreamFails(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer upstream.Close()

	svc := newTestWeatherService(upstream.URL, "test-key")

	weather, err := svc.Current(context.Background(), "London")
	require.NoError(t, err)
	assert.True(t, weather.Fallback)
	assert.Equal(t, 22.0, weather.TempC)
	assert.Equal(t, "Partly cloudy", weather.Condition)
}

func TestWeatherCurrentFallsBackWithoutAPIKey(t *testing.T) {
	svc := newTestWeatherService("http://127.0.0.1:0", "")

	weather, err := svc.Current(context.Background(), "")
	require.NoError(t, err)
	assert.True(t, weather.Fallback)
}
