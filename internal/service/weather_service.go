package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"dashdeck/internal/cache"
	"dashdeck/internal/model"
)

const (
	weatherAPIURL   = "https://api.weatherapi.com/v1/current.json"
	weatherCacheTTL = 5 * time.Minute
)

// fallbackWeather is served when the upstream is unreachable or no API key
// is configured, so the dashboard tile always renders.
var fallbackWeather = model.Weather{
	TempC:     22,
	Condition: "Partly cloudy",
	Fallback:  true,
}

// weatherAPIResponse mirrors the subset of the weatherapi.com payload we use.
type weatherAPIResponse struct {
	Location struct {
		Name string `json:"name"`
	} `json:"location"`
	Current struct {
		TempC     float64 `json:"temp_c"`
		Condition struct {
			Text string `json:"text"`
		} `json:"condition"`
	} `json:"current"`
}

// WeatherService proxies current conditions for the dashboard weather tile.
type WeatherService interface {
	Current(ctx context.Context, query string) (model.Weather, error)
}

type weatherService struct {
	client  *http.Client
	baseURL string
	apiKey  string
	cache   *cache.Client
	log     *slog.Logger
}

// NewWeatherService builds a weather proxy with the given upstream timeout.
func NewWeatherService(apiKey string, timeout time.Duration, cacheClient *cache.Client, log *slog.Logger) WeatherService {
	return &weatherService{
		client:  &http.Client{Timeout: timeout},
		baseURL: weatherAPIURL,
		apiKey:  apiKey,
		cache:   cacheClient,
		log:     log,
	}
}

func (s *weatherService) cacheKey(query string) string {
	return "weather:" + query
}

// Current returns conditions for query ("auto:ip" when empty), consulting a
// short-TTL cache first. Any upstream failure degrades to canned fallback
// data rather than an error.
func (s *weatherService) Current(ctx context.Context, query string) (model.Weather, error) {
	if query == "" {
		query = "auto:ip"
	}

	if data, _ := s.cache.Get(ctx, s.cacheKey(query)); data != nil {
		var cached model.Weather
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	weather, err := s.fetch(ctx, query)
	if err != nil {
		s.log.Warn("weather upstream failed, serving fallback", "query", query, "error", err)
		return fallbackWeather, nil
	}

	if payload, err := json.Marshal(weather); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(query), payload, weatherCacheTTL)
	}
	return weather, nil
}

func (s *weatherService) fetch(ctx context.Context, query string) (model.Weather, error) {
	if s.apiKey == "" {
		return model.Weather{}, fmt.Errorf("weather API key not configured")
	}

	params := url.Values{}
	params.Set("key", s.apiKey)
	params.Set("q", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return model.Weather{}, fmt.Errorf("build weather request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return model.Weather{}, fmt.Errorf("fetch weather: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return model.Weather{}, fmt.Errorf("weather API returned status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.Weather{}, fmt.Errorf("read weather response: %w", err)
	}

	var parsed weatherAPIResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return model.Weather{}, fmt.Errorf("parse weather JSON: %w", err)
	}

	return model.Weather{
		Location:  parsed.Location.Name,
		TempC:     parsed.Current.TempC,
		Condition: parsed.Current.Condition.Text,
	}, nil
}
