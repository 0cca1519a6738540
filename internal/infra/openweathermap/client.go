package openweathermap

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"jarvis/internal/application"
	"jarvis/internal/domain"
)

const defaultBaseURL = "https://api.openweathermap.org/data/2.5/weather"

// Client fetches current conditions for a city.
type Client struct {
	apiKey     string
	baseURL    string
	units      string
	httpClient *http.Client
}

func NewClient(apiKey, baseURL, units string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if units == "" {
		units = "metric"
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		units:      units,
		httpClient: httpClient,
	}
}

// statusCode accepts "cod" as a number (200) or a string ("404"); the API
// uses both.
type statusCode int

func (s *statusCode) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || string(data) == "null" {
		*s = 0
		return nil
	}
	n, err := strconv.Atoi(string(data))
	if err != nil {
		return fmt.Errorf("parsing cod %q: %w", data, err)
	}
	*s = statusCode(n)
	return nil
}

type currentResponse struct {
	Cod     statusCode `json:"cod"`
	Message string     `json:"message"`
	Name    string     `json:"name"`
	Main    struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

// Current performs one GET. Any answer that decodes is returned as a
// reading carrying the API status code, so callers decide what a non-200
// means; only transport and decoding failures are errors.
func (c *Client) Current(ctx context.Context, city string) (*domain.WeatherReading, error) {
	if c.apiKey == "" {
		return nil, domain.ErrAPIKeyMissing
	}

	params := url.Values{
		"q":     {city},
		"appid": {c.apiKey},
		"units": {c.units},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching weather: %w", err)
	}
	defer resp.Body.Close()

	var body currentResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding weather (status %d): %w", resp.StatusCode, err)
	}

	reading := &domain.WeatherReading{
		City:        body.Name,
		Temperature: body.Main.Temp,
		Humidity:    body.Main.Humidity,
		WindSpeed:   body.Wind.Speed,
		StatusCode:  int(body.Cod),
	}
	if reading.StatusCode == 0 {
		reading.StatusCode = resp.StatusCode
	}
	if len(body.Weather) > 0 {
		reading.Description = strings.TrimSpace(body.Weather[0].Description)
	}

	return reading, nil
}

var _ application.WeatherProvider = (*Client)(nil)
