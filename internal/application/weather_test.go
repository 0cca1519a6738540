package application_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jarvis/internal/application"
	"jarvis/internal/domain"
)

type fakeWeather struct {
	reading *domain.WeatherReading
	err     error
	cities  []string
}

func (f *fakeWeather) Current(_ context.Context, city string) (*domain.WeatherReading, error) {
	f.cities = append(f.cities, city)
	return f.reading, f.err
}

type recordingNotifier struct {
	messages []string
	err      error
}

func (r *recordingNotifier) Notify(_ context.Context, message string) error {
	r.messages = append(r.messages, message)
	return r.err
}

func TestWeatherReporter_Success(t *testing.T) {
	provider := &fakeWeather{reading: &domain.WeatherReading{
		City:        "Delhi",
		Description: "haze",
		Temperature: 31.5,
		Humidity:    48,
		WindSpeed:   3.1,
		StatusCode:  domain.StatusOK,
	}}
	notifier := &recordingNotifier{}
	out := &bytes.Buffer{}
	reporter := application.NewWeatherReporter(provider, notifier, out, discardLogger())

	err := reporter.Report(context.Background(), "Delhi")

	require.NoError(t, err)
	want := "🌍 City: Delhi\n" +
		"🌤️ Weather: haze\n" +
		"🌡️ Temperature: 31.5°C\n" +
		"💧 Humidity: 48%\n" +
		"💨 Wind Speed: 3.1 m/s\n"
	assert.Equal(t, want, out.String())
	assert.Equal(t, []string{"Delhi"}, provider.cities)
	require.Len(t, notifier.messages, 1)
	assert.Contains(t, notifier.messages[0], "🌤️ Weather: haze")
}

func TestWeatherReporter_WholeNumbers(t *testing.T) {
	lines := application.FormatReading("Pune", &domain.WeatherReading{Temperature: 30, WindSpeed: 2})

	assert.Equal(t, "🌡️ Temperature: 30°C", lines[2])
	assert.Equal(t, "💨 Wind Speed: 2 m/s", lines[4])
}

func TestWeatherReporter_Failures(t *testing.T) {
	tests := []struct {
		name     string
		provider *fakeWeather
	}{
		{"city not found", &fakeWeather{reading: &domain.WeatherReading{StatusCode: 404}}},
		{"bad key", &fakeWeather{reading: &domain.WeatherReading{StatusCode: 401}}},
		{"network", &fakeWeather{err: errors.New("dial tcp: no route to host")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			reporter := application.NewWeatherReporter(tt.provider, nil, out, discardLogger())

			err := reporter.Report(context.Background(), "Atlantis")

			require.Error(t, err)
			assert.Equal(t, "❌ Error fetching weather data. Check your API key or city name.\n", out.String())
		})
	}
}

func TestWeatherReporter_NotifierErrorIsLogged(t *testing.T) {
	provider := &fakeWeather{reading: &domain.WeatherReading{StatusCode: domain.StatusOK}}
	notifier := &recordingNotifier{err: errors.New("pushover down")}
	reporter := application.NewWeatherReporter(provider, notifier, &bytes.Buffer{}, discardLogger())

	assert.NoError(t, reporter.Report(context.Background(), "Delhi"))
}

func TestWeatherReporter_LogsResolvedStation(t *testing.T) {
	provider := &fakeWeather{reading: &domain.WeatherReading{
		City:        "New Delhi",
		Description: "clear sky",
		StatusCode:  domain.StatusOK,
	}}
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	out := &bytes.Buffer{}
	reporter := application.NewWeatherReporter(provider, nil, out, logger)

	require.NoError(t, reporter.Report(context.Background(), "delhi"))

	assert.Contains(t, out.String(), "🌍 City: delhi\n")
	assert.Contains(t, logs.String(), `station="New Delhi"`)
}
