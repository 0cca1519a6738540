package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"jarvis/internal/domain"
)

const msgWeatherError = "❌ Error fetching weather data. Check your API key or city name."

type WeatherProvider interface {
	Current(ctx context.Context, city string) (*domain.WeatherReading, error)
}

// WeatherReporter prints the current conditions for a city.
type WeatherReporter struct {
	provider WeatherProvider
	notifier Notifier
	out      io.Writer
	logger   *slog.Logger
}

func NewWeatherReporter(provider WeatherProvider, notifier Notifier, out io.Writer, logger *slog.Logger) *WeatherReporter {
	if notifier == nil {
		notifier = &NoopNotifier{}
	}
	return &WeatherReporter{
		provider: provider,
		notifier: notifier,
		out:      out,
		logger:   logger,
	}
}

// Report prints five lines on success or a single error line otherwise.
// The returned error is for the caller's logs only; the printed output is
// already final.
func (r *WeatherReporter) Report(ctx context.Context, city string) error {
	reading, err := r.provider.Current(ctx, city)
	if err == nil && !reading.OK() {
		err = fmt.Errorf("status %d: %w", reading.StatusCode, domain.ErrWeatherUnavailable)
	}

	var lines []string
	if err != nil {
		lines = []string{msgWeatherError}
	} else {
		r.logger.Debug("weather reading", "city", city, "station", reading.City)
		lines = FormatReading(city, reading)
	}

	for _, line := range lines {
		fmt.Fprintln(r.out, line)
	}

	if notifyErr := r.notifier.Notify(ctx, strings.Join(lines, "\n")); notifyErr != nil {
		r.logger.Error("notifying weather report", "error", notifyErr)
	}

	return err
}

func FormatReading(city string, w *domain.WeatherReading) []string {
	return []string{
		fmt.Sprintf("🌍 City: %s", city),
		fmt.Sprintf("🌤️ Weather: %s", w.Description),
		fmt.Sprintf("🌡️ Temperature: %s°C", formatNumber(w.Temperature)),
		fmt.Sprintf("💧 Humidity: %d%%", w.Humidity),
		fmt.Sprintf("💨 Wind Speed: %s m/s", formatNumber(w.WindSpeed)),
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
