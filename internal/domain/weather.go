package domain

// StatusOK is the envelope status code of a successful weather response.
const StatusOK = 200

type WeatherReading struct {
	City        string
	Description string
	Temperature float64
	Humidity    int
	WindSpeed   float64
	StatusCode  int
}

// OK reports whether the reading may be formatted.
func (w *WeatherReading) OK() bool {
	return w != nil && w.StatusCode == StatusOK
}
