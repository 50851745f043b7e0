package render

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"weathervista/internal/dashboard"
	"weathervista/internal/models"
)

func sampleState() dashboard.State {
	start := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	return dashboard.State{
		Celsius: true,
		Current: &models.CurrentConditions{
			Name: "Oslo",
			Dt:   start.Unix(),
			Main: models.MainMetrics{Temp: 3.6, FeelsLike: -0.4, Humidity: 81},
			Weather: []models.Condition{
				{Main: "Rain", Description: "light rain"},
			},
			Wind: models.Wind{Speed: 4.12},
			Sys:  models.Sys{Country: "NO"},
		},
		Forecast: &models.ForecastCollection{List: []models.ForecastSample{
			{Dt: start.Unix(), Main: models.MainMetrics{Temp: 3.6}, Weather: []models.Condition{{Main: "Rain"}}},
			{Dt: start.Add(24 * time.Hour).Unix(), Main: models.MainMetrics{Temp: 5}, Weather: []models.Condition{{Main: "Clouds"}}},
		}},
		Theme:        "rain",
		Particles:    []dashboard.Particle{{Kind: dashboard.ParticleRain}},
		RecentCities: []string{"Oslo", "Paris"},
	}
}

func TestRenderer_State(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, time.UTC).State(sampleState())
	out := buf.String()

	assert.Contains(t, out, "Oslo, NO\n")
	assert.Contains(t, out, "Monday, March 2, 2026")
	assert.Contains(t, out, "4°C  Light Rain")
	assert.Contains(t, out, "Feels like 0°C | Humidity 81% | Wind 4.1 m/s")
	assert.Contains(t, out, "Theme: rain (1 rain particles)")
	assert.Contains(t, out, "Today")
	assert.Contains(t, out, "Tue")
	assert.Contains(t, out, "Recent: 1) Oslo  2) Paris")
}

func TestRenderer_Fahrenheit(t *testing.T) {
	s := sampleState()
	s.Celsius = false

	var buf bytes.Buffer
	New(&buf, time.UTC).State(s)

	assert.Contains(t, buf.String(), "38°F")
}

func TestRenderer_Error(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, time.UTC).State(dashboard.State{Err: "city not found"})

	assert.Equal(t, "Error: city not found\n", buf.String())
}
