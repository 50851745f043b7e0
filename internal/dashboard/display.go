package dashboard

import (
	"math"
	"strings"
	"time"

	"weathervista/internal/models"
)

const (
	ThemeNight = "night"

	maxForecastDays = 5
	todayLabel      = "Today"
)

// DailyEntry is one row of the daily forecast.
type DailyEntry struct {
	Label  string
	Sample models.ForecastSample
}

// ConvertTemp rounds a Celsius reading for display, converting to
// Fahrenheit when celsius is false. Halves round up.
func ConvertTemp(t float64, celsius bool) int {
	if !celsius {
		t = t*9/5 + 32
	}
	return int(math.Floor(t + 0.5))
}

// IsDaytime reports sunrise < now < sunset, all in unix seconds.
func IsDaytime(sunrise, sunset, now int64) bool {
	return now > sunrise && now < sunset
}

// ThemeFor picks the background theme. It is empty when there is nothing to show.
func ThemeFor(current *models.CurrentConditions, now time.Time) string {
	if current == nil {
		return ""
	}
	if !IsDaytime(current.Sys.Sunrise, current.Sys.Sunset, now.Unix()) {
		return ThemeNight
	}
	return strings.ToLower(current.PrimaryCondition().Main)
}

// DailyForecast keeps the first sample of each calendar day in loc, in
// first-seen order, at most five days.
func DailyForecast(samples []models.ForecastSample, loc *time.Location) []DailyEntry {
	if loc == nil {
		loc = time.Local
	}

	seen := make(map[string]struct{}, maxForecastDays)
	out := make([]DailyEntry, 0, maxForecastDays)
	for _, s := range samples {
		day := time.Unix(s.Dt, 0).In(loc).Format(time.DateOnly)
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}

		label := todayLabel
		if len(out) > 0 {
			label = DayName(s.Dt, loc)
		}
		out = append(out, DailyEntry{Label: label, Sample: s})
		if len(out) == maxForecastDays {
			break
		}
	}
	return out
}

// FormatDate renders ts like "Monday, January 2, 2006".
func FormatDate(ts int64, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return time.Unix(ts, 0).In(loc).Format("Monday, January 2, 2006")
}

// DayName renders ts as a short weekday, e.g. "Mon".
func DayName(ts int64, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return time.Unix(ts, 0).In(loc).Format("Mon")
}
