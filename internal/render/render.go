// Package render draws dashboard state as plain text for the terminal.
package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"weathervista/internal/dashboard"
)

var title = cases.Title(language.English)

type Renderer struct {
	w   io.Writer
	loc *time.Location
}

func New(w io.Writer, loc *time.Location) *Renderer {
	if loc == nil {
		loc = time.Local
	}
	return &Renderer{w: w, loc: loc}
}

// State writes the whole dashboard: error, current conditions, forecast and history.
func (r *Renderer) State(s dashboard.State) {
	if s.Err != "" {
		fmt.Fprintf(r.w, "Error: %s\n", s.Err)
	}
	if s.Current != nil {
		r.current(s)
	}
	if s.Forecast != nil {
		r.forecast(s)
	}
	r.Recent(s.RecentCities)
}

func (r *Renderer) current(s dashboard.State) {
	c := s.Current
	cond := c.PrimaryCondition()

	header := c.Name
	if c.Sys.Country != "" {
		header += ", " + c.Sys.Country
	}
	fmt.Fprintln(r.w, header)
	fmt.Fprintln(r.w, dashboard.FormatDate(c.Dt, r.loc))
	fmt.Fprintf(r.w, "  %d%s  %s\n", dashboard.ConvertTemp(c.Main.Temp, s.Celsius), unit(s.Celsius), title.String(cond.Description))
	fmt.Fprintf(r.w, "  Feels like %d%s | Humidity %d%% | Wind %.1f m/s\n",
		dashboard.ConvertTemp(c.Main.FeelsLike, s.Celsius), unit(s.Celsius), c.Main.Humidity, c.Wind.Speed)

	if s.Theme != "" {
		line := "  Theme: " + s.Theme
		if n := len(s.Particles); n > 0 {
			line += fmt.Sprintf(" (%d %s particles)", n, s.Particles[0].Kind)
		}
		fmt.Fprintln(r.w, line)
	}
}

func (r *Renderer) forecast(s dashboard.State) {
	days := dashboard.DailyForecast(s.Forecast.List, r.loc)
	if len(days) == 0 {
		return
	}
	fmt.Fprintln(r.w, "5-Day Forecast")
	for _, d := range days {
		fmt.Fprintf(r.w, "  %-6s %4d%s  %s\n",
			d.Label, dashboard.ConvertTemp(d.Sample.Main.Temp, s.Celsius), unit(s.Celsius), d.Sample.PrimaryCondition().Main)
	}
}

// Recent lists the recent cities, numbered from 1.
func (r *Renderer) Recent(cities []string) {
	if len(cities) == 0 {
		return
	}
	parts := make([]string, len(cities))
	for i, c := range cities {
		parts[i] = fmt.Sprintf("%d) %s", i+1, c)
	}
	fmt.Fprintf(r.w, "Recent: %s\n", strings.Join(parts, "  "))
}

func unit(celsius bool) string {
	if celsius {
		return "°C"
	}
	return "°F"
}
