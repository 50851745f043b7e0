package dashboard

import (
	"slices"

	"weathervista/internal/models"
)

// State is everything the dashboard renders.
type State struct {
	Loading bool
	Err     string
	Celsius bool

	// Current and Forecast are set and cleared as a pair on failure.
	Current  *models.CurrentConditions
	Forecast *models.ForecastCollection

	// Generation identifies the search that owns the fields above.
	Generation uint64
	Theme      string
	Particles  []Particle

	RecentCities []string
	LastCity     string
}

func (s State) clone() State {
	s.Particles = slices.Clone(s.Particles)
	s.RecentCities = slices.Clone(s.RecentCities)
	return s
}

type Event interface {
	event()
}

type SearchStarted struct{ Gen uint64 }

type ConditionsReceived struct {
	Gen       uint64
	Current   *models.CurrentConditions
	Theme     string
	Particles []Particle
}

type ForecastReceived struct {
	Gen      uint64
	Forecast *models.ForecastCollection
}

type SearchFailed struct {
	Gen     uint64
	Message string
}

type SearchFinished struct{ Gen uint64 }

type InputRejected struct{ Message string }

type UnitToggled struct{}

type HistoryLoaded struct {
	Recent []string
	Last   string
}

func (SearchStarted) event()      {}
func (ConditionsReceived) event() {}
func (ForecastReceived) event()   {}
func (SearchFailed) event()       {}
func (SearchFinished) event()     {}
func (InputRejected) event()      {}
func (UnitToggled) event()        {}
func (HistoryLoaded) event()      {}

// Reduce applies e to s. Search events from a generation other than the
// current one are dropped.
func Reduce(s State, e Event) State {
	switch ev := e.(type) {
	case SearchStarted:
		if ev.Gen < s.Generation {
			return s
		}
		s.Generation = ev.Gen
		s.Loading = true
		s.Err = ""

	case ConditionsReceived:
		if ev.Gen != s.Generation {
			return s
		}
		s.Current = ev.Current
		s.Forecast = nil
		s.Theme = ev.Theme
		s.Particles = ev.Particles

	case ForecastReceived:
		if ev.Gen != s.Generation {
			return s
		}
		s.Forecast = ev.Forecast

	case SearchFailed:
		if ev.Gen != s.Generation {
			return s
		}
		s.Err = ev.Message
		s.Current = nil
		s.Forecast = nil
		s.Theme = ""
		s.Particles = nil

	case SearchFinished:
		if ev.Gen != s.Generation {
			return s
		}
		s.Loading = false

	case InputRejected:
		s.Err = ev.Message

	case UnitToggled:
		s.Celsius = !s.Celsius

	case HistoryLoaded:
		s.RecentCities = ev.Recent
		s.LastCity = ev.Last
	}
	return s
}
