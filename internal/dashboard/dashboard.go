// Package dashboard holds the client-side weather dashboard: a store of
// State driven by search events, and the display helpers derived from it.
package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"weathervista/internal/models"
	"weathervista/internal/proxyclient"
)

const (
	MsgEmptyCity    = "Please enter a city name"
	MsgFetchFailure = "Failed to fetch weather data"
)

// WeatherSource is satisfied by *proxyclient.Client.
type WeatherSource interface {
	Current(ctx context.Context, city string) (*models.CurrentConditions, error)
	Forecast(ctx context.Context, city string) (*models.ForecastCollection, error)
}

// HistoryStore is satisfied by *storage.History.
type HistoryStore interface {
	Load(ctx context.Context) (recent []string, last string, err error)
	Save(ctx context.Context, recent []string, last string) error
}

// StepResult is the outcome of one pipeline step.
type StepResult[T any] struct {
	Value T
	Err   error
}

func (r StepResult[T]) OK() bool {
	return r.Err == nil
}

func runStep[T any](ctx context.Context, city string, fn func(context.Context, string) (T, error)) StepResult[T] {
	v, err := fn(ctx, city)
	return StepResult[T]{Value: v, Err: err}
}

type Dashboard struct {
	store   *Store
	source  WeatherSource
	history HistoryStore
	logger  *slog.Logger
	now     func() time.Time

	rngMu sync.Mutex
	rng   *rand.Rand

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
}

// New builds a dashboard showing Celsius. history may be nil.
func New(source WeatherSource, history HistoryStore, logger *slog.Logger) *Dashboard {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dashboard{
		store:   NewStore(State{Celsius: true}),
		source:  source,
		history: history,
		logger:  logger,
		now:     time.Now,
		rng:     rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

func (d *Dashboard) Store() *Store {
	return d.store
}

func (d *Dashboard) State() State {
	return d.store.State()
}

// Start restores history and, when a last city was saved, searches it.
func (d *Dashboard) Start(ctx context.Context) State {
	search := d.Resume(ctx)
	if search == nil {
		return d.store.State()
	}
	return search.Run()
}

// Resume restores history and prepares a search for the last city. It
// returns nil when there is nothing to fetch.
func (d *Dashboard) Resume(ctx context.Context) *Search {
	st, err := d.LoadHistory(ctx)
	if err != nil {
		d.logger.Warn("Failed to load search history", "error", err)
		return nil
	}
	if st.LastCity == "" {
		return nil
	}
	return d.Prepare(ctx, st.LastCity)
}

// LoadHistory restores the recent cities and last city without searching.
func (d *Dashboard) LoadHistory(ctx context.Context) (State, error) {
	if d.history == nil {
		return d.store.State(), nil
	}
	recent, last, err := d.history.Load(ctx)
	if err != nil {
		return d.store.State(), err
	}
	d.store.Dispatch(HistoryLoaded{Recent: recent, Last: last})
	return d.store.State(), nil
}

// ToggleUnit flips Celsius/Fahrenheit without touching the network.
func (d *Dashboard) ToggleUnit() {
	d.store.Dispatch(UnitToggled{})
}

// FetchWeather runs a search for city and returns the resulting state. A
// search started while another is in flight cancels the older one.
func (d *Dashboard) FetchWeather(ctx context.Context, city string) State {
	search := d.Prepare(ctx, city)
	if search == nil {
		return d.store.State()
	}
	return search.Run()
}

// Search is a query that already holds its generation. Run must be called
// exactly once.
type Search struct {
	d    *Dashboard
	ctx  context.Context
	gen  uint64
	city string
}

// Prepare claims the next generation for city on the calling goroutine, so
// the order of Prepare calls decides which search wins. An empty city is
// rejected in place and Prepare returns nil.
func (d *Dashboard) Prepare(ctx context.Context, city string) *Search {
	city = strings.TrimSpace(city)
	if city == "" {
		d.store.Dispatch(InputRejected{Message: MsgEmptyCity})
		return nil
	}

	ctx, gen := d.begin(ctx)
	d.store.Dispatch(SearchStarted{Gen: gen})
	return &Search{d: d, ctx: ctx, gen: gen, city: city}
}

func (s *Search) Generation() uint64 {
	return s.gen
}

// Run fetches the conditions and forecast and returns the resulting state.
// A newer Prepare cancels it.
func (s *Search) Run() State {
	defer s.d.end(s.gen)
	s.d.search(s.ctx, s.gen, s.city)
	return s.d.store.State()
}

func (d *Dashboard) search(ctx context.Context, gen uint64, city string) {
	defer d.store.Dispatch(SearchFinished{Gen: gen})

	current := runStep(ctx, city, d.source.Current)
	if !current.OK() {
		d.logger.Debug("Current conditions failed", "city", city, "error", current.Err)
		d.store.Dispatch(SearchFailed{Gen: gen, Message: failureMessage(current.Err)})
		return
	}

	d.store.Dispatch(ConditionsReceived{
		Gen:       gen,
		Current:   current.Value,
		Theme:     ThemeFor(current.Value, d.now()),
		Particles: d.particlesFor(current.Value),
	})

	forecast := runStep(ctx, city, d.source.Forecast)
	if forecast.OK() {
		d.store.Dispatch(ForecastReceived{Gen: gen, Forecast: forecast.Value})
	} else {
		d.logger.Debug("Forecast unavailable", "city", city, "error", forecast.Err)
	}

	if !d.isCurrent(gen) || ctx.Err() != nil {
		return
	}
	d.remember(ctx, city)
}

func (d *Dashboard) remember(ctx context.Context, city string) {
	recent := UpdateRecent(d.store.State().RecentCities, city)
	d.store.Dispatch(HistoryLoaded{Recent: recent, Last: city})

	if d.history == nil {
		return
	}
	if err := d.history.Save(context.WithoutCancel(ctx), recent, city); err != nil {
		d.logger.Warn("Failed to save search history", "city", city, "error", err)
	}
}

func (d *Dashboard) particlesFor(current *models.CurrentConditions) []Particle {
	kind, ok := ParticleKindFor(current.PrimaryCondition().Main)
	if !ok {
		return nil
	}
	d.rngMu.Lock()
	defer d.rngMu.Unlock()
	return GenerateParticles(kind, d.rng)
}

func (d *Dashboard) begin(parent context.Context) (context.Context, uint64) {
	ctx, cancel := context.WithCancel(parent)

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cancel != nil {
		d.cancel()
	}
	d.gen++
	d.cancel = cancel
	return ctx, d.gen
}

func (d *Dashboard) end(gen uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.gen == gen && d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
}

func (d *Dashboard) isCurrent(gen uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.gen == gen
}

func failureMessage(err error) string {
	var se *proxyclient.StatusError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}
	return MsgFetchFailure
}
