package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"weathervista/internal/dashboard"
)

const interactiveHelp = `Type a city to search. Commands:
  /unit      toggle Celsius/Fahrenheit
  /recent N  search the Nth recent city
  /quit      exit`

func interactiveCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "interactive",
		Aliases: []string{"i"},
		Short:   "Search repeatedly from a prompt",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := &session{app: a, out: cmd.OutOrStdout()}
			return s.run(cmd.Context(), cmd.InOrStdin())
		},
	}
}

type session struct {
	app *app
	out io.Writer

	mu      sync.Mutex // serializes terminal output
	loading bool
	wg      sync.WaitGroup
}

func (s *session) run(ctx context.Context, in io.Reader) error {
	defer s.wg.Wait()

	s.app.dashboard.Store().Subscribe(s.onChange)
	s.println(interactiveHelp)
	s.launch(s.app.dashboard.Resume(ctx))

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "/quit" || line == "/q":
			return nil
		case line == "/unit" || line == "/u":
			s.app.dashboard.ToggleUnit()
			s.render(s.app.dashboard.State())
		case strings.HasPrefix(line, "/recent"):
			city, err := s.recentCity(strings.TrimSpace(strings.TrimPrefix(line, "/recent")))
			if err != nil {
				s.println(err.Error())
				continue
			}
			s.search(ctx, city)
		default:
			s.search(ctx, line)
		}

		if ctx.Err() != nil {
			return nil
		}
	}
	return scanner.Err()
}

func (s *session) recentCity(arg string) (string, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return "", fmt.Errorf("usage: /recent N")
	}
	recent := s.app.dashboard.State().RecentCities
	if n > len(recent) {
		return "", fmt.Errorf("only %d recent cities saved", len(recent))
	}
	return recent[n-1], nil
}

// search claims its generation here, on the reading goroutine, and fetches
// in the background so the next line can supersede it.
func (s *session) search(ctx context.Context, city string) {
	search := s.app.dashboard.Prepare(ctx, city)
	if search == nil {
		s.render(s.app.dashboard.State())
		return
	}
	s.launch(search)
}

func (s *session) launch(search *dashboard.Search) {
	if search == nil {
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		search.Run()
	}()
}

// onChange renders once the latest search settles. Superseded searches never
// clear Loading, so only the newest one is shown.
func (s *session) onChange(st dashboard.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	settled := s.loading && !st.Loading
	s.loading = st.Loading
	if settled {
		s.app.renderer.State(st)
	}
}

func (s *session) render(st dashboard.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.app.renderer.State(st)
}

func (s *session) println(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(s.out, msg)
}
