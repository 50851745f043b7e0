package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"weathervista/internal/dashboard"
	"weathervista/internal/proxyclient"
	"weathervista/internal/render"
	"weathervista/internal/storage"
)

// app is built once per invocation by the root command's pre-run hook.
type app struct {
	cfg       settings
	kv        storage.KV
	dashboard *dashboard.Dashboard
	renderer  *render.Renderer
}

func (a *app) close() {
	if a != nil && a.kv != nil {
		a.kv.Close()
	}
}

func newRootCommand() *cobra.Command {
	v := viper.New()
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "weatherctl",
		Short:         "WeatherVista terminal dashboard",
		Long:          "Shows current conditions and a 5-day forecast fetched through the WeatherVista gateway. Without a subcommand it reloads the last searched city.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd, v)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			st := a.dashboard.Start(cmd.Context())
			if st.LastCity == "" && st.Current == nil && st.Err == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "No previous search. Try: weatherctl search <city>")
				return nil
			}
			return a.show(st)
		},
	}

	setupFlags(rootCmd, v)
	rootCmd.AddCommand(
		searchCommand(a),
		recentCommand(a),
		interactiveCommand(a),
	)
	return rootCmd
}

func (a *app) init(cmd *cobra.Command, v *viper.Viper) error {
	cfg, err := loadSettings(cmd, v)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.cfg = cfg

	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a.kv, err = storage.Open(ctx, storage.Options{
		Backend:  cfg.Storage,
		Path:     cfg.StoragePath,
		RedisURL: cfg.RedisURL,
	})
	if err != nil {
		return fmt.Errorf("open %s storage: %w", cfg.Storage, err)
	}
	client := proxyclient.New(cfg.ProxyURL, nil, cfg.Timeout)
	a.dashboard = dashboard.New(client, storage.NewHistory(a.kv), logger)
	if cfg.Fahrenheit {
		a.dashboard.ToggleUnit()
	}
	a.renderer = render.New(cmd.OutOrStdout(), nil)
	return nil
}

// errSearchFailed is returned once the failure has already been rendered.
var errSearchFailed = errors.New("search failed")

// show renders st and turns a search error into the command's exit status.
func (a *app) show(st dashboard.State) error {
	a.renderer.State(st)
	if st.Err != "" {
		return errSearchFailed
	}
	return nil
}
