package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func searchCommand(a *app) *cobra.Command {
	var recentIndex int

	cmd := &cobra.Command{
		Use:   "search [city]",
		Short: "Show current conditions and forecast for a city",
		Example: `  weatherctl search Oslo
  weatherctl search "New York" --fahrenheit
  weatherctl search --recent 2`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			st, err := a.dashboard.LoadHistory(ctx)
			if err != nil {
				return fmt.Errorf("load history: %w", err)
			}

			city := strings.Join(args, " ")
			if recentIndex > 0 {
				if city != "" {
					return fmt.Errorf("give either a city or --recent, not both")
				}
				if recentIndex > len(st.RecentCities) {
					return fmt.Errorf("only %d recent cities saved", len(st.RecentCities))
				}
				city = st.RecentCities[recentIndex-1]
			}

			return a.show(a.dashboard.FetchWeather(ctx, city))
		},
	}

	cmd.Flags().IntVarP(&recentIndex, "recent", "r", 0, "Re-run the Nth recent city (1 = most recent)")
	return cmd
}
