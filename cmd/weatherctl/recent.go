package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func recentCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "recent",
		Short: "List recently searched cities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.dashboard.LoadHistory(cmd.Context())
			if err != nil {
				return fmt.Errorf("load history: %w", err)
			}
			if len(st.RecentCities) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No recent searches.")
				return nil
			}
			a.renderer.Recent(st.RecentCities)
			return nil
		},
	}
}
