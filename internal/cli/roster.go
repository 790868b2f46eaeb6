package cli

import (
	"github.com/spf13/cobra"
)

func newRosterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roster",
		Short: "Roster commands",
	}

	cmd.AddCommand(newRosterGetCmd())
	cmd.AddCommand(newRosterRefreshCmd())

	return cmd
}

func newRosterGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Show the team rosters",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Roster

			if err := client.Get("/api/v1/roster", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newRosterRefreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Force a fresh roster fetch",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Roster

			if err := client.Post("/api/v1/roster/refresh", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
