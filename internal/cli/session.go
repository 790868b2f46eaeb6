package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Session commands",
	}

	cmd.AddCommand(newSessionGetCmd())
	cmd.AddCommand(newSessionFlushCmd())
	cmd.AddCommand(newSessionResetCmd())
	cmd.AddCommand(newSessionRestoreCmd())
	cmd.AddCommand(newSessionTeamsCmd())
	cmd.AddCommand(newSessionPossessionCmd())
	cmd.AddCommand(newSessionUsageCmd())

	return cmd
}

func newSessionGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Show the current scoreboard and point log",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Session

			if err := client.Get("/api/v1/session", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newSessionFlushCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "flush",
		Short: "Persist the current session state",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result FlushResult

			if err := client.Post("/api/v1/session/flush", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Session saved")
			return nil
		},
	}
}

func newSessionResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Start a new match with fresh defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Session

			if err := client.Post("/api/v1/session/reset", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newSessionRestoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Show or resolve a pending restore decision",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result RestorePending

			if err := client.Get("/api/v1/session/restore", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.AddCommand(newSessionRestoreDecideCmd("keep", true, "Restore the saved session"))
	cmd.AddCommand(newSessionRestoreDecideCmd("discard", false, "Discard the saved session"))

	return cmd
}

func newSessionRestoreDecideCmd(use string, keep bool, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]bool{"keep": keep}

			if err := client.Post("/api/v1/session/restore", body, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("Restore decision: %s", use))
			return nil
		},
	}
}

func newSessionTeamsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "teams <team-a> <team-b>",
		Short: "Set the team names",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]string{
				"team_a_name": args[0],
				"team_b_name": args[1],
			}

			var result Session
			if err := client.Patch("/api/v1/session/teams", body, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newSessionPossessionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "possession <M|F>",
		Short: "Set which line starts the first point",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]string{"start": args[0]}

			var result Session
			if err := client.Patch("/api/v1/session/possession", body, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newSessionUsageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "usage",
		Short: "Show persisted storage usage",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Usage

			if err := client.Get("/api/v1/session/usage", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
