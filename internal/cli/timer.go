package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newTimerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timer",
		Short: "Timer commands",
	}

	cmd.AddCommand(newTimerSubCmd("match", "Match clock"))
	cmd.AddCommand(newTimerSubCmd("interval", "Between-points countdown"))

	return cmd
}

func newTimerSubCmd(name, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   name,
		Short: short,
	}

	base := fmt.Sprintf("/api/v1/timers/%s", name)

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show remaining time",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result TimerStatus
			if err := client.Get(base, &result); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "start",
		Short: "Start or resume the timer",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result TimerStatus
			if err := client.Post(base+"/start", nil, &result); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "stop",
		Short: "Pause the timer",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result TimerStatus
			if err := client.Post(base+"/stop", nil, &result); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return nil
		},
	})

	resetCmd := &cobra.Command{
		Use:   "reset [duration]",
		Short: "Reset the timer (minutes for match, seconds for interval)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]int{}
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("duration must be a number: %w", err)
				}
				if name == "match" {
					body["minutes"] = n
				} else {
					body["seconds"] = n
				}
			}

			var result TimerStatus
			if err := client.Post(base+"/reset", body, &result); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
	cmd.AddCommand(resetCmd)

	return cmd
}
