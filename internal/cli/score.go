package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newScoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Point log commands",
	}

	cmd.AddCommand(newScoreAddCmd())
	cmd.AddCommand(newScoreListCmd())
	cmd.AddCommand(newScoreEditCmd())
	cmd.AddCommand(newScoreDeleteCmd())

	return cmd
}

func newScoreAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <A|B> <scorer> <assist>",
		Short: "Record a point for a team",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			team := strings.ToUpper(args[0])
			if team != "A" && team != "B" {
				return fmt.Errorf("team must be A or B")
			}

			body := map[string]string{
				"team":   team,
				"scorer": args[1],
				"assist": args[2],
			}

			var result PointEntry
			if err := client.Post("/api/v1/points", body, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newScoreListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all recorded points",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []PointEntry

			if err := client.Get("/api/v1/points", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newScoreEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id> <scorer> <assist>",
		Short: "Amend the scorer and assist on a recorded point",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]string{
				"scorer": args[1],
				"assist": args[2],
			}

			if err := client.Patch(fmt.Sprintf("/api/v1/points/%s", args[0]), body, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Point updated")
			return nil
		},
	}
}

func newScoreDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a recorded point",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result PointEntry

			if err := client.Delete(fmt.Sprintf("/api/v1/points/%s", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
