package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export commands",
	}

	cmd.AddCommand(newExportCSVCmd())
	cmd.AddCommand(newExportSubmitCmd())

	return cmd
}

func newExportCSVCmd() *cobra.Command {
	var outFile string

	cmd := &cobra.Command{
		Use:   "csv",
		Short: "Download the point log as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := client.GetRaw("/api/v1/export/csv")
			if err != nil {
				return err
			}

			if outFile == "" {
				fmt.Print(string(data))
				return nil
			}

			if err := os.WriteFile(outFile, data, 0644); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("Wrote %d bytes to %s", len(data), outFile))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outFile, "file", "f", "", "Write CSV to a file instead of stdout")

	return cmd
}

func newExportSubmitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "submit",
		Short: "Submit the point log to the configured sink",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result SubmitResult

			if err := client.Post("/api/v1/export/submit", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
