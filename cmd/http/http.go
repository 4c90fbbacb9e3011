package http

import "github.com/spf13/cobra"

func NewHTTPCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "http",
		Short: "HTTP server commands",
		Long:  "Serve the scoring API: catalog, sessions, scores, ledger and workbook export under /api/v1.",
	}

	cmd.AddCommand(NewStartCommand())

	return cmd
}
