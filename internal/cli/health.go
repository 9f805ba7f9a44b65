package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/matrixgame/internal/api/response"
)

// apiBase is where the server mounts the JSON API
const apiBase = "/api/v1"

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Health

			if err := client.Get(cmd.Context(), apiBase+"/health", &result); err != nil {
				return err
			}

			NewOutput(cmd.OutOrStdout(), cfg.Output).Print(result)
			return nil
		},
	}
}
