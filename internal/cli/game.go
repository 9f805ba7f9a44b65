package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/mcoot/matrixgame/internal/api/request"
	"github.com/mcoot/matrixgame/internal/api/response"
	"github.com/mcoot/matrixgame/internal/model"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game commands",
	}

	cmd.AddCommand(newGameListCmd())
	cmd.AddCommand(newGameCreateCmd())
	cmd.AddCommand(newGameGetCmd())
	cmd.AddCommand(newGameTransitionCmd("start", "Start an upcoming game"))
	cmd.AddCommand(newGameTransitionCmd("complete", "Complete an in-progress game"))

	return cmd
}

func newGameListCmd() *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List games, optionally filtered by status",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := apiBase + "/games"
			if status != "" {
				if _, ok := model.ParseGameStatus(status); !ok {
					return fmt.Errorf("invalid status %q: must be upcoming, in_progress or completed", status)
				}
				path += "?" + url.Values{"status": {status}}.Encode()
			}

			var result response.GameList
			if err := client.Get(cmd.Context(), path, &result); err != nil {
				return err
			}

			NewOutput(cmd.OutOrStdout(), cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Filter by status: upcoming, in_progress, completed")

	return cmd
}

func newGameCreateCmd() *cobra.Command {
	var req request.CreateGameRequest
	var minP, maxP int

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new game",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Unset counts are left out so the server reports them as blank
			if cmd.Flags().Changed("min") {
				req.MinParticipants = &minP
			}
			if cmd.Flags().Changed("max") {
				req.MaxParticipants = &maxP
			}

			var result response.Game
			if err := client.Post(cmd.Context(), apiBase+"/games", req, &result); err != nil {
				return err
			}

			NewOutput(cmd.OutOrStdout(), cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "Game name (required)")
	cmd.Flags().StringVar(&req.Description, "description", "", "Description (required)")
	cmd.Flags().IntVar(&minP, "min", 0, "Minimum participants (required)")
	cmd.Flags().IntVar(&maxP, "max", 0, "Maximum participants (required)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("description")
	_ = cmd.MarkFlagRequired("min")
	_ = cmd.MarkFlagRequired("max")

	return cmd
}

func newGameGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			var result response.Game
			if err := client.Get(cmd.Context(), fmt.Sprintf("%s/games/%d", apiBase, id), &result); err != nil {
				return err
			}

			NewOutput(cmd.OutOrStdout(), cfg.Output).Print(result)
			return nil
		},
	}
}

func newGameTransitionCmd(action, short string) *cobra.Command {
	return &cobra.Command{
		Use:   action + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			var result response.Transition
			if err := client.Post(cmd.Context(), fmt.Sprintf("%s/games/%d/%s", apiBase, id, action), nil, &result); err != nil {
				return err
			}

			NewOutput(cmd.OutOrStdout(), cfg.Output).Print(result)
			return nil
		},
	}
}
