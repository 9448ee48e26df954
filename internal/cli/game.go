package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game commands",
	}

	cmd.AddCommand(newGameCreateCmd())
	cmd.AddCommand(newGameGetCmd())
	cmd.AddCommand(newGameHistoryCmd())
	cmd.AddCommand(newGameScoresCmd())
	cmd.AddCommand(newGameMoveCmd())
	cmd.AddCommand(newGameQuitCmd())

	return cmd
}

func newGameCreateCmd() *cobra.Command {
	var players []string
	var starting, target, maxIncrement int

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new game",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(players) == 0 {
				return fmt.Errorf("--players is required")
			}

			req := map[string]any{
				"players": players,
			}
			if cmd.Flags().Changed("start") {
				req["starting_value"] = starting
			}
			if cmd.Flags().Changed("target") {
				req["target_value"] = target
			}
			if cmd.Flags().Changed("max") {
				req["max_increment"] = maxIncrement
			}

			var result Game
			if err := client.Post("/api/v1/games", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&players, "players", nil, "Opponent player names (required)")
	cmd.Flags().IntVar(&starting, "start", 0, "Starting value")
	cmd.Flags().IntVar(&target, "target", 31, "Target value")
	cmd.Flags().IntVar(&maxIncrement, "max", 3, "Maximum increment per move")
	_ = cmd.MarkFlagRequired("players")

	return cmd
}

func newGameGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get REF",
		Short: "Show game state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Game

			if err := client.Get("/api/v1/games/"+args[0], &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history REF",
		Short: "Show a game's move history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result History

			if err := client.Get("/api/v1/games/"+args[0]+"/history", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameScoresCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scores REF",
		Short: "Show a finished game's scores",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Score

			if err := client.Get("/api/v1/games/"+args[0]+"/scores", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move REF VALUE",
		Short: "Add VALUE to the game total",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid move value %q", args[1])
			}

			req := map[string]int{"value": value}
			var result MoveResult

			if err := client.Post("/api/v1/games/"+args[0]+"/moves", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameQuitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quit REF",
		Short: "Quit a game, forfeiting it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result MoveResult

			if err := client.Post("/api/v1/games/"+args[0]+"/quit", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
