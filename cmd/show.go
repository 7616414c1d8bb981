package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arcanaland/deckview/internal/display"
	"github.com/arcanaland/deckview/internal/sink"
)

var showCmd = &cobra.Command{
	Use:   "show [user_id]",
	Short: "Load a player and display their avatar and deck",
	Long: `Show loads one player, their avatar and the cards of their deck, then draws
the result with ANSI terminal art. Cards that cannot be found are left blank.

If no user id is given, initial_user_id from your config is used.

Examples:
  deckview show
  deckview show 2
  deckview show --parallel --no-art 3`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		userID := cfg.InitialUserID
		if len(args) == 1 {
			if userID, err = parseUserID(args[0]); err != nil {
				return err
			}
		}

		board := sink.NewBoard(cfg.SlotCount)
		orch := newOrchestrator(cfg, board, logger)
		defer orch.Close()

		orch.Start(userID)
		if err := orch.Wait(cmd.Context()); err != nil {
			return fmt.Errorf("loading user %d: %w", userID, err)
		}

		opts := displayOptions(cmd, cfg)
		opts.Status = orch.Status().String()
		display.Render(cmd.OutOrStdout(), board.Snapshot(), opts)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(showCmd)

	showCmd.Flags().Bool("parallel", false, "Fetch the cards of the deck concurrently")
	showCmd.Flags().Bool("no-art", false, "Print names only, without ANSI art")
}
