package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/arcanaland/deckview/internal/config"
)

var (
	configPath string
	verbose    bool
	logger     = slog.Default()
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "deckview",
	Short: "Load a player's profile, avatar and deck and show them in the terminal",
	Long: `deckview fetches a player profile from a JSON API, resolves an avatar from a
character API and looks up every card of the player's deck, then draws the
result as ANSI art.

Settings live in $XDG_CONFIG_HOME/deckview/config.toml and can be overridden
with DECKVIEW_* environment variables or a .env file in the working directory.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("error loading .env: %w", err)
		}

		if configPath != "" {
			config.SetConfigFilePath(configPath)
		}

		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)
		return nil
	},
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to the config file")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output")

	RootCmd.AddCommand(validateCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}
