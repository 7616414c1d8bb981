package cmd

import (
	"fmt"
	"os"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/deckview/internal/config"
	"github.com/arcanaland/deckview/internal/validator"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [config_path]",
	Short: "Validate a deckview config file",
	Long: `Validate checks that a config file describes a usable setup: reachable-looking
API base URLs, at least one slot, a sane user range and art size.
Without an argument the active config (including environment overrides) is checked.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			cfg  *config.Config
			err  error
			path = config.GetConfigFilePath()
		)
		if len(args) == 1 {
			path = args[0]
			if _, err := os.Stat(path); os.IsNotExist(err) {
				return fmt.Errorf("config file not found: %s", path)
			}
			cfg, err = config.ReadFile(path)
		} else {
			cfg, err = config.LoadConfig()
		}
		if err != nil {
			return err
		}

		results, err := validator.NewValidator(cfg).Validate()
		if err != nil {
			return fmt.Errorf("validation error: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Validation Results:")
		fmt.Fprintln(out, "-------------------")

		if len(results.Errors) == 0 {
			fmt.Fprintf(out, "%s Config '%s' is valid.\n", colorize.GreenString("✅"), path)
		} else {
			fmt.Fprintf(out, "%s Config '%s' has %d validation errors:\n", colorize.RedString("❌"), path, len(results.Errors))
			for i, e := range results.Errors {
				fmt.Fprintf(out, "%d. %s\n", i+1, e)
			}
			return fmt.Errorf("validation failed")
		}

		if len(results.Warnings) > 0 {
			fmt.Fprintln(out, "\nWarnings:")
			for i, warn := range results.Warnings {
				fmt.Fprintf(out, "%d. %s\n", i+1, colorize.YellowString(warn))
			}
		}

		return nil
	},
}
