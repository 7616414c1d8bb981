package cmd

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/arcanaland/deckview/internal/config"
)

// configCmd represents the config command group
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the deckview configuration",
	Long:  `Commands for creating, inspecting and editing the deckview config file.`,
}

// configInitCmd represents the config init command
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the config file with default settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := config.LoadConfig(); err != nil {
			return fmt.Errorf("error initializing config: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Config file initialized at:", config.GetConfigFilePath())
		return nil
	},
}

// configShowCmd represents the config show command
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long: `Print the configuration deckview will run with, after environment
overrides have been applied.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "# %s\n", config.GetConfigFilePath())
		return toml.NewEncoder(out).Encode(cfg)
	},
}

// configSetUserCmd represents the config set-user command
var configSetUserCmd = &cobra.Command{
	Use:   "set-user [user_id]",
	Short: "Set the player shown on startup",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := parseUserID(args[0])
		if err != nil {
			return err
		}
		if err := config.SetInitialUser(userID); err != nil {
			return fmt.Errorf("error setting initial user: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Initial user set to: %d\n", userID)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetUserCmd)
}
