package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

const (
	DefaultAPIBase    = "https://my-json-server.typicode.com/equintero88/jsonDB"
	DefaultAvatarBase = "https://rickandmortyapi.com/api/character"
)

// Config represents the application configuration
type Config struct {
	APIBase       string `toml:"api_base" env:"DECKVIEW_API_BASE"`
	AvatarBase    string `toml:"avatar_base" env:"DECKVIEW_AVATAR_BASE"`
	InitialUserID int    `toml:"initial_user_id" env:"DECKVIEW_INITIAL_USER_ID"`
	MinUserID     int    `toml:"min_user_id" env:"DECKVIEW_MIN_USER_ID"`
	MaxUserID     int    `toml:"max_user_id" env:"DECKVIEW_MAX_USER_ID"`
	SlotCount     int    `toml:"slot_count" env:"DECKVIEW_SLOT_COUNT"`
	ParallelCards bool   `toml:"parallel_cards" env:"DECKVIEW_PARALLEL_CARDS"`
	ArtWidth      int    `toml:"art_width" env:"DECKVIEW_ART_WIDTH"`
	ArtHeight     int    `toml:"art_height" env:"DECKVIEW_ART_HEIGHT"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		APIBase:       DefaultAPIBase,
		AvatarBase:    DefaultAvatarBase,
		InitialUserID: 1,
		MinUserID:     1,
		MaxUserID:     3,
		SlotCount:     3,
		ArtWidth:      24,
		ArtHeight:     12,
	}
}

// path overrides GetConfigFilePath when set
var path string

// SetConfigFilePath makes the config package read and write the given file
func SetConfigFilePath(p string) {
	path = p
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config")
}

// GetConfigFilePath returns the path to the config file
func GetConfigFilePath() string {
	if path != "" {
		return path
	}
	return filepath.Join(GetXDGConfigHome(), "deckview", "config.toml")
}

// LoadConfig loads the config file, creating it with defaults if it does not
// exist, and applies DECKVIEW_* environment overrides
func LoadConfig() (*Config, error) {
	configPath := GetConfigFilePath()

	var config *Config
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		config, err = createDefaultConfig()
		if err != nil {
			return nil, err
		}
	} else {
		config, err = ReadFile(configPath)
		if err != nil {
			return nil, err
		}
	}

	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("error parsing environment: %w", err)
	}
	return config, nil
}

// ReadFile decodes a config file. Keys missing from the file keep their
// default values.
func ReadFile(configPath string) (*Config, error) {
	config := Default()
	if _, err := toml.DecodeFile(configPath, config); err != nil {
		return nil, fmt.Errorf("error decoding config file: %w", err)
	}
	return config, nil
}

// createDefaultConfig creates a default config file
func createDefaultConfig() (*Config, error) {
	config := Default()
	if err := write(config); err != nil {
		return nil, err
	}
	return config, nil
}

// SetInitialUser sets the initial user in the config
func SetInitialUser(userID int) error {
	config, err := ReadOrDefault()
	if err != nil {
		return err
	}

	config.InitialUserID = userID
	return write(config)
}

// ReadOrDefault reads the config file without environment overrides, falling
// back to the defaults when it does not exist
func ReadOrDefault() (*Config, error) {
	configPath := GetConfigFilePath()
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return Default(), nil
	}
	return ReadFile(configPath)
}

func write(config *Config) error {
	configPath := GetConfigFilePath()

	// Ensure the config directory exists
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("error creating config file: %w", err)
	}
	defer file.Close()

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(config); err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}

	return nil
}
