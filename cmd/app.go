package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/arcanaland/deckview/internal/api"
	"github.com/arcanaland/deckview/internal/config"
	"github.com/arcanaland/deckview/internal/display"
	"github.com/arcanaland/deckview/internal/imagefetch"
	"github.com/arcanaland/deckview/internal/pipeline"
	"github.com/arcanaland/deckview/internal/sink"
	"github.com/arcanaland/deckview/internal/transport"
	"github.com/arcanaland/deckview/internal/validator"
)

// loadConfig loads the configuration, applies command flags and rejects
// settings the pipeline cannot run with
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("parallel") {
		cfg.ParallelCards, _ = cmd.Flags().GetBool("parallel")
	}

	results, err := validator.NewValidator(cfg).Validate()
	if err != nil {
		return nil, err
	}
	if len(results.Errors) > 0 {
		return nil, fmt.Errorf("invalid configuration (%s): %s",
			config.GetConfigFilePath(), strings.Join(results.Errors, "; "))
	}
	return cfg, nil
}

// newOrchestrator wires transport, API client and image fetcher into a pipeline
func newOrchestrator(cfg *config.Config, s sink.Sink, log *slog.Logger) *pipeline.Orchestrator {
	tr := transport.New(transport.Config{})
	client := api.New(tr, cfg.APIBase, cfg.AvatarBase)
	return pipeline.New(client, imagefetch.New(tr), s, pipeline.Config{
		SlotCount:     cfg.SlotCount,
		MinSubject:    cfg.MinUserID,
		MaxSubject:    cfg.MaxUserID,
		ParallelCards: cfg.ParallelCards,
	}, log)
}

func displayOptions(cmd *cobra.Command, cfg *config.Config) display.Options {
	noArt, _ := cmd.Flags().GetBool("no-art")
	return display.Options{
		ArtWidth:  cfg.ArtWidth,
		ArtHeight: cfg.ArtHeight,
		Width:     terminalWidth(),
		NoArt:     noArt,
	}
}

// terminalWidth returns the width of stdout, or 80 when it is not a terminal
func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

func parseUserID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid user id %q", s)
	}
	return id, nil
}
