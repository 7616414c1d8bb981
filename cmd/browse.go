package cmd

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/arcanaland/deckview/internal/display"
	"github.com/arcanaland/deckview/internal/sink"
)

const browseHelp = "n: next player · 1-9: switch to player · r: reload · q: quit"

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Interactively step through players",
	Long: `Browse shows one player at a time and redraws as results arrive.
Switching player cancels whatever is still loading for the previous one.

Keys:
  n, space   next player (wraps from max_user_id back to min_user_id)
  1-9        switch to that player
  r          reload the current player
  q, ctrl-c  quit`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		fd := int(os.Stdin.Fd())
		if !term.IsTerminal(fd) {
			return fmt.Errorf("browse needs an interactive terminal; use 'deckview show' instead")
		}
		oldState, err := term.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("error entering raw mode: %v", err)
		}
		defer term.Restore(fd, oldState)

		// Logs would tear the screen; keep the last few lines and draw them
		// under the board instead.
		tail := &logTail{max: 5}
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		browseLogger := slog.New(slog.NewTextHandler(tail, &slog.HandlerOptions{Level: level}))

		board := sink.NewBoard(cfg.SlotCount)
		orch := newOrchestrator(cfg, board, browseLogger)
		defer orch.Close()

		keys := make(chan byte)
		go func() {
			buf := make([]byte, 1)
			for {
				n, err := os.Stdin.Read(buf)
				if err != nil {
					close(keys)
					return
				}
				if n == 1 {
					keys <- buf[0]
				}
			}
		}()

		opts := displayOptions(cmd, cfg)
		out := cmd.OutOrStdout()
		var lastStatus string
		redraw := func() {
			status := orch.Status().String()
			lastStatus = status

			var b bytes.Buffer
			b.WriteString("\x1b[H\x1b[2J")
			o := opts
			o.Status = status
			display.Render(&b, board.Snapshot(), o)
			fmt.Fprintln(&b, "  "+browseHelp)
			for _, line := range tail.lines() {
				fmt.Fprintln(&b, "  "+line)
			}
			// Raw mode does not translate newlines.
			fmt.Fprint(out, strings.ReplaceAll(b.String(), "\n", "\r\n"))
		}

		orch.Start(cfg.InitialUserID)
		redraw()

		ticker := time.NewTicker(250 * time.Millisecond)
		defer ticker.Stop()

		for {
			select {
			case <-cmd.Context().Done():
				return nil
			case <-board.Changes():
				redraw()
			case <-ticker.C:
				if orch.Status().String() != lastStatus {
					redraw()
				}
			case k, ok := <-keys:
				if !ok {
					return nil
				}
				switch {
				case k == 'q' || k == 3:
					fmt.Fprint(out, "\r\n")
					return nil
				case k == 'n' || k == ' ':
					orch.Next()
				case k == 'r':
					orch.Start(orch.Status().Session.SubjectID)
				case k >= '1' && k <= '9':
					orch.ChangeTo(int(k - '0'))
				default:
					continue
				}
				redraw()
			}
		}
	},
}

// logTail keeps the last max lines written to it.
type logTail struct {
	mu    sync.Mutex
	max   int
	items []string
}

func (t *logTail) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.items = append(t.items, strings.Split(strings.TrimRight(string(p), "\n"), "\n")...)
	if over := len(t.items) - t.max; over > 0 {
		t.items = append([]string(nil), t.items[over:]...)
	}
	return len(p), nil
}

func (t *logTail) lines() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.items...)
}

func init() {
	RootCmd.AddCommand(browseCmd)

	browseCmd.Flags().Bool("parallel", false, "Fetch the cards of the deck concurrently")
	browseCmd.Flags().Bool("no-art", false, "Print names only, without ANSI art")
}
