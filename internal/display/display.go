// Package display draws a board snapshot to a terminal.
package display

import (
	"fmt"
	"io"
	"strings"

	colorize "github.com/fatih/color"

	"github.com/arcanaland/deckview/internal/sink"
)

// Options controls the layout.
type Options struct {
	ArtWidth  int // Width of each image in cells. Default: 24.
	ArtHeight int // Height of each image in cells. Default: 12.
	// Width of the terminal. Default: 80.
	Width int
	// NoArt prints names only.
	NoArt bool
	// Status is printed under the header when set.
	Status string
}

func (o *Options) defaults() {
	if o.ArtWidth <= 0 {
		o.ArtWidth = 24
	}
	if o.ArtHeight <= 0 {
		o.ArtHeight = 12
	}
	if o.Width <= 0 {
		o.Width = 80
	}
}

// Render writes the player, the avatar and every slot of s to w.
func Render(w io.Writer, s sink.Snapshot, opts Options) {
	opts.defaults()

	name := s.ProfileName
	if name == "" {
		name = "-"
	}
	info := []string{
		colorize.CyanString("Player: ") + colorize.HiWhiteString("%s", name),
		colorize.CyanString("Cards:  ") + colorize.HiWhiteString("%d/%d", s.Populated(), len(s.Slots)),
	}
	if opts.Status != "" {
		info = append(info, colorize.CyanString("Status: ")+colorize.HiBlackString("%s", opts.Status))
	}

	fmt.Fprintln(w)
	block(w, art(s.Avatar != nil, func() string { return ImageToAnsi(s.Avatar, opts.ArtWidth, opts.ArtHeight) }, opts), info, opts.Width)

	for i, slot := range s.Slots {
		lines := []string{colorize.CyanString("Slot: ") + colorize.HiWhiteString("%d", i+1)}
		if slot.Name != "" {
			lines = append(lines, colorize.CyanString("Card: ")+colorize.HiWhiteString("%s", slot.Name))
		} else {
			lines = append(lines, colorize.CyanString("Card: ")+colorize.HiBlackString("(empty)"))
		}
		fmt.Fprintln(w)
		block(w, art(slot.Image != nil, func() string { return ImageToAnsi(slot.Image, opts.ArtWidth, opts.ArtHeight) }, opts), lines, opts.Width)
	}
	fmt.Fprintln(w)
}

func art(present bool, draw func() string, opts Options) []string {
	if opts.NoArt {
		return nil
	}
	if !present {
		return strings.Split(Placeholder(opts.ArtWidth, opts.ArtHeight), "\n")
	}
	return strings.Split(draw(), "\n")
}

// block prints art on the left and info lines on the right
func block(w io.Writer, artLines, infoLines []string, width int) {
	artWidth := 0
	for _, line := range artLines {
		artWidth = max(artWidth, visibleWidth(line))
	}

	const spacing = 4
	infoStart := 0
	if artWidth > 0 {
		infoStart = artWidth + spacing
	}
	infoWidth := max(width-infoStart-2, 20)

	var wrapped []string
	for _, line := range infoLines {
		wrapped = append(wrapped, wrapText(line, infoWidth)...)
	}

	rows := max(len(artLines), len(wrapped))
	for i := 0; i < rows; i++ {
		fmt.Fprint(w, "  ")
		if i < len(artLines) {
			fmt.Fprint(w, artLines[i])
			fmt.Fprint(w, strings.Repeat(" ", infoStart-visibleWidth(artLines[i])))
		} else {
			fmt.Fprint(w, strings.Repeat(" ", infoStart))
		}
		if i < len(wrapped) {
			fmt.Fprint(w, wrapped[i])
		}
		fmt.Fprintln(w)
	}
}

// wrapText wraps a line at word boundaries. Lines carrying ANSI colour are
// measured by their visible width and never split mid-sequence.
func wrapText(text string, width int) []string {
	if visibleWidth(text) <= width || strings.ContainsRune(text, '\033') {
		return []string{text}
	}

	var result []string
	var current string
	for _, word := range strings.Fields(text) {
		switch {
		case current == "":
			current = word
		case len(current)+1+len(word) <= width:
			current += " " + word
		default:
			result = append(result, current)
			current = word
		}
	}
	if current != "" {
		result = append(result, current)
	}
	return result
}
