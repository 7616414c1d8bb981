package display

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/nfnt/resize"
)

// ImageToAnsi converts an image to width x height character cells of
// truecolor half blocks. Each cell covers a 2x2 pixel block of the resized
// image: the top pair sets the foreground, the bottom pair the background.
func ImageToAnsi(img image.Image, width, height int) string {
	if width < 1 || height < 1 {
		return ""
	}
	resized := resize.Resize(uint(width*2), uint(height*2), img, resize.Lanczos3)

	var b strings.Builder
	for y := 0; y < height*2; y += 2 {
		for x := 0; x < width*2; x += 2 {
			top := average(pixel(resized, x, y), pixel(resized, x+1, y))
			bottom := average(pixel(resized, x, y+1), pixel(resized, x+1, y+1))
			b.WriteString(halfBlock(top, bottom))
		}
		if y+2 < height*2 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// Placeholder draws an empty frame the size of a rendered image.
func Placeholder(width, height int) string {
	if width < 1 || height < 1 {
		return ""
	}
	lines := make([]string, height)
	for i := range lines {
		switch {
		case width == 1:
			lines[i] = "░"
		case i == 0 || i == height-1:
			lines[i] = "+" + strings.Repeat("-", width-2) + "+"
		default:
			lines[i] = "|" + strings.Repeat("░", width-2) + "|"
		}
	}
	return strings.Join(lines, "\n")
}

// pixel returns the colour at x,y, or opaque black outside the bounds
func pixel(img image.Image, x, y int) colorful.Color {
	b := img.Bounds()
	x, y = x+b.Min.X, y+b.Min.Y
	if x >= b.Max.X || y >= b.Max.Y {
		return colorful.Color{}
	}
	c, ok := colorful.MakeColor(img.At(x, y))
	if !ok {
		// Fully transparent.
		return colorful.Color{}
	}
	return c
}

func average(colors ...colorful.Color) colorful.Color {
	var r, g, b float64
	for _, c := range colors {
		r += c.R
		g += c.G
		b += c.B
	}
	n := float64(len(colors))
	return colorful.Color{R: r / n, G: g / n, B: b / n}
}

func halfBlock(fg, bg colorful.Color) string {
	f := toRGBA(fg)
	k := toRGBA(bg)
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm▀\x1b[0m", f.R, f.G, f.B, k.R, k.G, k.B)
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// StripAnsi removes ANSI escape sequences from a string
func StripAnsi(s string) string {
	var result strings.Builder
	inEscape := false
	for _, c := range s {
		switch {
		case inEscape:
			if c == 'm' {
				inEscape = false
			}
		case c == '\033':
			inEscape = true
		default:
			result.WriteRune(c)
		}
	}
	return result.String()
}

// visibleWidth counts the runes a line occupies on screen
func visibleWidth(s string) int {
	return len([]rune(StripAnsi(s)))
}
