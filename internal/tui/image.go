package tui

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	ioutils "github.com/handiism/ia-launcher/internal/io"
)

// RenderImage renders an image as colored half-block characters, two
// pixel rows per terminal row. Good enough for a 320x200 title screen
// in a side pane.
func RenderImage(img image.Image) string {
	bounds := img.Bounds()
	var b strings.Builder

	for y := bounds.Min.Y; y < bounds.Max.Y; y += 2 {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			top := hexColor(img.At(x, y))

			style := lipgloss.NewStyle().Foreground(lipgloss.Color(top))
			if y+1 < bounds.Max.Y {
				style = style.Background(lipgloss.Color(hexColor(img.At(x, y+1))))
			}
			b.WriteString(style.Render("▀"))
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

// RenderImageFile loads an image, scales it to fit the given cell
// box and renders it. Height is in terminal rows, so the pixel budget
// is twice that.
func RenderImageFile(path string, maxCols, maxRows int) (string, error) {
	img, err := ioutils.ThumbnailFile(path, maxCols, maxRows*2)
	if err != nil {
		return "", err
	}
	return RenderImage(img), nil
}

func hexColor(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", uint8(r>>8), uint8(g>>8), uint8(b>>8))
}
