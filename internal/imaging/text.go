package imaging

import (
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// TextFace returns the face used to measure and draw text elements.
func TextFace() font.Face {
	return basicfont.Face7x13
}

// MeasureText returns the width and height in pixels of text drawn with
// TextFace. Each newline starts a new line; an empty string still occupies
// one line of height.
func MeasureText(text string) (width, height float64) {
	face := TextFace()
	lineHeight := face.Metrics().Height.Ceil()

	lines := splitLines(text)
	maxWidth := 0
	for _, line := range lines {
		if w := font.MeasureString(face, line).Ceil(); w > maxWidth {
			maxWidth = w
		}
	}
	return float64(maxWidth), float64(len(lines) * lineHeight)
}

func splitLines(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}
