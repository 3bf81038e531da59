package graphics

import (
	"math"
	"strings"
	"unicode"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// FontMetrics measures text for layout. Implementations must return finite,
// non-negative values.
type FontMetrics interface {
	// LineHeight is the vertical distance between baselines.
	LineHeight() float64
	// Advance is the horizontal extent of s on a single line.
	Advance(s string) float64
}

// FaceMetrics adapts a golang.org/x/image font.Face to FontMetrics.
type FaceMetrics struct {
	Face font.Face
}

// DefaultFontMetrics returns metrics for the bundled 7x13 bitmap face.
// It needs no font assets, which keeps layout deterministic in tests and
// headless tools.
func DefaultFontMetrics() FaceMetrics {
	return FaceMetrics{Face: basicfont.Face7x13}
}

// LineHeight returns the face height in pixels.
func (m FaceMetrics) LineHeight() float64 {
	return fixedToFloat(m.Face.Metrics().Height)
}

// Advance returns the width of s in pixels.
func (m FaceMetrics) Advance(s string) float64 {
	return fixedToFloat(font.MeasureString(m.Face, s))
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

// TextLayout is the result of breaking text into lines.
type TextLayout struct {
	Lines      []string
	LineHeight float64
	Size       Vector
}

// LayoutText breaks text into lines and measures the block.
//
// Explicit newlines always break. When wrap is set and maxWidth is finite,
// lines are also broken greedily at whitespace so that no line exceeds
// maxWidth unless a single word is wider than maxWidth on its own.
func LayoutText(m FontMetrics, text string, maxWidth float64, wrap bool) TextLayout {
	lineHeight := sanitize(m.LineHeight())
	canWrap := wrap && !math.IsInf(maxWidth, 1) && !math.IsNaN(maxWidth) && maxWidth >= 0

	var lines []string
	for _, para := range strings.Split(text, "\n") {
		if !canWrap {
			lines = append(lines, para)
			continue
		}
		lines = append(lines, wrapLine(m, para, maxWidth)...)
	}

	width := 0.0
	for _, line := range lines {
		width = math.Max(width, sanitize(m.Advance(line)))
	}
	return TextLayout{
		Lines:      lines,
		LineHeight: lineHeight,
		Size:       Vector{X: width, Y: lineHeight * float64(len(lines))},
	}
}

func wrapLine(m FontMetrics, para string, maxWidth float64) []string {
	words := strings.FieldsFunc(para, unicode.IsSpace)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	current := words[0]
	for _, w := range words[1:] {
		candidate := current + " " + w
		if m.Advance(candidate) <= maxWidth {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = w
	}
	return append(lines, current)
}
