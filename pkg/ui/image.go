package ui

import (
	"fmt"
	"math"

	"github.com/go-drift/scenegraph/pkg/graphics"
)

// Stretch controls how an Image fills the size it is arranged into.
type Stretch int

const (
	// StretchNone keeps the natural size.
	StretchNone Stretch = iota
	// StretchFill fills the arranged size, ignoring aspect ratio.
	StretchFill
	// StretchUniform scales to fit the arranged size, keeping aspect ratio.
	StretchUniform
)

func (s Stretch) String() string {
	switch s {
	case StretchNone:
		return "none"
	case StretchFill:
		return "fill"
	case StretchUniform:
		return "uniform"
	default:
		return fmt.Sprintf("Stretch(%d)", int(s))
	}
}

// ParseStretch parses a stretch mode name.
func ParseStretch(s string) (Stretch, error) {
	switch s {
	case "none", "":
		return StretchNone, nil
	case "fill":
		return StretchFill, nil
	case "uniform":
		return StretchUniform, nil
	default:
		return StretchNone, fmt.Errorf("unknown stretch %q", s)
	}
}

// Image draws a texture. Its natural size is the texture's pixel size.
type Image struct {
	kindBase
	texture string
	natural graphics.Vector
	stretch Stretch
}

// NewImage creates an Image for texture with the given natural size.
func NewImage(texture string, size graphics.Vector) *Image {
	return &Image{texture: texture, natural: finiteOrZero(size)}
}

// LoadImage creates an Image whose natural size is read from the header of
// the image file at path.
func LoadImage(path string) (*Image, error) {
	info, err := graphics.ProbeImageFile(path)
	if err != nil {
		return nil, err
	}
	return NewImage(path, info.Size()), nil
}

// Texture returns the texture name.
func (i *Image) Texture() string { return i.texture }

// NaturalSize returns the texture's pixel size.
func (i *Image) NaturalSize() graphics.Vector { return i.natural }

// SetTexture replaces the texture and its natural size.
func (i *Image) SetTexture(texture string, size graphics.Vector) {
	i.texture = texture
	i.natural = finiteOrZero(size)
	i.invalidateMeasure()
}

// Stretch returns the stretch mode.
func (i *Image) Stretch() Stretch { return i.stretch }

// SetStretch sets the stretch mode.
func (i *Image) SetStretch(s Stretch) {
	i.stretch = s
	i.invalidateArrange()
}

func (i *Image) measureOverride(ui *UserInterface, self Handle, available graphics.Vector) graphics.Vector {
	children := ui.DefaultMeasureOverride(self, available)
	size := i.natural
	if i.stretch == StretchUniform {
		size = fitUniform(i.natural, available)
	}
	return size.Max(children)
}

func (i *Image) arrangeOverride(ui *UserInterface, self Handle, final graphics.Vector) graphics.Vector {
	ui.DefaultArrangeOverride(self, final)
	switch i.stretch {
	case StretchFill:
		return final
	case StretchUniform:
		return fitUniform(i.natural, final)
	default:
		return i.natural.Min(final)
	}
}

// fitUniform scales natural to the largest size inside bounds with the same
// aspect ratio. Unbounded axes do not constrain the scale.
func fitUniform(natural, bounds graphics.Vector) graphics.Vector {
	if natural.X <= 0 || natural.Y <= 0 {
		return graphics.Vector{}
	}
	scale := math.Min(bounds.X/natural.X, bounds.Y/natural.Y)
	if math.IsInf(scale, 1) {
		return natural
	}
	return natural.Scale(scale)
}

func (i *Image) draw(ctx *graphics.DrawingContext, bounds graphics.Rect, tint graphics.Color) {
	if i.texture == "" {
		return
	}
	ctx.DrawImage(bounds, i.texture, tint)
}
