package maskset

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// goldenAngle spaces consecutive object hues far apart on the color wheel so
// that touching cells with neighboring IDs stay distinguishable.
const goldenAngle = 137.50776405003785

// ColorizeCombinedMask renders an ID-labeled mask as a human-reviewable
// image: background (ID 0) stays transparent and every object ID maps to a
// stable saturated color. Both freshly combined masks and decoded output
// files are accepted.
func ColorizeCombinedMask(img image.Image) (*image.RGBA, error) {
	out := image.NewRGBA(img.Bounds())

	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			id, err := pixelObjectID(img.At(x, y))
			if err != nil {
				return nil, fmt.Errorf("pixel (%d, %d): %w", x, y, err)
			}

			if id == 0 {
				continue
			}

			out.Set(x, y, objectColor(id))
		}
	}

	return out, nil
}

// pixelObjectID recovers the object ID from one pixel of a labeled mask.
// Grayscale pixels carry the ID directly. Anything else must at least be
// gray-valued (equal R, G, and B), in which case the 8-bit channel value is
// the ID.
func pixelObjectID(c color.Color) (uint32, error) {
	switch g := c.(type) {
	case color.Gray16:
		return uint32(g.Y), nil
	case color.Gray:
		return uint32(g.Y), nil
	}

	r, g, b, _ := c.RGBA()
	if r != g || g != b {
		return 0, fmt.Errorf("maskset: labeled pixels must be gray-valued; found R %d, G %d, B %d", r, g, b)
	}

	return r >> 8, nil
}

// objectColor maps an object ID to its display color by stepping the hue by
// the golden angle per ID.
func objectColor(id uint32) color.RGBA {
	hue := math.Mod(float64(id)*goldenAngle, 360)
	r, g, b := colorful.Hsv(hue, 0.85, 1).RGB255()

	return color.RGBA{R: r, G: g, B: b, A: 255}
}
