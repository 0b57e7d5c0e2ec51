package maskset

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
)

// MaxObjects is the largest object ID one combined mask can carry. Combined
// masks are written as 16-bit grayscale, so the ID space is stated here
// rather than left as an accident of the pixel type: up to 65535 distinct
// objects per output image, with 0 reserved for background.
const MaxObjects = math.MaxUint16

// ErrNoMasks is returned when a combined mask is requested but no input
// masks were provided.
var ErrNoMasks = errors.New("maskset: no input masks to combine")

// A Combiner merges per-object binary masks into a single labeled mask. Each
// added mask claims the next object ID, starting from 1. Feeding the masks of
// several classes of one sample into the same Combiner produces that sample's
// cross-class aggregate, with IDs that stay unique across classes.
type Combiner struct {
	combined *image.Gray16
	objects  int
}

// Add labels every foreground (non-zero) pixel of mask with the next object
// ID. The first mask fixes the output dimensions and each later mask must
// match them. Where masks overlap, the later mask's ID overwrites the
// earlier one.
func (c *Combiner) Add(mask *image.Gray) error {
	if c.combined == nil {
		c.combined = image.NewGray16(mask.Bounds())
	} else if !mask.Bounds().Eq(c.combined.Bounds()) {
		return fmt.Errorf("maskset: mask bounds %v do not match combined mask bounds %v", mask.Bounds(), c.combined.Bounds())
	}

	if c.objects >= MaxObjects {
		return fmt.Errorf("maskset: cannot assign object ID %d: a combined mask holds at most %d objects", c.objects+1, MaxObjects)
	}

	id := color.Gray16{Y: uint16(c.objects + 1)}

	b := mask.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if mask.GrayAt(x, y).Y > 0 {
				c.combined.SetGray16(x, y, id)
			}
		}
	}

	c.objects++

	return nil
}

// Objects reports how many masks have been merged so far, which equals the
// highest object ID assigned. Overlap never reduces this count: an object
// whose pixels were all overwritten still consumed its ID.
func (c *Combiner) Objects() int {
	return c.objects
}

// Combined returns the labeled mask holding every mask added so far. It
// returns ErrNoMasks when nothing has been added, since without input there
// are no dimensions to shape an output with.
func (c *Combiner) Combined() (*image.Gray16, error) {
	if c.combined == nil {
		return nil, ErrNoMasks
	}

	return c.combined, nil
}

// CombineMasks merges an ordered set of equally sized per-object masks into
// one labeled mask: the first mask's pixels become 1, the second's 2, and so
// on. Overlapping foreground resolves to the later mask's ID. An empty input
// returns ErrNoMasks.
func CombineMasks(masks []*image.Gray) (*image.Gray16, error) {
	c := &Combiner{}

	for _, mask := range masks {
		if err := c.Add(mask); err != nil {
			return nil, err
		}
	}

	return c.Combined()
}
