package maskset

import (
	"image"
	"image/color"
	"testing"
)

func TestColorizeCombinedMask(t *testing.T) {
	mask := image.NewGray16(image.Rect(0, 0, 3, 1))
	mask.SetGray16(1, 0, color.Gray16{Y: 1})
	mask.SetGray16(2, 0, color.Gray16{Y: 300})

	out, err := ColorizeCombinedMask(mask)
	if err != nil {
		t.Fatalf("ColorizeCombinedMask: %v", err)
	}

	if a := out.RGBAAt(0, 0).A; a != 0 {
		t.Errorf("expected the background to stay transparent, got alpha %d", a)
	}

	c1 := out.RGBAAt(1, 0)
	c2 := out.RGBAAt(2, 0)

	if c1.A != 255 || c2.A != 255 {
		t.Error("expected object pixels to be opaque")
	}
	if c1 == c2 {
		t.Errorf("expected distinct colors for distinct IDs, got %v twice", c1)
	}
}

func TestColorizeSameIDSameColor(t *testing.T) {
	mask := image.NewGray16(image.Rect(0, 0, 2, 1))
	mask.SetGray16(0, 0, color.Gray16{Y: 7})
	mask.SetGray16(1, 0, color.Gray16{Y: 7})

	out, err := ColorizeCombinedMask(mask)
	if err != nil {
		t.Fatalf("ColorizeCombinedMask: %v", err)
	}

	if out.RGBAAt(0, 0) != out.RGBAAt(1, 0) {
		t.Error("expected one ID to map to one color")
	}
}

func TestColorizeAcceptsEightBitMasks(t *testing.T) {
	m8 := image.NewGray(image.Rect(0, 0, 1, 1))
	m8.SetGray(0, 0, color.Gray{Y: 5})

	m16 := image.NewGray16(image.Rect(0, 0, 1, 1))
	m16.SetGray16(0, 0, color.Gray16{Y: 5})

	out8, err := ColorizeCombinedMask(m8)
	if err != nil {
		t.Fatalf("ColorizeCombinedMask (8-bit): %v", err)
	}

	out16, err := ColorizeCombinedMask(m16)
	if err != nil {
		t.Fatalf("ColorizeCombinedMask (16-bit): %v", err)
	}

	if out8.RGBAAt(0, 0) != out16.RGBAAt(0, 0) {
		t.Error("expected ID 5 to get the same color in 8-bit and 16-bit masks")
	}
}

func TestColorizeRejectsColorInput(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.RGBA{R: 200, G: 10, B: 30, A: 255})

	if _, err := ColorizeCombinedMask(img); err == nil {
		t.Error("expected an error for non-gray input")
	}
}
