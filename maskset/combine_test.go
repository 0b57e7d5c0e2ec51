package maskset

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

// grayMask builds a w-by-h binary mask whose foreground is the given points.
func grayMask(w, h int, on ...image.Point) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for _, pt := range on {
		img.SetGray(pt.X, pt.Y, color.Gray{Y: 255})
	}

	return img
}

func TestCombineMasksAssignsSequentialIDs(t *testing.T) {
	masks := []*image.Gray{
		grayMask(3, 3, image.Pt(0, 0)),
		grayMask(3, 3, image.Pt(1, 0)),
		grayMask(3, 3, image.Pt(2, 2)),
	}

	combined, err := CombineMasks(masks)
	if err != nil {
		t.Fatalf("CombineMasks: %v", err)
	}

	expected := []struct {
		x, y int
		id   uint16
	}{
		{0, 0, 1},
		{1, 0, 2},
		{2, 2, 3},
		{1, 1, 0},
		{2, 0, 0},
	}

	for _, exp := range expected {
		if got := combined.Gray16At(exp.x, exp.y).Y; got != exp.id {
			t.Errorf("pixel (%d, %d): expected ID %d, got %d", exp.x, exp.y, exp.id, got)
		}
	}
}

func TestCombineMasksDimFirstMaskFixesBounds(t *testing.T) {
	masks := []*image.Gray{
		grayMask(4, 2, image.Pt(3, 1)),
		grayMask(4, 2),
	}

	combined, err := CombineMasks(masks)
	if err != nil {
		t.Fatalf("CombineMasks: %v", err)
	}

	if got, want := combined.Bounds(), image.Rect(0, 0, 4, 2); got != want {
		t.Errorf("expected bounds %v, got %v", want, got)
	}
}

func TestCombineMasksLastWriteWins(t *testing.T) {
	masks := []*image.Gray{
		grayMask(2, 1, image.Pt(0, 0), image.Pt(1, 0)),
		grayMask(2, 1, image.Pt(1, 0)),
	}

	combined, err := CombineMasks(masks)
	if err != nil {
		t.Fatalf("CombineMasks: %v", err)
	}

	if got := combined.Gray16At(0, 0).Y; got != 1 {
		t.Errorf("non-overlapping pixel: expected ID 1, got %d", got)
	}

	if got := combined.Gray16At(1, 0).Y; got != 2 {
		t.Errorf("overlapping pixel: expected the later ID 2, got %d", got)
	}
}

func TestCombineMasksAnyNonzeroPixelIsForeground(t *testing.T) {
	mask := grayMask(2, 1)
	mask.SetGray(0, 0, color.Gray{Y: 1})

	combined, err := CombineMasks([]*image.Gray{mask})
	if err != nil {
		t.Fatalf("CombineMasks: %v", err)
	}

	if got := combined.Gray16At(0, 0).Y; got != 1 {
		t.Errorf("faint foreground pixel: expected ID 1, got %d", got)
	}

	if got := combined.Gray16At(1, 0).Y; got != 0 {
		t.Errorf("background pixel: expected 0, got %d", got)
	}
}

func TestCombineMasksEmptyInput(t *testing.T) {
	if _, err := CombineMasks(nil); !errors.Is(err, ErrNoMasks) {
		t.Errorf("expected ErrNoMasks, got %v", err)
	}

	if _, err := CombineMasks([]*image.Gray{}); !errors.Is(err, ErrNoMasks) {
		t.Errorf("expected ErrNoMasks for an empty slice, got %v", err)
	}
}

func TestCombineMasksSizeMismatch(t *testing.T) {
	masks := []*image.Gray{
		grayMask(2, 2, image.Pt(0, 0)),
		grayMask(3, 3, image.Pt(1, 1)),
	}

	if _, err := CombineMasks(masks); err == nil {
		t.Error("expected an error for mismatched mask sizes")
	}
}

func TestCombinerContinuesIDsAcrossBatches(t *testing.T) {
	c := &Combiner{}

	for _, mask := range []*image.Gray{
		grayMask(2, 2, image.Pt(0, 0)),
		grayMask(2, 2, image.Pt(1, 0)),
	} {
		if err := c.Add(mask); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	// A second batch, as when the masks of a sample's next class extend the
	// cross-class aggregate.
	if err := c.Add(grayMask(2, 2, image.Pt(0, 1))); err != nil {
		t.Fatalf("Add: %v", err)
	}

	if got := c.Objects(); got != 3 {
		t.Fatalf("expected 3 objects, got %d", got)
	}

	combined, err := c.Combined()
	if err != nil {
		t.Fatalf("Combined: %v", err)
	}

	if got := combined.Gray16At(0, 1).Y; got != 3 {
		t.Errorf("expected the later batch to continue at ID 3, got %d", got)
	}
}

func TestCombinerEnforcesMaxObjects(t *testing.T) {
	c := &Combiner{}
	mask := grayMask(1, 1, image.Pt(0, 0))

	for i := 0; i < MaxObjects; i++ {
		if err := c.Add(mask); err != nil {
			t.Fatalf("Add %d: %v", i+1, err)
		}
	}

	if err := c.Add(mask); err == nil {
		t.Errorf("expected an error adding object %d", MaxObjects+1)
	}

	combined, err := c.Combined()
	if err != nil {
		t.Fatalf("Combined: %v", err)
	}

	if got := combined.Gray16At(0, 0).Y; got != MaxObjects {
		t.Errorf("expected the last assigned ID %d, got %d", MaxObjects, got)
	}
}
