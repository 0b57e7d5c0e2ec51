package maskset

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"golang.org/x/image/tiff"
)

// Output formats able to carry 16-bit single-channel pixels. Formats capped
// at 8 bits per channel (bmp, jpeg, gif) would truncate object IDs above 255
// and are rejected.
const (
	FormatPNG  = "png"
	FormatTIFF = "tiff"
)

// ValidFormat reports whether format names a supported combined-mask
// encoding. "tif" is accepted as a spelling of tiff.
func ValidFormat(format string) bool {
	switch format {
	case FormatPNG, FormatTIFF, "tif":
		return true
	}

	return false
}

// SaveCombinedMask writes img to path in the named format. The caller is
// responsible for creating the destination directory.
func SaveCombinedMask(img *image.Gray16, path, format string) error {
	if !ValidFormat(format) {
		return fmt.Errorf("maskset: format %q cannot hold 16-bit object IDs (use %s or %s)", format, FormatPNG, FormatTIFF)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	var encErr error
	switch format {
	case FormatPNG:
		encErr = png.Encode(f, img)
	default:
		encErr = tiff.Encode(f, img, nil)
	}

	if encErr != nil {
		f.Close()
		return encErr
	}

	return f.Close()
}
