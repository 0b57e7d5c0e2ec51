package maskset

import (
	"image"
	"image/draw"
	"log"
	"os"
	"path/filepath"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/carbocation/pfx"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// LoadMaskImagesFromFolder decodes every readable mask image in folder and
// returns one grayscale image per file. Files are visited in lexicographic
// filename order (the os.ReadDir contract), which is what makes downstream
// object-ID assignment deterministic across platforms. A file that cannot be
// decoded is reported as a warning on logger and skipped; it does not abort
// the batch. A folder with no decodable files yields an empty, non-nil slice.
func LoadMaskImagesFromFolder(folder string, logger *log.Logger) ([]*image.Gray, error) {
	if logger == nil {
		logger = log.Default()
	}

	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, pfx.Err(err)
	}

	images := make([]*image.Gray, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		img, err := openGrayImage(filepath.Join(folder, entry.Name()))
		if err != nil {
			logger.Printf("Failed to read image %s: %v", entry.Name(), err)
			continue
		}

		images = append(images, img)
	}

	return images, nil
}

// openGrayImage decodes one image file and converts it to 8-bit grayscale.
// Must be PNG, GIF, BMP, JPEG, or TIFF formatted (based on the decoders we
// have imported).
func openGrayImage(path string) (*image.Gray, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}

	gray := image.NewGray(img.Bounds())
	draw.Draw(gray, gray.Bounds(), img, img.Bounds().Min, draw.Src)

	return gray, nil
}
