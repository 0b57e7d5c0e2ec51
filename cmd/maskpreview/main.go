// maskpreview renders combined 16-bit masks into colorized PNGs for quick
// visual QC. Object IDs get stable, well-separated colors and the background
// stays transparent. Combined masks are nearly black to the eye (IDs 1..N
// out of 65535 gray levels), so this is the practical way to inspect what
// the combiner produced. Upsampling is intentionally basic (nearest
// neighbor) to avoid feathering object IDs into each other.
package main

import (
	"flag"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	_ "image/gif"
	_ "image/jpeg"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/carbocation/cellmisc"
	"github.com/carbocation/cellmisc/maskset"

	_ "github.com/carbocation/cellmisc/compileinfoprint"
)

const previewSuffix = ".preview.png"

func main() {
	var mask, outputFolder string
	var scale int

	flag.StringVar(&mask, "mask", "", "Path to a combined mask image, or a folder of them. (Required)")
	flag.StringVar(&outputFolder, "output_folder", "", "Folder where previews should be created. Defaults to alongside each input file.")
	flag.IntVar(&scale, "scale", 1, "Each input pixel becomes this many pixels in the preview.")
	flag.Parse()

	if mask == "" || scale < 1 {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(mask, outputFolder, scale); err != nil {
		log.Fatalln(err)
	}
}

func run(maskPath, outputFolder string, scale int) error {
	maskPath = cellmisc.ExpandHome(maskPath)
	outputFolder = cellmisc.ExpandHome(outputFolder)

	stat, err := os.Stat(maskPath)
	if err != nil {
		return err
	}

	if !stat.IsDir() {
		return preview(maskPath, outputFolder, scale)
	}

	entries, err := os.ReadDir(maskPath)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() || strings.HasSuffix(entry.Name(), previewSuffix) {
			continue
		}

		if !maskset.ValidFormat(strings.TrimPrefix(filepath.Ext(entry.Name()), ".")) {
			continue
		}

		if err := preview(filepath.Join(maskPath, entry.Name()), outputFolder, scale); err != nil {
			log.Printf("Skipping %s: %v", entry.Name(), err)
		}
	}

	return nil
}

func preview(maskPath, outputFolder string, scale int) error {
	img, err := openImage(maskPath)
	if err != nil {
		return err
	}

	colorized, err := maskset.ColorizeCombinedMask(img)
	if err != nil {
		return err
	}

	var outImg image.Image = colorized
	if scale > 1 {
		outImg = imaging.Resize(colorized, colorized.Bounds().Dx()*scale, 0, imaging.NearestNeighbor)
	}

	outName := previewName(maskPath, outputFolder)
	of, err := os.Create(outName)
	if err != nil {
		return err
	}

	if err := png.Encode(of, outImg); err != nil {
		of.Close()
		return err
	}

	if err := of.Close(); err != nil {
		return err
	}

	log.Printf("Preview saved as %s", outName)

	return nil
}

func previewName(maskPath, outputFolder string) string {
	base := strings.TrimSuffix(filepath.Base(maskPath), filepath.Ext(maskPath)) + previewSuffix

	if outputFolder == "" {
		return filepath.Join(filepath.Dir(maskPath), base)
	}

	return filepath.Join(outputFolder, base)
}

func openImage(pathTo string) (image.Image, error) {
	f, err := os.Open(pathTo)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}

	return img, nil
}
