// combinemasks walks a folder tree of per-object binary mask images (one
// subfolder per sample, one subfolder per annotation class within it) and
// merges each class's masks into a single 16-bit labeled mask image, with
// object IDs counting up from 1. Samples are routed into train, valid, and
// test splits by substring patterns on the sample folder name, and a
// cross-class "all" tree aggregates every non-excluded class per sample.
// Optionally, raw files sharing each sample's name prefix are copied next to
// the combined masks so the output tree is self-contained for training.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"

	"github.com/carbocation/cellmisc"
	"github.com/carbocation/cellmisc/maskset"

	_ "github.com/carbocation/cellmisc/compileinfoprint"
)

func main() {
	var input, output, corresponding, validPattern, testPattern, format, exclude, manifest string
	var strict bool

	flag.StringVar(&input, "input", "", "Path to the folder whose per-sample subfolders hold per-class mask images. (Required)")
	flag.StringVar(&output, "output", "", "Path where the combined-mask dataset will be created. Must not exist yet. (Required)")
	flag.StringVar(&corresponding, "corresponding", "", "Optional folder (local or gs://) holding raw files to copy next to each combined mask, matched by sample-name prefix.")
	flag.StringVar(&validPattern, "val_pattern", "ST_I06", "Sample folders whose name contains this substring go to the valid split.")
	flag.StringVar(&testPattern, "test_pattern", "ST_K07", "Sample folders whose name contains this substring go to the test split. Valid takes priority when both match.")
	flag.StringVar(&format, "format", "png", "Output image format for combined masks (png or tiff).")
	flag.StringVar(&exclude, "exclude", maskset.DefaultExcludedClass, "Comma-delimited class folder names to skip.")
	flag.StringVar(&manifest, "manifest", "manifest.tsv", "Name of the tab-delimited manifest written at the top of the output folder. Empty disables it.")
	flag.BoolVar(&strict, "strict", false, "Abort on the first corresponding-file copy failure instead of logging it and continuing.")
	flag.Parse()

	if input == "" || output == "" {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(input, output, corresponding, validPattern, testPattern, format, exclude, manifest, strict); err != nil {
		log.Fatalln(err)
	}
}

func run(input, output, corresponding, validPattern, testPattern, format, exclude, manifest string, strict bool) error {
	input = cellmisc.ExpandHome(input)
	output = cellmisc.ExpandHome(output)
	corresponding = cellmisc.ExpandHome(corresponding)

	excluded := make(map[string]bool)
	for _, name := range strings.Split(exclude, ",") {
		if name = strings.TrimSpace(name); name != "" {
			excluded[name] = true
		}
	}

	proc := &maskset.Processor{
		InputPath:        input,
		OutputPath:       output,
		CorrespondingDir: corresponding,
		ValidPattern:     validPattern,
		TestPattern:      testPattern,
		Format:           format,
		ExcludedClasses:  excluded,
		StrictCopies:     strict,
		Log:              log.Default(),
	}

	if strings.HasPrefix(corresponding, "gs://") {
		client, err := storage.NewClient(context.Background())
		if err != nil {
			return err
		}
		proc.StorageClient = client
	}

	entries, runErr := proc.Run()

	// Even a run with copy failures has written masks worth indexing, so the
	// manifest goes out before the error does.
	if manifest != "" && len(entries) > 0 {
		if err := maskset.WriteManifest(entries, filepath.Join(output, manifest)); err != nil {
			return err
		}
	}

	if runErr != nil {
		return runErr
	}

	log.Printf("Wrote %d combined masks below %s", len(entries), output)

	return nil
}
