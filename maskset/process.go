package maskset

import (
	"errors"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
)

// ErrOutputExists is returned when the output root is already present.
// Combined masks are written once per run; refusing to touch an existing
// tree protects prior results from a partial overwrite.
var ErrOutputExists = errors.New("maskset: output directory already exists")

// DefaultExcludedClass holds objects the annotators could not identify. It
// is skipped by default since unidentifiable objects make poor training
// labels.
const DefaultExcludedClass = "Unidentified"

// A Processor walks a tree of per-sample, per-class mask folders and
// produces the combined-mask dataset: one labeled mask per sample and class,
// one cross-class aggregate per sample, and a copy of every corresponding
// raw file next to each written mask.
//
// The expected input layout is <InputPath>/<sample>/<class>/<mask images>.
// The produced layout is <OutputPath>/<Format>/<class or "all">/<split>/
// <sample>_masks.<Format>.
type Processor struct {
	// InputPath is the root of the mask tree. It must exist.
	InputPath string

	// OutputPath is the root of the produced tree. It must not exist yet.
	OutputPath string

	// CorrespondingDir holds the raw files copied next to each combined
	// mask. May be a local folder or a gs:// path; empty disables copying.
	CorrespondingDir string

	// ValidPattern and TestPattern route samples into splits by substring
	// match on the sample directory name. Valid wins when both match;
	// samples matching neither are train.
	ValidPattern string
	TestPattern  string

	// Format is the combined-mask image format (png or tiff).
	Format string

	// ExcludedClasses names class directories to skip entirely.
	ExcludedClasses map[string]bool

	// StrictCopies aborts the run on the first corresponding-file copy
	// failure instead of logging it and pressing on.
	StrictCopies bool

	// Log receives progress and warnings. nil means the standard logger.
	Log *log.Logger

	// StorageClient is consulted only when CorrespondingDir is a gs:// path.
	StorageClient *storage.Client
}

func (p *Processor) logger() *log.Logger {
	if p.Log == nil {
		return log.Default()
	}

	return p.Log
}

// Run produces the full output tree and returns one OutputEntry per written
// combined mask, in the order they were written. It refuses to start when
// the input root is missing, the output root already exists, or the format
// cannot hold 16-bit IDs; in those cases nothing is written. Copy failures
// do not stop the run unless StrictCopies is set, but a run with failed
// copies still returns an error alongside the completed entries.
func (p *Processor) Run() ([]OutputEntry, error) {
	if stat, err := os.Stat(p.InputPath); err != nil {
		return nil, pfx.Err(fmt.Errorf("input path %s: %w", p.InputPath, err))
	} else if !stat.IsDir() {
		return nil, fmt.Errorf("input path %s is not a directory", p.InputPath)
	}

	if _, err := os.Stat(p.OutputPath); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrOutputExists, p.OutputPath)
	} else if !os.IsNotExist(err) {
		return nil, pfx.Err(err)
	}

	if !ValidFormat(p.Format) {
		return nil, fmt.Errorf("maskset: format %q cannot hold 16-bit object IDs (use %s or %s)", p.Format, FormatPNG, FormatTIFF)
	}

	data, err := SplitDataFolders(p.InputPath, p.ValidPattern, p.TestPattern)
	if err != nil {
		return nil, err
	}

	entries := make([]OutputEntry, 0)
	copyFailures := 0

	for _, splitName := range SplitNames {
		for _, dirPath := range data[splitName] {
			sampleEntries, failures, err := p.processSample(dirPath, splitName)
			entries = append(entries, sampleEntries...)
			copyFailures += failures
			if err != nil {
				return entries, err
			}
		}
	}

	if copyFailures > 0 {
		return entries, fmt.Errorf("maskset: %d corresponding-file copies failed", copyFailures)
	}

	return entries, nil
}

// processSample combines each class of one sample directory and then its
// cross-class aggregate, so object IDs in the aggregate continue across
// class boundaries instead of restarting at 1.
func (p *Processor) processSample(dirPath, splitName string) ([]OutputEntry, int, error) {
	logger := p.logger()
	base := filepath.Base(dirPath)

	logger.Printf("Processing %s...", dirPath)

	classDirs, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, 0, pfx.Err(err)
	}

	var entries []OutputEntry
	copyFailures := 0
	aggregate := &Combiner{}

	for _, classDir := range classDirs {
		if !classDir.IsDir() {
			continue
		}

		className := classDir.Name()
		if p.ExcludedClasses[className] {
			logger.Printf("Skipping %s...", className)
			continue
		}

		masks, err := LoadMaskImagesFromFolder(filepath.Join(dirPath, className), logger)
		if err != nil {
			return entries, copyFailures, err
		}

		if len(masks) == 0 {
			logger.Printf("No usable masks for class %s in sample %s; skipping", className, base)
			continue
		}

		classMask, err := CombineMasks(masks)
		if err != nil {
			return entries, copyFailures, fmt.Errorf("%s/%s: %w", base, className, err)
		}

		for _, mask := range masks {
			if err := aggregate.Add(mask); err != nil {
				return entries, copyFailures, fmt.Errorf("%s/%s: %w", base, className, err)
			}
		}

		entry, failures, err := p.writeMask(classMask, len(masks), className, splitName, base)
		copyFailures += failures
		if err != nil {
			return entries, copyFailures, err
		}

		entries = append(entries, entry)
	}

	if aggregate.Objects() == 0 {
		logger.Printf("No usable masks in any class for sample %s; skipping its aggregate", base)
		return entries, copyFailures, nil
	}

	aggregateMask, err := aggregate.Combined()
	if err != nil {
		return entries, copyFailures, err
	}

	entry, failures, err := p.writeMask(aggregateMask, aggregate.Objects(), AllClasses, splitName, base)
	copyFailures += failures
	if err != nil {
		return entries, copyFailures, err
	}

	entries = append(entries, entry)

	return entries, copyFailures, nil
}

// writeMask saves one combined mask under its class and split, then copies
// the sample's corresponding files next to it. Directories are created
// lazily so excluded or empty classes never leave behind empty subtrees.
func (p *Processor) writeMask(mask *image.Gray16, objects int, className, splitName, base string) (OutputEntry, int, error) {
	logger := p.logger()

	outDir := filepath.Join(p.OutputPath, p.Format, className, splitName)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return OutputEntry{}, 0, pfx.Err(err)
	}

	savePath := filepath.Join(outDir, base+"_masks."+p.Format)
	if err := SaveCombinedMask(mask, savePath, p.Format); err != nil {
		return OutputEntry{}, 0, pfx.Err(err)
	}

	logger.Printf("Combined mask image saved as %s", savePath)

	entry := OutputEntry{
		Sample:   base,
		Class:    className,
		Split:    splitName,
		MaskPath: savePath,
		Objects:  objects,
	}

	if p.CorrespondingDir == "" {
		return entry, 0, nil
	}

	copied, err := CopyCorrespondingFiles(p.CorrespondingDir, outDir, base, p.StorageClient)
	entry.CopiedFiles = len(copied)
	if err != nil {
		if p.StrictCopies {
			return entry, 0, err
		}

		logger.Printf("Copy failure for sample %s: %v", base, err)

		return entry, 1, nil
	}

	for _, name := range copied {
		logger.Printf("Copied corresponding file %s", name)
	}

	return entry, 0, nil
}
