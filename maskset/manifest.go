package maskset

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/gocarina/gocsv"
)

// AllClasses is the reserved class name under which cross-class aggregate
// masks are filed. A real annotation class with this name would collide with
// the aggregate output tree.
const AllClasses = "all"

// An OutputEntry records one combined mask written by a Processor run: the
// sample it came from, the class it represents (AllClasses for the
// cross-class aggregate), the split it landed in, where it was written, how
// many objects it labels, and how many corresponding files were copied next
// to it.
type OutputEntry struct {
	Sample      string `csv:"sample"`
	Class       string `csv:"class"`
	Split       string `csv:"split"`
	MaskPath    string `csv:"mask_path"`
	Objects     int    `csv:"objects"`
	CopiedFiles int    `csv:"copied_files"`
}

// WriteManifest saves entries as a tab-delimited file with a header row.
func WriteManifest(entries []OutputEntry, path string) error {
	gocsv.SetCSVWriter(func(out io.Writer) *gocsv.SafeCSVWriter {
		w := csv.NewWriter(out)
		w.Comma = '\t'

		return gocsv.NewSafeCSVWriter(w)
	})

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := gocsv.MarshalFile(&entries, f); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

// ReadManifest loads a manifest written by WriteManifest.
func ReadManifest(path string) ([]OutputEntry, error) {
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(in)
		r.Comma = '\t'
		r.LazyQuotes = true

		return r
	})

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	entries := []OutputEntry{}
	if err := gocsv.UnmarshalFile(f, &entries); err != nil {
		return nil, err
	}

	return entries, nil
}
