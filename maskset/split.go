package maskset

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/carbocation/pfx"
)

// Split bucket names. SplitNames fixes the processing order so that output
// ordering is reproducible rather than left to map iteration.
const (
	SplitTrain = "train"
	SplitValid = "valid"
	SplitTest  = "test"
)

var SplitNames = []string{SplitTrain, SplitValid, SplitTest}

// SplitDataFolders assigns every immediate subdirectory of root to the
// train, valid, or test bucket based on substring patterns in the directory
// name: names containing validPattern go to valid, remaining names
// containing testPattern go to test, and everything else is train. A name
// matching both patterns is therefore classified valid. Buckets hold full
// paths in sorted directory-listing order, and all three keys are present
// even when empty.
func SplitDataFolders(root, validPattern, testPattern string) (map[string][]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, pfx.Err(err)
	}

	data := map[string][]string{
		SplitTrain: {},
		SplitValid: {},
		SplitTest:  {},
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		name := entry.Name()
		path := filepath.Join(root, name)

		switch {
		case strings.Contains(name, validPattern):
			data[SplitValid] = append(data[SplitValid], path)
		case strings.Contains(name, testPattern):
			data[SplitTest] = append(data[SplitTest], path)
		default:
			data[SplitTrain] = append(data[SplitTrain], path)
		}
	}

	return data, nil
}
