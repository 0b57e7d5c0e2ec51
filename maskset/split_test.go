package maskset

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestSplitDataFolders(t *testing.T) {
	root := t.TempDir()

	samples := []string{
		"S1_ST_I06_section",
		"S2_ST_K07_section",
		"S3_other",
		"S4_ST_I06_and_ST_K07",
		"S5_other",
	}
	for _, name := range samples {
		if err := os.Mkdir(filepath.Join(root, name), 0o755); err != nil {
			t.Fatal(err)
		}
	}

	// Loose files must not be classified as samples.
	if err := os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	data, err := SplitDataFolders(root, "ST_I06", "ST_K07")
	if err != nil {
		t.Fatalf("SplitDataFolders: %v", err)
	}

	want := map[string][]string{
		SplitTrain: {filepath.Join(root, "S3_other"), filepath.Join(root, "S5_other")},
		SplitValid: {filepath.Join(root, "S1_ST_I06_section"), filepath.Join(root, "S4_ST_I06_and_ST_K07")},
		SplitTest:  {filepath.Join(root, "S2_ST_K07_section")},
	}

	if !reflect.DeepEqual(data, want) {
		t.Errorf("expected %v, got %v", want, data)
	}

	total := 0
	for _, paths := range data {
		total += len(paths)
	}
	if total != len(samples) {
		t.Errorf("expected every sample in exactly one split: %d samples, %d assigned", len(samples), total)
	}
}

func TestSplitDataFoldersEmptyRoot(t *testing.T) {
	data, err := SplitDataFolders(t.TempDir(), "ST_I06", "ST_K07")
	if err != nil {
		t.Fatalf("SplitDataFolders: %v", err)
	}

	for _, splitName := range SplitNames {
		paths, ok := data[splitName]
		if !ok {
			t.Errorf("expected the %s bucket to be present even when empty", splitName)
		}
		if len(paths) != 0 {
			t.Errorf("expected the %s bucket to be empty, got %v", splitName, paths)
		}
	}
}

func TestSplitDataFoldersMissingRoot(t *testing.T) {
	if _, err := SplitDataFolders(filepath.Join(t.TempDir(), "absent"), "a", "b"); err == nil {
		t.Error("expected an error for a missing root")
	}
}
