package maskset

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"

	"github.com/carbocation/cellmisc"
)

// CopyCorrespondingFiles copies every file in sourceDir whose name starts
// with baseName into destDir and returns the copied names in listing order.
// The source may be a local folder or a gs:// path; the destination is
// always local. For local sources the copy keeps the original's permissions
// and modification time. A source with no matching files is not an error.
func CopyCorrespondingFiles(sourceDir, destDir, baseName string, client *storage.Client) ([]string, error) {
	if strings.HasPrefix(sourceDir, "gs://") {
		return copyCorrespondingFromGoogleStorage(sourceDir, destDir, baseName, client)
	}

	entries, err := os.ReadDir(sourceDir)
	if err != nil {
		return nil, pfx.Err(err)
	}

	var copied []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), baseName) {
			continue
		}

		if err := copyLocalFile(filepath.Join(sourceDir, entry.Name()), filepath.Join(destDir, entry.Name())); err != nil {
			return copied, pfx.Err(fmt.Errorf("copying %s: %w", entry.Name(), err))
		}

		copied = append(copied, entry.Name())
	}

	return copied, nil
}

func copyLocalFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	stat, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, stat.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}

	if err := out.Close(); err != nil {
		return err
	}

	// Keep the source's timestamp on the copy so downstream tooling can
	// still see when the raw file was produced.
	return os.Chtimes(dst, stat.ModTime(), stat.ModTime())
}

func copyCorrespondingFromGoogleStorage(sourceDir, destDir, baseName string, client *storage.Client) ([]string, error) {
	if client == nil {
		return nil, fmt.Errorf("%s: no storage client configured for gs:// paths", sourceDir)
	}

	names, err := cellmisc.ListFromGoogleStorage(sourceDir, client)
	if err != nil {
		return nil, err
	}

	var copied []string
	for _, name := range names {
		if !strings.HasPrefix(name, baseName) {
			continue
		}

		gsPath := strings.TrimSuffix(sourceDir, "/") + "/" + name
		if err := downloadGoogleStorageFile(gsPath, filepath.Join(destDir, name), client); err != nil {
			return copied, pfx.Err(fmt.Errorf("copying %s: %w", name, err))
		}

		copied = append(copied, name)
	}

	return copied, nil
}

func downloadGoogleStorageFile(gsPath, dst string, client *storage.Client) error {
	r, _, err := cellmisc.MaybeOpenFromGoogleStorage(gsPath, client)
	if err != nil {
		return err
	}
	defer r.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return err
	}

	return out.Close()
}
