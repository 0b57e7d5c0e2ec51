package cellmisc

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
	"google.golang.org/api/iterator"
)

// SplitGoogleStoragePath breaks a gs://bucket/path string into its bucket and
// object-path components.
func SplitGoogleStoragePath(path string) (bucket, object string, err error) {
	pathParts := strings.SplitN(strings.TrimPrefix(path, "gs://"), "/", 2)
	if len(pathParts) != 2 {
		return "", "", fmt.Errorf("tried to split your google storage path into 2 parts, but got %d: %v", len(pathParts), pathParts)
	}

	return pathParts[0], pathParts[1], nil
}

// MaybeOpenFromGoogleStorage opens a file for reading - either from a local
// path, or from Google Storage, depending on whether the path carries the
// gs:// prefix. It returns the open handle and the file's size in bytes.
func MaybeOpenFromGoogleStorage(path string, client *storage.Client) (ReaderAtCloser, int64, error) {
	if client != nil && strings.HasPrefix(path, "gs://") {
		bucketName, pathName, err := SplitGoogleStoragePath(path)
		if err != nil {
			return nil, 0, err
		}

		// Open the bucket with default credentials
		handle := client.Bucket(bucketName).Object(pathName)

		wrappedHandle := &GSReaderAtCloser{
			ObjectHandle: handle,
			Context:      context.Background(),
		}

		// Make a hard call to get the filesize
		attrs, err := wrappedHandle.ObjectHandle.Attrs(wrappedHandle.Context)
		if err != nil {
			return nil, 0, pfx.Err(fmt.Errorf("%s: %s", path, err))
		}

		return wrappedHandle, attrs.Size, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return f, 0, err
	}
	fstat, err := f.Stat()
	if err != nil {
		return f, 0, err
	}
	return f, fstat.Size(), nil
}

// ListFromGoogleStorage lists the base names of the objects that sit
// immediately under the given gs:// directory path, sorted lexicographically
// to match the os.ReadDir contract for local folders. Objects in deeper
// "subdirectories" are not listed.
func ListFromGoogleStorage(path string, client *storage.Client) ([]string, error) {
	bucketName, pathName, err := SplitGoogleStoragePath(path)
	if err != nil {
		return nil, err
	}

	prefix := strings.TrimSuffix(pathName, "/") + "/"

	it := client.Bucket(bucketName).Objects(context.Background(), &storage.Query{
		Prefix:    prefix,
		Delimiter: "/",
	})

	names := make([]string, 0)
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		} else if err != nil {
			return nil, pfx.Err(fmt.Errorf("%s: %s", path, err))
		}

		// Entries with an empty Name are synthetic prefixes (subdirectories)
		if attrs.Name == "" || attrs.Name == prefix {
			continue
		}

		names = append(names, strings.TrimPrefix(attrs.Name, prefix))
	}

	sort.Strings(names)

	return names, nil
}
