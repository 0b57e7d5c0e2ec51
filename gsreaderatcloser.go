package cellmisc

import (
	"context"

	"cloud.google.com/go/storage"
)

// GSReaderAtCloser decorates a Google Storage object handle with ReadAt so
// that gs:// objects can be consumed by the same code paths as local files.
type GSReaderAtCloser struct {
	*storage.ObjectHandle
	Context context.Context
	Closer  *func() error
	Reader  *storage.Reader
}

func (o *GSReaderAtCloser) Read(p []byte) (n int, err error) {
	if o.Reader == nil {
		o.Reader, err = o.NewReader(o.Context)
		if err != nil {
			return 0, err
		}
	}

	return o.Reader.Read(p)
}

// ReadAt satisfies io.ReaderAt. Note that this is dependent upon making p a
// buffer of the desired length to be read by NewRangeReader.
func (o *GSReaderAtCloser) ReadAt(p []byte, offset int64) (n int, err error) {
	rdr, err := o.NewRangeReader(o.Context, offset, int64(len(p)))
	if err != nil {
		return 0, err
	}
	defer rdr.Close()

	return rdr.Read(p)
}

// Satisfies io.Closer. If o.Closer is not set, this is a nop.
func (o *GSReaderAtCloser) Close() error {
	var err error

	if o.Reader != nil {
		err = o.Reader.Close()
	}

	if o.Closer != nil {
		err = (*o.Closer)()
	}

	return err
}
