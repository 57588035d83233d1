package container

import (
	"io"

	"github.com/klauspost/compress/gzip"
)

// Levels 1–9 are available; 0 selects gzip.DefaultCompression.
func newGZIPWriter(w io.Writer, level int) (io.WriteCloser, error) {
	if level == 0 {
		level = gzip.DefaultCompression
	} else {
		level = clamp(level, gzip.BestSpeed, gzip.BestCompression)
	}
	zw, err := gzip.NewWriterLevel(w, level)
	if err != nil {
		return nil, err
	}
	return zw, nil
}

func newGZIPReader(r io.Reader) (io.ReadCloser, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, err
	}
	return zr, nil
}
