package container

import (
	"io"

	"github.com/andybalholm/brotli"
)

// Levels 0–11 are available; 0 selects brotli.DefaultCompression.
func newBrotliWriter(w io.Writer, level int) io.WriteCloser {
	if level == 0 {
		level = brotli.DefaultCompression
	}
	return brotli.NewWriterLevel(w, clamp(level, brotli.BestSpeed, brotli.BestCompression))
}

func newBrotliReader(r io.Reader) io.ReadCloser {
	return io.NopCloser(brotli.NewReader(r))
}
