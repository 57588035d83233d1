package container

import (
	"io"

	"github.com/golang/snappy"
)

// Snappy has no compression levels. The framed stream format is used, so
// the output starts with the snappy stream identifier.
func newSnappyWriter(w io.Writer) io.WriteCloser {
	return snappy.NewBufferedWriter(w)
}

func newSnappyReader(r io.Reader) io.ReadCloser {
	return io.NopCloser(snappy.NewReader(r))
}
