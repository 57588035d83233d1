package fsio

import (
	"bytes"
	"io"
)

// chunkSize bounds each Read so cancellation is noticed during large writes.
const chunkSize = 1 << 20

type chunkReader struct {
	r *bytes.Reader
}

func bytesReader(b []byte) io.Reader {
	return chunkReader{bytes.NewReader(b)}
}

func (c chunkReader) Read(p []byte) (int, error) {
	if len(p) > chunkSize {
		p = p[:chunkSize]
	}
	return c.r.Read(p)
}
