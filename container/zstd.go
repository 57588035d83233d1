package container

import (
	"io"

	"github.com/klauspost/compress/zstd"
)

// Levels follow the zstd command line tool (1–22) and are mapped onto the
// closest level the encoder implements.
func newZstdWriter(w io.Writer, level int) (io.WriteCloser, error) {
	var opts []zstd.EOption
	if level != 0 {
		opts = append(opts, zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(clamp(level, 1, 22))))
	}
	zw, err := zstd.NewWriter(w, opts...)
	if err != nil {
		return nil, err
	}
	return zw, nil
}

func newZstdReader(r io.Reader) (io.ReadCloser, error) {
	d, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	return d.IOReadCloser(), nil
}
