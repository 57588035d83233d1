package container

import (
	"io"

	"github.com/pierrec/lz4/v4"
)

var lz4Levels = [...]lz4.CompressionLevel{
	lz4.Fast,
	lz4.Level1,
	lz4.Level2,
	lz4.Level3,
	lz4.Level4,
	lz4.Level5,
	lz4.Level6,
	lz4.Level7,
	lz4.Level8,
	lz4.Level9,
}

// Level 0 is the fast compressor; levels 1–9 use the high compression one.
func newLZ4Writer(w io.Writer, level int) (io.WriteCloser, error) {
	zw := lz4.NewWriter(w)
	err := zw.Apply(
		lz4.CompressionLevelOption(lz4Levels[clamp(level, 0, 9)]),
		lz4.ChecksumOption(true),
	)
	if err != nil {
		return nil, err
	}
	return zw, nil
}

func newLZ4Reader(r io.Reader) io.ReadCloser {
	return io.NopCloser(lz4.NewReader(r))
}
