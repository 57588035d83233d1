// Package container wraps encoded documents in a general-purpose compressed
// stream. The word codec removes repeated words; a container then squeezes
// what is left with an entropy coder.
package container

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// A Kind names a container format.
type Kind string

const (
	None   Kind = "none"
	GZIP   Kind = "gzip"
	Zstd   Kind = "zstd"
	Snappy Kind = "snappy"
	Brotli Kind = "brotli"
	LZ4    Kind = "lz4"
)

// Kinds lists every supported container, None first.
var Kinds = []Kind{None, GZIP, Zstd, Snappy, Brotli, LZ4}

// ErrUnknownKind is returned for container names that are not supported.
var ErrUnknownKind = errors.New("container: unknown kind")

// ParseKind converts a container name into a Kind. The empty string means None.
func ParseKind(s string) (Kind, error) {
	if s == "" {
		return None, nil
	}
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return None, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

var magics = []struct {
	kind  Kind
	magic []byte
}{
	{GZIP, []byte{0x1f, 0x8b}},
	{Zstd, []byte{0x28, 0xb5, 0x2f, 0xfd}},
	{LZ4, []byte{0x04, 0x22, 0x4d, 0x18}},
	{Snappy, []byte("\xff\x06\x00\x00sNaPpY")},
}

// Detect identifies the container of data from its magic number. Brotli
// streams have no magic number, so they are reported as None, as is
// anything unrecognized.
func Detect(data []byte) Kind {
	for _, m := range magics {
		if bytes.HasPrefix(data, m.magic) {
			return m.kind
		}
	}
	return None
}

// NewWriter returns a WriteCloser that compresses into w. Closing it flushes
// the stream but does not close w. A level of 0 selects the format's default.
func NewWriter(w io.Writer, kind Kind, level int) (io.WriteCloser, error) {
	switch kind {
	case None, "":
		return nopWriteCloser{w}, nil
	case GZIP:
		return newGZIPWriter(w, level)
	case Zstd:
		return newZstdWriter(w, level)
	case Snappy:
		return newSnappyWriter(w), nil
	case Brotli:
		return newBrotliWriter(w, level), nil
	case LZ4:
		return newLZ4Writer(w, level)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}

// NewReader returns a ReadCloser that decompresses the stream in r.
func NewReader(r io.Reader, kind Kind) (io.ReadCloser, error) {
	switch kind {
	case None, "":
		return io.NopCloser(r), nil
	case GZIP:
		return newGZIPReader(r)
	case Zstd:
		return newZstdReader(r)
	case Snappy:
		return newSnappyReader(r), nil
	case Brotli:
		return newBrotliReader(r), nil
	case LZ4:
		return newLZ4Reader(r), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}

// Wrap compresses plain into a container of the given kind.
func Wrap(kind Kind, level int, plain []byte) ([]byte, error) {
	if kind == None || kind == "" {
		return plain, nil
	}
	b := new(bytes.Buffer)
	w, err := NewWriter(b, kind, level)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(plain); err != nil {
		return nil, fmt.Errorf("container: %s write: %w", kind, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("container: %s close: %w", kind, err)
	}
	return b.Bytes(), nil
}

// Unwrap decompresses data from a container of the given kind.
func Unwrap(kind Kind, data []byte) ([]byte, error) {
	if kind == None || kind == "" {
		return data, nil
	}
	r, err := NewReader(bytes.NewReader(data), kind)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	plain, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("container: %s read: %w", kind, err)
	}
	return plain, nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// clamp limits level to [min, max].
func clamp(level, min, max int) int {
	if level < min {
		level = min
	}
	if level > max {
		level = max
	}
	return level
}
