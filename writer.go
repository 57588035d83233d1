package wordpack

import (
	"bytes"
	"errors"
	"io"
)

// ErrNoDest is returned by Writer.Close when Dest is nil.
var ErrNoDest = errors.New("wordpack: Writer has no destination")

// A Writer encodes everything written to it and writes the encoded document
// to Dest when it is closed. The dictionary depends on the whole document, so
// nothing reaches Dest before Close.
type Writer struct {
	Dest    io.Writer
	Encoder Encoder

	buf     bytes.Buffer
	outBuf  []byte
	written int64
}

func (w *Writer) Write(p []byte) (int, error) {
	return w.buf.Write(p)
}

// Close encodes the buffered text and writes it to Dest. It does not close
// Dest. The buffered text is kept if Dest is nil.
func (w *Writer) Close() error {
	if w.Dest == nil {
		return ErrNoDest
	}
	w.outBuf = w.Encoder.Encode(w.outBuf[:0], w.buf.Bytes())
	w.buf.Reset()
	n, err := w.Dest.Write(w.outBuf)
	w.written += int64(n)
	return err
}

// Written returns the number of encoded bytes written to Dest so far.
func (w *Writer) Written() int64 {
	return w.written
}

// Reset discards any buffered text and sets the destination to dst.
func (w *Writer) Reset(dst io.Writer) {
	w.buf.Reset()
	w.Dest = dst
	w.written = 0
}

// A Reader decodes an encoded document read from Src.
type Reader struct {
	Src     io.Reader
	Decoder Decoder

	out     []byte
	decoded bool
}

// NewReader returns a Reader that decodes the document in r.
func NewReader(r io.Reader) *Reader {
	return &Reader{Src: r}
}

func (r *Reader) Read(p []byte) (int, error) {
	if !r.decoded {
		src, err := io.ReadAll(r.Src)
		if err != nil {
			return 0, err
		}
		r.out, err = r.Decoder.Decode(r.out[:0], src)
		if err != nil {
			return 0, err
		}
		r.decoded = true
	}
	if len(r.out) == 0 {
		return 0, io.EOF
	}
	n := copy(p, r.out)
	r.out = r.out[n:]
	return n, nil
}

// Reset prepares the Reader to decode a new document from src.
func (r *Reader) Reset(src io.Reader) {
	r.Src = src
	r.out = r.out[:0]
	r.decoded = false
}
