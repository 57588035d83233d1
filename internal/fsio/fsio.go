// Package fsio reads whole input files and writes output files, optionally
// through a temporary file that is renamed into place.
package fsio

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
)

// Stdio is the path that stands for standard input or standard output.
const Stdio = "-"

// ErrNoPath is returned by WriteFile when no output path is given.
var ErrNoPath = errors.New("fsio: no output path")

// ReadFile returns the whole content of path, or of stdin if path is Stdio.
func ReadFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if path == Stdio {
		return io.ReadAll(readerWithCtx(ctx, os.Stdin))
	}
	return os.ReadFile(path)
}

// Options controls WriteFile.
type Options struct {
	// Atomic writes to a temporary file in the same directory and renames
	// it over the destination, so a failed write leaves the old file alone.
	Atomic bool
	// Perm is the mode of a newly created file; 0 means 0644.
	Perm os.FileMode
	// BufSize is the write buffer size; <= 0 means 64 KiB.
	BufSize int
	// Stdout receives the data when the path is Stdio; nil means os.Stdout.
	Stdout io.Writer
}

// WriteFile writes data to path, or to opts.Stdout if path is Stdio.
func WriteFile(ctx context.Context, path string, data []byte, opts Options) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	switch path {
	case "":
		return ErrNoPath
	case Stdio:
		w := opts.Stdout
		if w == nil {
			w = os.Stdout
		}
		_, err := w.Write(data)
		return err
	}
	if opts.Perm == 0 {
		opts.Perm = 0o644
	}
	if opts.BufSize <= 0 {
		opts.BufSize = 64 * 1024
	}
	if opts.Atomic {
		return writeAtomic(ctx, path, data, opts)
	}
	return writeOverwrite(ctx, path, data, opts)
}

func writeOverwrite(ctx context.Context, dest string, data []byte, opts Options) error {
	f, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, opts.Perm)
	if err != nil {
		return err
	}
	defer f.Close()

	bw := bufio.NewWriterSize(f, opts.BufSize)
	if _, err := io.Copy(bw, readerWithCtx(ctx, bytesReader(data))); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	return f.Close()
}

func writeAtomic(ctx context.Context, dest string, data []byte, opts Options) error {
	dir := filepath.Dir(dest)
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	_ = os.Chmod(tmpPath, opts.Perm)

	fail := func(err error) error {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	bw := bufio.NewWriterSize(tmp, opts.BufSize)
	if _, err := io.Copy(bw, readerWithCtx(ctx, bytesReader(data))); err != nil {
		return fail(err)
	}
	if err := bw.Flush(); err != nil {
		return fail(err)
	}
	if err := tmp.Sync(); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := osReplace(tmpPath, dest); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	_ = syncDir(dir)
	return nil
}

// readerWithCtx checks ctx before every Read.
func readerWithCtx(ctx context.Context, r io.Reader) io.Reader {
	return &ctxReader{ctx: ctx, r: r}
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (cr *ctxReader) Read(p []byte) (int, error) {
	if err := cr.ctx.Err(); err != nil {
		return 0, err
	}
	return cr.r.Read(p)
}
