package diag

import (
	"context"
	"errors"
	"os"

	"github.com/textpack/wordpack"
	"github.com/textpack/wordpack/container"
	"github.com/textpack/wordpack/internal/check"
	"github.com/textpack/wordpack/internal/config"
)

// Code is a coarse error category, used as a log attribute. It is not tied
// to exit codes.
type Code string

const (
	CodeUnknown  Code = "unknown"
	CodeFraming  Code = "framing"
	CodeMismatch Code = "mismatch"
	CodeConfig   Code = "config"
	CodeIO       Code = "io"
	CodeCancel   Code = "cancel"
)

// Classify puts err into a category using sentinel errors and error types
// only.
func Classify(err error) Code {
	if err == nil {
		return CodeUnknown
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return CodeCancel
	}
	if errors.Is(err, wordpack.ErrFraming) {
		return CodeFraming
	}
	if errors.Is(err, check.ErrMismatch) {
		return CodeMismatch
	}
	if errors.Is(err, config.ErrInvalid) || errors.Is(err, container.ErrUnknownKind) {
		return CodeConfig
	}
	var perr *os.PathError
	if errors.As(err, &perr) {
		return CodeIO
	}
	return CodeUnknown
}
