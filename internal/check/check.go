// Package check verifies an encoded document by decoding it again and
// comparing the result with the text that was encoded.
package check

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pierrec/xxHash/xxHash32"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/textpack/wordpack"
)

// ErrMismatch is wrapped by the *MismatchError Verify returns when the
// decoded text differs from the input.
var ErrMismatch = errors.New("check: decoded text differs from input")

// A MismatchError locates the first line that did not survive the round trip.
type MismatchError struct {
	Line int    // 1-based
	Want string // the input line
	Got  string // the decoded line
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("check: line %d differs after decoding: %s", e.Line, e.Diff())
}

func (e *MismatchError) Unwrap() error {
	return ErrMismatch
}

// Diff renders the difference between Want and Got, with deletions as
// [-text-] and insertions as {+text+}.
func (e *MismatchError) Diff() string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(e.Want, e.Got, false))
	var b strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			b.WriteString("[-" + d.Text + "-]")
		case diffmatchpatch.DiffInsert:
			b.WriteString("{+" + d.Text + "+}")
		case diffmatchpatch.DiffEqual:
			b.WriteString(d.Text)
		}
	}
	return b.String()
}

// A Report summarizes a successful check.
type Report struct {
	Lines    int    // lines compared
	Checksum uint32 // xxHash32 of the normalized input
	Misses   int    // references that did not resolve
}

// Verify decodes encoded and compares it with the normalized form of
// original. It returns a *MismatchError if they differ, or the decoder's
// error if encoded cannot be decoded at all.
func Verify(original string, encoded []byte) (Report, error) {
	var r Report
	dec := wordpack.Decoder{OnMiss: func(int) { r.Misses++ }}
	decoded, err := dec.Decode(nil, encoded)
	if err != nil {
		return r, fmt.Errorf("check: %w", err)
	}

	want := wordpack.Normalize(original)
	r.Checksum = xxHash32.Checksum([]byte(want), 0)
	r.Lines = len(wordpack.Lines(want))
	if r.Checksum == xxHash32.Checksum(decoded, 0) && want == string(decoded) {
		return r, nil
	}

	wantLines := strings.Split(want, "\n")
	gotLines := strings.Split(string(decoded), "\n")
	for i, w := range wantLines {
		if i >= len(gotLines) {
			return r, &MismatchError{Line: i + 1, Want: w}
		}
		if gotLines[i] != w {
			return r, &MismatchError{Line: i + 1, Want: w, Got: gotLines[i]}
		}
	}
	return r, &MismatchError{Line: len(wantLines) + 1, Got: gotLines[len(wantLines)]}
}
