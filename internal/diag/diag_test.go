package diag

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/textpack/wordpack"
	"github.com/textpack/wordpack/container"
	"github.com/textpack/wordpack/internal/check"
	"github.com/textpack/wordpack/internal/config"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel(" warn "))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("chatty"))
}

func TestTimerJSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "debug", "json")
	tm := l.Start("encode", "encoding", "file", "in.txt")
	tm.Finish("encoded", 42)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var start, finish map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &start))
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &finish))
	assert.Equal(t, "start", start["stage"])
	assert.Equal(t, "in.txt", start["file"])
	assert.Equal(t, "finish", finish["stage"])
	assert.Equal(t, "encode", finish["comp"])
	assert.Equal(t, float64(42), finish["count"])
	assert.Contains(t, finish, "dur_ms")
}

func TestLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "warn", "text")
	l.Start("encode", "hidden").Finish("hidden too", -1)
	l.Info("cli", "hidden as well")
	l.Warn("decode", "unresolved references", "misses", 3)
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "misses=3")
}

func TestErrorCode(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, "info", "text").With("run", "r1").Error("decode", "decoding failed", fmt.Errorf("read doc: %w", wordpack.ErrFraming))
	out := buf.String()
	assert.Contains(t, out, "code=framing")
	assert.Contains(t, out, "stage=error")
	assert.Contains(t, out, "run=r1")
}

func TestNilTimer(t *testing.T) {
	var tm *Timer
	assert.Zero(t, tm.Finish("nothing", 0))
	Discard().Start("x", "y").Finish("z", 1)
}

func TestClassify(t *testing.T) {
	_, perr := os.Open("/definitely/not/here")
	for _, tc := range []struct {
		err  error
		want Code
	}{
		{nil, CodeUnknown},
		{errors.New("boom"), CodeUnknown},
		{context.Canceled, CodeCancel},
		{fmt.Errorf("x: %w", context.DeadlineExceeded), CodeCancel},
		{&wordpack.FramingError{Markers: 1}, CodeFraming},
		{&check.MismatchError{Line: 3}, CodeMismatch},
		{fmt.Errorf("%w: order", config.ErrInvalid), CodeConfig},
		{container.ErrUnknownKind, CodeConfig},
		{perr, CodeIO},
	} {
		assert.Equal(t, tc.want, Classify(tc.err), "%v", tc.err)
	}
}
