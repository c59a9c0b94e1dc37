package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/reqsync/internal/adapters/logger"
	"go.trai.ch/zerr"
)

// newTestLogger returns a logger writing to a buffer without ANSI escapes.
func newTestLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := logger.New().(*logger.Logger)
	lg.SetOutput(buf)
	return lg, buf
}

func TestLogger_Levels(t *testing.T) {
	tests := []struct {
		name       string
		log        func(*logger.Logger)
		goldenName string
	}{
		{
			name:       "info",
			log:        func(l *logger.Logger) { l.Info("Everything up-to-date") },
			goldenName: "info_basic",
		},
		{
			name:       "warn",
			log:        func(l *logger.Logger) { l.Warn("input file has the .in extension") },
			goldenName: "warn_basic",
		},
		{
			name:       "debug hidden by default",
			log:        func(l *logger.Logger) { l.Debug("merge finished in 1ms") },
			goldenName: "debug_hidden",
		},
		{
			name: "debug enabled",
			log: func(l *logger.Logger) {
				l.SetDebug(true)
				l.Debug("merge finished in 1ms")
			},
			goldenName: "debug_enabled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			tt.log(lg)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestLogger_ErrorChain(t *testing.T) {
	lg, buf := newTestLogger(t)

	lg.Error(zerr.Wrap(errors.New("exit status 1"), "failed to install requirements"))

	g := goldie.New(t)
	g.Assert(t, "error_chain", buf.Bytes())
}

func TestLogger_ErrorNil(t *testing.T) {
	lg, buf := newTestLogger(t)

	lg.Error(nil)

	assert.Empty(t, buf.String())
}

func TestLogger_ErrorPlain(t *testing.T) {
	lg, buf := newTestLogger(t)

	lg.Error(errors.New("conflicting requirements: a.txt:1 requires x ==1 but b.txt:2 requires x ==2"))

	assert.Equal(t,
		"✗ Error: conflicting requirements: a.txt:1 requires x ==1 but b.txt:2 requires x ==2\n",
		buf.String(),
	)
}

func TestFormatError_Metadata(t *testing.T) {
	err := zerr.With(zerr.With(zerr.New("malformed requirement"), "file", "requirements.txt"), "line", 3)

	got := logger.FormatError(err)

	assert.Equal(t, "Error: malformed requirement (file=requirements.txt, line=3)", got)
}

func TestLogger_JSON(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetJSON(true)

	lg.Info("synced")
	lg.Error(errors.New("boom"))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var first, second map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &first))
	require.NoError(t, json.Unmarshal(lines[1], &second))

	assert.Equal(t, "INFO", first["level"])
	assert.Equal(t, "synced", first["msg"])
	assert.Equal(t, "ERROR", second["level"])
	assert.Equal(t, "boom", second["error"])
}

func TestLogger_JSONErrorMetadata(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetJSON(true)

	malformed := zerr.With(zerr.With(zerr.New("malformed requirement"), "file", "dev.txt"), "line", 3)
	lg.Error(zerr.With(zerr.Wrap(malformed, "invalid requirements"), "file", "requirements.txt"))

	var record map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &record))

	assert.Equal(t, "invalid requirements: malformed requirement", record["error"])
	assert.Equal(t, "requirements.txt", record["file"], "the outer value wins")
	assert.InDelta(t, 3, record["line"], 0)
}

func TestLogger_SetOutputNil(t *testing.T) {
	lg := logger.New().(*logger.Logger)

	assert.NotPanics(t, func() {
		lg.SetOutput(nil)
	})
}

func TestFormatError_Joined(t *testing.T) {
	err := errors.Join(
		zerr.New("invalid requirements"),
		zerr.With(zerr.Wrap(errors.New("unexpected token"), "malformed requirement"), "line", 3),
	)

	got := logger.FormatError(err)

	assert.Equal(t,
		"Error: invalid requirements\n\n  Caused by:\n    → malformed requirement (line=3)\n    → unexpected token",
		got,
	)
}
