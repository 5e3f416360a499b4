package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(" INFO "))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("nonsense"))
}

func TestNew_TextRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(FormatText, "warn", &buf)
	require.NoError(t, err)

	log.Info(context.Background(), "hidden")
	log.Warn(context.Background(), "shown", "k", "v")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown")
	assert.Contains(t, buf.String(), "k=v")
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(FormatJSON, "info", &buf)
	require.NoError(t, err)

	log.Info(context.Background(), "hello", "user_id", 42)

	assert.Contains(t, buf.String(), `"msg":"hello"`)
	assert.Contains(t, buf.String(), `"user_id":42`)
}

func TestNew_ConsoleUsesZerolog(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(FormatConsole, "debug", &buf)
	require.NoError(t, err)
	require.IsType(t, &ZerologLogger{}, log)

	log.With("request_id", "r1").Debug(context.Background(), "request", "endpoint", "jobcodes")

	out := buf.String()
	assert.Contains(t, out, "request")
	assert.Contains(t, out, "endpoint=jobcodes")
	assert.Contains(t, out, "request_id=r1")
}

func TestNew_ConsoleRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(FormatConsole, "error", &buf)
	require.NoError(t, err)

	log.Warn(context.Background(), "quiet")
	assert.Empty(t, buf.String())
}

func TestNew_UnknownFormat(t *testing.T) {
	_, err := New("xml", "info", &bytes.Buffer{})
	require.Error(t, err)
}

func TestPairs_OddArgs(t *testing.T) {
	got := pairs([]any{"a", 1, "dangling"})
	assert.Equal(t, map[string]any{"a": 1, "!BADKEY": "dangling"}, got)
}

func TestDiscard_DoesNotPanic(t *testing.T) {
	log := Discard()
	log.Error(context.TODO(), "nothing")
	log.With("k", "v").Debug(context.TODO(), "nothing")
}
