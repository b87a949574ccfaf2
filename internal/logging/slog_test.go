package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJSONLogger(t *testing.T, level slog.Level) (*SlogLogger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	l := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: level}))
	return NewSlogLogger(l), &buf
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		m := map[string]any{}
		require.NoError(t, json.Unmarshal([]byte(line), &m), line)
		out = append(out, m)
	}
	return out
}

func TestSlogLogger_Levels(t *testing.T) {
	log, buf := newJSONLogger(t, slog.LevelDebug)
	ctx := context.Background()

	log.Debug(ctx, "dbg", "a", 1)
	log.Info(ctx, "inf", "b", 2)
	log.Warn(ctx, "wrn", "c", 3)
	log.Error(ctx, "err", "d", 4)

	lines := decodeLines(t, buf)
	require.Len(t, lines, 4)

	want := []struct{ level, msg, key string }{
		{"DEBUG", "dbg", "a"},
		{"INFO", "inf", "b"},
		{"WARN", "wrn", "c"},
		{"ERROR", "err", "d"},
	}
	for i, w := range want {
		assert.Equal(t, w.level, lines[i]["level"])
		assert.Equal(t, w.msg, lines[i]["msg"])
		assert.Contains(t, lines[i], w.key)
	}
}

func TestSlogLogger_DropsBelowLevel(t *testing.T) {
	log, buf := newJSONLogger(t, slog.LevelWarn)
	ctx := ContextWith(context.Background(), "request_id", "r-1")

	log.Debug(ctx, "signup requested")
	log.Info(ctx, "login succeeded")
	log.Warn(ctx, "OTP expired")

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "OTP expired", lines[0]["msg"])
}

func TestSlogLogger_ContextFields(t *testing.T) {
	log, buf := newJSONLogger(t, slog.LevelInfo)

	ctx := ContextWith(context.Background(), "request_id", "r-42")
	ctx = ContextWith(ctx, "username", "alice")
	log.With("module", "services").Info(ctx, "resume uploaded", "student_id", 7)

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "r-42", lines[0]["request_id"])
	assert.Equal(t, "alice", lines[0]["username"])
	assert.Equal(t, "services", lines[0]["module"])
	assert.EqualValues(t, 7, lines[0]["student_id"])
}

func TestSlogLogger_ContextDoesNotPanic(t *testing.T) {
	log, buf := newJSONLogger(t, slog.LevelInfo)

	log.Info(context.TODO(), "startup")
	assert.Contains(t, buf.String(), "startup")
}
