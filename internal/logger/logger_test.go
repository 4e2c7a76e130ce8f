package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("bogus"))
}

func TestRequestIDAttached(t *testing.T) {
	var buf bytes.Buffer
	InitializeWriter(&buf, "debug", "json")
	defer Initialize("info", "text")

	ctx := WithRequestID(context.Background(), "01HZX")
	InfoContext(ctx, "hello")
	assert.Contains(t, buf.String(), `"request_id":"01HZX"`)

	buf.Reset()
	Info("no context")
	assert.NotContains(t, buf.String(), "request_id")
}

func TestRejectMethodLogsWarn(t *testing.T) {
	var buf bytes.Buffer
	InitializeWriter(&buf, "info", "text")
	defer Initialize("info", "text")

	RejectMethod("CreateCredentials", errors.New("conflict"))
	assert.Contains(t, buf.String(), "level=WARN")

	buf.Reset()
	ExitMethod("quiet")
	assert.Empty(t, buf.String())
}
