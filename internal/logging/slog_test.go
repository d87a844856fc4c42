package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAttributes(t *testing.T) {
	assert.Equal(t, slog.String("operation", "list"), Operation("list"))
	assert.Equal(t, slog.String("method", "GET"), Method("GET"))
	assert.Equal(t, slog.String("url", "https://example.com"), URL("https://example.com"))
	assert.Equal(t, slog.Int("status", 200), Status(200))
}

func TestErrNil(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	logger.Info("ok", Err(nil))
	assert.NotContains(t, buf.String(), "error=")
}

func TestErrNonNil(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	logger.Info("failed", Err(assert.AnError))
	assert.Contains(t, buf.String(), "error=")
}

func TestSanitizeToken(t *testing.T) {
	assert.Equal(t, "<empty>", SanitizeToken(""))

	got := SanitizeToken("ya29.supersecret")
	assert.NotContains(t, got, "supersecret")
	assert.Equal(t, "[token:16 chars]", got)
}

func TestSetupLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup(&buf, slog.LevelInfo)

	logger.Debug("hidden")
	logger.Info("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
