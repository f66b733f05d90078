package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoggerWritesRotatedFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "curve.log")
	console := new(bytes.Buffer)

	l, err := newWithConsole(&Config{LogFile: logFile, MaxSize: 1, MaxBackups: 1, MaxAge: 1}, console)
	require.NoError(t, err)

	l.WithOperation("quote").Info("Quote computed", zap.Uint64("amount_out", 5000))
	require.NoError(t, l.Close())

	content, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Quote computed")
	assert.Contains(t, string(content), "correlation_id")
	assert.Contains(t, string(content), `"amount_out":5000`)

	assert.Contains(t, console.String(), "Quote computed")
}

func TestLoggerLevels(t *testing.T) {
	console := new(bytes.Buffer)

	l, err := newWithConsole(&Config{}, console)
	require.NoError(t, err)
	l.Debug("hidden")
	l.Info("shown")
	require.NoError(t, l.Sync())

	assert.False(t, strings.Contains(console.String(), "hidden"))
	assert.True(t, strings.Contains(console.String(), "shown"))

	console.Reset()
	dev, err := newWithConsole(&Config{Development: true}, console)
	require.NoError(t, err)
	dev.WithComponent("curve").Debug("visible in development")
	require.NoError(t, dev.Sync())

	assert.Contains(t, console.String(), "visible in development")
	assert.Contains(t, console.String(), "curve")
}

func TestNewDefaultConfig(t *testing.T) {
	l, err := New(nil)
	require.NoError(t, err)
	assert.NotNil(t, l.Logger)
	assert.Equal(t, DefaultConfig(), l.config)
}
