package util

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInitIsOneShot(t *testing.T) {
	logger := Init("development", "debug", "console")
	require.NotNil(t, logger)
	require.Same(t, logger, Get())

	// A second Init with different settings returns the same logger.
	require.Same(t, logger, Init("production", "error", "json"))
}

func TestFieldHelpers(t *testing.T) {
	require.Equal(t, zap.String("k", "v"), String("k", "v"))
	require.Equal(t, zap.Int("n", 7), Int("n", 7))
	require.Equal(t, zap.Bool("ok", true), Bool("ok", true))
	require.Equal(t, zap.Duration("d", time.Second), Duration("d", time.Second))

	err := errors.New("boom")
	require.Equal(t, zap.Error(err), ErrorField(err))
}

func TestSanitizeInput(t *testing.T) {
	require.Equal(t, "Priya", SanitizeInput("  Priya  "))
	require.Equal(t, "&lt;script&gt;x&lt;/script&gt;", SanitizeInput("<script>x</script>"))
	require.Equal(t, "", SanitizeInput("   "))
}
