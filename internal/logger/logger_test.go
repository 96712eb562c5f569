package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInit(t *testing.T) {
	previous := Logger
	t.Cleanup(func() { Logger = previous })

	require.NoError(t, Init("debug"))
	assert.True(t, Logger.Core().Enabled(zap.DebugLevel))

	require.NoError(t, Init("warn"))
	assert.False(t, Logger.Core().Enabled(zap.InfoLevel))
	assert.True(t, Logger.Core().Enabled(zap.ErrorLevel))

	err := Init("loud")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}
