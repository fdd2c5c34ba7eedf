package flagtypes

import (
	"testing"

	"github.com/iver-wharf/wharf-core/v2/pkg/logger"
	"github.com/iver-wharf/wharf-pages/pkg/pages"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogLevelSet(t *testing.T) {
	testCases := []struct {
		name  string
		value string
		want  logger.Level
	}{
		{name: "full name", value: "debug", want: logger.LevelDebug},
		{name: "mixed case", value: "WaRn", want: logger.LevelWarn},
		{name: "number", value: "2", want: logger.LevelError},
		{name: "short", value: "i", want: logger.LevelInfo},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var lvl LogLevel
			require.NoError(t, lvl.Set(tc.value))
			assert.Equal(t, tc.want, lvl.Level())
		})
	}
}

func TestLogLevelSetInvalid(t *testing.T) {
	lvl := LogLevel(logger.LevelInfo)
	assert.Error(t, lvl.Set("verbose"))
	assert.Equal(t, logger.LevelInfo, lvl.Level())
}

func TestBackendSet(t *testing.T) {
	var b Backend
	require.NoError(t, b.Set("Direct"))
	assert.Equal(t, Backend(pages.BackendDirect), b)
	assert.Equal(t, "direct", b.String())

	assert.Error(t, b.Set("cloud"))
	assert.Equal(t, Backend(pages.BackendDirect), b)
}
