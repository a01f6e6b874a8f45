package utils

import (
	"path/filepath"
	"testing"

	"github.com/geocontent/backend/lib/db"
	"github.com/geocontent/backend/lib/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestSetupLoggerLevels(t *testing.T) {
	logger := SetupLogger("ERROR")
	assert.False(t, logger.Desugar().Core().Enabled(zapcore.WarnLevel))
	assert.True(t, logger.Desugar().Core().Enabled(zapcore.ErrorLevel))

	fallback := SetupLogger("loud")
	assert.True(t, fallback.Desugar().Core().Enabled(zapcore.InfoLevel))
	assert.False(t, fallback.Desugar().Core().Enabled(zapcore.DebugLevel))
}

func TestGetDB(t *testing.T) {
	logger := zap.NewNop().Sugar()

	memory, err := GetDB(settings.Settings{DBType: settings.MEMORY}, logger)
	require.NoError(t, err)
	assert.IsType(t, &db.MemoryDataStore{}, memory)

	filename := filepath.Join(t.TempDir(), "nested", "content.db")
	sqlite, err := GetDB(settings.Settings{
		DBType:     settings.SQLITE,
		DBSettings: &settings.DBSettings{Filename: filename},
	}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close() })
	assert.NoError(t, sqlite.Ping())
	assert.FileExists(t, filename)

	_, err = GetDB(settings.Settings{
		DBType:     settings.POSTGRES,
		DBSettings: &settings.DBSettings{Port: "not-a-port"},
	}, logger)
	assert.Error(t, err)

	_, err = GetDB(settings.Settings{DBType: "mysql"}, logger)
	assert.Error(t, err)
}
