package settings

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/geocontent/backend/lib/moderation"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestDefaultsAreApplied(t *testing.T) {
	resetViper(t)
	t.Chdir(t.TempDir())

	cfg, err := ReadConfig("")
	require.NoError(t, err)

	require.Equal(t, "9001", cfg.Port)
	require.Equal(t, SQLITE, cfg.DBType)
	require.Equal(t, "var/geocontent.db", cfg.DBSettings.Filename)
	require.Equal(t, moderation.PolicyRevert, cfg.Moderation.DeletePolicy)
	require.Equal(t, 3, cfg.Moderation.AppendRetries)
	require.Empty(t, cfg.Moderation.TrustedAuthors)
	require.True(t, cfg.EnableMetrics)
	require.Equal(t, CommitRateLimiting{Duration: 1, Points: 10}, cfg.RateLimiting)
}

func TestEnvOverride(t *testing.T) {
	resetViper(t)
	t.Setenv("GEOCONTENT_PORT", "9999")
	t.Setenv("GEOCONTENT_DBTYPE", "memory")
	t.Setenv("GEOCONTENT_MODERATION_TRUSTEDAUTHORS", "editor-1 editor-2")

	cfg, err := ReadConfig(`{"port": "8080"}`)
	require.NoError(t, err)
	require.Equal(t, "9999", cfg.Port)
	require.Equal(t, MEMORY, cfg.DBType)
	require.Equal(t, []string{"editor-1", "editor-2"}, cfg.Moderation.TrustedAuthors)
}

func TestReadConfigFromJSON(t *testing.T) {
	resetViper(t)

	cfg, err := ReadConfig(`{
		"dbType": "postgres",
		"dbSettings": {"host": "db.internal", "user": "content"},
		"moderation": {"trustedAuthors": ["editor"], "deletePolicy": "cascade", "appendRetries": 5}
	}`)
	require.NoError(t, err)

	assert.Equal(t, POSTGRES, cfg.DBType)
	assert.Equal(t, "db.internal", cfg.DBSettings.Host)
	assert.Equal(t, "content", cfg.DBSettings.User)
	assert.Equal(t, "5432", cfg.DBSettings.Port)
	assert.Equal(t, []string{"editor"}, cfg.Moderation.TrustedAuthors)
	assert.Equal(t, moderation.PolicyCascade, cfg.Moderation.DeletePolicy)
	assert.Equal(t, 5, cfg.Moderation.AppendRetries)
}

func TestReadConfigRejectsInvalidValues(t *testing.T) {
	for name, jsonStr := range map[string]string{
		"db type":        `{"dbType": "mysql"}`,
		"delete policy":  `{"moderation": {"deletePolicy": "purge"}}`,
		"append retries": `{"moderation": {"appendRetries": 0}}`,
		"rate limit":     `{"commitRateLimiting": {"points": 0}}`,
	} {
		t.Run(name, func(t *testing.T) {
			resetViper(t)
			_, err := ReadConfig(jsonStr)
			assert.Error(t, err)
		})
	}
}

func TestParseDBType(t *testing.T) {
	for input, want := range map[string]IDBType{
		"sqlite":     SQLITE,
		" Postgres ": POSTGRES,
		"MEMORY":     MEMORY,
	} {
		got, err := ParseDBType(input)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	for _, input := range []string{"mysql", "mssql", ""} {
		_, err := ParseDBType(input)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported dbType")
		assert.Contains(t, err.Error(), "memory, sqlite, postgres")
	}
}

func TestInitSettingsReadsSettingsPath(t *testing.T) {
	resetViper(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "settings.json"), []byte(`{"port": "7000"}`), 0o600))
	t.Setenv("GEOCONTENT_SETTINGS_PATH", dir)

	cfg, err := InitSettings(zap.NewNop().Sugar())
	require.NoError(t, err)
	assert.Equal(t, "7000", cfg.Port)
	assert.Equal(t, dir, cfg.Root)
	assert.Equal(t, "7000", Displayed.Port)
}

func TestConfigCommands(t *testing.T) {
	resetViper(t)
	_, err := ReadConfig(`{"dbSettings": {"password": "secret"}}`)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, RunConfigCommand(&out, []string{"env"}))
	assert.Contains(t, out.String(), "GEOCONTENT_MODERATION_DELETEPOLICY")

	out.Reset()
	require.NoError(t, RunConfigCommand(&out, []string{"show"}))
	assert.NotContains(t, out.String(), "secret")

	out.Reset()
	require.NoError(t, RunConfigCommand(&out, []string{"get", Port}))
	assert.Equal(t, "9001\n", out.String())

	out.Reset()
	require.NoError(t, RunConfigCommand(&out, []string{"init"}))
	var initial map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &initial))
	assert.Equal(t, "revert", initial["moderation"].(map[string]any)["deletePolicy"])

	assert.Error(t, RunConfigCommand(&out, []string{"get", "nope"}))
	assert.Error(t, RunConfigCommand(&out, []string{"frobnicate"}))
	assert.Error(t, RunConfigCommand(&out, nil))
}
