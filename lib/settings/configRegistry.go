package settings

import (
	"strings"

	"github.com/spf13/viper"
)

type ConfigKey struct {
	Key         string
	Default     any
	Description string
}

const envPrefix = "GEOCONTENT"

func EnvVar(key string) string {
	return envPrefix + "_" + strings.ToUpper(
		strings.ReplaceAll(key, ".", "_"),
	)
}

var Registry = []ConfigKey{
	// ---------------------------------------------------------------------
	// Core
	// ---------------------------------------------------------------------
	{Key: IP, Default: "0.0.0.0", Description: "Bind address"},
	{Key: Port, Default: "9001", Description: "HTTP server port"},
	{Key: Loglevel, Default: "INFO", Description: "Log level (DEBUG, INFO, WARN, ERROR)"},
	{Key: EnableMetrics, Default: true, Description: "Expose prometheus metrics on /metrics"},
	{Key: ExposeVersion, Default: false, Description: "Report the build version on /health"},

	// ---------------------------------------------------------------------
	// Database
	// ---------------------------------------------------------------------
	{Key: DBType, Default: string(SQLITE), Description: "Database type (memory, sqlite, postgres)"},
	{Key: DBSettingsFilename, Default: "var/geocontent.db", Description: "SQLite database file"},
	{Key: DBSettingsHost, Default: "localhost", Description: "Postgres host"},
	{Key: DBSettingsPort, Default: "5432", Description: "Postgres port"},
	{Key: DBSettingsDatabase, Default: "geocontent", Description: "Postgres database name"},
	{Key: DBSettingsUser, Default: "geocontent", Description: "Postgres user"},
	{Key: DBSettingsPassword, Default: "", Description: "Postgres password"},

	// ---------------------------------------------------------------------
	// Moderation
	// ---------------------------------------------------------------------
	{
		Key:         ModerationTrustedAuthors,
		Default:     []string{},
		Description: "Author ids whose revisions are verified on submit",
	},
	{
		Key:         ModerationDeletePolicy,
		Default:     "revert",
		Description: "Confirmed deletion policy (revert, cascade)",
	},
	{
		Key:         ModerationAppendRetries,
		Default:     3,
		Description: "Append attempts before a conflict is reported",
	},

	// ---------------------------------------------------------------------
	// Rate limiting
	// ---------------------------------------------------------------------
	{Key: CommitRateLimitingDuration, Default: 1, Description: "Rate limit window in seconds"},
	{Key: CommitRateLimitingPoints, Default: 10, Description: "Write requests allowed per window and user"},
	{Key: CommitRateLimitingDisabled, Default: false, Description: "Disable write rate limiting (load tests)"},
}

func ApplyRegistryDefaults() {
	for _, c := range Registry {
		viper.SetDefault(c.Key, c.Default)
	}
}
