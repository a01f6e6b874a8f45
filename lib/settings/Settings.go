package settings

import "github.com/geocontent/backend/lib/moderation"

const (
	IP       = "ip"
	Port     = "port"
	Loglevel = "loglevel"

	DBType             = "dbType"
	DBSettingsFilename = "dbSettings.filename"
	DBSettingsHost     = "dbSettings.host"
	DBSettingsPort     = "dbSettings.port"
	DBSettingsDatabase = "dbSettings.database"
	DBSettingsUser     = "dbSettings.user"
	DBSettingsPassword = "dbSettings.password"

	ModerationTrustedAuthors = "moderation.trustedAuthors"
	ModerationDeletePolicy   = "moderation.deletePolicy"
	ModerationAppendRetries  = "moderation.appendRetries"

	CommitRateLimitingDuration = "commitRateLimiting.duration"
	CommitRateLimitingPoints   = "commitRateLimiting.points"
	CommitRateLimitingDisabled = "commitRateLimiting.disabled"

	EnableMetrics = "enableMetrics"
	ExposeVersion = "exposeVersion"
)

type DBSettings struct {
	Filename string
	Host     string
	Port     string
	Database string
	User     string
	Password string
}

type Moderation struct {
	TrustedAuthors []string
	DeletePolicy   moderation.DeletePolicy
	AppendRetries  int
}

// CommitRateLimiting caps write requests per acting user (or client IP)
// to Points within Duration seconds.
type CommitRateLimiting struct {
	Duration int
	Points   int
	Disabled bool
}

type Settings struct {
	IP            string
	Port          string
	LogLevel      string
	DBType        IDBType
	DBSettings    *DBSettings
	Moderation    Moderation
	RateLimiting  CommitRateLimiting
	EnableMetrics bool
	ExposeVersion bool
	GitVersion    string
	Root          string
}

var Displayed Settings
