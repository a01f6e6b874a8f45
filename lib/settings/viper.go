package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/geocontent/backend/lib/moderation"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// ReadConfig builds the settings from jsonStr, or from settings.json in the
// working directory when jsonStr is empty. Environment variables override
// both.
func ReadConfig(jsonStr string) (*Settings, error) {
	viper.SetConfigName("settings")
	viper.SetConfigType("json")

	viper.AddConfigPath(".")
	viper.AutomaticEnv()
	viper.SetEnvPrefix("geocontent")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	ApplyRegistryDefaults()

	if jsonStr != "" {
		if err := viper.ReadConfig(strings.NewReader(jsonStr)); err != nil {
			return nil, err
		}
	} else {
		if err := viper.ReadInConfig(); err != nil {
			var configFileNotFoundError viper.ConfigFileNotFoundError
			if !errors.As(err, &configFileNotFoundError) {
				return nil, err
			}
		}
	}

	dbTypeToUse, err := ParseDBType(viper.GetString(DBType))
	if err != nil {
		return nil, err
	}

	deletePolicy, err := moderation.ParseDeletePolicy(viper.GetString(ModerationDeletePolicy))
	if err != nil {
		return nil, err
	}

	appendRetries := viper.GetInt(ModerationAppendRetries)
	if appendRetries < 1 {
		return nil, fmt.Errorf("%s must be at least 1, got %d", ModerationAppendRetries, appendRetries)
	}

	rateLimiting := CommitRateLimiting{
		Duration: viper.GetInt(CommitRateLimitingDuration),
		Points:   viper.GetInt(CommitRateLimitingPoints),
		Disabled: viper.GetBool(CommitRateLimitingDisabled),
	}
	if !rateLimiting.Disabled && (rateLimiting.Duration < 1 || rateLimiting.Points < 1) {
		return nil, fmt.Errorf("%s and %s must be positive", CommitRateLimitingDuration, CommitRateLimitingPoints)
	}

	s := &Settings{
		IP:       viper.GetString(IP),
		Port:     viper.GetString(Port),
		LogLevel: viper.GetString(Loglevel),
		DBType:   dbTypeToUse,
		DBSettings: &DBSettings{
			Filename: viper.GetString(DBSettingsFilename),
			Host:     viper.GetString(DBSettingsHost),
			Port:     viper.GetString(DBSettingsPort),
			Database: viper.GetString(DBSettingsDatabase),
			User:     viper.GetString(DBSettingsUser),
			Password: viper.GetString(DBSettingsPassword),
		},
		Moderation: Moderation{
			TrustedAuthors: viper.GetStringSlice(ModerationTrustedAuthors),
			DeletePolicy:   deletePolicy,
			AppendRetries:  appendRetries,
		},
		RateLimiting:  rateLimiting,
		EnableMetrics: viper.GetBool(EnableMetrics),
		ExposeVersion: viper.GetBool(ExposeVersion),
	}

	return s, nil
}

// InitSettings loads settings.json from GEOCONTENT_SETTINGS_PATH or the
// working directory and stores the result in Displayed.
func InitSettings(logger *zap.SugaredLogger) (*Settings, error) {
	pathToRoot := os.Getenv(envPrefix + "_SETTINGS_PATH")
	if pathToRoot == "" {
		pathToRoot = "."
	}
	pathToRoot, err := filepath.Abs(pathToRoot)
	if err != nil {
		return nil, err
	}

	settingsFilePath := filepath.Join(pathToRoot, "settings.json")
	content, err := os.ReadFile(settingsFilePath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		logger.Warnw("No settings file found, using defaults", "path", settingsFilePath)
	}

	setting, err := ReadConfig(string(content))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", settingsFilePath, err)
	}
	setting.GitVersion = GitVersion()
	setting.Root = pathToRoot
	Displayed = *setting
	return setting, nil
}
