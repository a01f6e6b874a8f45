package utils

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"

	"github.com/geocontent/backend/lib/db"
	"github.com/geocontent/backend/lib/settings"
	"go.uber.org/zap"
)

func GetDB(retrievedSettings settings.Settings, setupLogger *zap.SugaredLogger) (db.DataStore, error) {
	if retrievedSettings.DBType == settings.SQLITE {
		filename := retrievedSettings.DBSettings.Filename
		if filename != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
				return nil, err
			}
		}
		setupLogger.Infof("Using SQLite database at %s", filename)
		return db.NewSQLiteDB(filename, setupLogger)
	} else if retrievedSettings.DBType == settings.MEMORY {
		setupLogger.Info("Using in-memory database (data will be lost on restart)")
		return db.NewMemoryDataStore(), nil
	} else if retrievedSettings.DBType == settings.POSTGRES {
		setupLogger.Infof("Using Postgres database at %s with database %s", retrievedSettings.DBSettings.Host, retrievedSettings.DBSettings.Database)

		port, err := strconv.Atoi(retrievedSettings.DBSettings.Port)
		if err != nil {
			return nil, err
		}

		return db.NewPostgresDB(db.PostgresOptions{
			Username: retrievedSettings.DBSettings.User,
			Password: retrievedSettings.DBSettings.Password,
			Host:     retrievedSettings.DBSettings.Host,
			Database: retrievedSettings.DBSettings.Database,
			Port:     port,
		}, setupLogger)
	}
	return nil, errors.New("unsupported database type")
}
