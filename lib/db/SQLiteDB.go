package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/geocontent/backend/lib/db/migrations"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type SQLiteDB struct {
	*sqlDataStore
	path string
}

func isSQLiteUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	code := sqliteErr.Code()
	return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
}

func sqliteDSN(path string) (string, bool) {
	const pragmas = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	if path == ":memory" || path == ":memory:" {
		// every in-memory store gets its own named database so stores
		// opened by parallel tests never share tables
		return fmt.Sprintf("file:%s?mode=memory&cache=shared&%s", uuid.NewString(), pragmas), true
	}
	if strings.Contains(path, "?") {
		return path + "&" + pragmas, strings.Contains(path, "mode=memory")
	}
	return "file:" + path + "?" + pragmas + "&_pragma=journal_mode(WAL)", false
}

// NewSQLiteDB creates a new SQLiteDB, runs pending migrations and returns a pointer to it.
func NewSQLiteDB(path string, logger *zap.SugaredLogger) (*SQLiteDB, error) {
	dsn, inMemory := sqliteDSN(path)

	sqlDb, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if inMemory {
		sqlDb.SetMaxOpenConns(1)
	}

	migrationManager := migrations.NewMigrationManager(sqlDb, migrations.DialectSQLite, logger)
	if err := migrationManager.Run(context.Background()); err != nil {
		sqlDb.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteDB{
		sqlDataStore: &sqlDataStore{
			sqlDB:             sqlDb,
			builder:           sq.StatementBuilder.PlaceholderFormat(sq.Question),
			isUniqueViolation: isSQLiteUniqueViolation,
		},
		path: path,
	}, nil
}

var _ DataStore = (*SQLiteDB)(nil)
