package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/geocontent/backend/lib/db/migrations"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type PostgresOptions struct {
	Username string
	Password string
	Host     string
	Port     int
	Database string
}

type PostgresDB struct {
	*sqlDataStore
	options PostgresOptions
}

const pgUniqueViolation = "23505"

func isPostgresUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation
}

// NewPostgresDB connects to Postgres, runs pending migrations and returns a pointer to it.
func NewPostgresDB(options PostgresOptions, logger *zap.SugaredLogger) (*PostgresDB, error) {
	dbUrl := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		options.Username, options.Password, options.Host, options.Port, options.Database)
	sqlDb, err := sql.Open("postgres", dbUrl)
	if err != nil {
		return nil, err
	}
	sqlDb.SetMaxOpenConns(25)
	sqlDb.SetConnMaxIdleTime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := sqlDb.PingContext(ctx); err != nil {
		sqlDb.Close()
		return nil, fmt.Errorf("failed to reach postgres: %w", err)
	}

	migrationManager := migrations.NewMigrationManager(sqlDb, migrations.DialectPostgres, logger)
	if err := migrationManager.Run(ctx); err != nil {
		sqlDb.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &PostgresDB{
		sqlDataStore: &sqlDataStore{
			sqlDB:             sqlDb,
			builder:           sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
			isUniqueViolation: isPostgresUniqueViolation,
		},
		options: options,
	}, nil
}

var _ DataStore = (*PostgresDB)(nil)
