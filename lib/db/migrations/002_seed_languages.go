package migrations

import (
	"context"
	"database/sql"

	"github.com/geocontent/backend/lib/models/db"
)

// DefaultLanguages are available on a fresh installation.
var DefaultLanguages = []db.LanguageDB{
	{Code: "en", Name: "English", Active: true},
	{Code: "de", Name: "Deutsch", Active: true},
	{Code: "fr", Name: "Français", Active: true},
	{Code: "it", Name: "Italiano", Active: false},
}

func migration002SeedLanguages() Migration {
	return Migration{
		Version:     2,
		Description: "Seed default languages",
		Up: func(ctx context.Context, tx *sql.Tx, dialect Dialect) error {
			query := "INSERT INTO language (code, name, active) VALUES (?, ?, ?) ON CONFLICT(code) DO NOTHING"
			if dialect == DialectPostgres {
				query = "INSERT INTO language (code, name, active) VALUES ($1, $2, $3) ON CONFLICT(code) DO NOTHING"
			}
			for _, language := range DefaultLanguages {
				if _, err := tx.ExecContext(ctx, query, language.Code, language.Name, language.Active); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
