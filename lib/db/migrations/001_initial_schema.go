package migrations

import (
	"context"
	"database/sql"
)

// GetMigrations returns all available migrations
func GetMigrations() []Migration {
	return []Migration{
		migration001InitialSchema(),
		migration002SeedLanguages(),
	}
}

// migration001InitialSchema creates the chain, node, status and language tables
func migration001InitialSchema() Migration {
	return Migration{
		Version:     1,
		Description: "Initial schema - create all tables",
		Up: func(ctx context.Context, tx *sql.Tx, dialect Dialect) error {
			var queries []string

			switch dialect {
			case DialectPostgres:
				queries = getPostgresInitialSchema()
			default:
				queries = getSQLiteInitialSchema()
			}

			for _, query := range queries {
				if _, err := tx.ExecContext(ctx, query); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func getSQLiteInitialSchema() []string {
	return []string{
		// LANGUAGE
		`CREATE TABLE IF NOT EXISTS language (
			code TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			active INTEGER NOT NULL DEFAULT 1
		)`,

		// CHAIN
		`CREATE TABLE IF NOT EXISTS chain (
			id TEXT PRIMARY KEY,
			kind TEXT NOT NULL,
			language TEXT NOT NULL REFERENCES language(code),
			current_id TEXT,
			last_id TEXT,
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_chain_kind ON chain(kind)`,

		// NODE
		`CREATE TABLE IF NOT EXISTS node (
			id TEXT PRIMARY KEY,
			chain_id TEXT NOT NULL REFERENCES chain(id) ON DELETE CASCADE,
			previous_id TEXT UNIQUE REFERENCES node(id) ON DELETE CASCADE,
			value TEXT NOT NULL,
			author_id TEXT NOT NULL,
			created_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_node_chain ON node(chain_id)`,

		// NODE STATUS
		`CREATE TABLE IF NOT EXISTS node_status (
			node_id TEXT PRIMARY KEY REFERENCES node(id) ON DELETE CASCADE,
			status TEXT NOT NULL,
			moderator_id TEXT,
			updated_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_node_status_status ON node_status(status)`,
	}
}

func getPostgresInitialSchema() []string {
	return []string{
		// LANGUAGE
		`CREATE TABLE IF NOT EXISTS language (
			code TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			active BOOLEAN NOT NULL DEFAULT TRUE
		)`,

		// CHAIN
		`CREATE TABLE IF NOT EXISTS chain (
			id TEXT PRIMARY KEY,
			kind TEXT NOT NULL,
			language TEXT NOT NULL REFERENCES language(code),
			current_id TEXT,
			last_id TEXT,
			created_at BIGINT NOT NULL,
			updated_at BIGINT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_chain_kind ON chain(kind)`,

		// NODE
		`CREATE TABLE IF NOT EXISTS node (
			id TEXT PRIMARY KEY,
			chain_id TEXT NOT NULL REFERENCES chain(id) ON DELETE CASCADE,
			previous_id TEXT UNIQUE REFERENCES node(id) ON DELETE CASCADE,
			value TEXT NOT NULL,
			author_id TEXT NOT NULL,
			created_at BIGINT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_node_chain ON node(chain_id)`,

		// NODE STATUS
		`CREATE TABLE IF NOT EXISTS node_status (
			node_id TEXT PRIMARY KEY REFERENCES node(id) ON DELETE CASCADE,
			status TEXT NOT NULL,
			moderator_id TEXT,
			updated_at BIGINT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_node_status_status ON node_status(status)`,
	}
}
