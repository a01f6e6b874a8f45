package db

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/geocontent/backend/lib/exception"
	"github.com/geocontent/backend/lib/models/db"
)

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// sqlDataStore holds the queries shared by the SQLite and Postgres stores.
// The dialects differ in placeholder format and in how a unique constraint
// violation is reported by the driver.
type sqlDataStore struct {
	sqlDB             *sql.DB
	builder           sq.StatementBuilderType
	isUniqueViolation func(err error) bool
}

func eqID(column string, id *string) sq.Eq {
	if id == nil {
		return sq.Eq{column: nil}
	}
	return sq.Eq{column: *id}
}

// ============== CHAIN METHODS ==============

func (d *sqlDataStore) CreateChain(ctx context.Context, chain db.ChainDB) error {
	tx, err := d.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return exception.NewDatabaseError("begin create chain", err)
	}
	defer tx.Rollback()

	if _, err := d.getLanguage(ctx, tx, chain.Language); err != nil {
		return err
	}

	resultedSQL, args, err := d.builder.
		Insert("chain").
		Columns("id", "kind", "language", "current_id", "last_id", "created_at", "updated_at").
		Values(chain.ID, chain.Kind, chain.Language, chain.CurrentID, chain.LastID,
			chain.CreatedAt.UnixMicro(), chain.UpdatedAt.UnixMicro()).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, resultedSQL, args...); err != nil {
		if d.isUniqueViolation(err) {
			return exception.NewConflictError(chain.ID, "chain already exists")
		}
		return exception.NewDatabaseError("insert chain", err)
	}

	if err := tx.Commit(); err != nil {
		return exception.NewDatabaseError("commit create chain", err)
	}
	return nil
}

func (d *sqlDataStore) GetChain(ctx context.Context, chainID string) (*db.ChainDB, error) {
	return d.getChain(ctx, d.sqlDB, chainID)
}

func (d *sqlDataStore) getChain(ctx context.Context, q querier, chainID string) (*db.ChainDB, error) {
	resultedSQL, args, err := d.builder.
		Select(chainColumns...).
		From("chain c").
		Where(sq.Eq{"c.id": chainID}).
		ToSql()
	if err != nil {
		return nil, err
	}

	chain, err := ReadToChainDB(q.QueryRowContext(ctx, resultedSQL, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, exception.NewNotFoundError(ChainResource, chainID)
	}
	if err != nil {
		return nil, exception.NewDatabaseError("get chain", err)
	}
	return chain, nil
}

func (d *sqlDataStore) RemoveChain(ctx context.Context, chainID string) error {
	tx, err := d.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return exception.NewDatabaseError("begin remove chain", err)
	}
	defer tx.Rollback()

	statusSQL, statusArgs, err := d.builder.
		Delete("node_status").
		Where("node_id IN (SELECT id FROM node WHERE chain_id = ?)", chainID).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, statusSQL, statusArgs...); err != nil {
		return exception.NewDatabaseError("remove node status", err)
	}

	nodeSQL, nodeArgs, err := d.builder.
		Delete("node").
		Where(sq.Eq{"chain_id": chainID}).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, nodeSQL, nodeArgs...); err != nil {
		return exception.NewDatabaseError("remove nodes", err)
	}

	chainSQL, chainArgs, err := d.builder.
		Delete("chain").
		Where(sq.Eq{"id": chainID}).
		ToSql()
	if err != nil {
		return err
	}
	result, err := tx.ExecContext(ctx, chainSQL, chainArgs...)
	if err != nil {
		return exception.NewDatabaseError("remove chain", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return exception.NewNotFoundError(ChainResource, chainID)
	}

	if err := tx.Commit(); err != nil {
		return exception.NewDatabaseError("commit remove chain", err)
	}
	return nil
}

func (d *sqlDataStore) SetCurrentNode(ctx context.Context, chainID string, expectedCurrent *string, nodeID *string, change *db.StatusChange) error {
	tx, err := d.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return exception.NewDatabaseError("begin set current", err)
	}
	defer tx.Rollback()

	if nodeID != nil {
		node, err := d.getNode(ctx, tx, *nodeID)
		if err != nil {
			return err
		}
		if node.ChainID != chainID {
			return exception.NewNotFoundError(NodeResource, *nodeID)
		}
	}

	if change != nil {
		if err := d.updateNodeStatus(ctx, tx, *change); err != nil {
			return err
		}
	}

	resultedSQL, args, err := d.builder.
		Update("chain").
		Set("current_id", nodeID).
		Where(sq.Eq{"id": chainID}).
		Where(eqID("current_id", expectedCurrent)).
		ToSql()
	if err != nil {
		return err
	}
	result, err := tx.ExecContext(ctx, resultedSQL, args...)
	if err != nil {
		return exception.NewDatabaseError("update current", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		if _, err := d.getChain(ctx, tx, chainID); err != nil {
			return err
		}
		return exception.NewConflictError(chainID, CurrentMovedError)
	}

	if err := tx.Commit(); err != nil {
		return exception.NewDatabaseError("commit set current", err)
	}
	return nil
}

// ============== NODE METHODS ==============

func (d *sqlDataStore) AppendNode(ctx context.Context, node db.NodeDB, expectedLast *string, status db.NodeStatusDB) error {
	tx, err := d.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return exception.NewDatabaseError("begin append", err)
	}
	defer tx.Rollback()

	// Compare-and-set on last first so concurrent appends to one chain
	// queue on the chain row.
	casSQL, casArgs, err := d.builder.
		Update("chain").
		Set("last_id", node.ID).
		Set("updated_at", node.CreatedAt.UnixMicro()).
		Where(sq.Eq{"id": node.ChainID}).
		Where(eqID("last_id", expectedLast)).
		ToSql()
	if err != nil {
		return err
	}
	result, err := tx.ExecContext(ctx, casSQL, casArgs...)
	if err != nil {
		return exception.NewDatabaseError("move last pointer", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		if _, err := d.getChain(ctx, tx, node.ChainID); err != nil {
			return err
		}
		return exception.NewConflictError(node.ChainID, ChainMovedError)
	}

	nodeSQL, nodeArgs, err := d.builder.
		Insert("node").
		Columns("id", "chain_id", "previous_id", "value", "author_id", "created_at").
		Values(node.ID, node.ChainID, node.PreviousID, node.Value, node.AuthorID, node.CreatedAt.UnixMicro()).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, nodeSQL, nodeArgs...); err != nil {
		if d.isUniqueViolation(err) {
			return exception.NewConflictError(node.ChainID, RevisionSupersededError)
		}
		return exception.NewDatabaseError("insert node", err)
	}

	statusSQL, statusArgs, err := d.builder.
		Insert("node_status").
		Columns("node_id", "status", "moderator_id", "updated_at").
		Values(node.ID, status.Status, status.ModeratorID, status.UpdatedAt.UnixMicro()).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, statusSQL, statusArgs...); err != nil {
		return exception.NewDatabaseError("insert node status", err)
	}

	if err := tx.Commit(); err != nil {
		return exception.NewDatabaseError("commit append", err)
	}
	return nil
}

func (d *sqlDataStore) GetNode(ctx context.Context, nodeID string) (*db.NodeDB, error) {
	return d.getNode(ctx, d.sqlDB, nodeID)
}

func (d *sqlDataStore) getNode(ctx context.Context, q querier, nodeID string) (*db.NodeDB, error) {
	resultedSQL, args, err := d.builder.
		Select(nodeColumns...).
		From("node n").
		Where(sq.Eq{"n.id": nodeID}).
		ToSql()
	if err != nil {
		return nil, err
	}

	node, err := ReadToNodeDB(q.QueryRowContext(ctx, resultedSQL, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, exception.NewNotFoundError(NodeResource, nodeID)
	}
	if err != nil {
		return nil, exception.NewDatabaseError("get node", err)
	}
	return node, nil
}

func (d *sqlDataStore) GetNodeByPrevious(ctx context.Context, previousID string) (*db.NodeDB, error) {
	resultedSQL, args, err := d.builder.
		Select(nodeColumns...).
		From("node n").
		Where(sq.Eq{"n.previous_id": previousID}).
		ToSql()
	if err != nil {
		return nil, err
	}

	node, err := ReadToNodeDB(d.sqlDB.QueryRowContext(ctx, resultedSQL, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, exception.NewDatabaseError("get successor", err)
	}
	return node, nil
}

// ============== MODERATION METHODS ==============

func (d *sqlDataStore) GetNodeStatus(ctx context.Context, nodeID string) (*db.NodeStatusDB, error) {
	return d.getNodeStatus(ctx, d.sqlDB, nodeID)
}

func (d *sqlDataStore) getNodeStatus(ctx context.Context, q querier, nodeID string) (*db.NodeStatusDB, error) {
	resultedSQL, args, err := d.builder.
		Select("node_id", "status", "moderator_id", "updated_at").
		From("node_status").
		Where(sq.Eq{"node_id": nodeID}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var status db.NodeStatusDB
	var moderatorID sql.NullString
	var updatedAt int64
	err = q.QueryRowContext(ctx, resultedSQL, args...).
		Scan(&status.NodeID, &status.Status, &moderatorID, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, exception.NewNotFoundError(NodeStatusResource, nodeID)
	}
	if err != nil {
		return nil, exception.NewDatabaseError("get node status", err)
	}
	status.ModeratorID = nullableID(moderatorID)
	status.UpdatedAt = fromMicros(updatedAt)
	return &status, nil
}

func (d *sqlDataStore) UpdateNodeStatus(ctx context.Context, change db.StatusChange) error {
	return d.updateNodeStatus(ctx, d.sqlDB, change)
}

func (d *sqlDataStore) updateNodeStatus(ctx context.Context, q querier, change db.StatusChange) error {
	resultedSQL, args, err := d.builder.
		Update("node_status").
		Set("status", change.To).
		Set("moderator_id", change.ModeratorID).
		Set("updated_at", change.At.UnixMicro()).
		Where(sq.Eq{"node_id": change.NodeID, "status": change.From}).
		ToSql()
	if err != nil {
		return err
	}

	result, err := q.ExecContext(ctx, resultedSQL, args...)
	if err != nil {
		return exception.NewDatabaseError("update node status", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected > 0 {
		return nil
	}

	if _, err := d.getNodeStatus(ctx, q, change.NodeID); err != nil {
		return err
	}
	node, err := d.getNode(ctx, q, change.NodeID)
	if err != nil {
		return err
	}
	return exception.NewConflictError(node.ChainID, StatusMovedError)
}

func (d *sqlDataStore) QueryVisibleChains(ctx context.Context, kind string, language string) ([]db.ChainDB, error) {
	builder := d.builder.
		Select(chainColumns...).
		From("chain c").
		Join("node_status s ON s.node_id = c.current_id").
		Join("language l ON l.code = c.language").
		Where(sq.Eq{"c.kind": kind, "s.status": db.StatusVerified, "l.active": true})

	if language != "" {
		builder = builder.Where(sq.Eq{"c.language": language})
	}

	resultedSQL, args, err := builder.OrderBy("c.created_at ASC", "c.id ASC").ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := d.sqlDB.QueryContext(ctx, resultedSQL, args...)
	if err != nil {
		return nil, exception.NewDatabaseError("query visible chains", err)
	}
	defer rows.Close()

	chains := make([]db.ChainDB, 0)
	for rows.Next() {
		chain, err := ReadToChainDB(rows)
		if err != nil {
			return nil, err
		}
		chains = append(chains, *chain)
	}
	return chains, rows.Err()
}

func (d *sqlDataStore) QueryPendingNodes(ctx context.Context, kind string) ([]db.PendingNodeDB, error) {
	builder := d.builder.
		Select(append(nodeColumns, "c.kind", "c.language")...).
		From("node n").
		Join("node_status s ON s.node_id = n.id").
		Join("chain c ON c.id = n.chain_id").
		Where(sq.Eq{"s.status": db.StatusPending})

	if kind != "" {
		builder = builder.Where(sq.Eq{"c.kind": kind})
	}

	resultedSQL, args, err := builder.OrderBy("n.created_at ASC", "n.id ASC").ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := d.sqlDB.QueryContext(ctx, resultedSQL, args...)
	if err != nil {
		return nil, exception.NewDatabaseError("query pending nodes", err)
	}
	defer rows.Close()

	pending := make([]db.PendingNodeDB, 0)
	for rows.Next() {
		node, err := ReadToPendingNodeDB(rows)
		if err != nil {
			return nil, err
		}
		pending = append(pending, *node)
	}
	return pending, rows.Err()
}

// ============== LANGUAGE METHODS ==============

func (d *sqlDataStore) SaveLanguage(ctx context.Context, language db.LanguageDB) error {
	resultedSQL, args, err := d.builder.
		Insert("language").
		Columns("code", "name", "active").
		Values(language.Code, language.Name, language.Active).
		Suffix(`ON CONFLICT(code) DO UPDATE SET
			name = excluded.name,
			active = excluded.active`).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := d.sqlDB.ExecContext(ctx, resultedSQL, args...); err != nil {
		return exception.NewDatabaseError("save language", err)
	}
	return nil
}

func (d *sqlDataStore) GetLanguage(ctx context.Context, code string) (*db.LanguageDB, error) {
	return d.getLanguage(ctx, d.sqlDB, code)
}

func (d *sqlDataStore) getLanguage(ctx context.Context, q querier, code string) (*db.LanguageDB, error) {
	resultedSQL, args, err := d.builder.
		Select("code", "name", "active").
		From("language").
		Where(sq.Eq{"code": code}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var language db.LanguageDB
	err = q.QueryRowContext(ctx, resultedSQL, args...).Scan(&language.Code, &language.Name, &language.Active)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, exception.NewNotFoundError(LanguageResource, code)
	}
	if err != nil {
		return nil, exception.NewDatabaseError("get language", err)
	}
	return &language, nil
}

func (d *sqlDataStore) GetLanguages(ctx context.Context) ([]db.LanguageDB, error) {
	resultedSQL, args, err := d.builder.
		Select("code", "name", "active").
		From("language").
		OrderBy("code ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := d.sqlDB.QueryContext(ctx, resultedSQL, args...)
	if err != nil {
		return nil, exception.NewDatabaseError("get languages", err)
	}
	defer rows.Close()

	languages := make([]db.LanguageDB, 0)
	for rows.Next() {
		var language db.LanguageDB
		if err := rows.Scan(&language.Code, &language.Name, &language.Active); err != nil {
			return nil, err
		}
		languages = append(languages, language)
	}
	return languages, rows.Err()
}

// ============== LIFECYCLE ==============

func (d *sqlDataStore) Ping() error {
	return d.sqlDB.Ping()
}

func (d *sqlDataStore) Close() error {
	return d.sqlDB.Close()
}
