package db

import (
	"database/sql"
	"time"

	"github.com/geocontent/backend/lib/models/db"
)

type Reader interface {
	Scan(dest ...any) error
}

var chainColumns = []string{"c.id", "c.kind", "c.language", "c.current_id", "c.last_id", "c.created_at", "c.updated_at"}
var nodeColumns = []string{"n.id", "n.chain_id", "n.previous_id", "n.value", "n.author_id", "n.created_at"}

func fromMicros(micros int64) time.Time {
	return time.UnixMicro(micros).UTC()
}

func nullableID(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	id := value.String
	return &id
}

func ReadToChainDB(reader Reader) (*db.ChainDB, error) {
	var chain db.ChainDB
	var currentID, lastID sql.NullString
	var createdAt, updatedAt int64

	if err := reader.Scan(&chain.ID, &chain.Kind, &chain.Language,
		&currentID, &lastID, &createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}
	chain.CurrentID = nullableID(currentID)
	chain.LastID = nullableID(lastID)
	chain.CreatedAt = fromMicros(createdAt)
	chain.UpdatedAt = fromMicros(updatedAt)
	return &chain, nil
}

func ReadToNodeDB(reader Reader) (*db.NodeDB, error) {
	var node db.NodeDB
	var previousID sql.NullString
	var createdAt int64

	if err := reader.Scan(&node.ID, &node.ChainID, &previousID,
		&node.Value, &node.AuthorID, &createdAt,
	); err != nil {
		return nil, err
	}
	node.PreviousID = nullableID(previousID)
	node.CreatedAt = fromMicros(createdAt)
	return &node, nil
}

func ReadToPendingNodeDB(reader Reader) (*db.PendingNodeDB, error) {
	var pending db.PendingNodeDB
	var previousID sql.NullString
	var createdAt int64

	if err := reader.Scan(&pending.ID, &pending.ChainID, &previousID,
		&pending.Value, &pending.AuthorID, &createdAt,
		&pending.Kind, &pending.Language,
	); err != nil {
		return nil, err
	}
	pending.PreviousID = nullableID(previousID)
	pending.CreatedAt = fromMicros(createdAt)
	return &pending, nil
}
