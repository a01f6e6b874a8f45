package db

import "time"

// NodeDB is one stored revision. Value holds the JSON encoded payload.
// There is no next column: the successor is found by querying PreviousID.
type NodeDB struct {
	ID         string
	ChainID    string
	PreviousID *string
	Value      string
	AuthorID   string
	CreatedAt  time.Time
}

type PendingNodeDB struct {
	NodeDB
	Kind     string
	Language string
}
