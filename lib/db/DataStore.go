package db

import (
	"context"

	"github.com/geocontent/backend/lib/models/db"
)

type ChainMethods interface {
	CreateChain(ctx context.Context, chain db.ChainDB) error
	GetChain(ctx context.Context, chainID string) (*db.ChainDB, error)
	// RemoveChain deletes the chain together with all of its nodes and
	// their status rows.
	RemoveChain(ctx context.Context, chainID string) error
	// SetCurrentNode moves the current pointer from expectedCurrent to
	// nodeID. A chain whose current pointer is no longer expectedCurrent
	// yields a ConflictError. When change is non-nil the status transition
	// is applied in the same transaction.
	SetCurrentNode(ctx context.Context, chainID string, expectedCurrent *string, nodeID *string, change *db.StatusChange) error
}

type NodeMethods interface {
	// AppendNode inserts node with its initial status and moves the chain's
	// last pointer from expectedLast to node.ID atomically. A moved last
	// pointer or an already superseded previous node yields a ConflictError.
	AppendNode(ctx context.Context, node db.NodeDB, expectedLast *string, status db.NodeStatusDB) error
	GetNode(ctx context.Context, nodeID string) (*db.NodeDB, error)
	// GetNodeByPrevious returns the node superseding previousID, or nil.
	GetNodeByPrevious(ctx context.Context, previousID string) (*db.NodeDB, error)
}

type ModerationMethods interface {
	GetNodeStatus(ctx context.Context, nodeID string) (*db.NodeStatusDB, error)
	UpdateNodeStatus(ctx context.Context, change db.StatusChange) error
	QueryVisibleChains(ctx context.Context, kind string, language string) ([]db.ChainDB, error)
	QueryPendingNodes(ctx context.Context, kind string) ([]db.PendingNodeDB, error)
}

type LanguageMethods interface {
	SaveLanguage(ctx context.Context, language db.LanguageDB) error
	GetLanguage(ctx context.Context, code string) (*db.LanguageDB, error)
	GetLanguages(ctx context.Context) ([]db.LanguageDB, error)
}

type DataStore interface {
	ChainMethods
	NodeMethods
	ModerationMethods
	LanguageMethods
	Ping() error
	Close() error
}
