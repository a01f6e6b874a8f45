package revision

import (
	"context"
	"errors"

	"github.com/geocontent/backend/lib/db"
	"github.com/geocontent/backend/lib/exception"
	"github.com/geocontent/backend/lib/metrics"
	modelDB "github.com/geocontent/backend/lib/models/db"
)

type pointerMove struct {
	change      *modelDB.StatusChange
	expected    *string
	hasExpected bool
}

type PointerOption func(*pointerMove)

// WithStatusChange applies a moderation status transition in the same
// transaction as the pointer move.
func WithStatusChange(change modelDB.StatusChange) PointerOption {
	return func(m *pointerMove) {
		m.change = &change
	}
}

// WithExpectedCurrent makes the move fail with a ConflictError unless the
// chain still serves currentID (nil for none). Without it the move is
// retried against a fresh read of the chain.
func WithExpectedCurrent(currentID *string) PointerOption {
	return func(m *pointerMove) {
		m.expected = currentID
		m.hasExpected = true
	}
}

func newPointerMove(opts []PointerOption) pointerMove {
	move := pointerMove{}
	for _, opt := range opts {
		opt(&move)
	}
	return move
}

// Promote makes nodeID the chain's current revision. nodeID must be
// reachable from last. Promoting the present current revision is a no-op.
func (r *Repository[V]) Promote(ctx context.Context, chainID string, nodeID string, opts ...PointerOption) error {
	move := newPointerMove(opts)
	if move.hasExpected {
		return r.promote(ctx, chainID, nodeID, move)
	}
	return r.RetryOnConflict(ctx, func() error {
		return r.promote(ctx, chainID, nodeID, move)
	})
}

func (r *Repository[V]) promote(ctx context.Context, chainID string, nodeID string, move pointerMove) error {
	chain, err := r.Chain(ctx, chainID)
	if err != nil {
		return err
	}
	if move.change == nil && chain.CurrentID != nil && *chain.CurrentID == nodeID {
		return nil
	}
	ok, err := r.reachable(ctx, chain.ID, chain.LastID, nodeID)
	if err != nil {
		return err
	}
	if !ok {
		return exception.NewNotFoundError(db.NodeResource, nodeID)
	}
	return r.moveCurrent(ctx, chain, nodeID, move, "promote")
}

// Rewind moves current back to nodeID, which must be the present current
// revision or one it superseded.
func (r *Repository[V]) Rewind(ctx context.Context, chainID string, nodeID string, opts ...PointerOption) error {
	move := newPointerMove(opts)
	if move.hasExpected {
		return r.rewind(ctx, chainID, nodeID, move)
	}
	return r.RetryOnConflict(ctx, func() error {
		return r.rewind(ctx, chainID, nodeID, move)
	})
}

func (r *Repository[V]) rewind(ctx context.Context, chainID string, nodeID string, move pointerMove) error {
	chain, err := r.Chain(ctx, chainID)
	if err != nil {
		return err
	}
	if chain.CurrentID == nil {
		ok, err := r.reachable(ctx, chain.ID, chain.LastID, nodeID)
		if err != nil {
			return err
		}
		if !ok {
			return exception.NewNotFoundError(db.NodeResource, nodeID)
		}
		return exception.NewValidationError("nodeId", "chain has no current revision to rewind from")
	}

	behindCurrent, err := r.reachable(ctx, chain.ID, chain.CurrentID, nodeID)
	if err != nil {
		return err
	}
	if !behindCurrent {
		ok, err := r.reachable(ctx, chain.ID, chain.LastID, nodeID)
		if err != nil {
			return err
		}
		if !ok {
			return exception.NewNotFoundError(db.NodeResource, nodeID)
		}
		return exception.NewValidationError("nodeId", "revision is newer than the current revision")
	}
	return r.moveCurrent(ctx, chain, nodeID, move, "rewind")
}

func (r *Repository[V]) moveCurrent(ctx context.Context, chain Chain, nodeID string, move pointerMove, direction string) error {
	expected := chain.CurrentID
	if move.hasExpected {
		expected = move.expected
	}
	err := r.store.SetCurrentNode(ctx, chain.ID, expected, &nodeID, move.change)
	var conflict *exception.ConflictError
	if errors.As(err, &conflict) {
		metrics.PointerConflicts.WithLabelValues(r.strategy.Kind).Inc()
		r.logger.Debugw("Current pointer move lost race", "chainId", chain.ID, "nodeId", nodeID, "direction", direction)
		return err
	}
	if err != nil {
		return err
	}
	metrics.PointerMoves.WithLabelValues(r.strategy.Kind, direction).Inc()
	if direction == "promote" {
		r.logger.Infow("Promoted revision", "kind", r.strategy.Kind, "chainId", chain.ID, "nodeId", nodeID)
	} else {
		r.logger.Infow("Rewound chain", "kind", r.strategy.Kind, "chainId", chain.ID, "nodeId", nodeID)
	}
	return nil
}
